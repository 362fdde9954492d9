package report

import (
	"log"

	"github.com/EpiScoping/BirthProxy-Backend/internal/births"
	"github.com/EpiScoping/BirthProxy-Backend/internal/census"
	"github.com/EpiScoping/BirthProxy-Backend/internal/compare"
	"github.com/EpiScoping/BirthProxy-Backend/internal/db"
)

func Init() {
	// Ensure the schemas exist first
	for _, schema := range []string{"census", "births", "compare"} {
		if err := db.EnsureSchema(db.DB, schema); err != nil {
			log.Fatal("Failed to create schema "+schema+": ", err)
		}
	}

	if err := db.DB.AutoMigrate(&census.Count{}, &births.Count{}, &compare.Run{}); err != nil {
		log.Fatal("Failed to auto-migrate tables", err)
	}
}
