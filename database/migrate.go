package database

import (
	"log"

	"subhealth/internal/models"
)

func MigrateDatabase() error {
	log.Println("Running database migrations...")

	err := DB.AutoMigrate(
		&models.User{},
		&models.LabPanel{},
		&models.VitalsRecord{},
		&models.LifestyleProfile{},
		&models.LifestyleWorkout{},
		&models.AllergyLabResult{},
		&models.AllergySymptomReport{},
		&models.FamilyHistoryRecord{},
		&models.GeneticMarker{},
		&models.DailyMetric{},
		&models.RiskScore{},
		&models.RiskContribution{},
		&models.RecomputeJob{},
	)

	if err != nil {
		log.Printf("Error during migration: %v", err)
		return err
	}

	log.Println("Database migrations completed successfully")
	return nil
}
