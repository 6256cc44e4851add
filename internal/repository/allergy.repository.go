package repository

import (
	"errors"
	"fmt"

	"subhealth/internal/models"

	"gorm.io/gorm"
)

type AllergyRepository interface {
	GetLabResultsByUserID(userID uint) ([]models.AllergyLabResult, error)
	GetSymptomReportByUserID(userID uint) (*models.AllergySymptomReport, error)
	SaveLabResult(result *models.AllergyLabResult) error
	SaveSymptomReport(report *models.AllergySymptomReport) error
}

type allergyRepository struct {
	db *gorm.DB
}

func NewAllergyRepository(db *gorm.DB) AllergyRepository {
	return &allergyRepository{db}
}

func (r *allergyRepository) GetLabResultsByUserID(userID uint) ([]models.AllergyLabResult, error) {
	var results []models.AllergyLabResult
	err := r.db.Where("user_id = ?", userID).Find(&results).Error
	if err != nil {
		return nil, fmt.Errorf("allergy_lab_results: for user %d: %w", userID, err)
	}
	return results, nil
}

func (r *allergyRepository) GetSymptomReportByUserID(userID uint) (*models.AllergySymptomReport, error) {
	var report models.AllergySymptomReport
	err := r.db.Where("user_id = ?", userID).First(&report).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("allergy_symptom_reports: for user %d: %w", userID, err)
	}
	return &report, nil
}

func (r *allergyRepository) SaveLabResult(result *models.AllergyLabResult) error {
	if err := r.db.Create(result).Error; err != nil {
		return fmt.Errorf("allergy_lab_results: create: %w", err)
	}
	return nil
}

func (r *allergyRepository) SaveSymptomReport(report *models.AllergySymptomReport) error {
	if err := r.db.Save(report).Error; err != nil {
		return fmt.Errorf("allergy_symptom_reports: save: %w", err)
	}
	return nil
}
