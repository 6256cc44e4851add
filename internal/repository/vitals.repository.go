package repository

import (
	"errors"
	"fmt"

	"subhealth/internal/models"

	"gorm.io/gorm"
)

type VitalsRepository interface {
	GetLatestByUserID(userID uint) (*models.VitalsSnapshot, error)
	SaveRecord(record *models.VitalsRecord) error
}

type vitalsRepository struct {
	db *gorm.DB
}

func NewVitalsRepository(db *gorm.DB) VitalsRepository {
	return &vitalsRepository{db}
}

func (r *vitalsRepository) GetLatestByUserID(userID uint) (*models.VitalsSnapshot, error) {
	var record models.VitalsRecord
	err := r.db.Where("user_id = ?", userID).
		Order("taken_at DESC").
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("vitals_records: latest for user %d: %w", userID, err)
	}

	return &models.VitalsSnapshot{
		SystolicMmHg:  record.SystolicMmHg,
		DiastolicMmHg: record.DiastolicMmHg,
		HeartRateBpm:  record.HeartRateBpm,
		Spo2Percent:   record.Spo2Percent,
		BMI:           record.BMI,
	}, nil
}

func (r *vitalsRepository) SaveRecord(record *models.VitalsRecord) error {
	if err := r.db.Create(record).Error; err != nil {
		return fmt.Errorf("vitals_records: create: %w", err)
	}
	return nil
}
