package repository

import (
	"fmt"

	"subhealth/internal/models"

	"gorm.io/gorm"
)

type FamilyHistoryRepository interface {
	GetByUserID(userID uint) ([]models.FamilyHistoryRecord, error)
	SaveRecord(record *models.FamilyHistoryRecord) error
}

type familyHistoryRepository struct {
	db *gorm.DB
}

func NewFamilyHistoryRepository(db *gorm.DB) FamilyHistoryRepository {
	return &familyHistoryRepository{db}
}

func (r *familyHistoryRepository) GetByUserID(userID uint) ([]models.FamilyHistoryRecord, error) {
	var records []models.FamilyHistoryRecord
	err := r.db.Where("user_id = ?", userID).Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("family_history: for user %d: %w", userID, err)
	}
	return records, nil
}

func (r *familyHistoryRepository) SaveRecord(record *models.FamilyHistoryRecord) error {
	if err := r.db.Create(record).Error; err != nil {
		return fmt.Errorf("family_history: create: %w", err)
	}
	return nil
}
