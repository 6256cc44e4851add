package repository

import (
	"fmt"

	"subhealth/internal/models"

	"gorm.io/gorm"
)

type GeneticRepository interface {
	GetByUserID(userID uint) ([]models.GeneticMarker, error)
	SaveMarker(marker *models.GeneticMarker) error
}

type geneticRepository struct {
	db *gorm.DB
}

func NewGeneticRepository(db *gorm.DB) GeneticRepository {
	return &geneticRepository{db}
}

func (r *geneticRepository) GetByUserID(userID uint) ([]models.GeneticMarker, error) {
	var markers []models.GeneticMarker
	err := r.db.Where("user_id = ?", userID).Find(&markers).Error
	if err != nil {
		return nil, fmt.Errorf("genetic_markers: for user %d: %w", userID, err)
	}
	return markers, nil
}

func (r *geneticRepository) SaveMarker(marker *models.GeneticMarker) error {
	if err := r.db.Create(marker).Error; err != nil {
		return fmt.Errorf("genetic_markers: create: %w", err)
	}
	return nil
}
