package repository

import (
	"errors"
	"fmt"

	"subhealth/internal/models"

	"gorm.io/gorm"
)

type MetricsRepository interface {
	GetSinceDay(userID uint, sinceDay string) ([]models.DailyMetric, error)
	GetByDay(userID uint, day string) (*models.DailyMetric, error)
	SaveMetric(metric *models.DailyMetric) error
}

type metricsRepository struct {
	db *gorm.DB
}

func NewMetricsRepository(db *gorm.DB) MetricsRepository {
	return &metricsRepository{db}
}

// GetSinceDay returns day rows newest first. Day strings compare
// lexicographically because they are zero-padded YYYY-MM-DD.
func (r *metricsRepository) GetSinceDay(userID uint, sinceDay string) ([]models.DailyMetric, error) {
	var rows []models.DailyMetric
	err := r.db.Where("user_id = ? AND day >= ?", userID, sinceDay).
		Order("day DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("metrics: since %s for user %d: %w", sinceDay, userID, err)
	}
	return rows, nil
}

func (r *metricsRepository) GetByDay(userID uint, day string) (*models.DailyMetric, error) {
	var row models.DailyMetric
	err := r.db.Where("user_id = ? AND day = ?", userID, day).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("metrics: day %s for user %d: %w", day, userID, err)
	}
	return &row, nil
}

func (r *metricsRepository) SaveMetric(metric *models.DailyMetric) error {
	if err := r.db.Create(metric).Error; err != nil {
		return fmt.Errorf("metrics: create: %w", err)
	}
	return nil
}
