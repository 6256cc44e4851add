package repository

import (
	"errors"
	"fmt"
	"time"

	"subhealth/internal/models"

	"gorm.io/gorm"
)

type LifestyleRepository interface {
	GetProfileByUserID(userID uint) (*models.LifestyleProfile, error)
	GetWorkoutsSince(userID uint, since time.Time) ([]models.LifestyleWorkout, error)
	CountWorkoutsSince(userID uint, since time.Time) (int64, error)
	SaveProfile(profile *models.LifestyleProfile) error
	SaveWorkout(workout *models.LifestyleWorkout) error
}

type lifestyleRepository struct {
	db *gorm.DB
}

func NewLifestyleRepository(db *gorm.DB) LifestyleRepository {
	return &lifestyleRepository{db}
}

func (r *lifestyleRepository) GetProfileByUserID(userID uint) (*models.LifestyleProfile, error) {
	var profile models.LifestyleProfile
	err := r.db.Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lifestyle_profiles: for user %d: %w", userID, err)
	}
	return &profile, nil
}

func (r *lifestyleRepository) GetWorkoutsSince(userID uint, since time.Time) ([]models.LifestyleWorkout, error) {
	var workouts []models.LifestyleWorkout
	err := r.db.Where("user_id = ? AND started_at >= ?", userID, since).
		Order("started_at DESC").
		Find(&workouts).Error
	if err != nil {
		return nil, fmt.Errorf("lifestyle_workouts: since %s for user %d: %w",
			since.Format("2006-01-02"), userID, err)
	}
	return workouts, nil
}

func (r *lifestyleRepository) CountWorkoutsSince(userID uint, since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.LifestyleWorkout{}).
		Where("user_id = ? AND started_at >= ?", userID, since).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("lifestyle_workouts: count for user %d: %w", userID, err)
	}
	return count, nil
}

func (r *lifestyleRepository) SaveProfile(profile *models.LifestyleProfile) error {
	if err := r.db.Save(profile).Error; err != nil {
		return fmt.Errorf("lifestyle_profiles: save: %w", err)
	}
	return nil
}

func (r *lifestyleRepository) SaveWorkout(workout *models.LifestyleWorkout) error {
	if err := r.db.Create(workout).Error; err != nil {
		return fmt.Errorf("lifestyle_workouts: create: %w", err)
	}
	return nil
}
