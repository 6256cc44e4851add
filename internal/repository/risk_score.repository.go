package repository

import (
	"errors"
	"fmt"

	"subhealth/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RiskScoreRepository interface {
	GetLatestScore(userID uint, modelVersion string) (*models.RiskScore, error)
	GetScoreSeries(userID uint, modelVersion string, startDay, endDay string) ([]models.RiskScore, error)
	SaveScoreWithContributions(score *models.RiskScore, contributions []models.RiskContribution) error
	GetContributions(userID uint, day, modelVersion string) ([]models.RiskContribution, error)
	SaveScore(score *models.RiskScore) error
}

type riskScoreRepository struct {
	db *gorm.DB
}

func NewRiskScoreRepository(db *gorm.DB) RiskScoreRepository {
	return &riskScoreRepository{db}
}

func (r *riskScoreRepository) GetLatestScore(userID uint, modelVersion string) (*models.RiskScore, error) {
	var score models.RiskScore
	err := r.db.Where("user_id = ? AND model_version = ?", userID, modelVersion).
		Order("day DESC").
		First(&score).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("risk_scores: latest %s for user %d: %w", modelVersion, userID, err)
	}
	return &score, nil
}

func (r *riskScoreRepository) GetScoreSeries(userID uint, modelVersion string, startDay, endDay string) ([]models.RiskScore, error) {
	var scores []models.RiskScore
	err := r.db.Where("user_id = ? AND model_version = ? AND day BETWEEN ? AND ?",
		userID, modelVersion, startDay, endDay).
		Order("day ASC").
		Find(&scores).Error
	if err != nil {
		return nil, fmt.Errorf("risk_scores: series %s for user %d: %w", modelVersion, userID, err)
	}
	return scores, nil
}

// SaveScoreWithContributions upserts the score row on its
// (user_id, day, model_version) key and replaces the contribution set for
// that key wholesale. Both steps run in one transaction so a concurrent
// recompute can never observe a half-replaced contributor set.
func (r *riskScoreRepository) SaveScoreWithContributions(score *models.RiskScore, contributions []models.RiskContribution) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "user_id"}, {Name: "day"}, {Name: "model_version"},
			},
			DoUpdates: clause.AssignmentColumns([]string{"risk_score", "updated_at"}),
		}).Create(score).Error; err != nil {
			return fmt.Errorf("risk_scores: upsert: %w", err)
		}

		if err := tx.Unscoped().
			Where("user_id = ? AND day = ? AND model_version = ?",
				score.UserID, score.Day, score.ModelVersion).
			Delete(&models.RiskContribution{}).Error; err != nil {
			return fmt.Errorf("risk_contributions: delete: %w", err)
		}

		if len(contributions) > 0 {
			if err := tx.Create(&contributions).Error; err != nil {
				return fmt.Errorf("risk_contributions: insert: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	return nil
}

func (r *riskScoreRepository) GetContributions(userID uint, day, modelVersion string) ([]models.RiskContribution, error) {
	var rows []models.RiskContribution
	err := r.db.Where("user_id = ? AND day = ? AND model_version = ?", userID, day, modelVersion).
		Order("abs(value) DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("risk_contributions: for user %d day %s: %w", userID, day, err)
	}
	return rows, nil
}

func (r *riskScoreRepository) SaveScore(score *models.RiskScore) error {
	err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "user_id"}, {Name: "day"}, {Name: "model_version"},
		},
		DoUpdates: clause.AssignmentColumns([]string{"risk_score", "updated_at"}),
	}).Create(score).Error
	if err != nil {
		return fmt.Errorf("risk_scores: upsert: %w", err)
	}
	return nil
}
