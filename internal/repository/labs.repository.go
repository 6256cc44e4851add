package repository

import (
	"errors"
	"fmt"

	"subhealth/internal/models"

	"gorm.io/gorm"
)

type LabRepository interface {
	GetLatestByUserID(userID uint) (*models.LabsCore, error)
	SavePanel(panel *models.LabPanel) error
}

type labRepository struct {
	db *gorm.DB
}

func NewLabRepository(db *gorm.DB) LabRepository {
	return &labRepository{db}
}

// GetLatestByUserID returns the newest panel as a scoring snapshot, or
// (nil, nil) when the user has no labs at all. Absence is not an error.
func (r *labRepository) GetLatestByUserID(userID uint) (*models.LabsCore, error) {
	var panel models.LabPanel
	err := r.db.Where("user_id = ?", userID).
		Order("taken_at DESC").
		First(&panel).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lab_panels: latest for user %d: %w", userID, err)
	}

	return &models.LabsCore{
		FastingGlucoseMgDl: panel.FastingGlucoseMgDl,
		HbA1cPercent:       panel.HbA1cPercent,
		BunMgDl:            panel.BunMgDl,
		CreatinineMgDl:     panel.CreatinineMgDl,
		EgfrMlMin:          panel.EgfrMlMin,
		CholTotalMgDl:      panel.CholTotalMgDl,
		HdlMgDl:            panel.HdlMgDl,
		LdlMgDl:            panel.LdlMgDl,
		TrigMgDl:           panel.TrigMgDl,
		AltUL:              panel.AltUL,
		AstUL:              panel.AstUL,
		TshUluMl:           panel.TshUluMl,
		VitD25OhNgMl:       panel.VitD25OhNgMl,
		CrpMgL:             panel.CrpMgL,
	}, nil
}

func (r *labRepository) SavePanel(panel *models.LabPanel) error {
	if err := r.db.Create(panel).Error; err != nil {
		return fmt.Errorf("lab_panels: create: %w", err)
	}
	return nil
}
