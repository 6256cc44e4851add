package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	EvidenceLevelHigh     = "high"
	EvidenceLevelModerate = "moderate"
)

// GeneticMarker is one reported variant from an uploaded consumer panel.
type GeneticMarker struct {
	ID        uint           `gorm:"primaryKey" json:"id" example:"1"`
	CreatedAt time.Time      `json:"created_at" example:"2023-01-01T00:00:00Z"`
	UpdatedAt time.Time      `json:"updated_at" example:"2023-01-01T00:00:00Z"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	UserID    uint           `gorm:"index" json:"user_id" example:"1"`
	User      User           `gorm:"foreignKey:UserID" json:"-"`

	Marker        string  `json:"marker" example:"APOE4"`
	Variant       string  `json:"variant" example:"heterozygous"`
	EvidenceLevel *string `json:"evidence_level,omitempty" example:"high"`
}

func (g *GeneticMarker) TableName() string {
	return "genetic_markers"
}
