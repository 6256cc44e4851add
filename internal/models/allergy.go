package models

import (
	"time"

	"gorm.io/gorm"
)

// AllergyLabResult is one specific-IgE panel line. Class >= 3 marks a
// strong sensitizer.
type AllergyLabResult struct {
	ID        uint           `gorm:"primaryKey" json:"id" example:"1"`
	CreatedAt time.Time      `json:"created_at" example:"2023-01-01T00:00:00Z"`
	UpdatedAt time.Time      `json:"updated_at" example:"2023-01-01T00:00:00Z"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	UserID    uint           `gorm:"index" json:"user_id" example:"1"`
	User      User           `gorm:"foreignKey:UserID" json:"-"`

	TestName string   `json:"test_name" example:"birch pollen"`
	IgEKuL   *float64 `gorm:"column:ige_ku_l" json:"ige_ku_l" example:"12.5"`
	Class    *int     `json:"class" example:"3"`
}

func (a *AllergyLabResult) TableName() string {
	return "allergy_lab_results"
}

// AllergySymptomReport is the self-reported symptom survey row.
type AllergySymptomReport struct {
	ID        uint           `gorm:"primaryKey" json:"id" example:"1"`
	CreatedAt time.Time      `json:"created_at" example:"2023-01-01T00:00:00Z"`
	UpdatedAt time.Time      `json:"updated_at" example:"2023-01-01T00:00:00Z"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	UserID    uint           `gorm:"unique" json:"user_id" example:"1"`

	Severity  *string `json:"severity" example:"moderate"`
	Frequency *string `json:"frequency" example:"often"`
}

func (a *AllergySymptomReport) TableName() string {
	return "allergy_symptom_reports"
}

// AllergySummary is the scoring-facing compression of the panel rows and
// the symptom survey: peak IgE, strong sensitizers (class>=3) and a 0..1
// symptom score.
type AllergySummary struct {
	IgETotalKuL       *float64 `json:"ige_total_ku_l"`
	StrongSensitizers []string `json:"strong_sensitizers"`
	SymptomScore      *float64 `json:"symptom_score"`
}
