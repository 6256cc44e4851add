package models

import (
	"time"

	"gorm.io/gorm"
)

// FamilyHistoryRecord is one reported relative/condition pair.
type FamilyHistoryRecord struct {
	ID        uint           `gorm:"primaryKey" json:"id" example:"1"`
	CreatedAt time.Time      `json:"created_at" example:"2023-01-01T00:00:00Z"`
	UpdatedAt time.Time      `json:"updated_at" example:"2023-01-01T00:00:00Z"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	UserID    uint           `gorm:"index" json:"user_id" example:"1"`
	User      User           `gorm:"foreignKey:UserID" json:"-"`

	Condition  string `json:"condition" example:"type 2 diabetes"`
	Relation   string `json:"relation" example:"parent"`
	AgeOfOnset *int   `json:"age_of_onset,omitempty" example:"54"`
}

func (f *FamilyHistoryRecord) TableName() string {
	return "family_history"
}

// FamilyHistorySummary collapses the records into the condition flags the
// condition scorers consume.
type FamilyHistorySummary struct {
	HasDiabetes   bool `json:"has_diabetes"`
	HasCVD        bool `json:"has_cvd"`
	HasCKD        bool `json:"has_ckd"`
	HasAutoimmune bool `json:"has_autoimmune"`
}
