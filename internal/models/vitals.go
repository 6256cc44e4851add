package models

import (
	"time"

	"gorm.io/gorm"
)

type VitalsRecord struct {
	ID        uint           `gorm:"primaryKey" json:"id" example:"1"`
	CreatedAt time.Time      `json:"created_at" example:"2023-01-01T00:00:00Z"`
	UpdatedAt time.Time      `json:"updated_at" example:"2023-01-01T00:00:00Z"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	UserID    uint           `gorm:"index" json:"user_id" example:"1"`
	User      User           `gorm:"foreignKey:UserID" json:"-"`
	TakenAt   time.Time      `gorm:"index" json:"taken_at" example:"2023-01-01T08:00:00Z"`

	SystolicMmHg  *float64 `json:"systolic_mm_hg" example:"118"`
	DiastolicMmHg *float64 `json:"diastolic_mm_hg" example:"76"`
	HeartRateBpm  *float64 `json:"heart_rate_bpm" example:"64"`
	Spo2Percent   *float64 `json:"spo2_percent" example:"98"`
	BMI           *float64 `gorm:"column:bmi" json:"bmi" example:"23.1"`
}

func (v *VitalsRecord) TableName() string {
	return "vitals_records"
}

// VitalsSnapshot is the scoring-facing view of the latest vitals record.
type VitalsSnapshot struct {
	SystolicMmHg  *float64 `json:"systolic_mm_hg"`
	DiastolicMmHg *float64 `json:"diastolic_mm_hg"`
	HeartRateBpm  *float64 `json:"heart_rate_bpm"`
	Spo2Percent   *float64 `json:"spo2_percent"`
	BMI           *float64 `json:"bmi"`
}
