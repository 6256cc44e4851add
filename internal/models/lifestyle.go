package models

import (
	"time"

	"gorm.io/gorm"
)

// Activity, smoking and stress levels are free-text enums from the intake
// survey; the scorers only compare against the lowercase values below.
const (
	ActivityLevelLow    = "low"
	ActivityLevelMedium = "medium"
	ActivityLevelHigh   = "high"

	StressLevelLow      = "low"
	StressLevelModerate = "moderate"
	StressLevelHigh     = "high"
)

type LifestyleProfile struct {
	ID        uint           `gorm:"primaryKey" json:"id" example:"1"`
	CreatedAt time.Time      `json:"created_at" example:"2023-01-01T00:00:00Z"`
	UpdatedAt time.Time      `json:"updated_at" example:"2023-01-01T00:00:00Z"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	UserID    uint           `gorm:"unique" json:"user_id" example:"1"`

	SleepHoursWorkdays *float64 `json:"sleep_hours_workdays" example:"6.5"`
	SleepHoursWeekends *float64 `json:"sleep_hours_weekends" example:"8"`
	ActivityLevel      *string  `json:"activity_level" example:"medium"`
	SmokerStatus       *string  `json:"smoker_status" example:"never"`
	StressLevel        *string  `json:"stress_level" example:"moderate"`
	AlcoholPerWeek     *float64 `json:"alcohol_per_week" example:"2"`
	SupplementsJSON    *string  `gorm:"column:supplements_json;type:text" json:"supplements_json,omitempty"`
}

func (p *LifestyleProfile) TableName() string {
	return "lifestyle_profiles"
}

// LifestyleWorkout is one logged workout session.
type LifestyleWorkout struct {
	ID        uint           `gorm:"primaryKey" json:"id" example:"1"`
	CreatedAt time.Time      `json:"created_at" example:"2023-01-01T00:00:00Z"`
	UpdatedAt time.Time      `json:"updated_at" example:"2023-01-01T00:00:00Z"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	UserID    uint           `gorm:"index" json:"user_id" example:"1"`
	User      User           `gorm:"foreignKey:UserID" json:"-"`
	StartedAt time.Time      `gorm:"index" json:"started_at" example:"2023-01-01T18:00:00Z"`
	Minutes   int            `json:"minutes" example:"45"`
	Kind      string         `json:"kind" example:"run"`
}

func (w *LifestyleWorkout) TableName() string {
	return "lifestyle_workouts"
}

// LifestyleSnapshot is the scoring-facing view of the survey row plus the
// parsed creatine flag from the supplements blob.
type LifestyleSnapshot struct {
	SleepHoursWorkdays *float64 `json:"sleep_hours_workdays"`
	SleepHoursWeekends *float64 `json:"sleep_hours_weekends"`
	ActivityLevel      *string  `json:"activity_level"`
	SmokerStatus       *string  `json:"smoker_status"`
	StressLevel        *string  `json:"stress_level"`
	AlcoholPerWeek     *float64 `json:"alcohol_per_week"`
	OnCreatine         bool     `json:"on_creatine"`
}
