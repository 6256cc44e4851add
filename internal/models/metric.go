package models

import (
	"time"

	"gorm.io/gorm"
)

// DailyMetric is one wearable day row, ingested upstream from the device
// sync pipeline. Day is a date-only string (YYYY-MM-DD) to keep the
// unique key timezone-stable.
type DailyMetric struct {
	ID        uint           `gorm:"primaryKey" json:"id" example:"1"`
	CreatedAt time.Time      `json:"created_at" example:"2023-01-01T00:00:00Z"`
	UpdatedAt time.Time      `json:"updated_at" example:"2023-01-01T00:00:00Z"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	UserID    uint           `gorm:"index:idx_metrics_user_day,unique" json:"user_id" example:"1"`
	User      User           `gorm:"foreignKey:UserID" json:"-"`
	Day       string         `gorm:"type:varchar(10);index:idx_metrics_user_day,unique" json:"day" example:"2023-01-01"`

	Steps        *float64 `json:"steps" example:"8200"`
	SleepMinutes *float64 `json:"sleep_minutes" example:"420"`
	HrAvg        *float64 `gorm:"column:hr_avg" json:"hr_avg" example:"72"`
	HrvAvg       *float64 `gorm:"column:hrv_avg" json:"hrv_avg" example:"48"`
	Rhr          *float64 `gorm:"column:rhr" json:"rhr" example:"58"`
}

func (m *DailyMetric) TableName() string {
	return "metrics"
}

// WearableSummary compresses recent metric rows into the scorers' inputs:
// 30-day RHR/HRV means, 7-day sleep debt against an 8h/night target and
// 7-day workout minutes.
type WearableSummary struct {
	AvgRhr          *float64 `json:"avg_rhr"`
	AvgHrv          *float64 `json:"avg_hrv"`
	SleepDebtHours  *float64 `json:"sleep_debt_hours"`
	ActivityMinutes *float64 `json:"activity_minutes"`
}

// MetricBaselines are 30-day means returned alongside the contextual
// risk so the dashboard can show "vs baseline" deltas.
type MetricBaselines struct {
	RhrMean          *float64 `json:"rhr_mean"`
	HrvMean          *float64 `json:"hrv_mean"`
	SleepMinutesMean *float64 `json:"sleep_minutes_mean"`
}

// DayFlag is a same-day threshold flag derived from the latest metric row.
type DayFlag struct {
	FlagType  string `json:"flag_type"`
	Severity  int    `json:"severity"`
	Rationale string `json:"rationale"`
}
