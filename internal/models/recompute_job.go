package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RecomputeJob tracks one queued contextual-risk recompute for a user.
type RecomputeJob struct {
	ID           string         `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID       uint           `gorm:"not null;index" json:"user_id"`
	Status       string         `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	ErrorMessage *string        `gorm:"type:text" json:"error_message,omitempty"`
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	CompletedAt  *time.Time     `json:"completed_at,omitempty"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

const (
	JobStatusPending    = "pending"
	JobStatusProcessing = "processing"
	JobStatusCompleted  = "completed"
	JobStatusFailed     = "failed"
)

func (j *RecomputeJob) TableName() string {
	return "recompute_jobs"
}

// NewRecomputeJob creates a pending job with a fresh UUID.
func NewRecomputeJob(userID uint) *RecomputeJob {
	return &RecomputeJob{
		ID:     uuid.NewString(),
		UserID: userID,
		Status: JobStatusPending,
	}
}

// RecomputeJobRequest is the in-flight shape handed to the worker pool.
type RecomputeJobRequest struct {
	JobID  string `json:"job_id"`
	UserID uint   `json:"user_id"`
}
