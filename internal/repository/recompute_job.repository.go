package repository

import (
	"fmt"
	"time"

	"subhealth/internal/models"

	"gorm.io/gorm"
)

type RecomputeJobRepository interface {
	SaveJob(job *models.RecomputeJob) error
	GetJobByID(id string) (*models.RecomputeJob, error)
	UpdateJobStatus(jobID, status string, errorMessage *string) error
	MarkJobCompleted(jobID string) error
	GetJobsByUserID(userID uint, limit int) ([]*models.RecomputeJob, error)
	GetPendingJobs(limit int) ([]*models.RecomputeJob, error)
	GetActiveJobsCount(userID uint) (int64, error)
	CleanupOldJobs(olderThan time.Time) error
}

type recomputeJobRepository struct {
	db *gorm.DB
}

func NewRecomputeJobRepository(db *gorm.DB) RecomputeJobRepository {
	return &recomputeJobRepository{db}
}

func (r *recomputeJobRepository) SaveJob(job *models.RecomputeJob) error {
	if job.CreatedAt.IsZero() {
		job.CreatedAt = time.Now()
	}
	job.UpdatedAt = time.Now()
	if err := r.db.Create(job).Error; err != nil {
		return fmt.Errorf("recompute_jobs: create: %w", err)
	}
	return nil
}

func (r *recomputeJobRepository) GetJobByID(id string) (*models.RecomputeJob, error) {
	var job models.RecomputeJob
	err := r.db.Where("id = ?", id).First(&job).Error
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *recomputeJobRepository) UpdateJobStatus(jobID, status string, errorMessage *string) error {
	updates := map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	}
	if errorMessage != nil {
		updates["error_message"] = *errorMessage
	}
	err := r.db.Model(&models.RecomputeJob{}).Where("id = ?", jobID).Updates(updates).Error
	if err != nil {
		return fmt.Errorf("recompute_jobs: update status: %w", err)
	}
	return nil
}

func (r *recomputeJobRepository) MarkJobCompleted(jobID string) error {
	now := time.Now()
	err := r.db.Model(&models.RecomputeJob{}).Where("id = ?", jobID).Updates(map[string]interface{}{
		"status":       models.JobStatusCompleted,
		"completed_at": &now,
		"updated_at":   now,
	}).Error
	if err != nil {
		return fmt.Errorf("recompute_jobs: mark completed: %w", err)
	}
	return nil
}

func (r *recomputeJobRepository) GetJobsByUserID(userID uint, limit int) ([]*models.RecomputeJob, error) {
	var jobs []*models.RecomputeJob
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&jobs).Error
	if err != nil {
		return nil, fmt.Errorf("recompute_jobs: for user %d: %w", userID, err)
	}
	return jobs, nil
}

func (r *recomputeJobRepository) GetPendingJobs(limit int) ([]*models.RecomputeJob, error) {
	var jobs []*models.RecomputeJob
	err := r.db.Where("status = ?", models.JobStatusPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&jobs).Error
	if err != nil {
		return nil, fmt.Errorf("recompute_jobs: pending: %w", err)
	}
	return jobs, nil
}

func (r *recomputeJobRepository) GetActiveJobsCount(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.RecomputeJob{}).
		Where("user_id = ? AND status IN ?", userID,
			[]string{models.JobStatusPending, models.JobStatusProcessing}).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("recompute_jobs: active count: %w", err)
	}
	return count, nil
}

func (r *recomputeJobRepository) CleanupOldJobs(olderThan time.Time) error {
	err := r.db.Where("created_at < ? AND status IN ?", olderThan,
		[]string{models.JobStatusCompleted, models.JobStatusFailed}).
		Delete(&models.RecomputeJob{}).Error
	if err != nil {
		return fmt.Errorf("recompute_jobs: cleanup: %w", err)
	}
	return nil
}
