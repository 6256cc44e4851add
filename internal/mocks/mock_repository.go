package mocks

import (
	"time"

	"subhealth/internal/models"

	"github.com/stretchr/testify/mock"
)

// Shared MockLabRepository
type MockLabRepository struct {
	mock.Mock
}

func (m *MockLabRepository) GetLatestByUserID(userID uint) (*models.LabsCore, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LabsCore), args.Error(1)
}

func (m *MockLabRepository) SavePanel(panel *models.LabPanel) error {
	args := m.Called(panel)
	return args.Error(0)
}

// Shared MockVitalsRepository
type MockVitalsRepository struct {
	mock.Mock
}

func (m *MockVitalsRepository) GetLatestByUserID(userID uint) (*models.VitalsSnapshot, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.VitalsSnapshot), args.Error(1)
}

func (m *MockVitalsRepository) SaveRecord(record *models.VitalsRecord) error {
	args := m.Called(record)
	return args.Error(0)
}

// Shared MockLifestyleRepository
type MockLifestyleRepository struct {
	mock.Mock
}

func (m *MockLifestyleRepository) GetProfileByUserID(userID uint) (*models.LifestyleProfile, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LifestyleProfile), args.Error(1)
}

func (m *MockLifestyleRepository) GetWorkoutsSince(userID uint, since time.Time) ([]models.LifestyleWorkout, error) {
	args := m.Called(userID, since)
	return args.Get(0).([]models.LifestyleWorkout), args.Error(1)
}

func (m *MockLifestyleRepository) CountWorkoutsSince(userID uint, since time.Time) (int64, error) {
	args := m.Called(userID, since)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLifestyleRepository) SaveProfile(profile *models.LifestyleProfile) error {
	args := m.Called(profile)
	return args.Error(0)
}

func (m *MockLifestyleRepository) SaveWorkout(workout *models.LifestyleWorkout) error {
	args := m.Called(workout)
	return args.Error(0)
}

// Shared MockAllergyRepository
type MockAllergyRepository struct {
	mock.Mock
}

func (m *MockAllergyRepository) GetLabResultsByUserID(userID uint) ([]models.AllergyLabResult, error) {
	args := m.Called(userID)
	return args.Get(0).([]models.AllergyLabResult), args.Error(1)
}

func (m *MockAllergyRepository) GetSymptomReportByUserID(userID uint) (*models.AllergySymptomReport, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AllergySymptomReport), args.Error(1)
}

func (m *MockAllergyRepository) SaveLabResult(result *models.AllergyLabResult) error {
	args := m.Called(result)
	return args.Error(0)
}

func (m *MockAllergyRepository) SaveSymptomReport(report *models.AllergySymptomReport) error {
	args := m.Called(report)
	return args.Error(0)
}

// Shared MockFamilyHistoryRepository
type MockFamilyHistoryRepository struct {
	mock.Mock
}

func (m *MockFamilyHistoryRepository) GetByUserID(userID uint) ([]models.FamilyHistoryRecord, error) {
	args := m.Called(userID)
	return args.Get(0).([]models.FamilyHistoryRecord), args.Error(1)
}

func (m *MockFamilyHistoryRepository) SaveRecord(record *models.FamilyHistoryRecord) error {
	args := m.Called(record)
	return args.Error(0)
}

// Shared MockGeneticRepository
type MockGeneticRepository struct {
	mock.Mock
}

func (m *MockGeneticRepository) GetByUserID(userID uint) ([]models.GeneticMarker, error) {
	args := m.Called(userID)
	return args.Get(0).([]models.GeneticMarker), args.Error(1)
}

func (m *MockGeneticRepository) SaveMarker(marker *models.GeneticMarker) error {
	args := m.Called(marker)
	return args.Error(0)
}

// Shared MockMetricsRepository
type MockMetricsRepository struct {
	mock.Mock
}

func (m *MockMetricsRepository) GetSinceDay(userID uint, sinceDay string) ([]models.DailyMetric, error) {
	args := m.Called(userID, sinceDay)
	return args.Get(0).([]models.DailyMetric), args.Error(1)
}

func (m *MockMetricsRepository) GetByDay(userID uint, day string) (*models.DailyMetric, error) {
	args := m.Called(userID, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DailyMetric), args.Error(1)
}

func (m *MockMetricsRepository) SaveMetric(metric *models.DailyMetric) error {
	args := m.Called(metric)
	return args.Error(0)
}

// Shared MockRiskScoreRepository
type MockRiskScoreRepository struct {
	mock.Mock
}

func (m *MockRiskScoreRepository) GetLatestScore(userID uint, modelVersion string) (*models.RiskScore, error) {
	args := m.Called(userID, modelVersion)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RiskScore), args.Error(1)
}

func (m *MockRiskScoreRepository) GetScoreSeries(userID uint, modelVersion string, startDay, endDay string) ([]models.RiskScore, error) {
	args := m.Called(userID, modelVersion, startDay, endDay)
	return args.Get(0).([]models.RiskScore), args.Error(1)
}

func (m *MockRiskScoreRepository) SaveScoreWithContributions(score *models.RiskScore, contributions []models.RiskContribution) error {
	args := m.Called(score, contributions)
	return args.Error(0)
}

func (m *MockRiskScoreRepository) GetContributions(userID uint, day, modelVersion string) ([]models.RiskContribution, error) {
	args := m.Called(userID, day, modelVersion)
	return args.Get(0).([]models.RiskContribution), args.Error(1)
}

func (m *MockRiskScoreRepository) SaveScore(score *models.RiskScore) error {
	args := m.Called(score)
	return args.Error(0)
}

// Shared MockRecomputeJobRepository
type MockRecomputeJobRepository struct {
	mock.Mock
}

func (m *MockRecomputeJobRepository) SaveJob(job *models.RecomputeJob) error {
	args := m.Called(job)
	return args.Error(0)
}

func (m *MockRecomputeJobRepository) GetJobByID(id string) (*models.RecomputeJob, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RecomputeJob), args.Error(1)
}

func (m *MockRecomputeJobRepository) UpdateJobStatus(jobID, status string, errorMessage *string) error {
	args := m.Called(jobID, status, errorMessage)
	return args.Error(0)
}

func (m *MockRecomputeJobRepository) MarkJobCompleted(jobID string) error {
	args := m.Called(jobID)
	return args.Error(0)
}

func (m *MockRecomputeJobRepository) GetJobsByUserID(userID uint, limit int) ([]*models.RecomputeJob, error) {
	args := m.Called(userID, limit)
	return args.Get(0).([]*models.RecomputeJob), args.Error(1)
}

func (m *MockRecomputeJobRepository) GetPendingJobs(limit int) ([]*models.RecomputeJob, error) {
	args := m.Called(limit)
	return args.Get(0).([]*models.RecomputeJob), args.Error(1)
}

func (m *MockRecomputeJobRepository) GetActiveJobsCount(userID uint) (int64, error) {
	args := m.Called(userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRecomputeJobRepository) CleanupOldJobs(olderThan time.Time) error {
	args := m.Called(olderThan)
	return args.Error(0)
}
