package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"subhealth/internal/mocks"
	"subhealth/internal/models"
	"subhealth/internal/risk"
	"subhealth/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func fptr(v float64) *float64 { return &v }

type riskControllerMocks struct {
	lab       *mocks.MockLabRepository
	vitals    *mocks.MockVitalsRepository
	lifestyle *mocks.MockLifestyleRepository
	allergy   *mocks.MockAllergyRepository
	family    *mocks.MockFamilyHistoryRepository
	genetic   *mocks.MockGeneticRepository
	metrics   *mocks.MockMetricsRepository
	riskScore *mocks.MockRiskScoreRepository
	jobs      *mocks.MockRecomputeJobRepository
}

func setupRiskController(t *testing.T) (*RiskController, *riskControllerMocks) {
	t.Helper()

	m := &riskControllerMocks{
		lab:       new(mocks.MockLabRepository),
		vitals:    new(mocks.MockVitalsRepository),
		lifestyle: new(mocks.MockLifestyleRepository),
		allergy:   new(mocks.MockAllergyRepository),
		family:    new(mocks.MockFamilyHistoryRepository),
		genetic:   new(mocks.MockGeneticRepository),
		metrics:   new(mocks.MockMetricsRepository),
		riskScore: new(mocks.MockRiskScoreRepository),
		jobs:      new(mocks.MockRecomputeJobRepository),
	}

	engine, err := risk.NewEngine(risk.DefaultEngineConfig())
	require.NoError(t, err)
	fuser, err := risk.NewFuser(risk.DefaultFusionConfig())
	require.NoError(t, err)

	snapshots := services.NewSnapshotService(m.lab, m.vitals, m.lifestyle, m.allergy, m.family, m.metrics)
	riskService := services.NewRiskService(snapshots, engine)
	contextual := services.NewContextualRiskService(
		snapshots, m.lab, m.lifestyle, m.genetic, m.family, m.riskScore, fuser)

	// The worker is constructed but never started: recompute submission
	// failures are part of what the handler tests cover.
	worker := services.NewRecomputeWorker(m.jobs, contextual, nil, 1)

	controller := NewRiskController(riskService, contextual, m.jobs, worker, nil)
	return controller, m
}

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func addAuthMiddleware(userID uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Next()
	}
}

func parseEnvelope(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func stubEmptySnapshots(m *riskControllerMocks) {
	m.lab.On("GetLatestByUserID", uint(1)).Return(nil, nil)
	m.vitals.On("GetLatestByUserID", uint(1)).Return(nil, nil)
	m.lifestyle.On("GetProfileByUserID", uint(1)).Return(nil, nil)
	m.allergy.On("GetLabResultsByUserID", uint(1)).Return([]models.AllergyLabResult{}, nil)
	m.allergy.On("GetSymptomReportByUserID", uint(1)).Return(nil, nil)
	m.family.On("GetByUserID", uint(1)).Return([]models.FamilyHistoryRecord{}, nil)
	m.metrics.On("GetSinceDay", uint(1), mock.AnythingOfType("string")).Return([]models.DailyMetric{}, nil)
}

func TestGetMultimodalRiskUnauthorized(t *testing.T) {
	controller, _ := setupRiskController(t)
	router := setupTestRouter()
	router.GET("/risk/multimodal", controller.GetMultimodalRisk)

	req := httptest.NewRequest(http.MethodGet, "/risk/multimodal", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetMultimodalRiskScoresConditions(t *testing.T) {
	controller, m := setupRiskController(t)
	router := setupTestRouter()
	router.GET("/risk/multimodal", addAuthMiddleware(1), controller.GetMultimodalRisk)

	m.lab.On("GetLatestByUserID", uint(1)).Return(&models.LabsCore{HbA1cPercent: fptr(6.0)}, nil)
	m.vitals.On("GetLatestByUserID", uint(1)).Return(nil, nil)
	m.lifestyle.On("GetProfileByUserID", uint(1)).Return(nil, nil)
	m.allergy.On("GetLabResultsByUserID", uint(1)).Return([]models.AllergyLabResult{}, nil)
	m.allergy.On("GetSymptomReportByUserID", uint(1)).Return(nil, nil)
	m.family.On("GetByUserID", uint(1)).Return([]models.FamilyHistoryRecord{}, nil)
	m.metrics.On("GetSinceDay", uint(1), mock.AnythingOfType("string")).Return([]models.DailyMetric{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/risk/multimodal", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	body := parseEnvelope(t, w)
	assert.Equal(t, "success", body["status"])

	data := body["data"].(map[string]interface{})
	conditions := data["conditions"].([]interface{})
	require.Len(t, conditions, 1)

	cond := conditions[0].(map[string]interface{})
	assert.Equal(t, "prediabetes", cond["condition"])
	assert.InDelta(t, 0.5, cond["index"].(float64), 1e-9)
	assert.Equal(t, "moderate", cond["tier"])
	assert.NotEmpty(t, data["disclaimer"])
}

func TestGetMultimodalRiskNoDataReturnsEmptyConditions(t *testing.T) {
	controller, m := setupRiskController(t)
	router := setupTestRouter()
	router.GET("/risk/multimodal", addAuthMiddleware(1), controller.GetMultimodalRisk)

	stubEmptySnapshots(m)

	req := httptest.NewRequest(http.MethodGet, "/risk/multimodal", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	body := parseEnvelope(t, w)
	data := body["data"].(map[string]interface{})

	conditions := data["conditions"].([]interface{})
	assert.Empty(t, conditions)

	overall := data["overall"].(map[string]interface{})
	assert.Equal(t, 0.0, overall["overall_index"].(float64))
	assert.Equal(t, "low", overall["overall_tier"])
}

func TestGetContextualRiskComputesAndPersists(t *testing.T) {
	controller, m := setupRiskController(t)
	router := setupTestRouter()
	router.GET("/risk/contextual", addAuthMiddleware(1), controller.GetContextualRisk)

	stubEmptySnapshots(m)
	m.riskScore.On("GetLatestScore", uint(1), models.ModelVersionWearable).
		Return(&models.RiskScore{RiskScore: 0.5}, nil)
	m.lifestyle.On("CountWorkoutsSince", uint(1), mock.AnythingOfType("time.Time")).Return(int64(0), nil)
	m.genetic.On("GetByUserID", uint(1)).Return([]models.GeneticMarker{}, nil)
	m.riskScore.On("SaveScoreWithContributions",
		mock.AnythingOfType("*models.RiskScore"),
		mock.AnythingOfType("[]models.RiskContribution"),
	).Return(nil)

	req := httptest.NewRequest(http.MethodGet, "/risk/contextual", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	body := parseEnvelope(t, w)
	data := body["data"].(map[string]interface{})

	assert.InDelta(t, 0.42*0.5, data["risk_total"].(float64), 1e-9)
	assert.Equal(t, time.Now().UTC().Format("2006-01-02"), data["day"])

	m.riskScore.AssertCalled(t, "SaveScoreWithContributions",
		mock.AnythingOfType("*models.RiskScore"),
		mock.AnythingOfType("[]models.RiskContribution"))
}

func TestGetContributionsRejectsBadDay(t *testing.T) {
	controller, _ := setupRiskController(t)
	router := setupTestRouter()
	router.GET("/risk/contextual/contributions", addAuthMiddleware(1), controller.GetContributions)

	req := httptest.NewRequest(http.MethodGet, "/risk/contextual/contributions?day=yesterday", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetContributionsReadsStoredRows(t *testing.T) {
	controller, m := setupRiskController(t)
	router := setupTestRouter()
	router.GET("/risk/contextual/contributions", addAuthMiddleware(1), controller.GetContributions)

	rows := []models.RiskContribution{
		{UserID: 1, Day: "2026-08-28", ModelVersion: models.ModelVersionFusion, Feature: "wearable", Value: 0.21},
		{UserID: 1, Day: "2026-08-28", ModelVersion: models.ModelVersionFusion, Feature: "lab", Value: 0.14},
	}
	m.riskScore.On("GetContributions", uint(1), "2026-08-28", models.ModelVersionFusion).Return(rows, nil)

	req := httptest.NewRequest(http.MethodGet, "/risk/contextual/contributions?day=2026-08-28", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	body := parseEnvelope(t, w)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "2026-08-28", data["day"])
	assert.Len(t, data["contributions"].([]interface{}), 2)
}

func TestGetScoreSeriesValidation(t *testing.T) {
	controller, _ := setupRiskController(t)
	router := setupTestRouter()
	router.GET("/risk/score-series", addAuthMiddleware(1), controller.GetScoreSeries)

	badFormat := httptest.NewRequest(http.MethodGet, "/risk/score-series?start=last-month", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, badFormat)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	inverted := httptest.NewRequest(http.MethodGet, "/risk/score-series?start=2026-08-20&end=2026-08-10", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, inverted)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetScoreSeriesReturnsStoredScores(t *testing.T) {
	controller, m := setupRiskController(t)
	router := setupTestRouter()
	router.GET("/risk/score-series", addAuthMiddleware(1), controller.GetScoreSeries)

	series := []models.RiskScore{
		{UserID: 1, Day: "2026-08-10", ModelVersion: models.ModelVersionFusion, RiskScore: 0.4},
		{UserID: 1, Day: "2026-08-11", ModelVersion: models.ModelVersionFusion, RiskScore: 0.45},
	}
	m.riskScore.On("GetScoreSeries", uint(1), models.ModelVersionFusion, "2026-08-10", "2026-08-12").
		Return(series, nil)

	req := httptest.NewRequest(http.MethodGet, "/risk/score-series?start=2026-08-10&end=2026-08-12", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	body := parseEnvelope(t, w)
	data := body["data"].(map[string]interface{})
	assert.Len(t, data["scores"].([]interface{}), 2)
}

func TestRequestRecomputeWorkerDown(t *testing.T) {
	controller, m := setupRiskController(t)
	router := setupTestRouter()
	router.POST("/risk/recompute", addAuthMiddleware(1), controller.RequestRecompute)

	m.jobs.On("SaveJob", mock.AnythingOfType("*models.RecomputeJob")).Return(nil)
	m.jobs.On("UpdateJobStatus", mock.AnythingOfType("string"), models.JobStatusFailed,
		mock.AnythingOfType("*string")).Return(nil)

	req := httptest.NewRequest(http.MethodPost, "/risk/recompute", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	// The worker was never started, so submission fails and the job is
	// marked failed rather than left pending forever.
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	m.jobs.AssertCalled(t, "UpdateJobStatus", mock.AnythingOfType("string"),
		models.JobStatusFailed, mock.AnythingOfType("*string"))
}

func TestGetJobStatusOwnerOnly(t *testing.T) {
	controller, m := setupRiskController(t)
	router := setupTestRouter()
	router.GET("/risk/job/:job_id", addAuthMiddleware(1), controller.GetJobStatus)

	job := &models.RecomputeJob{ID: "abc-123", UserID: 2, Status: models.JobStatusCompleted}
	m.jobs.On("GetJobByID", "abc-123").Return(job, nil)

	req := httptest.NewRequest(http.MethodGet, "/risk/job/abc-123", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestGetJobStatusFound(t *testing.T) {
	controller, m := setupRiskController(t)
	router := setupTestRouter()
	router.GET("/risk/job/:job_id", addAuthMiddleware(1), controller.GetJobStatus)

	job := &models.RecomputeJob{ID: "abc-123", UserID: 1, Status: models.JobStatusProcessing}
	m.jobs.On("GetJobByID", "abc-123").Return(job, nil)

	req := httptest.NewRequest(http.MethodGet, "/risk/job/abc-123", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	body := parseEnvelope(t, w)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "abc-123", data["id"])
	assert.Equal(t, models.JobStatusProcessing, data["status"])
}
