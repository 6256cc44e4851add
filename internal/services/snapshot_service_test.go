package services

import (
	"context"
	"testing"

	"subhealth/internal/mocks"
	"subhealth/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func fptr(v float64) *float64 { return &v }
func iptr(v int) *int         { return &v }
func sptr(v string) *string   { return &v }

type snapshotMocks struct {
	lab       *mocks.MockLabRepository
	vitals    *mocks.MockVitalsRepository
	lifestyle *mocks.MockLifestyleRepository
	allergy   *mocks.MockAllergyRepository
	family    *mocks.MockFamilyHistoryRepository
	metrics   *mocks.MockMetricsRepository
}

func newSnapshotService() (*SnapshotService, *snapshotMocks) {
	m := &snapshotMocks{
		lab:       new(mocks.MockLabRepository),
		vitals:    new(mocks.MockVitalsRepository),
		lifestyle: new(mocks.MockLifestyleRepository),
		allergy:   new(mocks.MockAllergyRepository),
		family:    new(mocks.MockFamilyHistoryRepository),
		metrics:   new(mocks.MockMetricsRepository),
	}
	svc := NewSnapshotService(m.lab, m.vitals, m.lifestyle, m.allergy, m.family, m.metrics)
	return svc, m
}

func TestBuildContextAllCategoriesAbsent(t *testing.T) {
	svc, m := newSnapshotService()

	m.lab.On("GetLatestByUserID", uint(1)).Return(nil, nil)
	m.vitals.On("GetLatestByUserID", uint(1)).Return(nil, nil)
	m.lifestyle.On("GetProfileByUserID", uint(1)).Return(nil, nil)
	m.allergy.On("GetLabResultsByUserID", uint(1)).Return([]models.AllergyLabResult{}, nil)
	m.allergy.On("GetSymptomReportByUserID", uint(1)).Return(nil, nil)
	m.family.On("GetByUserID", uint(1)).Return([]models.FamilyHistoryRecord{}, nil)
	m.metrics.On("GetSinceDay", uint(1), mock.AnythingOfType("string")).Return([]models.DailyMetric{}, nil)

	ctx, err := svc.BuildContext(context.Background(), 1)
	require.NoError(t, err)

	assert.Nil(t, ctx.Labs)
	assert.Nil(t, ctx.Vitals)
	assert.Nil(t, ctx.Lifestyle)
	assert.Nil(t, ctx.Allergies)
	assert.Nil(t, ctx.Family)
	assert.Nil(t, ctx.Wearable)
}

func TestGetAllergySummaryMaps(t *testing.T) {
	svc, m := newSnapshotService()

	rows := []models.AllergyLabResult{
		{TestName: "birch pollen", IgEKuL: fptr(18.2), Class: iptr(4)},
		{TestName: "house dust mite", IgEKuL: fptr(6.1), Class: iptr(3)},
		{TestName: "cat dander", IgEKuL: fptr(42.0), Class: iptr(2)},
	}
	report := &models.AllergySymptomReport{
		Severity:  sptr("moderate"),
		Frequency: sptr("often"),
	}
	m.allergy.On("GetLabResultsByUserID", uint(1)).Return(rows, nil)
	m.allergy.On("GetSymptomReportByUserID", uint(1)).Return(report, nil)

	summary, err := svc.GetAllergySummary(1)
	require.NoError(t, err)
	require.NotNil(t, summary)

	// Peak IgE across the panel, not the sum.
	require.NotNil(t, summary.IgETotalKuL)
	assert.InDelta(t, 42.0, *summary.IgETotalKuL, 1e-9)

	assert.Equal(t, []string{"birch pollen", "house dust mite"}, summary.StrongSensitizers)

	// max(moderate 0.6, often 0.7) = 0.7
	require.NotNil(t, summary.SymptomScore)
	assert.InDelta(t, 0.7, *summary.SymptomScore, 1e-9)
}

func TestGetAllergySummarySeverityFrequencyTable(t *testing.T) {
	tests := []struct {
		severity  *string
		frequency *string
		want      float64
	}{
		{sptr("mild"), sptr("rarely"), 0.3},
		{sptr("mild"), sptr("daily"), 1.0},
		{sptr("strong"), sptr("sometimes"), 0.8},
		{sptr("Strong"), nil, 0.8},
		{nil, sptr("often"), 0.7},
	}

	for _, tt := range tests {
		svc, m := newSnapshotService()
		m.allergy.On("GetLabResultsByUserID", uint(1)).Return([]models.AllergyLabResult{}, nil)
		m.allergy.On("GetSymptomReportByUserID", uint(1)).Return(&models.AllergySymptomReport{
			Severity:  tt.severity,
			Frequency: tt.frequency,
		}, nil)

		summary, err := svc.GetAllergySummary(1)
		require.NoError(t, err)
		require.NotNil(t, summary)
		require.NotNil(t, summary.SymptomScore)
		assert.InDelta(t, tt.want, *summary.SymptomScore, 1e-9)
	}
}

func TestGetAllergySummaryUnknownLevelsYieldNoScore(t *testing.T) {
	svc, m := newSnapshotService()
	m.allergy.On("GetLabResultsByUserID", uint(1)).Return([]models.AllergyLabResult{}, nil)
	m.allergy.On("GetSymptomReportByUserID", uint(1)).Return(&models.AllergySymptomReport{
		Severity: sptr("catastrophic"),
	}, nil)

	summary, err := svc.GetAllergySummary(1)
	require.NoError(t, err)
	require.NotNil(t, summary)
	assert.Nil(t, summary.SymptomScore)
}

func TestGetFamilySummaryFlags(t *testing.T) {
	svc, m := newSnapshotService()

	records := []models.FamilyHistoryRecord{
		{Condition: "Type 2 Diabetes", Relation: "father"},
		{Condition: "stroke", Relation: "grandmother"},
		{Condition: "Hashimoto thyroiditis", Relation: "sister"},
	}
	m.family.On("GetByUserID", uint(1)).Return(records, nil)

	summary, err := svc.GetFamilySummary(1)
	require.NoError(t, err)
	require.NotNil(t, summary)

	assert.True(t, summary.HasDiabetes)
	assert.True(t, summary.HasCVD)
	assert.True(t, summary.HasAutoimmune)
	assert.False(t, summary.HasCKD)
}

func TestGetFamilySummaryNilWithoutRecords(t *testing.T) {
	svc, m := newSnapshotService()
	m.family.On("GetByUserID", uint(1)).Return([]models.FamilyHistoryRecord{}, nil)

	summary, err := svc.GetFamilySummary(1)
	require.NoError(t, err)
	assert.Nil(t, summary)
}

func TestParseCreatineFlag(t *testing.T) {
	tests := []struct {
		name string
		raw  *string
		want bool
	}{
		{"nil blob", nil, false},
		{"empty blob", sptr(""), false},
		{"invalid json", sptr("{not json"), false},
		{"nested using true", sptr(`{"creatine":{"using":true}}`), true},
		{"nested using false", sptr(`{"creatine":{"using":false}}`), false},
		{"bare bool", sptr(`{"creatine":true}`), true},
		{"monohydrate key", sptr(`{"creatine_monohydrate":true}`), true},
		{"creatine-like key", sptr(`{"creatine_like":true}`), true},
		{"unrelated supplements", sptr(`{"vitamin_d":{"using":true}}`), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseCreatineFlag(tt.raw))
		})
	}
}

func TestGetWearableSummary(t *testing.T) {
	svc, m := newSnapshotService()

	today := dayStringDaysAgo(0)
	yesterday := dayStringDaysAgo(1)
	rows := []models.DailyMetric{
		{Day: today, Rhr: fptr(80), HrvAvg: fptr(40), SleepMinutes: fptr(360)},
		{Day: yesterday, Rhr: fptr(70), HrvAvg: fptr(50), SleepMinutes: fptr(420)},
	}
	m.metrics.On("GetSinceDay", uint(1), mock.AnythingOfType("string")).Return(rows, nil)
	m.lifestyle.On("GetWorkoutsSince", uint(1), mock.AnythingOfType("time.Time")).
		Return([]models.LifestyleWorkout{{Minutes: 45}, {Minutes: 30}}, nil)

	summary, err := svc.GetWearableSummary(1)
	require.NoError(t, err)
	require.NotNil(t, summary)

	assert.InDelta(t, 75, *summary.AvgRhr, 1e-9)
	assert.InDelta(t, 45, *summary.AvgHrv, 1e-9)

	// 7-day target is 56h; two nights totalling 13h leaves 43h of debt.
	assert.InDelta(t, 43, *summary.SleepDebtHours, 1e-9)
	assert.InDelta(t, 75, *summary.ActivityMinutes, 1e-9)
}

func TestGetWearableSummaryNilWithoutRows(t *testing.T) {
	svc, m := newSnapshotService()
	m.metrics.On("GetSinceDay", uint(1), mock.AnythingOfType("string")).Return([]models.DailyMetric{}, nil)

	summary, err := svc.GetWearableSummary(1)
	require.NoError(t, err)
	assert.Nil(t, summary)
}

func TestGetDayFlags(t *testing.T) {
	svc, m := newSnapshotService()

	rows := []models.DailyMetric{
		{Day: dayStringDaysAgo(0), SleepMinutes: fptr(280), HrvAvg: fptr(35), Rhr: fptr(85)},
		{Day: dayStringDaysAgo(1), SleepMinutes: fptr(480), HrvAvg: fptr(60), Rhr: fptr(58)},
	}
	m.metrics.On("GetSinceDay", uint(1), mock.AnythingOfType("string")).Return(rows, nil)

	flags, err := svc.GetDayFlags(1)
	require.NoError(t, err)
	require.Len(t, flags, 3)

	types := []string{flags[0].FlagType, flags[1].FlagType, flags[2].FlagType}
	assert.Contains(t, types, "sleep_debt")
	assert.Contains(t, types, "low_hrv")
	assert.Contains(t, types, "elevated_rhr")
}

func TestGetDayFlagsQuietDay(t *testing.T) {
	svc, m := newSnapshotService()

	rows := []models.DailyMetric{
		{Day: dayStringDaysAgo(0), SleepMinutes: fptr(450), HrvAvg: fptr(55), Rhr: fptr(60)},
	}
	m.metrics.On("GetSinceDay", uint(1), mock.AnythingOfType("string")).Return(rows, nil)

	flags, err := svc.GetDayFlags(1)
	require.NoError(t, err)
	assert.Empty(t, flags)
}
