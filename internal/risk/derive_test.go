package risk

import (
	"testing"

	"subhealth/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLabRiskNilWithoutData(t *testing.T) {
	assert.Nil(t, LabRisk(nil))
	assert.Nil(t, LabRisk(&models.LabsCore{}))

	// A panel with only unscored analytes still yields nil.
	assert.Nil(t, LabRisk(&models.LabsCore{AltUL: fptr(22), BunMgDl: fptr(14)}))
}

func TestLabRiskAveragesPresentBands(t *testing.T) {
	tests := []struct {
		name string
		labs *models.LabsCore
		want float64
	}{
		{
			name: "crp only, low",
			labs: &models.LabsCore{CrpMgL: fptr(0.5)},
			want: 0.1,
		},
		{
			name: "hba1c prediabetic only",
			labs: &models.LabsCore{HbA1cPercent: fptr(6.0)},
			want: 0.55,
		},
		{
			name: "crp moderate plus hba1c prediabetic",
			labs: &models.LabsCore{CrpMgL: fptr(2.0), HbA1cPercent: fptr(6.0)},
			want: (0.4 + 0.55) / 2,
		},
		{
			name: "high ldl to hdl ratio",
			labs: &models.LabsCore{LdlMgDl: fptr(160), HdlMgDl: fptr(40)}, // ratio 4
			want: 0.8,
		},
		{
			name: "vitamin d deficient",
			labs: &models.LabsCore{VitD25OhNgMl: fptr(10)},
			want: 0.8,
		},
		{
			name: "everything good",
			labs: &models.LabsCore{
				CrpMgL:       fptr(0.4),
				HbA1cPercent: fptr(5.1),
				LdlMgDl:      fptr(90),
				HdlMgDl:      fptr(60),
				VitD25OhNgMl: fptr(40),
			},
			want: 0.1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LabRisk(tt.labs)
			require.NotNil(t, got)
			assert.InDelta(t, tt.want, *got, 1e-9)
		})
	}
}

func TestLabRiskIgnoresZeroHDL(t *testing.T) {
	got := LabRisk(&models.LabsCore{LdlMgDl: fptr(120), HdlMgDl: fptr(0)})
	assert.Nil(t, got)
}

func TestLifestyleScoreNilWithoutComponents(t *testing.T) {
	assert.Nil(t, LifestyleScore(nil, nil))
}

func TestLifestyleScoreSleepComponent(t *testing.T) {
	tests := []struct {
		sleep float64
		want  float64
	}{
		{8.0, 0.0},   // inside the 7-9 band
		{7.0, 0.0},   // band edge
		{6.0, 1.0 / 3}, // one hour short
		{4.0, 1.0},   // three hours short, capped
		{2.0, 1.0},   // beyond the cap
		{10.5, 0.5},  // oversleep counts too
	}
	for _, tt := range tests {
		got := LifestyleScore(fptr(tt.sleep), nil)
		require.NotNil(t, got)
		assert.InDelta(t, tt.want, *got, 1e-9, "sleep %v", tt.sleep)
	}
}

func TestLifestyleScoreWorkoutComponent(t *testing.T) {
	tests := []struct {
		workouts float64
		want     float64
	}{
		{5, 0.1},
		{4, 0.1},
		{2, 0.45},
		{1, 0.8},
		{0, 0.9},
	}
	for _, tt := range tests {
		got := LifestyleScore(nil, fptr(tt.workouts))
		require.NotNil(t, got)
		assert.InDelta(t, tt.want, *got, 1e-9, "workouts %v", tt.workouts)
	}
}

func TestLifestyleScoreAveragesBothComponents(t *testing.T) {
	// 6h sleep (1/3) and zero workouts (0.9) average to ~0.6167.
	got := LifestyleScore(fptr(6), fptr(0))
	require.NotNil(t, got)
	assert.InDelta(t, (1.0/3+0.9)/2, *got, 1e-9)
}

func TestGeneticPrior(t *testing.T) {
	assert.Nil(t, GeneticPrior(nil))
	assert.Nil(t, GeneticPrior([]models.GeneticMarker{}))

	apoe := []models.GeneticMarker{{Marker: "APOE4"}}
	got := GeneticPrior(apoe)
	require.NotNil(t, got)
	assert.InDelta(t, 0.15, *got, 1e-9)

	// Casing and padding are tolerated.
	messy := []models.GeneticMarker{{Marker: " apoe4 "}}
	got = GeneticPrior(messy)
	require.NotNil(t, got)
	assert.InDelta(t, 0.15, *got, 1e-9)

	// Unknown markers fall back to their evidence level.
	unknownHigh := []models.GeneticMarker{{Marker: "RS999", EvidenceLevel: sptr("high")}}
	got = GeneticPrior(unknownHigh)
	require.NotNil(t, got)
	assert.InDelta(t, 0.15, *got, 1e-9)

	unknownNone := []models.GeneticMarker{{Marker: "RS999"}}
	got = GeneticPrior(unknownNone)
	require.NotNil(t, got)
	assert.Equal(t, 0.0, *got)

	// BRCA dominates APOE4.
	mixed := []models.GeneticMarker{{Marker: "APOE4"}, {Marker: "BRCA1"}}
	got = GeneticPrior(mixed)
	require.NotNil(t, got)
	assert.InDelta(t, 0.25, *got, 1e-9)
}

func TestFamilyPrior(t *testing.T) {
	assert.Nil(t, FamilyPrior(nil))

	tests := []struct {
		name    string
		records []models.FamilyHistoryRecord
		want    float64
	}{
		{
			name:    "father with diabetes",
			records: []models.FamilyHistoryRecord{{Condition: "type 2 diabetes", Relation: "father"}},
			want:    0.2,
		},
		{
			name:    "sibling with heart disease",
			records: []models.FamilyHistoryRecord{{Condition: "coronary heart disease", Relation: "sister"}},
			want:    0.25 * 0.8,
		},
		{
			name:    "cousin with kidney disease",
			records: []models.FamilyHistoryRecord{{Condition: "chronic kidney disease", Relation: "cousin"}},
			want:    0.2 * 0.2,
		},
		{
			name:    "unknown relation gets the middle multiplier",
			records: []models.FamilyHistoryRecord{{Condition: "stroke", Relation: "great-uncle twice removed"}},
			want:    0.25 * 0.5,
		},
		{
			name: "max over records wins",
			records: []models.FamilyHistoryRecord{
				{Condition: "asthma", Relation: "cousin"},
				{Condition: "stroke", Relation: "mother"},
			},
			want: 0.25,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FamilyPrior(tt.records)
			require.NotNil(t, got)
			assert.InDelta(t, tt.want, *got, 1e-9)
		})
	}
}
