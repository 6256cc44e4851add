package models

import (
	"time"

	"gorm.io/gorm"
)

// Condition identifiers emitted by the multimodal scorers.
const (
	ConditionPrediabetes       = "prediabetes"
	ConditionKidneyFunction    = "kidney_function"
	ConditionMetabolicStrain   = "metabolic_strain"
	ConditionThyroid           = "thyroid"
	ConditionCardioPattern     = "cardio_pattern"
	ConditionInflammatoryLoad  = "inflammatory_load"
	ConditionAllergyBurden     = "allergy_burden"
	ConditionAutonomicRecovery = "autonomic_recovery"
)

const (
	TierLow      = "low"
	TierModerate = "moderate"
	TierHigh     = "high"
)

// Model versions written to the score store. The wearable series is
// produced by the upstream ML pipeline; fusion rows are ours.
const (
	ModelVersionWearable = "wearable_v1"
	ModelVersionFusion   = "fusion_v1"
)

// MultimodalContext carries the per-domain snapshots for one user. Any
// pointer may be nil; a missing domain only silences its rules.
type MultimodalContext struct {
	Labs      *LabsCore             `json:"labs"`
	Vitals    *VitalsSnapshot       `json:"vitals"`
	Lifestyle *LifestyleSnapshot    `json:"lifestyle"`
	Allergies *AllergySummary       `json:"allergies"`
	Family    *FamilyHistorySummary `json:"family"`
	Wearable  *WearableSummary      `json:"wearable"`
}

// ConditionRisk is one scored pattern. Index is a 0..1 pattern-strength
// scalar, not a probability.
type ConditionRisk struct {
	Condition   string   `json:"condition"`
	Index       float64  `json:"index"`
	Tier        string   `json:"tier"`
	Reasons     []string `json:"reasons"`
	DataSources []string `json:"dataSources"`
}

type OverallIndex struct {
	OverallIndex float64 `json:"overall_index"`
	OverallTier  string  `json:"overall_tier"`
}

// MultimodalRiskResponse is the payload of GET /risk/multimodal.
type MultimodalRiskResponse struct {
	Overall    OverallIndex    `json:"overall"`
	Conditions []ConditionRisk `json:"conditions"`
	Disclaimer string          `json:"disclaimer"`
}

// FusionInputs are the five fuser inputs. Nil means the user has no
// relevant records for that source, which is not the same as a measured
// zero: nil inputs are excluded from attribution.
type FusionInputs struct {
	WearableRisk   *float64 `json:"wearableRisk"`
	LabRisk        *float64 `json:"labRisk"`
	LifestyleScore *float64 `json:"lifestyleScore"`
	GeneticPrior   *float64 `json:"geneticPrior"`
	FamilyPrior    *float64 `json:"familyPrior"`
}

// Contributor records how much one source moved risk_total.
type Contributor struct {
	Feature string  `json:"feature"`
	Value   float64 `json:"value"`
}

// ContextualRiskResponse is the payload of GET /risk/contextual.
type ContextualRiskResponse struct {
	RiskTotal    float64         `json:"risk_total"`
	Contributors []Contributor   `json:"contributors"`
	Baselines    MetricBaselines `json:"baselines"`
	Flags        []DayFlag       `json:"flags"`
	Inputs       FusionInputs    `json:"inputs"`
	Day          string          `json:"day"`
	Timestamp    time.Time       `json:"timestamp"`
}

// RiskScore is a persisted per-day score row, one per model version.
type RiskScore struct {
	ID           uint           `gorm:"primaryKey" json:"id" example:"1"`
	CreatedAt    time.Time      `json:"created_at" example:"2023-01-01T00:00:00Z"`
	UpdatedAt    time.Time      `json:"updated_at" example:"2023-01-01T00:00:00Z"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	UserID       uint           `gorm:"index:idx_risk_scores_key,unique" json:"user_id" example:"1"`
	User         User           `gorm:"foreignKey:UserID" json:"-"`
	Day          string         `gorm:"type:varchar(10);index:idx_risk_scores_key,unique" json:"day" example:"2023-01-01"`
	ModelVersion string         `gorm:"type:varchar(32);index:idx_risk_scores_key,unique" json:"model_version" example:"fusion_v1"`
	RiskScore    float64        `json:"risk_score" example:"0.42"`
}

func (r *RiskScore) TableName() string {
	return "risk_scores"
}

// RiskContribution is one persisted contributor row. The full set for a
// (user, day, model_version) key is replaced on every fusion run.
type RiskContribution struct {
	ID           uint           `gorm:"primaryKey" json:"id" example:"1"`
	CreatedAt    time.Time      `json:"created_at" example:"2023-01-01T00:00:00Z"`
	UpdatedAt    time.Time      `json:"updated_at" example:"2023-01-01T00:00:00Z"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	UserID       uint           `gorm:"index:idx_risk_contributions_key" json:"user_id" example:"1"`
	Day          string         `gorm:"type:varchar(10);index:idx_risk_contributions_key" json:"day" example:"2023-01-01"`
	ModelVersion string         `gorm:"type:varchar(32);index:idx_risk_contributions_key" json:"model_version" example:"fusion_v1"`
	Feature      string         `json:"feature" example:"wearable"`
	Value        float64        `json:"value" example:"0.336"`
}

func (r *RiskContribution) TableName() string {
	return "risk_contributions"
}
