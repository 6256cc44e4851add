package risk

import (
	"fmt"
	"math"

	"subhealth/internal/models"
)

// TierCutpoints are the index thresholds separating low/moderate/high.
type TierCutpoints struct {
	Moderate float64
	High     float64
}

// EngineConfig carries everything the condition scorers and the overall
// aggregator need. Injected so tests can run with alternate weight sets.
type EngineConfig struct {
	Cutpoints        TierCutpoints
	ConditionWeights map[string]float64
}

// FusionConfig carries the fixed fusion weights. Weights must sum to 1;
// missing inputs default to 0 without renormalizing.
type FusionConfig struct {
	Wearable  float64
	Lab       float64
	Lifestyle float64
	Genetic   float64
	Family    float64
}

func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		Cutpoints: TierCutpoints{Moderate: 0.33, High: 0.66},
		ConditionWeights: map[string]float64{
			models.ConditionPrediabetes:       1.2,
			models.ConditionKidneyFunction:    1.0,
			models.ConditionMetabolicStrain:   1.0,
			models.ConditionThyroid:           0.6,
			models.ConditionCardioPattern:     1.2,
			models.ConditionInflammatoryLoad:  0.8,
			models.ConditionAllergyBurden:     0.6,
			models.ConditionAutonomicRecovery: 0.8,
		},
	}
}

func DefaultFusionConfig() FusionConfig {
	return FusionConfig{
		Wearable:  0.42,
		Lab:       0.28,
		Lifestyle: 0.12,
		Genetic:   0.10,
		Family:    0.08,
	}
}

func (c EngineConfig) Validate() error {
	if c.Cutpoints.Moderate < 0 || c.Cutpoints.Moderate > 1 {
		return fmt.Errorf("engine config: moderate cutpoint %v outside [0,1]", c.Cutpoints.Moderate)
	}
	if c.Cutpoints.High < 0 || c.Cutpoints.High > 1 {
		return fmt.Errorf("engine config: high cutpoint %v outside [0,1]", c.Cutpoints.High)
	}
	if c.Cutpoints.Moderate >= c.Cutpoints.High {
		return fmt.Errorf("engine config: moderate cutpoint %v must be below high cutpoint %v",
			c.Cutpoints.Moderate, c.Cutpoints.High)
	}
	if len(c.ConditionWeights) == 0 {
		return fmt.Errorf("engine config: no condition weights")
	}
	for cond, w := range c.ConditionWeights {
		if w <= 0 {
			return fmt.Errorf("engine config: weight for %s must be positive, got %v", cond, w)
		}
	}
	return nil
}

func (c FusionConfig) Validate() error {
	for name, w := range map[string]float64{
		"wearable":  c.Wearable,
		"lab":       c.Lab,
		"lifestyle": c.Lifestyle,
		"genetic":   c.Genetic,
		"family":    c.Family,
	} {
		if w < 0 || w > 1 {
			return fmt.Errorf("fusion config: weight %s=%v outside [0,1]", name, w)
		}
	}
	sum := c.Wearable + c.Lab + c.Lifestyle + c.Genetic + c.Family
	if math.Abs(sum-1.0) > 1e-9 {
		return fmt.Errorf("fusion config: weights sum to %v, want 1", sum)
	}
	return nil
}

func clamp01(x float64) float64 {
	return math.Max(0, math.Min(1, x))
}

func (c EngineConfig) tierFromIndex(x float64) string {
	if x >= c.Cutpoints.High {
		return models.TierHigh
	}
	if x >= c.Cutpoints.Moderate {
		return models.TierModerate
	}
	return models.TierLow
}
