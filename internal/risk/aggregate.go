package risk

import (
	"subhealth/internal/models"
)

// OverallIndex is the weighted mean over emitted conditions only; omitted
// conditions do not pull the average down. No conditions means index 0.
func (e *Engine) OverallIndex(conditions []models.ConditionRisk) models.OverallIndex {
	if len(conditions) == 0 {
		return models.OverallIndex{OverallIndex: 0, OverallTier: models.TierLow}
	}

	var weightSum, sum float64
	for _, c := range conditions {
		w, ok := e.cfg.ConditionWeights[c.Condition]
		if !ok {
			w = 1
		}
		weightSum += w
		sum += c.Index * w
	}

	idx := 0.0
	if weightSum > 0 {
		idx = clamp01(sum / weightSum)
	}
	return models.OverallIndex{OverallIndex: idx, OverallTier: e.cfg.tierFromIndex(idx)}
}
