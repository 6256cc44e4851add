package risk

import (
	"subhealth/internal/models"
)

// Engine scores multimodal snapshots into per-condition risk indices.
// It is stateless after construction and safe for concurrent use.
type Engine struct {
	cfg   EngineConfig
	table []conditionRules
}

func NewEngine(cfg EngineConfig) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Engine{cfg: cfg, table: ruleTable()}, nil
}

// ScoreConditions runs every condition's rule set over the snapshots.
// A condition is emitted only when at least one rule fired; "no data" is
// deliberately distinct from "definitively stable".
func (e *Engine) ScoreConditions(ctx *models.MultimodalContext) []models.ConditionRisk {
	out := make([]models.ConditionRisk, 0, len(e.table))

	for _, cr := range e.table {
		score := 0.0
		var reasons []string
		sources := make(map[string]bool)

		for _, rule := range cr.rules {
			if !rule.When(ctx) {
				continue
			}
			score += rule.Increment
			if rule.ReasonFn != nil {
				reasons = append(reasons, rule.ReasonFn(ctx))
			} else {
				reasons = append(reasons, rule.Reason)
			}
			sources[rule.Source] = true
		}

		idx := clamp01(score)
		if idx <= 0 {
			continue
		}

		out = append(out, models.ConditionRisk{
			Condition:   cr.condition,
			Index:       idx,
			Tier:        e.cfg.tierFromIndex(idx),
			Reasons:     reasons,
			DataSources: sortedSources(sources),
		})
	}

	return out
}

// sortedSources keeps DataSources in the fixed category order rather than
// map iteration order, so identical inputs yield identical output.
func sortedSources(set map[string]bool) []string {
	order := []string{
		SourceLabs, SourceVitals, SourceLifestyle,
		SourceAllergyLabs, SourceAllergySymptoms,
		SourceFamily, SourceWearable,
	}
	out := make([]string, 0, len(set))
	for _, s := range order {
		if set[s] {
			out = append(out, s)
		}
	}
	return out
}
