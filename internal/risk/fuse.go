package risk

import (
	"math"
	"sort"

	"subhealth/internal/models"
)

// Fuser combines the wearable risk and the four subscores into one
// contextual risk_total with per-source attribution.
type Fuser struct {
	cfg FusionConfig
}

func NewFuser(cfg FusionConfig) (*Fuser, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Fuser{cfg: cfg}, nil
}

func orZero(x *float64) float64 {
	if x == nil {
		return 0
	}
	return *x
}

// Fuse computes the fixed-weight linear combination. A nil input counts
// as 0; the weights are not renormalized when sources are missing.
func (f *Fuser) Fuse(in models.FusionInputs) float64 {
	r := f.cfg.Wearable*orZero(in.WearableRisk) +
		f.cfg.Lab*orZero(in.LabRisk) +
		f.cfg.Lifestyle*orZero(in.LifestyleScore) +
		f.cfg.Genetic*orZero(in.GeneticPrior) +
		f.cfg.Family*orZero(in.FamilyPrior)
	return clamp01(r)
}

// Contributions returns weight x subscore for every non-nil input, sorted
// by absolute value descending. Missing sources produce no row at all,
// which is how the audit trail distinguishes "no data" from "no effect".
func (f *Fuser) Contributions(in models.FusionInputs) []models.Contributor {
	out := make([]models.Contributor, 0, 5)

	add := func(feature string, weight float64, v *float64) {
		if v == nil {
			return
		}
		out = append(out, models.Contributor{Feature: feature, Value: weight * *v})
	}

	add("wearable", f.cfg.Wearable, in.WearableRisk)
	add("lab", f.cfg.Lab, in.LabRisk)
	add("lifestyle", f.cfg.Lifestyle, in.LifestyleScore)
	add("genetic", f.cfg.Genetic, in.GeneticPrior)
	add("family", f.cfg.Family, in.FamilyPrior)

	sort.SliceStable(out, func(i, j int) bool {
		return math.Abs(out[i].Value) > math.Abs(out[j].Value)
	})
	return out
}
