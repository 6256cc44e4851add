package risk

import (
	"strings"

	"subhealth/internal/models"
)

// The four subscore calculators compress raw records into a single 0..1
// scalar each. Every one of them returns nil, not 0, when the user has no
// relevant records: the fuser treats those differently when attributing.

// LabRisk maps CRP, HbA1c, LDL/HDL ratio and vitamin D onto 0..1 bands
// and averages across whichever fields the latest panel carries.
func LabRisk(labs *models.LabsCore) *float64 {
	if labs == nil {
		return nil
	}

	var parts []float64

	if labs.CrpMgL != nil {
		c := *labs.CrpMgL
		switch {
		case c < 1:
			parts = append(parts, 0.1)
		case c < 3:
			parts = append(parts, 0.4)
		case c <= 10:
			parts = append(parts, 0.7)
		default:
			parts = append(parts, 0.9)
		}
	}

	if labs.HbA1cPercent != nil {
		a := *labs.HbA1cPercent
		switch {
		case a < 5.7:
			parts = append(parts, 0.1)
		case a < 6.5:
			parts = append(parts, 0.55)
		default:
			parts = append(parts, 0.9)
		}
	}

	if labs.LdlMgDl != nil && labs.HdlMgDl != nil && *labs.HdlMgDl > 0 {
		ratio := *labs.LdlMgDl / *labs.HdlMgDl
		switch {
		case ratio < 2.5:
			parts = append(parts, 0.1)
		case ratio <= 3.5:
			parts = append(parts, 0.45)
		default:
			parts = append(parts, 0.8)
		}
	}

	if labs.VitD25OhNgMl != nil {
		d := *labs.VitD25OhNgMl
		switch {
		case d >= 30:
			parts = append(parts, 0.1)
		case d >= 20:
			parts = append(parts, 0.4)
		case d >= 12:
			parts = append(parts, 0.6)
		default:
			parts = append(parts, 0.8)
		}
	}

	if len(parts) == 0 {
		return nil
	}
	sum := 0.0
	for _, p := range parts {
		sum += p
	}
	v := clamp01(sum / float64(len(parts)))
	return &v
}

// LifestyleScore averages a sleep component (14-day average against the
// 7-9h target band, linear deficit capped at 3h off band) with a workout
// frequency component. Either component alone still yields a score.
func LifestyleScore(sleepAvgHours *float64, workoutsPerWeek *float64) *float64 {
	var parts []float64

	if sleepAvgHours != nil {
		h := *sleepAvgHours
		dev := 0.0
		if h < 7 {
			dev = 7 - h
		} else if h > 9 {
			dev = h - 9
		}
		parts = append(parts, clamp01(dev/3))
	}

	if workoutsPerWeek != nil {
		w := *workoutsPerWeek
		switch {
		case w >= 4:
			parts = append(parts, 0.1)
		case w >= 2:
			parts = append(parts, 0.45)
		case w > 0:
			parts = append(parts, 0.8)
		default:
			parts = append(parts, 0.9)
		}
	}

	if len(parts) == 0 {
		return nil
	}
	sum := 0.0
	for _, p := range parts {
		sum += p
	}
	v := clamp01(sum / float64(len(parts)))
	return &v
}

// markerPriors are the recognized high-risk markers. Unrecognized markers
// fall back to their reported evidence level.
var markerPriors = map[string]float64{
	"APOE4": 0.15,
	"BRCA1": 0.25,
	"BRCA2": 0.25,
}

// GeneticPrior is the max prior over the user's reported markers.
func GeneticPrior(markers []models.GeneticMarker) *float64 {
	if len(markers) == 0 {
		return nil
	}

	best := 0.0
	for _, m := range markers {
		w, ok := markerPriors[strings.ToUpper(strings.TrimSpace(m.Marker))]
		if !ok {
			w = evidenceDefault(m.EvidenceLevel)
		}
		if w > best {
			best = w
		}
	}
	v := clamp01(best)
	return &v
}

func evidenceDefault(level *string) float64 {
	if level == nil {
		return 0
	}
	switch strings.ToLower(*level) {
	case models.EvidenceLevelHigh:
		return 0.15
	case models.EvidenceLevelModerate:
		return 0.08
	default:
		return 0
	}
}

var relationMultipliers = map[string]float64{
	"parent":      1.0,
	"mother":      1.0,
	"father":      1.0,
	"sibling":     0.8,
	"brother":     0.8,
	"sister":      0.8,
	"grandparent": 0.5,
	"grandmother": 0.5,
	"grandfather": 0.5,
	"aunt":        0.4,
	"uncle":       0.4,
	"cousin":      0.2,
}

// FamilyPrior is the max over records of condition weight times relation
// multiplier. First-degree diabetes or CVD dominates anything reported
// for a cousin.
func FamilyPrior(records []models.FamilyHistoryRecord) *float64 {
	if len(records) == 0 {
		return nil
	}

	best := 0.0
	for _, r := range records {
		w := familyConditionWeight(r.Condition) * relationMultiplier(r.Relation)
		if w > best {
			best = w
		}
	}
	v := clamp01(best)
	return &v
}

func relationMultiplier(relation string) float64 {
	if m, ok := relationMultipliers[strings.ToLower(strings.TrimSpace(relation))]; ok {
		return m
	}
	return 0.5
}

func familyConditionWeight(condition string) float64 {
	c := strings.ToLower(condition)
	switch {
	case strings.Contains(c, "diab"):
		return 0.2
	case containsAny(c, "cvd", "cardio", "heart", "stroke"):
		return 0.25
	case containsAny(c, "ckd", "kidney", "renal"):
		return 0.2
	default:
		return 0.15
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
