package risk

import (
	"fmt"
	"strings"

	"subhealth/internal/models"
)

// Snapshot category tags recorded in ConditionRisk.DataSources.
const (
	SourceLabs            = "labs"
	SourceVitals          = "vitals"
	SourceLifestyle       = "lifestyle"
	SourceFamily          = "family"
	SourceWearable        = "wearable"
	SourceAllergyLabs     = "allergy_labs"
	SourceAllergySymptoms = "allergy_symptoms"
)

// Rule is one threshold check. When returns false when the backing field
// is absent, so missing data silently skips the rule. ReasonFn, when set,
// overrides the static Reason (used where the text embeds data).
type Rule struct {
	Source    string
	Increment float64
	Reason    string
	ReasonFn  func(ctx *models.MultimodalContext) string
	When      func(ctx *models.MultimodalContext) bool
}

type conditionRules struct {
	condition string
	rules     []Rule
}

func fpresent(v *float64) bool { return v != nil }

func fgte(v *float64, lo float64) bool      { return v != nil && *v >= lo }
func fgt(v *float64, lo float64) bool       { return v != nil && *v > lo }
func flt(v *float64, hi float64) bool       { return v != nil && *v < hi }
func fband(v *float64, lo, hi float64) bool { return v != nil && *v >= lo && *v < hi }

func strEq(v *string, want string) bool {
	return v != nil && strings.EqualFold(*v, want)
}

func onCreatine(ctx *models.MultimodalContext) bool {
	return ctx.Lifestyle != nil && ctx.Lifestyle.OnCreatine
}

// ruleTable builds the per-condition rule sets. The thresholds mirror the
// published subclinical reference cutoffs the product ships with; they are
// data here so they can be tuned without touching the scorer.
func ruleTable() []conditionRules {
	return []conditionRules{
		{
			condition: models.ConditionPrediabetes,
			rules: []Rule{
				{
					Source: SourceLabs, Increment: 0.5,
					Reason: "HbA1c is in the prediabetes range.",
					When: func(ctx *models.MultimodalContext) bool {
						return ctx.Labs != nil && fband(ctx.Labs.HbA1cPercent, 5.7, 6.5)
					},
				},
				{
					Source: SourceLabs, Increment: 0.8,
					Reason: "HbA1c is in the diabetes range.",
					When: func(ctx *models.MultimodalContext) bool {
						return ctx.Labs != nil && fgte(ctx.Labs.HbA1cPercent, 6.5)
					},
				},
				{
					Source: SourceLabs, Increment: 0.3,
					Reason: "Fasting glucose is above the normal range.",
					When: func(ctx *models.MultimodalContext) bool {
						return ctx.Labs != nil && fband(ctx.Labs.FastingGlucoseMgDl, 100, 126)
					},
				},
				{
					Source: SourceLabs, Increment: 0.6,
					Reason: "Fasting glucose is in the diabetes range.",
					When: func(ctx *models.MultimodalContext) bool {
						return ctx.Labs != nil && fgte(ctx.Labs.FastingGlucoseMgDl, 126)
					},
				},
				{
					Source: SourceVitals, Increment: 0.15,
					Reason: "BMI is in the overweight range.",
					When: func(ctx *models.MultimodalContext) bool {
						return ctx.Vitals != nil && fband(ctx.Vitals.BMI, 25, 30)
					},
				},
				{
					Source: SourceVitals, Increment: 0.3,
					Reason: "BMI is in the obesity range.",
					When: func(ctx *models.MultimodalContext) bool {
						return ctx.Vitals != nil && fgte(ctx.Vitals.BMI, 30)
					},
				},
				{
					Source: SourceLifestyle, Increment: 0.1,
					Reason: "Reported physical activity is low.",
					When: func(ctx *models.MultimodalContext) bool {
						return ctx.Lifestyle != nil && strEq(ctx.Lifestyle.ActivityLevel, models.ActivityLevelLow)
					},
				},
				{
					Source: SourceFamily, Increment: 0.15,
					Reason: "Family history of diabetes reported.",
					When: func(ctx *models.MultimodalContext) bool {
						return ctx.Family != nil && ctx.Family.HasDiabetes
					},
				},
			},
		},
		{
			condition: models.ConditionKidneyFunction,
			rules: []Rule{
				// Creatine supplementation raises creatinine and lowers
				// estimated eGFR without true kidney damage, so the lab
				// rules carry a down-weighted variant.
				{
					Source: SourceLabs, Increment: 0.3,
					Reason: "eGFR is mildly reduced compared to typical reference values.",
					When: func(ctx *models.MultimodalContext) bool {
						return ctx.Labs != nil && fband(ctx.Labs.EgfrMlMin, 60, 90) && !onCreatine(ctx)
					},
				},
				{
					Source: SourceLabs, Increment: 0.15,
					Reason: "eGFR is mildly reduced, but creatine use can lower estimated eGFR without true kidney damage.",
					When: func(ctx *models.MultimodalContext) bool {
						return ctx.Labs != nil && fband(ctx.Labs.EgfrMlMin, 60, 90) && onCreatine(ctx)
					},
				},
				{
					Source: SourceLabs, Increment: 0.8,
					Reason: "eGFR is significantly below typical reference values.",
					When: func(ctx *models.MultimodalContext) bool {
						return ctx.Labs != nil && flt(ctx.Labs.EgfrMlMin, 60) && !onCreatine(ctx)
					},
				},
				{
					Source: SourceLabs, Increment: 0.5,
					Reason: "eGFR is significantly below typical reference values; although creatine can lower eGFR estimates, this pattern should still be reviewed with a clinician.",
					When: func(ctx *models.MultimodalContext) bool {
						return ctx.Labs != nil && flt(ctx.Labs.EgfrMlMin, 60) && onCreatine(ctx)
					},
				},
				{
					Source: SourceLabs, Increment: 0.2,
					Reason: "Creatinine is slightly elevated compared to typical reference ranges.",
					When: func(ctx *models.MultimodalContext) bool {
						return ctx.Labs != nil && fgt(ctx.Labs.CreatinineMgDl, 1.2) && !onCreatine(ctx)
					},
				},
				{
					Source: SourceLabs, Increment: 0.1,
					Reason: "Creatinine is slightly elevated; creatine supplementation and higher muscle mass can raise creatinine without true kidney damage.",
					When: func(ctx *models.MultimodalContext) bool {
						return ctx.Labs != nil && fgt(ctx.Labs.CreatinineMgDl, 1.2) && onCreatine(ctx)
					},
				},
				{
					Source: SourceLabs, Increment: 0.1,
					Reason: "BUN is above typical range.",
					When: func(ctx *models.MultimodalContext) bool {
						return ctx.Labs != nil && fgt(ctx.Labs.BunMgDl, 20)
					},
				},
			},
		},
		{
			condition: models.ConditionMetabolicStrain,
			rules: []Rule{
				{
					Source: SourceLabs, Increment: 0.2,
					Reason: "ALT is at the upper end of the reference range.",
					When: func(ctx *models.MultimodalContext) bool {
						return ctx.Labs != nil && ctx.Labs.AltUL != nil && *ctx.Labs.AltUL > 35 && *ctx.Labs.AltUL <= 50
					},
				},
				{
					Source: SourceLabs, Increment: 0.4,
					Reason: "ALT is above the typical reference range.",
					When: func(ctx *models.MultimodalContext) bool {
						return ctx.Labs != nil && fgt(ctx.Labs.AltUL, 50)
					},
				},
				{
					Source: SourceLabs, Increment: 0.2,
					Reason: "AST is above the typical reference range.",
					When: func(ctx *models.MultimodalContext) bool {
						return ctx.Labs != nil && fgt(ctx.Labs.AstUL, 40)
					},
				},
				{
					Source: SourceLabs, Increment: 0.3,
					Reason: "Triglycerides are elevated.",
					When: func(ctx *models.MultimodalContext) bool {
						return ctx.Labs != nil && fgte(ctx.Labs.TrigMgDl, 150)
					},
				},
				{
					Source: SourceVitals, Increment: 0.2,
					Reason: "BMI is in the obesity range.",
					When: func(ctx *models.MultimodalContext) bool {
						return ctx.Vitals != nil && fgte(ctx.Vitals.BMI, 30)
					},
				},
				{
					Source: SourceLifestyle, Increment: 0.1,
					Reason: "Reported alcohol intake is above conservative thresholds.",
					When: func(ctx *models.MultimodalContext) bool {
						return ctx.Lifestyle != nil && fgt(ctx.Lifestyle.AlcoholPerWeek, 7)
					},
				},
				{
					Source: SourceWearable, Increment: 0.1,
					Reason: "Chronic sleep debt over the last week.",
					When: func(ctx *models.MultimodalContext) bool {
						return ctx.Wearable != nil && fgt(ctx.Wearable.SleepDebtHours, 7)
					},
				},
			},
		},
		{
			condition: models.ConditionThyroid,
			rules: []Rule{
				{
					Source: SourceLabs, Increment: 0.5,
					Reason: "TSH is below the typical reference range (possible hyperthyroid pattern).",
					When: func(ctx *models.MultimodalContext) bool {
						return ctx.Labs != nil && flt(ctx.Labs.TshUluMl, 0.4)
					},
				},
				{
					Source: SourceLabs, Increment: 0.5,
					Reason: "TSH is above the typical reference range (possible hypothyroid pattern).",
					When: func(ctx *models.MultimodalContext) bool {
						return ctx.Labs != nil && fgt(ctx.Labs.TshUluMl, 4.5)
					},
				},
			},
		},
		{
			condition: models.ConditionCardioPattern,
			rules: []Rule{
				{
					Source: SourceVitals, Increment: 0.2,
					Reason: "Blood pressure is at least in the elevated range.",
					When: func(ctx *models.MultimodalContext) bool {
						if ctx.Vitals == nil || !fpresent(ctx.Vitals.SystolicMmHg) || !fpresent(ctx.Vitals.DiastolicMmHg) {
							return false
						}
						return *ctx.Vitals.SystolicMmHg >= 120 || *ctx.Vitals.DiastolicMmHg >= 80
					},
				},
				{
					Source: SourceVitals, Increment: 0.3,
					Reason: "Blood pressure is in a hypertensive range.",
					When: func(ctx *models.MultimodalContext) bool {
						if ctx.Vitals == nil || !fpresent(ctx.Vitals.SystolicMmHg) || !fpresent(ctx.Vitals.DiastolicMmHg) {
							return false
						}
						return *ctx.Vitals.SystolicMmHg >= 130 || *ctx.Vitals.DiastolicMmHg >= 85
					},
				},
				{
					Source: SourceLabs, Increment: 0.2,
					Reason: "Total cholesterol is above typical target values.",
					When: func(ctx *models.MultimodalContext) bool {
						return ctx.Labs != nil && fgte(ctx.Labs.CholTotalMgDl, 200)
					},
				},
				{
					Source: SourceLabs, Increment: 0.2,
					Reason: "LDL cholesterol is elevated.",
					When: func(ctx *models.MultimodalContext) bool {
						return ctx.Labs != nil && fgte(ctx.Labs.LdlMgDl, 130)
					},
				},
				{
					Source: SourceLabs, Increment: 0.1,
					Reason: "HDL cholesterol is below typical protective range.",
					When: func(ctx *models.MultimodalContext) bool {
						return ctx.Labs != nil && flt(ctx.Labs.HdlMgDl, 40)
					},
				},
				{
					Source: SourceVitals, Increment: 0.1,
					Reason: "Higher BMI may increase cardiovascular strain.",
					When: func(ctx *models.MultimodalContext) bool {
						return ctx.Vitals != nil && fgte(ctx.Vitals.BMI, 30)
					},
				},
			},
		},
		{
			condition: models.ConditionInflammatoryLoad,
			rules: []Rule{
				{
					Source: SourceAllergyLabs, Increment: 0.3,
					Reason: "Total IgE is above typical lab reference ranges.",
					When: func(ctx *models.MultimodalContext) bool {
						if ctx.Allergies == nil || ctx.Allergies.IgETotalKuL == nil {
							return false
						}
						v := *ctx.Allergies.IgETotalKuL
						return v > 100 && v <= 400
					},
				},
				{
					Source: SourceAllergyLabs, Increment: 0.5,
					Reason: "Total IgE is markedly elevated.",
					When: func(ctx *models.MultimodalContext) bool {
						return ctx.Allergies != nil && fgt(ctx.Allergies.IgETotalKuL, 400)
					},
				},
				{
					Source: SourceAllergySymptoms, Increment: 0.2,
					Reason: "User reports frequent or strong allergy/skin/respiratory symptoms.",
					When: func(ctx *models.MultimodalContext) bool {
						return ctx.Allergies != nil && fgt(ctx.Allergies.SymptomScore, 0.4)
					},
				},
				{
					Source: SourceWearable, Increment: 0.1,
					Reason: "Chronic sleep debt may increase inflammatory burden.",
					When: func(ctx *models.MultimodalContext) bool {
						return ctx.Wearable != nil && fgt(ctx.Wearable.SleepDebtHours, 7)
					},
				},
				{
					Source: SourceLifestyle, Increment: 0.1,
					Reason: "Self-reported stress level is high.",
					When: func(ctx *models.MultimodalContext) bool {
						return ctx.Lifestyle != nil && strEq(ctx.Lifestyle.StressLevel, models.StressLevelHigh)
					},
				},
			},
		},
		{
			condition: models.ConditionAllergyBurden,
			rules: []Rule{
				{
					Source: SourceAllergyLabs, Increment: 0.3,
					Reason: "Total IgE is above typical lab reference ranges.",
					When: func(ctx *models.MultimodalContext) bool {
						if ctx.Allergies == nil || ctx.Allergies.IgETotalKuL == nil {
							return false
						}
						v := *ctx.Allergies.IgETotalKuL
						return v > 100 && v <= 400
					},
				},
				{
					Source: SourceAllergyLabs, Increment: 0.6,
					Reason: "Total IgE is markedly elevated.",
					When: func(ctx *models.MultimodalContext) bool {
						return ctx.Allergies != nil && fgt(ctx.Allergies.IgETotalKuL, 400)
					},
				},
				{
					Source: SourceAllergyLabs, Increment: 0.2,
					ReasonFn: func(ctx *models.MultimodalContext) string {
						names := ctx.Allergies.StrongSensitizers
						shown := names
						suffix := ""
						if len(names) > 4 {
							shown = names[:4]
							suffix = "…"
						}
						return fmt.Sprintf("Lab results show strong sensitization to: %s%s.",
							strings.Join(shown, ", "), suffix)
					},
					When: func(ctx *models.MultimodalContext) bool {
						return ctx.Allergies != nil && len(ctx.Allergies.StrongSensitizers) > 0
					},
				},
				{
					Source: SourceAllergySymptoms, Increment: 0.2,
					Reason: "User reports recurring allergy-like symptoms.",
					When: func(ctx *models.MultimodalContext) bool {
						return ctx.Allergies != nil && fgt(ctx.Allergies.SymptomScore, 0.3)
					},
				},
			},
		},
		{
			condition: models.ConditionAutonomicRecovery,
			rules: []Rule{
				{
					Source: SourceWearable, Increment: 0.3,
					Reason: "Average HRV is on the lower side for many adults.",
					When: func(ctx *models.MultimodalContext) bool {
						return ctx.Wearable != nil && flt(ctx.Wearable.AvgHrv, 30)
					},
				},
				{
					Source: SourceWearable, Increment: 0.2,
					Reason: "Resting heart rate is relatively elevated.",
					When: func(ctx *models.MultimodalContext) bool {
						return ctx.Wearable != nil && fgt(ctx.Wearable.AvgRhr, 75)
					},
				},
				{
					Source: SourceWearable, Increment: 0.2,
					Reason: "Recent sleep debt suggests incomplete recovery.",
					When: func(ctx *models.MultimodalContext) bool {
						return ctx.Wearable != nil && fgt(ctx.Wearable.SleepDebtHours, 7)
					},
				},
				{
					Source: SourceWearable, Increment: 0.1,
					Reason: "Weekly moderate-to-vigorous activity is below typical guidelines.",
					When: func(ctx *models.MultimodalContext) bool {
						return ctx.Wearable != nil && flt(ctx.Wearable.ActivityMinutes, 150)
					},
				},
			},
		},
	}
}
