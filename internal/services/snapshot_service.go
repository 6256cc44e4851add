package services

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"subhealth/internal/models"
	"subhealth/internal/repository"

	"golang.org/x/sync/errgroup"
)

// SnapshotService assembles the per-domain scoring snapshots. All reads
// are independent; BuildContext fans them out concurrently.
type SnapshotService struct {
	labRepo       repository.LabRepository
	vitalsRepo    repository.VitalsRepository
	lifestyleRepo repository.LifestyleRepository
	allergyRepo   repository.AllergyRepository
	familyRepo    repository.FamilyHistoryRepository
	metricsRepo   repository.MetricsRepository
}

func NewSnapshotService(
	labRepo repository.LabRepository,
	vitalsRepo repository.VitalsRepository,
	lifestyleRepo repository.LifestyleRepository,
	allergyRepo repository.AllergyRepository,
	familyRepo repository.FamilyHistoryRepository,
	metricsRepo repository.MetricsRepository,
) *SnapshotService {
	return &SnapshotService{
		labRepo:       labRepo,
		vitalsRepo:    vitalsRepo,
		lifestyleRepo: lifestyleRepo,
		allergyRepo:   allergyRepo,
		familyRepo:    familyRepo,
		metricsRepo:   metricsRepo,
	}
}

// BuildContext fetches the six snapshot categories concurrently. A
// missing category comes back nil; only store failures abort the build.
func (s *SnapshotService) BuildContext(ctx context.Context, userID uint) (*models.MultimodalContext, error) {
	mctx := &models.MultimodalContext{}
	g, _ := errgroup.WithContext(ctx)

	g.Go(func() error {
		labs, err := s.labRepo.GetLatestByUserID(userID)
		mctx.Labs = labs
		return err
	})
	g.Go(func() error {
		vitals, err := s.vitalsRepo.GetLatestByUserID(userID)
		mctx.Vitals = vitals
		return err
	})
	g.Go(func() error {
		lifestyle, err := s.GetLifestyleSnapshot(userID)
		mctx.Lifestyle = lifestyle
		return err
	})
	g.Go(func() error {
		allergies, err := s.GetAllergySummary(userID)
		mctx.Allergies = allergies
		return err
	})
	g.Go(func() error {
		family, err := s.GetFamilySummary(userID)
		mctx.Family = family
		return err
	})
	g.Go(func() error {
		wearable, err := s.GetWearableSummary(userID)
		mctx.Wearable = wearable
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return mctx, nil
}

// GetLifestyleSnapshot maps the survey row and pulls the creatine flag
// out of the free-form supplements blob.
func (s *SnapshotService) GetLifestyleSnapshot(userID uint) (*models.LifestyleSnapshot, error) {
	profile, err := s.lifestyleRepo.GetProfileByUserID(userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, nil
	}

	return &models.LifestyleSnapshot{
		SleepHoursWorkdays: profile.SleepHoursWorkdays,
		SleepHoursWeekends: profile.SleepHoursWeekends,
		ActivityLevel:      profile.ActivityLevel,
		SmokerStatus:       profile.SmokerStatus,
		StressLevel:        profile.StressLevel,
		AlcoholPerWeek:     profile.AlcoholPerWeek,
		OnCreatine:         parseCreatineFlag(profile.SupplementsJSON),
	}, nil
}

// parseCreatineFlag tolerates the several shapes the intake form has
// stored over time: {"creatine":{"using":true}}, {"creatine_monohydrate":
// true} and {"creatine_like":true}.
func parseCreatineFlag(raw *string) bool {
	if raw == nil || *raw == "" {
		return false
	}
	var blob map[string]interface{}
	if err := json.Unmarshal([]byte(*raw), &blob); err != nil {
		return false
	}

	if v, ok := blob["creatine"]; ok {
		switch t := v.(type) {
		case bool:
			if t {
				return true
			}
		case map[string]interface{}:
			if using, ok := t["using"].(bool); ok && using {
				return true
			}
		}
	}
	if v, ok := blob["creatine_monohydrate"].(bool); ok && v {
		return true
	}
	if v, ok := blob["creatine_like"].(bool); ok && v {
		return true
	}
	return false
}

var severityScores = map[string]float64{
	"mild":     0.3,
	"moderate": 0.6,
	"strong":   0.8,
}

var frequencyScores = map[string]float64{
	"rarely":    0.2,
	"sometimes": 0.4,
	"often":     0.7,
	"daily":     1.0,
}

// GetAllergySummary compresses the specific-IgE panel rows and the
// symptom survey. Peak IgE stands in for total IgE; class>=3 rows are
// strong sensitizers; the symptom score is the max of the severity and
// frequency mappings.
func (s *SnapshotService) GetAllergySummary(userID uint) (*models.AllergySummary, error) {
	labRows, err := s.allergyRepo.GetLabResultsByUserID(userID)
	if err != nil {
		return nil, err
	}
	report, err := s.allergyRepo.GetSymptomReportByUserID(userID)
	if err != nil {
		return nil, err
	}
	if len(labRows) == 0 && report == nil {
		return nil, nil
	}

	summary := &models.AllergySummary{}

	for _, row := range labRows {
		if row.IgEKuL != nil {
			if summary.IgETotalKuL == nil || *row.IgEKuL > *summary.IgETotalKuL {
				v := *row.IgEKuL
				summary.IgETotalKuL = &v
			}
		}
		if row.Class != nil && *row.Class >= 3 {
			summary.StrongSensitizers = append(summary.StrongSensitizers, row.TestName)
		}
	}

	if report != nil {
		var sev, freq float64
		var found bool
		if report.Severity != nil {
			if v, ok := severityScores[strings.ToLower(*report.Severity)]; ok {
				sev, found = v, true
			}
		}
		if report.Frequency != nil {
			if v, ok := frequencyScores[strings.ToLower(*report.Frequency)]; ok {
				freq, found = v, true
			}
		}
		if found {
			score := sev
			if freq > score {
				score = freq
			}
			summary.SymptomScore = &score
		}
	}

	return summary, nil
}

// GetFamilySummary collapses the reported conditions into the flags the
// scorers read. Matching is substring based on purpose; the intake field
// is free text.
func (s *SnapshotService) GetFamilySummary(userID uint) (*models.FamilyHistorySummary, error) {
	records, err := s.familyRepo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}

	summary := &models.FamilyHistorySummary{}
	for _, rec := range records {
		c := strings.ToLower(rec.Condition)
		if strings.Contains(c, "diab") {
			summary.HasDiabetes = true
		}
		if anyOf(c, "cvd", "cardio", "heart", "stroke") {
			summary.HasCVD = true
		}
		if anyOf(c, "ckd", "kidney", "renal") {
			summary.HasCKD = true
		}
		if anyOf(c, "autoimmune", "lupus", "psoriasis", "celiac", "hashimoto", "graves") {
			summary.HasAutoimmune = true
		}
	}
	return summary, nil
}

func anyOf(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

const (
	sleepTargetHoursPerNight = 8.0
	wearableLookbackDays     = 30
	sleepDebtWindowDays      = 7
)

// GetWearableSummary compresses the last 30 days of metric rows:
// RHR/HRV means over the full window, sleep debt over the last 7 days
// against the 8h/night target, workout minutes over the last 7 days.
func (s *SnapshotService) GetWearableSummary(userID uint) (*models.WearableSummary, error) {
	since := dayStringDaysAgo(wearableLookbackDays)
	rows, err := s.metricsRepo.GetSinceDay(userID, since)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	summary := &models.WearableSummary{
		AvgRhr: meanOf(rows, func(m models.DailyMetric) *float64 { return m.Rhr }),
		AvgHrv: meanOf(rows, func(m models.DailyMetric) *float64 { return m.HrvAvg }),
	}

	weekCutoff := dayStringDaysAgo(sleepDebtWindowDays)
	totalSleepMin := 0.0
	for _, row := range rows {
		if row.Day >= weekCutoff && row.SleepMinutes != nil {
			totalSleepMin += *row.SleepMinutes
		}
	}
	targetMin := sleepTargetHoursPerNight * 60 * sleepDebtWindowDays
	debt := (targetMin - totalSleepMin) / 60
	if debt < 0 {
		debt = 0
	}
	summary.SleepDebtHours = &debt

	workouts, err := s.lifestyleRepo.GetWorkoutsSince(userID, time.Now().AddDate(0, 0, -sleepDebtWindowDays))
	if err != nil {
		return nil, err
	}
	minutes := 0.0
	for _, w := range workouts {
		minutes += float64(w.Minutes)
	}
	summary.ActivityMinutes = &minutes

	return summary, nil
}

// GetMetricBaselines returns 30-day means for the dashboard's
// "vs baseline" deltas.
func (s *SnapshotService) GetMetricBaselines(userID uint) (models.MetricBaselines, error) {
	rows, err := s.metricsRepo.GetSinceDay(userID, dayStringDaysAgo(wearableLookbackDays))
	if err != nil {
		return models.MetricBaselines{}, err
	}
	return models.MetricBaselines{
		RhrMean:          meanOf(rows, func(m models.DailyMetric) *float64 { return m.Rhr }),
		HrvMean:          meanOf(rows, func(m models.DailyMetric) *float64 { return m.HrvAvg }),
		SleepMinutesMean: meanOf(rows, func(m models.DailyMetric) *float64 { return m.SleepMinutes }),
	}, nil
}

// GetDayFlags evaluates the same-day threshold flags over the newest
// metric row.
func (s *SnapshotService) GetDayFlags(userID uint) ([]models.DayFlag, error) {
	rows, err := s.metricsRepo.GetSinceDay(userID, dayStringDaysAgo(sleepDebtWindowDays))
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []models.DayFlag{}, nil
	}

	latest := rows[0]
	flags := make([]models.DayFlag, 0, 3)
	if latest.SleepMinutes != nil && *latest.SleepMinutes < 300 {
		flags = append(flags, models.DayFlag{
			FlagType: "sleep_debt", Severity: 2, Rationale: "Sleep under 5 hours",
		})
	}
	if latest.HrvAvg != nil && *latest.HrvAvg < 40 {
		flags = append(flags, models.DayFlag{
			FlagType: "low_hrv", Severity: 3, Rationale: "HRV below baseline proxy",
		})
	}
	if latest.Rhr != nil && *latest.Rhr > 80 {
		flags = append(flags, models.DayFlag{
			FlagType: "elevated_rhr", Severity: 2, Rationale: "Resting HR > 80 bpm",
		})
	}
	return flags, nil
}

// GetSleepAverageHours is the 14-day sleep mean feeding the lifestyle
// subscore. Nil when the window has no sleep rows.
func (s *SnapshotService) GetSleepAverageHours(userID uint) (*float64, error) {
	rows, err := s.metricsRepo.GetSinceDay(userID, dayStringDaysAgo(14))
	if err != nil {
		return nil, err
	}
	minutes := meanOf(rows, func(m models.DailyMetric) *float64 { return m.SleepMinutes })
	if minutes == nil {
		return nil, nil
	}
	hours := *minutes / 60
	return &hours, nil
}

func dayStringDaysAgo(days int) string {
	return time.Now().UTC().AddDate(0, 0, -days).Format("2006-01-02")
}

func meanOf(rows []models.DailyMetric, field func(models.DailyMetric) *float64) *float64 {
	sum := 0.0
	n := 0
	for _, row := range rows {
		if v := field(row); v != nil {
			sum += *v
			n++
		}
	}
	if n == 0 {
		return nil
	}
	mean := sum / float64(n)
	return &mean
}
