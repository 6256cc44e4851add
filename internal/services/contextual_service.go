package services

import (
	"context"
	"log"
	"time"

	"subhealth/internal/models"
	"subhealth/internal/repository"
	"subhealth/internal/risk"

	"golang.org/x/sync/errgroup"
)

// ContextualRiskService fuses the per-domain subscores into the daily
// contextual risk and persists the score row with its attribution.
type ContextualRiskService struct {
	snapshots     *SnapshotService
	labRepo       repository.LabRepository
	lifestyleRepo repository.LifestyleRepository
	geneticRepo   repository.GeneticRepository
	familyRepo    repository.FamilyHistoryRepository
	riskScoreRepo repository.RiskScoreRepository
	fuser         *risk.Fuser
}

func NewContextualRiskService(
	snapshots *SnapshotService,
	labRepo repository.LabRepository,
	lifestyleRepo repository.LifestyleRepository,
	geneticRepo repository.GeneticRepository,
	familyRepo repository.FamilyHistoryRepository,
	riskScoreRepo repository.RiskScoreRepository,
	fuser *risk.Fuser,
) *ContextualRiskService {
	return &ContextualRiskService{
		snapshots:     snapshots,
		labRepo:       labRepo,
		lifestyleRepo: lifestyleRepo,
		geneticRepo:   geneticRepo,
		familyRepo:    familyRepo,
		riskScoreRepo: riskScoreRepo,
		fuser:         fuser,
	}
}

// BuildInputs derives the five fusion subscores concurrently. Each
// comes back nil when its source has no data for the user.
func (s *ContextualRiskService) BuildInputs(ctx context.Context, userID uint) (models.FusionInputs, error) {
	var inputs models.FusionInputs
	g, _ := errgroup.WithContext(ctx)

	g.Go(func() error {
		score, err := s.riskScoreRepo.GetLatestScore(userID, models.ModelVersionWearable)
		if err != nil {
			return err
		}
		if score != nil {
			inputs.WearableRisk = &score.RiskScore
		}
		return nil
	})
	g.Go(func() error {
		labs, err := s.labRepo.GetLatestByUserID(userID)
		if err != nil {
			return err
		}
		inputs.LabRisk = risk.LabRisk(labs)
		return nil
	})
	g.Go(func() error {
		sleepAvg, err := s.snapshots.GetSleepAverageHours(userID)
		if err != nil {
			return err
		}
		workouts, err := s.workoutsPerWeek(userID)
		if err != nil {
			return err
		}
		inputs.LifestyleScore = risk.LifestyleScore(sleepAvg, workouts)
		return nil
	})
	g.Go(func() error {
		markers, err := s.geneticRepo.GetByUserID(userID)
		if err != nil {
			return err
		}
		inputs.GeneticPrior = risk.GeneticPrior(markers)
		return nil
	})
	g.Go(func() error {
		records, err := s.familyRepo.GetByUserID(userID)
		if err != nil {
			return err
		}
		inputs.FamilyPrior = risk.FamilyPrior(records)
		return nil
	})

	if err := g.Wait(); err != nil {
		return models.FusionInputs{}, err
	}
	return inputs, nil
}

// workoutsPerWeek counts the last 7 days of logged workouts. A zero
// count only scores when the user has an intake profile at all, so a
// user with no lifestyle data stays unscored rather than maximally
// sedentary.
func (s *ContextualRiskService) workoutsPerWeek(userID uint) (*float64, error) {
	count, err := s.lifestyleRepo.CountWorkoutsSince(userID, time.Now().AddDate(0, 0, -7))
	if err != nil {
		return nil, err
	}
	if count > 0 {
		v := float64(count)
		return &v, nil
	}
	profile, err := s.lifestyleRepo.GetProfileByUserID(userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, nil
	}
	zero := 0.0
	return &zero, nil
}

// ComputeAndStore fuses today's subscores, upserts the fusion score row
// together with its replaced contribution set, and returns the full
// contextual payload.
func (s *ContextualRiskService) ComputeAndStore(ctx context.Context, userID uint) (*models.ContextualRiskResponse, error) {
	inputs, err := s.BuildInputs(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	day := now.Format("2006-01-02")

	riskTotal := s.fuser.Fuse(inputs)
	contributors := s.fuser.Contributions(inputs)

	score := &models.RiskScore{
		UserID:       userID,
		Day:          day,
		ModelVersion: models.ModelVersionFusion,
		RiskScore:    riskTotal,
	}
	rows := make([]models.RiskContribution, 0, len(contributors))
	for _, c := range contributors {
		rows = append(rows, models.RiskContribution{
			UserID:       userID,
			Day:          day,
			ModelVersion: models.ModelVersionFusion,
			Feature:      c.Feature,
			Value:        c.Value,
		})
	}
	if err := s.riskScoreRepo.SaveScoreWithContributions(score, rows); err != nil {
		return nil, err
	}

	baselines, err := s.snapshots.GetMetricBaselines(userID)
	if err != nil {
		return nil, err
	}
	flags, err := s.snapshots.GetDayFlags(userID)
	if err != nil {
		return nil, err
	}

	log.Printf("contextual risk computed for user %d day %s: %.3f (%d contributors)",
		userID, day, riskTotal, len(contributors))

	return &models.ContextualRiskResponse{
		RiskTotal:    riskTotal,
		Contributors: contributors,
		Baselines:    baselines,
		Flags:        flags,
		Inputs:       inputs,
		Day:          day,
		Timestamp:    now,
	}, nil
}

// GetStoredContributions reads back the persisted attribution rows for
// a given day, newest store wins.
func (s *ContextualRiskService) GetStoredContributions(userID uint, day string) ([]models.RiskContribution, error) {
	return s.riskScoreRepo.GetContributions(userID, day, models.ModelVersionFusion)
}

// GetScoreSeries returns the stored fusion scores for a day range, for
// the dashboard trend chart.
func (s *ContextualRiskService) GetScoreSeries(userID uint, startDay, endDay string) ([]models.RiskScore, error) {
	return s.riskScoreRepo.GetScoreSeries(userID, models.ModelVersionFusion, startDay, endDay)
}
