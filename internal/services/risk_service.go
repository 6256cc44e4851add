package services

import (
	"context"

	"subhealth/internal/models"
	"subhealth/internal/risk"
)

const riskDisclaimer = "Informational risk stratification only. Not a diagnosis. Discuss results with a clinician."

// RiskService runs the condition engine over an assembled snapshot
// context.
type RiskService struct {
	snapshots *SnapshotService
	engine    *risk.Engine
}

func NewRiskService(snapshots *SnapshotService, engine *risk.Engine) *RiskService {
	return &RiskService{snapshots: snapshots, engine: engine}
}

// GetMultimodalRisk scores all conditions against the user's current
// snapshots and aggregates the overall index.
func (s *RiskService) GetMultimodalRisk(ctx context.Context, userID uint) (*models.MultimodalRiskResponse, error) {
	mctx, err := s.snapshots.BuildContext(ctx, userID)
	if err != nil {
		return nil, err
	}

	conditions := s.engine.ScoreConditions(mctx)
	overall := s.engine.OverallIndex(conditions)

	return &models.MultimodalRiskResponse{
		Conditions: conditions,
		Overall:    overall,
		Disclaimer: riskDisclaimer,
	}, nil
}
