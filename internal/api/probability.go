package api

import (
	"context"

	"github.com/rewired-gh/lookingglass/internal/models"
)

// DefaultTimeframe is the forecast window in days when none is given.
const DefaultTimeframe = 30

// ProbabilityService covers /probability endpoints.
type ProbabilityService struct {
	client *Client
}

// Analyze retrieves the probability analysis for category over timeframe days.
// A timeframe <= 0 uses DefaultTimeframe.
func (s *ProbabilityService) Analyze(ctx context.Context, category string, timeframe int) (*models.ProbabilityData, error) {
	if timeframe <= 0 {
		timeframe = DefaultTimeframe
	}
	q := newQuery().
		str("category", category).
		int("timeframe", &timeframe)

	var data models.ProbabilityData
	if err := s.client.get(ctx, "/probability/analyze", q.values(), &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// Categories lists the event categories available for analysis.
func (s *ProbabilityService) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	if err := s.client.get(ctx, "/probability/categories", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// HistoricalParams filters /probability/historical.
type HistoricalParams struct {
	Category  string
	StartDate string
	EndDate   string
}

// Historical retrieves past daily probabilities for a category.
func (s *ProbabilityService) Historical(ctx context.Context, p HistoricalParams) ([]models.HistoricalPoint, error) {
	q := newQuery().
		str("category", p.Category).
		str("start_date", p.StartDate).
		str("end_date", p.EndDate)

	var points []models.HistoricalPoint
	if err := s.client.get(ctx, "/probability/historical", q.values(), &points); err != nil {
		return nil, err
	}
	return points, nil
}
