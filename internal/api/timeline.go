package api

import (
	"context"

	"github.com/rewired-gh/lookingglass/internal/models"
)

// TimelineService covers /timeline endpoints.
type TimelineService struct {
	client *Client
}

// EventsParams filters /timeline/events. Empty fields are omitted.
type EventsParams struct {
	StartDate string
	EndDate   string
	EventType string
}

// Events retrieves timeline events.
func (s *TimelineService) Events(ctx context.Context, p EventsParams) ([]models.TimelineEvent, error) {
	q := newQuery().
		str("start_date", p.StartDate).
		str("end_date", p.EndDate).
		str("event_type", p.EventType)

	var events []models.TimelineEvent
	if err := s.client.get(ctx, "/timeline/events", q.values(), &events); err != nil {
		return nil, err
	}
	return events, nil
}

// Summary retrieves timeline summary statistics.
func (s *TimelineService) Summary(ctx context.Context) (*models.TimelineSummary, error) {
	var summary models.TimelineSummary
	if err := s.client.get(ctx, "/timeline/summary", nil, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}
