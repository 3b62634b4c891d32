package models

import "errors"

// TimelineEvent is a single dated event shown on the timeline chart.
type TimelineEvent struct {
	Date        string  `json:"date"`
	Type        string  `json:"type"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Impact      float64 `json:"impact"` // 0–1
}

// Validate checks that all event fields are valid
func (e *TimelineEvent) Validate() error {
	if e.Date == "" {
		return errors.New("event date must not be empty")
	}
	if e.Type == "" {
		return errors.New("event type must not be empty")
	}
	return checkUnit("impact", e.Impact)
}

// DateRange is an inclusive range of ISO dates.
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// TimelineSummary holds server-side aggregates over the timeline.
type TimelineSummary struct {
	TotalEvents   int            `json:"total_events"`
	AverageImpact float64        `json:"average_impact"`
	DateRange     DateRange      `json:"date_range"`
	EventsByType  map[string]int `json:"events_by_type"`
}

// Validate checks that the summary is internally consistent
func (s *TimelineSummary) Validate() error {
	if s.TotalEvents < 0 {
		return errors.New("total events must not be negative")
	}
	sum := 0
	for _, n := range s.EventsByType {
		sum += n
	}
	if len(s.EventsByType) > 0 && sum != s.TotalEvents {
		return errors.New("events by type must sum to total events")
	}
	return checkUnit("average impact", s.AverageImpact)
}
