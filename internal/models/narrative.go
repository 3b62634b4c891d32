package models

import (
	"errors"
	"fmt"
)

// Narrative is a single story placed in embedding space.
type Narrative struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Summary     string  `json:"summary"`
	Sentiment   float64 `json:"sentiment"` // -1–1
	Coordinates Point   `json:"coordinates"`
}

// TemporalEvolution is one dated sample of a cluster's size and mood.
type TemporalEvolution struct {
	Date      string  `json:"date"`
	Size      int     `json:"size"`
	Sentiment float64 `json:"sentiment"`
}

// NarrativeCluster groups narratives around a theme.
//
// Size is reported by the backend and is not assumed to equal len(Narratives).
type NarrativeCluster struct {
	ID                string              `json:"id"`
	Theme             string              `json:"theme"`
	Size              int                 `json:"size"`
	Center            Point               `json:"center"`
	Narratives        []Narrative         `json:"narratives"`
	SentimentScore    float64             `json:"sentiment_score"` // -1–1
	GrowthRate        float64             `json:"growth_rate"`
	TemporalEvolution []TemporalEvolution `json:"temporal_evolution,omitempty"`
}

// Validate checks that all cluster fields are valid
func (c *NarrativeCluster) Validate() error {
	if c.ID == "" {
		return errors.New("cluster ID must not be empty")
	}
	if err := checkSigned("sentiment score", c.SentimentScore); err != nil {
		return err
	}
	seen := make(map[string]bool, len(c.Narratives))
	for _, n := range c.Narratives {
		if n.ID == "" {
			return errors.New("narrative ID must not be empty")
		}
		if seen[n.ID] {
			return fmt.Errorf("duplicate narrative ID %q in cluster %s", n.ID, c.ID)
		}
		seen[n.ID] = true
		if err := checkSigned("narrative sentiment", n.Sentiment); err != nil {
			return err
		}
	}
	return nil
}

// TrendPoint is the strength of a theme on a given date.
type TrendPoint struct {
	Date     string  `json:"date"`
	Strength float64 `json:"strength"`
}

// Theme is a named narrative theme with its chronological trend.
type Theme struct {
	Name      string       `json:"name"`
	TrendData []TrendPoint `json:"trend_data"`
}

// NarrativeTrends is the evolution of all themes over a timeframe such as "7d".
type NarrativeTrends struct {
	Timeframe string  `json:"timeframe"`
	Themes    []Theme `json:"themes"`
}
