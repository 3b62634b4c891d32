package models

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ContributingFactor is a named driver of an event probability.
type ContributingFactor struct {
	Name   string  `json:"name"`
	Impact float64 `json:"impact"` // 0–1
	Trend  string  `json:"trend"`  // "increasing", "stable" or "decreasing"
}

// Factors is a flat list of contributing factors. The backend may send either
// a flat list or one list per forecast day; both decode to a flat slice.
type Factors []ContributingFactor

// UnmarshalJSON accepts [{...}] and [[{...}], ...].
func (f *Factors) UnmarshalJSON(data []byte) error {
	var flat []ContributingFactor
	if err := json.Unmarshal(data, &flat); err == nil {
		*f = flat
		return nil
	}

	var nested [][]ContributingFactor
	if err := json.Unmarshal(data, &nested); err != nil {
		return fmt.Errorf("contributing factors: %w", err)
	}
	out := make([]ContributingFactor, 0, len(nested))
	for _, day := range nested {
		out = append(out, day...)
	}
	*f = out
	return nil
}

// ConfidenceInterval bounds the overall probability.
type ConfidenceInterval struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// ProbabilityData is the analysis of one category over a forecast window.
// Dates and Probabilities are positionally paired.
type ProbabilityData struct {
	Category            string             `json:"category"`
	Timeframe           int                `json:"timeframe"` // days
	Dates               []string           `json:"dates"`
	Probabilities       []float64          `json:"probabilities"`
	ContributingFactors Factors            `json:"contributing_factors"`
	OverallProbability  float64            `json:"overall_probability"`
	ConfidenceInterval  ConfidenceInterval `json:"confidence_interval"`
}

// Validate checks that all probability fields are valid
func (p *ProbabilityData) Validate() error {
	if p.Category == "" {
		return errors.New("category must not be empty")
	}
	if len(p.Dates) != len(p.Probabilities) {
		return fmt.Errorf("dates and probabilities must have equal length (%d != %d)", len(p.Dates), len(p.Probabilities))
	}
	for _, v := range p.Probabilities {
		if err := checkUnit("probability", v); err != nil {
			return err
		}
	}
	for _, f := range p.ContributingFactors {
		if err := checkUnit("factor impact", f.Impact); err != nil {
			return err
		}
	}
	if err := checkUnit("overall probability", p.OverallProbability); err != nil {
		return err
	}
	if p.ConfidenceInterval.Lower > p.ConfidenceInterval.Upper {
		return errors.New("confidence interval lower must be <= upper")
	}
	return nil
}

// HistoricalPoint is one day of past probability with its outcome.
type HistoricalPoint struct {
	Date             string  `json:"date"`
	Probability      float64 `json:"probability"`
	ActualOccurrence bool    `json:"actual_occurrence"`
}
