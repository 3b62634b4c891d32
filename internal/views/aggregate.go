// Package views holds per-page filter state and the pure aggregations pages
// compute from store snapshots on every render.
package views

import (
	"sort"

	"github.com/rewired-gh/lookingglass/internal/models"
)

// RegionStat is the per-region summary of geospatial points.
type RegionStat struct {
	Region       string
	Count        int
	AvgIntensity float64
}

// AggregateRegions groups points by region with a running-average intensity.
// Regions are returned in order of first appearance.
func AggregateRegions(points []models.GeospatialPoint) []RegionStat {
	index := make(map[string]int)
	var stats []RegionStat
	for _, p := range points {
		i, ok := index[p.Region]
		if !ok {
			i = len(stats)
			index[p.Region] = i
			stats = append(stats, RegionStat{Region: p.Region})
		}
		s := &stats[i]
		s.Count++
		s.AvgIntensity += (p.Intensity - s.AvgIntensity) / float64(s.Count)
	}
	return stats
}

// CategoryShare is a category's frequency among points.
type CategoryShare struct {
	Category string
	Count    int
	Percent  float64 // 0–100
}

// CategoryPercentages counts categories and converts counts to percentages of
// the total. Shares are ordered by count descending, then name.
func CategoryPercentages(points []models.GeospatialPoint) []CategoryShare {
	if len(points) == 0 {
		return nil
	}
	counts := make(map[string]int)
	for _, p := range points {
		counts[p.Category]++
	}

	shares := make([]CategoryShare, 0, len(counts))
	total := float64(len(points))
	for cat, n := range counts {
		shares = append(shares, CategoryShare{
			Category: cat,
			Count:    n,
			Percent:  float64(n) / total * 100,
		})
	}
	sort.Slice(shares, func(i, j int) bool {
		if shares[i].Count != shares[j].Count {
			return shares[i].Count > shares[j].Count
		}
		return shares[i].Category < shares[j].Category
	})
	return shares
}

// IntensityLevel buckets an intensity into the map legend levels.
func IntensityLevel(intensity float64) string {
	switch {
	case intensity >= 0.75:
		return "critical"
	case intensity >= 0.5:
		return "high"
	case intensity >= 0.25:
		return "medium"
	default:
		return "low"
	}
}

// SeriesPoint is one date/probability pair.
type SeriesPoint struct {
	Date        string
	Probability float64
}

// ProbabilitySeries pairs Dates and Probabilities positionally. Mismatched
// lengths are truncated to the shorter array.
func ProbabilitySeries(data *models.ProbabilityData) []SeriesPoint {
	if data == nil {
		return nil
	}
	n := len(data.Dates)
	if len(data.Probabilities) < n {
		n = len(data.Probabilities)
	}
	series := make([]SeriesPoint, n)
	for i := 0; i < n; i++ {
		series[i] = SeriesPoint{Date: data.Dates[i], Probability: data.Probabilities[i]}
	}
	return series
}

// ThemeStrength is a theme's most recent strength.
type ThemeStrength struct {
	Name     string
	Strength float64
}

// CurrentThemeStrengths takes the last trend point of every theme as its
// current strength. Themes without trend data are skipped.
func CurrentThemeStrengths(trends *models.NarrativeTrends) []ThemeStrength {
	if trends == nil {
		return nil
	}
	var out []ThemeStrength
	for _, th := range trends.Themes {
		if len(th.TrendData) == 0 {
			continue
		}
		out = append(out, ThemeStrength{Name: th.Name, Strength: th.TrendData[len(th.TrendData)-1].Strength})
	}
	return out
}

// EventsByDate returns a copy of events sorted by date, stable for equal dates.
func EventsByDate(events []models.TimelineEvent) []models.TimelineEvent {
	out := make([]models.TimelineEvent, len(events))
	copy(out, events)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date < out[j].Date
	})
	return out
}
