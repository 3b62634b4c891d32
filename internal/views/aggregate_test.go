package views

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rewired-gh/lookingglass/internal/models"
)

func TestAggregateRegions(t *testing.T) {
	points := []models.GeospatialPoint{
		{Region: "EU", Intensity: 0.4},
		{Region: "EU", Intensity: 0.8},
		{Region: "NA", Intensity: 0.2},
	}

	stats := AggregateRegions(points)
	require.Len(t, stats, 2)

	assert.Equal(t, "EU", stats[0].Region)
	assert.Equal(t, 2, stats[0].Count)
	assert.InDelta(t, 0.6, stats[0].AvgIntensity, 1e-9)

	assert.Equal(t, "NA", stats[1].Region)
	assert.Equal(t, 1, stats[1].Count)
	assert.InDelta(t, 0.2, stats[1].AvgIntensity, 1e-9)
}

func TestAggregateRegions_Empty(t *testing.T) {
	assert.Empty(t, AggregateRegions(nil))
}

func TestCategoryPercentages(t *testing.T) {
	points := []models.GeospatialPoint{
		{Category: "A"}, {Category: "A"}, {Category: "B"}, {Category: "C"},
	}

	shares := CategoryPercentages(points)
	require.Len(t, shares, 3)

	byCat := make(map[string]CategoryShare)
	total := 0.0
	for _, s := range shares {
		byCat[s.Category] = s
		total += s.Percent
	}

	assert.InDelta(t, 50.0, byCat["A"].Percent, 1e-9)
	assert.InDelta(t, 25.0, byCat["B"].Percent, 1e-9)
	assert.InDelta(t, 25.0, byCat["C"].Percent, 1e-9)
	assert.InDelta(t, 100.0, total, 1e-9)
	assert.Equal(t, "A", shares[0].Category, "largest share first")
	assert.Equal(t, []string{"B", "C"}, []string{shares[1].Category, shares[2].Category})
}

func TestCategoryPercentages_Empty(t *testing.T) {
	assert.Nil(t, CategoryPercentages(nil))
}

func TestIntensityLevel(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0.1, "low"},
		{0.25, "medium"},
		{0.6, "high"},
		{0.75, "critical"},
		{1.0, "critical"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IntensityLevel(tt.in), "intensity %v", tt.in)
	}
}

func TestProbabilitySeries(t *testing.T) {
	data := &models.ProbabilityData{
		Dates:         []string{"d1", "d2", "d3"},
		Probabilities: []float64{0.1, 0.2},
	}

	series := ProbabilitySeries(data)
	require.Len(t, series, 2, "mismatched arrays truncate to the shorter")
	assert.Equal(t, SeriesPoint{Date: "d2", Probability: 0.2}, series[1])

	assert.Nil(t, ProbabilitySeries(nil))
}

func TestCurrentThemeStrengths(t *testing.T) {
	trends := &models.NarrativeTrends{
		Timeframe: "7d",
		Themes: []models.Theme{
			{Name: "Technology", TrendData: []models.TrendPoint{{Date: "d1", Strength: 0.3}, {Date: "d2", Strength: 0.7}}},
			{Name: "Politics"},
		},
	}

	current := CurrentThemeStrengths(trends)
	require.Len(t, current, 1)
	assert.Equal(t, ThemeStrength{Name: "Technology", Strength: 0.7}, current[0])
}

func TestEventsByDate(t *testing.T) {
	events := []models.TimelineEvent{
		{Date: "2024-01-03", Title: "c"},
		{Date: "2024-01-01", Title: "a"},
		{Date: "2024-01-03", Title: "d"},
		{Date: "2024-01-02", Title: "b"},
	}

	sorted := EventsByDate(events)
	titles := make([]string, len(sorted))
	for i, e := range sorted {
		titles[i] = e.Title
	}
	assert.Equal(t, []string{"a", "b", "c", "d"}, titles)
	assert.Equal(t, "c", events[0].Title, "input must not be reordered")
}
