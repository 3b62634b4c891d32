package render

import (
	"bytes"
	"os"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"github.com/rewired-gh/lookingglass/internal/models"
	"github.com/rewired-gh/lookingglass/internal/store"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func sampleState() store.State {
	return store.State{
		Timeline: store.TimelineState{
			Events: []models.TimelineEvent{
				{Date: "2024-01-02", Type: "Economic", Title: "Rate decision", Impact: 0.8},
				{Date: "2024-01-01", Type: "Political", Title: "Election", Impact: 0.3},
			},
			Summary: &models.TimelineSummary{
				TotalEvents:   2,
				AverageImpact: 0.55,
				DateRange:     models.DateRange{Start: "2024-01-01", End: "2024-01-02"},
				EventsByType:  map[string]int{"Economic": 1, "Political": 1},
			},
		},
		Probability: store.ProbabilityState{
			Analysis: &models.ProbabilityData{
				Category:           "Economic",
				Timeframe:          30,
				Dates:              []string{"2024-01-01"},
				Probabilities:      []float64{0.42},
				OverallProbability: 0.42,
				ConfidenceInterval: models.ConfidenceInterval{Lower: 0.3, Upper: 0.5},
				ContributingFactors: models.Factors{
					{Name: "Factor 1", Impact: 0.2, Trend: "increasing"},
				},
			},
			Categories: []string{"Political", "Economic"},
		},
		Narratives: store.NarrativesState{
			Clusters: []models.NarrativeCluster{
				{ID: "c1", Theme: "Climate Change", Size: 5, SentimentScore: -0.6,
					Narratives: []models.Narrative{{ID: "n1", Title: "Floods"}}},
			},
			Trends: &models.NarrativeTrends{
				Timeframe: "7d",
				Themes:    []models.Theme{{Name: "Technology", TrendData: []models.TrendPoint{{Date: "d1", Strength: 0.7}}}},
			},
		},
		Geospatial: store.GeospatialState{
			Points: []models.GeospatialPoint{
				{ID: "p1", Region: "Europe", Category: "Social", Intensity: 0.4},
				{ID: "p2", Region: "Europe", Category: "Social", Intensity: 0.8},
			},
			Regions: []models.Region{{Name: "Europe", ActivityLevel: 0.5}},
		},
		Loading: map[store.Group]bool{},
	}
}

func TestTimeline(t *testing.T) {
	var buf bytes.Buffer
	Timeline(&buf, sampleState())
	out := buf.String()

	assert.Contains(t, out, "Events: 2")
	assert.Contains(t, out, "Economic")
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("Election")), bytes.Index(buf.Bytes(), []byte("Rate decision")),
		"events are listed by date")
	assert.Contains(t, out, "0.80 (critical)")
}

func TestProbability(t *testing.T) {
	var buf bytes.Buffer
	Probability(&buf, sampleState())
	out := buf.String()

	assert.Contains(t, out, "Economic over 30 days: 42.0%")
	assert.Contains(t, out, "Factor 1")
	assert.Contains(t, out, Icons.Up)
}

func TestNarratives(t *testing.T) {
	var buf bytes.Buffer
	Narratives(&buf, sampleState())
	out := buf.String()

	assert.Contains(t, out, "Climate Change")
	assert.Contains(t, out, "1 narratives", "sized by narrative count")
	assert.Contains(t, out, "-0.60")
	assert.Contains(t, out, "Trends (7d)")
}

func TestGeospatial(t *testing.T) {
	var buf bytes.Buffer
	Geospatial(&buf, sampleState())
	out := buf.String()

	assert.Contains(t, out, "Points: 2")
	assert.Contains(t, out, "0.60 (high)")
	assert.Contains(t, out, "100.0%")
}

func TestLoadingGroupShowsIndicator(t *testing.T) {
	st := sampleState()
	st.Loading[store.GroupGeospatial] = true

	var buf bytes.Buffer
	Geospatial(&buf, st)
	out := buf.String()

	assert.Contains(t, out, "Loading geospatial...")
	assert.NotContains(t, out, "Points:")
}

func TestDashboardShowsSharedError(t *testing.T) {
	st := sampleState()
	st.Error = store.MsgGeospatialPoints

	var buf bytes.Buffer
	Dashboard(&buf, st)
	out := buf.String()

	assert.Contains(t, out, store.MsgGeospatialPoints)
	for _, title := range []string{"Timeline", "Probability", "Narratives", "Geospatial"} {
		assert.Contains(t, out, title)
	}

	buf.Reset()
	Geospatial(&buf, st)
	assert.NotContains(t, buf.String(), store.MsgGeospatialPoints, "pages do not render the shared error")
}

func TestEmptyState(t *testing.T) {
	var buf bytes.Buffer
	Dashboard(&buf, store.State{})
	out := buf.String()

	assert.Contains(t, out, "No events")
	assert.Contains(t, out, "No analysis")
	assert.Contains(t, out, "No clusters")
}

func TestBar(t *testing.T) {
	assert.Equal(t, "█████░░░░░", bar(0.5, 10))
	assert.Equal(t, "░░░░░", bar(-1, 5))
	assert.Equal(t, "█████", bar(2, 5))
}
