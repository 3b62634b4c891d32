package store

import (
	"context"

	"github.com/rewired-gh/lookingglass/internal/api"
	"github.com/rewired-gh/lookingglass/internal/models"
)

// Failure messages written to the shared error slot.
const (
	MsgTimelineEvents      = "Failed to fetch timeline events"
	MsgTimelineSummary     = "Failed to fetch timeline summary"
	MsgProbabilityAnalysis = "Failed to fetch probability analysis"
	MsgCategories          = "Failed to fetch categories"
	MsgHistoricalData      = "Failed to fetch historical data"
	MsgNarrativeClusters   = "Failed to fetch narrative clusters"
	MsgNarrativeTrends     = "Failed to fetch narrative trends"
	MsgClusterDetails      = "Failed to fetch cluster details"
	MsgGeospatialPoints    = "Failed to fetch geospatial points"
	MsgHeatmapData         = "Failed to fetch heatmap data"
	MsgRegions             = "Failed to fetch regions"
	MsgSpatialClusters     = "Failed to fetch spatial clusters"
)

// FetchTimelineEvents loads timeline events matching p.
func (s *Store) FetchTimelineEvents(ctx context.Context, p api.EventsParams) {
	run(ctx, s, GroupTimeline, "fetchTimelineEvents", MsgTimelineEvents,
		func(ctx context.Context) ([]models.TimelineEvent, error) { return s.api.TimelineEvents(ctx, p) },
		func(st *State, v []models.TimelineEvent) { st.Timeline.Events = v })
}

// FetchTimelineSummary loads timeline summary statistics.
func (s *Store) FetchTimelineSummary(ctx context.Context) {
	run(ctx, s, GroupTimeline, "fetchTimelineSummary", MsgTimelineSummary,
		s.api.TimelineSummary,
		func(st *State, v *models.TimelineSummary) { st.Timeline.Summary = v })
}

// FetchProbabilityAnalysis loads the analysis for category over timeframe days.
func (s *Store) FetchProbabilityAnalysis(ctx context.Context, category string, timeframe int) {
	run(ctx, s, GroupProbability, "fetchProbabilityAnalysis", MsgProbabilityAnalysis,
		func(ctx context.Context) (*models.ProbabilityData, error) {
			return s.api.ProbabilityAnalysis(ctx, category, timeframe)
		},
		func(st *State, v *models.ProbabilityData) { st.Probability.Analysis = v })
}

// FetchCategories loads the list of analysable categories.
func (s *Store) FetchCategories(ctx context.Context) {
	run(ctx, s, GroupProbability, "fetchCategories", MsgCategories,
		s.api.ProbabilityCategories,
		func(st *State, v []string) { st.Probability.Categories = v })
}

// FetchHistoricalData loads historical probabilities matching p.
func (s *Store) FetchHistoricalData(ctx context.Context, p api.HistoricalParams) {
	run(ctx, s, GroupProbability, "fetchHistoricalData", MsgHistoricalData,
		func(ctx context.Context) ([]models.HistoricalPoint, error) { return s.api.ProbabilityHistorical(ctx, p) },
		func(st *State, v []models.HistoricalPoint) { st.Probability.Historical = v })
}

// FetchNarrativeClusters loads narrative clusters matching p.
func (s *Store) FetchNarrativeClusters(ctx context.Context, p api.ClustersParams) {
	run(ctx, s, GroupNarratives, "fetchNarrativeClusters", MsgNarrativeClusters,
		func(ctx context.Context) ([]models.NarrativeCluster, error) { return s.api.NarrativeClusters(ctx, p) },
		func(st *State, v []models.NarrativeCluster) { st.Narratives.Clusters = v })
}

// FetchNarrativeTrends loads theme trends over timeframe.
func (s *Store) FetchNarrativeTrends(ctx context.Context, timeframe string) {
	run(ctx, s, GroupNarratives, "fetchNarrativeTrends", MsgNarrativeTrends,
		func(ctx context.Context) (*models.NarrativeTrends, error) { return s.api.NarrativeTrends(ctx, timeframe) },
		func(st *State, v *models.NarrativeTrends) { st.Narratives.Trends = v })
}

// FetchClusterDetails loads one cluster into the selected slot.
func (s *Store) FetchClusterDetails(ctx context.Context, clusterID string) {
	run(ctx, s, GroupNarratives, "fetchClusterDetails", MsgClusterDetails,
		func(ctx context.Context) (*models.NarrativeCluster, error) { return s.api.ClusterDetails(ctx, clusterID) },
		func(st *State, v *models.NarrativeCluster) { st.Narratives.Selected = v })
}

// FetchGeospatialPoints loads geospatial points matching p.
func (s *Store) FetchGeospatialPoints(ctx context.Context, p api.PointsParams) {
	run(ctx, s, GroupGeospatial, "fetchGeospatialPoints", MsgGeospatialPoints,
		func(ctx context.Context) ([]models.GeospatialPoint, error) { return s.api.GeospatialPoints(ctx, p) },
		func(st *State, v []models.GeospatialPoint) { st.Geospatial.Points = v })
}

// FetchHeatmapData loads heatmap weights.
func (s *Store) FetchHeatmapData(ctx context.Context) {
	run(ctx, s, GroupGeospatial, "fetchHeatmapData", MsgHeatmapData,
		s.api.Heatmap,
		func(st *State, v []models.HeatmapPoint) { st.Geospatial.Heatmap = v })
}

// FetchRegions loads the region list.
func (s *Store) FetchRegions(ctx context.Context) {
	run(ctx, s, GroupGeospatial, "fetchRegions", MsgRegions,
		s.api.Regions,
		func(st *State, v []models.Region) { st.Geospatial.Regions = v })
}

// FetchSpatialClusters loads spatial clusters matching p.
func (s *Store) FetchSpatialClusters(ctx context.Context, p api.SpatialClustersParams) {
	run(ctx, s, GroupGeospatial, "fetchSpatialClusters", MsgSpatialClusters,
		func(ctx context.Context) ([]models.SpatialCluster, error) { return s.api.SpatialClusters(ctx, p) },
		func(st *State, v []models.SpatialCluster) { st.Geospatial.SpatialClusters = v })
}
