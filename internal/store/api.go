package store

import (
	"context"

	"github.com/rewired-gh/lookingglass/internal/api"
	"github.com/rewired-gh/lookingglass/internal/models"
)

// API is the backend surface the store fetches from. *api.Client satisfies it
// through FromClient; tests inject fakes.
type API interface {
	TimelineEvents(ctx context.Context, p api.EventsParams) ([]models.TimelineEvent, error)
	TimelineSummary(ctx context.Context) (*models.TimelineSummary, error)

	ProbabilityAnalysis(ctx context.Context, category string, timeframe int) (*models.ProbabilityData, error)
	ProbabilityCategories(ctx context.Context) ([]string, error)
	ProbabilityHistorical(ctx context.Context, p api.HistoricalParams) ([]models.HistoricalPoint, error)

	NarrativeClusters(ctx context.Context, p api.ClustersParams) ([]models.NarrativeCluster, error)
	NarrativeTrends(ctx context.Context, timeframe string) (*models.NarrativeTrends, error)
	ClusterDetails(ctx context.Context, clusterID string) (*models.NarrativeCluster, error)

	GeospatialPoints(ctx context.Context, p api.PointsParams) ([]models.GeospatialPoint, error)
	Heatmap(ctx context.Context) ([]models.HeatmapPoint, error)
	Regions(ctx context.Context) ([]models.Region, error)
	SpatialClusters(ctx context.Context, p api.SpatialClustersParams) ([]models.SpatialCluster, error)
}

// FromClient adapts an api.Client to the API interface.
func FromClient(c *api.Client) API {
	return clientAPI{c: c}
}

type clientAPI struct {
	c *api.Client
}

func (a clientAPI) TimelineEvents(ctx context.Context, p api.EventsParams) ([]models.TimelineEvent, error) {
	return a.c.Timeline.Events(ctx, p)
}

func (a clientAPI) TimelineSummary(ctx context.Context) (*models.TimelineSummary, error) {
	return a.c.Timeline.Summary(ctx)
}

func (a clientAPI) ProbabilityAnalysis(ctx context.Context, category string, timeframe int) (*models.ProbabilityData, error) {
	return a.c.Probability.Analyze(ctx, category, timeframe)
}

func (a clientAPI) ProbabilityCategories(ctx context.Context) ([]string, error) {
	return a.c.Probability.Categories(ctx)
}

func (a clientAPI) ProbabilityHistorical(ctx context.Context, p api.HistoricalParams) ([]models.HistoricalPoint, error) {
	return a.c.Probability.Historical(ctx, p)
}

func (a clientAPI) NarrativeClusters(ctx context.Context, p api.ClustersParams) ([]models.NarrativeCluster, error) {
	return a.c.Narratives.Clusters(ctx, p)
}

func (a clientAPI) NarrativeTrends(ctx context.Context, timeframe string) (*models.NarrativeTrends, error) {
	return a.c.Narratives.Trends(ctx, timeframe)
}

func (a clientAPI) ClusterDetails(ctx context.Context, clusterID string) (*models.NarrativeCluster, error) {
	return a.c.Narratives.ClusterDetails(ctx, clusterID)
}

func (a clientAPI) GeospatialPoints(ctx context.Context, p api.PointsParams) ([]models.GeospatialPoint, error) {
	return a.c.Geospatial.Points(ctx, p)
}

func (a clientAPI) Heatmap(ctx context.Context) ([]models.HeatmapPoint, error) {
	return a.c.Geospatial.Heatmap(ctx)
}

func (a clientAPI) Regions(ctx context.Context) ([]models.Region, error) {
	return a.c.Geospatial.Regions(ctx)
}

func (a clientAPI) SpatialClusters(ctx context.Context, p api.SpatialClustersParams) ([]models.SpatialCluster, error) {
	return a.c.Geospatial.Clusters(ctx, p)
}
