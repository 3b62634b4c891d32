package api

import (
	"context"
	"net/url"

	"github.com/rewired-gh/lookingglass/internal/models"
)

// DefaultTrendsTimeframe is the trends window when none is given.
const DefaultTrendsTimeframe = "7d"

// NarrativesService covers /narratives endpoints.
type NarrativesService struct {
	client *Client
}

// ClustersParams filters /narratives/clusters.
type ClustersParams struct {
	MinSize     *int
	MaxClusters *int
}

// Clusters retrieves narrative clusters.
func (s *NarrativesService) Clusters(ctx context.Context, p ClustersParams) ([]models.NarrativeCluster, error) {
	q := newQuery().
		int("min_size", p.MinSize).
		int("max_clusters", p.MaxClusters)

	var clusters []models.NarrativeCluster
	if err := s.client.get(ctx, "/narratives/clusters", q.values(), &clusters); err != nil {
		return nil, err
	}
	return clusters, nil
}

// Trends retrieves theme trends over timeframe ("7d", "30d", "90d").
// An empty timeframe uses DefaultTrendsTimeframe.
func (s *NarrativesService) Trends(ctx context.Context, timeframe string) (*models.NarrativeTrends, error) {
	if timeframe == "" {
		timeframe = DefaultTrendsTimeframe
	}
	q := newQuery().str("timeframe", timeframe)

	var trends models.NarrativeTrends
	if err := s.client.get(ctx, "/narratives/trends", q.values(), &trends); err != nil {
		return nil, err
	}
	return &trends, nil
}

// ClusterDetails retrieves one cluster including its temporal evolution.
func (s *NarrativesService) ClusterDetails(ctx context.Context, clusterID string) (*models.NarrativeCluster, error) {
	var cluster models.NarrativeCluster
	if err := s.client.get(ctx, "/narratives/cluster/"+url.PathEscape(clusterID), nil, &cluster); err != nil {
		return nil, err
	}
	return &cluster, nil
}
