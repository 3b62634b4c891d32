package api

import (
	"context"

	"github.com/rewired-gh/lookingglass/internal/models"
)

// GeospatialService covers /geospatial endpoints.
type GeospatialService struct {
	client *Client
}

// PointsParams filters /geospatial/points.
type PointsParams struct {
	Region       string
	Category     string
	MinIntensity *float64
}

// Points retrieves geospatial points.
func (s *GeospatialService) Points(ctx context.Context, p PointsParams) ([]models.GeospatialPoint, error) {
	q := newQuery().
		str("region", p.Region).
		str("category", p.Category).
		float("min_intensity", p.MinIntensity)

	var points []models.GeospatialPoint
	if err := s.client.get(ctx, "/geospatial/points", q.values(), &points); err != nil {
		return nil, err
	}
	return points, nil
}

// Heatmap retrieves weighted heatmap points.
func (s *GeospatialService) Heatmap(ctx context.Context) ([]models.HeatmapPoint, error) {
	var points []models.HeatmapPoint
	if err := s.client.get(ctx, "/geospatial/heatmap", nil, &points); err != nil {
		return nil, err
	}
	return points, nil
}

// Regions retrieves the available regions.
func (s *GeospatialService) Regions(ctx context.Context) ([]models.Region, error) {
	var regions []models.Region
	if err := s.client.get(ctx, "/geospatial/regions", nil, &regions); err != nil {
		return nil, err
	}
	return regions, nil
}

// SpatialClustersParams filters /geospatial/clusters.
type SpatialClustersParams struct {
	MinPoints *int
	MaxRadius *float64
}

// Clusters retrieves spatial clusters of points.
func (s *GeospatialService) Clusters(ctx context.Context, p SpatialClustersParams) ([]models.SpatialCluster, error) {
	q := newQuery().
		int("min_points", p.MinPoints).
		float("max_radius", p.MaxRadius)

	var clusters []models.SpatialCluster
	if err := s.client.get(ctx, "/geospatial/clusters", q.values(), &clusters); err != nil {
		return nil, err
	}
	return clusters, nil
}
