package models

import (
	"errors"
	"fmt"
)

// PointDetails describes what happened at a geospatial point.
type PointDetails struct {
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	ImpactRadius float64 `json:"impact_radius"`
}

// GeospatialPoint is a located, categorized event.
type GeospatialPoint struct {
	ID        string       `json:"id"`
	Region    string       `json:"region"`
	Location  LatLng       `json:"location"`
	Category  string       `json:"category"`
	Intensity float64      `json:"intensity"` // 0–1
	Timestamp string       `json:"timestamp"`
	Details   PointDetails `json:"details"`
}

// Validate checks that all point fields are valid
func (p *GeospatialPoint) Validate() error {
	if p.ID == "" {
		return errors.New("point ID must not be empty")
	}
	if p.Region == "" {
		return errors.New("point region must not be empty")
	}
	return checkUnit("intensity", p.Intensity)
}

// RegionStatistics are server-side aggregates for a region.
type RegionStatistics struct {
	TotalEvents      int     `json:"total_events"`
	AverageIntensity float64 `json:"average_intensity"`
	Trend            string  `json:"trend"`
	DominantCategory string  `json:"dominant_category"`
}

// Region is a named map area.
type Region struct {
	Code          string            `json:"code,omitempty"`
	Name          string            `json:"name"`
	Center        LatLng            `json:"center"`
	ActivityLevel float64           `json:"activity_level"` // 0–1
	Statistics    *RegionStatistics `json:"statistics,omitempty"`
}

// HeatmapPoint is a weighted location for heatmap layers.
type HeatmapPoint struct {
	Location LatLng  `json:"location"`
	Weight   float64 `json:"weight"`
}

// SpatialClusterStatistics summarizes the points inside a spatial cluster.
type SpatialClusterStatistics struct {
	PointCount       int            `json:"point_count"`
	AverageIntensity float64        `json:"average_intensity"`
	Categories       map[string]int `json:"categories"`
}

// SpatialCluster is a group of nearby points.
type SpatialCluster struct {
	Center     LatLng                   `json:"center"`
	Radius     float64                  `json:"radius"`
	Points     []GeospatialPoint        `json:"points"`
	Statistics SpatialClusterStatistics `json:"statistics"`
}

// ValidatePoints checks every point and that ids are unique within the slice.
func ValidatePoints(points []GeospatialPoint) error {
	seen := make(map[string]bool, len(points))
	for i := range points {
		if err := points[i].Validate(); err != nil {
			return fmt.Errorf("point %d: %w", i, err)
		}
		if seen[points[i].ID] {
			return fmt.Errorf("duplicate point ID %q", points[i].ID)
		}
		seen[points[i].ID] = true
	}
	return nil
}
