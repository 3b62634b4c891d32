// Package models defines the analytical entities served by the Looking Glass backend.
// Records are decoded verbatim from API responses; the client never reshapes them,
// it only aggregates them for display.
//
// Validate methods report violations of the invariants views rely on (parallel
// arrays, score ranges, unique ids). They are advisory: callers log violations
// and keep the data.
package models

import "fmt"

// Point is a 2D coordinate in narrative embedding space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// LatLng is a geographic coordinate.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func checkUnit(name string, v float64) error {
	if v < 0.0 || v > 1.0 {
		return fmt.Errorf("%s must be between 0.0 and 1.0, got %g", name, v)
	}
	return nil
}

func checkSigned(name string, v float64) error {
	if v < -1.0 || v > 1.0 {
		return fmt.Errorf("%s must be between -1.0 and 1.0, got %g", name, v)
	}
	return nil
}
