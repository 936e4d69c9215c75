// ABOUTME: GeoJSON generation utilities
// ABOUTME: Converts sightings to GeoJSON FeatureCollections

package geojson

import (
	"encoding/json"
	"sort"

	"github.com/harper/ufo/internal/store"
)

// FeatureCollection represents a GeoJSON FeatureCollection.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// Feature represents a GeoJSON Feature.
type Feature struct {
	Type       string                 `json:"type"`
	Geometry   Geometry               `json:"geometry"`
	Properties map[string]interface{} `json:"properties"`
}

// Geometry represents a GeoJSON Geometry.
type Geometry struct {
	Type        string      `json:"type"`
	Coordinates interface{} `json:"coordinates"`
}

// PointCoordinates represents [longitude, latitude] for a Point.
type PointCoordinates [2]float64

// MultiPointCoordinates represents [[lng, lat], [lng, lat], ...] for a MultiPoint.
type MultiPointCoordinates []PointCoordinates

// ToPointsFeatureCollection converts every sighting in st, in store order, to a Point feature.
func ToPointsFeatureCollection(st *store.Store) *FeatureCollection {
	features := make([]Feature, 0, st.Len())

	for _, rec := range st.All() {
		props := map[string]interface{}{
			"occurred_at":      rec.OccurredAt.String(),
			"reported_at":      rec.ReportedAt.String(),
			"city":             rec.City,
			"shape":            rec.Shape,
			"duration_seconds": rec.DurationSeconds,
		}
		if rec.State != "" {
			props["state"] = rec.State
		}
		if rec.Country != "" {
			props["country"] = rec.Country
		}
		if rec.Comment != "" {
			props["comment"] = rec.Comment
		}

		features = append(features, Feature{
			Type: "Feature",
			Geometry: Geometry{
				Type:        "Point",
				Coordinates: PointCoordinates{rec.Longitude, rec.Latitude},
			},
			Properties: props,
		})
	}

	return &FeatureCollection{
		Type:     "FeatureCollection",
		Features: features,
	}
}

// ToShapeFeatureCollection groups sightings by reported shape into one
// MultiPoint feature per shape, ordered by shape name.
func ToShapeFeatureCollection(st *store.Store) *FeatureCollection {
	byShape := make(map[string]MultiPointCoordinates)
	for _, rec := range st.All() {
		byShape[rec.Shape] = append(byShape[rec.Shape], PointCoordinates{rec.Longitude, rec.Latitude})
	}

	shapes := make([]string, 0, len(byShape))
	for shape := range byShape {
		shapes = append(shapes, shape)
	}
	sort.Strings(shapes)

	features := make([]Feature, 0, len(shapes))
	for _, shape := range shapes {
		coords := byShape[shape]
		features = append(features, Feature{
			Type: "Feature",
			Geometry: Geometry{
				Type:        "MultiPoint",
				Coordinates: coords,
			},
			Properties: map[string]interface{}{
				"shape":       shape,
				"point_count": len(coords),
			},
		})
	}

	return &FeatureCollection{
		Type:     "FeatureCollection",
		Features: features,
	}
}

// ToJSON serializes a FeatureCollection to JSON.
func (fc *FeatureCollection) ToJSON() ([]byte, error) {
	return json.Marshal(fc)
}

// ToJSONIndent serializes a FeatureCollection to indented JSON.
func (fc *FeatureCollection) ToJSONIndent() ([]byte, error) {
	return json.MarshalIndent(fc, "", "  ")
}
