// ABOUTME: Unit tests for GeoJSON generation
// ABOUTME: Tests Point and per-shape MultiPoint feature collection builders

package geojson

import (
	"encoding/json"
	"testing"

	"github.com/harper/ufo/internal/models"
	"github.com/harper/ufo/internal/store"
)

func testStore() *store.Store {
	return store.FromSlice([]models.Sighting{
		{
			OccurredAt: models.DateTime{Date: models.Date{Year: 1949, Month: 10, Day: 10}, Hour: 20, Minute: 30},
			City:       "san marcos",
			State:      "tx",
			Country:    "us",
			Shape:      "cylinder",
			Comment:    "early fall",
			ReportedAt: models.Date{Year: 2004, Month: 4, Day: 27},
			Latitude:   29.8830556,
			Longitude:  -97.9411111,
		},
		{City: "edna", Shape: "circle", Latitude: 28.9783333, Longitude: -96.6458333},
		{City: "lackland afb", Shape: "circle", Latitude: 29.3838889, Longitude: -98.5811111},
	})
}

func TestToPointsFeatureCollection(t *testing.T) {
	fc := ToPointsFeatureCollection(testStore())

	if fc.Type != "FeatureCollection" {
		t.Errorf("expected FeatureCollection type, got %s", fc.Type)
	}
	if len(fc.Features) != 3 {
		t.Fatalf("expected 3 features, got %d", len(fc.Features))
	}

	feature := fc.Features[0]
	if feature.Geometry.Type != "Point" {
		t.Errorf("expected Point geometry, got %s", feature.Geometry.Type)
	}

	coords, ok := feature.Geometry.Coordinates.(PointCoordinates)
	if !ok {
		t.Fatal("expected PointCoordinates")
	}
	// GeoJSON uses [lng, lat] order
	if coords[0] != -97.9411111 {
		t.Errorf("expected longitude -97.9411111, got %f", coords[0])
	}
	if coords[1] != 29.8830556 {
		t.Errorf("expected latitude 29.8830556, got %f", coords[1])
	}

	if feature.Properties["city"] != "san marcos" {
		t.Errorf("expected city 'san marcos', got %v", feature.Properties["city"])
	}
	if feature.Properties["occurred_at"] != "10/10/1949 20:30" {
		t.Errorf("unexpected occurred_at %v", feature.Properties["occurred_at"])
	}
	if feature.Properties["state"] != "tx" {
		t.Errorf("expected state 'tx', got %v", feature.Properties["state"])
	}

	if _, ok := fc.Features[1].Properties["state"]; ok {
		t.Error("empty state should be omitted")
	}
}

func TestToPointsFeatureCollection_Empty(t *testing.T) {
	fc := ToPointsFeatureCollection(store.New())
	if len(fc.Features) != 0 {
		t.Errorf("expected 0 features, got %d", len(fc.Features))
	}

	data, err := fc.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON failed: %v", err)
	}
	if string(data) != `{"type":"FeatureCollection","features":[]}` {
		t.Errorf("unexpected JSON: %s", data)
	}
}

func TestToShapeFeatureCollection(t *testing.T) {
	fc := ToShapeFeatureCollection(testStore())

	if len(fc.Features) != 2 {
		t.Fatalf("expected 2 features, got %d", len(fc.Features))
	}

	circle := fc.Features[0]
	if circle.Properties["shape"] != "circle" {
		t.Errorf("expected shapes sorted by name, got %v first", circle.Properties["shape"])
	}
	if circle.Geometry.Type != "MultiPoint" {
		t.Errorf("expected MultiPoint geometry, got %s", circle.Geometry.Type)
	}
	coords, ok := circle.Geometry.Coordinates.(MultiPointCoordinates)
	if !ok {
		t.Fatal("expected MultiPointCoordinates")
	}
	if len(coords) != 2 {
		t.Errorf("expected 2 points, got %d", len(coords))
	}
	if circle.Properties["point_count"] != 2 {
		t.Errorf("expected point_count 2, got %v", circle.Properties["point_count"])
	}
}

func TestToJSONIndent(t *testing.T) {
	fc := ToPointsFeatureCollection(testStore())

	data, err := fc.ToJSONIndent()
	if err != nil {
		t.Fatalf("ToJSONIndent failed: %v", err)
	}

	var parsed map[string]interface{}
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if parsed["type"] != "FeatureCollection" {
		t.Errorf("expected FeatureCollection, got %v", parsed["type"])
	}
}
