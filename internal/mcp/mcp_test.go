// ABOUTME: Tests for MCP server, tools, and resources
// ABOUTME: Calls tool handlers directly against an in-memory session

package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/harper/ufo/internal/models"
	"github.com/harper/ufo/internal/session"
	"github.com/harper/ufo/internal/storage"
	"github.com/harper/ufo/internal/store"
)

func newTestServer(t *testing.T, n int, opts Options) *Server {
	t.Helper()
	recs := make([]models.Sighting, n)
	for i := range recs {
		recs[i] = models.Sighting{
			City:            fmt.Sprintf("city%02d", i),
			Shape:           []string{"disk", "light", "light"}[i%3],
			DurationSeconds: n - i,
			ReportedAt:      models.Date{Year: 2004, Month: 4, Day: 27},
		}
	}
	server, err := NewServer(session.New(store.FromSlice(recs), nil), opts)
	if err != nil {
		t.Fatalf("NewServer failed: %v", err)
	}
	return server
}

func TestNewServer(t *testing.T) {
	server := newTestServer(t, 1, Options{})
	if server.mcp == nil {
		t.Error("expected non-nil mcp server")
	}
	if server.sess == nil {
		t.Error("expected non-nil session")
	}
}

func TestNewServer_NilSession(t *testing.T) {
	if _, err := NewServer(nil, Options{}); err == nil {
		t.Error("expected error for nil session")
	}
}

func TestHandleList(t *testing.T) {
	server := newTestServer(t, 12, Options{})

	result, out, err := server.handleList(context.Background(), nil, EmptyInput{})
	if err != nil {
		t.Fatalf("handleList failed: %v", err)
	}
	if result == nil || len(result.Content) != 1 {
		t.Fatal("expected one content item")
	}
	if out.Total != 12 || len(out.Sightings) != 10 {
		t.Errorf("expected 10 of 12, got %d of %d", len(out.Sightings), out.Total)
	}
	if out.Mode != "normal" {
		t.Errorf("expected normal mode, got %q", out.Mode)
	}
	if out.Sightings[3].Index != 3 || out.Sightings[3].City != "city03" {
		t.Errorf("unexpected entry %+v", out.Sightings[3])
	}
}

func TestHandleNextPage(t *testing.T) {
	server := newTestServer(t, 12, Options{})

	_, out, err := server.handleNextPage(context.Background(), nil, EmptyInput{})
	if err != nil {
		t.Fatalf("handleNextPage failed: %v", err)
	}
	if out.End || out.Offset != 10 || len(out.Sightings) != 2 {
		t.Errorf("expected second page of 2, got %+v", out)
	}

	_, out, _ = server.handleNextPage(context.Background(), nil, EmptyInput{})
	if !out.End {
		t.Error("expected end of sightings")
	}
	if len(out.Sightings) != 2 {
		t.Errorf("expected last page to stay visible, got %d", len(out.Sightings))
	}

	_, out, _ = server.handleReset(context.Background(), nil, EmptyInput{})
	if out.Offset != 0 {
		t.Errorf("expected reset to offset 0, got %d", out.Offset)
	}
}

func TestHandleSort(t *testing.T) {
	server := newTestServer(t, 5, Options{})

	_, out, err := server.handleSort(context.Background(), nil, SortInput{Field: "duration"})
	if err != nil {
		t.Fatalf("handleSort failed: %v", err)
	}
	if out.Swaps == 0 {
		t.Error("expected swaps for reversed durations")
	}
	for i, s := range out.Sightings {
		if s.DurationSeconds != i+1 {
			t.Errorf("position %d: expected duration %d, got %d", i, i+1, s.DurationSeconds)
		}
	}

	_, out, _ = server.handleSort(context.Background(), nil, SortInput{Field: "duration"})
	if out.Swaps != 0 {
		t.Errorf("sorting again should not swap, got %d", out.Swaps)
	}
}

func TestHandleSort_Invalid(t *testing.T) {
	server := newTestServer(t, 2, Options{})

	if _, _, err := server.handleSort(context.Background(), nil, SortInput{Field: "color"}); err == nil {
		t.Error("expected error for unknown field")
	}
	if _, _, err := server.handleSort(context.Background(), nil, SortInput{Field: "city", Direction: "up"}); err == nil {
		t.Error("expected error for unknown direction")
	}
}

func TestHandleSearch(t *testing.T) {
	server := newTestServer(t, 12, Options{})

	_, out, err := server.handleSearch(context.Background(), nil, SearchInput{Field: "shape", Value: "disk"})
	if err != nil {
		t.Fatalf("handleSearch failed: %v", err)
	}
	if out.Mode != "filtered" || len(out.Sightings) != 4 {
		t.Errorf("expected 4 filtered disks, got %+v", out)
	}
	for _, s := range out.Sightings {
		if s.Shape != "disk" {
			t.Errorf("unexpected shape %q", s.Shape)
		}
	}

	_, out, err = server.handleSearch(context.Background(), nil, SearchInput{Field: "reported", Value: "4/27/2004"})
	if err != nil {
		t.Fatalf("date search failed: %v", err)
	}
	if len(out.Sightings) != 10 {
		t.Errorf("expected a full page of matches, got %d", len(out.Sightings))
	}
}

func TestHandleSearch_NoMatches(t *testing.T) {
	server := newTestServer(t, 3, Options{})

	_, out, err := server.handleSearch(context.Background(), nil, SearchInput{Field: "city", Value: "roswell"})
	if err != nil {
		t.Fatalf("handleSearch failed: %v", err)
	}
	if out.Mode != "normal" || out.Message == "" {
		t.Errorf("expected normal mode with a message, got %+v", out)
	}
}

func TestHandleSearch_Invalid(t *testing.T) {
	server := newTestServer(t, 3, Options{})

	if _, _, err := server.handleSearch(context.Background(), nil, SearchInput{Field: "color", Value: "green"}); err == nil {
		t.Error("expected error for unknown field")
	}
	if _, _, err := server.handleSearch(context.Background(), nil, SearchInput{Field: "occurred", Value: "yesterday"}); err == nil {
		t.Error("expected error for malformed date")
	}
}

func TestHandleAdd(t *testing.T) {
	server := newTestServer(t, 2, Options{})

	input := AddInput{
		OccurredAt: "10/10/1949 20:30",
		City:       "san marcos",
		State:      "tx",
		Country:    "us",
		Shape:      "cylinder",
		ReportedAt: "4/27/2004",
		Latitude:   29.8830556,
		Longitude:  -97.9411111,
	}
	_, out, err := server.handleAdd(context.Background(), nil, input)
	if err != nil {
		t.Fatalf("handleAdd failed: %v", err)
	}
	if out.OccurredAt != "10/10/1949 20:30" {
		t.Errorf("unexpected occurred_at %q", out.OccurredAt)
	}

	_, page, _ := server.handleList(context.Background(), nil, EmptyInput{})
	if page.Total != 3 || page.Sightings[0].City != "san marcos" {
		t.Errorf("expected new sighting at the front, got %+v", page.Sightings[0])
	}
}

func TestHandleAdd_Invalid(t *testing.T) {
	server := newTestServer(t, 0, Options{})

	tests := []struct {
		name  string
		input AddInput
	}{
		{"latitude", AddInput{OccurredAt: "1/1/2000 0:00", Latitude: 100}},
		{"state", AddInput{OccurredAt: "1/1/2000 0:00", State: "texas"}},
		{"occurred", AddInput{OccurredAt: "2000-01-01"}},
		{"reported", AddInput{OccurredAt: "1/1/2000 0:00", ReportedAt: "soon"}},
	}
	for _, tt := range tests {
		if _, _, err := server.handleAdd(context.Background(), nil, tt.input); err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
	}
	if server.sess.Len() != 0 {
		t.Errorf("invalid input should not add, have %d", server.sess.Len())
	}
}

func TestHandleRemove(t *testing.T) {
	server := newTestServer(t, 6, Options{})
	_, _, _ = server.handleSearch(context.Background(), nil, SearchInput{Field: "shape", Value: "disk"})

	_, out, err := server.handleRemove(context.Background(), nil, RemoveInput{Index: 1})
	if err != nil {
		t.Fatalf("handleRemove failed: %v", err)
	}
	if !out.Removed || out.Sighting.City != "city03" || out.Total != 5 {
		t.Errorf("unexpected output %+v", out)
	}
}

func TestHandleRemove_OutOfRange(t *testing.T) {
	server := newTestServer(t, 2, Options{})

	if _, _, err := server.handleRemove(context.Background(), nil, RemoveInput{Index: 5}); err == nil {
		t.Error("expected error past the last sighting")
	}
	if _, _, err := server.handleRemove(context.Background(), nil, RemoveInput{Index: -1}); err == nil {
		t.Error("expected error for negative index")
	}
}

func TestHandleSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sightings.csv")
	server := newTestServer(t, 4, Options{Path: path})

	_, out, err := server.handleSave(context.Background(), nil, SaveInput{})
	if err != nil {
		t.Fatalf("handleSave failed: %v", err)
	}
	if out.Path != path || out.Count != 4 {
		t.Errorf("unexpected output %+v", out)
	}

	loaded, err := storage.Load(path, storage.LoadOptions{})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Len() != 4 {
		t.Errorf("expected 4 saved sightings, got %d", loaded.Len())
	}
}

func TestHandleSave_NoPath(t *testing.T) {
	server := newTestServer(t, 1, Options{})
	if _, _, err := server.handleSave(context.Background(), nil, SaveInput{}); err == nil {
		t.Error("expected error without a path")
	}
}

func TestHandleSightingsResource(t *testing.T) {
	server := newTestServer(t, 13, Options{})

	result, err := server.handleSightingsResource(context.Background(), nil)
	if err != nil {
		t.Fatalf("handleSightingsResource failed: %v", err)
	}
	if len(result.Contents) != 1 || result.Contents[0].URI != sightingsURI {
		t.Fatalf("unexpected contents %+v", result.Contents)
	}

	var body SightingsResource
	if err := json.Unmarshal([]byte(result.Contents[0].Text), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body.Count != 13 || len(body.Sightings) != 13 {
		t.Errorf("expected all 13 sightings, got %d", body.Count)
	}
	if body.Sightings[12].City != "city12" {
		t.Errorf("expected store order, got %q last", body.Sightings[12].City)
	}
}
