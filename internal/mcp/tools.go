// ABOUTME: MCP tool definitions and handlers
// ABOUTME: Lets AI agents page, sort, filter, add, remove, and save sightings

package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/harper/ufo/internal/compare"
	"github.com/harper/ufo/internal/match"
	"github.com/harper/ufo/internal/models"
	"github.com/harper/ufo/internal/session"
	"github.com/harper/ufo/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	s.registerListTool()
	s.registerNextPageTool()
	s.registerResetTool()
	s.registerSortTool()
	s.registerSearchTool()
	s.registerAddTool()
	s.registerRemoveTool()
	s.registerSaveTool()
}

// SightingOutput is one sighting as shown to agents.
type SightingOutput struct {
	Index           int     `json:"index"`
	OccurredAt      string  `json:"occurred_at"`
	City            string  `json:"city"`
	State           string  `json:"state,omitempty"`
	Country         string  `json:"country,omitempty"`
	Shape           string  `json:"shape,omitempty"`
	DurationSeconds int     `json:"duration_seconds"`
	Comment         string  `json:"comment,omitempty"`
	ReportedAt      string  `json:"reported_at"`
	Latitude        float64 `json:"latitude"`
	Longitude       float64 `json:"longitude"`
}

func toOutput(index int, rec *models.Sighting) SightingOutput {
	return SightingOutput{
		Index:           index,
		OccurredAt:      rec.OccurredAt.String(),
		City:            rec.City,
		State:           rec.State,
		Country:         rec.Country,
		Shape:           rec.Shape,
		DurationSeconds: rec.DurationSeconds,
		Comment:         rec.Comment,
		ReportedAt:      rec.ReportedAt.String(),
		Latitude:        rec.Latitude,
		Longitude:       rec.Longitude,
	}
}

// PageOutput describes the visible window after a tool call.
type PageOutput struct {
	Mode      string           `json:"mode"`
	Filter    string           `json:"filter,omitempty"`
	Offset    int              `json:"offset"`
	Total     int              `json:"total"`
	End       bool             `json:"end,omitempty"`
	Swaps     int              `json:"swaps,omitempty"`
	Message   string           `json:"message,omitempty"`
	Sightings []SightingOutput `json:"sightings"`
}

// page snapshots the session's window. Callers hold s.mu.
func (s *Server) page() PageOutput {
	view := s.sess.View()
	out := PageOutput{
		Mode:      s.sess.Mode().String(),
		Filter:    s.sess.FilterDescription(),
		Offset:    s.sess.Offset(),
		Total:     s.sess.Len(),
		Sightings: make([]SightingOutput, 0, len(view)),
	}
	for _, e := range view {
		out.Sightings = append(out.Sightings, toOutput(e.Index, e.Sighting))
	}
	return out
}

func textResult(v any) *mcp.CallToolResult {
	jsonBytes, _ := json.MarshalIndent(v, "", "  ") //nolint:errchkjson // output is always serializable
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(jsonBytes)}},
	}
}

var emptySchema = map[string]interface{}{
	"type":       "object",
	"properties": map[string]interface{}{},
}

// EmptyInput is used by tools that take no arguments.
type EmptyInput struct{}

func (s *Server) registerListTool() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "list_sightings",
		Description: "Show the current page of up to 10 sightings, with the active filter if any. Index values are used by remove_sighting.",
		InputSchema: emptySchema,
	}, s.handleList)
}

func (s *Server) handleList(_ context.Context, _ *mcp.CallToolRequest, _ EmptyInput) (*mcp.CallToolResult, PageOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := s.page()
	return textResult(out), out, nil
}

func (s *Server) registerNextPageTool() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "next_page",
		Description: "Advance to the next page of sightings (or of filter matches). Sets end=true and keeps the current page when there is nothing further.",
		InputSchema: emptySchema,
	}, s.handleNextPage)
}

func (s *Server) handleNextPage(_ context.Context, _ *mcp.CallToolRequest, _ EmptyInput) (*mcp.CallToolResult, PageOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	moved := s.sess.PageForward()
	out := s.page()
	out.End = !moved
	return textResult(out), out, nil
}

func (s *Server) registerResetTool() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "reset_view",
		Description: "Clear any filter and return to the first page of all sightings.",
		InputSchema: emptySchema,
	}, s.handleReset)
}

func (s *Server) handleReset(_ context.Context, _ *mcp.CallToolRequest, _ EmptyInput) (*mcp.CallToolResult, PageOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sess.PageReset()
	out := s.page()
	return textResult(out), out, nil
}

// SortInput defines input for sort_sightings tool.
type SortInput struct {
	Field     string `json:"field"`
	Direction string `json:"direction,omitempty"`
}

func sortFieldNames() []string {
	names := make([]string, 0, len(compare.Fields()))
	for _, f := range compare.Fields() {
		names = append(names, f.String())
	}
	return names
}

func (s *Server) registerSortTool() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "sort_sightings",
		Description: "Sort all sightings in place by a field. The order is kept when saving.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"field": map[string]interface{}{
					"type":        "string",
					"enum":        sortFieldNames(),
					"description": "Field to sort by",
				},
				"direction": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"asc", "desc"},
					"description": "Sort direction (default asc)",
				},
			},
			"required": []string{"field"},
		},
	}, s.handleSort)
}

func (s *Server) handleSort(_ context.Context, _ *mcp.CallToolRequest, input SortInput) (*mcp.CallToolResult, PageOutput, error) {
	dir, err := compare.ParseDirection(input.Direction)
	if err != nil {
		return nil, PageOutput{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	swaps, err := s.sess.SortBy(input.Field, dir)
	if err != nil {
		return nil, PageOutput{}, err
	}
	out := s.page()
	out.Swaps = swaps
	return textResult(out), out, nil
}

// SearchInput defines input for search_sightings tool.
type SearchInput struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

func (s *Server) registerSearchTool() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "search_sightings",
		Description: "Filter sightings by a field. city matches by case-sensitive prefix; state, country, and shape match exactly; occurred and reported take a M/D/YYYY date. Shows up to 10 matches per page; an empty result clears the filter.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"field": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"city", "state", "country", "shape", "occurred", "reported"},
					"description": "Field to match",
				},
				"value": map[string]interface{}{
					"type":        "string",
					"description": "Value to match (e.g., 'san', 'tx', 'disk', '10/10/1949')",
				},
			},
			"required": []string{"field", "value"},
		},
	}, s.handleSearch)
}

func (s *Server) handleSearch(_ context.Context, _ *mcp.CallToolRequest, input SearchInput) (*mcp.CallToolResult, PageOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var err error
	if match.IsDateField(input.Field) {
		var d models.Date
		if d, err = storage.ParseDate(input.Value); err != nil {
			return nil, PageOutput{}, err
		}
		_, err = s.sess.SearchByDate(input.Field, d)
	} else {
		_, err = s.sess.SearchByString(input.Field, input.Value)
	}
	if err != nil {
		return nil, PageOutput{}, err
	}
	out := s.page()
	if s.sess.Mode() != session.Filtered {
		out.Message = fmt.Sprintf("no matches for %s %q", input.Field, input.Value)
	}
	return textResult(out), out, nil
}

// AddInput defines input for add_sighting tool.
type AddInput struct {
	OccurredAt      string  `json:"occurred_at"`
	City            string  `json:"city"`
	State           string  `json:"state,omitempty"`
	Country         string  `json:"country,omitempty"`
	Shape           string  `json:"shape,omitempty"`
	DurationSeconds int     `json:"duration_seconds,omitempty"`
	Comment         string  `json:"comment,omitempty"`
	ReportedAt      string  `json:"reported_at,omitempty"`
	Latitude        float64 `json:"latitude"`
	Longitude       float64 `json:"longitude"`
}

func (s *Server) registerAddTool() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "add_sighting",
		Description: "Add a sighting at the front of the list.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"occurred_at": map[string]interface{}{
					"type":        "string",
					"description": "When it happened, M/D/YYYY H:MM (e.g., '10/10/1949 20:30')",
				},
				"city": map[string]interface{}{
					"type":        "string",
					"description": "City name",
				},
				"state": map[string]interface{}{
					"type":        "string",
					"description": "Two letter state code",
				},
				"country": map[string]interface{}{
					"type":        "string",
					"description": "Two letter country code",
				},
				"shape": map[string]interface{}{
					"type":        "string",
					"description": "Reported shape (e.g., 'disk', 'light')",
				},
				"duration_seconds": map[string]interface{}{
					"type":        "integer",
					"description": "How long it was seen, in seconds",
				},
				"comment": map[string]interface{}{
					"type":        "string",
					"description": "Witness description",
				},
				"reported_at": map[string]interface{}{
					"type":        "string",
					"description": "When it was reported, M/D/YYYY",
				},
				"latitude": map[string]interface{}{
					"type":        "number",
					"description": "Latitude coordinate (-90 to 90)",
				},
				"longitude": map[string]interface{}{
					"type":        "number",
					"description": "Longitude coordinate (-180 to 180)",
				},
			},
			"required": []string{"occurred_at", "city", "latitude", "longitude"},
		},
	}, s.handleAdd)
}

func (s *Server) handleAdd(_ context.Context, _ *mcp.CallToolRequest, input AddInput) (*mcp.CallToolResult, SightingOutput, error) {
	if err := models.ValidateCoordinates(input.Latitude, input.Longitude); err != nil {
		return nil, SightingOutput{}, err
	}
	for _, code := range []string{input.State, input.Country} {
		if code == "" {
			continue
		}
		if err := models.ValidateCode(code); err != nil {
			return nil, SightingOutput{}, err
		}
	}
	occurred, err := storage.ParseDateTime(input.OccurredAt)
	if err != nil {
		return nil, SightingOutput{}, fmt.Errorf("invalid occurred_at: %w", err)
	}
	var reported models.Date
	if input.ReportedAt != "" {
		if reported, err = storage.ParseDate(input.ReportedAt); err != nil {
			return nil, SightingOutput{}, fmt.Errorf("invalid reported_at: %w", err)
		}
	}

	rec := models.Sighting{
		OccurredAt:      occurred,
		City:            input.City,
		State:           input.State,
		Country:         input.Country,
		Shape:           input.Shape,
		DurationSeconds: input.DurationSeconds,
		Comment:         input.Comment,
		ReportedAt:      reported,
		Latitude:        input.Latitude,
		Longitude:       input.Longitude,
	}.Truncate()

	s.mu.Lock()
	s.sess.Add(rec)
	s.mu.Unlock()

	out := toOutput(0, &rec)
	return textResult(out), out, nil
}

// RemoveInput defines input for remove_sighting tool.
type RemoveInput struct {
	Index int `json:"index"`
}

// RemoveOutput defines output for remove_sighting tool.
type RemoveOutput struct {
	Removed  bool           `json:"removed"`
	Sighting SightingOutput `json:"sighting"`
	Total    int            `json:"total"`
}

func (s *Server) registerRemoveTool() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "remove_sighting",
		Description: "Remove the sighting shown at an index on the current page (see list_sightings). Clears any filter.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"index": map[string]interface{}{
					"type":        "integer",
					"minimum":     0,
					"maximum":     9,
					"description": "Index on the current page",
				},
			},
			"required": []string{"index"},
		},
	}, s.handleRemove)
}

func (s *Server) handleRemove(_ context.Context, _ *mcp.CallToolRequest, input RemoveInput) (*mcp.CallToolResult, RemoveOutput, error) {
	if input.Index < 0 {
		return nil, RemoveOutput{}, fmt.Errorf("index must not be negative")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var target SightingOutput
	for _, e := range s.sess.View() {
		if e.Index == input.Index {
			target = toOutput(e.Index, e.Sighting)
		}
	}

	ok, err := s.sess.RemoveAt(input.Index)
	if err != nil {
		return nil, RemoveOutput{}, fmt.Errorf("failed to remove sighting: %w", err)
	}

	out := RemoveOutput{Removed: ok, Total: s.sess.Len()}
	if ok {
		out.Sighting = target
	}
	return textResult(out), out, nil
}

// SaveInput defines input for save_sightings tool.
type SaveInput struct {
	Path string `json:"path,omitempty"`
}

// SaveOutput defines output for save_sightings tool.
type SaveOutput struct {
	Path  string `json:"path"`
	Count int    `json:"count"`
}

func (s *Server) registerSaveTool() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "save_sightings",
		Description: "Write all sightings, in current order, to the data file.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"path": map[string]interface{}{
					"type":        "string",
					"description": "Optional file to write instead of the loaded data file",
				},
			},
		},
	}, s.handleSave)
}

func (s *Server) handleSave(_ context.Context, _ *mcp.CallToolRequest, input SaveInput) (*mcp.CallToolResult, SaveOutput, error) {
	path := input.Path
	if path == "" {
		path = s.opts.Path
	}
	if path == "" {
		return nil, SaveOutput{}, fmt.Errorf("no data file to save to")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := storage.Save(path, s.sess.Store(), s.opts.Encoding); err != nil {
		return nil, SaveOutput{}, fmt.Errorf("failed to save: %w", err)
	}
	s.logger.Info("saved data file", "path", path, "records", s.sess.Len())

	out := SaveOutput{Path: path, Count: s.sess.Len()}
	return textResult(out), out, nil
}
