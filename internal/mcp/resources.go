// ABOUTME: MCP resource definitions
// ABOUTME: Provides a read-only JSON view of every loaded sighting

package mcp

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const sightingsURI = "ufo://sightings"

func (s *Server) registerResources() {
	s.mcp.AddResource(&mcp.Resource{
		Name:        sightingsURI,
		Description: "All loaded sightings in current store order",
		URI:         sightingsURI,
		MIMEType:    "application/json",
	}, s.handleSightingsResource)
}

// SightingsResource is the body of the ufo://sightings resource.
type SightingsResource struct {
	Sightings []SightingOutput `json:"sightings"`
	Count     int              `json:"count"`
}

func (s *Server) handleSightingsResource(_ context.Context, _ *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	s.mu.Lock()
	st := s.sess.Store()
	out := SightingsResource{Sightings: make([]SightingOutput, 0, st.Len())}
	for _, rec := range st.All() {
		out.Sightings = append(out.Sightings, toOutput(len(out.Sightings), rec))
	}
	s.mu.Unlock()
	out.Count = len(out.Sightings)

	jsonBytes, _ := json.MarshalIndent(out, "", "  ") //nolint:errchkjson // output is always serializable

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{
				URI:      sightingsURI,
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		},
	}, nil
}
