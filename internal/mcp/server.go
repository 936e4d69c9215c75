// ABOUTME: MCP server initialization and configuration
// ABOUTME: Exposes one browsing session to AI agents over stdio

package mcp

import (
	"context"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/harper/ufo/internal/logging"
	"github.com/harper/ufo/internal/session"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Options configures where save_sightings writes.
type Options struct {
	// Path is the data file written when save_sightings gets no path.
	Path string
	// Encoding is the data file encoding.
	Encoding string
	Logger   *log.Logger
}

// Server wraps an MCP server around a session. The session is not safe for
// concurrent use, so every handler holds mu.
type Server struct {
	mcp    *mcp.Server
	mu     sync.Mutex
	sess   *session.Session
	opts   Options
	logger *log.Logger
}

// NewServer creates MCP server with all capabilities.
func NewServer(sess *session.Session, opts Options) (*Server, error) {
	if sess == nil {
		return nil, fmt.Errorf("session is required")
	}

	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "ufo",
			Version: "1.0.0",
		},
		nil,
	)

	s := &Server{
		mcp:    mcpServer,
		sess:   sess,
		opts:   opts,
		logger: logger,
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server in stdio mode.
func (s *Server) Serve(ctx context.Context) error {
	s.logger.Info("serving mcp over stdio", "records", s.sess.Len())
	return s.mcp.Run(ctx, &mcp.StdioTransport{})
}
