package mcp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Version is the MCP server version.
const Version = "0.1.0"

// shutdownGrace bounds how long in-flight HTTP requests may drain after
// the serve context is cancelled.
const shutdownGrace = 5 * time.Second

// Server exposes the archive over the Model Context Protocol.
type Server struct {
	ports  *Ports
	server *mcp.Server
}

// NewServer creates an MCP server with the given ports.
func NewServer(ports *Ports) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}

	s := &Server{
		ports: ports,
		server: mcp.NewServer(&mcp.Implementation{
			Name:    "scrybe",
			Version: Version,
		}, nil),
	}
	s.registerTools()
	s.registerResources()
	return s, nil
}

// Run serves MCP over stdio until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// RunHTTP serves MCP over streamable HTTP on addr. When ctx is
// cancelled, in-flight requests get shutdownGrace to drain before the
// listener closes; a clean drain returns nil.
func (s *Server) RunHTTP(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr: addr,
		Handler: mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
			return s.server
		}, nil),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() { serveErr <- srv.ListenAndServe() }()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	drainCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := srv.Shutdown(drainCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}

	if err := <-serveErr; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
