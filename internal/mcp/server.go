package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/ziadkadry99/sdkview/internal/sdk"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server that exposes query tools over one loaded game.
type Server struct {
	data *sdk.Dataset
	mcp  *server.MCPServer
}

// NewServer creates a new MCP server answering from data.
func NewServer(data *sdk.Dataset) *Server {
	s := &Server{data: data}

	s.mcp = server.NewMCPServer(
		"sdkview",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(listItemsTool, s.handleListItems)
	s.mcp.AddTool(filterItemsTool, s.handleFilterItems)
	s.mcp.AddTool(searchPropertiesTool, s.handleSearchProperties)
	s.mcp.AddTool(getItemTool, s.handleGetItem)
	s.mcp.AddTool(parseOffsetTool, s.handleParseOffset)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
