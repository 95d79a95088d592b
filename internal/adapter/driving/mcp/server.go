// Package mcp implements the driving MCP adapter: it maps protocol-level
// tool calls onto the application services and serializes shaped results or
// uniform errors into tool responses.
package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/ericfisherdev/repoadmin-mcp/internal/application"
)

const (
	ServerName    = "repoadmin-mcp"
	ServerVersion = "1.0.0"
)

// Services bundles the operation services the tools dispatch to.
type Services struct {
	Orgs          *application.OrgService
	Repos         *application.RepoService
	Collaborators *application.CollaboratorService
}

// New creates and configures an MCP server with all repository-management
// tools registered.
func New(svcs Services) *server.MCPServer {
	s := server.NewMCPServer(
		ServerName,
		ServerVersion,
		server.WithToolCapabilities(true),
	)

	for _, td := range registerRepoTools(svcs) {
		s.AddTool(td.Tool, td.Handler)
	}

	return s
}
