// Package mcp exposes the vault over the Model Context Protocol so agents
// can search, inspect and run entries with pre-supplied bindings.
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewServer creates an MCP server with the devstash tools registered.
func NewServer(version string, h *Handlers) *server.MCPServer {
	s := server.NewMCPServer(
		"devstash",
		version,
		server.WithToolCapabilities(true),
	)

	s.AddTool(
		mcp.NewTool("devstash/search",
			mcp.WithDescription("Search vault entries by name, description, content and tags"),
			mcp.WithString("query", mcp.Description("Case-insensitive substring to match; empty lists everything")),
			mcp.WithString("kind", mcp.Description("Restrict to one entry kind (command, api, snippet, file, playbook, note)")),
			mcp.WithString("tag", mcp.Description("Restrict to entries carrying this tag")),
		),
		h.HandleSearch,
	)

	s.AddTool(
		mcp.NewTool("devstash/get",
			mcp.WithDescription("Fetch one vault entry by name or ID"),
			mcp.WithString("name", mcp.Required(), mcp.Description("Entry name or ID")),
		),
		h.HandleGet,
	)

	s.AddTool(
		mcp.NewTool("devstash/run",
			mcp.WithDescription("Execute a command, api or playbook entry. Every placeholder must be supplied via bindings; there is no interactive prompting."),
			mcp.WithString("name", mcp.Required(), mcp.Description("Entry name or ID")),
			mcp.WithObject("bindings", mcp.Description("Placeholder name to value map")),
		),
		h.HandleRun,
	)

	s.AddTool(
		mcp.NewTool("devstash/schema",
			mcp.WithDescription("Export the JSON Schema describing vault entry documents"),
		),
		h.HandleSchema,
	)

	return s
}
