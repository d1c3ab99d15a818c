// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes tabtools capabilities as MCP tools over stdio.
package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/tabtools"
)

const serverInstructions = `tabtools MCP server — resolves projections from tabular field names to JSON document locations.

Tools:
- resolve_projections: build the full projection table for a JSON Schema plus optional field overrides. Use this to see every column name a tabular file could use and where each one lands in the output document.
- derive_fields: list the candidate field names derived for a single document pointer. Useful to check which headers would match a given location.`

// Run starts the MCP server over stdio and blocks until the client
// disconnects or the context is cancelled.
func Run(ctx context.Context) error {
	server := mcp.NewServer(
		&mcp.Implementation{Name: "tabtools", Version: tabtools.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "resolve_projections",
		Description: "Resolve the projection table for a JSON Schema document and optional field-to-pointer overrides. Returns one entry per collated candidate field name with its target location, required-ness, and possible JSON types. Overrides always take precedence; an override pointing outside the schema yields an entry with no type information plus a warning.",
	}, handleResolveProjections)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "derive_fields",
		Description: "Derive the candidate field names for a single slash-delimited document pointer, exactly as the projection resolver would generate them. The root pointer yields no candidates.",
	}, handleDeriveFields)
}

func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: err.Error()}},
	}
}
