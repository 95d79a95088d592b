package mcp

import (
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ericfisherdev/repoadmin-mcp/internal/domain/operr"
)

// successResult serializes a shaped operation result as JSON tool output.
func successResult(v any) *mcp.CallToolResult {
	payload, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(`{"code":"INTERNAL","message":"failed to serialize result"}`)
	}
	return mcp.NewToolResultText(string(payload))
}

// errorResult serializes a uniform error into the tool error response.
// Non-uniform errors are classified first so the dispatch layer never emits
// a raw error shape.
func errorResult(err error) *mcp.CallToolResult {
	e := operr.Classify(err, operr.Context{})

	payload, merr := json.MarshalIndent(map[string]any{"error": e}, "", "  ")
	if merr != nil {
		return mcp.NewToolResultError(e.Error())
	}
	return mcp.NewToolResultError(string(payload))
}
