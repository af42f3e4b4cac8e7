package shared

import (
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
)

// Every tool resolves its invocation with a successful envelope; failure is
// reported inside the payload, never as a transport-level error. Callers
// inspect payload content to detect failure.

// JSONResult wraps a value as a pretty-printed JSON text payload.
func JSONResult(v interface{}) *mcp.CallToolResult {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return ErrorResult("serialize", err, nil)
	}
	return mcp.NewToolResultText(string(data))
}

// ErrorResult wraps a failure as a successful envelope carrying an
// error-description object. partial, when non-nil, carries whatever data
// could still be computed (the streaming tool's partial summary).
func ErrorResult(operation string, err error, partial interface{}) *mcp.CallToolResult {
	payload := map[string]interface{}{
		"operation": operation,
		"error":     err.Error(),
	}
	if partial != nil {
		payload["partial"] = partial
	}

	data, merr := json.MarshalIndent(payload, "", "  ")
	if merr != nil {
		return mcp.NewToolResultText(`{"error":"` + operation + ` failed"}`)
	}
	return mcp.NewToolResultText(string(data))
}
