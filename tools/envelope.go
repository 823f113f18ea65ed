// Package tools provides the response envelope helpers and the registry
// that binds tool definitions to their handlers.
package tools

import (
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// Envelope status values shared by every tool response.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// ErrorEnvelope is the uniform failure shape returned by every tool.
// It carries exactly these two fields and nothing else.
type ErrorEnvelope struct {
	Error  string `json:"error"`
	Status string `json:"status"`
}

// Success marshals a tool output struct into a text result. Output structs
// carry their own status field set to StatusSuccess.
func Success(output interface{}) *mcp.CallToolResult {
	data, err := json.Marshal(output)
	if err != nil {
		return Failuref("failed to encode result: %v", err)
	}
	return mcp.NewToolResultText(string(data))
}

// Failure wraps a message into the uniform error envelope. Failures travel
// as regular text results so the caller always sees a well-formed envelope,
// never a protocol-level fault.
func Failure(message string) *mcp.CallToolResult {
	data, _ := json.Marshal(ErrorEnvelope{Error: message, Status: StatusError})
	return mcp.NewToolResultText(string(data))
}

// Failuref is Failure with fmt-style formatting.
func Failuref(format string, args ...interface{}) *mcp.CallToolResult {
	return Failure(fmt.Sprintf(format, args...))
}
