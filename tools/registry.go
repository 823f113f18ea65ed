package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	logcontext "toolbelt-mcp/context"
	"toolbelt-mcp/log"
)

// Handler is the function signature for executing a tool
type Handler = server.ToolHandlerFunc

// Registry manages the registration of MCP tools
type Registry struct {
	tools    []mcp.Tool
	handlers map[string]Handler
}

// NewRegistry creates a new tool registry
func NewRegistry() *Registry {
	return &Registry{
		tools:    make([]mcp.Tool, 0),
		handlers: make(map[string]Handler),
	}
}

// Register adds a tool to the registry with its handler. The handler is
// wrapped so every invocation carries a request ID and entry/exit logs.
func (r *Registry) Register(tool mcp.Tool, handler Handler) {
	r.tools = append(r.tools, tool)
	r.handlers[tool.Name] = withRequestTracking(tool.Name, handler)
}

// GetTools returns all registered tool definitions
func (r *Registry) GetTools() []mcp.Tool {
	return r.tools
}

// Apply attaches every registered tool to the given MCP server
func (r *Registry) Apply(s *server.MCPServer) {
	for _, tool := range r.tools {
		s.AddTool(tool, r.handlers[tool.Name])
	}
}

// ExecuteTool runs a registered tool by name with a plain argument map
func (r *Registry) ExecuteTool(ctx context.Context, name string, args map[string]interface{}) (*mcp.CallToolResult, error) {
	handler, ok := r.handlers[name]
	if !ok {
		return nil, fmt.Errorf("tool not found: %s", name)
	}

	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	return handler(ctx, req)
}

// withRequestTracking tags each invocation with a fresh request ID so log
// lines from one call can be correlated.
func withRequestTracking(name string, handler Handler) Handler {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		requestID := logcontext.NewRequestID()
		ctx = logcontext.WithRequestID(ctx, requestID)

		log.Debugf(ctx, "Tool %s invoked", name)
		res, err := handler(ctx, req)
		if err != nil {
			log.Errorf(ctx, "Tool %s failed: %v", name, err)
			return res, err
		}
		log.Debugf(ctx, "Tool %s completed", name)
		return res, nil
	}
}
