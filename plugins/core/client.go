// Package core provides the tools that need no upstream API: the
// arithmetic calculator and the unit converter.
package core

import (
	"toolbelt-mcp/tools"
)

// Client manages the core set of tools
type Client struct {
	Calculator *CalculatorTool
	Units      *UnitConverterTool
}

// NewClient initializes the core plugin and registers its tools
func NewClient(registry *tools.Registry) *Client {
	return &Client{
		Calculator: NewCalculatorTool(registry),
		Units:      NewUnitConverterTool(registry),
	}
}
