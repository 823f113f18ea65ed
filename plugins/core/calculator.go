package core

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"toolbelt-mcp/log"
	"toolbelt-mcp/tools"
)

// CalculateInput defines the input for the calculate tool
type CalculateInput struct {
	Operation string  `json:"operation" description:"One of add, subtract, multiply, divide"`
	Num1      float64 `json:"num1" description:"First number"`
	Num2      float64 `json:"num2" description:"Second number"`
}

// CalculateOutput is the success envelope for the calculate tool
type CalculateOutput struct {
	Operation  string  `json:"operation"`
	Num1       float64 `json:"num1"`
	Num2       float64 `json:"num2"`
	Result     float64 `json:"result"`
	Expression string  `json:"expression"`
	Status     string  `json:"status"`
}

// CalculatorTool performs basic arithmetic on two operands
type CalculatorTool struct{}

// NewCalculatorTool creates the calculator tool and registers it
func NewCalculatorTool(registry *tools.Registry) *CalculatorTool {
	t := &CalculatorTool{}
	if registry == nil {
		return t
	}

	registry.Register(mcp.NewTool("calculate",
		mcp.WithDescription("Perform basic arithmetic calculations. Example: calculate(\"add\", 10, 5) returns 15."),
		mcp.WithString("operation",
			mcp.Required(),
			mcp.Description("The operation to perform"),
			mcp.Enum("add", "subtract", "multiply", "divide"),
		),
		mcp.WithNumber("num1",
			mcp.Required(),
			mcp.Description("First number"),
		),
		mcp.WithNumber("num2",
			mcp.Required(),
			mcp.Description("Second number"),
		),
	), t.Handle)

	return t
}

// Handle adapts an MCP request into an Execute call and wraps the outcome
// in the uniform envelope.
func (t *CalculatorTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	operation, err := req.RequireString("operation")
	if err != nil {
		return tools.Failure(err.Error()), nil
	}
	num1, err := req.RequireFloat("num1")
	if err != nil {
		return tools.Failure(err.Error()), nil
	}
	num2, err := req.RequireFloat("num2")
	if err != nil {
		return tools.Failure(err.Error()), nil
	}

	out, err := t.Execute(ctx, &CalculateInput{Operation: operation, Num1: num1, Num2: num2})
	if err != nil {
		return tools.Failure(err.Error()), nil
	}
	return tools.Success(out), nil
}

// Execute runs the calculation
func (t *CalculatorTool) Execute(ctx context.Context, input *CalculateInput) (*CalculateOutput, error) {
	log.Debugf(ctx, "CalculatorTool executing: %s(%v, %v)", input.Operation, input.Num1, input.Num2)

	operation := strings.ToLower(input.Operation)

	var result float64
	switch operation {
	case "add":
		result = input.Num1 + input.Num2
	case "subtract":
		result = input.Num1 - input.Num2
	case "multiply":
		result = input.Num1 * input.Num2
	case "divide":
		if input.Num2 == 0 {
			log.Errorf(ctx, "CalculatorTool failed: division by zero")
			return nil, errors.New("Cannot divide by zero")
		}
		result = input.Num1 / input.Num2
	default:
		log.Errorf(ctx, "CalculatorTool failed: invalid operation %q", input.Operation)
		return nil, fmt.Errorf("Invalid operation '%s'. Use: add, subtract, multiply, divide", operation)
	}

	return &CalculateOutput{
		Operation:  operation,
		Num1:       input.Num1,
		Num2:       input.Num2,
		Result:     result,
		Expression: fmt.Sprintf("%v %s %v = %v", input.Num1, operation, input.Num2, result),
		Status:     tools.StatusSuccess,
	}, nil
}
