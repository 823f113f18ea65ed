package core

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"toolbelt-mcp/log"
	"toolbelt-mcp/tools"
)

// Conversion factors into the base unit of each category, meters for
// length and kilograms for weight. Built once, read-only afterwards.
var lengthFactors = map[string]float64{
	"meters": 1, "m": 1,
	"kilometers": 1000, "km": 1000,
	"miles": 1609.344,
	"feet":  0.3048, "ft": 0.3048,
	"inches": 0.0254, "in": 0.0254,
	"yards": 0.9144, "yd": 0.9144,
	"centimeters": 0.01, "cm": 0.01,
	"millimeters": 0.001, "mm": 0.001,
}

var weightFactors = map[string]float64{
	"kilograms": 1, "kg": 1,
	"grams": 0.001, "g": 0.001,
	"pounds": 0.453592, "lbs": 0.453592,
	"ounces": 0.0283495, "oz": 0.0283495,
	"tons": 1000, "tonnes": 1000,
}

var temperatureUnits = map[string]bool{
	"celsius":    true,
	"fahrenheit": true,
	"kelvin":     true,
}

// ConvertUnitsInput defines the input for the convert_units tool
type ConvertUnitsInput struct {
	Value    float64 `json:"value" description:"Numeric value to convert"`
	FromUnit string  `json:"from_unit" description:"Source unit (e.g. 'km', 'lbs', 'celsius')"`
	ToUnit   string  `json:"to_unit" description:"Target unit (e.g. 'miles', 'kg', 'fahrenheit')"`
	Category string  `json:"category" description:"One of length, weight, temperature"`
}

// ConvertUnitsOutput is the success envelope for the convert_units tool
type ConvertUnitsOutput struct {
	Value     float64 `json:"value"`
	FromUnit  string  `json:"from_unit"`
	ToUnit    string  `json:"to_unit"`
	Category  string  `json:"category"`
	Result    float64 `json:"result"`
	Formatted string  `json:"formatted"`
	Status    string  `json:"status"`
}

// UnitConverterTool converts values between common measurement units
type UnitConverterTool struct{}

// NewUnitConverterTool creates the unit converter tool and registers it
func NewUnitConverterTool(registry *tools.Registry) *UnitConverterTool {
	t := &UnitConverterTool{}
	if registry == nil {
		return t
	}

	registry.Register(mcp.NewTool("convert_units",
		mcp.WithDescription("Convert between common units of measurement. Example: convert_units(100, \"km\", \"miles\", \"length\")."),
		mcp.WithNumber("value",
			mcp.Required(),
			mcp.Description("Numeric value to convert"),
		),
		mcp.WithString("from_unit",
			mcp.Required(),
			mcp.Description("Source unit"),
		),
		mcp.WithString("to_unit",
			mcp.Required(),
			mcp.Description("Target unit"),
		),
		mcp.WithString("category",
			mcp.Required(),
			mcp.Description("Unit category"),
			mcp.Enum("length", "weight", "temperature"),
		),
	), t.Handle)

	return t
}

// Handle adapts an MCP request into an Execute call and wraps the outcome
// in the uniform envelope.
func (t *UnitConverterTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	value, err := req.RequireFloat("value")
	if err != nil {
		return tools.Failure(err.Error()), nil
	}
	fromUnit, err := req.RequireString("from_unit")
	if err != nil {
		return tools.Failure(err.Error()), nil
	}
	toUnit, err := req.RequireString("to_unit")
	if err != nil {
		return tools.Failure(err.Error()), nil
	}
	category, err := req.RequireString("category")
	if err != nil {
		return tools.Failure(err.Error()), nil
	}

	out, err := t.Execute(ctx, &ConvertUnitsInput{
		Value:    value,
		FromUnit: fromUnit,
		ToUnit:   toUnit,
		Category: category,
	})
	if err != nil {
		return tools.Failure(err.Error()), nil
	}
	return tools.Success(out), nil
}

// Execute runs the conversion
func (t *UnitConverterTool) Execute(ctx context.Context, input *ConvertUnitsInput) (*ConvertUnitsOutput, error) {
	log.Debugf(ctx, "UnitConverterTool executing: %v %s -> %s (%s)", input.Value, input.FromUnit, input.ToUnit, input.Category)

	category := strings.ToLower(input.Category)
	fromUnit := strings.ToLower(input.FromUnit)
	toUnit := strings.ToLower(input.ToUnit)

	var result float64
	var err error
	switch category {
	case "length":
		result, err = convertByFactor(input.Value, fromUnit, toUnit, "length", lengthFactors)
	case "weight":
		result, err = convertByFactor(input.Value, fromUnit, toUnit, "weight", weightFactors)
	case "temperature":
		result, err = convertTemperature(input.Value, fromUnit, toUnit)
	default:
		err = fmt.Errorf("Invalid category '%s'. Use: length, weight, temperature", category)
	}
	if err != nil {
		log.Errorf(ctx, "UnitConverterTool failed: %v", err)
		return nil, err
	}

	result = math.Round(result*10000) / 10000

	return &ConvertUnitsOutput{
		Value:     input.Value,
		FromUnit:  fromUnit,
		ToUnit:    toUnit,
		Category:  category,
		Result:    result,
		Formatted: fmt.Sprintf("%v %s = %v %s", input.Value, fromUnit, result, toUnit),
		Status:    tools.StatusSuccess,
	}, nil
}

// convertByFactor converts via the category's base unit
func convertByFactor(value float64, fromUnit, toUnit, category string, factors map[string]float64) (float64, error) {
	fromFactor, ok := factors[fromUnit]
	if !ok {
		return 0, fmt.Errorf("Invalid %s unit '%s'. Supported: %s", category, fromUnit, supportedUnits(factors))
	}
	toFactor, ok := factors[toUnit]
	if !ok {
		return 0, fmt.Errorf("Invalid %s unit '%s'. Supported: %s", category, toUnit, supportedUnits(factors))
	}
	return value * fromFactor / toFactor, nil
}

// convertTemperature applies the pairwise formulas. Unknown units are
// rejected before the identity shortcut so bogus pairs never pass through.
func convertTemperature(value float64, fromUnit, toUnit string) (float64, error) {
	if !temperatureUnits[fromUnit] {
		return 0, fmt.Errorf("Invalid temperature unit '%s'. Supported: celsius, fahrenheit, kelvin", fromUnit)
	}
	if !temperatureUnits[toUnit] {
		return 0, fmt.Errorf("Invalid temperature unit '%s'. Supported: celsius, fahrenheit, kelvin", toUnit)
	}

	switch {
	case fromUnit == toUnit:
		return value, nil
	case fromUnit == "celsius" && toUnit == "fahrenheit":
		return value*9/5 + 32, nil
	case fromUnit == "fahrenheit" && toUnit == "celsius":
		return (value - 32) * 5 / 9, nil
	case fromUnit == "celsius" && toUnit == "kelvin":
		return value + 273.15, nil
	case fromUnit == "kelvin" && toUnit == "celsius":
		return value - 273.15, nil
	case fromUnit == "fahrenheit" && toUnit == "kelvin":
		return (value-32)*5/9 + 273.15, nil
	default: // kelvin to fahrenheit
		return (value-273.15)*9/5 + 32, nil
	}
}

// supportedUnits lists a factor table's unit names sorted alphabetically
func supportedUnits(factors map[string]float64) string {
	units := make([]string, 0, len(factors))
	for unit := range factors {
		units = append(units, unit)
	}
	sort.Strings(units)
	return strings.Join(units, ", ")
}
