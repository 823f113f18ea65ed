package exchangerate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/url"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"toolbelt-mcp/log"
	"toolbelt-mcp/tools"
)

// CurrencyInput is the convert_currency argument set
type CurrencyInput struct {
	Amount       float64 `json:"amount" description:"Amount to convert"`
	FromCurrency string  `json:"from_currency" description:"Source currency code (e.g., 'USD')"`
	ToCurrency   string  `json:"to_currency" description:"Target currency code (e.g., 'EUR')"`
}

// CurrencyOutput is the conversion result
type CurrencyOutput struct {
	Amount          float64 `json:"amount"`
	FromCurrency    string  `json:"from_currency"`
	ToCurrency      string  `json:"to_currency"`
	ConversionRate  float64 `json:"conversion_rate"`
	ConvertedAmount float64 `json:"converted_amount"`
	Formatted       string  `json:"formatted"`
	LastUpdated     string  `json:"last_updated"`
	Status          string  `json:"status"`
}

// CurrencyTool converts an amount between two currencies
type CurrencyTool struct {
	client *Client
}

// NewCurrencyTool creates the currency tool and registers it
func NewCurrencyTool(client *Client, registry *tools.Registry) *CurrencyTool {
	t := &CurrencyTool{client: client}
	if registry == nil {
		return t
	}

	tool := mcp.NewTool("convert_currency",
		mcp.WithDescription("Convert an amount from one currency to another using live exchange rates. Example: convert_currency(100, 'USD', 'EUR')."),
		mcp.WithNumber("amount",
			mcp.Required(),
			mcp.Description("Amount to convert"),
		),
		mcp.WithString("from_currency",
			mcp.Required(),
			mcp.Description("Source currency code (e.g., 'USD')"),
		),
		mcp.WithString("to_currency",
			mcp.Required(),
			mcp.Description("Target currency code (e.g., 'EUR')"),
		),
	)

	registry.Register(tool, t.Handle)
	return t
}

// Handle adapts tool-call arguments onto Execute and wraps the outcome
// in a response envelope.
func (t *CurrencyTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	amount, err := req.RequireFloat("amount")
	if err != nil {
		return tools.Failure(err.Error()), nil
	}
	fromCurrency, err := req.RequireString("from_currency")
	if err != nil {
		return tools.Failure(err.Error()), nil
	}
	toCurrency, err := req.RequireString("to_currency")
	if err != nil {
		return tools.Failure(err.Error()), nil
	}
	if strings.TrimSpace(fromCurrency) == "" || strings.TrimSpace(toCurrency) == "" {
		return tools.Failure("from_currency and to_currency are required"), nil
	}

	out, err := t.Execute(ctx, &CurrencyInput{
		Amount:       amount,
		FromCurrency: fromCurrency,
		ToCurrency:   toCurrency,
	})
	if err != nil {
		return tools.Failure(exchangeError(strings.ToUpper(strings.TrimSpace(toCurrency)), err)), nil
	}
	return tools.Success(out), nil
}

// Execute converts the amount using the latest rate table for the source currency
func (t *CurrencyTool) Execute(ctx context.Context, input *CurrencyInput) (*CurrencyOutput, error) {
	inputJSON, _ := json.Marshal(input)
	log.Debugf(ctx, "CurrencyTool executing with input: %s", string(inputJSON))

	if t.client == nil {
		return nil, fmt.Errorf("exchangerate client not initialized")
	}

	fromCurrency := strings.ToUpper(strings.TrimSpace(input.FromCurrency))
	toCurrency := strings.ToUpper(strings.TrimSpace(input.ToCurrency))
	if fromCurrency == "" || toCurrency == "" {
		return nil, fmt.Errorf("from_currency and to_currency are required")
	}

	rates, err := t.client.GetLatestRates(ctx, fromCurrency)
	if err != nil {
		log.Errorf(ctx, "CurrencyTool failed: %v", err)
		return nil, err
	}

	rate, ok := rates.ConversionRates[toCurrency]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTargetCurrencyNotFound, toCurrency)
	}

	converted := math.Round(input.Amount*rate*100) / 100

	lastUpdated := rates.TimeLastUpdateUTC
	if lastUpdated == "" {
		lastUpdated = "N/A"
	}

	log.Debugf(ctx, "CurrencyTool completed successfully: %s -> %s at rate %v", fromCurrency, toCurrency, rate)
	return &CurrencyOutput{
		Amount:          input.Amount,
		FromCurrency:    fromCurrency,
		ToCurrency:      toCurrency,
		ConversionRate:  rate,
		ConvertedAmount: converted,
		Formatted:       fmt.Sprintf("%v %s = %.2f %s", input.Amount, fromCurrency, converted, toCurrency),
		LastUpdated:     lastUpdated,
		Status:          tools.StatusSuccess,
	}, nil
}

// exchangeError maps client failures onto the user-facing messages
func exchangeError(toCurrency string, err error) string {
	var apiErr *APIError
	var urlErr *url.Error
	switch {
	case errors.Is(err, ErrMissingAPIKey):
		return "ExchangeRate API key not configured. Please add EXCHANGERATE_API_KEY to .env file"
	case errors.Is(err, ErrTargetCurrencyNotFound):
		return fmt.Sprintf("Target currency '%s' not found in exchange rates", toCurrency)
	case errors.As(err, &apiErr):
		errorType := apiErr.Type
		if errorType == "" {
			errorType = "Unknown error"
		}
		return fmt.Sprintf("Currency conversion error: %s", errorType)
	case errors.As(err, &urlErr):
		return fmt.Sprintf("Network error: %v", err)
	default:
		return fmt.Sprintf("Currency API error: %v", err)
	}
}
