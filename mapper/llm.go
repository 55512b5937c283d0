package mapper

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/rebalancer/loader"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

// Completer sends a single prompt to a language model and returns its text reply.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// LLMMapper asks a language model to pick the columns.
type LLMMapper struct {
	Name      string // reported in errors, e.g. "groq"
	Completer Completer
	Log       zerolog.Logger
}

// sampleRows is the number of records shown to the model.
const sampleRows = 3

func (m LLMMapper) MapColumns(ctx context.Context, t *loader.Table) (loader.Mapping, error) {
	name := m.Name
	if name == "" {
		name = "llm"
	}
	reply, err := m.Completer.Complete(ctx, Prompt(t))
	if err != nil {
		return loader.Mapping{}, &MappingError{Mapper: name, Err: err}
	}
	reply = asciiOnly(reply)
	m.Log.Debug().Str("reply", reply).Msg("llm column detection")

	mapping, err := ParseReply(reply, t)
	if err != nil {
		return loader.Mapping{}, &MappingError{Mapper: name, Err: err}
	}
	return mapping, nil
}

// Prompt returns the instructions sent to the model for t.
func Prompt(t *loader.Table) string {
	columns, _ := json.Marshal(t.Columns)
	return fmt.Sprintf(`You are a data analyst. Identify the correct columns from this CSV data.

Available columns: %s

Sample data (first %d rows):
%s
TASK: Find which column contains:
1. Stock symbols/names (like "INFY", "TCS", "RELIANCE", or company names)
2. Quantity of shares (numeric values representing holdings)
3. Average buy price per share, if any

RULES:
- Symbol column examples: "symbol", "ticker", "scrip", "Scrip Name", "Symbol", "Company"
- Quantity column examples: "quantity", "qty", "Net Qty", "Quantity Available", "Holdings"
- AVOID: "ISIN", "Sector", "Pledged", "Discrepant" columns
- Choose "Available" over "Pledged" or "Discrepant" for quantity
- Use an empty string for price_column when there is no such column

RESPONSE FORMAT (respond ONLY with this JSON, nothing else):
{
    "symbol_column": "exact_column_name_here",
    "quantity_column": "exact_column_name_here",
    "price_column": "exact_column_name_here"
}

Pick the exact column names from the list above.`, columns, sampleRows, asciiOnly(t.Head(sampleRows).String()))
}

// ParseReply extracts the mapping from a model reply.
//
// The reply may wrap the JSON object in a code fence or in prose. Returned columns
// must exist in t.
func ParseReply(reply string, t *loader.Table) (loader.Mapping, error) {
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return loader.Mapping{}, errors.New("empty response")
	}
	if parts := strings.Split(reply, "```"); len(parts) > 1 {
		reply = strings.TrimSpace(strings.TrimPrefix(parts[1], "json"))
	}
	start, end := strings.Index(reply, "{"), strings.LastIndex(reply, "}")
	if start < 0 || end < start {
		return loader.Mapping{}, fmt.Errorf("no JSON found in response %q", reply)
	}

	var obj any
	if err := json.Unmarshal([]byte(reply[start:end+1]), &obj); err != nil {
		return loader.Mapping{}, fmt.Errorf("invalid JSON in response: %w", err)
	}

	symbol, err := field(obj, "$.symbol_column")
	if err != nil {
		return loader.Mapping{}, err
	}
	quantity, err := field(obj, "$.quantity_column")
	if err != nil {
		return loader.Mapping{}, err
	}
	if symbol == "" || quantity == "" {
		return loader.Mapping{}, fmt.Errorf("empty columns: symbol=%q, quantity=%q", symbol, quantity)
	}
	// The price is optional: a missing, empty or unknown column is ignored.
	price, _ := field(obj, "$.price_column")
	if price != "" && t.Index(price) < 0 {
		price = ""
	}

	m := loader.Mapping{Symbol: canonical(t, symbol), Quantity: canonical(t, quantity), InvestedPrice: canonical(t, price)}
	if err := m.Validate(t); err != nil {
		return loader.Mapping{}, fmt.Errorf("columns not in table: %w", err)
	}
	return m, nil
}

// field reads a string at path in obj.
func field(obj any, path string) (string, error) {
	val, err := jsonpath.Get(path, obj)
	if err != nil {
		return "", fmt.Errorf("reading %q: %w", path, err)
	}
	if list, ok := val.([]any); ok && len(list) > 0 {
		val = list[0]
	}
	switch v := val.(type) {
	case nil:
		return "", nil
	case string:
		return strings.TrimSpace(v), nil
	default:
		return "", fmt.Errorf("reading %q: not a string %v", path, val)
	}
}

// canonical returns the exact spelling of a column in t.
func canonical(t *loader.Table, name string) string {
	if i := t.Index(name); i >= 0 {
		return t.Columns[i]
	}
	return name
}

func asciiOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if r > 127 {
			return -1
		}
		return r
	}, s)
}
