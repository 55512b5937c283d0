// Package mapper finds which columns of a loaded table hold the symbol, the
// quantity and the prices.
//
// Two strategies exist: a keyword heuristic (PatternMapper) and an LLM reading
// the column names and a few sample rows (LLMMapper). Fallback chains them.
package mapper

import (
	"context"
	"errors"
	"fmt"

	"github.com/etnz/rebalancer/loader"
)

// ErrNoMapping is returned when no suitable columns could be found.
var ErrNoMapping = errors.New("could not auto-detect columns")

// ColumnMapper detects the column mapping of a table.
type ColumnMapper interface {
	MapColumns(ctx context.Context, t *loader.Table) (loader.Mapping, error)
}

// MappingError reports the failure of a named mapper.
type MappingError struct {
	Mapper string
	Err    error
}

func (e *MappingError) Error() string {
	return fmt.Sprintf("%s column detection failed: %v", e.Mapper, e.Err)
}

func (e *MappingError) Unwrap() error { return e.Err }

// Override applies user chosen columns on top of a detected mapping.
//
// When both Symbol and Quantity are set, Base is not called at all.
type Override struct {
	Base    ColumnMapper
	Mapping loader.Mapping
}

func (o Override) MapColumns(ctx context.Context, t *loader.Table) (loader.Mapping, error) {
	m := o.Mapping
	if m.Symbol == "" || m.Quantity == "" {
		detected, err := o.Base.MapColumns(ctx, t)
		if err != nil {
			return loader.Mapping{}, err
		}
		m = merge(detected, o.Mapping)
	}
	if err := m.Validate(t); err != nil {
		return loader.Mapping{}, &MappingError{Mapper: "manual", Err: err}
	}
	return m, nil
}

// merge returns base with the non empty fields of over.
func merge(base, over loader.Mapping) loader.Mapping {
	if over.Symbol != "" {
		base.Symbol = over.Symbol
	}
	if over.Quantity != "" {
		base.Quantity = over.Quantity
	}
	if over.InvestedPrice != "" {
		base.InvestedPrice = over.InvestedPrice
	}
	if over.MarketPrice != "" {
		base.MarketPrice = over.MarketPrice
	}
	return base
}
