package rebalancer

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrDivisionByZero is returned when a ratio requires a portfolio total
	// quantity that is zero.
	ErrDivisionByZero = errors.New("division by zero: portfolio total quantity is zero")

	// ErrMissingPriceData is returned when the investment planner is given a
	// position without an invested price.
	ErrMissingPriceData = errors.New("missing price data")

	// ErrInvalidAmount is returned when an investment amount is not a positive
	// finite number.
	ErrInvalidAmount = errors.New("invalid investment amount")
)

// MissingPriceError lists the symbols that lack an invested price.
type MissingPriceError struct {
	Symbols []string
}

func (e *MissingPriceError) Error() string {
	return fmt.Sprintf("%v for %d position(s): %s", ErrMissingPriceData, len(e.Symbols), strings.Join(e.Symbols, ", "))
}

func (e *MissingPriceError) Unwrap() error { return ErrMissingPriceData }
