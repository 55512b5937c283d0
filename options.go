package rebalancer

const (
	// AlignedTolerance is the drift, in percentage points, under which a symbol held
	// on both sides is considered aligned.
	AlignedTolerance Percent = 0.01

	// DeadZone is the quantity change, in shares, under which a rebalance action
	// is a Hold.
	DeadZone = 0.5

	// DefaultDebtPrefix is the symbol prefix of sovereign gold bonds ("SGB...").
	DefaultDebtPrefix = "SG"

	// DefaultMaxIterations bounds the share-by-share reconciliation of an
	// investment plan.
	DefaultMaxIterations = 10000
)

// Options holds the configurable policies of the engine.
type Options struct {
	// DebtPrefix drops symbols starting with it while cleaning. Empty disables the filter.
	DebtPrefix string
	// MinOneShare buys at least one share of any position with a positive weight.
	MinOneShare bool
	// MaxIterations caps the number of single share corrections during reconciliation.
	MaxIterations int
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		DebtPrefix:    DefaultDebtPrefix,
		MinOneShare:   true,
		MaxIterations: DefaultMaxIterations,
	}
}
