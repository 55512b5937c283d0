package rebalancer

import "gonum.org/v1/gonum/floats"

// TrackingError returns the root of the sum of squared drifts, in percentage
// points. Missing and Extra symbols contribute their full weight. No rows means
// no error.
func TrackingError(rows []DriftRow) float64 {
	if len(rows) == 0 {
		return 0
	}
	drifts := make([]float64, len(rows))
	for i, r := range rows {
		drifts[i] = float64(r.Drift)
	}
	return floats.Norm(drifts, 2)
}

// Health is the aggregate replication quality of a drift analysis.
type Health struct {
	TrackingError float64
	Summary       StatusSummary
}

// Analyze computes the Health of a drift analysis.
func Analyze(rows []DriftRow) Health {
	return Health{
		TrackingError: TrackingError(rows),
		Summary:       Summarize(rows),
	}
}
