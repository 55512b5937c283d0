package rebalancer

import "sort"

// Status classifies how a symbol's target weight compares to its source weight.
type Status int

const (
	Aligned Status = iota
	Overweight
	Underweight
	Missing // held in source only
	Extra   // held in target only
)

func (s Status) String() string {
	switch s {
	case Aligned:
		return "Aligned"
	case Overweight:
		return "Overweight"
	case Underweight:
		return "Underweight"
	case Missing:
		return "Missing"
	case Extra:
		return "Extra"
	default:
		return "Unknown"
	}
}

// DriftRow compares one symbol across the source and target portfolios.
//
// A symbol absent from one side has a zero weight and quantity on that side.
type DriftRow struct {
	Symbol       string
	SourceWeight Percent
	TargetWeight Percent
	Drift        Percent // TargetWeight - SourceWeight
	Status       Status
	SourceQty    float64
	TargetQty    float64
}

// ClassifyDrift pairs the source and target positions by symbol and classifies
// each symbol of their union.
//
// Rules are evaluated in order: source only is Missing, target only is Extra, a
// drift under AlignedTolerance in magnitude is Aligned, a positive drift is
// Overweight and a negative one Underweight.
//
// Rows are sorted by drift magnitude descending, then by symbol ascending.
// Symbols without weight on either side are ignored.
func ClassifyDrift(source, target []NormalizedPosition) []DriftRow {
	src := indexWeights(source)
	tgt := indexWeights(target)

	symbols := make([]string, 0, len(src)+len(tgt))
	for s := range src {
		symbols = append(symbols, s)
	}
	for s := range tgt {
		if _, ok := src[s]; !ok {
			symbols = append(symbols, s)
		}
	}

	rows := make([]DriftRow, 0, len(symbols))
	for _, symbol := range symbols {
		s, inSource := src[symbol]
		t, inTarget := tgt[symbol]
		if s.Weight == 0 && t.Weight == 0 {
			continue
		}
		row := DriftRow{
			Symbol:       symbol,
			SourceWeight: s.Weight,
			TargetWeight: t.Weight,
			Drift:        t.Weight - s.Weight,
			SourceQty:    s.Quantity,
			TargetQty:    t.Quantity,
		}
		row.Status = classify(inSource, inTarget, row.Drift)
		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool {
		di, dj := rows[i].Drift.Abs(), rows[j].Drift.Abs()
		if di != dj {
			return di > dj
		}
		return rows[i].Symbol < rows[j].Symbol
	})
	return rows
}

func classify(inSource, inTarget bool, drift Percent) Status {
	switch {
	case inSource && !inTarget:
		return Missing
	case !inSource && inTarget:
		return Extra
	case drift.Abs() < AlignedTolerance:
		return Aligned
	case drift > 0:
		return Overweight
	default:
		return Underweight
	}
}

// indexWeights maps symbols to their normalized position, ignoring zero weights.
func indexWeights(positions []NormalizedPosition) map[string]NormalizedPosition {
	m := make(map[string]NormalizedPosition, len(positions))
	for _, p := range positions {
		if p.Weight <= 0 {
			continue
		}
		if _, dup := m[p.Symbol]; dup {
			continue
		}
		m[p.Symbol] = p
	}
	return m
}

// StatusSummary counts drift rows by status.
type StatusSummary struct {
	Aligned     int
	Overweight  int
	Underweight int
	Missing     int
	Extra       int
}

// Summarize counts rows by status.
func Summarize(rows []DriftRow) StatusSummary {
	var s StatusSummary
	for _, r := range rows {
		switch r.Status {
		case Aligned:
			s.Aligned++
		case Overweight:
			s.Overweight++
		case Underweight:
			s.Underweight++
		case Missing:
			s.Missing++
		case Extra:
			s.Extra++
		}
	}
	return s
}
