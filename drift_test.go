package rebalancer

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// normalized is a test helper normalizing p or failing the test.
func normalized(t *testing.T, positions ...Position) []NormalizedPosition {
	t.Helper()
	n, err := Normalize(NewPortfolio(positions...))
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	return n
}

// W returns a normalized position with a given weight.
func W(symbol string, weight Percent) NormalizedPosition {
	return NormalizedPosition{Position: P(symbol, float64(weight)), Weight: weight}
}

func TestClassifyDrift_ScenarioB(t *testing.T) {
	source := normalized(t, P("AAA", 60), P("BBB", 40))
	target := normalized(t, P("AAA", 50), P("BBB", 50))

	got := ClassifyDrift(source, target)
	want := []DriftRow{
		{Symbol: "AAA", SourceWeight: 60, TargetWeight: 50, Drift: -10, Status: Underweight, SourceQty: 60, TargetQty: 50},
		{Symbol: "BBB", SourceWeight: 40, TargetWeight: 50, Drift: 10, Status: Overweight, SourceQty: 40, TargetQty: 50},
	}
	if diff := cmp.Diff(want, got, approx); diff != "" {
		t.Errorf("ClassifyDrift() mismatch (-want +got):\n%s", diff)
	}
}

func TestClassifyDrift_ScenarioC(t *testing.T) {
	source := normalized(t, P("AAA", 100))
	target := normalized(t, P("BBB", 100))

	got := ClassifyDrift(source, target)
	want := []DriftRow{
		{Symbol: "AAA", SourceWeight: 100, TargetWeight: 0, Drift: -100, Status: Missing, SourceQty: 100},
		{Symbol: "BBB", SourceWeight: 0, TargetWeight: 100, Drift: 100, Status: Extra, TargetQty: 100},
	}
	if diff := cmp.Diff(want, got, approx); diff != "" {
		t.Errorf("ClassifyDrift() mismatch (-want +got):\n%s", diff)
	}
}

func TestClassifyDrift_DisjointIsMissingOrExtra(t *testing.T) {
	source := normalized(t, P("AAA", 3), P("BBB", 5), P("CCC", 7))
	target := normalized(t, P("DDD", 1), P("EEE", 9))

	rows := ClassifyDrift(source, target)
	if len(rows) != 5 {
		t.Fatalf("len(rows) = %d, want 5", len(rows))
	}
	for _, r := range rows {
		if r.Status != Missing && r.Status != Extra {
			t.Errorf("%s status = %v, want Missing or Extra", r.Symbol, r.Status)
		}
	}
}

func TestClassifyDrift_Idempotent(t *testing.T) {
	source := normalized(t, P("AAA", 60), P("BBB", 30), P("CCC", 10))
	target := normalized(t, P("AAA", 45), P("BBB", 45), P("DDD", 10))

	first := ClassifyDrift(source, target)
	second := ClassifyDrift(source, target)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("ClassifyDrift() is not idempotent (-first +second):\n%s", diff)
	}
}

func TestClassifyDrift_Boundaries(t *testing.T) {
	tests := []struct {
		target Percent
		want   Status
	}{
		{50, Aligned},
		{50.009, Aligned},
		{50.0099999, Aligned},
		{49.9900001, Aligned},
		{50.0100001, Overweight},
		{50.011, Overweight},
		{49.9899999, Underweight},
		{49.989, Underweight},
	}
	for _, tt := range tests {
		rows := ClassifyDrift(
			[]NormalizedPosition{W("AAA", 50)},
			[]NormalizedPosition{W("AAA", tt.target)},
		)
		if len(rows) != 1 {
			t.Fatalf("len(rows) = %d, want 1", len(rows))
		}
		if rows[0].Status != tt.want {
			t.Errorf("drift %v: status = %v, want %v", float64(rows[0].Drift), rows[0].Status, tt.want)
		}
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		inSource, inTarget bool
		drift              Percent
		want               Status
	}{
		{true, false, -100, Missing},
		{false, true, 100, Extra},
		{true, true, 0, Aligned},
		{true, true, 0.0099999, Aligned},
		{true, true, -0.0099999, Aligned},
		{true, true, 0.009, Aligned},
		{true, true, 0.01, Overweight},
		{true, true, 0.0100001, Overweight},
		{true, true, 0.011, Overweight},
		{true, true, -0.01, Underweight},
		{true, true, -0.0100001, Underweight},
		{true, true, -0.011, Underweight},
		// presence wins over the magnitude of drift.
		{true, false, 0, Missing},
		{false, true, 0.001, Extra},
	}
	for _, tt := range tests {
		if got := classify(tt.inSource, tt.inTarget, tt.drift); got != tt.want {
			t.Errorf("classify(%v, %v, %v) = %v, want %v", tt.inSource, tt.inTarget, float64(tt.drift), got, tt.want)
		}
	}
}

func TestClassifyDrift_Order(t *testing.T) {
	source := []NormalizedPosition{W("AAA", 40), W("BBB", 30), W("CCC", 20), W("DDD", 10)}
	target := []NormalizedPosition{W("AAA", 40), W("BBB", 25), W("CCC", 25), W("EEE", 10)}

	rows := ClassifyDrift(source, target)
	var got []string
	for _, r := range rows {
		got = append(got, r.Symbol)
	}
	want := []string{"DDD", "EEE", "BBB", "CCC", "AAA"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestClassifyDrift_Empty(t *testing.T) {
	if rows := ClassifyDrift(nil, nil); len(rows) != 0 {
		t.Errorf("ClassifyDrift(nil, nil) = %v, want empty", rows)
	}
	rows := ClassifyDrift(normalized(t, P("AAA", 1)), nil)
	if len(rows) != 1 || rows[0].Status != Missing {
		t.Errorf("ClassifyDrift(AAA, nil) = %v, want AAA Missing", rows)
	}
}

func TestClassifyDrift_ZeroWeightsExcluded(t *testing.T) {
	source := []NormalizedPosition{W("AAA", 100), W("ZZZ", 0)}
	target := []NormalizedPosition{W("AAA", 100), W("ZZZ", 0)}

	rows := ClassifyDrift(source, target)
	if len(rows) != 1 || rows[0].Symbol != "AAA" || rows[0].Status != Aligned {
		t.Errorf("ClassifyDrift() = %v, want only AAA Aligned", rows)
	}
}

func TestSummarize(t *testing.T) {
	source := []NormalizedPosition{W("AAA", 40), W("BBB", 30), W("CCC", 20), W("DDD", 10)}
	target := []NormalizedPosition{W("AAA", 40), W("BBB", 25), W("CCC", 25), W("EEE", 10)}

	got := Summarize(ClassifyDrift(source, target))
	want := StatusSummary{Aligned: 1, Overweight: 1, Underweight: 1, Missing: 1, Extra: 1}
	if got != want {
		t.Errorf("Summarize() = %+v, want %+v", got, want)
	}
}

func TestStatus_String(t *testing.T) {
	for s, want := range map[Status]string{
		Aligned: "Aligned", Overweight: "Overweight", Underweight: "Underweight",
		Missing: "Missing", Extra: "Extra", Status(42): "Unknown",
	} {
		if got := s.String(); got != want {
			t.Errorf("Status(%d).String() = %q, want %q", int(s), got, want)
		}
	}
}
