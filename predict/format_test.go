package predict

import (
	"errors"
	"fmt"
	"testing"
)

func TestResultLines(t *testing.T) {
	r := &Result{
		Probability: 57.3,
		RiskLevel:   "High",
		TopRiskFactors: []Factor{
			{Factor: "Leverage Ratio", Value: "12.4", Importance: 23.1},
			{Factor: "VIX Index", Value: "31", Importance: 9},
		},
	}
	want := []string{
		"57.3%",
		"Risk Level: High",
		"Leverage Ratio: 12.4 (Importance: 23.1%)",
		"VIX Index: 31 (Importance: 9%)",
	}
	got := r.Lines()
	if len(got) != len(want) {
		t.Fatalf("lines = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{&APIError{Message: "model not trained"}, "Prediction Error: model not trained"},
		{fmt.Errorf("wrapped: %w", &APIError{Message: "x"}), "Prediction Error: x"},
		{errors.New("connection refused"), FailureMessage},
		{fmt.Errorf("%w: missing roe", ErrInvalidMetrics), "invalid metrics: missing roe"},
	}
	for _, tt := range tests {
		if got := Describe(tt.err); got != tt.want {
			t.Errorf("Describe(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestScalarJSON(t *testing.T) {
	var f Factor
	if err := f.Value.UnmarshalJSON([]byte(`1e3`)); err != nil || f.Value != "1e3" {
		t.Errorf("number = %q, %v", f.Value, err)
	}
	if err := f.Value.UnmarshalJSON([]byte(`"n/a"`)); err != nil || f.Value != "n/a" {
		t.Errorf("string = %q, %v", f.Value, err)
	}
	if err := f.Value.UnmarshalJSON([]byte(`true`)); err == nil {
		t.Error("bool accepted as factor value")
	}

	out, _ := Scalar("2.5").MarshalJSON()
	if string(out) != "2.5" {
		t.Errorf("marshal number = %s", out)
	}
	out, _ = Scalar("n/a").MarshalJSON()
	if string(out) != `"n/a"` {
		t.Errorf("marshal string = %s", out)
	}
}
