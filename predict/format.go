package predict

import (
	"errors"
	"strconv"
)

// FailureMessage is shown when the scoring service could not be reached or
// answered with something unreadable.
const FailureMessage = "Failed to get prediction. Please ensure the model is trained and the server is running."

// Percent formats the probability the way the service reports it, e.g. "57.3%".
func (r *Result) Percent() string {
	return formatNumber(r.Probability) + "%"
}

// Headline returns the risk level line.
func (r *Result) Headline() string {
	return "Risk Level: " + r.RiskLevel
}

// FactorLines formats each contributing factor on its own line.
func (r *Result) FactorLines() []string {
	lines := make([]string, 0, len(r.TopRiskFactors))
	for _, f := range r.TopRiskFactors {
		lines = append(lines, f.String())
	}
	return lines
}

// Lines returns the full text summary: percentage, risk level, then factors.
func (r *Result) Lines() []string {
	return append([]string{r.Percent(), r.Headline()}, r.FactorLines()...)
}

func (f Factor) String() string {
	return f.Factor + ": " + string(f.Value) + " (Importance: " + formatNumber(f.Importance) + "%)"
}

// Describe turns a Predict error into the message shown to the user.
func Describe(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return "Prediction Error: " + apiErr.Message
	}
	if errors.Is(err, ErrInvalidMetrics) {
		return err.Error()
	}
	return FailureMessage
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
