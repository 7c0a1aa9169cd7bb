// Package predict talks to the remote default-probability scoring service.
package predict

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidMetrics is returned when a metrics set has missing or non-finite fields.
var ErrInvalidMetrics = errors.New("invalid metrics")

// Metrics is the set of institution, network and market figures the scoring
// service expects.
type Metrics struct {
	// Institution
	TotalAssets    float64 `json:"total_assets" yaml:"total_assets"`
	LeverageRatio  float64 `json:"leverage_ratio" yaml:"leverage_ratio"`
	LiquidityRatio float64 `json:"liquidity_ratio" yaml:"liquidity_ratio"`
	ROE            float64 `json:"roe" yaml:"roe"`
	CreditRating   float64 `json:"credit_rating" yaml:"credit_rating"`
	StockPrice     float64 `json:"stock_price" yaml:"stock_price"`
	CDSSpread      float64 `json:"cds_spread" yaml:"cds_spread"`

	// Network exposure
	TotalExposureGiven    float64 `json:"total_exposure_given" yaml:"total_exposure_given"`
	TotalExposureReceived float64 `json:"total_exposure_received" yaml:"total_exposure_received"`
	NumBorrowers          float64 `json:"num_borrowers" yaml:"num_borrowers"`
	NumLenders            float64 `json:"num_lenders" yaml:"num_lenders"`
	AvgDebtorLeverage     float64 `json:"avg_debtor_leverage" yaml:"avg_debtor_leverage"`

	// Market
	VIXIndex         float64 `json:"vix_index" yaml:"vix_index"`
	CreditSpread     float64 `json:"credit_spread" yaml:"credit_spread"`
	YieldCurveSlope  float64 `json:"yield_curve_slope" yaml:"yield_curve_slope"`
	SP500Return      float64 `json:"sp500_return" yaml:"sp500_return"`
	GDPGrowth        float64 `json:"gdp_growth" yaml:"gdp_growth"`
	UnemploymentRate float64 `json:"unemployment_rate" yaml:"unemployment_rate"`
}

type namedField struct {
	name string
	ptr  *float64
}

// fields lists every metric with its wire name, in form order.
func (m *Metrics) fields() []namedField {
	return []namedField{
		{"total_assets", &m.TotalAssets},
		{"leverage_ratio", &m.LeverageRatio},
		{"liquidity_ratio", &m.LiquidityRatio},
		{"roe", &m.ROE},
		{"credit_rating", &m.CreditRating},
		{"stock_price", &m.StockPrice},
		{"cds_spread", &m.CDSSpread},
		{"total_exposure_given", &m.TotalExposureGiven},
		{"total_exposure_received", &m.TotalExposureReceived},
		{"num_borrowers", &m.NumBorrowers},
		{"num_lenders", &m.NumLenders},
		{"avg_debtor_leverage", &m.AvgDebtorLeverage},
		{"vix_index", &m.VIXIndex},
		{"credit_spread", &m.CreditSpread},
		{"yield_curve_slope", &m.YieldCurveSlope},
		{"sp500_return", &m.SP500Return},
		{"gdp_growth", &m.GDPGrowth},
		{"unemployment_rate", &m.UnemploymentRate},
	}
}

// FieldNames returns the wire names of all metrics in form order.
func FieldNames() []string {
	var m Metrics
	fs := m.fields()
	names := make([]string, len(fs))
	for i, f := range fs {
		names[i] = f.name
	}
	return names
}

// Validate rejects NaN and infinite values.
func (m Metrics) Validate() error {
	var bad []string
	for _, f := range m.fields() {
		if math.IsNaN(*f.ptr) || math.IsInf(*f.ptr, 0) {
			bad = append(bad, f.name)
		}
	}
	if len(bad) > 0 {
		return fmt.Errorf("%w: non-finite %s", ErrInvalidMetrics, strings.Join(bad, ", "))
	}
	return nil
}

// LoadMetrics reads a YAML file of metrics. Every field must be present.
func LoadMetrics(path string) (Metrics, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Metrics{}, fmt.Errorf("reading metrics file: %w", err)
	}
	return ParseMetrics(data)
}

// ParseMetrics decodes metrics from YAML. Unknown keys and missing fields are errors.
func ParseMetrics(data []byte) (Metrics, error) {
	var raw map[string]float64
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Metrics{}, fmt.Errorf("parsing metrics: %w", err)
	}

	var m Metrics
	var missing []string
	known := make(map[string]bool, len(raw))
	for _, f := range m.fields() {
		known[f.name] = true
		v, ok := raw[f.name]
		if !ok {
			missing = append(missing, f.name)
			continue
		}
		*f.ptr = v
	}
	if len(missing) > 0 {
		return Metrics{}, fmt.Errorf("%w: missing %s", ErrInvalidMetrics, strings.Join(missing, ", "))
	}
	for k := range raw {
		if !known[k] {
			return Metrics{}, fmt.Errorf("%w: unknown field %q", ErrInvalidMetrics, k)
		}
	}
	if err := m.Validate(); err != nil {
		return Metrics{}, err
	}
	return m, nil
}
