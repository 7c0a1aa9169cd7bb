package predict

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"
)

// Result is a scored prediction.
type Result struct {
	Probability    float64  `json:"probability"` // Percent, 0-100
	RiskLevel      string   `json:"risk_level"`
	RiskColor      string   `json:"risk_color,omitempty"`
	TopRiskFactors []Factor `json:"top_risk_factors,omitempty"`
}

// Factor is one contributor to a prediction, most important first.
type Factor struct {
	Factor     string  `json:"factor"`
	Value      Scalar  `json:"value"`
	Importance float64 `json:"importance"` // Percent
}

// Scalar is a JSON value that may arrive as a number or a string. It keeps
// the text as sent.
type Scalar string

// UnmarshalJSON implements json.Unmarshaler.
func (s *Scalar) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = Scalar(str)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("factor value: %w", err)
	}
	*s = Scalar(n.String())
	return nil
}

// MarshalJSON implements json.Marshaler. Numeric text is written as a number.
func (s Scalar) MarshalJSON() ([]byte, error) {
	if _, err := strconv.ParseFloat(string(s), 64); err == nil {
		return []byte(s), nil
	}
	return json.Marshal(string(s))
}

// APIError is an error reported by the scoring service itself.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return "prediction error: " + e.Message
}

// response is the wire shape of a scoring reply; Error is set on failure.
type response struct {
	Result
	Error string `json:"error,omitempty"`
}

// Client posts metrics to a scoring endpoint.
type Client struct {
	endpoint string
	http     *http.Client
}

// NewClient returns a client for endpoint. A zero timeout means no limit.
func NewClient(endpoint string, timeout time.Duration) *Client {
	return &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: timeout},
	}
}

// Predict submits m and returns the service's assessment.
func (c *Client) Predict(ctx context.Context, m Metrics) (*Result, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	body, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("encoding metrics: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("posting to %s: %w", c.endpoint, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	slog.Debug("prediction response", "status", resp.StatusCode, "bytes", len(data), "elapsed", time.Since(start))

	var r response
	if err := json.Unmarshal(data, &r); err != nil {
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
		}
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	if r.Error != "" {
		return nil, &APIError{Status: resp.StatusCode, Message: r.Error}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return &r.Result, nil
}
