package overlay

import (
	"errors"
	"image/color"
	"math"
	"testing"
	"time"

	"github.com/olivierh59500/riskfield/predict"
)

func scored(prob float64, riskColor string) Outcome {
	return Outcome{Result: &predict.Result{
		Probability: prob,
		RiskLevel:   "High",
		RiskColor:   riskColor,
		TopRiskFactors: []predict.Factor{
			{Factor: "CDS Spread", Value: "180", Importance: 31.5},
		},
	}}
}

func TestPanelStartsHidden(t *testing.T) {
	p := NewPanel(200*time.Millisecond, 800*time.Millisecond)
	if p.Status() != Hidden {
		t.Errorf("status = %v, want hidden", p.Status())
	}
	if lines := p.Lines(); lines != nil {
		t.Errorf("lines = %q, want none", lines)
	}
}

func TestPanelPending(t *testing.T) {
	p := NewPanel(0, 0)
	p.SetPending()
	if p.Status() != Pending {
		t.Errorf("status = %v, want pending", p.Status())
	}
	if lines := p.Lines(); len(lines) != 1 || lines[0] != "Scoring..." {
		t.Errorf("lines = %q", lines)
	}
}

func TestPanelRevealsAfterDelay(t *testing.T) {
	p := NewPanel(200*time.Millisecond, 800*time.Millisecond)
	p.Apply(scored(57.3, ""))

	// Still inside the delay
	for i := 0; i < 10; i++ {
		p.Update(0.01)
	}
	if p.Progress() != 0 {
		t.Errorf("progress during delay = %v, want 0", p.Progress())
	}

	for i := 0; i < 30; i++ {
		p.Update(0.01)
	}
	mid := p.Progress()
	if mid <= 0 || mid >= 57.3 {
		t.Errorf("progress mid-reveal = %v, want in (0, 57.3)", mid)
	}

	for i := 0; i < 200; i++ {
		p.Update(0.01)
	}
	if math.Abs(float64(p.Progress())-57.3) > 1e-3 {
		t.Errorf("final progress = %v, want 57.3", p.Progress())
	}
}

func TestPanelClampsProgress(t *testing.T) {
	p := NewPanel(0, 100*time.Millisecond)
	p.Apply(scored(140, ""))
	for i := 0; i < 50; i++ {
		p.Update(0.01)
	}
	if p.Progress() != 100 {
		t.Errorf("progress = %v, want 100", p.Progress())
	}
}

func TestPanelBarColor(t *testing.T) {
	p := NewPanel(0, 0)
	p.Apply(scored(10, "#ff4444"))
	if want := (color.NRGBA{R: 255, G: 68, B: 68, A: 255}); p.BarColor() != want {
		t.Errorf("bar color = %v, want %v", p.BarColor(), want)
	}

	p.Apply(scored(10, "not-a-color"))
	if p.BarColor() != defaultBar {
		t.Errorf("bar color = %v, want default %v", p.BarColor(), defaultBar)
	}
}

func TestPanelLines(t *testing.T) {
	p := NewPanel(0, 0)
	p.Apply(scored(57.3, ""))
	want := []string{"57.3%", "Risk Level: High", "CDS Spread: 180 (Importance: 31.5%)"}
	got := p.Lines()
	if len(got) != len(want) {
		t.Fatalf("lines = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestPanelFailure(t *testing.T) {
	p := NewPanel(0, 0)
	p.Apply(Outcome{Err: &predict.APIError{Message: "model not trained"}})
	if p.Status() != Failed {
		t.Errorf("status = %v, want failed", p.Status())
	}
	if lines := p.Lines(); len(lines) != 1 || lines[0] != "Prediction Error: model not trained" {
		t.Errorf("lines = %q", lines)
	}

	p.Apply(Outcome{Err: errors.New("dial tcp: connection refused")})
	if lines := p.Lines(); len(lines) != 1 || lines[0] != predict.FailureMessage {
		t.Errorf("lines = %q", lines)
	}
	p.Update(1)
	if p.Progress() != 0 {
		t.Errorf("progress after failure = %v, want 0", p.Progress())
	}
}
