package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/olivierh59500/riskfield/config"
	"github.com/olivierh59500/riskfield/overlay"
	"github.com/olivierh59500/riskfield/particles"
	"github.com/olivierh59500/riskfield/predict"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("config.Load: %v", err)
	}
	cfg.Screen.Width, cfg.Screen.Height = 800, 600
	return cfg
}

func TestNewSimulationStartsLoop(t *testing.T) {
	sim := NewSimulation(testConfig(t), 1, nil)
	if sim.loop.State() != particles.Running {
		t.Errorf("loop state = %v, want running", sim.loop.State())
	}
	if got := len(sim.field.Particles()); got != 100 {
		t.Errorf("particles = %d, want 100", got)
	}
	if sim.panel.Status() != overlay.Hidden {
		t.Errorf("panel status = %v, want hidden without a prediction", sim.panel.Status())
	}
	if !sim.frames.Step(particles.Discard) {
		t.Error("no frame scheduled after start")
	}
}

func TestLayoutReseedsOnResize(t *testing.T) {
	sim := NewSimulation(testConfig(t), 1, nil)
	first := sim.field.Particles()[0]

	if w, h := sim.Layout(800, 600); w != 800 || h != 600 {
		t.Errorf("layout = %dx%d, want 800x600", w, h)
	}
	if sim.field.Particles()[0] != first {
		t.Error("unchanged layout reseeded the field")
	}

	sim.Layout(400, 300)
	vp := sim.field.Bounds()
	if vp.Width != 400 || vp.Height != 300 {
		t.Errorf("bounds = %+v, want 400x300", vp)
	}
	for i, p := range sim.field.Particles() {
		if p == first {
			t.Errorf("particle %d survived the resize", i)
		}
		if !vp.Contains(p.Pos) {
			t.Errorf("particle %d outside the new viewport", i)
		}
	}
}

func TestUpdateAppliesOutcome(t *testing.T) {
	ch := make(chan overlay.Outcome, 1)
	sim := NewSimulation(testConfig(t), 1, ch)
	if sim.panel.Status() != overlay.Pending {
		t.Fatalf("panel status = %v, want pending", sim.panel.Status())
	}

	if err := sim.Update(); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if sim.panel.Status() != overlay.Pending {
		t.Errorf("panel status = %v, want pending before the reply", sim.panel.Status())
	}

	ch <- overlay.Outcome{Result: &predict.Result{Probability: 12, RiskLevel: "Low"}}
	sim.Update()
	if sim.panel.Status() != overlay.Ready {
		t.Errorf("panel status = %v, want ready", sim.panel.Status())
	}
	if sim.outcomes != nil {
		t.Error("outcome channel still polled after the reply")
	}
}

func TestRunHeadlessWritesStats(t *testing.T) {
	cfg := testConfig(t)
	cfg.Headless.LogEvery = 0
	path := filepath.Join(t.TempDir(), "stats.csv")

	if err := runHeadless(cfg, 5, 30, path); err != nil {
		t.Fatalf("runHeadless: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 31 {
		t.Errorf("csv lines = %d, want header plus 30 rows", len(lines))
	}
	if !strings.HasPrefix(lines[1], "1,100,") {
		t.Errorf("first row = %q, want frame 1 with 100 particles", lines[1])
	}
}
