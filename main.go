package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/olivierh59500/riskfield/config"
	"github.com/olivierh59500/riskfield/overlay"
	"github.com/olivierh59500/riskfield/particles"
	"github.com/olivierh59500/riskfield/predict"
	"github.com/olivierh59500/riskfield/telemetry"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	dumpConfig := flag.String("dump-config", "", "Write the effective config to this path and exit")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	headless := flag.Bool("headless", false, "Run the particle loop without a window")
	frames := flag.Int("frames", 600, "Frames to run in headless mode")
	statsCSV := flag.String("stats-csv", "", "Write per-frame stats to this CSV file (headless only)")
	metricsPath := flag.String("metrics", "", "YAML file of metrics to score on startup")
	endpoint := flag.String("endpoint", "", "Scoring endpoint (empty = use config)")
	predictOnly := flag.Bool("predict-only", false, "Score -metrics, print the result and exit")
	verbose := flag.Bool("v", false, "Debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if *endpoint != "" {
		cfg.Predict.Endpoint = *endpoint
	}
	if *dumpConfig != "" {
		if err := cfg.WriteYAML(*dumpConfig); err != nil {
			slog.Error("failed to write config", "error", err)
			os.Exit(1)
		}
		return
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	switch {
	case *predictOnly:
		if err := runPredict(cfg, *metricsPath); err != nil {
			fmt.Fprintln(os.Stderr, predict.Describe(err))
			slog.Error("prediction failed", "error", err)
			os.Exit(1)
		}
	case *headless:
		if err := runHeadless(cfg, rngSeed, *frames, *statsCSV); err != nil {
			slog.Error("headless run failed", "error", err)
			os.Exit(1)
		}
	default:
		if err := runWindow(cfg, rngSeed, *metricsPath); err != nil {
			slog.Error("game loop exited", "error", err)
			os.Exit(1)
		}
	}
}

// runWindow opens the monitor window. When metricsPath is set the metrics
// are scored in the background and shown once the reply arrives.
func runWindow(cfg *config.Config, seed int64, metricsPath string) error {
	var outcomes <-chan overlay.Outcome
	if metricsPath != "" {
		m, err := predict.LoadMetrics(metricsPath)
		if err != nil {
			return err
		}
		ch := make(chan overlay.Outcome, 1)
		outcomes = ch
		go func() {
			res, err := score(cfg, m)
			if err != nil {
				slog.Warn("prediction failed", "endpoint", cfg.Predict.Endpoint, "error", err)
			} else {
				slog.Info("prediction received", "probability", res.Probability, "risk_level", res.RiskLevel)
			}
			ch <- overlay.Outcome{Result: res, Err: err}
		}()
	}

	sim := NewSimulation(cfg, seed, outcomes)

	ebiten.SetWindowSize(cfg.Screen.Width, cfg.Screen.Height)
	ebiten.SetWindowTitle(cfg.Screen.Title)
	ebiten.SetTPS(cfg.Screen.TPS)
	if cfg.Screen.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}

	slog.Info("starting monitor", "seed", seed, "particles", cfg.Field.Count)
	return ebiten.RunGame(sim)
}

// runPredict scores the metrics file once and prints the summary.
func runPredict(cfg *config.Config, metricsPath string) error {
	if metricsPath == "" {
		return fmt.Errorf("%w: -predict-only needs -metrics", predict.ErrInvalidMetrics)
	}
	m, err := predict.LoadMetrics(metricsPath)
	if err != nil {
		return err
	}
	res, err := score(cfg, m)
	if err != nil {
		return err
	}
	for _, line := range res.Lines() {
		fmt.Println(line)
	}
	return nil
}

// score posts m to the configured endpoint. A zero timeout waits forever.
func score(cfg *config.Config, m predict.Metrics) (*predict.Result, error) {
	ctx := context.Background()
	if cfg.Predict.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Predict.Timeout)
		defer cancel()
	}
	return predict.NewClient(cfg.Predict.Endpoint, cfg.Predict.Timeout).Predict(ctx, m)
}

// runHeadless drives the particle loop against a surface that draws
// nothing, logging and optionally recording per-frame stats.
func runHeadless(cfg *config.Config, seed int64, frames int, statsPath string) error {
	rec, err := telemetry.Create(statsPath)
	if err != nil {
		return err
	}
	defer rec.Close()

	field := particles.NewField(fieldOptions(cfg), rand.New(rand.NewSource(seed)))
	binding := particles.Bind(field, cfg.Screen.Width, cfg.Screen.Height)
	loop := particles.NewLoop(field, binding)
	var stepper particles.Stepper
	if !loop.Run(&stepper) {
		return nil
	}

	slog.Info("starting headless run", "seed", seed, "frames", frames, "particles", cfg.Field.Count)
	for i := 0; i < frames; i++ {
		stepper.Step(particles.Discard)
		last := loop.LastFrame()
		stats := telemetry.FrameStats{
			Frame:     loop.Frames(),
			Particles: len(field.Particles()),
			Edges:     last.Edges,
			MeanAlpha: last.MeanAlpha,
			Width:     binding.Viewport().Width,
			Height:    binding.Viewport().Height,
		}
		if err := rec.Write(stats); err != nil {
			return err
		}
		if every := cfg.Headless.LogEvery; every > 0 && stats.Frame%uint64(every) == 0 {
			slog.Info("frame", "stats", stats)
		}
	}
	slog.Info("headless run finished", "frames", loop.Frames(), "rows", rec.Rows())
	return nil
}
