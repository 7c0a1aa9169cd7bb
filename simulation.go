package main

import (
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/olivierh59500/riskfield/config"
	"github.com/olivierh59500/riskfield/overlay"
	"github.com/olivierh59500/riskfield/particles"
	"github.com/olivierh59500/riskfield/render"
)

// Simulation is the Ebitengine game: the particle backdrop with the
// prediction panel drawn on top.
type Simulation struct {
	cfg      *config.Config
	field    *particles.Field
	binding  *particles.Binding
	loop     *particles.Loop
	frames   particles.Stepper
	backdrop *render.Backdrop
	panel    *overlay.Panel
	outcomes <-chan overlay.Outcome
}

// fieldOptions maps the field section of cfg onto particle options.
func fieldOptions(cfg *config.Config) particles.Options {
	return particles.Options{
		Count:         cfg.Field.Count,
		LinkDistance:  cfg.Field.LinkDistance,
		LinkWidth:     cfg.Field.LinkWidth,
		MaxSpeed:      cfg.Field.MaxSpeed,
		MinRadius:     cfg.Field.MinRadius,
		MaxRadius:     cfg.Field.MaxRadius,
		ParticleColor: cfg.Colors.Particle.NRGBA(),
		LinkColor:     cfg.Colors.Link.NRGBA(),
	}
}

// NewSimulation seeds the field at the configured window size and starts
// its frame loop. outcomes may be nil when no prediction was requested.
func NewSimulation(cfg *config.Config, seed int64, outcomes <-chan overlay.Outcome) *Simulation {
	s := &Simulation{
		cfg:      cfg,
		panel:    overlay.NewPanel(cfg.Predict.RevealDelay, cfg.Predict.RevealDuration),
		outcomes: outcomes,
	}
	s.field = particles.NewField(fieldOptions(cfg), rand.New(rand.NewSource(seed)))
	s.binding = particles.Bind(s.field, cfg.Screen.Width, cfg.Screen.Height)
	s.loop = particles.NewLoop(s.field, s.binding)
	if cfg.Backdrop.Enabled {
		b := cfg.Backdrop
		s.backdrop = render.NewBackdrop(seed, b.Cell, b.Scale, b.Speed, b.Alpha, b.Color.NRGBA())
	}
	if outcomes != nil {
		s.panel.SetPending()
	}
	s.loop.Run(&s.frames)
	return s
}

// Update is called each tick by Ebitengine
func (s *Simulation) Update() error {
	select {
	case o, ok := <-s.outcomes:
		if ok {
			s.panel.Apply(o)
		}
		s.outcomes = nil
	default:
	}
	s.panel.Update(1 / float32(ebiten.TPS()))
	return nil
}

// Draw is called each frame by Ebitengine
func (s *Simulation) Draw(screen *ebiten.Image) {
	s.frames.Step(render.NewScreen(screen, s.cfg.Colors.Background.NRGBA(), s.backdrop))
	s.panel.Draw(screen)
}

// Layout tracks the window size; a change reseeds the field.
func (s *Simulation) Layout(outsideWidth, outsideHeight int) (int, int) {
	s.binding.Resize(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}
