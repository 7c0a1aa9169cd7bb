// Package overlay draws the prediction result card over the particle backdrop.
package overlay

import (
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/olivierh59500/riskfield/config"
	"github.com/olivierh59500/riskfield/predict"
)

// Status is what the panel is currently showing.
type Status int

const (
	Hidden Status = iota
	Pending
	Ready
	Failed
)

// Layout
const (
	panelX      = 24
	panelY      = 24
	panelW      = 420
	lineHeight  = 16
	barHeight   = 10
	padding     = 12
	textOffsetY = 2
)

var (
	panelFill   = color.NRGBA{R: 10, G: 14, B: 26, A: 210}
	panelBorder = color.NRGBA{R: 24, G: 119, B: 242, A: 255}
	barTrack    = color.NRGBA{R: 40, G: 48, B: 66, A: 255}
	defaultBar  = color.NRGBA{R: 0, G: 255, B: 136, A: 255}
)

// Outcome is the result of one prediction request.
type Outcome struct {
	Result *predict.Result
	Err    error
}

// Panel shows a pending, failed or scored prediction. The progress bar
// fills to the probability after a short delay.
type Panel struct {
	status   Status
	result   *predict.Result
	message  string
	barColor color.NRGBA

	delay    float32 // Seconds before the bar starts filling
	duration float32
	waited   float32
	tween    *gween.Tween
	progress float32 // Current bar fill, percent
}

// NewPanel creates a hidden panel that reveals results over the given timing.
func NewPanel(delay, duration time.Duration) *Panel {
	return &Panel{
		delay:    float32(delay.Seconds()),
		duration: float32(duration.Seconds()),
		barColor: defaultBar,
	}
}

// Status returns what the panel is showing.
func (p *Panel) Status() Status {
	return p.status
}

// SetPending shows the panel while a request is in flight.
func (p *Panel) SetPending() {
	p.status = Pending
	p.message = "Scoring..."
}

// Apply shows the outcome of a request.
func (p *Panel) Apply(o Outcome) {
	if o.Err != nil {
		p.status = Failed
		p.result = nil
		p.message = predict.Describe(o.Err)
		return
	}
	p.status = Ready
	p.result = o.Result
	p.message = ""
	p.barColor = defaultBar
	if o.Result.RiskColor != "" {
		if c, err := config.ParseColor(o.Result.RiskColor); err == nil {
			p.barColor = c
		}
	}
	p.waited = 0
	p.progress = 0
	p.tween = gween.New(0, float32(clampPercent(o.Result.Probability)), p.duration, ease.OutCubic)
}

// Update advances the bar animation by dt seconds.
func (p *Panel) Update(dt float32) {
	if p.status != Ready || p.tween == nil {
		return
	}
	if p.waited < p.delay {
		p.waited += dt
		if p.waited < p.delay {
			return
		}
		dt = p.waited - p.delay
	}
	current, done := p.tween.Update(dt)
	p.progress = current
	if done {
		p.tween = nil
	}
}

// Progress returns the current bar fill in percent.
func (p *Panel) Progress() float32 {
	return p.progress
}

// BarColor returns the fill color of the progress bar.
func (p *Panel) BarColor() color.NRGBA {
	return p.barColor
}

// Lines returns the text rows the panel draws.
func (p *Panel) Lines() []string {
	switch p.status {
	case Pending, Failed:
		return []string{p.message}
	case Ready:
		return p.result.Lines()
	}
	return nil
}

// Draw paints the panel onto dst.
func (p *Panel) Draw(dst *ebiten.Image) {
	if p.status == Hidden {
		return
	}
	lines := p.Lines()
	h := float32(padding*2 + len(lines)*lineHeight)
	if p.status == Ready {
		h += barHeight + padding
	}
	vector.DrawFilledRect(dst, panelX, panelY, panelW, h, panelFill, false)
	vector.StrokeRect(dst, panelX, panelY, panelW, h, 1, panelBorder, false)

	y := panelY + padding
	for i, line := range lines {
		ebitenutil.DebugPrintAt(dst, line, panelX+padding, y+textOffsetY)
		y += lineHeight
		// The bar sits under the percentage and risk level rows
		if p.status == Ready && i == 1 {
			p.drawBar(dst, float32(y+padding/2))
			y += barHeight + padding
		}
	}
}

func (p *Panel) drawBar(dst *ebiten.Image, y float32) {
	w := float32(panelW - padding*2)
	vector.DrawFilledRect(dst, panelX+padding, y, w, barHeight, barTrack, false)
	fill := w * p.progress / 100
	if fill > 0 {
		vector.DrawFilledRect(dst, panelX+padding, y, fill, barHeight, p.barColor, false)
	}
}

func clampPercent(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(100, v))
}
