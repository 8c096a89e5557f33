package sections

import (
	"fmt"

	"github.com/careerpath/roadmappdf/internal/layout"
	"github.com/careerpath/roadmappdf/internal/metrics"
	"github.com/careerpath/roadmappdf/internal/style"
)

var readinessFont = style.Font{Size: 6.5, Weight: style.Bold}

const readinessHeight = 12 * layout.MM

// Readiness is the overall readiness label and bar.
type Readiness struct {
	Metrics metrics.Derived
}

func (s *Readiness) Name() string                           { return "readiness" }
func (s *Readiness) IsEmpty() bool                          { return false }
func (s *Readiness) HeightEstimate(f *layout.Frame) float64 { return readinessHeight }

func (s *Readiness) Render(f *layout.Frame) {
	p := f.Pager
	p.EnsureSpace(readinessHeight)
	y := p.Y()
	pct := metrics.ClampPercent(s.Metrics.Readiness)
	color := f.Color(style.TierRole(metrics.TierFor(pct)))

	f.Canvas.Text(p.Left(), y+2.5*layout.MM, "OVERALL READINESS", readinessFont, f.Color(style.Muted), style.Start)
	f.Canvas.Text(p.Right(), y+2.5*layout.MM, fmt.Sprintf("%d%%", pct), readinessFont, color, style.End)
	layout.ProgressBar(f.Canvas, p.Left(), y+4*layout.MM, p.ContentWidth(), 3*layout.MM,
		metrics.Fraction(float64(pct)), color, f.Color(style.Track))
	p.Advance(readinessHeight)
}
