package sections

import (
	"fmt"
	"math"

	"github.com/careerpath/roadmappdf/internal/layout"
	"github.com/careerpath/roadmappdf/internal/style"
)

// weekRoles is cycled by step index.
var weekRoles = [4]style.Role{style.Accent, style.Info, style.Success, style.Warning}

var weekFont = style.Font{Size: 6.5, Weight: style.Bold}

const (
	stepLineHeight = 4.5 * layout.MM
	stepMinHeight  = 14 * layout.MM
	stepChrome     = 8 * layout.MM
	stepGap        = 3 * layout.MM
	stepInset      = 17 * layout.MM
	planTrailer    = 2 * layout.MM
)

// ActionPlan draws one tinted block per weekly step with a round week badge.
type ActionPlan struct {
	Steps []string
}

func (s *ActionPlan) Name() string  { return "action_plan" }
func (s *ActionPlan) IsEmpty() bool { return len(s.Steps) == 0 }

// Label is the section header text.
func (s *ActionPlan) Label() string {
	return fmt.Sprintf("%d-Week Action Plan", len(s.Steps))
}

// WeekRole returns the color role of step i, 0-indexed.
func WeekRole(i int) style.Role {
	return weekRoles[i%len(weekRoles)]
}

func (s *ActionPlan) stepLines(f *layout.Frame, i int) []string {
	return f.Wrap(s.Steps[i], f.Pager.ContentWidth()-22*layout.MM, layout.BodyFont)
}

func stepHeight(lines []string) float64 {
	return math.Max(stepMinHeight, float64(len(lines))*stepLineHeight+stepChrome)
}

func (s *ActionPlan) HeightEstimate(f *layout.Frame) float64 {
	if s.IsEmpty() {
		return 0
	}
	h := layout.HeaderAdvance + planTrailer
	for i := range s.Steps {
		h += stepHeight(s.stepLines(f, i)) + stepGap
	}
	return h
}

func (s *ActionPlan) Render(f *layout.Frame) {
	if s.IsEmpty() {
		return
	}
	c := f.Canvas
	p := f.Pager
	layout.SectionHeader(f, s.Label(), style.Accent, stepHeight(s.stepLines(f, 0)))

	for i := range s.Steps {
		lines := s.stepLines(f, i)
		h := stepHeight(lines)
		p.EnsureSpace(h)
		y := p.Y()
		role := WeekRole(i)

		c.RoundedRect(p.Left(), y, p.ContentWidth(), h, 2*layout.MM, f.Tinted(role, 0.08))
		bx, by := p.Left()+8*layout.MM, y+h/2
		c.Circle(bx, by, 5*layout.MM, f.Tinted(role, 0.25))
		c.Text(bx, by+1.2*layout.MM, fmt.Sprintf("W%d", i+1), weekFont, f.Color(role), style.Center)
		for li, line := range lines {
			c.Text(p.Left()+stepInset, y+6*layout.MM+float64(li)*stepLineHeight, line, layout.BodyFont, f.Color(style.Body), style.Start)
		}
		p.Advance(h + stepGap)
	}
	p.Advance(planTrailer)
}
