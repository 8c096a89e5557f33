package sections

import (
	"fmt"

	"github.com/careerpath/roadmappdf/internal/layout"
	"github.com/careerpath/roadmappdf/internal/metrics"
	"github.com/careerpath/roadmappdf/internal/model"
	"github.com/careerpath/roadmappdf/internal/style"
)

const (
	gapBarAdvance = 6 * layout.MM
	gapRowAdvance = 7 * layout.MM
	gapRowHeight  = 6 * layout.MM
	gapTrailer    = 3 * layout.MM
)

var (
	gapFont     = style.Font{Size: 7.5, Weight: style.Regular}
	gapDoneFont = style.Font{Size: 7.5, Weight: style.Bold}
	gapBadge    = style.Font{Size: 6.5, Weight: style.Bold}
)

// Gaps is the skill gap checklist: a progress bar followed by one row per
// missing skill.
type Gaps struct {
	Skills   []string
	Progress model.ProgressState
	Metrics  metrics.Derived
}

func (s *Gaps) Name() string  { return "gaps" }
func (s *Gaps) IsEmpty() bool { return len(s.Skills) == 0 }

func (s *Gaps) HeightEstimate(f *layout.Frame) float64 {
	if s.IsEmpty() {
		return 0
	}
	return layout.HeaderAdvance + gapBarAdvance + float64(len(s.Skills))*gapRowAdvance + gapTrailer
}

// Label is the section header text.
func (s *Gaps) Label() string {
	return fmt.Sprintf("Skill Gap Tracker  (%d/%d completed)", s.Metrics.Completed, s.Metrics.Total)
}

func (s *Gaps) Render(f *layout.Frame) {
	if s.IsEmpty() {
		return
	}
	p := f.Pager
	layout.SectionHeader(f, s.Label(), style.Warning, gapBarAdvance+gapRowAdvance)

	bar := style.Warning
	if s.Metrics.GapsComplete {
		bar = style.Success
	}
	layout.ProgressBar(f.Canvas, p.Left(), p.Y(), p.ContentWidth(), 2.5*layout.MM,
		metrics.Fraction(float64(s.Metrics.GapProgress)), f.Color(bar), f.Color(style.Track))
	p.Advance(gapBarAdvance)

	for _, skill := range s.Skills {
		p.EnsureSpace(gapRowAdvance)
		s.row(f, skill, s.Progress.Has(skill))
		p.Advance(gapRowAdvance)
	}
	p.Advance(gapTrailer)
}

func (s *Gaps) row(f *layout.Frame, skill string, done bool) {
	c := f.Canvas
	p := f.Pager
	y := p.Y()

	bg := f.Tinted(style.Text, 0.03)
	textColor := f.Color(style.Body)
	font := gapFont
	badge, badgeRole := "To learn", style.Muted
	if done {
		bg = f.Tinted(style.Success, 0.07)
		textColor = f.Color(style.Success)
		font = gapDoneFont
		badge, badgeRole = "Done", style.Success
	}
	c.RoundedRect(p.Left(), y, p.ContentWidth(), gapRowHeight, 1.5*layout.MM, bg)

	cx, cy, r := p.Left()+4*layout.MM, y+gapRowHeight/2, 1.6*layout.MM
	if done {
		c.Circle(cx, cy, r, f.Color(style.Success))
		layout.CheckMark(c, cx, cy, r*0.6, f.Color(style.Background))
	} else {
		c.StrokeCircle(cx, cy, r, 0.3*layout.MM, f.Color(style.Muted))
	}

	c.Text(p.Left()+10*layout.MM, y+4.2*layout.MM, skill, font, textColor, style.Start)

	bw := c.MeasureText(badge, gapBadge) + 6*layout.MM
	bx := p.Right() - bw
	c.RoundedRect(bx, y+0.5*layout.MM, bw, 5*layout.MM, 1.5*layout.MM, f.Tinted(badgeRole, 0.15))
	c.Text(bx+3*layout.MM, y+3.8*layout.MM, badge, gapBadge, f.Color(badgeRole), style.Start)
}
