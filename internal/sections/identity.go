package sections

import (
	"fmt"
	"math"

	"github.com/careerpath/roadmappdf/internal/layout"
	"github.com/careerpath/roadmappdf/internal/metrics"
	"github.com/careerpath/roadmappdf/internal/model"
	"github.com/careerpath/roadmappdf/internal/style"
)

// ProductBadge is the product name shown in the identity header.
const ProductBadge = "AI CAREER PATH RECOMMENDER"

var (
	roleFont     = style.Font{Size: 18, Weight: style.Bold}
	headlineFont = style.Font{Size: 7.5, Weight: style.Regular}
	badgeFont    = style.Font{Size: 6, Weight: style.Bold}
	scoreFont    = style.Font{Size: 9, Weight: style.Bold}
	scoreCaption = style.Font{Size: 5, Weight: style.Regular}
)

const (
	bandHeight     = 52 * layout.MM
	roleLineHeight = 7 * layout.MM
	headlineLine   = 4 * layout.MM
	identityGap    = 8 * layout.MM
	scoreRadius    = 12 * layout.MM
	scoreReserve   = 35 * layout.MM
)

// Identity is the full-bleed header band at the top of the first page.
type Identity struct {
	Record  *model.RoleRecord
	Metrics metrics.Derived
	Logo    *Logo
}

func (s *Identity) Name() string { return "identity" }

// IsEmpty is always false: the header is drawn even for a blank record.
func (s *Identity) IsEmpty() bool { return false }

func (s *Identity) HeightEstimate(f *layout.Frame) float64 {
	role, headline := s.lines(f)
	return s.band(role, headline, len(s.pillRows(f))) + identityGap
}

func (s *Identity) lines(f *layout.Frame) (role, headline []string) {
	w := f.Pager.ContentWidth() - scoreReserve
	role = f.Wrap(s.Record.Role, w, roleFont)
	if len(role) == 0 {
		role = []string{""}
	}
	return role, f.Wrap(s.Record.Headline, w, headlineFont)
}

// band grows the base height for every role line past the first, every
// headline line past the second and every pill row past the first.
func (s *Identity) band(role, headline []string, pillRows int) float64 {
	extra := float64(len(role)-1) * roleLineHeight
	if n := len(headline); n > 2 {
		extra += float64(n-2) * headlineLine
	}
	if pillRows > 1 {
		extra += float64(pillRows-1) * layout.FlowRowHeight
	}
	return bandHeight + extra
}

func (s *Identity) Render(f *layout.Frame) {
	c := f.Canvas
	p := f.Pager
	pageW := p.Size().Width
	role, headline := s.lines(f)
	rows := s.pillRows(f)
	h := s.band(role, headline, len(rows))
	header := f.Color(style.Header)

	c.FillRect(0, 0, pageW, h, header)
	c.FillRect(pageW/2, 0, pageW/2, h, style.Tint(f.Color(style.Highlight), header, 0.6))
	for i, r := range []style.Role{style.Accent, style.Info, style.Success} {
		c.FillRect(0, h/3*float64(i), 4*layout.MM, h/3, f.Color(r))
	}

	left := p.Left()
	c.RoundedRect(left, 9*layout.MM, 38*layout.MM, 5.5*layout.MM, 1.5*layout.MM, style.Tint(f.Color(style.Accent), header, 0.2))
	c.Text(left+2.5*layout.MM, 13*layout.MM, ProductBadge, badgeFont, f.Color(style.Accent), style.Start)
	if s.Logo != nil && s.Logo.Height > 0 {
		lh := 6.5 * layout.MM
		lw := lh * s.Logo.Width / s.Logo.Height
		c.Image(s.Logo.Name, left+40*layout.MM, 8.5*layout.MM, lw, lh)
	}

	y := 26 * layout.MM
	for _, line := range role {
		c.Text(left, y, line, roleFont, f.Color(style.Text), style.Start)
		y += roleLineHeight
	}
	y = 32*layout.MM + float64(len(role)-1)*roleLineHeight
	for i, line := range headline {
		c.Text(left, y+float64(i)*headlineLine, line, headlineFont, f.Color(style.Muted), style.Start)
	}

	cx := p.Right() - 14*layout.MM
	cy := 26 * layout.MM
	c.StrokeCircle(cx, cy, scoreRadius, 1.5*layout.MM, f.Color(style.Accent))
	c.Text(cx, cy+0.5*layout.MM, FormatScore(s.Record.MatchScore)+"%", scoreFont, f.Color(style.Text), style.Center)
	c.Text(cx, cy+4.5*layout.MM, "match", scoreCaption, f.Color(style.Muted), style.Center)

	py := h - 14.5*layout.MM - float64(len(rows)-1)*layout.FlowRowHeight
	for _, row := range rows {
		x := left
		for _, pill := range row {
			x += layout.Pill(f, x, py, pill.text, pill.role)
		}
		py += layout.FlowRowHeight
	}

	p.SetY(math.Max(p.Y(), h+identityGap))
}

type pillDef struct {
	text string
	role style.Role
}

// pillRows wraps the summary pills to the content width. A pill wider than
// the whole row still gets a row of its own.
func (s *Identity) pillRows(f *layout.Frame) [][]pillDef {
	left, right := f.Pager.Left(), f.Pager.Right()
	var rows [][]pillDef
	var row []pillDef
	x := left
	for _, pill := range s.pills() {
		w := layout.PillWidth(f, pill.text)
		if len(row) > 0 && x+w > right {
			rows = append(rows, row)
			row, x = nil, left
		}
		row = append(row, pill)
		x += w + layout.PillGap
	}
	return append(rows, row)
}

func (s *Identity) pills() []pillDef {
	out := []pillDef{
		{FormatSalary(s.Record.AvgSalary), style.Success},
		{FormatScore(s.Record.MatchScore) + "% match", style.Info},
		{fmt.Sprintf("%d gaps", len(s.Record.MissingSkills)), style.Warning},
		{fmt.Sprintf("%d%% ready", metrics.ClampPercent(s.Metrics.Readiness)), style.Success},
	}
	if s.Record.IsLowConfidence() {
		out = append(out, pillDef{"Low confidence", style.Danger})
	}
	return out
}
