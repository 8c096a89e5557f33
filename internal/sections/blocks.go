package sections

import (
	"fmt"

	"github.com/careerpath/roadmappdf/internal/layout"
	"github.com/careerpath/roadmappdf/internal/style"
)

// Blocks renders one labelled text block per item. Resources and mini
// projects share this shape.
type Blocks struct {
	name      string
	title     string
	label     string
	role      style.Role
	tint      float64
	minHeight float64
	lineH     float64
	chrome    float64

	Items []string
}

// NewResources returns the curated learning resources section.
func NewResources(items []string) *Blocks {
	return &Blocks{
		name:      "resources",
		title:     "Curated Learning Resources",
		label:     "RESOURCE",
		role:      style.Info,
		tint:      0.06,
		minHeight: 10 * layout.MM,
		lineH:     4 * layout.MM,
		chrome:    5 * layout.MM,
		Items:     items,
	}
}

// NewProjects returns the mini project suggestions section.
func NewProjects(items []string) *Blocks {
	return &Blocks{
		name:      "projects",
		title:     "Mini Project Suggestions",
		label:     "PROJECT",
		role:      style.Danger,
		tint:      0.05,
		minHeight: 12 * layout.MM,
		lineH:     4.2 * layout.MM,
		chrome:    8 * layout.MM,
		Items:     items,
	}
}

func (s *Blocks) Name() string  { return s.name }
func (s *Blocks) IsEmpty() bool { return len(s.Items) == 0 }

func (s *Blocks) block(i int) layout.Block {
	return layout.Block{
		Label:      fmt.Sprintf("%s %d", s.label, i+1),
		Body:       s.Items[i],
		Role:       s.role,
		Tint:       s.tint,
		MinHeight:  s.minHeight,
		LineHeight: s.lineH,
		Chrome:     s.chrome,
	}
}

func (s *Blocks) HeightEstimate(f *layout.Frame) float64 {
	if s.IsEmpty() {
		return 0
	}
	h := layout.HeaderAdvance
	for i := range s.Items {
		h += layout.BlockHeight(f, s.block(i)) + layout.BlockGap
	}
	return h
}

func (s *Blocks) Render(f *layout.Frame) {
	if s.IsEmpty() {
		return
	}
	layout.SectionHeader(f, s.title, s.role, layout.BlockHeight(f, s.block(0)))
	for i := range s.Items {
		layout.TextBlock(f, s.block(i))
	}
}
