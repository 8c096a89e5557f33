package sections

import (
	"github.com/careerpath/roadmappdf/internal/layout"
	"github.com/careerpath/roadmappdf/internal/style"
)

const strengthsLabel = "Your Strengths — Skills You Already Have"

var strengthPills = layout.FlowOptions{Role: style.Success, Check: true}

// Strengths flows one checked pill per skill the user already has.
type Strengths struct {
	Items []string
}

func (s *Strengths) Name() string  { return "strengths" }
func (s *Strengths) IsEmpty() bool { return len(s.Items) == 0 }

func (s *Strengths) HeightEstimate(f *layout.Frame) float64 {
	if s.IsEmpty() {
		return 0
	}
	return layout.HeaderAdvance + layout.FlowHeight(f, s.Items, strengthPills) + 2*layout.MM
}

func (s *Strengths) Render(f *layout.Frame) {
	if s.IsEmpty() {
		return
	}
	layout.SectionHeader(f, strengthsLabel, style.Success, layout.FlowRowHeight)
	layout.FlowPills(f, s.Items, strengthPills)
	f.Pager.Advance(2 * layout.MM)
}
