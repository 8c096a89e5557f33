// Package sections renders the blocks of a roadmap document. Each section is
// self-contained: it knows whether it has anything to draw, roughly how tall
// it will be, and how to paint itself at the pager's cursor.
package sections

import (
	"github.com/careerpath/roadmappdf/internal/layout"
	"github.com/careerpath/roadmappdf/internal/metrics"
	"github.com/careerpath/roadmappdf/internal/model"
)

// Section is one block of the document.
type Section interface {
	// Name identifies the section in logs and tests.
	Name() string
	// IsEmpty reports whether the section has nothing to draw. Empty
	// sections are skipped entirely, header included.
	IsEmpty() bool
	// HeightEstimate returns the vertical space the section needs if drawn
	// without page breaks. It is diagnostic only: the assembler logs it in
	// debug mode and never places content by it. Pagination is decided per
	// row or block inside Render.
	HeightEstimate(f *layout.Frame) float64
	// Render draws the section at the cursor and leaves the cursor below it.
	Render(f *layout.Frame)
}

// Logo is a registered brand image shown in the identity header.
type Logo struct {
	Name string
	// Width and Height give the aspect ratio; any unit.
	Width, Height float64
}

// Input is everything the sections draw from.
type Input struct {
	Record   *model.RoleRecord
	Progress model.ProgressState
	Metrics  metrics.Derived
	Logo     *Logo
}

// Build returns the sections of a roadmap in document order: identity,
// readiness, strengths, gaps, resources, action plan, projects.
func Build(in Input) []Section {
	rec := in.Record
	if rec == nil {
		rec = &model.RoleRecord{}
	}
	return []Section{
		&Identity{Record: rec, Metrics: in.Metrics, Logo: in.Logo},
		&Readiness{Metrics: in.Metrics},
		&Strengths{Items: rec.Strengths},
		&Gaps{Skills: rec.MissingSkills, Progress: in.Progress, Metrics: in.Metrics},
		NewResources(rec.Resources),
		&ActionPlan{Steps: rec.ActionPlan},
		NewProjects(rec.MiniProjects),
	}
}
