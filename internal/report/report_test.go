package report

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"log"
	"testing"
	"time"

	"github.com/careerpath/roadmappdf/internal/model"
	"github.com/careerpath/roadmappdf/internal/render"
	"github.com/careerpath/roadmappdf/internal/render/pdf"
	"github.com/careerpath/roadmappdf/internal/sections"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recording returns an assembler drawing on in-memory canvases, plus access
// to the last canvas it produced.
func recording(opts Options) (*Assembler, func() *render.Recorder) {
	var last *render.Recorder
	a := New(opts).WithCanvas(func(o Options) render.Canvas {
		last = render.NewRecorder(o.PageSize.Width, o.PageSize.Height)
		return last
	})
	return a, func() *render.Recorder { return last }
}

func bigRecord() *model.RoleRecord {
	r := &model.RoleRecord{
		Role:       "Data Engineer",
		MatchScore: 62,
		AvgSalary:  1500000,
		Headline:   "Pipelines, warehouses and streaming",
		Strengths:  []string{"Python", "SQL", "Airflow"},
	}
	for i := 0; i < 40; i++ {
		r.MissingSkills = append(r.MissingSkills, fmt.Sprintf("Skill %d", i+1))
	}
	for i := 0; i < 12; i++ {
		r.Resources = append(r.Resources, fmt.Sprintf("Resource number %d with a reasonably long description of what it covers", i+1))
		r.MiniProjects = append(r.MiniProjects, fmt.Sprintf("Project %d", i+1))
	}
	r.ActionPlan = []string{"Week one", "Week two", "Week three", "Week four"}
	return r
}

func TestRender_FooterOnEveryPage(t *testing.T) {
	a, last := recording(DefaultOptions())
	art, err := a.Render(bigRecord(), model.NewProgressState("Skill 1"))
	require.NoError(t, err)

	rec := last()
	require.GreaterOrEqual(t, art.Pages, 2)
	assert.Equal(t, rec.PageCount(), art.Pages)
	for i, p := range rec.Pages {
		want := fmt.Sprintf("Page %d of %d", i+1, art.Pages)
		assert.True(t, p.HasText(want), "page %d missing %q", i+1, want)
		assert.True(t, p.HasText(FooterLabel))
		// the footer is drawn after the page content
		last := p.Ops[len(p.Ops)-1]
		assert.Equal(t, want, last.Text)
	}
}

func TestRender_SectionOrder(t *testing.T) {
	a, last := recording(DefaultOptions())
	_, err := a.Render(bigRecord(), nil)
	require.NoError(t, err)

	var order []string
	markers := []string{
		sections.ProductBadge,
		"OVERALL READINESS",
		"YOUR STRENGTHS — SKILLS YOU ALREADY HAVE",
		"SKILL GAP TRACKER  (0/40 COMPLETED)",
		"CURATED LEARNING RESOURCES",
		"4-WEEK ACTION PLAN",
		"MINI PROJECT SUGGESTIONS",
	}
	for _, p := range last().Pages {
		for _, s := range p.Texts() {
			for _, m := range markers {
				if s == m {
					order = append(order, m)
				}
			}
		}
	}
	assert.Equal(t, markers, order)
}

func TestRender_EmptyDocument(t *testing.T) {
	a, last := recording(DefaultOptions())
	art, err := a.Render(&model.RoleRecord{Role: "Analyst"}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, art.Pages)

	p := last().Pages[0]
	assert.True(t, p.HasText(sections.ProductBadge))
	assert.True(t, p.HasText("OVERALL READINESS"))
	assert.True(t, p.HasText("Page 1 of 1"))
	assert.False(t, p.HasText("SKILL GAP TRACKER"))
	assert.False(t, p.HasText("RESOURCE 1"))
	assert.Equal(t, 100, art.Metrics.GapProgress)
}

func TestRender_NilRecord(t *testing.T) {
	a, _ := recording(DefaultOptions())
	art, err := a.Render(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, art.Pages)
	assert.Equal(t, "career-roadmap-.pdf", art.Name)
}

func TestRender_IgnoresStrayProgress(t *testing.T) {
	rec := &model.RoleRecord{Role: "X", MatchScore: 62, MissingSkills: []string{"Docker", "Kubernetes", "Terraform"}}
	a, _ := recording(DefaultOptions())
	art, err := a.Render(rec, model.NewProgressState("Docker", "Rust", "Go"))
	require.NoError(t, err)
	assert.Equal(t, 1, art.Metrics.Completed)
	assert.Equal(t, 33, art.Metrics.GapProgress)
	assert.Equal(t, 50, art.Metrics.Readiness)
}

func TestRender_CleansMarkup(t *testing.T) {
	rec := &model.RoleRecord{
		Role:          "R&amp;D <b>Engineer</b>",
		MissingSkills: []string{"<i>Docker</i>"},
	}
	a, last := recording(DefaultOptions())
	art, err := a.Render(rec, model.NewProgressState("<i>Docker</i>"))
	require.NoError(t, err)
	assert.Equal(t, "r-d-engineer", art.BaseName)
	assert.Equal(t, 1, art.Metrics.Completed)
	assert.True(t, last().Pages[0].HasText("R&D Engineer"))
}

func TestMetrics_AgreesWithRenderedDocument(t *testing.T) {
	rec := &model.RoleRecord{
		Role:          "Platform Engineer",
		MatchScore:    80,
		MissingSkills: []string{"docker", "kubernetes", "", "<br>"},
		Strengths:     []string{"Go", "  "},
		ActionPlan:    []string{"Week one", ""},
	}
	progress := model.NewProgressState("docker")

	a, last := recording(DefaultOptions())
	art, err := a.Render(rec, progress)
	require.NoError(t, err)

	m := Metrics(rec, progress)
	assert.Equal(t, m, art.Metrics)
	assert.Equal(t, 4, m.Total)
	assert.Equal(t, 1, m.Completed)
	assert.Equal(t, 25, m.GapProgress)

	rows := 0
	for _, p := range last().Pages {
		for _, txt := range p.Texts() {
			if txt == "Done" || txt == "To learn" {
				rows++
			}
		}
	}
	assert.Equal(t, len(rec.MissingSkills), rows)
	assert.True(t, last().Pages[0].HasText("2-WEEK ACTION PLAN"))
}

func TestMetrics_NilRecord(t *testing.T) {
	m := Metrics(nil, nil)
	assert.Equal(t, 0, m.Total)
	assert.Equal(t, 100, m.GapProgress)
}

func TestRender_DebugLogsSectionEstimates(t *testing.T) {
	var logs bytes.Buffer
	opts := DefaultOptions()
	opts.Debug = true
	opts.Logger = log.New(&logs, "", 0)
	a, _ := recording(opts)
	_, err := a.Render(bigRecord(), nil)
	require.NoError(t, err)

	out := logs.String()
	for _, name := range []string{"identity", "readiness", "strengths", "gaps", "resources", "action_plan", "projects"} {
		assert.Contains(t, out, "[Export] section "+name+" ")
	}
	assert.Contains(t, out, "est=")
}

func TestSlug(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Backend Engineer", "backend-engineer"},
		{"C++ / Systems", "c-----systems"},
		{"ML Ops 2.0", "ml-ops-2-0"},
		{"Développeur", "d-veloppeur"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Slug(tt.in), tt.in)
	}
	assert.Equal(t, "career-roadmap-backend-engineer.pdf", FileName("Backend Engineer"))
}

func TestRender_PDF(t *testing.T) {
	opts := DefaultOptions()
	opts.Title = "Career roadmap"
	opts.CreationDate = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	a := New(opts)

	art, err := a.Render(bigRecord(), model.NewProgressState("Skill 2"))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(art.Data, []byte("%PDF-")))
	assert.Equal(t, "career-roadmap-data-engineer.pdf", art.Name)
	assert.GreaterOrEqual(t, art.Pages, 2)

	again, err := a.Render(bigRecord(), model.NewProgressState("Skill 2"))
	require.NoError(t, err)
	assert.Equal(t, art.Data, again.Data)
}

func TestRender_StrictGlyphFailure(t *testing.T) {
	opts := DefaultOptions()
	opts.Strict = true
	rec := &model.RoleRecord{Role: "Engineer", Headline: "Earn ₹ in style"}

	art, err := New(opts).Render(rec, nil)
	require.Error(t, err)
	assert.Nil(t, art)

	var re *RenderError
	require.True(t, errors.As(err, &re))
	var ge *pdf.GlyphError
	require.True(t, errors.As(err, &ge))
	assert.Equal(t, '₹', ge.Rune)
}

func TestRender_LossyByDefault(t *testing.T) {
	rec := &model.RoleRecord{Role: "Engineer", Headline: "Earn ₹ in style"}
	art, err := New(DefaultOptions()).Render(rec, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, art.Data)
}

func TestRender_Logo(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 40, 20))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	opts := DefaultOptions()
	opts.Logo = buf.Bytes()
	a, last := recording(opts)
	_, err := a.Render(&model.RoleRecord{Role: "X"}, nil)
	require.NoError(t, err)

	var found bool
	for _, op := range last().Pages[0].Ops {
		if op.Kind == render.OpImage {
			found = true
			assert.InDelta(t, op.H*2, op.W, 1e-9)
		}
	}
	assert.True(t, found)
}

func TestRender_BadLogo(t *testing.T) {
	opts := DefaultOptions()
	opts.Logo = []byte("not an image")
	art, err := New(opts).Render(&model.RoleRecord{Role: "X"}, nil)
	require.Error(t, err)
	assert.Nil(t, art)
	var re *RenderError
	assert.True(t, errors.As(err, &re))
}

type failingCanvas struct {
	*render.Recorder
}

func (failingCanvas) Output(io.Writer) error {
	return errors.New("disk full")
}

func TestRender_SerializationFailure(t *testing.T) {
	a := New(DefaultOptions()).WithCanvas(func(o Options) render.Canvas {
		return failingCanvas{render.NewRecorder(o.PageSize.Width, o.PageSize.Height)}
	})
	art, err := a.Render(bigRecord(), nil)
	require.Error(t, err)
	assert.Nil(t, art)
	var re *RenderError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, "failed to serialize document", re.Message)
}

func TestRenderError(t *testing.T) {
	cause := errors.New("boom")
	err := &RenderError{Message: "failed to serialize document", Cause: cause}
	assert.Equal(t, "failed to serialize document: boom", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "plain", (&RenderError{Message: "plain"}).Error())
}
