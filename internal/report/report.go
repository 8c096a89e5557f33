// Package report assembles a complete roadmap document: it runs the section
// renderers in order, stamps the running footer on every page and
// serializes the result.
package report

import (
	"bytes"
	"fmt"
	"image"
	"log"
	"strings"
	"time"

	"github.com/careerpath/roadmappdf/internal/layout"
	"github.com/careerpath/roadmappdf/internal/metrics"
	"github.com/careerpath/roadmappdf/internal/model"
	"github.com/careerpath/roadmappdf/internal/pagination"
	"github.com/careerpath/roadmappdf/internal/render"
	"github.com/careerpath/roadmappdf/internal/render/pdf"
	"github.com/careerpath/roadmappdf/internal/sections"
	"github.com/careerpath/roadmappdf/internal/style"
	"github.com/careerpath/roadmappdf/internal/text"
)

// FooterLabel is printed at the bottom left of every page.
const FooterLabel = "AI Career Path Recommender  ·  Generated by AI Resume"

const (
	footerHeight   = 10 * layout.MM
	footerBaseline = 4 * layout.MM
	logoName       = "brand-logo"
)

var footerFont = style.Font{Size: 6, Weight: style.Regular}

// Options configures an Assembler.
type Options struct {
	PageSize pagination.PageSize
	Margins  pagination.Margins
	Palette  style.Palette

	// Logo is an optional brand image in any supported raster format.
	Logo []byte

	Title    string
	Author   string
	Subject  string
	Keywords string
	Creator  string
	// CreationDate pins document timestamps for reproducible output.
	CreationDate time.Time
	// Strict fails generation on text the document fonts cannot encode.
	Strict bool

	Debug  bool
	Logger *log.Logger
}

// DefaultOptions returns A4 pages with the default margins and palette.
func DefaultOptions() Options {
	return Options{
		PageSize: pagination.PageSizeA4,
		Margins:  pagination.DefaultMargins,
		Palette:  style.DefaultPalette(),
		Author:   "AI Resume",
		Subject:  "Career roadmap",
		Creator:  "roadmappdf",
	}
}

// Artifact is a finished document.
type Artifact struct {
	// Name is the suggested download file name.
	Name string
	// BaseName is the slug of the role name.
	BaseName string
	Data     []byte
	Pages    int
	Metrics  metrics.Derived
}

// CanvasFactory creates the drawing surface for one pass.
type CanvasFactory func(opts Options) render.Canvas

// PDFCanvas is the default CanvasFactory.
func PDFCanvas(opts Options) render.Canvas {
	return pdf.New(pdf.Options{
		Width:        opts.PageSize.Width,
		Height:       opts.PageSize.Height,
		Title:        opts.Title,
		Author:       opts.Author,
		Subject:      opts.Subject,
		Keywords:     opts.Keywords,
		Creator:      opts.Creator,
		Producer:     opts.Creator,
		CreationDate: opts.CreationDate,
		Strict:       opts.Strict,
		Debug:        opts.Debug,
		Logger:       opts.Logger,
	})
}

// Assembler turns a role record and progress state into a document. An
// Assembler holds no per-document state and may be shared between
// goroutines.
type Assembler struct {
	opts      Options
	newCanvas CanvasFactory
}

// New creates an Assembler producing PDF output.
func New(opts Options) *Assembler {
	if opts.PageSize.Width <= 0 || opts.PageSize.Height <= 0 {
		opts.PageSize = pagination.PageSizeA4
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	return &Assembler{opts: opts, newCanvas: PDFCanvas}
}

// WithCanvas returns a copy of a that draws on canvases made by factory.
func (a *Assembler) WithCanvas(factory CanvasFactory) *Assembler {
	return &Assembler{opts: a.opts, newCanvas: factory}
}

// Options returns the assembler's configuration.
func (a *Assembler) Options() Options {
	return a.opts
}

// Render generates the document for rec. Progress entries naming skills
// outside rec.MissingSkills are ignored.
func (a *Assembler) Render(rec *model.RoleRecord, progress model.ProgressState) (*Artifact, error) {
	if rec == nil {
		rec = &model.RoleRecord{}
	}
	clean := Clean(rec)
	progress = cleanProgress(progress)
	derived := metrics.Compute(clean, progress)
	a.debugf("[Export] role=%q gaps=%d/%d readiness=%d", clean.Role, derived.Completed, derived.Total, derived.Readiness)

	c := a.newCanvas(a.opts)
	logo, err := a.registerLogo(c)
	if err != nil {
		return nil, &RenderError{Message: "failed to load logo", Cause: err}
	}

	palette := a.opts.Palette
	pager := pagination.NewPager(c, a.opts.PageSize, a.opts.Margins, palette.Color(style.Background))
	pager.Debug = a.opts.Debug
	pager.Logger = a.opts.Logger
	frame := layout.NewFrame(c, pager, &palette)
	frame.Debug = a.opts.Debug
	frame.Logger = a.opts.Logger

	pager.Start()
	for _, s := range sections.Build(sections.Input{
		Record:   clean,
		Progress: progress,
		Metrics:  derived,
		Logo:     logo,
	}) {
		if s.IsEmpty() {
			continue
		}
		a.debugf("[Export] section %s from page %d y=%.1f est=%.1f", s.Name(), pager.Page(), pager.Y(), s.HeightEstimate(frame))
		s.Render(frame)
	}

	a.drawFooters(c, &palette)

	if err := c.Err(); err != nil {
		return nil, &RenderError{Message: "failed to render document", Cause: err}
	}

	var buf bytes.Buffer
	if err := c.Output(&buf); err != nil {
		return nil, &RenderError{Message: "failed to serialize document", Cause: err}
	}

	base := Slug(clean.Role)
	art := &Artifact{
		Name:     FileName(clean.Role),
		BaseName: base,
		Data:     buf.Bytes(),
		Pages:    c.PageCount(),
		Metrics:  derived,
	}
	a.debugf("[Export] %s: %d pages, %d bytes", art.Name, art.Pages, len(art.Data))
	return art, nil
}

// drawFooters stamps every page once all content is placed, so the total
// page count is known.
func (a *Assembler) drawFooters(c render.Canvas, palette *style.Palette) {
	w, h := c.PageSize()
	total := c.PageCount()
	left := a.opts.Margins.Left
	right := w - a.opts.Margins.Right
	for i := 1; i <= total; i++ {
		c.SetPage(i)
		c.FillRect(0, h-footerHeight, w, footerHeight, palette.Color(style.Surface))
		c.Text(left, h-footerBaseline, FooterLabel, footerFont, palette.Color(style.Track), style.Start)
		c.Text(right, h-footerBaseline, fmt.Sprintf("Page %d of %d", i, total), footerFont, palette.Color(style.Track), style.End)
	}
}

func (a *Assembler) registerLogo(c render.Canvas) (*sections.Logo, error) {
	if len(a.opts.Logo) == 0 {
		return nil, nil
	}
	png, _, err := pdf.NormalizeImage(a.opts.Logo)
	if err != nil {
		return nil, err
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(png))
	if err != nil {
		return nil, fmt.Errorf("failed to read logo dimensions: %w", err)
	}
	if err := c.RegisterImage(logoName, png); err != nil {
		return nil, err
	}
	return &sections.Logo{Name: logoName, Width: float64(cfg.Width), Height: float64(cfg.Height)}, nil
}

func (a *Assembler) debugf(format string, args ...interface{}) {
	if a.opts.Debug && a.opts.Logger != nil {
		a.opts.Logger.Printf(format, args...)
	}
}

// Clean returns a copy of rec with markup and entities stripped from every
// text field.
func Clean(rec *model.RoleRecord) *model.RoleRecord {
	out := *rec
	out.Role = text.Plain(rec.Role)
	out.Headline = text.Plain(rec.Headline)
	out.Strengths = text.PlainAll(rec.Strengths)
	out.MissingSkills = text.PlainAll(rec.MissingSkills)
	out.Resources = text.PlainAll(rec.Resources)
	out.ActionPlan = text.PlainAll(rec.ActionPlan)
	out.MiniProjects = text.PlainAll(rec.MiniProjects)
	return &out
}

// Metrics computes the figures a rendered document shows for rec, after the
// same cleaning Render applies. Every surface that reports readiness or gap
// progress goes through here.
func Metrics(rec *model.RoleRecord, progress model.ProgressState) metrics.Derived {
	if rec == nil {
		rec = &model.RoleRecord{}
	}
	return metrics.Compute(Clean(rec), cleanProgress(progress))
}

func cleanProgress(p model.ProgressState) model.ProgressState {
	out := make(model.ProgressState, len(p))
	for s := range p {
		if c := text.Plain(s); c != "" {
			out[c] = struct{}{}
		}
	}
	return out
}

// Slug replaces every rune outside [A-Za-z0-9] with '-' and lower-cases the
// result.
func Slug(role string) string {
	var b strings.Builder
	for _, r := range role {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
		default:
			b.WriteByte('-')
		}
	}
	return b.String()
}

// FileName is the suggested download name for role.
func FileName(role string) string {
	return "career-roadmap-" + Slug(role) + ".pdf"
}
