package api

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/careerpath/roadmappdf/internal/metrics"
	"github.com/careerpath/roadmappdf/internal/model"
	"github.com/careerpath/roadmappdf/internal/pagination"
	"github.com/careerpath/roadmappdf/internal/render/pdf"
	"github.com/careerpath/roadmappdf/internal/report"
	"github.com/careerpath/roadmappdf/internal/res"
	"github.com/careerpath/roadmappdf/internal/style"
)

type (
	RoleRecord    = model.RoleRecord
	ProgressState = model.ProgressState
	Metrics       = metrics.Derived
	Artifact      = report.Artifact
	RenderError   = report.RenderError
	GlyphError    = pdf.GlyphError
)

// NewProgressState builds a progress state from completed skills.
func NewProgressState(skills ...string) ProgressState {
	return model.NewProgressState(skills...)
}

// Result is delivered by ExportAsync.
type Result struct {
	Artifact *Artifact
	Err      error
}

// Exporter is the main API for rendering career roadmaps to PDF
type Exporter struct {
	options Options
}

// New creates a new exporter with default options
func New(opts ...Option) *Exporter {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return NewWithOptions(o)
}

// NewWithOptions creates a new exporter with the specified options
func NewWithOptions(options Options) *Exporter {
	return &Exporter{options: options}
}

// Options returns a copy of the exporter's options
func (e *Exporter) Options() Options {
	return e.options
}

// WithOption returns a new exporter with the specified option set
func (e *Exporter) WithOption(option Option) *Exporter {
	o := e.options
	option(&o)
	return NewWithOptions(o)
}

// Metrics computes the figures shown in the document without rendering it.
func (e *Exporter) Metrics(rec *RoleRecord, state ProgressState) Metrics {
	return report.Metrics(rec, state)
}

// Export renders the roadmap for rec. No output is produced on error.
func (e *Exporter) Export(rec *RoleRecord, state ProgressState) (*Artifact, error) {
	a, err := e.assembler()
	if err != nil {
		return nil, err
	}
	return a.Render(rec, state)
}

// ExportTo renders the roadmap and writes the PDF to w.
func (e *Exporter) ExportTo(w io.Writer, rec *RoleRecord, state ProgressState) (*Artifact, error) {
	art, err := e.Export(rec, state)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(art.Data); err != nil {
		return nil, fmt.Errorf("failed to write PDF to output: %w", err)
	}
	return art, nil
}

// ExportFile renders the roadmap into dir under its suggested file name and
// returns the path written.
func (e *Exporter) ExportFile(rec *RoleRecord, state ProgressState, dir string) (string, error) {
	art, err := e.Export(rec, state)
	if err != nil {
		return "", err
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}
	path := filepath.Join(dir, art.Name)
	if err := os.WriteFile(path, art.Data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write PDF file: %w", err)
	}
	return path, nil
}

// ExportAsync renders on a new goroutine. ctx is checked once before
// generation starts; a render in progress runs to completion.
func (e *Exporter) ExportAsync(ctx context.Context, rec *RoleRecord, state ProgressState) <-chan Result {
	out := make(chan Result, 1)
	go func() {
		defer close(out)
		if err := ctx.Err(); err != nil {
			out <- Result{Err: err}
			return
		}
		art, err := e.Export(rec, state)
		out <- Result{Artifact: art, Err: err}
	}()
	return out
}

// Assembler returns the configured document assembler, for callers such as
// the HTTP server that render many documents with one configuration.
func (e *Exporter) Assembler() (*report.Assembler, error) {
	return e.assembler()
}

func (e *Exporter) assembler() (*report.Assembler, error) {
	o := e.options
	palette := style.DefaultPalette()
	if len(o.Palette) > 0 {
		if err := palette.Override(o.Palette); err != nil {
			return nil, fmt.Errorf("failed to apply palette: %w", err)
		}
	}

	logo := o.LogoData
	if len(logo) == 0 && o.Logo != "" {
		loader := res.NewLoader("")
		for _, p := range o.ResourcePaths {
			loader.AddSearchPath(p)
		}
		asset, err := loader.LoadImage(o.Logo)
		if err != nil {
			return nil, fmt.Errorf("failed to load logo: %w", err)
		}
		logo = asset.Data
	}

	size := pagination.PageSize{Width: o.PageWidth, Height: o.PageHeight, Name: "custom"}
	return report.New(report.Options{
		PageSize: size,
		Margins: pagination.Margins{
			Top:    o.MarginTop,
			Right:  o.MarginRight,
			Bottom: o.MarginBottom,
			Left:   o.MarginLeft,
		},
		Palette:      palette,
		Logo:         logo,
		Title:        o.Title,
		Author:       o.Author,
		Subject:      o.Subject,
		Keywords:     o.Keywords,
		Creator:      o.Creator,
		CreationDate: o.CreationDate,
		Strict:       o.Strict,
		Debug:        o.Debug,
		Logger:       o.Logger,
	}), nil
}
