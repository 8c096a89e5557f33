package api

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() *RoleRecord {
	return &RoleRecord{
		Role:          "Cloud Engineer",
		MatchScore:    89,
		AvgSalary:     850000,
		Headline:      "Infrastructure automation",
		Strengths:     []string{"Linux", "Bash"},
		MissingSkills: []string{"AWS", "Terraform"},
		Resources:     []string{"AWS Skill Builder"},
		ActionPlan:    []string{"Learn IAM", "Write Terraform modules"},
		MiniProjects:  []string{"Provision a VPC"},
	}
}

func TestExport(t *testing.T) {
	e := New(WithTitle("Roadmap"), WithCreationDate(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)))
	art, err := e.Export(sample(), NewProgressState("AWS", "Terraform"))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(art.Data, []byte("%PDF-")))
	assert.Equal(t, "career-roadmap-cloud-engineer.pdf", art.Name)
	assert.Equal(t, "cloud-engineer", art.BaseName)
	assert.Equal(t, 1, art.Pages)
	assert.Equal(t, 100, art.Metrics.GapProgress)
	assert.Equal(t, 93, art.Metrics.Readiness)
}

func TestMetrics(t *testing.T) {
	m := New().Metrics(sample(), NewProgressState("AWS", "Terraform", "Go"))
	assert.Equal(t, 2, m.Completed)
	assert.Equal(t, 100, m.GapProgress)
	assert.True(t, m.GapsComplete)
}

func TestMetrics_AgreesWithExport(t *testing.T) {
	rec := sample()
	rec.MissingSkills = []string{"docker", "kubernetes", "", "<br>"}
	state := NewProgressState("docker")

	e := New()
	art, err := e.Export(rec, state)
	require.NoError(t, err)
	assert.Equal(t, e.Metrics(rec, state), art.Metrics)
	assert.Equal(t, 4, art.Metrics.Total)
	assert.Equal(t, 25, art.Metrics.GapProgress)
}

func TestExportTo(t *testing.T) {
	var buf bytes.Buffer
	art, err := New().ExportTo(&buf, sample(), nil)
	require.NoError(t, err)
	assert.Equal(t, art.Data, buf.Bytes())
}

func TestExportFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	path, err := New().ExportFile(sample(), nil, dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "career-roadmap-cloud-engineer.pdf"), path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func TestExportAsync(t *testing.T) {
	res := <-New().ExportAsync(context.Background(), sample(), nil)
	require.NoError(t, res.Err)
	assert.NotEmpty(t, res.Artifact.Data)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res = <-New().ExportAsync(ctx, sample(), nil)
	assert.True(t, errors.Is(res.Err, context.Canceled))
	assert.Nil(t, res.Artifact)
}

func TestExport_StrictGlyph(t *testing.T) {
	rec := sample()
	rec.Headline = "Salary in ₹"
	_, err := New(WithStrict(true)).Export(rec, nil)
	var ge *GlyphError
	require.True(t, errors.As(err, &ge))
	var re *RenderError
	assert.True(t, errors.As(err, &re))
}

func TestExport_BadPalette(t *testing.T) {
	_, err := New(WithColor("accent", "purple")).Export(sample(), nil)
	assert.Error(t, err)
	_, err = New(WithColor("sparkle", "#ffffff")).Export(sample(), nil)
	assert.Error(t, err)
	_, err = New(WithColor("accent", "#112233")).Export(sample(), nil)
	assert.NoError(t, err)
}

func TestExport_MissingLogo(t *testing.T) {
	_, err := New(WithLogo("does-not-exist.png")).Export(sample(), nil)
	assert.Error(t, err)
}

func TestWithOption_DoesNotMutate(t *testing.T) {
	base := New(WithColor("accent", "#000000"))
	derived := base.WithOption(WithColor("info", "#ffffff"))
	assert.Len(t, base.Options().Palette, 1)
	assert.Len(t, derived.Options().Palette, 2)

	letter := base.WithOption(WithPageSizeLetter())
	assert.Equal(t, PageSizeLetterWidth, letter.Options().PageWidth)
	assert.Equal(t, PageSizeA4Width, base.Options().PageWidth)
}
