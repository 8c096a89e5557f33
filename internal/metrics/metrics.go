// Package metrics computes the derived scores shown on a roadmap: gap
// progress and overall readiness. Every surface that displays these numbers
// (the PDF, the CLI and the HTTP API) goes through this package so they
// never disagree.
package metrics

import (
	"math"

	"github.com/careerpath/roadmappdf/internal/model"
)

const (
	matchWeight = 0.6
	gapWeight   = 0.4
)

// Tier is a readiness band used to pick presentation colors.
type Tier int

const (
	TierMinimal Tier = iota
	TierLow
	TierMedium
	TierHigh
)

func (t Tier) String() string {
	switch t {
	case TierHigh:
		return "high"
	case TierMedium:
		return "medium"
	case TierLow:
		return "low"
	default:
		return "minimal"
	}
}

// Derived holds the metrics computed once per render.
type Derived struct {
	// Completed is the number of missing skills marked done, strays excluded.
	Completed    int    `json:"completed"`
	Total        int    `json:"total"`
	GapProgress  int    `json:"gap_progress"`
	Readiness    int    `json:"readiness"`
	Tier         Tier   `json:"-"`
	TierName     string `json:"tier"`
	GapsComplete bool   `json:"gaps_complete"`
}

// Compute derives the metrics for rec given the user's progress.
func Compute(rec *model.RoleRecord, progress model.ProgressState) Derived {
	done := progress.Within(rec)
	total := 0
	match := 0.0
	if rec != nil {
		total = len(rec.MissingSkills)
		match = rec.MatchScore
	}
	gp := GapProgress(len(done), total)
	r := Readiness(match, gp)
	tier := TierFor(r)
	return Derived{
		Completed:    len(done),
		Total:        total,
		GapProgress:  gp,
		Readiness:    r,
		Tier:         tier,
		TierName:     tier.String(),
		GapsComplete: gp == 100,
	}
}

// GapProgress returns round(100*done/total), or 100 when there are no gaps.
func GapProgress(done, total int) int {
	if total <= 0 {
		return 100
	}
	if done < 0 {
		done = 0
	}
	if done > total {
		done = total
	}
	return int(math.Round(100 * float64(done) / float64(total)))
}

// Readiness blends match score and gap progress, clamped to [0, 100].
func Readiness(matchScore float64, gapProgress int) int {
	v := int(math.Round(matchScore*matchWeight + float64(gapProgress)*gapWeight))
	return ClampPercent(v)
}

// TierFor maps a readiness percentage to its band.
func TierFor(readiness int) Tier {
	switch {
	case readiness >= 75:
		return TierHigh
	case readiness >= 50:
		return TierMedium
	case readiness >= 30:
		return TierLow
	default:
		return TierMinimal
	}
}

// ClampPercent bounds v to [0, 100].
func ClampPercent(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// Fraction converts a percentage to a bar fraction in [0, 1].
func Fraction(percent float64) float64 {
	f := percent / 100
	if math.IsNaN(f) || f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
