// Package model defines the inputs of a roadmap export: the recommended role
// and the user's tracked progress against its skill gaps.
package model

import (
	"sort"

	"github.com/go-playground/validator/v10"
)

// LowConfidenceThreshold is the match score below which a recommendation is
// flagged as a weak fit.
const LowConfidenceThreshold = 20

// RoleRecord is a single recommended career role as returned by the
// recommendation service. List order is significant: MissingSkills is a
// learning sequence and ActionPlan is chronological by week.
type RoleRecord struct {
	Role          string   `json:"role" yaml:"role" validate:"required"`
	MatchScore    float64  `json:"match_score" yaml:"match_score" validate:"gte=0,lte=100"`
	AvgSalary     int64    `json:"avg_salary" yaml:"avg_salary" validate:"gte=0"`
	Headline      string   `json:"headline" yaml:"headline"`
	Strengths     []string `json:"strengths" yaml:"strengths"`
	MissingSkills []string `json:"missing_skills" yaml:"missing_skills"`
	Resources     []string `json:"resources" yaml:"resources"`
	ActionPlan    []string `json:"action_plan" yaml:"action_plan"`
	MiniProjects  []string `json:"mini_projects" yaml:"mini_projects"`
	LowConfidence bool     `json:"low_confidence,omitempty" yaml:"low_confidence,omitempty"`
}

// Validate checks the record at a trust boundary (CLI input, HTTP body).
// The renderer itself never calls it.
func (r *RoleRecord) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// IsLowConfidence reports whether the record should carry a weak-fit warning.
func (r *RoleRecord) IsLowConfidence() bool {
	return r.LowConfidence || r.MatchScore < LowConfidenceThreshold
}

// HasMissingSkill reports whether skill is one of the record's gaps.
func (r *RoleRecord) HasMissingSkill(skill string) bool {
	for _, s := range r.MissingSkills {
		if s == skill {
			return true
		}
	}
	return false
}

// ProgressState is the set of missing skills the user has marked complete.
type ProgressState map[string]struct{}

// NewProgressState builds a state from a list of completed skills.
func NewProgressState(skills ...string) ProgressState {
	p := make(ProgressState, len(skills))
	for _, s := range skills {
		p[s] = struct{}{}
	}
	return p
}

// Has reports whether skill is marked complete.
func (p ProgressState) Has(skill string) bool {
	_, ok := p[skill]
	return ok
}

// Within returns the subset of p that names skills actually missing from
// rec. Entries outside rec.MissingSkills are dropped without error.
func (p ProgressState) Within(rec *RoleRecord) ProgressState {
	out := make(ProgressState)
	if rec == nil {
		return out
	}
	for _, s := range rec.MissingSkills {
		if p.Has(s) {
			out[s] = struct{}{}
		}
	}
	return out
}

// Toggle flips the completion state of skill and returns the new state.
func (p ProgressState) Toggle(skill string) bool {
	if p.Has(skill) {
		delete(p, skill)
		return false
	}
	p[skill] = struct{}{}
	return true
}

// Skills returns the completed skills in sorted order.
func (p ProgressState) Skills() []string {
	out := make([]string, 0, len(p))
	for s := range p {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
