// Package text handles text measurement contracts, line breaking and the
// clean-up of strings received from upstream services.
package text

import (
	"strings"
	"unicode/utf8"

	"github.com/careerpath/roadmappdf/internal/style"
)

// Measurer reports the rendered width of a string in a given font.
type Measurer interface {
	MeasureText(s string, f style.Font) float64
}

// Approx is a Measurer that assumes a fixed advance per rune. It is used
// where no font metrics are available, e.g. by the in-memory canvas.
type Approx struct{}

// MeasureText implements Measurer.
func (Approx) MeasureText(s string, f style.Font) float64 {
	charWidth := f.Size * 0.5
	if f.Weight == style.Bold {
		charWidth = f.Size * 0.55
	}
	return float64(utf8.RuneCountInString(s)) * charWidth
}

// Wrap splits s into lines no wider than maxWidth using greedy word
// wrapping. Words are never split: a single word wider than maxWidth gets a
// line of its own and overflows. Newlines in s force a break. Blank input
// yields no lines.
func Wrap(m Measurer, s string, maxWidth float64, f style.Font) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	var lines []string
	for _, para := range strings.Split(s, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}

		current := words[0]
		for _, word := range words[1:] {
			candidate := current + " " + word
			if maxWidth <= 0 || m.MeasureText(candidate, f) <= maxWidth {
				current = candidate
				continue
			}
			lines = append(lines, current)
			current = word
		}
		lines = append(lines, current)
	}
	return lines
}

// Height returns the vertical space taken by n lines at lineHeight.
func Height(n int, lineHeight float64) float64 {
	if n <= 0 {
		return 0
	}
	return float64(n) * lineHeight
}
