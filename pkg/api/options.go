package api

import (
	"log"
	"time"
)

// Options represents configuration options for the roadmap exporter
type Options struct {
	// Page dimensions in points
	PageWidth  float64
	PageHeight float64

	// Page margins. MarginBottom includes the band kept clear for the footer.
	MarginTop    float64
	MarginRight  float64
	MarginBottom float64
	MarginLeft   float64

	Debug  bool
	Logger *log.Logger

	// Strict fails an export when text contains characters the document
	// fonts cannot encode. Otherwise they are replaced with '?'.
	Strict bool

	// Palette overrides role colors by name, e.g. "accent" -> "#7c3aed".
	Palette map[string]string

	// Logo is a file path or data URL; LogoData takes precedence.
	Logo     string
	LogoData []byte

	// Resource paths searched for a relative Logo
	ResourcePaths []string

	// Document metadata
	Title    string
	Author   string
	Subject  string
	Keywords string
	Creator  string
	// CreationDate pins the document timestamps. Zero means now.
	CreationDate time.Time
}

// Option is a function that modifies Options
type Option func(*Options)

// DefaultOptions returns the default options
func DefaultOptions() Options {
	return Options{
		// A4 (595.28 x 841.89 points)
		PageWidth:  PageSizeA4Width,
		PageHeight: PageSizeA4Height,

		// 18mm sides and top, footer band at the bottom
		MarginTop:    51,
		MarginRight:  51,
		MarginBottom: 54,
		MarginLeft:   51,

		Palette:       map[string]string{},
		ResourcePaths: []string{},

		Author:  "AI Resume",
		Subject: "Career roadmap",
		Creator: "roadmappdf",
	}
}

// WithPageSize sets the page size
func WithPageSize(width, height float64) Option {
	return func(o *Options) {
		o.PageWidth = width
		o.PageHeight = height
	}
}

// WithMargins sets the page margins
func WithMargins(top, right, bottom, left float64) Option {
	return func(o *Options) {
		o.MarginTop = top
		o.MarginRight = right
		o.MarginBottom = bottom
		o.MarginLeft = left
	}
}

// WithDebug sets the debug mode
func WithDebug(debug bool) Option {
	return func(o *Options) {
		o.Debug = debug
	}
}

// WithLogger sets the logger used for debug output
func WithLogger(logger *log.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// WithStrict enables strict glyph checking
func WithStrict(strict bool) Option {
	return func(o *Options) {
		o.Strict = strict
	}
}

// WithColor overrides one palette role
func WithColor(role, hex string) Option {
	return func(o *Options) {
		p := make(map[string]string, len(o.Palette)+1)
		for k, v := range o.Palette {
			p[k] = v
		}
		p[role] = hex
		o.Palette = p
	}
}

// WithLogo sets the logo reference
func WithLogo(ref string) Option {
	return func(o *Options) {
		o.Logo = ref
	}
}

// WithLogoData sets the logo image bytes
func WithLogoData(data []byte) Option {
	return func(o *Options) {
		o.LogoData = data
	}
}

// WithResourcePath adds a path to search for the logo
func WithResourcePath(path string) Option {
	return func(o *Options) {
		o.ResourcePaths = append(append([]string(nil), o.ResourcePaths...), path)
	}
}

// WithTitle sets the document title
func WithTitle(title string) Option {
	return func(o *Options) {
		o.Title = title
	}
}

// WithAuthor sets the document author
func WithAuthor(author string) Option {
	return func(o *Options) {
		o.Author = author
	}
}

// WithSubject sets the document subject
func WithSubject(subject string) Option {
	return func(o *Options) {
		o.Subject = subject
	}
}

// WithKeywords sets the document keywords
func WithKeywords(keywords string) Option {
	return func(o *Options) {
		o.Keywords = keywords
	}
}

// WithCreator sets the document creator
func WithCreator(creator string) Option {
	return func(o *Options) {
		o.Creator = creator
	}
}

// WithCreationDate pins the document timestamps
func WithCreationDate(t time.Time) Option {
	return func(o *Options) {
		o.CreationDate = t
	}
}

// Standard page sizes in points (1/72 inch)
const (
	PageSizeA3Width  = 841.89
	PageSizeA3Height = 1190.55
	PageSizeA4Width  = 595.28
	PageSizeA4Height = 841.89
	PageSizeA5Width  = 419.53
	PageSizeA5Height = 595.28

	PageSizeLetterWidth  = 612.0
	PageSizeLetterHeight = 792.0
	PageSizeLegalWidth   = 612.0
	PageSizeLegalHeight  = 1008.0
)

// WithPageSizeA4 sets the page size to A4
func WithPageSizeA4() Option {
	return WithPageSize(PageSizeA4Width, PageSizeA4Height)
}

// WithPageSizeLetter sets the page size to US Letter
func WithPageSizeLetter() Option {
	return WithPageSize(PageSizeLetterWidth, PageSizeLetterHeight)
}

// WithPageSizeLegal sets the page size to US Legal
func WithPageSizeLegal() Option {
	return WithPageSize(PageSizeLegalWidth, PageSizeLegalHeight)
}
