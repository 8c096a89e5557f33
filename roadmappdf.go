// Package roadmappdf renders career roadmaps (a recommended role, the skills
// still to learn, resources, a weekly plan and project ideas) as paginated
// PDF documents.
package roadmappdf

import (
	"github.com/careerpath/roadmappdf/pkg/api"
)

type Exporter = api.Exporter
type Options = api.Options
type Option = api.Option
type Result = api.Result

type RoleRecord = api.RoleRecord
type ProgressState = api.ProgressState
type Metrics = api.Metrics
type Artifact = api.Artifact
type RenderError = api.RenderError
type GlyphError = api.GlyphError

func New(opts ...Option) *Exporter                    { return api.New(opts...) }
func NewWithOptions(options Options) *Exporter        { return api.NewWithOptions(options) }
func DefaultOptions() Options                         { return api.DefaultOptions() }
func NewProgressState(skills ...string) ProgressState { return api.NewProgressState(skills...) }

var (
	WithPageSize       = api.WithPageSize
	WithMargins        = api.WithMargins
	WithDebug          = api.WithDebug
	WithLogger         = api.WithLogger
	WithStrict         = api.WithStrict
	WithColor          = api.WithColor
	WithLogo           = api.WithLogo
	WithLogoData       = api.WithLogoData
	WithResourcePath   = api.WithResourcePath
	WithTitle          = api.WithTitle
	WithAuthor         = api.WithAuthor
	WithSubject        = api.WithSubject
	WithKeywords       = api.WithKeywords
	WithCreator        = api.WithCreator
	WithCreationDate   = api.WithCreationDate
	WithPageSizeA4     = api.WithPageSizeA4
	WithPageSizeLetter = api.WithPageSizeLetter
	WithPageSizeLegal  = api.WithPageSizeLegal
)

const (
	PageSizeA3Width  = api.PageSizeA3Width
	PageSizeA3Height = api.PageSizeA3Height
	PageSizeA4Width  = api.PageSizeA4Width
	PageSizeA4Height = api.PageSizeA4Height
	PageSizeA5Width  = api.PageSizeA5Width
	PageSizeA5Height = api.PageSizeA5Height

	PageSizeLetterWidth  = api.PageSizeLetterWidth
	PageSizeLetterHeight = api.PageSizeLetterHeight
	PageSizeLegalWidth   = api.PageSizeLegalWidth
	PageSizeLegalHeight  = api.PageSizeLegalHeight
)
