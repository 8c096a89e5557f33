package pdf

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"codeberg.org/go-pdf/fpdf"
	"github.com/careerpath/roadmappdf/internal/render"
	"github.com/careerpath/roadmappdf/internal/style"
	"golang.org/x/text/encoding/charmap"
)

const fontFamily = "Helvetica"

// Options configures a PDF canvas.
type Options struct {
	Width  float64
	Height float64

	Title    string
	Author   string
	Subject  string
	Keywords string
	Creator  string
	Producer string
	// CreationDate pins the document timestamps. Zero means "now".
	CreationDate time.Time

	// Strict turns runes outside the core-font code page into errors
	// instead of substituting '?'.
	Strict bool
	// Debug enables verbose logging of page and image operations.
	Debug  bool
	Logger *log.Logger
}

// GlyphError reports a rune the document fonts cannot encode.
type GlyphError struct {
	Rune rune
	Text string
}

func (e *GlyphError) Error() string {
	return fmt.Sprintf("unrenderable glyph %q (U+%04X) in %q", e.Rune, e.Rune, e.Text)
}

// Canvas draws onto an fpdf document. It implements render.Canvas.
type Canvas struct {
	pdf    *fpdf.Fpdf
	opts   Options
	logger *log.Logger
	err    error
}

var _ render.Canvas = (*Canvas)(nil)

// New creates an empty document of the given page size, in points.
func New(opts Options) *Canvas {
	orient := "P"
	if opts.Width > opts.Height {
		orient = "L"
	}
	doc := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: orient,
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: opts.Width, Ht: opts.Height},
	})

	// Page breaks are driven by the pager, never by fpdf.
	doc.SetAutoPageBreak(false, 0)
	doc.SetMargins(0, 0, 0)
	doc.SetCatalogSort(true)
	doc.SetTitle(opts.Title, true)
	doc.SetAuthor(opts.Author, true)
	doc.SetSubject(opts.Subject, true)
	doc.SetKeywords(opts.Keywords, true)
	doc.SetCreator(opts.Creator, true)
	doc.SetProducer(opts.Producer, true)
	if !opts.CreationDate.IsZero() {
		doc.SetCreationDate(opts.CreationDate)
		doc.SetModificationDate(opts.CreationDate)
	}
	doc.SetFont(fontFamily, "", 12)

	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Canvas{pdf: doc, opts: opts, logger: logger}
}

func (c *Canvas) PageSize() (float64, float64) {
	return c.opts.Width, c.opts.Height
}

func (c *Canvas) AddPage() {
	c.pdf.AddPage()
	if c.opts.Debug {
		c.logger.Printf("[PDF] added page %d", c.pdf.PageCount())
	}
}

func (c *Canvas) SetPage(n int) {
	if n < 1 || n > c.pdf.PageCount() {
		c.fail(fmt.Errorf("page %d out of range [1, %d]", n, c.pdf.PageCount()))
		return
	}
	c.pdf.SetPage(n)
}

func (c *Canvas) PageCount() int {
	return c.pdf.PageCount()
}

func (c *Canvas) FillRect(x, y, w, h float64, col style.Color) {
	c.pdf.SetFillColor(col.RGB())
	c.pdf.Rect(x, y, w, h, "F")
}

func (c *Canvas) RoundedRect(x, y, w, h, r float64, col style.Color) {
	if w <= 0 || h <= 0 {
		return
	}
	// fpdf misdraws corners whose radius exceeds half the shorter side.
	if limit := min(w, h) / 2; r > limit {
		r = limit
	}
	c.pdf.SetFillColor(col.RGB())
	c.pdf.RoundedRect(x, y, w, h, r, "1234", "F")
}

func (c *Canvas) Circle(cx, cy, r float64, col style.Color) {
	c.pdf.SetFillColor(col.RGB())
	c.pdf.Circle(cx, cy, r, "F")
}

func (c *Canvas) StrokeCircle(cx, cy, r, lineWidth float64, col style.Color) {
	c.pdf.SetDrawColor(col.RGB())
	c.pdf.SetLineWidth(lineWidth)
	c.pdf.Circle(cx, cy, r, "D")
}

func (c *Canvas) StrokeRect(x, y, w, h, lineWidth float64, col style.Color) {
	c.pdf.SetDrawColor(col.RGB())
	c.pdf.SetLineWidth(lineWidth)
	c.pdf.Rect(x, y, w, h, "D")
}

func (c *Canvas) Line(x1, y1, x2, y2, lineWidth float64, col style.Color) {
	c.pdf.SetDrawColor(col.RGB())
	c.pdf.SetLineWidth(lineWidth)
	c.pdf.Line(x1, y1, x2, y2)
}

func (c *Canvas) Text(x, y float64, s string, f style.Font, col style.Color, align style.Align) {
	enc, ok := c.encode(s)
	if !ok || enc == "" {
		return
	}
	c.setFont(f)
	c.pdf.SetTextColor(col.RGB())

	startX := x
	switch align {
	case style.Center:
		startX = x - c.pdf.GetStringWidth(enc)/2
	case style.End:
		startX = x - c.pdf.GetStringWidth(enc)
	}
	c.pdf.Text(startX, y, enc)
}

func (c *Canvas) MeasureText(s string, f style.Font) float64 {
	enc := encodeLossy(s)
	c.setFont(f)
	return c.pdf.GetStringWidth(enc)
}

func (c *Canvas) RegisterImage(name string, png []byte) error {
	info := c.pdf.RegisterImageOptionsReader(name, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(png))
	if err := c.pdf.Error(); err != nil {
		return fmt.Errorf("failed to register image %s: %w", name, err)
	}
	if info == nil {
		return fmt.Errorf("failed to register image %s", name)
	}
	if c.opts.Debug {
		c.logger.Printf("[PDF] registered image %s (%.0fx%.0f)", name, info.Width(), info.Height())
	}
	return nil
}

func (c *Canvas) Image(name string, x, y, w, h float64) {
	c.pdf.ImageOptions(name, x, y, w, h, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")
}

// Err returns the first encoding error or the underlying fpdf error.
func (c *Canvas) Err() error {
	if c.err != nil {
		return c.err
	}
	return c.pdf.Error()
}

// Output writes the finished document. Nothing is written if an earlier
// drawing call failed.
func (c *Canvas) Output(w io.Writer) error {
	if err := c.Err(); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := c.pdf.Output(&buf); err != nil {
		return fmt.Errorf("failed to serialize PDF: %w", err)
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	return nil
}

func (c *Canvas) setFont(f style.Font) {
	fontStyle := ""
	if f.Weight == style.Bold {
		fontStyle = "B"
	}
	size := f.Size
	if size <= 0 {
		size = 12
	}
	// SetFont writes a Tf operator into the current page on every call, so
	// a page revisited through SetPage gets its font re-selected here.
	c.pdf.SetFont(fontFamily, fontStyle, size)
}

// encode converts s to the core-font code page. In strict mode the first
// unencodable rune is recorded as an error and the run is skipped.
func (c *Canvas) encode(s string) (string, bool) {
	if !c.opts.Strict {
		return encodeLossy(s), true
	}
	var b strings.Builder
	for _, r := range s {
		ch, ok := charmap.Windows1252.EncodeRune(r)
		if !ok {
			c.fail(&GlyphError{Rune: r, Text: s})
			return "", false
		}
		b.WriteByte(ch)
	}
	return b.String(), true
}

func encodeLossy(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		ch, ok := charmap.Windows1252.EncodeRune(r)
		if !ok {
			ch = '?'
		}
		b.WriteByte(ch)
	}
	return b.String()
}

func (c *Canvas) fail(err error) {
	if c.err == nil {
		c.err = err
	}
}
