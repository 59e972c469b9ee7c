package canvas

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/go-pdf/fpdf"

	"github.com/talentika/cvreport/blocks"
)

// Config holds the canvas assets and identity strings.
type Config struct {
	// FontDir is the directory holding the primary family's TTF files.
	// Empty or incomplete directories degrade to the core fonts.
	FontDir string

	// LogoPath is the PNG drawn in the repeating header band. When the
	// file cannot be read the Wordmark text is drawn instead.
	LogoPath string

	// Wordmark is the textual fallback for the logo.
	Wordmark string

	// SiteText is drawn right-aligned in the header band.
	SiteText string

	// Logger receives degradation notices. Nil means slog.Default().
	Logger *slog.Logger
}

// DefaultConfig returns the production asset configuration.
func DefaultConfig() Config {
	return Config{
		FontDir:  "fonts",
		LogoPath: "assets/logo.png",
		Wordmark: "Talentika",
		SiteText: "talentika.app",
	}
}

// Canvas is one report's drawing surface: fixed-size pages, a cursor and
// absolute-coordinate primitives. It keeps page-count bookkeeping for the
// footer pass but takes no part in placement decisions.
type Canvas struct {
	pdf    *fpdf.Fpdf
	layout blocks.Layout
	styles blocks.StyleSet
	cfg    Config
	logger *slog.Logger

	cursorY  float64
	logoOK   bool
	fallback bool
	faces    map[blocks.FontWeight]fontFace

	// tr re-encodes text for the current fonts: identity for the UTF-8
	// primary family, cp1252 translation for the core fallback fonts.
	tr func(string) string
}

// New creates a canvas with no pages yet; the first NewPage call opens
// page 1. Missing fonts or logo degrade with a log line, never an error.
func New(layout blocks.Layout, styles blocks.StyleSet, cfg Config) *Canvas {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetMargins(layout.Margin, layout.Margin, layout.Margin)
	// The flow controller owns every page break.
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle("Informe de análisis de CV", true)
	pdf.SetCreator("cvreport", true)

	c := &Canvas{
		pdf:    pdf,
		layout: layout,
		styles: styles,
		cfg:    cfg,
		logger: logger,
	}
	c.loadFonts(cfg.FontDir)
	if c.fallback {
		c.tr = pdf.UnicodeTranslatorFromDescriptor("")
	} else {
		c.tr = func(s string) string { return s }
	}

	if cfg.LogoPath != "" {
		if _, err := os.Stat(cfg.LogoPath); err == nil {
			c.logoOK = true
		} else {
			logger.Warn("logo unavailable, using text wordmark",
				"path", cfg.LogoPath, "error", err)
		}
	}
	return c
}

// ContentLeft returns the left edge of the content rectangle.
func (c *Canvas) ContentLeft() float64 { return c.layout.Margin }

// ContentTop returns the top edge of the content rectangle.
func (c *Canvas) ContentTop() float64 { return c.layout.Margin }

// ContentWidth returns the usable width between the margins.
func (c *Canvas) ContentWidth() float64 { return c.layout.ContentWidth() }

// ContentBottom returns the bottom edge of the content rectangle.
func (c *Canvas) ContentBottom() float64 { return c.layout.ContentBottom() }

// CursorY returns the current write position.
func (c *Canvas) CursorY() float64 { return c.cursorY }

// SetCursorY moves the write position.
func (c *Canvas) SetCursorY(y float64) { c.cursorY = y }

// PageIndex returns the 1-based index of the current page, 0 before the
// first NewPage.
func (c *Canvas) PageIndex() int { return c.pdf.PageNo() }

// PageCount returns the number of pages produced so far.
func (c *Canvas) PageCount() int { return c.pdf.PageCount() }

// NewPage opens a new page, resets the cursor to the top of the content
// rectangle and re-renders the repeating header band on every page after
// the first.
func (c *Canvas) NewPage() {
	c.pdf.AddPage()
	c.cursorY = c.ContentTop()
	if c.pdf.PageNo() > 1 {
		c.drawHeaderBand()
	}
}

// drawHeaderBand renders the logo (or wordmark) and site text inside the
// top margin.
func (c *Canvas) drawHeaderBand() {
	l := c.layout
	if c.logoOK {
		c.pdf.ImageOptions(c.cfg.LogoPath, l.Margin, l.HeaderBandY, 0, 24, false,
			fpdf.ImageOptions{ReadDpi: true}, 0, "")
	} else {
		c.DrawText(c.cfg.Wordmark, l.Margin, l.HeaderBandY+6,
			blocks.TextStyle{Weight: blocks.WeightBold, Size: 12, Color: c.styles.Header.Color})
	}
	st := c.styles.Header
	w := c.TextWidth(c.cfg.SiteText, st.Weight, st.Size)
	c.DrawText(c.cfg.SiteText, l.PageWidth-l.Margin-w, l.HeaderBandY+8, st)
	c.DrawLine(l.Margin, l.Margin-8, l.PageWidth-l.Margin, l.Margin-8,
		blocks.RGB{R: 226, G: 232, B: 240}, 0.5)
}

// DrawText draws a single line with its top at y.
func (c *Canvas) DrawText(text string, x, y float64, style blocks.TextStyle) {
	c.setFont(style.Weight, style.Size)
	c.pdf.SetTextColor(style.Color.R, style.Color.G, style.Color.B)
	c.pdf.Text(x, y+style.Size, c.tr(text))
}

// DrawTextWrapped draws text wrapped at width with its top at y, one line
// per Layout.LineHeight, and returns the height drawn.
func (c *Canvas) DrawTextWrapped(text string, x, y, width float64, style blocks.TextStyle) float64 {
	lines := c.WrapText(text, style.Weight, style.Size, width)
	lh := c.layout.LineHeight(style.Size)
	for i, line := range lines {
		c.DrawText(line, x, y+float64(i)*lh, style)
	}
	return float64(len(lines)) * lh
}

// DrawRect draws a filled rectangle.
func (c *Canvas) DrawRect(x, y, w, h float64, fill blocks.RGB) {
	c.pdf.SetFillColor(fill.R, fill.G, fill.B)
	c.pdf.Rect(x, y, w, h, "F")
}

// DrawRoundedRect draws a filled rectangle with all corners rounded by r.
func (c *Canvas) DrawRoundedRect(x, y, w, h, r float64, fill blocks.RGB) {
	c.pdf.SetFillColor(fill.R, fill.G, fill.B)
	c.pdf.RoundedRect(x, y, w, h, r, "1234", "F")
}

// DrawLine draws a stroked line.
func (c *Canvas) DrawLine(x1, y1, x2, y2 float64, color blocks.RGB, width float64) {
	c.pdf.SetDrawColor(color.R, color.G, color.B)
	c.pdf.SetLineWidth(width)
	c.pdf.Line(x1, y1, x2, y2)
}

// DrawCircle draws a stroked circle centered at (x, y).
func (c *Canvas) DrawCircle(x, y, r float64, color blocks.RGB, width float64) {
	c.pdf.SetDrawColor(color.R, color.G, color.B)
	c.pdf.SetLineWidth(width)
	c.pdf.Circle(x, y, r, "D")
}

// DrawArc draws a stroked circular arc centered at (x, y). Angles are in
// degrees, measured counterclockwise from three o'clock.
func (c *Canvas) DrawArc(x, y, r, degStart, degEnd float64, color blocks.RGB, width float64) {
	c.pdf.SetDrawColor(color.R, color.G, color.B)
	c.pdf.SetLineWidth(width)
	c.pdf.Arc(x, y, r, r, 0, degStart, degEnd, "D")
}

// TextWidth implements metrics.TextMeasurer on the backend font tables.
func (c *Canvas) TextWidth(text string, weight blocks.FontWeight, size float64) float64 {
	c.setFont(weight, size)
	return c.pdf.GetStringWidth(text)
}

// WrapText implements metrics.TextMeasurer.
func (c *Canvas) WrapText(text string, weight blocks.FontWeight, size, width float64) []string {
	c.setFont(weight, size)
	return c.pdf.SplitText(text, width)
}

// StampFooters is the second pass: once the total page count is known it
// revisits every page and stamps the confidentiality notice and the page
// label produced by label(i, n).
func (c *Canvas) StampFooters(notice string, label func(page, total int) string) {
	n := c.pdf.PageCount()
	st := c.styles.Footer
	y := c.layout.PageHeight - c.layout.FooterY
	for i := 1; i <= n; i++ {
		c.pdf.SetPage(i)
		c.DrawText(notice, c.layout.Margin, y, st)
		text := label(i, n)
		w := c.TextWidth(text, st.Weight, st.Size)
		c.DrawText(text, c.layout.PageWidth-c.layout.Margin-w, y, st)
	}
	c.pdf.SetPage(n)
}

// HasLogo reports whether the header band draws the logo image rather
// than the text wordmark.
func (c *Canvas) HasLogo() bool { return c.logoOK }

// Err returns the backend's accumulated error, if any.
func (c *Canvas) Err() error {
	if c.pdf.Err() {
		return c.pdf.Error()
	}
	return nil
}

// Output flushes the finished document to w. A write failure is terminal:
// whatever reached w must not be treated as a valid report.
func (c *Canvas) Output(w io.Writer) error {
	if err := c.pdf.Output(w); err != nil {
		return fmt.Errorf("flushing document: %w", err)
	}
	return nil
}

// WriteFile flushes the finished document to path.
func (c *Canvas) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := c.Output(f); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}
