package cvreport

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"

	"github.com/talentika/cvreport/assemble"
	"github.com/talentika/cvreport/blocks"
	"github.com/talentika/cvreport/canvas"
	"github.com/talentika/cvreport/flow"
	"github.com/talentika/cvreport/metrics"
)

// canvas.Canvas must satisfy the flow controller's surface contract.
var _ flow.Surface = (*canvas.Canvas)(nil)

// Generator provides a fluent interface for producing one report. Each
// configuration method returns a new Generator instance, making chains
// safe to fork and reuse. Errors are accumulated fail-fast and reported
// by the terminal operations.
type Generator struct {
	record  assemble.Record
	options generateOptions
	err     error
}

// withOptions clones the generator with modified options.
func (g *Generator) withOptions(mod func(*generateOptions)) *Generator {
	clone := &Generator{record: g.record, options: g.options.clone(), err: g.err}
	mod(&clone.options)
	return clone
}

// Candidate sets the display name drawn on the cover.
func (g *Generator) Candidate(name string) *Generator {
	return g.withOptions(func(o *generateOptions) { o.candidate = name })
}

// Role sets the target-role label drawn on the cover.
func (g *Generator) Role(role string) *Generator {
	return g.withOptions(func(o *generateOptions) { o.role = role })
}

// FontDir sets the directory holding the primary family's TTF files.
// Missing files degrade to the core fonts with a warning.
func (g *Generator) FontDir(dir string) *Generator {
	return g.withOptions(func(o *generateOptions) { o.fontDir = dir })
}

// Logo sets the header logo path. An unreadable file degrades to the
// text wordmark with a warning.
func (g *Generator) Logo(path string) *Generator {
	return g.withOptions(func(o *generateOptions) { o.logoPath = path })
}

// SiteText sets the text drawn right-aligned in the repeating header.
func (g *Generator) SiteText(text string) *Generator {
	return g.withOptions(func(o *generateOptions) { o.siteText = text })
}

// Layout overrides the page geometry and spacing constants.
func (g *Generator) Layout(l blocks.Layout) *Generator {
	return g.withOptions(func(o *generateOptions) { o.layout = l; o.hasLayout = true })
}

// Logger sets the logger receiving degradation notices.
func (g *Generator) Logger(logger *slog.Logger) *Generator {
	return g.withOptions(func(o *generateOptions) { o.logger = logger })
}

// Document assembles and returns the block sequence without rendering it.
// Useful for inspection and tests.
func (g *Generator) Document() (*blocks.Document, error) {
	if g.err != nil {
		return nil, g.err
	}
	a := assemble.NewAssembler()
	if g.options.hasLayout {
		a = a.WithLayout(g.options.layout)
	}
	return a.Build(g.record, g.options.candidate, g.options.role), nil
}

// compose runs the full pipeline: assemble, paginate, collect warnings.
func (g *Generator) compose() (*canvas.Canvas, int, []Warning, error) {
	doc, err := g.Document()
	if err != nil {
		return nil, 0, nil, err
	}

	logger := g.options.logger
	if logger == nil {
		logger = slog.Default()
	}

	cv := canvas.New(doc.Layout, doc.Styles, canvas.Config{
		FontDir:  g.options.fontDir,
		LogoPath: g.options.logoPath,
		SiteText: g.options.siteText,
		Wordmark: g.options.wordmark,
		Logger:   logger,
	})

	provider := metrics.NewProvider(cv, doc.Layout, doc.Styles)
	controller := flow.NewController(cv, provider, logger)

	pages, err := controller.Compose(doc)
	if err != nil {
		return nil, 0, nil, err
	}
	if err := cv.Err(); err != nil {
		return nil, 0, nil, fmt.Errorf("rendering document: %w", err)
	}

	var warnings []Warning
	if cv.FallbackFonts() {
		warnings = append(warnings, Warning{
			Code:    WarnFontFallback,
			Message: "primary font family unavailable, core fonts used",
		})
	}
	if g.options.logoPath != "" && !cv.HasLogo() {
		warnings = append(warnings, Warning{
			Code:    WarnLogoFallback,
			Message: "logo unavailable, text wordmark used",
		})
	}
	if n := controller.Overflows(); n > 0 {
		warnings = append(warnings, Warning{
			Code:    WarnOverflow,
			Message: fmt.Sprintf("%d block(s) drawn past the bottom margin", n),
		})
	}
	return cv, pages, warnings, nil
}

// ToWriter generates the report and streams it to w. It returns the page
// count and any warnings. A write failure is terminal: the bytes already
// written must not be treated as a valid document.
func (g *Generator) ToWriter(w io.Writer) (int, []Warning, error) {
	cv, pages, warnings, err := g.compose()
	if err != nil {
		return 0, nil, err
	}
	if err := cv.Output(w); err != nil {
		return 0, nil, err
	}
	return pages, warnings, nil
}

// ToFile generates the report and writes it to path. A partially written
// file is removed.
func (g *Generator) ToFile(path string) (int, []Warning, error) {
	cv, pages, warnings, err := g.compose()
	if err != nil {
		return 0, nil, err
	}
	if err := cv.WriteFile(path); err != nil {
		return 0, nil, err
	}
	return pages, warnings, nil
}

// Bytes generates the report in memory.
func (g *Generator) Bytes() ([]byte, int, []Warning, error) {
	var buf bytes.Buffer
	pages, warnings, err := g.ToWriter(&buf)
	if err != nil {
		return nil, 0, nil, err
	}
	return buf.Bytes(), pages, warnings, nil
}
