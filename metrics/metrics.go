package metrics

import (
	"fmt"

	"github.com/talentika/cvreport/blocks"
)

// TextMeasurer provides the raw font metrics. The canvas implements it on
// top of the PDF backend's font tables; tests substitute a fixed-advance
// fake. Implementations must be deterministic: the same inputs always
// produce the same result.
type TextMeasurer interface {
	// TextWidth returns the rendered width of a single line of text.
	TextWidth(text string, weight blocks.FontWeight, size float64) float64

	// WrapText breaks text into lines no wider than width. It never
	// returns an empty slice for non-empty text.
	WrapText(text string, weight blocks.FontWeight, size, width float64) []string
}

// Provider computes block heights from a TextMeasurer and the document's
// layout constants.
type Provider struct {
	m      TextMeasurer
	layout blocks.Layout
	styles blocks.StyleSet
}

// NewProvider creates a Provider bound to the given measurer and document
// geometry.
func NewProvider(m TextMeasurer, layout blocks.Layout, styles blocks.StyleSet) *Provider {
	return &Provider{m: m, layout: layout, styles: styles}
}

// checkWidth guards the measurement contract: callers own the content
// rectangle and must never pass a non-positive wrap width. A violation is
// a bug at every call site, so it is fatal rather than recoverable.
func checkWidth(width float64) {
	if width <= 0 {
		panic(fmt.Sprintf("metrics: non-positive wrap width %v", width))
	}
}

// Measure returns the rendered width and height of text wrapped at the
// given width.
func (p *Provider) Measure(text string, weight blocks.FontWeight, size, width float64) (w, h float64) {
	checkWidth(width)
	lines := p.m.WrapText(text, weight, size, width)
	for _, line := range lines {
		if lw := p.m.TextWidth(line, weight, size); lw > w {
			w = lw
		}
	}
	return w, float64(len(lines)) * p.layout.LineHeight(size)
}

// TextHeight returns the height of text wrapped at the given width.
func (p *Provider) TextHeight(text string, style blocks.TextStyle, width float64) float64 {
	_, h := p.Measure(text, style.Weight, style.Size, width)
	return h
}

// BlockHeight returns the height block will occupy when drawn into a
// region of the given wrap width. Progress bars, gauges and banners have
// constant heights; text blocks depend on wrapping.
func (p *Provider) BlockHeight(b blocks.Block, width float64) float64 {
	checkWidth(width)
	switch v := b.(type) {
	case blocks.Paragraph:
		style := v.Style
		if style.Size == 0 {
			style = p.styles.Body
		}
		return p.TextHeight(v.Text, style, width)
	case blocks.BulletList:
		return p.listHeight(v.Items, blocks.KindBulletList, width)
	case blocks.NumberedList:
		return p.listHeight(v.Items, blocks.KindNumberedList, width)
	case blocks.ProgressBar:
		return p.layout.BarBlockHeight
	case blocks.ScoreGauge:
		return p.layout.GaugeBlockHeight
	case blocks.SectionHeader:
		return p.layout.BannerHeight
	case blocks.Subsection:
		return p.SubsectionHeight(v, width)
	default:
		return 0
	}
}

// ItemHeight returns the height of the i-th item of a list block,
// accounting for the wrap width consumed by its prefix.
func (p *Provider) ItemHeight(kind blocks.Kind, item string, index int, width float64) float64 {
	checkWidth(width)
	style := p.styles.ListItem
	prefix := ListPrefix(kind, index)
	avail := width - p.m.TextWidth(prefix, style.Weight, style.Size)
	if avail <= 0 {
		// Prefix alone exhausts the region; the item still occupies a line.
		return p.layout.LineHeight(style.Size)
	}
	return p.TextHeight(item, style, avail)
}

func (p *Provider) listHeight(items []string, kind blocks.Kind, width float64) float64 {
	var h float64
	for i, item := range items {
		if i > 0 {
			h += p.layout.ListItemGap
		}
		h += p.ItemHeight(kind, item, i, width)
	}
	return h
}

// SubsectionHeight returns the title line plus body height. Trailing
// spacing is a placement concern and deliberately excluded; the flow
// controller adds it based on its small-content rule.
func (p *Provider) SubsectionHeight(s blocks.Subsection, width float64) float64 {
	h := p.BlockHeight(s.Body, width)
	if s.Title != "" {
		h += p.layout.TitleHeight
	}
	return h
}

// ListPrefix returns the marker prepended to the index-th item of a
// bullet or numbered list.
func ListPrefix(kind blocks.Kind, index int) string {
	if kind == blocks.KindNumberedList {
		return fmt.Sprintf("%d. ", index+1)
	}
	return "• "
}
