package blocks

// FontWeight selects one of the four faces of the report family.
type FontWeight int

const (
	WeightRegular FontWeight = iota
	WeightMedium
	WeightLight
	WeightBold
)

// String returns a string representation of the font weight
func (w FontWeight) String() string {
	switch w {
	case WeightMedium:
		return "medium"
	case WeightLight:
		return "light"
	case WeightBold:
		return "bold"
	default:
		return "regular"
	}
}

// RGB is an sRGB color with 0..255 components.
type RGB struct {
	R, G, B int
}

// TextStyle is the fixed visual style of a text run: face, size and color.
// Line height is derived from Size via Layout.LineSpacing.
type TextStyle struct {
	Weight FontWeight
	Size   float64
	Color  RGB
}

// Palette holds the report colors. Values match the product's visual
// identity and are not configurable per block.
type Palette struct {
	Ink       RGB // body text
	Muted     RGB // captions, footer
	Accent    RGB // banners, bar fill, gauge arc
	BannerBG  RGB // section banner background fill
	Track     RGB // progress bar / gauge track
	Separator RGB // cover rule
	ScoreLow  RGB // gauge arc under 40
	ScoreMid  RGB // gauge arc 40..69
	ScoreHigh RGB // gauge arc 70 and up
}

// DefaultPalette returns the report color scheme.
func DefaultPalette() Palette {
	return Palette{
		Ink:       RGB{45, 55, 72},
		Muted:     RGB{113, 128, 150},
		Accent:    RGB{49, 130, 206},
		BannerBG:  RGB{235, 244, 255},
		Track:     RGB{226, 232, 240},
		Separator: RGB{203, 213, 224},
		ScoreLow:  RGB{229, 62, 62},
		ScoreMid:  RGB{221, 161, 36},
		ScoreHigh: RGB{56, 161, 105},
	}
}

// StyleSet maps each block role to its fixed text style.
type StyleSet struct {
	CoverTitle   TextStyle
	CoverLine    TextStyle
	Banner       TextStyle
	Subtitle     TextStyle
	Body         TextStyle
	ListItem     TextStyle
	BarLabel     TextStyle
	GaugeNumeral TextStyle
	GaugeCaption TextStyle
	Footer       TextStyle
	Header       TextStyle
}

// DefaultStyles returns the fixed per-role styles for the given palette.
func DefaultStyles(p Palette) StyleSet {
	return StyleSet{
		CoverTitle:   TextStyle{Weight: WeightBold, Size: 24, Color: p.Ink},
		CoverLine:    TextStyle{Weight: WeightMedium, Size: 13, Color: p.Muted},
		Banner:       TextStyle{Weight: WeightBold, Size: 14, Color: p.Accent},
		Subtitle:     TextStyle{Weight: WeightMedium, Size: 12, Color: p.Ink},
		Body:         TextStyle{Weight: WeightRegular, Size: 11, Color: p.Ink},
		ListItem:     TextStyle{Weight: WeightRegular, Size: 11, Color: p.Ink},
		BarLabel:     TextStyle{Weight: WeightMedium, Size: 11, Color: p.Ink},
		GaugeNumeral: TextStyle{Weight: WeightBold, Size: 28, Color: p.Ink},
		GaugeCaption: TextStyle{Weight: WeightLight, Size: 10, Color: p.Muted},
		Footer:       TextStyle{Weight: WeightLight, Size: 8, Color: p.Muted},
		Header:       TextStyle{Weight: WeightMedium, Size: 9, Color: p.Muted},
	}
}

// Layout holds the fixed page geometry and the spacing constants the
// pagination heuristics depend on. All values are PDF points.
type Layout struct {
	// PageWidth and PageHeight are the physical page size (ISO A4).
	PageWidth  float64
	PageHeight float64

	// Margin is the uniform content margin on all four sides.
	Margin float64

	// LineSpacing is the line-height multiplier applied to a style's size.
	LineSpacing float64

	// BannerHeight is the section header banner box height.
	BannerHeight float64

	// BannerSpacing is added below the banner before the first subsection.
	BannerSpacing float64

	// TitleHeight is the height reserved for a subsection title line.
	TitleHeight float64

	// TrailingSpacing follows a subsection body.
	TrailingSpacing float64

	// SmallTrailingSpacing replaces TrailingSpacing when the body measures
	// under SmallBodyThreshold.
	SmallTrailingSpacing float64

	// SmallBodyThreshold is the body height under which a subsection is
	// treated as small content.
	SmallBodyThreshold float64

	// ListItemGap separates consecutive list items.
	ListItemGap float64

	// BarHeight is the progress bar rectangle height; BarBlockHeight is the
	// constant height of the whole labeled bar block.
	BarHeight      float64
	BarBlockHeight float64

	// GaugeRadius is the gauge circle radius; GaugeBlockHeight is the
	// constant height of the gauge plus its caption lines.
	GaugeRadius      float64
	GaugeBlockHeight float64

	// LookAheadBody caps how much of the first subsection body is counted
	// when deciding whether a section header would be orphaned.
	LookAheadBody float64

	// SqueezeRatio and SqueezeAbsolute govern the "not worth squeezing"
	// rule: when the space left is under SqueezeRatio of the content about
	// to be placed and also under SqueezeAbsolute, a new page is started.
	SqueezeRatio    float64
	SqueezeAbsolute float64

	// AwkwardGapMin..AwkwardGapMax is the remaining-space band in which the
	// cursor is pre-advanced by GapBalanceOffset instead of leaving a
	// visibly empty stretch before the next banner.
	AwkwardGapMin    float64
	AwkwardGapMax    float64
	GapBalanceOffset float64

	// HeaderBandY is the vertical position of the repeating page header
	// band (inside the top margin). FooterY is measured from the bottom
	// edge of the page.
	HeaderBandY float64
	FooterY     float64
}

// DefaultLayout returns the A4 geometry and spacing constants the report
// has always shipped with.
func DefaultLayout() Layout {
	return Layout{
		PageWidth:   595.28,
		PageHeight:  841.89,
		Margin:      50,
		LineSpacing: 1.4,

		BannerHeight:  30,
		BannerSpacing: 15,

		TitleHeight:          22,
		TrailingSpacing:      30,
		SmallTrailingSpacing: 15,
		SmallBodyThreshold:   50,
		ListItemGap:          4,

		BarHeight:      15,
		BarBlockHeight: 55,

		GaugeRadius:      50,
		GaugeBlockHeight: 120,

		LookAheadBody: 40,

		SqueezeRatio:    0.3,
		SqueezeAbsolute: 100,

		AwkwardGapMin:    120,
		AwkwardGapMax:    250,
		GapBalanceOffset: 20,

		HeaderBandY: 18,
		FooterY:     30,
	}
}

// ContentWidth returns the usable horizontal span between the margins.
func (l Layout) ContentWidth() float64 {
	return l.PageWidth - 2*l.Margin
}

// ContentBottom returns the Y coordinate of the bottom of the content
// rectangle.
func (l Layout) ContentBottom() float64 {
	return l.PageHeight - l.Margin
}

// LineHeight returns the drawn height of one line at the given font size.
func (l Layout) LineHeight(size float64) float64 {
	return size * l.LineSpacing
}
