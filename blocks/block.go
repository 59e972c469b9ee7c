package blocks

// Kind identifies the concrete type of a Block.
type Kind int

const (
	KindUnknown Kind = iota
	KindParagraph
	KindBulletList
	KindNumberedList
	KindProgressBar
	KindScoreGauge
	KindSectionHeader
	KindSubsection
)

// String returns a string representation of the block kind
func (k Kind) String() string {
	switch k {
	case KindParagraph:
		return "paragraph"
	case KindBulletList:
		return "bullet-list"
	case KindNumberedList:
		return "numbered-list"
	case KindProgressBar:
		return "progress-bar"
	case KindScoreGauge:
		return "score-gauge"
	case KindSectionHeader:
		return "section-header"
	case KindSubsection:
		return "subsection"
	default:
		return "unknown"
	}
}

// Block is an atomic, typed unit of report content. Every variant has a
// height that can be computed from its data and a wrap width alone, which
// is what allows the flow controller to decide page breaks before drawing.
type Block interface {
	Kind() Kind
}

// Paragraph is a run of wrapped text drawn at a fixed style.
type Paragraph struct {
	Text  string
	Style TextStyle
}

func (Paragraph) Kind() Kind { return KindParagraph }

// BulletList renders each item on its own wrapped line(s), prefixed with
// a bullet. Items wrap within the width remaining after the prefix.
type BulletList struct {
	Items []string
}

func (BulletList) Kind() Kind { return KindBulletList }

// NumberedList is like BulletList with "1.", "2.", ... prefixes.
type NumberedList struct {
	Items []string
}

func (NumberedList) Kind() Kind { return KindNumberedList }

// ProgressBar is a labeled horizontal bar with a percentage caption.
// Its rendered height is constant regardless of content.
type ProgressBar struct {
	Label   string
	Percent float64 // 0..100
}

func (ProgressBar) Kind() Kind { return KindProgressBar }

// ScoreGauge is the circular score badge with a centered numeral and a
// caption below. It only ever appears on the cover, anchored top-right.
type ScoreGauge struct {
	Value float64 // 0..100
}

func (ScoreGauge) Kind() Kind { return KindScoreGauge }

// SectionHeader is the fixed-height banner with a background fill that
// opens every section.
type SectionHeader struct {
	Title string
}

func (SectionHeader) Kind() Kind { return KindSectionHeader }

// Subsection is a title line followed immediately by one content block.
// The body is never separated from its own title by a page break; once the
// title is placed, the body's own overflow may continue on the next page.
// An empty Title renders the body alone with no title line.
type Subsection struct {
	Title string
	Body  Block
}

func (Subsection) Kind() Kind { return KindSubsection }

// Section is a banner followed by zero or more subsections.
type Section struct {
	Header      SectionHeader
	Subsections []Subsection
}

// Cover is the fixed top-of-page-1 block: report title, candidate line,
// target-role line, separator rule and the score gauge.
type Cover struct {
	Title     string
	Candidate string
	Role      string
	Gauge     ScoreGauge
}

// Document is the fully assembled report: cover plus ordered sections,
// along with the page geometry, styles and the sentinel strings the flow
// controller needs for its empty-section policy. It is built once by the
// assembler, handed to the flow controller and never mutated afterwards.
type Document struct {
	Cover    Cover
	Sections []Section

	Layout  Layout
	Styles  StyleSet
	Palette Palette

	// Sentinel is the default body text substituted for absent analysis
	// fields. A section whose subsections all carry this text is rendered
	// as the single EmptySectionText paragraph instead.
	Sentinel         string
	EmptySectionText string

	// FooterNotice is the confidentiality line stamped on every page
	// beside the "Página i de N" label.
	FooterNotice string
}
