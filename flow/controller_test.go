package flow

import (
	"fmt"
	"strings"
	"testing"

	"github.com/talentika/cvreport/blocks"
	"github.com/talentika/cvreport/metrics"
)

const fakeCharWidth = 5

// fakeSurface is a recording Surface with fixed-advance font metrics:
// every rune is fakeCharWidth wide, wrapping packs runes per line. It lets
// the tests assert where blocks landed without producing a PDF.
type fakeSurface struct {
	layout blocks.Layout

	page   int
	cursor float64
	ops    []surfaceOp
	labels []string
}

type surfaceOp struct {
	kind string
	text string
	page int
	x, y float64
	w, h float64
	fill blocks.RGB
}

func newFakeSurface(layout blocks.Layout) *fakeSurface {
	return &fakeSurface{layout: layout}
}

func (s *fakeSurface) TextWidth(text string, _ blocks.FontWeight, _ float64) float64 {
	return float64(len([]rune(text))) * fakeCharWidth
}

func (s *fakeSurface) WrapText(text string, _ blocks.FontWeight, _ float64, width float64) []string {
	perLine := int(width / fakeCharWidth)
	if perLine < 1 {
		perLine = 1
	}
	runes := []rune(text)
	var lines []string
	for len(runes) > perLine {
		lines = append(lines, string(runes[:perLine]))
		runes = runes[perLine:]
	}
	if len(runes) > 0 {
		lines = append(lines, string(runes))
	}
	return lines
}

func (s *fakeSurface) NewPage() {
	s.page++
	s.cursor = s.layout.Margin
}

func (s *fakeSurface) PageIndex() int         { return s.page }
func (s *fakeSurface) PageCount() int         { return s.page }
func (s *fakeSurface) CursorY() float64       { return s.cursor }
func (s *fakeSurface) SetCursorY(y float64)   { s.cursor = y }
func (s *fakeSurface) ContentLeft() float64   { return s.layout.Margin }
func (s *fakeSurface) ContentTop() float64    { return s.layout.Margin }
func (s *fakeSurface) ContentWidth() float64  { return s.layout.ContentWidth() }
func (s *fakeSurface) ContentBottom() float64 { return s.layout.ContentBottom() }

func (s *fakeSurface) record(op surfaceOp) {
	op.page = s.page
	s.ops = append(s.ops, op)
}

func (s *fakeSurface) DrawText(text string, x, y float64, style blocks.TextStyle) {
	s.record(surfaceOp{kind: "text", text: text, x: x, y: y, h: s.layout.LineHeight(style.Size)})
}

func (s *fakeSurface) DrawTextWrapped(text string, x, y, width float64, style blocks.TextStyle) float64 {
	lines := s.WrapText(text, style.Weight, style.Size, width)
	h := float64(len(lines)) * s.layout.LineHeight(style.Size)
	s.record(surfaceOp{kind: "wrapped", text: text, x: x, y: y, w: width, h: h})
	return h
}

func (s *fakeSurface) DrawRect(x, y, w, h float64, fill blocks.RGB) {
	s.record(surfaceOp{kind: "rect", x: x, y: y, w: w, h: h, fill: fill})
}

func (s *fakeSurface) DrawRoundedRect(x, y, w, h, _ float64, fill blocks.RGB) {
	s.record(surfaceOp{kind: "rrect", x: x, y: y, w: w, h: h, fill: fill})
}

func (s *fakeSurface) DrawLine(x1, y1, x2, y2 float64, _ blocks.RGB, _ float64) {
	s.record(surfaceOp{kind: "line", x: x1, y: y1, w: x2 - x1})
}

func (s *fakeSurface) DrawCircle(x, y, r float64, _ blocks.RGB, _ float64) {
	s.record(surfaceOp{kind: "circle", x: x, y: y, w: r, h: r})
}

func (s *fakeSurface) DrawArc(x, y, r, _, _ float64, _ blocks.RGB, _ float64) {
	s.record(surfaceOp{kind: "arc", x: x, y: y, w: r, h: r})
}

func (s *fakeSurface) StampFooters(notice string, label func(page, total int) string) {
	n := s.page
	for i := 1; i <= n; i++ {
		s.labels = append(s.labels, label(i, n))
	}
}

// opsOnPage returns the drawing ops recorded on a page, in order.
func (s *fakeSurface) opsOnPage(page int) []surfaceOp {
	var out []surfaceOp
	for _, op := range s.ops {
		if op.page == page {
			out = append(out, op)
		}
	}
	return out
}

func (s *fakeSurface) isBannerRect(op surfaceOp) bool {
	return op.kind == "rect" && op.h == s.layout.BannerHeight
}

func newTestController(t *testing.T) (*Controller, *fakeSurface) {
	t.Helper()
	layout := blocks.DefaultLayout()
	fs := newFakeSurface(layout)
	provider := metrics.NewProvider(fs, layout, blocks.DefaultStyles(blocks.DefaultPalette()))
	return NewController(fs, provider, nil), fs
}

func testDocument(sections ...blocks.Section) *blocks.Document {
	p := blocks.DefaultPalette()
	return &blocks.Document{
		Cover: blocks.Cover{
			Title:     "Informe de análisis de CV",
			Candidate: "Ada Lovelace",
			Role:      "Puesto objetivo: Backend Engineer",
			Gauge:     blocks.ScoreGauge{Value: 70},
		},
		Sections:         sections,
		Layout:           blocks.DefaultLayout(),
		Styles:           blocks.DefaultStyles(p),
		Palette:          p,
		Sentinel:         "sin información",
		EmptySectionText: "Sección sin contenido aprovechable.",
		FooterNotice:     "Documento confidencial",
	}
}

func paragraphSection(title, text string) blocks.Section {
	return blocks.Section{
		Header: blocks.SectionHeader{Title: title},
		Subsections: []blocks.Subsection{
			{Title: "Detalle", Body: blocks.Paragraph{Text: text}},
		},
	}
}

func TestController_NilDocument(t *testing.T) {
	fc, _ := newTestController(t)
	if _, err := fc.Compose(nil); err == nil {
		t.Error("expected error for nil document")
	}
}

func TestController_SinglePage(t *testing.T) {
	fc, fs := newTestController(t)
	doc := testDocument(paragraphSection("1. Resumen", "Perfil sólido."))

	pages, err := fc.Compose(doc)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if pages != 1 {
		t.Errorf("pages = %d, want 1", pages)
	}
	if len(fs.labels) != 1 || fs.labels[0] != "Página 1 de 1" {
		t.Errorf("footer labels = %v", fs.labels)
	}
}

func TestController_CoverOnFirstPage(t *testing.T) {
	fc, fs := newTestController(t)
	doc := testDocument(paragraphSection("1. Resumen", "Texto."))

	if _, err := fc.Compose(doc); err != nil {
		t.Fatalf("Compose: %v", err)
	}

	layout := doc.Layout
	var sawTitle, sawGauge bool
	for _, op := range fs.opsOnPage(1) {
		if op.kind == "wrapped" && op.text == doc.Cover.Title {
			sawTitle = true
		}
		if op.kind == "circle" && op.w == layout.GaugeRadius {
			sawGauge = true
			wantCX := layout.PageWidth - layout.Margin - layout.GaugeRadius
			if op.x != wantCX {
				t.Errorf("gauge center x = %v, want %v (top-right anchor)", op.x, wantCX)
			}
		}
	}
	if !sawTitle || !sawGauge {
		t.Errorf("cover incomplete on page 1: title=%v gauge=%v", sawTitle, sawGauge)
	}
}

func TestController_FooterConsistency(t *testing.T) {
	fc, fs := newTestController(t)

	long := strings.Repeat("contenido extenso del informe ", 120)
	doc := testDocument(
		paragraphSection("1. Uno", long),
		paragraphSection("2. Dos", long),
		paragraphSection("3. Tres", long),
	)

	pages, err := fc.Compose(doc)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if pages < 2 {
		t.Fatalf("expected a multi-page document, got %d page(s)", pages)
	}
	if len(fs.labels) != pages {
		t.Fatalf("stamped %d footers for %d pages", len(fs.labels), pages)
	}
	for i, label := range fs.labels {
		want := fmt.Sprintf("Página %d de %d", i+1, pages)
		if label != want {
			t.Errorf("footer %d = %q, want %q", i, label, want)
		}
	}
}

func TestController_NoOrphanHeaders(t *testing.T) {
	fc, fs := newTestController(t)

	// Sections with varying body lengths push banners toward page bottoms.
	var sections []blocks.Section
	for i := 0; i < 12; i++ {
		n := 40 + (i*137)%600
		sections = append(sections, paragraphSection(
			fmt.Sprintf("%d. Sección", i+1),
			strings.Repeat("x", n*4),
		))
	}

	if _, err := fc.Compose(testDocument(sections...)); err != nil {
		t.Fatalf("Compose: %v", err)
	}

	for page := 1; page <= fs.PageCount(); page++ {
		ops := fs.opsOnPage(page)
		for i, op := range ops {
			if !fs.isBannerRect(op) {
				continue
			}
			// ops[i+1] is the banner's own title; real content must follow
			// on the same page.
			if i+1 >= len(ops)-1 {
				t.Errorf("page %d ends with an orphaned banner", page)
			}
		}
	}
}

func TestController_BarsNeverCrossBottomMargin(t *testing.T) {
	fc, fs := newTestController(t)

	// Filler paragraphs of stepped lengths make bars land at many
	// different cursor positions, including near the bottom.
	var sections []blocks.Section
	for i := 0; i < 10; i++ {
		sections = append(sections, blocks.Section{
			Header: blocks.SectionHeader{Title: fmt.Sprintf("%d. Sección", i+1)},
			Subsections: []blocks.Subsection{
				{Title: "Relleno", Body: blocks.Paragraph{Text: strings.Repeat("y", 400+(i*530)%2200)}},
				{Title: "Indicador", Body: blocks.ProgressBar{Label: "Calidad", Percent: 65}},
			},
		})
	}

	if _, err := fc.Compose(testDocument(sections...)); err != nil {
		t.Fatalf("Compose: %v", err)
	}

	layout := blocks.DefaultLayout()
	found := 0
	for _, op := range fs.ops {
		if op.kind == "rrect" && op.h == layout.BarHeight {
			found++
			if op.y+op.h > layout.ContentBottom() {
				t.Errorf("bar on page %d crosses the bottom margin (y=%v)", op.page, op.y)
			}
			if op.y < layout.Margin {
				t.Errorf("bar on page %d starts above the content top (y=%v)", op.page, op.y)
			}
		}
	}
	if found == 0 {
		t.Fatal("no bars were drawn")
	}
}

func TestController_ListSplitsAcrossPages(t *testing.T) {
	fc, fs := newTestController(t)

	items := make([]string, 70)
	for i := range items {
		items[i] = fmt.Sprintf("Elemento número %d de la lista de habilidades detectadas", i+1)
	}
	doc := testDocument(blocks.Section{
		Header: blocks.SectionHeader{Title: "1. Lista"},
		Subsections: []blocks.Subsection{
			{Title: "Elementos", Body: blocks.BulletList{Items: items}},
		},
	})

	pages, err := fc.Compose(doc)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if pages < 2 {
		t.Fatalf("expected the list to split across pages, got %d page(s)", pages)
	}
	if fc.Overflows() != 0 {
		t.Errorf("splitting a list must not overflow, got %d overflow(s)", fc.Overflows())
	}

	layout := blocks.DefaultLayout()
	for _, op := range fs.ops {
		if op.kind == "wrapped" && strings.HasPrefix(op.text, "Elemento número") {
			if op.y+op.h > layout.ContentBottom() {
				t.Errorf("list item %q crosses the bottom margin on page %d", op.text[:20], op.page)
			}
		}
	}
}

func TestController_LongParagraphTerminates(t *testing.T) {
	fc, _ := newTestController(t)

	// Far taller than one page; the controller must overflow rather than
	// loop forever looking for a page it fits on.
	doc := testDocument(paragraphSection("1. Patológico", strings.Repeat("z", 40000)))

	pages, err := fc.Compose(doc)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if pages < 1 {
		t.Errorf("pages = %d", pages)
	}
	if fc.Overflows() == 0 {
		t.Error("expected an overflow warning for a paragraph taller than a page")
	}
}

func TestController_EmptySectionCollapses(t *testing.T) {
	fc, fs := newTestController(t)

	sentinel := "sin información"
	doc := testDocument(blocks.Section{
		Header: blocks.SectionHeader{Title: "4. Perfil"},
		Subsections: []blocks.Subsection{
			{Title: "Datos", Body: blocks.Paragraph{Text: sentinel}},
			{Title: "Redes", Body: blocks.Paragraph{Text: sentinel}},
			{Title: "Otros", Body: blocks.Paragraph{Text: sentinel}},
		},
	})

	if _, err := fc.Compose(doc); err != nil {
		t.Fatalf("Compose: %v", err)
	}

	var fallbacks, subtitles, sentinels int
	for _, op := range fs.ops {
		switch {
		case op.kind == "wrapped" && op.text == doc.EmptySectionText:
			fallbacks++
		case op.kind == "text" && (op.text == "Datos" || op.text == "Redes" || op.text == "Otros"):
			subtitles++
		case op.kind == "wrapped" && op.text == sentinel:
			sentinels++
		}
	}
	if fallbacks != 1 {
		t.Errorf("explanatory paragraph drawn %d times, want 1", fallbacks)
	}
	if subtitles != 0 || sentinels != 0 {
		t.Errorf("placeholder subsections leaked: %d titles, %d sentinels", subtitles, sentinels)
	}
}

func TestController_AtomicBodyStaysWithTitle(t *testing.T) {
	// Filler lengths stepped by one wrapped line sweep the bar and gauge
	// sections across every cursor position of a page, including the band
	// just above the bottom margin where the banner look-ahead used to
	// admit a title whose atomic body then moved to the next page.
	for n := 0; n < 30; n++ {
		fc, fs := newTestController(t)
		doc := testDocument(
			paragraphSection("1. Relleno", strings.Repeat("x", 2000+n*99)),
			blocks.Section{
				Header: blocks.SectionHeader{Title: "2. Indicadores"},
				Subsections: []blocks.Subsection{
					{Title: "Indicador", Body: blocks.ProgressBar{Label: "Calidad", Percent: 70}},
				},
			},
			blocks.Section{
				Header: blocks.SectionHeader{Title: "3. Medidores"},
				Subsections: []blocks.Subsection{
					{Title: "Medidor", Body: blocks.ScoreGauge{Value: 55}},
				},
			},
		)

		if _, err := fc.Compose(doc); err != nil {
			t.Fatalf("filler %d: Compose: %v", n, err)
		}

		for i, op := range fs.ops {
			if op.kind != "text" || (op.text != "Indicador" && op.text != "Medidor") {
				continue
			}
			for _, next := range fs.ops[i+1:] {
				if next.kind == "rrect" || next.kind == "circle" {
					if next.page != op.page {
						t.Errorf("filler %d: title %q on page %d but its body on page %d",
							n, op.text, op.page, next.page)
					}
					break
				}
			}
		}
	}
}

func TestController_TallBodyOnFreshPagePlacedInPlace(t *testing.T) {
	fc, fs := newTestController(t)
	if _, err := fc.Compose(testDocument()); err != nil {
		t.Fatalf("Compose: %v", err)
	}

	// An empty fresh page: another break would gain nothing, so the body
	// must be placed where it stands and overflow from there.
	fs.NewPage()
	fc.placedOnPage = false
	before := fs.PageCount()

	sub := blocks.Subsection{Title: "Detalle", Body: blocks.Paragraph{Text: strings.Repeat("z", 12000)}}
	fc.placeSubsection(sub, false)

	if fs.PageCount() != before {
		t.Errorf("tall subsection on an empty page forced a redundant break: %d -> %d pages",
			before, fs.PageCount())
	}
	if fc.Overflows() == 0 {
		t.Error("expected the tall body to overflow in place")
	}
}

func TestController_GaugeCaptionInsideBlock(t *testing.T) {
	fc, fs := newTestController(t)
	if _, err := fc.Compose(testDocument()); err != nil {
		t.Fatalf("Compose: %v", err)
	}

	layout := blocks.DefaultLayout()
	styles := blocks.DefaultStyles(blocks.DefaultPalette())

	// Draw a gauge whose block starts at a known top, the same circle
	// padding the cover and the in-flow renderer use.
	top := 200.0
	fc.drawGauge(blocks.ScoreGauge{Value: 55}, 300, top+layout.GaugeRadius+4)

	bottom := top + layout.GaugeBlockHeight
	captions := 0
	for _, op := range fs.ops {
		if op.kind == "text" && op.text == "Puntuación global" && op.y >= top {
			captions++
			if end := op.y + styles.GaugeCaption.Size; end > bottom {
				t.Errorf("caption ends at %v, past the measured block bottom %v", end, bottom)
			}
		}
	}
	if captions == 0 {
		t.Fatal("no gauge caption was drawn")
	}
}

func TestController_GaugeBlockAtomic(t *testing.T) {
	fc, fs := newTestController(t)

	doc := testDocument(blocks.Section{
		Header: blocks.SectionHeader{Title: "1. Relleno"},
		Subsections: []blocks.Subsection{
			{Title: "Texto", Body: blocks.Paragraph{Text: strings.Repeat("w", 9000)}},
			{Title: "Indicador", Body: blocks.ScoreGauge{Value: 40}},
		},
	})

	if _, err := fc.Compose(doc); err != nil {
		t.Fatalf("Compose: %v", err)
	}

	layout := blocks.DefaultLayout()
	for _, op := range fs.ops {
		if op.kind == "circle" && op.page > 1 {
			if op.y+op.w > layout.ContentBottom() {
				t.Errorf("gauge circle crosses the bottom margin on page %d", op.page)
			}
		}
	}
}
