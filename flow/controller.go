package flow

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/talentika/cvreport/blocks"
	"github.com/talentika/cvreport/metrics"
)

// Controller drives pagination for one document. It owns the placement
// state (current cursor, whether anything has been placed since the last
// page break) and mutates only that state, never the document.
//
// A Controller is single-use and not safe for concurrent use; build one
// per report.
type Controller struct {
	surface  Surface
	provider *metrics.Provider
	logger   *slog.Logger

	doc     *blocks.Document
	layout  blocks.Layout
	styles  blocks.StyleSet
	palette blocks.Palette

	// placedOnPage is true once any content has landed on the current
	// page. It is the forward-progress guard: placement is only rejected
	// (retried on a fresh page) when something already occupies this one.
	placedOnPage bool

	overflows int
}

// NewController creates a controller drawing onto surface with heights
// from provider. A nil logger means slog.Default().
func NewController(surface Surface, provider *metrics.Provider, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{surface: surface, provider: provider, logger: logger}
}

// Overflows returns how many blocks were drawn past the bottom margin
// because no split was possible.
func (fc *Controller) Overflows() int { return fc.overflows }

// Compose lays the document out across as many pages as needed and stamps
// the footers. It returns the final page count.
func (fc *Controller) Compose(doc *blocks.Document) (int, error) {
	if doc == nil {
		return 0, errors.New("flow: nil document")
	}
	fc.doc = doc
	fc.layout = doc.Layout
	fc.styles = doc.Styles
	fc.palette = doc.Palette

	fc.surface.NewPage()
	fc.drawCover(doc.Cover)

	for _, sec := range doc.Sections {
		fc.placeSection(sec)
	}

	fc.surface.StampFooters(doc.FooterNotice, func(page, total int) string {
		return fmt.Sprintf("Página %d de %d", page, total)
	})
	return fc.surface.PageCount(), nil
}

// drawCover renders the fixed page-1 block: title, candidate and role
// lines, separator rule and the score gauge anchored top-right. The cover
// is never paginated; page 1 always has room for it by construction.
func (fc *Controller) drawCover(cover blocks.Cover) {
	l := fc.layout
	s := fc.surface
	left := s.ContentLeft()
	top := s.ContentTop()

	gaugeCX := l.PageWidth - l.Margin - l.GaugeRadius
	gaugeCY := top + l.GaugeRadius + 4
	textWidth := s.ContentWidth() - 2*l.GaugeRadius - 30

	y := top
	y += s.DrawTextWrapped(cover.Title, left, y, textWidth, fc.styles.CoverTitle)
	y += 10
	y += s.DrawTextWrapped(cover.Candidate, left, y, textWidth, fc.styles.CoverLine)
	y += 4
	y += s.DrawTextWrapped(cover.Role, left, y, textWidth, fc.styles.CoverLine)
	y += 12
	s.DrawLine(left, y, left+textWidth, y, fc.palette.Separator, 1)

	fc.drawGauge(cover.Gauge, gaugeCX, gaugeCY)
	gaugeBottom := top + l.GaugeBlockHeight

	if gaugeBottom > y {
		y = gaugeBottom
	}
	s.SetCursorY(y + 24)
	fc.placedOnPage = true
}

// drawGauge renders the circular score badge centered at (cx, cy): a track
// circle, a value arc sweeping clockwise from twelve o'clock, the numeral
// and a caption below.
func (fc *Controller) drawGauge(g blocks.ScoreGauge, cx, cy float64) {
	l := fc.layout
	s := fc.surface
	value := clampPercent(g.Value)

	s.DrawCircle(cx, cy, l.GaugeRadius, fc.palette.Track, 6)
	if value > 0 {
		sweep := 3.6 * value
		s.DrawArc(cx, cy, l.GaugeRadius, 90-sweep, 90, fc.scoreColor(value), 6)
	}

	numeral := fmt.Sprintf("%.0f", value)
	st := fc.styles.GaugeNumeral
	w := s.TextWidth(numeral, st.Weight, st.Size)
	s.DrawText(numeral, cx-w/2, cy-st.Size/2-2, st)

	caption := "Puntuación global"
	cst := fc.styles.GaugeCaption
	cw := s.TextWidth(caption, cst.Weight, cst.Size)
	s.DrawText(caption, cx-cw/2, cy+l.GaugeRadius+4, cst)
}

func (fc *Controller) scoreColor(value float64) blocks.RGB {
	switch {
	case value >= 70:
		return fc.palette.ScoreHigh
	case value >= 40:
		return fc.palette.ScoreMid
	default:
		return fc.palette.ScoreLow
	}
}

// placeSection places one banner and its subsections. The banner is only
// drawn when enough of the first subsection fits beneath it on the same
// page (orphan rule); otherwise the section starts on a fresh page.
func (fc *Controller) placeSection(sec blocks.Section) {
	l := fc.layout
	s := fc.surface
	width := s.ContentWidth()

	subs := sec.Subsections
	if fc.isEmptySection(sec) {
		subs = []blocks.Subsection{{Body: blocks.Paragraph{Text: fc.doc.EmptySectionText}}}
	}

	headerH := fc.provider.BlockHeight(sec.Header, width)
	var minFollow float64
	if len(subs) > 0 {
		minFollow = fc.minFollowThrough(subs[0], width)
	}
	needed := headerH + l.BannerSpacing + minFollow
	remaining := s.ContentBottom() - s.CursorY()

	switch {
	case remaining < needed:
		s.NewPage()
		fc.placedOnPage = false
	case fc.placedOnPage && remaining < l.SqueezeRatio*fc.sectionEstimate(sec.Header, subs, width) && remaining < l.SqueezeAbsolute:
		// Too little room to look good, too little content to justify it.
		s.NewPage()
		fc.placedOnPage = false
	case fc.placedOnPage && remaining >= l.AwkwardGapMin && remaining <= l.AwkwardGapMax && remaining-l.GapBalanceOffset >= needed:
		// An awkward gap: drop the banner slightly rather than leaving a
		// visibly empty stretch above the fold.
		s.SetCursorY(s.CursorY() + l.GapBalanceOffset)
	}

	fc.renderSectionHeader(sec.Header)
	s.SetCursorY(s.CursorY() + l.BannerSpacing)
	fc.placedOnPage = true

	for i, sub := range subs {
		fc.placeSubsection(sub, i == 0)
	}
}

// sectionEstimate is the full measured height of a section, used by the
// squeeze rule to judge how much content is about to be placed.
func (fc *Controller) sectionEstimate(header blocks.SectionHeader, subs []blocks.Subsection, width float64) float64 {
	h := fc.provider.BlockHeight(header, width)
	for _, sub := range subs {
		h += fc.provider.SubsectionHeight(sub, width)
	}
	return h
}

// minFollowThrough is the look-ahead estimate of the least content that
// must fit under a banner for it not to read as orphaned: the first
// subsection's title plus the beginning of its body.
func (fc *Controller) minFollowThrough(sub blocks.Subsection, width float64) float64 {
	h := fc.provider.BlockHeight(sub.Body, width)
	switch sub.Body.(type) {
	case blocks.ProgressBar, blocks.ScoreGauge:
		// Atomic blocks either fit whole under the banner or force a new
		// page; capping their look-ahead would strand the banner and title
		// on one page with the body pushed to the next.
	default:
		if h > fc.layout.LookAheadBody {
			h = fc.layout.LookAheadBody
		}
	}
	if sub.Title != "" {
		h += fc.layout.TitleHeight
	}
	return h
}

// isEmptySection reports whether every subsection body is the sentinel
// paragraph. Such a section is rendered as a single explanatory paragraph
// instead of a run of placeholders.
func (fc *Controller) isEmptySection(sec blocks.Section) bool {
	if len(sec.Subsections) == 0 {
		return true
	}
	for _, sub := range sec.Subsections {
		p, ok := sub.Body.(blocks.Paragraph)
		if !ok || p.Text != fc.doc.Sentinel {
			return false
		}
	}
	return true
}

// placeSubsection places a title line and its body. A unit that does not
// fit is retried at the top of a fresh page, unless it is the first
// placement since the last page break: the first subsection of a section
// stays under the banner the look-ahead just vetted (the orphan rule),
// and a unit already on a fresh page gains nothing from another break.
// Either way it is placed where it is and the body renderers split or
// overflow from there; placement is never rejected without forward
// progress, so composition always terminates.
func (fc *Controller) placeSubsection(sub blocks.Subsection, firstOfSection bool) {
	l := fc.layout
	s := fc.surface
	width := s.ContentWidth()

	bodyH := fc.provider.BlockHeight(sub.Body, width)
	var titleH float64
	if sub.Title != "" {
		titleH = l.TitleHeight
	}
	trailing := l.TrailingSpacing
	if bodyH < l.SmallBodyThreshold {
		trailing = l.SmallTrailingSpacing
	}

	if fc.placedOnPage && !firstOfSection && s.CursorY()+titleH+bodyH+trailing > s.ContentBottom() {
		s.NewPage()
		fc.placedOnPage = false
	}

	if sub.Title != "" {
		s.DrawText(sub.Title, s.ContentLeft(), s.CursorY(), fc.styles.Subtitle)
		s.SetCursorY(s.CursorY() + titleH)
	}

	fc.renderBody(sub.Body)

	s.SetCursorY(s.CursorY() + trailing)
	fc.placedOnPage = true
}
