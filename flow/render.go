package flow

import (
	"fmt"

	"github.com/talentika/cvreport/blocks"
	"github.com/talentika/cvreport/metrics"
)

// renderSectionHeader draws the banner box and its title at the cursor and
// advances the cursor by the banner height.
func (fc *Controller) renderSectionHeader(h blocks.SectionHeader) {
	l := fc.layout
	s := fc.surface
	y := s.CursorY()

	s.DrawRect(s.ContentLeft(), y, s.ContentWidth(), l.BannerHeight, fc.palette.BannerBG)
	st := fc.styles.Banner
	s.DrawText(h.Title, s.ContentLeft()+10, y+(l.BannerHeight-st.Size)/2-2, st)
	s.SetCursorY(y + l.BannerHeight)
}

// renderBody draws a subsection body at the cursor and advances the
// cursor past it. Splitting and overflow policy is per kind: lists split
// item-by-item, bars and gauges move whole to the next page, paragraphs
// overflow with a warning when nothing else can be done.
func (fc *Controller) renderBody(b blocks.Block) {
	switch v := b.(type) {
	case blocks.Paragraph:
		fc.renderParagraph(v)
	case blocks.BulletList:
		fc.renderList(blocks.KindBulletList, v.Items)
	case blocks.NumberedList:
		fc.renderList(blocks.KindNumberedList, v.Items)
	case blocks.ProgressBar:
		fc.renderProgressBar(v)
	case blocks.ScoreGauge:
		fc.renderGaugeBlock(v)
	}
}

// renderParagraph draws wrapped text at the cursor. placeSubsection has
// already moved to a fresh page when that was allowed, so a paragraph that
// still does not fit either is taller than a page or must stay under its
// section banner: it is force-overflowed past the margin with a logged
// warning, never rejected, so composition always terminates.
func (fc *Controller) renderParagraph(p blocks.Paragraph) {
	s := fc.surface
	width := s.ContentWidth()

	style := p.Style
	if style.Size == 0 {
		style = fc.styles.Body
	}
	h := fc.provider.TextHeight(p.Text, style, width)
	if s.CursorY()+h > s.ContentBottom() {
		fc.overflows++
		fc.logger.Warn("paragraph taller than remaining page, drawing past bottom margin",
			"height", h, "page", s.PageIndex())
	}
	drawn := s.DrawTextWrapped(p.Text, s.ContentLeft(), s.CursorY(), width, style)
	s.SetCursorY(s.CursorY() + drawn)
}

// renderList draws items one by one, starting a new page whenever the next
// item would cross the bottom margin. A single item taller than a whole
// page is overflowed with a warning, matching the paragraph policy.
func (fc *Controller) renderList(kind blocks.Kind, items []string) {
	l := fc.layout
	s := fc.surface
	width := s.ContentWidth()
	st := fc.styles.ListItem
	pageContent := s.ContentBottom() - s.ContentTop()

	for i, item := range items {
		if i > 0 {
			s.SetCursorY(s.CursorY() + l.ListItemGap)
		}
		itemH := fc.provider.ItemHeight(kind, item, i, width)
		if s.CursorY()+itemH > s.ContentBottom() {
			if itemH <= pageContent {
				s.NewPage()
				fc.placedOnPage = false
			} else {
				fc.overflows++
				fc.logger.Warn("list item taller than a page, drawing past bottom margin",
					"item", i, "height", itemH, "page", s.PageIndex())
			}
		}

		prefix := metrics.ListPrefix(kind, i)
		left := s.ContentLeft()
		indent := s.TextWidth(prefix, st.Weight, st.Size)
		s.DrawText(prefix, left, s.CursorY(), st)
		avail := width - indent
		if avail <= 0 {
			avail = width
		}
		drawn := s.DrawTextWrapped(item, left+indent, s.CursorY(), avail, st)
		s.SetCursorY(s.CursorY() + drawn)
		fc.placedOnPage = true
	}
}

// renderProgressBar draws the labeled bar. Bars are atomic: a bar that
// does not fit moves whole to the next page, never splits mid-draw.
func (fc *Controller) renderProgressBar(b blocks.ProgressBar) {
	l := fc.layout
	s := fc.surface

	if s.CursorY()+l.BarBlockHeight > s.ContentBottom() {
		s.NewPage()
		fc.placedOnPage = false
	}

	y := s.CursorY()
	left := s.ContentLeft()
	st := fc.styles.BarLabel
	pct := clampPercent(b.Percent)

	s.DrawText(b.Label, left, y, st)

	barY := y + l.LineHeight(st.Size) + 6
	barW := s.ContentWidth() - 60
	s.DrawRoundedRect(left, barY, barW, l.BarHeight, l.BarHeight/2, fc.palette.Track)
	if pct > 0 {
		s.DrawRoundedRect(left, barY, barW*pct/100, l.BarHeight, l.BarHeight/2, fc.palette.Accent)
	}

	caption := fmt.Sprintf("%.0f%%", pct)
	s.DrawText(caption, left+barW+12, barY, st)

	s.SetCursorY(y + l.BarBlockHeight)
	fc.placedOnPage = true
}

// renderGaugeBlock draws a gauge as in-flow content, centered in the
// content width. Like bars, gauges are atomic.
func (fc *Controller) renderGaugeBlock(g blocks.ScoreGauge) {
	l := fc.layout
	s := fc.surface

	if s.CursorY()+l.GaugeBlockHeight > s.ContentBottom() {
		s.NewPage()
		fc.placedOnPage = false
	}

	cx := s.ContentLeft() + s.ContentWidth()/2
	cy := s.CursorY() + l.GaugeRadius + 4
	fc.drawGauge(g, cx, cy)
	s.SetCursorY(s.CursorY() + l.GaugeBlockHeight)
	fc.placedOnPage = true
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
