package flow

import (
	"github.com/talentika/cvreport/blocks"
	"github.com/talentika/cvreport/metrics"
)

// Surface is the drawing target the controller paginates onto. It is a
// dumb page-oriented surface: fixed content rectangle, a cursor, absolute
// drawing primitives and page bookkeeping. canvas.Canvas is the production
// implementation; tests use a recording fake.
type Surface interface {
	metrics.TextMeasurer

	// NewPage opens a new page, resets the cursor to the top of the
	// content rectangle and re-renders the repeating header.
	NewPage()

	// PageIndex returns the 1-based current page; PageCount the number of
	// pages produced so far.
	PageIndex() int
	PageCount() int

	CursorY() float64
	SetCursorY(y float64)

	ContentLeft() float64
	ContentTop() float64
	ContentWidth() float64
	ContentBottom() float64

	DrawText(text string, x, y float64, style blocks.TextStyle)
	DrawTextWrapped(text string, x, y, width float64, style blocks.TextStyle) float64
	DrawRect(x, y, w, h float64, fill blocks.RGB)
	DrawRoundedRect(x, y, w, h, r float64, fill blocks.RGB)
	DrawLine(x1, y1, x2, y2 float64, color blocks.RGB, width float64)
	DrawCircle(x, y, r float64, color blocks.RGB, width float64)
	DrawArc(x, y, r, degStart, degEnd float64, color blocks.RGB, width float64)

	// StampFooters revisits every produced page and stamps the notice and
	// the label produced by label(page, total).
	StampFooters(notice string, label func(page, total int) string)
}
