// Package flow paginates an assembled report. The controller consumes the
// document's block sequence in order, measures each block before drawing
// (look-ahead), and decides where page breaks fall: section banners are
// never orphaned at the bottom of a page, bars and gauges are never split,
// list bodies split item-by-item at the boundary, and a lone paragraph
// taller than a full page is drawn past the margin with a logged warning
// rather than looping forever.
//
// Footers carry "Página i de N", which is only known once composition has
// finished, so they are stamped in an explicit second pass over the
// produced pages.
package flow
