// Package canvas is the drawing surface for one report: a sequence of
// fixed-size PDF pages with a cursor, text/shape/image primitives at
// absolute coordinates, the repeating page header, and the second-pass
// footer stamping. It makes no placement decisions; pagination lives in
// package flow.
//
// The backend is github.com/go-pdf/fpdf, which also supplies the font
// metrics, so Canvas doubles as the metrics.TextMeasurer used for
// look-ahead measurement.
package canvas
