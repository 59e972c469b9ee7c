// Package metrics measures blocks before anything is drawn. The flow
// controller needs exact heights ahead of placement to decide page breaks,
// so every function here is a pure computation over a block's data, a wrap
// width and the font metrics supplied by a TextMeasurer.
package metrics
