// Package blocks defines the typed content units that make up a CV report
// and the document structure that groups them: paragraphs, bullet and
// numbered lists, progress bars, the cover score gauge, section banners and
// subsections. It also owns the fixed layout constants, the font table and
// the color palette shared by the measuring and drawing packages.
//
// The package holds data only. Measurement lives in package metrics and
// drawing/pagination in packages canvas and flow; nothing here knows where
// a block will land on a page.
package blocks
