// Package assemble maps a raw CV-analysis record onto the canonical block
// sequence of a report. The record arrives as loosely typed JSON from the
// analysis service: any field may be missing, null, a string, an array of
// strings, or an object carrying items/roles plus suggestions. All of that
// duck typing is resolved here, at the boundary, into the closed block set
// of package blocks; no downstream component branches on raw field shape.
//
// The mapping is pure and knows nothing about pagination: it decides what
// blocks exist, never where they land.
package assemble
