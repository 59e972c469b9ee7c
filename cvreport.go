// Package cvreport composes multi-page PDF reports from CV analysis
// records: it maps the record's fields onto typed content blocks, lays the
// blocks out across A4 pages with exact height accounting, and writes the
// finished document to a file, writer or byte slice.
//
// Basic usage:
//
//	rec, err := assemble.ParseRecord(data)
//	if err != nil {
//	    // handle error
//	}
//	pages, warnings, err := cvreport.FromRecord(rec).
//	    Candidate("Ada Lovelace").
//	    Role("Backend Engineer").
//	    ToFile("report.pdf")
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", cvreport.FormatWarnings(warnings))
//	}
//
// The lower-level packages remain available for advanced use: assemble
// builds the block sequence, flow paginates it, canvas draws it.
package cvreport

import (
	"strings"

	"github.com/talentika/cvreport/assemble"
)

// Warning codes reported beside a successfully generated document.
const (
	// WarnFontFallback: the primary font family was unavailable and the
	// report degraded to the core fonts.
	WarnFontFallback = "font-fallback"

	// WarnLogoFallback: the header logo could not be read and the text
	// wordmark was drawn instead.
	WarnLogoFallback = "logo-fallback"

	// WarnOverflow: a block taller than a full page was drawn past the
	// bottom margin because no split was possible.
	WarnOverflow = "overflow"
)

// Warning is a non-fatal issue encountered while generating a report. The
// document is still valid; warnings flag degraded typography, a missing
// logo, or content drawn past the margin.
type Warning struct {
	Code    string
	Message string
}

// FormatWarnings joins warnings into a single printable string.
func FormatWarnings(warnings []Warning) string {
	if len(warnings) == 0 {
		return ""
	}
	parts := make([]string, len(warnings))
	for i, w := range warnings {
		parts[i] = w.Code + ": " + w.Message
	}
	return strings.Join(parts, "; ")
}

// FromRecord starts a report generation for an already-decoded analysis
// record. Configure the builder with the chained methods, then call a
// terminal operation (ToFile, ToWriter, Bytes).
func FromRecord(rec assemble.Record) *Generator {
	return &Generator{record: rec, options: defaultOptions()}
}

// FromJSON starts a report generation from raw analysis-record JSON. A
// decode failure is reported by the terminal operation.
func FromJSON(data []byte) *Generator {
	rec, err := assemble.ParseRecord(data)
	return &Generator{record: rec, err: err, options: defaultOptions()}
}
