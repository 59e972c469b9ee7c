package cvreport

import (
	"log/slog"

	"github.com/talentika/cvreport/blocks"
	"github.com/talentika/cvreport/canvas"
)

// generateOptions holds the per-report configuration accumulated by the
// Generator's chained methods.
type generateOptions struct {
	candidate string
	role      string

	fontDir  string
	logoPath string
	siteText string
	wordmark string

	layout    blocks.Layout
	hasLayout bool

	logger *slog.Logger
}

// defaultOptions returns the production defaults: standard assets, A4
// geometry, slog.Default().
func defaultOptions() generateOptions {
	cfg := canvas.DefaultConfig()
	return generateOptions{
		fontDir:  cfg.FontDir,
		logoPath: cfg.LogoPath,
		siteText: cfg.SiteText,
		wordmark: cfg.Wordmark,
	}
}

// clone creates a copy of the options so each configuration call can
// return an independent Generator.
func (o generateOptions) clone() generateOptions {
	return o
}
