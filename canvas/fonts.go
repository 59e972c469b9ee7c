package canvas

import (
	"os"
	"path/filepath"

	"github.com/talentika/cvreport/blocks"
)

// fontFace is the backend (family, style) pair a weight resolves to.
type fontFace struct {
	family string
	style  string
}

// faceFiles lists the TTF files of the primary family, one per weight.
var faceFiles = map[blocks.FontWeight]string{
	blocks.WeightRegular: "Poppins-Regular.ttf",
	blocks.WeightBold:    "Poppins-Bold.ttf",
	blocks.WeightMedium:  "Poppins-Medium.ttf",
	blocks.WeightLight:   "Poppins-Light.ttf",
}

// fallbackFaces maps weights onto the core Helvetica pairing used when the
// primary family is unavailable. Medium and light degrade to regular.
var fallbackFaces = map[blocks.FontWeight]fontFace{
	blocks.WeightRegular: {family: "Helvetica"},
	blocks.WeightBold:    {family: "Helvetica", style: "B"},
	blocks.WeightMedium:  {family: "Helvetica"},
	blocks.WeightLight:   {family: "Helvetica"},
}

// loadFonts registers the primary family from dir, or falls back to the
// core fonts when any face file is missing or unreadable. Font trouble
// degrades typography but never fails report generation.
func (c *Canvas) loadFonts(dir string) {
	c.faces = fallbackFaces
	c.fallback = true

	if dir == "" {
		c.logger.Warn("font directory not configured, using fallback fonts")
		return
	}
	for _, file := range faceFiles {
		if _, err := os.Stat(filepath.Join(dir, file)); err != nil {
			c.logger.Warn("font file unavailable, using fallback fonts",
				"file", file, "error", err)
			return
		}
	}

	loaded := map[blocks.FontWeight]fontFace{
		blocks.WeightRegular: {family: "Poppins"},
		blocks.WeightBold:    {family: "Poppins", style: "B"},
		blocks.WeightMedium:  {family: "PoppinsMedium"},
		blocks.WeightLight:   {family: "PoppinsLight"},
	}
	for weight, face := range loaded {
		c.pdf.AddUTF8Font(face.family, face.style, filepath.Join(dir, faceFiles[weight]))
	}
	if c.pdf.Err() {
		// A parse failure surfaces here rather than at Stat time. Clear the
		// backend error and keep the core fonts.
		c.logger.Warn("font registration failed, using fallback fonts",
			"error", c.pdf.Error())
		c.pdf.ClearError()
		return
	}

	c.faces = loaded
	c.fallback = false
}

// face resolves a weight to the registered backend face.
func (c *Canvas) face(w blocks.FontWeight) fontFace {
	if f, ok := c.faces[w]; ok {
		return f
	}
	return c.faces[blocks.WeightRegular]
}

// setFont makes the weight/size pair current on the backend.
func (c *Canvas) setFont(w blocks.FontWeight, size float64) {
	f := c.face(w)
	c.pdf.SetFont(f.family, f.style, size)
}

// FallbackFonts reports whether the canvas degraded to the core fonts.
func (c *Canvas) FallbackFonts() bool {
	return c.fallback
}
