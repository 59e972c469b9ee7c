package assemble

import (
	"fmt"

	"github.com/talentika/cvreport/blocks"
)

// Sentinel is the default body substituted for absent, null, empty or
// malformed analysis fields. The flow controller also uses it to detect
// sections with no usable content.
const Sentinel = "No se encontró información suficiente en el CV para esta sección."

// EmptySectionText replaces a section whose every subsection would be the
// sentinel, so the report does not spend a page on placeholders.
const EmptySectionText = "El análisis no encontró contenido aprovechable para esta sección. " +
	"Asegúrate de que el CV incluya esta información de forma explícita."

// FooterNotice is the confidentiality line stamped on every page.
const FooterNotice = "Documento confidencial · Generado automáticamente por Talentika"

// MaxListItems caps list-like fields; the analyzer already emits top-5
// lists and anything longer is noise.
const MaxListItems = 5

// DefaultPercent is used when a percentage field is absent or carries no
// recognizable "NN%" value.
const DefaultPercent = 70

// Assembler builds report documents from analysis records. The zero value
// is not usable; NewAssembler wires the default geometry and styles.
type Assembler struct {
	layout  blocks.Layout
	palette blocks.Palette
	styles  blocks.StyleSet
}

// NewAssembler returns an assembler using the default layout, palette and
// styles.
func NewAssembler() *Assembler {
	p := blocks.DefaultPalette()
	return &Assembler{
		layout:  blocks.DefaultLayout(),
		palette: p,
		styles:  blocks.DefaultStyles(p),
	}
}

// WithLayout overrides the page geometry, for callers embedding the
// compositor with a different page size or margins.
func (a *Assembler) WithLayout(l blocks.Layout) *Assembler {
	a.layout = l
	return a
}

// Build maps the record onto the canonical block sequence: cover plus the
// six report sections, every field resolved to a concrete block or the
// sentinel. The returned document is immutable by convention: it is handed
// to the flow controller and never touched again.
func (a *Assembler) Build(rec Record, candidate, role string) *blocks.Document {
	if rec == nil {
		rec = Record{}
	}
	candidate = clean(candidate)
	if candidate == "" {
		if info := rec.object("basicInfo"); info != nil {
			candidate = asText(info["name"])
		}
	}
	if candidate == "" {
		candidate = "Candidato"
	}
	role = clean(role)
	if role == "" {
		role = "No especificado"
	}

	doc := &blocks.Document{
		Cover: blocks.Cover{
			Title:     "Informe de análisis de CV",
			Candidate: candidate,
			Role:      "Puesto objetivo: " + role,
			Gauge:     blocks.ScoreGauge{Value: asScore(rec["score"], 50)},
		},
		Layout:           a.layout,
		Styles:           a.styles,
		Palette:          a.palette,
		Sentinel:         Sentinel,
		EmptySectionText: EmptySectionText,
		FooterNotice:     FooterNotice,
	}

	doc.Sections = []blocks.Section{
		a.summarySection(rec),
		a.experienceSection(rec),
		a.skillsSection(rec),
		a.profileSection(rec),
		a.strengthsSection(rec),
		a.recommendationsSection(rec),
	}
	return doc
}

// paragraphOr returns a paragraph block, falling back to the sentinel.
func (a *Assembler) paragraphOr(text string) blocks.Block {
	if text == "" {
		return blocks.Paragraph{Text: Sentinel}
	}
	return blocks.Paragraph{Text: text}
}

// bulletsOr returns a bullet list, or the sentinel paragraph when the
// field yields no items.
func (a *Assembler) bulletsOr(items []string) blocks.Block {
	if len(items) == 0 {
		return blocks.Paragraph{Text: Sentinel}
	}
	return blocks.BulletList{Items: items}
}

func (a *Assembler) summarySection(rec Record) blocks.Section {
	return blocks.Section{
		Header: blocks.SectionHeader{Title: "1. Resumen ejecutivo"},
		Subsections: []blocks.Subsection{
			{Body: a.paragraphOr(asText(rec["summary"]))},
		},
	}
}

func (a *Assembler) experienceSection(rec Record) blocks.Section {
	exp := rec.object("experience")

	var years, suggestions string
	var companies, roles []string
	quality := -1.0
	if exp != nil {
		years = asText(exp["years"])
		companies = asList(exp["companies"])
		roles = asList(exp["roles"])
		suggestions = asText(exp["suggestions"])
		if q, ok := exp["quality"].(float64); ok {
			quality = clampRange(q * 10)
		}
	} else if t := asText(rec["experience"]); t != "" {
		// Some records carry experience as plain narrative text.
		years = t
	}

	subs := []blocks.Subsection{
		{Title: "Trayectoria", Body: a.paragraphOr(years)},
		{Title: "Empresas", Body: a.bulletsOr(companies)},
		{Title: "Roles desempeñados", Body: a.bulletsOr(roles)},
	}
	if quality >= 0 {
		subs = append(subs, blocks.Subsection{
			Title: "Valoración de la sección",
			Body:  blocks.ProgressBar{Label: "Calidad de la experiencia descrita", Percent: quality},
		})
	}
	subs = append(subs, blocks.Subsection{
		Title: "Sugerencias", Body: a.paragraphOr(suggestions),
	})

	return blocks.Section{
		Header:      blocks.SectionHeader{Title: "2. Experiencia profesional"},
		Subsections: subs,
	}
}

func (a *Assembler) skillsSection(rec Record) blocks.Section {
	return blocks.Section{
		Header: blocks.SectionHeader{Title: "3. Habilidades"},
		Subsections: []blocks.Subsection{
			{Title: "Habilidades detectadas", Body: a.bulletsOr(asList(rec["skills"]))},
			{Title: "Habilidades recomendadas", Body: a.bulletsOr(capItems(asList(rec["missingSkills"]), MaxListItems))},
			{Title: "Sugerencias", Body: a.paragraphOr(asText(rec["skillsSuggestions"]))},
		},
	}
}

func (a *Assembler) profileSection(rec Record) blocks.Section {
	info := rec.object("basicInfo")

	var contact []string
	var suggestions string
	completeness := any(nil)
	if info != nil {
		if v := asText(info["email"]); v != "" {
			contact = append(contact, "Email: "+v)
		}
		if v := asText(info["phone"]); v != "" {
			contact = append(contact, "Teléfono: "+v)
		}
		if v := asText(info["location"]); v != "" {
			contact = append(contact, "Ubicación: "+v)
		}
		if v := asText(info["linkedin"]); v != "" {
			contact = append(contact, "LinkedIn: "+v)
		}
		suggestions = asText(info["suggestions"])
		completeness = info["completeness"]
	}

	return blocks.Section{
		Header: blocks.SectionHeader{Title: "4. Perfil y contacto"},
		Subsections: []blocks.Subsection{
			{Title: "Datos de contacto", Body: a.bulletsOr(contact)},
			{Title: "Completitud del perfil", Body: blocks.ProgressBar{
				Label:   "Información de contacto presente en el CV",
				Percent: asPercent(completeness, DefaultPercent),
			}},
			{Title: "Sugerencias", Body: a.paragraphOr(suggestions)},
		},
	}
}

func (a *Assembler) strengthsSection(rec Record) blocks.Section {
	return blocks.Section{
		Header: blocks.SectionHeader{Title: "5. Fortalezas"},
		Subsections: []blocks.Subsection{
			{Body: a.bulletsOr(capItems(asList(rec["strengths"]), MaxListItems))},
		},
	}
}

func (a *Assembler) recommendationsSection(rec Record) blocks.Section {
	items := asList(rec["recommendations"])
	var body blocks.Block
	if len(items) == 0 {
		body = blocks.Paragraph{Text: Sentinel}
	} else {
		body = blocks.NumberedList{Items: items}
	}
	return blocks.Section{
		Header: blocks.SectionHeader{Title: "6. Recomendaciones"},
		Subsections: []blocks.Subsection{
			{Body: body},
		},
	}
}

// Describe returns a short human-readable summary of the record's usable
// fields, handy in service logs.
func Describe(rec Record) string {
	known := []string{"score", "summary", "experience", "skills", "missingSkills",
		"skillsSuggestions", "basicInfo", "strengths", "recommendations"}
	present := 0
	for _, k := range known {
		if _, ok := rec[k]; ok {
			present++
		}
	}
	return fmt.Sprintf("%d/%d campos presentes", present, len(known))
}
