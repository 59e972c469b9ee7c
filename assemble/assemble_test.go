package assemble

import (
	"reflect"
	"testing"

	"github.com/talentika/cvreport/blocks"
)

func TestParseRecord_InvalidJSON(t *testing.T) {
	if _, err := ParseRecord([]byte("{not json")); err == nil {
		t.Error("expected error for malformed JSON")
	}
}

func TestParseRecord_RoundTrip(t *testing.T) {
	rec, err := ParseRecord([]byte(`{"summary":"ok","skills":["Go","SQL"]}`))
	if err != nil {
		t.Fatalf("ParseRecord: %v", err)
	}
	if rec["summary"] != "ok" {
		t.Errorf("summary = %v", rec["summary"])
	}
}

func TestAsList_Shapes(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want []string
	}{
		{"array", []any{"Go", "SQL"}, []string{"Go", "SQL"}},
		{"array with junk", []any{"Go", 42.0, "", "SQL"}, []string{"Go", "SQL"}},
		{"items object", map[string]any{"items": []any{"a", "b"}}, []string{"a", "b"}},
		{"roles object", map[string]any{"roles": []any{"Dev"}, "suggestions": "x"}, []string{"Dev"}},
		{"newline string", "uno\n- dos\n• tres\n", []string{"uno", "dos", "tres"}},
		{"nil", nil, nil},
		{"number", 3.0, nil},
	}
	for _, c := range cases {
		if got := asList(c.in); !reflect.DeepEqual(got, c.want) {
			t.Errorf("%s: asList(%v) = %v, want %v", c.name, c.in, got, c.want)
		}
	}
}

func TestAsPercent(t *testing.T) {
	cases := []struct {
		in   any
		want float64
	}{
		{85.0, 85},
		{140.0, 100},
		{-3.0, 0},
		{"El CV cubre un 85% de los requisitos", 85},
		{"sin datos", DefaultPercent},
		{nil, DefaultPercent},
		{[]any{"x"}, DefaultPercent},
	}
	for _, c := range cases {
		if got := asPercent(c.in, DefaultPercent); got != c.want {
			t.Errorf("asPercent(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestAsScore_ScalesLegacyRange(t *testing.T) {
	cases := []struct {
		in   any
		want float64
	}{
		{7.0, 70},   // legacy 1..10 scale
		{10.0, 100}, // boundary treated as legacy
		{85.0, 85},
		{130.0, 100},
		{"7", 50}, // non-numeric falls back to the default
		{nil, 50},
	}
	for _, c := range cases {
		if got := asScore(c.in, 50); got != c.want {
			t.Errorf("asScore(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestClean_NormalizesToNFC(t *testing.T) {
	// "José" with a decomposed accent must come out composed, so the
	// measured text equals the drawn text.
	decomposed := "Jose\u0301"
	if got := clean(decomposed); got != "José" {
		t.Errorf("clean(%q) = %q, want %q", decomposed, got, "José")
	}
}

func TestAssembler_DefaultSubstitution(t *testing.T) {
	doc := NewAssembler().Build(Record{}, "Ana", "QA")

	exp := doc.Sections[1]
	if exp.Header.Title != "2. Experiencia profesional" {
		t.Fatalf("section 2 title = %q", exp.Header.Title)
	}
	body, ok := exp.Subsections[0].Body.(blocks.Paragraph)
	if !ok {
		t.Fatalf("trayectoria body is %T, want Paragraph", exp.Subsections[0].Body)
	}
	if body.Text != Sentinel {
		t.Errorf("absent experience must yield the sentinel, got %q", body.Text)
	}
}

func TestAssembler_TwoFieldScenario(t *testing.T) {
	rec := Record{
		"summary": "Strong backend profile",
		"skills":  []any{"Go", "SQL"},
	}
	doc := NewAssembler().Build(rec, "Ada Lovelace", "Backend Engineer")

	if doc.Cover.Candidate != "Ada Lovelace" {
		t.Errorf("cover candidate = %q", doc.Cover.Candidate)
	}
	if doc.Cover.Role != "Puesto objetivo: Backend Engineer" {
		t.Errorf("cover role = %q", doc.Cover.Role)
	}

	// Section 1's only subsection must carry the summary verbatim.
	sum, ok := doc.Sections[0].Subsections[0].Body.(blocks.Paragraph)
	if !ok || sum.Text != "Strong backend profile" {
		t.Errorf("summary body = %#v", doc.Sections[0].Subsections[0].Body)
	}

	// Section 3's skills subsection must render exactly the two bullets.
	skills := doc.Sections[2]
	if skills.Header.Title != "3. Habilidades" {
		t.Fatalf("section 3 title = %q", skills.Header.Title)
	}
	list, ok := skills.Subsections[0].Body.(blocks.BulletList)
	if !ok {
		t.Fatalf("skills body is %T, want BulletList", skills.Subsections[0].Body)
	}
	if !reflect.DeepEqual(list.Items, []string{"Go", "SQL"}) {
		t.Errorf("skills items = %v", list.Items)
	}
}

func TestAssembler_CandidateFromBasicInfo(t *testing.T) {
	rec := Record{
		"basicInfo": map[string]any{"name": "Grace Hopper"},
	}
	doc := NewAssembler().Build(rec, "", "")
	if doc.Cover.Candidate != "Grace Hopper" {
		t.Errorf("candidate = %q, want the basicInfo name", doc.Cover.Candidate)
	}

	// An explicit name always wins over the record's.
	doc = NewAssembler().Build(rec, "Ada", "")
	if doc.Cover.Candidate != "Ada" {
		t.Errorf("candidate = %q, want the explicit name", doc.Cover.Candidate)
	}
}

func TestAssembler_StrengthsCap(t *testing.T) {
	rec := Record{
		"strengths": []any{"a", "b", "c", "d", "e", "f"},
	}
	doc := NewAssembler().Build(rec, "", "")

	list, ok := doc.Sections[4].Subsections[0].Body.(blocks.BulletList)
	if !ok {
		t.Fatalf("strengths body is %T", doc.Sections[4].Subsections[0].Body)
	}
	if len(list.Items) != MaxListItems {
		t.Errorf("strengths rendered %d items, want cap %d", len(list.Items), MaxListItems)
	}
}

func TestAssembler_ExperienceObject(t *testing.T) {
	rec := Record{
		"experience": map[string]any{
			"years":       "5 años",
			"companies":   []any{"ACME", "Initech"},
			"roles":       []any{"Backend Developer"},
			"quality":     8.0,
			"suggestions": "Añade logros cuantificables.",
		},
	}
	doc := NewAssembler().Build(rec, "", "")
	subs := doc.Sections[1].Subsections

	if p := subs[0].Body.(blocks.Paragraph); p.Text != "5 años" {
		t.Errorf("years = %q", p.Text)
	}
	if l := subs[1].Body.(blocks.BulletList); len(l.Items) != 2 {
		t.Errorf("companies = %v", l.Items)
	}
	bar, ok := subs[3].Body.(blocks.ProgressBar)
	if !ok {
		t.Fatalf("quality body is %T, want ProgressBar", subs[3].Body)
	}
	if bar.Percent != 80 {
		t.Errorf("quality percent = %v, want 80", bar.Percent)
	}
}

func TestAssembler_CompletenessDefaults(t *testing.T) {
	doc := NewAssembler().Build(Record{}, "", "")
	bar, ok := doc.Sections[3].Subsections[1].Body.(blocks.ProgressBar)
	if !ok {
		t.Fatalf("completeness body is %T", doc.Sections[3].Subsections[1].Body)
	}
	if bar.Percent != DefaultPercent {
		t.Errorf("completeness = %v, want default %v", bar.Percent, DefaultPercent)
	}
}

func TestAssembler_ScoreOnCover(t *testing.T) {
	doc := NewAssembler().Build(Record{"score": 7.0}, "", "")
	if doc.Cover.Gauge.Value != 70 {
		t.Errorf("gauge value = %v, want 70", doc.Cover.Gauge.Value)
	}
}

func TestDescribe(t *testing.T) {
	got := Describe(Record{"summary": "x", "skills": []any{}})
	if got != "2/9 campos presentes" {
		t.Errorf("Describe = %q", got)
	}
}
