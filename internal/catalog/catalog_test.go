package catalog

import (
	"strings"
	"testing"

	"github.com/phazegen/hgtscan/internal/domain/analysis"
)

// Test the embedded default catalog loads and keeps definition order
func TestDefault(t *testing.T) {
	cat := Default()

	if cat.Version != 1 {
		t.Errorf("wrong catalog version, got %d", cat.Version)
	}

	wantPlasmids := []string{"IncF", "IncI", "RepA", "ParA"}
	gotPlasmids := cat.RuleNames(analysis.CategoryPlasmid)
	if len(gotPlasmids) != len(wantPlasmids) {
		t.Fatalf("wrong plasmid rule count, got %v", gotPlasmids)
	}
	for i, name := range wantPlasmids {
		if gotPlasmids[i] != name {
			t.Errorf("plasmid rule %d: got %s, want %s", i, gotPlasmids[i], name)
		}
	}

	wantTransposons := []string{"Tn5", "IS3", "IS5", "Tn3"}
	for i, name := range cat.RuleNames(analysis.CategoryTransposon) {
		if name != wantTransposons[i] {
			t.Errorf("transposon rule %d: got %s, want %s", i, name, wantTransposons[i])
		}
	}

	wantResistance := []string{"blaTEM", "blaCTX-M", "tetA", "aac", "mcr"}
	for i, name := range cat.RuleNames(analysis.CategoryResistance) {
		if name != wantResistance[i] {
			t.Errorf("resistance rule %d: got %s, want %s", i, name, wantResistance[i])
		}
	}
}

// Test classification metadata derived during load
func TestDefaultMetadata(t *testing.T) {
	cat := Default()

	plasmids := cat.Rules(analysis.CategoryPlasmid)
	if !plasmids[0].HighRisk {
		t.Error("IncF should be flagged high risk")
	}
	if plasmids[2].HighRisk {
		t.Error("RepA should not be flagged high risk")
	}

	transposons := cat.Rules(analysis.CategoryTransposon)
	if transposons[0].ElementType != "Transposon" {
		t.Errorf("Tn5 element type: got %s", transposons[0].ElementType)
	}
	if transposons[1].ElementType != "Insertion Sequence" {
		t.Errorf("IS3 element type: got %s", transposons[1].ElementType)
	}
	if transposons[1].Family != "IS3 family" {
		t.Errorf("IS3 family: got %s", transposons[1].Family)
	}

	resistance := cat.Rules(analysis.CategoryResistance)
	if resistance[0].Critical {
		t.Error("blaTEM should not be critical")
	}
	if !resistance[4].Critical {
		t.Error("mcr should be critical")
	}
	if resistance[4].DrugClass != "Polymyxins (Colistin)" {
		t.Errorf("mcr drug class: got %s", resistance[4].DrugClass)
	}
}

func TestDefaultConfidenceConstants(t *testing.T) {
	cat := Default()

	cases := []struct {
		cat              analysis.Category
		base, scale, cap float64
	}{
		{analysis.CategoryPlasmid, 0.80, 200, 0.95},
		{analysis.CategoryTransposon, 0.75, 150, 0.92},
		{analysis.CategoryResistance, 0.85, 180, 0.98},
	}
	for _, c := range cases {
		conf := cat.Confidence(c.cat)
		if conf.Base != c.base || conf.Scale != c.scale || conf.Cap != c.cap {
			t.Errorf("%s confidence: got %+v", c.cat, conf)
		}
	}
}

const validYAML = `
version: 1
high_risk_replicons: [IncF]
critical_genes: [mcr]
plasmids:
  confidence: {base: 0.80, scale: 200, cap: 0.95}
  rules:
    - {name: IncF, pattern: "AAA"}
transposons:
  confidence: {base: 0.75, scale: 150, cap: 0.92}
  rules:
    - {name: IS3, pattern: "CAGGTA"}
resistance:
  confidence: {base: 0.85, scale: 180, cap: 0.98}
  rules:
    - {name: mcr, pattern: "MCR"}
`

func TestParseValid(t *testing.T) {
	cat, err := Parse([]byte(validYAML))
	if err != nil {
		t.Fatalf("failed to parse valid catalog: %v", err)
	}
	if len(cat.Rules(analysis.CategoryPlasmid)) != 1 {
		t.Error("expected one plasmid rule")
	}
}

// Loading must fail fast on an inconsistent catalog
func TestParseErrors(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(string) string
		wantErr string
	}{
		{
			name:    "missing version",
			mutate:  func(s string) string { return strings.Replace(s, "version: 1", "version: 0", 1) },
			wantErr: "version",
		},
		{
			name: "duplicate rule name",
			mutate: func(s string) string {
				return strings.Replace(s, `- {name: IncF, pattern: "AAA"}`,
					"- {name: IncF, pattern: \"AAA\"}\n    - {name: IncF, pattern: \"CCC\"}", 1)
			},
			wantErr: "duplicate",
		},
		{
			name: "malformed pattern",
			mutate: func(s string) string {
				return strings.Replace(s, `pattern: "CAGGTA"`, `pattern: "CAG[GTA"`, 1)
			},
			wantErr: "bad pattern",
		},
		{
			name: "empty rule name",
			mutate: func(s string) string {
				return strings.Replace(s, `{name: IS3, pattern: "CAGGTA"}`, `{name: "", pattern: "CAGGTA"}`, 1)
			},
			wantErr: "empty name",
		},
		{
			name: "invalid confidence",
			mutate: func(s string) string {
				return strings.Replace(s, "{base: 0.85, scale: 180, cap: 0.98}", "{base: 0.85, scale: 0, cap: 0.98}", 1)
			},
			wantErr: "confidence",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Parse([]byte(c.mutate(validYAML)))
			if err == nil {
				t.Fatal("expected a parse error")
			}
			if !strings.Contains(err.Error(), c.wantErr) {
				t.Errorf("error %q does not mention %q", err, c.wantErr)
			}
		})
	}
}

// Patterns match case-insensitively; the scanner uppercases input anyway
func TestParseCaseInsensitive(t *testing.T) {
	cat, err := Parse([]byte(validYAML))
	if err != nil {
		t.Fatal(err)
	}
	is3 := cat.Rules(analysis.CategoryTransposon)[0]
	if !is3.Pattern.MatchString("caggta") {
		t.Error("pattern should match lowercase input")
	}
}
