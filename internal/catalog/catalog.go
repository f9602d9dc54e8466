// Package catalog holds the versioned detection rule set: one named,
// regexp-based rule per mobile element signature, grouped per category,
// plus the reference sets used to classify replicons and genes. The
// catalog is loaded once at startup and read-only afterwards.
package catalog

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/phazegen/hgtscan/internal/domain/analysis"
)

// Confidence holds the per-category constants for the match-length
// confidence formula min(base + length/scale, cap).
type Confidence struct {
	Base  float64 `yaml:"base"`
	Scale float64 `yaml:"scale"`
	Cap   float64 `yaml:"cap"`
}

// Rule is one compiled detection rule with its classification metadata.
type Rule struct {
	Name    string
	Expr    string
	Pattern *regexp.Regexp

	HighRisk    bool   // plasmid: replicon in the high-risk set
	ElementType string // transposon: Insertion Sequence | Transposon
	Family      string // transposon family
	DrugClass   string // resistance drug class
	Critical    bool   // resistance: gene in the critical set
}

// Catalog is the immutable rule set shared by all analyses.
type Catalog struct {
	Version           int
	HighRiskReplicons []string
	CriticalGenes     []string

	rules map[analysis.Category][]Rule
	conf  map[analysis.Category]Confidence
}

// yaml wire shape
type fileRule struct {
	Name      string `yaml:"name"`
	Pattern   string `yaml:"pattern"`
	Family    string `yaml:"family"`
	DrugClass string `yaml:"drug_class"`
}

type fileCategory struct {
	Confidence Confidence `yaml:"confidence"`
	Rules      []fileRule `yaml:"rules"`
}

type fileCatalog struct {
	Version           int          `yaml:"version"`
	HighRiskReplicons []string     `yaml:"high_risk_replicons"`
	CriticalGenes     []string     `yaml:"critical_genes"`
	Plasmids          fileCategory `yaml:"plasmids"`
	Transposons       fileCategory `yaml:"transposons"`
	Resistance        fileCategory `yaml:"resistance"`
}

// Load reads and compiles a catalog file. Any malformed pattern, duplicate
// rule name or unusable confidence constant is a hard error: the service
// must not come up with an inconsistent catalog.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse compiles a catalog from raw YAML.
func Parse(data []byte) (*Catalog, error) {
	var fc fileCatalog
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("catalog yaml: %w", err)
	}
	if fc.Version <= 0 {
		return nil, fmt.Errorf("catalog: missing or invalid version")
	}

	c := &Catalog{
		Version:           fc.Version,
		HighRiskReplicons: fc.HighRiskReplicons,
		CriticalGenes:     fc.CriticalGenes,
		rules:             make(map[analysis.Category][]Rule),
		conf:              make(map[analysis.Category]Confidence),
	}

	highRisk := toSet(fc.HighRiskReplicons)
	critical := toSet(fc.CriticalGenes)

	load := func(cat analysis.Category, f fileCategory) error {
		if f.Confidence.Base <= 0 || f.Confidence.Scale <= 0 || f.Confidence.Cap < f.Confidence.Base {
			return fmt.Errorf("catalog %s: invalid confidence constants %+v", cat, f.Confidence)
		}
		seen := make(map[string]bool, len(f.Rules))
		rules := make([]Rule, 0, len(f.Rules))
		for _, fr := range f.Rules {
			if fr.Name == "" {
				return fmt.Errorf("catalog %s: rule with empty name", cat)
			}
			if seen[fr.Name] {
				return fmt.Errorf("catalog %s: duplicate rule name %q", cat, fr.Name)
			}
			seen[fr.Name] = true

			re, err := regexp.Compile("(?i)" + fr.Pattern)
			if err != nil {
				return fmt.Errorf("catalog %s/%s: bad pattern: %w", cat, fr.Name, err)
			}

			r := Rule{Name: fr.Name, Expr: fr.Pattern, Pattern: re}
			switch cat {
			case analysis.CategoryPlasmid:
				r.HighRisk = highRisk[fr.Name]
			case analysis.CategoryTransposon:
				r.Family = fr.Family
				if r.Family == "" {
					r.Family = "Unknown family"
				}
				if strings.HasPrefix(fr.Name, "IS") {
					r.ElementType = "Insertion Sequence"
				} else {
					r.ElementType = "Transposon"
				}
			case analysis.CategoryResistance:
				r.DrugClass = fr.DrugClass
				if r.DrugClass == "" {
					r.DrugClass = "Multiple classes"
				}
				r.Critical = critical[fr.Name]
			}
			rules = append(rules, r)
		}
		c.rules[cat] = rules
		c.conf[cat] = f.Confidence
		return nil
	}

	if err := load(analysis.CategoryPlasmid, fc.Plasmids); err != nil {
		return nil, err
	}
	if err := load(analysis.CategoryTransposon, fc.Transposons); err != nil {
		return nil, err
	}
	if err := load(analysis.CategoryResistance, fc.Resistance); err != nil {
		return nil, err
	}
	return c, nil
}

// Categories returns the categories in fixed report order.
func (c *Catalog) Categories() []analysis.Category {
	return analysis.Categories
}

// Rules returns the rules of a category in definition order.
func (c *Catalog) Rules(cat analysis.Category) []Rule {
	return c.rules[cat]
}

// RuleNames returns the rule names of a category in definition order.
func (c *Catalog) RuleNames(cat analysis.Category) []string {
	rules := c.rules[cat]
	names := make([]string, len(rules))
	for i, r := range rules {
		names[i] = r.Name
	}
	return names
}

// Confidence returns the confidence constants of a category.
func (c *Catalog) Confidence(cat analysis.Category) Confidence {
	return c.conf[cat]
}

func toSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set
}
