package analyzer

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Keywords is the locale table the column mapper and row classifier match
// against. Entries are matched as substrings of diacritic-folded,
// lower-cased cell text.
type Keywords struct {
	// Ordinal marks the row-number column ("R.br.", "Poz.").
	Ordinal []string `yaml:"ordinal"`
	// Description marks the work description column.
	Description []string `yaml:"description"`
	// Details marks a secondary description or remarks column.
	Details []string `yaml:"details"`
	// Unit marks the unit-of-measure column.
	Unit []string `yaml:"unit"`
	// Quantity marks the quantity column.
	Quantity []string `yaml:"quantity"`
	// Price marks either price column.
	Price []string `yaml:"price"`
	// PerUnit qualifies a price column as the unit price.
	PerUnit []string `yaml:"per_unit"`
	// Total qualifies a price column as the line total.
	Total []string `yaml:"total"`
	// Section marks grouping headings.
	Section []string `yaml:"section"`
	// Footer marks summation, recapitulation and signature rows.
	Footer []string `yaml:"footer"`
}

// DefaultKeywords returns the table for Bosnian/Croatian/Serbian (latin)
// bills, with common English headings.
func DefaultKeywords() Keywords {
	return Keywords{
		Ordinal:     []string{"r.br", "r. br", "rbr", "r.b", "rb.", "redni br", "red. br", "br.", "poz.", "br. poz", "item no", "no.", "#"},
		Description: []string{"opis", "naziv", "vrsta rad", "description"},
		Details:     []string{"napomena", "detalj", "specifikacij", "remark", "note"},
		Unit:        []string{"jed. mj", "jed.mj", "jed. mer", "jed.mer", "jedinica mjere", "jedinica mere", "j.mj", "j. mj", "j.m", "jm", "mjera", "mera", "unit"},
		Quantity:    []string{"kolicina", "kol.", "qty", "quantity"},
		Price:       []string{"cijena", "cena", "price", "iznos", "vrijednost", "vrednost", "amount", "ukupno", "total"},
		PerUnit:     []string{"jedinic", "jed", "j.c", "j. c", "po jed", "unit", "per"},
		Total:       []string{"ukupn", "iznos", "svega", "vrijednost", "vrednost", "total", "amount"},
		Section:     []string{"radovi", "poglavlje", "grupa rad", "glava", "works", "chapter", "section"},
		Footer:      []string{"sveukupno", "ukupno", "svega", "rekapitulacija", "pdv", "za platiti", "suma", "total", "potpis", "ovjera"},
	}
}

// LoadKeywords reads a YAML keyword table. Lists missing from the file
// keep their default entries.
func LoadKeywords(path string) (Keywords, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Keywords{}, fmt.Errorf("read keywords: %w", err)
	}
	return ParseKeywords(data)
}

// ParseKeywords decodes a YAML keyword table over the defaults.
func ParseKeywords(data []byte) (Keywords, error) {
	var kw Keywords
	if err := yaml.Unmarshal(data, &kw); err != nil {
		return Keywords{}, fmt.Errorf("parse keywords: %w", err)
	}
	return kw.withDefaults(DefaultKeywords()), nil
}

func (k Keywords) withDefaults(d Keywords) Keywords {
	pick := func(v, def []string) []string {
		if v == nil {
			return def
		}
		return v
	}
	return Keywords{
		Ordinal:     pick(k.Ordinal, d.Ordinal),
		Description: pick(k.Description, d.Description),
		Details:     pick(k.Details, d.Details),
		Unit:        pick(k.Unit, d.Unit),
		Quantity:    pick(k.Quantity, d.Quantity),
		Price:       pick(k.Price, d.Price),
		PerUnit:     pick(k.PerUnit, d.PerUnit),
		Total:       pick(k.Total, d.Total),
		Section:     pick(k.Section, d.Section),
		Footer:      pick(k.Footer, d.Footer),
	}
}

// matcher holds a folded copy of a keyword table.
type matcher struct {
	ordinal     []string
	description []string
	details     []string
	unit        []string
	quantity    []string
	price       []string
	perUnit     []string
	total       []string
	section     []string
	footer      []string
	// header groups the column caption lists; one cell counts at most once
	// per group, so overlapping entries like "r.br" and "br." score once.
	header [][]string
}

func newMatcher(k Keywords) *matcher {
	m := &matcher{
		ordinal:     foldAll(k.Ordinal),
		description: foldAll(k.Description),
		details:     foldAll(k.Details),
		unit:        foldAll(k.Unit),
		quantity:    foldAll(k.Quantity),
		price:       foldAll(k.Price),
		perUnit:     foldAll(k.PerUnit),
		total:       foldAll(k.Total),
		section:     foldAll(k.Section),
		footer:      foldAll(k.Footer),
	}
	m.header = [][]string{m.ordinal, m.description, m.unit, m.quantity, m.price}
	return m
}

func foldAll(words []string) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		if f := fold(w); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// containsAny reports whether folded text contains any of words.
func containsAny(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}

// firstIndex returns the earliest position of any of words in text, or -1.
func firstIndex(text string, words []string) int {
	best := -1
	for _, w := range words {
		if i := strings.Index(text, w); i >= 0 && (best < 0 || i < best) {
			best = i
		}
	}
	return best
}
