package analyzer

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// đ has no canonical decomposition.
var dReplacer = strings.NewReplacer("đ", "d", "Đ", "d")

// fold lower-cases s and strips diacritics so "Količina" matches "kolicina".
func fold(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ""
	}
	s = dReplacer.Replace(s)
	// Chain keeps state, so each call builds its own.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

var currencyTokens = []string{"km", "kn", "eur", "€", "din", "rsd", "bam", "$"}

const (
	// maxNumberLen bounds the text of a numeric cell after grouping and
	// currency are removed.
	maxNumberLen = 40
	// maxExponent bounds the decimal exponent of a parsed value. Larger
	// magnitudes cannot be amounts and would make rounding scale without
	// limit.
	maxExponent = 18
)

// ParseNumber parses cell text as a decimal. It accepts raw spreadsheet
// values ("1500", "12.5", "1.2E-05"), grouped values in either convention
// ("1.234,56", "1,234.56", "1 234,56") and a leading or trailing currency
// token. A single comma is a decimal separator; a single dot is too.
// Values with an exponent beyond ±18 are rejected.
func ParseNumber(s string) (decimal.Decimal, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || strings.Contains(s, "%") {
		return decimal.Zero, false
	}
	for _, c := range currencyTokens {
		s = strings.TrimSpace(strings.TrimSuffix(s, c))
		s = strings.TrimSpace(strings.TrimPrefix(s, c))
	}
	s = strings.Map(func(r rune) rune {
		if r == ' ' || r == '\u00a0' || r == '\u202f' || r == '\'' {
			return -1
		}
		return r
	}, s)
	if s == "" {
		return decimal.Zero, false
	}

	dots, commas := strings.Count(s, "."), strings.Count(s, ",")
	switch {
	case dots > 0 && commas > 0:
		if strings.LastIndex(s, ",") > strings.LastIndex(s, ".") {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case commas > 1:
		s = strings.ReplaceAll(s, ",", "")
	case commas == 1:
		s = strings.Replace(s, ",", ".", 1)
	case dots > 1:
		s = strings.ReplaceAll(s, ".", "")
	}

	if len(s) > maxNumberLen {
		return decimal.Zero, false
	}
	for _, r := range s {
		if !strings.ContainsRune("0123456789.+-e", r) {
			return decimal.Zero, false
		}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	if exp := d.Exponent(); exp > maxExponent || exp < -maxExponent {
		return decimal.Zero, false
	}
	return d, true
}

// number returns the parsed value of s, or zero when s is not numeric.
func number(s string) decimal.Decimal {
	d, _ := ParseNumber(s)
	return d
}

// ParseOrdinal parses an item number such as "8", "8." or "8)".
func ParseOrdinal(s string) (int, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, ".")
	s = strings.TrimSuffix(s, ")")
	if s == "" || s[0] == '+' || s[0] == '-' {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

var sectionMarkerPattern = regexp.MustCompile(`^(?i:(?:XIII|XII|XI|X|IX|VIII|VII|VI|V|IV|III|II|I)|\pL)[.)]?$`)

// IsSectionMarker reports whether s is a Roman numeral I-XIII or a single
// letter, optionally followed by "." or ")".
func IsSectionMarker(s string) bool {
	return sectionMarkerPattern.MatchString(strings.TrimSpace(s))
}

var subOrdinalPattern = regexp.MustCompile(`^(\d+)(?:[.,\-/]\d+(?:[.,]\d+)*\.?|[A-Za-z][.)]?)$`)

// SubOrdinalParent returns N when s is a sub-item form of N: "N.1", "N,1",
// "Na", "NB", "N-1" or "N/1".
func SubOrdinalParent(s string) (int, bool) {
	m := subOrdinalPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// IsSubOrdinal reports whether s is a sub-item form of parent.
func IsSubOrdinal(s string, parent int) bool {
	n, ok := SubOrdinalParent(s)
	return ok && n == parent
}
