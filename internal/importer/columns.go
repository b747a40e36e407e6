package importer

import "strings"

// accentFold maps the accented runes seen in Spanish headers to their plain
// counterparts. The header vocabulary is fixed, so a rune table beats pulling
// in a text-normalization dependency.
var accentFold = map[rune]rune{
	'á': 'a', 'à': 'a', 'ä': 'a', 'â': 'a',
	'é': 'e', 'è': 'e', 'ë': 'e', 'ê': 'e',
	'í': 'i', 'ì': 'i', 'ï': 'i', 'î': 'i',
	'ó': 'o', 'ò': 'o', 'ö': 'o', 'ô': 'o',
	'ú': 'u', 'ù': 'u', 'ü': 'u', 'û': 'u',
	'ñ': 'n', 'ç': 'c',
	'Á': 'a', 'À': 'a', 'Ä': 'a', 'Â': 'a',
	'É': 'e', 'È': 'e', 'Ë': 'e', 'Ê': 'e',
	'Í': 'i', 'Ì': 'i', 'Ï': 'i', 'Î': 'i',
	'Ó': 'o', 'Ò': 'o', 'Ö': 'o', 'Ô': 'o',
	'Ú': 'u', 'Ù': 'u', 'Ü': 'u', 'Û': 'u',
	'Ñ': 'n', 'Ç': 'c',
}

// normalizeHeader lowers the header, folds accents and drops everything that
// is not a letter or digit, so "Número Documento", "numero_documento" and
// "NUMERODOCUMENTO" all collapse to the same key.
func normalizeHeader(header string) string {
	var b strings.Builder
	b.Grow(len(header))
	for _, r := range strings.ToLower(header) {
		if folded, ok := accentFold[r]; ok {
			r = folded
		}
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Columns resolves candidate header spellings against one sheet's actual
// header row. Resolution per candidate set is memoized: header scans run
// once per set, not once per row.
type Columns struct {
	byKey map[string]int
	memo  map[string]int
}

const columnMiss = -1

func NewColumns(headers []string) *Columns {
	byKey := make(map[string]int, len(headers))
	for i, h := range headers {
		key := normalizeHeader(h)
		if key == "" {
			continue
		}
		// first occurrence wins on duplicate headers
		if _, ok := byKey[key]; !ok {
			byKey[key] = i
		}
	}
	return &Columns{
		byKey: byKey,
		memo:  make(map[string]int),
	}
}

// Lookup returns the column index for the first matching candidate, trying
// candidates in the caller's priority order.
func (c *Columns) Lookup(candidates []string) (int, bool) {
	memoKey := strings.Join(candidates, "\x1f")
	if idx, ok := c.memo[memoKey]; ok {
		return idx, idx != columnMiss
	}

	idx := columnMiss
	for _, cand := range candidates {
		if i, ok := c.byKey[normalizeHeader(cand)]; ok {
			idx = i
			break
		}
	}
	c.memo[memoKey] = idx
	return idx, idx != columnMiss
}

// Value resolves the candidates against the row and returns the cleaned cell
// text. An unmatched candidate set or a short row yields "", which callers
// treat as the field being absent.
func (c *Columns) Value(row []string, candidates []string) string {
	idx, ok := c.Lookup(candidates)
	if !ok || idx >= len(row) {
		return ""
	}
	return CleanString(row[idx])
}
