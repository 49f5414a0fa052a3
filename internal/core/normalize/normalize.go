// Package normalize provides the deterministic identifier and name normalizers
// shared by the ingest boundary and the analyzers.
// Every function here is idempotent: applying it to its own output is a no-op,
// so analyzers may re-normalize defensively without changing results.
package normalize

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// significantDigits is how much of a phone number is kept.
// CDR exports prefix numbers inconsistently (0, +90, 90, nothing), so
// comparisons use the last 10 digits only.
const significantDigits = 10

// deviceMinDigits is the minimum raw digit count for a device identifier
// to be trusted. Shorter values are truncated IMEIs or placeholder junk.
const deviceMinDigits = 13

// nationalIDDigits is the length of a syntactically valid national identifier
const nationalIDDigits = 11

// pool of fresh transformer chains for name folding
var chainPool = sync.Pool{
	New: func() any {
		return transform.Chain(
			norm.NFKC,
			cases.Fold(),                       // unicode case folding
			norm.NFD,                           // decompose so marks are separable
			runes.Remove(runes.In(unicode.Mn)), // strip combining marks (diacritics)
			runes.Remove(runes.In(unicode.Cf)), // strip format chars ZWJ ZWNJ FEFF etc
			width.Fold,                         // map fullwidth forms to ASCII
		)
	},
}

// Number normalizes a phone number or counterpart value to its last 10 digits.
// Non-digits are dropped first, so "+90 (532) 123 45 67" and "05321234567"
// normalize to the same key. Fewer than 10 digits are returned as-is (digits only).
func Number(s string) string {
	d := digitsOf(s)
	if len(d) > significantDigits {
		return d[len(d)-significantDigits:]
	}
	return d
}

// DeviceID normalizes an IMEI-like device identifier. The result is the raw
// digit sequence, or "" when fewer than 13 digits survive, since short values
// cannot be trusted to identify a handset.
func DeviceID(s string) string {
	d := digitsOf(s)
	if len(d) < deviceMinDigits {
		return ""
	}
	return d
}

// Name folds a subscriber display name for grouping: NFKC, case fold,
// diacritic strip, width fold, then whitespace collapse and trim.
// "Mehmet  ÖZTÜRK" and "mehmet ozturk" fold to the same key.
func Name(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ToValidUTF8(s, "")

	tr := chainPool.Get().(transform.Transformer)
	ns, _, _ := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)

	return collapseSpaces(ns)
}

// NationalID normalizes a national identifier to its digit sequence
func NationalID(s string) string { return digitsOf(s) }

// ValidNationalID reports whether s is a syntactically valid national
// identifier: exactly 11 digits with a non-zero leading digit.
func ValidNationalID(s string) bool {
	d := digitsOf(s)
	if len(d) != nationalIDDigits {
		return false
	}
	return d[0] != '0'
}

// digitsOf returns only the ASCII digits of s, preserving order
func digitsOf(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// collapseSpaces folds any whitespace run into a single space and trims
func collapseSpaces(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inSpace := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			inSpace = true
			continue
		}
		if inSpace && b.Len() > 0 {
			b.WriteByte(' ')
		}
		inSpace = false
		b.WriteRune(r)
	}
	return b.String()
}
