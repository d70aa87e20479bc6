// Package naming derives legal, unique worksheet names.
package naming

import (
	"strings"
	"unicode"
	"unicode/utf16"

	"github.com/xuri/excelize/v2"
)

const (
	// MaxSheetNameLength is the format limit, counted in UTF-16 units.
	MaxSheetNameLength = excelize.MaxSheetNameLength
	// SuffixReserve is kept free for collision suffixes up to "-999".
	SuffixReserve = 4
	// MaxKeyLength is the longest identifier accepted as a sheet name stem.
	MaxKeyLength = MaxSheetNameLength - SuffixReserve
)

// IllegalChars are the characters a sheet name may not contain.
const IllegalChars = `\/?*[]:`

// Length returns the name length the way the format counts it.
func Length(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}

// Truncate cuts s to at most max UTF-16 units without splitting a rune.
func Truncate(s string, max int) string {
	n := 0
	for i, r := range s {
		w := utf16.RuneLen(r)
		if n+w > max {
			return s[:i]
		}
		n += w
	}
	return s
}

// IllegalRune returns the first rune that may not appear in a sheet name.
func IllegalRune(s string) (rune, bool) {
	for _, r := range s {
		if strings.ContainsRune(IllegalChars, r) || unicode.IsControl(r) {
			return r, true
		}
	}
	return 0, false
}

// QuoteEdged reports whether s starts or ends with an apostrophe, which the
// format rejects.
func QuoteEdged(s string) bool {
	return strings.HasPrefix(s, "'") || strings.HasSuffix(s, "'")
}
