package naming

import (
	"strconv"
	"strings"
	"unicode"
)

// ReservedNames cannot be used as worksheet names.
var ReservedNames = []string{"History"}

// fallbackName is used when a key truncates to nothing.
const fallbackName = "Sheet"

// Allocator hands out unique sheet names for one output workbook. Names are
// compared under Unicode simple case folding, as strings.EqualFold and
// excelize's sheet lookup do. It is not safe for
// concurrent use; create one per split.
type Allocator struct {
	used map[string]struct{}
}

// NewAllocator returns an allocator with the reserved names already taken.
func NewAllocator() *Allocator {
	a := &Allocator{used: make(map[string]struct{})}
	for _, name := range ReservedNames {
		a.used[fold(name)] = struct{}{}
	}
	return a
}

// Allocate returns a unique name for key. The key is truncated to the format
// limit first; on collision "-2", "-3", ... is appended, shortening the stem
// so the whole name still fits.
func (a *Allocator) Allocate(key string) string {
	base := trimEdgeQuotes(Truncate(key, MaxSheetNameLength))
	if base == "" {
		base = fallbackName
	}
	if a.claim(base) {
		return base
	}
	for n := 2; ; n++ {
		suffix := "-" + strconv.Itoa(n)
		stem := trimEdgeQuotes(Truncate(base, MaxSheetNameLength-len(suffix)))
		if name := stem + suffix; a.claim(name) {
			return name
		}
	}
}

// Taken reports whether name is already allocated or reserved.
func (a *Allocator) Taken(name string) bool {
	_, ok := a.used[fold(name)]
	return ok
}

func (a *Allocator) claim(name string) bool {
	k := fold(name)
	if _, ok := a.used[k]; ok {
		return false
	}
	a.used[k] = struct{}{}
	return true
}

// fold maps every rune to the smallest member of its case-folding orbit, so
// fold(a) == fold(b) exactly when strings.EqualFold(a, b).
func fold(s string) string {
	return strings.Map(func(r rune) rune {
		least := r
		for f := unicode.SimpleFold(r); f != r; f = unicode.SimpleFold(f) {
			if f < least {
				least = f
			}
		}
		return least
	}, s)
}

func trimEdgeQuotes(s string) string {
	return strings.Trim(s, "'")
}
