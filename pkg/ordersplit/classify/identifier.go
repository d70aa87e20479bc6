// Package classify groups data rows by their order identifier.
package classify

import (
	"math"
	"strconv"
	"strings"

	"github.com/x-e-n-o-m-a-n/Table-XLSX-Parser/pkg/ordersplit/models"
	"github.com/x-e-n-o-m-a-n/Table-XLSX-Parser/pkg/ordersplit/naming"
)

// Mode selects how the identifier cell is interpreted.
type Mode string

const (
	// ModePlain uses the whole normalized cell value as the identifier.
	ModePlain Mode = "plain"
	// ModeOrderOperation expects "<order>/<operation>" and groups by order.
	ModeOrderOperation Mode = "order-operation"
)

// Valid reports whether m is a known mode. The empty mode means ModePlain.
func (m Mode) Valid() bool {
	switch m {
	case "", ModePlain, ModeOrderOperation:
		return true
	}
	return false
}

// MaxIdentifierLength bounds a normalized identifier, leaving room for a
// collision suffix within the sheet name limit.
const MaxIdentifierLength = naming.MaxKeyLength

// maxExactInteger is the largest integer a float64 holds exactly.
const maxExactInteger = 1 << 53

// Reason explains why an identifier was rejected.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonBlank
	ReasonIllegalChar
	ReasonEdgeQuote
	ReasonTooLong
	ReasonNotInteger
	ReasonUnsupportedType
	ReasonMalformedPair
)

var reasonNames = map[Reason]string{
	ReasonNone:            "none",
	ReasonBlank:           "blank",
	ReasonIllegalChar:     "illegal character",
	ReasonEdgeQuote:       "leading or trailing apostrophe",
	ReasonTooLong:         "too long",
	ReasonNotInteger:      "number is not a non-negative integer",
	ReasonUnsupportedType: "unsupported cell type",
	ReasonMalformedPair:   "not in <order>/<operation> form",
}

func (r Reason) String() string {
	if s, ok := reasonNames[r]; ok {
		return s
	}
	return "unknown"
}

// Outcome is the per-row classification result: either a valid key or the
// reason the row is skipped.
type Outcome struct {
	// Valid is true when Key can be used as a group key.
	Valid bool
	// Key is the normalized identifier.
	Key string
	// Operation is the operation part in ModeOrderOperation.
	Operation string
	// Reason is set when Valid is false.
	Reason Reason
}

func invalid(r Reason) Outcome {
	return Outcome{Reason: r}
}

// Identify normalizes and validates the identifier cell of a row.
func Identify(cell models.Cell, mode Mode) Outcome {
	text, reason := normalize(cell)
	if reason != ReasonNone {
		return invalid(reason)
	}

	if mode != ModeOrderOperation {
		if r := validate(text); r != ReasonNone {
			return invalid(r)
		}
		return Outcome{Valid: true, Key: text}
	}

	order, operation, ok := splitOrderOperation(text)
	if !ok {
		return invalid(ReasonMalformedPair)
	}
	if r := validate(order); r != ReasonNone {
		return invalid(r)
	}
	return Outcome{Valid: true, Key: order, Operation: operation}
}

// normalize returns the trimmed text of a cell. Numbers must be
// non-negative integers and are rendered in canonical decimal form.
func normalize(cell models.Cell) (string, Reason) {
	switch cell.Kind {
	case models.CellBlank:
		return "", ReasonBlank
	case models.CellText:
		return strings.TrimSpace(cell.Value), ReasonNone
	case models.CellNumber:
		s, ok := canonicalInteger(strings.TrimSpace(cell.Value))
		if !ok {
			return "", ReasonNotInteger
		}
		return s, ReasonNone
	default:
		return "", ReasonUnsupportedType
	}
}

func canonicalInteger(raw string) (string, bool) {
	if u, err := strconv.ParseUint(raw, 10, 64); err == nil {
		return strconv.FormatUint(u, 10), true
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || f < 0 || f >= maxExactInteger || f != math.Trunc(f) {
		return "", false
	}
	return strconv.FormatUint(uint64(f), 10), true
}

func validate(key string) Reason {
	if key == "" {
		return ReasonBlank
	}
	if _, bad := naming.IllegalRune(key); bad {
		return ReasonIllegalChar
	}
	if naming.QuoteEdged(key) {
		return ReasonEdgeQuote
	}
	if naming.Length(key) > MaxIdentifierLength {
		return ReasonTooLong
	}
	return ReasonNone
}

func splitOrderOperation(s string) (order, operation string, ok bool) {
	parts := strings.Split(s, "/")
	if len(parts) != 2 {
		return "", "", false
	}
	order = strings.TrimSpace(parts[0])
	operation = strings.TrimSpace(parts[1])
	if order == "" || operation == "" {
		return "", "", false
	}
	return order, operation, true
}
