// Package ordersplit splits an xlsx workbook into one sheet per order.
package ordersplit

import (
	"fmt"

	"github.com/x-e-n-o-m-a-n/Table-XLSX-Parser/pkg/ordersplit/classify"
	"go.uber.org/zap"
)

// Mode represents how column G is interpreted.
type Mode = classify.Mode

const (
	// ModePlain groups by the whole normalized column G value.
	ModePlain = classify.ModePlain
	// ModeOrderOperation reads column G as "<order>/<operation>", groups by
	// order and writes the order/operation column layout.
	ModeOrderOperation = classify.ModeOrderOperation
)

// Options configures split behavior.
type Options struct {
	// Mode specifies the identifier mode (plain, order-operation).
	Mode Mode
	// Overwrite allows replacing an existing output file.
	Overwrite bool
	// Logger receives progress and per-row diagnostics. If nil, nothing is
	// logged.
	Logger *zap.Logger
}

// DefaultOptions returns default split options.
func DefaultOptions() Options {
	return Options{
		Mode: ModePlain,
	}
}

func (o Options) validate() error {
	if !o.Mode.Valid() {
		return fmt.Errorf("%w: unknown mode %q", ErrInvalidOptions, o.Mode)
	}
	return nil
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}
