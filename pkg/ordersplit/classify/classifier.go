package classify

import (
	"github.com/x-e-n-o-m-a-n/Table-XLSX-Parser/pkg/ordersplit/models"
	"go.uber.org/zap"
)

// RowTransform rewrites a valid row before it joins its group.
type RowTransform func(row models.Row, o Outcome) models.Row

// Options configures a Classifier.
type Options struct {
	// Mode selects identifier interpretation; empty means ModePlain.
	Mode Mode
	// Transform, if set, is applied to every valid row.
	Transform RowTransform
	// Logger receives a debug entry per skipped row. Nil disables logging.
	Logger *zap.Logger
}

// Result is the grouping produced from all sheets fed to a Classifier.
type Result struct {
	// Header is the first header row seen, or nil if every sheet was empty.
	Header *models.Row
	// Groups are in first-appearance order.
	Groups []*models.Group
	// Exported counts rows assigned to a group.
	Exported int
	// Skipped counts rows with an invalid identifier.
	Skipped int
	// SkippedBy breaks Skipped down by reason.
	SkippedBy map[Reason]int
}

// Classifier assigns data rows to groups by the identifier in column G.
// It is single-use and not safe for concurrent use.
type Classifier struct {
	opts   Options
	logger *zap.Logger
	res    Result
	index  map[string]*models.Group
}

// New returns an empty Classifier.
func New(opts Options) *Classifier {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Classifier{
		opts:   opts,
		logger: logger,
		res:    Result{SkippedBy: make(map[Reason]int)},
		index:  make(map[string]*models.Group),
	}
}

// AddSheet classifies every data row of sheet. The first row is the header
// and is never classified.
func (c *Classifier) AddSheet(sheet models.Sheet) {
	header, ok := sheet.Header()
	if !ok {
		return
	}
	if c.res.Header == nil {
		c.res.Header = &header
	}

	for _, row := range sheet.DataRows() {
		o := Identify(row.Cell(models.IdentifierColumn), c.opts.Mode)
		if !o.Valid {
			c.res.Skipped++
			c.res.SkippedBy[o.Reason]++
			c.logger.Debug("Skipping row with invalid identifier",
				zap.String("sheet", sheet.Name),
				zap.Int("row", row.Index),
				zap.Stringer("reason", o.Reason))
			continue
		}

		g, ok := c.index[o.Key]
		if !ok {
			g = &models.Group{Key: o.Key}
			c.index[o.Key] = g
			c.res.Groups = append(c.res.Groups, g)
		}
		if c.opts.Transform != nil {
			row = c.opts.Transform(row, o)
		}
		g.Rows = append(g.Rows, row)
		c.res.Exported++
	}
}

// Result returns the accumulated grouping.
func (c *Classifier) Result() Result {
	return c.res
}
