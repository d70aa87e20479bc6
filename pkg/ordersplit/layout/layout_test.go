package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/x-e-n-o-m-a-n/Table-XLSX-Parser/pkg/ordersplit/models"
)

func letters(n int) models.Row {
	cells := make([]models.Cell, n)
	for i := range cells {
		cells[i] = models.Cell{Kind: models.CellText, Value: string(rune('A' + i))}
	}
	return models.Row{Index: 9, Cells: cells}
}

func values(r models.Row) []string {
	out := make([]string, len(r.Cells))
	for i, c := range r.Cells {
		out[i] = c.Value
	}
	return out
}

func TestOrderOperationRow(t *testing.T) {
	got := OrderOperationRow(letters(14), "1001", "20")
	assert.Equal(t, 9, got.Index)
	assert.Equal(t, []string{"C", "D", "1001", "20", "H", "I", "J", "K", "L"}, values(got))
	assert.Len(t, got.Cells, Width)
}

func TestOrderOperationHeader(t *testing.T) {
	got := OrderOperationHeader(letters(12))
	assert.Equal(t, []string{"C", "D", OrderTitle, OperationTitle, "H", "I", "J", "K", "L"}, values(got))
}

func TestOrderOperationRowShortSource(t *testing.T) {
	got := OrderOperationRow(letters(8), "1", "2")
	assert.Equal(t, []string{"C", "D", "1", "2", "H", "", "", "", ""}, values(got))
	assert.Equal(t, models.CellBlank, got.Cells[5].Kind)
}
