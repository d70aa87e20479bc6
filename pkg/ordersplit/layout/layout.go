// Package layout projects source rows into the order/operation output layout.
//
// Output columns are source C and D, the order number, the operation number,
// then source H through L.
package layout

import "github.com/x-e-n-o-m-a-n/Table-XLSX-Parser/pkg/ordersplit/models"

const (
	// OrderTitle heads the order number column.
	OrderTitle = "Order number"
	// OperationTitle heads the operation number column.
	OperationTitle = "Operation number"
)

var (
	leadColumns  = []int{2, 3}
	trailColumns = []int{7, 8, 9, 10, 11}
)

// Width is the number of columns of a projected row.
var Width = len(leadColumns) + 2 + len(trailColumns)

// OrderOperationHeader projects a source header row.
func OrderOperationHeader(h models.Row) models.Row {
	return project(h, text(OrderTitle), text(OperationTitle))
}

// OrderOperationRow projects a data row whose column G was split into order
// and operation.
func OrderOperationRow(r models.Row, order, operation string) models.Row {
	return project(r, text(order), text(operation))
}

func project(r models.Row, order, operation models.Cell) models.Row {
	cells := make([]models.Cell, 0, Width)
	for _, col := range leadColumns {
		cells = append(cells, r.Cell(col))
	}
	cells = append(cells, order, operation)
	for _, col := range trailColumns {
		cells = append(cells, r.Cell(col))
	}
	return models.Row{Index: r.Index, Cells: cells}
}

func text(s string) models.Cell {
	return models.Cell{Kind: models.CellText, Value: s}
}
