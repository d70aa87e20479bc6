package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/x-e-n-o-m-a-n/Table-XLSX-Parser/pkg/ordersplit/models"
)

func sheet(rows ...[]string) models.Sheet {
	s := models.Sheet{Name: "Sheet1"}
	for i, values := range rows {
		r := models.Row{Index: i + 1}
		for _, v := range values {
			kind := models.CellText
			if v == "" {
				kind = models.CellBlank
			}
			r.Cells = append(r.Cells, models.Cell{Kind: kind, Value: v})
		}
		s.Rows = append(s.Rows, r)
	}
	return s
}

func TestToJSON(t *testing.T) {
	summary := &models.SplitSummary{
		Status:             models.StatusSuccess,
		OutputPath:         "/tmp/out.xlsx",
		SheetsCreated:      2,
		RowsExported:       3,
		SkippedInvalidRows: 1,
	}
	data, err := ToJSON(summary, false)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"status":"success","output_path":"/tmp/out.xlsx","sheets_created":2,"rows_exported":3,"skipped_invalid_rows":1}`,
		string(data))

	pretty, err := ToJSON(summary, true)
	require.NoError(t, err)
	assert.Contains(t, string(pretty), "\n  \"status\"")
}

func TestWriteSummary(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSummary(&buf, &models.SplitSummary{Status: "success", OutputPath: "o.xlsx", SheetsCreated: 1}))
	assert.Equal(t,
		"Status: success\nOutput file: o.xlsx\nSheets created: 1\nRows exported: 0\nRows skipped (invalid G): 0\n",
		buf.String())
}

func TestWriteCSV(t *testing.T) {
	s := sheet(
		[]string{"h1", "h2", "h3"},
		[]string{"a", "b,c", "d"},
		[]string{"e", `say "hi"`},
	)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, s, DefaultExportOptions()))
	assert.Equal(t, "a,\"b,c\",d\r\ne,\"say \"\"hi\"\"\",\r\n", buf.String())
}

func TestWriteCSVColumns(t *testing.T) {
	s := sheet(
		[]string{"h1", "h2", "h3"},
		[]string{"a", "b", "c"},
	)

	var keep bytes.Buffer
	require.NoError(t, WriteCSV(&keep, s, ExportOptions{Columns: []int{1, 3}, Keep: true}))
	assert.Equal(t, "h1,h3\r\na,c\r\n", keep.String())

	var drop bytes.Buffer
	require.NoError(t, WriteCSV(&drop, s, ExportOptions{Columns: []int{0, 2}, SkipHeader: true}))
	assert.Equal(t, "a,c\r\n", drop.String())
}

func TestWriteXML(t *testing.T) {
	s := sheet(
		[]string{"h1", "h2"},
		[]string{"a<b", ""},
	)

	var buf bytes.Buffer
	require.NoError(t, WriteXML(&buf, s, DefaultExportOptions()))
	assert.Equal(t, "<workbook><row><cell>a&lt;b</cell><cell></cell></row></workbook>", buf.String())
}

func TestExportEmptySheet(t *testing.T) {
	var buf bytes.Buffer
	assert.ErrorIs(t, WriteCSV(&buf, models.Sheet{}, DefaultExportOptions()), ErrEmptySheet)
	assert.ErrorIs(t, WriteXML(&buf, models.Sheet{}, DefaultExportOptions()), ErrEmptySheet)
}
