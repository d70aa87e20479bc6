package parser

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func saveWorkbook(t *testing.T, f *excelize.File, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())
	return path
}

// replaceZipEntry copies src to a new file with the named entry's content
// swapped for data.
func replaceZipEntry(t *testing.T, src, name string, data []byte) string {
	t.Helper()
	r, err := zip.OpenReader(src)
	require.NoError(t, err)
	defer r.Close()

	dst := filepath.Join(t.TempDir(), "patched.xlsx")
	out, err := os.Create(dst)
	require.NoError(t, err)
	zw := zip.NewWriter(out)
	for _, zf := range r.File {
		w, err := zw.Create(zf.Name)
		require.NoError(t, err)
		if zf.Name == name {
			_, err = w.Write(data)
			require.NoError(t, err)
			continue
		}
		rc, err := zf.Open()
		require.NoError(t, err)
		_, err = io.Copy(w, rc)
		rc.Close()
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, out.Close())
	return dst
}

func TestReadWorkbookSheetOrder(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetName("Sheet1", "Data"))
	_, err := f.NewSheet("More")
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow("Data", "A1", &[]interface{}{"Item", "Qty"}))
	require.NoError(t, f.SetSheetRow("Data", "A2", &[]interface{}{"A", 1}))
	require.NoError(t, f.SetSheetRow("More", "A1", &[]interface{}{"Item"}))
	path := saveWorkbook(t, f, "orders.xlsx")

	wb, err := ReadWorkbook(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "orders.xlsx", wb.Name)
	require.Len(t, wb.Sheets, 2)
	assert.Equal(t, "Data", wb.Sheets[0].Name)
	assert.Equal(t, "More", wb.Sheets[1].Name)
	assert.Len(t, wb.Sheets[0].Rows, 2)
	assert.Equal(t, 1, wb.DataRowCount())
}

func TestReadWorkbookSkipsChartsheet(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"k", "v"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{"a", 1}))
	require.NoError(t, f.AddChartSheet("Chart1", &excelize.Chart{
		Type: excelize.Col,
		Series: []excelize.ChartSeries{{
			Name:       "Sheet1!$B$1",
			Categories: "Sheet1!$A$2:$A$2",
			Values:     "Sheet1!$B$2:$B$2",
		}},
	}))
	path := saveWorkbook(t, f, "chart.xlsx")

	wb, err := ReadWorkbook(path, nil)
	require.NoError(t, err)
	require.Len(t, wb.Sheets, 1)
	assert.Equal(t, "Sheet1", wb.Sheets[0].Name)
}

func TestReadWorkbookMissingFile(t *testing.T) {
	_, err := ReadWorkbook(filepath.Join(t.TempDir(), "nope.xlsx"), nil)
	require.ErrorIs(t, err, ErrFileNotFound)
}

func TestReadWorkbookNotAContainer(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plain.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("order,qty\n1001,2\n"), 0o644))

	_, err := ReadWorkbook(path, nil)
	require.ErrorIs(t, err, ErrInvalidFormat)
}

func TestReadWorkbookMalformedSheet(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetCellValue("Sheet1", "A1", "x"))
	path := saveWorkbook(t, f, "good.xlsx")

	broken := replaceZipEntry(t, path, "xl/worksheets/sheet1.xml",
		[]byte(`<worksheet><sheetData><row r="1"><c r="A1"><v>1</v></c></sheetData></worksheet>`))

	_, err := ReadWorkbook(broken, nil)
	require.ErrorIs(t, err, ErrCorruptPart)
}

func TestReadWorkbookMissingWorkbookRels(t *testing.T) {
	f := excelize.NewFile()
	path := saveWorkbook(t, f, "good.xlsx")

	broken := replaceZipEntry(t, path, "xl/_rels/workbook.xml.rels", []byte(`<Relationships>`))

	_, err := ReadWorkbook(broken, nil)
	require.ErrorIs(t, err, ErrCorruptPart)
}

func TestResolveRelativePath(t *testing.T) {
	tests := []struct {
		target   string
		expected string
	}{
		{"worksheets/sheet1.xml", "xl/worksheets/sheet1.xml"},
		{"/xl/worksheets/sheet2.xml", "xl/worksheets/sheet2.xml"},
		{"../xl/worksheets/sheet3.xml", "xl/worksheets/sheet3.xml"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, resolveRelativePath(tt.target, "xl"), tt.target)
	}
}

func TestCheckWellFormed(t *testing.T) {
	assert.NoError(t, checkWellFormed([]byte(`<a><b/></a>`)))
	assert.Error(t, checkWellFormed([]byte(`<a><b></a>`)))
	assert.Error(t, checkWellFormed([]byte(``)))
}
