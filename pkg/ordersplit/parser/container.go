// Package parser provides xlsx workbook reading.
package parser

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"strings"
)

var (
	// ErrFileNotFound indicates the input file does not exist.
	ErrFileNotFound = errors.New("file not found")
	// ErrInvalidFormat indicates the input file is not an xlsx container.
	ErrInvalidFormat = errors.New("invalid xlsx format")
	// ErrCorruptPart indicates a required part is missing or malformed.
	ErrCorruptPart = errors.New("corrupt workbook part")
	// ErrNoSheets indicates the workbook has no worksheets.
	ErrNoSheets = errors.New("workbook has no worksheets")
)

const (
	workbookPart     = "xl/workbook.xml"
	workbookRelsPart = "xl/_rels/workbook.xml.rels"
)

// SheetPart describes one sheet entry of xl/workbook.xml.
type SheetPart struct {
	// Name is the sheet name.
	Name string
	// Path is the part path inside the container.
	Path string
	// Worksheet is false for chartsheets, dialog sheets and macro sheets.
	Worksheet bool
}

type sheetEntry struct {
	name string
	rID  string
}

type relationship struct {
	relType string
	target  string
}

// InspectContainer opens the xlsx container at xlsxPath, resolves every sheet
// to its part and checks that each worksheet part is well-formed XML. Sheets
// are returned in workbook order.
func InspectContainer(xlsxPath string) ([]SheetPart, error) {
	r, err := zip.OpenReader(xlsxPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, xlsxPath)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	defer r.Close()

	return inspect(&r.Reader)
}

func inspect(r *zip.Reader) ([]SheetPart, error) {
	workbookXML, err := readZipFile(r, workbookPart)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptPart, workbookPart, err)
	}
	if workbookXML == nil {
		return nil, fmt.Errorf("%w: missing %s", ErrInvalidFormat, workbookPart)
	}
	entries, err := parseWorkbookSheets(workbookXML)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptPart, workbookPart, err)
	}

	relsXML, err := readZipFile(r, workbookRelsPart)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptPart, workbookRelsPart, err)
	}
	if relsXML == nil {
		return nil, fmt.Errorf("%w: missing %s", ErrCorruptPart, workbookRelsPart)
	}
	rels, err := parseWorkbookRels(relsXML)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptPart, workbookRelsPart, err)
	}

	parts := make([]SheetPart, 0, len(entries))
	for _, e := range entries {
		rel, ok := rels[e.rID]
		if !ok {
			return nil, fmt.Errorf("%w: sheet %q has no relationship %q", ErrCorruptPart, e.name, e.rID)
		}
		part := SheetPart{
			Name:      e.name,
			Path:      resolveRelativePath(rel.target, "xl"),
			Worksheet: strings.HasSuffix(rel.relType, "/worksheet"),
		}
		if part.Worksheet {
			data, err := readZipFile(r, part.Path)
			if err != nil {
				return nil, fmt.Errorf("%w: %s: %v", ErrCorruptPart, part.Path, err)
			}
			if data == nil {
				return nil, fmt.Errorf("%w: missing %s for sheet %q", ErrCorruptPart, part.Path, e.name)
			}
			if err := checkWellFormed(data); err != nil {
				return nil, fmt.Errorf("%w: %s: %v", ErrCorruptPart, part.Path, err)
			}
		}
		parts = append(parts, part)
	}

	return parts, nil
}

// checkWellFormed walks every token of data. encoding/xml rejects unclosed
// and mismatched elements, so a clean walk means the markup is intact.
func checkWellFormed(data []byte) error {
	decoder := xml.NewDecoder(bytes.NewReader(data))
	root := false
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		if _, ok := token.(xml.StartElement); ok {
			root = true
		}
	}
	if !root {
		return errors.New("no root element")
	}
	return nil
}

// Helper functions

func readZipFile(r *zip.Reader, name string) ([]byte, error) {
	for _, f := range r.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, nil
}

func resolveRelativePath(target, baseDir string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	return path.Join(baseDir, target)
}

func parseWorkbookSheets(data []byte) ([]sheetEntry, error) {
	var result []sheetEntry
	decoder := xml.NewDecoder(bytes.NewReader(data))

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if se, ok := token.(xml.StartElement); ok && se.Name.Local == "sheet" {
			var e sheetEntry
			for _, attr := range se.Attr {
				switch attr.Name.Local {
				case "name":
					e.name = attr.Value
				case "id":
					e.rID = attr.Value
				}
			}
			if e.name == "" || e.rID == "" {
				return nil, fmt.Errorf("sheet element missing name or r:id")
			}
			result = append(result, e)
		}
	}

	return result, nil
}

func parseWorkbookRels(data []byte) (map[string]relationship, error) {
	result := make(map[string]relationship) // rId -> relationship
	decoder := xml.NewDecoder(bytes.NewReader(data))

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if se, ok := token.(xml.StartElement); ok && se.Name.Local == "Relationship" {
			var rID string
			var rel relationship
			for _, attr := range se.Attr {
				switch attr.Name.Local {
				case "Id":
					rID = attr.Value
				case "Type":
					rel.relType = attr.Value
				case "Target":
					rel.target = attr.Value
				}
			}
			if rID != "" {
				result[rID] = rel
			}
		}
	}

	return result, nil
}
