// File path: internal/extract/reader/excel.go
package reader

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// SheetData is one worksheet read into rows of cell strings.
type SheetData struct {
	Name string
	Rows [][]string
}

// ReadExcel reads every worksheet of a workbook independently, preserving
// workbook order. A workbook is never assumed to have a single sheet.
func ReadExcel(data []byte) ([]SheetData, error) {
	workbook, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer workbook.Close()

	var sheets []SheetData
	for _, name := range workbook.GetSheetList() {
		rows, err := workbook.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("read sheet %q: %w", name, err)
		}
		sheets = append(sheets, SheetData{Name: name, Rows: rows})
	}
	return sheets, nil
}
