// Package workbook reads share awaiting report exports and writes the
// generated message workbooks.
package workbook

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// ReadGrid opens an XLSX file and returns its first sheet as raw rows.
// No schema is assumed; the analyzer does its own boundary detection.
func ReadGrid(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	return gridFromFile(f)
}

// ReadGridFromReader is ReadGrid for in-memory uploads.
func ReadGridFromReader(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	return gridFromFile(f)
}

func gridFromFile(f *excelize.File) ([][]string, error) {
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows from %s: %w", sheet, err)
	}

	return rows, nil
}
