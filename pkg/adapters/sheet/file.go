package sheet

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Read loads a table from a .csv or .xlsx file. For workbooks, sheet selects
// the worksheet; empty means the first one.
func Read(path, sheet string) (*Table, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return ReadCSV(f)
	case ".xlsx", ".xlsm":
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return ReadXLSX(f, sheet)
	default:
		return nil, fmt.Errorf("unsupported table format %q", ext)
	}
}

// ReadCSV decodes a CSV stream whose first record is the header row.
func ReadCSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}
	if len(records) == 0 {
		return &Table{}, nil
	}
	return NewTable(records[0], records[1:]), nil
}

// ReadXLSX decodes a workbook stream.
func ReadXLSX(r io.Reader, sheet string) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return &Table{}, nil
	}
	return NewTable(rows[0], rows[1:]), nil
}

// Write stores tables as .csv or .xlsx, by extension. A workbook gets one
// worksheet per table; a CSV file holds exactly one table.
func Write(path string, tables ...*Table) error {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".csv" && len(tables) != 1 {
		return fmt.Errorf("csv holds one table, got %d", len(tables))
	}
	if ext != ".csv" && ext != ".xlsx" {
		return fmt.Errorf("unsupported table format %q", ext)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if ext == ".xlsx" {
		err = WriteXLSX(f, tables...)
	} else {
		err = WriteCSV(f, tables[0])
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}

// WriteCSV encodes a table as CSV.
func WriteCSV(w io.Writer, t *Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Headers); err != nil {
		return err
	}
	if err := cw.WriteAll(t.Rows); err != nil {
		return err
	}
	return cw.Error()
}

// WriteXLSX encodes tables as a workbook, one worksheet each.
func WriteXLSX(w io.Writer, tables ...*Table) error {
	f := excelize.NewFile()
	defer f.Close()

	for i, t := range tables {
		sheet, err := worksheet(f, i, t.Name)
		if err != nil {
			return err
		}
		if err := writeRow(f, sheet, 0, t.Headers); err != nil {
			return err
		}
		for j, row := range t.Rows {
			if err := writeRow(f, sheet, j+1, row); err != nil {
				return err
			}
		}
	}
	_, err := f.WriteTo(w)
	return err
}

func worksheet(f *excelize.File, i int, name string) (string, error) {
	if name == "" {
		name = fmt.Sprintf("Sheet%d", i+1)
	}
	if i == 0 {
		first := f.GetSheetName(0)
		if first == name {
			return name, nil
		}
		return name, f.SetSheetName(first, name)
	}
	_, err := f.NewSheet(name)
	return name, err
}

func writeRow(f *excelize.File, sheet string, i int, row []string) error {
	cell, err := excelize.CoordinatesToCellName(1, i+1)
	if err != nil {
		return err
	}
	values := make([]any, len(row))
	for j, v := range row {
		values[j] = v
	}
	return f.SetSheetRow(sheet, cell, &values)
}
