package main

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/pivolan/customer_dashboard/domain/models"
)

const exportSheet = "Customers"

// ExportExcel writes rows into a single-sheet xlsx workbook: header row
// with the original column names, then the rows in order. No document
// properties are set, so identical input produces identical bytes.
func ExportExcel(columns []models.Column, rows []models.CustomerRecord) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", exportSheet)

	for i, col := range columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(exportSheet, cell, col.Name); err != nil {
			return nil, err
		}
	}

	widths := columnWidths(columns, rows)
	for rowIdx, r := range rows {
		for colIdx, v := range recordCells(columns, r) {
			if v == nil || v == "" {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(exportSheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	for i := range columns {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(exportSheet, name, name, widths[i]); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportCSV writes rows as UTF-8 csv: header row with the original column
// names, comma delimiter, stdlib quoting.
func ExportCSV(columns []models.Column, rows []models.CustomerRecord) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)

	header := make([]string, len(columns))
	for i, col := range columns {
		header[i] = col.Name
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, r := range rows {
		record := make([]string, len(columns))
		for i, v := range recordCells(columns, r) {
			record[i] = cellString(v)
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// recordCells lays a record back out in schema order. Passthrough cells
// align with passthrough columns positionally.
func recordCells(columns []models.Column, r models.CustomerRecord) []interface{} {
	cells := make([]interface{}, len(columns))
	extraIdx := 0
	for i, col := range columns {
		switch col.Role {
		case models.RoleCustomerName:
			cells[i] = r.Name
		case models.RoleSalesperson:
			cells[i] = r.Salesperson
		case models.RoleRegion:
			cells[i] = r.Region
		default:
			if extraIdx < len(r.Extra) {
				cells[i] = r.Extra[extraIdx].Value
			}
			extraIdx++
		}
	}
	return cells
}

func cellString(v interface{}) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return value
	case int64:
		return strconv.FormatInt(value, 10)
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	default:
		return fmt.Sprint(value)
	}
}

func columnWidths(columns []models.Column, rows []models.CustomerRecord) []float64 {
	widths := make([]float64, len(columns))
	for i, col := range columns {
		widths[i] = float64(len(col.Name))
	}
	for _, r := range rows {
		for i, v := range recordCells(columns, r) {
			if l := float64(len(cellString(v))); l > widths[i] {
				widths[i] = l
			}
		}
	}
	for i, w := range widths {
		w += 2
		if w < 10 {
			w = 10
		}
		if w > 40 {
			w = 40
		}
		widths[i] = w
	}
	return widths
}
