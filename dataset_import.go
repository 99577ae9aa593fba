package main

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/pivolan/customer_dashboard/domain/models"
)

const SEPARATOR = ','

// FormatError reports an upload that is not a usable spreadsheet: broken
// container, unreadable rows or missing required columns.
type FormatError struct {
	Reason string
}

func (e *FormatError) Error() string {
	return "bad file format: " + e.Reason
}

// ErrEmptyInput reports a parseable file with zero data rows.
var ErrEmptyInput = errors.New("no data rows in file")

var xlsxMagic = []byte("PK\x03\x04")

// ImportDataset parses uploaded bytes (xlsx or csv) into a Dataset. The
// file name participates in format detection and is recorded as the source.
func ImportDataset(data []byte, filename string) (models.Dataset, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return models.Dataset{}, &FormatError{Reason: "empty file"}
	}

	var rows [][]string
	var err error
	if isXLSX(data, filename) {
		rows, err = readXLSXRows(data)
	} else {
		rows, err = readCSVRows(data)
	}
	if err != nil {
		return models.Dataset{}, &FormatError{Reason: err.Error()}
	}
	if len(rows) == 0 {
		return models.Dataset{}, &FormatError{Reason: "no rows in file"}
	}

	schema, firstRowIsData := BuildSchema(rows[0])
	if schema == nil {
		return models.Dataset{}, &FormatError{Reason: "cannot read header row"}
	}

	if err := checkRequiredColumns(schema); err != nil {
		return models.Dataset{}, err
	}

	dataRows := rows[1:]
	if firstRowIsData {
		dataRows = rows
	}
	if len(dataRows) == 0 {
		return models.Dataset{}, ErrEmptyInput
	}

	types := inferColumnTypes(dataRows, len(schema))

	records := make([]models.CustomerRecord, 0, len(dataRows))
	for i, row := range dataRows {
		rec := models.CustomerRecord{Row: i + 1}
		for colIdx, col := range schema {
			value := ""
			if colIdx < len(row) {
				value = strings.TrimSpace(row[colIdx])
			}
			switch col.Role {
			case models.RoleCustomerName:
				rec.Name = value
			case models.RoleSalesperson:
				rec.Salesperson = value
			case models.RoleRegion:
				rec.Region = value
			default:
				rec.Extra = append(rec.Extra, models.ExtraField{
					Column: col.Name,
					Value:  convertCell(value, types[colIdx]),
				})
			}
		}
		records = append(records, rec)
	}

	return models.Dataset{Columns: schema, Rows: records, Source: filename}, nil
}

func checkRequiredColumns(schema []models.Column) error {
	missing := []string{}
	if roleIndex(schema, models.RoleCustomerName) < 0 {
		missing = append(missing, "customer_name")
	}
	if roleIndex(schema, models.RoleSalesperson) < 0 {
		missing = append(missing, "sales_person")
	}
	if len(missing) > 0 {
		return &FormatError{Reason: "missing required columns: " + strings.Join(missing, ", ")}
	}
	return nil
}

func roleIndex(schema []models.Column, role models.ColumnRole) int {
	for i, c := range schema {
		if c.Role == role {
			return i
		}
	}
	return -1
}

// isXLSX sniffs the zip magic; by the time ingest runs, archives have been
// unwrapped, so a zip container here is an xlsx workbook unless the name
// insists on csv.
func isXLSX(data []byte, filename string) bool {
	lower := strings.ToLower(filename)
	if bytes.HasPrefix(data, xlsxMagic) {
		return !strings.HasSuffix(lower, ".csv")
	}
	return strings.HasSuffix(lower, ".xlsx")
}

func readXLSXRows(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	return f.GetRows(sheet)
}

func readCSVRows(data []byte) ([][]string, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = SEPARATOR
	r.LazyQuotes = true
	r.FieldsPerRecord = -1
	return r.ReadAll()
}

// Passthrough cell typing: per column, the widest type seen wins.
var typesWeight = []string{"", "Int64", "Float64", "String"}

func SearchStrings(a []string, x string) int {
	for i, s := range a {
		if s == x {
			return i
		}
	}
	return -1
}

func inferColumnTypes(rows [][]string, columns int) []string {
	types := make([]string, columns)
	for u, row := range rows {
		if u >= 50000 {
			break
		}
		for n, value := range row {
			if n >= columns {
				break
			}
			value = strings.TrimSpace(value)
			if value == "" {
				continue
			}
			t := "String"
			if _, err := strconv.ParseInt(value, 10, 64); err == nil {
				t = "Int64"
			} else if _, err := strconv.ParseFloat(value, 64); err == nil {
				t = "Float64"
			}
			if SearchStrings(typesWeight, t) > SearchStrings(typesWeight, types[n]) {
				types[n] = t
			}
		}
	}
	return types
}

func convertCell(value string, columnType string) interface{} {
	if value == "" {
		return nil
	}
	switch columnType {
	case "Int64":
		if v, err := strconv.ParseInt(value, 10, 64); err == nil {
			return v
		}
	case "Float64":
		if v, err := strconv.ParseFloat(value, 64); err == nil {
			return v
		}
	}
	return value
}
