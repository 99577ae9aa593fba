package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pivolan/customer_dashboard/domain/models"
)

const sampleCSV = `Customer_Name,Sales_person,State,Deal Size
Alice,Bob,Texas,1200
Carol,,Texas,
Dave,Bob,,350.5
`

func TestImportCSV(t *testing.T) {
	d, err := ImportDataset([]byte(sampleCSV), "customers.csv")
	require.NoError(t, err)

	assert.Equal(t, "customers.csv", d.Source)
	require.Len(t, d.Columns, 4)
	assert.Equal(t, models.RoleCustomerName, d.Columns[0].Role)
	assert.Equal(t, models.RoleSalesperson, d.Columns[1].Role)
	assert.Equal(t, models.RoleRegion, d.Columns[2].Role)
	assert.Equal(t, models.RolePassthrough, d.Columns[3].Role)
	assert.Equal(t, "Deal Size", d.Columns[3].Name)
	assert.Equal(t, "deal_size", d.Columns[3].Normalized)

	require.Len(t, d.Rows, 3)
	assert.Equal(t, models.CustomerRecord{
		Row: 1, Name: "Alice", Salesperson: "Bob", Region: "Texas",
		Extra: []models.ExtraField{{Column: "Deal Size", Value: float64(1200)}},
	}, d.Rows[0])
	assert.Equal(t, models.CustomerRecord{
		Row: 2, Name: "Carol", Salesperson: "", Region: "Texas",
		Extra: []models.ExtraField{{Column: "Deal Size", Value: nil}},
	}, d.Rows[1])
	assert.Equal(t, models.CustomerRecord{
		Row: 3, Name: "Dave", Salesperson: "Bob", Region: "",
		Extra: []models.ExtraField{{Column: "Deal Size", Value: 350.5}},
	}, d.Rows[2])
}

func TestImportAliasHeaders(t *testing.T) {
	input := "Client,Seller,Province\nAcme,Zoe,Ontario\n"
	d, err := ImportDataset([]byte(input), "export.csv")
	require.NoError(t, err)

	assert.Equal(t, models.RoleCustomerName, d.Columns[0].Role)
	assert.Equal(t, models.RoleSalesperson, d.Columns[1].Role)
	assert.Equal(t, models.RoleRegion, d.Columns[2].Role)
	require.Len(t, d.Rows, 1)
	assert.Equal(t, "Acme", d.Rows[0].Name)
	assert.Equal(t, "Zoe", d.Rows[0].Salesperson)
	assert.Equal(t, "Ontario", d.Rows[0].Region)
}

func TestImportRaggedRows(t *testing.T) {
	input := "Customer_Name,Sales_person,State\nAlice,Bob\n"
	d, err := ImportDataset([]byte(input), "short.csv")
	require.NoError(t, err)

	require.Len(t, d.Rows, 1)
	assert.Equal(t, "Alice", d.Rows[0].Name)
	assert.Equal(t, "", d.Rows[0].Region)
}

func TestImportMissingRequiredColumns(t *testing.T) {
	input := "Product,Quantity\nWidget,4\n"
	_, err := ImportDataset([]byte(input), "things.csv")

	var formatErr *FormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Contains(t, formatErr.Reason, "customer_name")
	assert.Contains(t, formatErr.Reason, "sales_person")
}

func TestImportEmptyFile(t *testing.T) {
	for _, input := range []string{"", "   \n\t\n"} {
		_, err := ImportDataset([]byte(input), "empty.csv")

		var formatErr *FormatError
		assert.ErrorAs(t, err, &formatErr)
	}
}

func TestImportHeaderOnly(t *testing.T) {
	_, err := ImportDataset([]byte("Customer_Name,Sales_person\n"), "customers.csv")
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestImportHeadlessNumericRows(t *testing.T) {
	_, err := ImportDataset([]byte("100,200.5,300\n101,201.5,301\n"), "numbers.csv")

	var formatErr *FormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Contains(t, formatErr.Reason, "missing required columns")
}

func TestImportExcelRoundTrip(t *testing.T) {
	d, err := ImportDataset([]byte(sampleCSV), "customers.csv")
	require.NoError(t, err)

	xlsx, err := ExportExcel(d.Columns, d.Rows)
	require.NoError(t, err)

	back, err := ImportDataset(xlsx, "customers.xlsx")
	require.NoError(t, err)

	assert.Equal(t, d.Columns, back.Columns)
	assert.Equal(t, d.Rows, back.Rows)
}
