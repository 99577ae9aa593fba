package main

import (
	"reflect"
	"testing"

	"github.com/pivolan/customer_dashboard/domain/models"
)

func TestAnalyzeHeaders(t *testing.T) {
	tests := []struct {
		name        string
		input       []string
		wantHeaders []string
		wantIsData  bool
	}{
		{
			name:        "Customer headers",
			input:       []string{"Customer_Name", "Sales_person", "State"},
			wantHeaders: []string{"customer_name", "sales_person", "state"},
			wantIsData:  false,
		},
		{
			name:        "Headers with special characters",
			input:       []string{"Customer Name!", "Sales person#", "Deal Size ($)"},
			wantHeaders: []string{"customer_name", "sales_person", "deal_size"},
			wantIsData:  false,
		},
		{
			name:        "Accented headers transliterated",
			input:       []string{"Región", "Cliente", "Vendedor"},
			wantHeaders: []string{"region", "cliente", "vendedor"},
			wantIsData:  false,
		},
		{
			name:        "Duplicate headers",
			input:       []string{"Name", "Name", "Name", "State"},
			wantHeaders: []string{"name", "name_1", "name_2", "state"},
			wantIsData:  false,
		},
		{
			name:        "Numeric first row",
			input:       []string{"123", "456.7", "789"},
			wantHeaders: []string{"column_1", "column_2", "column_3"},
			wantIsData:  true,
		},
		{
			name:        "Date first row",
			input:       []string{"2024-01-01", "2024-01-02", "2024-01-03"},
			wantHeaders: []string{"column_1", "column_2", "column_3"},
			wantIsData:  true,
		},
		{
			name:        "Empty first row",
			input:       []string{"", "", ""},
			wantHeaders: []string{"column_1", "column_2", "column_3"},
			wantIsData:  true,
		},
		{
			name:        "Half header-like row counts as data",
			input:       []string{"John", "30", "john@email.com", "123-456-7890"},
			wantHeaders: []string{"column_1", "column_2", "column_3", "column_4"},
			wantIsData:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AnalyzeHeaders(tt.input)

			if got == nil {
				t.Fatal("AnalyzeHeaders returned nil")
			}
			if !reflect.DeepEqual(got.Headers, tt.wantHeaders) {
				t.Errorf("Headers = %v, want %v", got.Headers, tt.wantHeaders)
			}
			if got.FirstRowIsData != tt.wantIsData {
				t.Errorf("FirstRowIsData = %v, want %v", got.FirstRowIsData, tt.wantIsData)
			}
		})
	}
}

func TestAnalyzeHeadersEmptyInput(t *testing.T) {
	if got := AnalyzeHeaders(nil); got != nil {
		t.Errorf("AnalyzeHeaders(nil) = %v, want nil", got)
	}
}

func TestBuildSchemaRoles(t *testing.T) {
	tests := []struct {
		name      string
		input     []string
		wantRoles []models.ColumnRole
	}{
		{
			name:  "Canonical names",
			input: []string{"Customer_Name", "Sales_person", "State", "Deal Size"},
			wantRoles: []models.ColumnRole{
				models.RoleCustomerName,
				models.RoleSalesperson,
				models.RoleRegion,
				models.RolePassthrough,
			},
		},
		{
			name:  "Alias names",
			input: []string{"Client", "Seller", "Province"},
			wantRoles: []models.ColumnRole{
				models.RoleCustomerName,
				models.RoleSalesperson,
				models.RoleRegion,
			},
		},
		{
			name:  "Customer alias beats generic name",
			input: []string{"Name", "Customer", "Sales"},
			wantRoles: []models.ColumnRole{
				models.RolePassthrough,
				models.RoleCustomerName,
				models.RoleSalesperson,
			},
		},
		{
			name:  "Duplicate name claimed once",
			input: []string{"Name", "Name", "Sales_person"},
			wantRoles: []models.ColumnRole{
				models.RoleCustomerName,
				models.RolePassthrough,
				models.RoleSalesperson,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cols, isData := BuildSchema(tt.input)

			if isData {
				t.Fatal("BuildSchema treated headers as data")
			}
			if len(cols) != len(tt.wantRoles) {
				t.Fatalf("got %d columns, want %d", len(cols), len(tt.wantRoles))
			}
			for i, want := range tt.wantRoles {
				if cols[i].Role != want {
					t.Errorf("column %d role = %v, want %v", i, cols[i].Role, want)
				}
			}
		})
	}
}

func TestBuildSchemaKeepsOriginalNames(t *testing.T) {
	cols, _ := BuildSchema([]string{" Customer Name ", "Sales_person"})

	if cols[0].Name != "Customer Name" {
		t.Errorf("Name = %q, want original trimmed header", cols[0].Name)
	}
	if cols[0].Normalized != "customer_name" {
		t.Errorf("Normalized = %q, want customer_name", cols[0].Normalized)
	}
}

func TestBuildSchemaDataRow(t *testing.T) {
	cols, isData := BuildSchema([]string{"100", "200"})

	if !isData {
		t.Fatal("numeric row should be treated as data")
	}
	for i, c := range cols {
		if c.Role != models.RolePassthrough {
			t.Errorf("column %d bound to %v, data rows cannot carry roles", i, c.Role)
		}
	}
	if cols[0].Name != "column_1" || cols[1].Name != "column_2" {
		t.Errorf("generated names = %q, %q", cols[0].Name, cols[1].Name)
	}
}
