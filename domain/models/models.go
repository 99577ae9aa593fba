package models

// ColumnRole marks what a source column holds.
type ColumnRole string

const (
	RoleCustomerName ColumnRole = "customer_name"
	RoleSalesperson  ColumnRole = "salesperson"
	RoleRegion       ColumnRole = "region"
	RolePassthrough  ColumnRole = "passthrough"
)

// Column is one source column: the header as uploaded plus the normalized
// name used for matching and export.
type Column struct {
	Name       string     `json:"name"` // original header text
	Normalized string     `json:"normalized"`
	Role       ColumnRole `json:"role"`
}

// ExtraField is one passthrough cell. Value is string, int64, float64 or nil.
type ExtraField struct {
	Column string      `json:"column"`
	Value  interface{} `json:"value"`
}

// CustomerRecord is one uploaded row. Row is the 1-based data row number in
// the source; identity is positional, customer names are not unique.
// Name, Salesperson and Region are "" when the cell was empty or null.
type CustomerRecord struct {
	Row         int          `json:"row"`
	Name        string       `json:"customer_name"`
	Salesperson string       `json:"salesperson"`
	Region      string       `json:"region"`
	Extra       []ExtraField `json:"extra,omitempty"`
}

// Dataset is one uploaded table: schema in source column order plus rows in
// source row order. Immutable after load, derived views copy and never
// mutate.
type Dataset struct {
	Columns []Column         `json:"columns"`
	Rows    []CustomerRecord `json:"rows"`
	Source  string           `json:"source"`
}

// HasRegion reports whether the upload carried a region column.
func (d Dataset) HasRegion() bool {
	for _, c := range d.Columns {
		if c.Role == RoleRegion {
			return true
		}
	}
	return false
}

// FilterCriteria narrows a clean dataset. Salespersons and Regions behave as
// sets: an empty Salespersons set selects no rows, an empty Regions set
// disables region filtering. NameQuery is a case-insensitive substring.
type FilterCriteria struct {
	Salespersons []string `json:"salespersons"`
	Regions      []string `json:"regions"`
	NameQuery    string   `json:"name_query"`
}

// CountEntry is one group of a counts aggregate.
type CountEntry struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// GeoEntry is one region of the map summary. Regions missing from the
// coordinate table keep the (0, 0) sentinel.
type GeoEntry struct {
	Region string  `json:"region"`
	Count  int     `json:"count"`
	Lat    float64 `json:"lat"`
	Lon    float64 `json:"lon"`
}

// Coordinates is a fixed map point for a region.
type Coordinates struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lon float64 `json:"lon" yaml:"lon"`
}

// Summary is the KPI row: distinct customers and salespersons over the clean
// rows, unassigned count and the most frequent region over all rows.
type Summary struct {
	TotalCustomers    int    `json:"total_customers"`
	TotalSalespersons int    `json:"total_salespersons"`
	Unassigned        int    `json:"unassigned"`
	TopRegion         string `json:"top_region"`
}

// RankDirection selects which end of the counts ordering to return.
type RankDirection string

const (
	RankTop   RankDirection = "top"
	RankLeast RankDirection = "least"
)

// RankSpec is a parsed "top 10" / "least 5" request.
type RankSpec struct {
	Direction RankDirection `json:"direction"`
	N         int           `json:"n"`
}

// HeaderAnalysis is the outcome of inspecting the first uploaded row.
type HeaderAnalysis struct {
	Headers        []string // final header names, deduplicated
	FirstRowIsData bool     // first row held data, names were generated
}
