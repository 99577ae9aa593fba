package main

import (
	"errors"
	"sort"
	"strings"

	"github.com/pivolan/go_utils"

	"github.com/pivolan/customer_dashboard/domain/models"
)

// ErrNoMatch reports a filter that excluded every row. Non-fatal: callers
// keep the empty view and render empty aggregates.
var ErrNoMatch = errors.New("no rows match the current filter")

// Clean returns the records with both customer name and salesperson
// present, in source order. Pure projection, the dataset stays untouched.
func Clean(d models.Dataset) []models.CustomerRecord {
	clean := make([]models.CustomerRecord, 0, len(d.Rows))
	for _, r := range d.Rows {
		if r.Name != "" && r.Salesperson != "" {
			clean = append(clean, r)
		}
	}
	return clean
}

// DistinctSalespersons lists salespersons in first-seen order.
func DistinctSalespersons(rows []models.CustomerRecord) []string {
	return distinctValues(rows, func(r models.CustomerRecord) string { return r.Salesperson })
}

// DistinctRegions lists non-empty regions in first-seen order.
func DistinctRegions(rows []models.CustomerRecord) []string {
	return distinctValues(rows, func(r models.CustomerRecord) string { return r.Region })
}

func distinctValues(rows []models.CustomerRecord, value func(models.CustomerRecord) string) []string {
	seen := map[string]bool{}
	values := []string{}
	for _, r := range rows {
		v := value(r)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		values = append(values, v)
	}
	return values
}

// DefaultCriteria selects every salesperson and region present, which makes
// Filter the identity. An explicitly empty salesperson set means "nothing",
// never "all".
func DefaultCriteria(clean []models.CustomerRecord) models.FilterCriteria {
	return models.FilterCriteria{
		Salespersons: DistinctSalespersons(clean),
		Regions:      DistinctRegions(clean),
	}
}

// Filter narrows clean rows to criteria: the salesperson must be selected,
// the region must be selected when the row has one and any regions are
// chosen, and the customer name must contain the query (case-insensitive).
// Rows without a region pass the region clause, so selecting every region
// stays a no-op. A zero-row result from a non-empty input additionally
// reports ErrNoMatch.
func Filter(clean []models.CustomerRecord, criteria models.FilterCriteria) ([]models.CustomerRecord, error) {
	query := strings.ToLower(strings.TrimSpace(criteria.NameQuery))
	view := make([]models.CustomerRecord, 0, len(clean))
	for _, r := range clean {
		if !go_utils.InArray(r.Salesperson, criteria.Salespersons) {
			continue
		}
		if r.Region != "" && len(criteria.Regions) > 0 && !go_utils.InArray(r.Region, criteria.Regions) {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(r.Name), query) {
			continue
		}
		view = append(view, r)
	}
	if len(view) == 0 && len(clean) > 0 {
		return view, ErrNoMatch
	}
	return view, nil
}

// SalespersonCounts groups the view by salesperson and sorts by count
// descending; ties keep first-encountered order.
func SalespersonCounts(view []models.CustomerRecord) []models.CountEntry {
	return countBy(view, func(r models.CustomerRecord) string { return r.Salesperson })
}

// RegionCounts groups the view by region the same way, truncated to the
// ten biggest groups. Rows without a region are not grouped.
func RegionCounts(view []models.CustomerRecord) []models.CountEntry {
	counts := countBy(view, func(r models.CustomerRecord) string { return r.Region })
	if len(counts) > 10 {
		counts = counts[:10]
	}
	return counts
}

func countBy(view []models.CustomerRecord, label func(models.CustomerRecord) string) []models.CountEntry {
	index := map[string]int{}
	entries := []models.CountEntry{}
	for _, r := range view {
		l := label(r)
		if l == "" {
			continue
		}
		if i, ok := index[l]; ok {
			entries[i].Count++
			continue
		}
		index[l] = len(entries)
		entries = append(entries, models.CountEntry{Label: l, Count: 1})
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Count > entries[j].Count })
	return entries
}

// RankCounts picks one end of a counts ordering. Top N is the first N
// entries as sorted. Least N re-sorts ascending by count, ties again by
// first-encountered order, and takes the first N.
func RankCounts(counts []models.CountEntry, spec models.RankSpec) []models.CountEntry {
	n := spec.N
	if n <= 0 {
		n = 5
	}

	ranked := make([]models.CountEntry, len(counts))
	copy(ranked, counts)
	if spec.Direction == models.RankLeast {
		sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Count < ranked[j].Count })
	}
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// Unassigned returns the dataset rows with no salesperson, in source order,
// regardless of customer name validity.
func Unassigned(d models.Dataset) []models.CustomerRecord {
	out := []models.CustomerRecord{}
	for _, r := range d.Rows {
		if r.Salesperson == "" {
			out = append(out, r)
		}
	}
	return out
}

// GeoSummary counts clean rows per region and attaches fixed coordinates.
// Regions missing from the table keep the (0, 0) sentinel and still appear.
func GeoSummary(clean []models.CustomerRecord, regions *RegionTable) []models.GeoEntry {
	counts := countBy(clean, func(r models.CustomerRecord) string { return r.Region })
	out := make([]models.GeoEntry, 0, len(counts))
	for _, c := range counts {
		coords := regions.Lookup(c.Label)
		out = append(out, models.GeoEntry{
			Region: c.Label,
			Count:  c.Count,
			Lat:    coords.Lat,
			Lon:    coords.Lon,
		})
	}
	return out
}

// Summarize computes the KPI scalars: distinct customers and salespersons
// over the clean rows, unassigned count and most frequent region over the
// whole dataset.
func Summarize(d models.Dataset, clean []models.CustomerRecord) models.Summary {
	s := models.Summary{
		TotalSalespersons: len(DistinctSalespersons(clean)),
		Unassigned:        len(Unassigned(d)),
	}
	s.TotalCustomers = len(distinctValues(clean, func(r models.CustomerRecord) string { return r.Name }))
	if regions := countBy(d.Rows, func(r models.CustomerRecord) string { return r.Region }); len(regions) > 0 {
		s.TopRegion = regions[0].Label
	}
	return s
}

// DashboardData bundles every derived view for one (dataset, criteria)
// pair. All fields are pure functions of the inputs; recomputing with the
// same inputs yields identical content.
type DashboardData struct {
	Criteria          models.FilterCriteria    `json:"criteria"`
	Clean             []models.CustomerRecord  `json:"-"`
	View              []models.CustomerRecord  `json:"records"`
	SalespersonCounts []models.CountEntry      `json:"salesperson_counts"`
	RegionCounts      []models.CountEntry      `json:"region_counts"`
	TopFive           []models.CountEntry      `json:"top_five"`
	Unassigned        []models.CustomerRecord  `json:"unassigned"`
	Geo               []models.GeoEntry        `json:"geo"`
	Summary           models.Summary           `json:"summary"`
	NoMatch           bool                     `json:"no_match"`
}

// ComputeDashboard runs the whole pipeline. A nil criteria means the
// default (select everything). The geo summary and the unassigned list
// ignore the filter and describe the full dataset.
func ComputeDashboard(d models.Dataset, criteria *models.FilterCriteria, regions *RegionTable) DashboardData {
	clean := Clean(d)

	effective := models.FilterCriteria{}
	if criteria == nil {
		effective = DefaultCriteria(clean)
	} else {
		effective = *criteria
	}

	view, err := Filter(clean, effective)
	data := DashboardData{
		Criteria:          effective,
		Clean:             clean,
		View:              view,
		SalespersonCounts: SalespersonCounts(view),
		RegionCounts:      RegionCounts(view),
		Unassigned:        Unassigned(d),
		Geo:               GeoSummary(clean, regions),
		Summary:           Summarize(d, clean),
		NoMatch:           errors.Is(err, ErrNoMatch),
	}
	data.TopFive = RankCounts(data.SalespersonCounts, models.RankSpec{Direction: models.RankTop, N: 5})
	return data
}
