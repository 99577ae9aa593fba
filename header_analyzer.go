// header_analyzer.go
package main

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/mozillazg/go-unidecode"

	"github.com/pivolan/customer_dashboard/domain/models"
)

// Column aliases resolved against normalized header names, in priority
// order. The first unclaimed column matching the earliest alias wins.
var (
	customerAliases    = []string{"customer_name", "customer", "client_name", "client", "name"}
	salespersonAliases = []string{"sales_person", "salesperson", "sales_rep", "seller", "sales"}
	regionAliases      = []string{"state", "region", "province"}
)

var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`),
	regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`),
	regexp.MustCompile(`^\d{2}\.\d{2}\.\d{4}$`),
	regexp.MustCompile(`^\d{4}-\d{2}-\d{2}\s\d{2}:\d{2}:\d{2}$`),
	regexp.MustCompile(`^\d{4}-\d{2}-\d{2}\s\d{2}:\d{2}:\d{2}\.\d+$`),
}

var nonAlphanumeric = regexp.MustCompile("[^a-zA-Z0-9]+")

// AnalyzeHeaders inspects the first row of an upload and decides whether it
// is a header row or already data. Returned headers are normalized and
// deduplicated; when the row is data, synthetic column_N names are generated.
func AnalyzeHeaders(firstRow []string) *models.HeaderAnalysis {
	if len(firstRow) == 0 {
		return nil
	}

	result := &models.HeaderAnalysis{
		Headers:        make([]string, len(firstRow)),
		FirstRowIsData: false,
	}

	headerLikeCount := 0
	for _, field := range firstRow {
		if isLikelyHeader(field) {
			headerLikeCount++
		}
	}

	if float64(headerLikeCount)/float64(len(firstRow)) > 0.5 {
		for i, header := range firstRow {
			result.Headers[i] = NormalizeHeader(header, i)
		}
	} else {
		result.FirstRowIsData = true
		for i := range firstRow {
			result.Headers[i] = generateColumnName(i)
		}
	}

	result.Headers = ValidateHeaders(result.Headers)
	return result
}

// BuildSchema turns the first uploaded row into the column schema. Original
// header text is kept for export; empty or generated headers fall back to
// the synthetic name.
func BuildSchema(firstRow []string) ([]models.Column, bool) {
	analysis := AnalyzeHeaders(firstRow)
	if analysis == nil {
		return nil, false
	}

	cols := make([]models.Column, len(analysis.Headers))
	for i, normalized := range analysis.Headers {
		name := strings.TrimSpace(firstRow[i])
		if analysis.FirstRowIsData || name == "" {
			name = normalized
		}
		cols[i] = models.Column{Name: name, Normalized: normalized, Role: models.RolePassthrough}
	}

	claimed := map[int]bool{}
	for _, bind := range []struct {
		role    models.ColumnRole
		aliases []string
	}{
		{models.RoleCustomerName, customerAliases},
		{models.RoleSalesperson, salespersonAliases},
		{models.RoleRegion, regionAliases},
	} {
		if i := findColumn(cols, bind.aliases, claimed); i >= 0 {
			cols[i].Role = bind.role
			claimed[i] = true
		}
	}

	return cols, analysis.FirstRowIsData
}

func findColumn(cols []models.Column, aliases []string, claimed map[int]bool) int {
	for _, alias := range aliases {
		for i, c := range cols {
			if claimed[i] {
				continue
			}
			if c.Normalized == alias {
				return i
			}
		}
	}
	return -1
}

// isLikelyHeader reports whether the text looks like a column label rather
// than a data value.
func isLikelyHeader(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}

	if _, err := strconv.ParseFloat(text, 64); err == nil {
		return false
	}

	for _, pattern := range datePatterns {
		if pattern.MatchString(text) {
			return false
		}
	}

	letters := 0
	digits := 0
	specials := 0
	for _, r := range text {
		switch {
		case unicode.IsLetter(r):
			letters++
		case unicode.IsDigit(r):
			digits++
		case unicode.IsSpace(r):
		default:
			specials++
		}
	}

	totalChars := letters + digits + specials
	if totalChars == 0 {
		return false
	}

	return letters > 0 && float64(letters)/float64(totalChars) >= 0.3
}

func generateColumnName(index int) string {
	return fmt.Sprintf("column_%d", index+1)
}

// ValidateHeaders suffixes duplicate names so every header is unique.
func ValidateHeaders(headers []string) []string {
	seen := map[string]bool{}
	result := make([]string, len(headers))

	for i, header := range headers {
		name := header
		for counter := 1; seen[name]; counter++ {
			name = fmt.Sprintf("%s_%d", header, counter)
		}
		seen[name] = true
		result[i] = name
	}

	return result
}

// NormalizeHeader maps raw header text to the matching key: transliterated
// to ASCII, non-alphanumerics collapsed to underscores, lowercased. Headers
// that do not survive cleanup get a synthetic column_N name.
func NormalizeHeader(header string, index int) string {
	header = strings.TrimSpace(header)
	if header == "" {
		return generateColumnName(index)
	}

	cleaned := replaceSpecialSymbols(unidecode.Unidecode(header))
	if cleaned == "" || !isLikelyHeader(header) {
		return generateColumnName(index)
	}
	return strings.ToLower(cleaned)
}

func replaceSpecialSymbols(input string) string {
	processed := nonAlphanumeric.ReplaceAllString(input, "_")
	return strings.Trim(processed, "_")
}
