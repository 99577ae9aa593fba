// rank_spec.go
package main

import (
	"regexp"
	"strconv"

	"github.com/pivolan/customer_dashboard/domain/models"
)

const (
	defaultRankN = 5
	maxRankN     = 50
)

var rankPattern = regexp.MustCompile(`(?i)\b(top|least)[\s_]*(\d+)?`)

// HasRankRequest reports whether free-form text mentions a top/least
// ranking at all. Used to route plain chat messages.
func HasRankRequest(text string) bool {
	return rankPattern.MatchString(text)
}

// ParseRankSpec reads a "top 10" / "least 5" style request out of free-form
// text. Missing or broken input falls back to top 5; N is clamped to
// [1, 50].
func ParseRankSpec(text string) models.RankSpec {
	spec := models.RankSpec{Direction: models.RankTop, N: defaultRankN}

	m := rankPattern.FindStringSubmatch(text)
	if m == nil {
		return spec
	}
	if len(m[1]) > 0 && (m[1][0] == 'l' || m[1][0] == 'L') {
		spec.Direction = models.RankLeast
	}
	if m[2] != "" {
		if n, err := strconv.Atoi(m[2]); err == nil {
			spec.N = n
		}
	}

	if spec.N < 1 {
		spec.N = 1
	}
	if spec.N > maxRankN {
		spec.N = maxRankN
	}
	return spec
}
