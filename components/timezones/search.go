package timezones

import (
	"sort"
	"strings"

	"github.com/goliatone/go-formschema/pkg/schema"
)

type match struct {
	zone   string
	prefix bool
}

// Search returns up to limit options whose zone or label contains query,
// case-insensitively. Prefix matches sort first, then by zone name. An empty
// query yields nothing unless opts.EmptySearchMode is EmptySearchTop.
func Search(zones []string, query string, limit int, opts Options) []schema.Choice {
	limit = clampLimit(limit, opts)
	if limit == 0 {
		return nil
	}

	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		if opts.EmptySearchMode != EmptySearchTop {
			return nil
		}
		if len(zones) > limit {
			zones = zones[:limit]
		}
		return ToOptions(zones)
	}

	var matches []match
	for _, zone := range zones {
		lowerZone := strings.ToLower(zone)
		lowerLabel := strings.ToLower(Label(zone))
		if !strings.Contains(lowerZone, query) && !strings.Contains(lowerLabel, query) {
			continue
		}
		matches = append(matches, match{
			zone:   zone,
			prefix: strings.HasPrefix(lowerZone, query) || strings.HasPrefix(lowerLabel, query),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].prefix != matches[j].prefix {
			return matches[i].prefix
		}
		return matches[i].zone < matches[j].zone
	})
	if len(matches) > limit {
		matches = matches[:limit]
	}

	found := make([]string, len(matches))
	for i, m := range matches {
		found[i] = m.zone
	}
	return ToOptions(found)
}

func clampLimit(limit int, opts Options) int {
	if limit < 0 {
		return 0
	}
	if limit == 0 {
		limit = opts.DefaultLimit
	}
	if opts.MaxLimit > 0 && limit > opts.MaxLimit {
		return opts.MaxLimit
	}
	return limit
}
