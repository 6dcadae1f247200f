package helpers

import (
	"sort"

	"github.com/doeshing/texturepro/internal/domain"
)

// ValueStatistic counts how often a catalog value appears in history.
type ValueStatistic struct {
	Value string
	Count int
}

// CalculateTopValues returns the most frequent values for key, ties broken
// alphabetically. A limit of 0 or less returns every value.
func CalculateTopValues(log domain.HistoryLog, key domain.ParameterKey, limit int) []ValueStatistic {
	frequency := make(map[string]int)
	for _, value := range log.Values(key) {
		if value != "" {
			frequency[value]++
		}
	}

	stats := make([]ValueStatistic, 0, len(frequency))
	for value, count := range frequency {
		stats = append(stats, ValueStatistic{Value: value, Count: count})
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Count == stats[j].Count {
			return stats[i].Value < stats[j].Value
		}
		return stats[i].Count > stats[j].Count
	})

	if limit > 0 && len(stats) > limit {
		return stats[:limit]
	}
	return stats
}

// UnusedValues lists catalog values that do not appear in log, in catalog order.
func UnusedValues(log domain.HistoryLog, catalogs domain.Catalogs, key domain.ParameterKey) []string {
	seen := make(map[string]struct{}, len(log))
	for _, value := range log.Values(key) {
		seen[value] = struct{}{}
	}
	var unused []string
	for _, option := range catalogs.For(key) {
		if _, ok := seen[option]; !ok {
			unused = append(unused, option)
		}
	}
	return unused
}
