package diff

import (
	"sort"

	"github.com/contextsubstrate/collstats/internal/report"
)

// Diff reconciles two snapshots into a report.
func Diff(a, b *report.Snapshot) *Report {
	return &Report{
		DateA:       a.GeneratedAt,
		DateB:       b.GeneratedAt,
		SourceA:     a.Source,
		SourceB:     b.Source,
		HashA:       a.Hash,
		HashB:       b.Hash,
		Collections: Union(a, b),
		Rows:        Reconcile(a, b),
	}
}

// Union returns every collection identifier present in either snapshot, sorted.
func Union(a, b *report.Snapshot) []string {
	seen := make(map[string]bool, len(a.Collections)+len(b.Collections))
	for id := range a.Collections {
		seen[id] = true
	}
	for id := range b.Collections {
		seen[id] = true
	}

	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Reconcile emits one row per collection in the union for a, then the same again for b.
// A collection missing from a snapshot still gets a row for it, with nil metrics.
func Reconcile(a, b *report.Snapshot) []Row {
	ids := Union(a, b)
	rows := make([]Row, 0, 2*len(ids))
	rows = appendPass(rows, a, ids)
	rows = appendPass(rows, b, ids)
	return rows
}

func appendPass(rows []Row, s *report.Snapshot, ids []string) []Row {
	for _, id := range ids {
		rows = append(rows, Row{
			Date:       s.GeneratedAt,
			Collection: id,
			Metrics:    s.Lookup(id),
		})
	}
	return rows
}
