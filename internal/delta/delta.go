package delta

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"

	"github.com/contextsubstrate/collstats/internal/diff"
	"github.com/contextsubstrate/collstats/internal/report"
)

type Status string

const (
	StatusAdded     Status = "added"
	StatusRemoved   Status = "removed"
	StatusChanged   Status = "changed"
	StatusUnchanged Status = "unchanged"
)

// Change describes how one collection moved between the two reports.
type Change struct {
	Collection string                    `json:"collection"`
	Status     Status                    `json:"status"`
	Before     *report.CollectionMetrics `json:"before,omitempty"`
	After      *report.CollectionMetrics `json:"after,omitempty"`
}

// Report lists one change per collection in the union of both reports, sorted by collection.
type Report struct {
	DateA   string   `json:"date_a"`
	DateB   string   `json:"date_b"`
	Changes []Change `json:"changes"`
}

// Compare classifies every collection as added, removed, changed or unchanged between a and b.
func Compare(a, b *report.Snapshot) *Report {
	r := &Report{DateA: a.GeneratedAt, DateB: b.GeneratedAt}

	for _, id := range diff.Union(a, b) {
		before, after := a.Lookup(id), b.Lookup(id)
		c := Change{Collection: id, Before: before, After: after}
		switch {
		case before == nil:
			c.Status = StatusAdded
		case after == nil:
			c.Status = StatusRemoved
		case *before != *after:
			c.Status = StatusChanged
		default:
			c.Status = StatusUnchanged
		}
		r.Changes = append(r.Changes, c)
	}

	return r
}

// Filter returns the changes with the given status, in collection order.
func (r *Report) Filter(status Status) []Change {
	var out []Change
	for _, c := range r.Changes {
		if c.Status == status {
			out = append(out, c)
		}
	}
	return out
}

// IsEmpty returns true if no collection was added, removed or changed.
func (r *Report) IsEmpty() bool {
	return len(r.Changes) == len(r.Filter(StatusUnchanged))
}

// Human returns a human-readable growth summary.
func (r *Report) Human() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Growth: %s..%s\n", r.DateA, r.DateB)
	fmt.Fprintf(&b, "───────────────────────────────────\n")

	added := r.Filter(StatusAdded)
	removed := r.Filter(StatusRemoved)
	changed := r.Filter(StatusChanged)
	fmt.Fprintf(&b, "Collections: %d (added %d, removed %d, changed %d, unchanged %d)\n",
		len(r.Changes), len(added), len(removed), len(changed), len(r.Filter(StatusUnchanged)))

	if len(added) > 0 {
		fmt.Fprintf(&b, "\nAdded (%d):\n", len(added))
		tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
		for _, c := range added {
			fmt.Fprintf(tw, "  + %s\t%s docs\t%s storage\n",
				c.Collection, humanize.Comma(c.After.DocumentCount), humanize.IBytes(uint64(c.After.StorageSize)))
		}
		tw.Flush()
	}

	if len(removed) > 0 {
		fmt.Fprintf(&b, "\nRemoved (%d):\n", len(removed))
		tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
		for _, c := range removed {
			fmt.Fprintf(tw, "  - %s\t%s docs\t%s storage\n",
				c.Collection, humanize.Comma(c.Before.DocumentCount), humanize.IBytes(uint64(c.Before.StorageSize)))
		}
		tw.Flush()
	}

	if len(changed) > 0 {
		fmt.Fprintf(&b, "\nChanged (%d):\n", len(changed))
		tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
		for _, c := range changed {
			docs := c.After.DocumentCount - c.Before.DocumentCount
			storage := c.After.StorageSize - c.Before.StorageSize
			fmt.Fprintf(tw, "  ~ %s\tdocs %s → %s %s\tstorage %s → %s %s %s\n",
				c.Collection,
				humanize.Comma(c.Before.DocumentCount), humanize.Comma(c.After.DocumentCount), arrow(docs),
				humanize.IBytes(uint64(c.Before.StorageSize)), humanize.IBytes(uint64(c.After.StorageSize)),
				arrow(storage), signedBytes(storage))
		}
		tw.Flush()
	}

	if r.IsEmpty() {
		fmt.Fprintf(&b, "\nNo changes detected.\n")
	}

	return b.String()
}

func arrow(change int64) string {
	switch {
	case change > 0:
		return color.YellowString("↑")
	case change < 0:
		return color.GreenString("↓")
	default:
		return "→"
	}
}

func signedBytes(n int64) string {
	if n < 0 {
		return "-" + humanize.IBytes(uint64(-n))
	}
	return "+" + humanize.IBytes(uint64(n))
}
