package diff

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/contextsubstrate/collstats/internal/report"
)

// Row is one line of the reconciled output: a collection as seen by one report.
// Metrics is nil when that report does not list the collection.
type Row struct {
	Date       string                    `json:"date"`
	Collection string                    `json:"collection"`
	Metrics    *report.CollectionMetrics `json:"metrics"`
}

// Report is the reconciliation of two snapshots.
type Report struct {
	DateA       string   `json:"date_a"`
	DateB       string   `json:"date_b"`
	SourceA     string   `json:"source_a,omitempty"`
	SourceB     string   `json:"source_b,omitempty"`
	HashA       string   `json:"hash_a,omitempty"`
	HashB       string   `json:"hash_b,omitempty"`
	Collections []string `json:"collections"`
	Rows        []Row    `json:"rows"`
}

// JSON returns the report as JSON bytes.
func (r *Report) JSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// Summary returns the per-input dates and the collection and row totals.
func (r *Report) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Date 1 (%s): %s\n", r.SourceA, r.DateA)
	fmt.Fprintf(&b, "Date 2 (%s): %s\n", r.SourceB, r.DateB)
	fmt.Fprintf(&b, "Total collections: %d\n", len(r.Collections))
	fmt.Fprintf(&b, "Total rows: %d\n", len(r.Rows))
	return b.String()
}
