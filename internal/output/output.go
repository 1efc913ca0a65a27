// Package output renders reconciled rows to the files operators consume.
package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/contextsubstrate/collstats/internal/diff"
	"github.com/contextsubstrate/collstats/internal/store"
)

// DefaultPath is where the CSV lands when no output path is given.
const DefaultPath = "collection_stats.csv"

// Header is the first CSV record.
var Header = []string{
	"Date",
	"Collection",
	"Document Count",
	"Average Document Size (bytes)",
	"Data Size (bytes)",
	"Storage Size (bytes)",
}

type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatCSV, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported output format %q (want csv or json)", s)
	}
}

// Record converts a row to CSV fields. Missing metrics become empty cells.
func Record(r diff.Row) []string {
	if r.Metrics == nil {
		return []string{r.Date, r.Collection, "", "", "", ""}
	}
	return []string{
		r.Date,
		r.Collection,
		strconv.FormatInt(r.Metrics.DocumentCount, 10),
		strconv.FormatInt(r.Metrics.AverageDocumentSize, 10),
		strconv.FormatInt(r.Metrics.DataSize, 10),
		strconv.FormatInt(r.Metrics.StorageSize, 10),
	}
}

// WriteCSV writes the header followed by one record per row.
func WriteCSV(w io.Writer, rows []diff.Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write(Record(r)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Render produces the complete file content for a report in the given format.
func Render(format Format, r *diff.Report) ([]byte, error) {
	switch format {
	case FormatJSON:
		data, err := r.JSON()
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case FormatCSV:
		var buf bytes.Buffer
		if err := WriteCSV(&buf, r.Rows); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unsupported output format %q", format)
	}
}

// WriteFile renders the report and replaces path with it in one step, so a failed run
// never leaves a partial file behind.
func WriteFile(path string, format Format, r *diff.Report) error {
	data, err := Render(format, r)
	if err != nil {
		return fmt.Errorf("rendering %s: %w", format, err)
	}
	return store.WriteFileAtomic(path, data, 0644)
}
