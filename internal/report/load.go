package report

import (
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/contextsubstrate/collstats/internal/store"
)

// InputNotFoundError reports a report file that does not exist or cannot be read.
type InputNotFoundError struct {
	Path string
	Err  error
}

func (e *InputNotFoundError) Error() string {
	return fmt.Sprintf("input file not found or unreadable: %s: %v", e.Path, e.Err)
}

func (e *InputNotFoundError) Unwrap() error {
	return e.Err
}

// Load reads a report from disk and parses it. The whole file is read before parsing.
func Load(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &InputNotFoundError{Path: path, Err: err}
	}

	s := Parse(string(data))
	s.Source = path
	s.Hash = store.HashContent(data)
	return s, nil
}

// FormatSnapshot produces a human-readable listing of a parsed report.
func FormatSnapshot(s *Snapshot) string {
	var b strings.Builder
	if s.Source != "" {
		fmt.Fprintf(&b, "Report:      %s\n", s.Source)
	}
	if s.Hash != "" {
		fmt.Fprintf(&b, "Fingerprint: %s\n", store.ShortHash(s.Hash, 12))
	}
	fmt.Fprintf(&b, "Generated:   %s\n", s.GeneratedAt)

	ids := s.IDs()
	if len(ids) == 0 {
		b.WriteString("\nNo collections found.\n")
		return b.String()
	}

	fmt.Fprintf(&b, "\nCollections (%d):\n", len(ids))
	for _, id := range ids {
		m := s.Collections[id]
		fmt.Fprintf(&b, "  %s\n", id)
		fmt.Fprintf(&b, "    documents: %s  avg: %s  data: %s  storage: %s\n",
			humanize.Comma(m.DocumentCount),
			humanize.IBytes(uint64(m.AverageDocumentSize)),
			humanize.IBytes(uint64(m.DataSize)),
			humanize.IBytes(uint64(m.StorageSize)))
	}
	return b.String()
}
