package report

import "sort"

// UnknownDate is the generation date recorded for reports without a "Generated:" line.
const UnknownDate = "Unknown"

// CollectionMetrics holds the storage figures reported for one collection.
type CollectionMetrics struct {
	DocumentCount       int64 `json:"document_count"`
	AverageDocumentSize int64 `json:"average_document_size_bytes"`
	DataSize            int64 `json:"data_size_bytes"`
	StorageSize         int64 `json:"storage_size_bytes"`
}

// Snapshot is the parsed form of one storage report.
type Snapshot struct {
	GeneratedAt string                       `json:"generated_at"`
	Collections map[string]CollectionMetrics `json:"collections"`

	// Source and Hash are set when the snapshot was loaded from disk.
	Source string `json:"source,omitempty"`
	Hash   string `json:"hash,omitempty"`
}

// IDs returns the snapshot's collection identifiers in lexicographic order.
func (s *Snapshot) IDs() []string {
	ids := make([]string, 0, len(s.Collections))
	for id := range s.Collections {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Lookup returns the metrics for a collection, or nil when the report does not list it.
func (s *Snapshot) Lookup(id string) *CollectionMetrics {
	m, ok := s.Collections[id]
	if !ok {
		return nil
	}
	return &m
}
