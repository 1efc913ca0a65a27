package report

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	generatedRe = regexp.MustCompile(`Generated:\s*(\d{4}-\d{2}-\d{2}\s+\d{2}:\d{2}:\d{2})`)

	headingRe = regexp.MustCompile(`<h3[^>]*>([^<]+)</h3>`)

	// The four rows must appear in this order; other rows and markup may sit between them.
	statsTableRe = regexp.MustCompile(`(?s)<table[^>]*>.*?` +
		metricRow("Number of Documents") + `.*?` +
		metricRow("Average Document Size") + `.*?` +
		metricRow("Data Size") + `.*?` +
		metricRow("Storage Size"))

	sizeRe = regexp.MustCompile(`^([\d.]+)\s*([A-Z]+)?`)
)

func metricRow(label string) string {
	return `<tr>\s*<td>` + regexp.QuoteMeta(label) + `</td>\s*<td>([^<]*)</td>\s*</tr>`
}

var sizeMultipliers = map[string]float64{
	"B":  1,
	"KB": 1 << 10,
	"MB": 1 << 20,
	"GB": 1 << 30,
	"TB": 1 << 40,
	"PB": 1 << 50,
}

// Parse extracts the generation date and per-collection metrics from report text.
func Parse(text string) *Snapshot {
	return &Snapshot{
		GeneratedAt: ExtractGeneratedAt(text),
		Collections: ExtractCollections(text),
	}
}

// ExtractGeneratedAt returns the first "Generated: YYYY-MM-DD HH:MM:SS" timestamp in text,
// or UnknownDate when there is none.
func ExtractGeneratedAt(text string) string {
	m := generatedRe.FindStringSubmatch(text)
	if m == nil {
		return UnknownDate
	}
	return m[1]
}

// ExtractCollections scans text for collection headings followed by a statistics table.
// A heading's block ends where the next heading starts, so a block that lacks one of the
// four metric rows is skipped instead of borrowing rows from its neighbour.
func ExtractCollections(text string) map[string]CollectionMetrics {
	collections := make(map[string]CollectionMetrics)

	headings := headingRe.FindAllStringSubmatchIndex(text, -1)
	for i, h := range headings {
		end := len(text)
		if i+1 < len(headings) {
			end = headings[i+1][0]
		}
		block := text[h[1]:end]

		m := statsTableRe.FindStringSubmatch(block)
		if m == nil {
			continue
		}

		ns := strings.TrimSpace(text[h[2]:h[3]])
		collections[ns] = CollectionMetrics{
			DocumentCount:       ParseCount(m[1]),
			AverageDocumentSize: ParseSize(m[2]),
			DataSize:            ParseSize(m[3]),
			StorageSize:         ParseSize(m[4]),
		}
	}

	return collections
}

// ParseSize converts a size such as "1.5 GB" or "512KB" to bytes using 1024-based units.
// A bare number is taken as bytes. Fractional bytes are truncated. Empty, "N/A" and
// unparseable tokens yield 0.
func ParseSize(token string) int64 {
	if token == "" || token == "N/A" {
		return 0
	}

	m := sizeRe.FindStringSubmatch(strings.ToUpper(strings.TrimSpace(token)))
	if m == nil {
		return 0
	}

	value, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0
	}

	multiplier := 1.0
	if m[2] != "" {
		if mult, ok := sizeMultipliers[m[2]]; ok {
			multiplier = mult
		}
	}

	bytes := math.Trunc(value * multiplier)
	if bytes >= math.MaxInt64 {
		return 0
	}
	return int64(bytes)
}

// ParseCount parses a document count such as "12,345". Empty, negative and unparseable
// tokens yield 0.
func ParseCount(token string) int64 {
	s := strings.ReplaceAll(strings.TrimSpace(token), ",", "")
	if s == "" {
		return 0
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
