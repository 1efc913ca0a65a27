package integration_test

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contextsubstrate/collstats/internal/delta"
	"github.com/contextsubstrate/collstats/internal/diff"
	"github.com/contextsubstrate/collstats/internal/output"
	"github.com/contextsubstrate/collstats/internal/report"
)

type collection struct {
	ns                        string
	count, avg, data, storage string
}

// renderReport mimics the cluster statistics page closely enough to exercise the parser:
// summary sections, a collections section with index tables, and a footer.
func renderReport(generated string, colls []collection) string {
	var b strings.Builder
	b.WriteString(`<!DOCTYPE html>
<html lang="en">
<head><title>Cluster Stats</title></head>
<body>
  <div class="container">
    <h1>MongoDB Cluster Statistics</h1>
`)
	if generated != "" {
		fmt.Fprintf(&b, "    <div class=\"timestamp\">Generated: %s | Keyhole Version: v1.3.0</div>\n", generated)
	}
	b.WriteString(`    <div class="section">
      <h2>Cluster Summary</h2>
      <table><tr><td>Host</td><td>localhost:27017</td></tr></table>
    </div>
    <div class="section">
      <h2>Collections Details</h2>
`)
	for _, c := range colls {
		fmt.Fprintf(&b, `        <h3>%s</h3>
        <table>
          <tr><th>Metric</th><th>Value</th></tr>
          <tr><td>Number of Documents</td><td>%s</td></tr>
          <tr><td>Average Document Size</td><td>%s</td></tr>
          <tr><td>Data Size</td><td>%s</td></tr>
          <tr><td>Indexes Size</td><td>16.0 KB</td></tr>
          <tr><td>Storage Size</td><td>%s</td></tr>
          <tr><td>Data File Fragmentation</td><td>3.2%%</td></tr>
        </table>
        <h4>Indexes Usage</h4>
        <table>
          <tr><th>#</th><th>key</th><th>size</th><th>host</th><th>ops</th><th>since</th></tr>
          <tr><td>1</td><td>{ _id: 1 }</td><td>16.0 KB</td><td>localhost</td><td>42</td><td>2024-01-01</td></tr>
        </table>
`, c.ns, c.count, c.avg, c.data, c.storage)
	}
	b.WriteString(`    </div>
    <div class="section"><h2>Build Information</h2></div>
  </div>
</body>
</html>
`)
	return b.String()
}

// TestEndToEnd exercises the full pipeline: load → reconcile → write CSV → growth summary.
func TestEndToEnd(t *testing.T) {
	dir := t.TempDir()

	beforePath := filepath.Join(dir, "before-stats.html")
	afterPath := filepath.Join(dir, "after-stats.html")
	require.NoError(t, os.WriteFile(beforePath, []byte(renderReport("2024-03-01 09:00:00", []collection{
		{"shop.orders", "1,200,000", "1.2 KB", "1.4 GB", "512.0 MB"},
		{"shop.users", "48,213", "812 B", "37.3 MB", "12.0 MB"},
		{"shop.sessions", "0", "0 B", "0 B", "4.0 KB"},
	})), 0644))
	require.NoError(t, os.WriteFile(afterPath, []byte(renderReport("2024-04-01 09:00:00", []collection{
		{"shop.orders", "1,450,000", "1.2 KB", "1.7 GB", "640.0 MB"},
		{"shop.users", "48,213", "812 B", "37.3 MB", "12.0 MB"},
		{"shop.carts", "1,024", "2.0 KB", "2.0 MB", "1.0 MB"},
	})), 0644))

	// === 1. Load ===
	a, err := report.Load(beforePath)
	require.NoError(t, err)
	b, err := report.Load(afterPath)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01 09:00:00", a.GeneratedAt)
	assert.Len(t, a.Collections, 3)
	assert.Len(t, b.Collections, 3)
	assert.NotEqual(t, a.Hash, b.Hash)
	t.Log("load: OK")

	// === 2. Reconcile ===
	r := diff.Diff(a, b)
	assert.Equal(t, []string{"shop.carts", "shop.orders", "shop.sessions", "shop.users"}, r.Collections)
	require.Len(t, r.Rows, 8)
	t.Log("reconcile: OK")

	// === 3. Write ===
	csvPath := filepath.Join(dir, "collection_stats.csv")
	require.NoError(t, output.WriteFile(csvPath, output.FormatCSV, r))
	data, err := os.ReadFile(csvPath)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 9)
	assert.Equal(t, "Date,Collection,Document Count,Average Document Size (bytes),Data Size (bytes),Storage Size (bytes)", lines[0])
	assert.Equal(t, "2024-03-01 09:00:00,shop.carts,,,,", lines[1])
	assert.Equal(t, "2024-03-01 09:00:00,shop.orders,1200000,1228,1503238553,536870912", lines[2])
	assert.Equal(t, "2024-04-01 09:00:00,shop.carts,1024,2048,2097152,1048576", lines[5])
	assert.Equal(t, "2024-04-01 09:00:00,shop.sessions,,,,", lines[7])
	t.Log("write: OK")

	// Running the pipeline again yields the same bytes.
	var again bytes.Buffer
	require.NoError(t, output.WriteCSV(&again, diff.Diff(a, b).Rows))
	assert.Equal(t, string(data), again.String())

	// === 4. Growth summary ===
	g := delta.Compare(a, b)
	assert.Len(t, g.Filter(delta.StatusAdded), 1)
	assert.Len(t, g.Filter(delta.StatusRemoved), 1)
	assert.Len(t, g.Filter(delta.StatusChanged), 1)
	assert.Len(t, g.Filter(delta.StatusUnchanged), 1)
	t.Log("growth: OK")
}

func TestEndToEndMissingTimestampAndMalformedBlock(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "partial.html")

	content := renderReport("", []collection{{"app.ok", "1", "1 B", "1 B", "4.0 KB"}}) +
		"<h3>app.truncated</h3><table><tr><td>Number of Documents</td><td>5</td></tr></table>"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	s, err := report.Load(path)
	require.NoError(t, err)
	assert.Equal(t, report.UnknownDate, s.GeneratedAt)
	assert.Contains(t, s.Collections, "app.ok")
	assert.NotContains(t, s.Collections, "app.truncated")

	r := diff.Diff(s, s)
	assert.Len(t, r.Rows, 2)
	assert.Equal(t, report.UnknownDate, r.Rows[0].Date)
}
