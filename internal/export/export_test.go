package export

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	g "maragu.dev/gomponents"

	"github.com/seenimoa/pageblocks/internal/blocks"
)

func TestRun_DefaultCatalog(t *testing.T) {
	out := t.TempDir()
	cat := blocks.Default()

	e := &Exporter{
		Catalog:     cat,
		OutDir:      out,
		Concurrency: 4,
		Logger:      zaptest.NewLogger(t),
		Assets:      fstest.MapFS{"preview.css": {Data: []byte("body{}")}},
	}
	res, err := e.Run(context.Background())
	require.NoError(t, err)

	// one page per block + index + catalog + stylesheet
	assert.Len(t, res.Files, cat.Len()+3)
	assert.Contains(t, res.Files, "index.html")
	assert.Contains(t, res.Files, "static/preview.css")
	assert.Contains(t, res.Files, "traffic-sources-donut.html")
	assert.IsIncreasing(t, res.Files)

	f, err := os.Open(filepath.Join(out, "traffic-sources-donut.html"))
	require.NoError(t, err)
	defer f.Close()
	doc, err := goquery.NewDocumentFromReader(f)
	require.NoError(t, err)
	assert.Equal(t, 3, doc.Find("path[data-label]").Length())
	assert.Equal(t, "static/preview.css", doc.Find(`link[rel="stylesheet"]`).AttrOr("href", ""))

	index, err := os.ReadFile(filepath.Join(out, "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(index), `href="latest-posts.html"`)
}

func TestRun_CatalogJSON(t *testing.T) {
	out := t.TempDir()
	_, err := (&Exporter{Catalog: blocks.Default(), OutDir: out, Concurrency: 2}).Run(context.Background())
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(out, CatalogFile))
	require.NoError(t, err)

	var entries []CatalogEntry
	require.NoError(t, json.Unmarshal(data, &entries))
	require.Len(t, entries, 17)
	assert.Equal(t, "hero-centered.html", findEntry(t, entries, "hero-centered").File)
	assert.Equal(t, blocks.CategoryDashboard, findEntry(t, entries, "goal-gauge").Category)
}

func findEntry(t *testing.T, entries []CatalogEntry, name string) CatalogEntry {
	t.Helper()
	for _, e := range entries {
		if e.Name == name {
			return e
		}
	}
	t.Fatalf("no entry %q", name)
	return CatalogEntry{}
}

func TestRun_RenderErrorStops(t *testing.T) {
	boom := errors.New("boom")
	cat := blocks.NewCatalog()
	require.NoError(t, cat.Register(blocks.Block{
		Name:   "bad",
		Render: func() (g.Node, error) { return nil, boom },
	}))

	res, err := (&Exporter{Catalog: cat, OutDir: t.TempDir(), Concurrency: 1}).Run(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, res)
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := (&Exporter{Catalog: blocks.Default(), OutDir: t.TempDir(), Concurrency: 1}).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun_NoCatalog(t *testing.T) {
	_, err := (&Exporter{OutDir: t.TempDir()}).Run(context.Background())
	assert.Error(t, err)
}

func TestRun_BadOutDir(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	_, err := (&Exporter{Catalog: blocks.Default(), OutDir: filepath.Join(file, "sub")}).Run(context.Background())
	assert.Error(t, err)
}
