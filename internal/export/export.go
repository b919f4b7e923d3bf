// Package export writes the block catalog to a directory of static HTML.
package export

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/seenimoa/pageblocks/internal/blocks"
)

// CatalogFile is the machine-readable listing written next to the pages.
const CatalogFile = "catalog.json"

// CatalogEntry is one row of catalog.json.
type CatalogEntry struct {
	Name        string `json:"name"`
	Title       string `json:"title"`
	Category    string `json:"category"`
	Description string `json:"description"`
	File        string `json:"file"`
}

// Exporter renders every block of a catalog into OutDir.
type Exporter struct {
	Catalog     *blocks.Catalog
	OutDir      string
	Concurrency int
	Logger      *zap.Logger
	// Assets, when set, is copied under OutDir/static.
	Assets fs.FS
}

// Result summarizes a finished export.
type Result struct {
	Files    []string      `json:"files"`
	Duration time.Duration `json:"duration"`
}

// Run renders all pages concurrently. The first failure cancels the
// remaining work and is returned.
func (e *Exporter) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	logger := e.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if e.Catalog == nil {
		return nil, fmt.Errorf("export: no catalog")
	}
	if err := os.MkdirAll(e.OutDir, 0o755); err != nil {
		return nil, fmt.Errorf("export: create %s: %w", e.OutDir, err)
	}

	var (
		mu    sync.Mutex
		files []string
	)
	record := func(name string) {
		mu.Lock()
		files = append(files, name)
		mu.Unlock()
	}

	list := e.Catalog.List()
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, e.Concurrency))

	for _, b := range list {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			file := pageFile(b.Name)
			var buf bytes.Buffer
			if err := e.Catalog.RenderPage(&buf, []string{b.Name}, pageConfig(b.Title)); err != nil {
				return fmt.Errorf("export %s: %w", b.Name, err)
			}
			if err := e.write(file, buf.Bytes()); err != nil {
				return err
			}
			logger.Debug("block exported", zap.String("block", b.Name), zap.String("file", file))
			record(file)
			return nil
		})
	}

	g.Go(func() error {
		var buf bytes.Buffer
		if err := e.Catalog.RenderIndex(&buf, pageConfig("Block catalog"), pageFile); err != nil {
			return fmt.Errorf("export index: %w", err)
		}
		if err := e.write("index.html", buf.Bytes()); err != nil {
			return err
		}
		record("index.html")
		return nil
	})

	g.Go(func() error {
		data, err := json.MarshalIndent(catalogEntries(list), "", "  ")
		if err != nil {
			return fmt.Errorf("export catalog: %w", err)
		}
		if err := e.write(CatalogFile, data); err != nil {
			return err
		}
		record(CatalogFile)
		return nil
	})

	if e.Assets != nil {
		g.Go(func() error {
			copied, err := e.copyAssets()
			for _, f := range copied {
				record(f)
			}
			return err
		})
	}

	if err := g.Wait(); err != nil {
		logger.Error("export failed", zap.String("out_dir", e.OutDir), zap.Error(err))
		return nil, err
	}

	sort.Strings(files)
	res := &Result{Files: files, Duration: time.Since(start)}
	logger.Info("export complete",
		zap.String("out_dir", e.OutDir),
		zap.Int("files", len(files)),
		zap.Duration("duration", res.Duration))
	return res, nil
}

func (e *Exporter) write(name string, data []byte) error {
	path := filepath.Join(e.OutDir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("export: write %s: %w", name, err)
	}
	return nil
}

func (e *Exporter) copyAssets() ([]string, error) {
	var copied []string
	err := fs.WalkDir(e.Assets, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := fs.ReadFile(e.Assets, path)
		if err != nil {
			return fmt.Errorf("export: read asset %s: %w", path, err)
		}
		name := "static/" + path
		if err := e.write(name, data); err != nil {
			return err
		}
		copied = append(copied, name)
		return nil
	})
	return copied, err
}

func pageFile(name string) string {
	return name + ".html"
}

func pageConfig(title string) blocks.PageConfig {
	return blocks.PageConfig{Title: title, Stylesheet: "static/preview.css"}
}

func catalogEntries(list []blocks.Block) []CatalogEntry {
	out := make([]CatalogEntry, len(list))
	for i, b := range list {
		out[i] = CatalogEntry{
			Name:        b.Name,
			Title:       b.Title,
			Category:    b.Category,
			Description: b.Description,
			File:        pageFile(b.Name),
		}
	}
	return out
}
