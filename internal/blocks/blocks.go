// Package blocks holds the catalog of prebuilt page blocks. Each block is a
// gomponents tree rendered from static sample data; chart blocks embed SVG
// produced by the chart package.
package blocks

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"

	g "maragu.dev/gomponents"
)

// Block categories.
const (
	CategoryMarketing = "marketing"
	CategoryEcommerce = "ecommerce"
	CategoryDashboard = "dashboard"
	CategoryPortfolio = "portfolio"
)

var categoryOrder = map[string]int{
	CategoryMarketing: 0,
	CategoryEcommerce: 1,
	CategoryDashboard: 2,
	CategoryPortfolio: 3,
}

// ErrDuplicateBlock is returned when a block name is registered twice.
var ErrDuplicateBlock = errors.New("blocks: duplicate block name")

// BlockNotFoundError is returned by Get for unknown names.
type BlockNotFoundError struct {
	Name string
}

func (e *BlockNotFoundError) Error() string {
	return fmt.Sprintf("blocks: no block named %q", e.Name)
}

// Block is one renderable page section.
type Block struct {
	Name        string                  `json:"name"`
	Title       string                  `json:"title"`
	Category    string                  `json:"category"`
	Description string                  `json:"description"`
	Render      func() (g.Node, error) `json:"-"`
}

// Catalog is a named set of blocks. Safe for concurrent use.
type Catalog struct {
	mu     sync.RWMutex
	blocks map[string]Block
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{blocks: make(map[string]Block)}
}

// Register adds b to the catalog.
func (c *Catalog) Register(b Block) error {
	if b.Name == "" || b.Render == nil {
		return fmt.Errorf("blocks: block %q needs a name and a render func", b.Name)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.blocks[b.Name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateBlock, b.Name)
	}
	c.blocks[b.Name] = b
	return nil
}

// Get looks up a block by name.
func (c *Catalog) Get(name string) (Block, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	b, ok := c.blocks[name]
	if !ok {
		return Block{}, &BlockNotFoundError{Name: name}
	}
	return b, nil
}

// List returns all blocks ordered by category, then name.
func (c *Catalog) List() []Block {
	c.mu.RLock()
	out := make([]Block, 0, len(c.blocks))
	for _, b := range c.blocks {
		out = append(out, b)
	}
	c.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		ci, cj := categoryRank(out[i].Category), categoryRank(out[j].Category)
		if ci != cj {
			return ci < cj
		}
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// ByCategory returns the blocks in one category, sorted by name.
func (c *Catalog) ByCategory(category string) []Block {
	var out []Block
	for _, b := range c.List() {
		if b.Category == category {
			out = append(out, b)
		}
	}
	return out
}

// Categories returns the distinct categories present, in display order.
func (c *Catalog) Categories() []string {
	var out []string
	seen := make(map[string]bool)
	for _, b := range c.List() {
		if !seen[b.Category] {
			seen[b.Category] = true
			out = append(out, b.Category)
		}
	}
	return out
}

// Len reports the number of registered blocks.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.blocks)
}

// RenderFragment writes the named block's HTML without a page wrapper.
func (c *Catalog) RenderFragment(w io.Writer, name string) error {
	b, err := c.Get(name)
	if err != nil {
		return err
	}
	node, err := b.Render()
	if err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	return node.Render(w)
}

// RenderPage writes a full HTML document containing the named blocks in order.
func (c *Catalog) RenderPage(w io.Writer, names []string, cfg PageConfig) error {
	nodes := make([]g.Node, 0, len(names))
	for _, name := range names {
		b, err := c.Get(name)
		if err != nil {
			return err
		}
		node, err := b.Render()
		if err != nil {
			return fmt.Errorf("render %s: %w", name, err)
		}
		nodes = append(nodes, blockFrame(b, node))
	}
	if cfg.Title == "" && len(names) == 1 {
		if b, err := c.Get(names[0]); err == nil {
			cfg.Title = b.Title
		}
	}
	return Layout(cfg, nodes...).Render(w)
}

// RenderIndex writes a page linking every block in the catalog. linkFor
// maps a block name to its href.
func (c *Catalog) RenderIndex(w io.Writer, cfg PageConfig, linkFor func(name string) string) error {
	return Layout(cfg, indexBody(c, linkFor)).Render(w)
}

// Default returns a catalog with every built-in block registered.
func Default() *Catalog {
	c := NewCatalog()
	for _, set := range [][]Block{marketingBlocks(), ecommerceBlocks(), dashboardBlocks(), portfolioBlocks()} {
		for _, b := range set {
			if err := c.Register(b); err != nil {
				panic(err)
			}
		}
	}
	return c
}

func categoryRank(category string) int {
	if r, ok := categoryOrder[category]; ok {
		return r
	}
	return len(categoryOrder)
}
