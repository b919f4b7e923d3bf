package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seenimoa/pageblocks/internal/geometry"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	err := rootCmd.Execute()
	return out.String(), err
}

func TestParseSlices(t *testing.T) {
	got, err := parseSlices("Direct:55:#2563eb, Social:35 ,Referral:10,")
	require.NoError(t, err)

	want := []geometry.Slice{
		{Label: "Direct", Value: 55, Color: "#2563eb"},
		{Label: "Social", Value: 35},
		{Label: "Referral", Value: 10},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("parseSlices mismatch (-want +got):\n%s", diff)
	}
}

func TestParseSlices_Errors(t *testing.T) {
	for _, spec := range []string{"", " , ", "Direct", "Direct:abc", "a:1:#fff:extra"} {
		_, err := parseSlices(spec)
		assert.Error(t, err, spec)
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "pageblocks dev")
}

func TestArcsCommand_JSON(t *testing.T) {
	out, err := run(t, "arcs", "--slices", "Direct:55,Social:35,Referral:10", "--inner", "60", "--outer", "100", "--json")
	require.NoError(t, err)

	var rows []struct {
		Label string  `json:"label"`
		Span  float64 `json:"span"`
		D     string  `json:"d"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 3)
	assert.Equal(t, "Direct", rows[0].Label)
	assert.InDelta(t, 198, rows[0].Span, 1e-9)
	assert.Equal(t, "M100,0 A100,100 0 1,1 69.1,195.11 L81.46,157.06 A60,60 0 1,0 100,40 Z", rows[0].D)
}

func TestArcsCommand_Degenerate(t *testing.T) {
	_, err := run(t, "arcs", "--slices", "A:0,B:0", "--json=false")
	assert.ErrorIs(t, err, geometry.ErrDegenerateInput)
}

func TestChartAndInspect(t *testing.T) {
	file := filepath.Join(t.TempDir(), "traffic.svg")
	_, err := run(t, "chart", "--slices", "Direct:55,Social:35,Referral:10", "--out", file)
	require.NoError(t, err)

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "<svg"))

	out, err := run(t, "inspect", file)
	require.NoError(t, err)
	assert.Contains(t, out, "Direct")
	assert.Contains(t, out, "55%")
}

func TestBlocksList(t *testing.T) {
	out, err := run(t, "blocks", "list", "--category", "ecommerce")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 3)
	assert.Contains(t, out, "checkout-form")
}

func TestBlocksRender_Unknown(t *testing.T) {
	_, err := run(t, "blocks", "render", "missing")
	assert.Error(t, err)
}

func TestExportCommand(t *testing.T) {
	dir := t.TempDir()
	out, err := run(t, "export", "--out", dir, "--concurrency", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "exported 20 files")

	_, err = os.Stat(filepath.Join(dir, "index.html"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "static", "preview.css"))
	assert.NoError(t, err)
}
