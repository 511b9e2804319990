package ui

import (
	"strings"
	"testing"

	"github.com/jeffwilliams/squarify"

	"github.com/samuli/duview/internal/model"
)

func TestSquarifyDirect(t *testing.T) {
	root := &treemapItem{
		size: 300,
		children: []*treemapItem{
			{size: 100},
			{size: 100},
			{size: 100},
		},
	}

	rect := squarify.Rect{X: 0, Y: 0, W: 76, H: 22}

	blocks, metas := squarify.Squarify(root, rect, squarify.Options{
		MaxDepth: 1,
		Sort:     true,
	})

	// squarify returns the children at depth 0
	depth0 := 0
	for i := range blocks {
		if i < len(metas) && metas[i].Depth == 0 {
			depth0++
		}
	}
	if depth0 != 3 {
		t.Errorf("expected 3 depth-0 blocks, got %d", depth0)
	}
}

func TestTreemapLayoutBounds(t *testing.T) {
	entries := []model.Entry{
		{Path: "/x/big", Name: "big", Size: 100 * 1024 * 1024, IsDir: true},
		{Path: "/x/medium", Name: "medium", Size: 50 * 1024 * 1024, IsDir: true},
		{Path: "/x/small", Name: "small", Size: 10 * 1024 * 1024},
		{Path: "/x/tiny", Name: "tiny", Size: 512 * 1024},
	}

	var panel TreemapPanel
	panel.SetSize(80, 24)
	panel.SetEntries(entries)

	if len(panel.blocks) == 0 {
		t.Fatal("expected blocks to be generated")
	}

	for i, b := range panel.blocks {
		if b.X < -0.5 || b.Y < -0.5 {
			t.Errorf("block %d has negative origin: x=%.1f y=%.1f", i, b.X, b.Y)
		}
		if b.X+b.W > 80.5 {
			t.Errorf("block %d exceeds width: x=%.1f w=%.1f", i, b.X, b.W)
		}
		if b.Y+b.H > 24.5 {
			t.Errorf("block %d exceeds height: y=%.1f h=%.1f", i, b.Y, b.H)
		}
	}
}

func TestTreemapViewContainsLargestNames(t *testing.T) {
	entries := []model.Entry{
		{Path: "/x/videos", Name: "videos", Size: 900 * 1024 * 1024, IsDir: true},
		{Path: "/x/music", Name: "music", Size: 400 * 1024 * 1024, IsDir: true},
		{Path: "/x/notes.txt", Name: "notes.txt", Size: 2 * 1024},
	}

	var panel TreemapPanel
	panel.SetSize(80, 24)
	panel.SetEntries(entries)

	view := panel.View()
	if !strings.Contains(view, "videos/") {
		t.Errorf("expected view to label the largest directory, got:\n%s", view)
	}
}

func TestTreemapEmptyAndTinyCanvas(t *testing.T) {
	var panel TreemapPanel
	panel.SetSize(2, 1)
	panel.SetEntries([]model.Entry{{Path: "/x/a", Name: "a", Size: 10}})

	if got := panel.View(); got != "" {
		t.Errorf("expected empty view on tiny canvas, got %q", got)
	}

	panel.SetSize(40, 10)
	panel.SetEntries(nil)
	if len(panel.blocks) != 0 {
		t.Errorf("expected no blocks without entries, got %d", len(panel.blocks))
	}
}
