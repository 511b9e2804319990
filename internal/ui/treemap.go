package ui

import (
	"math"
	"strings"

	"github.com/jeffwilliams/squarify"

	"github.com/samuli/duview/internal/core"
	"github.com/samuli/duview/internal/model"
)

const maxTreemapItems = 12

// TreemapPanel renders the current entries as proportional blocks.
type TreemapPanel struct {
	width   int
	height  int
	entries []model.Entry
	blocks  []squarify.Block
}

// SetSize updates the panel dimensions and relayouts.
func (t *TreemapPanel) SetSize(width, height int) {
	t.width = width
	t.height = height
	t.layout()
}

// SetEntries replaces the displayed entries and relayouts.
func (t *TreemapPanel) SetEntries(entries []model.Entry) {
	t.entries = entries
	t.layout()
}

// treemapItem wraps an entry for the squarify algorithm.
type treemapItem struct {
	entry    model.Entry
	size     float64
	children []*treemapItem
}

// Size implements squarify.TreeSizer.
func (t *treemapItem) Size() float64 { return t.size }

// NumChildren implements squarify.TreeSizer.
func (t *treemapItem) NumChildren() int { return len(t.children) }

// Child implements squarify.TreeSizer.
func (t *treemapItem) Child(i int) squarify.TreeSizer { return t.children[i] }

// layout computes block rectangles for the largest entries.
func (t *TreemapPanel) layout() {
	t.blocks = nil
	if t.width < 4 || t.height < 3 || len(t.entries) == 0 {
		return
	}

	n := len(t.entries)
	if n > maxTreemapItems {
		n = maxTreemapItems
	}

	root := &treemapItem{}
	for _, e := range t.entries[:n] {
		size := float64(e.Size)
		if size < 1 {
			size = 1 // keep zero-size entries visible
		}
		root.children = append(root.children, &treemapItem{entry: e, size: size})
		root.size += size
	}

	rect := squarify.Rect{
		X: 0,
		Y: 0,
		W: float64(t.width),
		H: float64(t.height),
	}

	blocks, _ := squarify.Squarify(root, rect, squarify.Options{
		MaxDepth: 1,
		Sort:     true,
	})
	t.blocks = blocks
}

// View paints the blocks onto a rune canvas.
func (t *TreemapPanel) View() string {
	if t.width < 4 || t.height < 3 {
		return ""
	}

	canvas := make([][]rune, t.height)
	for y := range canvas {
		canvas[y] = make([]rune, t.width)
		for x := range canvas[y] {
			canvas[y][x] = ' '
		}
	}

	for _, block := range t.blocks {
		t.drawBlock(canvas, block)
	}

	rows := make([]string, t.height)
	for y, row := range canvas {
		rows[y] = blockBorderStyle.Render(string(row))
	}
	return strings.Join(rows, "\n")
}

func (t *TreemapPanel) drawBlock(canvas [][]rune, block squarify.Block) {
	x0 := int(math.Round(block.X))
	y0 := int(math.Round(block.Y))
	x1 := int(math.Round(block.X + block.W))
	y1 := int(math.Round(block.Y + block.H))

	if x1 > t.width {
		x1 = t.width
	}
	if y1 > t.height {
		y1 = t.height
	}
	if x1-x0 < 2 || y1-y0 < 2 {
		return
	}

	for x := x0; x < x1; x++ {
		canvas[y0][x] = '─'
		canvas[y1-1][x] = '─'
	}
	for y := y0; y < y1; y++ {
		canvas[y][x0] = '│'
		canvas[y][x1-1] = '│'
	}
	canvas[y0][x0] = '┌'
	canvas[y0][x1-1] = '┐'
	canvas[y1-1][x0] = '└'
	canvas[y1-1][x1-1] = '┘'

	item, ok := block.TreeSizer.(*treemapItem)
	if !ok {
		return
	}

	label := item.entry.Name
	if item.entry.IsDir {
		label += "/"
	}
	writeLabel(canvas[y0+1], x0+1, x1-1, label)
	if y1-y0 > 3 {
		writeLabel(canvas[y0+2], x0+1, x1-1, core.FormatBytes(item.entry.Size))
	}
}

// writeLabel writes as much of label as fits between x0 and x1.
func writeLabel(row []rune, x0, x1 int, label string) {
	x := x0
	for _, r := range label {
		if x >= x1 {
			return
		}
		row[x] = r
		x++
	}
}
