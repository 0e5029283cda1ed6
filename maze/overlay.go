package maze

import (
	"io"
	"strings"
)

// Overlay is a private mutable copy of a grid's cell states.
// Searches and decoders mark Visited and OnPath cells here.
type Overlay struct {
	width, height int
	cells         [][]Cell
}

func (o *Overlay) Width() int  { return o.width }
func (o *Overlay) Height() int { return o.height }

// At returns the state at p; p must be in bounds
func (o *Overlay) At(p Point) Cell { return o.cells[p.Y][p.X] }

// Set overwrites the state at p
func (o *Overlay) Set(p Point, c Cell) { o.cells[p.Y][p.X] = c }

// InBounds reports whether p lies inside the overlay
func (o *Overlay) InBounds(p Point) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < o.width && p.Y < o.height
}

// Count returns the number of cells in state c
func (o *Overlay) Count(c Cell) int {
	n := 0
	for _, row := range o.cells {
		for _, v := range row {
			if v == c {
				n++
			}
		}
	}
	return n
}

// Rows returns the rendered rows, one string per grid row
func (o *Overlay) Rows() []string {
	rows := make([]string, o.height)
	for y, row := range o.cells {
		var b strings.Builder
		for _, c := range row {
			b.WriteRune(c.Rune())
		}
		rows[y] = b.String()
	}
	return rows
}

// Render writes one line per row using the cell legend
func (o *Overlay) Render(w io.Writer) error {
	var b strings.Builder
	writeCells(&b, o.cells)
	_, err := io.WriteString(w, b.String())
	return err
}

func (o *Overlay) String() string {
	var b strings.Builder
	writeCells(&b, o.cells)
	return b.String()
}

func writeCells(b *strings.Builder, cells [][]Cell) {
	for _, row := range cells {
		for _, c := range row {
			b.WriteRune(c.Rune())
		}
		b.WriteByte('\n')
	}
}
