package maze

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Layout is the parsed wall map, true marks a wall
type Layout [][]bool

// Wall map values, kept from the generator
const (
	WallCell    = true
	PassageCell = false
)

// sampled reports whether the character at column index p carries a cell.
// Every three-character group holds two cells; its middle character is padding.
func sampled(p int) bool {
	return (p+1)%3 != 2
}

// Parse reads a maze in the three-column text format.
// Zero width or height is inferred from the input.
func Parse(r io.Reader, width, height int) (Layout, error) {
	if width < 0 || height < 0 {
		return nil, malformed(0, "negative dimensions %dx%d", width, height)
	}

	var lines []string
	br := bufio.NewReader(r)
	for height == 0 || len(lines) < height {
		line, err := br.ReadString('\n')
		if len(line) > 0 || err == nil {
			line = strings.TrimSuffix(line, "\n")
			line = strings.TrimSuffix(line, "\r")
			lines = append(lines, line)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read maze: %w", err)
		}
	}

	if height == 0 {
		for len(lines) > 0 && lines[len(lines)-1] == "" {
			lines = lines[:len(lines)-1]
		}
		height = len(lines)
	}
	if height == 0 {
		return nil, malformed(0, "maze is empty")
	}
	if len(lines) < height {
		return nil, malformed(0, "expected %d lines, found %d", height, len(lines))
	}

	if width == 0 {
		width = sampledCount(lines[0])
	}

	layout := make(Layout, height)
	for y := 0; y < height; y++ {
		row := make([]bool, 0, width)
		for p, c := range []rune(lines[y]) {
			if !sampled(p) {
				continue
			}
			row = append(row, c != ' ')
		}
		if len(row) != width {
			return nil, malformed(y+1, "row has %d cells, expected %d", len(row), width)
		}
		layout[y] = row
	}

	return layout, nil
}

func sampledCount(line string) int {
	n := 0
	for p := range []rune(line) {
		if sampled(p) {
			n++
		}
	}
	return n
}

// Load opens a maze file and parses it
func Load(path string, width, height int) (Layout, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	layout, err := Parse(f, width, height)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return layout, nil
}

// Encode writes the layout in the three-column format accepted by Parse.
// Padding characters repeat the following cell so walls read as continuous.
func Encode(w io.Writer, layout Layout) error {
	bw := bufio.NewWriter(w)
	for _, row := range layout {
		for k, isWall := range row {
			if k%2 == 1 {
				// Cell k sits after a padding column
				bw.WriteRune(layoutRune(isWall))
			}
			bw.WriteRune(layoutRune(isWall))
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

func layoutRune(isWall bool) rune {
	if isWall {
		return Wall.Rune()
	}
	return Empty.Rune()
}

// Width returns the column count of the first row
func (l Layout) Width() int {
	if len(l) == 0 {
		return 0
	}
	return len(l[0])
}

// Height returns the row count
func (l Layout) Height() int { return len(l) }
