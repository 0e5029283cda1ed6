package maze

// Cell is the state of a single grid position
type Cell uint8

// Cell states. Numbering follows the rendering legend of the maze files.
const (
	Empty Cell = iota
	Wall
	Start
	Exit
	OnPath
	Visited
)

// cellRunes maps each state to its rendered character
var cellRunes = [...]rune{
	Empty:   ' ',
	Wall:    '#',
	Start:   'S',
	Exit:    'E',
	OnPath:  '.',
	Visited: 'X',
}

// Rune returns the rendering character for the state
func (c Cell) Rune() rune {
	if int(c) < len(cellRunes) {
		return cellRunes[c]
	}
	return '?'
}

func (c Cell) String() string {
	switch c {
	case Empty:
		return "empty"
	case Wall:
		return "wall"
	case Start:
		return "start"
	case Exit:
		return "exit"
	case OnPath:
		return "on-path"
	case Visited:
		return "visited"
	default:
		return "unknown"
	}
}

// Point is a grid coordinate, X is the column and Y the row
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add returns the point offset by d
func (p Point) Add(d Point) Point {
	return Point{p.X + d.X, p.Y + d.Y}
}

// Less orders points by X then Y
func (p Point) Less(o Point) bool {
	if p.X != o.X {
		return p.X < o.X
	}
	return p.Y < o.Y
}

// Neighborhood is the fixed expansion order used by every search: +x, -x, +y, -y
var Neighborhood = [4]Point{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// Cardinal step directions
var (
	Up    = Point{0, -1}
	Left  = Point{-1, 0}
	Right = Point{1, 0}
	Down  = Point{0, 1}
)
