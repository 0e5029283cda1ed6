package solver

import "github.com/lixenwraith/mazega/maze"

// --- Indexed min-heap for A* ---

type node struct {
	p    maze.Point
	g, h int
}

func (n node) f() int { return n.g + n.h }

// less orders by F, then H, then coordinate
func (n node) less(o node) bool {
	if nf, of := n.f(), o.f(); nf != of {
		return nf < of
	}
	if n.h != o.h {
		return n.h < o.h
	}
	return n.p.Less(o.p)
}

// openSet is a binary min-heap that tracks each cell's slot so a queued
// entry can be re-prioritised in place
type openSet struct {
	items []node
	slot  [][]int // -1 when not queued
}

func newOpenSet(w, h int) *openSet {
	s := &openSet{
		items: make([]node, 0, (w*h)/4+1),
		slot:  make([][]int, h),
	}
	for y := range s.slot {
		s.slot[y] = make([]int, w)
		for x := range s.slot[y] {
			s.slot[y][x] = -1
		}
	}
	return s
}

func (s *openSet) Len() int { return len(s.items) }

func (s *openSet) push(n node) {
	s.items = append(s.items, n)
	i := len(s.items) - 1
	s.slot[n.p.Y][n.p.X] = i
	s.up(i)
}

func (s *openSet) pop() node {
	top := s.items[0]
	last := len(s.items) - 1
	s.swap(0, last)
	s.items = s.items[:last]
	s.slot[top.p.Y][top.p.X] = -1
	if last > 0 {
		s.down(0)
	}
	return top
}

// decrease lowers the G of a queued cell and restores heap order
func (s *openSet) decrease(p maze.Point, g int) {
	i := s.slot[p.Y][p.X]
	s.items[i].g = g
	s.up(i)
}

func (s *openSet) gOf(p maze.Point) int { return s.items[s.slot[p.Y][p.X]].g }

func (s *openSet) up(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if !s.items[i].less(s.items[parent]) {
			break
		}
		s.swap(i, parent)
		i = parent
	}
}

func (s *openSet) down(i int) {
	n := len(s.items)
	for {
		left := 2*i + 1
		if left >= n {
			break
		}
		smallest := left
		if right := left + 1; right < n && s.items[right].less(s.items[left]) {
			smallest = right
		}
		if !s.items[smallest].less(s.items[i]) {
			break
		}
		s.swap(i, smallest)
		i = smallest
	}
}

func (s *openSet) swap(i, j int) {
	s.items[i], s.items[j] = s.items[j], s.items[i]
	s.slot[s.items[i].p.Y][s.items[i].p.X] = i
	s.slot[s.items[j].p.Y][s.items[j].p.X] = j
}
