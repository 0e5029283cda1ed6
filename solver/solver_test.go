package solver

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/mazega/maze"
)

func buildGrid(t *testing.T, layout maze.Layout) *maze.Grid {
	t.Helper()
	g, err := maze.Build(layout)
	require.NoError(t, err)
	return g
}

// corridor: entrance (1,0), exit (3,4), single route of length 6
func corridor() maze.Layout {
	return maze.Layout{
		{true, false, true, true, true},
		{true, false, false, false, true},
		{true, true, true, false, true},
		{true, false, false, false, true},
		{true, true, true, false, true},
	}
}

func TestBFS_ShortestPath(t *testing.T) {
	g := buildGrid(t, corridor())

	res, err := BFS(g)
	require.NoError(t, err)

	assert.Equal(t, AlgorithmBFS, res.Algorithm)
	assert.Equal(t, 6, res.PathLength)
	assert.Equal(t, 9, res.Visited)
	assert.Equal(t, []maze.Point{{X: 1, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 1}, {X: 3, Y: 1}, {X: 3, Y: 2}, {X: 3, Y: 3}, {X: 3, Y: 4}}, res.Path)
	assert.Equal(t, res.PathLength+1, res.Overlay.Count(maze.OnPath))
	assert.Equal(t, 2, res.Overlay.Count(maze.Visited)) // dead end (1,3),(2,3)

	// Grid is untouched
	assert.Equal(t, maze.Start, g.At(g.Start()))
	assert.Equal(t, maze.Empty, g.At(maze.Point{X: 1, Y: 1}))
}

func TestAStar_ShortestPath(t *testing.T) {
	g := buildGrid(t, corridor())

	res, err := AStar(g)
	require.NoError(t, err)

	assert.Equal(t, AlgorithmAStar, res.Algorithm)
	assert.Equal(t, 6, res.PathLength)
	assert.Equal(t, res.PathLength+1, res.Overlay.Count(maze.OnPath))
	assert.Equal(t, g.Start(), res.Path[0])
	assert.Equal(t, g.Exit(), res.Path[len(res.Path)-1])
	assert.LessOrEqual(t, res.Visited, 9)
}

func TestSolvers_AgreeOnGeneratedMazes(t *testing.T) {
	for _, size := range []int{11, 21, 41} {
		t.Run(fmt.Sprintf("%dx%d", size, size), func(t *testing.T) {
			layout := maze.Generate(maze.GeneratorConfig{Width: size, Height: size, Seed: uint64(size) * 31})
			g := buildGrid(t, layout)

			bfs, err := BFS(g)
			require.NoError(t, err)
			astar, err := AStar(g)
			require.NoError(t, err)

			assert.Equal(t, bfs.PathLength, astar.PathLength)
			assert.Equal(t, bfs.PathLength+1, bfs.Overlay.Count(maze.OnPath))
			assert.Equal(t, astar.PathLength+1, astar.Overlay.Count(maze.OnPath))
			assert.LessOrEqual(t, astar.Visited, bfs.Visited)
		})
	}
}

func TestSolvers_PathIsContiguous(t *testing.T) {
	layout := maze.Generate(maze.GeneratorConfig{Width: 31, Height: 21, Braiding: 0.6, Seed: 5})
	g := buildGrid(t, layout)

	for _, algo := range Algorithms() {
		res, err := Solve(algo, g)
		require.NoError(t, err)
		if algo == AlgorithmBFS {
			require.Len(t, res.Path, res.PathLength+1)
		}
		assert.Equal(t, g.Start(), res.Path[0])
		assert.Equal(t, g.Exit(), res.Path[len(res.Path)-1])

		for i := 1; i < len(res.Path); i++ {
			a, b := res.Path[i-1], res.Path[i]
			dist := abs(a.X-b.X) + abs(a.Y-b.Y)
			assert.Equal(t, 1, dist, "%s step %d", algo, i)
			assert.True(t, g.Passable(b))
		}
	}
}

func TestSolvers_BFSNeverLonger(t *testing.T) {
	for seed := uint64(1); seed <= 10; seed++ {
		layout := maze.Generate(maze.GeneratorConfig{Width: 25, Height: 25, Braiding: 0.8, Seed: seed})
		g := buildGrid(t, layout)

		bfs, err := BFS(g)
		require.NoError(t, err)
		astar, err := AStar(g)
		require.NoError(t, err)
		assert.LessOrEqual(t, bfs.PathLength, astar.PathLength, "seed %d", seed)
	}
}

func TestSolvers_Unreachable(t *testing.T) {
	layout := maze.Layout{
		{true, false, true, true, true},
		{true, false, false, false, true},
		{true, true, true, true, true},
		{true, false, false, false, true},
		{true, true, true, false, true},
	}
	g := buildGrid(t, layout)

	for _, algo := range Algorithms() {
		res, err := Solve(algo, g)
		require.ErrorIs(t, err, ErrUnreachableExit, algo)

		assert.Equal(t, Unreachable, res.PathLength)
		assert.False(t, res.Reachable())
		assert.Nil(t, res.Path)
		assert.Equal(t, 0, res.Overlay.Count(maze.OnPath))
		assert.Equal(t, 4, res.Visited, algo)
		assert.Equal(t, maze.Exit, res.Overlay.At(g.Exit()))
	}
}

func TestSolve_UnknownAlgorithm(t *testing.T) {
	g := buildGrid(t, corridor())
	_, err := Solve("dijkstra", g)

	var ue *UnknownAlgorithmError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, "dijkstra", ue.Name)
}

func TestOpenSet_Order(t *testing.T) {
	s := newOpenSet(4, 4)
	s.push(node{p: maze.Point{X: 0, Y: 0}, g: 5, h: 1})
	s.push(node{p: maze.Point{X: 1, Y: 0}, g: 2, h: 4})
	s.push(node{p: maze.Point{X: 2, Y: 0}, g: 3, h: 3})
	s.push(node{p: maze.Point{X: 3, Y: 0}, g: 1, h: 5})

	// Remaining entries tie on F, H decides
	s.decrease(maze.Point{X: 0, Y: 0}, 0)

	var got []maze.Point
	for s.Len() > 0 {
		got = append(got, s.pop().p)
	}
	assert.Equal(t, []maze.Point{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 1, Y: 0}, {X: 3, Y: 0}}, got)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
