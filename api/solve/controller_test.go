package solve

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/mazega/config"
	"github.com/lixenwraith/mazega/parameter"
)

// smallMaze has its entrance at (1,0) and exit at (3,4); the shortest path takes 6 moves
const smallMaze = "" +
	"#  ####\n" +
	"#     #\n" +
	"####  #\n" +
	"#     #\n" +
	"####  #\n"

func newTestEngine(t *testing.T) (*gin.Engine, *GridCache) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	grids := NewGridCache(time.Minute, time.Minute)
	server := NewMazeServer(config.Default(), nil, grids)

	router := gin.New()
	server.Register(router.Group("/v1"))
	return router, grids
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestStrategies(t *testing.T) {
	h, _ := newTestEngine(t)

	w := do(t, h, http.MethodGet, "/v1/strategies", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp StrategiesResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"collision-ends", "collision-smart", "collision-stuns", "occupancy"}, resp.Strategies)
	assert.Equal(t, []string{"bfs", "astar"}, resp.Algorithms)
}

func TestSolve(t *testing.T) {
	h, grids := newTestEngine(t)

	for _, algorithm := range []string{"", "bfs", "astar"} {
		w := do(t, h, http.MethodPost, "/v1/solve", SolveRequest{
			MazeRequest: MazeRequest{Layout: smallMaze, Width: 5, Height: 5},
			Algorithm:   algorithm,
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var resp SolveResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 6, resp.PathLength)
		assert.True(t, resp.Reachable)
		assert.Len(t, resp.Render, 5)
	}
	assert.Equal(t, 1, grids.Len())
}

func TestSolve_Errors(t *testing.T) {
	h, _ := newTestEngine(t)

	tests := []struct {
		name string
		body any
		code int
	}{
		{"missing layout", SolveRequest{MazeRequest: MazeRequest{Width: 5, Height: 5}}, http.StatusBadRequest},
		{"malformed", SolveRequest{MazeRequest: MazeRequest{Layout: "###\n", Width: 5, Height: 5}}, http.StatusBadRequest},
		{"negative width", SolveRequest{MazeRequest: MazeRequest{Layout: smallMaze, Width: -1}}, http.StatusBadRequest},
		{"unknown algorithm", SolveRequest{MazeRequest: MazeRequest{Layout: smallMaze}, Algorithm: "dfs"}, http.StatusNotFound},
		{"not json", "plain text", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, h, http.MethodPost, "/v1/solve", tt.body)
			assert.Equal(t, tt.code, w.Code, w.Body.String())
			assert.Contains(t, w.Body.String(), "error")
		})
	}
}

func TestEvolve(t *testing.T) {
	h, _ := newTestEngine(t)

	w := do(t, h, http.MethodPost, "/v1/evolve", EvolveRequest{
		MazeRequest: MazeRequest{Layout: smallMaze},
		Strategy:    "collision-smart",
		Generations: 3,
		Population:  4,
		Seed:        7,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp EvolveResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "collision-smart", resp.Strategy)
	assert.Len(t, resp.History, 3)
	assert.Equal(t, 12, resp.Evaluations)
	assert.Len(t, resp.Render, 5)
	assert.NotEmpty(t, resp.Chromosome)
}

func TestEvolve_Errors(t *testing.T) {
	h, _ := newTestEngine(t)

	tests := []struct {
		name string
		body EvolveRequest
		code int
	}{
		{"unknown strategy", EvolveRequest{MazeRequest: MazeRequest{Layout: smallMaze}, Strategy: "teleport"}, http.StatusNotFound},
		{"missing strategy", EvolveRequest{MazeRequest: MazeRequest{Layout: smallMaze}}, http.StatusBadRequest},
		{"malformed", EvolveRequest{MazeRequest: MazeRequest{Layout: "#\n"}, Strategy: "occupancy"}, http.StatusBadRequest},
		{"population of one", EvolveRequest{MazeRequest: MazeRequest{Layout: smallMaze}, Strategy: "occupancy", Population: 1}, http.StatusBadRequest},
		{"steps above ceiling", EvolveRequest{MazeRequest: MazeRequest{Layout: smallMaze}, Strategy: "collision-ends", Generations: 1, Population: 2, Steps: parameter.MaxEvolveSteps + 1}, http.StatusBadRequest},
		{"steps overflow", EvolveRequest{MazeRequest: MazeRequest{Layout: smallMaze}, Strategy: "collision-ends", Generations: 1, Population: 2, Steps: 1 << 62}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, h, http.MethodPost, "/v1/evolve", tt.body)
			assert.Equal(t, tt.code, w.Code, w.Body.String())
		})
	}
}

func TestReplay(t *testing.T) {
	h, _ := newTestEngine(t)

	w := do(t, h, http.MethodPost, "/v1/evolve", EvolveRequest{
		MazeRequest: MazeRequest{Layout: smallMaze},
		Strategy:    "collision-smart",
		Generations: 2,
		Population:  4,
		Seed:        3,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var evolved EvolveResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &evolved))

	w = do(t, h, http.MethodPost, "/v1/replay", ReplayRequest{
		MazeRequest: MazeRequest{Layout: smallMaze},
		Strategy:    "collision-smart",
		Chromosome:  evolved.Chromosome,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp ReplayResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, evolved.Fitness, resp.Fitness)
	assert.Equal(t, evolved.Distance, resp.Score.Distance)
	assert.Equal(t, evolved.Render, resp.Render)
	assert.NotEmpty(t, resp.Terms)
}

func TestReplay_Errors(t *testing.T) {
	h, _ := newTestEngine(t)

	tests := []struct {
		name string
		body ReplayRequest
		code int
	}{
		{"unknown strategy", ReplayRequest{MazeRequest: MazeRequest{Layout: smallMaze}, Strategy: "teleport", Chromosome: "01"}, http.StatusNotFound},
		{"invalid gene", ReplayRequest{MazeRequest: MazeRequest{Layout: smallMaze}, Strategy: "collision-ends", Chromosome: "01x"}, http.StatusBadRequest},
		{"wrong length", ReplayRequest{MazeRequest: MazeRequest{Layout: smallMaze}, Strategy: "collision-ends", Chromosome: "01"}, http.StatusBadRequest},
		{"missing chromosome", ReplayRequest{MazeRequest: MazeRequest{Layout: smallMaze}, Strategy: "collision-ends"}, http.StatusBadRequest},
		{"steps above ceiling", ReplayRequest{MazeRequest: MazeRequest{Layout: smallMaze}, Strategy: "collision-ends", Chromosome: "01", Steps: 1 << 62}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, h, http.MethodPost, "/v1/replay", tt.body)
			assert.Equal(t, tt.code, w.Code, w.Body.String())
		})
	}
}

func TestGridCache(t *testing.T) {
	c := NewGridCache(time.Minute, time.Minute)
	req := MazeRequest{Layout: smallMaze, Width: 5, Height: 5}

	g1, hit, err := c.Get(req)
	require.NoError(t, err)
	assert.False(t, hit)

	g2, hit, err := c.Get(req)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Same(t, g1, g2)

	// Inferred dimensions hash differently
	_, hit, err = c.Get(MazeRequest{Layout: smallMaze})
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 2, c.Len())

	_, _, err = c.Get(MazeRequest{Layout: "#\n", Width: 3, Height: 3})
	assert.Error(t, err)
	assert.Equal(t, 2, c.Len())

	assert.NotEqual(t, Key(req), Key(MazeRequest{Layout: smallMaze, Width: 5, Height: 4}))
}
