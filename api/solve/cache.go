package solve

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/lixenwraith/mazega/maze"
)

// GridCache keeps built grids keyed by a digest of the layout text and dimensions.
// Grids are immutable, so one cached grid may serve concurrent requests.
type GridCache struct {
	c *cache.Cache
}

// NewGridCache creates a cache whose entries live for ttl
func NewGridCache(ttl, cleanup time.Duration) *GridCache {
	return &GridCache{c: cache.New(ttl, cleanup)}
}

// Key digests the request; equal text and dimensions share a key
func Key(req MazeRequest) string {
	h := sha256.New()
	fmt.Fprintf(h, "%dx%d\n", req.Width, req.Height)
	h.Write([]byte(req.Layout))
	return hex.EncodeToString(h.Sum(nil))
}

// Get returns the cached grid or parses and builds it. Build failures are not cached.
func (g *GridCache) Get(req MazeRequest) (grid *maze.Grid, hit bool, err error) {
	key := Key(req)
	if v, ok := g.c.Get(key); ok {
		return v.(*maze.Grid), true, nil
	}

	layout, err := maze.Parse(strings.NewReader(req.Layout), req.Width, req.Height)
	if err != nil {
		return nil, false, err
	}
	grid, err = maze.Build(layout)
	if err != nil {
		return nil, false, err
	}

	g.c.SetDefault(key, grid)
	return grid, false, nil
}

// Len is the number of cached grids, expired ones included until cleanup
func (g *GridCache) Len() int { return g.c.ItemCount() }
