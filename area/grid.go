package area

import "github.com/lixenwraith/colormix/core"

// Grid is the explicit cell storage for a footprint, indexed by (x, z)
type Grid struct {
	minX, minZ   int
	width, depth int
	cells        []core.Color
}

// NewGrid allocates an all-empty grid over bounds
func NewGrid(b Bounds) *Grid {
	return &Grid{
		minX:  b.MinX,
		minZ:  b.MinZ,
		width: b.Width(),
		depth: b.Depth(),
		cells: make([]core.Color, b.Width()*b.Depth()),
	}
}

func (g *Grid) index(x, z int) (int, bool) {
	dx, dz := x-g.minX, z-g.minZ
	if dx < 0 || dx >= g.width || dz < 0 || dz >= g.depth {
		return 0, false
	}
	return dz*g.width + dx, true
}

// At returns the color at (x, z); ok is false outside the footprint
func (g *Grid) At(x, z int) (core.Color, bool) {
	i, ok := g.index(x, z)
	if !ok {
		return core.ColorEmpty, false
	}
	return g.cells[i], true
}

// Each visits every cell in row-major order (z outer, x inner)
func (g *Grid) Each(fn func(x, z int, c core.Color)) {
	for dz := 0; dz < g.depth; dz++ {
		for dx := 0; dx < g.width; dx++ {
			fn(g.minX+dx, g.minZ+dz, g.cells[dz*g.width+dx])
		}
	}
}

