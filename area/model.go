package area

import (
	"math/rand/v2"
	"sort"

	"github.com/lixenwraith/colormix/core"
)

// SpatialIndex answers which live players are inside a block region of a world
type SpatialIndex interface {
	EntitiesInBox(world string, box core.Box) []core.Player
}

// Model owns the configured Area and its grid
// Not safe for concurrent use: every call happens on the tick goroutine
// Operations on an unconfigured model are no-ops returning zero results
type Model struct {
	area   *Area
	bounds Bounds
	grid   *Grid
	index  SpatialIndex
	rng    *rand.Rand

	onStrip []func()
}

// NewModel creates an unconfigured model
// rng drives cell fills and safe color picks; nil seeds from runtime entropy
func NewModel(index SpatialIndex, rng *rand.Rand) *Model {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Model{index: index, rng: rng}
}

// Configure records both corners at once and allocates an empty grid
// A previous grid is discarded
func (m *Model) Configure(a, b core.BlockPos) error {
	ar, err := New(a, b)
	if err != nil {
		return err
	}
	m.area = &ar
	m.bounds = ar.Bounds()
	m.grid = NewGrid(m.bounds)
	return nil
}

// IsConfigured reports whether both corners are set
func (m *Model) IsConfigured() bool {
	return m.area != nil
}

// Area returns the configured area
func (m *Model) Area() (Area, bool) {
	if m.area == nil {
		return Area{}, false
	}
	return *m.area, true
}

// Bounds returns the derived bounds; ok is false when unconfigured
func (m *Model) Bounds() (Bounds, bool) {
	return m.bounds, m.area != nil
}

// Fill assigns every cell an independent uniform palette color
func (m *Model) Fill() {
	if m.grid == nil {
		return
	}
	for i := range m.grid.cells {
		m.grid.cells[i] = core.Palette[m.rng.IntN(core.PaletteSize)]
	}
}

// OnStrip registers fn to run at the end of every Strip
// Hosts settle their physics here so the occupancy re-check sees who dropped
func (m *Model) OnStrip(fn func()) {
	m.onStrip = append(m.onStrip, fn)
}

// Strip empties every cell whose color differs from keep, then runs the strip hooks
func (m *Model) Strip(keep core.Color) {
	if m.grid == nil {
		return
	}
	for i, c := range m.grid.cells {
		if c != keep {
			m.grid.cells[i] = core.ColorEmpty
		}
	}
	for _, fn := range m.onStrip {
		fn()
	}
}

// Clear empties every cell
func (m *Model) Clear() {
	if m.grid == nil {
		return
	}
	clear(m.grid.cells)
}

// RandomColor picks a uniform palette color, independent of cell contents
func (m *Model) RandomColor() core.Color {
	return core.Palette[m.rng.IntN(core.PaletteSize)]
}

// ColorAt returns the cell color at (x, z)
func (m *Model) ColorAt(x, z int) (core.Color, bool) {
	if m.grid == nil {
		return core.ColorEmpty, false
	}
	return m.grid.At(x, z)
}

// Each visits every cell; no-op when unconfigured
func (m *Model) Each(fn func(x, z int, c core.Color)) {
	if m.grid == nil {
		return
	}
	m.grid.Each(fn)
}

// Count returns how many cells hold c
func (m *Model) Count(c core.Color) int {
	if m.grid == nil {
		return 0
	}
	n := 0
	for _, cell := range m.grid.cells {
		if cell == c {
			n++
		}
	}
	return n
}

// Solid reports whether the block at (x, y, z) in world is a non-empty grid cell
func (m *Model) Solid(world string, x, y, z int) bool {
	if m.area == nil || world != m.area.World || y != m.bounds.GroundY {
		return false
	}
	c, ok := m.grid.At(x, z)
	return ok && c != core.ColorEmpty
}

// Occupants samples the spatial index for players inside the presence box
// Never cached: players move continuously. Result is sorted by player ID
func (m *Model) Occupants() []core.Player {
	if m.area == nil || m.index == nil {
		return nil
	}
	box := m.bounds.PresenceBox()
	found := m.index.EntitiesInBox(m.area.World, box)

	// Re-check bounds and world; the index may be coarser than the box
	out := make([]core.Player, 0, len(found))
	for _, p := range found {
		if p.World != m.area.World || !box.Contains(p.Pos) {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// OccupantCount is len(Occupants())
func (m *Model) OccupantCount() int {
	return len(m.Occupants())
}
