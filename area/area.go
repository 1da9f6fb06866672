// Package area owns the play footprint and its color grid.
// It has no knowledge of rounds or timers.
package area

import (
	"errors"

	"github.com/lixenwraith/colormix/core"
)

// PresenceHeight is the number of blocks above the first standing layer that still count as present
const PresenceHeight = 5

// ErrWorldMismatch is returned when corners belong to different worlds
var ErrWorldMismatch = errors.New("area corners are in different worlds")

// Area is an inclusive footprint defined by two corners on one world
// The grid sits on the higher corner's elevation
type Area struct {
	World string
	A, B  core.BlockPos
}

// New builds an Area from two corners
func New(a, b core.BlockPos) (Area, error) {
	if a.World != b.World {
		return Area{}, ErrWorldMismatch
	}
	return Area{World: a.World, A: a, B: b}, nil
}

// Bounds are the derived footprint limits
type Bounds struct {
	MinX, MaxX int
	MinZ, MaxZ int
	GroundY    int
}

// Bounds derives min/max on X and Z and the grid elevation
func (a Area) Bounds() Bounds {
	return Bounds{
		MinX:    min(a.A.X, a.B.X),
		MaxX:    max(a.A.X, a.B.X),
		MinZ:    min(a.A.Z, a.B.Z),
		MaxZ:    max(a.A.Z, a.B.Z),
		GroundY: max(a.A.Y, a.B.Y),
	}
}

// Width is the X extent in cells
func (b Bounds) Width() int { return b.MaxX - b.MinX + 1 }

// Depth is the Z extent in cells
func (b Bounds) Depth() int { return b.MaxZ - b.MinZ + 1 }

// PresenceBox is the volume in which a player counts as an occupant:
// the footprint, from one block above the grid up to PresenceHeight more
func (b Bounds) PresenceBox() core.Box {
	return core.Box{
		MinX: b.MinX, MaxX: b.MaxX,
		MinZ: b.MinZ, MaxZ: b.MaxZ,
		MinY: b.GroundY + 1,
		MaxY: b.GroundY + 1 + PresenceHeight,
	}
}

// InFootprint reports whether (x, z) is a grid cell
func (b Bounds) InFootprint(x, z int) bool {
	return x >= b.MinX && x <= b.MaxX && z >= b.MinZ && z <= b.MaxZ
}
