package core

import "math"

// BlockPos is an integer block coordinate in a world
type BlockPos struct {
	World   string
	X, Y, Z int
}

// Vec3 is a continuous position
type Vec3 struct {
	X, Y, Z float64
}

// Add returns the component-wise sum
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Block returns the block containing v (floor on every axis)
func (v Vec3) Block() (x, y, z int) {
	return int(math.Floor(v.X)), int(math.Floor(v.Y)), int(math.Floor(v.Z))
}

// Box is an inclusive axis-aligned block region
type Box struct {
	MinX, MinY, MinZ int
	MaxX, MaxY, MaxZ int
}

// ContainsBlock reports whether the block coordinate lies inside the box
func (b Box) ContainsBlock(x, y, z int) bool {
	return x >= b.MinX && x <= b.MaxX &&
		y >= b.MinY && y <= b.MaxY &&
		z >= b.MinZ && z <= b.MaxZ
}

// Contains reports whether the block holding p lies inside the box
func (b Box) Contains(p Vec3) bool {
	x, y, z := p.Block()
	return b.ContainsBlock(x, y, z)
}
