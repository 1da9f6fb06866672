package world

import (
	"testing"

	"github.com/lixenwraith/colormix/core"
)

// slab is solid on one layer inside a square
type slab struct {
	y, min, max int
}

func (s slab) Solid(world string, x, y, z int) bool {
	return world == "overworld" && y == s.y && x >= s.min && x <= s.max && z >= s.min && z <= s.max
}

func TestJoinAssignsDistinctIDs(t *testing.T) {
	w := New(54)
	a := w.Join("alice", "overworld", core.Vec3{})
	b := w.Join("alice", "overworld", core.Vec3{})
	if a.ID == "" || a.ID == b.ID {
		t.Fatalf("IDs %q, %q must be distinct and non-empty", a.ID, b.ID)
	}
	if len(w.Players()) != 2 {
		t.Errorf("Players = %d, want 2", len(w.Players()))
	}
	w.Leave(a.ID)
	if _, ok := w.Get(a.ID); ok {
		t.Error("player still present after Leave")
	}
}

func TestWalkUnknownPlayer(t *testing.T) {
	w := New(54)
	if err := w.Walk("nobody", 1, 0); err != ErrUnknownPlayer {
		t.Errorf("Walk err = %v, want ErrUnknownPlayer", err)
	}
}

func TestEntitiesInBox(t *testing.T) {
	w := New(54)
	in := w.Join("in", "overworld", core.Vec3{X: 1.5, Y: 65, Z: 1.5})
	w.Join("out", "overworld", core.Vec3{X: 9.5, Y: 65, Z: 1.5})
	w.Join("nether", "nether", core.Vec3{X: 1.5, Y: 65, Z: 1.5})

	box := core.Box{MinX: 0, MaxX: 4, MinY: 65, MaxY: 70, MinZ: 0, MaxZ: 4}
	got := w.EntitiesInBox("overworld", box)
	if len(got) != 1 || got[0].ID != in.ID {
		t.Errorf("EntitiesInBox = %v, want only %q", got, in.ID)
	}
}

func TestStepGravity(t *testing.T) {
	w := New(54)
	ground := slab{y: 64, min: 0, max: 4}
	on := w.Join("on", "overworld", core.Vec3{X: 2.5, Y: 65, Z: 2.5})
	off := w.Join("off", "overworld", core.Vec3{X: 7.5, Y: 65, Z: 2.5})

	fell := w.Step(ground)
	if len(fell) != 1 || fell[0] != off.ID {
		t.Fatalf("fell = %v, want [%s]", fell, off.ID)
	}
	if p, _ := w.Get(on.ID); p.Pos.Y != 65 {
		t.Errorf("supported player Y = %v, want 65", p.Pos.Y)
	}
	if p, _ := w.Get(off.ID); p.Pos.Y != 64 {
		t.Errorf("falling player Y = %v, want 64", p.Pos.Y)
	}

	// Falls until standing on the floor
	for range 20 {
		w.Step(ground)
	}
	if p, _ := w.Get(off.ID); p.Pos.Y != 55 {
		t.Errorf("landed Y = %v, want 55", p.Pos.Y)
	}
}
