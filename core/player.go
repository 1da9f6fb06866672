package core

// Player is a point-in-time view of a live player entity
type Player struct {
	ID    string
	Name  string
	World string
	Pos   Vec3
}
