// Package fsm is a small hierarchical finite state machine.
// Transitions are fired by named triggers and bubble from the active leaf up to the root.
package fsm

// StateID is a unique identifier for a node
type StateID int

const (
	StateNone StateID = 0
	StateRoot StateID = 1
)

// Trigger names an input that may cause a transition
type Trigger string

// Machine is the hierarchical state machine runtime
// T is the context passed to actions and guards
type Machine[T any] struct {
	nodes map[StateID]*Node[T]

	initial    StateID
	active     StateID   // current leaf
	activePath []StateID // Root -> ... -> leaf
}

// Node is a state in the hierarchy
type Node[T any] struct {
	ID       StateID
	Name     string
	ParentID StateID

	// Path from Root to this node, filled by CompilePaths
	Path []StateID

	OnEnter []Action[T]
	OnExit  []Action[T]

	// Evaluated in insertion order; the first passing guard wins
	Transitions []Transition[T]
}

// Transition links a source node to a target on a trigger
type Transition[T any] struct {
	Trigger  Trigger
	TargetID StateID
	Guard    GuardFunc[T] // nil = always
}

// Action is a side effect with pre-bound arguments
type Action[T any] struct {
	Func ActionFunc[T]
	Args any
}

// GuardFunc returns true if the transition should occur
type GuardFunc[T any] func(ctx T) bool

// ActionFunc executes a side effect
type ActionFunc[T any] func(ctx T, args any)
