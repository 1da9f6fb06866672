package fsm

import "fmt"

// NewMachine creates a machine holding only the root node
func NewMachine[T any]() *Machine[T] {
	m := &Machine[T]{nodes: make(map[StateID]*Node[T])}
	m.AddState(StateRoot, "Root", StateNone)
	return m
}

// Init enters initial, running OnEnter from the root down
func (m *Machine[T]) Init(ctx T, initial StateID) error {
	node, ok := m.nodes[initial]
	if !ok {
		return fmt.Errorf("initial state %d not found", initial)
	}
	if node.Path == nil {
		return fmt.Errorf("state %d has no path; call CompilePaths first", initial)
	}

	m.initial = initial
	m.active = initial
	m.activePath = append(m.activePath[:0], node.Path...)
	for _, id := range m.activePath {
		runActions(ctx, m.nodes[id].OnEnter)
	}
	return nil
}

// Fire routes trigger from the active leaf up to the root
// Returns true if a transition was taken
func (m *Machine[T]) Fire(ctx T, trigger Trigger) bool {
	if m.active == StateNone {
		return false
	}

	for currID := m.active; currID != StateNone; {
		node := m.nodes[currID]
		for _, t := range node.Transitions {
			if t.Trigger != trigger {
				continue
			}
			if t.Guard == nil || t.Guard(ctx) {
				m.transition(ctx, t.TargetID)
				return true
			}
		}
		currID = node.ParentID
	}
	return false
}

// transition exits up to the lowest common ancestor and enters down to target
// A self-transition exits and re-enters the leaf
func (m *Machine[T]) transition(ctx T, targetID StateID) {
	target, ok := m.nodes[targetID]
	if !ok {
		panic(fmt.Sprintf("fsm: transition to unknown state %d", targetID))
	}

	lca := -1
	for i := 0; i < min(len(m.activePath), len(target.Path)); i++ {
		if m.activePath[i] != target.Path[i] {
			break
		}
		lca = i
	}
	if targetID == m.active {
		lca = len(target.Path) - 2
	}

	for i := len(m.activePath) - 1; i > lca; i-- {
		runActions(ctx, m.nodes[m.activePath[i]].OnExit)
	}

	m.active = targetID
	m.activePath = append(m.activePath[:0], target.Path...)

	for i := lca + 1; i < len(target.Path); i++ {
		runActions(ctx, m.nodes[target.Path[i]].OnEnter)
	}
}

// Reset exits the active path and re-enters the initial state
func (m *Machine[T]) Reset(ctx T) error {
	for i := len(m.activePath) - 1; i >= 0; i-- {
		runActions(ctx, m.nodes[m.activePath[i]].OnExit)
	}
	m.active = StateNone
	m.activePath = m.activePath[:0]
	return m.Init(ctx, m.initial)
}

// Current returns the active leaf
func (m *Machine[T]) Current() StateID {
	return m.active
}

// StateName returns the active leaf's name
func (m *Machine[T]) StateName() string {
	if node, ok := m.nodes[m.active]; ok {
		return node.Name
	}
	return ""
}

// In reports whether id is the active leaf or one of its ancestors
func (m *Machine[T]) In(id StateID) bool {
	for _, p := range m.activePath {
		if p == id {
			return true
		}
	}
	return false
}

func runActions[T any](ctx T, actions []Action[T]) {
	for _, a := range actions {
		a.Func(ctx, a.Args)
	}
}
