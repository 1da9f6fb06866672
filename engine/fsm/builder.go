package fsm

import "fmt"

// AddState adds a node under parentID; the root is created by NewMachine
func (m *Machine[T]) AddState(id StateID, name string, parentID StateID) *Node[T] {
	node := &Node[T]{
		ID:       id,
		Name:     name,
		ParentID: parentID,
	}
	m.nodes[id] = node
	return node
}

// AddTransition appends a transition to sourceID; unknown sources are ignored
func (m *Machine[T]) AddTransition(sourceID StateID, t Transition[T]) {
	if node, ok := m.nodes[sourceID]; ok {
		node.Transitions = append(node.Transitions, t)
	}
}

// OnEnter appends an enter action to id
func (m *Machine[T]) OnEnter(id StateID, fn ActionFunc[T], args any) {
	if node, ok := m.nodes[id]; ok {
		node.OnEnter = append(node.OnEnter, Action[T]{Func: fn, Args: args})
	}
}

// OnExit appends an exit action to id
func (m *Machine[T]) OnExit(id StateID, fn ActionFunc[T], args any) {
	if node, ok := m.nodes[id]; ok {
		node.OnExit = append(node.OnExit, Action[T]{Func: fn, Args: args})
	}
}

// CompilePaths calculates the Root -> node path of every node
// Must be called after all nodes are added and before Init
func (m *Machine[T]) CompilePaths() error {
	for id, node := range m.nodes {
		path := make([]StateID, 0, 4)
		curr := node
		for {
			path = append(path, curr.ID)
			if curr.ParentID == StateNone {
				break
			}
			parent, ok := m.nodes[curr.ParentID]
			if !ok {
				return fmt.Errorf("node %d references missing parent %d", id, curr.ParentID)
			}
			if len(path) > len(m.nodes) {
				return fmt.Errorf("node %d is part of a parent cycle", id)
			}
			curr = parent
		}

		for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
			path[i], path[j] = path[j], path[i]
		}
		node.Path = path
	}
	return nil
}
