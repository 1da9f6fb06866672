package status

import "testing"

func TestGetReturnsCachedPointer(t *testing.T) {
	r := NewRegistry()
	a := r.Ints.Get("game.rounds")
	b := r.Ints.Get("game.rounds")
	if a != b {
		t.Fatal("Get returned different pointers for the same key")
	}
	a.Add(3)
	if got := b.Load(); got != 3 {
		t.Errorf("shared value = %d, want 3", got)
	}
}

func TestSnapshotAndOrder(t *testing.T) {
	r := NewRegistry()
	r.Ints.Get("z.last").Store(1)
	r.Ints.Get("a.first").Store(2)
	r.Bools.Get("game.active").Store(true)
	r.Strings.Get("game.safe_color").Store("LIME")

	keys := r.Ints.Keys()
	if len(keys) != 2 || keys[0] != "a.first" || keys[1] != "z.last" {
		t.Errorf("Keys = %v, want sorted", keys)
	}

	s := r.Snapshot()
	if s.Ints["a.first"] != 2 || !s.Bools["game.active"] || s.Strings["game.safe_color"] != "LIME" {
		t.Errorf("Snapshot = %+v", s)
	}
	if r.TotalCount() != 4 {
		t.Errorf("TotalCount = %d, want 4", r.TotalCount())
	}
}

func TestAtomicStringTruncates(t *testing.T) {
	var s AtomicString
	if s.Load() != "" {
		t.Error("zero value must load empty")
	}
	long := "abcdefghijklmnopqrstuvwxyz0123"
	s.Store(long)
	if got := s.Load(); got != long[:MaxStringLen] {
		t.Errorf("Load = %q, want %q", got, long[:MaxStringLen])
	}
}
