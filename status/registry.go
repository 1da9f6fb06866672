package status

import "sync/atomic"

// Registry is the central metrics facade
// Components cache pointers at construction; the tick loop writes directly to atomics
type Registry struct {
	Bools   *MetricMap[atomic.Bool]
	Ints    *MetricMap[atomic.Int64]
	Strings *MetricMap[AtomicString]
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	return &Registry{
		Bools:   NewMetricMap[atomic.Bool](),
		Ints:    NewMetricMap[atomic.Int64](),
		Strings: NewMetricMap[AtomicString](),
	}
}

// TotalCount returns total metrics across all types
func (r *Registry) TotalCount() int {
	return r.Bools.Count() + r.Ints.Count() + r.Strings.Count()
}

// Snapshot copies every metric into plain maps, for the state endpoint and status command
func (r *Registry) Snapshot() Snapshot {
	s := Snapshot{
		Bools:   make(map[string]bool),
		Ints:    make(map[string]int64),
		Strings: make(map[string]string),
	}
	r.Bools.Range(func(k string, p *atomic.Bool) { s.Bools[k] = p.Load() })
	r.Ints.Range(func(k string, p *atomic.Int64) { s.Ints[k] = p.Load() })
	r.Strings.Range(func(k string, p *AtomicString) { s.Strings[k] = p.Load() })
	return s
}

// Snapshot is a point-in-time copy of a Registry
type Snapshot struct {
	Bools   map[string]bool   `json:"bools"`
	Ints    map[string]int64  `json:"ints"`
	Strings map[string]string `json:"strings"`
}
