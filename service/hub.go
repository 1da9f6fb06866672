package service

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/lixenwraith/colormix/logger"
)

// Hub registers services and drives them through Init, Start and Stop
// Dependencies come before dependents; unrelated services run in name order
type Hub struct {
	mu       sync.Mutex
	services map[string]Service
	order    []string // resolved on InitAll, dropped by Register
	running  []string // started services, stopped newest first
}

// NewHub creates an empty hub
func NewHub() *Hub {
	return &Hub{services: make(map[string]Service)}
}

// Register adds svc; names must be unique
func (h *Hub) Register(svc Service) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	name := svc.Name()
	if _, dup := h.services[name]; dup {
		return fmt.Errorf("service %q registered twice", name)
	}
	h.services[name] = svc
	h.order = nil
	return nil
}

// Names lists registered services alphabetically
func (h *Hub) Names() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	names := make([]string, 0, len(h.services))
	for name := range h.services {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// InitAll resolves the dependency order and initializes every service
// A failed Init stops the services initialized before it
func (h *Hub) InitAll() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.order == nil {
		order, err := h.resolve()
		if err != nil {
			return err
		}
		h.order = order
	}
	done, err := h.each("init", Service.Init)
	if err != nil {
		h.stopReverse(done)
	}
	return err
}

// StartAll starts services in dependency order
// A failed Start stops the services started before it
func (h *Hub) StartAll() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.order == nil {
		return errors.New("service hub: StartAll before InitAll")
	}
	done, err := h.each("start", Service.Start)
	if err != nil {
		h.stopReverse(done)
		h.running = nil
		return err
	}
	h.running = done
	return nil
}

// StopAll stops started services newest first, calling every Stop even after a failure
func (h *Hub) StopAll() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	errs := h.stopReverse(h.running)
	h.running = nil
	return errors.Join(errs...)
}

// each runs step over the resolved order, returning the names that succeeded
func (h *Hub) each(stage string, step func(Service) error) ([]string, error) {
	done := make([]string, 0, len(h.order))
	for _, name := range h.order {
		if err := step(h.services[name]); err != nil {
			return done, fmt.Errorf("%s %s: %w", stage, name, err)
		}
		logger.Debug("service "+stage, "service", name)
		done = append(done, name)
	}
	return done, nil
}

func (h *Hub) stopReverse(names []string) []error {
	var errs []error
	for _, name := range slices.Backward(names) {
		if err := h.services[name].Stop(); err != nil {
			logger.Warn("service stop failed", "service", name, "err", err)
			errs = append(errs, fmt.Errorf("stop %s: %w", name, err))
		}
	}
	return errs
}

// resolve orders services depth-first so each follows its dependencies
// Reports a missing dependency or the first cycle found, with its path
func (h *Hub) resolve() ([]string, error) {
	const (
		unseen = iota
		visiting
		placed
	)
	mark := make(map[string]int, len(h.services))
	order := make([]string, 0, len(h.services))

	var visit func(name string, path []string) error
	visit = func(name string, path []string) error {
		switch mark[name] {
		case placed:
			return nil
		case visiting:
			return fmt.Errorf("service dependency cycle: %s", strings.Join(append(path, name), " -> "))
		}
		mark[name] = visiting
		deps := slices.Sorted(slices.Values(h.services[name].Dependencies()))
		for _, dep := range deps {
			if _, ok := h.services[dep]; !ok {
				return fmt.Errorf("service %q needs unregistered %q", name, dep)
			}
			if err := visit(dep, append(path, name)); err != nil {
				return err
			}
		}
		mark[name] = placed
		order = append(order, name)
		return nil
	}

	for _, name := range slices.Sorted(maps.Keys(h.services)) {
		if err := visit(name, nil); err != nil {
			return nil, err
		}
	}
	return order, nil
}
