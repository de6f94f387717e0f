package instrument

import (
	"fmt"
	"slices"
	"strings"
	"sync"
)

// Registry holds instruments by ID. It is safe for concurrent use.
type Registry struct {
	mu          sync.RWMutex
	instruments map[string]*Instrument
}

// NewRegistry creates a registry containing the given instruments.
func NewRegistry(instruments ...*Instrument) (*Registry, error) {
	r := &Registry{instruments: make(map[string]*Instrument, len(instruments))}
	for _, inst := range instruments {
		if err := r.Register(inst); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// DefaultRegistry creates a registry preloaded with the built-in instruments.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(Builtins()...)
	if err != nil {
		panic(fmt.Sprintf("instrument: invalid built-in catalog: %v", err))
	}
	return r
}

// Register validates inst and adds it to the registry.
func (r *Registry) Register(inst *Instrument) error {
	if err := inst.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.instruments[inst.ID]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateInstrument, inst.ID)
	}
	r.instruments[inst.ID] = inst
	return nil
}

// Get returns the instrument registered under id.
func (r *Registry) Get(id string) (*Instrument, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	inst, ok := r.instruments[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q (known: %s)", ErrUnknownInstrument, id, strings.Join(r.idsLocked(), ", "))
	}
	return inst, nil
}

// All returns every registered instrument ordered by ID.
func (r *Registry) All() []*Instrument {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := r.idsLocked()
	out := make([]*Instrument, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.instruments[id])
	}
	return out
}

// IDs returns the registered IDs in sorted order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.idsLocked()
}

func (r *Registry) idsLocked() []string {
	ids := make([]string, 0, len(r.instruments))
	for id := range r.instruments {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
