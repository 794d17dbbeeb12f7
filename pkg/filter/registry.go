package filter

import (
	"fmt"
	"sort"
	"sync"
)

// Registry maps a stable filter name to a prototype instance. The
// prototype is only a type/name reference: Get always constructs a fresh
// filter, so callers never share mutable state through the registry.
//
// Register is expected to complete before concurrent use begins; the map
// is nonetheless guarded so registration and lookup may overlap.
type Registry struct {
	mu     sync.RWMutex
	protos map[string]Filter
}

func NewRegistry() *Registry {
	return &Registry{protos: make(map[string]Filter)}
}

// Register stores a prototype under its name. Registering a taken name
// fails and leaves the existing entry untouched.
func (r *Registry) Register(f Filter) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.protos[f.Name()]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateFilter, f.Name())
	}
	r.protos[f.Name()] = f
	return nil
}

// Get constructs a new filter of the named prototype's concrete type from
// cfg. A nil cfg builds the prototype's no-op configuration. The built
// filter must answer to the requested name; passing another filter's
// config is a configuration error.
func (r *Registry) Get(name string, cfg Config) (Filter, error) {
	r.mu.RLock()
	proto, ok := r.protos[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFilter, name)
	}
	if cfg == nil {
		cfg = proto.Config()
	}
	f, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	if f.Name() != name {
		return nil, fmt.Errorf("%w: config for %q passed to %q", ErrFilterConfig, f.Name(), name)
	}
	return f, nil
}

// NewConfig returns a fresh copy of the named prototype's configuration,
// ready to be decoded into from YAML or JSON and passed back to Get.
func (r *Registry) NewConfig(name string) (Config, error) {
	r.mu.RLock()
	proto, ok := r.protos[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFilter, name)
	}
	return proto.Config(), nil
}

// List returns the sorted names of all registered filters.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.protos))
	for name := range r.protos {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// Default returns the process-wide registry, created on first use and
// pre-populated with the built-in filters.
func Default() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewRegistry()
		variables, err := NewVariableNameFilter(nil)
		if err != nil {
			panic(err)
		}
		bboxes, err := NewBoundingBoxFilter(nil)
		if err != nil {
			panic(err)
		}
		timeBounds, err := NewTimeBoundsFilter(nil)
		if err != nil {
			panic(err)
		}
		for _, f := range []Filter{
			variables,
			NewStationFilter(nil),
			NewCountryFilter(nil),
			bboxes,
			NewFlagFilter(nil),
			timeBounds,
		} {
			if err := defaultRegistry.Register(f); err != nil {
				panic(err)
			}
		}
	})
	return defaultRegistry
}
