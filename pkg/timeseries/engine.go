package timeseries

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// Engine opens readers for one kind of data source (CSV files, SQLite
// databases, TimescaleDB connections). Engines register themselves under
// a unique name at package init time.
type Engine interface {
	// Name is the unique engine key, e.g. "csv_timeseries".
	Name() string

	// Description is a one-line human-readable summary.
	Description() string

	// URL points at the engine's documentation or project page.
	URL() string

	// Open connects to source and returns a reader with the given
	// filters applied to everything it serves.
	Open(source string, filters ...Filter) (Reader, error)
}

var (
	ErrDuplicateEngine = errors.New("engine name already registered")
	ErrUnknownEngine   = errors.New("unknown engine")
)

var engines = struct {
	sync.RWMutex
	byName map[string]Engine
}{byName: make(map[string]Engine)}

// RegisterEngine adds an engine to the process-wide table. Registering a
// name twice fails and leaves the existing entry untouched.
func RegisterEngine(e Engine) error {
	engines.Lock()
	defer engines.Unlock()
	if _, ok := engines.byName[e.Name()]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateEngine, e.Name())
	}
	engines.byName[e.Name()] = e
	return nil
}

// Engines returns the sorted names of all registered engines.
func Engines() []string {
	engines.RLock()
	defer engines.RUnlock()
	names := make([]string, 0, len(engines.byName))
	for name := range engines.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LookupEngine returns a registered engine by name.
func LookupEngine(name string) (Engine, error) {
	engines.RLock()
	defer engines.RUnlock()
	e, ok := engines.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEngine, name)
	}
	return e, nil
}

// OpenEngine is shorthand for LookupEngine followed by Open.
func OpenEngine(name, source string, filters ...Filter) (Reader, error) {
	e, err := LookupEngine(name)
	if err != nil {
		return nil, err
	}
	return e.Open(source, filters...)
}
