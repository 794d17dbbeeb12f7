package timeseries

import (
	"errors"
	"testing"
)

type fakeEngine struct {
	name string
}

func (e fakeEngine) Name() string        { return e.name }
func (e fakeEngine) Description() string { return "fake engine for tests" }
func (e fakeEngine) URL() string         { return "https://example.invalid" }

func (e fakeEngine) Open(source string, filters ...Filter) (Reader, error) {
	return nil, errors.New("not implemented")
}

func TestEngineRegistry(t *testing.T) {
	if err := RegisterEngine(fakeEngine{name: "fake_a"}); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}
	if err := RegisterEngine(fakeEngine{name: "fake_a"}); !errors.Is(err, ErrDuplicateEngine) {
		t.Errorf("expected ErrDuplicateEngine, got %v", err)
	}

	found := false
	for _, name := range Engines() {
		if name == "fake_a" {
			found = true
		}
	}
	if !found {
		t.Error("registered engine missing from Engines()")
	}

	if _, err := LookupEngine("no_such_engine"); !errors.Is(err, ErrUnknownEngine) {
		t.Errorf("expected ErrUnknownEngine, got %v", err)
	}
	if _, err := OpenEngine("no_such_engine", "source"); !errors.Is(err, ErrUnknownEngine) {
		t.Errorf("expected ErrUnknownEngine from OpenEngine, got %v", err)
	}
}
