package filter

import (
	"errors"
	"testing"
)

func TestRegistryRegisterDuplicate(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(NewStationFilter(nil)); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}
	if err := r.Register(NewStationFilter(nil)); !errors.Is(err, ErrDuplicateFilter) {
		t.Errorf("expected ErrDuplicateFilter, got %v", err)
	}
	// the original registration is untouched
	if _, err := r.Get("stations", nil); err != nil {
		t.Errorf("existing registration broken: %v", err)
	}
}

func TestRegistryGetUnknown(t *testing.T) {
	r := NewRegistry()
	if _, err := r.Get("no_such_filter", nil); !errors.Is(err, ErrUnknownFilter) {
		t.Errorf("expected ErrUnknownFilter, got %v", err)
	}
	if _, err := r.NewConfig("no_such_filter"); !errors.Is(err, ErrUnknownFilter) {
		t.Errorf("expected ErrUnknownFilter from NewConfig, got %v", err)
	}
}

func TestRegistryGetReturnsFreshInstances(t *testing.T) {
	r := Default()
	f1, err := r.Get("stations", nil)
	if err != nil {
		t.Fatal(err)
	}
	f2, err := r.Get("stations", nil)
	if err != nil {
		t.Fatal(err)
	}
	if f1 == f2 {
		t.Error("Get must construct a distinct instance per call")
	}
}

func TestRegistryGetWithConfig(t *testing.T) {
	f, err := Default().Get("stations", &StationConfig{Exclude: []string{"station1"}})
	if err != nil {
		t.Fatal(err)
	}
	sf := f.(*StationFilter)
	if sf.HasStation("station1") {
		t.Error("config was not applied")
	}
	if !sf.HasStation("station2") {
		t.Error("unrelated station rejected")
	}
}

func TestRegistryGetRejectsForeignConfig(t *testing.T) {
	if _, err := Default().Get("stations", &CountryConfig{}); !errors.Is(err, ErrFilterConfig) {
		t.Errorf("expected ErrFilterConfig for mismatched config, got %v", err)
	}
}

func TestDefaultRegistryBuiltins(t *testing.T) {
	names := Default().List()
	want := []string{"bounding_boxes", "countries", "flags", "stations", "time_bounds", "variables"}
	if len(names) != len(want) {
		t.Fatalf("List() = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("List()[%d] = %q, want %q", i, names[i], want[i])
		}
	}
	for _, name := range want {
		f, err := Default().Get(name, nil)
		if err != nil {
			t.Errorf("Get(%q) failed: %v", name, err)
			continue
		}
		if f.Name() != name {
			t.Errorf("filter registered as %q reports name %q", name, f.Name())
		}
	}
}
