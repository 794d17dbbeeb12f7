package filter

import (
	"fmt"

	"github.com/envsense/pointobs/pkg/timeseries"
)

// VariableNameConfig configures a VariableNameFilter. ReaderToNew maps
// source variable names to presentation names; Include/Exclude operate on
// presentation names.
type VariableNameConfig struct {
	ReaderToNew map[string]string `json:"reader_to_new" yaml:"reader_to_new"`
	Include     []string          `json:"include" yaml:"include"`
	Exclude     []string          `json:"exclude" yaml:"exclude"`
}

func (c *VariableNameConfig) Build() (Filter, error) {
	return NewVariableNameFilter(c)
}

// VariableNameFilter renames variables and/or restricts the variable
// list. Unlike the record-reducing filters it leaves record contents
// untouched; TransformData only retags the dataset.
type VariableNameFilter struct {
	timeseries.PassFilter
	readerToNew map[string]string
	newToReader map[string]string
	names       includeExclude
}

// NewVariableNameFilter builds the filter and its inverse rename map. A
// non-injective ReaderToNew mapping (two source names sharing one
// presentation name) would make the inverse ambiguous and is rejected.
func NewVariableNameFilter(cfg *VariableNameConfig) (*VariableNameFilter, error) {
	if cfg == nil {
		cfg = &VariableNameConfig{}
	}
	forward := make(map[string]string, len(cfg.ReaderToNew))
	inverse := make(map[string]string, len(cfg.ReaderToNew))
	for reader, presentation := range cfg.ReaderToNew {
		if prev, ok := inverse[presentation]; ok {
			return nil, fmt.Errorf("%w: variables %q and %q both rename to %q",
				ErrFilterConfig, prev, reader, presentation)
		}
		forward[reader] = presentation
		inverse[presentation] = reader
	}
	return &VariableNameFilter{
		readerToNew: forward,
		newToReader: inverse,
		names: includeExclude{
			include: newStringSet(cfg.Include),
			exclude: newStringSet(cfg.Exclude),
		},
	}, nil
}

func (f *VariableNameFilter) Name() string { return "variables" }

func (f *VariableNameFilter) Config() Config {
	renames := make(map[string]string, len(f.readerToNew))
	for k, v := range f.readerToNew {
		renames[k] = v
	}
	return &VariableNameConfig{
		ReaderToNew: renames,
		Include:     f.names.include.sorted(),
		Exclude:     f.names.exclude.sorted(),
	}
}

// NewName translates a reader variable name to its presentation name,
// or returns it unchanged when no rename is configured.
func (f *VariableNameFilter) NewName(readerName string) string {
	if mapped, ok := f.readerToNew[readerName]; ok {
		return mapped
	}
	return readerName
}

// ReaderName is the inverse of NewName.
func (f *VariableNameFilter) ReaderName(newName string) string {
	if mapped, ok := f.newToReader[newName]; ok {
		return mapped
	}
	return newName
}

// HasName reports whether a presentation name survives include/exclude.
func (f *VariableNameFilter) HasName(newName string) bool {
	return f.names.keeps(newName)
}

// HasReaderName reports whether a reader variable survives after
// translation.
func (f *VariableNameFilter) HasReaderName(readerName string) bool {
	return f.HasName(f.NewName(readerName))
}

// TransformVariables maps every source name through NewName and keeps
// only the surviving presentation names.
func (f *VariableNameFilter) TransformVariables(variables []string) []string {
	out := make([]string, 0, len(variables))
	for _, v := range variables {
		newName := f.NewName(v)
		if f.HasName(newName) {
			out = append(out, newName)
		}
	}
	return out
}

// TransformData retags the dataset with the presentation name.
func (f *VariableNameFilter) TransformData(data *timeseries.Data, stations map[string]timeseries.Station, variables []string) (*timeseries.Data, error) {
	data.SetVariable(f.NewName(data.Variable()))
	return data, nil
}
