package filter

import (
	"github.com/envsense/pointobs/pkg/timeseries"
)

// FlagConfig configures a FlagFilter.
type FlagConfig struct {
	Include []timeseries.Flag `json:"include" yaml:"include"`
	Exclude []timeseries.Flag `json:"exclude" yaml:"exclude"`
}

func (c *FlagConfig) Build() (Filter, error) {
	return NewFlagFilter(c), nil
}

// FlagFilter keeps records whose quality flag is valid, where
// valid = (include if non-empty, else the full flag domain) − exclude.
type FlagFilter struct {
	indexFilter
	include []timeseries.Flag
	exclude []timeseries.Flag
	valid   map[timeseries.Flag]struct{}
}

func NewFlagFilter(cfg *FlagConfig) *FlagFilter {
	if cfg == nil {
		cfg = &FlagConfig{}
	}
	base := cfg.Include
	if len(base) == 0 {
		base = timeseries.AllFlags()
	}
	valid := make(map[timeseries.Flag]struct{}, len(base))
	for _, fl := range base {
		valid[fl] = struct{}{}
	}
	for _, fl := range cfg.Exclude {
		delete(valid, fl)
	}
	f := &FlagFilter{
		include: append([]timeseries.Flag(nil), cfg.Include...),
		exclude: append([]timeseries.Flag(nil), cfg.Exclude...),
		valid:   valid,
	}
	f.computeMask = f.flagMask
	return f
}

func (f *FlagFilter) Name() string { return "flags" }

// Config echoes the original include/exclude sets, not the derived valid
// set.
func (f *FlagFilter) Config() Config {
	return &FlagConfig{
		Include: append([]timeseries.Flag(nil), f.include...),
		Exclude: append([]timeseries.Flag(nil), f.exclude...),
	}
}

// HasFlag reports whether a flag is in the valid set.
func (f *FlagFilter) HasFlag(fl timeseries.Flag) bool {
	_, ok := f.valid[fl]
	return ok
}

func (f *FlagFilter) flagMask(data *timeseries.Data, stations map[string]timeseries.Station, variables []string) ([]bool, error) {
	mask := make([]bool, data.Len())
	for i, fl := range data.Flags() {
		mask[i] = f.HasFlag(fl)
	}
	return mask, nil
}
