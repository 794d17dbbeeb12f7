package filter

import (
	"fmt"
	"time"

	"github.com/envsense/pointobs/pkg/timeseries"
)

// TimeFormat is the timestamp layout used in time-bounds configurations.
const TimeFormat = "2006-01-02 15:04:05"

// Interval is one inclusive [Start, End] bound in TimeFormat notation.
type Interval struct {
	Start string `json:"start" yaml:"start"`
	End   string `json:"end" yaml:"end"`
}

// TimeBoundsConfig configures a TimeBoundsFilter with three independent
// include/exclude interval families: start is tested against record start
// times only, end against record end times only, and startend against
// both jointly.
type TimeBoundsConfig struct {
	StartInclude    []Interval `json:"start_include" yaml:"start_include"`
	StartExclude    []Interval `json:"start_exclude" yaml:"start_exclude"`
	StartEndInclude []Interval `json:"startend_include" yaml:"startend_include"`
	StartEndExclude []Interval `json:"startend_exclude" yaml:"startend_exclude"`
	EndInclude      []Interval `json:"end_include" yaml:"end_include"`
	EndExclude      []Interval `json:"end_exclude" yaml:"end_exclude"`
}

func (c *TimeBoundsConfig) Build() (Filter, error) {
	return NewTimeBoundsFilter(c)
}

type timeRange struct {
	start time.Time
	end   time.Time
}

func parseIntervals(intervals []Interval) ([]timeRange, error) {
	out := make([]timeRange, 0, len(intervals))
	for _, iv := range intervals {
		start, err := time.Parse(TimeFormat, iv.Start)
		if err != nil {
			return nil, fmt.Errorf("%w: bad timestamp %q: %v", ErrFilterConfig, iv.Start, err)
		}
		end, err := time.Parse(TimeFormat, iv.End)
		if err != nil {
			return nil, fmt.Errorf("%w: bad timestamp %q: %v", ErrFilterConfig, iv.End, err)
		}
		if start.After(end) {
			return nil, fmt.Errorf("%w: interval start %s later than end %s", ErrFilterConfig, iv.Start, iv.End)
		}
		out = append(out, timeRange{start: start, end: end})
	}
	return out, nil
}

func formatIntervals(ranges []timeRange) []Interval {
	out := make([]Interval, 0, len(ranges))
	for _, r := range ranges {
		out = append(out, Interval{
			Start: r.start.Format(TimeFormat),
			End:   r.end.Format(TimeFormat),
		})
	}
	return out
}

// TimeBoundsFilter keeps records by their measurement start and/or end
// times. A record passes a family when both test timestamps fall within
// one include interval (or the family has no includes) and the pair lies
// strictly outside every exclude interval's inclusive span. The final
// mask is the AND of the three families.
type TimeBoundsFilter struct {
	indexFilter
	startInclude    []timeRange
	startExclude    []timeRange
	startendInclude []timeRange
	startendExclude []timeRange
	endInclude      []timeRange
	endExclude      []timeRange
}

// NewTimeBoundsFilter parses and validates every interval before any
// state is stored.
func NewTimeBoundsFilter(cfg *TimeBoundsConfig) (*TimeBoundsFilter, error) {
	if cfg == nil {
		cfg = &TimeBoundsConfig{}
	}
	f := &TimeBoundsFilter{}
	type family struct {
		intervals []Interval
		dst       *[]timeRange
	}
	for _, fam := range []family{
		{cfg.StartInclude, &f.startInclude},
		{cfg.StartExclude, &f.startExclude},
		{cfg.StartEndInclude, &f.startendInclude},
		{cfg.StartEndExclude, &f.startendExclude},
		{cfg.EndInclude, &f.endInclude},
		{cfg.EndExclude, &f.endExclude},
	} {
		parsed, err := parseIntervals(fam.intervals)
		if err != nil {
			return nil, err
		}
		*fam.dst = parsed
	}
	f.computeMask = f.timeMask
	return f, nil
}

func (f *TimeBoundsFilter) Name() string { return "time_bounds" }

// Config echoes each interval family's own stored bounds.
func (f *TimeBoundsFilter) Config() Config {
	return &TimeBoundsConfig{
		StartInclude:    formatIntervals(f.startInclude),
		StartExclude:    formatIntervals(f.startExclude),
		StartEndInclude: formatIntervals(f.startendInclude),
		StartEndExclude: formatIntervals(f.startendExclude),
		EndInclude:      formatIntervals(f.endInclude),
		EndExclude:      formatIntervals(f.endExclude),
	}
}

// familyMask computes one family's mask for test pairs (t1[i], t2[i]).
func familyMask(t1, t2 []time.Time, includes, excludes []timeRange) []bool {
	mask := make([]bool, len(t1))
	if len(includes) == 0 {
		for i := range mask {
			mask[i] = true
		}
	} else {
		for _, r := range includes {
			for i := range mask {
				if !mask[i] && !t1[i].Before(r.start) && !t2[i].After(r.end) {
					mask[i] = true
				}
			}
		}
	}
	for _, r := range excludes {
		for i := range mask {
			if mask[i] {
				mask[i] = t1[i].Before(r.start) || t2[i].After(r.end)
			}
		}
	}
	return mask
}

// Contains tests aligned start/end timestamp slices against all three
// families and returns the combined per-record mask.
func (f *TimeBoundsFilter) Contains(startTimes, endTimes []time.Time) []bool {
	mask := familyMask(startTimes, startTimes, f.startInclude, f.startExclude)
	startend := familyMask(startTimes, endTimes, f.startendInclude, f.startendExclude)
	end := familyMask(endTimes, endTimes, f.endInclude, f.endExclude)
	for i := range mask {
		mask[i] = mask[i] && startend[i] && end[i]
	}
	return mask
}

// HasEnvelope reports whether any include family restricts time at all.
func (f *TimeBoundsFilter) HasEnvelope() bool {
	return len(f.startInclude) > 0 || len(f.startendInclude) > 0 || len(f.endInclude) > 0
}

// Envelope returns the earliest start and latest end spanned by the
// include intervals of all three families.
func (f *TimeBoundsFilter) Envelope() (time.Time, time.Time, error) {
	if !f.HasEnvelope() {
		return time.Time{}, time.Time{}, ErrNoEnvelope
	}
	var start, end time.Time
	first := true
	for _, family := range [][]timeRange{f.startInclude, f.startendInclude, f.endInclude} {
		for _, r := range family {
			if first {
				start, end = r.start, r.end
				first = false
				continue
			}
			if r.start.Before(start) {
				start = r.start
			}
			if r.end.After(end) {
				end = r.end
			}
		}
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: end %s before start %s", ErrNoEnvelope,
			end.Format(TimeFormat), start.Format(TimeFormat))
	}
	return start, end, nil
}

func (f *TimeBoundsFilter) timeMask(data *timeseries.Data, stations map[string]timeseries.Station, variables []string) ([]bool, error) {
	return f.Contains(data.StartTimes(), data.EndTimes()), nil
}
