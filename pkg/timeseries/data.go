// Package timeseries defines the core data model for time-indexed
// environmental point measurements: the columnar Data container, the
// Station registry entry, quality Flags, and the Reader, Filter and
// Engine contracts that data sources and the filtering layer share.
package timeseries

import (
	"fmt"
	"time"
)

// Record is one observation: a single aligned tuple across all columns
// of a Data container.
type Record struct {
	Station           string
	StartTime         time.Time
	EndTime           time.Time
	Latitude          float64
	Longitude         float64
	Altitude          float64
	Value             float64
	Flag              Flag
	StandardDeviation float64
}

// Data is a columnar container for the observations of one variable.
// All columns are record-aligned: index i refers to the same observation
// in every column. Columns only ever grow or shrink in lock-step, via
// AppendRecord/Extend and Slice.
type Data struct {
	variable   string
	stations   []string
	startTimes []time.Time
	endTimes   []time.Time
	latitudes  []float64
	longitudes []float64
	altitudes  []float64
	values     []float64
	flags      []Flag
	stddevs    []float64
}

// NewData creates an empty container tagged with a variable name.
func NewData(variable string) *Data {
	return &Data{variable: variable}
}

// Variable returns the variable tag shared by all records.
func (d *Data) Variable() string { return d.variable }

// SetVariable replaces the variable tag. Record contents are untouched;
// renaming filters use this to retag a dataset.
func (d *Data) SetVariable(variable string) { d.variable = variable }

// Len returns the record count N.
func (d *Data) Len() int { return len(d.values) }

// Column accessors return the underlying slices. Callers must treat them
// as read-only views; use Slice to derive reduced datasets.

func (d *Data) Stations() []string            { return d.stations }
func (d *Data) StartTimes() []time.Time       { return d.startTimes }
func (d *Data) EndTimes() []time.Time         { return d.endTimes }
func (d *Data) Latitudes() []float64          { return d.latitudes }
func (d *Data) Longitudes() []float64         { return d.longitudes }
func (d *Data) Altitudes() []float64          { return d.altitudes }
func (d *Data) Values() []float64             { return d.values }
func (d *Data) Flags() []Flag                 { return d.flags }
func (d *Data) StandardDeviations() []float64 { return d.stddevs }

// Record assembles the aligned tuple at index i.
func (d *Data) Record(i int) Record {
	return Record{
		Station:           d.stations[i],
		StartTime:         d.startTimes[i],
		EndTime:           d.endTimes[i],
		Latitude:          d.latitudes[i],
		Longitude:         d.longitudes[i],
		Altitude:          d.altitudes[i],
		Value:             d.values[i],
		Flag:              d.flags[i],
		StandardDeviation: d.stddevs[i],
	}
}

// AppendRecord extends every column by one entry.
func (d *Data) AppendRecord(r Record) {
	d.stations = append(d.stations, r.Station)
	d.startTimes = append(d.startTimes, r.StartTime)
	d.endTimes = append(d.endTimes, r.EndTime)
	d.latitudes = append(d.latitudes, r.Latitude)
	d.longitudes = append(d.longitudes, r.Longitude)
	d.altitudes = append(d.altitudes, r.Altitude)
	d.values = append(d.values, r.Value)
	d.flags = append(d.flags, r.Flag)
	d.stddevs = append(d.stddevs, r.StandardDeviation)
}

// Extend appends all records of other, keeping every column in lock-step.
func (d *Data) Extend(other *Data) {
	d.stations = append(d.stations, other.stations...)
	d.startTimes = append(d.startTimes, other.startTimes...)
	d.endTimes = append(d.endTimes, other.endTimes...)
	d.latitudes = append(d.latitudes, other.latitudes...)
	d.longitudes = append(d.longitudes, other.longitudes...)
	d.altitudes = append(d.altitudes, other.altitudes...)
	d.values = append(d.values, other.values...)
	d.flags = append(d.flags, other.flags...)
	d.stddevs = append(d.stddevs, other.stddevs...)
}

// Slice returns a new Data holding only the records where mask is true.
// It is the single slicing primitive: all columns are rebuilt together so
// a result can never be partially aligned. The mask length must equal the
// record count.
func (d *Data) Slice(mask []bool) (*Data, error) {
	if len(mask) != d.Len() {
		return nil, fmt.Errorf("mask length %d does not match record count %d", len(mask), d.Len())
	}
	n := 0
	for _, keep := range mask {
		if keep {
			n++
		}
	}
	out := &Data{
		variable:   d.variable,
		stations:   make([]string, 0, n),
		startTimes: make([]time.Time, 0, n),
		endTimes:   make([]time.Time, 0, n),
		latitudes:  make([]float64, 0, n),
		longitudes: make([]float64, 0, n),
		altitudes:  make([]float64, 0, n),
		values:     make([]float64, 0, n),
		flags:      make([]Flag, 0, n),
		stddevs:    make([]float64, 0, n),
	}
	for i, keep := range mask {
		if keep {
			out.AppendRecord(d.Record(i))
		}
	}
	return out, nil
}
