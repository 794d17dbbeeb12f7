// Package csvreader implements the "csv_timeseries" engine: observation
// data from a flat CSV file.
//
// Each row is one observation with twelve columns:
//
//	variable, station, country, latitude, longitude, altitude,
//	start_time, end_time, value, unit, flag, standard_deviation
//
// Timestamps use "2006-01-02 15:04:05", flags their symbolic names
// (VALID, BELOW_THRESHOLD, ...). Lines starting with # are ignored.
package csvreader

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/envsense/pointobs/internal/log"
	"github.com/envsense/pointobs/internal/readers"
	"github.com/envsense/pointobs/pkg/filter"
	"github.com/envsense/pointobs/pkg/timeseries"
)

const EngineName = "csv_timeseries"

const numColumns = 12

// Engine opens CSV observation files.
type Engine struct{}

func (Engine) Name() string        { return EngineName }
func (Engine) Description() string { return "observation time-series from CSV files" }
func (Engine) URL() string         { return "https://github.com/envsense/pointobs" }

// Open parses the whole file and returns a reader serving the parsed
// observations through the given filter chain.
func (Engine) Open(source string, filters ...timeseries.Filter) (timeseries.Reader, error) {
	f, err := os.Open(source)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", source, err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.Comment = '#'
	cr.FieldsPerRecord = numColumns
	cr.TrimLeadingSpace = true

	mem := readers.NewMemory()
	rows := 0
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", source, err)
		}
		if err := appendRow(mem, row); err != nil {
			return nil, fmt.Errorf("%s row %d: %w", source, rows+1, err)
		}
		rows++
	}
	log.Debugf("csv_timeseries: parsed %d observations from %s", rows, source)

	return filter.NewReader(mem, filters...), nil
}

func appendRow(mem *readers.Memory, row []string) error {
	lat, err := strconv.ParseFloat(row[3], 64)
	if err != nil {
		return fmt.Errorf("bad latitude %q: %w", row[3], err)
	}
	lon, err := strconv.ParseFloat(row[4], 64)
	if err != nil {
		return fmt.Errorf("bad longitude %q: %w", row[4], err)
	}
	alt, err := strconv.ParseFloat(row[5], 64)
	if err != nil {
		return fmt.Errorf("bad altitude %q: %w", row[5], err)
	}
	start, err := time.Parse(filter.TimeFormat, row[6])
	if err != nil {
		return fmt.Errorf("bad start time %q: %w", row[6], err)
	}
	end, err := time.Parse(filter.TimeFormat, row[7])
	if err != nil {
		return fmt.Errorf("bad end time %q: %w", row[7], err)
	}
	value, err := strconv.ParseFloat(row[8], 64)
	if err != nil {
		return fmt.Errorf("bad value %q: %w", row[8], err)
	}
	fl, err := timeseries.ParseFlag(row[10])
	if err != nil {
		return err
	}
	stddev, err := strconv.ParseFloat(row[11], 64)
	if err != nil {
		return fmt.Errorf("bad standard deviation %q: %w", row[11], err)
	}

	station := timeseries.Station{
		ID:        row[1],
		Country:   row[2],
		Latitude:  lat,
		Longitude: lon,
		Altitude:  alt,
	}
	if err := station.Validate(); err != nil {
		return err
	}
	mem.SetStation(station)
	mem.Append(row[0], timeseries.Record{
		Station:           row[1],
		StartTime:         start,
		EndTime:           end,
		Latitude:          lat,
		Longitude:         lon,
		Altitude:          alt,
		Value:             value,
		Flag:              fl,
		StandardDeviation: stddev,
	})
	return nil
}

func init() {
	if err := timeseries.RegisterEngine(Engine{}); err != nil {
		panic(err)
	}
}
