// Package sqlitereader implements the "sqlite_timeseries" engine:
// observation data from a SQLite database, e.g. an extract produced by a
// collection pipeline.
//
// The database holds a stations table (station metadata as a msgpack
// blob) and an observations table; see Schema.
package sqlitereader

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/vmihailenco/msgpack/v5"
	_ "modernc.org/sqlite"

	"github.com/envsense/pointobs/internal/log"
	"github.com/envsense/pointobs/internal/readers"
	"github.com/envsense/pointobs/pkg/filter"
	"github.com/envsense/pointobs/pkg/timeseries"
)

const EngineName = "sqlite_timeseries"

// Schema creates the tables this engine reads. Timestamps are stored as
// "2006-01-02 15:04:05" text, flags by symbolic name.
const Schema = `
CREATE TABLE IF NOT EXISTS stations (
    id        TEXT PRIMARY KEY,
    country   TEXT NOT NULL,
    latitude  REAL NOT NULL,
    longitude REAL NOT NULL,
    altitude  REAL NOT NULL DEFAULT 0,
    long_name TEXT NOT NULL DEFAULT '',
    metadata  BLOB
);
CREATE TABLE IF NOT EXISTS observations (
    variable           TEXT NOT NULL,
    station            TEXT NOT NULL REFERENCES stations(id),
    start_time         TEXT NOT NULL,
    end_time           TEXT NOT NULL,
    latitude           REAL NOT NULL,
    longitude          REAL NOT NULL,
    altitude           REAL NOT NULL DEFAULT 0,
    value              REAL NOT NULL,
    flag               TEXT NOT NULL,
    standard_deviation REAL NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS observations_variable ON observations(variable);
`

// Engine opens SQLite observation databases.
type Engine struct{}

func (Engine) Name() string        { return EngineName }
func (Engine) Description() string { return "observation time-series from SQLite databases" }
func (Engine) URL() string         { return "https://github.com/envsense/pointobs" }

// Open loads all stations and observations from the database at source
// and returns a reader serving them through the given filter chain. The
// database is closed before Open returns.
func (Engine) Open(source string, filters ...timeseries.Filter) (timeseries.Reader, error) {
	db, err := sql.Open("sqlite", source)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping SQLite database: %w", err)
	}

	mem := readers.NewMemory()
	if err := loadStations(db, mem); err != nil {
		return nil, err
	}
	if err := loadObservations(db, mem); err != nil {
		return nil, err
	}

	return filter.NewReader(mem, filters...), nil
}

func loadStations(db *sql.DB, mem *readers.Memory) error {
	rows, err := db.Query(`SELECT id, country, latitude, longitude, altitude, long_name, metadata FROM stations`)
	if err != nil {
		return fmt.Errorf("failed to load stations: %w", err)
	}
	defer rows.Close()

	count := 0
	for rows.Next() {
		var s timeseries.Station
		var blob []byte
		if err := rows.Scan(&s.ID, &s.Country, &s.Latitude, &s.Longitude, &s.Altitude, &s.LongName, &blob); err != nil {
			return fmt.Errorf("failed to scan station: %w", err)
		}
		if len(blob) > 0 {
			if err := msgpack.Unmarshal(blob, &s.Metadata); err != nil {
				return fmt.Errorf("station %s: failed to decode metadata: %w", s.ID, err)
			}
		}
		if err := s.Validate(); err != nil {
			return err
		}
		mem.SetStation(s)
		count++
	}
	if err := rows.Err(); err != nil {
		return err
	}
	log.Debugf("sqlite_timeseries: loaded %d stations", count)
	return nil
}

func loadObservations(db *sql.DB, mem *readers.Memory) error {
	rows, err := db.Query(`SELECT variable, station, start_time, end_time, latitude, longitude, altitude,
		value, flag, standard_deviation FROM observations ORDER BY variable, start_time`)
	if err != nil {
		return fmt.Errorf("failed to load observations: %w", err)
	}
	defer rows.Close()

	count := 0
	for rows.Next() {
		var variable, startText, endText, flagText string
		var r timeseries.Record
		if err := rows.Scan(&variable, &r.Station, &startText, &endText, &r.Latitude, &r.Longitude,
			&r.Altitude, &r.Value, &flagText, &r.StandardDeviation); err != nil {
			return fmt.Errorf("failed to scan observation: %w", err)
		}
		if r.StartTime, err = time.Parse(filter.TimeFormat, startText); err != nil {
			return fmt.Errorf("bad start time %q: %w", startText, err)
		}
		if r.EndTime, err = time.Parse(filter.TimeFormat, endText); err != nil {
			return fmt.Errorf("bad end time %q: %w", endText, err)
		}
		if r.Flag, err = timeseries.ParseFlag(flagText); err != nil {
			return err
		}
		mem.Append(variable, r)
		count++
	}
	if err := rows.Err(); err != nil {
		return err
	}
	log.Debugf("sqlite_timeseries: loaded %d observations", count)
	return nil
}

// InsertStation writes one station row, encoding metadata with msgpack.
// It is used by pipelines building extracts and by tests.
func InsertStation(db *sql.DB, s timeseries.Station) error {
	var blob []byte
	if len(s.Metadata) > 0 {
		var err error
		blob, err = msgpack.Marshal(s.Metadata)
		if err != nil {
			return fmt.Errorf("station %s: failed to encode metadata: %w", s.ID, err)
		}
	}
	_, err := db.Exec(`INSERT INTO stations (id, country, latitude, longitude, altitude, long_name, metadata)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		s.ID, s.Country, s.Latitude, s.Longitude, s.Altitude, s.LongName, blob)
	return err
}

// InsertObservation writes one observation row.
func InsertObservation(db *sql.DB, variable string, r timeseries.Record) error {
	_, err := db.Exec(`INSERT INTO observations (variable, station, start_time, end_time, latitude,
		longitude, altitude, value, flag, standard_deviation) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		variable, r.Station, r.StartTime.Format(filter.TimeFormat), r.EndTime.Format(filter.TimeFormat),
		r.Latitude, r.Longitude, r.Altitude, r.Value, r.Flag.String(), r.StandardDeviation)
	return err
}

func init() {
	if err := timeseries.RegisterEngine(Engine{}); err != nil {
		panic(err)
	}
}
