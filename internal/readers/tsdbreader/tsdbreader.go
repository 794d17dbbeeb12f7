// Package tsdbreader implements the "timescaledb" engine: observation
// data from a Postgres/TimescaleDB observations hypertable, accessed via
// GORM.
package tsdbreader

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/envsense/pointobs/internal/log"
	"github.com/envsense/pointobs/internal/readers"
	"github.com/envsense/pointobs/pkg/filter"
	"github.com/envsense/pointobs/pkg/timeseries"
)

const EngineName = "timescaledb"

// stationRow mirrors the stations table.
type stationRow struct {
	ID        string  `gorm:"column:id;primaryKey"`
	Country   string  `gorm:"column:country"`
	Latitude  float64 `gorm:"column:latitude"`
	Longitude float64 `gorm:"column:longitude"`
	Altitude  float64 `gorm:"column:altitude"`
	LongName  string  `gorm:"column:long_name"`
}

func (stationRow) TableName() string { return "stations" }

// observationRow mirrors the observations hypertable.
type observationRow struct {
	Variable          string    `gorm:"column:variable"`
	Station           string    `gorm:"column:station"`
	StartTime         time.Time `gorm:"column:start_time"`
	EndTime           time.Time `gorm:"column:end_time"`
	Latitude          float64   `gorm:"column:latitude"`
	Longitude         float64   `gorm:"column:longitude"`
	Altitude          float64   `gorm:"column:altitude"`
	Value             float64   `gorm:"column:value"`
	Flag              string    `gorm:"column:flag"`
	StandardDeviation float64   `gorm:"column:standard_deviation"`
}

func (observationRow) TableName() string { return "observations" }

// Engine opens TimescaleDB connections. The source is a Postgres
// connection string.
type Engine struct{}

func (Engine) Name() string        { return EngineName }
func (Engine) Description() string { return "observation time-series from a TimescaleDB hypertable" }
func (Engine) URL() string         { return "https://github.com/envsense/pointobs" }

// Open connects, loads all stations and observations, disconnects, and
// returns a reader serving them through the given filter chain.
func (Engine) Open(source string, filters ...timeseries.Filter) (timeseries.Reader, error) {
	// Route gorm's logging through zap
	dbLogger := logger.New(
		zap.NewStdLog(log.GetZapLogger()),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logger.Warn,
		},
	)

	log.Info("connecting to TimescaleDB...")
	db, err := gorm.Open(postgres.Open(source), &gorm.Config{Logger: dbLogger})
	if err != nil {
		return nil, fmt.Errorf("unable to create a TimescaleDB connection: %w", err)
	}
	defer func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	}()

	mem := readers.NewMemory()

	var stations []stationRow
	if err := db.Find(&stations).Error; err != nil {
		return nil, fmt.Errorf("failed to load stations: %w", err)
	}
	for _, row := range stations {
		s := timeseries.Station{
			ID:        row.ID,
			Country:   row.Country,
			Latitude:  row.Latitude,
			Longitude: row.Longitude,
			Altitude:  row.Altitude,
			LongName:  row.LongName,
		}
		if err := s.Validate(); err != nil {
			return nil, err
		}
		mem.SetStation(s)
	}

	var observations []observationRow
	if err := db.Order("variable, start_time").Find(&observations).Error; err != nil {
		return nil, fmt.Errorf("failed to load observations: %w", err)
	}
	for _, row := range observations {
		fl, err := timeseries.ParseFlag(row.Flag)
		if err != nil {
			return nil, err
		}
		mem.Append(row.Variable, timeseries.Record{
			Station:           row.Station,
			StartTime:         row.StartTime,
			EndTime:           row.EndTime,
			Latitude:          row.Latitude,
			Longitude:         row.Longitude,
			Altitude:          row.Altitude,
			Value:             row.Value,
			Flag:              fl,
			StandardDeviation: row.StandardDeviation,
		})
	}
	log.Infof("TimescaleDB: loaded %d stations, %d observations", len(stations), len(observations))

	return filter.NewReader(mem, filters...), nil
}

func init() {
	if err := timeseries.RegisterEngine(Engine{}); err != nil {
		panic(err)
	}
}
