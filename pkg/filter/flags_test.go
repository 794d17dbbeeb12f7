package filter

import (
	"testing"
	"time"

	"github.com/envsense/pointobs/pkg/timeseries"
)

func flagData(flags ...timeseries.Flag) *timeseries.Data {
	d := timeseries.NewData("SOx")
	base := time.Date(1997, time.January, 1, 0, 0, 0, 0, time.UTC)
	for i, fl := range flags {
		d.AppendRecord(timeseries.Record{
			Station:   "station1",
			StartTime: base.AddDate(0, 0, i),
			EndTime:   base.AddDate(0, 0, i+1),
			Value:     float64(i),
			Flag:      fl,
		})
	}
	return d
}

func TestFlagFilterValidSet(t *testing.T) {
	tests := []struct {
		name string
		cfg  FlagConfig
		flag timeseries.Flag
		want bool
	}{
		{"empty config keeps all", FlagConfig{}, timeseries.FlagInvalid, true},
		{"include restricts", FlagConfig{Include: []timeseries.Flag{timeseries.FlagValid}}, timeseries.FlagInvalid, false},
		{"include keeps member", FlagConfig{Include: []timeseries.Flag{timeseries.FlagValid}}, timeseries.FlagValid, true},
		{"exclude subtracts from full domain", FlagConfig{Exclude: []timeseries.Flag{timeseries.FlagInvalid}}, timeseries.FlagInvalid, false},
		{"exclude beats include", FlagConfig{
			Include: []timeseries.Flag{timeseries.FlagValid, timeseries.FlagBelowThreshold},
			Exclude: []timeseries.Flag{timeseries.FlagBelowThreshold},
		}, timeseries.FlagBelowThreshold, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFlagFilter(&tt.cfg)
			if got := f.HasFlag(tt.flag); got != tt.want {
				t.Errorf("HasFlag(%v) = %v, want %v", tt.flag, got, tt.want)
			}
		})
	}
}

func TestFlagFilterTransformData(t *testing.T) {
	d := flagData(
		timeseries.FlagValid,
		timeseries.FlagBelowThreshold,
		timeseries.FlagInvalid,
		timeseries.FlagValid,
	)
	f := NewFlagFilter(&FlagConfig{Include: []timeseries.Flag{timeseries.FlagValid, timeseries.FlagBelowThreshold}})

	out, err := f.TransformData(d, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if out.Len() != 3 {
		t.Fatalf("expected 3 records, got %d", out.Len())
	}
	for i, fl := range out.Flags() {
		if fl == timeseries.FlagInvalid {
			t.Errorf("record %d: invalid flag survived", i)
		}
	}

	none := NewFlagFilter(&FlagConfig{Include: []timeseries.Flag{timeseries.FlagInvalid}})
	out, err = none.TransformData(d, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if out.Len() != 1 {
		t.Errorf("expected only the invalid record, got %d", out.Len())
	}
}

func TestFlagFilterConfigEchoesOriginal(t *testing.T) {
	f := NewFlagFilter(&FlagConfig{Exclude: []timeseries.Flag{timeseries.FlagInvalid}})
	cfg := f.Config().(*FlagConfig)
	if len(cfg.Include) != 0 {
		t.Errorf("config include must stay empty, got %v", cfg.Include)
	}
	if len(cfg.Exclude) != 1 || cfg.Exclude[0] != timeseries.FlagInvalid {
		t.Errorf("config exclude not echoed: %v", cfg.Exclude)
	}

	rebuilt, err := cfg.Build()
	if err != nil {
		t.Fatal(err)
	}
	rb := rebuilt.(*FlagFilter)
	for _, fl := range timeseries.AllFlags() {
		if f.HasFlag(fl) != rb.HasFlag(fl) {
			t.Errorf("rebuilt filter disagrees for flag %v", fl)
		}
	}
}
