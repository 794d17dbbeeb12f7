package timeseries

import "fmt"

// Station describes a fixed measurement site. ID is the unique key used
// throughout the library; Country is an uppercase ISO2 code.
type Station struct {
	ID        string            `json:"id" yaml:"id"`
	Country   string            `json:"country" yaml:"country"`
	Latitude  float64           `json:"latitude" yaml:"latitude"`
	Longitude float64           `json:"longitude" yaml:"longitude"`
	Altitude  float64           `json:"altitude" yaml:"altitude"`
	LongName  string            `json:"long_name,omitempty" yaml:"long_name,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Validate checks the coordinate ranges of a station record.
func (s Station) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("station ID is required")
	}
	if s.Latitude < -90 || s.Latitude > 90 {
		return fmt.Errorf("station %s: invalid latitude: %f", s.ID, s.Latitude)
	}
	if s.Longitude < -180 || s.Longitude > 180 {
		return fmt.Errorf("station %s: invalid longitude: %f", s.ID, s.Longitude)
	}
	return nil
}
