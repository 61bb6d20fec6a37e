// Package profile loads modem settings from YAML files shared between the
// command line tools. Zero-valued fields mean "not set"; the tools only
// apply fields the profile actually carries, so codec defaults stay in
// charge of anything a profile omits.
package profile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Profile mirrors the YAML schema of a modem profile file.
type Profile struct {
	SampleRate  float64 `yaml:"sample_rate"`
	BaudRate    float64 `yaml:"baud"`
	CarrierHz   float64 `yaml:"carrier_hz"`
	DeviationHz float64 `yaml:"deviation_hz"`
	Amplitude   float64 `yaml:"amplitude"`

	GuardBandHz float64 `yaml:"guard_band_hz"`
	FilterOrder int     `yaml:"filter_order"`

	WindowSize int `yaml:"window_size"`
	HopLength  int `yaml:"hop_length"`

	TargetSampleRate float64 `yaml:"target_sample_rate"`
	Workers          int     `yaml:"workers"`
}

// HasTone reports whether the profile fixes a tone pair.
func (p *Profile) HasTone() bool {
	return p.CarrierHz > 0 && p.DeviationHz > 0
}

// Load reads and parses a profile file.
func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("profile: read %s: %w", path, err)
	}

	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("profile: parse %s: %w", path, err)
	}

	return &p, nil
}
