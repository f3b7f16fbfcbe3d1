// internal/config/config.go
// Package config loads optional YAML run configuration. Values only fill
// options the user did not set on the command line.
package config

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"methdiff/internal/cli"
)

// File mirrors the tunable subset of cli.Options. Input paths stay
// flag-only so a run is always reproducible from its command line.
type File struct {
	DetectionThreshold *float64 `yaml:"detection_threshold"`
	BackgroundFraction *float64 `yaml:"background_fraction"`
	CaseGroup          *string  `yaml:"case_group"`
	ControlGroup       *string  `yaml:"control_group"`
	Threads            *int     `yaml:"threads"`
	BatchSize          *int     `yaml:"batch_size"`
	Output             *string  `yaml:"output"`
}

// Load reads and strictly decodes a YAML config file.
func Load(path string) (*File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(raw)
}

// Parse decodes YAML bytes, rejecting unknown keys.
func Parse(raw []byte) (*File, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &f, nil
}

// Apply copies config values into opt for every flag the user left unset.
func (f *File) Apply(opt *cli.Options) {
	if f.DetectionThreshold != nil && !opt.Set["detection-threshold"] {
		opt.DetectionThreshold = *f.DetectionThreshold
	}
	if f.BackgroundFraction != nil && !opt.Set["background-fraction"] {
		opt.BackgroundFraction = *f.BackgroundFraction
	}
	if f.CaseGroup != nil && !opt.Set["case"] {
		opt.CaseGroup = *f.CaseGroup
	}
	if f.ControlGroup != nil && !opt.Set["control"] {
		opt.ControlGroup = *f.ControlGroup
	}
	if f.Threads != nil && !opt.Set["threads"] {
		opt.Threads = *f.Threads
	}
	if f.BatchSize != nil && !opt.Set["batch-size"] {
		opt.BatchSize = *f.BatchSize
	}
	if f.Output != nil && !opt.Set["output"] {
		opt.Output = *f.Output
	}
}
