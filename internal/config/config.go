// Package config loads optional session defaults from a YAML file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// File mirrors the command-line flags. Unset fields leave the flag default
// in place.
type File struct {
	Port          string        `yaml:"port"`
	BaudRate      int           `yaml:"baud-rate"`
	WriteMode     *bool         `yaml:"write-mode"`
	ShowDirection *bool         `yaml:"show-direction"`
	Encoding      string        `yaml:"encoding"`
	LineEnding    string        `yaml:"line-ending"`
	Driver        string        `yaml:"driver"`
	Color         string        `yaml:"color"`
	Tick          time.Duration `yaml:"tick"`
	ReadTimeout   time.Duration `yaml:"read-timeout"`
	LogLevel      string        `yaml:"log-level"`
}

// Load reads path. Unknown keys are rejected so typos do not pass silently.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML document.
func Parse(data []byte) (*File, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if f.BaudRate < 0 {
		return nil, fmt.Errorf("parse config: invalid baud-rate %d", f.BaudRate)
	}
	return &f, nil
}

// Values returns the settings present in the file, keyed by flag name.
func (f *File) Values() map[string]string {
	v := map[string]string{}
	set := func(name, value string) {
		if value != "" {
			v[name] = value
		}
	}
	if f.BaudRate > 0 {
		v["baud-rate"] = fmt.Sprint(f.BaudRate)
	}
	if f.WriteMode != nil {
		v["write-mode"] = fmt.Sprint(*f.WriteMode)
	}
	if f.ShowDirection != nil {
		v["show-direction"] = fmt.Sprint(*f.ShowDirection)
	}
	if f.Tick > 0 {
		v["tick"] = f.Tick.String()
	}
	if f.ReadTimeout > 0 {
		v["read-timeout"] = f.ReadTimeout.String()
	}
	set("encoding", f.Encoding)
	set("line-ending", f.LineEnding)
	set("driver", f.Driver)
	set("color", f.Color)
	set("log-level", f.LogLevel)
	return v
}
