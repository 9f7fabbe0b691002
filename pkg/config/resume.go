package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// SaveResume marshals config (a tournament.Config or tournament.SPRTConfig)
// to ResumeDir/<kind>/<name>.yaml, so a crashed or interrupted run can be
// started again with the same configuration by the "resume" command. Only
// the configuration is saved, not the run's progress.
func SaveResume(kind, name string, cfg any) error {
	dir := filepath.Join(ResumeDir, kind)
	if err := os.MkdirAll(dir, FilePermissions); err != nil {
		return fmt.Errorf("config: creating resume dir: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: marshaling resume state: %w", err)
	}

	return os.WriteFile(filepath.Join(dir, name+".yaml"), data, FilePermissions)
}

// LoadResume reads back a YAML config file saved under ResumeDir, decoding
// into the struct pointed to by out.
func LoadResume(kind, name string, out any) error {
	path := filepath.Join(ResumeDir, kind, name+".yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: reading %q: %w", path, err)
	}
	return yaml.Unmarshal(data, out)
}

// LoadFile decodes a YAML configuration file at path into out.
func LoadFile(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: reading %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("config: parsing %q: %w", path, err)
	}
	return nil
}
