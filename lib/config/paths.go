package config

import (
	"path/filepath"

	yaml "github.com/goccy/go-yaml"
)

type CfgPath string

// UnmarshalBase is a hack that must be thrown into the sun
var UnmarshalBase string

func (c *CfgPath) UnmarshalYAML(b []byte) error {
	var path string

	err := yaml.Unmarshal(b, &path)
	if err != nil {
		return err
	}

	*c = resolve(path)
	return nil
}

// UnmarshalText is used by the TOML decoder.
func (c *CfgPath) UnmarshalText(b []byte) error {
	*c = resolve(string(b))
	return nil
}

func resolve(path string) CfgPath {
	if path == "" || filepath.IsAbs(path) {
		return CfgPath(path)
	}
	return CfgPath(filepath.Join(UnmarshalBase, path))
}
