package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the demo strip setup, loaded from YAML.
type Config struct {
	NumPixels  int    `yaml:"num_pixels"`
	Mode       string `yaml:"mode"`
	Port       string `yaml:"port"`
	Pin        string `yaml:"pin"`
	FPS        int    `yaml:"fps"`
	Brightness int    `yaml:"brightness"`
	Effect     string `yaml:"effect"`
}

func DefaultConfig() Config {
	return Config{
		NumPixels:  60,
		Mode:       "GRB",
		FPS:        30,
		Brightness: 150,
		Effect:     "rainbow",
	}
}

// LoadConfig reads path over the defaults. A missing file is fine; the
// defaults run the console preview.
func LoadConfig(path string) (Config, error) {
	c := DefaultConfig()
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return c, nil
		}
		return c, err
	}
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return c, fmt.Errorf("parsing %s: %v", path, err)
	}
	return c, nil
}
