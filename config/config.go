package config

import (
	"bytes"
	"os"
	"slices"

	"github.com/tzuratlink/pagelink/pkg/tagging"

	"golang.org/x/time/rate"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Address string

	stages []tagging.Stage

	sessions map[string]tagging.Service
}

func Parse(path string) (*Config, error) {
	file, err := parseFile(path)

	if err != nil {
		return nil, err
	}

	c := &Config{
		Address: ":8080",

		stages: tagging.Stages(),
	}

	if file.Address != "" {
		c.Address = file.Address
	}

	if len(file.Stages) > 0 {
		c.stages = slices.Clone(file.Stages)
	}

	if err := c.registerSessions(file); err != nil {
		return nil, err
	}

	return c, nil
}

func (cfg *Config) Stages() []tagging.Stage {
	return slices.Clone(cfg.stages)
}

type configFile struct {
	Address string `yaml:"address"`

	Stages []tagging.Stage `yaml:"stages"`

	Sessions map[string]sessionConfig `yaml:"sessions"`
}

func parseFile(path string) (*configFile, error) {
	data, err := os.ReadFile(path)

	if err != nil {
		return nil, err
	}

	data = []byte(os.ExpandEnv(string(data)))

	var config configFile

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	if err := decoder.Decode(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

func createLimiter(limit *int) *rate.Limiter {
	if limit == nil {
		return nil
	}

	return rate.NewLimiter(rate.Limit(*limit), *limit)
}
