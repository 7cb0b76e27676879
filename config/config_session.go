package config

import (
	"errors"
	"net/http"
	"time"

	"github.com/tzuratlink/pagelink/pkg/client"
	"github.com/tzuratlink/pagelink/pkg/limiter"
	"github.com/tzuratlink/pagelink/pkg/otel"
	"github.com/tzuratlink/pagelink/pkg/tagging"
)

func (cfg *Config) RegisterSession(id string, p tagging.Service) {
	if cfg.sessions == nil {
		cfg.sessions = make(map[string]tagging.Service)
	}

	if _, ok := cfg.sessions[""]; !ok {
		cfg.sessions[""] = p
	}

	cfg.sessions[id] = p
}

func (cfg *Config) Session(id string) (tagging.Service, error) {
	if cfg.sessions != nil {
		if s, ok := cfg.sessions[id]; ok {
			return s, nil
		}
	}

	return nil, errors.New("session service not found: " + id)
}

type sessionConfig struct {
	URL   string `yaml:"url"`
	Token string `yaml:"token"`

	Timeout string `yaml:"timeout"`

	Limit *int `yaml:"limit"`
}

func (cfg *Config) registerSessions(f *configFile) error {
	for id, s := range f.Sessions {
		service, err := createSession(id, s)

		if err != nil {
			return err
		}

		cfg.RegisterSession(id, service)
	}

	return nil
}

func createSession(id string, cfg sessionConfig) (tagging.Service, error) {
	if cfg.URL == "" {
		return nil, errors.New("invalid url")
	}

	opts := []client.RequestOption{
		client.WithURL(cfg.URL),
	}

	if cfg.Token != "" {
		opts = append(opts, client.WithToken(cfg.Token))
	}

	if cfg.Timeout != "" {
		timeout, err := time.ParseDuration(cfg.Timeout)

		if err != nil {
			return nil, err
		}

		opts = append(opts, client.WithClient(&http.Client{Timeout: timeout}))
	}

	sessions := client.NewSessionService(opts...)

	var service tagging.Service = &sessions

	if l := createLimiter(cfg.Limit); l != nil {
		service = limiter.NewSession(l, service)
	}

	return otel.NewSession(id, service), nil
}
