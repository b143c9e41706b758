package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"stan-api/internal/configutil"
	"stan-api/pkg/stan"
	"strconv"
	"time"

	"dario.cat/mergo"
)

type Config struct {
	SiteUrl     string `json:"site_url"`
	EndpointUrl string `json:"endpoint_url"`
	// e.g. "10s", empty means no timeout
	Timeout   string `json:"timeout"`
	UserAgent string `json:"user_agent"`
	Debug     bool   `json:"debug"`
}

func defaultConfig() Config {
	return Config{
		SiteUrl:     stan.DefaultSiteURL,
		EndpointUrl: stan.DefaultEndpointURL,
	}
}

// loadConfig reads `path` (or searches upwards for stan.json5 when `path` is empty),
// then applies the STAN_* environment variables on top of it.
func loadConfig(path string, getenv func(string) string) (Config, error) {
	cfg := defaultConfig()

	var (
		fromFile Config
		err      error
	)
	if path != "" {
		fromFile, err = configutil.ReadConfig[Config](path)
	} else {
		var cwd string
		cwd, err = os.Getwd()
		if err == nil {
			fromFile, err = configutil.ReadRecursively[Config](cwd, "stan.json5")
		}
	}
	switch {
	case err == nil:
		err = mergo.Merge(&cfg, fromFile, mergo.WithOverride)
		if err != nil {
			return Config{}, fmt.Errorf("merge config: %w", err)
		}
	case os.IsNotExist(err) && path == "":
	default:
		return Config{}, fmt.Errorf("read config %s: %w", filepath.Base(path), err)
	}

	if v := getenv("STAN_SITE_URL"); v != "" {
		cfg.SiteUrl = v
	}
	if v := getenv("STAN_ENDPOINT_URL"); v != "" {
		cfg.EndpointUrl = v
	}
	if v := getenv("STAN_TIMEOUT"); v != "" {
		cfg.Timeout = v
	}
	if v := getenv("STAN_DEBUG"); v != "" {
		debug, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("STAN_DEBUG: %w", err)
		}
		cfg.Debug = debug
	}

	return cfg, nil
}

func (c Config) options() (stan.Options, error) {
	var timeout time.Duration
	if c.Timeout != "" {
		var err error
		timeout, err = time.ParseDuration(c.Timeout)
		if err != nil {
			return stan.Options{}, fmt.Errorf("timeout: %w", err)
		}
	}
	return stan.Options{
		SiteURL:     c.SiteUrl,
		EndpointURL: c.EndpointUrl,
		Timeout:     timeout,
		UserAgent:   c.UserAgent,
	}, nil
}
