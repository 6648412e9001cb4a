// Package config loads settings from .env, the environment and an optional
// checkmycode.yaml file.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable.
const EnvPrefix = "CHECKMYCODE"

// DefaultAPIURL is the hosted evaluation webhook.
const DefaultAPIURL = "https://primary-production-809b9.up.railway.app/webhook/eval"

// Config holds resolved settings.
type Config struct {
	APIURL         string
	Timeout        time.Duration
	ListenAddr     string
	AllowedOrigins []string
	LogLevel       string
	LogFormat      string
	// File is the config file that was read, if any.
	File string
}

// Load reads settings. An explicit path must exist; otherwise
// checkmycode.yaml is looked up in the working directory and
// $HOME/.config/checkmycode and may be absent.
func Load(path string) (*Config, error) {
	// A missing .env file is fine.
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	// REACT_APP_API_URL is honored for setups shared with the web client.
	if err := v.BindEnv("api_url", EnvPrefix+"_API_URL", "REACT_APP_API_URL"); err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	v.SetDefault("api_url", DefaultAPIURL)
	v.SetDefault("timeout", "90s")
	v.SetDefault("listen_addr", ":8080")
	v.SetDefault("allowed_origins", []string{"*"})
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("checkmycode")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/checkmycode")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config.Load: %w", err)
		}
	}

	c := &Config{
		APIURL:         strings.TrimSpace(v.GetString("api_url")),
		Timeout:        v.GetDuration("timeout"),
		ListenAddr:     v.GetString("listen_addr"),
		AllowedOrigins: splitList(v.GetStringSlice("allowed_origins")),
		LogLevel:       v.GetString("log_level"),
		LogFormat:      v.GetString("log_format"),
		File:           v.ConfigFileUsed(),
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}
	return c, nil
}

// Validate checks the resolved settings.
func (c *Config) Validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("api_url: %q is not an http(s) URL", c.APIURL)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout: must not be negative")
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("log_format: %q (want text or json)", c.LogFormat)
	}
	return nil
}

// splitList accepts both YAML lists and comma separated env values.
func splitList(in []string) []string {
	var out []string
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
