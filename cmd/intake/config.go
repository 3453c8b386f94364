package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config carries the CLI settings. Values come from intake.yaml (working
// directory or ~/.config/cliniccare) and INTAKE_* environment variables.
type Config struct {
	ServiceURL string
	APIKey     string
	Directory  string
	Timeout    time.Duration
	Verbose    bool
}

func loadConfig() (Config, error) {
	v := viper.New()
	v.SetConfigName("intake")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/cliniccare")
	v.SetEnvPrefix("intake")
	v.AutomaticEnv()

	v.SetDefault("service.url", "http://localhost:8080")
	v.SetDefault("service.timeout", "30s")
	v.SetDefault("verbose", false)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	return Config{
		ServiceURL: v.GetString("service.url"),
		APIKey:     v.GetString("service.api_key"),
		Directory:  v.GetString("directory"),
		Timeout:    v.GetDuration("service.timeout"),
		Verbose:    v.GetBool("verbose"),
	}, nil
}
