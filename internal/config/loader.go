// Copyright 2024 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const envPrefix = "refresher"

// LoadConfiguration reads config.yml from the working directory (or the given file),
// applies REFRESHER_* environment overrides and returns the resulting configuration.
func LoadConfiguration(configFile string) (*Configuration, error) {
	var v = viper.New()
	setDefaults(v, configFile)

	config, err := readConfig(v)
	if err != nil {
		return nil, err
	}

	applyLogLevel(config.LogLevel)
	return config, nil
}

// WriteDefaultConfiguration writes the defaults to the given file and fails if it already exists.
func WriteDefaultConfiguration(configFile string) error {
	var v = viper.New()
	setDefaults(v, configFile)

	if configFile != "" {
		return v.SafeWriteConfigAs(configFile)
	}
	return v.SafeWriteConfig()
}

func setDefaults(v *viper.Viper, configFile string) {
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
	}
	v.SetConfigType("yml")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("logLevel", "info")
	v.SetDefault("log.dir", "logs")
	v.SetDefault("log.prefix", "refresher-")

	v.SetDefault("trigger.path", "refresh.trigger")
	v.SetDefault("dashboards", []string{})
	v.SetDefault("folders", []string{})

	v.SetDefault("reporting.address", "")
	v.SetDefault("reporting.apiVersion", "3.4")
	v.SetDefault("reporting.site", "")
	v.SetDefault("reporting.tokenName", "")
	v.SetDefault("reporting.tokenSecret", "")
	v.SetDefault("reporting.insecureSkipVerify", false)
	v.SetDefault("reporting.pageSize", 100)
	v.SetDefault("reporting.requestTimeout", "30s")
	v.SetDefault("reporting.jobTimeout", "30m")
	v.SetDefault("reporting.pollInterval", "5s")

	v.SetDefault("watch.interval", "1m")
	v.SetDefault("watch.debounce", "500ms")

	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.port", 8080)
	v.SetDefault("metrics.timeout", "5s")

	v.SetDefault("api.enabled", false)
	v.SetDefault("api.port", 8081)
	v.SetDefault("api.logLevel", "info")
	v.SetDefault("api.security.enabled", false)
	v.SetDefault("api.security.secret", "")
	v.SetDefault("api.security.trustedClients", []string{})
}

func readConfig(v *viper.Viper) (*Configuration, error) {
	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("could not read configuration: %w", err)
		}
	}

	v.AutomaticEnv()

	var config Configuration
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("could not unmarshal configuration: %w", err)
	}

	return &config, nil
}

func applyLogLevel(level string) {
	logLevel, err := zerolog.ParseLevel(level)
	if err != nil {
		logLevel = zerolog.InfoLevel
		log.Info().Msgf("Invalid log level %s. Info log level is used", level)
	}

	log.Logger = zerolog.New(os.Stdout).Level(logLevel).With().Timestamp().Logger()
	if logLevel == zerolog.DebugLevel {
		log.Logger = log.Logger.Output(zerolog.ConsoleWriter{Out: os.Stdout})
	}
}
