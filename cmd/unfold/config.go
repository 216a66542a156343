package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/unfoldapp/unfold/internal/model"
)

// cliConfig holds the player-facing configuration.
type cliConfig struct {
	DataDir      string `mapstructure:"data-dir"`
	LogFile      string `mapstructure:"log-file"`
	LogLevel     string `mapstructure:"log-level"`
	ReduceMotion bool   `mapstructure:"reduce-motion"`
	CardsPerDeck int    `mapstructure:"cards-per-deck"`

	BackupEnabled  bool          `mapstructure:"backup-enabled"`
	BackupDir      string        `mapstructure:"backup-dir"`
	BackupInterval time.Duration `mapstructure:"backup-interval"`
	BackupKeepLast int           `mapstructure:"backup-keep-last"`
}

func loadCLIConfig(configPath string) (cliConfig, error) {
	var cfg cliConfig

	home, err := os.UserHomeDir()
	if err != nil {
		return cfg, fmt.Errorf("finding home directory: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix("UNFOLD")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	v.SetDefault("data-dir", filepath.Join(home, ".local", "share", "unfold"))
	v.SetDefault("log-file", "")
	v.SetDefault("log-level", "info")
	v.SetDefault("reduce-motion", false)
	v.SetDefault("cards-per-deck", model.DefaultCardsPerDeck)
	v.SetDefault("backup-enabled", false)
	v.SetDefault("backup-dir", filepath.Join(home, ".local", "share", "unfold", "backups"))
	v.SetDefault("backup-interval", 30*time.Minute)
	v.SetDefault("backup-keep-last", 10)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigFile(filepath.Join(home, ".config", "unfold", "config.yml"))
	}

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFound) && !os.IsNotExist(err) {
			return cfg, err
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}
