package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const (
	configFileName = "tripctl"
	configFileType = "yaml"

	cfgKeyServer   = "server"
	cfgKeyCacheDir = "cache_dir"

	defaultServer = "http://localhost:3000"
)

// defaultCacheDir is the per-user cache location, falling back to a local
// directory when the platform has none.
func defaultCacheDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "tripctl")
	}
	return ".tripctl-cache"
}

// loadConfig layers flags over TRIPCTL_* environment variables over
// tripctl.yaml over defaults. A missing config file is not an error.
func loadConfig(v *viper.Viper, configFile string) error {
	v.SetDefault(cfgKeyServer, defaultServer)
	v.SetDefault(cfgKeyCacheDir, defaultCacheDir())
	v.SetEnvPrefix("TRIPCTL")
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(configFileName)
		v.SetConfigType(configFileType)
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "tripctl"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}
