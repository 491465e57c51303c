package am

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"github.com/teranos/gwkit/errors"
	"github.com/teranos/gwkit/logger"
)

// createBackup creates rotating backups (.back1, .back2, .back3) before modifying config
func createBackup(configPath string) error {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil
	}

	// .back3 -> delete, .back2 -> .back3, .back1 -> .back2, current -> .back1
	back3 := configPath + ".back3"
	back2 := configPath + ".back2"
	back1 := configPath + ".back1"

	if err := os.Remove(back3); err != nil && !os.IsNotExist(err) {
		// Don't fail the save over a stale backup
		logger.Warnw("Failed to delete old config backup",
			logger.FieldFile, back3,
			logger.FieldError, err)
	}

	if _, err := os.Stat(back2); err == nil {
		if err := os.Rename(back2, back3); err != nil {
			return errors.Wrap(err, "failed to rotate .back2 to .back3")
		}
	}

	if _, err := os.Stat(back1); err == nil {
		if err := os.Rename(back1, back2); err != nil {
			return errors.Wrap(err, "failed to rotate .back1 to .back2")
		}
	}

	content, err := os.ReadFile(configPath)
	if err != nil {
		return errors.Wrap(err, "failed to read config for backup")
	}

	if err := os.WriteFile(back1, content, DefaultFilePermissions); err != nil {
		return errors.Wrap(err, "failed to create .back1")
	}

	return nil
}

// Marshal renders the configuration as TOML.
func Marshal(c *Config) ([]byte, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal config")
	}
	return data, nil
}

// Save writes the configuration to configPath, keeping rotating backups
// of the previous content.
func Save(c *Config, configPath string) error {
	if err := c.Validate(); err != nil {
		return errors.Wrap(err, "refusing to save invalid config")
	}

	if err := os.MkdirAll(filepath.Dir(configPath), DefaultDirPermissions); err != nil {
		return errors.Wrap(err, "failed to create config directory")
	}

	if err := createBackup(configPath); err != nil {
		return errors.Wrap(err, "failed to create backup")
	}

	data, err := Marshal(c)
	if err != nil {
		return err
	}

	if err := os.WriteFile(configPath, data, DefaultFilePermissions); err != nil {
		return errors.Wrap(err, "failed to write config")
	}

	return nil
}

// Init writes a configuration file holding the default values. An existing
// file is only replaced when force is set, and then goes to the backups.
func Init(configPath string, force bool) (*Config, error) {
	if _, err := os.Stat(configPath); err == nil && !force {
		return nil, errors.WithHintf(
			errors.Newf("%s already exists", configPath),
			"use --force to overwrite it; the previous file is kept as %s.back1", configPath)
	}

	v := viper.New()
	SetDefaults(v)
	cfg, err := LoadWithViper(v)
	if err != nil {
		return nil, err
	}
	if err := Save(cfg, configPath); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Set changes one dotted key (e.g. "watch.debounce_ms") in the file at
// configPath, creating the file from defaults when it does not exist.
// Values are converted to the key's type by Viper.
func Set(configPath, key, value string) (*Config, error) {
	key = strings.ToLower(key)

	v := viper.New()
	SetDefaults(v)
	if !slices.Contains(v.AllKeys(), key) {
		return nil, errors.WithHint(
			errors.Newf("unknown configuration key %q", key),
			"run 'gwkit am show' to list the available keys")
	}

	if _, err := os.Stat(configPath); err == nil {
		v.SetConfigFile(configPath)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "failed to read config file %s", configPath)
		}
	}

	v.Set(key, value)
	cfg, err := LoadWithViper(v)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid value %q for %s", value, key)
	}
	if err := Save(cfg, configPath); err != nil {
		return nil, err
	}
	return cfg, nil
}
