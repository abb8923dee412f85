// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/apex/log"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	// FileEnvVar overrides the location of the settings file.
	FileEnvVar = "RCBEAM_CFG_FILE"
	// EnvPrefix prefixes environment overrides. A double underscore separates
	// levels, so RCBEAM_CFG_S3__REGION sets s3.region.
	EnvPrefix = "RCBEAM_CFG_"
	// FileName is the settings file looked up in os.UserConfigDir.
	FileName = "rcbeam.yaml"
)

// Type is the in-memory representation of the loaded settings.
//
// Fields:
//   - Source: absolute path of the YAML file loaded, empty when none exists.
//   - Namespace: optional dot-prefixed keyspace tried before the bare key
//     (e.g. "show" makes "output" resolve "show.output" first).
//   - Data: the merged key/value tree from the file and the environment.
type Type struct {
	Source    string
	Namespace string
	Data      map[string]interface{}

	k *koanf.Koanf
}

// Config holds the global, lazily-initialized settings instance.
var Config Type

// init attempts to load settings at process start. Errors are ignored so the
// application can still run with a broken settings file; getters report them
// lazily through their defaults.
func init() {
	_, _ = Load()
}

// GetInt returns the integer value for the given dotted key path. A single
// defaultValue may be provided and is returned when the key is missing.
// Environment overrides arrive as strings and are parsed.
func GetInt(key string, defaultValue ...int) (int, error) {
	val, err := Config.lookup(key)
	if err != nil {
		if len(defaultValue) == 1 {
			return defaultValue[0], nil
		}
		return 0, err
	}

	switch v := val.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		return int(v), nil
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, fmt.Errorf("value of %s is not an int: %w", key, err)
		}
		return i, nil
	default:
		return 0, errors.New("value is not an int")
	}
}

// GetString returns the string value for the given dotted key path. If the key
// is not found and a single defaultValue is provided, the default is returned.
// Returns an error if the value exists but is not a string.
func GetString(key string, defaultValue ...string) (string, error) {
	val, err := Config.lookup(key)
	if err != nil {
		if len(defaultValue) == 1 {
			return defaultValue[0], nil
		}
		return "", err
	}

	s, ok := val.(string)
	if !ok {
		return "", errors.New("value is not a string")
	}

	return s, nil
}

// GetStringSlice returns the string slice value for the given dotted key path.
// If the key is not found and a single default slice is provided, that default
// is returned. A plain string (as set through the environment) is split on
// whitespace.
func GetStringSlice(key string, defaultValue ...[]string) ([]string, error) {
	val, err := Config.lookup(key)
	if err != nil {
		if len(defaultValue) == 1 {
			return defaultValue[0], nil
		}
		return nil, err
	}

	switch v := val.(type) {
	case []string:
		return v, nil
	case []interface{}:
		result := make([]string, len(v))
		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, errors.New("slice element is not a string")
			}
			result[i] = s
		}
		return result, nil
	case string:
		return strings.Fields(v), nil
	default:
		return nil, errors.New("value is not a slice")
	}
}

// Load reads the YAML settings file (if any) and RCBEAM_CFG_* environment
// overrides into the global Config. A missing file is not an error; a file
// that exists but cannot be parsed is.
func Load() (Type, error) {
	k := koanf.New(".")

	path, err := getConfigFile()
	if err != nil {
		return Type{}, err
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Type{}, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return Type{}, fmt.Errorf("load config env: %w", err)
	}

	Config = Type{
		Source: path,
		Data:   k.Raw(),
		k:      k,
	}

	return Config, nil
}

// envKey maps RCBEAM_CFG_S3__REGION to s3.region.
func envKey(s string) string {
	s = strings.TrimPrefix(s, EnvPrefix)
	s = strings.ToLower(s)
	return strings.ReplaceAll(s, "__", ".")
}

// lookup tries the namespaced key first and then the bare key.
func (cfg *Type) lookup(kspec string) (any, error) {
	if cfg.k == nil {
		if _, err := Load(); err != nil {
			return nil, err
		}
		// Load replaced the global; keep any namespace the caller had set.
		ns := cfg.Namespace
		*cfg = Config
		cfg.Namespace = ns
	}

	candidateKeys := []string{kspec}
	if cfg.Namespace != "" {
		candidateKeys = []string{cfg.Namespace + "." + kspec, kspec}
	}

	for _, key := range candidateKeys {
		if cfg.k.Exists(key) {
			return cfg.k.Get(key), nil
		}
	}

	return nil, fmt.Errorf("no valid path found among: %v", candidateKeys)
}

// getConfigFile returns the absolute path to the YAML settings file, or "" if
// there is none. If RCBEAM_CFG_FILE is set it must name an existing regular
// file. Otherwise rcbeam.yaml in os.UserConfigDir is used when present.
func getConfigFile() (string, error) {
	if cfgPath := os.Getenv(FileEnvVar); cfgPath != "" {
		fileInfo, err := os.Stat(cfgPath)
		if err != nil {
			return "", fmt.Errorf("config file not found at %s path: %s", FileEnvVar, cfgPath)
		}
		if fileInfo.IsDir() {
			return "", fmt.Errorf("%s points to a directory: %s", FileEnvVar, cfgPath)
		}
		log.Debugf("using config file from %s: %s", FileEnvVar, cfgPath)
		return filepath.Abs(cfgPath)
	}

	dir, err := os.UserConfigDir()
	if err != nil {
		log.Debugf("no user config dir: %v", err)
		return "", nil
	}

	file := filepath.Join(dir, FileName)
	if fileInfo, err := os.Stat(file); err == nil && !fileInfo.IsDir() {
		log.Debugf("using config file: %s", file)
		return file, nil
	}

	return "", nil
}
