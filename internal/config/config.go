// Copyright (c) 2026 FinSight Labs <oss@finsight.dev>.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/apex/log"
	"gopkg.in/yaml.v3"
)

// Type holds the parsed finctl.yaml document. Namespace, when set, is the
// command name currently executing and is tried as a key prefix before the
// bare key.
type Type struct {
	Source    string
	Namespace string
	Data      map[string]interface{}
}

var Config Type

func init() {
	_, _ = Load()
}

// Load reads finctl.yaml into the package-level Config. An optional namespace
// (the active command name) can be passed to scope subsequent lookups.
func Load(namespace ...string) (Type, error) {
	path, err := getConfigPath()
	if err != nil {
		return Type{}, err
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return Type{}, err
	}

	var data map[string]interface{}
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return Type{}, err
	}

	Config = Type{
		Source: path,
		Data:   data}

	if len(namespace) == 1 {
		Config.Namespace = namespace[0]
	}

	return Config, nil
}

// get traverses the map using a dotted key path. The namespaced form of the
// key is tried first, then the bare key.
func (cfg *Type) get(kspec string) (any, error) {
	if len(cfg.Data) == 0 {
		_, _ = Load(cfg.Namespace)
	}

	candidateKeys := []string{"", kspec}
	if cfg.Namespace != "" {
		candidateKeys[0] = cfg.Namespace + "." + kspec
	}

	for _, key := range candidateKeys {
		keys := strings.Split(key, ".")
		var current interface{} = Config.Data

		success := true
		for _, key := range keys {
			m, ok := current.(map[string]interface{})
			if !ok {
				success = false
				break
			}
			current, ok = m[key]
			if !ok {
				success = false
				break
			}
		}

		if success {
			return current, nil
		}
	}

	return nil, fmt.Errorf("no valid path found among: %v", candidateKeys)
}

func GetString(key string, defaultValue ...string) (string, error) {
	if len(Config.Data) == 0 {
		_, _ = Load()
	}

	val, err := Config.get(key)
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

func GetInt(key string, defaultValue ...int) (int, error) {
	if len(Config.Data) == 0 {
		_, _ = Load()
	}

	val, err := Config.get(key)
	if err != nil {
		if len(defaultValue) == 1 {
			return defaultValue[0], nil
		}
		return 0, err
	}

	// YAML numbers may be unmarshaled as int/float64 depending on content.
	switch v := val.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		return int(v), nil
	default:
		return 0, errors.New("value is not an int")
	}
}

// GetStringSlice returns a list-valued key as a []string. Scalar entries are
// stringified; a missing key returns the optional default.
func GetStringSlice(key string, defaultValue ...[]string) ([]string, error) {
	if len(Config.Data) == 0 {
		_, _ = Load()
	}

	val, err := Config.get(key)
	if err != nil {
		if len(defaultValue) == 1 {
			return defaultValue[0], nil
		}
		return nil, err
	}

	list, ok := val.([]interface{})
	if !ok {
		return nil, errors.New("value is not a list")
	}

	result := make([]string, 0, len(list))
	for _, item := range list {
		result = append(result, fmt.Sprintf("%v", item))
	}

	return result, nil
}

// getConfigPath resolves the finctl.yaml location. FINCTL_CFG wins when set;
// otherwise the standard config locations are searched in order.
func getConfigPath() (string, error) {
	if explicit, ok := os.LookupEnv("FINCTL_CFG"); ok && explicit != "" {
		fileInfo, err := os.Stat(explicit)
		if err != nil {
			return "", fmt.Errorf("config file not found: %s", explicit)
		}
		if fileInfo.IsDir() {
			return "", fmt.Errorf("FINCTL_CFG points to a directory: %s", explicit)
		}
		return explicit, nil
	}

	var candidates []string = []string{
		os.Getenv("XDG_CONFIG_HOME"),
		os.Getenv("APPDATA"),
		os.Getenv("HOME"),
	}

	for _, c := range candidates {
		file := filepath.Join(c, "finctl.yaml")
		if fileInfo, err := os.Stat(file); err == nil {
			if !fileInfo.IsDir() {
				log.Debugf("using config file: %s", file)
				return file, nil
			}
		}
	}
	return "", fmt.Errorf("no config file found in standard locations")
}
