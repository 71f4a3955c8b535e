// Copyright (c) 2026 The settings authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package settings

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v6"
)

// FileName is the name of the settings file looked up in the current
// directory and the configuration directory.
const FileName = "settings.ron"

// Resolve returns the path of the settings file for the application.
//
// It checks the following candidates in order, and returns the first one
// which exists. Only existence is checked, not readability.
//  1. the environment variable `{APPLICATION}_CONFIG_PATH`, where APPLICATION is
//     the application name in upper case;
//  2. `settings.ron` in the current directory;
//  3. `settings.ron` in the configuration directory of the operating system.
//
// It returns ErrNotFound if none of them exists. No file is created.
func Resolve(qualifier, organization, application string, opts ...Option) (string, error) {
	option := apply(opts)

	for _, path := range option.candidates(qualifier, organization, application) {
		if _, err := os.Stat(path); err != nil {
			option.logger.Debug("Skip settings file.", "path", path, "error", err)

			continue
		}

		return path, nil
	}

	return "", ErrNotFound
}

func (o options) candidates(qualifier, organization, application string) []string {
	paths := make([]string, 0, 3) //nolint:mnd

	if path := envPath(application); path != "" {
		paths = append(paths, path)
	}
	if dir, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(dir, o.fileName))
	} else {
		o.logger.Debug("Could not get current directory.", "error", err)
	}
	if dir, err := o.configDir(qualifier, organization, application); err == nil {
		paths = append(paths, filepath.Join(dir, o.fileName))
	} else {
		o.logger.Debug("Could not get configuration directory.", "error", err)
	}

	return paths
}

// envPath returns the value of `{APPLICATION}_CONFIG_PATH`.
// It reads the environment on every call.
func envPath(application string) string {
	var override struct {
		ConfigPath string `env:"CONFIG_PATH"`
	}
	// Ignore error: a plain string field without required tag can not fail.
	_ = env.Parse(&override, env.Options{Prefix: strings.ToUpper(application) + "_"})

	return override.ConfigPath
}
