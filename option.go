// Copyright (c) 2026 The settings authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package settings

import (
	"log/slog"

	"github.com/nil-go/settings/internal/dirs"
)

// WithLogger provides the slog.Logger for Settings.
// It only logs at debug level, errors are always returned to the caller.
//
// By default, it uses slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(options *options) {
		options.logger = logger
	}
}

// WithFileName provides the name of the settings file looked up
// in the current directory and the configuration directory.
//
// The default file name is `settings.ron`.
func WithFileName(name string) Option {
	return func(options *options) {
		options.fileName = name
	}
}

// WithConfigDir provides the function which returns the configuration
// directory for the given qualifier, organization and application.
//
// By default, it follows the convention of the operating system,
// e.g. ~/.config/<application> on Linux.
func WithConfigDir(configDir func(qualifier, organization, application string) (string, error)) Option {
	return func(options *options) {
		options.configDir = configDir
	}
}

type (
	// Option configures Load, LoadFrom and Resolve with specific options.
	Option  func(*options)
	options struct {
		logger    *slog.Logger
		fileName  string
		configDir func(qualifier, organization, application string) (string, error)
	}
)

func apply(opts []Option) options {
	option := &options{}
	for _, opt := range opts {
		opt(option)
	}
	if option.logger == nil {
		option.logger = slog.Default()
	}
	option.logger = option.logger.WithGroup("settings")
	if option.fileName == "" {
		option.fileName = FileName
	}
	if option.configDir == nil {
		option.configDir = dirs.ConfigDir
	}

	return *option
}
