// Copyright (c) 2026 The settings authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

// Package dirs resolves the per-application configuration directory
// following the convention of the operating system.
package dirs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"unicode"
)

// ErrNoDirectory is returned if the identifiers do not name a directory.
var ErrNoDirectory = errors.New("no configuration directory for application")

// ConfigDir returns the configuration directory of the application:
//
//	Linux:   $XDG_CONFIG_HOME/<application> or ~/.config/<application>
//	Windows: %APPDATA%\<Organization>\<Application>
//	macOS:   ~/Library/Application Support/<qualifier>.<Organization>.<Application>
//
// On Linux the application name is lowercased with whitespace removed.
// On macOS whitespace is replaced with '-'.
func ConfigDir(qualifier, organization, application string) (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("user config dir: %w", err)
	}

	return Join(runtime.GOOS, base, qualifier, organization, application)
}

// Join joins the project path for the given GOOS onto base.
func Join(goos, base, qualifier, organization, application string) (string, error) {
	if strings.TrimSpace(application) == "" {
		return "", ErrNoDirectory
	}

	var project []string
	switch goos {
	case "windows":
		project = nonEmpty(strings.TrimSpace(organization), strings.TrimSpace(application))
	case "darwin", "ios":
		parts := nonEmpty(
			replaceSpace(qualifier, "-"),
			replaceSpace(organization, "-"),
			replaceSpace(application, "-"),
		)
		project = []string{strings.Join(parts, ".")}
	default:
		project = []string{strings.ToLower(replaceSpace(application, ""))}
	}

	return filepath.Join(append([]string{base}, project...)...), nil
}

func replaceSpace(str, with string) string {
	return strings.Join(strings.FieldsFunc(str, unicode.IsSpace), with)
}

func nonEmpty(parts ...string) []string {
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if part != "" {
			result = append(result, part)
		}
	}

	return result
}
