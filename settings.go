// Copyright (c) 2026 The settings authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package settings

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/nil-go/settings/internal"
	"github.com/nil-go/settings/internal/ron"
)

// Settings couples a configuration value with the path of its settings file.
//
// To create a new Settings, call [Load] or [LoadFrom].
// It must not be copied after first use, use [Settings.Clone] instead.
type Settings[T any] struct {
	nocopy internal.NoCopy[Settings[T]]

	logger *slog.Logger
	path   string
	value  T
}

// Load resolves the settings file of the application with [Resolve]
// and loads it with [LoadFrom].
//
// The configuration directory depends on the operating system, e.g.
// Load[Config]("com", "Foo Corp", "Bar App") checks
//
//	Linux:   /home/alice/.config/barapp
//	Windows: C:\Users\Alice\AppData\Roaming\Foo Corp\Bar App
//	macOS:   /Users/Alice/Library/Application Support/com.Foo-Corp.Bar-App
func Load[T any](qualifier, organization, application string, opts ...Option) (*Settings[T], error) {
	path, err := Resolve(qualifier, organization, application, opts...)
	if err != nil {
		return nil, err
	}

	return LoadFrom[T](path, opts...)
}

// LoadFrom loads the settings file at the given path.
//
// It returns an *OpenError if the file could not be opened,
// or a *DeserializeError if its content could not be decoded into T.
func LoadFrom[T any](path string, opts ...Option) (*Settings[T], error) {
	option := apply(opts)
	option.logger.Debug("Loading settings.", "path", path)

	data, err := read(path)
	if err != nil {
		return nil, err
	}

	var value T
	if err := ron.Unmarshal(data, &value); err != nil {
		return nil, &DeserializeError{Err: err}
	}

	return &Settings[T]{
		logger: option.logger,
		path:   path,
		value:  value,
	}, nil
}

func read(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &OpenError{Path: path, Err: err}
	}
	defer func() {
		// Ignore error: nothing has been written.
		_ = file.Close()
	}()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, &DeserializeError{Err: fmt.Errorf("read file: %w", err)}
	}

	return data, nil
}

// Save writes the settings to the path it was loaded from.
func (s *Settings[T]) Save() error {
	s.nocopy.Check()

	return s.SaveTo(s.path)
}

// SaveTo writes the settings to the given path, replacing its content.
// It does not change the path used by Save.
//
// It returns a *SerializeError if the value could not be encoded,
// in which case the file is left untouched,
// or an *OpenError if the file could not be created.
// Writing is not atomic.
func (s *Settings[T]) SaveTo(path string) error {
	s.nocopy.Check()

	data, err := ron.Marshal(s.value)
	if err != nil {
		return &SerializeError{Err: err}
	}

	file, err := os.Create(path)
	if err != nil {
		return &OpenError{Path: path, Err: err}
	}
	if _, err := file.Write(data); err != nil {
		_ = file.Close()

		return &SerializeError{Err: fmt.Errorf("write file: %w", err)}
	}
	if err := file.Close(); err != nil {
		return &SerializeError{Err: fmt.Errorf("close file: %w", err)}
	}
	s.logger.Debug("Settings has been saved.", "path", path)

	return nil
}

// Path returns the path the settings was loaded from.
func (s *Settings[T]) Path() string {
	s.nocopy.Check()

	return s.path
}

// Value returns a pointer to the settings value,
// through which its fields can be read and written in place.
// Changes are persisted only after Save.
func (s *Settings[T]) Value() *T {
	s.nocopy.Check()

	return &s.value
}

// Get returns a copy of the settings value.
func (s *Settings[T]) Get() T {
	s.nocopy.Check()

	return s.value
}

// Set replaces the settings value.
func (s *Settings[T]) Set(value T) {
	s.nocopy.Check()

	s.value = value
}

// Clone returns a new Settings with the same path and a copy of the value.
// The copy is shallow: maps, slices and pointers in the value are shared.
func (s *Settings[T]) Clone() *Settings[T] {
	s.nocopy.Check()

	return &Settings[T]{
		logger: s.logger,
		path:   s.path,
		value:  s.value,
	}
}

func (s *Settings[T]) String() string {
	s.nocopy.Check()

	return "settings:" + s.path
}
