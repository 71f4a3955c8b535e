// Copyright (c) 2026 The settings authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package settings

import "errors"

// ErrNotFound is returned by Load and Resolve if none of the candidate
// settings files exists.
var ErrNotFound = errors.New("could not find a settings file")

// OpenError is returned if the settings file could not be opened for
// reading, or created for writing.
type OpenError struct {
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	return "open settings file " + e.Path + ": " + e.Err.Error()
}

func (e *OpenError) Unwrap() error {
	return e.Err
}

// DeserializeError is returned if the content of the settings file
// could not be decoded into the settings value.
//
// For malformed documents Err is a *ron.SyntaxError with line and column.
type DeserializeError struct {
	Err error
}

func (e *DeserializeError) Error() string {
	return "deserialize settings file: " + e.Err.Error()
}

func (e *DeserializeError) Unwrap() error {
	return e.Err
}

// SerializeError is returned if the settings value could not be encoded,
// or the encoded content could not be written.
type SerializeError struct {
	Err error
}

func (e *SerializeError) Error() string {
	return "serialize settings: " + e.Err.Error()
}

func (e *SerializeError) Unwrap() error {
	return e.Err
}
