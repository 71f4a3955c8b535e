// Copyright (c) 2026 The settings authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package ron

import (
	"fmt"
	"math"
	"reflect"

	"github.com/go-viper/mapstructure/v2"
)

// Unmarshal parses the RON document in data and stores the result
// in the value pointed to by v.
//
// Struct fields are matched with the `ron` tag, or the field name
// case-insensitively. A struct name in the document must match
// the name of the Go type it is decoded into.
// Durations can be written as strings like "1m30s", and types
// implementing encoding.TextUnmarshaler are decoded from strings.
func Unmarshal(data []byte, v any) error {
	tree, err := Parse(data)
	if err != nil {
		return err
	}

	decoder, err := mapstructure.NewDecoder(
		&mapstructure.DecoderConfig{
			Result:  v,
			TagName: tagName,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				structHook,
				numberHook,
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.TextUnmarshallerHookFunc(),
			),
		},
	)
	if err != nil {
		return fmt.Errorf("new decoder: %w", err)
	}

	if err := decoder.Decode(tree); err != nil {
		return fmt.Errorf("decode: %w", err)
	}

	return nil
}

// structHook unwraps parsed structs and identifiers into the shapes
// mapstructure understands, checking struct names on the way.
func structHook(from, to reflect.Value) (any, error) {
	data := from.Interface()

	switch value := data.(type) {
	case *Struct:
		switch to.Kind() {
		case reflect.Pointer:
			return data, nil
		case reflect.Struct:
			if name := typeName(to.Type()); value.Name != "" && name != "" && value.Name != name {
				return nil, fmt.Errorf("expected struct %s, found %s", name, value.Name) //nolint:err113
			}

			return value.Fields, nil
		case reflect.Interface:
			return plain(value), nil
		default:
			return value.Fields, nil
		}
	case Ident:
		if to.Kind() == reflect.Struct && string(value) == typeName(to.Type()) {
			return map[string]any{}, nil
		}

		return string(value), nil
	default:
		if to.Kind() == reflect.Interface {
			return plain(data), nil
		}

		return data, nil
	}
}

// numberHook rejects numbers which an integer target can not hold as is,
// since mapstructure truncates floats and wraps around on overflow.
func numberHook(from, to reflect.Value) (any, error) { //nolint:cyclop
	data := from.Interface()

	switch to.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		switch number := data.(type) {
		case int64:
			if to.OverflowInt(number) {
				return nil, fmt.Errorf("%d overflows %s", number, to.Type()) //nolint:err113
			}
		case uint64:
			if number > math.MaxInt64 || to.OverflowInt(int64(number)) {
				return nil, fmt.Errorf("%d overflows %s", number, to.Type()) //nolint:err113
			}
		case float64:
			return nil, fmt.Errorf("expected integer for %s, found float %v", to.Type(), number) //nolint:err113
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		switch number := data.(type) {
		case int64:
			if number < 0 || to.OverflowUint(uint64(number)) {
				return nil, fmt.Errorf("%d overflows %s", number, to.Type()) //nolint:err113
			}
		case uint64:
			if to.OverflowUint(number) {
				return nil, fmt.Errorf("%d overflows %s", number, to.Type()) //nolint:err113
			}
		case float64:
			return nil, fmt.Errorf("expected integer for %s, found float %v", to.Type(), number) //nolint:err113
		}
	default:
	}

	return data, nil
}

// plain converts a parsed tree into plain Go values,
// which is what an interface target receives.
func plain(data any) any {
	switch value := data.(type) {
	case *Struct:
		fields := make(map[string]any, len(value.Fields))
		for k, v := range value.Fields {
			fields[k] = plain(v)
		}

		return fields
	case Ident:
		return string(value)
	case []any:
		list := make([]any, len(value))
		for i, v := range value {
			list[i] = plain(v)
		}

		return list
	case map[any]any:
		dict := make(map[any]any, len(value))
		for k, v := range value {
			if ident, ok := k.(Ident); ok {
				k = string(ident)
			}
			dict[k] = plain(v)
		}

		return dict
	default:
		return data
	}
}
