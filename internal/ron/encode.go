// Copyright (c) 2026 The settings authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package ron

import (
	"bytes"
	"encoding"
	"fmt"
	"math"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

const (
	indentation = "    "
	maxDepth    = 512
)

// Marshal returns the pretty RON encoding of v.
//
// Structs are written with their type name and one field per line,
// in declaration order. Map entries are sorted by their encoded key
// so the output is stable for unchanged data.
func Marshal(v any) ([]byte, error) {
	enc := &encoder{}
	if err := enc.encode(reflect.ValueOf(v), 0); err != nil {
		return nil, err
	}

	return enc.buf.Bytes(), nil
}

// UnsupportedTypeError is returned by Marshal when a value of the type
// has no RON representation.
type UnsupportedTypeError struct {
	Type reflect.Type
}

func (e *UnsupportedTypeError) Error() string {
	return "ron: unsupported type: " + e.Type.String()
}

// InvalidUTF8Error is returned by Marshal when a string is not valid UTF-8,
// which a RON string can not represent.
type InvalidUTF8Error struct {
	S string
}

func (e *InvalidUTF8Error) Error() string {
	return "ron: invalid UTF-8 in string " + strconv.Quote(e.S)
}

type encoder struct {
	buf     bytes.Buffer
	nesting int
}

// encode writes value with depth as its indentation level.
func (e *encoder) encode(value reflect.Value, depth int) error { //nolint:cyclop,funlen
	e.nesting++
	defer func() { e.nesting-- }()
	if e.nesting > maxDepth {
		return fmt.Errorf("ron: exceeded max depth of %d", maxDepth)
	}

	if !value.IsValid() {
		e.buf.WriteString("None")

		return nil
	}

	switch value.Kind() {
	case reflect.Pointer:
		if value.IsNil() {
			e.buf.WriteString("None")

			return nil
		}
		e.buf.WriteString("Some(")
		if err := e.encode(value.Elem(), depth); err != nil {
			return err
		}
		e.buf.WriteByte(')')

		return nil
	case reflect.Interface:
		if value.IsNil() {
			e.buf.WriteString("None")

			return nil
		}

		return e.encode(value.Elem(), depth)
	default:
	}

	if value.Type() == durationType {
		return e.quote(time.Duration(value.Int()).String())
	}
	if marshaler, ok := textMarshaler(value); ok {
		text, err := marshaler.MarshalText()
		if err != nil {
			return fmt.Errorf("ron: marshal text of %s: %w", value.Type(), err)
		}
		return e.quote(string(text))
	}

	switch value.Kind() {
	case reflect.Bool:
		e.buf.WriteString(strconv.FormatBool(value.Bool()))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		e.buf.WriteString(strconv.FormatInt(value.Int(), 10))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		e.buf.WriteString(strconv.FormatUint(value.Uint(), 10))
	case reflect.Float32:
		e.buf.WriteString(formatFloat(value.Float(), 32))
	case reflect.Float64:
		e.buf.WriteString(formatFloat(value.Float(), 64))
	case reflect.String:
		return e.quote(value.String())
	case reflect.Struct:
		return e.encodeStruct(value, depth)
	case reflect.Slice, reflect.Array:
		return e.encodeSeq(value, depth)
	case reflect.Map:
		return e.encodeMap(value, depth)
	default:
		return &UnsupportedTypeError{Type: value.Type()}
	}

	return nil
}

func (e *encoder) encodeStruct(value reflect.Value, depth int) error {
	e.buf.WriteString(typeName(value.Type()))
	e.buf.WriteByte('(')

	fields := structFields(value.Type())
	written := 0
	for _, field := range fields {
		fieldValue := value.FieldByIndex(field.index)
		if field.omitEmpty && fieldValue.IsZero() {
			continue
		}
		if !isIdentifier(field.name) {
			return fmt.Errorf("ron: field name %q of %s is not an identifier", field.name, value.Type())
		}
		if written == 0 {
			e.buf.WriteByte('\n')
		}
		written++

		e.indent(depth + 1)
		e.buf.WriteString(field.name)
		e.buf.WriteString(": ")
		if err := e.encode(fieldValue, depth+1); err != nil {
			return err
		}
		e.buf.WriteString(",\n")
	}
	if written > 0 {
		e.indent(depth)
	}
	e.buf.WriteByte(')')

	return nil
}

func (e *encoder) encodeSeq(value reflect.Value, depth int) error {
	if value.Len() == 0 {
		e.buf.WriteString("[]")

		return nil
	}

	e.buf.WriteString("[\n")
	for i := range value.Len() {
		e.indent(depth + 1)
		if err := e.encode(value.Index(i), depth+1); err != nil {
			return err
		}
		e.buf.WriteString(",\n")
	}
	e.indent(depth)
	e.buf.WriteByte(']')

	return nil
}

func (e *encoder) encodeMap(value reflect.Value, depth int) error {
	if value.Len() == 0 {
		e.buf.WriteString("{}")

		return nil
	}

	type entry struct {
		key   string
		value reflect.Value
	}
	entries := make([]entry, 0, value.Len())
	iter := value.MapRange()
	for iter.Next() {
		key := &encoder{}
		if err := key.encode(iter.Key(), depth+1); err != nil {
			return err
		}
		entries = append(entries, entry{key: key.buf.String(), value: iter.Value()})
	}
	slices.SortFunc(entries, func(a, b entry) int { return strings.Compare(a.key, b.key) })

	e.buf.WriteString("{\n")
	for _, entry := range entries {
		e.indent(depth + 1)
		e.buf.WriteString(entry.key)
		e.buf.WriteString(": ")
		if err := e.encode(entry.value, depth+1); err != nil {
			return err
		}
		e.buf.WriteString(",\n")
	}
	e.indent(depth)
	e.buf.WriteByte('}')

	return nil
}

func (e *encoder) indent(depth int) {
	for range depth {
		e.buf.WriteString(indentation)
	}
}

func (e *encoder) quote(str string) error {
	if !utf8.ValidString(str) {
		return &InvalidUTF8Error{S: str}
	}

	e.buf.WriteByte('"')
	for _, r := range str {
		switch r {
		case '"':
			e.buf.WriteString(`\"`)
		case '\\':
			e.buf.WriteString(`\\`)
		case '\n':
			e.buf.WriteString(`\n`)
		case '\r':
			e.buf.WriteString(`\r`)
		case '\t':
			e.buf.WriteString(`\t`)
		case 0:
			e.buf.WriteString(`\0`)
		default:
			if unicode.IsPrint(r) {
				e.buf.WriteRune(r)
			} else {
				fmt.Fprintf(&e.buf, `\u{%x}`, r)
			}
		}
	}
	e.buf.WriteByte('"')

	return nil
}

func formatFloat(f float64, bitSize int) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "NaN"
	}

	format := byte('f')
	if abs := math.Abs(f); abs != 0 && (abs < 1e-4 || abs >= 1e21) {
		format = 'g'
	}
	str := strconv.FormatFloat(f, format, -1, bitSize)
	if !strings.ContainsAny(str, ".eE") {
		str += ".0"
	}

	return str
}

func textMarshaler(value reflect.Value) (encoding.TextMarshaler, bool) {
	if value.Type().Implements(textMarshalerType) {
		marshaler, ok := value.Interface().(encoding.TextMarshaler)

		return marshaler, ok
	}
	if value.CanAddr() && reflect.PointerTo(value.Type()).Implements(textMarshalerType) {
		marshaler, ok := value.Addr().Interface().(encoding.TextMarshaler)

		return marshaler, ok
	}

	return nil, false
}

type field struct {
	name      string
	index     []int
	omitEmpty bool
}

func structFields(typ reflect.Type) []field {
	fields := make([]field, 0, typ.NumField())
	for i := range typ.NumField() {
		structField := typ.Field(i)
		if !structField.IsExported() {
			continue
		}

		name, opts, _ := strings.Cut(structField.Tag.Get(tagName), ",")
		if name == "-" {
			continue
		}
		if name == "" {
			name = structField.Name
		}
		fields = append(fields, field{
			name:      name,
			index:     structField.Index,
			omitEmpty: slices.Contains(strings.Split(opts, ","), "omitempty"),
		})
	}

	return fields
}

// typeName returns the name written in front of a struct,
// with type parameters dropped since they are not valid identifiers.
func typeName(typ reflect.Type) string {
	name := typ.Name()
	if i := strings.IndexByte(name, '['); i >= 0 {
		name = name[:i]
	}

	return name
}

const tagName = "ron"

//nolint:gochecknoglobals
var (
	durationType      = reflect.TypeFor[time.Duration]()
	textMarshalerType = reflect.TypeFor[encoding.TextMarshaler]()
)
