// Copyright (c) 2026 The settings authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package ron

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Struct is a parsed struct with named fields, e.g. `Config(foo: 1)`.
// Name is empty for an unnamed struct `(foo: 1)`.
type Struct struct {
	Name   string
	Fields map[string]any
}

// Ident is a bare identifier which is not a keyword, e.g. an enum variant.
type Ident string

// SyntaxError is a description of a RON syntax error with its position.
type SyntaxError struct {
	Msg    string
	Offset int // byte offset
	Line   int // 1-based
	Column int // 1-based, in runes
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Msg)
}

// Parse parses a RON document into a tree of Go values:
// *Struct, Ident, []any (lists and tuples), map[any]any, string,
// int64, uint64 (above math.MaxInt64), float64, bool and nil (None and unit).
// Some(v) is unwrapped to v.
func Parse(data []byte) (any, error) {
	p := &parser{data: data}

	p.skip()
	if err := p.attributes(); err != nil {
		return nil, err
	}
	value, err := p.value(0)
	if err != nil {
		return nil, err
	}
	p.skip()
	if !p.eof() {
		return nil, p.errorf("trailing characters after value")
	}

	return value, nil
}

type parser struct {
	data []byte
	pos  int
}

// attributes skips inner attributes like `#![enable(implicit_some)]`.
func (p *parser) attributes() error {
	for bytes.HasPrefix(p.data[p.pos:], []byte("#![")) {
		end := bytes.IndexByte(p.data[p.pos:], ']')
		if end < 0 {
			return p.errorf("unclosed attribute")
		}
		p.pos += end + 1
		p.skip()
	}

	return nil
}

func (p *parser) value(depth int) (any, error) { //nolint:cyclop
	if depth > maxDepth {
		return nil, p.errorf("exceeded max depth of %d", maxDepth)
	}

	p.skip()
	if p.eof() {
		return nil, p.errorf("unexpected end of input")
	}

	switch c := p.peek(); {
	case c == '(':
		return p.group("", depth)
	case c == '[':
		return p.list(depth)
	case c == '{':
		return p.dict(depth)
	case c == '"':
		return p.str()
	case c == '\'':
		return p.char()
	case c == 'r' && p.rawStringAhead():
		return p.rawStr()
	case c == '+' || c == '-' || c == '.' || isDigit(c):
		return p.number()
	case isIdentStart(c):
		return p.identValue(depth)
	default:
		return nil, p.errorf("unexpected character %q", c)
	}
}

func (p *parser) identValue(depth int) (any, error) {
	ident, err := p.identifier()
	if err != nil {
		return nil, err
	}

	switch ident {
	case "true":
		return true, nil
	case "false":
		return false, nil
	case "None":
		return nil, nil //nolint:nilnil
	case "inf":
		return math.Inf(1), nil
	case "NaN":
		return math.NaN(), nil
	case "Some":
		p.skip()
		if err := p.expect('('); err != nil {
			return nil, err
		}
		value, err := p.value(depth + 1)
		if err != nil {
			return nil, err
		}
		p.skip()
		if p.peek() == ',' {
			p.pos++
			p.skip()
		}
		if err := p.expect(')'); err != nil {
			return nil, err
		}

		return value, nil
	}

	p.skip()
	if p.peek() == '(' {
		return p.group(ident, depth)
	}

	return Ident(ident), nil
}

// group parses a struct, tuple or unit, starting at '('.
func (p *parser) group(name string, depth int) (any, error) {
	p.pos++
	p.skip()

	if p.peek() == ')' {
		p.pos++
		if name == "" {
			return nil, nil //nolint:nilnil
		}

		return &Struct{Name: name, Fields: map[string]any{}}, nil
	}

	if p.fieldAhead() {
		fields := make(map[string]any)
		err := p.sequence(')', func() error {
			start := p.pos
			key, err := p.identifier()
			if err != nil {
				return err
			}
			p.skip()
			if err := p.expect(':'); err != nil {
				return err
			}
			value, err := p.value(depth + 1)
			if err != nil {
				return err
			}
			if _, ok := fields[key]; ok {
				p.pos = start

				return p.errorf("duplicate field %q", key)
			}
			fields[key] = value

			return nil
		})
		if err != nil {
			return nil, err
		}

		return &Struct{Name: name, Fields: fields}, nil
	}

	var tuple []any
	err := p.sequence(')', func() error {
		value, err := p.value(depth + 1)
		if err != nil {
			return err
		}
		tuple = append(tuple, value)

		return nil
	})

	return tuple, err
}

func (p *parser) list(depth int) (any, error) {
	p.pos++
	list := []any{}
	err := p.sequence(']', func() error {
		value, err := p.value(depth + 1)
		if err != nil {
			return err
		}
		list = append(list, value)

		return nil
	})

	return list, err
}

func (p *parser) dict(depth int) (any, error) {
	p.pos++
	dict := make(map[any]any)
	err := p.sequence('}', func() error {
		start := p.pos
		key, err := p.value(depth + 1)
		if err != nil {
			return err
		}
		if key != nil && !reflect.TypeOf(key).Comparable() {
			p.pos = start

			return p.errorf("map key must be a scalar")
		}
		p.skip()
		if err := p.expect(':'); err != nil {
			return err
		}
		value, err := p.value(depth + 1)
		if err != nil {
			return err
		}
		dict[key] = value

		return nil
	})

	return dict, err
}

// sequence parses comma separated items until the closing byte.
// A trailing comma is allowed.
func (p *parser) sequence(closing byte, item func() error) error {
	for {
		p.skip()
		if p.eof() {
			return p.errorf("expected %q, found end of input", closing)
		}
		if p.peek() == closing {
			p.pos++

			return nil
		}

		if err := item(); err != nil {
			return err
		}

		p.skip()
		switch p.peek() {
		case ',':
			p.pos++
		case closing:
			p.pos++

			return nil
		default:
			if p.eof() {
				return p.errorf("expected %q, found end of input", closing)
			}

			return p.errorf("expected ',' or %q, found %q", closing, p.peek())
		}
	}
}

// fieldAhead reports whether the group content starts with `ident:`.
func (p *parser) fieldAhead() bool {
	start := p.pos
	defer func() { p.pos = start }()

	if !isIdentStart(p.peek()) {
		return false
	}
	if _, err := p.identifier(); err != nil {
		return false
	}
	p.skip()

	return p.peek() == ':'
}

func (p *parser) identifier() (string, error) {
	if bytes.HasPrefix(p.data[p.pos:], []byte("r#")) {
		p.pos += 2
		start := p.pos
		for !p.eof() && isRawIdentChar(p.peek()) {
			p.pos++
		}
		if p.pos == start {
			return "", p.errorf("empty raw identifier")
		}

		return string(p.data[start:p.pos]), nil
	}

	start := p.pos
	if !isIdentStart(p.peek()) {
		return "", p.errorf("expected identifier, found %q", p.peek())
	}
	for !p.eof() && isIdentChar(p.peek()) {
		p.pos++
	}

	return string(p.data[start:p.pos]), nil
}

func (p *parser) number() (any, error) { //nolint:cyclop,funlen
	start := p.pos
	negative := false
	if c := p.peek(); c == '+' || c == '-' {
		negative = c == '-'
		p.pos++
	}

	if isIdentStart(p.peek()) {
		ident, err := p.identifier()
		if err != nil {
			return nil, err
		}
		switch ident {
		case "inf":
			if negative {
				return math.Inf(-1), nil
			}

			return math.Inf(1), nil
		case "NaN":
			return math.NaN(), nil
		default:
			p.pos = start

			return nil, p.errorf("invalid number")
		}
	}

	if base := p.radix(); base != 0 {
		p.pos += 2
		digits := p.scan(func(c byte) bool { return isHexDigit(c) || c == '_' })
		magnitude, err := strconv.ParseUint(strings.ReplaceAll(digits, "_", ""), base, 64)
		if err != nil {
			p.pos = start

			return nil, p.errorf("invalid integer: %v", numError(err))
		}

		return p.signed(magnitude, negative, start)
	}

	isFloat := false
	p.scan(func(c byte) bool { return isDigit(c) || c == '_' })
	if p.peek() == '.' {
		isFloat = true
		p.pos++
		p.scan(func(c byte) bool { return isDigit(c) || c == '_' })
	}
	if c := p.peek(); c == 'e' || c == 'E' {
		isFloat = true
		p.pos++
		if c := p.peek(); c == '+' || c == '-' {
			p.pos++
		}
		p.scan(isDigit)
	}

	text := strings.ReplaceAll(string(p.data[start:p.pos]), "_", "")
	if isFloat {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			p.pos = start

			return nil, p.errorf("invalid float: %v", numError(err))
		}

		return f, nil
	}

	magnitude, err := strconv.ParseUint(strings.TrimLeft(text, "+-"), 10, 64)
	if err != nil {
		p.pos = start

		return nil, p.errorf("invalid integer: %v", numError(err))
	}

	return p.signed(magnitude, negative, start)
}

func (p *parser) radix() int {
	if p.pos+1 >= len(p.data) || p.data[p.pos] != '0' {
		return 0
	}
	switch p.data[p.pos+1] {
	case 'x':
		return 16
	case 'o':
		return 8
	case 'b':
		return 2
	default:
		return 0
	}
}

func (p *parser) signed(magnitude uint64, negative bool, start int) (any, error) {
	switch {
	case !negative && magnitude <= math.MaxInt64:
		return int64(magnitude), nil
	case !negative:
		return magnitude, nil
	case magnitude <= 1<<63:
		return int64(-magnitude), nil //nolint:gosec
	default:
		p.pos = start

		return nil, p.errorf("integer overflows int64")
	}
}

func numError(err error) error {
	var numErr *strconv.NumError
	if errors.As(err, &numErr) {
		return numErr.Err
	}

	return err
}

func (p *parser) str() (string, error) {
	start := p.pos
	p.pos++

	var builder strings.Builder
	for {
		if p.eof() {
			p.pos = start

			return "", p.errorf("unterminated string")
		}

		c := p.peek()
		switch c {
		case '"':
			p.pos++

			return builder.String(), nil
		case '\\':
			r, err := p.escape()
			if err != nil {
				return "", err
			}
			builder.WriteRune(r)
		default:
			r, size := utf8.DecodeRune(p.data[p.pos:])
			builder.WriteRune(r)
			p.pos += size
		}
	}
}

func (p *parser) char() (string, error) {
	start := p.pos
	p.pos++

	var r rune
	switch {
	case p.eof():
		p.pos = start

		return "", p.errorf("unterminated char")
	case p.peek() == '\\':
		var err error
		if r, err = p.escape(); err != nil {
			return "", err
		}
	default:
		var size int
		r, size = utf8.DecodeRune(p.data[p.pos:])
		p.pos += size
	}

	if p.peek() != '\'' {
		p.pos = start

		return "", p.errorf("char must contain exactly one character")
	}
	p.pos++

	return string(r), nil
}

func (p *parser) escape() (rune, error) {
	start := p.pos
	p.pos++ // backslash
	if p.eof() {
		p.pos = start

		return 0, p.errorf("unterminated escape sequence")
	}

	c := p.peek()
	p.pos++
	switch c {
	case '"', '\'', '\\':
		return rune(c), nil
	case 'n':
		return '\n', nil
	case 'r':
		return '\r', nil
	case 't':
		return '\t', nil
	case 'b':
		return '\b', nil
	case 'f':
		return '\f', nil
	case '0':
		return 0, nil
	case 'x':
		if p.pos+2 > len(p.data) {
			p.pos = start

			return 0, p.errorf("invalid \\x escape")
		}
		b, err := strconv.ParseUint(string(p.data[p.pos:p.pos+2]), 16, 8)
		if err != nil {
			p.pos = start

			return 0, p.errorf("invalid \\x escape")
		}
		p.pos += 2

		return rune(b), nil
	case 'u':
		if p.peek() != '{' {
			p.pos = start

			return 0, p.errorf("expected '{' in \\u escape")
		}
		p.pos++
		digits := p.scan(isHexDigit)
		if p.peek() != '}' || len(digits) == 0 || len(digits) > 6 {
			p.pos = start

			return 0, p.errorf("invalid \\u escape")
		}
		p.pos++
		code, _ := strconv.ParseUint(digits, 16, 32)
		if !utf8.ValidRune(rune(code)) {
			p.pos = start

			return 0, p.errorf("invalid unicode code point %x", code)
		}

		return rune(code), nil
	default:
		p.pos = start

		return 0, p.errorf("unknown escape sequence \\%c", c)
	}
}

func (p *parser) rawStringAhead() bool {
	i := p.pos + 1
	for i < len(p.data) && p.data[i] == '#' {
		i++
	}

	return i < len(p.data) && p.data[i] == '"'
}

func (p *parser) rawStr() (string, error) {
	start := p.pos
	p.pos++ // r
	hashes := len(p.scan(func(c byte) bool { return c == '#' }))
	p.pos++ // "

	closing := "\"" + strings.Repeat("#", hashes)
	end := bytes.Index(p.data[p.pos:], []byte(closing))
	if end < 0 {
		p.pos = start

		return "", p.errorf("unterminated raw string")
	}
	str := string(p.data[p.pos : p.pos+end])
	p.pos += end + len(closing)

	return str, nil
}

// skip skips whitespace and comments. Block comments may nest.
func (p *parser) skip() {
	for !p.eof() {
		switch {
		case isSpace(p.peek()):
			p.pos++
		case bytes.HasPrefix(p.data[p.pos:], []byte("//")):
			if end := bytes.IndexByte(p.data[p.pos:], '\n'); end >= 0 {
				p.pos += end + 1
			} else {
				p.pos = len(p.data)
			}
		case bytes.HasPrefix(p.data[p.pos:], []byte("/*")):
			p.blockComment()
		default:
			return
		}
	}
}

func (p *parser) blockComment() {
	level := 0
	for !p.eof() {
		switch {
		case bytes.HasPrefix(p.data[p.pos:], []byte("/*")):
			level++
			p.pos += 2
		case bytes.HasPrefix(p.data[p.pos:], []byte("*/")):
			level--
			p.pos += 2
			if level == 0 {
				return
			}
		default:
			p.pos++
		}
	}
}

func (p *parser) scan(accept func(byte) bool) string {
	start := p.pos
	for !p.eof() && accept(p.peek()) {
		p.pos++
	}

	return string(p.data[start:p.pos])
}

func (p *parser) expect(c byte) error {
	if p.eof() {
		return p.errorf("expected %q, found end of input", c)
	}
	if p.peek() != c {
		return p.errorf("expected %q, found %q", c, p.peek())
	}
	p.pos++

	return nil
}

func (p *parser) peek() byte {
	if p.eof() {
		return 0
	}

	return p.data[p.pos]
}

func (p *parser) eof() bool {
	return p.pos >= len(p.data)
}

func (p *parser) errorf(format string, args ...any) error {
	line := 1 + bytes.Count(p.data[:p.pos], []byte("\n"))
	lineStart := bytes.LastIndexByte(p.data[:p.pos], '\n') + 1

	return &SyntaxError{
		Msg:    fmt.Sprintf(format, args...),
		Offset: p.pos,
		Line:   line,
		Column: 1 + utf8.RuneCount(p.data[lineStart:p.pos]),
	}
}

func isIdentifier(str string) bool {
	if str == "" || !isIdentStart(str[0]) {
		return false
	}
	for i := 1; i < len(str); i++ {
		if !isIdentChar(str[i]) {
			return false
		}
	}

	return true
}

func isSpace(c byte) bool      { return c == ' ' || c == '\t' || c == '\n' || c == '\r' }
func isDigit(c byte) bool      { return '0' <= c && c <= '9' }
func isIdentStart(c byte) bool { return c == '_' || 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' }
func isIdentChar(c byte) bool  { return isIdentStart(c) || isDigit(c) }

func isHexDigit(c byte) bool {
	return isDigit(c) || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}

func isRawIdentChar(c byte) bool {
	return isIdentChar(c) || c == '.' || c == '+' || c == '-'
}
