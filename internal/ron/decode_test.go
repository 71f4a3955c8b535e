// Copyright (c) 2026 The settings authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package ron_test

import (
	"math"
	"net/netip"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nil-go/settings/internal/ron"
)

type Empty struct{}

type Options struct {
	Retries  int                `ron:"retries"`
	Interval time.Duration      `ron:"interval"`
	Address  netip.Addr         `ron:"address"`
	Weights  map[int]float64    `ron:"weights"`
	Labels   map[string]string  `ron:"labels"`
	Marker   Empty              `ron:"marker"`
	Default  *Window            `ron:"default"`
	Any      any                `ron:"any"`
	Nested   map[string]*Window `ron:"nested"`
}

func TestUnmarshal(t *testing.T) {
	t.Parallel()

	document := `Options(
    retries: 3,
    interval: "1m30s",
    address: "10.0.0.1",
    weights: {1: 0.5, 2: 1},
    labels: {"env": "prod", key: "value"},
    marker: Empty,
    default: Some(Window(title: "default", width: 640, scale: 1.0)),
    any: (a: [1, Variant], b: Some(Window(title: "w"))),
    nested: {"main": Window(title: "main")},
    unknown: "ignored",
)`

	var options Options
	require.NoError(t, ron.Unmarshal([]byte(document), &options))
	require.Equal(t, Options{
		Retries:  3,
		Interval: 90 * time.Second,
		Address:  netip.MustParseAddr("10.0.0.1"),
		Weights:  map[int]float64{1: 0.5, 2: 1},
		Labels:   map[string]string{"env": "prod", "key": "value"},
		Default:  &Window{Title: "default", Width: 640, Scale: 1},
		Any: map[string]any{
			"a": []any{int64(1), "Variant"},
			"b": map[string]any{"title": "w"},
		},
		Nested: map[string]*Window{"main": {Title: "main"}},
	}, options)
}

func TestUnmarshal_unnamed(t *testing.T) {
	t.Parallel()

	var window Window
	require.NoError(t, ron.Unmarshal([]byte(`(title: "unnamed", width: 1)`), &window))
	require.Equal(t, Window{Title: "unnamed", Width: 1}, window)
}

func TestUnmarshal_error(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		description string
		document    string
		err         string
	}{
		{
			description: "syntax",
			document:    `Window(title: )`,
			err:         "1:15: unexpected character ')'",
		},
		{
			description: "struct name",
			document:    `Options(title: "")`,
			err:         "expected struct Window, found Options",
		},
		{
			description: "type",
			document:    `Window(title: 1)`,
		},
		{
			description: "negative unsigned",
			document:    `Window(width: -1)`,
			err:         "-1 overflows uint16",
		},
		{
			description: "unsigned overflow",
			document:    `Window(width: 65536)`,
			err:         "65536 overflows uint16",
		},
		{
			description: "float into unsigned",
			document:    `Window(width: 1.9)`,
			err:         "expected integer for uint16, found float 1.9",
		},
	}

	for _, testcase := range testcases {
		t.Run(testcase.description, func(t *testing.T) {
			t.Parallel()

			var window Window
			err := ron.Unmarshal([]byte(testcase.document), &window)
			require.Error(t, err)
			if testcase.err != "" {
				require.ErrorContains(t, err, testcase.err)
			}
		})
	}
}

func TestUnmarshal_integer(t *testing.T) {
	t.Parallel()

	type Counters struct {
		Small  int8    `ron:"small"`
		Count  int     `ron:"count"`
		Signed int64   `ron:"signed"`
		Large  uint64  `ron:"large"`
		Ratio  float32 `ron:"ratio"`
		Limit  *uint8  `ron:"limit"`
	}

	testcases := []struct {
		description string
		document    string
		expected    Counters
		err         string
	}{
		{
			description: "in range",
			document:    `(small: -128, count: 7, signed: -9223372036854775808, large: 18446744073709551615, ratio: 2)`,
			expected: Counters{
				Small:  -128,
				Count:  7,
				Signed: math.MinInt64,
				Large:  math.MaxUint64,
				Ratio:  2,
			},
		},
		{
			description: "signed overflow",
			document:    `(small: 300)`,
			err:         "300 overflows int8",
		},
		{
			description: "signed underflow",
			document:    `(small: -129)`,
			err:         "-129 overflows int8",
		},
		{
			description: "unsigned into signed",
			document:    `(signed: 18446744073709551615)`,
			err:         "18446744073709551615 overflows int64",
		},
		{
			description: "float into signed",
			document:    `(count: 1.9)`,
			err:         "expected integer for int, found float 1.9",
		},
		{
			description: "overflow behind pointer",
			document:    `(limit: Some(256))`,
			err:         "256 overflows uint8",
		},
		{
			description: "negative into unsigned",
			document:    `(large: -1)`,
			err:         "-1 overflows uint64",
		},
	}

	for _, testcase := range testcases {
		t.Run(testcase.description, func(t *testing.T) {
			t.Parallel()

			var counters Counters
			err := ron.Unmarshal([]byte(testcase.document), &counters)
			if testcase.err != "" {
				require.ErrorContains(t, err, testcase.err)

				return
			}
			require.NoError(t, err)
			require.Equal(t, testcase.expected, counters)
		})
	}
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	focus := 3
	expected := Layout{
		Main:   Window{Title: "main \"quoted\"", Width: 1024, Scale: 0.25},
		Panels: []Window{{Title: "a"}, {Title: "b", Width: 1}},
		Keys:   map[string]string{"quit": "q"},
		Focus:  &focus,
		Extra:  "extra",
	}

	data, err := ron.Marshal(expected)
	require.NoError(t, err)

	var actual Layout
	require.NoError(t, ron.Unmarshal(data, &actual))
	require.Equal(t, expected, actual)
}
