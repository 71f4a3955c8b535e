// Copyright (c) 2026 The settings authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

// Package ron implements encoding and decoding of RON (Rusty Object Notation).
//
// Marshal always writes the pretty form with struct names, e.g.
//
//	Config(
//	    foo: "value",
//	    bar: 42,
//	)
//
// Unmarshal accepts the full document syntax, including comments,
// unnamed structs, tuples, maps, Some/None and raw strings.
//
// Optional values are flattened: Some(v) decodes as v and None as nil.
// So nested optionals do not survive a round trip, e.g. a **int holding
// a nil *int is written as Some(None) and read back as a nil **int.
package ron
