// SPDX-License-Identifier: MPL-2.0

// Package cueutil validates user-supplied CUE documents against an embedded
// schema definition and decodes the unified result.
//
//	//go:embed config_schema.cue
//	var schema []byte
//
//	res, err := cueutil.Decode[map[string]any](schema, data, "#Config",
//	    cueutil.WithFilename(path),
//	    cueutil.WithConcrete(false),
//	)
//
// Errors carry the file name and a JSON-path style location, e.g.
// "config.cue: tail.lines: invalid value".
package cueutil
