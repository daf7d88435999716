// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// Decode compiles schema, unifies the definition at schemaPath with data,
// validates the result and decodes it into a T.
//
// Decoding into map[string]any keeps only the fields the document sets, which
// is what configuration layers that merge over defaults want.
func Decode[T any](schema, data []byte, schemaPath string, opts ...Option) (T, error) {
	var zero T

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if err := CheckFileSize(data, o.maxFileSize, o.filename); err != nil {
		return zero, err
	}

	ctx := cuecontext.New()

	schemaValue := ctx.CompileBytes(schema)
	if err := schemaValue.Err(); err != nil {
		return zero, fmt.Errorf("%w: %w", ErrSchema, err)
	}
	def := schemaValue.LookupPath(cue.ParsePath(schemaPath))
	if err := def.Err(); err != nil {
		return zero, fmt.Errorf("%w: definition %s: %w", ErrSchema, schemaPath, err)
	}

	userValue := ctx.CompileBytes(data, cue.Filename(o.filename))
	if err := userValue.Err(); err != nil {
		return zero, FormatError(err, o.filename)
	}

	unified := def.Unify(userValue)
	if err := unified.Validate(cue.Concrete(o.concrete)); err != nil {
		return zero, FormatError(err, o.filename)
	}

	var out T
	if err := unified.Decode(&out); err != nil {
		return zero, FormatError(err, o.filename)
	}
	return out, nil
}
