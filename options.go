// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package stringappend

import (
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/pebble"
)

// ParseHooks returns hooks for pebble.Options.Parse that resolve a merger
// named Name in an OPTIONS file to an operator joining with delim. Any other
// merger name, apart from those Pebble resolves itself, is an error.
func ParseHooks(delim []byte) *pebble.ParseHooks {
	return &pebble.ParseHooks{
		NewMerger: func(name string) (*pebble.Merger, error) {
			if name != Name {
				return nil, errors.Newf("stringappend: unknown merger %q, expected %q", name, Name)
			}
			return NewDelimOperator(delim).Merger(), nil
		},
	}
}

// ParseDelimiter parses the textual form of a delimiter, as accepted on the
// command line. A double-quoted or backquoted string is unquoted with Go
// syntax, so "\t" or "\x00" name control bytes. Anything else is taken
// literally.
func ParseDelimiter(s string) ([]byte, error) {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '`') {
		u, err := strconv.Unquote(s)
		if err != nil {
			return nil, errors.Wrapf(err, "stringappend: invalid delimiter %s", s)
		}
		return []byte(u), nil
	}
	return []byte(s), nil
}
