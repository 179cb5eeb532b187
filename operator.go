// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package stringappend implements a merge operator that joins a key's base
// value and its queued merge operands with a configured delimiter. It can be
// driven directly through FullMerge and PartialMerge, or registered with Pebble
// through DelimOperator.Merger.
package stringappend

import (
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/redact"
	"github.com/cockroachdb/stringappend/internal/invariants"
)

// Name is the name of the delimited append merge operator. Pebble persists it
// in the OPTIONS file and refuses to open a store with a differently named
// merger. It does not depend on the configured delimiter.
const Name = "StringAppendDelimOperator"

// DelimOperator concatenates values, separating adjacent pieces with a fixed
// delimiter. The delimiter never appears before the first piece, after the
// last, or twice in a row. An empty delimiter degenerates to plain
// concatenation.
//
// A DelimOperator is immutable and safe for concurrent use.
type DelimOperator struct {
	delim []byte
}

// NewDelimOperator returns an operator that joins pieces with delim. The
// delimiter is copied; later modifications of delim do not affect the
// operator.
func NewDelimOperator(delim []byte) *DelimOperator {
	return &DelimOperator{delim: append([]byte(nil), delim...)}
}

// Name returns the operator name. See the Name constant.
func (o *DelimOperator) Name() string {
	return Name
}

// Delimiter returns the configured delimiter. The caller must not modify it.
func (o *DelimOperator) Delimiter() []byte {
	return o.delim
}

// MergeInput holds the arguments of a full merge.
type MergeInput struct {
	// Key is the user key being merged. The operator ignores it.
	Key []byte
	// ExistingValue is the base value of the key. It is only consulted when
	// HasExistingValue is set, which distinguishes an empty base value from
	// an absent one.
	ExistingValue    []byte
	HasExistingValue bool
	// Operands are the queued merge operands, oldest first. The host must
	// supply at least one.
	Operands [][]byte
	// Logger is accepted for parity with other merge operators. Merging never
	// logs.
	Logger pebble.Logger
}

// Value is the result of a full merge. It either owns a freshly allocated
// buffer, or borrows the caller's operand when no work was needed. A borrowed
// value is only valid as long as the operand it aliases.
type Value struct {
	data     []byte
	borrowed bool
}

// Bytes returns the merged value.
func (v Value) Bytes() []byte {
	return v.data
}

// Borrowed returns true if the value aliases an operand passed to FullMerge
// instead of owning its memory.
func (v Value) Borrowed() bool {
	return v.borrowed
}

// Owned returns the merged value in memory owned by the caller, copying it if
// the value is borrowed.
func (v Value) Owned() []byte {
	if !v.borrowed {
		return v.data
	}
	return append([]byte(nil), v.data...)
}

// FullMerge combines the optional base value with every operand, in order.
//
// When there is no base value and a single operand, that operand is returned
// as a borrowed Value without copying. Otherwise the result is assembled into
// a buffer sized exactly for it. FullMerge never fails.
func (o *DelimOperator) FullMerge(in MergeInput) Value {
	if invariants.Enabled && len(in.Operands) == 0 {
		panic(errors.AssertionFailedf("stringappend: full merge of %q without operands", in.Key))
	}
	if !in.HasExistingValue && len(in.Operands) == 1 {
		return Value{data: in.Operands[0], borrowed: true}
	}

	// Reserve room for one delimiter in front of every operand. Without a
	// base value the first operand goes without.
	n := 0
	for _, operand := range in.Operands {
		n += len(operand) + len(o.delim)
	}
	if in.HasExistingValue {
		n += len(in.ExistingValue)
	} else {
		n = invariants.SafeSub(n, len(o.delim))
	}

	buf := make([]byte, 0, n)
	printDelim := false
	if in.HasExistingValue {
		buf = append(buf, in.ExistingValue...)
		printDelim = len(o.delim) > 0
	}
	for _, operand := range in.Operands {
		if printDelim {
			buf = append(buf, o.delim...)
		}
		buf = append(buf, operand...)
		printDelim = len(o.delim) > 0
	}
	return Value{data: buf}
}

// PartialMerge combines two or more operands into one without knowledge of
// the base value. The result joins the operands with exactly one delimiter
// between each adjacent pair.
//
// PartialMerge always merges and always returns true. The boolean exists for
// hosts that also support operators that decline to partially merge.
func (o *DelimOperator) PartialMerge(
	key []byte, operands [][]byte, logger pebble.Logger,
) ([]byte, bool) {
	if invariants.Enabled && len(operands) < 2 {
		panic(errors.AssertionFailedf("stringappend: partial merge of %q with %d operands",
			key, len(operands)))
	}
	if len(operands) == 0 {
		return []byte{}, true
	}

	n := 0
	for _, operand := range operands {
		n += len(operand)
	}
	n += (len(operands) - 1) * len(o.delim)

	buf := make([]byte, 0, n)
	buf = append(buf, operands[0]...)
	for _, operand := range operands[1:] {
		buf = append(buf, o.delim...)
		buf = append(buf, operand...)
	}
	return buf, true
}

// SafeFormat implements redact.SafeFormatter. The delimiter is treated as user
// data.
func (o *DelimOperator) SafeFormat(w redact.SafePrinter, _ rune) {
	w.Printf("%s(delim=%q)", redact.SafeString(Name), o.delim)
}

// String implements fmt.Stringer.
func (o *DelimOperator) String() string {
	return redact.StringWithoutMarkers(o)
}
