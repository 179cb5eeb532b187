// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package stringappend

import (
	"io"

	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/stringappend/internal/bytealloc"
)

// Merger returns a pebble.Merger backed by the operator, suitable for
// pebble.Options.Merger. Operands written with {Batch,DB}.Merge are joined
// with the operator's delimiter on reads and during compactions.
func (o *DelimOperator) Merger() *pebble.Merger {
	return &pebble.Merger{
		Merge: func(key, value []byte) (pebble.ValueMerger, error) {
			m := &valueMerger{op: o}
			var v []byte
			m.alloc, m.key = m.alloc.Copy(key)
			m.alloc, v = m.alloc.Copy(value)
			m.newer = append(m.newer, v)
			return m, nil
		},
		Name: Name,
	}
}

// valueMerger accumulates the operands Pebble hands it for a single key.
// Pebble adds operands newest-to-oldest during forward iteration and
// oldest-to-newest during reverse iteration; both are supported.
type valueMerger struct {
	op    *DelimOperator
	alloc bytealloc.A
	key   []byte
	// older holds operands older than the initial one, newest first.
	older [][]byte
	// newer holds the initial operand followed by newer ones, oldest first.
	newer [][]byte
}

var _ pebble.ValueMerger = (*valueMerger)(nil)

// MergeNewer implements pebble.ValueMerger.
func (m *valueMerger) MergeNewer(value []byte) error {
	var v []byte
	m.alloc, v = m.alloc.Copy(value)
	m.newer = append(m.newer, v)
	return nil
}

// MergeOlder implements pebble.ValueMerger.
func (m *valueMerger) MergeOlder(value []byte) error {
	var v []byte
	m.alloc, v = m.alloc.Copy(value)
	m.older = append(m.older, v)
	return nil
}

// pieces returns every operand, oldest first.
func (m *valueMerger) pieces() [][]byte {
	if len(m.older) == 0 {
		return m.newer
	}
	p := make([][]byte, 0, len(m.older)+len(m.newer))
	for i := len(m.older) - 1; i >= 0; i-- {
		p = append(p, m.older[i])
	}
	return append(p, m.newer...)
}

// Finish implements pebble.ValueMerger.
//
// When includesBase is set the oldest piece is the base of the key, and the
// pieces are fully merged. Otherwise they are partially merged into a single
// operand. Pebble does not say whether the oldest piece was written with Set
// or Merge, but a delimited join produces the same bytes either way.
func (m *valueMerger) Finish(includesBase bool) ([]byte, io.Closer, error) {
	pieces := m.pieces()
	switch {
	case len(pieces) == 1:
		// Already a private copy.
		return pieces[0], nil, nil
	case includesBase:
		v := m.op.FullMerge(MergeInput{
			Key:              m.key,
			ExistingValue:    pieces[0],
			HasExistingValue: true,
			Operands:         pieces[1:],
		})
		return v.Bytes(), nil, nil
	default:
		v, _ := m.op.PartialMerge(m.key, pieces, nil)
		return v, nil, nil
	}
}
