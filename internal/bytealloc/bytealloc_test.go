// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package bytealloc

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCopy(t *testing.T) {
	var a A
	var copies [][]byte
	for i := 0; i < 100; i++ {
		src := bytes.Repeat([]byte{byte('a' + i%26)}, i)
		var c []byte
		a, c = a.Copy(src)
		require.Equal(t, string(src), string(c))
		require.Len(t, c, len(src))
		require.Equal(t, len(c), cap(c))
		copies = append(copies, c)
	}
	// Earlier copies survive the arena growing.
	for i, c := range copies {
		require.Equal(t, string(bytes.Repeat([]byte{byte('a' + i%26)}, i)), string(c))
	}
}

func TestCopyEmpty(t *testing.T) {
	var a A
	a, c := a.Copy(nil)
	require.Len(t, c, 0)
	require.Equal(t, 0, cap(c))
	// An empty copy does not disturb later allocations.
	a, c = a.Copy([]byte("xyz"))
	require.Equal(t, "xyz", string(c))
	require.Equal(t, 3, len(a))
}

func TestAllocLarge(t *testing.T) {
	var a A
	a, b := a.Alloc(chunkAllocMaxSize + 1)
	require.Len(t, b, chunkAllocMaxSize+1)
	require.Equal(t, chunkAllocMaxSize+1, cap(a))
	a = a.Reset()
	require.Equal(t, 0, len(a))
}
