// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package main

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"
	"github.com/cockroachdb/stringappend"
	"github.com/spf13/cobra"
)

// quietLogger drops informational messages and forwards everything else.
type quietLogger struct {
	pebble.Logger
}

func (quietLogger) Infof(format string, args ...interface{}) {}

func newLogger() pebble.Logger {
	if verbose {
		return pebble.DefaultLogger
	}
	return quietLogger{Logger: pebble.DefaultLogger}
}

func newOperator() (*stringappend.DelimOperator, error) {
	delim, err := stringappend.ParseDelimiter(delimiter)
	if err != nil {
		return nil, err
	}
	return stringappend.NewDelimOperator(delim), nil
}

// openStore opens (creating if necessary) the store in dir. A nil fs uses
// the local disk.
func openStore(dir string, fs vfs.FS) (*pebble.DB, error) {
	op, err := newOperator()
	if err != nil {
		return nil, err
	}
	logger := newLogger()
	logger.Infof("opening %s with %s", dir, op)
	opts := &pebble.Options{
		FS:     fs,
		Logger: logger,
		Merger: op.Merger(),
	}
	d, err := pebble.Open(dir, opts)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", dir)
	}
	return d, nil
}

var setCmd = &cobra.Command{
	Use:   "set <dir> <key> <value>",
	Short: "set the base value of a key",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openStore(args[0], nil)
		if err != nil {
			return err
		}
		defer d.Close()
		return d.Set([]byte(args[1]), []byte(args[2]), pebble.Sync)
	},
}

var mergeCmd = &cobra.Command{
	Use:   "merge <dir> <key> <operand>...",
	Short: "queue merge operands for a key",
	Args:  cobra.MinimumNArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openStore(args[0], nil)
		if err != nil {
			return err
		}
		defer d.Close()

		key := []byte(args[1])
		b := d.NewBatch()
		for _, operand := range args[2:] {
			if err := b.Merge(key, []byte(operand), nil); err != nil {
				return err
			}
		}
		return b.Commit(pebble.Sync)
	},
}

var getCmd = &cobra.Command{
	Use:   "get <dir> <key>",
	Short: "print the merged value of a key",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openStore(args[0], nil)
		if err != nil {
			return err
		}
		defer d.Close()

		v, closer, err := d.Get([]byte(args[1]))
		if errors.Is(err, pebble.ErrNotFound) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: not found\n", args[1])
			return nil
		} else if err != nil {
			return err
		}
		defer closer.Close()
		fmt.Fprintf(cmd.OutOrStdout(), "%q\n", v)
		return nil
	},
}

var compactCmd = &cobra.Command{
	Use:   "compact <dir>",
	Short: "flush and compact the whole store",
	Long: `
Flushes the memtable and compacts every key, which partially merges queued
operands inside the store.
`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openStore(args[0], nil)
		if err != nil {
			return err
		}
		defer d.Close()
		if err := d.Flush(); err != nil {
			return err
		}

		iter, err := d.NewIter(nil)
		if err != nil {
			return err
		}
		var start, end []byte
		if iter.First() {
			start = append(start, iter.Key()...)
		}
		if iter.Last() {
			// The end bound is exclusive.
			end = append(append(end, iter.Key()...), 0)
		}
		if err := iter.Close(); err != nil {
			return err
		}
		if start == nil {
			return nil
		}
		return d.Compact(start, end, false)
	},
}
