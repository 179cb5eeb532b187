// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"
)

var (
	delimiter string
	verbose   bool
)

var rootCmd = &cobra.Command{
	Use:   "stringappend [command] (flags)",
	Short: "delimited append merge operator tool",
	Long: `
Reads and writes Pebble stores whose merge operator joins operands with a
delimiter, and benchmarks the operator.
`,
	SilenceUsage: true,
}

func init() {
	cobra.EnableCommandSorting = false
	rootCmd.AddCommand(
		setCmd,
		mergeCmd,
		getCmd,
		compactCmd,
		benchCmd,
	)

	rootCmd.PersistentFlags().StringVar(
		&delimiter, "delim", ",",
		`delimiter placed between merged values; Go-quoted strings such as "\t" are unquoted`)
	rootCmd.PersistentFlags().BoolVarP(
		&verbose, "verbose", "v", false, "enable verbose logging")

	benchCmd.Flags().IntVarP(
		&benchConfig.ops, "ops", "n", benchConfig.ops, "number of merge operations")
	benchCmd.Flags().IntVar(
		&benchConfig.keys, "keys", benchConfig.keys, "number of distinct keys merged into")
	benchCmd.Flags().IntVar(
		&benchConfig.operandSize, "operand-size", benchConfig.operandSize, "size of each operand")
	benchCmd.Flags().IntVarP(
		&benchConfig.concurrency, "concurrency", "c", benchConfig.concurrency,
		"number of concurrent writers")
	benchCmd.Flags().BoolVar(
		&benchConfig.flush, "flush", benchConfig.flush,
		"flush the memtable before reading, so reads merge across sstables")
}

func main() {
	log.SetFlags(0)

	if err := rootCmd.Execute(); err != nil {
		// Cobra has already printed the error message.
		os.Exit(1)
	}
}
