// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package main

import (
	"fmt"
	"io"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
	"github.com/cockroachdb/crlib/crtime"
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const (
	minLatency = 100 * time.Nanosecond
	maxLatency = 10 * time.Second
)

var benchConfig = struct {
	ops         int
	keys        int
	operandSize int
	concurrency int
	flush       bool
}{
	ops:         100000,
	keys:        1000,
	operandSize: 16,
	concurrency: 4,
}

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "benchmark merge writes and merged reads against an in-memory store",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBench(cmd.OutOrStdout())
	},
}

func newHistogram() *hdrhistogram.Histogram {
	return hdrhistogram.New(minLatency.Nanoseconds(), maxLatency.Nanoseconds(), 2)
}

// latencyRecorder is a histogram shared by concurrent workers.
type latencyRecorder struct {
	name string
	mu   struct {
		sync.Mutex
		hist *hdrhistogram.Histogram
	}
}

func newLatencyRecorder(name string) *latencyRecorder {
	r := &latencyRecorder{name: name}
	r.mu.hist = newHistogram()
	return r
}

func (r *latencyRecorder) Record(elapsed time.Duration) {
	if elapsed < minLatency {
		elapsed = minLatency
	} else if elapsed > maxLatency {
		elapsed = maxLatency
	}

	r.mu.Lock()
	err := r.mu.hist.RecordValue(elapsed.Nanoseconds())
	r.mu.Unlock()

	if err != nil {
		// The latency is clamped to the histogram's range, so this cannot
		// happen.
		panic(errors.AssertionFailedf("%s: recording value: %v", r.name, err))
	}
}

func benchKey(i int) []byte {
	return []byte(fmt.Sprintf("key%08d", i))
}

func runBench(w io.Writer) error {
	cfg := benchConfig
	if cfg.ops <= 0 || cfg.keys <= 0 || cfg.concurrency <= 0 || cfg.operandSize < 0 {
		return errors.Newf("invalid bench configuration: ops=%d keys=%d concurrency=%d operand-size=%d",
			cfg.ops, cfg.keys, cfg.concurrency, cfg.operandSize)
	}

	d, err := openStore("bench", vfs.NewMem())
	if err != nil {
		return err
	}
	defer d.Close()

	merges := newLatencyRecorder("merge")
	start := crtime.NowMono()
	var g errgroup.Group
	for worker := 0; worker < cfg.concurrency; worker++ {
		n := cfg.ops / cfg.concurrency
		if worker < cfg.ops%cfg.concurrency {
			n++
		}
		g.Go(func() error {
			rng := rand.New(rand.NewPCG(1, uint64(worker)))
			operand := make([]byte, cfg.operandSize)
			for i := 0; i < n; i++ {
				for j := range operand {
					operand[j] = byte('a' + rng.IntN(26))
				}
				key := benchKey(rng.IntN(cfg.keys))
				opStart := crtime.NowMono()
				if err := d.Merge(key, operand, pebble.NoSync); err != nil {
					return err
				}
				merges.Record(opStart.Elapsed())
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	writeElapsed := start.Elapsed()

	if cfg.flush {
		if err := d.Flush(); err != nil {
			return err
		}
	}

	gets := newLatencyRecorder("get")
	var valueBytes int64
	start = crtime.NowMono()
	for i := 0; i < cfg.keys; i++ {
		opStart := crtime.NowMono()
		v, closer, err := d.Get(benchKey(i))
		if errors.Is(err, pebble.ErrNotFound) {
			continue
		} else if err != nil {
			return err
		}
		gets.Record(opStart.Elapsed())
		valueBytes += int64(len(v))
		if err := closer.Close(); err != nil {
			return err
		}
	}
	readElapsed := start.Elapsed()

	tbl := tablewriter.NewWriter(w)
	tbl.SetHeader([]string{"op", "count", "ops/sec", "mean(μs)", "p50(μs)", "p99(μs)", "max(μs)"})
	for _, r := range []struct {
		rec     *latencyRecorder
		elapsed time.Duration
	}{
		{merges, writeElapsed},
		{gets, readElapsed},
	} {
		h := r.rec.mu.hist
		tbl.Append([]string{
			r.rec.name,
			fmt.Sprintf("%d", h.TotalCount()),
			fmt.Sprintf("%.0f", float64(h.TotalCount())/r.elapsed.Seconds()),
			fmt.Sprintf("%.1f", h.Mean()/1000),
			fmt.Sprintf("%.1f", float64(h.ValueAtQuantile(50))/1000),
			fmt.Sprintf("%.1f", float64(h.ValueAtQuantile(99))/1000),
			fmt.Sprintf("%.1f", float64(h.Max())/1000),
		})
	}
	tbl.Render()
	fmt.Fprintf(w, "merged value bytes: %d\n", valueBytes)
	return nil
}
