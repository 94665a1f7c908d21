// pipeline.go — four-stage pinned-thread orchestrator.
//
// Ported from original_source/src/main.rs: ingress -> book-fold -> batch
// builder -> output, each stage its own goroutine pinned to a core via
// affinity.Pin, handed off through SPSC rings. A monitor goroutine prints
// periodic throughput; shutdown runs the same five-step drain the Rust
// original's drain_pipeline does so no buffered transaction is silently
// lost on exit.

package pipeline

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sugawarayuuta/sonnet"

	"hftbundler/affinity"
	"hftbundler/backoff"
	"hftbundler/batch"
	"hftbundler/book"
	"hftbundler/diag"
	"hftbundler/ingress"
	"hftbundler/latency"
	"hftbundler/ring"
	"hftbundler/stats"
	"hftbundler/tsc"
	"hftbundler/txn"
)

const (
	ingressRingSize = 4096
	batchRingSize   = 4096
	outputRingSize  = 1024
)

// Config controls one pipeline run.
type Config struct {
	RateHz     float64
	DurationNs uint64
	Seed       uint64
	RingSize   int // 0 uses the default sizes above
	JSONStats  bool
}

// Result is the final state of a completed run.
type Result struct {
	Stats     stats.Snapshot
	Histogram latency.Summary
}

// Run calibrates the TSC, wires the pipeline's rings and stages, runs
// until stop is closed or cfg.DurationNs elapses (when non-zero), drains every buffered item, and returns the final
// counters. stop is typically closed by a signal handler in main.
func Run(cfg Config, stop <-chan struct{}) Result {
	tsc.Calibrate()

	ringSize := cfg.RingSize
	if ringSize <= 0 {
		ringSize = ingressRingSize
	}

	ingressRing := ring.New[txn.Txn](ringSize)
	batchInRing := ring.New[txn.Txn](ringSize)
	outputRing := ring.New[txn.Batch](outputRingSize)

	st := stats.New()
	bk := book.New()
	hist := latency.New()

	var shutdown atomic.Bool
	var wg sync.WaitGroup

	wg.Add(4)
	go func() {
		defer wg.Done()
		runtime.LockOSThread()
		affinity.Pin(0)
		ingressWorker(ingressRing, st, &shutdown, cfg.RateHz, cfg.Seed)
	}()
	go func() {
		defer wg.Done()
		runtime.LockOSThread()
		affinity.Pin(1)
		bookWorker(ingressRing, batchInRing, bk, st, &shutdown)
	}()
	go func() {
		defer wg.Done()
		runtime.LockOSThread()
		affinity.Pin(2)
		batchWorker(batchInRing, outputRing, st, &shutdown)
	}()
	go func() {
		defer wg.Done()
		runtime.LockOSThread()
		affinity.Pin(3)
		outputWorker(outputRing, st, hist, &shutdown)
	}()

	monitorDone := make(chan struct{})
	go func() {
		defer close(monitorDone)
		runMonitor(st, &shutdown, cfg.JSONStats)
	}()

	waitForStopOrDeadline(stop, cfg.DurationNs)

	shutdown.Store(true)
	time.Sleep(50 * time.Millisecond)

	drainPipeline(ingressRing, batchInRing, outputRing, bk, st, hist)

	wg.Wait()
	<-monitorDone

	return Result{Stats: st.Snapshot(), Histogram: hist.Snapshot()}
}

func waitForStopOrDeadline(stop <-chan struct{}, durationNs uint64) {
	if durationNs == 0 {
		<-stop
		return
	}
	select {
	case <-stop:
	case <-time.After(time.Duration(durationNs)):
	}
}

func runMonitor(st *stats.Stats, shutdown *atomic.Bool, jsonStats bool) {
	start := time.Now()
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for !shutdown.Load() {
		<-ticker.C
		if shutdown.Load() {
			return
		}
		elapsed := time.Since(start).Truncate(time.Second)
		snap := st.Snapshot()
		if jsonStats {
			b, err := sonnet.Marshal(snap)
			if err != nil {
				diag.DropError("pipeline: marshal stats", err)
				continue
			}
			fmt.Println(string(b))
			continue
		}
		fmt.Printf("[%s] ingress=%d book=%d batches=%d output=%d\n",
			elapsed, snap.IngressPushed, snap.BookProcessed, snap.BatchFlushed, snap.OutputReceived)
	}
}

func ingressWorker(out *ring.Ring[txn.Txn], st *stats.Stats, shutdown *atomic.Bool, rateHz float64, seed uint64) {
	stopLocal := make(chan struct{})
	go func() {
		for !shutdown.Load() {
			time.Sleep(time.Millisecond)
		}
		close(stopLocal)
	}()
	ingress.Run(out, rateHz, 0, seed, st, stopLocal)
}

func bookWorker(in *ring.Ring[txn.Txn], out *ring.Ring[txn.Txn], bk *book.Book, st *stats.Stats, shutdown *atomic.Bool) {
	bo := backoff.New()
	for !shutdown.Load() {
		t, ok := in.Pop()
		if !ok {
			bo.Snooze()
			continue
		}
		bo.Reset()
		if foldIntoBook(bk, t) == nil {
			st.AddBookProcessed()
			out.Push(t) // drop on full, matching the Rust original
		} else {
			st.AddBookTimeout()
		}
	}
}

func foldIntoBook(bk *book.Book, t txn.Txn) error {
	delta := int64(t.Size)
	if t.IsAsk() {
		delta = -delta
	}
	if t.IsBid() {
		return bk.UpdateBid(t.Price, delta, t.IngressTsNs)
	}
	return bk.UpdateAsk(t.Price, delta, t.IngressTsNs)
}

func batchWorker(in *ring.Ring[txn.Txn], out *ring.Ring[txn.Batch], st *stats.Stats, shutdown *atomic.Bool) {
	bd := batch.NewBuilder()
	bo := backoff.New()
	for !shutdown.Load() {
		t, ok := in.Pop()
		if !ok {
			wasEmpty := bd.IsEmpty()
			if err := bd.Tick(out); err == nil && !wasEmpty && bd.IsEmpty() {
				st.AddBatchFlushed()
			}
			bo.Snooze()
			continue
		}
		bo.Reset()
		before := bd.Len()
		if err := bd.Push(t, out); err == nil && bd.Len() <= 1 && before > 0 {
			st.AddBatchFlushed()
		}
	}
	if !bd.IsEmpty() {
		if err := bd.ForceFlush(out); err == nil {
			st.AddBatchFlushed()
		}
	}
}

func outputWorker(in *ring.Ring[txn.Batch], st *stats.Stats, hist *latency.Histogram, shutdown *atomic.Bool) {
	bo := backoff.New()
	for !shutdown.Load() {
		b, ok := in.Pop()
		if !ok {
			bo.Snooze()
			continue
		}
		bo.Reset()
		st.AddOutputReceived()
		recordLatencies(&b, hist)
	}
	for {
		_, ok := in.Pop()
		if !ok {
			break
		}
		st.AddOutputReceived()
	}
}

func recordLatencies(b *txn.Batch, hist *latency.Histogram) {
	egress := tsc.ToNs(tsc.Read())
	for _, t := range b.Active() {
		latencyNs := egress - t.IngressTsNs
		if egress < t.IngressTsNs {
			latencyNs = 0
		}
		hist.Record(latencyNs)
	}
}

// drainPipeline mirrors the Rust original's five-step shutdown drain: fold
// every remaining ingress transaction into the book and forward it,
// accumulate everything waiting in the batch ring, force-flush any
// partial batch, and finally drain the output ring's stats.
func drainPipeline(ingressRing, batchInRing *ring.Ring[txn.Txn], outputRing *ring.Ring[txn.Batch], bk *book.Book, st *stats.Stats, hist *latency.Histogram) {
	for {
		t, ok := ingressRing.Pop()
		if !ok {
			break
		}
		if foldIntoBook(bk, t) == nil {
			st.AddBookProcessed()
		} else {
			st.AddBookTimeout()
		}
		batchInRing.Push(t)
	}

	bd := batch.NewBuilder()
	for {
		t, ok := batchInRing.Pop()
		if !ok {
			break
		}
		if err := bd.Push(t, outputRing); err == nil && bd.IsEmpty() {
			st.AddBatchFlushed()
		}
	}

	if !bd.IsEmpty() {
		if err := bd.ForceFlush(outputRing); err == nil {
			st.AddBatchFlushed()
		}
	}

	for {
		b, ok := outputRing.Pop()
		if !ok {
			break
		}
		st.AddOutputReceived()
		recordLatencies(&b, hist)
	}
}
