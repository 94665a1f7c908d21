// ════════════════════════════════════════════════════════════════════════
// HFT Transaction Bundler - Main Entry Point
// ────────────────────────────────────────────────────────────────────────
// Lock-free, pinned-thread pipeline that generates synthetic order flow,
// folds it into a price-aggregated book, batches it, and records
// submission latency end to end.
// ════════════════════════════════════════════════════════════════════════

package main

import (
	"encoding/binary"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/crypto/sha3"

	"hftbundler/diag"
	"hftbundler/pipeline"
)

func main() {
	duration := flag.Duration("duration", 10*time.Second, "how long to run (0 = until interrupted)")
	rate := flag.Float64("rate", 100_000, "target synthetic ingress rate, transactions/sec")
	ringSize := flag.Int("ring-size", 4096, "SPSC ring capacity (power of two)")
	seed := flag.Uint64("seed", 0, "PRNG seed for synthetic ingress (0 = derive from clock+pid)")
	jsonStats := flag.Bool("json-stats", false, "emit monitor snapshots as JSON instead of text")
	flag.Parse()

	resolvedSeed := *seed
	if resolvedSeed == 0 {
		resolvedSeed = deriveSeed()
	}

	fmt.Println("HFT Transaction Bundler")
	fmt.Printf("rate=%.0f txn/sec duration=%s ring-size=%d seed=%d\n\n", *rate, duration.String(), *ringSize, resolvedSeed)

	stop := make(chan struct{})
	setupSignalHandling(stop)

	cfg := pipeline.Config{
		RateHz:     *rate,
		DurationNs: uint64(duration.Nanoseconds()),
		Seed:       resolvedSeed,
		RingSize:   *ringSize,
		JSONStats:  *jsonStats,
	}

	result := pipeline.Run(cfg, stop)

	printSummary(result)
}

// deriveSeed folds the wall clock and process ID through SHA3-256 so two
// unseeded runs started moments apart don't share an ingress sequence.
func deriveSeed() uint64 {
	return foldSeed(time.Now().UnixNano(), os.Getpid())
}

func foldSeed(nowNanos int64, pid int) uint64 {
	var in [16]byte
	binary.LittleEndian.PutUint64(in[:8], uint64(nowNanos))
	binary.LittleEndian.PutUint64(in[8:], uint64(pid))
	h := sha3.Sum256(in[:])
	return binary.LittleEndian.Uint64(h[:8])
}

func printSummary(result pipeline.Result) {
	s := result.Stats
	h := result.Histogram
	fmt.Println("\n=== Pipeline Statistics ===")
	fmt.Printf("Ingress:  generated=%d pushed=%d dropped=%d\n", s.IngressGenerated, s.IngressPushed, s.IngressDropped)
	fmt.Printf("Book:     processed=%d timeout=%d\n", s.BookProcessed, s.BookTimeout)
	fmt.Printf("Batch:    flushed=%d\n", s.BatchFlushed)
	fmt.Printf("Output:   received=%d\n", s.OutputReceived)
	fmt.Println("\n=== Latency Histogram ===")
	fmt.Printf("samples=%d mean=%dns min=%dns max=%dns p50=%dns p95=%dns p99=%dns p999=%dns\n",
		h.Samples, h.MeanNs, h.MinNs, h.MaxNs, h.P50Ns, h.P95Ns, h.P99Ns, h.P999Ns)
}

// setupSignalHandling closes stop on SIGINT/SIGTERM so pipeline.Run can
// drain and return instead of the process dying mid-flight.
func setupSignalHandling(stop chan struct{}) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		diag.DropMessage("signal", "received interrupt, shutting down")
		close(stop)
	}()
}
