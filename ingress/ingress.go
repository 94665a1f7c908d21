// ingress.go — synthetic Poisson-arrival transaction source.
//
// Ported from original_source/src/ingress.rs. Generates random
// transactions at a target rate and pushes them into an SPSC ring,
// dropping on backpressure rather than blocking the producer.

package ingress

import (
	"math"
	"math/rand/v2"

	"hftbundler/ring"
	"hftbundler/stats"
	"hftbundler/tsc"
	"hftbundler/txn"
)

// priceLow and priceHigh bound the synthetic $90-$110 quote range in
// fixed-point with a scale of 10000.
const (
	priceLow  = 900_000
	priceHigh = 1_100_000

	// epsilon matches Rust's f64::EPSILON, used to keep the exponential
	// inter-arrival draw away from ln(0).
	epsilon = 2.220446049250313e-16
)

// SyntheticStats summarizes one Run call.
type SyntheticStats struct {
	Generated uint64
	Pushed    uint64
	Dropped   uint64
}

// DropRate returns the fraction of generated transactions that were
// dropped on a full ring.
func (s SyntheticStats) DropRate() float64 {
	if s.Generated == 0 {
		return 0
	}
	return float64(s.Dropped) / float64(s.Generated)
}

// Run generates synthetic transactions at rateHz with Poisson inter-arrival
// spacing and pushes them into out. Stops once durationNs have elapsed
// (wall time measured via the tsc package); durationNs == 0 runs until
// stop is closed. seed seeds the local PCG source so callers can make a run
// reproducible.
func Run(out *ring.Ring[txn.Txn], rateHz float64, durationNs uint64, seed uint64, st *stats.Stats, stop <-chan struct{}) SyntheticStats {
	src := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	var local SyntheticStats
	startTick := tsc.Read()

	for {
		select {
		case <-stop:
			return local
		default:
		}

		if durationNs > 0 {
			elapsed := tsc.ToNs(tsc.Read() - startTick)
			if elapsed >= durationNs {
				return local
			}
		}

		t := txn.NewUnchecked(
			local.Generated,
			priceLow+int64(src.IntN(priceHigh-priceLow)),
			uint32(1+src.IntN(999)),
			uint8(src.IntN(2)),
			tsc.ToNs(tsc.Read()),
		)
		local.Generated++
		if st != nil {
			st.AddIngressGenerated()
		}

		if out.Push(t) {
			local.Pushed++
			if st != nil {
				st.AddIngressPushed()
			}
		} else {
			local.Dropped++
			if st != nil {
				st.AddIngressDropped()
			}
		}

		u := src.Float64()
		if u < epsilon {
			u = epsilon
		}
		delayNs := uint64(-math.Log(u) / rateHz * 1e9)
		if delayNs > 0 {
			tsc.SpinSleepNs(delayNs)
		}
	}
}

// GenerateBurst pushes count transactions with prices jittered around
// basePrice, for deterministic test fixtures. Returns the number
// successfully pushed.
func GenerateBurst(out *ring.Ring[txn.Txn], count int, basePrice int64, seed uint64) int {
	src := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	pushed := 0
	for i := 0; i < count; i++ {
		t := txn.NewUnchecked(
			uint64(i),
			basePrice+int64(src.IntN(10000))-5000,
			uint32(1+src.IntN(99)),
			uint8(src.IntN(2)),
			tsc.ToNs(tsc.Read()),
		)
		if out.Push(t) {
			pushed++
		}
	}
	return pushed
}
