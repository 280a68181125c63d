// Package bitkit provides capability-based bit-vector storage backends for Go.
//
// Bitkit ships three hard backends behind one capability contract:
//
//   - atomicbits: a fixed-capacity, lock-free bit array mutated exclusively via
//     compare-and-swap, built for concurrent slot claiming.
//   - runset: a mutable run-length bit store over sorted disjoint [start,end)
//     runs, for sparse 64-bit index domains.
//   - rlebits: an immutable packed run array built once and queried often, with
//     binary-search lookup and run-based set algebra.
//
// # Quick Start
//
// Concurrent claiming:
//
//	v, _ := atomicbits.New(1 << 20)
//	slot := v.SettingNextClearBit(0) // -1 when exhausted
//
// Sparse mutation:
//
//	s := runset.New()
//	s.SetRange(1e12, 1e12+500)
//
// Immutable snapshots:
//
//	r, _ := rlebits.NewBuilder().WithRange(10, 20).WithRange(15, 40).Build()
//	r.Get(17) // true
//
// # Picking a Backend
//
// Callers hold a bitkit.BitVector and inspect Characteristics to special-case
// dense vs. sparse vs. concurrent operands without downcasting:
//
//	if v.Characteristics().Has(bitkit.RLECompressed) { ... }
//
// Cross-backend set algebra falls back to the run-walk glue in this package;
// the result backend is always chosen by the receiver.
package bitkit
