// Package atomicbits provides a fixed-capacity, lock-free bit array.
//
// Architecture:
//   - Flat word array: []atomic.Uint64, capacity fixed at construction
//   - Lock-free: every mutation is a retrying compare-and-swap on one word
//   - Boundary mask precomputed for the final partial word
//
// The central operation is SettingNextClearBit, an atomic find-and-claim of
// the lowest clear bit, used for lock-free work distribution: no two
// concurrent callers are ever handed the same bit.
package atomicbits
