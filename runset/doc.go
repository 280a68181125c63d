// Package runset provides a mutable run-length bit store for sparse 64-bit
// index domains.
//
// Architecture:
//   - Sorted collection of disjoint, non-abutting [start,end) runs in a
//     B-tree keyed by run start
//   - Point and range set/clear with full merge/split bookkeeping
//   - Canonical form re-established after every mutation, never left
//     inconsistent between calls
//
// Set64 is not safe for concurrent use; callers that share one across
// goroutines must provide their own synchronization.
package runset
