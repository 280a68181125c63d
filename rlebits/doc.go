// Package rlebits provides an immutable packed run array for bit sets that
// are built once and queried often.
//
// Architecture:
//   - Each run packs both endpoints into one uint64: start in the low 32
//     bits, inclusive end in the high 32 bits, limiting the index domain to
//     [0, 2^32-1]
//   - Sorted, non-overlapping, non-abutting runs enable a recursive binary
//     search that classifies a lookup as an exact boundary hit, containment,
//     or absence with the nearest preceding run and distance
//   - All "modifying" operations return a new instance; an existing Runs is
//     safe for unlimited concurrent reads
//
// Construction goes through Builder, which accepts ranges in any order,
// including overlapping ones, and normalizes them into canonical form.
package rlebits
