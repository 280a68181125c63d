// Package testutil provides deterministic helpers shared by the backend
// tests: a seeded RNG and a plain dense bit vector that serves as the
// reference implementation for algebra-equivalence checks.
package testutil
