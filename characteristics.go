package bitkit

import "strings"

// Characteristics is a capability descriptor advertised by a backend.
//
// Generic algorithms use it to pick a fast path (dense word-wise, sparse
// run-wise, concurrent) before falling back to the cross-backend glue.
type Characteristics uint32

const (
	// FixedSize indicates the capacity is fixed at construction; growth
	// requires copying into a new instance.
	FixedSize Characteristics = 1 << iota
	// ThreadSafe indicates the backend tolerates concurrent mutation.
	ThreadSafe
	// Atomic indicates single-bit mutations are linearizable CAS operations.
	Atomic
	// LongValued indicates the backend natively supports 64-bit indices.
	LongValued
	// RLECompressed indicates the backend stores runs, not words.
	RLECompressed
	// NegativeValues indicates negative indices are part of the domain.
	NegativeValues
)

// Has reports whether all flags in c are present.
func (c Characteristics) Has(flags Characteristics) bool {
	return c&flags == flags
}

var characteristicNames = []struct {
	flag Characteristics
	name string
}{
	{FixedSize, "FixedSize"},
	{ThreadSafe, "ThreadSafe"},
	{Atomic, "Atomic"},
	{LongValued, "LongValued"},
	{RLECompressed, "RLECompressed"},
	{NegativeValues, "NegativeValues"},
}

func (c Characteristics) String() string {
	if c == 0 {
		return "None"
	}
	var parts []string
	for _, cn := range characteristicNames {
		if c&cn.flag != 0 {
			parts = append(parts, cn.name)
		}
	}
	return strings.Join(parts, "|")
}
