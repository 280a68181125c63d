package rlebits

import (
	"errors"
	"testing"

	"github.com/hupe1980/bitkit"
	"github.com/hupe1980/bitkit/testutil"
)

func TestBuilder_NormalizesUnorderedInput(t *testing.T) {
	r, err := NewBuilder().
		WithRange(40, 50).
		WithRange(10, 20).
		WithRange(15, 25). // overlaps
		WithRange(25, 30). // abuts
		WithRange(12, 14). // contained
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	got := bitkit.CollectRuns(r)
	want := []bitkit.Run{{Start: 10, End: 30}, {Start: 40, End: 50}}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("expected runs %v, got %v", want, got)
	}
	if r.Cardinality() != 30 {
		t.Errorf("expected cardinality 30, got %d", r.Cardinality())
	}
}

func TestBuilder_EmptyBuildsCanonicalEmpty(t *testing.T) {
	r, err := NewBuilder().Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if r != Empty {
		t.Errorf("expected the canonical Empty instance")
	}

	// Empty ranges contribute nothing.
	r, err = NewBuilder().WithRange(5, 5).Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if r != Empty {
		t.Errorf("expected the canonical Empty instance for empty ranges")
	}
}

func TestBuilder_ErrorsAreSticky(t *testing.T) {
	var rangeErr *bitkit.ErrInvalidRange
	_, err := NewBuilder().WithRange(20, 10).WithRange(0, 5).Build()
	if !errors.As(err, &rangeErr) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}

	var domainErr *bitkit.ErrDomainExceeded
	_, err = NewBuilder().WithRange(-1, 5).Build()
	if !errors.As(err, &domainErr) {
		t.Fatalf("expected ErrDomainExceeded for negative start, got %v", err)
	}
	_, err = NewBuilder().WithRange(0, MaxIndex+2).Build()
	if !errors.As(err, &domainErr) {
		t.Fatalf("expected ErrDomainExceeded past the domain, got %v", err)
	}
}

func TestBuilder_DomainBoundaryIsRepresentable(t *testing.T) {
	r, err := NewBuilder().WithRange(MaxIndex, MaxIndex+1).Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if !r.Get(MaxIndex) {
		t.Errorf("expected the top domain bit to be set")
	}
	if r.Cardinality() != 1 {
		t.Errorf("expected cardinality 1, got %d", r.Cardinality())
	}
}

func TestBuilder_AddRangeClips(t *testing.T) {
	b := NewBuilder()
	b.AddRange(-100, 10)
	b.AddRange(MaxIndex-5, MaxIndex+100)
	r, err := b.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	got := bitkit.CollectRuns(r)
	want := []bitkit.Run{{Start: 0, End: 10}, {Start: MaxIndex - 5, End: MaxIndex + 1}}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("expected runs %v, got %v", want, got)
	}
}

func TestBuilder_GrowsPastIncrement(t *testing.T) {
	b := NewBuilder()
	// Well past the initial grow increment, with gaps so nothing coalesces.
	const n = 100
	for i := int64(0); i < n; i++ {
		b.WithRange(i*10, i*10+3)
	}
	r, err := b.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if r.RunCount() != n {
		t.Errorf("expected %d runs, got %d", n, r.RunCount())
	}
	if r.Cardinality() != 3*n {
		t.Errorf("expected cardinality %d, got %d", 3*n, r.Cardinality())
	}
}

func TestFromBitVector(t *testing.T) {
	d := testutil.NewDense(128)
	d.AddRange(3, 9)
	d.AddRange(64, 70)

	r := FromBitVector(d)
	got := bitkit.CollectRuns(r)
	want := []bitkit.Run{{Start: 3, End: 9}, {Start: 64, End: 70}}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("expected runs %v, got %v", want, got)
	}
}
