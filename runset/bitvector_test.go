package runset_test

import (
	"testing"

	"github.com/hupe1980/bitkit"
	"github.com/hupe1980/bitkit/runset"
	"github.com/hupe1980/bitkit/testutil"
)

func denseOf(runs ...bitkit.Run) *testutil.Dense {
	d := testutil.NewDense(256)
	for _, r := range runs {
		d.AddRange(r.Start, r.End)
	}
	return d
}

func setOf(t *testing.T, runs ...bitkit.Run) *runset.Set64 {
	t.Helper()
	s := runset.New()
	for _, r := range runs {
		if err := s.SetRange(r.Start, r.End); err != nil {
			t.Fatalf("SetRange(%d, %d) failed: %v", r.Start, r.End, err)
		}
	}
	return s
}

func TestSet64_InPlaceAlgebra(t *testing.T) {
	other := denseOf(bitkit.Run{Start: 15, End: 45})

	tests := []struct {
		name  string
		apply func(*runset.Set64) error
		want  []bitkit.Run
	}{
		{
			"and",
			func(s *runset.Set64) error { return s.And(other) },
			[]bitkit.Run{{Start: 15, End: 20}, {Start: 40, End: 45}},
		},
		{
			"or",
			func(s *runset.Set64) error { return s.Or(other) },
			[]bitkit.Run{{Start: 10, End: 50}},
		},
		{
			"xor",
			func(s *runset.Set64) error { return s.Xor(other) },
			[]bitkit.Run{{Start: 10, End: 15}, {Start: 20, End: 40}, {Start: 45, End: 50}},
		},
		{
			"andnot",
			func(s *runset.Set64) error { return s.AndNot(other) },
			[]bitkit.Run{{Start: 10, End: 15}, {Start: 45, End: 50}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := setOf(t, bitkit.Run{Start: 10, End: 20}, bitkit.Run{Start: 40, End: 50})
			if err := tt.apply(s); err != nil {
				t.Fatalf("%s failed: %v", tt.name, err)
			}
			got := bitkit.CollectRuns(s)
			if len(got) != len(tt.want) {
				t.Fatalf("expected runs %v, got %v", tt.want, got)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Fatalf("expected runs %v, got %v", tt.want, got)
				}
			}
			if err := s.CheckCanonical(); err != nil {
				t.Fatalf("canonical form violated: %v", err)
			}
		})
	}
}

func TestSet64_WithAlgebraMatchesReference(t *testing.T) {
	const domain = 1024

	rng := testutil.NewRNG(11)

	for trial := 0; trial < 10; trial++ {
		da := rng.RandomDense(domain, 0.25)
		db := rng.RandomDense(domain, 0.25)
		sa := runset.FromBitVector(da)

		checks := []struct {
			name string
			got  bitkit.BitVector
			want bitkit.BitVector
		}{
			{"and", sa.AndWith(db), da.AndWith(db)},
			{"or", sa.OrWith(db), da.OrWith(db)},
			{"xor", sa.XorWith(db), da.XorWith(db)},
			{"andnot", sa.AndNotWith(db), da.AndNotWith(db)},
		}

		for _, c := range checks {
			if !bitkit.ContentEquals(c.got, c.want) {
				t.Fatalf("trial %d (seed %d): %s diverged from reference", trial, rng.Seed(), c.name)
			}
		}
	}
}

func TestSet64_Shift(t *testing.T) {
	s := setOf(t, bitkit.Run{Start: 10, End: 20}, bitkit.Run{Start: -5, End: 0})

	got := bitkit.CollectRuns(s.Shift(100))
	want := []bitkit.Run{{Start: 95, End: 100}, {Start: 110, End: 120}}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("expected runs %v, got %v", want, got)
	}
}

func TestSet64_Filter(t *testing.T) {
	s := setOf(t, bitkit.Run{Start: 0, End: 10})

	odd := s.Filter(func(i int64) bool { return i%2 == 1 })
	if got := odd.Cardinality(); got != 5 {
		t.Errorf("expected 5 bits, got %d", got)
	}
	if odd.Get(0) || !odd.Get(1) || !odd.Get(9) {
		t.Errorf("filter kept the wrong bits")
	}
}
