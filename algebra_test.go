package bitkit_test

import (
	"testing"

	"github.com/hupe1980/bitkit"
	"github.com/hupe1980/bitkit/testutil"
)

type runCollector []bitkit.Run

func (c *runCollector) AddRange(start, end int64) {
	*c = append(*c, bitkit.Run{Start: start, End: end})
}

func requireRuns(t *testing.T, got, want []bitkit.Run) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected runs %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected runs %v, got %v", want, got)
		}
	}
}

func TestAppendCombinators(t *testing.T) {
	a := testutil.NewDense(100)
	a.AddRange(10, 30)
	a.AddRange(50, 60)

	b := testutil.NewDense(100)
	b.AddRange(20, 55)

	tests := []struct {
		name  string
		apply func(bitkit.RangeAdder)
		want  []bitkit.Run
	}{
		{
			"intersection",
			func(dst bitkit.RangeAdder) { bitkit.AppendIntersection(dst, a, b) },
			[]bitkit.Run{{Start: 20, End: 30}, {Start: 50, End: 55}},
		},
		{
			"union",
			func(dst bitkit.RangeAdder) { bitkit.AppendUnion(dst, a, b) },
			[]bitkit.Run{{Start: 10, End: 60}},
		},
		{
			"difference",
			func(dst bitkit.RangeAdder) { bitkit.AppendDifference(dst, a, b) },
			[]bitkit.Run{{Start: 10, End: 20}, {Start: 55, End: 60}},
		},
		{
			"symmetric difference",
			func(dst bitkit.RangeAdder) { bitkit.AppendSymmetricDifference(dst, a, b) },
			[]bitkit.Run{{Start: 10, End: 20}, {Start: 30, End: 50}, {Start: 55, End: 60}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got runCollector
			tt.apply(&got)
			requireRuns(t, got, tt.want)
		})
	}
}

func TestAppendCombinators_EmptyOperands(t *testing.T) {
	a := testutil.NewDense(64)
	a.AddRange(5, 10)
	empty := testutil.NewDense(64)

	var got runCollector
	bitkit.AppendIntersection(&got, a, empty)
	if len(got) != 0 {
		t.Errorf("expected empty intersection, got %v", got)
	}

	got = nil
	bitkit.AppendUnion(&got, a, empty)
	requireRuns(t, got, []bitkit.Run{{Start: 5, End: 10}})

	got = nil
	bitkit.AppendUnion(&got, empty, empty)
	if len(got) != 0 {
		t.Errorf("expected empty union, got %v", got)
	}
}

func TestAppendCombinators_MatchReference(t *testing.T) {
	const domain = 2048

	rng := testutil.NewRNG(5)

	for trial := 0; trial < 20; trial++ {
		a := rng.RandomDense(domain, 0.4)
		b := rng.RandomDense(domain, 0.4)

		checks := []struct {
			name  string
			apply func(bitkit.RangeAdder)
			want  func(bool, bool) bool
		}{
			{"and", func(dst bitkit.RangeAdder) { bitkit.AppendIntersection(dst, a, b) }, func(x, y bool) bool { return x && y }},
			{"or", func(dst bitkit.RangeAdder) { bitkit.AppendUnion(dst, a, b) }, func(x, y bool) bool { return x || y }},
			{"andnot", func(dst bitkit.RangeAdder) { bitkit.AppendDifference(dst, a, b) }, func(x, y bool) bool { return x && !y }},
			{"xor", func(dst bitkit.RangeAdder) { bitkit.AppendSymmetricDifference(dst, a, b) }, func(x, y bool) bool { return x != y }},
		}

		for _, c := range checks {
			out := testutil.NewDense(domain)
			c.apply(out)
			for i := int64(0); i < domain; i++ {
				if out.Get(i) != c.want(a.Get(i), b.Get(i)) {
					t.Fatalf("trial %d (seed %d) %s: bit %d differs", trial, rng.Seed(), c.name, i)
				}
			}
		}
	}
}

func TestAppendRuns(t *testing.T) {
	a := testutil.NewDense(64)
	a.AddRange(1, 4)
	a.AddRange(10, 12)

	var got runCollector
	bitkit.AppendRuns(&got, a)
	requireRuns(t, got, []bitkit.Run{{Start: 1, End: 4}, {Start: 10, End: 12}})
}

func TestForEach(t *testing.T) {
	a := testutil.NewDense(64)
	a.AddRange(2, 5)

	var visited []int64
	bitkit.ForEach(a, func(i int64) bool {
		visited = append(visited, i)
		return true
	})
	if len(visited) != 3 || visited[0] != 2 || visited[2] != 4 {
		t.Errorf("expected visits [2 3 4], got %v", visited)
	}

	var count int
	bitkit.ForEach(a, func(int64) bool {
		count++
		return false
	})
	if count != 1 {
		t.Errorf("expected early stop after one visit, got %d", count)
	}
}

func TestContentEquals(t *testing.T) {
	a := testutil.NewDense(64)
	a.AddRange(3, 9)

	b := testutil.NewDense(128)
	b.AddRange(3, 9)

	if !bitkit.ContentEquals(a, b) {
		t.Errorf("expected equal contents across differing backing sizes")
	}

	b.Set(20)
	if bitkit.ContentEquals(a, b) {
		t.Errorf("expected unequal contents")
	}
	if bitkit.ContentEquals(b, a) {
		t.Errorf("expected unequal contents in either order")
	}
}
