package atomicbits

import (
	"testing"

	"github.com/hupe1980/bitkit"
)

func TestVector_Navigation(t *testing.T) {
	v, _ := New(200)
	for _, i := range []int64{5, 63, 64, 130} {
		v.Setting(i)
	}

	tests := []struct {
		name string
		fn   func(int64) int64
		from int64
		want int64
	}{
		{"next set from 0", v.NextSetBit, 0, 5},
		{"next set at hit", v.NextSetBit, 5, 5},
		{"next set word boundary", v.NextSetBit, 6, 63},
		{"next set crosses word", v.NextSetBit, 64, 64},
		{"next set past last", v.NextSetBit, 131, bitkit.NotFound},
		{"next set negative from", v.NextSetBit, -10, 5},
		{"prev set from top", v.PreviousSetBit, 199, 130},
		{"prev set at hit", v.PreviousSetBit, 64, 64},
		{"prev set before first", v.PreviousSetBit, 4, bitkit.NotFound},
		{"prev set clamps high from", v.PreviousSetBit, 10000, 130},
		{"prev set negative from", v.PreviousSetBit, -1, bitkit.NotFound},
		{"next clear skips set", v.NextClearBit, 63, 65},
		{"next clear from 0", v.NextClearBit, 0, 0},
		{"next clear past capacity", v.NextClearBit, 200, bitkit.NotFound},
		{"prev clear skips set", v.PreviousClearBit, 64, 62},
		{"prev clear from top", v.PreviousClearBit, 199, 199},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fn(tt.from); got != tt.want {
				t.Errorf("from %d: expected %d, got %d", tt.from, tt.want, got)
			}
		})
	}
}

func TestVector_NavigationFullAndEmpty(t *testing.T) {
	empty, _ := New(64)
	if got := empty.NextSetBit(0); got != bitkit.NotFound {
		t.Errorf("empty NextSetBit: expected -1, got %d", got)
	}
	if got := empty.PreviousSetBit(63); got != bitkit.NotFound {
		t.Errorf("empty PreviousSetBit: expected -1, got %d", got)
	}

	full, _ := New(70)
	for i := int64(0); i < 70; i++ {
		full.Setting(i)
	}
	if got := full.NextClearBit(0); got != bitkit.NotFound {
		t.Errorf("full NextClearBit: expected -1, got %d", got)
	}
	if got := full.PreviousClearBit(69); got != bitkit.NotFound {
		t.Errorf("full PreviousClearBit: expected -1, got %d", got)
	}
}

func TestVector_Runs(t *testing.T) {
	v, _ := New(200)
	for i := int64(10); i < 20; i++ {
		v.Setting(i)
	}
	for i := int64(60); i < 70; i++ {
		v.Setting(i)
	}
	v.Setting(199)

	want := []bitkit.Run{
		{Start: 10, End: 20},
		{Start: 60, End: 70},
		{Start: 199, End: 200},
	}
	got := bitkit.CollectRuns(v)
	if len(got) != len(want) {
		t.Fatalf("expected %d runs, got %d: %v", len(want), len(got), got)
	}
	for i, r := range want {
		if got[i] != r {
			t.Errorf("run %d: expected %v, got %v", i, r, got[i])
		}
	}
}

func TestVector_ForEach(t *testing.T) {
	v, _ := New(100)
	set := []int64{3, 40, 77}
	for _, i := range set {
		v.Setting(i)
	}

	var visited []int64
	v.ForEach(func(i int64) bool {
		visited = append(visited, i)
		return true
	})
	if len(visited) != len(set) {
		t.Fatalf("expected %d visits, got %d", len(set), len(visited))
	}
	for i := range set {
		if visited[i] != set[i] {
			t.Errorf("visit %d: expected %d, got %d", i, set[i], visited[i])
		}
	}

	var count int
	v.ForEach(func(int64) bool {
		count++
		return false
	})
	if count != 1 {
		t.Errorf("expected early stop after one visit, got %d", count)
	}
}
