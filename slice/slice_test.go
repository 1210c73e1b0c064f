package slice

import "testing"

func TestMap(t *testing.T) {
	got := Map([]int{1, 2, 3}, func(v int) int { return v * 2 })
	if len(got) != 3 || got[0] != 2 || got[2] != 6 {
		t.Errorf("unexpected result: %v", got)
	}
}

func TestMapEmpty(t *testing.T) {
	got := Map([]int(nil), func(v int) int { return v })
	if len(got) != 0 {
		t.Errorf("expected empty result, got %v", got)
	}
}

func TestAll(t *testing.T) {
	if !All([]int{2, 4, 6}, func(v int) bool { return v%2 == 0 }) {
		t.Error("expected All to be true for all-even input")
	}
	if All([]int{2, 3}, func(v int) bool { return v%2 == 0 }) {
		t.Error("expected All to be false when one element fails")
	}
	if !All([]int{}, func(v int) bool { return false }) {
		t.Error("expected All to be true for empty input")
	}
}
