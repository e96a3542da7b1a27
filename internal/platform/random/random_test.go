package random

import "testing"

func TestSequence_WrapsAndReduces(t *testing.T) {
	t.Parallel()

	seq := NewSequence(5, 1, 7)
	got := []int{seq.IntN(4), seq.IntN(4), seq.IntN(4), seq.IntN(4)}
	want := []int{1, 1, 3, 1}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("unexpected value at %d: got=%d want=%d", i, got[i], want[i])
		}
	}
}

func TestSample_DistinctItems(t *testing.T) {
	t.Parallel()

	items := []string{"a", "b", "c", "d", "e"}
	src := NewSeeded(42)
	for round := 0; round < 50; round++ {
		picked := Sample(src, items, 3)
		if len(picked) != 3 {
			t.Fatalf("expected 3 items, got %d", len(picked))
		}
		seen := make(map[string]struct{}, len(picked))
		for _, item := range picked {
			if _, dup := seen[item]; dup {
				t.Fatalf("duplicate item %q in sample %v", item, picked)
			}
			seen[item] = struct{}{}
		}
	}
	if items[0] != "a" || items[4] != "e" {
		t.Fatalf("input slice was modified: %v", items)
	}
}

func TestSample_KLargerThanInput(t *testing.T) {
	t.Parallel()

	picked := Sample(New(), []int{1, 2}, 5)
	if len(picked) != 2 {
		t.Fatalf("expected sample capped at input length, got %d", len(picked))
	}
}
