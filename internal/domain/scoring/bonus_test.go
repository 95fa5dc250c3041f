package scoring

import "testing"

func TestProvisionalBonus_TopThree(t *testing.T) {
	t.Parallel()

	got := ProvisionalBonus(map[int]int{1: 34, 2: 29, 3: 27, 4: 12})

	want := map[int]int{1: 3, 2: 2, 3: 1}
	if len(got) != len(want) {
		t.Fatalf("awarded %d players, want %d: %v", len(got), len(want), got)
	}
	for element, bonus := range want {
		if got[element] != bonus {
			t.Fatalf("element %d: got=%d want=%d", element, got[element], bonus)
		}
	}
}

func TestProvisionalBonus_TiesCompressRanks(t *testing.T) {
	t.Parallel()

	got := ProvisionalBonus(map[int]int{1: 30, 2: 30, 3: 25})

	if got[1] != 3 || got[2] != 3 {
		t.Fatalf("tied leaders should both take 3: %v", got)
	}
	if got[3] != 2 {
		t.Fatalf("next distinct score should take 2, got %d", got[3])
	}
}

func TestProvisionalBonus_TripleTieExhaustsTiers(t *testing.T) {
	t.Parallel()

	got := ProvisionalBonus(map[int]int{1: 30, 2: 30, 3: 30, 4: 25})

	for _, element := range []int{1, 2, 3} {
		if got[element] != 3 {
			t.Fatalf("element %d should take 3, got %d", element, got[element])
		}
	}
	if got[4] != 2 {
		t.Fatalf("fourth player should take the second tier, got %d", got[4])
	}
}

func TestProvisionalBonus_FewerThanThreeDistinctScores(t *testing.T) {
	t.Parallel()

	got := ProvisionalBonus(map[int]int{1: 20, 2: 20})

	if got[1] != 3 || got[2] != 3 {
		t.Fatalf("both players should take 3: %v", got)
	}
	if len(got) != 2 {
		t.Fatalf("no further tiers should be awarded: %v", got)
	}
}

func TestProvisionalBonus_Empty(t *testing.T) {
	t.Parallel()

	if got := ProvisionalBonus(nil); len(got) != 0 {
		t.Fatalf("empty input should award nothing: %v", got)
	}
}
