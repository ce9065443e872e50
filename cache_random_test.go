package docindex

import "testing"

func TestRandomCacheFillsEmptySlotsBeforeEvicting(t *testing.T) {
	src := &fakeSource{docs: map[int32]Document{0: {Title: "a"}, 1: {Title: "b"}}}
	c := newRandomCache(4, src, "seed-a")

	c.add(0, src.docs[0])
	c.add(1, src.docs[1])

	count := 0
	for _, id := range c.ids {
		if id != emptyID {
			count++
		}
	}
	if count != 2 {
		t.Fatalf("expected 2 occupied slots, got %d", count)
	}
}

func TestRandomCacheDifferentSeedsDifferentSequences(t *testing.T) {
	src := &fakeSource{docs: map[int32]Document{}}
	a := newRandomCache(8, src, "seed-a")
	b := newRandomCache(8, src, "seed-b")
	if a.rng.IntN(1<<30) == b.rng.IntN(1<<30) {
		t.Skip("extremely unlikely collision; not a correctness failure on its own")
	}
}

func TestRandomCacheRemove(t *testing.T) {
	src := &fakeSource{docs: map[int32]Document{0: {Title: "a"}}}
	c := newRandomCache(2, src, "seed")
	c.add(0, src.docs[0])
	c.remove(0)
	for _, id := range c.ids {
		if id == 0 {
			t.Fatal("id 0 should have been evicted")
		}
	}
}
