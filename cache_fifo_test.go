package docindex

import "testing"

// fakeSource returns a single-record block per id, for cache tests
// that don't need to exercise real multi-record block reads.
type fakeSource struct {
	docs map[int32]Document
}

func (s *fakeSource) readBlock(id int32) ([]Document, error) {
	doc, ok := s.docs[id]
	if !ok {
		return nil, nil
	}
	return []Document{doc}, nil
}

func TestFIFOCacheFillsThenEvictsOldest(t *testing.T) {
	src := &fakeSource{docs: map[int32]Document{
		0: {Title: "a"}, 1: {Title: "b"}, 2: {Title: "c"}, 3: {Title: "d"},
	}}
	c := newFIFOCache(3, src)

	for _, id := range []int32{0, 1, 2} {
		if _, ok := c.get(id); !ok {
			t.Fatalf("expected hit-through-miss for id %d", id)
		}
	}
	// The 4th distinct insertion should displace the 1st (id 0).
	if _, ok := c.get(3); !ok {
		t.Fatal("expected hit-through-miss for id 3")
	}

	found := false
	for _, cid := range c.ids {
		if cid == 0 {
			found = true
		}
	}
	if found {
		t.Fatal("id 0 should have been evicted by the 4th insertion")
	}
}

func TestFIFOCacheGetHitsWithoutSourceCall(t *testing.T) {
	src := &fakeSource{docs: map[int32]Document{0: {Title: "a"}}}
	c := newFIFOCache(2, src)
	c.get(0)
	delete(src.docs, 0)
	doc, ok := c.get(0)
	if !ok || doc.Title != "a" {
		t.Fatalf("expected cached hit, got %+v, %v", doc, ok)
	}
}

func TestFIFOCacheRemoveDoesNotRewindCursor(t *testing.T) {
	src := &fakeSource{docs: map[int32]Document{0: {Title: "a"}, 1: {Title: "b"}}}
	c := newFIFOCache(2, src)
	c.get(0)
	c.get(1)
	backBefore := c.back
	c.remove(0)
	if c.back != backBefore {
		t.Fatalf("remove rewound cursor: back=%d, want %d", c.back, backBefore)
	}
}
