// Array cache with uniformly random eviction. A miss overwrites k
// consecutive slots (mod N) starting from a random position
// unconditionally, including slots from the very block just
// inserted — that unconditional overwrite is the policy, not a bug.
package docindex

import (
	"fmt"
	"math/rand/v2"

	"github.com/zeebo/xxh3"
)

type randomCache struct {
	docs   []Document
	ids    []int32
	source cacheSource
	rng    *rand.Rand
}

// newRandomCache seeds its own PRNG from seed rather than sharing the
// global math/rand/v2 source, so two servers started in the same
// process (as in tests running the suite in parallel) don't draw from
// the same eviction sequence.
func newRandomCache(size int, source cacheSource, seed string) *randomCache {
	ids := make([]int32, size)
	for i := range ids {
		ids[i] = emptyID
	}
	h := xxh3.HashString(seed)
	return &randomCache{
		docs:   make([]Document, size),
		ids:    ids,
		source: source,
		rng:    rand.New(rand.NewPCG(h, h^0x9e3779b97f4a7c15)),
	}
}

func (c *randomCache) get(id int32) (Document, bool) {
	for i, cid := range c.ids {
		if cid == id {
			return c.docs[i].Clone(), true
		}
	}
	return c.miss(id)
}

func (c *randomCache) miss(id int32) (Document, bool) {
	block, err := c.source.readBlock(id)
	if err != nil || len(block) == 0 {
		return Document{}, false
	}

	result := block[0].Clone()

	n := len(c.ids)
	pos := c.rng.IntN(n)
	for i, doc := range block {
		c.docs[pos] = doc
		c.ids[pos] = id + int32(i)
		pos = (pos + 1) % n
	}
	return result, true
}

// add prefers an empty slot; if none is free, picks a uniform random
// index.
func (c *randomCache) add(id int32, doc Document) {
	pos := -1
	for i, cid := range c.ids {
		if cid == emptyID {
			pos = i
			break
		}
	}
	if pos == -1 {
		pos = c.rng.IntN(len(c.ids))
	}
	c.docs[pos] = doc
	c.ids[pos] = id
}

func (c *randomCache) remove(id int32) {
	for i, cid := range c.ids {
		if cid == id {
			c.ids[i] = emptyID
			return
		}
	}
}

func (c *randomCache) show() string {
	s := fmt.Sprintf("- RAND CACHE [capacity: %d]\n[INDEX, IDENTIFIER]\n", len(c.ids))
	for i, id := range c.ids {
		s += fmt.Sprintf("[%3d, %5d]\n", i, id)
	}
	return s
}
