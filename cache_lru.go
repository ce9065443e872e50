// Approximate-LRU (second-chance) cache.
package docindex

import "fmt"

type lruCache struct {
	docs    []Document
	ids     []int32
	refBits []bool
	back    int // next position to examine
	source  cacheSource
}

func newLRUCache(size int, source cacheSource) *lruCache {
	ids := make([]int32, size)
	for i := range ids {
		ids[i] = emptyID
	}
	return &lruCache{
		docs:    make([]Document, size),
		ids:     ids,
		refBits: make([]bool, size),
		source:  source,
	}
}

// get scans for id, clearing reference bits along the way (the
// second-chance sweep). A hit sets the found slot's reference bit and
// moves the cursor past it, so a just-referenced slot isn't the first
// candidate the next eviction sweep reconsiders.
func (c *lruCache) get(id int32) (Document, bool) {
	n := len(c.ids)
	for i := 0; i < n; i++ {
		pos := c.back
		c.back = (c.back + 1) % n
		if c.ids[pos] == id {
			c.refBits[pos] = true
			return c.docs[pos].Clone(), true
		}
		c.refBits[pos] = false
	}
	return c.miss(id)
}

// miss loads a block: empty slots are filled first, then remaining
// records evict via the same bounded second-chance sweep add() uses.
func (c *lruCache) miss(id int32) (Document, bool) {
	block, err := c.source.readBlock(id)
	if err != nil || len(block) == 0 {
		return Document{}, false
	}
	result := block[0].Clone()

	j := 0
	n := len(c.ids)

	for i := 0; i < n && j < len(block); i++ {
		if c.ids[i] == emptyID {
			c.place(i, id+int32(j), block[j])
			j++
		}
	}
	for ; j < len(block); j++ {
		c.place(c.evict(), id+int32(j), block[j])
	}

	return result, true
}

func (c *lruCache) place(pos int, id int32, doc Document) {
	c.docs[pos] = doc
	c.ids[pos] = id
	c.refBits[pos] = true
}

// evict runs the bounded second-chance sweep from the cursor: a slot
// with a clear reference bit is the victim; any slot found with its
// bit set gets one more chance and has the bit cleared instead. N+1
// steps always terminate the sweep, since a full pass clears every
// bit and the following step finds one already clear.
func (c *lruCache) evict() int {
	n := len(c.ids)
	for step := 0; step <= n; step++ {
		pos := c.back
		c.back = (c.back + 1) % n
		if !c.refBits[pos] {
			return pos
		}
		c.refBits[pos] = false
	}
	return c.back
}

// add prefers any empty slot; otherwise applies the second-chance
// sweep starting at the cursor.
func (c *lruCache) add(id int32, doc Document) {
	for i, cid := range c.ids {
		if cid == emptyID {
			c.place(i, id, doc)
			return
		}
	}
	c.place(c.evict(), id, doc)
}

func (c *lruCache) remove(id int32) {
	for i, cid := range c.ids {
		if cid == id {
			c.ids[i] = emptyID
			c.refBits[i] = false
			return
		}
	}
}

func (c *lruCache) show() string {
	s := fmt.Sprintf("- LRU CACHE [capacity: %d]\n[INDEX, REF_BIT, IDENTIFIER]\n", len(c.ids))
	for i, id := range c.ids {
		s += fmt.Sprintf("[%3d, %v, %5d]\n", i, c.refBits[i], id)
	}
	return s
}
