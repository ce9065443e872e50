// Ring-buffer FIFO cache: the block fetched longest ago is evicted
// first.
package docindex

import "fmt"

type fifoCache struct {
	docs   []Document
	ids    []int32
	back   int // next write position
	source cacheSource
}

func newFIFOCache(size int, source cacheSource) *fifoCache {
	ids := make([]int32, size)
	for i := range ids {
		ids[i] = emptyID
	}
	return &fifoCache{
		docs:   make([]Document, size),
		ids:    ids,
		source: source,
	}
}

func (c *fifoCache) get(id int32) (Document, bool) {
	for i, cid := range c.ids {
		if cid == id {
			return c.docs[i].Clone(), true
		}
	}
	return c.miss(id)
}

// miss reads a block from the source and inserts as many records as
// were returned contiguously at the write cursor, evicting the oldest
// entries one at a time.
func (c *fifoCache) miss(id int32) (Document, bool) {
	block, err := c.source.readBlock(id)
	if err != nil || len(block) == 0 {
		return Document{}, false
	}

	result := block[0].Clone()
	for i, doc := range block {
		c.docs[c.back] = doc
		c.ids[c.back] = id + int32(i)
		c.back = (c.back + 1) % len(c.ids)
	}
	return result, true
}

func (c *fifoCache) add(id int32, doc Document) {
	c.docs[c.back] = doc
	c.ids[c.back] = id
	c.back = (c.back + 1) % len(c.ids)
}

// remove marks the slot invalid in place. The write cursor is not
// rewound to reclaim the slot early — it continues its normal cycle.
func (c *fifoCache) remove(id int32) {
	for i, cid := range c.ids {
		if cid == id {
			c.ids[i] = emptyID
			return
		}
	}
}

func (c *fifoCache) show() string {
	s := fmt.Sprintf("- FIFO CACHE [capacity: %d]\n[INDEX, IDENTIFIER]\n", len(c.ids))
	for i, id := range c.ids {
		s += fmt.Sprintf("[%3d, %5d]\n", i, id)
	}
	return s
}
