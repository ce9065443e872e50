// Cache facade: a uniform interface over three block-granularity
// replacement policies (FIFO, RANDOM, approximate-LRU) plus a NONE
// bypass, selected once at construction. Each policy is a small
// concrete type behind the cacheStrategy interface rather than a
// struct of function pointers.
package docindex

// CacheType selects a cache's replacement policy.
type CacheType int

const (
	CacheNone CacheType = iota
	CacheFIFO
	CacheRandom
	CacheLRU
)

func (t CacheType) String() string {
	switch t {
	case CacheFIFO:
		return "FIFO"
	case CacheRandom:
		return "RAND"
	case CacheLRU:
		return "LRU"
	default:
		return "NONE"
	}
}

// blockSize is the number of consecutive records read from disk on a
// cache miss.
const blockSize = 8

// cacheSource reads blockSize records starting at id*RecordSize. The
// storage engine satisfies this using an explicit-offset read, so
// concurrent reads never race over a shared file position.
type cacheSource interface {
	readBlock(id int32) ([]Document, error)
}

// cacheStrategy is the trait every concrete replacement policy
// implements. get/add/remove all assume the caller already checked
// id >= 0; the Cache facade enforces that.
type cacheStrategy interface {
	get(id int32) (Document, bool)
	add(id int32, doc Document)
	remove(id int32)
	show() string
}

// Cache is the read-through metadata cache facing the storage engine.
// A nil cache or a negative ID is always a no-op; Cache itself
// enforces that so concrete strategies never see negative IDs.
type Cache struct {
	typ      CacheType
	strategy cacheStrategy
}

// NewCache constructs a cache of the given type and capacity, reading
// through to source on a miss. CacheNone still reads through source on
// every call but retains nothing, so CONSULT/COUNT_WORD/LIST_WORD keep
// working with caching disabled. seed distinguishes independent RANDOM
// caches' eviction sequences; it's ignored by every other policy.
func NewCache(typ CacheType, size int, source cacheSource, seed string) *Cache {
	c := &Cache{typ: typ}
	switch typ {
	case CacheFIFO:
		c.strategy = newFIFOCache(size, source)
	case CacheRandom:
		c.strategy = newRandomCache(size, source, seed)
	case CacheLRU:
		c.strategy = newLRUCache(size, source)
	default:
		c.strategy = &passthroughCache{source: source}
	}
	return c
}

// passthroughCache implements cacheStrategy by always reading through
// to source and retaining nothing — the CacheNone policy.
type passthroughCache struct {
	source cacheSource
}

func (p *passthroughCache) get(id int32) (Document, bool) {
	block, err := p.source.readBlock(id)
	if err != nil || len(block) == 0 {
		return Document{}, false
	}
	return block[0].Clone(), true
}

func (p *passthroughCache) add(id int32, doc Document) {}
func (p *passthroughCache) remove(id int32)            {}
func (p *passthroughCache) show() string               { return "- CACHE [disabled]" }

// Get returns a detached clone of the cached (or newly-fetched-and-
// cached) document for id, or false if it could not be found and the
// read-through also missed.
func (c *Cache) Get(id int32) (Document, bool) {
	if c == nil || c.strategy == nil || id < 0 {
		return Document{}, false
	}
	return c.strategy.get(id)
}

// Add inserts doc under id into the cache.
func (c *Cache) Add(id int32, doc Document) {
	if c == nil || c.strategy == nil || id < 0 {
		return
	}
	c.strategy.add(id, doc)
}

// Remove evicts id from the cache, if present.
func (c *Cache) Remove(id int32) {
	if c == nil || c.strategy == nil || id < 0 {
		return
	}
	c.strategy.remove(id)
}

// Show renders the cache's internal state for operational debugging.
func (c *Cache) Show() string {
	if c == nil || c.strategy == nil {
		return "- CACHE [disabled]"
	}
	return c.strategy.show()
}
