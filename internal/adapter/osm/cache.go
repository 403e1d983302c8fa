package osm

import (
	"context"
	"sync"

	"github.com/campuscoffee/pos-service/internal/domain"
	"github.com/campuscoffee/pos-service/internal/observability"
)

// CachedFetcher wraps a NodeFetcher with an in-memory LRU cache keyed by
// node ID. Only successful fetches are cached, so not-found and transient
// failures can be retried.
type CachedFetcher struct {
	inner   domain.NodeFetcher
	cache   *lruCache
	metrics *observability.Metrics
}

// NewCachedFetcher creates a cache decorator around a node fetcher.
func NewCachedFetcher(inner domain.NodeFetcher, maxEntries int, metrics *observability.Metrics) *CachedFetcher {
	return &CachedFetcher{
		inner:   inner,
		cache:   newLRUCache(maxEntries),
		metrics: metrics,
	}
}

// FetchNode implements domain.NodeFetcher.
func (c *CachedFetcher) FetchNode(ctx context.Context, nodeID int64) (domain.OsmNode, error) {
	if node, ok := c.cache.get(nodeID); ok {
		c.metrics.NodeCache.WithLabelValues("hit").Inc()
		return node, nil
	}
	c.metrics.NodeCache.WithLabelValues("miss").Inc()

	node, err := c.inner.FetchNode(ctx, nodeID)
	if err != nil {
		return node, err
	}
	c.cache.put(nodeID, node)
	return node, nil
}

// lruCache is a simple thread-safe LRU cache for OSM nodes.
type lruCache struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[int64]*entry
	head       *entry // most recently used
	tail       *entry // least recently used
}

type entry struct {
	key   int64
	value domain.OsmNode
	prev  *entry
	next  *entry
}

func newLRUCache(maxEntries int) *lruCache {
	return &lruCache{
		maxEntries: maxEntries,
		entries:    make(map[int64]*entry),
	}
}

func (c *lruCache) get(key int64) (domain.OsmNode, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return domain.OsmNode{}, false
	}
	c.moveToFront(e)
	return e.value, true
}

func (c *lruCache) put(key int64, value domain.OsmNode) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.value = value
		c.moveToFront(e)
		return
	}

	e := &entry{key: key, value: value}
	c.entries[key] = e
	c.addToFront(e)

	if len(c.entries) > c.maxEntries {
		c.evictTail()
	}
}

func (c *lruCache) moveToFront(e *entry) {
	if e == c.head {
		return
	}
	c.remove(e)
	c.addToFront(e)
}

func (c *lruCache) addToFront(e *entry) {
	e.next = c.head
	e.prev = nil
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *lruCache) remove(e *entry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
}

func (c *lruCache) evictTail() {
	if c.tail == nil {
		return
	}
	delete(c.entries, c.tail.key)
	c.remove(c.tail)
}
