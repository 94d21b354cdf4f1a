// Package cache is a small size-bounded LRU used to keep rendered previews
// cheap to re-show.
package cache

import (
	"container/list"
	"fmt"
)

type entry struct {
	key   string
	value string
}

func (e *entry) size() int64 {
	return int64(len(e.key) + len(e.value))
}

// Cache evicts least-recently-used entries once the total size of keys and
// values exceeds the configured budget.
type Cache struct {
	maxBytes  int64
	bytes     int64
	evictList *list.List
	items     map[string]*list.Element
}

func New(maxSizeMB int64) (*Cache, error) {
	if maxSizeMB <= 0 {
		return nil, fmt.Errorf("cache size must be positive, got %d", maxSizeMB)
	}
	return &Cache{
		maxBytes:  maxSizeMB * 1024 * 1024,
		evictList: list.New(),
		items:     make(map[string]*list.Element),
	}, nil
}

func (c *Cache) Get(key string) (string, bool) {
	ele, hit := c.items[key]
	if !hit {
		return "", false
	}
	c.evictList.MoveToFront(ele)
	return ele.Value.(*entry).value, true
}

func (c *Cache) Put(key, value string) {
	if ele, hit := c.items[key]; hit {
		c.evictList.MoveToFront(ele)
		e := ele.Value.(*entry)
		c.bytes += int64(len(value) - len(e.value))
		e.value = value
	} else {
		e := &entry{key: key, value: value}
		c.items[key] = c.evictList.PushFront(e)
		c.bytes += e.size()
	}

	for c.bytes > c.maxBytes && c.evictList.Len() > 1 {
		c.removeOldest()
	}
}

// SizeOf reports the tracked byte total.
func (c *Cache) SizeOf() int64 {
	return c.bytes
}

func (c *Cache) removeOldest() {
	ele := c.evictList.Back()
	if ele == nil {
		return
	}
	e := ele.Value.(*entry)
	c.evictList.Remove(ele)
	delete(c.items, e.key)
	c.bytes -= e.size()
}
