// Package cache provides a byte-size-bounded LRU used to cap preview
// content held in memory for a session.
package cache

import (
	"container/list"
	"errors"
	"fmt"
)

type Cache struct {
	maxSize   int64
	size      int64
	evictList *list.List
	items     map[string]*list.Element
}

type Entry struct {
	Key   string
	Value string
}

func New(maxSizeMB int64) (*Cache, error) {
	if maxSizeMB <= 0 {
		return nil, errors.New("cache size must be positive")
	}
	return &Cache{
		maxSize:   maxSizeMB * 1024 * 1024,
		evictList: list.New(),
		items:     make(map[string]*list.Element),
	}, nil
}

func (c *Cache) Get(key string) (string, bool) {
	if ele, hit := c.items[key]; hit {
		c.evictList.MoveToFront(ele)
		return ele.Value.(*Entry).Value, true
	}
	return "", false
}

// Put inserts or updates an entry, evicting the least recently used
// entries until the total size fits. An entry that alone exceeds the
// capacity is refused.
func (c *Cache) Put(key, value string) error {
	entrySize := int64(sizeof(&Entry{Key: key, Value: value}))
	if entrySize > c.maxSize {
		return fmt.Errorf("entry of %d bytes exceeds cache capacity", entrySize)
	}

	if ele, hit := c.items[key]; hit {
		old := ele.Value.(*Entry)
		c.size += entrySize - int64(sizeof(old))
		old.Value = value
		c.evictList.MoveToFront(ele)
	} else {
		ele := c.evictList.PushFront(&Entry{Key: key, Value: value})
		c.items[key] = ele
		c.size += entrySize
	}

	for c.size > c.maxSize {
		c.removeOldest()
	}
	return nil
}

func (c *Cache) SizeOf() int64 {
	return c.size
}

func (c *Cache) Len() int {
	return c.evictList.Len()
}

func (c *Cache) removeOldest() {
	if ele := c.evictList.Back(); ele != nil {
		c.removeElement(ele)
	}
}

func (c *Cache) removeElement(e *list.Element) {
	c.evictList.Remove(e)
	entry := e.Value.(*Entry)
	delete(c.items, entry.Key)
	c.size -= int64(sizeof(entry))
}

func sizeof(e *Entry) int {
	return len(e.Key) + len(e.Value)
}
