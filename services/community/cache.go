package community

import (
	"sync"

	"coachhub/models"
)

// CounterCache holds the newest known counters per post. Writes older than what is
// cached are dropped, so the write with the latest server timestamp always wins.
type CounterCache struct {
	mu      sync.RWMutex
	entries map[string]models.PostCounters
}

func NewCounterCache() *CounterCache {
	return &CounterCache{entries: make(map[string]models.PostCounters)}
}

// Apply stores c if it is strictly newer than the cached entry and reports whether it did.
func (c *CounterCache) Apply(counters models.PostCounters) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if cur, ok := c.entries[counters.PostID]; ok && !counters.UpdatedAt.After(cur.UpdatedAt) {
		return false
	}
	c.entries[counters.PostID] = counters
	return true
}

func (c *CounterCache) Get(postID string) (models.PostCounters, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.entries[postID]
	return v, ok
}

func (c *CounterCache) Forget(postID string) {
	c.mu.Lock()
	delete(c.entries, postID)
	c.mu.Unlock()
}

// Overlay replaces the counters of posts whose cached entry is newer than the stored document.
func (c *CounterCache) Overlay(posts []models.Post) []models.Post {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for i := range posts {
		cur, ok := c.entries[posts[i].ID]
		if !ok || !cur.UpdatedAt.After(posts[i].UpdatedAt) {
			continue
		}
		posts[i].LikeCount = cur.Likes
		posts[i].CommentCount = cur.Comments
		posts[i].UpdatedAt = cur.UpdatedAt
	}
	return posts
}

func (c *CounterCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
