package community

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"coachhub/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2030, 1, 6, 8, 0, 0, 0, time.UTC)

func counters(id string, likes int, at time.Time) models.PostCounters {
	return models.PostCounters{PostID: id, Likes: likes, UpdatedAt: at}
}

func TestCounterCache_LastWriteWins(t *testing.T) {
	c := NewCounterCache()

	assert.True(t, c.Apply(counters("p1", 3, t0.Add(2*time.Second))))
	assert.False(t, c.Apply(counters("p1", 1, t0)), "older event must be ignored")
	assert.False(t, c.Apply(counters("p1", 9, t0.Add(2*time.Second))), "equal timestamp is not newer")

	got, ok := c.Get("p1")
	require.True(t, ok)
	assert.Equal(t, 3, got.Likes)

	assert.True(t, c.Apply(counters("p1", 4, t0.Add(3*time.Second))))
	got, _ = c.Get("p1")
	assert.Equal(t, 4, got.Likes)
}

func TestCounterCache_Overlay(t *testing.T) {
	c := NewCounterCache()
	c.Apply(models.PostCounters{PostID: "fresh", Likes: 10, Comments: 2, UpdatedAt: t0.Add(time.Minute)})
	c.Apply(models.PostCounters{PostID: "stale", Likes: 1, UpdatedAt: t0.Add(-time.Minute)})

	posts := c.Overlay([]models.Post{
		{ID: "fresh", LikeCount: 7, UpdatedAt: t0},
		{ID: "stale", LikeCount: 5, UpdatedAt: t0},
		{ID: "unknown", LikeCount: 2, UpdatedAt: t0},
	})

	assert.Equal(t, 10, posts[0].LikeCount)
	assert.Equal(t, 2, posts[0].CommentCount)
	assert.Equal(t, 5, posts[1].LikeCount)
	assert.Equal(t, 2, posts[2].LikeCount)
}

func TestCounterCache_Forget(t *testing.T) {
	c := NewCounterCache()
	c.Apply(counters("p1", 1, t0))
	c.Forget("p1")

	_, ok := c.Get("p1")
	assert.False(t, ok)
	assert.True(t, c.Apply(counters("p1", 0, t0.Add(-time.Hour))))
}

func TestCounterCache_ConcurrentApplyKeepsNewest(t *testing.T) {
	c := NewCounterCache()
	var wg sync.WaitGroup
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c.Apply(counters(fmt.Sprintf("p%d", i%4), i, t0.Add(time.Duration(i)*time.Millisecond)))
		}(i)
	}
	wg.Wait()

	require.Equal(t, 4, c.Len())
	for k := 0; k < 4; k++ {
		got, ok := c.Get(fmt.Sprintf("p%d", k))
		require.True(t, ok)
		assert.Equal(t, 196+k, got.Likes)
	}
}
