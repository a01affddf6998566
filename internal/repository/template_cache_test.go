package repository

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateCache_DisabledIsNoop(t *testing.T) {
	ctx := context.Background()
	for _, c := range []*TemplateCache{nil, NewTemplateCache(nil)} {
		assert.False(t, c.Enabled())

		var dst map[string]string
		hit, err := c.Get(ctx, "hash", &dst)
		require.NoError(t, err)
		assert.False(t, hit)

		assert.NoError(t, c.Set(ctx, "hash", map[string]string{"a": "b"}, time.Minute))
		assert.NoError(t, c.Ping(ctx))
	}
}

func TestTemplateCache_UnreachableServerReturnsError(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()
	c := NewTemplateCache(client)

	assert.True(t, c.Enabled())
	_, err := c.Get(context.Background(), "hash", &map[string]string{})
	assert.Error(t, err)

	// ttl 为 0 时不访问 redis
	assert.NoError(t, c.Set(context.Background(), "hash", "v", 0))
}
