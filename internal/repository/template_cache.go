package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const templateCachePrefix = "exam_template:result:"

// TemplateCache 以输入摘要为键缓存转换结果；client 为 nil 时所有操作均为空操作
type TemplateCache struct {
	client *redis.Client
}

func NewTemplateCache(client *redis.Client) *TemplateCache {
	return &TemplateCache{client: client}
}

func (c *TemplateCache) Enabled() bool {
	return c != nil && c.client != nil
}

// Get 命中时解码到 dst 并返回 true
func (c *TemplateCache) Get(ctx context.Context, hash string, dst interface{}) (bool, error) {
	if !c.Enabled() {
		return false, nil
	}
	raw, err := c.client.Get(ctx, templateCachePrefix+hash).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("decode cached result: %w", err)
	}
	return true, nil
}

func (c *TemplateCache) Set(ctx context.Context, hash string, value interface{}, ttl time.Duration) error {
	if !c.Enabled() || ttl <= 0 {
		return nil
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, templateCachePrefix+hash, raw, ttl).Err()
}

func (c *TemplateCache) Ping(ctx context.Context) error {
	if !c.Enabled() {
		return nil
	}
	return c.client.Ping(ctx).Err()
}
