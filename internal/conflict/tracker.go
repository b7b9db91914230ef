package conflict

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultTTL 冲突记录默认保留时间
const DefaultTTL = 30 * time.Minute

const keyPrefix = "evchart:conflict:"

var ErrEmptyDraft = errors.New("conflict: draft id is required")

// Tracker 记录某个机构的某份草稿上一次提交是否遇到重复站点冲突
// 下一次校验据此放宽站点编号和网络运营商两项
type Tracker interface {
	Mark(ctx context.Context, orgID, draftID string) error
	Seen(ctx context.Context, orgID, draftID string) (bool, error)
	Clear(ctx context.Context, orgID, draftID string) error
}

func key(orgID, draftID string) string {
	return keyPrefix + orgID + ":" + draftID
}

// RedisTracker 基于 redis 的实现，多实例部署时共享
type RedisTracker struct {
	client redis.UniversalClient
	ttl    time.Duration
}

func NewRedisTracker(client redis.UniversalClient, ttl time.Duration) *RedisTracker {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisTracker{client: client, ttl: ttl}
}

func (t *RedisTracker) Mark(ctx context.Context, orgID, draftID string) error {
	if draftID == "" {
		return ErrEmptyDraft
	}
	if err := t.client.Set(ctx, key(orgID, draftID), 1, t.ttl).Err(); err != nil {
		return fmt.Errorf("conflict: mark: %w", err)
	}
	return nil
}

func (t *RedisTracker) Seen(ctx context.Context, orgID, draftID string) (bool, error) {
	if draftID == "" {
		return false, nil
	}
	n, err := t.client.Exists(ctx, key(orgID, draftID)).Result()
	if err != nil {
		return false, fmt.Errorf("conflict: seen: %w", err)
	}
	return n > 0, nil
}

func (t *RedisTracker) Clear(ctx context.Context, orgID, draftID string) error {
	if draftID == "" {
		return nil
	}
	if err := t.client.Del(ctx, key(orgID, draftID)).Err(); err != nil {
		return fmt.Errorf("conflict: clear: %w", err)
	}
	return nil
}

// MemoryTracker 进程内实现，未配置 redis 时使用
type MemoryTracker struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]time.Time
	now     func() time.Time
}

func NewMemoryTracker(ttl time.Duration) *MemoryTracker {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryTracker{
		ttl:     ttl,
		entries: make(map[string]time.Time),
		now:     time.Now,
	}
}

func (t *MemoryTracker) Mark(_ context.Context, orgID, draftID string) error {
	if draftID == "" {
		return ErrEmptyDraft
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries[key(orgID, draftID)] = t.now().Add(t.ttl)
	t.evictLocked()
	return nil
}

func (t *MemoryTracker) Seen(_ context.Context, orgID, draftID string) (bool, error) {
	if draftID == "" {
		return false, nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	k := key(orgID, draftID)
	expires, ok := t.entries[k]
	if !ok {
		return false, nil
	}
	if !t.now().Before(expires) {
		delete(t.entries, k)
		return false, nil
	}
	return true, nil
}

func (t *MemoryTracker) Clear(_ context.Context, orgID, draftID string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.entries, key(orgID, draftID))
	return nil
}

// evictLocked 清理过期记录
func (t *MemoryTracker) evictLocked() {
	now := t.now()
	for k, expires := range t.entries {
		if !now.Before(expires) {
			delete(t.entries, k)
		}
	}
}
