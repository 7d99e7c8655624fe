package editor

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"

	"ecomadmin/models"
)

// DraftStore holds at most one in-progress campaign snapshot per user,
// independent of whatever is persisted in the database. Save overwrites the
// slot wholesale; Get returns nil when the slot is empty.
type DraftStore interface {
	Save(ctx context.Context, userID uint, doc *models.Campaign) error
	Get(ctx context.Context, userID uint) (*models.Campaign, error)
	Clear(ctx context.Context, userID uint) error
}

// RedisDraftStore keeps draft slots in Redis so they survive restarts
type RedisDraftStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisDraftStore(client *redis.Client, ttl time.Duration) *RedisDraftStore {
	return &RedisDraftStore{client: client, ttl: ttl}
}

func draftKey(userID uint) string {
	return fmt.Sprintf("draft:campaign:%d", userID)
}

func (r *RedisDraftStore) Save(ctx context.Context, userID uint, doc *models.Campaign) error {
	snapshot := *doc
	snapshot.LastModified = time.Now()
	payload, err := json.Marshal(&snapshot)
	if err != nil {
		return fmt.Errorf("failed to encode draft: %w", err)
	}
	return r.client.Set(ctx, draftKey(userID), payload, r.ttl).Err()
}

func (r *RedisDraftStore) Get(ctx context.Context, userID uint) (*models.Campaign, error) {
	payload, err := r.client.Get(ctx, draftKey(userID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var doc models.Campaign
	if err := json.Unmarshal(payload, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode draft: %w", err)
	}
	return &doc, nil
}

func (r *RedisDraftStore) Clear(ctx context.Context, userID uint) error {
	return r.client.Del(ctx, draftKey(userID)).Err()
}

// MemoryDraftStore is the in-process fallback used when Redis is disabled.
// Snapshots are stored serialized so callers cannot alias the slot.
type MemoryDraftStore struct {
	mu     sync.RWMutex
	drafts map[uint][]byte
}

func NewMemoryDraftStore() *MemoryDraftStore {
	return &MemoryDraftStore{drafts: make(map[uint][]byte)}
}

func (m *MemoryDraftStore) Save(_ context.Context, userID uint, doc *models.Campaign) error {
	snapshot := *doc
	snapshot.LastModified = time.Now()
	payload, err := json.Marshal(&snapshot)
	if err != nil {
		return fmt.Errorf("failed to encode draft: %w", err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.drafts[userID] = payload
	return nil
}

func (m *MemoryDraftStore) Get(_ context.Context, userID uint) (*models.Campaign, error) {
	m.mu.RLock()
	payload, ok := m.drafts[userID]
	m.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	var doc models.Campaign
	if err := json.Unmarshal(payload, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode draft: %w", err)
	}
	return &doc, nil
}

func (m *MemoryDraftStore) Clear(_ context.Context, userID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.drafts, userID)
	return nil
}
