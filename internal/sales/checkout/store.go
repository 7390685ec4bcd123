package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrBillNotFound = errors.New("bill not found")

// Store keeps open bills keyed by their BillId. Each bill's lines are
// independent; nothing is shared between bills.
type Store interface {
	Save(ctx context.Context, bill *Bill) error
	Get(ctx context.Context, billID string) (*Bill, error)
	Delete(ctx context.Context, billID string) error
}

const billKeyPrefix = "checkout:bill:"

// RedisStore persists bills as JSON values with a TTL, so abandoned tabs
// expire on their own.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Save(ctx context.Context, bill *Bill) error {
	raw, err := json.Marshal(bill)
	if err != nil {
		return fmt.Errorf("checkout: marshal bill: %w", err)
	}
	if err := s.client.Set(ctx, billKeyPrefix+bill.ID, raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("checkout: save bill: %w", err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, billID string) (*Bill, error) {
	raw, err := s.client.Get(ctx, billKeyPrefix+billID).Bytes()
	if err == redis.Nil {
		return nil, fmt.Errorf("%w: %s", ErrBillNotFound, billID)
	}
	if err != nil {
		return nil, fmt.Errorf("checkout: load bill: %w", err)
	}
	var bill Bill
	if err := json.Unmarshal(raw, &bill); err != nil {
		return nil, fmt.Errorf("checkout: unmarshal bill: %w", err)
	}
	return &bill, nil
}

func (s *RedisStore) Delete(ctx context.Context, billID string) error {
	if err := s.client.Del(ctx, billKeyPrefix+billID).Err(); err != nil {
		return fmt.Errorf("checkout: delete bill: %w", err)
	}
	return nil
}

// MemoryStore backs tests and single-process setups. Bills round-trip
// through JSON so callers never share memory with the stored copy.
type MemoryStore struct {
	mu    sync.RWMutex
	bills map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{bills: make(map[string][]byte)}
}

func (s *MemoryStore) Save(_ context.Context, bill *Bill) error {
	raw, err := json.Marshal(bill)
	if err != nil {
		return fmt.Errorf("checkout: marshal bill: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bills[bill.ID] = raw
	return nil
}

func (s *MemoryStore) Get(_ context.Context, billID string) (*Bill, error) {
	s.mu.RLock()
	raw, ok := s.bills[billID]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrBillNotFound, billID)
	}
	var bill Bill
	if err := json.Unmarshal(raw, &bill); err != nil {
		return nil, fmt.Errorf("checkout: unmarshal bill: %w", err)
	}
	return &bill, nil
}

func (s *MemoryStore) Delete(_ context.Context, billID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.bills, billID)
	return nil
}
