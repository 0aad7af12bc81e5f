package payment

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultDraftTTL bounds how long a checkout can wait for its gateway
// callback before the draft expires.
const DefaultDraftTTL = 15 * time.Minute

// RedisDraftStore keeps drafts in Redis so payment correlation survives
// restarts and works across instances.
type RedisDraftStore struct {
	client *redis.Client
	prefix string
}

func NewRedisDraftStore(client *redis.Client) *RedisDraftStore {
	return &RedisDraftStore{client: client, prefix: "booking_draft:"}
}

func (s *RedisDraftStore) Put(ctx context.Context, draft *Draft, ttl time.Duration) error {
	raw, err := json.Marshal(draft)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.prefix+draft.TxnRef, raw, ttl).Err()
}

func (s *RedisDraftStore) Consume(ctx context.Context, txnRef string) (*Draft, error) {
	raw, err := s.client.GetDel(ctx, s.prefix+txnRef).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrDraftNotFound
		}
		return nil, err
	}
	var draft Draft
	if err := json.Unmarshal(raw, &draft); err != nil {
		return nil, err
	}
	return &draft, nil
}

// MemoryDraftStore is the single-process fallback used when Redis is not
// configured, and in tests.
type MemoryDraftStore struct {
	mutex  sync.Mutex
	drafts map[string]memoryDraftEntry

	nowFn func() time.Time
}

type memoryDraftEntry struct {
	draft     *Draft
	expiresAt time.Time
}

func NewMemoryDraftStore() *MemoryDraftStore {
	return &MemoryDraftStore{
		drafts: make(map[string]memoryDraftEntry),
		nowFn:  time.Now,
	}
}

func (s *MemoryDraftStore) Put(_ context.Context, draft *Draft, ttl time.Duration) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.drafts[draft.TxnRef] = memoryDraftEntry{
		draft:     draft,
		expiresAt: s.nowFn().Add(ttl),
	}
	return nil
}

func (s *MemoryDraftStore) Consume(_ context.Context, txnRef string) (*Draft, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	entry, ok := s.drafts[txnRef]
	if !ok {
		return nil, ErrDraftNotFound
	}
	delete(s.drafts, txnRef)
	if s.nowFn().After(entry.expiresAt) {
		return nil, ErrDraftNotFound
	}
	return entry.draft, nil
}
