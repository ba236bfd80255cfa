package limiter

import "sync"

// Storage stores and retrieves token buckets by key.
type Storage interface {
	Get(key string) *TokenBucket
	Set(key string, bucket *TokenBucket)
	Reset()
}

// InMemoryStorage keeps buckets in process memory. Sufficient for a
// single-instance deployment; buckets vanish on restart, which only resets
// the budgets.
type InMemoryStorage struct {
	buckets map[string]*TokenBucket
	mu      sync.RWMutex
}

func NewInMemoryStorage() *InMemoryStorage {
	return &InMemoryStorage{
		buckets: make(map[string]*TokenBucket),
	}
}

func (s *InMemoryStorage) Get(key string) *TokenBucket {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.buckets[key]
}

func (s *InMemoryStorage) Set(key string, bucket *TokenBucket) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buckets[key] = bucket
}

func (s *InMemoryStorage) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buckets = make(map[string]*TokenBucket)
}
