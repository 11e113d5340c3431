package api

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"popquiz-client/internal/domain"
)

// QuizGetter fetches quiz snapshots from the service.
type QuizGetter interface {
	GetQuiz(ctx context.Context, code string) (domain.Quiz, error)
}

// SnapshotSource caches quiz snapshots with a short TTL so roster
// renders and list refreshes don't hammer the service between polls.
// Concurrent fetches for the same code are collapsed to one request.
type SnapshotSource struct {
	getter QuizGetter
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group
	rnd    *rand.Rand

	mu    sync.RWMutex
	cache map[string]cachedQuiz
}

type cachedQuiz struct {
	quiz      domain.Quiz
	expiresAt time.Time
}

func NewSnapshotSource(getter QuizGetter, ttl time.Duration) *SnapshotSource {
	return &SnapshotSource{
		getter: getter,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
		cache:  make(map[string]cachedQuiz),
	}
}

// Get returns the cached snapshot when fresh, fetching otherwise.
func (s *SnapshotSource) Get(ctx context.Context, code string) (domain.Quiz, error) {
	now := s.clock()

	s.mu.RLock()
	if entry, ok := s.cache[code]; ok && entry.expiresAt.After(now) {
		s.mu.RUnlock()
		return entry.quiz, nil
	}
	s.mu.RUnlock()

	result, err, _ := s.sf.Do(code, func() (interface{}, error) {
		now := s.clock()
		s.mu.RLock()
		if entry, ok := s.cache[code]; ok && entry.expiresAt.After(now) {
			s.mu.RUnlock()
			return entry.quiz, nil
		}
		s.mu.RUnlock()
		return s.fetch(ctx, code)
	})
	if err != nil {
		return domain.Quiz{}, err
	}
	return result.(domain.Quiz), nil
}

// Refresh bypasses the TTL and replaces the cached snapshot. The lobby
// poller uses this so a poll always observes current server state.
func (s *SnapshotSource) Refresh(ctx context.Context, code string) (domain.Quiz, error) {
	result, err, _ := s.sf.Do(code, func() (interface{}, error) {
		return s.fetch(ctx, code)
	})
	if err != nil {
		return domain.Quiz{}, err
	}
	return result.(domain.Quiz), nil
}

func (s *SnapshotSource) fetch(ctx context.Context, code string) (interface{}, error) {
	quiz, err := s.getter.GetQuiz(ctx, code)
	if err != nil {
		return domain.Quiz{}, err
	}
	s.mu.Lock()
	s.cache[code] = cachedQuiz{
		quiz:      quiz,
		expiresAt: s.clock().Add(s.ttlWithJitter()),
	}
	s.mu.Unlock()
	return quiz, nil
}

func (s *SnapshotSource) ttlWithJitter() time.Duration {
	if s.ttl <= 0 {
		return 0
	}
	// up to 10% jitter to spread expirations
	jitterMax := int64(s.ttl) / 10
	return s.ttl + time.Duration(s.rnd.Int63n(jitterMax+1))
}
