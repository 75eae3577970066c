package memory

import (
	"context"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/akshay-rawal/Quiz-Game/internal/domain"
	"golang.org/x/sync/singleflight"
)

// QuestionLoader fetches question content from a backing store (e.g., Postgres).
type QuestionLoader interface {
	LoadQuestion(ctx context.Context, id string) (domain.Question, error)
	LoadCategory(ctx context.Context, category domain.Category) ([]domain.Question, error)
}

// QuestionCache caches category question sets with TTL to avoid repeated DB
// hits. Point lookups are served from a cached set when possible and fall
// back to the loader.
type QuestionCache struct {
	loader QuestionLoader
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group
	rnd    *rand.Rand

	mu    sync.RWMutex
	cache map[domain.Category]cachedCategory
}

type cachedCategory struct {
	questions []domain.Question
	expiresAt time.Time
}

func NewQuestionCache(loader QuestionLoader, ttl time.Duration) *QuestionCache {
	return &QuestionCache{
		loader: loader,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
		cache:  make(map[domain.Category]cachedCategory),
	}
}

func (c *QuestionCache) CategoryQuestions(ctx context.Context, category domain.Category) ([]domain.Question, error) {
	now := c.clock()

	c.mu.RLock()
	if entry, ok := c.cache[category]; ok && entry.expiresAt.After(now) {
		c.mu.RUnlock()
		return entry.questions, nil
	}
	c.mu.RUnlock()

	result, err, _ := c.sf.Do(string(category), func() (interface{}, error) {
		now := c.clock()
		c.mu.RLock()
		if entry, ok := c.cache[category]; ok && entry.expiresAt.After(now) {
			c.mu.RUnlock()
			return entry.questions, nil
		}
		c.mu.RUnlock()

		questions, err := c.loader.LoadCategory(ctx, category)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.cache[category] = cachedCategory{
			questions: questions,
			expiresAt: now.Add(c.ttlWithJitter()),
		}
		c.mu.Unlock()
		return questions, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Question), nil
}

func (c *QuestionCache) Question(ctx context.Context, id string) (domain.Question, error) {
	now := c.clock()

	c.mu.RLock()
	for _, entry := range c.cache {
		if !entry.expiresAt.After(now) {
			continue
		}
		for _, q := range entry.questions {
			if q.ID == id {
				c.mu.RUnlock()
				return q, nil
			}
		}
	}
	c.mu.RUnlock()

	return c.loader.LoadQuestion(ctx, id)
}

func (c *QuestionCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}

// StaticQuestionLoader is a loader backed by an in-memory map, used when no
// database is configured and throughout tests. It doubles as a seeder.
type StaticQuestionLoader struct {
	mu        sync.RWMutex
	questions map[string]domain.Question
}

func NewStaticQuestionLoader(questions []domain.Question) *StaticQuestionLoader {
	l := &StaticQuestionLoader{questions: make(map[string]domain.Question, len(questions))}
	for _, q := range questions {
		l.questions[q.ID] = q
	}
	return l
}

func (l *StaticQuestionLoader) LoadQuestion(_ context.Context, id string) (domain.Question, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if q, ok := l.questions[id]; ok {
		return q, nil
	}
	return domain.Question{}, domain.ErrQuestionNotFound
}

func (l *StaticQuestionLoader) LoadCategory(_ context.Context, category domain.Category) ([]domain.Question, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	var out []domain.Question
	for _, q := range l.questions {
		if q.Category == category {
			out = append(out, q)
		}
	}
	// Map iteration order is random; keep the feed stable across calls.
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (l *StaticQuestionLoader) SeedQuestions(_ context.Context, questions []domain.Question) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, q := range questions {
		l.questions[q.ID] = q
	}
	return nil
}
