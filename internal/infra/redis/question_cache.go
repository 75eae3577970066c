package redis

import (
	"context"
	"encoding/json"
	"math/rand"
	"time"

	"github.com/akshay-rawal/Quiz-Game/internal/domain"
	"github.com/akshay-rawal/Quiz-Game/internal/infra/memory"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// QuestionCache caches category question sets in Redis as JSON blobs
// (key: questions:{category}) and falls back to a loader on cache miss.
// Point lookups go straight to the loader.
type QuestionCache struct {
	client *redis.Client
	loader memory.QuestionLoader
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand
}

func NewQuestionCache(client *redis.Client, loader memory.QuestionLoader, ttl time.Duration) *QuestionCache {
	return &QuestionCache{
		client: client,
		loader: loader,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (c *QuestionCache) CategoryQuestions(ctx context.Context, category domain.Category) ([]domain.Question, error) {
	key := c.categoryKey(category)

	raw, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		return decodeQuestions(raw)
	}

	result, err, _ := c.sf.Do(string(category), func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		raw, err := c.client.Get(ctx, key).Bytes()
		if err == nil {
			return decodeQuestions(raw)
		}

		questions, err := c.loader.LoadCategory(ctx, category)
		if err != nil {
			return nil, err
		}

		if data, err := json.Marshal(questions); err == nil {
			// best-effort cache fill
			_ = c.client.Set(ctx, key, data, c.ttlWithJitter()).Err()
		}
		return questions, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Question), nil
}

func (c *QuestionCache) Question(ctx context.Context, id string) (domain.Question, error) {
	return c.loader.LoadQuestion(ctx, id)
}

func (c *QuestionCache) categoryKey(category domain.Category) string {
	return "questions:" + string(category)
}

func (c *QuestionCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}

func decodeQuestions(raw []byte) ([]domain.Question, error) {
	var questions []domain.Question
	if err := json.Unmarshal(raw, &questions); err != nil {
		return nil, err
	}
	return questions, nil
}
