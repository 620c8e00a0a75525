package redis

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"personality-quiz/internal/domain"
)

// QuizLoader fetches a quiz definition from a backing store.
type QuizLoader interface {
	LoadQuiz(ctx context.Context, name string) (domain.QuizDefinition, error)
}

// QuizRepository caches whole definition documents in Redis and falls back
// to a loader on cache miss. Documents are stored as JSON strings:
//
//	SET quiz:{name}:definition {json} EX {ttl}
//
// A plain string keeps the results object in declaration order, which a
// Redis hash would not.
type QuizRepository struct {
	client *redis.Client
	loader QuizLoader
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand
	rndMu  sync.Mutex
	log    *slog.Logger
}

func NewQuizRepository(client *redis.Client, loader QuizLoader, ttl time.Duration) *QuizRepository {
	return &QuizRepository{
		client: client,
		loader: loader,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
		log:    slog.Default().With("component", "redis_quiz_cache"),
	}
}

func (r *QuizRepository) GetQuiz(ctx context.Context, name string) (domain.QuizDefinition, error) {
	if quiz, ok := r.cached(ctx, name); ok {
		return quiz, nil
	}

	result, err, _ := r.sf.Do(name, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if quiz, ok := r.cached(ctx, name); ok {
			return quiz, nil
		}

		quiz, err := r.loader.LoadQuiz(ctx, name)
		if err != nil {
			return domain.QuizDefinition{}, err
		}

		data, err := json.Marshal(quiz)
		if err != nil {
			return domain.QuizDefinition{}, err
		}
		if err := r.client.Set(ctx, r.key(name), data, r.ttlWithJitter()).Err(); err != nil {
			r.log.Warn("cache fill failed", "quiz", name, "err", err)
		}
		return quiz, nil
	})
	if err != nil {
		return domain.QuizDefinition{}, err
	}
	return result.(domain.QuizDefinition), nil
}

// Invalidate removes a cached document so the next read goes to the loader.
func (r *QuizRepository) Invalidate(ctx context.Context, name string) error {
	return r.client.Del(ctx, r.key(name)).Err()
}

func (r *QuizRepository) cached(ctx context.Context, name string) (domain.QuizDefinition, bool) {
	data, err := r.client.Get(ctx, r.key(name)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.log.Warn("cache read failed", "quiz", name, "err", err)
		}
		return domain.QuizDefinition{}, false
	}
	quiz, err := domain.ParseDefinition(data, domain.FormatJSON)
	if err != nil {
		// Treat an unreadable entry as a miss; the fill overwrites it.
		r.log.Warn("cached quiz unreadable", "quiz", name, "err", err)
		return domain.QuizDefinition{}, false
	}
	return quiz, true
}

func (r *QuizRepository) key(name string) string {
	return "quiz:" + name + ":definition"
}

func (r *QuizRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	jitterMax := int64(r.ttl) / 10
	r.rndMu.Lock()
	defer r.rndMu.Unlock()
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}
