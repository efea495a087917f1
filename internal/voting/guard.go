package voting

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/MassBabyGeek/StudyHub-backend/internal/apperrors"
	"github.com/MassBabyGeek/StudyHub-backend/internal/logger"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Guard empêche un même utilisateur de relancer un vote sur une entité tant que
// le précédent n'est pas persisté
type Guard interface {
	Acquire(ctx context.Context, key string) (release func(), err error)
}

func guardKey(kind, entityID, voterID string) string {
	return kind + ":" + entityID + ":" + voterID
}

// MemoryGuard verrou en mémoire, valable pour une seule instance de l'API
type MemoryGuard struct {
	mu   sync.Mutex
	held map[string]struct{}
}

func NewMemoryGuard() *MemoryGuard {
	return &MemoryGuard{held: make(map[string]struct{})}
}

func (g *MemoryGuard) Acquire(_ context.Context, key string) (func(), error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, busy := g.held[key]; busy {
		return nil, apperrors.ErrVoteInFlight
	}
	g.held[key] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			delete(g.held, key)
			g.mu.Unlock()
		})
	}, nil
}

// releaseScript ne supprime la clé que si elle appartient encore au détenteur
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisGuard verrou partagé entre instances (SET NX PX). Le TTL libère la clé si
// une instance meurt pendant l'écriture.
type RedisGuard struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

func NewRedisGuard(client *redis.Client, ttl time.Duration) *RedisGuard {
	return &RedisGuard{client: client, ttl: ttl, prefix: "vote-inflight:"}
}

// NewRedisGuardFromURL ouvre une connexion Redis et vérifie qu'elle répond
func NewRedisGuardFromURL(ctx context.Context, redisURL string, ttl time.Duration) (*RedisGuard, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return NewRedisGuard(client, ttl), nil
}

func (g *RedisGuard) Acquire(ctx context.Context, key string) (func(), error) {
	key = g.prefix + key
	token := uuid.NewString()

	ok, err := g.client.SetNX(ctx, key, token, g.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("acquire vote guard: %w", err)
	}
	if !ok {
		logger.Debug("vote guard busy: %s", key)
		return nil, apperrors.ErrVoteInFlight
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			// la clé expirera d'elle-même au bout du TTL
			if err := releaseScript.Run(ctx, g.client, []string{key}, token).Err(); err != nil {
				logger.Warning("release vote guard %s: %v", key, err)
			}
		})
	}, nil
}

// Close ferme la connexion Redis
func (g *RedisGuard) Close() error {
	return g.client.Close()
}
