package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"spelltutor/internal/scoring"
)

// DefaultRedisKey prefixes every key the Redis store writes.
const DefaultRedisKey = "spelltutor"

// saveIfHigher stores ARGV[1] in KEYS[1] only when it beats the stored value.
// Missing or unreadable values count as 0.
var saveIfHigher = redis.NewScript(`
local current = tonumber(redis.call('GET', KEYS[1]) or '0') or 0
local candidate = tonumber(ARGV[1])
if candidate > current then
	redis.call('SET', KEYS[1], ARGV[1])
	return 1
end
return 0
`)

// RedisStore shares one high score and history between every process
// pointed at the same Redis.
//
// Keys: <prefix>:high_score holds the score, <prefix>:results is a hash
// of JSON entries by id and <prefix>:leaderboard a sorted set of ids by score.
type RedisStore struct {
	client *redis.Client
	prefix string
}

var (
	_ scoring.HighScoreStore = (*RedisStore)(nil)
	_ scoring.HistoryStore   = (*RedisStore)(nil)
)

func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = DefaultRedisKey
	}
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) Load(ctx context.Context) (int, error) {
	v, err := s.client.Get(ctx, s.key("high_score")).Result()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("redis: cannot load high score: %w", err)
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, nil
	}
	return n, nil
}

func (s *RedisStore) Save(ctx context.Context, candidate int) (bool, error) {
	n, err := saveIfHigher.Run(ctx, s.client, []string{s.key("high_score")}, candidate).Int()
	if err != nil {
		return false, fmt.Errorf("redis: cannot save high score: %w", err)
	}
	return n == 1, nil
}

func (s *RedisStore) Record(ctx context.Context, e scoring.ResultEntry) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("redis: cannot encode result: %w", err)
	}

	_, err = s.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.HSet(ctx, s.key("results"), e.ID, data)
		p.ZAdd(ctx, s.key("leaderboard"), redis.Z{Score: float64(e.Score), Member: e.ID})
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis: cannot record result: %w", err)
	}
	return nil
}

// Top returns the n best games, highest score first. Ties go to the
// earlier game. n <= 0 returns every game.
func (s *RedisStore) Top(ctx context.Context, n int) ([]scoring.ResultEntry, error) {
	// Sorted sets order equal scores by member, so the whole board is read
	// and ties are settled by TopEntries.
	ids, err := s.client.ZRevRange(ctx, s.key("leaderboard"), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("redis: cannot query leaderboard: %w", err)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	vals, err := s.client.HMGet(ctx, s.key("results"), ids...).Result()
	if err != nil {
		return nil, fmt.Errorf("redis: cannot load results: %w", err)
	}

	entries := make([]scoring.ResultEntry, 0, len(vals))
	for _, v := range vals {
		raw, ok := v.(string)
		if !ok {
			continue
		}
		var e scoring.ResultEntry
		if err := json.Unmarshal([]byte(raw), &e); err != nil {
			continue
		}
		entries = append(entries, e)
	}
	return scoring.TopEntries(entries, n), nil
}

func (s *RedisStore) key(name string) string {
	return s.prefix + ":" + name
}
