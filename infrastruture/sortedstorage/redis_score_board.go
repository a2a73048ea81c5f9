package sortedstorage

import (
	"context"

	dmn "github.com/beka-birhanu/micromouse-api/domain"
	"github.com/beka-birhanu/micromouse-api/service/i"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
)

// RedisScoreBoard keeps leaderboards in Redis sorted sets, ranked by
// ascending score so the cheapest runs come first.
type RedisScoreBoard struct {
	client  *redis.Client
	locker  *redsync.Redsync
	maxSize int64
}

// NewRedisScoreBoard initializes a RedisScoreBoard with the provided Redis
// client. Boards are trimmed to maxSize entries on every submit; a maxSize
// of zero or less keeps boards unbounded.
func NewRedisScoreBoard(client *redis.Client, maxSize int64) (i.ScoreBoard, error) {
	board := &RedisScoreBoard{
		client:  client,
		maxSize: maxSize,
	}
	pool := goredis.NewPool(client)
	board.locker = redsync.New(pool)
	return board, nil
}

// Submit records a score for a member on the given board. Members keep only
// their latest score; the board keeps only its best maxSize entries.
func (rsb *RedisScoreBoard) Submit(ctx context.Context, boardKey string, score float64, member string) error {
	mutex := rsb.locker.NewMutex(boardKey + ":submit_lock")
	if err := mutex.Lock(); err != nil {
		return err
	}
	defer func() {
		_, _ = mutex.Unlock()
	}()

	_, err := rsb.client.ZAdd(ctx, boardKey, redis.Z{Score: score, Member: member}).Result()
	if err != nil {
		return err
	}

	if rsb.maxSize > 0 {
		_ = rsb.client.ZRemRangeByRank(ctx, boardKey, rsb.maxSize, -1).Err()
	}

	return nil
}

// Top retrieves up to `amount` members with the lowest scores, best first.
func (rsb *RedisScoreBoard) Top(ctx context.Context, boardKey string, amount int64) ([]dmn.ScoreEntry, error) {
	if amount <= 0 {
		return nil, nil
	}

	ranked, err := rsb.client.ZRangeWithScores(ctx, boardKey, 0, amount-1).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]dmn.ScoreEntry, 0, len(ranked))
	for _, z := range ranked {
		member, ok := z.Member.(string)
		if !ok {
			continue
		}
		entries = append(entries, dmn.ScoreEntry{Member: member, Score: z.Score})
	}
	return entries, nil
}

// Count returns the number of members on the given board.
func (rsb *RedisScoreBoard) Count(ctx context.Context, boardKey string) int64 {
	return rsb.client.ZCard(ctx, boardKey).Val()
}
