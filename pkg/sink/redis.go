package sink

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const progressTTL = 7 * 24 * time.Hour

// Progress mirrors a gauntlet's running win/loss/draw tallies in Redis, so
// several hosts pulling games from the same openings cursor can report to
// and resume from one shared counter set instead of each keeping its own
// local resume file.
type Progress struct {
	rdb *redis.Client
	run string // run name, namespaces all keys for one gauntlet
}

// NewProgress wraps an already-constructed client under the given run name.
func NewProgress(rdb *redis.Client, run string) *Progress {
	return &Progress{rdb: rdb, run: run}
}

func (p *Progress) key(suffix string) string {
	return fmt.Sprintf("arbiter:run:%s:%s", p.run, suffix)
}

// RecordResult atomically bumps the win/loss/draw counters for engineIdx.
func (p *Progress) RecordResult(ctx context.Context, engineIdx int, wins, losses, draws int) error {
	pipe := p.rdb.TxPipeline()
	idx := strconv.Itoa(engineIdx)
	pipe.HIncrBy(ctx, p.key("wins"), idx, int64(wins))
	pipe.HIncrBy(ctx, p.key("losses"), idx, int64(losses))
	pipe.HIncrBy(ctx, p.key("draws"), idx, int64(draws))
	for _, k := range []string{"wins", "losses", "draws"} {
		pipe.Expire(ctx, p.key(k), progressTTL)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("sink: recording result: %w", err)
	}
	return nil
}

// Score returns the current win/loss/draw tally for engineIdx.
func (p *Progress) Score(ctx context.Context, engineIdx int) (wins, losses, draws int, err error) {
	idx := strconv.Itoa(engineIdx)
	w, err := p.rdb.HGet(ctx, p.key("wins"), idx).Int()
	if err != nil && err != redis.Nil {
		return 0, 0, 0, err
	}
	l, err := p.rdb.HGet(ctx, p.key("losses"), idx).Int()
	if err != nil && err != redis.Nil {
		return 0, 0, 0, err
	}
	d, err := p.rdb.HGet(ctx, p.key("draws"), idx).Int()
	if err != nil && err != redis.Nil {
		return 0, 0, 0, err
	}
	return w, l, d, nil
}

// AdvanceCursor persists the openings cursor position so a restarted
// worker resumes from the same point instead of replaying openings.
func (p *Progress) AdvanceCursor(ctx context.Context, pos int64) error {
	return p.rdb.Set(ctx, p.key("cursor"), pos, progressTTL).Err()
}

// Cursor returns the last persisted openings cursor position, or 0 if none
// has been recorded yet.
func (p *Progress) Cursor(ctx context.Context) (int64, error) {
	pos, err := p.rdb.Get(ctx, p.key("cursor")).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	return pos, err
}
