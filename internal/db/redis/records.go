package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/ncosearch/internal/db"
)

// Record snapshots live in generation hashes (code -> JSON row). A single SET
// of the current-generation pointer publishes a fully written snapshot.

func (s *Store) recordsKey(gen int64) string {
	return s.key("records", strconv.FormatInt(gen, 10))
}

// ReplaceRecords writes rows into a fresh generation hash and then points
// the current key at it. The previous generation expires shortly after.
func (s *Store) ReplaceRecords(ctx context.Context, rows []db.RecordRow) error {
	gen, err := s.do(ctx, s.b().Incr().Key(s.key("records", "gen")).Build()).AsInt64()
	if err != nil {
		return &db.Error{Op: db.OpIncr, Err: err}
	}
	genKey := s.recordsKey(gen)

	if len(rows) > 0 {
		cmd := s.b().Hset().Key(genKey).FieldValue()
		for _, r := range rows {
			data, err := json.Marshal(r)
			if err != nil {
				return fmt.Errorf("encode record %s: %w", r.Code, err)
			}
			cmd = cmd.FieldValue(r.Code, string(data))
		}
		if err := s.do(ctx, cmd.Build()).Error(); err != nil {
			return &db.Error{Op: db.OpHSet, Err: err}
		}
	}

	prev, err := s.currentGeneration(ctx)
	if err != nil {
		s.abandonGeneration(ctx, genKey)
		return err
	}

	setCmd := s.b().Set().Key(s.key("records", "current")).Value(strconv.FormatInt(gen, 10)).Build()
	if err := s.do(ctx, setCmd).Error(); err != nil {
		s.abandonGeneration(ctx, genKey)
		return &db.Error{Op: db.OpSet, Err: err}
	}

	if prev > 0 {
		if err := s.expireGeneration(ctx, s.recordsKey(prev)); err != nil {
			return &db.Error{Op: db.OpExpire, Err: err}
		}
	}
	return nil
}

func (s *Store) expireGeneration(ctx context.Context, key string) error {
	cmd := s.b().Expire().Key(key).Seconds(int64(oldGenerationTTL.Seconds())).Build()
	return s.do(ctx, cmd).Error()
}

// abandonGeneration puts a TTL on a generation that was written but never
// published. Best effort: the caller already reports the original failure,
// and it runs even when ctx is cancelled.
func (s *Store) abandonGeneration(ctx context.Context, key string) {
	_ = s.expireGeneration(context.WithoutCancel(ctx), key)
}

// Records returns the rows of the current generation.
func (s *Store) Records(ctx context.Context) ([]db.RecordRow, error) {
	gen, err := s.currentGeneration(ctx)
	if err != nil {
		return nil, err
	}
	if gen == 0 {
		return nil, nil
	}

	m, err := s.do(ctx, s.b().Hgetall().Key(s.recordsKey(gen)).Build()).AsStrMap()
	if err != nil {
		return nil, &db.Error{Op: db.OpHGetAll, Err: err}
	}

	rows := make([]db.RecordRow, 0, len(m))
	for code, raw := range m {
		var r db.RecordRow
		if err := json.Unmarshal([]byte(raw), &r); err != nil {
			return nil, fmt.Errorf("record %s: %w", code, db.ErrCorrupt)
		}
		rows = append(rows, r)
	}
	return rows, nil
}

// currentGeneration returns 0 when nothing has been committed yet.
func (s *Store) currentGeneration(ctx context.Context) (int64, error) {
	v, err := s.do(ctx, s.b().Get().Key(s.key("records", "current")).Build()).ToString()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return 0, nil
		}
		return 0, &db.Error{Op: db.OpGet, Err: err}
	}
	gen, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("records generation %q: %w", v, db.ErrCorrupt)
	}
	return gen, nil
}
