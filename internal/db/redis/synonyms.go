package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/kailas-cloud/ncosearch/internal/db"
)

// AddSynonym assigns the next sequence number and stores the row under its id.
func (s *Store) AddSynonym(ctx context.Context, row db.SynonymRow) (db.SynonymRow, error) {
	seq, err := s.do(ctx, s.b().Incr().Key(s.key("synonyms", "seq")).Build()).AsInt64()
	if err != nil {
		return db.SynonymRow{}, &db.Error{Op: db.OpIncr, Err: err}
	}
	row.Seq = seq

	data, err := json.Marshal(row)
	if err != nil {
		return db.SynonymRow{}, fmt.Errorf("encode synonym: %w", err)
	}
	cmd := s.b().Hset().Key(s.key("synonyms")).FieldValue().FieldValue(row.ID, string(data)).Build()
	if err := s.do(ctx, cmd).Error(); err != nil {
		return db.SynonymRow{}, &db.Error{Op: db.OpHSet, Err: err}
	}
	return row, nil
}

// Synonyms returns every row ordered by sequence.
func (s *Store) Synonyms(ctx context.Context) ([]db.SynonymRow, error) {
	m, err := s.do(ctx, s.b().Hgetall().Key(s.key("synonyms")).Build()).AsStrMap()
	if err != nil {
		return nil, &db.Error{Op: db.OpHGetAll, Err: err}
	}

	rows := make([]db.SynonymRow, 0, len(m))
	for id, raw := range m {
		var r db.SynonymRow
		if err := json.Unmarshal([]byte(raw), &r); err != nil {
			return nil, fmt.Errorf("synonym %s: %w", id, db.ErrCorrupt)
		}
		rows = append(rows, r)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Seq < rows[j].Seq })
	return rows, nil
}

// DeleteSynonym removes the row; HDEL of a missing field is a no-op.
func (s *Store) DeleteSynonym(ctx context.Context, id string) error {
	cmd := s.b().Hdel().Key(s.key("synonyms")).Field(id).Build()
	if err := s.do(ctx, cmd).Error(); err != nil {
		return &db.Error{Op: db.OpHDel, Err: err}
	}
	return nil
}
