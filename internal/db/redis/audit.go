package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/kailas-cloud/ncosearch/internal/db"
)

// AppendAudit pushes the row onto the audit list. RPUSH is atomic, so
// concurrent appends never interleave.
func (s *Store) AppendAudit(ctx context.Context, row db.AuditRow) error {
	data, err := json.Marshal(row)
	if err != nil {
		return fmt.Errorf("encode audit: %w", err)
	}
	cmd := s.b().Rpush().Key(s.key("audit")).Element(string(data)).Build()
	if err := s.do(ctx, cmd).Error(); err != nil {
		return &db.Error{Op: db.OpRPush, Err: err}
	}
	return nil
}

// AuditEntries returns the newest limit rows, oldest first.
func (s *Store) AuditEntries(ctx context.Context, limit int) ([]db.AuditRow, error) {
	start := int64(0)
	if limit > 0 {
		start = -int64(limit)
	}
	cmd := s.b().Lrange().Key(s.key("audit")).Start(start).Stop(-1).Build()
	items, err := s.do(ctx, cmd).AsStrSlice()
	if err != nil {
		return nil, &db.Error{Op: db.OpLRange, Err: err}
	}

	rows := make([]db.AuditRow, 0, len(items))
	for i, raw := range items {
		var r db.AuditRow
		if err := json.Unmarshal([]byte(raw), &r); err != nil {
			return nil, fmt.Errorf("audit item %d: %w", i, db.ErrCorrupt)
		}
		rows = append(rows, r)
	}
	return rows, nil
}
