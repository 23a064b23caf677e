package record

import (
	"github.com/kailas-cloud/ncosearch/internal/db"
	"github.com/kailas-cloud/ncosearch/internal/domain/vocabulary"
)

func toRow(r *vocabulary.Record) db.RecordRow {
	return db.RecordRow{
		Code:        r.Code(),
		Title:       r.Title(),
		Description: r.Description(),
		Path:        r.Path(),
	}
}

func fromRow(row db.RecordRow) vocabulary.Record {
	return vocabulary.Reconstruct(row.Code, row.Title, row.Description, row.Path)
}
