package synonym

import (
	"github.com/kailas-cloud/ncosearch/internal/db"
	domsyn "github.com/kailas-cloud/ncosearch/internal/domain/synonym"
)

func toRow(e *domsyn.Entry) db.SynonymRow {
	return db.SynonymRow{ID: e.ID(), For: e.For(), Term: e.Term(), CreatedAt: e.CreatedAt()}
}

func fromRow(row db.SynonymRow) domsyn.Entry {
	return domsyn.Reconstruct(row.ID, row.For, row.Term, row.CreatedAt)
}
