package audit

import (
	"github.com/kailas-cloud/ncosearch/internal/db"
	domaudit "github.com/kailas-cloud/ncosearch/internal/domain/audit"
)

func toRow(e *domaudit.Entry) db.AuditRow {
	hits := e.Hits()
	results := make([]db.AuditResultRow, len(hits))
	for i, h := range hits {
		results[i] = db.AuditResultRow{Code: h.Code, Title: h.Title, Confidence: h.Confidence}
	}
	return db.AuditRow{
		ID:       e.ID(),
		At:       e.At(),
		Query:    e.Query(),
		Expanded: e.Expanded(),
		TopK:     e.TopK(),
		Results:  results,
	}
}

func fromRow(row *db.AuditRow) domaudit.Entry {
	hits := make([]domaudit.Hit, len(row.Results))
	for i, r := range row.Results {
		hits[i] = domaudit.Hit{Code: r.Code, Title: r.Title, Confidence: r.Confidence}
	}
	return domaudit.New(row.ID, row.At, row.Query, row.Expanded, row.TopK, hits)
}
