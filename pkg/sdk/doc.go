// Package ncosearch embeds the NCO occupation-code search core in-process.
//
// The client owns a store (memory, SQLite, Valkey or Redis), the active
// inverted index, the synonym list and the audit trail:
//
//	client, _ := ncosearch.New(ctx, ncosearch.WithSQLite("data/nco.db"))
//	defer client.Close()
//
//	_, _ = client.IngestFile(ctx, "nco_2015.xlsx")
//	_, _ = client.BuildIndex(ctx)
//	_, _ = client.AddSynonym(ctx, "driver", "chauffeur")
//
//	resp, _ := client.Search(ctx, "chauffeur", 5)
//	for _, r := range resp.Results {
//	    fmt.Println(r.Code, r.Title, r.Confidence)
//	}
//
// Every completed search is appended to the audit trail; read it back with
// Client.Audit.
package ncosearch
