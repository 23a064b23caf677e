package audit

import "testing"

func TestNew_CopiesHits(t *testing.T) {
	hits := []Hit{{Code: "A2", Title: "Driver", Confidence: 1}}
	e := New("a1", 1700000000000, "driver", "driver", 5, hits)

	hits[0].Code = "mutated"

	if e.Hits()[0].Code != "A2" {
		t.Error("hits mutation leaked into entry")
	}
	if e.Query() != "driver" || e.TopK() != 5 || e.At() != 1700000000000 {
		t.Errorf("unexpected entry: %+v", e)
	}
}

func TestNew_NoHits(t *testing.T) {
	e := New("a1", 0, "zzz", "zzz", 5, nil)
	if e.Hits() != nil {
		t.Errorf("Hits() = %v, want nil", e.Hits())
	}
}
