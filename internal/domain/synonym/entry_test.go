package synonym

import (
	"reflect"
	"strings"
	"testing"
)

func TestNew_Valid(t *testing.T) {
	e, err := New("s1", "  Driver ", " Motor-car Chauffeur ", 1700000000000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.For() != "Driver" || e.Term() != "Motor-car Chauffeur" {
		t.Errorf("For/Term = %q/%q", e.For(), e.Term())
	}
	if !reflect.DeepEqual(e.AnchorTokens(), []string{"driver"}) {
		t.Errorf("AnchorTokens() = %v", e.AnchorTokens())
	}
	if !reflect.DeepEqual(e.TermTokens(), []string{"motor", "car", "chauffeur"}) {
		t.Errorf("TermTokens() = %v", e.TermTokens())
	}
	if e.CreatedAt() != 1700000000000 {
		t.Errorf("CreatedAt() = %d", e.CreatedAt())
	}
}

func TestNew_Blank(t *testing.T) {
	tests := []struct {
		name, anchor, term string
	}{
		{"blank for", "   ", "chauffeur"},
		{"blank term", "driver", "\t"},
		{"both blank", "", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := New("s1", tc.anchor, tc.term, 0); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestNew_MissingID(t *testing.T) {
	if _, err := New("", "driver", "chauffeur", 0); err == nil {
		t.Fatal("expected error for empty ID")
	}
}

func TestNew_TooLong(t *testing.T) {
	_, err := New("s1", "driver", strings.Repeat("x", MaxTermLength+1), 0)
	if err == nil || !strings.Contains(err.Error(), "too long") {
		t.Fatalf("expected too long error, got %v", err)
	}
}
