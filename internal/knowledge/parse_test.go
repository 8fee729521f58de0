package knowledge

import (
	"bytes"
	"strings"
	"testing"
)

const sampleDoc = `{
  "variables": {"name": "Variables and Types", "prerequisites": []},
  "conditionals": {"name": "Conditionals", "prerequisites": ["variables"]},
  "loops": {"name": "Loops", "prerequisites": ["variables"]},
  "functions": {"name": "Functions", "prerequisites": ["conditionals", "loops"]}
}`

func TestParseJSON_PreservesKeyOrder(t *testing.T) {
	g, err := ParseJSON(strings.NewReader(sampleDoc))
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}

	want := []string{"variables", "conditionals", "loops", "functions"}
	got := g.IDs()
	if len(got) != len(want) {
		t.Fatalf("IDs = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("IDs[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	s, ok := g.Skill("functions")
	if !ok {
		t.Fatal("skill \"functions\" not found")
	}
	if len(s.Prerequisites) != 2 {
		t.Errorf("functions prerequisites = %v, want 2 entries", s.Prerequisites)
	}
}

func TestParseJSON_RejectsMalformedDocuments(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not an object", `["a", "b"]`},
		{"truncated", `{"a": {"name": "A",`},
		{"dangling prerequisite", `{"a": {"name": "A", "prerequisites": ["ghost"]}}`},
		{"empty object", `{}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseJSON(strings.NewReader(tt.doc)); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestEncodeJSON_RoundTrip(t *testing.T) {
	g, err := ParseJSON(strings.NewReader(sampleDoc))
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}

	var buf bytes.Buffer
	if err := g.EncodeJSON(&buf); err != nil {
		t.Fatalf("EncodeJSON: %v", err)
	}

	again, err := ParseJSON(&buf)
	if err != nil {
		t.Fatalf("ParseJSON(round-trip): %v", err)
	}

	if again.Len() != g.Len() {
		t.Fatalf("round-trip Len = %d, want %d", again.Len(), g.Len())
	}
	gotIDs, wantIDs := again.IDs(), g.IDs()
	for i := range wantIDs {
		if gotIDs[i] != wantIDs[i] {
			t.Errorf("round-trip IDs[%d] = %q, want %q", i, gotIDs[i], wantIDs[i])
		}
	}
}
