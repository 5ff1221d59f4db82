package rules

import "testing"

func TestNormalizeToken(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "mod canonical already", in: "mod 24591", want: "mod 24591"},
		{name: "mod long form", in: "Modification 24591", want: "mod 24591"},
		{name: "mod extra whitespace", in: "  mod   24591 ", want: "mod 24591"},
		{name: "mod with marker", in: "modification (mod) 24591", want: "mod 24591"},
		{name: "sb bare number", in: "A320-57-1089", want: "SB A320-57-1089"},
		{name: "sb lower case with rev", in: "sb a320-57-1089 rev 04", want: "SB A320-57-1089 Rev 04"},
		{name: "sb revision long form", in: "SB A320-57-1089 Revision 04", want: "SB A320-57-1089 Rev 04"},
		{name: "sb manufacturer prefix", in: "Airbus SB A320-57-1060", want: "SB A320-57-1060"},
		{name: "unknown token collapses whitespace", in: "  some   other  ref ", want: "some other ref"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeToken(tt.in); got != tt.want {
				t.Fatalf("NormalizeToken(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeModel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "A320-214", want: "A320-214"},
		{in: " a320-214 ", want: "A320-214"},
		{in: "A320–214", want: "A320-214"},
		{in: "MD 11F", want: "MD-11F"},
	}

	for _, tt := range tests {
		if got := NormalizeModel(tt.in); got != tt.want {
			t.Fatalf("NormalizeModel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeModelsDedupes(t *testing.T) {
	got := NormalizeModels([]string{"A320-214", "a320-214", "A321-111", ""})
	want := []string{"A320-214", "A321-111"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestNewAircraftConfig(t *testing.T) {
	ac, err := NewAircraftConfig("a320-214", 5000, []string{"Modification 24591", "mod 24591", "sb a320-57-1089 rev 04"})
	if err != nil {
		t.Fatalf("NewAircraftConfig: %v", err)
	}
	if ac.Model != "A320-214" {
		t.Errorf("model: got %q, want A320-214", ac.Model)
	}
	if len(ac.Modifications) != 2 {
		t.Fatalf("modifications: got %v, want 2 entries (dedup)", ac.Modifications)
	}
	if !ac.HasModification("mod 24591") {
		t.Error("expected mod 24591 membership")
	}
	if !ac.HasModification("SB A320-57-1089 Rev 04") {
		t.Error("expected SB token membership")
	}
	if ac.HasModification("mod 24977") {
		t.Error("unexpected mod 24977 membership")
	}

	if _, err := NewAircraftConfig("   ", 1, nil); err == nil {
		t.Fatal("empty model should be rejected at construction")
	}
	if _, err := NewAircraftConfig("A320-214", -1, nil); err == nil {
		t.Fatal("negative MSN should be rejected at construction")
	}
}
