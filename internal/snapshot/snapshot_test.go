package snapshot

import (
	"testing"
	"time"

	"github.com/airworthy/adcheck/internal/rules"
)

func directive(id string) rules.Directive {
	return rules.Directive{
		DirectiveID: id,
		Authority:   rules.AuthorityEASA,
		Rule: rules.DirectiveRule{
			Authority:        rules.AuthorityEASA,
			DirectiveID:      id,
			ApplicableModels: []string{"A320-214"},
			Serials:          rules.AllSerials(),
		},
		ExtractedAt: time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestLoad_EmptyDefault(t *testing.T) {
	// Not updated yet in this test binary unless another test ran first;
	// either way Load must never return nil.
	if Load() == nil {
		t.Fatal("Load returned nil")
	}
}

func TestBuild_ETagIsContentAddressed(t *testing.T) {
	a := Build([]rules.Directive{directive("EASA-2025-0254R1")})
	b := Build([]rules.Directive{directive("EASA-2025-0254R1")})
	if a.ETag != b.ETag {
		t.Fatalf("identical content produced different ETags: %s vs %s", a.ETag, b.ETag)
	}

	c := Build([]rules.Directive{directive("EASA-2025-0254R1"), directive("FAA-2025-23-53")})
	if c.ETag == a.ETag {
		t.Fatal("different content produced the same ETag")
	}

	empty := Build(nil)
	if empty.ETag == "" || len(empty.Directives) != 0 {
		t.Fatalf("empty build: %+v", empty)
	}
}

func TestUpdateLoadRoundtrip(t *testing.T) {
	s := Build([]rules.Directive{directive("FAA-2025-23-53")})
	Update(s)

	got := Load()
	if got.ETag != s.ETag {
		t.Fatalf("Load after Update: got %s, want %s", got.ETag, s.ETag)
	}
	if len(got.Directives) != 1 || got.Directives[0].DirectiveID != "FAA-2025-23-53" {
		t.Fatalf("unexpected directives: %+v", got.Directives)
	}
}
