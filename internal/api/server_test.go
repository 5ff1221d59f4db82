package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/airworthy/adcheck/internal/parser"
	"github.com/airworthy/adcheck/internal/snapshot"
	"github.com/airworthy/adcheck/internal/store"
)

const easaDocument = `EASA
European Union Aviation Safety Agency

Emergency Airworthiness Directive
AD No.: 2025-0254R1

Effective Date: 12 December 2025

ATA Chapter: 57, Wings

Applicability:
Airbus A320-214 and A320-232 aeroplanes, all manufacturer serial numbers
(MSN), except those on which Airbus modification (mod) 24591 has been
embodied in production, and except those on which Airbus SB A320-57-1089
at Revision 04 has been embodied in service.

Reason:
Cracks were found on the wing rear spar during scheduled maintenance.
`

func newTestServer(t *testing.T) (*Server, http.Handler, *store.MemoryStore) {
	t.Helper()
	st := store.NewMemoryStore()
	srv := NewServer(st, "dev", "admin-key", zerolog.Nop())
	return srv, srv.Router(), st
}

func seedDirective(t *testing.T, srv *Server, st *store.MemoryStore, text string) {
	t.Helper()
	d, err := parser.ExtractDocument(text)
	if err != nil {
		t.Fatalf("Failed to extract fixture directive: %v", err)
	}
	if err := st.PutDirective(context.Background(), *d); err != nil {
		t.Fatalf("Failed to seed directive: %v", err)
	}
	if err := srv.RebuildSnapshot(context.Background()); err != nil {
		t.Fatalf("Failed to rebuild snapshot: %v", err)
	}
}

func TestHandleHealth(t *testing.T) {
	_, handler, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rr.Code)
	}

	if rr.Body.String() != "ok" {
		t.Errorf("Expected body 'ok', got %s", rr.Body.String())
	}
}

func TestDirectivesEndpoint_Empty(t *testing.T) {
	srv, handler, _ := newTestServer(t)
	srv.RebuildSnapshot(context.Background())

	req := httptest.NewRequest(http.MethodGet, "/v1/directives", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rr.Code)
	}

	var snap snapshot.Snapshot
	if err := json.NewDecoder(rr.Body).Decode(&snap); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if len(snap.Directives) != 0 {
		t.Errorf("Expected 0 directives, got %d", len(snap.Directives))
	}

	if rr.Header().Get("ETag") == "" {
		t.Error("Expected ETag header to be set")
	}
}

func TestDirectivesEndpoint_ETag_NotModified(t *testing.T) {
	srv, handler, st := newTestServer(t)
	seedDirective(t, srv, st, easaDocument)

	req1 := httptest.NewRequest(http.MethodGet, "/v1/directives", nil)
	rr1 := httptest.NewRecorder()
	handler.ServeHTTP(rr1, req1)

	etag := rr1.Header().Get("ETag")
	if etag == "" {
		t.Fatal("ETag not set in response")
	}

	req2 := httptest.NewRequest(http.MethodGet, "/v1/directives", nil)
	req2.Header.Set("If-None-Match", etag)
	rr2 := httptest.NewRecorder()
	handler.ServeHTTP(rr2, req2)

	if rr2.Code != http.StatusNotModified {
		t.Errorf("Expected status 304, got %d", rr2.Code)
	}

	if rr2.Body.Len() != 0 {
		t.Error("Expected empty body for 304 response")
	}
}

func TestGetDirective_Success(t *testing.T) {
	srv, handler, st := newTestServer(t)
	seedDirective(t, srv, st, easaDocument)

	req := httptest.NewRequest(http.MethodGet, "/v1/directives/EASA-2025-0254R1", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}
}

func TestGetDirective_NotFound(t *testing.T) {
	_, handler, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/directives/EASA-9999-0001", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rr.Code)
	}

	var errResp ErrorResponse
	if err := json.NewDecoder(rr.Body).Decode(&errResp); err != nil {
		t.Fatalf("Failed to decode error response: %v", err)
	}
	if errResp.Code != ErrCodeNotFound {
		t.Errorf("Expected code %s, got %s", ErrCodeNotFound, errResp.Code)
	}
}

func TestExtract_Success(t *testing.T) {
	_, handler, st := newTestServer(t)

	body, _ := json.Marshal(extractRequest{Text: easaDocument})
	req := httptest.NewRequest(http.MethodPost, "/v1/directives:extract", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer admin-key")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp extractResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Directive.DirectiveID != "EASA-2025-0254R1" {
		t.Errorf("Expected directive EASA-2025-0254R1, got %s", resp.Directive.DirectiveID)
	}
	if resp.ETag == "" {
		t.Error("Expected ETag in response")
	}

	if _, err := st.GetDirective(context.Background(), "EASA-2025-0254R1"); err != nil {
		t.Errorf("Expected directive in store: %v", err)
	}
}

func TestExtract_ParseFailure(t *testing.T) {
	_, handler, _ := newTestServer(t)

	// EASA document whose applicability section names no aircraft model.
	body := `{"text": "EASA\nAD No.: 2025-0001\n\nApplicability:\nAll aeroplanes of the type design, all MSN.\n\nReason:\n"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/directives:extract", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer admin-key")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("Expected status 422, got %d: %s", rr.Code, rr.Body.String())
	}

	var errResp ErrorResponse
	if err := json.NewDecoder(rr.Body).Decode(&errResp); err != nil {
		t.Fatalf("Failed to decode error response: %v", err)
	}
	if errResp.Code != ErrorCode(parser.ErrNoModels) {
		t.Errorf("Expected code %s, got %s", parser.ErrNoModels, errResp.Code)
	}
	if errResp.Fields["kind"] != string(parser.ErrNoModels) {
		t.Errorf("Expected kind field, got %+v", errResp.Fields)
	}
}

func TestExtract_MissingText(t *testing.T) {
	_, handler, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/directives:extract", bytes.NewBufferString(`{"text": "  "}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer admin-key")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rr.Code)
	}
}

func TestExtract_Unauthorized(t *testing.T) {
	_, handler, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/directives:extract", bytes.NewBufferString(`{"text": "x"}`))
	// No Authorization header
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", rr.Code)
	}
}

func TestExtract_InvalidToken(t *testing.T) {
	_, handler, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/directives:extract", bytes.NewBufferString(`{"text": "x"}`))
	req.Header.Set("Authorization", "Bearer wrong-key")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Errorf("Expected status 403, got %d", rr.Code)
	}
}

func TestEvaluate_WorkedExample(t *testing.T) {
	srv, handler, st := newTestServer(t)
	seedDirective(t, srv, st, easaDocument)

	tests := []struct {
		name         string
		body         string
		wantAffected bool
	}{
		{
			name:         "unmodified A320-214 is affected",
			body:         `{"aircraft": {"aircraftModel": "A320-214", "msn": 4211, "modificationsApplied": []}}`,
			wantAffected: true,
		},
		{
			name:         "mod 24591 embodied escapes",
			body:         `{"aircraft": {"aircraftModel": "A320-214", "msn": 4211, "modificationsApplied": ["mod 24591"]}}`,
			wantAffected: false,
		},
		{
			name:         "unlisted model is not affected",
			body:         `{"aircraft": {"aircraftModel": "A321-111", "msn": 4211, "modificationsApplied": []}}`,
			wantAffected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/v1/evaluate", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			if rr.Code != http.StatusOK {
				t.Fatalf("Expected status 200, got %d: %s", rr.Code, rr.Body.String())
			}

			var resp evaluateResponse
			if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
				t.Fatalf("Failed to decode response: %v", err)
			}
			if len(resp.Decisions) != 1 {
				t.Fatalf("Expected 1 decision, got %d", len(resp.Decisions))
			}
			if resp.Decisions[0].Decision.Affected != tt.wantAffected {
				t.Errorf("Expected affected=%v, got %v (%s)",
					tt.wantAffected, resp.Decisions[0].Decision.Affected, resp.Decisions[0].Decision.Reason)
			}
		})
	}
}

func TestEvaluate_DirectiveFilter(t *testing.T) {
	srv, handler, st := newTestServer(t)
	seedDirective(t, srv, st, easaDocument)

	body := `{
		"aircraft": {"aircraftModel": "A320-214", "msn": 4211, "modificationsApplied": []},
		"directiveIds": ["EASA-0000-0000"]
	}`
	req := httptest.NewRequest(http.MethodPost, "/v1/evaluate", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp evaluateResponse
	json.NewDecoder(rr.Body).Decode(&resp)

	if len(resp.Decisions) != 0 {
		t.Errorf("Expected 0 decisions for unmatched filter, got %d", len(resp.Decisions))
	}
}

func TestEvaluate_InvalidAircraft(t *testing.T) {
	srv, handler, _ := newTestServer(t)
	srv.RebuildSnapshot(context.Background())

	tests := []struct {
		name string
		body string
	}{
		{"empty model", `{"aircraft": {"aircraftModel": "", "msn": 100}}`},
		{"negative msn", `{"aircraft": {"aircraftModel": "A320-214", "msn": -1}}`},
		{"invalid json", `not json`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/v1/evaluate", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			if rr.Code != http.StatusBadRequest {
				t.Errorf("Expected status 400, got %d", rr.Code)
			}
		})
	}
}

func TestETagChangesAfterExtract(t *testing.T) {
	srv, handler, _ := newTestServer(t)
	srv.RebuildSnapshot(context.Background())

	req1 := httptest.NewRequest(http.MethodGet, "/v1/directives", nil)
	rr1 := httptest.NewRecorder()
	handler.ServeHTTP(rr1, req1)
	etag1 := rr1.Header().Get("ETag")

	body, _ := json.Marshal(extractRequest{Text: easaDocument})
	req2 := httptest.NewRequest(http.MethodPost, "/v1/directives:extract", bytes.NewReader(body))
	req2.Header.Set("Content-Type", "application/json")
	req2.Header.Set("Authorization", "Bearer admin-key")
	rr2 := httptest.NewRecorder()
	handler.ServeHTTP(rr2, req2)

	req3 := httptest.NewRequest(http.MethodGet, "/v1/directives", nil)
	rr3 := httptest.NewRecorder()
	handler.ServeHTTP(rr3, req3)
	etag2 := rr3.Header().Get("ETag")

	if etag1 == etag2 {
		t.Error("Expected ETag to change after extraction")
	}
}
