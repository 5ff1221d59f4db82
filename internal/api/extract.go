package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/airworthy/adcheck/internal/parser"
	"github.com/airworthy/adcheck/internal/rules"
	"github.com/airworthy/adcheck/internal/snapshot"
	"github.com/airworthy/adcheck/internal/telemetry"
)

type extractRequest struct {
	// Text is the raw directive document (full AD text, or at least the
	// applicability section with the AD number present).
	Text string `json:"text"`
}

type extractResponse struct {
	Directive rules.Directive `json:"directive"`
	Warnings  []string        `json:"warnings,omitempty"`
	ETag      string          `json:"etag"`
}

func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	var req extractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequestError(w, r, ErrCodeInvalidJSON, "invalid JSON")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		BadRequestError(w, r, ErrCodeValidation, "text is required")
		return
	}

	doc, err := parser.ExtractDocument(req.Text)
	if err != nil {
		var perr *parser.ParseError
		if errors.As(err, &perr) {
			telemetry.ObserveParse(string(perr.Authority), "error")
			fields := map[string]string{"kind": string(perr.Kind)}
			if perr.Span != "" {
				fields["span"] = perr.Span
			}
			UnprocessableError(w, r, ErrorCode(perr.Kind), perr.Error(), fields)
			return
		}
		telemetry.ObserveParse(string(rules.AuthorityUnknown), "error")
		UnprocessableError(w, r, ErrCodeParseFailed, err.Error(), nil)
		return
	}
	telemetry.ObserveParse(string(doc.Authority), "ok")

	if err := s.store.PutDirective(r.Context(), *doc); err != nil {
		s.log.Error().Err(err).Str("directive_id", doc.DirectiveID).Msg("directive store failed")
		InternalError(w, r, "directive store failed")
		return
	}
	if err := s.RebuildSnapshot(r.Context()); err != nil {
		s.log.Error().Err(err).Msg("snapshot rebuild failed")
		InternalError(w, r, "snapshot rebuild failed")
		return
	}

	writeJSON(w, http.StatusOK, extractResponse{
		Directive: *doc,
		Warnings:  doc.Rule.Warnings,
		ETag:      snapshot.Load().ETag,
	})
}
