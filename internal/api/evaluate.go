package api

import (
	"encoding/json"
	"net/http"

	"github.com/airworthy/adcheck/internal/engine"
	"github.com/airworthy/adcheck/internal/rules"
	"github.com/airworthy/adcheck/internal/snapshot"
	"github.com/airworthy/adcheck/internal/telemetry"
)

type evaluateRequest struct {
	Aircraft struct {
		Model         string   `json:"aircraftModel"`
		MSN           int      `json:"msn"`
		Modifications []string `json:"modificationsApplied"`
	} `json:"aircraft"`
	// DirectiveIDs restricts evaluation to the named directives.
	// Empty means every directive in the snapshot.
	DirectiveIDs []string `json:"directiveIds,omitempty"`
}

type evaluateResponse struct {
	Aircraft  rules.AircraftConfig       `json:"aircraft"`
	Decisions []engine.DirectiveDecision `json:"decisions"`
	ETag      string                     `json:"etag"`
}

func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var req evaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequestError(w, r, ErrCodeInvalidJSON, "invalid JSON")
		return
	}

	aircraft, err := rules.NewAircraftConfig(req.Aircraft.Model, req.Aircraft.MSN, req.Aircraft.Modifications)
	if err != nil {
		BadRequestError(w, r, ErrCodeInvalidAircraft, err.Error())
		return
	}

	snap := snapshot.Load()
	decisions := engine.EvaluateAll(aircraft, snap.Directives, req.DirectiveIDs)
	for _, d := range decisions {
		telemetry.ObserveEvaluation(d.Decision.Affected)
	}

	writeJSON(w, http.StatusOK, evaluateResponse{
		Aircraft:  *aircraft,
		Decisions: decisions,
		ETag:      snap.ETag,
	})
}
