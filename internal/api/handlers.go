package api

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"pitos/domain/core"
	domain "pitos/domain/pitos"
	"pitos/domain/run"
	"pitos/internal/errors"
)

const defaultRunsLimit = 50

// TestRequest is the body of POST /v1/test. Omitting pairs selects the
// default weighted Halton sequence; an explicit empty list is rejected.
type TestRequest struct {
	Sample       []float64 `json:"sample"`
	Pairs        [][]int   `json:"pairs,omitempty"`
	IncludePairs bool      `json:"include_pairs,omitempty"`
}

// BatchRequest is the body of POST /v1/batch
type BatchRequest struct {
	Rows [][]float64 `json:"rows"`
}

// RunResponse is one run ledger entry
type RunResponse struct {
	RunID      core.RunID `json:"run_id"`
	Kind       run.Kind   `json:"kind"`
	SampleSize int        `json:"sample_size,omitempty"`
	PairCount  int        `json:"pair_count,omitempty"`
	RowCount   int        `json:"row_count"`
	PValue     float64    `json:"p_value"`
	Rejected   int        `json:"rejected"`
	RuntimeMs  int64      `json:"runtime_ms"`
	CreatedAt  time.Time  `json:"created_at"`
}

func newRunResponse(r run.Record) RunResponse {
	return RunResponse{
		RunID:      r.RunID,
		Kind:       r.Kind,
		SampleSize: r.SampleSize,
		PairCount:  r.PairCount,
		RowCount:   r.RowCount,
		PValue:     r.PValue,
		Rejected:   r.Rejected,
		RuntimeMs:  r.RuntimeMs,
		CreatedAt:  r.CreatedAt,
	}
}

// ErrorResponse is returned for every failed request
type ErrorResponse struct {
	Code  string `json:"code"`
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleTest(w http.ResponseWriter, r *http.Request) {
	var req TestRequest
	if !s.decode(w, r, &req) {
		return
	}

	pairs, err := pairsFromRequest(req.Pairs)
	if err != nil {
		s.writeError(w, err)
		return
	}

	report, err := s.tester.Test(r.Context(), req.Sample, pairs, req.IncludePairs)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, report)
}

// pairsFromRequest keeps nil as nil so an omitted list selects the default sequence.
func pairsFromRequest(raw [][]int) (domain.PairSequence, error) {
	if raw == nil {
		return nil, nil
	}
	idx := make([][2]int, len(raw))
	for i, p := range raw {
		if len(p) != 2 {
			return nil, errors.Newf(errors.CodeInvalidInput, "pair %d must have exactly 2 indices, got %d", i, len(p))
		}
		idx[i] = [2]int{p[0], p[1]}
	}
	return domain.PairsFromIndices(idx), nil
}

func (s *Server) handleBatch(w http.ResponseWriter, r *http.Request) {
	var req BatchRequest
	if !s.decode(w, r, &req) {
		return
	}

	report, err := s.tester.RunBatch(r.Context(), req.Rows)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	id, err := core.ParseRunID(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, errors.WithCode(errors.CodeInvalidInput, err))
		return
	}

	rec, err := s.config.Runs.GetRun(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, newRunResponse(*rec))
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	limit := defaultRunsLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			s.writeError(w, errors.Newf(errors.CodeInvalidInput, "limit must be a positive integer, got %q", v))
			return
		}
		limit = n
	}

	recs, err := s.config.Runs.ListRuns(r.Context(), limit)
	if err != nil {
		s.writeError(w, err)
		return
	}

	out := make([]RunResponse, len(recs))
	for i, rec := range recs {
		out[i] = newRunResponse(rec)
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"runs": out})
}

// decode reads a size-limited JSON body into v and writes the error response on failure
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, s.config.MaxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			s.writeJSON(w, http.StatusRequestEntityTooLarge, ErrorResponse{
				Code:  errors.CodeInvalidInput,
				Error: "request body too large",
			})
			return false
		}
		s.writeError(w, errors.Wrap(errors.WithCode(errors.CodeInvalidInput, err), "invalid request body"))
		return false
	}
	return true
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.IsInvalid(err):
		status = http.StatusBadRequest
	case errors.HasCode(err, errors.CodeNotFound):
		status = http.StatusNotFound
	default:
		s.logger.Error("request failed", "error", err)
	}
	s.writeJSON(w, status, ErrorResponse{Code: errors.GetCode(err), Error: err.Error()})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to write response", "status", status, "error", err)
	}
}
