package handler

import (
	"context"
	"net/http"

	"github.com/aperture/labour-hours/internal/labour/domain"
	"github.com/aperture/labour-hours/internal/labour/repository"
	"github.com/aperture/labour-hours/pkg/errors"
	"github.com/aperture/labour-hours/pkg/httputil"
	"github.com/aperture/labour-hours/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// BatchProcessor summarizes a batch document
type BatchProcessor interface {
	Process(ctx context.Context, doc *domain.Document) (*domain.Run, error)
}

// RunReader reads stored runs
type RunReader interface {
	GetRun(ctx context.Context, id string) (*repository.RunRecord, error)
	ListEntries(ctx context.Context, runID string) ([]*repository.EntryRecord, error)
}

// LabourHandler handles labour summary endpoints
type LabourHandler struct {
	processor BatchProcessor
	runs      RunReader
	logger    *logger.Logger
}

// NewLabourHandler creates a new labour handler. runs may be nil when no
// database is configured, in which case stored runs are not served.
func NewLabourHandler(processor BatchProcessor, runs RunReader, log *logger.Logger) *LabourHandler {
	return &LabourHandler{
		processor: processor,
		runs:      runs,
		logger:    log,
	}
}

// Routes registers the labour endpoints
func (h *LabourHandler) Routes(r chi.Router) {
	r.Post("/summaries", h.CreateSummaries)
	if h.runs != nil {
		r.Get("/runs/{id}", h.GetRun)
	}
}

// SummariesResponse is the result of a summaries request
type SummariesResponse struct {
	RunID     string                   `json:"run_id"`
	Employees []domain.EmployeeSummary `json:"employees"`
	Stats     domain.RunStats          `json:"stats"`
}

// CreateSummaries summarizes the posted batch document
// POST /api/v1/labour/summaries
func (h *LabourHandler) CreateSummaries(w http.ResponseWriter, r *http.Request) {
	var doc domain.Document
	if err := httputil.DecodeJSON(r, &doc); err != nil {
		httputil.Error(w, err)
		return
	}

	requestID := httputil.GetRequestID(r.Context())

	run, err := h.processor.Process(r.Context(), &doc)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Str("request_id", requestID).
			Str("subject", httputil.GetSubject(r.Context())).
			Msg("labour batch failed")
		httputil.Error(w, err)
		return
	}

	httputil.JSONWithMeta(w, http.StatusOK, SummariesResponse{
		RunID:     run.ID,
		Employees: run.Employees,
		Stats:     run.Stats,
	}, &httputil.Meta{RequestID: requestID})
}

// RunResponse is a stored run with its entries
type RunResponse struct {
	Run     *repository.RunRecord     `json:"run"`
	Entries []*repository.EntryRecord `json:"entries"`
}

// GetRun returns a stored run
// GET /api/v1/labour/runs/{id}
func (h *LabourHandler) GetRun(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		httputil.Error(w, errors.BadRequest("invalid run id"))
		return
	}

	run, err := h.runs.GetRun(r.Context(), id)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	entries, err := h.runs.ListEntries(r.Context(), id)
	if err != nil {
		h.logger.Error().Err(err).Str("run_id", id).Msg("failed to list labour entries")
		httputil.Error(w, err)
		return
	}
	if entries == nil {
		entries = []*repository.EntryRecord{}
	}

	httputil.JSONWithMeta(w, http.StatusOK, RunResponse{Run: run, Entries: entries},
		&httputil.Meta{RequestID: httputil.GetRequestID(r.Context())})
}
