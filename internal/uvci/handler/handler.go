// Package handler exposes the inspection service and the record serializers
// over HTTP.
package handler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"uvci/internal/uvci"
	"uvci/internal/uvci/export"
	"uvci/internal/uvci/models"
	"uvci/pkg/platform/httputil"
	"uvci/pkg/platform/sentinel"
	"uvci/pkg/requestcontext"
)

const (
	contentTypeCSV  = "text/csv; charset=utf-8"
	contentTypeText = "text/plain; charset=utf-8"
)

// Service defines the interface for inspection operations.
type Service interface {
	Inspect(ctx context.Context, raw string) (*models.Inspection, error)
	InspectBatch(ctx context.Context, raws []string) ([]models.Inspection, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Inspection, error)
	History(ctx context.Context, opaqueID string) ([]*models.Inspection, error)
	Graph(ctx context.Context, raws []string) string
}

// Handler wires inspection endpoints to the service.
type Handler struct {
	service      Service
	logger       *slog.Logger
	maxBatchSize int
}

// New constructs an inspection handler. maxBatchSize caps the identifiers of
// one batch, CSV or graph request.
func New(service Service, logger *slog.Logger, maxBatchSize int) *Handler {
	return &Handler{
		service:      service,
		logger:       logger,
		maxBatchSize: maxBatchSize,
	}
}

// Register mounts inspection endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/uvci", func(r chi.Router) {
		r.Post("/inspect", h.HandleInspect)
		r.Post("/inspect/batch", h.HandleInspectBatch)
		r.Post("/csv", h.HandleCSV)
		r.Post("/listing", h.HandleListing)
		r.Post("/graph", h.HandleGraph)
		r.Get("/inspections/{id}", h.HandleGetInspection)
		r.Get("/opaque/{opaqueID}/inspections", h.HandleHistory)
	})
}

// HandleInspect handles POST /uvci/inspect requests.
func (h *Handler) HandleInspect(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[InspectRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	insp, err := h.service.Inspect(ctx, req.Value())
	if err != nil {
		h.logger.ErrorContext(ctx, "inspection failed",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, FromInspection(insp))
}

// HandleInspectBatch handles POST /uvci/inspect/batch requests.
func (h *Handler) HandleInspectBatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := h.decodeBatch(w, r)
	if !ok {
		return
	}

	inspections, err := h.service.InspectBatch(ctx, req.UVCIs)
	if err != nil {
		h.logger.ErrorContext(ctx, "batch inspection failed",
			"request_id", requestID,
			"batch_size", len(req.UVCIs),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	resp := FromBatch(inspections)
	h.logger.InfoContext(ctx, "batch inspected",
		"request_id", requestID,
		"batch_size", resp.Count,
		"verified", resp.Verified,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, resp)
}

// HandleCSV handles POST /uvci/csv requests.
func (h *Handler) HandleCSV(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeBatch(w, r)
	if !ok {
		return
	}

	recs := make([]uvci.Record, len(req.UVCIs))
	for i, raw := range req.UVCIs {
		recs[i] = uvci.Parse(raw)
	}
	httputil.WriteText(w, http.StatusOK, contentTypeCSV, export.CSVTable(recs, req.Compact, req.Header))
}

// HandleListing handles POST /uvci/listing requests.
func (h *Handler) HandleListing(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[InspectRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	httputil.WriteText(w, http.StatusOK, contentTypeText, export.Listing(uvci.Parse(req.Value())))
}

// HandleGraph handles POST /uvci/graph requests.
func (h *Handler) HandleGraph(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeBatch(w, r)
	if !ok {
		return
	}
	httputil.WriteText(w, http.StatusOK, contentTypeText, h.service.Graph(r.Context(), req.UVCIs))
}

// HandleGetInspection handles GET /uvci/inspections/{id} requests.
func (h *Handler) HandleGetInspection(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, fmt.Errorf("%w: id must be a UUID", sentinel.ErrInvalidInput))
		return
	}

	insp, err := h.service.Get(ctx, id)
	if err != nil {
		h.logger.WarnContext(ctx, "inspection lookup failed",
			"request_id", requestcontext.RequestID(ctx),
			"inspection_id", id,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromInspection(insp))
}

// HandleHistory handles GET /uvci/opaque/{opaqueID}/inspections requests.
func (h *Handler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	opaqueID := chi.URLParam(r, "opaqueID")

	found, err := h.service.History(ctx, opaqueID)
	if err != nil {
		h.logger.ErrorContext(ctx, "history lookup failed",
			"request_id", requestcontext.RequestID(ctx),
			"opaque_id", opaqueID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	resp := HistoryResponse{OpaqueID: opaqueID, Inspections: make([]InspectionResponse, len(found))}
	for i, insp := range found {
		resp.Inspections[i] = FromInspection(insp)
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) decodeBatch(w http.ResponseWriter, r *http.Request) (*BatchRequest, bool) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[BatchRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return nil, false
	}
	if len(req.UVCIs) > h.maxBatchSize {
		h.logger.WarnContext(ctx, "batch too large",
			"request_id", requestID,
			"batch_size", len(req.UVCIs),
			"max_batch_size", h.maxBatchSize,
		)
		httputil.WriteError(w, fmt.Errorf("%w: at most %d identifiers per request", sentinel.ErrInvalidInput, h.maxBatchSize))
		return nil, false
	}
	return req, true
}
