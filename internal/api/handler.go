package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/emicklei/go-restful/v3"
	"github.com/rs/zerolog"

	"github.com/genieai/rag-eval-agent/internal/api/middleware"
	"github.com/genieai/rag-eval-agent/internal/executor"
	"github.com/genieai/rag-eval-agent/internal/models"
	"github.com/genieai/rag-eval-agent/internal/runner"
	"github.com/genieai/rag-eval-agent/internal/store"
)

// RunService is the slice of the run controller the API depends on.
type RunService interface {
	Run(ctx context.Context, opts runner.RunOptions) (models.RunSummary, error)
	ReEvaluate(ctx context.Context, key models.TurnKey) (models.EvaluationRecord, error)
}

type Handler struct {
	controller RunService
	logger     *zerolog.Logger
}

func NewHandler(controller RunService, logger *zerolog.Logger) *Handler {
	return &Handler{
		controller: controller,
		logger:     logger,
	}
}

type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// RunRequest triggers a batch run. StartDate/EndDate use the
// "2006-01-02" layout; supplying both bypasses the schedule gate.
type RunRequest struct {
	GuestMode bool   `json:"guest_mode"`
	Limit     int    `json:"limit"`
	Force     bool   `json:"force"`
	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`
}

// ReEvaluateRequest identifies one stored turn to score again.
type ReEvaluateRequest struct {
	ChatID    string `json:"chat_id"`
	MessageID string `json:"message_id"`
	GuestMode bool   `json:"guest_mode"`
}

// POST /api/v1/runs
func (h *Handler) Run(req *restful.Request, resp *restful.Response) {
	var runRequest RunRequest
	if err := req.ReadEntity(&runRequest); err != nil {
		h.logger.Error().Err(err).Msg("Failed to parse request body")
		middleware.HandleError(resp, err, http.StatusBadRequest)
		return
	}

	opts := runner.RunOptions{
		GuestMode:  runRequest.GuestMode,
		Limit:      runRequest.Limit,
		DateFilter: true,
		Force:      runRequest.Force,
	}

	if runRequest.StartDate != "" || runRequest.EndDate != "" {
		start, err := time.Parse("2006-01-02", runRequest.StartDate)
		if err != nil {
			middleware.HandleError(resp, errors.New("start_date must use the 2006-01-02 layout"), http.StatusBadRequest)
			return
		}
		end, err := time.Parse("2006-01-02", runRequest.EndDate)
		if err != nil {
			middleware.HandleError(resp, errors.New("end_date must use the 2006-01-02 layout"), http.StatusBadRequest)
			return
		}
		if !end.After(start) {
			middleware.HandleError(resp, errors.New("end_date must be after start_date"), http.StatusBadRequest)
			return
		}
		opts.Start = start
		opts.End = end
	}

	h.logger.Info().
		Bool("guest_mode", opts.GuestMode).
		Int("limit", opts.Limit).
		Bool("force", opts.Force).
		Msg("Starting evaluation run")

	summary, err := h.controller.Run(req.Request.Context(), opts)
	if err != nil {
		h.logger.Error().Err(err).Msg("Evaluation run failed")
		middleware.HandleError(resp, err, http.StatusInternalServerError)
		return
	}

	resp.WriteHeaderAndEntity(http.StatusOK, summary)
}

// POST /api/v1/evaluations
func (h *Handler) ReEvaluate(req *restful.Request, resp *restful.Response) {
	var reRequest ReEvaluateRequest
	if err := req.ReadEntity(&reRequest); err != nil {
		h.logger.Error().Err(err).Msg("Failed to parse request body")
		middleware.HandleError(resp, err, http.StatusBadRequest)
		return
	}

	if reRequest.ChatID == "" || reRequest.MessageID == "" {
		middleware.HandleError(resp, errors.New("chat_id and message_id are required"), http.StatusBadRequest)
		return
	}

	record, err := h.controller.ReEvaluate(req.Request.Context(), models.TurnKey{
		ChatID:    reRequest.ChatID,
		MessageID: reRequest.MessageID,
		GuestMode: reRequest.GuestMode,
	})
	if err != nil {
		switch {
		case errors.Is(err, store.ErrTurnNotFound):
			middleware.HandleError(resp, err, http.StatusNotFound)
		case errors.Is(err, executor.ErrAllDimensionsFailed):
			middleware.HandleError(resp, err, http.StatusBadGateway)
		default:
			h.logger.Error().Err(err).
				Str("chat_id", reRequest.ChatID).
				Str("message_id", reRequest.MessageID).
				Msg("Re-evaluation failed")
			middleware.HandleError(resp, err, http.StatusInternalServerError)
		}
		return
	}

	resp.WriteHeaderAndEntity(http.StatusOK, record)
}

// Health handler GET /api/v1/health
func (h *Handler) Health(req *restful.Request, resp *restful.Response) {
	resp.WriteHeaderAndEntity(http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: "1.0.0",
	})
}
