// Package server exposes the offer calculator as a JSON HTTP API.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/iwvelando/deal-calculator/internal/config"
	"github.com/iwvelando/deal-calculator/internal/offer"
	"github.com/iwvelando/deal-calculator/pkg/constants"
	"github.com/iwvelando/deal-calculator/pkg/loans"
	"github.com/iwvelando/deal-calculator/pkg/mathutil"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Options configures the HTTP handler.
type Options struct {
	MaxRequestSize int64
	Version        string
	// Defaults supplies the dealer settings and default deal. Nil means the
	// built-in defaults.
	Defaults *config.Configuration
}

type handler struct {
	logger         *zap.Logger
	calculator     *offer.Calculator
	scheduler      *loans.ScheduleGenerator
	maxRequestSize int64
	version        string
	defaults       *config.Configuration
}

// NewHandler constructs the HTTP handler that serves the offer API.
func NewHandler(logger *zap.Logger, opts Options) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.MaxRequestSize <= 0 {
		opts.MaxRequestSize = constants.DefaultMaxUploadSizeBytes
	}
	version := strings.TrimSpace(opts.Version)
	if version == "" {
		version = "dev"
	}
	defaults := opts.Defaults
	if defaults == nil {
		defaults = config.Default()
	}

	h := &handler{
		logger:         logger,
		calculator:     offer.NewCalculator(logger),
		scheduler:      loans.NewScheduleGenerator(logger),
		maxRequestSize: opts.MaxRequestSize,
		version:        version,
		defaults:       defaults,
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Route("/api", func(r chi.Router) {
		r.Get("/version", h.handleVersion)
		r.Get("/deal/default", h.handleDefaultDeal)
		r.Get("/settings", h.handleSettings)
		r.Post("/settings/export", h.handleSettingsExport)
		r.Post("/offer", h.handleOffer)
		r.Get("/schedule", h.handleSchedule)
	})
	return r
}

type offerResponse struct {
	ID       string      `json:"id"`
	Mode     offer.Mode  `json:"mode"`
	Sheet    offer.Sheet `json:"sheet"`
	Warnings []string    `json:"warnings,omitempty"`
	Duration string      `json:"duration"`
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) handleDefaultDeal(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.defaults.Deal)
}

func (h *handler) handleSettings(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.defaults.Dealer)
}

func (h *handler) handleSettingsExport(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleSettingsExport"

	payload, ok := h.readPayload(w, r, op)
	if !ok {
		return
	}

	settings := h.defaults.Dealer
	if err := config.Decode(payload, &settings); err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("invalid settings: %v", err), op)
		return
	}

	out, err := yaml.Marshal(struct {
		Dealer offer.Settings `yaml:"dealer"`
	}{Dealer: settings})
	if err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to encode settings: %v", err), op)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"settingsYaml": string(out),
	})
}

func (h *handler) handleOffer(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleOffer"
	start := time.Now()

	payload, ok := h.readPayload(w, r, op)
	if !ok {
		return
	}

	settings := h.defaults.Dealer
	if raw, ok := payload["settings"]; ok && raw != nil {
		if err := config.Decode(raw, &settings); err != nil {
			h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("invalid settings: %v", err), op)
			return
		}
	}

	in := offer.NewInput(settings)
	raw, ok := payload["deal"]
	if !ok || raw == nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, "missing deal", op)
		return
	}
	if err := config.Decode(raw, &in); err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("invalid deal: %v", err), op)
		return
	}
	if err := offer.CheckFinanceLimits(in.DownPayment, in.FinanceTerm); err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	mode := offer.ModeFor(in)
	if rawMode, ok := payload["mode"]; ok && rawMode != nil {
		s, isString := rawMode.(string)
		if !isString {
			h.respondErrorWithOp(w, http.StatusBadRequest, "invalid mode: expected string", op)
			return
		}
		parsed, err := offer.ParseMode(s)
		if err != nil {
			h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
			return
		}
		if strings.TrimSpace(s) != "" {
			mode = parsed
		}
	}

	sheet := h.calculator.Derive(in, settings, mode)
	elapsed := time.Since(start)

	response := offerResponse{
		ID:       uuid.New().String(),
		Mode:     mode,
		Sheet:    sheet,
		Warnings: offer.Check(in, settings),
		Duration: elapsed.String(),
	}

	h.logger.Info("offer computed",
		zap.String("op", op),
		zap.String("id", response.ID),
		zap.String("mode", string(mode)),
		zap.Int("warnings", len(response.Warnings)),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, response)
}

type scheduleRequest struct {
	Amount float64 `mapstructure:"amount"`
	Rate   float64 `mapstructure:"rate"`
	Term   int     `mapstructure:"term"`
}

type scheduleResponse struct {
	Amount          float64             `json:"amount"`
	Rate            float64             `json:"rate"`
	Term            int                 `json:"term"`
	Payment         float64             `json:"payment"`
	TotalOfPayments float64             `json:"totalOfPayments"`
	FinanceCharge   float64             `json:"financeCharge"`
	Schedule        []loans.Installment `json:"schedule"`
}

// handleSchedule returns the month-by-month amortization behind one row of
// the payment matrix, e.g. /api/schedule?amount=25553.61&rate=6.99&term=60.
func (h *handler) handleSchedule(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleSchedule"

	query := r.URL.Query()
	var req scheduleRequest
	if err := config.Decode(map[string]interface{}{
		"amount": query.Get("amount"),
		"rate":   query.Get("rate"),
		"term":   query.Get("term"),
	}, &req); err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("invalid schedule request: %v", err), op)
		return
	}
	if req.Amount <= 0 || req.Term <= 0 || req.Rate < 0 {
		h.respondErrorWithOp(w, http.StatusBadRequest, "amount and term must be positive and rate must not be negative", op)
		return
	}
	if req.Term > constants.MaxTermMonths {
		h.respondErrorWithOp(w, http.StatusBadRequest,
			fmt.Sprintf("term of %d months exceeds the maximum of %d", req.Term, constants.MaxTermMonths), op)
		return
	}

	schedule := h.scheduler.GenerateSchedule(req.Amount, req.Rate, req.Term)
	payments := make([]float64, len(schedule))
	for i, installment := range schedule {
		payments[i] = installment.Payment
	}

	resp := scheduleResponse{
		Amount:          req.Amount,
		Rate:            req.Rate,
		Term:            req.Term,
		TotalOfPayments: mathutil.SumCents(payments...),
		Schedule:        schedule,
	}
	if len(schedule) > 0 {
		resp.Payment = schedule[0].Payment
		resp.FinanceCharge = mathutil.SumCents(resp.TotalOfPayments, -req.Amount)
	}
	h.writeJSON(w, http.StatusOK, resp)
}

// readPayload decodes a JSON object body within the size limit. On failure
// it has already written the error response.
func (h *handler) readPayload(w http.ResponseWriter, r *http.Request, op string) (map[string]interface{}, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxRequestSize)

	var payload map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		var maxBytesErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxBytesErr):
			h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request exceeds limit of %d bytes", h.maxRequestSize), op)
		case errors.Is(err, io.EOF):
			h.respondErrorWithOp(w, http.StatusBadRequest, "empty request body", op)
		default:
			h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), op)
		}
		return nil, false
	}
	if payload == nil {
		payload = make(map[string]interface{})
	}
	return payload, true
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("offer request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)
	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
