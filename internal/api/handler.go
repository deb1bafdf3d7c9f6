// Package api exposes the analysis over HTTP.
package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"coupon-analytics-go/internal/dataset"
	"coupon-analytics-go/internal/errs"
	"coupon-analytics-go/internal/export"
	"coupon-analytics-go/internal/logger"
	"coupon-analytics-go/internal/metrics"
	"coupon-analytics-go/internal/processor"
)

type Handler struct {
	proc    *processor.Processor
	log     *logger.Logger
	metrics *metrics.Metrics
}

// NewHandler wires the routes. m may be nil to disable /metrics.
func NewHandler(proc *processor.Processor, log *logger.Logger, m *metrics.Metrics) *Handler {
	return &Handler{proc: proc, log: log.Component("api"), metrics: m}
}

func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", h.health)
	mux.HandleFunc("GET /readyz", h.ready)
	mux.HandleFunc("GET /api/v1/analysis", h.analysis)
	mux.HandleFunc("GET /api/v1/analysis.xlsx", h.analysisXLSX)

	var chain http.Handler = mux
	if h.metrics != nil {
		mux.Handle("GET /metrics", h.metrics.Handler())
		chain = h.metrics.Middleware(chain)
	}
	return requestID(chain)
}

// requestID makes sure every request and response carries X-Request-ID.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := logger.RequestID(r)
		r.Header.Set(logger.RequestIDHeader, id)
		w.Header().Set(logger.RequestIDHeader, id)
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	h.log.WithRequest(r).Debug("health check")
	fmt.Fprint(w, "ok")
}

func (h *Handler) ready(w http.ResponseWriter, r *http.Request) {
	if err := dataset.Check(h.proc.SourcePath()); err != nil {
		h.log.WithRequest(r).WithField("error", err.Error()).Warn("source not ready")
		writeError(w, http.StatusServiceUnavailable, err)
		return
	}
	fmt.Fprint(w, "ready")
}

func (h *Handler) analysis(w http.ResponseWriter, r *http.Request) {
	reqLog := h.log.WithRequest(r).WithField("handler", "analysis")
	reqLog.Info("analysis request received")

	res, err := h.proc.Run(r.Context())
	if err != nil {
		reqLog.WithField("error", err.Error()).Warn("analysis failed")
		writeError(w, errs.HTTPStatusCode(err), err)
		return
	}
	reqLog.WithField("duration_ms", res.DurationMs).Info("analysis finished")

	if err := writeJSON(w, res.Report); err != nil {
		reqLog.WithField("error", err.Error()).Error("failed to write response")
	}
}

func (h *Handler) analysisXLSX(w http.ResponseWriter, r *http.Request) {
	reqLog := h.log.WithRequest(r).WithField("handler", "analysis.xlsx")

	res, err := h.proc.Run(r.Context())
	if err != nil {
		reqLog.WithField("error", err.Error()).Warn("analysis failed")
		writeError(w, errs.HTTPStatusCode(err), err)
		return
	}

	// render fully before writing so a failure can still become a 500
	var buf bytes.Buffer
	if err := export.WriteXLSX(&buf, res.Report); err != nil {
		reqLog.WithField("error", err.Error()).Error("workbook render failed")
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="coupon-analysis.xlsx"`)
	if _, err := buf.WriteTo(w); err != nil {
		reqLog.WithField("error", err.Error()).Error("failed to write response")
	}
}

// writeJSON encodes v fully before touching w, so an encoding failure is
// answered with a 500 instead of a committed 200 and a truncated body.
func writeJSON(w http.ResponseWriter, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Errorf("encode response: %w", err))
		return err
	}
	w.Header().Set("Content-Type", "application/json")
	_, err = w.Write(append(data, '\n'))
	return err
}

func writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
