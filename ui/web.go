package ui

import (
	"calc/core/evaluator"
	"calc/core/session"
	"calc/metrics"
	"calc/models"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
)

//go:embed static
var staticFiles embed.FS

type WebInterface struct {
	evaluator      *evaluator.Evaluator
	sessions       *session.Server
	allowedOrigins []string
	logger         *slog.Logger
}

func NewWebInterface(sessions *session.Server, allowedOrigins []string, logger *slog.Logger) *WebInterface {
	if logger == nil {
		logger = slog.Default()
	}
	return &WebInterface{
		evaluator:      evaluator.NewEvaluator(),
		sessions:       sessions,
		allowedOrigins: allowedOrigins,
		logger:         logger.With("component", "web"),
	}
}

// metricsMiddleware records request count and latency per path.
func metricsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrapped := &responseWriter{ResponseWriter: w, statusCode: 200}

		next(wrapped, r)

		duration := time.Since(start).Seconds()

		metrics.HttpRequestsTotal.WithLabelValues(
			r.Method,
			r.URL.Path,
			strconv.Itoa(wrapped.statusCode),
		).Inc()

		metrics.HttpRequestDuration.WithLabelValues(
			r.Method,
			r.URL.Path,
		).Observe(duration)
	}
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Handler builds the full HTTP surface.
func (w *WebInterface) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/evaluate", metricsMiddleware(w.handleEvaluate))

	// The websocket route must see the raw ResponseWriter to hijack it.
	if w.sessions != nil {
		sessionMux := http.NewServeMux()
		w.sessions.Register(sessionMux)
		mux.HandleFunc("/api/session", metricsMiddleware(sessionMux.ServeHTTP))
		mux.HandleFunc("/api/session/key", metricsMiddleware(sessionMux.ServeHTTP))
		mux.Handle("/ws", sessionMux)
	}

	mux.Handle("/metrics", promhttp.Handler())

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	static, _ := fs.Sub(staticFiles, "static")
	mux.Handle("/", http.FileServer(http.FS(static)))

	return cors.New(cors.Options{
		AllowedOrigins: w.allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}).Handler(mux)
}

// Start serves until ctx is cancelled.
func (w *WebInterface) Start(ctx context.Context, addr string) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           w.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	if w.sessions != nil {
		go w.sessions.Run(ctx, time.Minute)
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	w.logger.Info("listening", "addr", addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (w *WebInterface) handleEvaluate(wr http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(wr, http.StatusMethodNotAllowed, map[string]string{"error": "only POST"})
		return
	}

	var req models.EvaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(wr, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	result := w.evaluator.Compute(req.Input)
	metrics.Evaluations.WithLabelValues(metrics.Outcome(result)).Inc()

	resp := models.EvaluateResponse{Input: req.Input, Result: result.Text()}
	if result.IsError() {
		resp.Error = result.Err.Kind.String()
		w.logger.Debug("evaluation failed", "input", req.Input, "error", result.Err.Diagnostic())
	} else if !math.IsInf(result.Value, 0) && !math.IsNaN(result.Value) {
		value := result.Value
		resp.Value = &value
	}

	writeJSON(wr, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
