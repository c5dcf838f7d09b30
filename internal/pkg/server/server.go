package server

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"postwatch/internal/pkg/analyzer"
	"postwatch/internal/pkg/detector"
	"postwatch/internal/pkg/logger"
	"postwatch/internal/pkg/models"
)

// The upstream posts source as seen by the handlers.
type PostSource interface {
	Posts(ctx context.Context, limit int) ([]models.Post, error)
	PostsByUser(ctx context.Context, userID int) ([]models.Post, error)
}

// Holds the components every request handler needs. All of them are
// constructed once at startup and injected here; requests share no other
// state.
type Server struct {
	source    PostSource
	detector  *detector.Detector
	analyzer  *analyzer.TextAnalyzer
	startTime time.Time
}

// Creates a Server around the given components.
func New(source PostSource, det *detector.Detector, an *analyzer.TextAnalyzer) *Server {
	return &Server{
		source:    source,
		detector:  det,
		analyzer:  an,
		startTime: time.Now(),
	}
}

// Builds the route table. Unknown paths fall through to a JSON 404.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /posts", s.handleGetPosts)
	mux.HandleFunc("GET /posts/{userId}", s.handleGetPostsByUser)
	mux.HandleFunc("GET /anomalies", s.handleGetAnomalies)
	mux.HandleFunc("GET /anomalies/summary", s.handleGetAnomalySummary)
	mux.HandleFunc("GET /summary", s.handleGetSummary)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "Not Found")
	})

	return requestMiddleware(mux)
}

// Tags every request with a UUID, logs it, and converts panics into a
// generic 500 so no failure escapes without a JSON body.
func requestMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		w.Header().Set("X-Request-ID", requestID)

		start := time.Now()
		defer func() {
			if rec := recover(); rec != nil {
				logger.Log.Error("Panic while handling request",
					zap.Any("panic", rec),
					zap.String("path", r.URL.Path),
					zap.String("request_id", requestID))
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
		}()

		next.ServeHTTP(w, r)

		logger.Log.Debug("Request handled",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("request_id", requestID),
			zap.Duration("duration", time.Since(start)))
	})
}
