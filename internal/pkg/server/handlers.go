package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"postwatch/internal/pkg/logger"
	"postwatch/internal/pkg/metrics"
	"postwatch/internal/pkg/models"
)

// GET /posts?limit=N
func (s *Server) handleGetPosts(w http.ResponseWriter, r *http.Request) {
	metrics.RequestsServed.WithLabelValues("/posts").Inc()

	limit, ok := queryInt(w, r, "limit", 0)
	if !ok {
		return
	}

	posts, err := s.source.Posts(r.Context(), limit)
	if err != nil {
		logger.Log.Error("Error fetching posts", zap.Error(err))
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to fetch posts: %v", err))
		return
	}
	if posts == nil {
		posts = make([]models.Post, 0)
	}

	writeJSON(w, http.StatusOK, models.PostsResponse{Posts: posts, Total: len(posts)})
}

// GET /posts/{userId}
func (s *Server) handleGetPostsByUser(w http.ResponseWriter, r *http.Request) {
	metrics.RequestsServed.WithLabelValues("/posts/{userId}").Inc()

	userID, err := strconv.Atoi(r.PathValue("userId"))
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "Invalid value for path parameter 'userId'")
		return
	}

	posts, err := s.source.PostsByUser(r.Context(), userID)
	if err != nil {
		logger.Log.Error("Error fetching posts for user", zap.Int("user_id", userID), zap.Error(err))
		writeError(w, http.StatusInternalServerError,
			fmt.Sprintf("Failed to fetch posts for user %d: %v", userID, err))
		return
	}
	if posts == nil {
		posts = make([]models.Post, 0)
	}

	writeJSON(w, http.StatusOK, models.PostsResponse{Posts: posts, Total: len(posts)})
}

// GET /anomalies?limit=N&user_id=M
func (s *Server) handleGetAnomalies(w http.ResponseWriter, r *http.Request) {
	metrics.RequestsServed.WithLabelValues("/anomalies").Inc()

	limit, ok := queryInt(w, r, "limit", 0)
	if !ok {
		return
	}
	userID, ok := queryInt(w, r, "user_id", 0)
	if !ok {
		return
	}

	posts, err := s.source.Posts(r.Context(), limit)
	if err != nil {
		logger.Log.Error("Error detecting anomalies", zap.Error(err))
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to detect anomalies: %v", err))
		return
	}

	anomalies := s.detector.DetectAnomalies(posts)

	// user_id filters the computed list; it does not change which posts
	// were fetched and analyzed.
	if userID > 0 {
		filtered := make([]models.Anomaly, 0, len(anomalies))
		for _, anomaly := range anomalies {
			if anomaly.UserID == userID {
				filtered = append(filtered, anomaly)
			}
		}
		anomalies = filtered
	}

	writeJSON(w, http.StatusOK, models.AnomaliesResponse{
		Anomalies: anomalies,
		Total:     len(anomalies),
		Summary:   s.detector.Summary(anomalies),
	})
}

// GET /anomalies/summary?limit=N
func (s *Server) handleGetAnomalySummary(w http.ResponseWriter, r *http.Request) {
	metrics.RequestsServed.WithLabelValues("/anomalies/summary").Inc()

	limit, ok := queryInt(w, r, "limit", 0)
	if !ok {
		return
	}

	posts, err := s.source.Posts(r.Context(), limit)
	if err != nil {
		logger.Log.Error("Error getting anomaly summary", zap.Error(err))
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to get anomaly summary: %v", err))
		return
	}

	anomalies := s.detector.DetectAnomalies(posts)
	writeJSON(w, http.StatusOK, s.detector.Summary(anomalies))
}

// GET /summary?limit=N&top_users=3&top_words=20
func (s *Server) handleGetSummary(w http.ResponseWriter, r *http.Request) {
	metrics.RequestsServed.WithLabelValues("/summary").Inc()

	limit, ok := queryInt(w, r, "limit", 0)
	if !ok {
		return
	}
	topUsers, ok := queryInt(w, r, "top_users", 3)
	if !ok {
		return
	}
	topWords, ok := queryInt(w, r, "top_words", 20)
	if !ok {
		return
	}

	posts, err := s.source.Posts(r.Context(), limit)
	if err != nil {
		logger.Log.Error("Error getting summary", zap.Error(err))
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to get summary: %v", err))
		return
	}

	if len(posts) == 0 {
		writeJSON(w, http.StatusOK, models.SummaryResponse{
			TopUsers:          make([]models.UserSummary, 0),
			MostFrequentWords: make([]models.WordFrequency, 0),
		})
		return
	}

	frequencies := s.analyzer.WordFrequencies(posts)
	if topWords < 0 {
		topWords = 0
	}
	if topWords < len(frequencies) {
		frequencies = frequencies[:topWords]
	}

	seen := make(map[int]struct{})
	for _, post := range posts {
		seen[post.UserID] = struct{}{}
	}

	writeJSON(w, http.StatusOK, models.SummaryResponse{
		TopUsers:          s.analyzer.TopUsersByUniqueWords(posts, topUsers),
		MostFrequentWords: frequencies,
		TotalPosts:        len(posts),
		TotalUsers:        len(seen),
	})
}

// GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	health := struct {
		Status    string    `json:"status"`
		Uptime    string    `json:"uptime"`
		StartTime time.Time `json:"start_time"`
	}{
		Status:    "OK",
		Uptime:    time.Since(s.startTime).String(),
		StartTime: s.startTime,
	}
	writeJSON(w, http.StatusOK, health)
}

// Parses an optional integer query parameter. An absent or empty parameter
// yields the default; an unparseable one writes a 422 and returns ok=false
// before any business logic runs.
func queryInt(w http.ResponseWriter, r *http.Request, name string, defaultValue int) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return defaultValue, true
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity,
			fmt.Sprintf("Invalid value for query parameter '%s'", name))
		return 0, false
	}
	return value, true
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Log.Error("Failed to encode response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, models.ErrorResponse{Detail: detail})
}
