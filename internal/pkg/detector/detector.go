package detector

import (
	"fmt"
	"unicode/utf8"

	"go.uber.org/zap"

	"postwatch/internal/pkg/logger"
	"postwatch/internal/pkg/metrics"
	"postwatch/internal/pkg/models"
)

// Runs the three anomaly detection rules over a post collection.
// Detection is stateless; every call recomputes from the posts it is given.
type Detector struct {
	shortTitleThreshold int
	similarityThreshold float64
	botThreshold        int
}

// Creates a new Detector.
//
// shortTitleThreshold is the minimum title length in characters,
// similarityThreshold the minimum ratio for two titles to be considered
// linked, and botThreshold the minimum cluster size flagged as bot-like.
func New(shortTitleThreshold int, similarityThreshold float64, botThreshold int) *Detector {
	return &Detector{
		shortTitleThreshold: shortTitleThreshold,
		similarityThreshold: similarityThreshold,
		botThreshold:        botThreshold,
	}
}

// Runs all three detection passes in a fixed order (short titles, duplicate
// titles, bot-like behavior) and concatenates their results. A post can be
// flagged by more than one pass.
func (d *Detector) DetectAnomalies(posts []models.Post) []models.Anomaly {
	anomalies := make([]models.Anomaly, 0)
	anomalies = append(anomalies, d.detectShortTitles(posts)...)
	anomalies = append(anomalies, d.detectDuplicateTitles(posts)...)
	anomalies = append(anomalies, d.detectBotLikeBehavior(posts)...)

	metrics.PostsAnalyzed.Add(float64(len(posts)))
	for _, anomaly := range anomalies {
		metrics.AnomaliesDetected.WithLabelValues(anomaly.Reason).Inc()
	}

	logger.Log.Info("Anomaly detection complete",
		zap.Int("posts", len(posts)),
		zap.Int("anomalies", len(anomalies)))
	return anomalies
}

// Flags every post whose title is shorter than the threshold.
func (d *Detector) detectShortTitles(posts []models.Post) []models.Anomaly {
	var anomalies []models.Anomaly
	for _, post := range posts {
		length := utf8.RuneCountInString(post.Title)
		if length < d.shortTitleThreshold {
			anomalies = append(anomalies, models.Anomaly{
				UserID: post.UserID,
				ID:     post.ID,
				Title:  post.Title,
				Reason: models.ReasonShortTitle,
				Details: fmt.Sprintf("Title length (%d) is below threshold (%d)",
					length, d.shortTitleThreshold),
			})
		}
	}
	return anomalies
}

// Flags every post whose (user, title) pair occurs more than once.
// All members of a qualifying group are emitted, not just the extras.
func (d *Detector) detectDuplicateTitles(posts []models.Post) []models.Anomaly {
	titleCounts := make(map[int]map[string]int)
	for _, post := range posts {
		if titleCounts[post.UserID] == nil {
			titleCounts[post.UserID] = make(map[string]int)
		}
		titleCounts[post.UserID][post.Title]++
	}

	var anomalies []models.Anomaly
	for _, post := range posts {
		count := titleCounts[post.UserID][post.Title]
		if count > 1 {
			anomalies = append(anomalies, models.Anomaly{
				UserID:  post.UserID,
				ID:      post.ID,
				Title:   post.Title,
				Reason:  models.ReasonDuplicateTitle,
				Details: fmt.Sprintf("User has %d posts with identical title", count),
			})
		}
	}
	return anomalies
}

// Flags users posting clusters of near-identical titles. For every user with
// at least botThreshold posts, titles are clustered by pairwise similarity
// (transitively merged); every post in a cluster of botThreshold or more is
// flagged. Users below the post-count threshold are skipped before any
// pairwise comparison.
func (d *Detector) detectBotLikeBehavior(posts []models.Post) []models.Anomaly {
	userPosts := make(map[int][]models.Post)
	var userOrder []int
	for _, post := range posts {
		if _, seen := userPosts[post.UserID]; !seen {
			userOrder = append(userOrder, post.UserID)
		}
		userPosts[post.UserID] = append(userPosts[post.UserID], post)
	}

	var anomalies []models.Anomaly
	for _, userID := range userOrder {
		own := userPosts[userID]
		if len(own) < d.botThreshold {
			continue
		}

		clusters := GroupSimilarTitles(own, d.similarityThreshold, d.botThreshold)
		for _, cluster := range clusters {
			details := fmt.Sprintf("User has %d posts with similar titles (similarity >= %.2f)",
				len(cluster), d.similarityThreshold)
			for _, post := range cluster {
				anomalies = append(anomalies, models.Anomaly{
					UserID:  post.UserID,
					ID:      post.ID,
					Title:   post.Title,
					Reason:  models.ReasonBotLike,
					Details: details,
				})
			}
		}
	}
	return anomalies
}

// Computes aggregate statistics for a list of anomalies.
// An empty list yields zero counts and empty (non-nil) maps.
func (d *Detector) Summary(anomalies []models.Anomaly) models.AnomalySummary {
	summary := models.AnomalySummary{
		TotalAnomalies: len(anomalies),
		ByReason:       make(map[string]int),
		ByUser:         make(map[int]int),
	}

	affected := make(map[int]struct{})
	for _, anomaly := range anomalies {
		summary.ByReason[anomaly.Reason]++
		summary.ByUser[anomaly.UserID]++
		affected[anomaly.UserID] = struct{}{}
	}
	summary.UniqueUsersAffected = len(affected)

	return summary
}
