package detector

import (
	"testing"

	"go.uber.org/zap"

	"postwatch/internal/pkg/logger"
	"postwatch/internal/pkg/models"
)

func init() {
	logger.Log = zap.NewNop() // Set up a no-op logger to avoid nil pointer dereferences in tests.
}

func newTestDetector() *Detector {
	return New(15, 0.8, 5)
}

func idsWithReason(anomalies []models.Anomaly, reason string) map[int]bool {
	ids := make(map[int]bool)
	for _, a := range anomalies {
		if a.Reason == reason {
			ids[a.ID] = true
		}
	}
	return ids
}

// Short titles are flagged exactly when their length is below the threshold.
func TestDetectShortTitles(t *testing.T) {
	posts := []models.Post{
		{UserID: 1, ID: 1, Title: "Short"},
		{UserID: 1, ID: 2, Title: "This is a longer title"},
		{UserID: 2, ID: 3, Title: "Also short"},
	}

	anomalies := newTestDetector().DetectAnomalies(posts)
	short := idsWithReason(anomalies, models.ReasonShortTitle)

	if len(short) != 2 || !short[1] || !short[3] {
		t.Errorf("expected short-title anomalies exactly for ids {1, 3}, got %v", short)
	}
}

func TestShortTitleBoundary(t *testing.T) {
	posts := []models.Post{
		{UserID: 1, ID: 1, Title: "exactly fifteen"},  // 15 chars, not flagged
		{UserID: 1, ID: 2, Title: "fourteen chars"},   // 14 chars, flagged
	}

	anomalies := newTestDetector().DetectAnomalies(posts)
	short := idsWithReason(anomalies, models.ReasonShortTitle)

	if short[1] {
		t.Error("title of exactly threshold length must not be flagged")
	}
	if !short[2] {
		t.Error("title below threshold length must be flagged")
	}
}

// Every member of a duplicate-title group is flagged, or none is.
func TestDetectDuplicateTitles(t *testing.T) {
	posts := []models.Post{
		{UserID: 1, ID: 1, Title: "a perfectly ordinary title"},
		{UserID: 1, ID: 2, Title: "a perfectly ordinary title"},
		{UserID: 1, ID: 3, Title: "a different title entirely"},
		{UserID: 2, ID: 4, Title: "a perfectly ordinary title"}, // other user, not a duplicate
	}

	anomalies := newTestDetector().DetectAnomalies(posts)
	dups := idsWithReason(anomalies, models.ReasonDuplicateTitle)

	if len(dups) != 2 || !dups[1] || !dups[2] {
		t.Errorf("expected duplicate-title anomalies exactly for ids {1, 2}, got %v", dups)
	}

	for _, a := range anomalies {
		if a.Reason == models.ReasonDuplicateTitle && a.Details != "User has 2 posts with identical title" {
			t.Errorf("unexpected duplicate details: %q", a.Details)
		}
	}
}

// Five identical titles from one user are all flagged as bot-like; other
// users with different titles are untouched.
func TestDetectBotLikeIdenticalTitles(t *testing.T) {
	var posts []models.Post
	for i := 1; i <= 5; i++ {
		posts = append(posts, models.Post{UserID: 1, ID: i, Title: "Post about technology"})
	}
	posts = append(posts, models.Post{UserID: 2, ID: 6, Title: "An unrelated observation"})

	anomalies := newTestDetector().DetectAnomalies(posts)
	bots := idsWithReason(anomalies, models.ReasonBotLike)

	if len(bots) != 5 {
		t.Fatalf("expected 5 bot-like anomalies, got %d", len(bots))
	}
	for i := 1; i <= 5; i++ {
		if !bots[i] {
			t.Errorf("expected post %d to be flagged bot-like", i)
		}
	}
	if bots[6] {
		t.Error("user 2's post must not be flagged")
	}
}

// Users below the post-count threshold are never flagged, no matter how
// similar their titles are.
func TestBotDetectionSkipsSmallUsers(t *testing.T) {
	var posts []models.Post
	for i := 1; i <= 4; i++ {
		posts = append(posts, models.Post{UserID: 1, ID: i, Title: "Post about technology"})
	}

	anomalies := newTestDetector().DetectAnomalies(posts)
	if bots := idsWithReason(anomalies, models.ReasonBotLike); len(bots) != 0 {
		t.Errorf("expected no bot-like anomalies for a 4-post user, got %v", bots)
	}
}

// Similarity links merge transitively: A~B and B~C place A, B and C in the
// same cluster even if A and C alone would not link.
func TestBotDetectionTransitiveClustering(t *testing.T) {
	posts := []models.Post{
		{UserID: 1, ID: 1, Title: "breaking news about the economy today"},
		{UserID: 1, ID: 2, Title: "breaking news about the economy todays"},
		{UserID: 1, ID: 3, Title: "breaking news about the economy todayss"},
		{UserID: 1, ID: 4, Title: "breaking news about the economy todaysss"},
		{UserID: 1, ID: 5, Title: "breaking news about the economy todayssss"},
	}

	anomalies := newTestDetector().DetectAnomalies(posts)
	bots := idsWithReason(anomalies, models.ReasonBotLike)

	if len(bots) != 5 {
		t.Errorf("expected all 5 chained posts to be flagged, got %v", bots)
	}
}

// A post can appear under several reasons at once.
func TestPostFlaggedByMultiplePasses(t *testing.T) {
	var posts []models.Post
	for i := 1; i <= 5; i++ {
		posts = append(posts, models.Post{UserID: 1, ID: i, Title: "tiny"})
	}

	anomalies := newTestDetector().DetectAnomalies(posts)

	reasons := make(map[string]bool)
	for _, a := range anomalies {
		if a.ID == 1 {
			reasons[a.Reason] = true
		}
	}
	for _, want := range []string{models.ReasonShortTitle, models.ReasonDuplicateTitle, models.ReasonBotLike} {
		if !reasons[want] {
			t.Errorf("expected post 1 to be flagged with reason %q, got %v", want, reasons)
		}
	}
}

// Passes run short -> duplicate -> bot-like, each iterating in input order.
func TestDetectionOrderStable(t *testing.T) {
	posts := []models.Post{
		{UserID: 2, ID: 10, Title: "tiny"},
		{UserID: 1, ID: 11, Title: "ok"},
	}

	anomalies := newTestDetector().DetectAnomalies(posts)
	if len(anomalies) != 2 {
		t.Fatalf("expected 2 anomalies, got %d", len(anomalies))
	}
	if anomalies[0].ID != 10 || anomalies[1].ID != 11 {
		t.Errorf("expected anomalies in input order [10 11], got [%d %d]", anomalies[0].ID, anomalies[1].ID)
	}
}

func TestSummaryEmpty(t *testing.T) {
	summary := newTestDetector().Summary(nil)

	if summary.TotalAnomalies != 0 {
		t.Errorf("expected 0 total anomalies, got %d", summary.TotalAnomalies)
	}
	if summary.UniqueUsersAffected != 0 {
		t.Errorf("expected 0 unique users, got %d", summary.UniqueUsersAffected)
	}
	if summary.ByReason == nil || len(summary.ByReason) != 0 {
		t.Errorf("expected empty by_reason map, got %v", summary.ByReason)
	}
	if summary.ByUser == nil || len(summary.ByUser) != 0 {
		t.Errorf("expected empty by_user map, got %v", summary.ByUser)
	}
}

func TestSummaryCounts(t *testing.T) {
	anomalies := []models.Anomaly{
		{UserID: 1, ID: 1, Reason: models.ReasonShortTitle},
		{UserID: 1, ID: 2, Reason: models.ReasonShortTitle},
		{UserID: 2, ID: 3, Reason: models.ReasonDuplicateTitle},
	}

	summary := newTestDetector().Summary(anomalies)

	if summary.TotalAnomalies != 3 {
		t.Errorf("expected 3 total anomalies, got %d", summary.TotalAnomalies)
	}
	if summary.ByReason[models.ReasonShortTitle] != 2 || summary.ByReason[models.ReasonDuplicateTitle] != 1 {
		t.Errorf("unexpected by_reason counts: %v", summary.ByReason)
	}
	if summary.ByUser[1] != 2 || summary.ByUser[2] != 1 {
		t.Errorf("unexpected by_user counts: %v", summary.ByUser)
	}
	if summary.UniqueUsersAffected != 2 {
		t.Errorf("expected 2 unique users affected, got %d", summary.UniqueUsersAffected)
	}
}
