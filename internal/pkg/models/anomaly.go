package models

// Reason codes attached to anomaly records.
const (
	ReasonShortTitle     = "short_title"
	ReasonDuplicateTitle = "duplicate_title"
	ReasonBotLike        = "bot_like_behavior"
)

// A post flagged by one of the detection rules. Derived per request,
// never persisted; the same post can be flagged under several reasons.
type Anomaly struct {
	UserID  int    `json:"userId"`
	ID      int    `json:"id"`
	Title   string `json:"title"`
	Reason  string `json:"reason"`
	Details string `json:"details,omitempty"`
}

// Aggregate counts over a list of anomalies.
type AnomalySummary struct {
	TotalAnomalies      int            `json:"total_anomalies"`
	ByReason            map[string]int `json:"by_reason"`
	ByUser              map[int]int    `json:"by_user"`
	UniqueUsersAffected int            `json:"unique_users_affected"`
}

// How often a word appears across all analyzed titles.
type WordFrequency struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// Per-user vocabulary statistics over that user's post titles.
type UserSummary struct {
	UserID          int      `json:"userId"`
	UniqueWordCount int      `json:"uniqueWordCount"`
	TotalPosts      int      `json:"totalPosts"`
	UniqueWords     []string `json:"uniqueWords"`
}
