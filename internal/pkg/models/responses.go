package models

// Body of GET /posts and GET /posts/{userId}.
type PostsResponse struct {
	Posts []Post `json:"posts"`
	Total int    `json:"total"`
}

// Body of GET /anomalies.
type AnomaliesResponse struct {
	Anomalies []Anomaly      `json:"anomalies"`
	Total     int            `json:"total"`
	Summary   AnomalySummary `json:"summary"`
}

// Body of GET /summary.
type SummaryResponse struct {
	TopUsers          []UserSummary   `json:"topUsers"`
	MostFrequentWords []WordFrequency `json:"mostFrequentWords"`
	TotalPosts        int             `json:"totalPosts"`
	TotalUsers        int             `json:"totalUsers"`
}

// Error body used for 404/422/500 responses.
type ErrorResponse struct {
	Detail string `json:"detail"`
}
