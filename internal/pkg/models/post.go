package models

// A single post as returned by the JSONPlaceholder API.
// Identity is the post ID; posts are never mutated after fetching.
type Post struct {
	UserID int    `json:"userId"`
	ID     int    `json:"id"`
	Title  string `json:"title"`
	Body   string `json:"body"`
}
