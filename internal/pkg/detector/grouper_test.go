package detector

import (
	"testing"

	"postwatch/internal/pkg/models"
)

func TestGroupSimilarTitlesFewerThanTwoPosts(t *testing.T) {
	if got := GroupSimilarTitles(nil, 0.8, 2); got != nil {
		t.Errorf("expected no clusters for empty input, got %v", got)
	}

	single := []models.Post{{UserID: 1, ID: 1, Title: "only one post"}}
	if got := GroupSimilarTitles(single, 0.8, 2); got != nil {
		t.Errorf("expected no clusters for a single post, got %v", got)
	}
}

func TestGroupSimilarTitlesSingletonsDiscarded(t *testing.T) {
	posts := []models.Post{
		{UserID: 1, ID: 1, Title: "completely original thought"},
		{UserID: 1, ID: 2, Title: "nothing like the others here"},
		{UserID: 1, ID: 3, Title: "qwerty asdf zxcv"},
	}

	if got := GroupSimilarTitles(posts, 0.8, 2); len(got) != 0 {
		t.Errorf("expected unlinked posts to form no qualifying clusters, got %v", got)
	}
}

func TestGroupSimilarTitlesMergesDistinctGroups(t *testing.T) {
	// Every pair links, so repeated unions must still yield one cluster.
	posts := []models.Post{
		{UserID: 1, ID: 1, Title: "daily update number 100"},
		{UserID: 1, ID: 2, Title: "daily update number 101"},
		{UserID: 1, ID: 4, Title: "daily update number 109"},
		{UserID: 1, ID: 5, Title: "daily update number 108"},
		{UserID: 1, ID: 3, Title: "daily update number 105"},
	}

	clusters := GroupSimilarTitles(posts, 0.8, 5)
	if len(clusters) != 1 {
		t.Fatalf("expected a single merged cluster, got %d", len(clusters))
	}
	if len(clusters[0]) != 5 {
		t.Errorf("expected all 5 posts in the cluster, got %d", len(clusters[0]))
	}

	// Members keep their input order.
	wantIDs := []int{1, 2, 4, 5, 3}
	for i, post := range clusters[0] {
		if post.ID != wantIDs[i] {
			t.Errorf("expected member %d to be post %d, got %d", i, wantIDs[i], post.ID)
			break
		}
	}
}

func TestGroupSimilarTitlesSeparateClusters(t *testing.T) {
	posts := []models.Post{
		{UserID: 1, ID: 1, Title: "morning weather report for the coast"},
		{UserID: 1, ID: 2, Title: "morning weather report for the coasts"},
		{UserID: 1, ID: 3, Title: "cheap watches buy now limited offer"},
		{UserID: 1, ID: 4, Title: "cheap watches buy now limited offers"},
	}

	clusters := GroupSimilarTitles(posts, 0.8, 2)
	if len(clusters) != 2 {
		t.Fatalf("expected 2 clusters, got %d", len(clusters))
	}
	if clusters[0][0].ID != 1 || clusters[1][0].ID != 3 {
		t.Errorf("expected clusters ordered by first member, got %v then %v",
			clusters[0][0].ID, clusters[1][0].ID)
	}
}
