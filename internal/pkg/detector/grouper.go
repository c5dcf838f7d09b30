package detector

import (
	"postwatch/internal/pkg/models"
	"postwatch/internal/pkg/similarity"
)

// Disjoint-set over post indices with path compression and union by size.
type disjointSet struct {
	parent []int
	size   []int
}

func newDisjointSet(n int) *disjointSet {
	ds := &disjointSet{
		parent: make([]int, n),
		size:   make([]int, n),
	}
	for i := 0; i < n; i++ {
		ds.parent[i] = i
		ds.size[i] = 1
	}
	return ds
}

func (ds *disjointSet) find(x int) int {
	for ds.parent[x] != x {
		ds.parent[x] = ds.parent[ds.parent[x]] // path compression
		x = ds.parent[x]
	}
	return x
}

func (ds *disjointSet) union(a, b int) {
	rootA, rootB := ds.find(a), ds.find(b)
	if rootA == rootB {
		return
	}
	if ds.size[rootA] < ds.size[rootB] {
		rootA, rootB = rootB, rootA
	}
	ds.parent[rootB] = rootA
	ds.size[rootA] += ds.size[rootB]
}

// Partitions one user's posts into clusters whose titles are pairwise linked
// by similarity >= threshold, merged transitively. Only clusters of at least
// minGroupSize posts are returned; members keep their input order and
// clusters are ordered by their first member.
//
// Pairwise comparison is quadratic, which is fine at this scale (hundreds of
// posts per user at most).
func GroupSimilarTitles(posts []models.Post, threshold float64, minGroupSize int) [][]models.Post {
	if len(posts) < 2 {
		return nil
	}

	ds := newDisjointSet(len(posts))
	for i := 0; i < len(posts); i++ {
		for j := i + 1; j < len(posts); j++ {
			if similarity.Ratio(posts[i].Title, posts[j].Title) >= threshold {
				ds.union(i, j)
			}
		}
	}

	// Collect components in order of their first member.
	memberIndices := make(map[int][]int)
	var roots []int
	for i := range posts {
		root := ds.find(i)
		if _, seen := memberIndices[root]; !seen {
			roots = append(roots, root)
		}
		memberIndices[root] = append(memberIndices[root], i)
	}

	var clusters [][]models.Post
	for _, root := range roots {
		indices := memberIndices[root]
		if len(indices) < minGroupSize {
			continue
		}
		cluster := make([]models.Post, 0, len(indices))
		for _, idx := range indices {
			cluster = append(cluster, posts[idx])
		}
		clusters = append(clusters, cluster)
	}
	return clusters
}
