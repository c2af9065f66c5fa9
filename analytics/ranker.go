package analytics

import (
	"sort"

	"comment-analytics/models"
)

// TopLikedLimit is the number of rows shown in the top-liked table.
const TopLikedLimit = 10

// RankedComment is the projection of a comment shown in the top-liked table.
type RankedComment struct {
	Text      string `json:"text"`
	LikeCount int64  `json:"likeCount"`
	Sentiment string `json:"sentiment"`
}

// TopLiked returns the n most-liked comments, most liked first. Equal like
// counts keep table order.
func TopLiked(table *models.Table, n int) []RankedComment {
	if n <= 0 || table.Len() == 0 {
		return []RankedComment{}
	}

	order := make([]int, table.Len())
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return table.Comments[order[a]].LikeCount > table.Comments[order[b]].LikeCount
	})

	if n > len(order) {
		n = len(order)
	}
	top := make([]RankedComment, n)
	for i, idx := range order[:n] {
		c := table.Comments[idx]
		top[i] = RankedComment{Text: c.Text, LikeCount: c.LikeCount, Sentiment: c.Sentiment}
	}
	return top
}
