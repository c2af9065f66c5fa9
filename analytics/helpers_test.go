package analytics

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"comment-analytics/models"
)

func comment(text, sentiment string, likes int64, date string) models.Comment {
	c := models.Comment{Author: "user-" + text, Text: text, CleanText: text, Sentiment: sentiment, LikeCount: likes}
	if date != "" {
		ts, err := time.Parse(models.DateLayout, date)
		if err != nil {
			panic(err)
		}
		c.PublishedAt = &ts
		c.Date = models.DateOf(&ts)
	}
	return c
}

func tableOf(comments ...models.Comment) *models.Table {
	return &models.Table{Comments: comments}
}

// scenarioTable is the three-row table used across the aggregation tests.
func scenarioTable() *models.Table {
	return tableOf(
		comment("a", "positive", 5, "2020-01-01"),
		comment("b", "negative", 10, "2020-01-01"),
		comment("c", "positive", 1, "2020-01-02"),
	)
}

func mustDate(t *testing.T, s string) models.Date {
	t.Helper()
	d, err := models.ParseDate(s)
	require.NoError(t, err)
	return d
}

var randomLabels = []string{"positive", "negative", "neutral", "mixed"}

// randomTable builds n rows with a fixed seed; roughly one in five rows has
// no date.
func randomTable(seed int64, n int) *models.Table {
	r := rand.New(rand.NewSource(seed))
	comments := make([]models.Comment, n)
	for i := range comments {
		date := ""
		if r.Intn(5) != 0 {
			date = fmt.Sprintf("2021-03-%02d", 1+r.Intn(9))
		}
		comments[i] = comment(fmt.Sprintf("row%d", i), randomLabels[r.Intn(len(randomLabels))], int64(r.Intn(20)), date)
	}
	return tableOf(comments...)
}
