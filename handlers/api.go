package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"comment-analytics/analytics"
)

const maxTopLimit = 100

// Summary answers with the row total, label counts and pie composition.
func (h *Handler) Summary(c *gin.Context) {
	table, ok := h.table(c, false)
	if !ok {
		return
	}

	counts := analytics.SummarizeSentiment(table)
	c.JSON(http.StatusOK, gin.H{
		"total":               table.Len(),
		"sentiment_counts":    counts,
		"composition":         analytics.Composition(counts),
		"unparsed_timestamps": table.UnparsedTimestamps,
		"loaded_at":           table.LoadedAt,
	})
}

// TopLiked answers with the most liked comments. ?limit= defaults to 10.
func (h *Handler) TopLiked(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(analytics.TopLikedLimit)))
	if err != nil || limit < 1 || limit > maxTopLimit {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be between 1 and 100"})
		return
	}

	table, ok := h.table(c, false)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, analytics.TopLiked(table, limit))
}

// Trend answers with the date by sentiment count matrix.
func (h *Handler) Trend(c *gin.Context) {
	table, ok := h.table(c, false)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, analytics.Trend(table))
}

// WordCloud answers with word weights for ?sentiment=, or no_data.
func (h *Handler) WordCloud(c *gin.Context) {
	table, ok := h.table(c, false)
	if !ok {
		return
	}

	options := analytics.Labels(analytics.SummarizeSentiment(table))
	label := c.Query("sentiment")
	if label == "" {
		label = analytics.SelectSentiment(options, "")
	}
	c.JSON(http.StatusOK, analytics.BuildWordCloud(table, label))
}

// ClearCache drops the memoized table so the next request reloads it.
func (h *Handler) ClearCache(c *gin.Context) {
	h.tables.Invalidate()
	c.Status(http.StatusNoContent)
}

// Health reports 503 while the table cannot be loaded.
func (h *Handler) Health(c *gin.Context) {
	table, err := h.tables.Get()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "rows": table.Len()})
}
