package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"comment-analytics/database"
	"comment-analytics/models"
)

// GetComments lists stored comments filtered by sentiment, minimum likes
// and first date.
func (h *Handler) GetComments(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Comment store is disabled"})
		return
	}

	filter := database.CommentFilter{Sentiment: c.Query("sentiment")}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(database.DefaultLimit)))
	if err != nil || limit < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
		return
	}
	filter.Limit = limit

	minLikes, err := strconv.ParseInt(c.DefaultQuery("min_likes", "0"), 10, 64)
	if err != nil || minLikes < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid min_likes"})
		return
	}
	filter.MinLikes = minLikes

	if dateFrom := c.Query("date_from"); dateFrom != "" {
		if _, err := models.ParseDate(dateFrom); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date_from must be YYYY-MM-DD"})
			return
		}
		filter.DateFrom = dateFrom
	}

	// the snapshot follows the table, so make sure the current file is loaded
	if _, ok := h.table(c, false); !ok {
		return
	}

	comments, err := h.store.QueryComments(filter)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	c.JSON(http.StatusOK, comments)
}
