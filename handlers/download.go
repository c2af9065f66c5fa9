package handlers

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"comment-analytics/dataset"
)

// Download serves the normalized table as a CSV attachment.
func (h *Handler) Download(c *gin.Context) {
	table, ok := h.table(c, false)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := dataset.Dump(&buf, table); err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export comments"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", dataset.DownloadName))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}
