package handlers

import (
	"html/template"

	"github.com/microcosm-cc/bluemonday"
	"github.com/sirupsen/logrus"

	"comment-analytics/database"
	"comment-analytics/models"
)

// TableSource hands out the current comments table. dataset.Cache
// implements it.
type TableSource interface {
	Get() (*models.Table, error)
	Invalidate()
}

// CommentQuerier runs filtered queries over the stored snapshot.
// database.Store implements it.
type CommentQuerier interface {
	QueryComments(f database.CommentFilter) ([]models.CommentRecord, error)
}

// Handler serves the dashboard, the JSON API and the download from one
// memoized table.
type Handler struct {
	tables TableSource
	store  CommentQuerier
	policy *bluemonday.Policy
	log    *logrus.Logger
}

// New creates the HTTP handlers. store may be nil when the snapshot is
// disabled.
func New(tables TableSource, store CommentQuerier, log *logrus.Logger) *Handler {
	return &Handler{
		tables: tables,
		store:  store,
		policy: bluemonday.UGCPolicy(),
		log:    log,
	}
}

// FuncMap holds the template helpers used by the dashboard page.
func (h *Handler) FuncMap() template.FuncMap {
	return template.FuncMap{
		"commentHTML": h.commentHTML,
		"fontSize":    fontSize,
	}
}

// commentHTML keeps the markup comment text arrives with (<br>, links)
// and strips everything unsafe.
func (h *Handler) commentHTML(s string) template.HTML {
	return template.HTML(h.policy.Sanitize(s))
}

func fontSize(weight float64) int {
	return 12 + int(weight*48)
}
