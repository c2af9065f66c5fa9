package database

import (
	"comment-analytics/models"
)

const (
	DefaultLimit = 50
	MaxLimit     = 500
)

// CommentFilter narrows QueryComments. Zero values disable a filter.
type CommentFilter struct {
	Sentiment string
	MinLikes  int64
	DateFrom  string // YYYY-MM-DD, inclusive
	Limit     int
}

// QueryComments returns stored comments matching f, most liked first.
func (s *Store) QueryComments(f CommentFilter) ([]models.CommentRecord, error) {
	query := s.db.Model(&models.CommentRecord{})

	if f.Sentiment != "" {
		query = query.Where("sentiment = ?", f.Sentiment)
	}
	if f.MinLikes > 0 {
		query = query.Where("like_count >= ?", f.MinLikes)
	}
	if f.DateFrom != "" {
		query = query.Where("date != '' AND date >= ?", f.DateFrom)
	}

	limit := f.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	comments := []models.CommentRecord{}
	err := query.Order("like_count DESC").Order("position ASC").Limit(limit).Find(&comments).Error
	return comments, err
}
