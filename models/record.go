package models

import "time"

// CommentRecord is the SQLite snapshot row of a Comment.
type CommentRecord struct {
	ID          uint       `json:"-" gorm:"primaryKey"`
	Position    int        `json:"position" gorm:"index"`
	Author      string     `json:"author"`
	Text        string     `json:"text"`
	CleanText   string     `json:"clean_text"`
	Sentiment   string     `json:"sentiment" gorm:"index"`
	LikeCount   int64      `json:"likeCount" gorm:"index"`
	PublishedAt *time.Time `json:"publishedAt"`
	Date        string     `json:"date" gorm:"index"`
}

func (CommentRecord) TableName() string {
	return "comments"
}

// NewCommentRecord converts the comment at position pos of its table.
func NewCommentRecord(pos int, c Comment) CommentRecord {
	return CommentRecord{
		Position:    pos,
		Author:      c.Author,
		Text:        c.Text,
		CleanText:   c.CleanText,
		Sentiment:   c.Sentiment,
		LikeCount:   c.LikeCount,
		PublishedAt: c.PublishedAt,
		Date:        c.Date.String(),
	}
}
