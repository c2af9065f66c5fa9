package models

import "time"

// Comment is one row of the cleaned comments table.
type Comment struct {
	Author      string     `json:"author"`
	Text        string     `json:"text"`
	CleanText   string     `json:"clean_text"`
	Sentiment   string     `json:"sentiment"`
	LikeCount   int64      `json:"likeCount"`
	PublishedAt *time.Time `json:"publishedAt"`
	Date        Date       `json:"date"`
}

// Source identifies the file a table was loaded from.
type Source struct {
	Path    string
	ModTime time.Time
	Size    int64
}

// Table is the loaded comment table. It is never modified after load.
type Table struct {
	Source   Source
	LoadedAt time.Time
	Comments []Comment

	// UnparsedTimestamps counts rows whose publishedAt could not be parsed.
	UnparsedTimestamps int
}

func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Comments)
}
