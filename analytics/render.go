package analytics

import (
	"time"

	"comment-analytics/dataset"
	"comment-analytics/models"
)

// PreviewRows is the number of rows in the sample data table.
const PreviewRows = 5

// PreviewRow is a comment without its author.
type PreviewRow struct {
	Text        string      `json:"text"`
	CleanText   string      `json:"clean_text"`
	Sentiment   string      `json:"sentiment"`
	LikeCount   int64       `json:"likeCount"`
	PublishedAt *time.Time  `json:"publishedAt"`
	Date        models.Date `json:"date"`
}

// WordCloud is either a list of weighted words or the no-data state.
type WordCloud struct {
	Sentiment string       `json:"sentiment"`
	Words     []WordWeight `json:"words"`
	NoData    bool         `json:"no_data"`
	Message   string       `json:"message,omitempty"`
}

// ViewModel is everything the dashboard page shows.
type ViewModel struct {
	TotalRows       int             `json:"total_rows"`
	LoadedAt        time.Time       `json:"loaded_at"`
	Preview         []PreviewRow    `json:"preview"`
	SentimentCounts []LabelCount    `json:"sentiment_counts"`
	Options         []string        `json:"options"`
	Selected        string          `json:"selected"`
	WordCloud       WordCloud       `json:"wordcloud"`
	Composition     []Slice         `json:"composition"`
	TopLiked        []RankedComment `json:"top_liked"`
	Trend           TrendMatrix     `json:"trend"`
	DownloadName    string          `json:"download_name"`
}

// Render builds the dashboard view for table. selection picks the word
// cloud sentiment; an unknown or empty selection falls back to the most
// frequent label.
func Render(table *models.Table, selection string) ViewModel {
	counts := SummarizeSentiment(table)
	options := Labels(counts)

	vm := ViewModel{
		TotalRows:       table.Len(),
		Preview:         Preview(table, PreviewRows),
		SentimentCounts: counts,
		Options:         options,
		Selected:        SelectSentiment(options, selection),
		Composition:     Composition(counts),
		TopLiked:        TopLiked(table, TopLikedLimit),
		Trend:           Trend(table),
		DownloadName:    dataset.DownloadName,
	}
	if table != nil {
		vm.LoadedAt = table.LoadedAt
	}
	vm.WordCloud = BuildWordCloud(table, vm.Selected)
	return vm
}

// SelectSentiment returns selection when it is one of options, otherwise
// the first option.
func SelectSentiment(options []string, selection string) string {
	for _, o := range options {
		if o == selection {
			return o
		}
	}
	if len(options) == 0 {
		return ""
	}
	return options[0]
}

// BuildWordCloud selects the text for label and counts its words.
func BuildWordCloud(table *models.Table, label string) WordCloud {
	text := WordCloudText(table, label)
	if !HasCloudText(text) {
		return WordCloud{Sentiment: label, Words: []WordWeight{}, NoData: true, Message: NoCloudText}
	}
	words := WordFrequencies(text, MaxCloudWords)
	if len(words) == 0 {
		return WordCloud{Sentiment: label, Words: words, NoData: true, Message: NoCloudText}
	}
	return WordCloud{Sentiment: label, Words: words}
}

// Preview returns the first n rows of table without authors.
func Preview(table *models.Table, n int) []PreviewRow {
	if n > table.Len() {
		n = table.Len()
	}
	if n < 0 {
		n = 0
	}
	rows := make([]PreviewRow, n)
	for i := 0; i < n; i++ {
		c := table.Comments[i]
		rows[i] = PreviewRow{
			Text:        c.Text,
			CleanText:   c.CleanText,
			Sentiment:   c.Sentiment,
			LikeCount:   c.LikeCount,
			PublishedAt: c.PublishedAt,
			Date:        c.Date,
		}
	}
	return rows
}
