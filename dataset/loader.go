package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"comment-analytics/models"
)

const (
	ColAuthor      = "author"
	ColText        = "text"
	ColCleanText   = "clean_text"
	ColSentiment   = "sentiment"
	ColLikeCount   = "likeCount"
	ColPublishedAt = "publishedAt"
	ColDate        = "date"
)

// RequiredColumns must all be present in the header row.
var RequiredColumns = []string{ColAuthor, ColText, ColCleanText, ColSentiment, ColLikeCount, ColPublishedAt}

var (
	ErrNoHeader         = errors.New("dataset: missing header row")
	ErrMissingColumns   = errors.New("dataset: missing required columns")
	ErrInvalidLikeCount = errors.New("dataset: invalid likeCount")
)

var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Load reads and normalizes the comments file at path.
func Load(path string) (*models.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	table, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	table.Source = models.Source{Path: path, ModTime: info.ModTime(), Size: info.Size()}
	return table, nil
}

// Parse reads a comments table from r. Timestamps that fail to parse become
// missing values; everything else that is malformed fails the whole parse.
func Parse(r io.Reader) (*models.Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, ErrNoHeader
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	idx, err := indexHeader(header)
	if err != nil {
		return nil, err
	}

	table := &models.Table{LoadedAt: time.Now()}
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read record: %w", err)
		}

		field := func(name string) string {
			i := idx[name]
			if i >= len(record) {
				return ""
			}
			return record[i]
		}

		likes, err := parseLikeCount(field(ColLikeCount))
		if err != nil {
			line, _ := cr.FieldPos(0)
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		publishedAt := ParseTimestamp(field(ColPublishedAt))
		if publishedAt == nil {
			table.UnparsedTimestamps++
		}

		table.Comments = append(table.Comments, models.Comment{
			Author:      field(ColAuthor),
			Text:        field(ColText),
			CleanText:   field(ColCleanText),
			Sentiment:   field(ColSentiment),
			LikeCount:   likes,
			PublishedAt: publishedAt,
			Date:        models.DateOf(publishedAt),
		})
	}

	return table, nil
}

func indexHeader(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		name = strings.TrimSpace(name)
		if _, dup := idx[name]; !dup {
			idx[name] = i
		}
	}

	var missing []string
	for _, name := range RequiredColumns {
		if _, ok := idx[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}
	return idx, nil
}

// ParseTimestamp returns nil when s is not a recognised timestamp.
// Values without an offset are taken as UTC.
func ParseTimestamp(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

func parseLikeCount(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		// dataframe writers emit "12.0" when the column had gaps
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) || math.Abs(f) > math.MaxInt64 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidLikeCount, s)
		}
		n = int64(f)
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: %q is negative", ErrInvalidLikeCount, s)
	}
	return n, nil
}
