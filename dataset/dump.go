package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"comment-analytics/models"
)

// DownloadName is the file name offered for the re-serialized table.
const DownloadName = "cleaned_bohemian_comments.csv"

var dumpHeader = []string{ColAuthor, ColText, ColCleanText, ColSentiment, ColLikeCount, ColPublishedAt, ColDate}

// Dump writes the normalized table as CSV. Parse(Dump(t)) yields t again.
func Dump(w io.Writer, table *models.Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(dumpHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	if table != nil {
		record := make([]string, len(dumpHeader))
		for i, c := range table.Comments {
			record[0] = c.Author
			record[1] = c.Text
			record[2] = c.CleanText
			record[3] = c.Sentiment
			record[4] = strconv.FormatInt(c.LikeCount, 10)
			record[5] = ""
			if c.PublishedAt != nil {
				record[5] = c.PublishedAt.Format(time.RFC3339Nano)
			}
			record[6] = c.Date.String()
			if err := cw.Write(record); err != nil {
				return fmt.Errorf("write row %d: %w", i, err)
			}
		}
	}

	cw.Flush()
	return cw.Error()
}
