package analytics

import (
	"sort"

	"comment-analytics/models"
)

// TrendMatrix is a dense count table of comments per (date, label).
// Counts[i][j] is the count for Dates[i] and Labels[j]. Dates ascend and
// labels are sorted.
type TrendMatrix struct {
	Dates  []models.Date `json:"dates"`
	Labels []string      `json:"labels"`
	Counts [][]int       `json:"counts"`
}

type trendKey struct {
	date  models.Date
	label string
}

// Trend groups dated comments by day and label. Rows without a date are
// left out.
func Trend(table *models.Table) TrendMatrix {
	cells := make(map[trendKey]int)
	seenDate := make(map[models.Date]bool)
	seenLabel := make(map[string]bool)
	m := TrendMatrix{Dates: []models.Date{}, Labels: []string{}, Counts: [][]int{}}

	if table != nil {
		for _, c := range table.Comments {
			if !c.Date.Valid {
				continue
			}
			if !seenDate[c.Date] {
				seenDate[c.Date] = true
				m.Dates = append(m.Dates, c.Date)
			}
			if !seenLabel[c.Sentiment] {
				seenLabel[c.Sentiment] = true
				m.Labels = append(m.Labels, c.Sentiment)
			}
			cells[trendKey{c.Date, c.Sentiment}]++
		}
	}

	sort.Slice(m.Dates, func(i, j int) bool { return m.Dates[i].Before(m.Dates[j]) })
	sort.Strings(m.Labels)

	m.Counts = make([][]int, len(m.Dates))
	for i, d := range m.Dates {
		m.Counts[i] = make([]int, len(m.Labels))
		for j, l := range m.Labels {
			m.Counts[i][j] = cells[trendKey{d, l}]
		}
	}
	return m
}

// Count returns the cell for date and label, 0 when either is absent.
func (m TrendMatrix) Count(date models.Date, label string) int {
	i := sort.Search(len(m.Dates), func(i int) bool { return !m.Dates[i].Before(date) })
	if i == len(m.Dates) || m.Dates[i] != date {
		return 0
	}
	j := sort.SearchStrings(m.Labels, label)
	if j == len(m.Labels) || m.Labels[j] != label {
		return 0
	}
	return m.Counts[i][j]
}

// Series returns the per-day counts for one label in date order.
func (m TrendMatrix) Series(label string) []int {
	j := sort.SearchStrings(m.Labels, label)
	if j == len(m.Labels) || m.Labels[j] != label {
		return nil
	}
	series := make([]int, len(m.Dates))
	for i := range m.Dates {
		series[i] = m.Counts[i][j]
	}
	return series
}
