package analytics

import (
	"fmt"
	"sort"

	"comment-analytics/models"
)

// LabelCount is the number of comments carrying one sentiment label.
type LabelCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// SummarizeSentiment counts rows per label, most frequent first. Ties keep
// the order in which the labels first appear in the table.
func SummarizeSentiment(table *models.Table) []LabelCount {
	if table.Len() == 0 {
		return []LabelCount{}
	}

	pos := make(map[string]int)
	counts := make([]LabelCount, 0, 4)
	for _, c := range table.Comments {
		i, ok := pos[c.Sentiment]
		if !ok {
			i = len(counts)
			pos[c.Sentiment] = i
			counts = append(counts, LabelCount{Label: c.Sentiment})
		}
		counts[i].Count++
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	return counts
}

// Labels returns the labels of counts in order.
func Labels(counts []LabelCount) []string {
	labels := make([]string, len(counts))
	for i, c := range counts {
		labels[i] = c.Label
	}
	return labels
}

// Slice is one wedge of the sentiment composition pie.
type Slice struct {
	Label   string  `json:"label"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
	Display string  `json:"display"`
}

// Composition turns label counts into pie slices with one-decimal labels.
func Composition(counts []LabelCount) []Slice {
	total := 0
	for _, c := range counts {
		total += c.Count
	}
	slices := make([]Slice, 0, len(counts))
	if total == 0 {
		return slices
	}
	for _, c := range counts {
		pct := float64(c.Count) * 100 / float64(total)
		slices = append(slices, Slice{
			Label:   c.Label,
			Count:   c.Count,
			Percent: pct,
			Display: fmt.Sprintf("%.1f%%", pct),
		})
	}
	return slices
}
