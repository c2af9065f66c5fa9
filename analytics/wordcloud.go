package analytics

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"comment-analytics/models"
)

// MaxCloudWords caps the number of words drawn in a cloud.
const MaxCloudWords = 200

// NoCloudText is shown instead of a cloud when the selection has no text.
const NoCloudText = "No text data available for WordCloud."

// Letters and digits from any script; \w in RE2 is ASCII only.
var wordPattern = regexp.MustCompile(`[\p{L}\p{N}_][\p{L}\p{N}\p{M}_']*`)

var stopWords = toSet(`a about above after again against all am an and any are aren't as at be because been
before being below between both but by can't cannot could couldn't did didn't do does doesn't doing don't
down during each few for from further had hadn't has hasn't have haven't having he he'd he'll he's her here
here's hers herself him himself his how how's i i'd i'll i'm i've if in into is isn't it it's its itself
let's me more most mustn't my myself no nor not of off on once only or other ought our ours ourselves out
over own same shan't she she'd she'll she's should shouldn't so some such than that that's the their theirs
them themselves then there there's these they they'd they'll they're they've this those through to too
under until up very was wasn't we we'd we'll we're we've were weren't what what's when when's where where's
which while who who's whom why why's with won't would wouldn't you you'd you'll you're you've your yours
yourself yourselves also however just ever get like r com http www`)

func toSet(words string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(words) {
		set[w] = true
	}
	return set
}

// WordCloudText joins the clean text of every comment labelled label, in
// table order.
func WordCloudText(table *models.Table, label string) string {
	if table == nil {
		return ""
	}
	parts := make([]string, 0, len(table.Comments))
	for _, c := range table.Comments {
		if c.Sentiment == label {
			parts = append(parts, c.CleanText)
		}
	}
	return strings.Join(parts, " ")
}

// HasCloudText reports whether text can be drawn as a word cloud.
func HasCloudText(text string) bool {
	return strings.TrimSpace(text) != ""
}

// WordWeight is one word of a cloud. Weight is relative to the most
// frequent word, so the top word has weight 1.
type WordWeight struct {
	Word   string  `json:"word"`
	Count  int     `json:"count"`
	Weight float64 `json:"weight"`
}

// WordFrequencies counts the words of text, dropping stop words and bare
// numbers, and returns at most limit words, most frequent first.
func WordFrequencies(text string, limit int) []WordWeight {
	counts := make(map[string]int)
	for _, tok := range wordPattern.FindAllString(text, -1) {
		w := strings.ToLower(tok)
		w = strings.TrimSuffix(w, "'s")
		if w == "" || stopWords[w] || isDigits(w) {
			continue
		}
		counts[w]++
	}

	words := make([]WordWeight, 0, len(counts))
	for w, n := range counts {
		words = append(words, WordWeight{Word: w, Count: n})
	}
	sort.Slice(words, func(i, j int) bool {
		if words[i].Count != words[j].Count {
			return words[i].Count > words[j].Count
		}
		return words[i].Word < words[j].Word
	})
	if limit > 0 && len(words) > limit {
		words = words[:limit]
	}
	if len(words) > 0 {
		top := float64(words[0].Count)
		for i := range words {
			words[i].Weight = float64(words[i].Count) / top
		}
	}
	return words
}

func isDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsNumber(r) {
			return false
		}
	}
	return true
}
