package handlers

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"comment-analytics/database"
	"comment-analytics/dataset"
	"comment-analytics/models"
)

type stubTables struct {
	table       *models.Table
	err         error
	invalidated int
}

func (s *stubTables) Get() (*models.Table, error) { return s.table, s.err }
func (s *stubTables) Invalidate() { s.invalidated++ }

type stubQuerier struct {
	last    database.CommentFilter
	results []models.CommentRecord
	err     error
}

func (s *stubQuerier) QueryComments(f database.CommentFilter) ([]models.CommentRecord, error) {
	s.last = f
	return s.results, s.err
}

const testCSV = `author,text,clean_text,sentiment,likeCount,publishedAt
u1,"Mama, <b>just</b> killed a man<script>alert(1)</script>",mama killed man,positive,5,2020-01-01T10:00:00Z
u2,b,thunderbolt lightning,negative,10,2020-01-01T11:00:00Z
u3,c,galileo figaro,positive,1,2020-01-02T09:00:00Z
u4,d,,neutral,0,broken
`

type harness struct {
	router  *gin.Engine
	tables  *stubTables
	querier *stubQuerier
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	gin.SetMode(gin.TestMode)

	table, err := dataset.Parse(strings.NewReader(testCSV))
	require.NoError(t, err)

	logger, _ := test.NewNullLogger()
	tables := &stubTables{table: table}
	querier := &stubQuerier{}
	h := New(tables, querier, logger)
	router := NewRouter(h, RouterOptions{TemplatesDir: "../templates"})
	return &harness{router: router, tables: tables, querier: querier}
}

func (h *harness) do(method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	h.router.ServeHTTP(rec, req)
	return rec
}

func TestRoot_RedirectsToDashboard(t *testing.T) {
	rec := newHarness(t).do(http.MethodGet, "/")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/dashboard", rec.Header().Get("Location"))
}

func TestDashboard_Renders(t *testing.T) {
	rec := newHarness(t).do(http.MethodGet, "/dashboard")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "Sentiment Distribution")
	assert.Contains(t, body, `<option value="positive" selected>`)
	assert.Contains(t, body, "mama")
	assert.Contains(t, body, "Download CSV")
	assert.NotContains(t, body, "u1", "author column is suppressed")
	assert.NotContains(t, body, "<script>alert(1)</script>")
	assert.Contains(t, body, "<b>just</b>", "safe comment markup is kept")
}

func TestDashboard_NoTextForSelection(t *testing.T) {
	rec := newHarness(t).do(http.MethodGet, "/dashboard?sentiment=neutral")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "No text data available for WordCloud.")
}

func TestDashboard_LoadFailure(t *testing.T) {
	h := newHarness(t)
	h.tables.err = errors.New("disk gone")

	rec := h.do(http.MethodGet, "/dashboard")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Failed to load comments data")
}

func TestSummary(t *testing.T) {
	rec := newHarness(t).do(http.MethodGet, "/api/summary")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Total           int `json:"total"`
		Unparsed        int `json:"unparsed_timestamps"`
		SentimentCounts []struct {
			Label string `json:"label"`
			Count int    `json:"count"`
		} `json:"sentiment_counts"`
		Composition []struct {
			Display string `json:"display"`
		} `json:"composition"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.Equal(t, 4, body.Total)
	assert.Equal(t, 1, body.Unparsed)
	require.Len(t, body.SentimentCounts, 3)
	assert.Equal(t, "positive", body.SentimentCounts[0].Label)
	assert.Equal(t, 2, body.SentimentCounts[0].Count)
	assert.Equal(t, "50.0%", body.Composition[0].Display)
}

func TestTopLiked(t *testing.T) {
	h := newHarness(t)

	rec := h.do(http.MethodGet, "/api/top?limit=2")
	require.Equal(t, http.StatusOK, rec.Code)
	var rows []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "b", rows[0]["text"])
	assert.EqualValues(t, 10, rows[0]["likeCount"])
	assert.NotContains(t, rows[0], "author")

	rec = h.do(http.MethodGet, "/api/top")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rows))
	assert.Len(t, rows, 4)

	for _, bad := range []string{"0", "abc", "101"} {
		rec = h.do(http.MethodGet, "/api/top?limit="+bad)
		assert.Equal(t, http.StatusBadRequest, rec.Code, bad)
	}
}

func TestTrend(t *testing.T) {
	rec := newHarness(t).do(http.MethodGet, "/api/trend")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"dates":["2020-01-01","2020-01-02"],"labels":["negative","positive"],"counts":[[1,1],[0,1]]}`, rec.Body.String())
}

func TestWordCloud(t *testing.T) {
	h := newHarness(t)

	rec := h.do(http.MethodGet, "/api/wordcloud?sentiment=negative")
	require.Equal(t, http.StatusOK, rec.Code)
	var cloud struct {
		Sentiment string `json:"sentiment"`
		NoData    bool   `json:"no_data"`
		Words     []struct {
			Word string `json:"word"`
		} `json:"words"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cloud))
	assert.Equal(t, "negative", cloud.Sentiment)
	assert.False(t, cloud.NoData)
	assert.Len(t, cloud.Words, 2)

	rec = h.do(http.MethodGet, "/api/wordcloud?sentiment=neutral")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cloud))
	assert.True(t, cloud.NoData)

	rec = h.do(http.MethodGet, "/api/wordcloud")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cloud))
	assert.Equal(t, "positive", cloud.Sentiment)
}

func TestDownload(t *testing.T) {
	rec := newHarness(t).do(http.MethodGet, "/download")
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="cleaned_bohemian_comments.csv"`, rec.Header().Get("Content-Disposition"))

	records, err := csv.NewReader(rec.Body).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 5)
	assert.Equal(t, []string{"author", "text", "clean_text", "sentiment", "likeCount", "publishedAt", "date"}, records[0])
	assert.Equal(t, "u4", records[4][0])
	assert.Equal(t, "", records[4][5])
}

func TestGetComments(t *testing.T) {
	h := newHarness(t)
	ts := time.Date(2020, 1, 1, 11, 0, 0, 0, time.UTC)
	h.querier.results = []models.CommentRecord{{Position: 1, Text: "b", Sentiment: "negative", LikeCount: 10, PublishedAt: &ts, Date: "2020-01-01"}}

	rec := h.do(http.MethodGet, "/api/comments?sentiment=negative&min_likes=3&date_from=2020-01-01&limit=5")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, database.CommentFilter{Sentiment: "negative", MinLikes: 3, DateFrom: "2020-01-01", Limit: 5}, h.querier.last)
	assert.Contains(t, rec.Body.String(), `"position":1`)

	for _, q := range []string{"limit=0", "limit=x", "min_likes=-1", "date_from=yesterday"} {
		rec = h.do(http.MethodGet, "/api/comments?"+q)
		assert.Equal(t, http.StatusBadRequest, rec.Code, q)
	}

	h.querier.err = errors.New("locked")
	rec = h.do(http.MethodGet, "/api/comments")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestGetComments_StoreDisabled(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger, _ := test.NewNullLogger()
	h := New(&stubTables{table: &models.Table{}}, nil, logger)
	router := NewRouter(h, RouterOptions{TemplatesDir: "../templates"})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/comments", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestClearCache(t *testing.T) {
	h := newHarness(t)
	rec := h.do(http.MethodPost, "/api/cache/clear")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, 1, h.tables.invalidated)
}

func TestHealth(t *testing.T) {
	h := newHarness(t)

	rec := h.do(http.MethodGet, "/health")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","rows":4}`, rec.Body.String())

	h.tables.err = errors.New("missing")
	rec = h.do(http.MethodGet, "/health")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
