package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"comment-analytics/analytics"
	"comment-analytics/models"
)

// DashboardData is the dashboard.html template context.
type DashboardData struct {
	View   analytics.ViewModel
	Charts ChartData
}

// ChartData is embedded as JSON in the page for the client-side charts.
type ChartData struct {
	Bar   BarChart   `json:"bar"`
	Pie   PieChart   `json:"pie"`
	Trend TrendChart `json:"trend"`
}

// BarChart is the sentiment count chart.
type BarChart struct {
	Labels []string `json:"labels"`
	Counts []int    `json:"counts"`
}

// PieChart is the sentiment composition chart.
type PieChart struct {
	Labels   []string `json:"labels"`
	Counts   []int    `json:"counts"`
	Displays []string `json:"displays"`
}

// TrendChart is one line per sentiment over the trend dates.
type TrendChart struct {
	Dates  []string      `json:"dates"`
	Series []TrendSeries `json:"series"`
}

// TrendSeries is the per-date counts of one label.
type TrendSeries struct {
	Label  string `json:"label"`
	Counts []int  `json:"counts"`
}

// Dashboard renders the whole page. ?sentiment= picks the word cloud label.
func (h *Handler) Dashboard(c *gin.Context) {
	table, ok := h.table(c, true)
	if !ok {
		return
	}

	vm := analytics.Render(table, c.Query("sentiment"))
	c.HTML(http.StatusOK, "dashboard.html", DashboardData{
		View:   vm,
		Charts: buildCharts(vm),
	})
}

func buildCharts(vm analytics.ViewModel) ChartData {
	var charts ChartData

	charts.Bar.Labels = analytics.Labels(vm.SentimentCounts)
	charts.Bar.Counts = make([]int, len(vm.SentimentCounts))
	for i, lc := range vm.SentimentCounts {
		charts.Bar.Counts[i] = lc.Count
	}

	charts.Pie.Labels = make([]string, len(vm.Composition))
	charts.Pie.Counts = make([]int, len(vm.Composition))
	charts.Pie.Displays = make([]string, len(vm.Composition))
	for i, s := range vm.Composition {
		charts.Pie.Labels[i] = s.Label
		charts.Pie.Counts[i] = s.Count
		charts.Pie.Displays[i] = s.Display
	}

	charts.Trend.Dates = make([]string, len(vm.Trend.Dates))
	for i, d := range vm.Trend.Dates {
		charts.Trend.Dates[i] = d.String()
	}
	charts.Trend.Series = make([]TrendSeries, len(vm.Trend.Labels))
	for i, label := range vm.Trend.Labels {
		charts.Trend.Series[i] = TrendSeries{Label: label, Counts: vm.Trend.Series(label)}
	}
	return charts
}

// table fetches the current table and answers with 500 when it cannot be
// loaded. html selects the error page over a JSON body.
func (h *Handler) table(c *gin.Context, html bool) (*models.Table, bool) {
	table, err := h.tables.Get()
	if err == nil {
		return table, true
	}

	_ = c.Error(err)
	h.log.WithError(err).Error("Comments table unavailable")
	if html {
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{"error": "Failed to load comments data"})
	} else {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load comments data"})
	}
	return nil, false
}
