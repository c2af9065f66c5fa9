package handlers

import (
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
)

// RouterOptions configures NewRouter.
type RouterOptions struct {
	TemplatesDir string
	Middleware   []gin.HandlerFunc
	Metrics      gin.HandlerFunc
}

// NewRouter registers every route on a new gin engine.
func NewRouter(h *Handler, opts RouterOptions) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(opts.Middleware...)

	r.SetFuncMap(h.FuncMap())
	r.LoadHTMLGlob(filepath.Join(opts.TemplatesDir, "*.html"))

	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/dashboard")
	})
	r.GET("/dashboard", h.Dashboard)
	r.GET("/download", h.Download)
	r.GET("/health", h.Health)
	if opts.Metrics != nil {
		r.GET("/metrics", opts.Metrics)
	}

	api := r.Group("/api")
	{
		api.GET("/summary", h.Summary)
		api.GET("/top", h.TopLiked)
		api.GET("/trend", h.Trend)
		api.GET("/wordcloud", h.WordCloud)
		api.GET("/comments", h.GetComments)
		api.POST("/cache/clear", h.ClearCache)
	}

	return r
}
