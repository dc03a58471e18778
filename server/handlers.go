package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/spektr-org/trendboard/dataset"
	"github.com/spektr-org/trendboard/engine"
)

// dashboardRequest is the filter selection plus an optional row limit for
// the top hashtags view. A filter column that is absent or empty rejects
// every post.
type dashboardRequest struct {
	engine.FilterSpec
	TopHashtags int `json:"top_hashtags" form:"top_hashtags" binding:"omitempty,min=1,max=100"`
}

type optionsResponse struct {
	Source   string                 `json:"source"`
	Posts    int                    `json:"posts"`
	Filters  []dataset.FilterOption `json:"filters"`
	Defaults engine.FilterSpec      `json:"defaults"`
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"source": s.ds.Source(),
		"posts":  s.ds.Len(),
	})
}

func (s *Server) options(c *gin.Context) {
	c.JSON(http.StatusOK, optionsResponse{
		Source:   s.ds.Source(),
		Posts:    s.ds.Len(),
		Filters:  s.ds.FilterOptions(),
		Defaults: s.ds.DefaultFilterSpec(),
	})
}

func (s *Server) dashboardQuery(c *gin.Context) {
	var req dashboardRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid query", err)
		return
	}
	c.JSON(http.StatusOK, s.build(c, req.FilterSpec, req.TopHashtags))
}

func (s *Server) dashboardJSON(c *gin.Context) {
	var req dashboardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}
	c.JSON(http.StatusOK, s.build(c, req.FilterSpec, req.TopHashtags))
}

func (s *Server) dashboardDefault(c *gin.Context) {
	c.JSON(http.StatusOK, s.build(c, s.ds.DefaultFilterSpec(), 0))
}

func abortWithError(c *gin.Context, status int, msg string, err error) {
	c.AbortWithStatusJSON(status, gin.H{
		"error":      msg + ": " + err.Error(),
		"request_id": RequestIDFrom(c),
	})
}
