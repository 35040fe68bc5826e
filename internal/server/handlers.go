package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ppiankov/orgresolve/internal/model"
)

const maxLimit = 50

// limitParam reads ?limit= clamped to [1, maxLimit]; fallback when absent
func limitParam(c *gin.Context, fallback int) (int, bool) {
	raw := c.Query("limit")
	if raw == "" {
		return fallback, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, false
	}
	if n > maxLimit {
		n = maxLimit
	}
	return n, true
}

type autocompleteResponse struct {
	Query       string              `json:"query"`
	Suggestions []model.MatchResult `json:"suggestions"`
}

func (s *Server) autocomplete(c *gin.Context) {
	limit, valid := limitParam(c, s.pipeline.Config().Catalog.SuggestLimit)
	if !valid {
		badRequest(c, "limit must be a positive integer")
		return
	}
	q := c.Query("q")
	ok(c, http.StatusOK, autocompleteResponse{
		Query:       q,
		Suggestions: s.pipeline.Search(q, limit),
	})
}

type intelligentSearchRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit"`
}

func (s *Server) intelligentSearch(c *gin.Context) {
	var req intelligentSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid JSON body")
		return
	}
	if req.Query == "" {
		badRequest(c, "query is required")
		return
	}
	if req.Limit > maxLimit {
		req.Limit = maxLimit
	}
	ok(c, http.StatusOK, s.pipeline.IntelligentSearch(c.Request.Context(), req.Query, req.Limit))
}

func (s *Server) supplementStatus(c *gin.Context) {
	q := c.Query("query")
	if q == "" {
		badRequest(c, "query is required")
		return
	}
	ok(c, http.StatusOK, s.pipeline.PollSupplementation(q))
}

type popularResponse struct {
	Companies []string `json:"companies"`
}

func (s *Server) popular(c *gin.Context) {
	limit, valid := limitParam(c, s.pipeline.Config().Catalog.PopularLimit)
	if !valid {
		badRequest(c, "limit must be a positive integer")
		return
	}
	ok(c, http.StatusOK, popularResponse{Companies: s.pipeline.Popular(limit)})
}

func (s *Server) companyInfo(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		badRequest(c, "name is required")
		return
	}
	entry, err := s.pipeline.Lookup(c.Request.Context(), name)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, entry)
}

type addCompanyResponse struct {
	Name  string `json:"name"`
	Added bool   `json:"added"`
}

func (s *Server) addCompany(c *gin.Context) {
	var entry model.CatalogEntry
	if err := c.ShouldBindJSON(&entry); err != nil {
		badRequest(c, "invalid JSON body")
		return
	}
	entry.Origin = model.OriginManual
	added, err := s.pipeline.AddEntry(entry)
	if err != nil {
		fail(c, err)
		return
	}
	status := http.StatusOK
	if added {
		status = http.StatusCreated
	}
	ok(c, status, addCompanyResponse{Name: entry.Name, Added: added})
}

type healthResponse struct {
	Status string `json:"status"`
	Names  int    `json:"names"`
}

func (s *Server) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, healthResponse{Status: "ok", Names: s.pipeline.Index().Len()})
}
