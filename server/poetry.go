package server

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"kindle/repository"

	"github.com/gin-gonic/gin"
)

type poemRequest struct {
	Title    string `json:"title" binding:"required,max=200"`
	Author   string `json:"author" binding:"required,max=100"`
	Content  string `json:"content"`
	Category string `json:"category"`
	Tags     string `json:"tags"`
}

// poetryFilter reads the poem query parameters with the same permissive
// stance as the catalog: a bad value drops the filter, never the request.
func poetryFilter(c *gin.Context) repository.PoetryFilter {
	f := repository.PoetryFilter{
		Title:     c.Query("title"),
		Author:    c.Query("author"),
		Category:  c.Query("category"),
		Content:   c.Query("content"),
		Search:    c.Query("search"),
		SortBy:    c.Query("sortBy"),
		SortOrder: c.Query("sortOrder"),
	}
	if tags := c.Query("tags"); tags != "" {
		for _, t := range strings.Split(tags, ",") {
			if t = strings.TrimSpace(t); t != "" {
				f.Tags = append(f.Tags, t)
			}
		}
	}
	if raw := c.Query("userId"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 32); err == nil {
			f.UserID = uint(id)
		}
	}
	if raw := c.Query("dateFrom"); raw != "" {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			f.DateFrom = &t
		}
	}
	if raw := c.Query("dateTo"); raw != "" {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			f.DateTo = &t
		}
	}
	return f
}

func (s *Server) listPoems(c *gin.Context) {
	poems, err := s.poetry.List(c.Request.Context(), poetryFilter(c))
	if err != nil {
		respondError(c, err)
		return
	}
	if poems == nil {
		poems = []repository.Poetry{}
	}
	c.JSON(http.StatusOK, gin.H{"poems": poems})
}

func (s *Server) getPoem(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	poem, err := s.poetry.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"poem": poem})
}

func (s *Server) createPoem(c *gin.Context) {
	var req poemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	poem := repository.Poetry{
		Title:    req.Title,
		Author:   req.Author,
		Content:  req.Content,
		Category: req.Category,
		Tags:     req.Tags,
		UserID:   currentUserID(c),
	}
	if err := s.poetry.Create(c.Request.Context(), &poem); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "poem created successfully", "poem": poem})
}

func (s *Server) updatePoem(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req poemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	poem := repository.Poetry{
		ID:       id,
		Title:    req.Title,
		Author:   req.Author,
		Content:  req.Content,
		Category: req.Category,
		Tags:     req.Tags,
		UserID:   currentUserID(c),
	}
	if err := s.poetry.Update(c.Request.Context(), &poem); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "poem updated successfully"})
}

func (s *Server) deletePoem(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := s.poetry.Delete(c.Request.Context(), currentUserID(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "poem deleted successfully"})
}
