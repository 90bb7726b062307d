package server

import (
	"encoding/json"
	"net/http"

	"kindle/catalog"
	"kindle/repository"

	"github.com/gin-gonic/gin"
)

// listBooks serves the filtered catalog with its facet stats. Responses
// are cached per normalized query when redis is configured.
func (s *Server) listBooks(c *gin.Context) {
	ctx := c.Request.Context()
	query := c.Request.URL.Query()
	cacheKey := query.Encode()

	if s.cache != nil {
		if payload, ok := s.cache.Get(ctx, cacheKey); ok {
			c.Data(http.StatusOK, "application/json; charset=utf-8", payload)
			return
		}
	}

	result, err := s.catalog.Query(ctx, catalog.ParseFilter(query))
	if err != nil {
		respondError(c, err)
		return
	}

	if s.cache != nil {
		if payload, err := json.Marshal(result); err == nil {
			s.cache.Set(ctx, cacheKey, payload)
		}
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) getBook(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	book, err := s.books.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"book": book})
}

type bookRequest struct {
	Title       string  `json:"title" binding:"required"`
	Author      string  `json:"author" binding:"required"`
	Price       float64 `json:"price" binding:"min=0"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Genre       string  `json:"genre"`
	Tags        string  `json:"tags"`
	PublishYear int     `json:"publishYear"`
	Publisher   string  `json:"publisher"`
	ISBN        string  `json:"isbn"`
	Pages       int     `json:"pages" binding:"min=0"`
	Language    string  `json:"language"`
	Rating      float64 `json:"rating" binding:"min=0,max=5"`
	CoverImage  string  `json:"coverImage"`
	Stock       int     `json:"stock" binding:"min=0"`
}

func (r bookRequest) apply(book *repository.Book) {
	book.Title = r.Title
	book.Author = r.Author
	book.Price = r.Price
	book.Description = r.Description
	book.Category = r.Category
	book.Genre = r.Genre
	book.Tags = r.Tags
	book.PublishYear = r.PublishYear
	book.Publisher = r.Publisher
	book.ISBN = r.ISBN
	book.Pages = r.Pages
	book.Language = r.Language
	book.Rating = r.Rating
	book.CoverImage = r.CoverImage
	book.Stock = r.Stock
}

func (s *Server) adminCreateBook(c *gin.Context) {
	var req bookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	var book repository.Book
	req.apply(&book)
	if err := s.books.Create(c.Request.Context(), &book); err != nil {
		respondError(c, err)
		return
	}
	s.invalidateCatalog(c)
	c.JSON(http.StatusCreated, gin.H{"message": "book created successfully", "book": book})
}

func (s *Server) adminUpdateBook(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req bookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	ctx := c.Request.Context()
	book, err := s.books.GetByID(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	req.apply(&book)
	if err := s.books.Update(ctx, &book); err != nil {
		respondError(c, err)
		return
	}
	s.invalidateCatalog(c)
	c.JSON(http.StatusOK, gin.H{"message": "book updated successfully", "book": book})
}

func (s *Server) adminDeleteBook(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := s.books.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	s.invalidateCatalog(c)
	c.JSON(http.StatusOK, gin.H{"message": "book deleted successfully"})
}

func (s *Server) invalidateCatalog(c *gin.Context) {
	if s.cache != nil {
		s.cache.Invalidate(c.Request.Context())
	}
}
