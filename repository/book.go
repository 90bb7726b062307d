package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"kindle/domain"

	"gorm.io/gorm"
)

// BookFilter carries the catalog filter set. Zero values mean "no filter".
// All predicates are combined with AND; the entries of Tags are OR'd with
// each other before being AND'd with the rest.
type BookFilter struct {
	Title     string
	Author    string
	Category  string
	Genre     string
	Publisher string
	Language  string // exact match; "all" disables the filter
	Tags      []string
	MinPrice  *float64
	MaxPrice  *float64
	MinRating *float64
	MaxRating *float64
	MinPages  *int
	MaxPages  *int
	Year      *int
	InStock   bool
	Search    string // OR across most text columns, AND'd with the rest
	SortBy    string
	SortOrder string
}

// searchColumns are the columns the global search term is matched against.
var searchColumns = []string{
	"title", "author", "description", "category", "genre", "tags", "publisher", "isbn",
}

var sortColumns = map[string]string{
	"title":       "title",
	"author":      "author",
	"price":       "price",
	"rating":      "rating",
	"publishYear": "publish_year",
	"createdAt":   "created_at",
	"stock":       "stock",
}

type bookRepository struct {
	database *gorm.DB
}

func contains(s string) string {
	return "%" + strings.ToLower(s) + "%"
}

func (b *bookRepository) List(ctx context.Context, f BookFilter) ([]Book, error) {
	q := b.database.WithContext(ctx).Model(&Book{})

	if f.Title != "" {
		q = q.Where("LOWER(title) LIKE ?", contains(f.Title))
	}
	if f.Author != "" {
		q = q.Where("LOWER(author) LIKE ?", contains(f.Author))
	}
	if f.Category != "" {
		q = q.Where("LOWER(category) LIKE ?", contains(f.Category))
	}
	if f.Genre != "" {
		q = q.Where("LOWER(genre) LIKE ?", contains(f.Genre))
	}
	if f.Publisher != "" {
		q = q.Where("LOWER(publisher) LIKE ?", contains(f.Publisher))
	}
	if f.Language != "" && f.Language != "all" {
		q = q.Where("language = ?", f.Language)
	}
	if len(f.Tags) > 0 {
		tagQ := b.database.Where("LOWER(tags) LIKE ?", contains(f.Tags[0]))
		for _, tag := range f.Tags[1:] {
			tagQ = tagQ.Or("LOWER(tags) LIKE ?", contains(tag))
		}
		q = q.Where(tagQ)
	}
	if f.MinPrice != nil {
		q = q.Where("price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		q = q.Where("price <= ?", *f.MaxPrice)
	}
	if f.MinRating != nil {
		q = q.Where("rating >= ?", *f.MinRating)
	}
	if f.MaxRating != nil {
		q = q.Where("rating <= ?", *f.MaxRating)
	}
	if f.MinPages != nil {
		q = q.Where("pages >= ?", *f.MinPages)
	}
	if f.MaxPages != nil {
		q = q.Where("pages <= ?", *f.MaxPages)
	}
	if f.Year != nil {
		q = q.Where("publish_year = ?", *f.Year)
	}
	if f.InStock {
		q = q.Where("stock > 0")
	}
	if f.Search != "" {
		term := contains(f.Search)
		searchQ := b.database.Where(fmt.Sprintf("LOWER(%s) LIKE ?", searchColumns[0]), term)
		for _, col := range searchColumns[1:] {
			searchQ = searchQ.Or(fmt.Sprintf("LOWER(%s) LIKE ?", col), term)
		}
		q = q.Where(searchQ)
	}

	q = q.Order(orderClause(f.SortBy, f.SortOrder))

	var books []Book
	err := q.Find(&books).Error
	return books, err
}

// orderClause validates the sort request, silently falling back to
// title ASC rather than failing the whole query over a bad field.
func orderClause(sortBy, sortOrder string) string {
	col, ok := sortColumns[sortBy]
	if !ok {
		col = "title"
	}
	dir := strings.ToUpper(sortOrder)
	if dir != "ASC" && dir != "DESC" {
		dir = "ASC"
	}
	return col + " " + dir
}

func (b *bookRepository) GetByID(ctx context.Context, id uint) (Book, error) {
	var book Book
	err := b.database.WithContext(ctx).First(&book, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Book{}, fmt.Errorf("book %d: %w", id, domain.ErrNotFound)
	}
	return book, err
}

func (b *bookRepository) Create(ctx context.Context, book *Book) error {
	if book.CoverImage == "" {
		book.CoverImage = DefaultCoverImage
	}
	if book.Language == "" {
		book.Language = "English"
	}
	return b.database.WithContext(ctx).Create(book).Error
}

func (b *bookRepository) Update(ctx context.Context, book *Book) error {
	return b.database.WithContext(ctx).Save(book).Error
}

func (b *bookRepository) Delete(ctx context.Context, id uint) error {
	res := b.database.WithContext(ctx).Delete(&Book{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("book %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (b *bookRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := b.database.WithContext(ctx).Model(&Book{}).Count(&n).Error
	return n, err
}

type BookRepository interface {
	List(ctx context.Context, f BookFilter) ([]Book, error)
	GetByID(ctx context.Context, id uint) (Book, error)
	Create(ctx context.Context, book *Book) error
	Update(ctx context.Context, book *Book) error
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
}

func NewBookRepo(db *gorm.DB) BookRepository {
	return &bookRepository{database: db}
}
