// Package catalog turns a bag of optional query parameters into a book
// listing plus the facet stats the filter UI is built from.
package catalog

import (
	"context"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"kindle/repository"

	"github.com/samber/lo"
)

// Stats describe the *filtered* result set, so the facet panel always
// reflects what the user currently sees.
type Stats struct {
	Total            int        `json:"total"`
	Categories       []string   `json:"categories"`
	Genres           []string   `json:"genres"`
	Publishers       []string   `json:"publishers"`
	Languages        []string   `json:"languages"`
	PublicationYears []int      `json:"publicationYears"`
	PopularTags      []string   `json:"popularTags"`
	PriceRange       ValueRange `json:"priceRange"`
	RatingRange      ValueRange `json:"ratingRange"`
}

type ValueRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type Result struct {
	Books []repository.Book `json:"books"`
	Stats Stats             `json:"stats"`
}

const maxPopularTags = 20

// ParseFilter reads the catalog query parameters permissively: a value
// that fails to parse drops that one filter instead of failing the
// request, and unknown sort fields fall back to defaults downstream.
func ParseFilter(values url.Values) repository.BookFilter {
	f := repository.BookFilter{
		Title:     values.Get("title"),
		Author:    values.Get("author"),
		Category:  values.Get("category"),
		Genre:     values.Get("genre"),
		Publisher: values.Get("publisher"),
		Language:  values.Get("language"),
		Search:    values.Get("search"),
		SortBy:    values.Get("sortBy"),
		SortOrder: values.Get("sortOrder"),
	}
	if f.SortBy == "" {
		f.SortBy = "title"
	}
	if tags := values.Get("tags"); tags != "" {
		f.Tags = splitTags(tags)
	}
	f.MinPrice = parseFloat(values.Get("minPrice"))
	f.MaxPrice = parseFloat(values.Get("maxPrice"))
	f.MinRating = parseFloat(values.Get("minRating"))
	f.MaxRating = parseFloat(values.Get("maxRating"))
	f.MinPages = parseInt(values.Get("minPages"))
	f.MaxPages = parseInt(values.Get("maxPages"))
	f.Year = parseInt(values.Get("publishYear"))
	f.InStock = values.Get("inStock") == "true"
	return f
}

func parseFloat(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

func parseInt(s string) *int {
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &v
}

func splitTags(s string) []string {
	parts := strings.Split(s, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

type Engine struct {
	books repository.BookRepository
}

func NewEngine(books repository.BookRepository) *Engine {
	return &Engine{books: books}
}

// Query runs the filter against the store and derives the facet stats
// from the rows it returned.
func (e *Engine) Query(ctx context.Context, f repository.BookFilter) (Result, error) {
	books, err := e.books.List(ctx, f)
	if err != nil {
		return Result{}, err
	}
	if books == nil {
		books = []repository.Book{}
	}
	return Result{Books: books, Stats: ComputeStats(books)}, nil
}

// ComputeStats builds the facet panel data. Distinct values keep their
// first-appearance order except publication years, which sort newest
// first. Empty inputs yield zeroed ranges, never NaN.
func ComputeStats(books []repository.Book) Stats {
	stats := Stats{
		Total: len(books),
		Categories: lo.Uniq(lo.FilterMap(books, func(b repository.Book, _ int) (string, bool) {
			return b.Category, b.Category != ""
		})),
		Genres: lo.Uniq(lo.FilterMap(books, func(b repository.Book, _ int) (string, bool) {
			return b.Genre, b.Genre != ""
		})),
		Publishers: lo.Uniq(lo.FilterMap(books, func(b repository.Book, _ int) (string, bool) {
			return b.Publisher, b.Publisher != ""
		})),
		Languages: lo.Uniq(lo.FilterMap(books, func(b repository.Book, _ int) (string, bool) {
			return b.Language, b.Language != ""
		})),
		PublicationYears: lo.Uniq(lo.FilterMap(books, func(b repository.Book, _ int) (int, bool) {
			return b.PublishYear, b.PublishYear != 0
		})),
		PopularTags: popularTags(books),
		PriceRange: valueRange(lo.Map(books, func(b repository.Book, _ int) float64 {
			return b.Price
		})),
		RatingRange: valueRange(lo.Map(books, func(b repository.Book, _ int) float64 {
			return b.Rating
		})),
	}
	sort.Sort(sort.Reverse(sort.IntSlice(stats.PublicationYears)))
	if stats.Categories == nil {
		stats.Categories = []string{}
	}
	if stats.Genres == nil {
		stats.Genres = []string{}
	}
	if stats.Publishers == nil {
		stats.Publishers = []string{}
	}
	if stats.Languages == nil {
		stats.Languages = []string{}
	}
	if stats.PublicationYears == nil {
		stats.PublicationYears = []int{}
	}
	return stats
}

// popularTags flattens the comma-joined tag strings, dedupes in order of
// first appearance, and keeps the first twenty.
func popularTags(books []repository.Book) []string {
	tags := []string{}
	for _, b := range books {
		if b.Tags == "" {
			continue
		}
		tags = append(tags, splitTags(b.Tags)...)
	}
	tags = lo.Uniq(tags)
	if len(tags) > maxPopularTags {
		tags = tags[:maxPopularTags]
	}
	return tags
}

// valueRange is min/max over the values, with the empty set pinned to
// {0, 0} so JSON never carries NaN or infinities.
func valueRange(values []float64) ValueRange {
	if len(values) == 0 {
		return ValueRange{}
	}
	return ValueRange{Min: lo.Min(values), Max: lo.Max(values)}
}
