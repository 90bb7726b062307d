package catalog

import (
	"net/url"
	"testing"

	"kindle/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFilter_ReadsEverything(t *testing.T) {
	values := url.Values{}
	values.Set("title", "dune")
	values.Set("author", "herbert")
	values.Set("tags", " sci-fi , space ,")
	values.Set("minPrice", "5.50")
	values.Set("maxPrice", "20")
	values.Set("minRating", "3")
	values.Set("maxPages", "500")
	values.Set("publishYear", "1965")
	values.Set("inStock", "true")
	values.Set("search", "spice")
	values.Set("sortBy", "price")
	values.Set("sortOrder", "DESC")

	f := ParseFilter(values)
	assert.Equal(t, "dune", f.Title)
	assert.Equal(t, "herbert", f.Author)
	assert.Equal(t, []string{"sci-fi", "space"}, f.Tags)
	require.NotNil(t, f.MinPrice)
	assert.Equal(t, 5.5, *f.MinPrice)
	require.NotNil(t, f.MaxPrice)
	assert.Equal(t, 20.0, *f.MaxPrice)
	require.NotNil(t, f.MinRating)
	assert.Equal(t, 3.0, *f.MinRating)
	assert.Nil(t, f.MaxRating)
	require.NotNil(t, f.MaxPages)
	assert.Equal(t, 500, *f.MaxPages)
	require.NotNil(t, f.Year)
	assert.Equal(t, 1965, *f.Year)
	assert.True(t, f.InStock)
	assert.Equal(t, "spice", f.Search)
	assert.Equal(t, "price", f.SortBy)
	assert.Equal(t, "DESC", f.SortOrder)
}

// a malformed value drops that filter, it never fails the request
func TestParseFilter_IgnoresMalformedNumbers(t *testing.T) {
	values := url.Values{}
	values.Set("minPrice", "cheap")
	values.Set("maxRating", "lots")
	values.Set("publishYear", "mcmxlv")
	values.Set("inStock", "yes") // only the literal "true" counts

	f := ParseFilter(values)
	assert.Nil(t, f.MinPrice)
	assert.Nil(t, f.MaxRating)
	assert.Nil(t, f.Year)
	assert.False(t, f.InStock)
}

func TestParseFilter_DefaultSort(t *testing.T) {
	f := ParseFilter(url.Values{})
	assert.Equal(t, "title", f.SortBy)
}

func statsBooks() []repository.Book {
	return []repository.Book{
		{Title: "1984", Category: "Dystopian", Genre: "Science Fiction", Publisher: "Secker & Warburg",
			Language: "English", PublishYear: 1949, Tags: "dystopian, orwell", Price: 10.99, Rating: 4.2},
		{Title: "Dune", Category: "Science Fiction", Genre: "Space Opera", Publisher: "Chilton Books",
			Language: "English", PublishYear: 1965, Tags: "sci-fi, space, orwell", Price: 14.99, Rating: 4.7},
		{Title: "Untagged", Language: "English", Price: 5.00, Rating: 0},
	}
}

func TestComputeStats(t *testing.T) {
	stats := ComputeStats(statsBooks())

	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, []string{"Dystopian", "Science Fiction"}, stats.Categories)
	assert.Equal(t, []string{"Science Fiction", "Space Opera"}, stats.Genres)
	assert.Equal(t, []string{"Secker & Warburg", "Chilton Books"}, stats.Publishers)
	assert.Equal(t, []string{"English"}, stats.Languages)
	assert.Equal(t, []int{1965, 1949}, stats.PublicationYears, "years sort newest first")
	assert.Equal(t, []string{"dystopian", "orwell", "sci-fi", "space"}, stats.PopularTags,
		"tags dedupe in order of first appearance")
	assert.Equal(t, ValueRange{Min: 5.00, Max: 14.99}, stats.PriceRange)
	assert.Equal(t, ValueRange{Min: 0, Max: 4.7}, stats.RatingRange)
}

// min/max over nothing must degrade to zeros, never NaN or infinities
func TestComputeStats_EmptySet(t *testing.T) {
	stats := ComputeStats(nil)

	assert.Zero(t, stats.Total)
	assert.Equal(t, ValueRange{}, stats.PriceRange)
	assert.Equal(t, ValueRange{}, stats.RatingRange)
	assert.NotNil(t, stats.Categories)
	assert.Empty(t, stats.Categories)
	assert.NotNil(t, stats.PublicationYears)
}

func TestComputeStats_PopularTagsCapAtTwenty(t *testing.T) {
	books := make([]repository.Book, 25)
	for i := range books {
		books[i] = repository.Book{Tags: "tag-" + string(rune('a'+i))}
	}
	stats := ComputeStats(books)
	assert.Len(t, stats.PopularTags, 20)
	assert.Equal(t, "tag-a", stats.PopularTags[0])
}
