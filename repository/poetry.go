package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"kindle/domain"

	"gorm.io/gorm"
)

// PoetryFilter mirrors the catalog filter shape for the poetry library.
type PoetryFilter struct {
	Title     string
	Author    string
	Category  string
	Content   string
	Tags      []string
	UserID    uint
	DateFrom  *time.Time
	DateTo    *time.Time
	Search    string
	SortBy    string
	SortOrder string
}

var poetrySortColumns = map[string]string{
	"title":     "title",
	"author":    "author",
	"category":  "category",
	"createdAt": "created_at",
}

type poetryRepository struct {
	database *gorm.DB
}

func (p *poetryRepository) List(ctx context.Context, f PoetryFilter) ([]Poetry, error) {
	q := p.database.WithContext(ctx).Model(&Poetry{})

	if f.Title != "" {
		q = q.Where("LOWER(title) LIKE ?", contains(f.Title))
	}
	if f.Author != "" {
		q = q.Where("LOWER(author) LIKE ?", contains(f.Author))
	}
	if f.Category != "" {
		q = q.Where("LOWER(category) LIKE ?", contains(f.Category))
	}
	if f.Content != "" {
		q = q.Where("LOWER(content) LIKE ?", contains(f.Content))
	}
	if f.UserID != 0 {
		q = q.Where("user_id = ?", f.UserID)
	}
	if len(f.Tags) > 0 {
		tagQ := p.database.Where("LOWER(tags) LIKE ?", contains(f.Tags[0]))
		for _, tag := range f.Tags[1:] {
			tagQ = tagQ.Or("LOWER(tags) LIKE ?", contains(tag))
		}
		q = q.Where(tagQ)
	}
	if f.DateFrom != nil {
		q = q.Where("created_at >= ?", *f.DateFrom)
	}
	if f.DateTo != nil {
		q = q.Where("created_at <= ?", *f.DateTo)
	}
	if f.Search != "" {
		term := contains(f.Search)
		q = q.Where(p.database.
			Where("LOWER(title) LIKE ?", term).
			Or("LOWER(author) LIKE ?", term).
			Or("LOWER(content) LIKE ?", term).
			Or("LOWER(category) LIKE ?", term).
			Or("LOWER(tags) LIKE ?", term))
	}

	col, ok := poetrySortColumns[f.SortBy]
	if !ok {
		col = "created_at"
	}
	dir := "DESC"
	if f.SortOrder == "ASC" || f.SortOrder == "asc" {
		dir = "ASC"
	}

	var poems []Poetry
	err := q.Order(col + " " + dir).Find(&poems).Error
	return poems, err
}

func (p *poetryRepository) GetByID(ctx context.Context, id uint) (Poetry, error) {
	var poem Poetry
	err := p.database.WithContext(ctx).First(&poem, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Poetry{}, fmt.Errorf("poem %d: %w", id, domain.ErrNotFound)
	}
	return poem, err
}

func (p *poetryRepository) Create(ctx context.Context, poem *Poetry) error {
	return p.database.WithContext(ctx).Create(poem).Error
}

// Update persists an edit; only the owner's rows are touched.
func (p *poetryRepository) Update(ctx context.Context, poem *Poetry) error {
	res := p.database.WithContext(ctx).Model(&Poetry{}).
		Where("id = ? AND user_id = ?", poem.ID, poem.UserID).
		Updates(map[string]interface{}{
			"title":    poem.Title,
			"author":   poem.Author,
			"content":  poem.Content,
			"category": poem.Category,
			"tags":     poem.Tags,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("poem %d: %w", poem.ID, domain.ErrNotFound)
	}
	return nil
}

func (p *poetryRepository) Delete(ctx context.Context, userID, poemID uint) error {
	res := p.database.WithContext(ctx).
		Where("id = ? AND user_id = ?", poemID, userID).
		Delete(&Poetry{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("poem %d: %w", poemID, domain.ErrNotFound)
	}
	return nil
}

func (p *poetryRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := p.database.WithContext(ctx).Model(&Poetry{}).Count(&n).Error
	return n, err
}

func (p *poetryRepository) CountForUser(ctx context.Context, userID uint) (int64, error) {
	var n int64
	err := p.database.WithContext(ctx).Model(&Poetry{}).
		Where("user_id = ?", userID).
		Count(&n).Error
	return n, err
}

func (p *poetryRepository) RecentForUser(ctx context.Context, userID uint, limit int) ([]Poetry, error) {
	var poems []Poetry
	err := p.database.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&poems).Error
	return poems, err
}

type PoetryRepository interface {
	List(ctx context.Context, f PoetryFilter) ([]Poetry, error)
	GetByID(ctx context.Context, id uint) (Poetry, error)
	Create(ctx context.Context, poem *Poetry) error
	Update(ctx context.Context, poem *Poetry) error
	Delete(ctx context.Context, userID, poemID uint) error
	Count(ctx context.Context) (int64, error)
	CountForUser(ctx context.Context, userID uint) (int64, error)
	RecentForUser(ctx context.Context, userID uint, limit int) ([]Poetry, error)
}

func NewPoetryRepo(db *gorm.DB) PoetryRepository {
	return &poetryRepository{database: db}
}
