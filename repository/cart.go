package repository

import (
	"context"
	"fmt"
	"math"

	"kindle/domain"

	"gorm.io/gorm"
)

type cartRepository struct {
	database *gorm.DB
}

// Add puts quantity copies of a book into the user's cart. An existing
// line is bumped with a single atomic UPDATE so concurrent adds never
// lose an increment; the (user_id, book_id) unique index catches the
// remaining create/create race and the loser retries as an update.
func (c *cartRepository) Add(ctx context.Context, userID, bookID uint, quantity int) error {
	if quantity < 1 {
		return fmt.Errorf("quantity must be at least 1: %w", domain.ErrInvalidInput)
	}
	res := c.database.WithContext(ctx).Model(&CartItem{}).
		Where("user_id = ? AND book_id = ?", userID, bookID).
		Update("quantity", gorm.Expr("quantity + ?", quantity))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}
	item := CartItem{UserID: userID, BookID: bookID, Quantity: quantity}
	if err := c.database.WithContext(ctx).Create(&item).Error; err == nil {
		return nil
	}
	return c.database.WithContext(ctx).Model(&CartItem{}).
		Where("user_id = ? AND book_id = ?", userID, bookID).
		Update("quantity", gorm.Expr("quantity + ?", quantity)).Error
}

// UpdateQuantity sets the quantity of a cart line the user owns. A line
// owned by someone else looks identical to a missing one.
func (c *cartRepository) UpdateQuantity(ctx context.Context, userID, itemID uint, quantity int) error {
	if quantity < 1 {
		return fmt.Errorf("quantity must be at least 1, remove the item instead: %w", domain.ErrInvalidInput)
	}
	res := c.database.WithContext(ctx).Model(&CartItem{}).
		Where("id = ? AND user_id = ?", itemID, userID).
		Update("quantity", quantity)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("cart item %d: %w", itemID, domain.ErrNotFound)
	}
	return nil
}

func (c *cartRepository) Remove(ctx context.Context, userID, itemID uint) error {
	res := c.database.WithContext(ctx).
		Where("id = ? AND user_id = ?", itemID, userID).
		Delete(&CartItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("cart item %d: %w", itemID, domain.ErrNotFound)
	}
	return nil
}

func (c *cartRepository) GetForUser(ctx context.Context, userID uint) ([]CartItem, error) {
	var items []CartItem
	err := c.database.WithContext(ctx).
		Preload("Book").
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&items).Error
	return items, err
}

func (c *cartRepository) ClearForUser(ctx context.Context, userID uint) error {
	return c.database.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&CartItem{}).Error
}

// CartTotal sums price*quantity over the loaded lines, rounded to cents.
func CartTotal(items []CartItem) float64 {
	var total float64
	for _, item := range items {
		total += item.Book.Price * float64(item.Quantity)
	}
	return math.Round(total*100) / 100
}

type CartRepository interface {
	Add(ctx context.Context, userID, bookID uint, quantity int) error
	UpdateQuantity(ctx context.Context, userID, itemID uint, quantity int) error
	Remove(ctx context.Context, userID, itemID uint) error
	GetForUser(ctx context.Context, userID uint) ([]CartItem, error)
	ClearForUser(ctx context.Context, userID uint) error
}

func NewCartRepo(db *gorm.DB) CartRepository {
	return &cartRepository{database: db}
}
