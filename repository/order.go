package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"kindle/domain"

	"gorm.io/gorm"
)

type orderRepository struct {
	database *gorm.DB
}

// CreateFromCart persists the order with its items and clears the user's
// cart in one transaction. Either everything below commits or nothing
// does; a half-written order never becomes visible.
func (o *orderRepository) CreateFromCart(ctx context.Context, order *Order, items []OrderItem) error {
	return o.database.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].OrderID = order.ID
		}
		if err := tx.Create(&items).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", order.UserID).Delete(&CartItem{}).Error; err != nil {
			return err
		}
		order.Items = items
		return nil
	})
}

func (o *orderRepository) ExistsByNumber(ctx context.Context, orderNumber string) (bool, error) {
	var n int64
	err := o.database.WithContext(ctx).Model(&Order{}).
		Where("order_number = ?", orderNumber).
		Count(&n).Error
	return n > 0, err
}

func (o *orderRepository) ListForUser(ctx context.Context, userID uint) ([]Order, error) {
	var orders []Order
	err := o.database.WithContext(ctx).
		Preload("Items").
		Preload("Items.Book").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

func (o *orderRepository) GetForUser(ctx context.Context, userID, orderID uint) (Order, error) {
	var order Order
	err := o.database.WithContext(ctx).
		Preload("Items").
		Preload("Items.Book").
		Where("id = ? AND user_id = ?", orderID, userID).
		First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Order{}, fmt.Errorf("order %d: %w", orderID, domain.ErrNotFound)
	}
	return order, err
}

// UpdateStatus moves an order along its admin-driven lifecycle.
func (o *orderRepository) UpdateStatus(ctx context.Context, orderID uint, status OrderStatus) error {
	switch status {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusCompleted, OrderStatusCancelled:
	default:
		return fmt.Errorf("unknown order status %q: %w", status, domain.ErrInvalidInput)
	}
	res := o.database.WithContext(ctx).Model(&Order{}).
		Where("id = ?", orderID).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("order %d: %w", orderID, domain.ErrNotFound)
	}
	return nil
}

func (o *orderRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := o.database.WithContext(ctx).Model(&Order{}).Count(&n).Error
	return n, err
}

func (o *orderRepository) CountForUser(ctx context.Context, userID uint, since time.Time) (int64, error) {
	q := o.database.WithContext(ctx).Model(&Order{}).Where("user_id = ?", userID)
	if !since.IsZero() {
		q = q.Where("created_at >= ?", since)
	}
	var n int64
	err := q.Count(&n).Error
	return n, err
}

// Revenue sums totals over orders whose payment went through.
func (o *orderRepository) Revenue(ctx context.Context) (float64, error) {
	var revenue float64
	err := o.database.WithContext(ctx).Model(&Order{}).
		Where("payment_status = ?", PaymentStatusCompleted).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&revenue).Error
	return revenue, err
}

type OrderRepository interface {
	CreateFromCart(ctx context.Context, order *Order, items []OrderItem) error
	ExistsByNumber(ctx context.Context, orderNumber string) (bool, error)
	ListForUser(ctx context.Context, userID uint) ([]Order, error)
	GetForUser(ctx context.Context, userID, orderID uint) (Order, error)
	UpdateStatus(ctx context.Context, orderID uint, status OrderStatus) error
	Count(ctx context.Context) (int64, error)
	CountForUser(ctx context.Context, userID uint, since time.Time) (int64, error)
	Revenue(ctx context.Context) (float64, error)
}

func NewOrderRepo(db *gorm.DB) OrderRepository {
	return &orderRepository{database: db}
}
