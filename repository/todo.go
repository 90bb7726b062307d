package repository

import (
	"context"
	"errors"
	"fmt"

	"kindle/domain"

	"gorm.io/gorm"
)

type todoRepository struct {
	database *gorm.DB
}

func (t *todoRepository) ListForUser(ctx context.Context, userID uint, status, priority string) ([]Todo, error) {
	q := t.database.WithContext(ctx).Where("user_id = ?", userID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if priority != "" {
		q = q.Where("priority = ?", priority)
	}
	var todos []Todo
	err := q.Order("created_at DESC").Find(&todos).Error
	return todos, err
}

func (t *todoRepository) GetForUser(ctx context.Context, userID, todoID uint) (Todo, error) {
	var todo Todo
	err := t.database.WithContext(ctx).
		Where("id = ? AND user_id = ?", todoID, userID).
		First(&todo).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Todo{}, fmt.Errorf("todo %d: %w", todoID, domain.ErrNotFound)
	}
	return todo, err
}

func (t *todoRepository) Create(ctx context.Context, todo *Todo) error {
	return t.database.WithContext(ctx).Create(todo).Error
}

func (t *todoRepository) Update(ctx context.Context, todo *Todo) error {
	return t.database.WithContext(ctx).Save(todo).Error
}

func (t *todoRepository) Delete(ctx context.Context, userID, todoID uint) error {
	res := t.database.WithContext(ctx).
		Where("id = ? AND user_id = ?", todoID, userID).
		Delete(&Todo{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("todo %d: %w", todoID, domain.ErrNotFound)
	}
	return nil
}

func (t *todoRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := t.database.WithContext(ctx).Model(&Todo{}).Count(&n).Error
	return n, err
}

func (t *todoRepository) CountForUser(ctx context.Context, userID uint, status string) (int64, error) {
	q := t.database.WithContext(ctx).Model(&Todo{}).Where("user_id = ?", userID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var n int64
	err := q.Count(&n).Error
	return n, err
}

func (t *todoRepository) RecentForUser(ctx context.Context, userID uint, limit int) ([]Todo, error) {
	var todos []Todo
	err := t.database.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Limit(limit).
		Find(&todos).Error
	return todos, err
}

type TodoRepository interface {
	ListForUser(ctx context.Context, userID uint, status, priority string) ([]Todo, error)
	GetForUser(ctx context.Context, userID, todoID uint) (Todo, error)
	Create(ctx context.Context, todo *Todo) error
	Update(ctx context.Context, todo *Todo) error
	Delete(ctx context.Context, userID, todoID uint) error
	Count(ctx context.Context) (int64, error)
	CountForUser(ctx context.Context, userID uint, status string) (int64, error)
	RecentForUser(ctx context.Context, userID uint, limit int) ([]Todo, error)
}

func NewTodoRepo(db *gorm.DB) TodoRepository {
	return &todoRepository{database: db}
}
