package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"kindle/domain"

	"gorm.io/gorm"
)

type userRepository struct {
	database *gorm.DB
}

func (u *userRepository) Create(ctx context.Context, user *User) error {
	err := u.database.WithContext(ctx).Create(user).Error
	if err != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("username or email already taken: %w", domain.ErrConflict)
	}
	return err
}

func (u *userRepository) GetByID(ctx context.Context, id uint) (User, error) {
	var user User
	err := u.database.WithContext(ctx).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return User{}, fmt.Errorf("user %d: %w", id, domain.ErrNotFound)
	}
	return user, err
}

func (u *userRepository) GetByEmail(ctx context.Context, email string) (User, error) {
	var user User
	err := u.database.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return User{}, fmt.Errorf("user %s: %w", email, domain.ErrNotFound)
	}
	return user, err
}

func (u *userRepository) GetByUsername(ctx context.Context, username string) (User, error) {
	var user User
	err := u.database.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return User{}, fmt.Errorf("user %s: %w", username, domain.ErrNotFound)
	}
	return user, err
}

func (u *userRepository) List(ctx context.Context) ([]User, error) {
	var users []User
	err := u.database.WithContext(ctx).Order("created_at DESC").Find(&users).Error
	return users, err
}

// ListOthers returns every user except the given one, for the chat
// partner picker.
func (u *userRepository) ListOthers(ctx context.Context, userID uint) ([]User, error) {
	var users []User
	err := u.database.WithContext(ctx).
		Where("id <> ?", userID).
		Order("username ASC").
		Find(&users).Error
	return users, err
}

func (u *userRepository) Count(ctx context.Context, since time.Time) (int64, error) {
	q := u.database.WithContext(ctx).Model(&User{})
	if !since.IsZero() {
		q = q.Where("created_at >= ?", since)
	}
	var n int64
	err := q.Count(&n).Error
	return n, err
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id uint) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByUsername(ctx context.Context, username string) (User, error)
	List(ctx context.Context) ([]User, error)
	ListOthers(ctx context.Context, userID uint) ([]User, error)
	Count(ctx context.Context, since time.Time) (int64, error)
}

func NewUserRepo(db *gorm.DB) UserRepository {
	return &userRepository{database: db}
}
