package repository

import (
	"context"

	"gorm.io/gorm"
)

type chatRepository struct {
	database *gorm.DB
}

func (c *chatRepository) Send(ctx context.Context, msg *Chat) error {
	return c.database.WithContext(ctx).Create(msg).Error
}

// History returns the two-way conversation between a user and a peer,
// oldest first. Clients poll this; there is no push transport.
func (c *chatRepository) History(ctx context.Context, userID, peerID uint) ([]Chat, error) {
	var msgs []Chat
	err := c.database.WithContext(ctx).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userID, peerID, peerID, userID).
		Order("created_at ASC").
		Find(&msgs).Error
	return msgs, err
}

// MarkRead flags everything the peer sent to the user as read.
func (c *chatRepository) MarkRead(ctx context.Context, userID, peerID uint) error {
	return c.database.WithContext(ctx).Model(&Chat{}).
		Where("receiver_id = ? AND sender_id = ? AND is_read = ?", userID, peerID, false).
		Update("is_read", true).Error
}

func (c *chatRepository) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	var n int64
	err := c.database.WithContext(ctx).Model(&Chat{}).
		Where("receiver_id = ? AND is_read = ?", userID, false).
		Count(&n).Error
	return n, err
}

// PartnerIDs lists the distinct users this user has exchanged messages
// with, most recent conversation first.
func (c *chatRepository) PartnerIDs(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	err := c.database.WithContext(ctx).Model(&Chat{}).
		Select("CASE WHEN sender_id = ? THEN receiver_id ELSE sender_id END AS partner_id", userID).
		Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Group("partner_id").
		Order("MAX(created_at) DESC").
		Pluck("partner_id", &ids).Error
	return ids, err
}

type ChatRepository interface {
	Send(ctx context.Context, msg *Chat) error
	History(ctx context.Context, userID, peerID uint) ([]Chat, error)
	MarkRead(ctx context.Context, userID, peerID uint) error
	UnreadCount(ctx context.Context, userID uint) (int64, error)
	PartnerIDs(ctx context.Context, userID uint) ([]uint, error)
}

func NewChatRepo(db *gorm.DB) ChatRepository {
	return &chatRepository{database: db}
}
