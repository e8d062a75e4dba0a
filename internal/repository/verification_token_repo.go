package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type VerificationTokenRepository struct {
	db *gorm.DB
}

func NewVerificationTokenRepository(db *gorm.DB) *VerificationTokenRepository {
	return &VerificationTokenRepository{db: db}
}

type verificationTokenModel struct {
	ID        int64      `gorm:"column:id;primaryKey"`
	UserID    int64      `gorm:"column:user_id"`
	Token     string     `gorm:"column:token;uniqueIndex"`
	ExpiresAt time.Time  `gorm:"column:expires_at"`
	UsedAt    *time.Time `gorm:"column:used_at"`
	CreatedAt time.Time  `gorm:"column:created_at"`
}

func (verificationTokenModel) TableName() string { return "email_verification_tokens" }

func (r *VerificationTokenRepository) Save(ctx context.Context, userID int64, token string, expiresAt time.Time) error {
	row := verificationTokenModel{
		UserID:    userID,
		Token:     token,
		ExpiresAt: expiresAt,
	}
	return r.db.WithContext(ctx).Create(&row).Error
}

// Consume marks the token used and returns its owner. An unknown, expired or
// already-used token yields gorm.ErrRecordNotFound.
func (r *VerificationTokenRepository) Consume(ctx context.Context, token string, now time.Time) (int64, error) {
	var userID int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row verificationTokenModel
		if err := tx.Where("token = ? AND used_at IS NULL AND expires_at > ?", token, now).
			First(&row).Error; err != nil {
			return err
		}
		if err := tx.Model(&verificationTokenModel{}).
			Where("id = ?", row.ID).
			Update("used_at", now).Error; err != nil {
			return err
		}
		userID = row.UserID
		return nil
	})
	if err != nil {
		return 0, err
	}
	return userID, nil
}

// PurgeExpired removes stale rows; invoked opportunistically by the sweeper.
func (r *VerificationTokenRepository) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	tx := r.db.WithContext(ctx).
		Where("expires_at < ? OR used_at IS NOT NULL", now).
		Delete(&verificationTokenModel{})
	if tx.Error != nil {
		return 0, tx.Error
	}
	return tx.RowsAffected, nil
}
