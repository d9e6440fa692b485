package repository

import (
	"context"

	"gorm.io/gorm"

	"greenboard/internal/model"
)

// ResetTokenRepository defines password reset token persistence operations.
type ResetTokenRepository interface {
	Create(ctx context.Context, token *model.PasswordResetToken) error
	FindByUserAndToken(ctx context.Context, userID uint, token string) (*model.PasswordResetToken, error)
	Delete(ctx context.Context, id uint) error
}

type resetTokenRepository struct {
	db *gorm.DB
}

// NewResetTokenRepository builds a GORM-backed repository.
func NewResetTokenRepository(db *gorm.DB) ResetTokenRepository {
	return &resetTokenRepository{db: db}
}

func (r *resetTokenRepository) Create(ctx context.Context, token *model.PasswordResetToken) error {
	return r.db.WithContext(ctx).Create(token).Error
}

func (r *resetTokenRepository) FindByUserAndToken(ctx context.Context, userID uint, token string) (*model.PasswordResetToken, error) {
	var rec model.PasswordResetToken
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND token = ?", userID, token).
		First(&rec).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *resetTokenRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.PasswordResetToken{}, id).Error
}
