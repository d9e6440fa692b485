package repository

import (
	"context"

	"gorm.io/gorm"

	"greenboard/internal/model"
)

// UserRepository defines user persistence operations. CreateWithStats is
// the only way a user row comes into existence: the stats row is written
// in the same transaction so no path can produce an account without one.
type UserRepository interface {
	CreateWithStats(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uint) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	ListRanked(ctx context.Context, limit, offset int) ([]model.User, error)
	Update(ctx context.Context, user *model.User) error
	UpdateStats(ctx context.Context, stats *model.UserGameStats) error
	Delete(ctx context.Context, id uint) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateWithStats(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		stats := model.NewUserGameStats(user.ID)
		if err := tx.Create(stats).Error; err != nil {
			return err
		}
		user.GameStats = stats
		return nil
	})
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Preload("GameStats").First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Preload("GameStats").
		Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) List(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := r.db.WithContext(ctx).Preload("GameStats").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// ListRanked returns users joined with their stats, best score first.
// Ties break by ascending user id so pages are stable. limit <= 0 means
// no limit.
func (r *userRepository) ListRanked(ctx context.Context, limit, offset int) ([]model.User, error) {
	var users []model.User
	q := r.db.WithContext(ctx).
		Joins("JOIN user_game_stats ON user_game_stats.user_id = users.id").
		Order("user_game_stats.score DESC, users.id ASC").
		Preload("GameStats")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if offset > 0 {
		q = q.Offset(offset)
	}
	if err := q.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Omit("GameStats").Save(user).Error
}

func (r *userRepository) UpdateStats(ctx context.Context, stats *model.UserGameStats) error {
	return r.db.WithContext(ctx).Save(stats).Error
}

// Delete removes the user together with its stats and any outstanding
// reset tokens, all in one transaction.
func (r *userRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&model.UserGameStats{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&model.PasswordResetToken{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.User{}, id).Error
	})
}
