package repository

import (
	"context"

	"gorm.io/gorm"

	"greenboard/internal/model"
)

// ChanceRepository defines chance catalog persistence operations.
type ChanceRepository interface {
	Create(ctx context.Context, chance *model.Chance) error
	FindByID(ctx context.Context, id uint) (*model.Chance, error)
	List(ctx context.Context) ([]model.Chance, error)
	Update(ctx context.Context, chance *model.Chance) error
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
}

type chanceRepository struct {
	db *gorm.DB
}

// NewChanceRepository builds a GORM-backed repository.
func NewChanceRepository(db *gorm.DB) ChanceRepository {
	return &chanceRepository{db: db}
}

func (r *chanceRepository) Create(ctx context.Context, chance *model.Chance) error {
	return r.db.WithContext(ctx).Create(chance).Error
}

func (r *chanceRepository) FindByID(ctx context.Context, id uint) (*model.Chance, error) {
	var chance model.Chance
	if err := r.db.WithContext(ctx).First(&chance, id).Error; err != nil {
		return nil, err
	}
	return &chance, nil
}

func (r *chanceRepository) List(ctx context.Context) ([]model.Chance, error) {
	var chances []model.Chance
	if err := r.db.WithContext(ctx).Find(&chances).Error; err != nil {
		return nil, err
	}
	return chances, nil
}

func (r *chanceRepository) Update(ctx context.Context, chance *model.Chance) error {
	return r.db.WithContext(ctx).Save(chance).Error
}

func (r *chanceRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.Chance{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *chanceRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&model.Chance{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
