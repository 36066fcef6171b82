package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"articles-backend/internal/model"
)

type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) Create(ctx context.Context, category *model.Category) error {
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		return fmt.Errorf("create category failed: %w", translate(err))
	}
	return nil
}

func (r *CategoryRepository) List(ctx context.Context) ([]model.Category, error) {
	categories := make([]model.Category, 0)
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("list categories failed: %w", translate(err))
	}
	return categories, nil
}

func (r *CategoryRepository) GetByID(ctx context.Context, id uint) (*model.Category, error) {
	var category model.Category
	if err := r.db.WithContext(ctx).First(&category, id).Error; err != nil {
		return nil, fmt.Errorf("get category failed: %w", translate(err))
	}
	return &category, nil
}

// Update loads the category, lets apply mutate it and saves it in one
// transaction.
func (r *CategoryRepository) Update(ctx context.Context, id uint, apply func(*model.Category)) (*model.Category, error) {
	var category model.Category
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&category, id).Error; err != nil {
			return err
		}
		apply(&category)
		category.ID = id
		return tx.Save(&category).Error
	})
	if err != nil {
		return nil, fmt.Errorf("update category failed: %w", translate(err))
	}
	return &category, nil
}

// Delete removes the category. Articles referencing it are left untouched.
func (r *CategoryRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&model.Category{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete category failed: %w", translate(result.Error))
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("delete category failed: %w", ErrNotFound)
	}
	return nil
}
