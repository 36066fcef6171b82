package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"articles-backend/internal/model"
)

type ArticleRepository struct {
	db *gorm.DB
}

func NewArticleRepository(db *gorm.DB) *ArticleRepository {
	return &ArticleRepository{db: db}
}

func (r *ArticleRepository) Create(ctx context.Context, article *model.Article) error {
	if err := r.db.WithContext(ctx).Omit("Category", "User").Create(article).Error; err != nil {
		return fmt.Errorf("create article failed: %w", translate(err))
	}
	return nil
}

func (r *ArticleRepository) GetByID(ctx context.Context, id uint) (*model.Article, error) {
	var article model.Article
	if err := r.db.WithContext(ctx).First(&article, id).Error; err != nil {
		return nil, fmt.Errorf("get article failed: %w", translate(err))
	}
	return &article, nil
}

// List returns every article matching q with its category and author
// projection preloaded.
func (r *ArticleRepository) List(ctx context.Context, q ArticleQuery) ([]model.Article, error) {
	articles := make([]model.Article, 0)
	tx := q.Apply(r.db.WithContext(ctx).Model(&model.Article{})).
		Preload("Category").
		Preload("User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "username")
		})
	if err := tx.Find(&articles).Error; err != nil {
		return nil, fmt.Errorf("list articles failed: %w", translate(err))
	}
	return articles, nil
}

func (r *ArticleRepository) Update(ctx context.Context, id uint, apply func(*model.Article)) (*model.Article, error) {
	var article model.Article
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&article, id).Error; err != nil {
			return err
		}
		apply(&article)
		article.ID = id
		return tx.Omit("Category", "User").Save(&article).Error
	})
	if err != nil {
		return nil, fmt.Errorf("update article failed: %w", translate(err))
	}
	return &article, nil
}

func (r *ArticleRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&model.Article{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete article failed: %w", translate(result.Error))
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("delete article failed: %w", ErrNotFound)
	}
	return nil
}
