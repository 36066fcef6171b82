package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"articles-backend/internal/model"
)

const (
	defaultEventLimit = 100
	maxEventLimit     = 500
)

type ArticleEventRepository struct {
	db *gorm.DB
}

func NewArticleEventRepository(db *gorm.DB) *ArticleEventRepository {
	return &ArticleEventRepository{db: db}
}

func (r *ArticleEventRepository) Create(ctx context.Context, event *model.ArticleEvent) error {
	if err := r.db.WithContext(ctx).Create(event).Error; err != nil {
		return fmt.Errorf("create article event failed: %w", translate(err))
	}
	return nil
}

// List returns events newest first. articleID 0 means all articles.
func (r *ArticleEventRepository) List(ctx context.Context, articleID uint, limit int) ([]model.ArticleEvent, error) {
	if limit <= 0 {
		limit = defaultEventLimit
	}
	if limit > maxEventLimit {
		limit = maxEventLimit
	}

	q := r.db.WithContext(ctx)
	if articleID != 0 {
		q = q.Where("article_id = ?", articleID)
	}
	events := make([]model.ArticleEvent, 0)
	if err := q.Order("created_at DESC").Order("id DESC").Limit(limit).Find(&events).Error; err != nil {
		return nil, fmt.Errorf("list article events failed: %w", translate(err))
	}
	return events, nil
}
