package app

import (
	"context"

	"articles-backend/internal/model"
	"articles-backend/internal/repository"
)

type ArticleEventService struct {
	eventRepo *repository.ArticleEventRepository
}

func NewArticleEventService(eventRepo *repository.ArticleEventRepository) *ArticleEventService {
	return &ArticleEventService{eventRepo: eventRepo}
}

func (s *ArticleEventService) List(ctx context.Context, articleID uint, limit int) ([]model.ArticleEvent, error) {
	return s.eventRepo.List(ctx, articleID, limit)
}

// Publish stores the event directly. It is the EventPublisher used when no
// message broker is configured.
func (s *ArticleEventService) Publish(ctx context.Context, event model.ArticleEvent) error {
	return s.eventRepo.Create(ctx, &event)
}
