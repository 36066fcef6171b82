package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"articles-backend/internal/model"
	"articles-backend/internal/repository"
)

// EventPublisher delivers article audit events. Failures never fail the
// request that produced the event.
type EventPublisher interface {
	Publish(ctx context.Context, event model.ArticleEvent) error
}

type ArticleService struct {
	articleRepo  *repository.ArticleRepository
	categoryRepo *repository.CategoryRepository
	publisher    EventPublisher
	log          *slog.Logger
}

// ListArticlesInput carries the optional list filters. Nil pointers and
// empty strings impose no constraint.
type ListArticlesInput struct {
	ArticleID   *uint
	UserID      *uint
	CategoryID  *uint
	Title       string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	SortBy      string
	SortOrder   string
}

type CreateArticleInput struct {
	Title      string
	Content    string
	CategoryID uint
}

type UpdateArticleInput struct {
	Title      *string
	Content    *string
	CategoryID *uint
}

func NewArticleService(
	articleRepo *repository.ArticleRepository,
	categoryRepo *repository.CategoryRepository,
	publisher EventPublisher,
	log *slog.Logger,
) *ArticleService {
	if log == nil {
		log = slog.Default()
	}
	return &ArticleService{
		articleRepo:  articleRepo,
		categoryRepo: categoryRepo,
		publisher:    publisher,
		log:          log,
	}
}

func (s *ArticleService) List(ctx context.Context, input ListArticlesInput) ([]model.Article, error) {
	b := repository.NewArticleQueryBuilder()
	if input.ArticleID != nil {
		b.ID(*input.ArticleID)
	}
	if input.UserID != nil {
		b.UserID(*input.UserID)
	}
	b.TitleContains(input.Title)
	if input.CategoryID != nil {
		b.CategoryID(*input.CategoryID)
	}
	if input.CreatedFrom != nil {
		b.CreatedFrom(*input.CreatedFrom)
	}
	if input.CreatedTo != nil {
		b.CreatedTo(*input.CreatedTo)
	}
	if input.SortBy != "" {
		b.SortBy(input.SortBy, input.SortOrder)
	}

	query, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFilter, err)
	}
	return s.articleRepo.List(ctx, query)
}

func (s *ArticleService) Create(ctx context.Context, actor *model.User, input CreateArticleInput) (*model.Article, error) {
	if actor == nil {
		return nil, ErrForbidden
	}
	title := strings.TrimSpace(input.Title)
	if title == "" || strings.TrimSpace(input.Content) == "" || input.CategoryID == 0 {
		return nil, ErrInvalidInput
	}
	if err := s.ensureCategory(ctx, input.CategoryID); err != nil {
		return nil, err
	}

	article := &model.Article{
		Title:      title,
		Content:    input.Content,
		UserID:     actor.ID,
		CategoryID: input.CategoryID,
	}
	if err := s.articleRepo.Create(ctx, article); err != nil {
		return nil, err
	}
	s.emit(ctx, model.ArticleCreated, article.ID, actor.ID)
	return article, nil
}

func (s *ArticleService) Update(ctx context.Context, actor *model.User, id uint, input UpdateArticleInput) (*model.Article, error) {
	if err := s.authorize(ctx, actor, id); err != nil {
		return nil, err
	}

	if input.Title != nil && strings.TrimSpace(*input.Title) == "" {
		return nil, ErrInvalidInput
	}
	if input.Content != nil && strings.TrimSpace(*input.Content) == "" {
		return nil, ErrInvalidInput
	}
	if input.CategoryID != nil {
		if err := s.ensureCategory(ctx, *input.CategoryID); err != nil {
			return nil, err
		}
	}

	article, err := s.articleRepo.Update(ctx, id, func(a *model.Article) {
		if input.Title != nil {
			a.Title = strings.TrimSpace(*input.Title)
		}
		if input.Content != nil {
			a.Content = *input.Content
		}
		if input.CategoryID != nil {
			a.CategoryID = *input.CategoryID
		}
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrArticleNotFound
		}
		return nil, err
	}
	s.emit(ctx, model.ArticleUpdated, article.ID, actor.ID)
	return article, nil
}

func (s *ArticleService) Delete(ctx context.Context, actor *model.User, id uint) error {
	if err := s.authorize(ctx, actor, id); err != nil {
		return err
	}
	if err := s.articleRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrArticleNotFound
		}
		return err
	}
	s.emit(ctx, model.ArticleDeleted, id, actor.ID)
	return nil
}

// authorize lets the owner or any Admin mutate the article.
func (s *ArticleService) authorize(ctx context.Context, actor *model.User, id uint) error {
	if id == 0 {
		return ErrInvalidInput
	}
	article, err := s.articleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrArticleNotFound
		}
		return err
	}
	if actor == nil || (article.UserID != actor.ID && !actor.IsAdmin()) {
		return ErrForbidden
	}
	return nil
}

func (s *ArticleService) ensureCategory(ctx context.Context, categoryID uint) error {
	if categoryID == 0 {
		return ErrUnknownCategory
	}
	if _, err := s.categoryRepo.GetByID(ctx, categoryID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: %d", ErrUnknownCategory, categoryID)
		}
		return err
	}
	return nil
}

func (s *ArticleService) emit(ctx context.Context, action model.ArticleAction, articleID, actorID uint) {
	if s.publisher == nil {
		return
	}
	event := model.ArticleEvent{
		ArticleID: articleID,
		UserID:    actorID,
		Action:    action,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.publisher.Publish(context.WithoutCancel(ctx), event); err != nil {
		s.log.ErrorContext(ctx, "publish article event failed",
			"article_id", articleID,
			"action", action,
			"err", err,
		)
	}
}
