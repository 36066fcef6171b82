package app

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"articles-backend/internal/model"
	"articles-backend/internal/repository"
)

// CategoryCache holds the full category list. It is optional.
type CategoryCache interface {
	GetList(ctx context.Context) ([]model.Category, bool, error)
	SetList(ctx context.Context, categories []model.Category) error
	Invalidate(ctx context.Context) error
}

type CategoryService struct {
	categoryRepo *repository.CategoryRepository
	cache        CategoryCache
	log          *slog.Logger
}

type CreateCategoryInput struct {
	UserID uint
	Name   string
}

type UpdateCategoryInput struct {
	Name *string
}

func NewCategoryService(categoryRepo *repository.CategoryRepository, cache CategoryCache, log *slog.Logger) *CategoryService {
	if log == nil {
		log = slog.Default()
	}
	return &CategoryService{
		categoryRepo: categoryRepo,
		cache:        cache,
		log:          log,
	}
}

func (s *CategoryService) List(ctx context.Context) ([]model.Category, error) {
	if s.cache != nil {
		categories, ok, err := s.cache.GetList(ctx)
		if err != nil {
			s.log.WarnContext(ctx, "category cache read failed", "err", err)
		} else if ok {
			return categories, nil
		}
	}

	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetList(ctx, categories); err != nil {
			s.log.WarnContext(ctx, "category cache write failed", "err", err)
		}
	}
	return categories, nil
}

func (s *CategoryService) Create(ctx context.Context, input CreateCategoryInput) (*model.Category, error) {
	name := strings.TrimSpace(input.Name)
	if input.UserID == 0 || name == "" {
		return nil, ErrInvalidInput
	}

	category := &model.Category{
		Name:   name,
		UserID: input.UserID,
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return category, nil
}

func (s *CategoryService) Update(ctx context.Context, id uint, input UpdateCategoryInput) (*model.Category, error) {
	if id == 0 {
		return nil, ErrInvalidInput
	}
	var name string
	if input.Name != nil {
		name = strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrInvalidInput
		}
	}

	category, err := s.categoryRepo.Update(ctx, id, func(c *model.Category) {
		if input.Name != nil {
			c.Name = name
		}
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	s.invalidate(ctx)
	return category, nil
}

// Delete removes the category even when articles still reference it.
func (s *CategoryService) Delete(ctx context.Context, id uint) error {
	if id == 0 {
		return ErrInvalidInput
	}
	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *CategoryService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.log.WarnContext(ctx, "category cache invalidate failed", "err", err)
	}
}
