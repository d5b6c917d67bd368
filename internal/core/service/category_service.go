package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/shopfront/storefront/internal/api/metrics"
	"github.com/shopfront/storefront/internal/core/domain"
	"github.com/shopfront/storefront/internal/core/ports"
)

// CategoryService manages the category tree.
type CategoryService struct {
	repo   ports.CategoryRepository
	images ports.ImageStore
	cache  ports.CategoryCache
	logger zerolog.Logger
}

// NewCategoryService builds a CategoryService. cache may be nil.
func NewCategoryService(repo ports.CategoryRepository, images ports.ImageStore, cache ports.CategoryCache, logger zerolog.Logger) *CategoryService {
	return &CategoryService{repo: repo, images: images, cache: cache, logger: logger}
}

// ListCategories returns every category with its parent resolved.
func (s *CategoryService) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	var generation int64
	if s.cache != nil {
		cached, gen, ok := s.cache.Get(ctx)
		if ok {
			metrics.CategoryCacheTotal.WithLabelValues("hit").Inc()
			return cached, nil
		}
		metrics.CategoryCacheTotal.WithLabelValues("miss").Inc()
		generation = gen
	}

	categories, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	if s.cache != nil {
		stored, err := s.cache.Set(ctx, generation, categories)
		switch {
		case err != nil:
			s.logger.Warn().Err(err).Msg("failed to cache categories")
		case !stored:
			s.logger.Debug().Int64("generation", generation).Msg("categories changed during load; listing not cached")
		}
	}
	return categories, nil
}

func (s *CategoryService) CreateCategory(ctx context.Context, in ports.CategoryInput) (*domain.Category, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Invalid("name is required")
	}
	slug := domain.Slugify(name)
	if slug == "" {
		return nil, domain.Invalid("name must contain at least one letter or digit")
	}

	if err := s.ensureSlugFree(ctx, slug, ""); err != nil {
		return nil, err
	}
	if err := s.ensureParent(ctx, in.ParentID, ""); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	category := &domain.Category{
		Name:      name,
		Slug:      slug,
		ParentID:  in.ParentID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if in.Image != nil {
		path, err := s.images.Save(ctx, in.Image.Filename, in.Image.Content)
		if err != nil {
			return nil, fmt.Errorf("store category image: %w", err)
		}
		category.Image = path
	}

	created, err := s.repo.Create(ctx, category)
	if err != nil {
		s.discardImage(ctx, category.Image)
		return nil, err
	}

	s.invalidate(ctx)
	s.logger.Info().Str("category_id", created.ID).Str("slug", created.Slug).Msg("category created")
	return created, nil
}

// UpdateCategory renames, re-parents and optionally re-images a category.
// The slug is regenerated from the new name.
func (s *CategoryService) UpdateCategory(ctx context.Context, in ports.CategoryInput) (*domain.Category, error) {
	name := strings.TrimSpace(in.Name)
	if in.ID == "" || name == "" {
		return nil, domain.Invalid("id and name are required")
	}
	slug := domain.Slugify(name)
	if slug == "" {
		return nil, domain.Invalid("name must contain at least one letter or digit")
	}

	current, err := s.repo.FindByID(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	if err := s.ensureSlugFree(ctx, slug, current.ID); err != nil {
		return nil, err
	}
	if err := s.ensureParent(ctx, in.ParentID, current.ID); err != nil {
		return nil, err
	}

	oldImage := current.Image
	current.Name = name
	current.Slug = slug
	current.ParentID = in.ParentID
	current.Parent = nil
	current.UpdatedAt = time.Now().UTC()

	if in.Image != nil {
		path, err := s.images.Save(ctx, in.Image.Filename, in.Image.Content)
		if err != nil {
			return nil, fmt.Errorf("store category image: %w", err)
		}
		current.Image = path
	}

	updated, err := s.repo.Update(ctx, current)
	if err != nil {
		if current.Image != oldImage {
			s.discardImage(ctx, current.Image)
		}
		return nil, err
	}

	if updated.Image != oldImage {
		s.discardImage(ctx, oldImage)
	}
	s.invalidate(ctx)
	return updated, nil
}

// DeleteCategory removes only the category document. Children and products
// keep their (now dangling) references.
func (s *CategoryService) DeleteCategory(ctx context.Context, id string) error {
	if id == "" {
		return domain.Invalid("category id is required")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	s.logger.Info().Str("category_id", id).Msg("category deleted")
	return nil
}

func (s *CategoryService) ensureSlugFree(ctx context.Context, slug, selfID string) error {
	existing, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, domain.ErrCategoryNotFound) {
			return nil
		}
		return err
	}
	if existing.ID != selfID {
		return fmt.Errorf("category %q: %w", slug, domain.ErrSlugTaken)
	}
	return nil
}

func (s *CategoryService) ensureParent(ctx context.Context, parentID, selfID string) error {
	if parentID == "" {
		return nil
	}
	if parentID == selfID {
		return domain.Invalid("a category cannot be its own parent")
	}
	if _, err := s.repo.FindByID(ctx, parentID); err != nil {
		if errors.Is(err, domain.ErrCategoryNotFound) {
			return domain.Invalid("parent category not found")
		}
		return err
	}
	return nil
}

func (s *CategoryService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("failed to invalidate category cache")
	}
}

func (s *CategoryService) discardImage(ctx context.Context, path string) {
	if path == "" {
		return
	}
	if err := s.images.Delete(ctx, path); err != nil && !errors.Is(err, domain.ErrImageNotFound) {
		s.logger.Warn().Err(err).Str("path", path).Msg("failed to remove image")
	}
}
