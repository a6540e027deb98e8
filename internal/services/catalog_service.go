package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/skillup-edu/school-service/internal/cache"
	"github.com/skillup-edu/school-service/internal/models"
	"github.com/skillup-edu/school-service/internal/repositories"
)

const (
	levelsCacheKey      = "catalog:levels"
	classCodeCachePref  = "catalog:class-code:"
	catalogCacheTTL     = 5 * time.Minute
	catalogCachePattern = "catalog:*"
)

// CatalogService serves the read-heavy lookups (level list, class-by-code)
// through the cache. Writes that touch levels or classes must call
// Invalidate.
type CatalogService interface {
	GetLevels(ctx context.Context) ([]*models.Level, error)
	GetClassByCode(ctx context.Context, code string) (*models.Class, error)
	Invalidate(ctx context.Context)
}

type catalogService struct {
	repos  repositories.Manager
	cache  cache.CacheService
	logger *slog.Logger
}

func NewCatalogService(repos repositories.Manager, c cache.CacheService, logger *slog.Logger) CatalogService {
	return &catalogService{
		repos:  repos,
		cache:  c,
		logger: logger,
	}
}

func (s *catalogService) GetLevels(ctx context.Context) ([]*models.Level, error) {
	var cached []*models.Level
	err := s.cache.Get(ctx, levelsCacheKey, &cached)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		// A broken cache degrades to store reads, it never fails the call.
		s.logger.Warn("level cache read failed", "error", err)
	}

	levels, err := s.repos.Levels().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list levels: %w", err)
	}

	if err := s.cache.Set(ctx, levelsCacheKey, levels, catalogCacheTTL); err != nil {
		s.logger.Warn("level cache write failed", "error", err)
	}
	return levels, nil
}

func (s *catalogService) GetClassByCode(ctx context.Context, code string) (*models.Class, error) {
	key := classCodeCachePref + code

	var cached models.Class
	err := s.cache.Get(ctx, key, &cached)
	if err == nil {
		return &cached, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Warn("class cache read failed", "code", code, "error", err)
	}

	class, err := s.repos.Classes().GetByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to look up class code: %w", err)
	}
	if class == nil {
		// Absence is not cached; a class may appear under this code shortly.
		return nil, nil
	}

	if err := s.cache.Set(ctx, key, class, catalogCacheTTL); err != nil {
		s.logger.Warn("class cache write failed", "code", code, "error", err)
	}
	return class, nil
}

func (s *catalogService) Invalidate(ctx context.Context) {
	if err := s.cache.DeletePattern(ctx, catalogCachePattern); err != nil {
		s.logger.Warn("catalog cache invalidation failed", "error", err)
	}
}
