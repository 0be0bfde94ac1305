package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"samsariya/internal/domain"
	"samsariya/internal/dto"
	apperrors "samsariya/internal/errors"
)

type InventoryRepository interface {
	Keys(ctx context.Context) ([]string, error)
	KeyExists(ctx context.Context, key string) (bool, error)
	Items(ctx context.Context) ([]domain.InventoryItem, error)
	Insert(ctx context.Context, item *domain.InventoryItem) (string, error)
	Remove(ctx context.Context, key string) (bool, error)
	Availability(ctx context.Context) (map[string]bool, error)
	SetAvailability(ctx context.Context, key string, enabled bool) (bool, error)
	SeedAvailability(ctx context.Context) error
}

// AvailabilityService manages which catalog items can currently be ordered.
type AvailabilityService struct {
	repo   InventoryRepository
	logger *zap.Logger
}

func NewAvailabilityService(repo InventoryRepository, logger *zap.Logger) *AvailabilityService {
	return &AvailabilityService{
		repo:   repo,
		logger: logger,
	}
}

// List joins catalog keys with the shared availability map. Keys missing
// from the map default to available.
func (s *AvailabilityService) List(ctx context.Context) ([]dto.ItemAvailability, error) {
	keys, err := s.repo.Keys(ctx)
	if err != nil {
		return nil, err
	}

	availability, err := s.repo.Availability(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]dto.ItemAvailability, len(keys))
	for i, key := range keys {
		enabled, ok := availability[key]
		if !ok {
			enabled = true
		}
		items[i] = dto.ItemAvailability{Key: key, Available: enabled}
	}
	return items, nil
}

// Set writes one availability flag. The key must exist in the catalog so
// the shared map never accumulates orphan keys.
func (s *AvailabilityService) Set(ctx context.Context, key string, enabled bool) error {
	if err := s.validateKey(ctx, key); err != nil {
		return err
	}

	changed, err := s.repo.SetAvailability(ctx, key, enabled)
	if err != nil {
		return err
	}
	if !changed {
		return apperrors.NewConflictError(fmt.Sprintf("availability of %q is already %t", key, enabled))
	}

	s.logger.Info("availability updated", zap.String("key", key), zap.Bool("available", enabled))
	return nil
}

// Toggle flips one availability flag and returns the new value.
func (s *AvailabilityService) Toggle(ctx context.Context, key string) (bool, error) {
	if err := s.validateKey(ctx, key); err != nil {
		return false, err
	}

	availability, err := s.repo.Availability(ctx)
	if err != nil {
		return false, err
	}
	current, ok := availability[key]
	if !ok {
		current = true
	}
	next := !current

	if _, err := s.repo.SetAvailability(ctx, key, next); err != nil {
		return false, err
	}

	s.logger.Info("availability toggled", zap.String("key", key), zap.Bool("available", next))
	return next, nil
}

func (s *AvailabilityService) Add(ctx context.Context, item *domain.InventoryItem) (string, error) {
	exists, err := s.repo.KeyExists(ctx, item.Key)
	if err != nil {
		return "", err
	}
	if exists {
		return "", apperrors.NewConflictError(fmt.Sprintf("inventory item %q already exists", item.Key))
	}

	item.Available = true
	id, err := s.repo.Insert(ctx, item)
	if err != nil {
		return "", err
	}

	// New items start enabled in the shared map.
	if _, err := s.repo.SetAvailability(ctx, item.Key, true); err != nil {
		s.logger.Warn("seeding availability for new item failed",
			zap.String("key", item.Key), zap.Error(err))
	}
	return id, nil
}

func (s *AvailabilityService) Remove(ctx context.Context, key string) error {
	removed, err := s.repo.Remove(ctx, key)
	if err != nil {
		return err
	}
	if !removed {
		return apperrors.NewNotFoundError(fmt.Sprintf("inventory item %q not found", key))
	}
	return nil
}

// Seed ensures every catalog key has an availability entry, defaulting to
// enabled. Called once at startup.
func (s *AvailabilityService) Seed(ctx context.Context) error {
	return s.repo.SeedAvailability(ctx)
}

func (s *AvailabilityService) validateKey(ctx context.Context, key string) error {
	exists, err := s.repo.KeyExists(ctx, key)
	if err != nil {
		return err
	}
	if !exists {
		return apperrors.NewNotFoundError(fmt.Sprintf("inventory item %q not found", key))
	}
	return nil
}
