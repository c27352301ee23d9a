package service

import (
	"context"
	"errors"

	clubserrors "courtops/internal/clubs/errors"
	"courtops/internal/clubs/repository"
	"courtops/internal/clubs/validator"
	"courtops/pkg/config"
	apperrors "courtops/pkg/errors"
	"courtops/pkg/model"
	"courtops/pkg/sanitizer"
)

type CourtService interface {
	Create(ctx context.Context, court *model.Court) error
	GetByID(ctx context.Context, id string) (*model.Court, error)
	ListByClub(ctx context.Context, clubID string, includeInactive bool) ([]*model.Court, error)
	Update(ctx context.Context, id string, updates *model.CourtUpdate) error
	Deactivate(ctx context.Context, id string) error
}

type courtService struct {
	repo      repository.CourtRepository
	clubRepo  repository.ClubRepository
	validator *validator.ClubValidator
	cfg       *config.Config
}

func NewCourtService(
	repo repository.CourtRepository,
	clubRepo repository.ClubRepository,
	validator *validator.ClubValidator,
	cfg *config.Config,
) CourtService {
	return &courtService{
		repo:      repo,
		clubRepo:  clubRepo,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *courtService) Create(ctx context.Context, court *model.Court) error {
	court.Name = sanitizer.NormalizeName(court.Name)
	court.Surface = sanitizer.NormalizeLabel(court.Surface)
	court.Active = true

	if err := s.validator.ValidateCourt(court); err != nil {
		s.cfg.Log.Warn("Court validation failed", "error", err)
		return apperrors.Validation("Court validation failed", map[string]any{"error": err.Error()})
	}

	if _, err := s.clubRepo.FindByID(ctx, court.ClubID); err != nil {
		if errors.Is(err, clubserrors.ErrNotFound) || errors.Is(err, clubserrors.ErrInvalidID) {
			return apperrors.NotFoundWithID("Club", court.ClubID)
		}
		return apperrors.Internal("Failed to check club existence", err)
	}

	if err := s.repo.Create(ctx, court); err != nil {
		s.cfg.Log.Error("Failed to create court", "club_id", court.ClubID, "error", err)
		return apperrors.Internal("Failed to create court", err)
	}

	s.cfg.Log.Info("Court created successfully",
		"id", court.ID,
		"club_id", court.ClubID,
		"sport", court.Sport,
	)
	return nil
}

func (s *courtService) GetByID(ctx context.Context, id string) (*model.Court, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Court ID cannot be empty")
	}

	court, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, clubserrors.ErrCourtNotFound) {
			return nil, apperrors.NotFoundWithID("Court", id)
		}
		if errors.Is(err, clubserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid court ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve court", err)
	}

	return court, nil
}

func (s *courtService) ListByClub(ctx context.Context, clubID string, includeInactive bool) ([]*model.Court, error) {
	if clubID == "" {
		return nil, apperrors.InvalidInput("Club ID cannot be empty")
	}

	courts, err := s.repo.FindByClub(ctx, clubID, includeInactive)
	if err != nil {
		s.cfg.Log.Error("Failed to list courts", "club_id", clubID, "error", err)
		return nil, apperrors.Internal("Failed to retrieve courts", err)
	}

	return courts, nil
}

func (s *courtService) Update(ctx context.Context, id string, updates *model.CourtUpdate) error {
	if id == "" {
		return apperrors.InvalidInput("Court ID cannot be empty")
	}

	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.validator.ValidateCourtUpdate(updates); err != nil {
		s.cfg.Log.Warn("Court update validation failed", "id", id, "error", err)
		return apperrors.Validation("Invalid update input", map[string]any{"error": err.Error()})
	}

	merged := s.mergeCourtUpdates(existing, updates)
	if err := s.validator.ValidateCourt(merged); err != nil {
		return apperrors.Validation("Court validation failed", map[string]any{"error": err.Error()})
	}

	if _, err := s.repo.Update(ctx, id, merged); err != nil {
		if errors.Is(err, clubserrors.ErrCourtNotFound) {
			return apperrors.NotFoundWithID("Court", id)
		}
		s.cfg.Log.Error("Failed to update court", "id", id, "error", err)
		return apperrors.Internal("Failed to update court", err)
	}

	s.cfg.Log.Info("Court updated successfully", "id", id)
	return nil
}

// Deactivate removes a court from rotation without deleting it, so past
// bookings keep a valid reference.
func (s *courtService) Deactivate(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Court ID cannot be empty")
	}

	if err := s.repo.Deactivate(ctx, id); err != nil {
		if errors.Is(err, clubserrors.ErrCourtNotFound) {
			return apperrors.NotFoundWithID("Court", id)
		}
		if errors.Is(err, clubserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid court ID format")
		}
		s.cfg.Log.Error("Failed to deactivate court", "id", id, "error", err)
		return apperrors.Internal("Failed to deactivate court", err)
	}

	s.cfg.Log.Info("Court deactivated", "id", id)
	return nil
}

func (s *courtService) mergeCourtUpdates(existing *model.Court, updates *model.CourtUpdate) *model.Court {
	merged := *existing

	if updates.Name != "" {
		merged.Name = sanitizer.NormalizeName(updates.Name)
	}
	if updates.Sport != "" {
		merged.Sport = updates.Sport
	}
	if updates.Surface != "" {
		merged.Surface = sanitizer.NormalizeLabel(updates.Surface)
	}
	if updates.DurationMin != nil {
		merged.DurationMin = updates.DurationMin
	}
	if updates.SortOrder != nil {
		merged.SortOrder = *updates.SortOrder
	}

	return &merged
}
