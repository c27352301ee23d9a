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

type PriceRuleService interface {
	Create(ctx context.Context, rule *model.PriceRule) error
	ListByClub(ctx context.Context, clubID string) ([]*model.PriceRule, error)
	Update(ctx context.Context, id string, updates *model.PriceRuleUpdate) error
	Delete(ctx context.Context, id string) error
}

type priceRuleService struct {
	repo      repository.PriceRuleRepository
	clubRepo  repository.ClubRepository
	validator *validator.ClubValidator
	cfg       *config.Config
}

func NewPriceRuleService(
	repo repository.PriceRuleRepository,
	clubRepo repository.ClubRepository,
	validator *validator.ClubValidator,
	cfg *config.Config,
) PriceRuleService {
	return &priceRuleService{
		repo:      repo,
		clubRepo:  clubRepo,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *priceRuleService) Create(ctx context.Context, rule *model.PriceRule) error {
	rule.Name = sanitizer.NormalizeName(rule.Name)

	if err := s.validator.ValidatePriceRule(rule); err != nil {
		s.cfg.Log.Warn("Price rule validation failed", "error", err)
		return apperrors.Validation("Price rule validation failed", map[string]any{"error": err.Error()})
	}

	if _, err := s.clubRepo.FindByID(ctx, rule.ClubID); err != nil {
		if errors.Is(err, clubserrors.ErrNotFound) || errors.Is(err, clubserrors.ErrInvalidID) {
			return apperrors.NotFoundWithID("Club", rule.ClubID)
		}
		return apperrors.Internal("Failed to check club existence", err)
	}

	if err := s.repo.Create(ctx, rule); err != nil {
		s.cfg.Log.Error("Failed to create price rule", "club_id", rule.ClubID, "error", err)
		return apperrors.Internal("Failed to create price rule", err)
	}

	s.cfg.Log.Info("Price rule created successfully",
		"id", rule.ID,
		"club_id", rule.ClubID,
		"priority", rule.Priority,
	)
	return nil
}

func (s *priceRuleService) ListByClub(ctx context.Context, clubID string) ([]*model.PriceRule, error) {
	if clubID == "" {
		return nil, apperrors.InvalidInput("Club ID cannot be empty")
	}

	rules, err := s.repo.FindByClub(ctx, clubID)
	if err != nil {
		s.cfg.Log.Error("Failed to list price rules", "club_id", clubID, "error", err)
		return nil, apperrors.Internal("Failed to retrieve price rules", err)
	}

	return rules, nil
}

func (s *priceRuleService) Update(ctx context.Context, id string, updates *model.PriceRuleUpdate) error {
	if id == "" {
		return apperrors.InvalidInput("Price rule ID cannot be empty")
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, clubserrors.ErrPriceRuleNotFound) {
			return apperrors.NotFoundWithID("PriceRule", id)
		}
		if errors.Is(err, clubserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid price rule ID format")
		}
		return apperrors.Internal("Failed to check price rule existence", err)
	}

	if err := s.validator.ValidatePriceRuleUpdate(updates); err != nil {
		s.cfg.Log.Warn("Price rule update validation failed", "id", id, "error", err)
		return apperrors.Validation("Invalid update input", map[string]any{"error": err.Error()})
	}

	merged := s.mergeRuleUpdates(existing, updates)
	if err := s.validator.ValidatePriceRule(merged); err != nil {
		return apperrors.Validation("Price rule validation failed", map[string]any{"error": err.Error()})
	}

	if _, err := s.repo.Update(ctx, id, merged); err != nil {
		if errors.Is(err, clubserrors.ErrPriceRuleNotFound) {
			return apperrors.NotFoundWithID("PriceRule", id)
		}
		s.cfg.Log.Error("Failed to update price rule", "id", id, "error", err)
		return apperrors.Internal("Failed to update price rule", err)
	}

	s.cfg.Log.Info("Price rule updated successfully", "id", id)
	return nil
}

// Delete refuses to remove a club's last rule; the availability engine
// treats a slot no rule covers as a setup defect.
func (s *priceRuleService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Price rule ID cannot be empty")
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, clubserrors.ErrPriceRuleNotFound) {
			return apperrors.NotFoundWithID("PriceRule", id)
		}
		if errors.Is(err, clubserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid price rule ID format")
		}
		return apperrors.Internal("Failed to check price rule existence", err)
	}

	count, err := s.repo.CountByClub(ctx, existing.ClubID)
	if err != nil {
		return apperrors.Internal("Failed to count price rules", err)
	}
	if count <= 1 {
		return apperrors.Conflict(clubserrors.ErrLastPriceRule.Error())
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, clubserrors.ErrPriceRuleNotFound) {
			return apperrors.NotFoundWithID("PriceRule", id)
		}
		s.cfg.Log.Error("Failed to delete price rule", "id", id, "error", err)
		return apperrors.Internal("Failed to delete price rule", err)
	}

	s.cfg.Log.Info("Price rule deleted", "id", id)
	return nil
}

func (s *priceRuleService) mergeRuleUpdates(existing *model.PriceRule, updates *model.PriceRuleUpdate) *model.PriceRule {
	merged := *existing

	if updates.Name != "" {
		merged.Name = sanitizer.NormalizeName(updates.Name)
	}
	if updates.DaysOfWeek != nil {
		merged.DaysOfWeek = *updates.DaysOfWeek
	}
	if updates.StartTime != "" {
		merged.StartTime = updates.StartTime
	}
	if updates.EndTime != "" {
		merged.EndTime = updates.EndTime
	}
	if updates.Price != nil {
		merged.Price = *updates.Price
	}
	if updates.Priority != nil {
		merged.Priority = *updates.Priority
	}
	if updates.MemberDiscountPercent != nil {
		merged.MemberDiscountPercent = *updates.MemberDiscountPercent
	}

	return &merged
}
