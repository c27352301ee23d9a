package service

import (
	"context"
	"errors"
	"sync"

	"go.mongodb.org/mongo-driver/mongo"

	clubserrors "courtops/internal/clubs/errors"
	"courtops/internal/clubs/repository"
	"courtops/internal/clubs/validator"
	"courtops/pkg/config"
	apperrors "courtops/pkg/errors"
	"courtops/pkg/model"
	"courtops/pkg/sanitizer"
)

type ClubService interface {
	Create(ctx context.Context, club *model.ClubScheduleConfig) error
	GetByID(ctx context.Context, id string) (*model.ClubScheduleConfig, error)
	GetBySlug(ctx context.Context, slug string) (*model.ClubScheduleConfig, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.ClubScheduleConfig, int64, error)
	Update(ctx context.Context, id string, updates *model.ClubScheduleConfigUpdate) error
}

type clubService struct {
	repo      repository.ClubRepository
	ruleRepo  repository.PriceRuleRepository
	validator *validator.ClubValidator
	cfg       *config.Config
}

func NewClubService(
	repo repository.ClubRepository,
	ruleRepo repository.PriceRuleRepository,
	validator *validator.ClubValidator,
	cfg *config.Config,
) ClubService {
	return &clubService{
		repo:      repo,
		ruleRepo:  ruleRepo,
		validator: validator,
		cfg:       cfg,
	}
}

// Create persists a new club and seeds its fallback price rule in the same
// transaction, so no club ever exists without full price coverage.
func (s *clubService) Create(ctx context.Context, club *model.ClubScheduleConfig) error {
	s.applyDefaults(club)
	s.sanitize(club)

	if club.Slug == "" {
		return apperrors.InvalidInput("Club name does not yield a usable slug")
	}

	if err := s.validator.ValidateClub(club); err != nil {
		s.cfg.Log.Warn("Club validation failed", "error", err)
		return apperrors.Validation("Club validation failed", map[string]any{"error": err.Error()})
	}

	err := s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.repo.Create(sessCtx, club); err != nil {
			if errors.Is(err, clubserrors.ErrSlugTaken) {
				return apperrors.Conflict("A club with this slug already exists")
			}
			return apperrors.Internal("Failed to create club", err)
		}

		fallback := s.fallbackPriceRule(club.ID)
		if err := s.ruleRepo.Create(sessCtx, fallback); err != nil {
			return apperrors.Internal("Failed to seed fallback price rule", err)
		}

		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to create club", "slug", club.Slug, "error", err)
		return err
	}

	s.cfg.Log.Info("Club created successfully",
		"id", club.ID,
		"slug", club.Slug,
		"time_zone", club.TimeZone,
	)
	return nil
}

func (s *clubService) GetByID(ctx context.Context, id string) (*model.ClubScheduleConfig, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Club ID cannot be empty")
	}

	club, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, clubserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Club", id)
		}
		if errors.Is(err, clubserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid club ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve club", err)
	}

	return club, nil
}

func (s *clubService) GetBySlug(ctx context.Context, slug string) (*model.ClubScheduleConfig, error) {
	if slug == "" {
		return nil, apperrors.InvalidInput("Club slug cannot be empty")
	}

	club, err := s.repo.FindBySlug(ctx, sanitizer.Slugify(slug))
	if err != nil {
		if errors.Is(err, clubserrors.ErrNotFound) {
			return nil, apperrors.NotFound("Club")
		}
		return nil, apperrors.Internal("Failed to retrieve club", err)
	}

	return club, nil
}

func (s *clubService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.ClubScheduleConfig, int64, error) {
	var count int64
	var clubs []*model.ClubScheduleConfig
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count clubs", "error", errCount)
			errCount = apperrors.Internal("Failed to count clubs", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		clubs, errFind = s.repo.FindAll(ctx, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list clubs", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve clubs", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return clubs, count, nil
}

func (s *clubService) Update(ctx context.Context, id string, updates *model.ClubScheduleConfigUpdate) error {
	if id == "" {
		return apperrors.InvalidInput("Club ID cannot be empty")
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, clubserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Club", id)
		}
		if errors.Is(err, clubserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid club ID format")
		}
		return apperrors.Internal("Failed to check club existence", err)
	}

	if err := s.validator.ValidateClubUpdate(updates); err != nil {
		s.cfg.Log.Warn("Club update validation failed", "id", id, "error", err)
		return apperrors.Validation("Invalid update input", map[string]any{"error": err.Error()})
	}

	merged := s.mergeClubUpdates(existing, updates)
	s.sanitize(merged)
	if err := s.validator.ValidateClub(merged); err != nil {
		return apperrors.Validation("Club validation failed", map[string]any{"error": err.Error()})
	}

	if _, err := s.repo.Update(ctx, id, merged); err != nil {
		if errors.Is(err, clubserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Club", id)
		}
		s.cfg.Log.Error("Failed to update club", "id", id, "error", err)
		return apperrors.Internal("Failed to update club", err)
	}

	s.cfg.Log.Info("Club updated successfully", "id", id)
	return nil
}

// --- Helpers ---

func (s *clubService) applyDefaults(c *model.ClubScheduleConfig) {
	if c.OpenTime == "" {
		c.OpenTime = s.cfg.DefaultOpenTime
	}
	if c.CloseTime == "" {
		c.CloseTime = s.cfg.DefaultCloseTime
	}
	if c.SlotDurationMin == 0 {
		c.SlotDurationMin = s.cfg.DefaultSlotDurationMin
	}
	if c.TimeZone == "" {
		c.TimeZone = s.cfg.DefaultTimeZone
	}
}

func (s *clubService) sanitize(c *model.ClubScheduleConfig) {
	c.Name = sanitizer.NormalizeName(c.Name)
	if c.Slug == "" {
		c.Slug = sanitizer.Slugify(c.Name)
	} else {
		c.Slug = sanitizer.Slugify(c.Slug)
	}
}

func (s *clubService) mergeClubUpdates(existing *model.ClubScheduleConfig, updates *model.ClubScheduleConfigUpdate) *model.ClubScheduleConfig {
	merged := *existing

	if updates.Name != "" {
		merged.Name = updates.Name
	}
	if updates.OpenTime != "" {
		merged.OpenTime = updates.OpenTime
	}
	if updates.CloseTime != "" {
		merged.CloseTime = updates.CloseTime
	}
	if updates.SlotDurationMin != nil {
		merged.SlotDurationMin = *updates.SlotDurationMin
	}
	if updates.TimeZone != "" {
		merged.TimeZone = updates.TimeZone
	}

	return &merged
}

// fallbackPriceRule covers every day at the lowest priority. The 23:59 end
// is matched inclusively, so even a slot starting at the last minute of the
// day resolves to this rule.
func (s *clubService) fallbackPriceRule(clubID string) *model.PriceRule {
	return &model.PriceRule{
		ClubID:    clubID,
		Name:      "Base rate",
		StartTime: "00:00",
		EndTime:   "23:59",
		Price:     0,
		Priority:  0,
	}
}
