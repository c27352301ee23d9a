package service

import (
	"context"
	"errors"

	bookingserrors "courtops/internal/bookings/errors"
	"courtops/internal/bookings/repository"
	"courtops/internal/bookings/validator"
	clubsrepository "courtops/internal/clubs/repository"
	"courtops/pkg/config"
	apperrors "courtops/pkg/errors"
	"courtops/pkg/model"
	"courtops/pkg/sanitizer"
)

type WaitingListService interface {
	Add(ctx context.Context, entry *model.WaitingListEntry) error
	ListByClubAndDate(ctx context.Context, clubID, date string) ([]*model.WaitingListEntry, error)
	Resolve(ctx context.Context, id string, status string) error
}

type waitingListService struct {
	repo      repository.WaitingListRepository
	clubRepo  clubsrepository.ClubRepository
	validator *validator.BookingValidator
	cfg       *config.Config
}

func NewWaitingListService(
	repo repository.WaitingListRepository,
	clubRepo clubsrepository.ClubRepository,
	validator *validator.BookingValidator,
	cfg *config.Config,
) WaitingListService {
	return &waitingListService{
		repo:      repo,
		clubRepo:  clubRepo,
		validator: validator,
		cfg:       cfg,
	}
}

// Add records interest in a date. Entries never block slots; they only
// feed the notifier when a matching slot frees up.
func (s *waitingListService) Add(ctx context.Context, entry *model.WaitingListEntry) error {
	club, err := s.clubRepo.FindByID(ctx, entry.ClubID)
	if err != nil {
		return translateClubLookup(err, entry.ClubID)
	}

	entry.Name = sanitizer.NormalizeName(entry.Name)
	entry.Phone = sanitizer.NormalizePhoneForZone(entry.Phone, club.TimeZone)
	entry.Notes = sanitizer.TrimAndNormalize(entry.Notes)
	if entry.Status == "" {
		entry.Status = model.WaitingPending
	}

	if err := s.validator.ValidateWaitingListEntry(entry); err != nil {
		s.cfg.Log.Warn("Waiting list validation failed", "error", err)
		return apperrors.Validation("Waiting list validation failed", map[string]any{"error": err.Error()})
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		return apperrors.Internal("Failed to create waiting list entry", err)
	}

	s.cfg.Log.Info("Waiting list entry created",
		"id", entry.ID,
		"club_id", entry.ClubID,
		"date", entry.Date,
	)
	return nil
}

func (s *waitingListService) ListByClubAndDate(ctx context.Context, clubID, date string) ([]*model.WaitingListEntry, error) {
	if clubID == "" || date == "" {
		return nil, apperrors.InvalidInput("Club ID and date are required")
	}

	entries, err := s.repo.FindByClubAndDate(ctx, clubID, date, nil)
	if err != nil {
		return nil, apperrors.Internal("Failed to list waiting list entries", err)
	}

	return entries, nil
}

// Resolve closes an entry as FULFILLED or DELETED.
func (s *waitingListService) Resolve(ctx context.Context, id string, status string) error {
	if status != model.WaitingFulfilled && status != model.WaitingDeleted {
		return apperrors.InvalidInput("Status must be FULFILLED or DELETED")
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, bookingserrors.ErrEntryNotFound) {
			return apperrors.NotFoundWithID("Waiting list entry", id)
		}
		if errors.Is(err, bookingserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid waiting list entry ID format")
		}
		return apperrors.Internal("Failed to resolve waiting list entry", err)
	}

	s.cfg.Log.Info("Waiting list entry resolved", "id", id, "status", status)
	return nil
}
