package service

import (
	"context"
	"net/http"
	"time"

	bookingsrepository "courtops/internal/bookings/repository"
	clubsrepository "courtops/internal/clubs/repository"
	"courtops/pkg/client"
	"courtops/pkg/config"
	"courtops/pkg/events"
	"courtops/pkg/kafka"
	"courtops/pkg/localtime"
	"courtops/pkg/model"
)

// AvailabilityChecker is the slice of the availability client the notifier
// needs, swappable in tests.
type AvailabilityChecker interface {
	GetQuote(clubID, courtID, date, startTime string) (*client.Response, error)
}

// NotifierService consumes booking lifecycle events and pings waiting list
// entries when a slot they wanted frees up. Notification here means marking
// the entry NOTIFIED and logging the contact; actual delivery channels hang
// off that log downstream.
type NotifierService struct {
	waitingRepo  bookingsrepository.WaitingListRepository
	clubRepo     clubsrepository.ClubRepository
	availability AvailabilityChecker
	cfg          *config.Config
}

func NewNotifierService(
	waitingRepo bookingsrepository.WaitingListRepository,
	clubRepo clubsrepository.ClubRepository,
	availability AvailabilityChecker,
	cfg *config.Config,
) *NotifierService {
	return &NotifierService{
		waitingRepo:  waitingRepo,
		clubRepo:     clubRepo,
		availability: availability,
		cfg:          cfg,
	}
}

// HandleMessage is the Kafka consumer entry point. Only canceled and
// no-show events describe freed slots; everything else is acknowledged
// untouched.
func (s *NotifierService) HandleMessage(ctx context.Context, msg kafka.Message) error {
	eventType := msg.GetEventType()
	if eventType != events.TypeBookingCanceled && eventType != events.TypeBookingNoShow {
		return nil
	}

	var event events.BookingEvent
	if err := msg.DecodeValue(&event); err != nil {
		s.cfg.Log.Error("Failed to decode booking event",
			"event_id", msg.GetEventID(),
			"error", err,
		)
		// Malformed payloads go to the DLQ, retrying cannot fix them
		return err
	}

	return s.handleFreedSlot(ctx, &event)
}

func (s *NotifierService) handleFreedSlot(ctx context.Context, event *events.BookingEvent) error {
	club, err := s.clubRepo.FindByID(ctx, event.ClubID)
	if err != nil {
		s.cfg.Log.Error("Freed slot references unknown club",
			"club_id", event.ClubID,
			"booking_id", event.BookingID,
			"error", err,
		)
		return err
	}
	loc, err := localtime.LoadZone(club.TimeZone)
	if err != nil {
		return err
	}

	day := localtime.DateOf(event.StartTime, loc)
	entries, err := s.waitingRepo.FindByClubAndDate(ctx, event.ClubID, day.String(), []string{model.WaitingPending})
	if err != nil {
		return err
	}

	matched := 0
	for _, entry := range entries {
		if !entryMatches(entry, event) {
			continue
		}

		if !s.slotStillFree(event, day, loc) {
			s.cfg.Log.Info("Freed slot already retaken, skipping notifications",
				"club_id", event.ClubID,
				"court_id", event.CourtID,
				"start_time", event.StartTime,
			)
			break
		}

		if err := s.waitingRepo.UpdateStatus(ctx, entry.ID, model.WaitingNotified); err != nil {
			s.cfg.Log.Error("Failed to mark waiting list entry as notified",
				"entry_id", entry.ID,
				"error", err,
			)
			continue
		}

		s.cfg.Log.Info("Waiting list contact",
			"entry_id", entry.ID,
			"name", entry.Name,
			"phone", entry.Phone,
			"club_id", event.ClubID,
			"court_id", event.CourtID,
			"date", day.String(),
			"start_time", event.StartTime,
		)
		matched++
	}

	s.cfg.Log.Debug("Freed slot processed",
		"booking_id", event.BookingID,
		"candidates", len(entries),
		"notified", matched,
	)
	return nil
}

// entryMatches checks court and time window interest. An entry without a
// court wants any court; an entry without a window wants any time that day.
func entryMatches(entry *model.WaitingListEntry, event *events.BookingEvent) bool {
	if entry.CourtID != "" && entry.CourtID != event.CourtID {
		return false
	}
	if entry.StartTime != nil && entry.EndTime != nil {
		if !entry.StartTime.Before(event.EndTime) || !entry.EndTime.After(event.StartTime) {
			return false
		}
	}
	return true
}

// slotStillFree asks the availability service before notifying anyone, so a
// slot rebooked between the event and now does not trigger contacts.
func (s *NotifierService) slotStillFree(event *events.BookingEvent, day localtime.Date, loc *time.Location) bool {
	startClock := event.StartTime.In(loc).Format("15:04")

	resp, err := s.availability.GetQuote(event.ClubID, event.CourtID, day.String(), startClock)
	if err != nil {
		s.cfg.Log.Warn("Availability check failed, assuming slot is free",
			"club_id", event.ClubID,
			"court_id", event.CourtID,
			"error", err,
		)
		return true
	}
	if resp.StatusCode != http.StatusOK {
		s.cfg.Log.Warn("Availability check returned non-OK status",
			"status", resp.StatusCode,
			"club_id", event.ClubID,
			"court_id", event.CourtID,
		)
		return true
	}

	var envelope struct {
		Data struct {
			Available bool `json:"available"`
		} `json:"data"`
	}
	if err := resp.DecodeJSON(&envelope); err != nil {
		s.cfg.Log.Warn("Failed to decode availability response", "error", err)
		return true
	}

	return envelope.Data.Available
}
