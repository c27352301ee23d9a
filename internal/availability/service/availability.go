package service

import (
	"context"
	"errors"
	"time"

	bookingsrepository "courtops/internal/bookings/repository"
	clubsrepository "courtops/internal/clubs/repository"
	"courtops/pkg/config"
	apperrors "courtops/pkg/errors"
	"courtops/pkg/localtime"
	"courtops/pkg/model"
	"courtops/pkg/schedule"
)

// DayGrid is the bookable view of one court and local day.
type DayGrid struct {
	ClubID   string       `json:"club_id"`
	CourtID  string       `json:"court_id"`
	Date     string       `json:"date"`
	TimeZone string       `json:"time_zone"`
	Slots    []model.Slot `json:"slots"`
}

// Quote prices one candidate slot without booking it.
type Quote struct {
	ClubID    string    `json:"club_id"`
	CourtID   string    `json:"court_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Available bool      `json:"available"`
	Price     int64     `json:"price"`
}

type AvailabilityService interface {
	CourtDay(ctx context.Context, clubID, courtID, date string, member bool) (*DayGrid, error)
	ClubDay(ctx context.Context, clubID, date string, member bool) ([]*DayGrid, error)
	QuoteSlot(ctx context.Context, clubID, courtID, date, startTime string, member bool) (*Quote, error)
}

type availabilityService struct {
	clubRepo    clubsrepository.ClubRepository
	courtRepo   clubsrepository.CourtRepository
	ruleRepo    clubsrepository.PriceRuleRepository
	bookingRepo bookingsrepository.BookingRepository
	cfg         *config.Config
}

func NewAvailabilityService(
	clubRepo clubsrepository.ClubRepository,
	courtRepo clubsrepository.CourtRepository,
	ruleRepo clubsrepository.PriceRuleRepository,
	bookingRepo bookingsrepository.BookingRepository,
	cfg *config.Config,
) AvailabilityService {
	return &availabilityService{
		clubRepo:    clubRepo,
		courtRepo:   courtRepo,
		ruleRepo:    ruleRepo,
		bookingRepo: bookingRepo,
		cfg:         cfg,
	}
}

// CourtDay builds the grid for one court. The grid is recomputed from the
// current booking snapshot on every call and never cached.
func (s *availabilityService) CourtDay(ctx context.Context, clubID, courtID, date string, member bool) (*DayGrid, error) {
	club, loc, day, err := s.loadClubDay(ctx, clubID, date)
	if err != nil {
		return nil, err
	}

	court, err := s.loadCourt(ctx, clubID, courtID)
	if err != nil {
		return nil, err
	}

	rules, err := s.ruleRepo.FindByClub(ctx, clubID)
	if err != nil {
		return nil, apperrors.Internal("Failed to load price rules", err)
	}

	return s.buildGrid(ctx, club, court, day, loc, rules, member)
}

// ClubDay builds grids for every active court of a club, sharing one price
// rule fetch across courts.
func (s *availabilityService) ClubDay(ctx context.Context, clubID, date string, member bool) ([]*DayGrid, error) {
	club, loc, day, err := s.loadClubDay(ctx, clubID, date)
	if err != nil {
		return nil, err
	}

	courts, err := s.courtRepo.FindByClub(ctx, clubID, false)
	if err != nil {
		return nil, apperrors.Internal("Failed to load courts", err)
	}

	rules, err := s.ruleRepo.FindByClub(ctx, clubID)
	if err != nil {
		return nil, apperrors.Internal("Failed to load price rules", err)
	}

	grids := make([]*DayGrid, 0, len(courts))
	for _, court := range courts {
		grid, err := s.buildGrid(ctx, club, court, day, loc, rules, member)
		if err != nil {
			return nil, err
		}
		grids = append(grids, grid)
	}

	return grids, nil
}

// QuoteSlot resolves availability and price for a single slot start. The
// start must sit on the court's slot raster for that day.
func (s *availabilityService) QuoteSlot(ctx context.Context, clubID, courtID, date, startTime string, member bool) (*Quote, error) {
	club, loc, day, err := s.loadClubDay(ctx, clubID, date)
	if err != nil {
		return nil, err
	}

	court, err := s.loadCourt(ctx, clubID, courtID)
	if err != nil {
		return nil, err
	}

	clock, err := localtime.ParseClock(startTime)
	if err != nil {
		return nil, apperrors.InvalidInput("Start time must be a 24h clock value (HH:MM)")
	}
	start, err := localtime.BuildInstant(loc, day, clock.Hour(), clock.Minute())
	if err != nil {
		return nil, apperrors.InvalidInput("Start time does not exist on that date")
	}

	starts, err := schedule.StartTimes(club, court, day, loc)
	if err != nil {
		return nil, apperrors.DataIntegrity("Club schedule configuration is invalid", err)
	}
	onGrid := false
	for _, t := range starts {
		if t.Equal(start) {
			onGrid = true
			break
		}
	}
	if !onGrid {
		return nil, apperrors.InvalidInput("Requested start is not a bookable slot")
	}

	end := start.Add(schedule.EffectiveDuration(court, club))

	rules, err := s.ruleRepo.FindByClub(ctx, clubID)
	if err != nil {
		return nil, apperrors.Internal("Failed to load price rules", err)
	}
	lc := localtime.Components(start, loc)
	price, err := schedule.ResolvePrice(rules, lc.Date.Weekday(), lc.Hour*60+lc.Minute, member)
	if err != nil {
		if errors.Is(err, schedule.ErrNoPriceRule) {
			return nil, apperrors.DataIntegrity("Club has no matching price rule", err)
		}
		return nil, apperrors.Internal("Failed to resolve price", err)
	}

	blocking, err := s.bookingRepo.FindBlockingByCourtAndWindow(ctx, courtID, start, end)
	if err != nil {
		return nil, apperrors.Internal("Failed to check existing bookings", err)
	}

	return &Quote{
		ClubID:    clubID,
		CourtID:   courtID,
		StartTime: start,
		EndTime:   end,
		Available: !schedule.HasConflict(schedule.Interval{Start: start, End: end}, blocking),
		Price:     price,
	}, nil
}

func (s *availabilityService) buildGrid(
	ctx context.Context,
	club *model.ClubScheduleConfig,
	court *model.Court,
	day localtime.Date,
	loc *time.Location,
	rules []*model.PriceRule,
	member bool,
) (*DayGrid, error) {
	window, err := schedule.DayWindow(club, day, loc)
	if err != nil {
		return nil, apperrors.DataIntegrity("Club schedule configuration is invalid", err)
	}

	bookings, err := s.bookingRepo.FindBlockingByCourtAndWindow(ctx, court.ID, window.Start, window.End)
	if err != nil {
		return nil, apperrors.Internal("Failed to load bookings", err)
	}

	slots, err := schedule.BuildDayGrid(club, court, day, loc, bookings, rules, member)
	if err != nil {
		if errors.Is(err, schedule.ErrNoPriceRule) {
			return nil, apperrors.DataIntegrity("Club has no matching price rule", err)
		}
		return nil, apperrors.Internal("Failed to build day grid", err)
	}

	return &DayGrid{
		ClubID:   club.ID,
		CourtID:  court.ID,
		Date:     day.String(),
		TimeZone: club.TimeZone,
		Slots:    slots,
	}, nil
}

func (s *availabilityService) loadClubDay(ctx context.Context, clubID, date string) (*model.ClubScheduleConfig, *time.Location, localtime.Date, error) {
	var zero localtime.Date

	if clubID == "" || date == "" {
		return nil, nil, zero, apperrors.InvalidInput("Club ID and date are required")
	}

	club, err := s.clubRepo.FindByID(ctx, clubID)
	if err != nil {
		return nil, nil, zero, apperrors.NotFoundWithID("Club", clubID)
	}

	day, err := localtime.ParseDate(date)
	if err != nil {
		return nil, nil, zero, apperrors.InvalidInput("Date must use the YYYY-MM-DD layout")
	}

	loc, err := localtime.LoadZone(club.TimeZone)
	if err != nil {
		return nil, nil, zero, apperrors.DataIntegrity("Club has an invalid time zone", err)
	}

	return club, loc, day, nil
}

func (s *availabilityService) loadCourt(ctx context.Context, clubID, courtID string) (*model.Court, error) {
	court, err := s.courtRepo.FindByID(ctx, courtID)
	if err != nil {
		return nil, apperrors.NotFoundWithID("Court", courtID)
	}
	if court.ClubID != clubID {
		return nil, apperrors.InvalidInput("Court does not belong to the given club")
	}
	if !court.Active {
		return nil, apperrors.Conflict("Court is not active")
	}
	return court, nil
}
