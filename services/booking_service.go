package services

import (
	"context"
	"time"

	"abchotels/builders"
	apperrors "abchotels/errors"
	"abchotels/models"
	"abchotels/repository"
	"abchotels/services/logger"
	"abchotels/services/notification"
	"abchotels/utils"
	"abchotels/validator"

	"github.com/shopspring/decimal"
)

// BookingInput is a guest's booking request after boundary validation
type BookingInput struct {
	RoomID          uint
	GuestName       string
	GuestEmail      string
	GuestPhone      string
	CheckIn         string
	CheckOut        string
	SpecialRequests string
}

// BookingListFilter is the staff booking list query
type BookingListFilter struct {
	Status string
	RoomID uint
	CityID uint
	Page   utils.Pagination
}

// AvailabilityResult answers a date check for one room
type AvailabilityResult struct {
	Room       *models.Room
	Stay       models.DateRange
	Available  bool
	TotalPrice decimal.Decimal
}

// CloseOutResult counts the bookings moved by CloseOutPastStays
type CloseOutResult struct {
	Completed int64
	Cancelled int64
}

type BookingService struct {
	rooms    repository.RoomRepository
	bookings repository.BookingRepository
	notifier notification.Service
	log      logger.Logger
	loc      *time.Location
	now      func() time.Time
}

func NewBookingService(
	rooms repository.RoomRepository,
	bookings repository.BookingRepository,
	notifier notification.Service,
	log logger.Logger,
	loc *time.Location,
) *BookingService {
	if loc == nil {
		loc = time.UTC
	}
	return &BookingService{
		rooms:    rooms,
		bookings: bookings,
		notifier: notifier,
		log:      log,
		loc:      loc,
		now:      time.Now,
	}
}

// Today is the current calendar date at the hotel
func (s *BookingService) Today() time.Time {
	return models.DateOf(s.now().In(s.loc))
}

// CreateBooking validates the stay, re-checks availability under a row lock on the room
// and stores the booking as pending.
func (s *BookingService) CreateBooking(ctx context.Context, in BookingInput) (*models.Booking, error) {
	room, err := s.rooms.FindByID(ctx, in.RoomID)
	if err != nil {
		return nil, err
	}

	stay, err := validator.ParseStay(in.CheckIn, in.CheckOut, s.Today())
	if err != nil {
		return nil, err
	}

	booking := builders.NewBookingBuilder().
		ForRoom(room).
		WithGuestInfo(in.GuestName, in.GuestEmail, in.GuestPhone).
		WithStay(stay).
		WithSpecialRequests(in.SpecialRequests).
		Build()

	err = s.bookings.WithinTransaction(ctx, func(tx repository.BookingRepository) error {
		locked, err := tx.LockRoom(ctx, room.ID)
		if err != nil {
			return err
		}
		if !locked.IsAvailable {
			return roomUnavailable()
		}
		overlap, err := tx.HasOverlap(ctx, room.ID, stay)
		if err != nil {
			return err
		}
		if overlap {
			return roomUnavailable()
		}
		return tx.Create(ctx, booking)
	})
	if err != nil {
		if !apperrors.IsAppError(err) {
			err = apperrors.Internal(err)
		}
		return nil, err
	}

	s.log.Info("booking %d created for room %s (%s)", booking.ID, room.RoomNumber, stay)
	s.publish(ctx, notification.NewMessageBuilder(notification.EventBookingCreated).
		Message("New booking #%d: %s, room %s, %s", booking.ID, booking.GuestName, room.RoomNumber, stay).
		Data(map[string]interface{}{
			"bookingId":  booking.ID,
			"roomId":     room.ID,
			"checkIn":    stay.CheckIn.Format(models.DateLayout),
			"checkOut":   stay.CheckOut.Format(models.DateLayout),
			"totalPrice": booking.TotalPrice,
		}).
		Build())

	return booking, nil
}

// CheckAvailability validates the stay the way CreateBooking does and reports whether
// the room could be booked for it. Nothing is written.
func (s *BookingService) CheckAvailability(ctx context.Context, roomID uint, checkIn, checkOut string) (*AvailabilityResult, error) {
	room, err := s.rooms.FindByID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	stay, err := validator.ParseStay(checkIn, checkOut, s.Today())
	if err != nil {
		return nil, err
	}
	overlap, err := s.bookings.HasOverlap(ctx, room.ID, stay)
	if err != nil {
		return nil, err
	}
	return &AvailabilityResult{
		Room:       room,
		Stay:       stay,
		Available:  room.IsAvailable && !overlap,
		TotalPrice: builders.StayPrice(room.RoomType.PricePerNight, stay),
	}, nil
}

func (s *BookingService) GetBooking(ctx context.Context, id uint) (*models.Booking, error) {
	return s.bookings.FindByID(ctx, id)
}

func (s *BookingService) ListBookings(ctx context.Context, f BookingListFilter) ([]models.Booking, int64, error) {
	filter := repository.BookingFilter{
		RoomID: f.RoomID,
		CityID: f.CityID,
		Offset: f.Page.Offset(),
		Limit:  f.Page.Limit,
	}
	if f.Status != "" {
		status, err := validator.ValidateBookingStatus(f.Status)
		if err != nil {
			return nil, 0, err
		}
		filter.Status = status
	}
	return s.bookings.List(ctx, filter)
}

// UpdateStatus sets any known status; staff are trusted with every transition
func (s *BookingService) UpdateStatus(ctx context.Context, id uint, status string) (*models.Booking, error) {
	next, err := validator.ValidateBookingStatus(status)
	if err != nil {
		return nil, err
	}
	if err := s.bookings.UpdateStatus(ctx, id, next); err != nil {
		return nil, err
	}

	booking, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.log.Info("booking %d set to %s", id, next)
	s.publish(ctx, notification.NewMessageBuilder(notification.EventBookingStatusChanged).
		Message("Booking #%d is now %s", id, next).
		Data(map[string]interface{}{"bookingId": id, "status": next}).
		Build())
	return booking, nil
}

// CloseOutPastStays completes confirmed stays that have ended and cancels pending
// bookings whose check-in date has passed.
func (s *BookingService) CloseOutPastStays(ctx context.Context) (CloseOutResult, error) {
	today := s.Today()

	completed, err := s.bookings.CompleteCheckedOut(ctx, today)
	if err != nil {
		return CloseOutResult{}, err
	}
	cancelled, err := s.bookings.CancelStalePending(ctx, today)
	if err != nil {
		return CloseOutResult{Completed: completed}, err
	}

	s.log.Info("close-out for %s: %d completed, %d cancelled", today.Format(models.DateLayout), completed, cancelled)
	return CloseOutResult{Completed: completed, Cancelled: cancelled}, nil
}

func (s *BookingService) publish(ctx context.Context, event notification.Event) {
	if err := s.notifier.Publish(ctx, event); err != nil {
		s.log.Error("publish %s: %v", event.Type, err)
	}
}

func roomUnavailable() error {
	return apperrors.NewAppError(apperrors.ErrCodeRoomUnavailable, apperrors.ErrRoomNotAvailable.Error(), apperrors.ErrRoomNotAvailable)
}
