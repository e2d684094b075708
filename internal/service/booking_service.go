package service

import (
	"context"
	"fmt"
	"time"

	"lendit/internal/database"
	"lendit/internal/domain"
	"lendit/internal/events"
	"lendit/internal/models"

	"github.com/rs/zerolog"
)

type BookingService struct {
	repo       domain.Repository
	eventBus   domain.EventPublisher
	syncWorker domain.SyncWorker
	logger     *zerolog.Logger
}

func NewBookingService(repo domain.Repository, eventBus domain.EventPublisher, syncWorker domain.SyncWorker, logger *zerolog.Logger) *BookingService {
	return &BookingService{
		repo:       repo,
		eventBus:   eventBus,
		syncWorker: syncWorker,
		logger:     logger,
	}
}

func validateWindow(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return fmt.Errorf("booking window is required: %w", database.ErrInvalidCondition)
	}
	if !end.After(start) {
		return fmt.Errorf("booking end must be after start: %w", database.ErrInvalidCondition)
	}
	return nil
}

// CreateBooking создает заявку в статусе WAITING. Свою вещь бронировать
// нельзя, недоступную — тоже.
func (s *BookingService) CreateBooking(ctx context.Context, bookerID int64, req models.BookingRequest) (*models.Booking, error) {
	if err := validateWindow(req.Start, req.End); err != nil {
		return nil, err
	}

	if _, err := s.repo.GetUser(ctx, bookerID); err != nil {
		return nil, err
	}

	item, err := s.repo.GetItem(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}
	if item.OwnerID == bookerID {
		// Владелец не видит собственную вещь как объект бронирования.
		return nil, fmt.Errorf("item %d belongs to booker %d: %w", req.ItemID, bookerID, database.ErrNotFound)
	}
	if !item.Available {
		return nil, fmt.Errorf("item %d: %w", req.ItemID, database.ErrNotAvailable)
	}

	booking := &models.Booking{
		Start:    req.Start,
		End:      req.End,
		ItemID:   req.ItemID,
		BookerID: bookerID,
		Status:   models.StatusWaiting,
	}
	if err := s.repo.CreateBookingWithCheck(ctx, booking); err != nil {
		return nil, err
	}

	s.publishEvent(events.EventBookingCreated, booking)
	s.enqueueSync(ctx, events.TaskUpsert, booking, "")
	return booking, nil
}

// ApproveBooking подтверждает или отклоняет заявку. Решение принимает
// только владелец вещи, и только один раз.
func (s *BookingService) ApproveBooking(ctx context.Context, ownerID, bookingID int64, approved bool) (*models.Booking, error) {
	booking, err := s.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.OwnerID != ownerID {
		return nil, fmt.Errorf("user %d does not own item of booking %d: %w", ownerID, bookingID, database.ErrForbidden)
	}

	status := models.StatusApproved
	eventType := events.EventBookingApproved
	if !approved {
		status = models.StatusRejected
		eventType = events.EventBookingRejected
	}

	updated, err := s.repo.SetBookingStatus(ctx, bookingID, status)
	if err != nil {
		return nil, err
	}

	s.publishEvent(eventType, updated)
	s.enqueueSync(ctx, events.TaskUpdateStatus, updated, updated.Status)
	return updated, nil
}

// GetBookingForUser возвращает бронирование только автору заявки или
// владельцу вещи; остальным — not found.
func (s *BookingService) GetBookingForUser(ctx context.Context, userID, bookingID int64) (*models.Booking, error) {
	booking, err := s.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.BookerID != userID && booking.OwnerID != userID {
		return nil, fmt.Errorf("booking %d is not visible to user %d: %w", bookingID, userID, database.ErrNotFound)
	}
	return booking, nil
}

func (s *BookingService) GetBookingsForBooker(ctx context.Context, bookerID int64, state models.BookingState, page models.PageRequest) ([]models.Booking, error) {
	if err := s.requireUser(ctx, bookerID); err != nil {
		return nil, err
	}
	return s.repo.GetBookingsForBooker(ctx, bookerID, state, time.Now(), page.Size, page.Offset())
}

func (s *BookingService) GetBookingsForOwner(ctx context.Context, ownerID int64, state models.BookingState, page models.PageRequest) ([]models.Booking, error) {
	if err := s.requireUser(ctx, ownerID); err != nil {
		return nil, err
	}
	return s.repo.GetBookingsForOwner(ctx, ownerID, state, time.Now(), page.Size, page.Offset())
}

func (s *BookingService) publishEvent(eventType string, booking *models.Booking) {
	if s.eventBus == nil {
		return
	}

	payload := events.BookingEventPayload{
		BookingID: booking.ID,
		ItemID:    booking.ItemID,
		ItemName:  booking.ItemName,
		BookerID:  booking.BookerID,
		OwnerID:   booking.OwnerID,
		Status:    booking.Status,
		Start:     booking.Start,
		End:       booking.End,
	}
	if err := s.eventBus.PublishJSON(eventType, payload); err != nil {
		s.logger.Error().Err(err).Str("event_type", eventType).Int64("booking_id", booking.ID).Msg("publish event error")
	}
}

func (s *BookingService) enqueueSync(ctx context.Context, taskType string, booking *models.Booking, status string) {
	if s.syncWorker == nil {
		return
	}
	if err := s.syncWorker.EnqueueTask(ctx, taskType, booking, status); err != nil {
		s.logger.Error().Err(err).Int64("booking_id", booking.ID).Str("task", taskType).Msg("sync enqueue error")
	}
}

func (s *BookingService) requireUser(ctx context.Context, userID int64) error {
	ok, err := s.repo.UserExists(ctx, userID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("user %d: %w", userID, database.ErrNotFound)
	}
	return nil
}
