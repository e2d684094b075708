package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"lendit/internal/models"
)

const bookingColumns = `b.id, b.start_date, b.end_date, b.item_id, i.name, b.booker_id, i.owner_id, b.status, b.created_at, b.updated_at`

func scanBooking(row interface{ Scan(...any) error }) (*models.Booking, error) {
	var b models.Booking
	err := row.Scan(
		&b.ID, &b.Start, &b.End, &b.ItemID, &b.ItemName,
		&b.BookerID, &b.OwnerID, &b.Status, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (db *DB) GetBooking(ctx context.Context, id int64) (*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings b JOIN items i ON i.id = b.item_id WHERE b.id = ?`
	booking, err := scanBooking(db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("booking %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return booking, nil
}

// CreateBookingWithCheck создает бронирование, проверяя доступность вещи
// внутри транзакции.
func (db *DB) CreateBookingWithCheck(ctx context.Context, booking *models.Booking) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var (
		itemName  string
		available bool
		ownerID   int64
	)
	err = tx.QueryRowContext(ctx,
		`SELECT name, available, owner_id FROM items WHERE id = ?`, booking.ItemID,
	).Scan(&itemName, &available, &ownerID)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("item %d: %w", booking.ItemID, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to check item in tx: %w", err)
	}
	if !available {
		return fmt.Errorf("item %d: %w", booking.ItemID, ErrNotAvailable)
	}

	now := time.Now().UTC()
	result, err := tx.ExecContext(ctx,
		`INSERT INTO bookings (start_date, end_date, item_id, booker_id, status, created_at, updated_at)
         VALUES (?, ?, ?, ?, ?, ?, ?)`,
		booking.Start.UTC(), booking.End.UTC(), booking.ItemID, booking.BookerID,
		booking.Status, now, now,
	)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit booking: %w", err)
	}

	booking.ID = id
	booking.ItemName = itemName
	booking.OwnerID = ownerID
	booking.CreatedAt = now
	booking.UpdatedAt = now
	return nil
}

// SetBookingStatus переводит заявку из WAITING в APPROVED или REJECTED.
// Любой другой исходный статус — ошибка: повторное согласование запрещено.
func (db *DB) SetBookingStatus(ctx context.Context, id int64, status string) (*models.Booking, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var current string
	err = tx.QueryRowContext(ctx, `SELECT status FROM bookings WHERE id = ?`, id).Scan(&current)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("booking %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking status: %w", err)
	}
	if current != models.StatusWaiting {
		return nil, fmt.Errorf("booking %d is already %s: %w", id, current, ErrInvalidCondition)
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE bookings SET status = ?, updated_at = ? WHERE id = ?`,
		status, time.Now().UTC(), id,
	); err != nil {
		return nil, fmt.Errorf("failed to update booking status: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit status update: %w", err)
	}

	return db.GetBooking(ctx, id)
}

// GetBookingsForBooker возвращает бронирования пользователя, отфильтрованные
// по состоянию, по убыванию даты начала.
func (db *DB) GetBookingsForBooker(ctx context.Context, bookerID int64, state models.BookingState, now time.Time, limit, offset int) ([]models.Booking, error) {
	return db.bookingsByState(ctx, `b.booker_id = ?`, bookerID, state, now, limit, offset)
}

// GetBookingsForOwner возвращает бронирования вещей владельца.
func (db *DB) GetBookingsForOwner(ctx context.Context, ownerID int64, state models.BookingState, now time.Time, limit, offset int) ([]models.Booking, error) {
	return db.bookingsByState(ctx, `i.owner_id = ?`, ownerID, state, now, limit, offset)
}

func (db *DB) bookingsByState(ctx context.Context, base string, id int64, state models.BookingState, now time.Time, limit, offset int) ([]models.Booking, error) {
	args := []any{id}
	cond := base

	// datetime() нормализует метки времени перед сравнением
	nowStr := now.UTC()
	switch state {
	case models.StateAll:
		// без дополнительного условия
	case models.StateCurrent:
		cond += ` AND datetime(b.start_date) <= datetime(?) AND datetime(b.end_date) >= datetime(?)`
		args = append(args, nowStr, nowStr)
	case models.StatePast:
		cond += ` AND datetime(b.end_date) < datetime(?)`
		args = append(args, nowStr)
	case models.StateFuture:
		cond += ` AND datetime(b.start_date) > datetime(?)`
		args = append(args, nowStr)
	case models.StateWaiting:
		cond += ` AND b.status = ?`
		args = append(args, models.StatusWaiting)
	case models.StateRejected:
		cond += ` AND b.status = ?`
		args = append(args, models.StatusRejected)
	default:
		return nil, fmt.Errorf("unknown booking state %q: %w", state, ErrInvalidCondition)
	}

	query := `SELECT ` + bookingColumns + ` FROM bookings b JOIN items i ON i.id = b.item_id
              WHERE ` + cond + ` ORDER BY b.start_date DESC LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer rows.Close()

	bookings := []models.Booking{}
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, *booking)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return bookings, nil
}

// GetLastBooking возвращает последнее начавшееся бронирование вещи.
func (db *DB) GetLastBooking(ctx context.Context, itemID int64, now time.Time) (*models.BookingSummary, error) {
	query := `SELECT id, booker_id FROM bookings
              WHERE item_id = ? AND status != ? AND datetime(start_date) <= datetime(?)
              ORDER BY start_date DESC LIMIT 1`
	return db.bookingSummary(ctx, query, itemID, models.StatusRejected, now.UTC())
}

// GetNextBooking возвращает ближайшее будущее бронирование вещи.
func (db *DB) GetNextBooking(ctx context.Context, itemID int64, now time.Time) (*models.BookingSummary, error) {
	query := `SELECT id, booker_id FROM bookings
              WHERE item_id = ? AND status != ? AND datetime(start_date) > datetime(?)
              ORDER BY start_date ASC LIMIT 1`
	return db.bookingSummary(ctx, query, itemID, models.StatusRejected, now.UTC())
}

func (db *DB) bookingSummary(ctx context.Context, query string, args ...any) (*models.BookingSummary, error) {
	var s models.BookingSummary
	err := db.QueryRowContext(ctx, query, args...).Scan(&s.ID, &s.BookerID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking summary: %w", err)
	}
	return &s, nil
}

// HasFinishedBooking проверяет, было ли у пользователя завершенное
// подтвержденное бронирование вещи. Это условие для комментария.
func (db *DB) HasFinishedBooking(ctx context.Context, itemID, bookerID int64, now time.Time) (bool, error) {
	query := `SELECT COUNT(*) FROM bookings
              WHERE item_id = ? AND booker_id = ? AND status = ? AND datetime(end_date) < datetime(?)`
	var count int
	err := db.QueryRowContext(ctx, query, itemID, bookerID, models.StatusApproved, now.UTC()).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check finished bookings: %w", err)
	}
	return count > 0, nil
}
