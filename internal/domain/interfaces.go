package domain

import (
	"context"
	"time"

	"lendit/internal/models"
)

// Repository is the persistence surface of the core server.
// *database.DB is the production implementation.
type Repository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, id int64) (*models.User, error)
	GetAllUsers(ctx context.Context) ([]models.User, error)
	UpdateUser(ctx context.Context, id int64, patch models.UserPatch) (*models.User, error)
	DeleteUser(ctx context.Context, id int64) error
	UserExists(ctx context.Context, id int64) (bool, error)

	CreateItem(ctx context.Context, item *models.Item) error
	GetItem(ctx context.Context, id int64) (*models.Item, error)
	UpdateItem(ctx context.Context, item *models.Item) error
	GetItemsByOwner(ctx context.Context, ownerID int64, limit, offset int) ([]models.Item, error)
	SearchItems(ctx context.Context, text string, limit, offset int) ([]models.Item, error)
	GetItemsByRequest(ctx context.Context, requestID int64) ([]models.Item, error)

	GetBooking(ctx context.Context, id int64) (*models.Booking, error)
	CreateBookingWithCheck(ctx context.Context, booking *models.Booking) error
	SetBookingStatus(ctx context.Context, id int64, status string) (*models.Booking, error)
	GetBookingsForBooker(ctx context.Context, bookerID int64, state models.BookingState, now time.Time, limit, offset int) ([]models.Booking, error)
	GetBookingsForOwner(ctx context.Context, ownerID int64, state models.BookingState, now time.Time, limit, offset int) ([]models.Booking, error)
	GetLastBooking(ctx context.Context, itemID int64, now time.Time) (*models.BookingSummary, error)
	GetNextBooking(ctx context.Context, itemID int64, now time.Time) (*models.BookingSummary, error)
	HasFinishedBooking(ctx context.Context, itemID, bookerID int64, now time.Time) (bool, error)

	CreateRequest(ctx context.Context, request *models.ItemRequest) error
	GetRequest(ctx context.Context, id int64) (*models.ItemRequest, error)
	GetRequestsByRequester(ctx context.Context, requesterID int64) ([]models.ItemRequest, error)
	GetOtherRequests(ctx context.Context, userID int64, limit, offset int) ([]models.ItemRequest, error)

	CreateComment(ctx context.Context, comment *models.Comment) error
	GetCommentsByItem(ctx context.Context, itemID int64) ([]models.Comment, error)
}

// RateLimitRepository tracks request counts per caller for the gateway.
type RateLimitRepository interface {
	CheckRateLimit(ctx context.Context, userID int64, limit int, window time.Duration) (bool, error)
}

type EventPublisher interface {
	PublishJSON(eventType string, payload interface{}) error
}

type SyncWorker interface {
	EnqueueTask(ctx context.Context, taskType string, booking *models.Booking, status string) error
}

// SheetsWriter pushes booking rows to an external spreadsheet.
type SheetsWriter interface {
	UpsertBooking(ctx context.Context, booking *models.Booking) error
	UpdateBookingStatus(ctx context.Context, bookingID int64, status string) error
}

type UserService interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, id int64) (*models.User, error)
	GetAllUsers(ctx context.Context) ([]models.User, error)
	UpdateUser(ctx context.Context, id int64, patch models.UserPatch) (*models.User, error)
	DeleteUser(ctx context.Context, id int64) error
}

type ItemService interface {
	CreateItem(ctx context.Context, ownerID int64, item *models.Item) error
	UpdateItem(ctx context.Context, ownerID, itemID int64, patch models.ItemPatch) (*models.Item, error)
	GetItemDetail(ctx context.Context, callerID, itemID int64) (*models.ItemDetail, error)
	GetOwnerItems(ctx context.Context, ownerID int64, page models.PageRequest) ([]models.ItemDetail, error)
	SearchItems(ctx context.Context, text string, page models.PageRequest) ([]models.Item, error)
	AddComment(ctx context.Context, authorID, itemID int64, text string) (*models.Comment, error)
}

type BookingService interface {
	CreateBooking(ctx context.Context, bookerID int64, req models.BookingRequest) (*models.Booking, error)
	ApproveBooking(ctx context.Context, ownerID, bookingID int64, approved bool) (*models.Booking, error)
	GetBookingForUser(ctx context.Context, userID, bookingID int64) (*models.Booking, error)
	GetBookingsForBooker(ctx context.Context, bookerID int64, state models.BookingState, page models.PageRequest) ([]models.Booking, error)
	GetBookingsForOwner(ctx context.Context, ownerID int64, state models.BookingState, page models.PageRequest) ([]models.Booking, error)
}

type RequestService interface {
	CreateRequest(ctx context.Context, requesterID int64, description string) (*models.ItemRequest, error)
	GetOwnRequests(ctx context.Context, userID int64) ([]models.ItemRequestDetail, error)
	GetOtherRequests(ctx context.Context, userID int64, page models.PageRequest) ([]models.ItemRequestDetail, error)
	GetRequest(ctx context.Context, userID, requestID int64) (*models.ItemRequestDetail, error)
}
