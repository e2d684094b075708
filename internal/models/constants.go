package models

const (
	StatusWaiting  = "WAITING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

const (
	// HeaderUserID carries the caller identity on every request.
	HeaderUserID = "X-Sharer-User-Id"

	// DefaultPageSize размер страницы по умолчанию
	DefaultPageSize = 10

	// MaxPageSize верхняя граница размера страницы
	MaxPageSize = 100

	// RateLimitRequests количество запросов в окне (gateway)
	RateLimitRequests = 30

	// RateLimitWindow окно ограничения частоты запросов в секундах
	RateLimitWindow = 60

	// WorkerQueueSize размер очереди воркера синхронизации
	WorkerQueueSize = 128
)
