package service

import (
	"context"
	"fmt"
	"strings"

	"lendit/internal/database"
	"lendit/internal/domain"
	"lendit/internal/models"

	"github.com/rs/zerolog"
)

type RequestService struct {
	repo   domain.Repository
	logger *zerolog.Logger
}

func NewRequestService(repo domain.Repository, logger *zerolog.Logger) *RequestService {
	return &RequestService{repo: repo, logger: logger}
}

func (s *RequestService) CreateRequest(ctx context.Context, requesterID int64, description string) (*models.ItemRequest, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, fmt.Errorf("request description is required: %w", database.ErrInvalidCondition)
	}
	if err := s.requireUser(ctx, requesterID); err != nil {
		return nil, err
	}

	request := &models.ItemRequest{Description: description, RequesterID: requesterID}
	if err := s.repo.CreateRequest(ctx, request); err != nil {
		return nil, err
	}
	s.logger.Info().Int64("request_id", request.ID).Int64("requester_id", requesterID).Msg("item request created")
	return request, nil
}

// GetOwnRequests возвращает запросы пользователя вместе с вещами,
// выставленными в ответ на них.
func (s *RequestService) GetOwnRequests(ctx context.Context, userID int64) ([]models.ItemRequestDetail, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	requests, err := s.repo.GetRequestsByRequester(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.enrichAll(ctx, requests)
}

// GetOtherRequests возвращает чужие запросы постранично.
func (s *RequestService) GetOtherRequests(ctx context.Context, userID int64, page models.PageRequest) ([]models.ItemRequestDetail, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	requests, err := s.repo.GetOtherRequests(ctx, userID, page.Size, page.Offset())
	if err != nil {
		return nil, err
	}
	return s.enrichAll(ctx, requests)
}

func (s *RequestService) GetRequest(ctx context.Context, userID, requestID int64) (*models.ItemRequestDetail, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	request, err := s.repo.GetRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, *request)
}

func (s *RequestService) enrichAll(ctx context.Context, requests []models.ItemRequest) ([]models.ItemRequestDetail, error) {
	details := make([]models.ItemRequestDetail, 0, len(requests))
	for _, request := range requests {
		detail, err := s.enrich(ctx, request)
		if err != nil {
			return nil, err
		}
		details = append(details, *detail)
	}
	return details, nil
}

func (s *RequestService) enrich(ctx context.Context, request models.ItemRequest) (*models.ItemRequestDetail, error) {
	items, err := s.repo.GetItemsByRequest(ctx, request.ID)
	if err != nil {
		return nil, err
	}
	return &models.ItemRequestDetail{ItemRequest: request, Items: items}, nil
}

func (s *RequestService) requireUser(ctx context.Context, userID int64) error {
	ok, err := s.repo.UserExists(ctx, userID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("user %d: %w", userID, database.ErrNotFound)
	}
	return nil
}
