package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"lendit/internal/database"
	"lendit/internal/domain"
	"lendit/internal/models"

	"github.com/rs/zerolog"
)

type ItemService struct {
	repo   domain.Repository
	logger *zerolog.Logger
}

func NewItemService(repo domain.Repository, logger *zerolog.Logger) *ItemService {
	return &ItemService{repo: repo, logger: logger}
}

func (s *ItemService) CreateItem(ctx context.Context, ownerID int64, item *models.Item) error {
	if err := s.requireUser(ctx, ownerID); err != nil {
		return err
	}

	item.Name = strings.TrimSpace(item.Name)
	item.Description = strings.TrimSpace(item.Description)
	if item.Name == "" {
		return fmt.Errorf("item name is required: %w", database.ErrInvalidCondition)
	}
	if item.Description == "" {
		return fmt.Errorf("item description is required: %w", database.ErrInvalidCondition)
	}

	if item.RequestID != nil {
		if _, err := s.repo.GetRequest(ctx, *item.RequestID); err != nil {
			return err
		}
	}

	item.OwnerID = ownerID
	if err := s.repo.CreateItem(ctx, item); err != nil {
		return err
	}
	s.logger.Info().Int64("item_id", item.ID).Int64("owner_id", ownerID).Msg("item created")
	return nil
}

// UpdateItem применяет частичное обновление. Менять вещь может только владелец.
func (s *ItemService) UpdateItem(ctx context.Context, ownerID, itemID int64, patch models.ItemPatch) (*models.Item, error) {
	item, err := s.repo.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.OwnerID != ownerID {
		return nil, fmt.Errorf("user %d does not own item %d: %w", ownerID, itemID, database.ErrForbidden)
	}

	if patch.Name != nil {
		if strings.TrimSpace(*patch.Name) == "" {
			return nil, fmt.Errorf("item name must not be blank: %w", database.ErrInvalidCondition)
		}
		item.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Description != nil {
		item.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.Available != nil {
		item.Available = *patch.Available
	}

	if err := s.repo.UpdateItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// GetItemDetail возвращает вещь с комментариями. Сводки последнего и
// следующего бронирования видит только владелец.
func (s *ItemService) GetItemDetail(ctx context.Context, callerID, itemID int64) (*models.ItemDetail, error) {
	item, err := s.repo.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, item, callerID == item.OwnerID)
}

func (s *ItemService) GetOwnerItems(ctx context.Context, ownerID int64, page models.PageRequest) ([]models.ItemDetail, error) {
	if err := s.requireUser(ctx, ownerID); err != nil {
		return nil, err
	}

	items, err := s.repo.GetItemsByOwner(ctx, ownerID, page.Size, page.Offset())
	if err != nil {
		return nil, err
	}

	details := make([]models.ItemDetail, 0, len(items))
	for i := range items {
		detail, err := s.enrich(ctx, &items[i], true)
		if err != nil {
			return nil, err
		}
		details = append(details, *detail)
	}
	return details, nil
}

func (s *ItemService) SearchItems(ctx context.Context, text string, page models.PageRequest) ([]models.Item, error) {
	return s.repo.SearchItems(ctx, text, page.Size, page.Offset())
}

// AddComment добавляет отзыв. Комментировать можно только вещь, которую
// автор уже брал: нужно завершенное подтвержденное бронирование.
func (s *ItemService) AddComment(ctx context.Context, authorID, itemID int64, text string) (*models.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("comment text is required: %w", database.ErrInvalidCondition)
	}

	author, err := s.repo.GetUser(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if _, err := s.repo.GetItem(ctx, itemID); err != nil {
		return nil, err
	}

	ok, err := s.repo.HasFinishedBooking(ctx, itemID, authorID, time.Now())
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("user %d has no finished booking of item %d: %w", authorID, itemID, database.ErrInvalidCondition)
	}

	comment := &models.Comment{
		Text:       text,
		ItemID:     itemID,
		AuthorID:   authorID,
		AuthorName: author.Name,
	}
	if err := s.repo.CreateComment(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *ItemService) enrich(ctx context.Context, item *models.Item, ownerView bool) (*models.ItemDetail, error) {
	comments, err := s.repo.GetCommentsByItem(ctx, item.ID)
	if err != nil {
		return nil, err
	}

	detail := &models.ItemDetail{Item: *item, Comments: comments}
	if !ownerView {
		return detail, nil
	}

	now := time.Now()
	if detail.LastBooking, err = s.repo.GetLastBooking(ctx, item.ID, now); err != nil {
		return nil, err
	}
	if detail.NextBooking, err = s.repo.GetNextBooking(ctx, item.ID, now); err != nil {
		return nil, err
	}
	return detail, nil
}

func (s *ItemService) requireUser(ctx context.Context, userID int64) error {
	ok, err := s.repo.UserExists(ctx, userID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("user %d: %w", userID, database.ErrNotFound)
	}
	return nil
}
