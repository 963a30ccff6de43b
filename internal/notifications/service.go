package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mirafzalswe/foodsave/pkg/db/models"
	"github.com/mirafzalswe/foodsave/pkg/enums"
	pkgerrors "github.com/mirafzalswe/foodsave/pkg/errors"
	"github.com/mirafzalswe/foodsave/pkg/pagination"
)

// NotificationDTO is the inbox payload returned to clients.
type NotificationDTO struct {
	ID        uuid.UUID       `json:"id"`
	Title     string          `json:"title"`
	Message   string          `json:"message"`
	Type      string          `json:"type"`
	IsRead    bool            `json:"is_read"`
	Data      json.RawMessage `json:"data,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// PageDTO wraps a notification page with its pagination echo.
type PageDTO struct {
	Notifications []NotificationDTO `json:"notifications"`
	Total         int64             `json:"total"`
	Page          int               `json:"page"`
	PageSize      int               `json:"page_size"`
}

// CreateInput holds a notification to store.
type CreateInput struct {
	UserID  uuid.UUID
	Title   string
	Message string
	Type    enums.NotificationType
	Data    json.RawMessage
}

// Service defines notification operations.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*NotificationDTO, error)
	List(ctx context.Context, userID uuid.UUID, unreadOnly bool, page pagination.Params) (*PageDTO, error)
	MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error)

	OrderConfirmed(ctx context.Context, userID uuid.UUID, orderNumber string, total decimal.Decimal) error
	OfferExpiring(ctx context.Context, userID uuid.UUID, itemTitle string, endDate time.Time) error
}

type service struct {
	repo Repository
}

// NewService wires notification dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "notifications repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*NotificationDTO, error) {
	if input.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title is required")
	}
	if !input.Type.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown notification type %q", input.Type))
	}

	notification := &models.Notification{
		ID:      uuid.New(),
		UserID:  input.UserID,
		Title:   strings.TrimSpace(input.Title),
		Message: input.Message,
		Type:    input.Type,
		Data:    input.Data,
	}
	if err := s.repo.Create(ctx, notification); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create notification")
	}
	dto := newDTO(*notification)
	return &dto, nil
}

func (s *service) List(ctx context.Context, userID uuid.UUID, unreadOnly bool, page pagination.Params) (*PageDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}

	normalized := page.Normalize()
	rows, total, err := s.repo.ListByUser(ctx, userID, unreadOnly, normalized)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list notifications")
	}

	dtos := make([]NotificationDTO, 0, len(rows))
	for _, row := range rows {
		dtos = append(dtos, newDTO(row))
	}
	return &PageDTO{
		Notifications: dtos,
		Total:         total,
		Page:          normalized.Page,
		PageSize:      normalized.PageSize,
	}, nil
}

// MarkRead flips one notification. Marking someone else's notification, or a
// missing one, is a not found.
func (s *service) MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	if userID == uuid.Nil || notificationID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id and notification id are required")
	}
	affected, err := s.repo.MarkRead(ctx, userID, notificationID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark notification read")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "unread notification not found")
	}
	return nil
}

func (s *service) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	if userID == uuid.Nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	affected, err := s.repo.MarkAllRead(ctx, userID)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark all notifications read")
	}
	return affected, nil
}

// OrderConfirmed stores the post-checkout notification.
func (s *service) OrderConfirmed(ctx context.Context, userID uuid.UUID, orderNumber string, total decimal.Decimal) error {
	data, _ := json.Marshal(map[string]string{"order_number": orderNumber})
	_, err := s.Create(ctx, CreateInput{
		UserID:  userID,
		Title:   "Order confirmed",
		Message: fmt.Sprintf("Order %s for %s is confirmed", orderNumber, total),
		Type:    enums.NotificationTypeOrderConfirmed,
		Data:    data,
	})
	return err
}

// OfferExpiring stores the last-day reminder for an offer's item.
func (s *service) OfferExpiring(ctx context.Context, userID uuid.UUID, itemTitle string, endDate time.Time) error {
	data, _ := json.Marshal(map[string]string{"end_date": endDate.Format("2006-01-02")})
	_, err := s.Create(ctx, CreateInput{
		UserID:  userID,
		Title:   "Offer ending soon",
		Message: fmt.Sprintf("The discount on %q ends on %s", itemTitle, endDate.Format("2006-01-02")),
		Type:    enums.NotificationTypeOfferExpiring,
		Data:    data,
	})
	return err
}

func newDTO(n models.Notification) NotificationDTO {
	return NotificationDTO{
		ID:        n.ID,
		Title:     n.Title,
		Message:   n.Message,
		Type:      n.Type.String(),
		IsRead:    n.IsRead,
		Data:      n.Data,
		CreatedAt: n.CreatedAt,
	}
}
