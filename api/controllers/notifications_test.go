package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mirafzalswe/foodsave/api/middleware"
	"github.com/mirafzalswe/foodsave/internal/notifications"
	"github.com/mirafzalswe/foodsave/pkg/logger"
	"github.com/mirafzalswe/foodsave/pkg/pagination"
)

type testNotificationsService struct {
	markReadFn    func(ctx context.Context, userID, notificationID uuid.UUID) error
	markAllReadFn func(ctx context.Context, userID uuid.UUID) (int64, error)
	listFn        func(ctx context.Context, userID uuid.UUID, unreadOnly bool, page pagination.Params) (*notifications.PageDTO, error)
}

func (s *testNotificationsService) Create(ctx context.Context, input notifications.CreateInput) (*notifications.NotificationDTO, error) {
	return nil, nil
}

func (s *testNotificationsService) List(ctx context.Context, userID uuid.UUID, unreadOnly bool, page pagination.Params) (*notifications.PageDTO, error) {
	if s.listFn != nil {
		return s.listFn(ctx, userID, unreadOnly, page)
	}
	return &notifications.PageDTO{}, nil
}

func (s *testNotificationsService) MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	if s.markReadFn != nil {
		return s.markReadFn(ctx, userID, notificationID)
	}
	return nil
}

func (s *testNotificationsService) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	if s.markAllReadFn != nil {
		return s.markAllReadFn(ctx, userID)
	}
	return 0, nil
}

func (s *testNotificationsService) OrderConfirmed(ctx context.Context, userID uuid.UUID, orderNumber string, total decimal.Decimal) error {
	return nil
}

func (s *testNotificationsService) OfferExpiring(ctx context.Context, userID uuid.UUID, itemTitle string, endDate time.Time) error {
	return nil
}

func testLogg() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func TestMarkNotificationReadSuccess(t *testing.T) {
	userID := uuid.New()
	notificationID := uuid.New()
	called := false
	svc := &testNotificationsService{
		markReadFn: func(ctx context.Context, uid, nid uuid.UUID) error {
			called = true
			if uid != userID {
				t.Fatalf("unexpected user %s", uid)
			}
			if nid != notificationID {
				t.Fatalf("unexpected notification %s", nid)
			}
			return nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/notifications/"+notificationID.String()+"/read", nil)
	req = req.WithContext(middleware.WithUserID(req.Context(), userID.String()))
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("notificationId", notificationID.String())
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))

	resp := httptest.NewRecorder()
	handler := MarkNotificationRead(svc, testLogg())
	handler(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
	if !called {
		t.Fatal("expected service called")
	}
	var envelope map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if envelope["read"] != true {
		t.Fatal("response missing read flag")
	}
}

func TestMarkNotificationReadMissingUser(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/notifications/"+uuid.NewString()+"/read", nil)
	resp := httptest.NewRecorder()

	handler := MarkNotificationRead(&testNotificationsService{}, testLogg())
	handler(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 but got %d", resp.Code)
	}
}

func TestListNotificationsUnreadOnly(t *testing.T) {
	userID := uuid.New()
	var gotUnread bool
	svc := &testNotificationsService{
		listFn: func(ctx context.Context, uid uuid.UUID, unreadOnly bool, page pagination.Params) (*notifications.PageDTO, error) {
			gotUnread = unreadOnly
			return &notifications.PageDTO{Notifications: []notifications.NotificationDTO{}, Page: page.Page, PageSize: page.PageSize}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/notifications?unread_only=true", nil)
	req = req.WithContext(middleware.WithUserID(req.Context(), userID.String()))
	resp := httptest.NewRecorder()

	ListNotifications(svc, testLogg())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
	if !gotUnread {
		t.Fatal("expected unread_only filter passed through")
	}
}
