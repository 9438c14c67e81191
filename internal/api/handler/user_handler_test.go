package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/account-service/internal/api/middleware"
	"github.com/99minutos/account-service/internal/core/domain"
	"github.com/99minutos/account-service/internal/core/ports"
	"github.com/99minutos/account-service/internal/core/response"
)

type stubUserService struct {
	getFn    func(ctx context.Context, id string) response.APIResponse
	updateFn func(ctx context.Context, id string, in ports.UpdateUserInput) response.APIResponse
	deleteFn func(ctx context.Context, id string) response.APIResponse
	auditFn  func(ctx context.Context, id string) response.APIResponse
}

func (s *stubUserService) GetUser(ctx context.Context, id string) response.APIResponse {
	return s.getFn(ctx, id)
}

func (s *stubUserService) UpdateUser(ctx context.Context, id string, in ports.UpdateUserInput) response.APIResponse {
	return s.updateFn(ctx, id, in)
}

func (s *stubUserService) SoftDeleteUser(ctx context.Context, id string) response.APIResponse {
	return s.deleteFn(ctx, id)
}

func (s *stubUserService) GetAuditTrail(ctx context.Context, id string) response.APIResponse {
	return s.auditFn(ctx, id)
}

func TestUserHandler_UpdateUser_Partial(t *testing.T) {
	e := newTestEcho()
	stub := &stubUserService{
		updateFn: func(ctx context.Context, id string, in ports.UpdateUserInput) response.APIResponse {
			if id != "user-1" {
				t.Fatalf("unexpected id %q", id)
			}
			if in.Name == nil || *in.Name != "Updated User" || in.Age != nil || in.Address != nil {
				t.Fatalf("unexpected patch: %+v", in)
			}
			return response.Success(response.MsgUserUpdated, http.StatusOK, &domain.PublicUser{ID: id, Name: *in.Name})
		},
	}
	handler := NewUserHandler(stub)

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPatch, "/", `{"name":"Updated User"}`), rec)
	c.Set(middleware.CtxUserID, "user-1")
	serve(e, c, handler.UpdateUser)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	data := decodeEnvelope(t, rec)["data"].(map[string]any)
	if data["name"] != "Updated User" {
		t.Fatalf("unexpected data: %+v", data)
	}
}

func TestUserHandler_UpdateUser_RejectsProtectedFields(t *testing.T) {
	for _, body := range []string{
		`{"email":"new@example.com"}`,
		`{"password":"x"}`,
		`{"age":"-3"}`,
	} {
		e := newTestEcho()
		stub := &stubUserService{
			updateFn: func(ctx context.Context, id string, in ports.UpdateUserInput) response.APIResponse {
				t.Fatalf("body %s should not reach the service", body)
				return response.APIResponse{}
			},
		}
		handler := NewUserHandler(stub)

		rec := httptest.NewRecorder()
		c := e.NewContext(jsonRequest(http.MethodPatch, "/", body), rec)
		c.Set(middleware.CtxUserID, "user-1")
		serve(e, c, handler.UpdateUser)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("body %s: expected 400, got %d", body, rec.Code)
		}
	}
}

func TestUserHandler_Delete(t *testing.T) {
	e := newTestEcho()
	calls := 0
	stub := &stubUserService{
		deleteFn: func(ctx context.Context, id string) response.APIResponse {
			calls++
			if calls == 1 {
				return response.Success(response.MsgUserDeleted, http.StatusOK, nil)
			}
			return response.Error(response.MsgDeleteNotFound, http.StatusNotFound)
		},
	}
	handler := NewUserHandler(stub)

	for _, want := range []int{http.StatusOK, http.StatusNotFound} {
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodDelete, "/", nil), rec)
		c.Set(middleware.CtxUserID, "user-1")
		serve(e, c, handler.Delete)
		if rec.Code != want {
			t.Fatalf("expected %d, got %d", want, rec.Code)
		}
	}
}

func TestUserHandler_Me(t *testing.T) {
	e := newTestEcho()
	stub := &stubUserService{
		getFn: func(ctx context.Context, id string) response.APIResponse {
			if id != "user-1" {
				t.Fatalf("unexpected id %q", id)
			}
			return response.Success(response.MsgUserFetched, http.StatusOK, &domain.PublicUser{ID: id})
		},
	}
	handler := NewUserHandler(stub)

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	c.Set(middleware.CtxUserID, "user-1")
	serve(e, c, handler.Me)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestUserHandler_AdminGetUser(t *testing.T) {
	e := newTestEcho()
	stub := &stubUserService{
		getFn: func(ctx context.Context, id string) response.APIResponse {
			if id != "target" {
				t.Fatalf("unexpected id %q", id)
			}
			return response.Error(response.MsgUserNotFound, http.StatusNotFound)
		},
	}
	handler := NewUserHandler(stub)

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	c.SetParamNames("id")
	c.SetParamValues("target")
	serve(e, c, handler.AdminGetUser)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestUserHandler_AdminAuditTrail(t *testing.T) {
	e := newTestEcho()
	stub := &stubUserService{
		auditFn: func(ctx context.Context, id string) response.APIResponse {
			if id != "target" {
				t.Fatalf("unexpected id %q", id)
			}
			return response.Success(response.MsgAuditFetched, http.StatusOK, []domain.AuditEvent{
				{UserID: id, Action: domain.AuditLogin},
			})
		},
	}
	handler := NewUserHandler(stub)

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	c.SetParamNames("id")
	c.SetParamValues("target")
	serve(e, c, handler.AdminAuditTrail)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	data := decodeEnvelope(t, rec)["data"].([]any)
	if len(data) != 1 || data[0].(map[string]any)["action"] != "login" {
		t.Fatalf("unexpected data: %v", data)
	}
}

func TestHealthHandler_Readiness(t *testing.T) {
	ok := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("connection refused") }

	tests := []struct {
		name   string
		checks map[string]HealthCheck
		want   int
	}{
		{"all up", map[string]HealthCheck{"postgres": ok, "redis": ok, "mongodb": ok}, http.StatusOK},
		{"one down", map[string]HealthCheck{"postgres": ok, "redis": down, "mongodb": ok}, http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/health/ready", nil), rec)

			if err := NewHealthHandler(tt.checks).Readiness(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, rec.Code)
			}
			deps := decodeEnvelope(t, rec)["dependencies"].(map[string]any)
			if len(deps) != len(tt.checks) {
				t.Fatalf("expected %d dependencies, got %+v", len(tt.checks), deps)
			}
		})
	}
}

func TestHealthHandler_Liveness(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/health", nil), rec)

	if err := NewHealthHandler(nil).Liveness(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
