package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/octobees/people-api/internal/auth"
	"github.com/octobees/people-api/internal/entity"
	"github.com/octobees/people-api/internal/repository"
)

func TestJWTMiddleware(t *testing.T) {
	e := echo.New()
	manager := auth.NewJWTManager("secret", time.Hour, "people-test")

	token, err := manager.GenerateToken(12, "alice", "ROLE_ADMIN")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	foreign, err := auth.NewJWTManager("secret", time.Hour, "other-issuer").GenerateToken(12, "alice", "ROLE_ADMIN")
	if err != nil {
		t.Fatalf("generate foreign token: %v", err)
	}

	tests := map[string]struct {
		header     string
		expectCode int
	}{
		"missing header": {
			expectCode: http.StatusUnauthorized,
		},
		"invalid header": {
			header:     "Basic token",
			expectCode: http.StatusUnauthorized,
		},
		"empty bearer": {
			header:     "Bearer  ",
			expectCode: http.StatusUnauthorized,
		},
		"invalid token": {
			header:     "Bearer invalid",
			expectCode: http.StatusUnauthorized,
		},
		"foreign issuer": {
			header:     "Bearer " + foreign,
			expectCode: http.StatusUnauthorized,
		},
		"success": {
			header:     "Bearer " + token,
			expectCode: http.StatusOK,
		},
		"lower case scheme": {
			header:     "bearer " + token,
			expectCode: http.StatusOK,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			executed := false
			mw := JWT(manager, nil)
			err := mw(func(c echo.Context) error {
				executed = true
				if UserIDFromContext(c) != 12 || UsernameFromContext(c) != "alice" || RoleFromContext(c) != "ROLE_ADMIN" {
					t.Fatalf("expected principal in context")
				}
				return c.NoContent(http.StatusOK)
			})(c)

			if err != nil {
				t.Fatalf("middleware returned error: %v", err)
			}
			if rec.Code != tt.expectCode {
				t.Fatalf("expected status %d, got %d", tt.expectCode, rec.Code)
			}
			if executed != (tt.expectCode == http.StatusOK) {
				t.Fatalf("unexpected handler execution: %v", executed)
			}
		})
	}
}

func TestContextAccessorsDefaults(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	if UserIDFromContext(c) != 0 || UsernameFromContext(c) != "" || RoleFromContext(c) != "" {
		t.Fatalf("expected zero values without authentication")
	}
}

type personFinderFunc func(ctx context.Context, id int64) (*entity.Person, error)

func (f personFinderFunc) FindByID(ctx context.Context, id int64) (*entity.Person, error) {
	return f(ctx, id)
}

func TestJWTMiddleware_ReloadsPerson(t *testing.T) {
	e := echo.New()
	manager := auth.NewJWTManager("secret", time.Hour, "people-test")
	token, err := manager.GenerateToken(12, "alice", entity.RoleAdmin)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	tests := map[string]struct {
		find         personFinderFunc
		expectCode   int
		expectName   string
		expectRole   string
		expectStored bool
	}{
		"demoted and renamed": {
			find: func(ctx context.Context, id int64) (*entity.Person, error) {
				return &entity.Person{ID: id, Username: "alicia", Role: entity.RoleUser}, nil
			},
			expectCode: http.StatusOK,
			expectName: "alicia",
			expectRole: entity.RoleUser,
		},
		"deleted account": {
			find: func(ctx context.Context, id int64) (*entity.Person, error) {
				return nil, repository.ErrPersonNotFound
			},
			expectCode: http.StatusUnauthorized,
		},
		"store failure": {
			find: func(ctx context.Context, id int64) (*entity.Person, error) {
				return nil, errors.New("db down")
			},
			expectCode:   http.StatusInternalServerError,
			expectStored: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			_ = JWT(manager, tt.find)(func(c echo.Context) error {
				if UserIDFromContext(c) != 12 || UsernameFromContext(c) != tt.expectName || RoleFromContext(c) != tt.expectRole {
					t.Fatalf("expected stored principal, got %q %q", UsernameFromContext(c), RoleFromContext(c))
				}
				return c.NoContent(http.StatusOK)
			})(c)

			if rec.Code != tt.expectCode {
				t.Fatalf("expected status %d, got %d", tt.expectCode, rec.Code)
			}
			if _, stored := c.Get(ContextKeyError).(error); stored != tt.expectStored {
				t.Fatalf("unexpected handler error in context: %v", c.Get(ContextKeyError))
			}
			if tt.expectCode != http.StatusOK {
				var body map[string]string
				if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
					t.Fatalf("decode body: %v", err)
				}
				if body["status"] != "error" || body["message"] == "" {
					t.Fatalf("expected error envelope, got %v", body)
				}
			}
		})
	}
}
