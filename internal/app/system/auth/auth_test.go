package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/cityfix/internal/app/system/auth"
	"github.com/dalemusser/cityfix/internal/domain/models"
)

func okHandler() (http.Handler, *bool) {
	called := false
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}), &called
}

func TestRequireSignedIn_NoUser(t *testing.T) {
	next, called := okHandler()
	handler := auth.RequireSignedIn(next)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/me", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want 401", rec.Code)
	}
	if *called {
		t.Error("next handler must not run without a user")
	}
}

func TestRequireSignedIn_WithUser(t *testing.T) {
	next, called := okHandler()
	handler := auth.RequireSignedIn(next)

	req := auth.WithUser(httptest.NewRequest("GET", "/me", nil), &auth.SessionUser{
		ID:   "64f000000000000000000001",
		Role: models.AccountTypeUser,
	})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status: got %d, want 200", rec.Code)
	}
	if !*called {
		t.Error("next handler should have run")
	}
}

func TestRequireRole(t *testing.T) {
	cases := []struct {
		name string
		role string
		want int
	}{
		{"admin allowed", models.AccountTypeAdmin, http.StatusOK},
		{"case insensitive", "admin", http.StatusOK},
		{"wrong role", models.AccountTypeUser, http.StatusForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			next, _ := okHandler()
			handler := auth.RequireRole(models.AccountTypeAdmin)(next)

			req := auth.WithUser(httptest.NewRequest("POST", "/promote", nil), &auth.SessionUser{
				ID:   "64f000000000000000000001",
				Role: tc.role,
			})

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			if rec.Code != tc.want {
				t.Errorf("status: got %d, want %d", rec.Code, tc.want)
			}
		})
	}
}

func TestRequireRole_NoUser(t *testing.T) {
	next, _ := okHandler()
	handler := auth.RequireRole(models.AccountTypeAdmin)(next)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("POST", "/promote", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want 401", rec.Code)
	}
}

func TestCurrentUser_RoundTrip(t *testing.T) {
	want := &auth.SessionUser{ID: "abc", Name: "Ada", Email: "ada@example.com", Role: models.AccountTypeUser}
	req := auth.WithUser(httptest.NewRequest("GET", "/", nil), want)

	got, ok := auth.CurrentUser(req)
	if !ok {
		t.Fatal("expected user in context")
	}
	if got.ID != want.ID || got.Email != want.Email {
		t.Errorf("CurrentUser: got %+v, want %+v", got, want)
	}

	if _, ok := auth.CurrentUser(httptest.NewRequest("GET", "/", nil)); ok {
		t.Error("bare request should have no user")
	}
}
