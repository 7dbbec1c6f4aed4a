// internal/app/features/users/login.go
package users

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/dalemusser/cityfix/internal/app/system/apperr"
	"github.com/dalemusser/cityfix/internal/app/system/auth"
	"github.com/dalemusser/cityfix/internal/app/system/authutil"
	"github.com/dalemusser/cityfix/internal/app/system/httpjson"
	"github.com/dalemusser/cityfix/internal/app/system/timeouts"
	"github.com/dalemusser/cityfix/internal/domain/models"
)

// HandleLogin verifies credentials and establishes a session. Unknown email
// and wrong password are indistinguishable to the caller.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.WriteErr(w, h.Log, err)
		return
	}
	if req.Email == "" || req.Password == "" {
		httpjson.Error(w, http.StatusBadRequest, "email and password are required")
		return
	}

	// Per-account throttling on top of the route's per-IP limit, so a
	// distributed guess against one email still locks out.
	if ok, reason := h.Logins.Check(r, req.Email); !ok {
		httpjson.Error(w, http.StatusTooManyRequests, reason)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			httpjson.Error(w, http.StatusUnauthorized, "invalid email or password")
			return
		}
		httpjson.WriteErr(w, h.Log, err)
		return
	}
	if !authutil.CheckPassword(u.Password, req.Password) {
		httpjson.Error(w, http.StatusUnauthorized, "invalid email or password")
		return
	}
	if u.Status == models.StatusDisabled {
		httpjson.Error(w, http.StatusForbidden, "account is disabled")
		return
	}

	if err := auth.SignIn(w, r, sessionUserFor(u)); err != nil {
		h.Log.Error("login session", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}
	h.Logins.ResetEmail(req.Email)
	httpjson.Respond(w, http.StatusOK, u)
}

// HandleLogout clears the session. Always succeeds.
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if err := auth.SignOut(w, r); err != nil {
		h.Log.Warn("logout session", zap.Error(err))
	}
	httpjson.Respond(w, http.StatusOK, map[string]string{"status": "signed out"})
}
