// internal/app/features/users/password.go
package users

import (
	"context"
	"net/http"

	"github.com/dalemusser/cityfix/internal/app/system/authutil"
	"github.com/dalemusser/cityfix/internal/app/system/httpjson"
	"github.com/dalemusser/cityfix/internal/app/system/timeouts"
)

// HandleChangePassword verifies the current password and swaps in the new
// hash in one atomic write.
func (h *Handler) HandleChangePassword(w http.ResponseWriter, r *http.Request) {
	uid, ok := callerID(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req changePasswordRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.WriteErr(w, h.Log, err)
		return
	}
	if len(req.NewPassword) < minPasswordLen {
		httpjson.Error(w, http.StatusBadRequest, "new password must be at least 8 characters")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		httpjson.WriteErr(w, h.Log, err)
		return
	}
	if !authutil.CheckPassword(u.Password, req.CurrentPassword) {
		httpjson.Error(w, http.StatusForbidden, "current password is incorrect")
		return
	}

	hash, err := authutil.HashPassword(req.NewPassword)
	if err != nil {
		httpjson.WriteErr(w, h.Log, err)
		return
	}
	if err := h.Users.ChangePassword(ctx, uid, hash); err != nil {
		httpjson.WriteErr(w, h.Log, err)
		return
	}
	httpjson.Respond(w, http.StatusOK, map[string]string{"status": "password changed"})
}
