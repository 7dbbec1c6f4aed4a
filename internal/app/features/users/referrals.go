// internal/app/features/users/referrals.go
package users

import (
	"context"
	"net/http"

	"github.com/dalemusser/cityfix/internal/app/system/httpjson"
	"github.com/dalemusser/cityfix/internal/app/system/timeouts"
	"github.com/dalemusser/cityfix/internal/domain/models"
)

// ServeMyReferrals returns the caller's referral link, counter, and the
// accounts credited to them. Only marketers have anything to show.
func (h *Handler) ServeMyReferrals(w http.ResponseWriter, r *http.Request) {
	uid, ok := callerID(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	u, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		httpjson.WriteErr(w, h.Log, err)
		return
	}
	if u.AccountType != models.AccountTypeMarketer {
		httpjson.Error(w, http.StatusForbidden, "only marketers have referrals")
		return
	}

	referred, err := h.Referrals.ReferredUsers(ctx, uid)
	if err != nil {
		httpjson.WriteErr(w, h.Log, err)
		return
	}

	resp := referralsResponse{
		Referrals: u.Referrals,
		Users:     referred,
	}
	if u.ReferralLink != nil {
		resp.ReferralLink = *u.ReferralLink
	}
	if resp.Users == nil {
		resp.Users = []models.User{}
	}
	httpjson.Respond(w, http.StatusOK, resp)
}
