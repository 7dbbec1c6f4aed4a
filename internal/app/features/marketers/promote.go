// internal/app/features/marketers/promote.go
package marketers

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dalemusser/cityfix/internal/app/system/apperr"
	"github.com/dalemusser/cityfix/internal/app/system/httpjson"
	"github.com/dalemusser/cityfix/internal/app/system/timeouts"
)

type promoteResponse struct {
	ReferralLink string `json:"referral_link"`
}

// HandlePromote turns a user into a marketer and issues their referral link.
// Promotion is one-way; promoting an existing marketer is a 409.
func (h *Handler) HandlePromote(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid user id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	link, err := h.Referrals.IssueLink(ctx, id)
	if err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			httpjson.Error(w, http.StatusConflict, "user is already a marketer")
			return
		}
		httpjson.WriteErr(w, h.Log, err)
		return
	}
	httpjson.Respond(w, http.StatusOK, promoteResponse{ReferralLink: link})
}
