// internal/app/features/conversations/list.go
package conversations

import (
	"context"
	"net/http"

	"github.com/dalemusser/cityfix/internal/app/system/httpjson"
	"github.com/dalemusser/cityfix/internal/app/system/timeouts"
	"github.com/dalemusser/cityfix/internal/domain/models"
)

// ServeList returns the caller's inbox, most recently active first.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	uid, ok := callerID(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	spec, err := h.Norm.Normalize(rawQuery(r), "conversations")
	if err != nil {
		httpjson.WriteErr(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	page, err := h.Convs.ListForParticipant(ctx, uid, spec)
	if err != nil {
		httpjson.WriteErr(w, h.Log, err)
		return
	}
	if page.Items == nil {
		page.Items = []models.Conversation{}
	}
	httpjson.Respond(w, http.StatusOK, listResponse{Items: page.Items, HasMore: page.HasMore})
}
