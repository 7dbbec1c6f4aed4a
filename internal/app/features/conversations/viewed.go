// internal/app/features/conversations/viewed.go
package conversations

import (
	"context"
	"net/http"

	"github.com/dalemusser/cityfix/internal/app/system/httpjson"
	"github.com/dalemusser/cityfix/internal/app/system/timeouts"
)

// HandleMarkViewed flips the conversation to viewed on behalf of the caller.
func (h *Handler) HandleMarkViewed(w http.ResponseWriter, r *http.Request) {
	uid, ok := callerID(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	convID, ok := pathID(r)
	if !ok {
		httpjson.Error(w, http.StatusBadRequest, "invalid conversation id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Convs.MarkViewed(ctx, convID, uid); err != nil {
		httpjson.WriteErr(w, h.Log, err)
		return
	}
	httpjson.Respond(w, http.StatusOK, map[string]string{"status": "viewed"})
}
