// internal/app/features/conversations/open.go
package conversations

import (
	"context"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dalemusser/cityfix/internal/app/system/httpjson"
	"github.com/dalemusser/cityfix/internal/app/system/timeouts"
)

// HandleOpen finds or creates the conversation between the caller and
// another user. Opening an existing conversation returns the same document,
// never a second one.
func (h *Handler) HandleOpen(w http.ResponseWriter, r *http.Request) {
	uid, ok := callerID(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req openRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.WriteErr(w, h.Log, err)
		return
	}
	other, err := primitive.ObjectIDFromHex(req.WithUserID)
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "with_user_id is not a valid id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	conv, err := h.Convs.Upsert(ctx, uid, other)
	if err != nil {
		httpjson.WriteErr(w, h.Log, err)
		return
	}
	httpjson.Respond(w, http.StatusOK, conv)
}
