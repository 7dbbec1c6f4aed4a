// internal/app/features/conversations/messages.go
package conversations

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/dalemusser/cityfix/internal/app/system/htmlsanitize"
	"github.com/dalemusser/cityfix/internal/app/system/httpjson"
	"github.com/dalemusser/cityfix/internal/app/system/limits"
	"github.com/dalemusser/cityfix/internal/app/system/timeouts"
	"github.com/dalemusser/cityfix/internal/domain/models"
)

// ServeMessages returns a conversation's messages oldest first. Only a
// participant can read them.
func (h *Handler) ServeMessages(w http.ResponseWriter, r *http.Request) {
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

	// Messages reuse the conversations paging bounds but not its sort.
	spec, err := h.Norm.Normalize(rawQuery(r), "conversations")
	if err != nil {
		httpjson.WriteErr(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if _, err := h.Convs.Get(ctx, convID, uid); err != nil {
		httpjson.WriteErr(w, h.Log, err)
		return
	}

	items, hasMore, err := h.Messages.ListForConversation(ctx, convID, spec.Skip, spec.Limit)
	if err != nil {
		httpjson.WriteErr(w, h.Log, err)
		return
	}
	if items == nil {
		items = []models.Message{}
	}
	httpjson.Respond(w, http.StatusOK, messagesResponse{Items: items, HasMore: hasMore})
}

// HandleSend appends a message and bumps the conversation, so it surfaces
// as unread at the top of the other side's inbox.
func (h *Handler) HandleSend(w http.ResponseWriter, r *http.Request) {
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

	var req sendRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.WriteErr(w, h.Log, err)
		return
	}
	body := strings.TrimSpace(htmlsanitize.StripTags(req.Body))
	if body == "" {
		httpjson.Error(w, http.StatusBadRequest, "body is required")
		return
	}
	if len(body) > limits.MaxMessageChars {
		httpjson.Error(w, http.StatusBadRequest, "body exceeds "+strconv.Itoa(limits.MaxMessageChars)+" characters")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	conv, err := h.Convs.Get(ctx, convID, uid)
	if err != nil {
		httpjson.WriteErr(w, h.Log, err)
		return
	}
	recipient := conv.EntityOne
	if recipient == uid {
		recipient = conv.EntityTwo
	}

	msg, err := h.Messages.Append(ctx, models.Message{
		ConversationID: convID,
		SenderID:       uid,
		RecipientID:    recipient,
		Body:           body,
	})
	if err != nil {
		httpjson.WriteErr(w, h.Log, err)
		return
	}

	if err := h.Convs.Touch(ctx, convID, time.Now()); err != nil {
		// The message is stored; a failed bump only delays inbox ordering.
		h.Log.Warn("touch conversation", zap.Error(err), zap.String("conversation", convID.Hex()))
	}
	httpjson.Respond(w, http.StatusCreated, msg)
}
