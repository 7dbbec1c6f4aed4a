// internal/app/features/users/list.go
package users

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dalemusser/cityfix/internal/app/system/apperr"
	"github.com/dalemusser/cityfix/internal/app/system/httpjson"
	"github.com/dalemusser/cityfix/internal/app/system/timeouts"
	"github.com/dalemusser/cityfix/internal/domain/models"
)

// ServeList runs the user directory query. Filters, free-text search,
// sorting, and paging all come from the query string; anything outside the
// allow-list is a 400.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	spec, err := h.Norm.Normalize(rawQuery(r), "users")
	if err != nil {
		httpjson.WriteErr(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	page, err := h.Users.List(ctx, spec)
	if err != nil {
		if errors.Is(err, apperr.ErrNoMatch) {
			httpjson.Respond(w, http.StatusOK, listResponse{Items: []models.User{}})
			return
		}
		httpjson.WriteErr(w, h.Log, err)
		return
	}
	httpjson.Respond(w, http.StatusOK, listResponse{Items: page.Items, HasMore: page.HasMore})
}

// ServeGet returns one user's public record.
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid user id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.GetByID(ctx, id)
	if err != nil {
		httpjson.WriteErr(w, h.Log, err)
		return
	}
	httpjson.Respond(w, http.StatusOK, u)
}

// rawQuery flattens the query string to first-value-wins, which is what the
// normalizer expects.
func rawQuery(r *http.Request) map[string]string {
	raw := make(map[string]string, len(r.URL.Query()))
	for k, vs := range r.URL.Query() {
		if len(vs) > 0 {
			raw[k] = vs[0]
		}
	}
	return raw
}
