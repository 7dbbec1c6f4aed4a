// internal/app/features/providers/match.go
package providers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	userstore "github.com/dalemusser/cityfix/internal/app/store/users"
	"github.com/dalemusser/cityfix/internal/app/system/apperr"
	"github.com/dalemusser/cityfix/internal/app/system/httpjson"
	"github.com/dalemusser/cityfix/internal/app/system/timeouts"
)

type matchResponse struct {
	Items   []userstore.GeoResult `json:"items"`
	HasMore bool                  `json:"has_more"`
}

// ServeMatch finds providers near the caller, closest first.
//
// Query parameters: lat and lng (required), boost (optional bool), plus any
// filter, search, sort, limit, or skip key the users entity allows. Distance
// always ranks first; the requested sort orders equidistant providers.
func (h *Handler) ServeMatch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	lat, err := strconv.ParseFloat(q.Get("lat"), 64)
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "lat is required and must be a number")
		return
	}
	lng, err := strconv.ParseFloat(q.Get("lng"), 64)
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "lng is required and must be a number")
		return
	}
	boost := false
	if v := q.Get("boost"); v != "" {
		boost, err = strconv.ParseBool(v)
		if err != nil {
			httpjson.Error(w, http.StatusBadRequest, "boost must be a boolean")
			return
		}
	}

	// Everything else goes through the normalizer.
	raw := make(map[string]string, len(q))
	for k, vs := range q {
		switch k {
		case "lat", "lng", "boost":
			continue
		}
		if len(vs) > 0 {
			raw[k] = vs[0]
		}
	}
	spec, err := h.Norm.Normalize(raw, "users")
	if err != nil {
		httpjson.WriteErr(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	items, hasMore, err := h.Users.GeoMatch(ctx, userstore.GeoQuery{
		Spec:  spec,
		Lat:   lat,
		Lng:   lng,
		Boost: boost,
	})
	if err != nil {
		if errors.Is(err, apperr.ErrNoMatch) {
			httpjson.Respond(w, http.StatusOK, matchResponse{Items: []userstore.GeoResult{}})
			return
		}
		httpjson.WriteErr(w, h.Log, err)
		return
	}
	httpjson.Respond(w, http.StatusOK, matchResponse{Items: items, HasMore: hasMore})
}
