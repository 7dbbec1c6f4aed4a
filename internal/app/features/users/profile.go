// internal/app/features/users/profile.go
package users

import (
	"context"
	"net/http"
	"strconv"

	"go.mongodb.org/mongo-driver/bson/primitive"

	userstore "github.com/dalemusser/cityfix/internal/app/store/users"
	"github.com/dalemusser/cityfix/internal/app/system/authz"
	"github.com/dalemusser/cityfix/internal/app/system/geo"
	"github.com/dalemusser/cityfix/internal/app/system/htmlsanitize"
	"github.com/dalemusser/cityfix/internal/app/system/httpjson"
	"github.com/dalemusser/cityfix/internal/app/system/limits"
	"github.com/dalemusser/cityfix/internal/app/system/timeouts"
	"github.com/dalemusser/cityfix/internal/domain/models"
)

// ServeMe returns the signed-in user's full record.
func (h *Handler) ServeMe(w http.ResponseWriter, r *http.Request) {
	uid, ok := callerID(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		httpjson.WriteErr(w, h.Log, err)
		return
	}
	httpjson.Respond(w, http.StatusOK, u)
}

// HandleUpdateProfile overwrites the caller's profile. Free-text fields are
// sanitized on the way in; coordinates, when present, must be a valid
// lat/lng pair.
func (h *Handler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	uid, ok := callerID(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req profileRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.WriteErr(w, h.Log, err)
		return
	}

	upd := userstore.ProfileUpdate{
		Profession:        htmlsanitize.StripTags(req.Profession),
		YearsOfExperience: req.YearsOfExperience,
		About:             htmlsanitize.Sanitize(req.About),
		Location:          htmlsanitize.StripTags(req.Location),
		State:             htmlsanitize.StripTags(req.State),
		LocalGovernment:   htmlsanitize.StripTags(req.LocalGovernment),
		NearestBusStop:    htmlsanitize.StripTags(req.NearestBusStop),
		NINDriverLicense:  htmlsanitize.StripTags(req.NINDriverLicense),
		ProfileImage:      req.ProfileImage,
		Gallery:           req.Gallery,
	}
	if req.YearsOfExperience < 0 {
		httpjson.Error(w, http.StatusBadRequest, "years_of_experience must not be negative")
		return
	}
	if len(req.Gallery) > limits.MaxGalleryImages {
		httpjson.Error(w, http.StatusBadRequest,
			"gallery holds at most "+strconv.Itoa(limits.MaxGalleryImages)+" images")
		return
	}

	switch {
	case req.Latitude != nil && req.Longitude != nil:
		if err := geo.ValidateCoords(*req.Latitude, *req.Longitude); err != nil {
			httpjson.WriteErr(w, h.Log, err)
			return
		}
		upd.LocationCoord = models.NewGeoPoint(*req.Latitude, *req.Longitude, req.Address)
	case req.Latitude != nil || req.Longitude != nil:
		httpjson.Error(w, http.StatusBadRequest, "latitude and longitude must be supplied together")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Users.UpdateProfile(ctx, uid, upd); err != nil {
		httpjson.WriteErr(w, h.Log, err)
		return
	}

	u, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		httpjson.WriteErr(w, h.Log, err)
		return
	}
	httpjson.Respond(w, http.StatusOK, u)
}

// callerID resolves the session user into an ObjectID.
func callerID(r *http.Request) (primitive.ObjectID, bool) {
	_, _, id, ok := authz.UserCtx(r)
	return id, ok
}
