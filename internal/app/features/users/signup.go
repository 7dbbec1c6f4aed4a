// internal/app/features/users/signup.go
package users

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	referralstore "github.com/dalemusser/cityfix/internal/app/store/referrals"
	userstore "github.com/dalemusser/cityfix/internal/app/store/users"
	"github.com/dalemusser/cityfix/internal/app/system/auth"
	"github.com/dalemusser/cityfix/internal/app/system/authutil"
	"github.com/dalemusser/cityfix/internal/app/system/httpjson"
	"github.com/dalemusser/cityfix/internal/app/system/mailer"
	"github.com/dalemusser/cityfix/internal/app/system/timeouts"
	"github.com/dalemusser/cityfix/internal/domain/models"
)

const minPasswordLen = 8

// HandleSignup creates an account. A referral link, when supplied, is
// credited best-effort: a bad or dangling link is logged and the signup
// stands regardless.
func (h *Handler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.WriteErr(w, h.Log, err)
		return
	}

	if msg := validateSignup(req); msg != "" {
		httpjson.Error(w, http.StatusBadRequest, msg)
		return
	}

	hash, err := authutil.HashPassword(req.Password)
	if err != nil {
		httpjson.WriteErr(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	u, err := h.Users.Create(ctx, models.User{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Password:    hash,
		Phone:       req.Phone,
		AccountType: req.AccountType,
	})
	if err != nil {
		if err == userstore.ErrDuplicateEmail {
			httpjson.Error(w, http.StatusConflict, err.Error())
			return
		}
		httpjson.WriteErr(w, h.Log, err)
		return
	}

	if req.ReferralLink != "" {
		h.creditReferral(ctx, req.ReferralLink, u.ID)
	}

	// Fire-and-forget welcome email.
	go h.sendWelcome(u)

	if err := auth.SignIn(w, r, sessionUserFor(&u)); err != nil {
		h.Log.Warn("signup session", zap.Error(err))
	}
	httpjson.Respond(w, http.StatusCreated, u)
}

func validateSignup(req signupRequest) string {
	switch {
	case strings.TrimSpace(req.FirstName) == "":
		return "first_name is required"
	case strings.TrimSpace(req.LastName) == "":
		return "last_name is required"
	case strings.TrimSpace(req.Email) == "":
		return "email is required"
	case !strings.Contains(req.Email, "@"):
		return "email is not valid"
	case len(req.Password) < minPasswordLen:
		return "password must be at least 8 characters"
	}
	// Self-service signup can only create the two public roles.
	switch req.AccountType {
	case "", models.AccountTypeUser, models.AccountTypeCityBuilder:
		return ""
	}
	return `account_type must be "User" or "CityBuilder"`
}

// creditReferral resolves the link and records the credit. Every failure
// path logs and returns; the new account is never rolled back over a
// referral problem.
func (h *Handler) creditReferral(ctx context.Context, link string, newUserID primitive.ObjectID) {
	referrerID, ok := referralstore.ParseLink(link)
	if !ok {
		h.Log.Warn("unparseable referral link on signup", zap.String("link", link))
		return
	}
	if err := h.Referrals.Record(ctx, referrerID, newUserID, uuid.NewString()); err != nil {
		h.Log.Warn("record referral", zap.Error(err), zap.String("referrer", referrerID.Hex()))
	}
}

func (h *Handler) sendWelcome(u models.User) {
	email := mailer.BuildWelcomeEmail(mailer.WelcomeEmailData{
		SiteName:  h.Cfg.SiteName,
		FirstName: u.FirstName,
		LoginLink: h.Cfg.BaseURL + "/login",
	})
	email.To = u.Email
	if err := h.Mail.Send(email); err != nil {
		h.Log.Warn("welcome email", zap.Error(err), zap.String("to", u.Email))
	}
}

func sessionUserFor(u *models.User) auth.SessionUser {
	return auth.SessionUser{
		ID:    u.ID.Hex(),
		Name:  u.FirstName + " " + u.LastName,
		Email: u.Email,
		Role:  u.AccountType,
	}
}
