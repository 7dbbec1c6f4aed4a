package authz_test

import (
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/cityfix/internal/app/system/auth"
	"github.com/dalemusser/cityfix/internal/app/system/authz"
	"github.com/dalemusser/cityfix/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestUserCtx(t *testing.T) {
	id := primitive.NewObjectID()
	req := auth.WithUser(httptest.NewRequest("GET", "/", nil), &auth.SessionUser{
		ID:   id.Hex(),
		Name: "Ada Obi",
		Role: models.AccountTypeMarketer,
	})

	role, name, uid, ok := authz.UserCtx(req)
	if !ok {
		t.Fatal("expected ok=true")
	}
	if role != models.AccountTypeMarketer || name != "Ada Obi" || uid != id {
		t.Errorf("UserCtx: got (%q, %q, %v)", role, name, uid)
	}
}

func TestUserCtx_NoUser(t *testing.T) {
	if _, _, _, ok := authz.UserCtx(httptest.NewRequest("GET", "/", nil)); ok {
		t.Error("bare request should yield ok=false")
	}
}

func TestUserCtx_MalformedID(t *testing.T) {
	req := auth.WithUser(httptest.NewRequest("GET", "/", nil), &auth.SessionUser{
		ID:   "not-a-hex-id",
		Role: models.AccountTypeUser,
	})
	if _, _, _, ok := authz.UserCtx(req); ok {
		t.Error("malformed ID should yield ok=false")
	}
}
