package marketers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/dalemusser/cityfix/internal/app/features/marketers"
	"github.com/dalemusser/cityfix/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const testBaseURL = "https://cityfix.example"

func newTestHandler(t *testing.T) (*marketers.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	handler := marketers.NewHandler(db, testBaseURL, zap.NewNop())
	return handler, testutil.NewFixtures(t, db)
}

func TestHandlePromote(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := fixtures.CreateUser(ctx, "Ada", "ada@example.com")

	req := testutil.WithUser(
		httptest.NewRequest("POST", "/marketers/"+u.ID.Hex()+"/promote", nil),
		testutil.AdminUser())
	req = testutil.WithChiURLParam(req, "id", u.ID.Hex())

	rec := httptest.NewRecorder()
	handler.HandlePromote(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d (body %s)", rec.Code, rec.Body.String())
	}

	var resp struct {
		ReferralLink string `json:"referral_link"`
	}
	testutil.DecodeJSON(t, rec, &resp)
	if resp.ReferralLink == "" {
		t.Fatal("expected a referral link")
	}

	// Promoting again is a conflict, and the link stays stable.
	rec = httptest.NewRecorder()
	handler.HandlePromote(rec, req)
	if rec.Code != http.StatusConflict {
		t.Errorf("second promote: got %d, want 409", rec.Code)
	}
}

func TestHandlePromote_UnknownUser(t *testing.T) {
	handler, _ := newTestHandler(t)

	id := primitive.NewObjectID().Hex()
	req := testutil.WithUser(
		httptest.NewRequest("POST", "/marketers/"+id+"/promote", nil),
		testutil.AdminUser())
	req = testutil.WithChiURLParam(req, "id", id)

	rec := httptest.NewRecorder()
	handler.HandlePromote(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want 404", rec.Code)
	}
}

func TestHandlePromote_BadID(t *testing.T) {
	handler, _ := newTestHandler(t)

	req := testutil.WithUser(
		httptest.NewRequest("POST", "/marketers/nope/promote", nil),
		testutil.AdminUser())
	req = testutil.WithChiURLParam(req, "id", "nope")

	rec := httptest.NewRecorder()
	handler.HandlePromote(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", rec.Code)
	}
}

// Routes wires RequireRole(Admin) ahead of the handler; a non-admin caller
// is rejected before HandlePromote runs.
func TestRoutes_NonAdminForbidden(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := fixtures.CreateUser(ctx, "Ada", "ada@example.com")
	router := marketers.Routes(handler)

	req := testutil.WithUser(
		httptest.NewRequest("POST", "/"+u.ID.Hex()+"/promote", nil),
		testutil.RegularUser())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("status: got %d, want 403", rec.Code)
	}

	// No session at all is a 401.
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("POST", "/"+u.ID.Hex()+"/promote", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want 401", rec.Code)
	}
}
