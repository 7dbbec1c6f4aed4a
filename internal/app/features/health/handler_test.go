package health_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/dalemusser/cityfix/internal/app/features/health"
	"github.com/dalemusser/cityfix/internal/testutil"
)

func TestServe_Healthy(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := health.NewHandler(db.Client(), zap.NewNop())

	rec := httptest.NewRecorder()
	handler.Serve(rec, httptest.NewRequest("GET", "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}

	var resp struct {
		Status   string `json:"status"`
		Database string `json:"database"`
	}
	testutil.DecodeJSON(t, rec, &resp)
	if resp.Status != "ok" || resp.Database != "connected" {
		t.Errorf("body: got %+v", resp)
	}
}
