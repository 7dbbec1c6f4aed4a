package httpjson_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dalemusser/cityfix/internal/app/system/apperr"
	"github.com/dalemusser/cityfix/internal/app/system/httpjson"
	"go.uber.org/zap"
)

func TestRespond(t *testing.T) {
	rec := httptest.NewRecorder()
	httpjson.Respond(rec, http.StatusCreated, map[string]string{"id": "123"})

	if rec.Code != http.StatusCreated {
		t.Errorf("status: got %d, want 201", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Errorf("Content-Type: got %q", ct)
	}

	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["id"] != "123" {
		t.Errorf("body: got %v", body)
	}
}

func TestDecode_UnknownField(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"a","bogus":1}`))
	var dst struct {
		Name string `json:"name"`
	}
	err := httpjson.Decode(req, &dst)
	if !apperr.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDecode_OK(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"a"}`))
	var dst struct {
		Name string `json:"name"`
	}
	if err := httpjson.Decode(req, &dst); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if dst.Name != "a" {
		t.Errorf("Name: got %q", dst.Name)
	}
}

func TestWriteErr_Mapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"validation", apperr.Validation("bad input"), http.StatusBadRequest},
		{"not found", apperr.ErrNotFound, http.StatusNotFound},
		{"conflict", apperr.ErrConflict, http.StatusConflict},
		{"timeout", apperr.ErrStoreTimeout, http.StatusServiceUnavailable},
		{"unavailable", apperr.ErrStoreUnavailable, http.StatusServiceUnavailable},
	}

	log := zap.NewNop()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			httpjson.WriteErr(rec, log, tc.err)
			if rec.Code != tc.want {
				t.Errorf("status: got %d, want %d", rec.Code, tc.want)
			}
		})
	}
}

func TestWriteErr_UnknownHidesInternals(t *testing.T) {
	rec := httptest.NewRecorder()
	httpjson.WriteErr(rec, zap.NewNop(), errors.New("secret driver detail"))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status: got %d, want 500", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "secret") {
		t.Error("internal error detail leaked to client")
	}
}
