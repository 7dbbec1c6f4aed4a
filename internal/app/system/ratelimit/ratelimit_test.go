package ratelimit_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dalemusser/cityfix/internal/app/system/ratelimit"
)

func TestLimiter_Allow(t *testing.T) {
	l := ratelimit.New(3, time.Minute)

	for i := 0; i < 3; i++ {
		if !l.Allow("1.2.3.4") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if l.Allow("1.2.3.4") {
		t.Error("request over the limit should be denied")
	}
	// A different key has its own window.
	if !l.Allow("5.6.7.8") {
		t.Error("separate key should not share the window")
	}
}

func TestLimiter_Reset(t *testing.T) {
	l := ratelimit.New(1, time.Minute)
	l.Allow("key")
	if l.Allow("key") {
		t.Fatal("second request should be denied")
	}
	l.Reset("key")
	if !l.Allow("key") {
		t.Error("request after Reset should be allowed")
	}
}

func TestLimiter_Remaining(t *testing.T) {
	l := ratelimit.New(5, time.Minute)
	if got := l.Remaining("fresh"); got != 5 {
		t.Errorf("Remaining: got %d, want 5", got)
	}
	l.Allow("fresh")
	l.Allow("fresh")
	if got := l.Remaining("fresh"); got != 3 {
		t.Errorf("Remaining: got %d, want 3", got)
	}
}

func TestMiddleware_Returns429(t *testing.T) {
	l := ratelimit.New(1, time.Minute)
	handler := l.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("POST", "/login", nil)
	req.RemoteAddr = "9.9.9.9:1234"

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("first request: got %d, want 200", rec.Code)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("second request: got %d, want 429", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Errorf("Content-Type: got %q", ct)
	}
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "10.0.0.1:5555"
	if ip := ratelimit.ClientIP(req); ip != "10.0.0.1" {
		t.Errorf("RemoteAddr: got %q", ip)
	}

	req.Header.Set("X-Real-IP", "20.0.0.2")
	if ip := ratelimit.ClientIP(req); ip != "20.0.0.2" {
		t.Errorf("X-Real-IP: got %q", ip)
	}

	req.Header.Set("X-Forwarded-For", "30.0.0.3, 31.0.0.4")
	if ip := ratelimit.ClientIP(req); ip != "30.0.0.3" {
		t.Errorf("X-Forwarded-For: got %q", ip)
	}
}

func TestLoginLimiter_EmailLimit(t *testing.T) {
	ll := ratelimit.NewLoginLimiter()

	req := httptest.NewRequest("POST", "/login", nil)
	req.RemoteAddr = "10.0.0.9:1"

	for i := 0; i < 5; i++ {
		allowed, _ := ll.Check(req, "target@example.com")
		if !allowed {
			t.Fatalf("attempt %d should be allowed", i+1)
		}
	}
	allowed, reason := ll.Check(req, "target@example.com")
	if allowed {
		t.Fatal("sixth attempt for the same email should be blocked")
	}
	if reason == "" {
		t.Error("blocked attempt should carry a reason")
	}

	ll.ResetEmail("target@example.com")
	if allowed, _ := ll.Check(req, "target@example.com"); !allowed {
		t.Error("attempt after ResetEmail should be allowed")
	}
}
