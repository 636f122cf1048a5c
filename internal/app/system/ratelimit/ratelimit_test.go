package ratelimit

import (
	"net/http/httptest"
	"testing"
	"time"
)

func TestLimiter_Allow(t *testing.T) {
	l := New(3, time.Minute)

	for i := 0; i < 3; i++ {
		if !l.Allow("key") {
			t.Fatalf("attempt %d should be allowed", i+1)
		}
	}
	if l.Allow("key") {
		t.Error("fourth attempt should be blocked")
	}
	// Other keys are unaffected.
	if !l.Allow("other") {
		t.Error("separate key should be allowed")
	}

	l.Reset("key")
	if !l.Allow("key") {
		t.Error("reset should reopen the window")
	}
}

func TestLoginLimiter_NilReceiver(t *testing.T) {
	var ll *LoginLimiter
	req := httptest.NewRequest("POST", "/auth/login", nil)
	for i := 0; i < 100; i++ {
		if !ll.Check(req, "a@b.edu") {
			t.Fatal("nil limiter should allow everything")
		}
	}
}

func TestLoginLimiter_PerEmail(t *testing.T) {
	ll := NewLoginLimiter()
	req := httptest.NewRequest("POST", "/auth/login", nil)

	for i := 0; i < 5; i++ {
		if !ll.Check(req, "Victim@Test.edu") {
			t.Fatalf("attempt %d should be allowed", i+1)
		}
	}
	// Email matching folds case.
	if ll.Check(req, "victim@test.edu") {
		t.Error("sixth attempt for the same email should be blocked")
	}

	ll.ResetEmail("victim@test.edu")
	if !ll.Check(req, "victim@test.edu") {
		t.Error("reset should reopen the email window")
	}
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "10.0.0.1:5555"
	if got := ClientIP(req); got != "10.0.0.1" {
		t.Errorf("remote addr: got %q", got)
	}

	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	if got := ClientIP(req); got != "203.0.113.9" {
		t.Errorf("x-forwarded-for: got %q", got)
	}
}
