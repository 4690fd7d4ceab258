package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRateLimiterAllowsBudgetThenRejects(t *testing.T) {
	limiter := NewRateLimiter(RateLimitConfig{Window: time.Minute, Budget: 5})
	handler := limiter.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	}))

	for i := 0; i < 5; i++ {
		request := httptest.NewRequest(http.MethodPost, "/api/v1/tickets", nil)
		request.RemoteAddr = "203.0.113.7:51000"
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, request)
		if recorder.Code != http.StatusAccepted {
			t.Fatalf("request %d: expected status %d, got %d", i+1, http.StatusAccepted, recorder.Code)
		}
	}

	request := httptest.NewRequest(http.MethodPost, "/api/v1/tickets", nil)
	request.RemoteAddr = "203.0.113.7:51000"
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	if recorder.Code != http.StatusTooManyRequests {
		t.Fatalf("expected status %d on the sixth request, got %d", http.StatusTooManyRequests, recorder.Code)
	}
	if recorder.Header().Get("Retry-After") == "" {
		t.Fatalf("expected Retry-After header on rejection")
	}
}

func TestRateLimiterNoMidWindowRefill(t *testing.T) {
	limiter := NewRateLimiter(RateLimitConfig{Window: time.Minute, Budget: 5})
	current := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return current }

	handler := limiter.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	}))

	send := func() *httptest.ResponseRecorder {
		request := httptest.NewRequest(http.MethodPost, "/api/v1/tickets", nil)
		request.RemoteAddr = "203.0.113.7:51000"
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, request)
		return recorder
	}

	for i := 0; i < 5; i++ {
		if code := send().Code; code != http.StatusAccepted {
			t.Fatalf("request %d: expected %d, got %d", i+1, http.StatusAccepted, code)
		}
	}

	// Half a window later the budget must still be spent; a refilling
	// token bucket would admit extra requests here.
	current = current.Add(30 * time.Second)
	recorder := send()
	if recorder.Code != http.StatusTooManyRequests {
		t.Fatalf("expected mid-window rejection, got %d", recorder.Code)
	}
	if got := recorder.Header().Get("Retry-After"); got != "30" {
		t.Fatalf("expected Retry-After 30 at half window, got %q", got)
	}

	// Once the window resets, a fresh budget of exactly 5 applies.
	current = current.Add(31 * time.Second)
	for i := 0; i < 5; i++ {
		if code := send().Code; code != http.StatusAccepted {
			t.Fatalf("post-reset request %d: expected %d, got %d", i+1, http.StatusAccepted, code)
		}
	}
	if code := send().Code; code != http.StatusTooManyRequests {
		t.Fatalf("expected sixth post-reset request rejected, got %d", code)
	}
}

func TestRateLimiterIsolatesClients(t *testing.T) {
	limiter := NewRateLimiter(RateLimitConfig{Window: time.Minute, Budget: 1})
	handler := limiter.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	}))

	for i := 0; i < 3; i++ {
		request := httptest.NewRequest(http.MethodPost, "/api/v1/tickets", nil)
		request.RemoteAddr = fmt.Sprintf("203.0.113.%d:51000", i+1)
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, request)
		if recorder.Code != http.StatusAccepted {
			t.Fatalf("client %d: expected status %d, got %d", i+1, http.StatusAccepted, recorder.Code)
		}
	}
}

func TestRateLimiterHonorsForwardedFor(t *testing.T) {
	limiter := NewRateLimiter(RateLimitConfig{Window: time.Minute, Budget: 1})
	handler := limiter.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	}))

	first := httptest.NewRequest(http.MethodPost, "/api/v1/tickets", nil)
	first.RemoteAddr = "10.0.0.1:40000"
	first.Header.Set("X-Forwarded-For", "198.51.100.9, 10.0.0.1")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, first)
	if recorder.Code != http.StatusAccepted {
		t.Fatalf("expected first request to pass, got %d", recorder.Code)
	}

	second := httptest.NewRequest(http.MethodPost, "/api/v1/tickets", nil)
	second.RemoteAddr = "10.0.0.2:40001"
	second.Header.Set("X-Forwarded-For", "198.51.100.9")
	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, second)
	if recorder.Code != http.StatusTooManyRequests {
		t.Fatalf("expected forwarded client to share one budget, got %d", recorder.Code)
	}
}
