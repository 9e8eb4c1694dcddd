package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestTimeoutSetsDeadline(t *testing.T) {
	var remaining time.Duration
	h := Timeout(time.Minute)(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		dl, ok := r.Context().Deadline()
		if !ok {
			t.Fatal("expected a deadline")
		}
		remaining = time.Until(dl)
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	if remaining <= 0 || remaining > time.Minute {
		t.Errorf("unexpected remaining time %s", remaining)
	}
}

func TestTimeoutKeepsExistingDeadline(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	want, _ := ctx.Deadline()

	h := Timeout(time.Hour)(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		got, _ := r.Context().Deadline()
		if !got.Equal(want) {
			t.Errorf("deadline changed: got %s want %s", got, want)
		}
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx))
}

func TestTimeoutDefault(t *testing.T) {
	var remaining time.Duration
	h := Timeout(0)(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		dl, _ := r.Context().Deadline()
		remaining = time.Until(dl)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	if remaining < DefaultRequestTimeout-time.Second || remaining > DefaultRequestTimeout {
		t.Errorf("expected default timeout, got %s", remaining)
	}
}
