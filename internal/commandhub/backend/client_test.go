package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPerformActionSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/fleet/vehicles/v1", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "maintenance", body["status"])

		_, _ = w.Write([]byte(`{"success":true,"data":{"id":"v1","status":"maintenance"}}`))
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL + "/", Token: "secret"}, nil)
	res, err := c.PerformAction(context.Background(), http.MethodPut, "/api/fleet/vehicles/v1", map[string]string{"status": "maintenance"})
	require.NoError(t, err)

	var v struct{ ID, Status string }
	require.NoError(t, res.Decode(&v))
	assert.Equal(t, "v1", v.ID)
	assert.Equal(t, "maintenance", v.Status)
}

func TestPerformActionNoTokenNoBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		assert.Empty(t, r.Header.Get("Content-Type"))
		_, _ = w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	_, err := NewClient(Config{BaseURL: srv.URL}, nil).PerformAction(context.Background(), http.MethodGet, "/api/system/health", nil)
	assert.NoError(t, err)
}

func TestPerformActionErrors(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantStatus int
		wantMsg    string
		notFound   bool
	}{
		{"404 envelope", http.StatusNotFound, `{"success":false,"error":"User not found"}`, 404, "User not found", true},
		{"500 plain text", http.StatusInternalServerError, "boom", 500, "boom", false},
		{"200 success false", http.StatusOK, `{"success":false,"message":"quota exceeded"}`, 200, "quota exceeded", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewClient(Config{BaseURL: srv.URL}, nil).PerformAction(context.Background(), http.MethodGet, "/api/users/u1", nil)
			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr), "got %v", err)
			assert.Equal(t, tt.wantStatus, apiErr.StatusCode)
			assert.Equal(t, tt.wantMsg, apiErr.Message)
			assert.Equal(t, tt.notFound, IsNotFound(err))
		})
	}
}

func TestPerformActionInvalidJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>"))
	}))
	defer srv.Close()

	_, err := NewClient(Config{BaseURL: srv.URL}, nil).PerformAction(context.Background(), http.MethodGet, "/api/users", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode")
}

func TestPerformActionTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	_, err := NewClient(Config{BaseURL: srv.URL, Timeout: 20 * time.Millisecond}, nil).
		PerformAction(context.Background(), http.MethodGet, "/api/users", nil)
	assert.Error(t, err)
}
