// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/bokesys/models"
	"github.com/danielhkuo/bokesys/testutil"
)

func TestHealthEndpoint(t *testing.T) {
	db := testutil.SetupTestDB(t)

	cfg := testutil.GetTestConfig()
	mux := NewRouter(db, cfg)

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	if w.Body.String() != "OK" {
		t.Errorf("Expected body 'OK', got '%s'", w.Body.String())
	}
}

func TestHealthEndpointDatabaseDown(t *testing.T) {
	db := testutil.SetupTestDB(t)

	mux := NewRouter(db, testutil.GetTestConfig())
	db.Close()

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected status 503, got %d", w.Code)
	}
}

func TestRootEndpoint(t *testing.T) {
	db := testutil.SetupTestDB(t)

	cfg := testutil.GetTestConfig()
	mux := NewRouter(db, cfg)

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	expected := "bokesys API v1"
	if w.Body.String() != expected {
		t.Errorf("Expected body '%s', got '%s'", expected, w.Body.String())
	}
}

func TestUnknownPath(t *testing.T) {
	db := testutil.SetupTestDB(t)
	mux := NewRouter(db, testutil.GetTestConfig())

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest("GET", "/nope", nil))

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
}

func TestRouteExistence(t *testing.T) {
	db := testutil.SetupTestDB(t)

	cfg := testutil.GetTestConfig()
	mux := NewRouter(db, cfg)

	// Routes may answer 404 for missing data; only 405 means the
	// method/path pair was never registered.
	testCases := []struct {
		method string
		path   string
		admin  bool
	}{
		{"GET", "/health", false},
		{"GET", "/", false},

		{"GET", "/topics", false},
		{"GET", "/topics/test-id", false},
		{"POST", "/topics/test-id/posts", false},
		{"POST", "/topics/test-id/posts/post-id/votes", false},
		{"POST", "/topics/test-id/posts/post-id/comments", false},

		{"GET", "/ranking/players", false},
		{"GET", "/ranking/posts", false},

		{"GET", "/admin/topics", true},
		{"POST", "/admin/topics", true},
		{"GET", "/admin/topics/test-id", true},
		{"PUT", "/admin/topics/test-id", true},
		{"DELETE", "/admin/topics/test-id", true},
		{"GET", "/admin/topics/test-id/votes", true},
		{"GET", "/admin/topics/test-id/comments", true},
		{"DELETE", "/admin/posts/post-id", true},
		{"DELETE", "/admin/votes/vote-id", true},
		{"DELETE", "/admin/comments/comment-id", true},
		{"GET", "/admin/blocked", true},
		{"POST", "/admin/blocked", true},
		{"DELETE", "/admin/blocked/203.0.113.9", true},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			var headers map[string]string
			if tc.admin {
				headers = testutil.AdminHeaders()
			}
			req := testutil.MakeRequest(tc.method, tc.path, nil, headers)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code == http.StatusMethodNotAllowed {
				t.Errorf("Route %s %s not registered", tc.method, tc.path)
			}
			if w.Code == http.StatusUnauthorized {
				t.Errorf("Route %s %s rejected the admin key", tc.method, tc.path)
			}
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	db := testutil.SetupTestDB(t)
	mux := NewRouter(db, testutil.GetTestConfig())

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest("DELETE", "/topics/test-id/posts", nil))

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected status 405, got %d", w.Code)
	}
}

func TestAdminRoutesRequireKey(t *testing.T) {
	db := testutil.SetupTestDB(t)
	mux := NewRouter(db, testutil.GetTestConfig())

	tests := []struct {
		name    string
		headers map[string]string
	}{
		{"missing key", nil},
		{"wrong key", map[string]string{"X-Admin-Key": "wrong"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("GET", "/admin/topics", nil, tt.headers)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			testutil.AssertStatus(t, w, http.StatusUnauthorized)

			var resp models.ErrorResponse
			testutil.AssertJSON(t, w, &resp)
			if resp.Code != "unauthorized" {
				t.Errorf("Expected code 'unauthorized', got %q", resp.Code)
			}
		})
	}
}

func TestRequestIDHeader(t *testing.T) {
	db := testutil.SetupTestDB(t)
	mux := NewRouter(db, testutil.GetTestConfig())

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest("GET", "/topics", nil))

	testutil.AssertStatus(t, w, http.StatusOK)
	if w.Header().Get("X-Request-ID") == "" {
		t.Error("Expected X-Request-ID on logged routes")
	}
}
