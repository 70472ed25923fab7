package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dpearce/inkwell/internal/token"
)

func authProbe(t *testing.T) (http.Handler, *int) {
	t.Helper()
	var gotID int
	tokens := token.NewService([]byte("test-secret"), time.Hour)
	h := RequireAuth(tokens)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := GetUserID(r.Context())
		if !ok {
			t.Error("user id missing from context")
		}
		gotID = id
		w.WriteHeader(http.StatusOK)
	}))
	return h, &gotID
}

func TestRequireAuth_ValidToken(t *testing.T) {
	tokens := token.NewService([]byte("test-secret"), time.Hour)
	tok, err := tokens.Issue(42)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	h, gotID := authProbe(t)
	req := httptest.NewRequest("GET", "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("status: got %d, want 200", rr.Code)
	}
	if *gotID != 42 {
		t.Errorf("user id: got %d, want 42", *gotID)
	}
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	h, _ := authProbe(t)
	req := httptest.NewRequest("GET", "/auth/me", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want 401", rr.Code)
	}
}

func TestRequireAuth_NotBearer(t *testing.T) {
	h, _ := authProbe(t)
	req := httptest.NewRequest("GET", "/auth/me", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want 401", rr.Code)
	}
}

func TestRequireAuth_ExpiredToken(t *testing.T) {
	expired := token.NewService([]byte("test-secret"), -time.Minute)
	tok, err := expired.Issue(42)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	h, _ := authProbe(t)
	req := httptest.NewRequest("GET", "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want 401", rr.Code)
	}
}

func TestRequireAuth_WrongSecret(t *testing.T) {
	other := token.NewService([]byte("other-secret"), time.Hour)
	tok, err := other.Issue(42)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	h, _ := authProbe(t)
	req := httptest.NewRequest("GET", "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want 401", rr.Code)
	}
}
