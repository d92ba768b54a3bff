package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"assetledger/config"
	"assetledger/utils"
)

func TestCorsMiddlewareSetsHeaders(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	req := httptest.NewRequest("GET", "/api/assets", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()

	CorsMiddleware(next).ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Fatalf("Allow-Origin = %q", got)
	}
	if rec.Header().Get("Access-Control-Allow-Methods") == "" {
		t.Fatal("Allow-Methods missing")
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("next handler not reached, status %d", rec.Code)
	}
}

func TestCorsMiddlewareShortCircuitsPreflight(t *testing.T) {
	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	req := httptest.NewRequest("OPTIONS", "/api/assets", nil)
	rec := httptest.NewRecorder()

	CorsMiddleware(next).ServeHTTP(rec, req)

	if called {
		t.Fatal("preflight should not reach the handler")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRecoveryMiddlewareConvertsPanicTo500(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	req := httptest.NewRequest("GET", "/api/assets", nil)
	rec := httptest.NewRecorder()

	RecoveryMiddleware(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 after panic, got %d", rec.Code)
	}
}

func TestAuthMiddlewareRejectsMissingHeader(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run without a token")
	})

	req := httptest.NewRequest("GET", "/api/assets", nil)
	rec := httptest.NewRecorder()

	AuthMiddleware(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthMiddlewareRejectsSpoofedUpgradeHeader(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("an Upgrade header must not bypass authentication")
	})

	req := httptest.NewRequest("GET", "/api/assets", nil)
	req.Header.Set("Upgrade", "websocket")
	rec := httptest.NewRecorder()

	AuthMiddleware(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthMiddlewareWebSocketTokenParam(t *testing.T) {
	config.LoadConfig()
	token, err := utils.GenerateJWT("64f1c0ffee0000000000a001", "Budi Santoso", "admin")
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	var gotUserID interface{}
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID = r.Context().Value("userID")
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest("GET", "/api/ws?token="+token, nil)
	req.Header.Set("Upgrade", "websocket")
	rec := httptest.NewRecorder()

	AuthMiddleware(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("valid token should reach the handler, got %d", rec.Code)
	}
	if gotUserID != "64f1c0ffee0000000000a001" {
		t.Fatalf("userID not propagated to context, got %v", gotUserID)
	}
}

func TestAuthMiddlewareWebSocketRejectsMissingToken(t *testing.T) {
	config.LoadConfig()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("upgrade without a token must not reach the handler")
	})

	req := httptest.NewRequest("GET", "/api/ws", nil)
	req.Header.Set("Upgrade", "websocket")
	rec := httptest.NewRecorder()

	AuthMiddleware(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
