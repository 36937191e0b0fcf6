package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestMain(m *testing.M) {
	if err := InitJWTKey("test-secret"); err != nil {
		panic(err)
	}
	m.Run()
}

func TestAccessTokenRoundTrip(t *testing.T) {
	token, err := GenerateAccessToken(7, "planner@example.com")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.AnalystID != 7 || claims.Email != "planner@example.com" {
		t.Fatalf("claims mismatch: %+v", claims)
	}
	if claims.TokenType != "ACCESS" {
		t.Fatalf("token type = %q, want ACCESS", claims.TokenType)
	}
}

func TestValidateToken_Garbage(t *testing.T) {
	if _, err := ValidateToken("not.a.token"); err == nil {
		t.Fatal("expected error for garbage token")
	}
}

func protectedProbe() (http.Handler, *bool) {
	called := false
	h := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		if _, ok := r.Context().Value(AnalystKey).(int); !ok {
			http.Error(w, "analyst id missing", http.StatusInternalServerError)
		}
	}))
	return h, &called
}

func TestMiddleware_MissingHeader(t *testing.T) {
	h, called := protectedProbe()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/api/skus", nil))

	if rec.Code != http.StatusUnauthorized || *called {
		t.Fatalf("expected 401 without calling handler, got %d called=%v", rec.Code, *called)
	}
}

func TestMiddleware_RefreshTokenRejected(t *testing.T) {
	token, err := GenerateRefreshToken(7, "planner@example.com")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	h, called := protectedProbe()
	req := httptest.NewRequest("GET", "/api/skus", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized || *called {
		t.Fatalf("refresh token must not pass the access gate, got %d called=%v", rec.Code, *called)
	}
}

func TestMiddleware_AccessTokenAccepted(t *testing.T) {
	token, err := GenerateAccessToken(7, "planner@example.com")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	h, called := protectedProbe()
	req := httptest.NewRequest("GET", "/api/skus", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK || !*called {
		t.Fatalf("expected handler to run, got %d called=%v", rec.Code, *called)
	}
}
