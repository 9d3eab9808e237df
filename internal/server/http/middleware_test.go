package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/shoestock/internal/server/auth"
)

func TestAuthMiddleware_MissingToken(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/main/getAllShoes", "", nil)
	assertMessage(t, rec, http.StatusUnauthorized, "Token is missing")
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/main/getAllShoes", "not-a-jwt", nil)
	assertMessage(t, rec, http.StatusUnauthorized, "Token is invalid")
}

func TestAuthMiddleware_WrongSecret(t *testing.T) {
	env := newTestEnv(t)

	token, err := auth.GenerateToken("W-1", []byte("some-other-secret"), time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	rec := env.do(t, http.MethodGet, "/main/getAllShoes", token, nil)
	assertMessage(t, rec, http.StatusUnauthorized, "Token is invalid")
}

func TestAuthMiddleware_UnknownWorker(t *testing.T) {
	env := newTestEnv(t)

	// correctly signed token whose subject was never registered
	token, err := auth.GenerateToken("ghost", []byte(env.cfg.SecretKey), time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	rec := env.do(t, http.MethodGet, "/main/getAllShoes", token, nil)
	assertMessage(t, rec, http.StatusUnauthorized, "Token is invalid")
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)

	token, err := auth.GenerateToken("W-100", []byte(env.cfg.SecretKey), -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	rec := env.do(t, http.MethodGet, "/main/getAllShoes", token, nil)
	assertMessage(t, rec, http.StatusUnauthorized, "Token is invalid")
}

// Tokens are accepted both with and without the Bearer prefix.
func TestAuthMiddleware_BearerPrefixOptional(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t)

	req := httptest.NewRequest(http.MethodGet, "/main/getAllShoes", nil)
	req.Header.Set("Authorization", token)
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("bare token: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = env.do(t, http.MethodGet, "/main/getAllShoes", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("bearer token: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}
