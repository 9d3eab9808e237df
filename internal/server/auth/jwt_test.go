package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/shoestock/internal/common"
)

func TestGenerateAndParse_Success(t *testing.T) {
	t.Parallel()

	secret := []byte("super-secret")
	workerCode := "52500111"

	tok, err := GenerateToken(workerCode, secret, 24*time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	got, err := GetWorkerCodeFromToken(tok, secret)
	if err != nil {
		t.Fatalf("GetWorkerCodeFromToken error: %v", err)
	}
	if got != workerCode {
		t.Fatalf("worker code mismatch: got %q want %q", got, workerCode)
	}
}

func TestGetWorkerCodeFromToken_Expired(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")

	tok, err := GenerateToken("w1", secret, -1*time.Second)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	_, err = GetWorkerCodeFromToken(tok, secret)
	if !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected common.ErrInvalidToken for expired token, got %v", err)
	}
}

func TestGetWorkerCodeFromToken_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := GenerateToken("w2", []byte("right-secret"), time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	_, err = GetWorkerCodeFromToken(tok, []byte("wrong-secret"))
	if !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected common.ErrInvalidToken for bad signature, got %v", err)
	}
}

func TestGetWorkerCodeFromToken_MalformedString(t *testing.T) {
	t.Parallel()

	_, err := GetWorkerCodeFromToken("not.a.jwt", []byte("k"))
	if !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected common.ErrInvalidToken for malformed token, got %v", err)
	}
}

func TestExpirationUnixMilli(t *testing.T) {
	t.Parallel()

	before := time.Now().Add(24 * time.Hour).UnixMilli()
	got := ExpirationUnixMilli(24 * time.Hour)
	after := time.Now().Add(24 * time.Hour).UnixMilli()

	if got < before || got > after {
		t.Fatalf("expiration %d outside [%d, %d]", got, before, after)
	}
}
