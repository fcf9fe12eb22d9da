package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func testProvider(srv *httptest.Server) *FirebaseAuth {
	a := NewFirebaseAuth("test-key")
	a.baseURL = srv.URL + "/v1/accounts"
	return a
}

func TestSignInSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, ":signInWithPassword") {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("key") != "test-key" {
			t.Fatalf("api key not forwarded")
		}
		w.Write([]byte(`{"localId":"u1","email":"alice@example.com","displayName":"Alice","idToken":"x"}`))
	}))
	defer srv.Close()

	user, err := testProvider(srv).SignIn(context.Background(), "alice@example.com", "pw")
	if err != nil {
		t.Fatalf("sign-in failed: %v", err)
	}
	if user.ID != "u1" || user.Email != "alice@example.com" || user.Name != "Alice" {
		t.Fatalf("unexpected user: %+v", user)
	}
}

func TestSignInInvalidCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"INVALID_LOGIN_CREDENTIALS"}}`))
	}))
	defer srv.Close()

	if _, err := testProvider(srv).SignIn(context.Background(), "a@b.c", "bad"); err != ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestSignUpEmailExists(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"EMAIL_EXISTS"}}`))
	}))
	defer srv.Close()

	if _, err := testProvider(srv).SignUp(context.Background(), "a@b.c", "pw", "A"); err != ErrEmailExists {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}
}

func TestSignUpWeakPassword(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"WEAK_PASSWORD : Password should be at least 6 characters"}}`))
	}))
	defer srv.Close()

	if _, err := testProvider(srv).SignUp(context.Background(), "a@b.c", "123", "A"); err != ErrWeakPassword {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}
}
