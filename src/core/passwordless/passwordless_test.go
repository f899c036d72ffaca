package passwordless

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRegisterToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/register/token" {
			t.Errorf("path = %s", r.URL.Path)
		}
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["userId"] != "u1" || body["username"] != "anap" {
			t.Errorf("body = %v", body)
		}
		fmt.Fprint(w, `{"token":"register_xyz"}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret")
	token, err := client.RegisterToken(context.Background(), "u1", "anap")
	if err != nil {
		t.Fatalf("RegisterToken: %v", err)
	}
	if token != "register_xyz" {
		t.Fatalf("token = %q", token)
	}
}

func TestRegisterTokenMissingToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret")
	if _, err := client.RegisterToken(context.Background(), "u1", "anap"); !errors.Is(err, ErrProvider) {
		t.Fatalf("expected ErrProvider, got %v", err)
	}
}

func TestSignInProviderFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid api secret", http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClient(server.URL, "wrong-secret")
	if _, err := client.SignIn(context.Background(), "token"); !errors.Is(err, ErrProvider) {
		t.Fatalf("expected ErrProvider, got %v", err)
	}
}

func TestSignInUnsuccessfulVerification(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"success":false}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret")
	if _, err := client.SignIn(context.Background(), "stale-token"); !errors.Is(err, ErrProvider) {
		t.Fatalf("expected ErrProvider, got %v", err)
	}
}
