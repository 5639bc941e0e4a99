package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/warakornp/go-shortlink/pkg/adapters/handler"
	"github.com/warakornp/go-shortlink/pkg/adapters/repository/sqlite"
	"github.com/warakornp/go-shortlink/pkg/core/services"
)

type envelope struct {
	Success bool            `json:"success"`
	Result  json.RawMessage `json:"result"`
	Message string          `json:"message"`
	Details json.RawMessage `json:"details"`
}

func doJSON(t *testing.T, client *http.Client, method, url, token string, payload any) (int, envelope) {
	t.Helper()

	var body *bytes.Buffer = bytes.NewBuffer(nil)
	if payload != nil {
		if err := json.NewEncoder(body).Encode(payload); err != nil {
			t.Fatalf("encode payload: %v", err)
		}
	}

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode response of %s %s: %v", method, url, err)
	}
	return resp.StatusCode, env
}

func TestEndToEnd(t *testing.T) {
	// Registration left disabled: the bootstrap exception must let the
	// first account through anyway.
	db, err := sqlite.Open("file:e2e?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("Failed to init db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	accounts := services.NewAccountService(
		sqlite.NewAccountRepository(db),
		"e2e-secret",
		services.AccountPolicy{},
	)
	links := services.NewLinkService(sqlite.NewLinkRepository(db))

	server := httptest.NewServer(handler.NewRouter(accounts, links))
	defer server.Close()
	client := server.Client()

	// Register the first account: succeeds despite closed registration,
	// and becomes admin.
	status, env := doJSON(t, client, "POST", server.URL+"/register", "", map[string]string{
		"email":    "admin@example.com",
		"username": "admin",
		"password": "password1",
	})
	if status != http.StatusOK || !env.Success {
		t.Fatalf("register: %d %s", status, env.Message)
	}
	var registered struct {
		ID   int64  `json:"id"`
		Role string `json:"role"`
	}
	if err := json.Unmarshal(env.Result, &registered); err != nil {
		t.Fatalf("decode register result: %v", err)
	}
	if registered.Role != "admin" {
		t.Errorf("first account role = %q, want admin", registered.Role)
	}

	// A second registration hits the policy gate.
	status, env = doJSON(t, client, "POST", server.URL+"/register", "", map[string]string{
		"email":    "b@example.com",
		"username": "bob",
		"password": "password2",
	})
	if status != http.StatusPreconditionFailed || env.Success {
		t.Fatalf("second register: %d %s, want 412", status, env.Message)
	}

	// Missing fields are rejected before any business logic.
	status, _ = doJSON(t, client, "POST", server.URL+"/login", "", map[string]string{"username": "admin"})
	if status != http.StatusBadRequest {
		t.Fatalf("login without password: %d, want 400", status)
	}

	// Login and keep the session token.
	status, env = doJSON(t, client, "POST", server.URL+"/login", "", map[string]string{
		"username": "admin",
		"password": "password1",
	})
	if status != http.StatusOK {
		t.Fatalf("login: %d %s", status, env.Message)
	}
	var session struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(env.Result, &session); err != nil || session.Token == "" {
		t.Fatalf("no session token in login result: %v %s", err, env.Result)
	}

	// /me returns the current account.
	status, env = doJSON(t, client, "GET", server.URL+"/me", session.Token, nil)
	if status != http.StatusOK {
		t.Fatalf("me: %d %s", status, env.Message)
	}
	var me struct {
		Username string `json:"username"`
		Role     string `json:"role"`
	}
	if err := json.Unmarshal(env.Result, &me); err != nil || me.Username != "admin" || me.Role != "admin" {
		t.Fatalf("unexpected /me result: %s", env.Result)
	}

	// Creating a link requires a session.
	status, _ = doJSON(t, client, "POST", server.URL+"/link", "", map[string]string{
		"slug":        "abc",
		"destination": "https://example.com",
	})
	if status != http.StatusUnauthorized {
		t.Fatalf("unauthenticated create: %d, want 401", status)
	}

	status, env = doJSON(t, client, "POST", server.URL+"/link", session.Token, map[string]string{
		"slug":        "abc",
		"destination": "https://example.com",
	})
	if status != http.StatusOK {
		t.Fatalf("create link: %d %s", status, env.Message)
	}
	var created struct {
		ID     int64 `json:"id"`
		Author int64 `json:"author"`
	}
	if err := json.Unmarshal(env.Result, &created); err != nil || created.ID == 0 {
		t.Fatalf("decode created link: %v %s", err, env.Result)
	}
	if created.Author != registered.ID {
		t.Errorf("link author = %d, want creating account %d", created.Author, registered.ID)
	}

	// Public lookup returns only the destination.
	status, env = doJSON(t, client, "GET", server.URL+"/link?slug=abc", "", nil)
	if status != http.StatusOK {
		t.Fatalf("public lookup: %d %s", status, env.Message)
	}
	var dest struct {
		Destination string `json:"destination"`
	}
	if err := json.Unmarshal(env.Result, &dest); err != nil || dest.Destination != "https://example.com" {
		t.Fatalf("unexpected lookup result: %s", env.Result)
	}

	// The redirect route serves the slug directly.
	client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		return http.ErrUseLastResponse
	}
	resp, err := client.Get(server.URL + "/abc")
	if err != nil {
		t.Fatalf("redirect request: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusFound || resp.Header.Get("Location") != "https://example.com" {
		t.Fatalf("redirect: %d %q", resp.StatusCode, resp.Header.Get("Location"))
	}

	// Pagesize over the cap is rejected before the store is queried.
	status, env = doJSON(t, client, "GET", server.URL+"/link/list?pagesize=200&page=1&sort=desc", session.Token, nil)
	if status != http.StatusBadRequest {
		t.Fatalf("oversized pagesize: %d %s, want 400", status, env.Message)
	}

	status, env = doJSON(t, client, "GET", server.URL+"/link/list?pagesize=10&page=1&sort=desc", session.Token, nil)
	if status != http.StatusOK {
		t.Fatalf("list: %d %s", status, env.Message)
	}
	var page struct {
		Links []struct {
			Slug string `json:"slug"`
		} `json:"links"`
		Total int64 `json:"total"`
	}
	if err := json.Unmarshal(env.Result, &page); err != nil || page.Total != 1 || len(page.Links) != 1 {
		t.Fatalf("unexpected list result: %v %s", err, env.Result)
	}

	// Delete by id, then the slug stops resolving.
	status, env = doJSON(t, client, "DELETE", server.URL+"/link", session.Token, map[string]any{
		"id": created.ID,
	})
	if status != http.StatusOK || !env.Success {
		t.Fatalf("delete: %d %s", status, env.Message)
	}

	status, env = doJSON(t, client, "GET", fmt.Sprintf("%s/link?slug=abc", server.URL), "", nil)
	if status != http.StatusNotFound || env.Success {
		t.Fatalf("lookup after delete: %d %s, want 404", status, env.Message)
	}
}
