package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/warakornp/go-shortlink/pkg/adapters/repository/sqlite"
	"github.com/warakornp/go-shortlink/pkg/core/services"
)

func TestUnexpectedErrorsAreMasked(t *testing.T) {
	db, err := sqlite.Open("file:handler_internal?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}

	accounts := services.NewAccountService(
		sqlite.NewAccountRepository(db),
		"testservlet",
		services.AccountPolicy{RegistrationEnabled: true},
	)
	links := services.NewLinkService(sqlite.NewLinkRepository(db))
	router := NewRouter(accounts, links)

	// A closed database makes every store call fail with a plain driver
	// error rather than an intentional domain error, so the handler has
	// to fall back to the fixed per-operation 500 message.
	_ = db.Close()

	req := httptest.NewRequest("GET", "/link?slug=abc", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500 (%s)", rr.Code, rr.Body.String())
	}

	var env struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if env.Success {
		t.Error("success = true on an internal failure")
	}
	if env.Message != "Internal Server Error when getting link" {
		t.Errorf("message = %q, want the fixed operation message", env.Message)
	}
	if strings.Contains(rr.Body.String(), "database is closed") || strings.Contains(rr.Body.String(), "sql:") {
		t.Errorf("underlying error leaked to the client: %s", rr.Body.String())
	}
}
