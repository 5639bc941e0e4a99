package handler

import (
	"net/http"

	"github.com/warakornp/go-shortlink/pkg/ports"
)

// NewRouter creates and configures the main application router
func NewRouter(accounts ports.AccountService, links ports.LinkService) http.Handler {
	ah := NewAuthHandler(accounts)
	lh := NewLinkHandler(links)
	mw := NewMiddleware(accounts)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeResult(w, http.StatusOK, map[string]string{"message": "ok"})
	})

	// Account routes
	mux.Handle("POST /login", chain(http.HandlerFunc(ah.Login),
		RequireFields([]string{"username", "password"}, "body")))
	mux.Handle("POST /register", chain(http.HandlerFunc(ah.Register),
		RequireFields([]string{"email", "username", "password"}, "body")))
	mux.Handle("GET /me", chain(http.HandlerFunc(ah.Me),
		mw.RequireLogin(false)))
	mux.Handle("PATCH /email", chain(http.HandlerFunc(ah.UpdateEmail),
		mw.RequireLogin(true),
		RequireFields([]string{"newEmail", "password"}, "body")))
	mux.Handle("PATCH /password", chain(http.HandlerFunc(ah.UpdatePassword),
		mw.RequireLogin(true),
		RequireFields([]string{"password", "newPassword"}, "body")))
	mux.Handle("PATCH /username", chain(http.HandlerFunc(ah.UpdateUsername),
		mw.RequireLogin(true),
		RequireFields([]string{"newUsername", "password"}, "body")))
	mux.Handle("POST /newSecret", chain(http.HandlerFunc(ah.NewSecret),
		mw.RequireLogin(false)))

	// Link routes. Listing requires a session but the result is not
	// scoped to the caller; the public lookup and redirect are open.
	mux.Handle("GET /link/list", chain(http.HandlerFunc(lh.List),
		RequireFields([]string{"pagesize", "page", "sort"}, "query"),
		mw.RequireLogin(false)))
	mux.Handle("GET /link", chain(http.HandlerFunc(lh.Get),
		RequireFields([]string{"slug"}, "query")))
	mux.Handle("POST /link", chain(http.HandlerFunc(lh.Create),
		RequireFields([]string{"slug", "destination"}, "body"),
		mw.RequireLogin(false)))
	mux.Handle("PATCH /link", chain(http.HandlerFunc(lh.Update),
		RequireFields([]string{"slug", "destination", "id"}, "body"),
		mw.RequireLogin(false)))
	mux.Handle("DELETE /link", chain(http.HandlerFunc(lh.Delete),
		RequireFields([]string{"id"}, "body"),
		mw.RequireLogin(false)))

	// Public short-URL redirect
	mux.HandleFunc("GET /{slug}", lh.Redirect)

	return mux
}
