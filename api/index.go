package handler

import (
	"net/http"

	"github.com/warakornp/go-shortlink/pkg/adapters/handler"
	"github.com/warakornp/go-shortlink/pkg/adapters/repository/sqlite"
	"github.com/warakornp/go-shortlink/pkg/config"
	"github.com/warakornp/go-shortlink/pkg/core/services"
)

var mux http.Handler

func init() {
	cfg := config.Load()

	// Note: On Vercel, db.sqlite is ephemeral unless DATABASE_URL points
	// at a remote Turso database.
	db, err := sqlite.Open(cfg.DatabaseURL)
	if err != nil {
		panic(err)
	}

	accounts := services.NewAccountService(
		sqlite.NewAccountRepository(db),
		cfg.JWTSecret,
		services.AccountPolicy{
			RegistrationEnabled: cfg.EnableRegistration,
			DemoMode:            cfg.DemoMode,
		},
	)
	links := services.NewLinkService(sqlite.NewLinkRepository(db))

	mux = handler.NewRouter(accounts, links)
}

// Handler is the entrypoint for Vercel
func Handler(w http.ResponseWriter, r *http.Request) {
	mux.ServeHTTP(w, r)
}
