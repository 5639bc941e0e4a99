package main

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/warakornp/go-shortlink/pkg/adapters/handler"
	"github.com/warakornp/go-shortlink/pkg/adapters/repository/sqlite"
	"github.com/warakornp/go-shortlink/pkg/config"
	"github.com/warakornp/go-shortlink/pkg/core/services"
)

func main() {
	cfg := config.Load()

	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Initialize Storage
	db, err := sqlite.Open(cfg.DatabaseURL)
	if err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}

	// Initialize Services
	accounts := services.NewAccountService(
		sqlite.NewAccountRepository(db),
		cfg.JWTSecret,
		services.AccountPolicy{
			RegistrationEnabled: cfg.EnableRegistration,
			DemoMode:            cfg.DemoMode,
		},
	)
	links := services.NewLinkService(sqlite.NewLinkRepository(db))

	// Initialize Router
	mux := handler.NewRouter(accounts, links)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	logrus.Infof("Server starting on port %s", cfg.Port)
	if err := server.ListenAndServe(); err != nil {
		logrus.Fatal(err)
	}
}
