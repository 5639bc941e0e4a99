package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/warakornp/go-shortlink/pkg/adapters/repository/sqlite"
	"github.com/warakornp/go-shortlink/pkg/config"
	"github.com/warakornp/go-shortlink/pkg/core/domain"
	"github.com/warakornp/go-shortlink/pkg/core/services"
)

const usage = "expected 'export', 'import' or 'create-account' subcommands"

func main() {
	importCmd := flag.NewFlagSet("import", flag.ExitOnError)
	importFile := importCmd.String("file", "", "JSON file to import")

	accountCmd := flag.NewFlagSet("create-account", flag.ExitOnError)
	email := accountCmd.String("email", "", "account email")
	username := accountCmd.String("username", "", "account username")
	password := accountCmd.String("password", "", "account password")

	if len(os.Args) < 2 {
		fmt.Println(usage)
		os.Exit(1)
	}

	cfg := config.Load()
	db, err := sqlite.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to db: %v", err)
	}

	switch os.Args[1] {
	case "export":
		doExport(sqlite.NewLinkRepository(db))
	case "import":
		importCmd.Parse(os.Args[2:])
		if *importFile == "" {
			importCmd.PrintDefaults()
			os.Exit(1)
		}
		doImport(sqlite.NewLinkRepository(db), *importFile)
	case "create-account":
		accountCmd.Parse(os.Args[2:])
		if *email == "" || *username == "" || *password == "" {
			accountCmd.PrintDefaults()
			os.Exit(1)
		}
		doCreateAccount(sqlite.NewAccountRepository(db), *email, *username, *password)
	default:
		fmt.Println(usage)
		os.Exit(1)
	}
}

func doExport(repo *sqlite.LinkRepository) {
	links, err := repo.Dump(context.Background())
	if err != nil {
		log.Fatalf("Export failed: %v", err)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(links); err != nil {
		log.Fatalf("Encode failed: %v", err)
	}
}

func doImport(repo *sqlite.LinkRepository, filename string) {
	file, err := os.Open(filename)
	if err != nil {
		log.Fatalf("Failed to open file: %v", err)
	}
	defer file.Close()

	var links []domain.Link
	if err := json.NewDecoder(file).Decode(&links); err != nil {
		log.Fatalf("Decode failed: %v", err)
	}

	ctx := context.Background()
	count := 0
	for _, l := range links {
		existing, _ := repo.GetBySlug(ctx, l.Slug)
		if existing != nil {
			log.Printf("Skipping existing slug: %s", l.Slug)
			continue
		}

		l.ID = 0 // let the store assign a fresh id
		if err := repo.Create(ctx, &l); err != nil {
			log.Printf("Failed to import %s: %v", l.Slug, err)
		} else {
			count++
		}
	}
	log.Printf("Imported %d links", count)
}

// doCreateAccount registers an account directly against the store,
// bypassing the HTTP registration gate. Used to bootstrap an operator
// account; the account service applies the same first-account-is-admin
// rule through an always-open policy.
func doCreateAccount(repo *sqlite.AccountRepository, email, username, password string) {
	svc := services.NewAccountService(repo, "", services.AccountPolicy{RegistrationEnabled: true})

	account, err := svc.Register(context.Background(), email, username, password)
	if err != nil {
		log.Fatalf("Failed to create account: %v", err)
	}
	log.Printf("Created account %s (id=%d, role=%s)", account.Username, account.ID, account.Role)
}
