package ports

import (
	"context"

	"github.com/warakornp/go-shortlink/pkg/core/domain"
)

// AccountRepository defines storage operations for accounts
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id int64) (*domain.Account, error)
	GetByUsername(ctx context.Context, username string) (*domain.Account, error)
	Count(ctx context.Context) (int64, error)
	UpdateEmail(ctx context.Context, id int64, email string) error
	UpdateUsername(ctx context.Context, id int64, username string) error
	UpdatePasswordHash(ctx context.Context, id int64, hash string) error
	UpdateSecret(ctx context.Context, id int64, secret string) error
}

// LinkRepository defines storage operations for links
type LinkRepository interface {
	Create(ctx context.Context, link *domain.Link) error
	GetBySlug(ctx context.Context, slug string) (*domain.Link, error)
	GetByID(ctx context.Context, id int64) (*domain.Link, error)
	Update(ctx context.Context, link *domain.Link) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, limit, offset int, sort string) ([]domain.Link, error)
	Count(ctx context.Context) (int64, error)
	Dump(ctx context.Context) ([]domain.Link, error) // For migration
}

// AccountService defines the account lifecycle operations
type AccountService interface {
	// Login returns the account and a signed session token. Unknown
	// username and wrong password fail identically.
	Login(ctx context.Context, username, password string) (*domain.Account, string, error)
	Register(ctx context.Context, email, username, password string) (*domain.Account, error)
	// Authenticate resolves a session token back to the full account.
	Authenticate(ctx context.Context, token string) (*domain.Account, error)
	UpdateEmail(ctx context.Context, account *domain.Account, newEmail, password string) (*domain.Account, error)
	UpdatePassword(ctx context.Context, account *domain.Account, password, newPassword string) (*domain.Account, error)
	UpdateUsername(ctx context.Context, account *domain.Account, newUsername, password string) (*domain.Account, error)
	IssueSecret(ctx context.Context, account *domain.Account) (string, error)
}

// LinkService defines the link lifecycle operations
type LinkService interface {
	List(ctx context.Context, page, pagesize int, sort string) (*domain.LinkPage, error)
	// GetBySlug returns (nil, nil) when no link matches; the redirect
	// path relies on this being a single cheap lookup.
	GetBySlug(ctx context.Context, slug string) (*domain.Link, error)
	Create(ctx context.Context, author int64, slug, destination string) (*domain.Link, error)
	Update(ctx context.Context, id int64, slug, destination string) (*domain.Link, error)
	Remove(ctx context.Context, id int64) error
}
