package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/warakornp/go-shortlink/pkg/core/domain"
	"github.com/warakornp/go-shortlink/pkg/ports"
)

// AccountPolicy holds the deployment toggles the account service
// enforces. Injected rather than read from the environment so tests can
// vary it per instance.
type AccountPolicy struct {
	RegistrationEnabled bool
	DemoMode            bool
}

type AccountService struct {
	repo      ports.AccountRepository
	jwtSecret []byte
	policy    AccountPolicy
}

func NewAccountService(repo ports.AccountRepository, jwtSecret string, policy AccountPolicy) *AccountService {
	return &AccountService{
		repo:      repo,
		jwtSecret: []byte(jwtSecret),
		policy:    policy,
	}
}

var (
	errBadCredentials = domain.NewError(http.StatusUnauthorized, "Invalid username or password")
	errBadSession     = domain.NewError(http.StatusUnauthorized, "Invalid or expired session")
	errWrongPassword  = domain.NewError(http.StatusUnauthorized, "Password is incorrect")
	errDemoLock       = domain.NewError(http.StatusNotAcceptable, "Updating of credentials is not enabled in demo mode.")
	errNoRegistration = domain.NewError(http.StatusPreconditionFailed, "Registration is not enabled")
)

type sessionClaims struct {
	AccountID int64 `json:"account_id"`
	jwt.RegisteredClaims
}

// Login verifies the credentials and issues a session token. A missing
// account and a wrong password return the same error so usernames
// cannot be enumerated.
func (s *AccountService) Login(ctx context.Context, username, password string) (*domain.Account, string, error) {
	account, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, "", err
	}
	if account == nil {
		return nil, "", errBadCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, "", errBadCredentials
	}

	token, err := s.signToken(account.ID)
	if err != nil {
		return nil, "", err
	}
	return account, token, nil
}

// Register creates an account subject to the bootstrap policy: the very
// first account is always allowed and becomes admin; after that open
// registration must be enabled, and demo mode closes registration
// entirely. The count and the insert are two separate store calls.
func (s *AccountService) Register(ctx context.Context, email, username, password string) (*domain.Account, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	if (count != 0 && !s.policy.RegistrationEnabled) || s.policy.DemoMode {
		return nil, errNoRegistration
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	role := domain.RoleStandard
	if count == 0 {
		role = domain.RoleAdmin
	}

	account := &domain.Account{
		Email:        email,
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    time.Now(),
	}
	if err := s.repo.Create(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

// Authenticate resolves a bearer token to the full account record.
func (s *AccountService) Authenticate(ctx context.Context, token string) (*domain.Account, error) {
	claims := &sessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return s.jwtSecret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, errBadSession
	}

	account, err := s.repo.GetByID(ctx, claims.AccountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, errBadSession
	}
	return account, nil
}

func (s *AccountService) UpdateEmail(ctx context.Context, account *domain.Account, newEmail, password string) (*domain.Account, error) {
	if err := s.verifyCurrentPassword(account, password); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateEmail(ctx, account.ID, newEmail); err != nil {
		return nil, err
	}
	account.Email = newEmail
	return account, nil
}

func (s *AccountService) UpdatePassword(ctx context.Context, account *domain.Account, password, newPassword string) (*domain.Account, error) {
	if err := s.verifyCurrentPassword(account, password); err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpdatePasswordHash(ctx, account.ID, string(hash)); err != nil {
		return nil, err
	}
	account.PasswordHash = string(hash)
	return account, nil
}

func (s *AccountService) UpdateUsername(ctx context.Context, account *domain.Account, newUsername, password string) (*domain.Account, error) {
	if err := s.verifyCurrentPassword(account, password); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateUsername(ctx, account.ID, newUsername); err != nil {
		return nil, err
	}
	account.Username = newUsername
	return account, nil
}

// IssueSecret generates a fresh opaque API secret, replacing any prior
// value. No password re-verification; the session gate suffices.
func (s *AccountService) IssueSecret(ctx context.Context, account *domain.Account) (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	secret := hex.EncodeToString(buf)

	if err := s.repo.UpdateSecret(ctx, account.ID, secret); err != nil {
		return "", err
	}
	account.Secret = secret
	return secret, nil
}

// verifyCurrentPassword gates every credential update: demo mode blocks
// the write before any store access, and the caller must present their
// current password even with a valid session.
func (s *AccountService) verifyCurrentPassword(account *domain.Account, password string) error {
	if s.policy.DemoMode {
		return errDemoLock
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return errWrongPassword
	}
	return nil
}

func (s *AccountService) signToken(accountID int64) (string, error) {
	claims := sessionClaims{
		AccountID: accountID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// Ensure interface compliance
var _ ports.AccountService = (*AccountService)(nil)
