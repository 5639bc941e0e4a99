package domain

import "time"

// Account roles. The first account ever registered becomes admin, every
// later one is standard. Nothing beyond that bootstrap rule keeps the
// admin role unique.
const (
	RoleAdmin    = "admin"
	RoleStandard = "standard"
)

// Account is a registered user of the shortener.
type Account struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	Secret       string    `json:"secret,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// PublicAccount is the external shape of an account. The password hash
// never leaves the process.
type PublicAccount struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Role     string `json:"role"`
	Secret   string `json:"secret,omitempty"`
}

func (a *Account) Public() PublicAccount {
	return PublicAccount{
		ID:       a.ID,
		Email:    a.Email,
		Username: a.Username,
		Role:     a.Role,
		Secret:   a.Secret,
	}
}
