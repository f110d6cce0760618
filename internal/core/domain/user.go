package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	MinPasswordLength    = 8
	MaxPasswordLength    = 72 // bcrypt input limit
	MaxDisplayNameLength = 100
)

type User struct {
	ID             uuid.UUID  `json:"id" db:"id"`
	Email          string     `json:"email" db:"email"`
	PasswordHash   string     `json:"-" db:"password_hash"`
	DisplayName    string     `json:"displayName" db:"display_name"`
	Role           Role       `json:"role" db:"role"`
	OrganizationID *uuid.UUID `json:"organizationId,omitempty" db:"organization_id"`
	Disabled       bool       `json:"-" db:"disabled"`
	CreatedAt      time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time  `json:"updatedAt" db:"updated_at"`
}

func (u *User) InOrganization(orgID uuid.UUID) bool {
	return u.OrganizationID != nil && *u.OrganizationID == orgID
}

type RefreshToken struct {
	TokenHash string    `json:"-" db:"token_hash"`
	UserID    uuid.UUID `json:"userId" db:"user_id"`
	ExpiresAt time.Time `json:"expiresAt" db:"expires_at"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

type TokenPair struct {
	AccessToken           string    `json:"accessToken"`
	RefreshToken          string    `json:"refreshToken"`
	AccessTokenExpiresAt  time.Time `json:"accessTokenExpiresAt"`
	RefreshTokenExpiresAt time.Time `json:"refreshTokenExpiresAt"`
}

type Organization struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Code      string    `json:"code,omitempty" db:"code"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
