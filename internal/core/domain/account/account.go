package account

import (
	c "authms/internal/core/domain/common"
	"time"

	"github.com/google/uuid"
)

type ID uuid.UUID

func (id ID) String() string {
	return uuid.UUID(id).String()
}

func NewID() ID {
	return ID(uuid.New())
}

func ParseID(raw string) (ID, error) {
	parsed, err := uuid.Parse(raw)
	if err != nil {
		return ID{}, err
	}
	return ID(parsed), nil
}

type PasswordHash string

func (p PasswordHash) String() string {
	return "***"
}

type RawPassword string

func (p RawPassword) String() string {
	return "***"
}

// DefaultAvatar is assigned to every new account until the owner uploads
// a real one.
const DefaultAvatar = "https://png.pngtree.com/png-clipart/20210915/ourmid/pngtree-user-avatar-placeholder-black-png-image_3918427.jpg"

type Account struct {
	ID           ID
	Email        c.Email
	FirstName    c.Optional[string]
	LastName     c.Optional[string]
	PasswordHash c.Optional[PasswordHash]
	Role         Role
	IsVerified   bool
	Avatar       string
	CreatedAt    time.Time
}

// HasLocalCredential reports whether the account can be authenticated with
// a password. Accounts registered without one must go through the password
// reset flow first.
func (a *Account) HasLocalCredential() bool {
	return a.PasswordHash.IsPresent
}
