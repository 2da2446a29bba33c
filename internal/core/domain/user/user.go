package user

import (
	"fmt"
	c "medremind/internal/core/domain/common"
	e "medremind/internal/core/domain/errors"
	"time"
)

type ID int64

type PasswordHash string

func (p PasswordHash) String() string {
	return "***"
}

type RawPassword string

func (p RawPassword) String() string {
	return "***"
}

type AuthToken string

func (t AuthToken) String() string {
	return "***"
}

const MIN_PASSWORD_LENGTH = 6

type User struct {
	ID           ID
	Name         string
	Email        c.Email
	Phone        c.Optional[c.PhoneNumber]
	PasswordHash c.Optional[PasswordHash]
	CreatedAt    time.Time
}

func (u *User) Validate() error {
	if u.Name == "" {
		return e.NewInvalidStateError(fmt.Sprintf("name is not set for user %d", u.ID))
	}
	if u.Email == "" {
		return e.NewInvalidStateError(fmt.Sprintf("email is not set for user %d", u.ID))
	}
	if u.Phone.IsPresent && u.Phone.Value == "" {
		return e.NewInvalidStateError(fmt.Sprintf("phone is present but empty for user %d", u.ID))
	}
	return nil
}

// CanLogIn reports whether the user has credentials. The default user of a
// deployment without authentication has none.
func (u *User) CanLogIn() bool {
	return u.PasswordHash.IsPresent
}

type PasswordHasher interface {
	HashPassword(password RawPassword) (PasswordHash, error)
	ValidatePassword(password RawPassword, hash PasswordHash) bool
}

type TokenIssuer interface {
	IssueToken(u User) (AuthToken, error)
	ParseToken(token AuthToken) (ID, error)
}

// EventStreams maps users to the identifiers of their in-app event streams.
type EventStreams interface {
	StreamID(userID ID) string
	UserID(streamID string) (ID, bool)
}
