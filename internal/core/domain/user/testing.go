package user

import (
	"context"
	"crypto/md5"
	"fmt"
	"io"
	c "medremind/internal/core/domain/common"
	"strconv"
	"strings"
	"sync"
)

type FakePasswordHasher struct{}

func NewFakePasswordHasher() *FakePasswordHasher {
	return &FakePasswordHasher{}
}

func (h *FakePasswordHasher) HashPassword(password RawPassword) (PasswordHash, error) {
	hash := md5.New()
	io.WriteString(hash, string(password))
	return PasswordHash(fmt.Sprintf("%x", hash.Sum(nil))), nil
}

func (h *FakePasswordHasher) ValidatePassword(password RawPassword, hash PasswordHash) bool {
	actualHash, err := h.HashPassword(password)
	if err != nil {
		return false
	}
	return actualHash == hash
}

// FakeTokenIssuer issues tokens of the form "token-<userID>".
type FakeTokenIssuer struct {
	ReturnError bool
}

func NewFakeTokenIssuer() *FakeTokenIssuer {
	return &FakeTokenIssuer{}
}

func (i *FakeTokenIssuer) IssueToken(u User) (AuthToken, error) {
	if i.ReturnError {
		return "", fmt.Errorf("could not issue token for user %d", u.ID)
	}
	return AuthToken(fmt.Sprintf("token-%d", u.ID)), nil
}

func (i *FakeTokenIssuer) ParseToken(token AuthToken) (ID, error) {
	raw, ok := strings.CutPrefix(string(token), "token-")
	if !ok {
		return 0, ErrInvalidAuthToken
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, ErrInvalidAuthToken
	}
	return ID(id), nil
}

type FakeEventStreams struct{}

func NewFakeEventStreams() *FakeEventStreams {
	return &FakeEventStreams{}
}

func (s *FakeEventStreams) StreamID(userID ID) string {
	return fmt.Sprintf("stream-%d", userID)
}

func (s *FakeEventStreams) UserID(streamID string) (ID, bool) {
	raw, ok := strings.CutPrefix(streamID, "stream-")
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return ID(id), true
}

type FakeUserRepository struct {
	Users       []User
	ReturnError bool

	// lastID only grows, so IDs of deleted entries are never reused.
	lastID ID
	lock   sync.Mutex
}

func NewFakeUserRepository() *FakeUserRepository {
	return &FakeUserRepository{Users: make([]User, 0, 10)}
}

func (r *FakeUserRepository) Create(ctx context.Context, input CreateUserInput) (u User, err error) {
	if r.ReturnError {
		return u, fmt.Errorf("could not create user %v", input)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, existing := range r.Users {
		if existing.Email == input.Email {
			return u, ErrEmailAlreadyExists
		}
	}
	return r.insert(input), nil
}

func (r *FakeUserRepository) Ensure(ctx context.Context, input CreateUserInput) (u User, err error) {
	if r.ReturnError {
		return u, fmt.Errorf("could not ensure user %v", input)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix, existing := range r.Users {
		if existing.Email == input.Email {
			r.Users[ix].Name = input.Name
			r.Users[ix].Phone = input.Phone
			return r.Users[ix], nil
		}
	}
	return r.insert(input), nil
}

func (r *FakeUserRepository) insert(input CreateUserInput) User {
	for _, existing := range r.Users {
		if existing.ID > r.lastID {
			r.lastID = existing.ID
		}
	}
	r.lastID++
	u := User{
		ID:           r.lastID,
		Name:         input.Name,
		Email:        input.Email,
		Phone:        input.Phone,
		PasswordHash: input.PasswordHash,
		CreatedAt:    input.CreatedAt,
	}
	r.Users = append(r.Users, u)
	return u
}

func (r *FakeUserRepository) GetByID(ctx context.Context, id ID) (u User, err error) {
	if r.ReturnError {
		return u, fmt.Errorf("could not get user %d", id)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, u := range r.Users {
		if u.ID == id {
			return u, nil
		}
	}
	return u, ErrUserDoesNotExist
}

func (r *FakeUserRepository) GetByEmail(ctx context.Context, email c.Email) (u User, err error) {
	if r.ReturnError {
		return u, fmt.Errorf("could not get user %s", email)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, u := range r.Users {
		if u.Email == email {
			return u, nil
		}
	}
	return u, ErrUserDoesNotExist
}

func (r *FakeUserRepository) Update(ctx context.Context, input UpdateUserInput) (u User, err error) {
	if r.ReturnError {
		return u, fmt.Errorf("could not update user %d", input.ID)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix, existing := range r.Users {
		if existing.ID == input.ID {
			if input.DoNameUpdate {
				r.Users[ix].Name = input.Name
			}
			if input.DoPhoneUpdate {
				r.Users[ix].Phone = input.Phone
			}
			return r.Users[ix], nil
		}
	}
	return u, ErrUserDoesNotExist
}
