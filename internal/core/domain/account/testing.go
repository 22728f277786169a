package account

import (
	c "authms/internal/core/domain/common"
	"context"
	"crypto/md5"
	"fmt"
	"io"
	"strings"
	"sync"
)

type FakeAccountRepository struct {
	Accounts    []Account
	ReturnError bool
	lock        sync.Mutex
}

func NewFakeAccountRepository() *FakeAccountRepository {
	return &FakeAccountRepository{Accounts: make([]Account, 0, 10)}
}

func (r *FakeAccountRepository) Create(ctx context.Context, input CreateAccountInput) (a Account, err error) {
	if r.ReturnError {
		return a, fmt.Errorf("could not create account %v", input)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, existing := range r.Accounts {
		if existing.Email == input.Email {
			return a, ErrEmailAlreadyExists
		}
	}
	a = Account{
		ID:           NewID(),
		Email:        input.Email,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		PasswordHash: input.PasswordHash,
		Role:         input.Role,
		Avatar:       input.Avatar,
		CreatedAt:    input.CreatedAt,
	}
	r.Accounts = append(r.Accounts, a)
	return a, nil
}

func (r *FakeAccountRepository) GetByID(ctx context.Context, id ID) (a Account, err error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, a := range r.Accounts {
		if a.ID == id {
			return a, nil
		}
	}
	return a, ErrAccountDoesNotExist
}

func (r *FakeAccountRepository) GetByEmail(ctx context.Context, email c.Email) (a Account, err error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, a := range r.Accounts {
		if a.Email == email {
			return a, nil
		}
	}
	return a, ErrAccountDoesNotExist
}

func (r *FakeAccountRepository) SetVerified(ctx context.Context, id ID) (a Account, err error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix, a := range r.Accounts {
		if a.ID == id {
			r.Accounts[ix].IsVerified = true
			return r.Accounts[ix], nil
		}
	}
	return a, ErrAccountDoesNotExist
}

func (r *FakeAccountRepository) SetPassword(ctx context.Context, id ID, password PasswordHash) error {
	if r.ReturnError {
		return fmt.Errorf("could not set password for account %v", id)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix, a := range r.Accounts {
		if a.ID == id {
			r.Accounts[ix].PasswordHash = c.NewOptional(password, true)
			return nil
		}
	}
	return ErrAccountDoesNotExist
}

func (r *FakeAccountRepository) Update(ctx context.Context, input UpdateAccountInput) (a Account, err error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix, a := range r.Accounts {
		if a.ID == input.ID {
			if input.DoFirstNameUpdate {
				r.Accounts[ix].FirstName = input.FirstName
			}
			if input.DoLastNameUpdate {
				r.Accounts[ix].LastName = input.LastName
			}
			if input.DoAvatarUpdate {
				r.Accounts[ix].Avatar = input.Avatar
			}
			return r.Accounts[ix], nil
		}
	}
	return a, ErrAccountDoesNotExist
}

type FakeResetTokenRepository struct {
	Tokens      map[c.Email]PasswordResetToken
	ReturnError bool
	lock        sync.Mutex
}

func NewFakeResetTokenRepository() *FakeResetTokenRepository {
	return &FakeResetTokenRepository{Tokens: make(map[c.Email]PasswordResetToken)}
}

func (r *FakeResetTokenRepository) Create(ctx context.Context, token PasswordResetToken) error {
	if r.ReturnError {
		return fmt.Errorf("could not create reset token for %v", token.Email)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	r.Tokens[token.Email] = token
	return nil
}

func (r *FakeResetTokenRepository) Update(ctx context.Context, token PasswordResetToken) error {
	if r.ReturnError {
		return fmt.Errorf("could not update reset token for %v", token.Email)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	if _, ok := r.Tokens[token.Email]; !ok {
		return ErrResetTokenNotFound
	}
	r.Tokens[token.Email] = token
	return nil
}

func (r *FakeResetTokenRepository) GetByEmail(ctx context.Context, email c.Email) (t PasswordResetToken, err error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	t, ok := r.Tokens[email]
	if !ok {
		return t, ErrResetTokenNotFound
	}
	return t, nil
}

func (r *FakeResetTokenRepository) GetByToken(ctx context.Context, token ResetToken) (t PasswordResetToken, err error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, t := range r.Tokens {
		if t.Token == token {
			return t, nil
		}
	}
	return t, ErrResetTokenNotFound
}

func (r *FakeResetTokenRepository) DeleteByEmail(ctx context.Context, email c.Email) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	if _, ok := r.Tokens[email]; !ok {
		return ErrResetTokenNotFound
	}
	delete(r.Tokens, email)
	return nil
}

func (r *FakeResetTokenRepository) Count() int {
	r.lock.Lock()
	defer r.lock.Unlock()
	return len(r.Tokens)
}

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

// FakeResetTokenGenerator returns prefix-1, prefix-2, ... so that tests can
// tell consecutive tokens apart.
type FakeResetTokenGenerator struct {
	Prefix  string
	counter int
	lock    sync.Mutex
}

func NewFakeResetTokenGenerator(prefix string) *FakeResetTokenGenerator {
	return &FakeResetTokenGenerator{Prefix: prefix}
}

func (g *FakeResetTokenGenerator) GenerateResetToken() ResetToken {
	g.lock.Lock()
	defer g.lock.Unlock()
	g.counter++
	return ResetToken(fmt.Sprintf("%s-%d", g.Prefix, g.counter))
}

type FakeSessionIssuer struct{}

func NewFakeSessionIssuer() *FakeSessionIssuer {
	return &FakeSessionIssuer{}
}

func (i *FakeSessionIssuer) Issue(accountID ID, role Role) (SessionToken, error) {
	return SessionToken(fmt.Sprintf("%s::%s", accountID, role)), nil
}

func (i *FakeSessionIssuer) Verify(token SessionToken) (accountID ID, role Role, err error) {
	parts := strings.SplitN(string(token), "::", 2)
	if len(parts) != 2 {
		return accountID, role, ErrInvalidSessionToken
	}
	accountID, err = ParseID(parts[0])
	if err != nil {
		return accountID, role, ErrInvalidSessionToken
	}
	role, err = ParseRole(parts[1])
	if err != nil {
		return accountID, role, ErrInvalidSessionToken
	}
	return accountID, role, nil
}
