package account

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"authms/internal/core/domain/account"
	c "authms/internal/core/domain/common"
	"authms/internal/db"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/stretchr/testify/suite"
)

const (
	EMAIL         = "test@test.test"
	PASSWORD_HASH = "test-password-hash"
)

var NOW time.Time = time.Date(2020, 6, 6, 15, 30, 30, 0, time.UTC)

type testSuite struct {
	suite.Suite
	pool      *pgxpool.Pool
	repo      *PgxAccountRepository
	tokenRepo *PgxResetTokenRepository
}

func (suite *testSuite) SetupSuite() {
	suite.pool = db.CreateTestPool()
	suite.repo = NewPgxRepository(suite.pool)
	suite.tokenRepo = NewPgxResetTokenRepository(suite.pool)
}

func (suite *testSuite) TearDownSuite() {
	suite.pool.Close()
}

func (suite *testSuite) TearDownTest() {
	db.TruncateTables(suite.pool)
}

func TestPgxAccountRepository(t *testing.T) {
	if os.Getenv("TEST_POSTGRESQL_URL") == "" {
		t.Skip("TEST_POSTGRESQL_URL is not set")
	}
	suite.Run(t, new(testSuite))
}

func (suite *testSuite) createAccount() account.Account {
	a, err := suite.repo.Create(context.Background(), account.CreateAccountInput{
		Email:        c.Email(EMAIL),
		FirstName:    c.NewOptional("John", true),
		PasswordHash: c.NewOptional(account.PasswordHash(PASSWORD_HASH), true),
		Role:         account.RoleStandardUser,
		Avatar:       account.DefaultAvatar,
		CreatedAt:    NOW,
	})
	suite.Require().Nil(err)
	return a
}

func (suite *testSuite) TestCreateSuccess() {
	a := suite.createAccount()

	assert := suite.Require()
	assert.Equal(c.Email(EMAIL), a.Email)
	assert.True(a.FirstName.IsPresent)
	assert.Equal("John", a.FirstName.Value)
	assert.False(a.LastName.IsPresent)
	assert.True(a.PasswordHash.IsPresent)
	assert.Equal(account.RoleStandardUser, a.Role)
	assert.False(a.IsVerified)
	assert.Equal(NOW, a.CreatedAt.UTC())
}

func (suite *testSuite) TestCreateDuplicateEmail() {
	suite.createAccount()

	_, err := suite.repo.Create(context.Background(), account.CreateAccountInput{
		Email:     c.Email(EMAIL),
		Role:      account.RoleStandardUser,
		CreatedAt: NOW,
	})
	suite.Require().True(errors.Is(err, account.ErrEmailAlreadyExists))
}

func (suite *testSuite) TestGetByIDAndEmail() {
	created := suite.createAccount()

	byID, err := suite.repo.GetByID(context.Background(), created.ID)
	suite.Require().Nil(err)
	suite.Require().Equal(created.ID, byID.ID)

	byEmail, err := suite.repo.GetByEmail(context.Background(), c.Email(EMAIL))
	suite.Require().Nil(err)
	suite.Require().Equal(created.ID, byEmail.ID)

	_, err = suite.repo.GetByID(context.Background(), account.NewID())
	suite.Require().True(errors.Is(err, account.ErrAccountDoesNotExist))
}

func (suite *testSuite) TestSetVerifiedIsIdempotent() {
	created := suite.createAccount()

	for i := 0; i < 2; i++ {
		a, err := suite.repo.SetVerified(context.Background(), created.ID)
		suite.Require().Nil(err)
		suite.Require().True(a.IsVerified)
	}
}

func (suite *testSuite) TestSetPassword() {
	created := suite.createAccount()

	err := suite.repo.SetPassword(context.Background(), created.ID, account.PasswordHash("new-hash"))
	suite.Require().Nil(err)

	updated, err := suite.repo.GetByID(context.Background(), created.ID)
	suite.Require().Nil(err)
	suite.Require().Equal(account.PasswordHash("new-hash"), updated.PasswordHash.Value)

	err = suite.repo.SetPassword(context.Background(), account.NewID(), account.PasswordHash("new-hash"))
	suite.Require().True(errors.Is(err, account.ErrAccountDoesNotExist))
}

func (suite *testSuite) TestPartialUpdate() {
	created := suite.createAccount()

	updated, err := suite.repo.Update(context.Background(), account.UpdateAccountInput{
		ID:               created.ID,
		DoLastNameUpdate: true,
		LastName:         c.NewOptional("Doe", true),
	})
	suite.Require().Nil(err)
	suite.Require().Equal("John", updated.FirstName.Value)
	suite.Require().Equal("Doe", updated.LastName.Value)
}

func (suite *testSuite) TestResetTokenLifecycle() {
	ctx := context.Background()
	first := account.PasswordResetToken{
		Email:     c.Email(EMAIL),
		Token:     account.ResetToken("first-token"),
		ExpiresAt: NOW.Add(time.Hour),
	}
	suite.Require().Nil(suite.tokenRepo.Create(ctx, first))

	// Creating again for the same email overwrites in place.
	second := account.PasswordResetToken{
		Email:     c.Email(EMAIL),
		Token:     account.ResetToken("second-token"),
		ExpiresAt: NOW.Add(2 * time.Hour),
	}
	suite.Require().Nil(suite.tokenRepo.Create(ctx, second))

	_, err := suite.tokenRepo.GetByToken(ctx, first.Token)
	suite.Require().True(errors.Is(err, account.ErrResetTokenNotFound))

	stored, err := suite.tokenRepo.GetByEmail(ctx, c.Email(EMAIL))
	suite.Require().Nil(err)
	suite.Require().Equal(second.Token, stored.Token)

	suite.Require().Nil(suite.tokenRepo.DeleteByEmail(ctx, c.Email(EMAIL)))
	suite.Require().True(errors.Is(suite.tokenRepo.DeleteByEmail(ctx, c.Email(EMAIL)), account.ErrResetTokenNotFound))
}
