package resetpassword

import (
	"context"
	"errors"
	"testing"
	"time"

	"authms/internal/core/domain/account"
	c "authms/internal/core/domain/common"
	"authms/internal/core/domain/logging"
	"authms/internal/core/services"

	"github.com/stretchr/testify/suite"
)

const (
	EMAIL        = c.Email("test@test.test")
	OLD_PASSWORD = account.RawPassword("old-password")
	NEW_PASSWORD = account.RawPassword("new-password")
	TOKEN        = account.ResetToken("reset-token")
)

var NOW time.Time = time.Now().UTC()

type testSuite struct {
	suite.Suite
	Logger               *logging.FakeLogger
	AccountRepository    *account.FakeAccountRepository
	ResetTokenRepository *account.FakeResetTokenRepository
	PasswordHasher       *account.FakePasswordHasher
	Service              services.Service[Input, Result]
}

func (suite *testSuite) SetupTest() {
	suite.Logger = logging.NewFakeLogger()
	suite.AccountRepository = account.NewFakeAccountRepository()
	suite.ResetTokenRepository = account.NewFakeResetTokenRepository()
	suite.PasswordHasher = account.NewFakePasswordHasher()
	suite.Service = New(
		suite.Logger,
		suite.AccountRepository,
		suite.ResetTokenRepository,
		suite.PasswordHasher,
		func() time.Time { return NOW },
	)
}

func TestResetPasswordService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (suite *testSuite) createAccount() account.Account {
	hash, err := suite.PasswordHasher.HashPassword(OLD_PASSWORD)
	suite.Require().Nil(err)
	a, err := suite.AccountRepository.Create(context.Background(), account.CreateAccountInput{
		Email:        EMAIL,
		PasswordHash: c.NewOptional(hash, true),
		CreatedAt:    NOW,
	})
	suite.Require().Nil(err)
	return a
}

func (suite *testSuite) createResetToken(expiresAt time.Time) {
	err := suite.ResetTokenRepository.Create(context.Background(), account.PasswordResetToken{
		Email:     EMAIL,
		Token:     TOKEN,
		ExpiresAt: expiresAt,
	})
	suite.Require().Nil(err)
}

func (suite *testSuite) TestSuccess() {
	a := suite.createAccount()
	suite.createResetToken(NOW.Add(time.Hour))

	_, err := suite.Service.Run(context.Background(), Input{
		Token:           TOKEN,
		NewPassword:     NEW_PASSWORD,
		ConfirmPassword: NEW_PASSWORD,
	})

	assert := suite.Require()
	assert.Nil(err)

	updated, err := suite.AccountRepository.GetByID(context.Background(), a.ID)
	assert.Nil(err)
	assert.True(suite.PasswordHasher.ValidatePassword(NEW_PASSWORD, updated.PasswordHash.Value))
	assert.False(suite.PasswordHasher.ValidatePassword(OLD_PASSWORD, updated.PasswordHash.Value))

	// Single use: the consumed token must be gone.
	assert.Equal(0, suite.ResetTokenRepository.Count())
	_, err = suite.Service.Run(context.Background(), Input{
		Token:           TOKEN,
		NewPassword:     NEW_PASSWORD,
		ConfirmPassword: NEW_PASSWORD,
	})
	assert.True(errors.Is(err, account.ErrInvalidResetToken))
}

func (suite *testSuite) TestInvalidToken() {
	suite.createAccount()

	_, err := suite.Service.Run(context.Background(), Input{
		Token:           account.ResetToken("unknown"),
		NewPassword:     NEW_PASSWORD,
		ConfirmPassword: NEW_PASSWORD,
	})

	suite.Require().True(errors.Is(err, account.ErrInvalidResetToken))
}

func (suite *testSuite) TestAccountNoLongerExists() {
	suite.createResetToken(NOW.Add(time.Hour))

	_, err := suite.Service.Run(context.Background(), Input{
		Token:           TOKEN,
		NewPassword:     NEW_PASSWORD,
		ConfirmPassword: NEW_PASSWORD,
	})

	suite.Require().True(errors.Is(err, account.ErrAccountDoesNotExist))
}

func (suite *testSuite) TestPasswordMismatch() {
	suite.createAccount()
	suite.createResetToken(NOW.Add(time.Hour))

	_, err := suite.Service.Run(context.Background(), Input{
		Token:           TOKEN,
		NewPassword:     NEW_PASSWORD,
		ConfirmPassword: account.RawPassword("something else"),
	})

	suite.Require().True(errors.Is(err, account.ErrPasswordMismatch))
}

func (suite *testSuite) TestExpiredToken() {
	a := suite.createAccount()
	suite.createResetToken(NOW.Add(-time.Minute))

	_, err := suite.Service.Run(context.Background(), Input{
		Token:           TOKEN,
		NewPassword:     NEW_PASSWORD,
		ConfirmPassword: NEW_PASSWORD,
	})

	assert := suite.Require()
	assert.True(errors.Is(err, account.ErrResetTokenExpired))

	// The password hash must not have been touched.
	unchanged, err := suite.AccountRepository.GetByID(context.Background(), a.ID)
	assert.Nil(err)
	assert.True(suite.PasswordHasher.ValidatePassword(OLD_PASSWORD, unchanged.PasswordHash.Value))
}

func (suite *testSuite) TestOnlyLatestTokenIsValid() {
	suite.createAccount()
	suite.createResetToken(NOW.Add(time.Hour))

	latest := account.ResetToken("latest-token")
	err := suite.ResetTokenRepository.Update(context.Background(), account.PasswordResetToken{
		Email:     EMAIL,
		Token:     latest,
		ExpiresAt: NOW.Add(time.Hour),
	})
	suite.Require().Nil(err)

	_, err = suite.Service.Run(context.Background(), Input{
		Token:           TOKEN,
		NewPassword:     NEW_PASSWORD,
		ConfirmPassword: NEW_PASSWORD,
	})
	suite.Require().True(errors.Is(err, account.ErrInvalidResetToken))

	_, err = suite.Service.Run(context.Background(), Input{
		Token:           latest,
		NewPassword:     NEW_PASSWORD,
		ConfirmPassword: NEW_PASSWORD,
	})
	suite.Require().Nil(err)
}
