package login

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
	RAW_PASSWORD = account.RawPassword("test-password")
)

type testSuite struct {
	suite.Suite
	Logger            *logging.FakeLogger
	AccountRepository *account.FakeAccountRepository
	PasswordHasher    *account.FakePasswordHasher
	SessionIssuer     *account.FakeSessionIssuer
	Service           services.Service[Input, Result]
}

func (suite *testSuite) SetupTest() {
	suite.Logger = logging.NewFakeLogger()
	suite.AccountRepository = account.NewFakeAccountRepository()
	suite.PasswordHasher = account.NewFakePasswordHasher()
	suite.SessionIssuer = account.NewFakeSessionIssuer()
	suite.Service = New(
		suite.Logger,
		suite.AccountRepository,
		suite.PasswordHasher,
		suite.SessionIssuer,
	)
}

func TestLogInService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (suite *testSuite) createAccount(password account.RawPassword) account.Account {
	hash, err := suite.PasswordHasher.HashPassword(password)
	suite.Require().Nil(err)
	a, err := suite.AccountRepository.Create(context.Background(), account.CreateAccountInput{
		Email:        EMAIL,
		PasswordHash: c.NewOptional(hash, true),
		Role:         account.RoleStandardUser,
		CreatedAt:    time.Now().UTC(),
	})
	suite.Require().Nil(err)
	return a
}

func (suite *testSuite) TestSuccess() {
	a := suite.createAccount(RAW_PASSWORD)

	result, err := suite.Service.Run(context.Background(), Input{Email: EMAIL, Password: RAW_PASSWORD})

	assert := suite.Require()
	assert.Nil(err)
	assert.NotEqual(account.SessionToken(""), result.Token)

	accountID, role, err := suite.SessionIssuer.Verify(result.Token)
	assert.Nil(err)
	assert.Equal(a.ID, accountID)
	assert.Equal(account.RoleStandardUser, role)
}

func (suite *testSuite) TestAccountDoesNotExist() {
	_, err := suite.Service.Run(context.Background(), Input{Email: EMAIL, Password: RAW_PASSWORD})

	assert := suite.Require()
	assert.NotNil(err)
	assert.True(errors.Is(err, account.ErrAccountDoesNotExist))
}

func (suite *testSuite) TestInvalidPassword() {
	suite.createAccount(RAW_PASSWORD)

	_, err := suite.Service.Run(context.Background(), Input{Email: EMAIL, Password: account.RawPassword("wrong")})

	assert := suite.Require()
	assert.NotNil(err)
	assert.True(errors.Is(err, account.ErrInvalidCredentials))
}

func (suite *testSuite) TestNoLocalCredential() {
	_, err := suite.AccountRepository.Create(context.Background(), account.CreateAccountInput{
		Email:     EMAIL,
		Role:      account.RoleStandardUser,
		CreatedAt: time.Now().UTC(),
	})
	suite.Require().Nil(err)

	_, err = suite.Service.Run(context.Background(), Input{Email: EMAIL, Password: RAW_PASSWORD})

	assert := suite.Require()
	assert.NotNil(err)
	assert.True(errors.Is(err, account.ErrInvalidCredentials))
}
