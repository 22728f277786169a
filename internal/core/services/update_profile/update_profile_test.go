package updateprofile

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

type testSuite struct {
	suite.Suite
	Logger            *logging.FakeLogger
	AccountRepository *account.FakeAccountRepository
	Service           services.Service[Input, Result]
}

func (suite *testSuite) SetupTest() {
	suite.Logger = logging.NewFakeLogger()
	suite.AccountRepository = account.NewFakeAccountRepository()
	suite.Service = New(suite.Logger, suite.AccountRepository)
}

func TestUpdateProfileService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (suite *testSuite) TestPartialUpdate() {
	a, err := suite.AccountRepository.Create(context.Background(), account.CreateAccountInput{
		Email:     c.Email("test@test.test"),
		FirstName: c.NewOptional("John", true),
		LastName:  c.NewOptional("Doe", true),
		Avatar:    account.DefaultAvatar,
		CreatedAt: time.Now().UTC(),
	})
	suite.Require().Nil(err)

	result, err := suite.Service.Run(context.Background(), Input{
		AccountID:         a.ID,
		DoFirstNameUpdate: true,
		FirstName:         c.NewOptional("Jane", true),
	})

	assert := suite.Require()
	assert.Nil(err)
	assert.Equal("Jane", result.Account.FirstName.Value)
	assert.Equal("Doe", result.Account.LastName.Value)
	assert.Equal(account.DefaultAvatar, result.Account.Avatar)
	assert.Equal(a.Email, result.Account.Email)
}

func (suite *testSuite) TestAccountDoesNotExist() {
	_, err := suite.Service.Run(context.Background(), Input{AccountID: account.NewID()})
	suite.Require().True(errors.Is(err, account.ErrAccountDoesNotExist))
}
