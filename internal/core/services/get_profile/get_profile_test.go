package getprofile

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

func TestGetProfileService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (suite *testSuite) TestSuccess() {
	a, err := suite.AccountRepository.Create(context.Background(), account.CreateAccountInput{
		Email:     c.Email("test@test.test"),
		CreatedAt: time.Now().UTC(),
	})
	suite.Require().Nil(err)

	result, err := suite.Service.Run(context.Background(), Input{AccountID: a.ID})

	assert := suite.Require()
	assert.Nil(err)
	assert.Equal(a.ID, result.Account.ID)
	assert.Equal(a.Email, result.Account.Email)
}

func (suite *testSuite) TestAccountDoesNotExist() {
	_, err := suite.Service.Run(context.Background(), Input{AccountID: account.NewID()})
	suite.Require().True(errors.Is(err, account.ErrAccountDoesNotExist))
}
