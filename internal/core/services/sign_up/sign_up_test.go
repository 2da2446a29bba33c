package signup

import (
	"context"
	c "medremind/internal/core/domain/common"
	"medremind/internal/core/domain/logging"
	"medremind/internal/core/domain/user"
	"medremind/internal/core/services"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

const (
	EMAIL        = c.Email("test@test.test")
	RAW_PASSWORD = user.RawPassword("test-password")
)

var NOW time.Time = time.Now().UTC()

type testSuite struct {
	suite.Suite
	Logger         *logging.FakeLogger
	UserRepository *user.FakeUserRepository
	PasswordHasher *user.FakePasswordHasher
	TokenIssuer    *user.FakeTokenIssuer
	Service        services.Service[Input, Result]
}

func (suite *testSuite) SetupTest() {
	suite.Logger = logging.NewFakeLogger()
	suite.UserRepository = user.NewFakeUserRepository()
	suite.PasswordHasher = user.NewFakePasswordHasher()
	suite.TokenIssuer = user.NewFakeTokenIssuer()
	suite.Service = New(
		suite.Logger,
		suite.UserRepository,
		suite.PasswordHasher,
		suite.TokenIssuer,
		func() time.Time { return NOW },
	)
}

func TestSignUpService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (suite *testSuite) TestSuccess() {
	result, err := suite.Service.Run(context.Background(), Input{
		Name:     "Test",
		Email:    EMAIL,
		Phone:    c.NewOptional(c.PhoneNumber("+15550100"), true),
		Password: RAW_PASSWORD,
	})

	assert := suite.Require()
	assert.Nil(err)
	assert.NotEqual(user.ID(0), result.User.ID)
	assert.Equal(NOW, result.User.CreatedAt)
	assert.Equal(EMAIL, result.User.Email)
	assert.True(result.User.PasswordHash.IsPresent)
	assert.NotEqual(string(RAW_PASSWORD), string(result.User.PasswordHash.Value))
	assert.True(suite.PasswordHasher.ValidatePassword(RAW_PASSWORD, result.User.PasswordHash.Value))

	userID, err := suite.TokenIssuer.ParseToken(result.Token)
	assert.Nil(err)
	assert.Equal(result.User.ID, userID)
}

func (suite *testSuite) TestEmailAlreadyExistsError() {
	ctx := context.Background()
	suite.UserRepository.Create(ctx, user.CreateUserInput{
		Name:      "Other",
		Email:     EMAIL,
		CreatedAt: NOW,
	})

	_, err := suite.Service.Run(ctx, Input{Name: "Test", Email: EMAIL, Password: RAW_PASSWORD})

	suite.Require().ErrorIs(err, user.ErrEmailAlreadyExists)
}

func (suite *testSuite) TestPasswordTooShort() {
	_, err := suite.Service.Run(context.Background(), Input{Name: "Test", Email: EMAIL, Password: "12345"})

	assert := suite.Require()
	assert.ErrorIs(err, user.ErrPasswordTooShort)
	assert.Empty(suite.UserRepository.Users)
}
