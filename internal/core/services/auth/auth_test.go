package auth

import (
	"context"
	c "medremind/internal/core/domain/common"
	"medremind/internal/core/domain/user"
	"medremind/internal/core/services"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type input struct {
	User user.User
}

func (i input) WithAuthenticatedUser(u user.User) Input {
	i.User = u
	return i
}

type stubService struct {
	WasCalled bool
}

func (s *stubService) Run(ctx context.Context, in input) (user.ID, error) {
	s.WasCalled = true
	return in.User.ID, nil
}

type testSuite struct {
	suite.Suite
	UserRepository *user.FakeUserRepository
	TokenIssuer    *user.FakeTokenIssuer
	Inner          *stubService
	User           user.User
}

func (suite *testSuite) SetupTest() {
	suite.UserRepository = user.NewFakeUserRepository()
	suite.TokenIssuer = user.NewFakeTokenIssuer()
	suite.Inner = &stubService{}
	u, err := suite.UserRepository.Create(context.Background(), user.CreateUserInput{
		Name:      "Jane",
		Email:     c.NewEmail("jane@example.com"),
		CreatedAt: time.Now(),
	})
	suite.Require().Nil(err)
	suite.User = u
}

func TestAuthService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (suite *testSuite) tokenService() services.Service[input, user.ID] {
	return WithAuthentication[input, user.ID](
		NewTokenAuthenticator(suite.UserRepository, suite.TokenIssuer),
		suite.Inner,
	)
}

func (suite *testSuite) TestValidToken() {
	token, err := suite.TokenIssuer.IssueToken(suite.User)
	suite.Require().Nil(err)
	ctx := WithAuthToken(context.Background(), token)

	userID, err := suite.tokenService().Run(ctx, input{})

	assert := suite.Require()
	assert.Nil(err)
	assert.Equal(suite.User.ID, userID)
	assert.True(suite.Inner.WasCalled)
}

func (suite *testSuite) TestMissingToken() {
	_, err := suite.tokenService().Run(context.Background(), input{})

	assert := suite.Require()
	assert.ErrorIs(err, user.ErrUserDoesNotExist)
	assert.False(suite.Inner.WasCalled)
}

func (suite *testSuite) TestMalformedToken() {
	ctx := WithAuthToken(context.Background(), user.AuthToken("garbage"))

	_, err := suite.tokenService().Run(ctx, input{})

	assert := suite.Require()
	assert.ErrorIs(err, user.ErrUserDoesNotExist)
	assert.False(suite.Inner.WasCalled)
}

func (suite *testSuite) TestTokenOfDeletedUser() {
	ctx := WithAuthToken(context.Background(), user.AuthToken("token-999"))

	_, err := suite.tokenService().Run(ctx, input{})

	suite.Require().ErrorIs(err, user.ErrUserDoesNotExist)
}

func (suite *testSuite) TestDefaultUser() {
	service := WithAuthentication[input, user.ID](
		NewDefaultUserAuthenticator(suite.UserRepository, suite.User.ID),
		suite.Inner,
	)

	userID, err := service.Run(context.Background(), input{})

	assert := suite.Require()
	assert.Nil(err)
	assert.Equal(suite.User.ID, userID)
}
