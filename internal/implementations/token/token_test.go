package token

import (
	"medremind/internal/core/domain/user"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

var NOW = time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)

func TestIssueAndParse(t *testing.T) {
	assert := require.New(t)
	j := NewJWT("test-secret", func() time.Time { return NOW })

	token, err := j.IssueToken(user.User{ID: 42})
	assert.Nil(err)

	id, err := j.ParseToken(token)
	assert.Nil(err)
	assert.Equal(user.ID(42), id)
}

func TestParseInvalidTokens(t *testing.T) {
	now := NOW
	issuer := NewJWT("test-secret", func() time.Time { return now })
	valid, err := issuer.IssueToken(user.User{ID: 42})
	require.Nil(t, err)

	noSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(NOW.Add(time.Hour)),
	}).SignedString([]byte("test-secret"))
	require.Nil(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject: "42",
	}).SignedString([]byte("test-secret"))
	require.Nil(t, err)

	cases := []struct {
		id     string
		parser *JWT
		token  user.AuthToken
	}{
		{id: "garbage", parser: issuer, token: "not-a-token"},
		{id: "other secret", parser: NewJWT("other-secret", func() time.Time { return NOW }), token: valid},
		{
			id:     "expired",
			parser: NewJWT("test-secret", func() time.Time { return NOW.Add(TOKEN_TTL + time.Minute) }),
			token:  valid,
		},
		{id: "no subject", parser: issuer, token: user.AuthToken(noSubject)},
		{id: "no expiry", parser: issuer, token: user.AuthToken(noExpiry)},
	}

	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			_, err := testcase.parser.ParseToken(testcase.token)
			require.ErrorIs(t, err, user.ErrInvalidAuthToken)
		})
	}
}

func TestNoneAlgorithmRejected(t *testing.T) {
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   "42",
		ExpiresAt: jwt.NewNumericDate(NOW.Add(time.Hour)),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.Nil(t, err)

	_, err = NewJWT("test-secret", func() time.Time { return NOW }).ParseToken(user.AuthToken(unsigned))

	require.ErrorIs(t, err, user.ErrInvalidAuthToken)
}
