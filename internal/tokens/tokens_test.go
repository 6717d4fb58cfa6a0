package tokens

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-jwt-secret")

func TestService_IssueAndVerify(t *testing.T) {
	t.Parallel()

	svc := NewService(testSecret)
	token, exp, err := svc.Issue(42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Verify(token)
	require.NoError(t, err)

	assert.EqualValues(t, 42, claims.UserID)
	assert.Equal(t, "42", claims.Subject)
	assert.NotEmpty(t, claims.ID)
	require.NotNil(t, claims.IssuedAt)
	require.NotNil(t, claims.ExpiresAt)
	assert.Equal(t, TTL, claims.ExpiresAt.Sub(claims.IssuedAt.Time))
	assert.WithinDuration(t, exp, claims.ExpiresAt.Time, 0)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)
}

func TestService_UniqueTokenIDs(t *testing.T) {
	t.Parallel()

	svc := NewService(testSecret)
	t1, _, err := svc.Issue(1)
	require.NoError(t, err)
	t2, _, err := svc.Issue(1)
	require.NoError(t, err)
	assert.NotEqual(t, t1, t2)
}

func TestService_Verify_Expired(t *testing.T) {
	t.Parallel()

	issuer := NewService(testSecret)
	issuer.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, _, err := issuer.Issue(7)
	require.NoError(t, err)

	_, err = NewService(testSecret).Verify(token)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExpired)
}

func TestService_Verify_ExpiresExactlyAfterTTL(t *testing.T) {
	t.Parallel()

	base := time.Now().UTC().Truncate(time.Second)
	svc := NewService(testSecret)
	svc.now = func() time.Time { return base }
	token, _, err := svc.Issue(7)
	require.NoError(t, err)

	svc.now = func() time.Time { return base.Add(TTL - time.Second) }
	_, err = svc.Verify(token)
	require.NoError(t, err)

	svc.now = func() time.Time { return base.Add(TTL + time.Second) }
	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, ErrExpired)
}

func TestService_Verify_WrongSecret(t *testing.T) {
	t.Parallel()

	token, _, err := NewService([]byte("secret-1")).Issue(1)
	require.NoError(t, err)

	_, err = NewService([]byte("secret-2")).Verify(token)
	assert.ErrorIs(t, err, ErrSignature)
}

func TestService_Verify_WrongAlgorithm(t *testing.T) {
	t.Parallel()

	claims := AccessClaims{
		UserID: 1,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString(testSecret)
	require.NoError(t, err)

	_, err = NewService(testSecret).Verify(token)
	assert.ErrorIs(t, err, ErrSignature)
}

func TestService_Verify_Malformed(t *testing.T) {
	t.Parallel()

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, AccessClaims{UserID: 1}).SignedString(testSecret)
	require.NoError(t, err)

	noUser, err := jwt.NewWithClaims(jwt.SigningMethodHS256, AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}).SignedString(testSecret)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "garbage", token: "not-a-valid-jwt"},
		{name: "two segments", token: "abc.def"},
		{name: "missing exp", token: noExp},
		{name: "missing user", token: noUser},
	}

	svc := NewService(testSecret)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Verify(tt.token)
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestService_FailsClosedWithoutSecret(t *testing.T) {
	t.Parallel()

	valid, _, err := NewService(testSecret).Issue(1)
	require.NoError(t, err)

	svc := NewService(nil)

	_, _, err = svc.Issue(1)
	assert.ErrorIs(t, err, ErrNoSecret)

	_, err = svc.Verify(valid)
	assert.ErrorIs(t, err, ErrNoSecret)
}

func TestService_Issue_RequiresUser(t *testing.T) {
	t.Parallel()

	_, _, err := NewService(testSecret).Issue(0)
	assert.Error(t, err)
}
