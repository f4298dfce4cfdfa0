package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	password := "mySecretPassword123"
	hash, err := HashPassword(password)

	require.NoError(t, err)
	require.NotEmpty(t, hash)
	require.NotEqual(t, password, hash)
}

func TestCheckPasswordHash(t *testing.T) {
	password := "mySecretPassword123"
	hash, err := HashPassword(password)
	require.NoError(t, err)

	require.True(t, CheckPasswordHash(password, hash), "Password should match the hash")
	require.False(t, CheckPasswordHash("wrongPassword", hash), "Wrong password should not match the hash")
	require.False(t, CheckPasswordHash(password, "not-a-bcrypt-hash"))
}

func TestGenerateAndVerifyJWT(t *testing.T) {
	secret := "my_super_secret_key_for_testing"

	tokenString, expiresAt, err := GenerateJWT("admin", secret)
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)
	require.WithinDuration(t, time.Now().Add(TokenTTL), expiresAt, 5*time.Second)

	claims, err := VerifyJWT(tokenString, secret)
	require.NoError(t, err)
	require.NotNil(t, claims)
	require.Equal(t, "admin", claims.Username)
	require.Equal(t, tokenIssuer, claims.Issuer)
	require.WithinDuration(t, expiresAt, claims.ExpiresAt.Time, time.Second)

	_, err = VerifyJWT(tokenString, "wrong_secret")
	require.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)

	claimsExpired := &AppClaims{
		Username: "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-1 * time.Minute)),
		},
	}
	tokenStringExpired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claimsExpired).SignedString([]byte(secret))
	require.NoError(t, err)

	_, err = VerifyJWT(tokenStringExpired, secret)
	require.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestVerifyJWT_RejectsForeignIssuer(t *testing.T) {
	secret := "secret"
	claims := &AppClaims{
		Username: "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "someone-else",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)

	_, err = VerifyJWT(tokenString, secret)
	require.ErrorIs(t, err, jwt.ErrTokenInvalidIssuer)
}
