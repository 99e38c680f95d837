package auth

import (
	"context"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKeyHex = "707172737475767778797a7b7c7d7e7f808182838485868788898a8b8c8d8e8f"

func TestTokenService_RoundTrip(t *testing.T) {
	svc, err := NewTokenService(testKeyHex, time.Hour)
	require.NoError(t, err)

	token, err := svc.GenerateAccessToken("user-1")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(token, "v4.local."))

	claims, err := svc.VerifyAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, tokenIssuer, claims.Issuer)
	assert.True(t, strings.HasPrefix(claims.TokenID, "tok-"))

	subject, err := svc.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", subject)
}

func TestTokenService_RejectsExpired(t *testing.T) {
	svc, err := NewTokenService(testKeyHex, -time.Minute)
	require.NoError(t, err)

	token, err := svc.GenerateAccessToken("user-1")
	require.NoError(t, err)

	_, err = svc.VerifyAccessToken(token)
	assert.Error(t, err)
}

func TestTokenService_RejectsOtherKey(t *testing.T) {
	a, err := NewTokenService(testKeyHex, time.Hour)
	require.NoError(t, err)
	b, err := NewTokenService(strings.Repeat("ab", 32), time.Hour)
	require.NoError(t, err)

	token, err := a.GenerateAccessToken("user-1")
	require.NoError(t, err)

	_, err = b.VerifyAccessToken(token)
	assert.Error(t, err)
}

func TestNewTokenService_InvalidKey(t *testing.T) {
	_, err := NewTokenService("abc", time.Hour)
	assert.Error(t, err)

	_, err = NewTokenService(strings.Repeat("zz", 32), time.Hour)
	assert.Error(t, err)
}

func TestGenerateAccessToken_EmptySubject(t *testing.T) {
	svc, err := NewTokenService(testKeyHex, time.Hour)
	require.NoError(t, err)

	_, err = svc.GenerateAccessToken("")
	assert.Error(t, err)
}

func signJWT(t *testing.T, method jwt.SigningMethod, key any, claims jwt.RegisteredClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return s
}

func TestJWTVerifier(t *testing.T) {
	v, err := NewJWTVerifier("s3cret", "https://idp.example")
	require.NoError(t, err)
	ctx := context.Background()

	valid := jwt.RegisteredClaims{
		Subject:   "user-9",
		Issuer:    "https://idp.example",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}

	subject, err := v.Verify(ctx, signJWT(t, jwt.SigningMethodHS256, []byte("s3cret"), valid))
	require.NoError(t, err)
	assert.Equal(t, "user-9", subject)

	_, err = v.Verify(ctx, signJWT(t, jwt.SigningMethodHS256, []byte("other"), valid))
	assert.Error(t, err, "wrong secret")

	_, err = v.Verify(ctx, signJWT(t, jwt.SigningMethodHS512, []byte("s3cret"), valid))
	assert.Error(t, err, "wrong algorithm")

	wrongIssuer := valid
	wrongIssuer.Issuer = "https://evil.example"
	_, err = v.Verify(ctx, signJWT(t, jwt.SigningMethodHS256, []byte("s3cret"), wrongIssuer))
	assert.Error(t, err, "wrong issuer")

	expired := valid
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))
	_, err = v.Verify(ctx, signJWT(t, jwt.SigningMethodHS256, []byte("s3cret"), expired))
	assert.Error(t, err, "expired")

	noSubject := valid
	noSubject.Subject = ""
	_, err = v.Verify(ctx, signJWT(t, jwt.SigningMethodHS256, []byte("s3cret"), noSubject))
	assert.Error(t, err, "missing subject")
}

func TestNewJWTVerifier_EmptySecret(t *testing.T) {
	_, err := NewJWTVerifier("", "")
	assert.Error(t, err)
}

func TestChain(t *testing.T) {
	paseto, err := NewTokenService(testKeyHex, time.Hour)
	require.NoError(t, err)
	jwtv, err := NewJWTVerifier("s3cret", "")
	require.NoError(t, err)

	chain := Chain{paseto, jwtv}
	ctx := context.Background()

	pasetoToken, err := paseto.GenerateAccessToken("user-1")
	require.NoError(t, err)
	subject, err := chain.Verify(ctx, pasetoToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", subject)

	jwtToken := signJWT(t, jwt.SigningMethodHS256, []byte("s3cret"), jwt.RegisteredClaims{
		Subject:   "user-2",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	subject, err = chain.Verify(ctx, jwtToken)
	require.NoError(t, err)
	assert.Equal(t, "user-2", subject)

	_, err = chain.Verify(ctx, "garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestSubjectContext(t *testing.T) {
	_, ok := SubjectFrom(context.Background())
	assert.False(t, ok)

	_, ok = SubjectFrom(WithSubject(context.Background(), ""))
	assert.False(t, ok)

	subject, ok := SubjectFrom(WithSubject(context.Background(), "user-1"))
	assert.True(t, ok)
	assert.Equal(t, "user-1", subject)
}

func TestResolveKey(t *testing.T) {
	dir := t.TempDir()

	configured, err := ResolveKey(testKeyHex, dir)
	require.NoError(t, err)
	assert.Equal(t, testKeyHex, hex.EncodeToString(configured))

	generated, err := ResolveKey("", dir)
	require.NoError(t, err)
	assert.Len(t, generated, keyBytesSize)

	info, err := os.Stat(filepath.Join(dir, keyFileName))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	reloaded, err := ResolveKey("", dir)
	require.NoError(t, err)
	assert.Equal(t, generated, reloaded)

	_, err = ResolveKey("nothex", dir)
	assert.Error(t, err)
}
