package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newJWTer(ttl time.Duration) *JWTer {
	return &JWTer{Secret: []byte("test-secret"), Issuer: "test", TTL: ttl}
}

func TestIssueParseRoundTrip(t *testing.T) {
	j := newJWTer(time.Hour)

	tok, err := j.Issue("alice@x.com", "user")
	require.NoError(t, err)
	require.NotEmpty(t, tok)
	assert.Len(t, strings.Split(tok, "."), 3) // compact JWS framing

	claims, err := j.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "alice@x.com", claims.Email())
	assert.Equal(t, "user", claims.Role)
	assert.Equal(t, "test", claims.Issuer)
}

func TestParseExpired(t *testing.T) {
	j := newJWTer(-5 * time.Minute) // leeway 之外
	tok, err := j.Issue("alice@x.com", "user")
	require.NoError(t, err)

	_, err = j.Parse(tok)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestParseWrongSecret(t *testing.T) {
	j := newJWTer(time.Hour)
	tok, err := j.Issue("alice@x.com", "admin")
	require.NoError(t, err)

	other := &JWTer{Secret: []byte("other-secret"), Issuer: "test", TTL: time.Hour}
	_, err = other.Parse(tok)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestParseWrongIssuer(t *testing.T) {
	j := newJWTer(time.Hour)
	tok, err := j.Issue("alice@x.com", "user")
	require.NoError(t, err)

	other := &JWTer{Secret: []byte("test-secret"), Issuer: "someone-else", TTL: time.Hour}
	_, err = other.Parse(tok)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestParseMalformed(t *testing.T) {
	j := newJWTer(time.Hour)
	for _, tok := range []string{"", "garbage", "a.b.c"} {
		_, err := j.Parse(tok)
		assert.ErrorIs(t, err, ErrTokenInvalid, "token %q", tok)
	}
}
