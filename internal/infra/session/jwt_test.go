package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/scamshield/internal/domain/users"
)

func TestJWTIssuer_RoundTrip(t *testing.T) {
	j, err := NewJWTIssuer("test-secret", "scamshield-test", time.Hour)
	require.NoError(t, err)

	s, err := j.Issue(users.User{Email: "priya@example.com", Name: "priya"})
	require.NoError(t, err)
	assert.NotEmpty(t, s.Token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), s.ExpiresAt, 5*time.Second)

	u, err := j.Parse(s.Token)
	require.NoError(t, err)
	assert.Equal(t, "priya@example.com", u.Email)
	assert.Equal(t, "priya", u.Name)
}

func TestJWTIssuer_Expired(t *testing.T) {
	j, err := NewJWTIssuer("test-secret", "scamshield-test", time.Minute)
	require.NoError(t, err)
	j.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	s, err := j.Issue(users.User{Email: "a@b.co"})
	require.NoError(t, err)

	j.now = time.Now
	_, err = j.Parse(s.Token)
	assert.ErrorIs(t, err, users.ErrInvalidSession)
}

func TestJWTIssuer_WrongSecret(t *testing.T) {
	a, _ := NewJWTIssuer("secret-a", "scamshield", time.Hour)
	b, _ := NewJWTIssuer("secret-b", "scamshield", time.Hour)

	s, err := a.Issue(users.User{Email: "a@b.co"})
	require.NoError(t, err)

	_, err = b.Parse(s.Token)
	assert.ErrorIs(t, err, users.ErrInvalidSession)
}

func TestJWTIssuer_WrongIssuer(t *testing.T) {
	a, _ := NewJWTIssuer("secret", "one", time.Hour)
	b, _ := NewJWTIssuer("secret", "two", time.Hour)

	s, err := a.Issue(users.User{Email: "a@b.co"})
	require.NoError(t, err)

	_, err = b.Parse(s.Token)
	assert.ErrorIs(t, err, users.ErrInvalidSession)
}

func TestJWTIssuer_Garbage(t *testing.T) {
	j, _ := NewJWTIssuer("secret", "scamshield", time.Hour)

	_, err := j.Parse("not-a-token")
	assert.ErrorIs(t, err, users.ErrInvalidSession)
}

func TestNewJWTIssuer_RequiresSecret(t *testing.T) {
	_, err := NewJWTIssuer("", "scamshield", time.Hour)
	assert.Error(t, err)
}
