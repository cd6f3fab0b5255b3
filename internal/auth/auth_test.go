package auth

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/gptgolf/assets"
	"github.com/robalobadob/gptgolf/internal/db"
)

func newTestService(t *testing.T, ttl time.Duration) *Service {
	t.Helper()
	conn, err := db.Open(filepath.Join(t.TempDir(), "golf.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	migrations, err := assets.Migrations()
	require.NoError(t, err)
	require.NoError(t, db.Migrate(conn, migrations))
	return NewService(conn, "test-secret", ttl)
}

func TestValidateSignup(t *testing.T) {
	tests := []struct {
		name, user, pass string
		ok               bool
	}{
		{"valid", "golfer_1", "password1", true},
		{"short name", "ab", "password1", false},
		{"long name", "abcdefghijklmnopqrstuvwxy", "password1", false},
		{"bad chars", "gol fer", "password1", false},
		{"short password", "golfer", "short", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSignup(tt.user, tt.pass)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestSignupLoginVerify(t *testing.T) {
	s := newTestService(t, time.Hour)
	ctx := context.Background()

	u, err := s.Signup(ctx, "  golfer ", "password1")
	require.NoError(t, err)
	assert.Equal(t, "golfer", u.Username)
	assert.NotEqual(t, "password1", u.PasswordHash)

	_, err = s.Signup(ctx, "GOLFER", "password2")
	require.ErrorIs(t, err, ErrUsernameTaken)

	_, err = s.Login(ctx, "golfer", "wrong-password")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = s.Login(ctx, "nobody", "password1")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	got, err := s.Login(ctx, "Golfer", "password1")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	tok, exp, err := s.Sign(got)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	me, err := s.Verify(ctx, tok)
	require.NoError(t, err)
	assert.Equal(t, u.ID, me.ID)

	_, err = s.Verify(ctx, tok+"x")
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_Expired(t *testing.T) {
	s := newTestService(t, -time.Minute)
	ctx := context.Background()

	u, err := s.Signup(ctx, "golfer", "password1")
	require.NoError(t, err)
	tok, _, err := s.Sign(u)
	require.NoError(t, err)

	_, err = s.Verify(ctx, tok)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_OtherSecret(t *testing.T) {
	a := newTestService(t, time.Hour)
	ctx := context.Background()
	u, err := a.Signup(ctx, "golfer", "password1")
	require.NoError(t, err)

	b := NewService(a.db, "another-secret", time.Hour)
	tok, _, err := b.Sign(u)
	require.NoError(t, err)

	_, err = a.Verify(ctx, tok)
	require.ErrorIs(t, err, ErrInvalidToken)
}
