package auth

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func TestTokenStoreLoadMissing(t *testing.T) {
	store := NewTokenStore(filepath.Join(t.TempDir(), "token.json"))

	_, err := store.Load()
	require.ErrorIs(t, err, ErrNoToken)
}

func TestTokenStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.json")
	store := NewTokenStore(path)

	want := &Credential{
		Token: oauth2.Token{
			AccessToken:  "access",
			TokenType:    "Bearer",
			RefreshToken: "refresh",
			Expiry:       time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		Scopes: Scopes,
	}
	require.NoError(t, store.Save(want))

	// Token files hold bearer material, owner-only access.
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	got, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, want.AccessToken, got.AccessToken)
	assert.Equal(t, want.RefreshToken, got.RefreshToken)
	assert.True(t, want.Expiry.Equal(got.Expiry))
	assert.Equal(t, want.Scopes, got.Scopes)
}

func TestTokenStoreLoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	_, err := NewTokenStore(path).Load()
	var serr *StoreError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "read", serr.Op)
}

func TestTokenStoreDelete(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.json")
	store := NewTokenStore(path)

	// Deleting a missing file is not an error.
	require.NoError(t, store.Delete())

	require.NoError(t, store.Save(&Credential{Token: oauth2.Token{AccessToken: "x"}}))
	require.NoError(t, store.Delete())
	_, err := store.Load()
	require.ErrorIs(t, err, ErrNoToken)
}

func TestCredentialHasScopes(t *testing.T) {
	cred := &Credential{Scopes: []string{"a", "b", "c"}}
	assert.True(t, cred.HasScopes([]string{"a", "c"}))
	assert.True(t, cred.HasScopes(nil))
	assert.False(t, cred.HasScopes([]string{"a", "d"}))
	assert.False(t, (&Credential{}).HasScopes([]string{"a"}))
}
