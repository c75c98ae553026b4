package auth_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/postoffice/email-mcp/internal/auth"
)

func TestStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.json")
	store := auth.NewStore(path)

	rec := &auth.TokenRecord{
		AccessToken:  "access-abc",
		RefreshToken: "refresh-def",
		Expiry:       time.Now().Add(time.Hour).UTC().Truncate(time.Second),
		Scopes:       []string{"https://www.googleapis.com/auth/gmail.modify"},
	}

	require.NoError(t, store.Save(rec))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, rec, loaded)
}

func TestStoreLoadAbsent(t *testing.T) {
	store := auth.NewStore(filepath.Join(t.TempDir(), "missing.json"))

	rec, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestStoreLoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	store := auth.NewStore(path)

	_, err := store.Load()
	require.Error(t, err)

	var storageErr *auth.StorageError
	require.True(t, errors.As(err, &storageErr))
	assert.Equal(t, path, storageErr.Path)
}

func TestStoreSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	store := auth.NewStore(filepath.Join(dir, "token.json"))

	require.NoError(t, store.Save(&auth.TokenRecord{AccessToken: "a", Expiry: time.Now()}))
	require.NoError(t, store.Save(&auth.TokenRecord{AccessToken: "b", Expiry: time.Now()}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "token.json", entries[0].Name())
}

func TestTokenRecordPredicates(t *testing.T) {
	cases := []struct {
		name        string
		rec         *auth.TokenRecord
		valid       bool
		refreshable bool
	}{
		{
			name: "unexpired with refresh token",
			rec: &auth.TokenRecord{
				AccessToken:  "a",
				RefreshToken: "r",
				Expiry:       time.Now().Add(time.Hour),
			},
			valid:       true,
			refreshable: true,
		},
		{
			name: "expired with refresh token",
			rec: &auth.TokenRecord{
				AccessToken:  "a",
				RefreshToken: "r",
				Expiry:       time.Now().Add(-time.Hour),
			},
			valid:       false,
			refreshable: true,
		},
		{
			name: "unexpired without refresh token",
			rec: &auth.TokenRecord{
				AccessToken: "a",
				Expiry:      time.Now().Add(time.Hour),
			},
			valid:       true,
			refreshable: false,
		},
		{
			name:        "empty access token",
			rec:         &auth.TokenRecord{Expiry: time.Now().Add(time.Hour)},
			valid:       false,
			refreshable: false,
		},
		{
			name:        "nil record",
			rec:         nil,
			valid:       false,
			refreshable: false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.valid, tc.rec.Valid())
			assert.Equal(t, tc.refreshable, tc.rec.Refreshable())
		})
	}
}
