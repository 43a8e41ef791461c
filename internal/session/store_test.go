package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/justsurfingit/trackjob/internal/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var ada = &Profile{ID: 7, Name: "Ada Lovelace", Email: "ada@example.com"}

func TestLoginWithoutRememberUsesSessionTierOnly(t *testing.T) {
	durable, tier := NewMemoryStorage(), NewMemoryStorage()
	s := New(durable, tier, zap.NewNop())
	require.False(t, s.IsAuthenticated())

	require.NoError(t, s.Login("tok-1", ada, false))
	assert.True(t, s.IsAuthenticated())

	_, ok, _ := durable.Get(tokenKey)
	assert.False(t, ok, "durable tier must stay empty")
	v, ok, _ := tier.Get(tokenKey)
	assert.True(t, ok)
	assert.Equal(t, "tok-1", v)

	// A new terminal brings a fresh session tier.
	next := New(durable, NewMemoryStorage(), zap.NewNop())
	assert.False(t, next.IsAuthenticated())
	assert.Nil(t, next.Profile())
	_, err := next.Token()
	assert.ErrorIs(t, err, api.ErrNoToken)
}

func TestLoginWithRememberSurvivesNewSession(t *testing.T) {
	durable := NewMemoryStorage()
	s := New(durable, NewMemoryStorage(), zap.NewNop())
	require.NoError(t, s.Login("tok-2", ada, true))

	next := New(durable, NewMemoryStorage(), zap.NewNop())
	require.True(t, next.IsAuthenticated())
	assert.Equal(t, ada, next.Profile())

	tok, err := next.Token()
	require.NoError(t, err)
	assert.Equal(t, "tok-2", tok.AccessToken)
	assert.Equal(t, "Bearer", tok.Type())
}

func TestRestorePrefersDurableTier(t *testing.T) {
	durable, tier := NewMemoryStorage(), NewMemoryStorage()
	require.NoError(t, durable.Set(tokenKey, "durable"))
	require.NoError(t, tier.Set(tokenKey, "session"))
	require.NoError(t, tier.Set(userKey, `{"id":1,"name":"S"}`))

	s := New(durable, tier, zap.NewNop())
	tok, err := s.Token()
	require.NoError(t, err)
	assert.Equal(t, "durable", tok.AccessToken)
	assert.Nil(t, s.Profile())
}

func TestRestoreFromSessionTier(t *testing.T) {
	tier := NewMemoryStorage()
	require.NoError(t, tier.Set(tokenKey, "session"))
	require.NoError(t, tier.Set(userKey, `{"id":3,"name":"Sam","email":"sam@example.com"}`))

	s := New(NewMemoryStorage(), tier, zap.NewNop())
	require.True(t, s.IsAuthenticated())
	assert.Equal(t, &Profile{ID: 3, Name: "Sam", Email: "sam@example.com"}, s.Profile())
}

func TestUnreadableProfileIsDropped(t *testing.T) {
	tier := NewMemoryStorage()
	require.NoError(t, tier.Set(tokenKey, "session"))
	require.NoError(t, tier.Set(userKey, `{not json`))

	s := New(NewMemoryStorage(), tier, zap.NewNop())
	assert.True(t, s.IsAuthenticated())
	assert.Nil(t, s.Profile())
}

func TestLogoutClearsBothTiers(t *testing.T) {
	durable, tier := NewMemoryStorage(), NewMemoryStorage()
	require.NoError(t, durable.Set(tokenKey, "stale"))
	s := New(durable, tier, zap.NewNop())
	require.NoError(t, s.Login("fresh", ada, false))

	require.NoError(t, s.Logout())
	assert.False(t, s.IsAuthenticated())
	assert.Nil(t, s.Profile())
	for _, st := range []Storage{durable, tier} {
		_, ok, _ := st.Get(tokenKey)
		assert.False(t, ok)
		_, ok, _ = st.Get(userKey)
		assert.False(t, ok)
	}
}

func TestLoginSwitchesTier(t *testing.T) {
	durable, tier := NewMemoryStorage(), NewMemoryStorage()
	s := New(durable, tier, zap.NewNop())
	require.NoError(t, s.Login("one", ada, true))
	require.NoError(t, s.Login("two", ada, false))

	_, ok, _ := durable.Get(tokenKey)
	assert.False(t, ok)
	v, _, _ := tier.Get(tokenKey)
	assert.Equal(t, "two", v)
}

func TestSetProfile(t *testing.T) {
	durable := NewMemoryStorage()
	s := New(durable, NewMemoryStorage(), zap.NewNop())
	assert.ErrorIs(t, s.SetProfile(ada), api.ErrNoToken)

	require.NoError(t, s.Login("tok", ada, true))
	renamed := &Profile{ID: 7, Name: "Augusta Ada", Email: "ada@example.com"}
	require.NoError(t, s.SetProfile(renamed))
	assert.Equal(t, renamed, New(durable, NewMemoryStorage(), zap.NewNop()).Profile())
}

func TestFileStorage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	fs := NewFileStorage(path)

	_, ok, err := fs.Get(tokenKey)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, fs.Set(tokenKey, "abc"))
	require.NoError(t, fs.Set(userKey, `{"id":1}`))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	v, ok, err := NewFileStorage(path).Get(tokenKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "abc", v)

	require.NoError(t, fs.Remove(tokenKey))
	require.NoError(t, fs.Remove(userKey))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
	require.NoError(t, fs.Remove(tokenKey))
}

func TestFileStorageCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0o600))

	_, _, err := NewFileStorage(path).Get(tokenKey)
	assert.Error(t, err)

	// A corrupt durable tier does not block the session tier.
	tier := NewMemoryStorage()
	require.NoError(t, tier.Set(tokenKey, "ok"))
	s := New(NewFileStorage(path), tier, zap.NewNop())
	assert.True(t, s.IsAuthenticated())
}
