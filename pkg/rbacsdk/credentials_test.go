package rbacsdk

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemoryCredentialsLifecycle(t *testing.T) {
	t.Parallel()

	store := NewMemoryCredentials()

	t.Run("empty store", func(t *testing.T) {
		require.False(t, store.IsAuthenticated())
		_, ok := store.Token()
		require.False(t, ok)
		_, ok = store.User()
		require.False(t, ok)
	})

	t.Run("set then read", func(t *testing.T) {
		require.NoError(t, store.Set("tok-1", User{ID: 1, Username: "a"}))

		token, ok := store.Token()
		require.True(t, ok)
		require.Equal(t, "tok-1", token)

		user, ok := store.User()
		require.True(t, ok)
		require.Equal(t, "a", user.Username)
		require.True(t, store.IsAuthenticated())
	})

	t.Run("set replaces atomically", func(t *testing.T) {
		require.NoError(t, store.Set("tok-2", User{ID: 2, Username: "b"}))

		token, _ := store.Token()
		user, _ := store.User()
		require.Equal(t, "tok-2", token)
		require.Equal(t, "b", user.Username)
	})

	t.Run("clear is idempotent", func(t *testing.T) {
		require.NoError(t, store.Clear())
		require.False(t, store.IsAuthenticated())
		require.NoError(t, store.Clear())
		require.False(t, store.IsAuthenticated())
	})
}

// IsAuthenticated must reflect the most recent Set or Clear, with no lost
// writes, for any interleaving.
func TestMemoryCredentialsLastWriteWins(t *testing.T) {
	t.Parallel()

	store := NewMemoryCredentials()

	for i := range 100 {
		if i%2 == 0 {
			require.NoError(t, store.Set(fmt.Sprintf("tok-%d", i), User{ID: int64(i)}))
			require.True(t, store.IsAuthenticated())
			token, ok := store.Token()
			require.True(t, ok)
			require.Equal(t, fmt.Sprintf("tok-%d", i), token)
		} else {
			require.NoError(t, store.Clear())
			require.False(t, store.IsAuthenticated())
		}
	}
}

func TestMemoryCredentialsConcurrentAccess(t *testing.T) {
	t.Parallel()

	store := NewMemoryCredentials()

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = store.Set(fmt.Sprintf("tok-%d", i), User{ID: int64(i)})
		}()
		go func() {
			defer wg.Done()
			// Readers racing writers; the race detector flags any unguarded
			// state here.
			store.Token()
			store.User()
			store.IsAuthenticated()
		}()
	}
	wg.Wait()

	require.True(t, store.IsAuthenticated())
}
