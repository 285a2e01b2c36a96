package ports

import (
	"context"
	"testing"
	"time"

	"github.com/inkforge/inkforge/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunStateStoreContract verifies that a StateStore implementation adheres to
// the interface contract. Adapter test suites call this against their store.
func RunStateStoreContract(t *testing.T, store StateStore) {
	ctx := context.Background()
	sessionID := "contract-session-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		state := domain.NewState("start", nil)
		state.SessionID = sessionID
		state.Vars["gold"] = 42.0
		state.Vars["name"] = "Hero"

		err := store.Save(ctx, sessionID, state)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, state.CurrentSceneID, loaded.CurrentSceneID)
		assert.Equal(t, "Hero", loaded.Vars["name"])
		// JSON persistence turns numbers into float64; only require presence
		// and numeric equality after coercion.
		assert.EqualValues(t, 42, loaded.Vars["gold"])
		assert.Equal(t, state.History, loaded.History)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("Stored state is isolated", func(t *testing.T) {
		state := domain.NewState("start", nil)
		state.Vars["gold"] = 1.0
		require.NoError(t, store.Save(ctx, sessionID, state))

		// Mutating the caller's copy must not leak into the store.
		state.Vars["gold"] = 99.0

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		assert.EqualValues(t, 1, loaded.Vars["gold"])
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, sessionID, domain.NewState("start", nil)))

		err := store.Delete(ctx, sessionID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound, "Load after Delete should return ErrSessionNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := sessionID + "-1"
		id2 := sessionID + "-2"
		_ = store.Save(ctx, id1, domain.NewState("start", nil))
		_ = store.Save(ctx, id2, domain.NewState("start", nil))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		sessions, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, sessions, id1)
		assert.Contains(t, sessions, id2)
	})
}
