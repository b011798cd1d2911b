//go:build integration

package sent

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mentiond/internal/mentions/models"
	"mentiond/pkg/testutil/containers"
)

func TestRedisStore_Integration(t *testing.T) {
	rc := containers.NewRedisContainer(t)
	ctx := context.Background()
	store := NewRedis(rc.Client)

	t.Run("contains on empty post", func(t *testing.T) {
		require.NoError(t, rc.FlushAll(ctx))

		got, err := store.Contains(ctx, 1, []models.UserID{10, 20})
		require.NoError(t, err)
		assert.Equal(t, []bool{false, false}, got)
	})

	t.Run("add then contains", func(t *testing.T) {
		require.NoError(t, rc.FlushAll(ctx))

		require.NoError(t, store.Add(ctx, 1, []models.UserID{10, 30}, time.Now()))

		got, err := store.Contains(ctx, 1, []models.UserID{10, 20, 30})
		require.NoError(t, err)
		assert.Equal(t, []bool{true, false, true}, got)
	})

	t.Run("posts are keyed independently", func(t *testing.T) {
		require.NoError(t, rc.FlushAll(ctx))

		require.NoError(t, store.Add(ctx, 1, []models.UserID{10}, time.Now()))

		got, err := store.Contains(ctx, 2, []models.UserID{10})
		require.NoError(t, err)
		assert.Equal(t, []bool{false}, got)
	})

	t.Run("re-adding a member is a no-op in effect", func(t *testing.T) {
		require.NoError(t, rc.FlushAll(ctx))

		require.NoError(t, store.Add(ctx, 1, []models.UserID{10}, time.Now()))
		require.NoError(t, store.Add(ctx, 1, []models.UserID{10}, time.Now().Add(time.Minute)))

		card, err := rc.Client.ZCard(ctx, "mentions:sent:1").Result()
		require.NoError(t, err)
		assert.EqualValues(t, 1, card)
	})
}
