package cache

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"platformone/internal/cache"
	"platformone/test/internal/testutil"

	apperrors "platformone/pkg/app_errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testRdb *redis.Client

func TestMain(m *testing.M) {
	rdb, cleanup, err := testutil.SetupRedisOnly()
	if err != nil {
		log.Fatalf("Failed to initialize test redis: %v", err)
	}
	testRdb = rdb

	code := m.Run()
	cleanup()
	os.Exit(code)
}

func TestSessionStore(t *testing.T) {
	ctx := context.Background()
	store := cache.NewRedisSessionStore(testRdb, time.Minute)

	t.Run("save and get round trip", func(t *testing.T) {
		token := uuid.New().String()
		userID := uuid.New()

		require.NoError(t, store.Save(ctx, token, userID))

		got, err := store.Get(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, userID, got)
	})

	t.Run("unknown token", func(t *testing.T) {
		_, err := store.Get(ctx, uuid.New().String())
		assert.ErrorIs(t, err, apperrors.ErrSessionNotFound)
	})

	t.Run("delete invalidates the token", func(t *testing.T) {
		token := uuid.New().String()
		require.NoError(t, store.Save(ctx, token, uuid.New()))
		require.NoError(t, store.Delete(ctx, token))

		_, err := store.Get(ctx, token)
		assert.ErrorIs(t, err, apperrors.ErrSessionNotFound)
	})

	t.Run("expired token is gone", func(t *testing.T) {
		short := cache.NewRedisSessionStore(testRdb, 50*time.Millisecond)
		token := uuid.New().String()
		require.NoError(t, short.Save(ctx, token, uuid.New()))

		time.Sleep(100 * time.Millisecond)

		_, err := short.Get(ctx, token)
		assert.ErrorIs(t, err, apperrors.ErrSessionNotFound)
	})
}
