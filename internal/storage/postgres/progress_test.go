package postgres_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/passport/internal/passport"
	"github.com/cory-johannsen/passport/internal/storage/postgres"
	"github.com/cory-johannsen/passport/internal/testutil"
)

func newRepo(t *testing.T) *postgres.ProgressRepository {
	t.Helper()
	return postgres.NewProgressRepository(testutil.NewPool(t))
}

func uniqueID(prefix string) string {
	return fmt.Sprintf("%s_%d", prefix, time.Now().UnixNano())
}

func TestProgressRepository(t *testing.T) {
	r := newRepo(t)
	ctx := context.Background()

	t.Run("load missing", func(t *testing.T) {
		p, found, err := r.Load(ctx, uniqueID("missing"))
		require.NoError(t, err)
		assert.False(t, found)
		assert.Nil(t, p)

		_, err = r.Get(ctx, uniqueID("missing"))
		assert.ErrorIs(t, err, postgres.ErrProgressNotFound)
	})

	t.Run("save then load", func(t *testing.T) {
		id := uniqueID("p")
		want := passport.Progress{"ejecutivo": true, "social": false}
		require.NoError(t, r.Save(ctx, id, want))

		got, found, err := r.Load(ctx, id)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, want, got)
	})

	t.Run("save overwrites and bumps updated_at", func(t *testing.T) {
		id := uniqueID("p")
		require.NoError(t, r.Save(ctx, id, passport.Progress{"oficios": false}))
		first, err := r.Get(ctx, id)
		require.NoError(t, err)

		require.NoError(t, r.Save(ctx, id, passport.Progress{"oficios": true}))
		second, err := r.Get(ctx, id)
		require.NoError(t, err)

		assert.Equal(t, passport.Progress{"oficios": true}, second.Progress)
		assert.Equal(t, first.CreatedAt, second.CreatedAt)
		assert.False(t, second.UpdatedAt.Before(first.UpdatedAt))
	})

	t.Run("count", func(t *testing.T) {
		before, err := r.Count(ctx)
		require.NoError(t, err)
		require.NoError(t, r.Save(ctx, uniqueID("c"), passport.Progress{}))
		after, err := r.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, before+1, after)
	})
}

func TestProgressRepository_ControllerRoundTrip(t *testing.T) {
	r := newRepo(t)
	cat := testutil.TwoWorldCatalog(t)
	ctx := context.Background()
	id := uniqueID("ctl")

	c, err := passport.New(ctx, id, cat, passport.DefaultLayout(cat), r, zaptest.NewLogger(t))
	require.NoError(t, err)
	_, err = c.AttemptUnlock(ctx, "servicio")
	require.NoError(t, err)

	resumed, err := passport.Resume(ctx, id, cat, passport.DefaultLayout(cat), r, zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.True(t, resumed.IsUnlocked("social"))
	assert.False(t, resumed.IsUnlocked("ejecutivo"))
}

func TestProgressRepository_Property_RoundTrip(t *testing.T) {
	r := newRepo(t)
	rapid.Check(t, func(rt *rapid.T) {
		id := uniqueID("prop")
		want := passport.Progress(rapid.MapOf(rapid.StringMatching(`[a-z]{1,12}`), rapid.Bool()).Draw(rt, "progress"))
		if err := r.Save(context.Background(), id, want); err != nil {
			rt.Fatalf("save: %v", err)
		}
		got, found, err := r.Load(context.Background(), id)
		if err != nil || !found {
			rt.Fatalf("load: found=%v err=%v", found, err)
		}
		if len(got) != len(want) {
			rt.Fatalf("got %d keys, want %d", len(got), len(want))
		}
		for k, v := range want {
			if got[k] != v {
				rt.Fatalf("key %q: got %v want %v", k, got[k], v)
			}
		}
	})
}

func TestConnect_MigrationsAreIdempotent(t *testing.T) {
	pc := testutil.NewPostgresContainer(t)
	ctx := context.Background()

	require.NoError(t, pc.Pool.Health(ctx, time.Second))
	require.NoError(t, pc.Pool.Progress().Save(ctx, "first", passport.Progress{"social": true}))

	again, err := postgres.Connect(ctx, pc.Config)
	require.NoError(t, err)
	defer again.Close()

	n, err := again.Progress().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
