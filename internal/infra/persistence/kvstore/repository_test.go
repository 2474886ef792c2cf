package kvstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	domadmin "example.com/aquapure-store/internal/domain/admin"
	domcart "example.com/aquapure-store/internal/domain/cart"
	domorder "example.com/aquapure-store/internal/domain/order"
	domproduct "example.com/aquapure-store/internal/domain/product"
	"example.com/aquapure-store/internal/infra/kv"
	"example.com/aquapure-store/internal/infra/persistence/memory"
)

func TestCatalogRepository_LoadStates(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	repo := NewCatalogRepository(store)

	_, err := repo.Load(ctx)
	require.ErrorIs(t, err, domproduct.ErrCatalogNotCached)

	require.NoError(t, store.Set(ctx, kv.KeyProducts, "not json"))
	_, err = repo.Load(ctx)
	require.ErrorIs(t, err, domproduct.ErrCorruptCatalog)

	require.NoError(t, store.Set(ctx, kv.KeyProducts, `{"id":"1"}`))
	_, err = repo.Load(ctx)
	require.ErrorIs(t, err, domproduct.ErrCorruptCatalog)

	require.NoError(t, repo.Save(ctx, domproduct.DefaultProducts()))
	products, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, domproduct.DefaultProducts(), products)

	require.NoError(t, repo.Clear(ctx))
	_, err = repo.Load(ctx)
	require.ErrorIs(t, err, domproduct.ErrCatalogNotCached)
}

func TestCartRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	repo := NewCartRepository(store)

	_, err := repo.Load(ctx)
	require.ErrorIs(t, err, domcart.ErrCartNotPersisted)

	seed := domproduct.DefaultProducts()
	c := domcart.Cart{Items: []domcart.Item{
		{Product: *seed[1], Quantity: 2},
		{Product: *seed[0], Quantity: 1},
	}}
	require.NoError(t, repo.Save(ctx, c))

	raw, err := store.Get(ctx, kv.KeyCart)
	require.NoError(t, err)
	require.Contains(t, raw, `"id":"2"`)
	require.Contains(t, raw, `"quantity":2`)

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, c, loaded)
	require.Equal(t, c.Total(), loaded.Total())
}

func TestCartRepository_CorruptBlob(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.Set(ctx, kv.KeyCart, "{broken"))

	_, err := NewCartRepository(store).Load(ctx)
	require.ErrorIs(t, err, domcart.ErrCorruptCart)
}

func TestAdminRepository_Session(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	repo := NewAdminRepository(store)

	s, err := repo.LoadSession(ctx)
	require.NoError(t, err)
	require.False(t, s.LoggedIn)

	at := time.UnixMilli(1_700_000_000_123)
	require.NoError(t, repo.SaveSession(ctx, domadmin.Session{ID: "sess-1", LoggedIn: true, LoginTime: at}))

	flag, err := store.Get(ctx, kv.KeyAdminLoggedIn)
	require.NoError(t, err)
	require.Equal(t, "true", flag)

	s, err = repo.LoadSession(ctx)
	require.NoError(t, err)
	require.True(t, s.LoggedIn)
	require.Equal(t, "sess-1", s.ID)
	require.True(t, at.Equal(s.LoginTime))

	require.NoError(t, repo.ClearSession(ctx))
	s, err = repo.LoadSession(ctx)
	require.NoError(t, err)
	require.False(t, s.LoggedIn)
	_, err = store.Get(ctx, kv.KeyAdminSessionID)
	require.ErrorIs(t, err, kv.ErrNotFound)
}

func TestAdminRepository_Password(t *testing.T) {
	ctx := context.Background()
	repo := NewAdminRepository(memory.NewStore())

	_, err := repo.PasswordHash(ctx)
	require.ErrorIs(t, err, domadmin.ErrPasswordNotStored)

	require.NoError(t, repo.SetPasswordHash(ctx, "hash"))
	hash, err := repo.PasswordHash(ctx)
	require.NoError(t, err)
	require.Equal(t, "hash", hash)

	require.NoError(t, repo.ClearPassword(ctx))
	_, err = repo.PasswordHash(ctx)
	require.ErrorIs(t, err, domadmin.ErrPasswordNotStored)
}

func TestSettingsRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewSettingsRepository(memory.NewStore())

	_, err := repo.Recipient(ctx)
	require.ErrorIs(t, err, domorder.ErrRecipientNotStored)

	require.NoError(t, repo.SetRecipient(ctx, "919000000000"))
	got, err := repo.Recipient(ctx)
	require.NoError(t, err)
	require.Equal(t, "919000000000", got)

	last, err := repo.LastBackup(ctx)
	require.NoError(t, err)
	require.True(t, last.IsZero())

	at := time.UnixMilli(1_700_000_000_000)
	require.NoError(t, repo.SetLastBackup(ctx, at))
	last, err = repo.LastBackup(ctx)
	require.NoError(t, err)
	require.True(t, at.Equal(last))

	usage, err := repo.Usage(ctx)
	require.NoError(t, err)
	require.Greater(t, usage, int64(0))
}
