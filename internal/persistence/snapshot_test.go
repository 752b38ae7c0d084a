package persistence

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/abgdnv/storefront/internal/catalog"
	"github.com/abgdnv/storefront/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func Test_FileKV(t *testing.T) {
	// state dir does not exist yet; first Set must create it
	kv := NewFileKV(filepath.Join(t.TempDir(), "state"))

	_, ok, err := kv.Get("missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, kv.Set("theme", []byte("true")))
	data, ok, err := kv.Get("theme")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "true", string(data))

	// keys are independent
	require.NoError(t, kv.Set("state", []byte("{}")))
	data, _, _ = kv.Get("theme")
	assert.Equal(t, "true", string(data))

	require.NoError(t, kv.Delete("theme"))
	_, ok, err = kv.Get("theme")
	require.NoError(t, err)
	assert.False(t, ok)
	// deleting an absent key is fine
	require.NoError(t, kv.Delete("theme"))
}

func Test_SnapshotStore_RoundTrip(t *testing.T) {
	// given
	gw := NewSnapshotStore(NewFileKV(t.TempDir()), testLogger())
	snap := Snapshot{
		Cart:     []store.CartLine{{ProductID: "p1", Quantity: 2}, {ProductID: "p2", Quantity: 1}},
		Wishlist: []string{"p3", "p1"},
		Orders: []store.Order{
			{
				ID: "o1",
				Items: []store.CartItem{
					{Product: testProduct("p1", 12999), Quantity: 2},
				},
				Total:     25998,
				Status:    store.StatusPending,
				CreatedAt: time.Date(2026, 8, 1, 10, 30, 0, 0, time.UTC),
				Customer: store.CustomerInfo{
					Name: "Jo Doe", Email: "jo@example.com", Phone: "555",
					Address: "1 Main St", City: "Springfield", PostalCode: "12345",
				},
			},
			{
				ID:        "o2",
				Status:    store.StatusCompleted,
				CreatedAt: time.Date(2026, 8, 2, 9, 0, 0, 0, time.UTC),
			},
		},
	}

	// when
	require.NoError(t, gw.Save(snap))
	got := gw.Load()

	// then: structural equality, order of orders preserved
	assert.Equal(t, snap, got)
}

func Test_SnapshotStore_AbsentFallsBackToEmpty(t *testing.T) {
	gw := NewSnapshotStore(NewFileKV(t.TempDir()), testLogger())
	assert.Equal(t, Snapshot{}, gw.Load())
}

func Test_SnapshotStore_CorruptFallsBackToEmpty(t *testing.T) {
	// given: a snapshot file with garbage content
	dir := t.TempDir()
	kv := NewFileKV(dir)
	require.NoError(t, kv.Set(SnapshotKey, []byte("{not json")))

	// when
	gw := NewSnapshotStore(kv, testLogger())
	got := gw.Load()

	// then: empty defaults, no error surfaced
	assert.Equal(t, Snapshot{}, got)
	// the damaged file is still there; the next Save overwrites it
	_, err := os.Stat(filepath.Join(dir, SnapshotKey+".json"))
	assert.NoError(t, err)
}

func Test_SnapshotStore_SaveOverwrites(t *testing.T) {
	gw := NewSnapshotStore(NewFileKV(t.TempDir()), testLogger())
	require.NoError(t, gw.Save(Snapshot{Wishlist: []string{"p1"}}))
	require.NoError(t, gw.Save(Snapshot{Wishlist: []string{"p2"}}))
	assert.Equal(t, []string{"p2"}, gw.Load().Wishlist)
}

func testProduct(id string, price int64) catalog.Product {
	return catalog.Product{
		ID:       id,
		Name:     "Product " + id,
		Price:    price,
		Category: catalog.CategoryElectronics,
		Rating:   4.5,
		Stock:    10,
	}
}
