package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Wishlist_ToggleIsAnInvolution(t *testing.T) {
	w := NewWishlist(testCatalog())

	// first toggle adds
	assert.True(t, w.Toggle("p1"))
	assert.True(t, w.Contains("p1"))

	// second toggle removes, restoring the prior state
	assert.False(t, w.Toggle("p1"))
	assert.False(t, w.Contains("p1"))

	// third toggle adds again
	assert.True(t, w.Toggle("p1"))
	assert.True(t, w.Contains("p1"))
}

func Test_Wishlist_AddAndRemove(t *testing.T) {
	w := NewWishlist(testCatalog())

	assert.True(t, w.Add("p1"))
	// duplicate add is a refusal, not an error
	assert.False(t, w.Add("p1"))
	assert.Equal(t, []string{"p1"}, w.IDs())

	assert.True(t, w.Remove("p1"))
	assert.False(t, w.Remove("p1"))
	assert.Empty(t, w.IDs())
}

func Test_Wishlist_PreservesInsertionOrder(t *testing.T) {
	w := NewWishlist(testCatalog())
	w.Add("p2")
	w.Add("p1")
	w.Add("p3")
	w.Remove("p1")
	w.Add("p1")

	assert.Equal(t, []string{"p2", "p3", "p1"}, w.IDs())
}

func Test_Wishlist_ProductsDropsStaleIDs(t *testing.T) {
	// given: a wishlist rehydrated with an id no longer in the catalog
	w := NewWishlist(testCatalog())
	w.Restore([]string{"p1", "removed-product", "p2"})

	// when
	products := w.Products()

	// then: the stale id is silently dropped from the view
	require.Len(t, products, 2)
	assert.Equal(t, "p1", products[0].ID)
	assert.Equal(t, "p2", products[1].ID)
	// but it stays in the raw id list
	assert.Equal(t, []string{"p1", "removed-product", "p2"}, w.IDs())
}

func Test_Wishlist_RestoreDedupes(t *testing.T) {
	w := NewWishlist(testCatalog())
	w.Restore([]string{"p1", "p2", "p1", "", "p2"})
	assert.Equal(t, []string{"p1", "p2"}, w.IDs())
}
