package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func Test_Load_Success(t *testing.T) {
	// given
	path := writeCatalog(t, `
products:
  - id: "p1"
    name: "Headphones"
    description: "noise cancelling"
    price: 12999
    originalPrice: 15999
    category: "electronics"
    rating: 4.6
    reviews: 1284
    glyph: "H"
    stock: 15
  - id: "p2"
    name: "T-Shirt"
    price: 1999
    category: "clothing"
    rating: 4.1
    reviews: 432
    stock: 120
`)

	// when
	c, err := Load(path)

	// then
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())
	p, ok := c.ByID("p1")
	require.True(t, ok)
	assert.Equal(t, int64(12999), p.Price)
	require.NotNil(t, p.OriginalPrice)
	assert.Equal(t, int64(15999), *p.OriginalPrice)
	p2, ok := c.ByID("p2")
	require.True(t, ok)
	assert.Nil(t, p2.OriginalPrice)
}

func Test_Load_Failures(t *testing.T) {
	testCases := []struct {
		name    string
		content string
	}{
		{
			name:    "empty product list",
			content: "products: []\n",
		},
		{
			name: "unknown category",
			content: `
products:
  - id: "p1"
    name: "Widget"
    price: 100
    category: "gadgets"
    rating: 4.0
    stock: 5
`,
		},
		{
			name: "duplicate product id",
			content: `
products:
  - id: "p1"
    name: "Widget"
    price: 100
    category: "home"
    rating: 4.0
    stock: 5
  - id: "p1"
    name: "Widget Again"
    price: 200
    category: "home"
    rating: 4.0
    stock: 5
`,
		},
		{
			name: "original price not above price",
			content: `
products:
  - id: "p1"
    name: "Widget"
    price: 100
    originalPrice: 100
    category: "home"
    rating: 4.0
    stock: 5
`,
		},
		{
			name: "rating out of range",
			content: `
products:
  - id: "p1"
    name: "Widget"
    price: 100
    category: "home"
    rating: 5.5
    stock: 5
`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeCatalog(t, tc.content))
			assert.Error(t, err)
		})
	}
}

func Test_Load_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
