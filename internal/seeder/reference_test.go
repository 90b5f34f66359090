package seeder

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/Lumos-Labs-HQ/whseed/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSeeder(tx *fakeTx, seed int64) (*Seeder, *fakeAdapter) {
	adapter := &fakeAdapter{tx: tx}
	return New(adapter, types.DefaultTables(), rand.New(rand.NewSource(seed))), adapter
}

func TestProductsPerSlot(t *testing.T) {
	assert.Equal(t, 17, taxonomySlots())
	assert.Equal(t, 1, productsPerSlot(0))
	assert.Equal(t, 1, productsPerSlot(7))
	assert.Equal(t, 12, productsPerSlot(200))
}

func TestSeedProductsCoversTaxonomy(t *testing.T) {
	tx := newFakeTx(3, time.Now(), 1)
	s, _ := newTestSeeder(tx, 1)

	next, err := s.seedProducts(context.Background(), tx, 7, 1)
	require.NoError(t, err)
	assert.Equal(t, 18, next)
	require.Len(t, tx.products, 17)

	slots := map[string]bool{}
	skus := map[string]bool{}
	for _, p := range tx.products {
		slots[p.Category+"/"+p.Subcategory] = true
		skus[p.SKU] = true
	}
	assert.Len(t, slots, 17)
	assert.Len(t, skus, 17)
	assert.Equal(t, "SKU-00001", tx.products[0].SKU)
	assert.Equal(t, "Electronics", tx.products[0].Category)
	assert.Equal(t, "Toys", tx.products[16].Category)
}

func TestSeedProductsRoundsUp(t *testing.T) {
	tx := newFakeTx(3, time.Now(), 1)
	s, _ := newTestSeeder(tx, 1)

	next, err := s.seedProducts(context.Background(), tx, 200, 1)
	require.NoError(t, err)
	assert.Equal(t, 205, next)
	assert.Len(t, tx.products, 204)
}

func TestSeedCustomersThreadsCounter(t *testing.T) {
	tx := newFakeTx(3, time.Now(), 1)
	s, _ := newTestSeeder(tx, 1)

	next, err := s.seedCustomers(context.Background(), tx, 3, 10)
	require.NoError(t, err)
	assert.Equal(t, 13, next)

	var keys []string
	for _, c := range tx.customers {
		keys = append(keys, c.Key)
	}
	assert.Equal(t, []string{"CUST-00010", "CUST-00011", "CUST-00012"}, keys)
}

func TestSeedCustomersStopsOnError(t *testing.T) {
	tx := newFakeTx(3, time.Now(), 1)
	tx.failOn = "InsertCustomer"
	s, _ := newTestSeeder(tx, 1)

	next, err := s.seedCustomers(context.Background(), tx, 3, 1)
	require.ErrorIs(t, err, errInjected)
	assert.Contains(t, err.Error(), "CUST-00001")
	assert.Equal(t, 1, next)
	assert.Empty(t, tx.customers)
}
