package seeder

import (
	"context"
	"fmt"

	"github.com/Lumos-Labs-HQ/whseed/internal/database"
)

// seedCustomers inserts n customers numbered from next and returns the next
// free sequence number.
func (s *Seeder) seedCustomers(ctx context.Context, store database.Store, n, next int) (int, error) {
	for i := 0; i < n; i++ {
		c := s.generator.Customer(next)
		if err := store.InsertCustomer(ctx, c); err != nil {
			return next, fmt.Errorf("failed to insert customer %s: %w", c.Key, err)
		}
		next++
	}
	return next, nil
}

// productsPerSlot spreads the requested count over the taxonomy, rounding up
// so every subcategory gets at least one product.
func productsPerSlot(requested int) int {
	return requested/taxonomySlots() + 1
}

func (s *Seeder) seedProducts(ctx context.Context, store database.Store, n, next int) (int, error) {
	perSlot := productsPerSlot(n)
	for _, cat := range taxonomy {
		for _, sub := range cat.Subcategories {
			for i := 0; i < perSlot; i++ {
				p := s.generator.Product(next, cat.Name, sub)
				if err := store.InsertProduct(ctx, p); err != nil {
					return next, fmt.Errorf("failed to insert product %s: %w", p.SKU, err)
				}
				next++
			}
		}
	}
	return next, nil
}
