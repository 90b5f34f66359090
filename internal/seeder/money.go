package seeder

import (
	"github.com/Lumos-Labs-HQ/whseed/internal/types"
	"github.com/shopspring/decimal"
)

// TaxRate applied to the discounted order subtotal.
var TaxRate = decimal.RequireFromString("0.08")

// Every monetary value is rounded to cents where it is computed, so
// aggregates are sums of already rounded line values.
const moneyPlaces = 2

func roundMoney(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(moneyPlaces)
}

func mulRound(amount decimal.Decimal, factor float64) decimal.Decimal {
	return amount.Mul(decimal.NewFromFloat(factor)).Round(moneyPlaces)
}

// NewLineItem derives the line subtotal, discount total and total.
func NewLineItem(orderID, productID int64, quantity int, unitPrice, unitDiscount decimal.Decimal) types.OrderItem {
	qty := decimal.NewFromInt(int64(quantity))
	subtotal := unitPrice.Mul(qty).Round(moneyPlaces)
	discount := unitDiscount.Mul(qty).Round(moneyPlaces)

	return types.OrderItem{
		OrderID:           orderID,
		ProductID:         productID,
		Quantity:          quantity,
		UnitPrice:         unitPrice,
		UnitDiscount:      unitDiscount,
		LineSubtotal:      subtotal,
		LineDiscountTotal: discount,
		LineTotal:         subtotal.Sub(discount).Round(moneyPlaces),
	}
}

// ComputeTotals aggregates an order's lines. The taxable amount floors at zero.
func ComputeTotals(items []types.OrderItem, shipping decimal.Decimal) types.OrderTotals {
	subtotal := decimal.Zero
	discount := decimal.Zero
	for _, it := range items {
		subtotal = subtotal.Add(it.LineSubtotal)
		discount = discount.Add(it.LineDiscountTotal)
	}
	subtotal = subtotal.Round(moneyPlaces)
	discount = discount.Round(moneyPlaces)

	taxable := decimal.Max(subtotal.Sub(discount), decimal.Zero)
	tax := taxable.Mul(TaxRate).Round(moneyPlaces)
	shipping = shipping.Round(moneyPlaces)

	return types.OrderTotals{
		Subtotal: subtotal,
		Tax:      tax,
		Shipping: shipping,
		Discount: discount,
		Total:    taxable.Add(tax).Add(shipping).Round(moneyPlaces),
	}
}
