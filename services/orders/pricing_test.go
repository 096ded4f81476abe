package main

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCartTotal(t *testing.T) {
	// Arrange
	items := map[int64]CartLineItem{
		1: {ProductID: 1, UnitPrice: decimal.NewFromInt(10), Quantity: 2, IsOrderable: true},
		2: {ProductID: 2, UnitPrice: decimal.NewFromInt(5), Quantity: 100, IsOrderable: false},
	}

	// Act
	total := CartTotal(items)

	// Assert
	assert.True(t, total.Equal(decimal.NewFromInt(20)),
		"expected total 20, got %s", total.String())
}

func TestCartTotal_IgnoresNonOrderablePriceAndQuantity(t *testing.T) {
	// Arrange
	base := map[int64]CartLineItem{
		1: {ProductID: 1, UnitPrice: decimal.NewFromFloat(9.99), Quantity: 3, IsOrderable: true},
		2: {ProductID: 2, UnitPrice: decimal.NewFromInt(1), Quantity: 1, IsOrderable: false},
	}
	inflated := map[int64]CartLineItem{
		1: base[1],
		2: {ProductID: 2, UnitPrice: decimal.NewFromInt(100000), Quantity: 9999, IsOrderable: false},
	}

	// Act & Assert
	assert.True(t, CartTotal(base).Equal(CartTotal(inflated)))
}

func TestCartTotal_EmptyCart(t *testing.T) {
	assert.True(t, CartTotal(map[int64]CartLineItem{}).Equal(decimal.Zero))
}

func TestCartTotal_AllOrderable(t *testing.T) {
	// Arrange
	items := map[int64]CartLineItem{
		1: {ProductID: 1, UnitPrice: decimal.NewFromFloat(2.50), Quantity: 4, IsOrderable: true},
		2: {ProductID: 2, UnitPrice: decimal.NewFromFloat(1.25), Quantity: 2, IsOrderable: true},
	}

	// Act
	total := CartTotal(items)

	// Assert
	assert.True(t, total.Equal(decimal.NewFromFloat(12.50)),
		"expected total 12.50, got %s", total.String())
}
