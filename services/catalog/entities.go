package main

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa um produto do catálogo
type Product struct {
	ID               int64           `json:"id" db:"id"`
	Title            string          `json:"title" db:"title"`
	Description      string          `json:"description" db:"description"`
	Price            decimal.Decimal `json:"price" db:"price"`
	Stock            int             `json:"stock" db:"stock"`
	MaxOrderQuantity int             `json:"max_order_quantity" db:"max_order_quantity"`
	ImageKeys        []string        `json:"image_keys" db:"image_keys"`
	CreatedAt        time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at" db:"updated_at"`
}

// NewProduct cria uma nova instância de Product
func NewProduct(title, description string, price decimal.Decimal, stock, maxOrderQty int, imageKeys []string) *Product {
	return &Product{
		Title:            title,
		Description:      description,
		Price:            price,
		Stock:            stock,
		MaxOrderQuantity: maxOrderQty,
		ImageKeys:        imageKeys,
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}
}

// PendingAsset representa um asset enviado ao object store cuja referência
// ainda não foi comitada no banco. Vive apenas durante um upsert.
type PendingAsset struct {
	Key       string `json:"key"`
	Committed bool   `json:"committed"`
}
