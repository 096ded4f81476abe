package main

import (
	"time"

	"github.com/shopspring/decimal"
)

// Cart representa o carrinho de um usuário
type Cart struct {
	UserID    string     `json:"user_id"`
	Items     []CartItem `json:"items"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// CartItem representa um item do carrinho
type CartItem struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// Product representa a visão do catálogo usada na pré-visualização
type Product struct {
	ID               int64           `json:"id" db:"id"`
	Title            string          `json:"title" db:"title"`
	Price            decimal.Decimal `json:"price" db:"price"`
	Stock            int             `json:"stock" db:"stock"`
	MaxOrderQuantity int             `json:"max_order_quantity" db:"max_order_quantity"`
}

// PricedLine representa um item do carrinho com preço e disponibilidade
// calculados no servidor. IsOrderable nunca vem do carrinho armazenado.
type PricedLine struct {
	ProductID   int64           `json:"product_id"`
	Title       string          `json:"title"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
	IsOrderable bool            `json:"is_orderable"`
	Reason      string          `json:"reason,omitempty"`
}

// CartPreview representa a pré-visualização com o total a pagar, usando a
// mesma regra de exclusão aplicada na cobrança do checkout
type CartPreview struct {
	UserID string          `json:"user_id"`
	Lines  []PricedLine    `json:"lines"`
	Total  decimal.Decimal `json:"total"`
}
