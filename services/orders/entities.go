package main

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order representa um pedido no sistema
type Order struct {
	ID              string          `json:"id" db:"id"`
	UserID          string          `json:"user_id,omitempty" db:"user_id"`
	GuestEmail      string          `json:"guest_email,omitempty" db:"guest_email"`
	PaymentMethodID int64           `json:"payment_method_id" db:"payment_method_id"`
	Total           decimal.Decimal `json:"total" db:"total"`
	Status          string          `json:"status" db:"status"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at" db:"updated_at"`
	LineItems       []OrderLineItem `json:"line_items,omitempty"`
}

// NewOrder cria uma nova instância de Order com o status inicial fixo
func NewOrder(id, userID, guestEmail string, paymentMethodID int64, total decimal.Decimal) *Order {
	return &Order{
		ID:              id,
		UserID:          userID,
		GuestEmail:      guestEmail,
		PaymentMethodID: paymentMethodID,
		Total:           total,
		Status:          OrderStatusProcessing,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}
}

// OrderLineItem representa um item persistido de um pedido.
// A identidade é composta (order_id, product_id); o preço unitário é
// capturado no momento do pedido.
type OrderLineItem struct {
	OrderID   string          `json:"order_id" db:"order_id"`
	ProductID int64           `json:"product_id" db:"product_id"`
	Quantity  int             `json:"quantity" db:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price" db:"unit_price"`
}

// CartLineItem representa um item do carrinho durante a validação.
// IsOrderable é sempre calculado no servidor, nunca vem do cliente.
type CartLineItem struct {
	ProductID   int64           `json:"product_id"`
	Title       string          `json:"title"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
	IsOrderable bool            `json:"is_orderable"`
}

// Product representa a visão do catálogo necessária para validar um item
type Product struct {
	ID               int64           `json:"id" db:"id"`
	Title            string          `json:"title" db:"title"`
	Price            decimal.Decimal `json:"price" db:"price"`
	Stock            int             `json:"stock" db:"stock"`
	MaxOrderQuantity int             `json:"max_order_quantity" db:"max_order_quantity"`
}

// OrderStatus representa os possíveis status de um pedido.
// As transições após a criação pertencem ao fulfillment; aqui só é
// atribuído o status inicial.
const (
	OrderStatusProcessing    = "processing"
	OrderStatusShipped       = "shipped"
	OrderStatusAtPickupPoint = "at_pickup_point"
	OrderStatusCompleted     = "completed"
	OrderStatusCancelled     = "cancelled"
)
