package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/metric"
)

var ErrEmptyCart = errors.New("cart is empty, nothing to order")

// PlaceOrderItem representa um item do carrinho enviado pelo cliente.
// Só id e quantidade são aceitos; preço e disponibilidade vêm do catálogo.
type PlaceOrderItem struct {
	ProductID int64 `json:"product_id" binding:"required"`
	Quantity  int   `json:"quantity" binding:"required,gt=0"`
}

// PlaceOrderRequest representa a requisição de criação de pedido
type PlaceOrderRequest struct {
	UserID          string           `json:"user_id"`
	GuestEmail      string           `json:"guest_email"`
	PaymentMethodID int64            `json:"payment_method_id" binding:"required"`
	Items           []PlaceOrderItem `json:"items" binding:"required"`
}

// PlaceOrderResult representa o resultado de um pedido criado, incluindo os
// itens descartados na validação para que a UI possa informar o usuário
type PlaceOrderResult struct {
	OrderID      string          `json:"order_id"`
	Total        decimal.Decimal `json:"total"`
	DroppedItems []ItemFailure   `json:"dropped_items,omitempty"`
}

// OrderUseCase contém a lógica de negócio dos pedidos
type OrderUseCase struct {
	repository           Repository
	publisher            EventPublisher
	maxItems             int
	orderPlacedCounter   metric.Int64Counter
	orderRejectedCounter metric.Int64Counter
}

// NewOrderUseCase cria uma nova instância de OrderUseCase
func NewOrderUseCase(
	repository Repository,
	publisher EventPublisher,
	maxItems int,
	orderPlacedCounter metric.Int64Counter,
	orderRejectedCounter metric.Int64Counter,
) *OrderUseCase {
	return &OrderUseCase{
		repository:           repository,
		publisher:            publisher,
		maxItems:             maxItems,
		orderPlacedCounter:   orderPlacedCounter,
		orderRejectedCounter: orderRejectedCounter,
	}
}

// PlaceOrder valida o carrinho item a item, calcula o total apenas dos itens
// aprovados e persiste pedido, itens e decrementos de estoque em uma única
// transação. Itens reprovados são reportados, nunca incluídos em silêncio.
func (uc *OrderUseCase) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (*PlaceOrderResult, error) {
	if len(req.Items) == 0 {
		return nil, ErrEmptyCart
	}
	if len(req.Items) > uc.maxItems {
		uc.orderRejectedCounter.Add(ctx, 1)
		return nil, &OrderRejectionError{Code: RejectionTooManyItems}
	}

	// Quantidades de um mesmo produto são mescladas: a identidade do item
	// persistido é (order_id, product_id)
	quantities := make(map[int64]int, len(req.Items))
	for _, item := range req.Items {
		quantities[item.ProductID] += item.Quantity
	}

	productIDs := make([]int64, 0, len(quantities))
	for id := range quantities {
		productIDs = append(productIDs, id)
	}
	// Locks sempre em ordem crescente de id para evitar deadlock entre
	// checkouts concorrentes
	sort.Slice(productIDs, func(i, j int) bool { return productIDs[i] < productIDs[j] })

	tx, err := uc.repository.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("erro ao iniciar transação: %w", err)
	}
	defer tx.Rollback()

	cart := make(map[int64]CartLineItem, len(productIDs))
	var failures []ItemFailure

	for _, productID := range productIDs {
		requested := quantities[productID]

		product, err := uc.repository.GetProductForUpdate(ctx, tx, productID)
		if errors.Is(err, ErrProductNotFound) {
			failures = append(failures, ItemFailure{ProductID: productID, Reason: VerdictProductNotFound})
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read product %d: %w", productID, err)
		}

		verdict := ValidateQuantity(requested, product.Stock, product.MaxOrderQuantity)
		cart[productID] = CartLineItem{
			ProductID:   productID,
			Title:       product.Title,
			UnitPrice:   product.Price,
			Quantity:    requested,
			IsOrderable: verdict == VerdictOK,
		}
		if verdict != VerdictOK {
			failures = append(failures, ItemFailure{ProductID: productID, Reason: verdict})
		}
	}
	sortFailures(failures)

	if len(failures) == len(productIDs) {
		log.Printf("❌ [PLACE ORDER] All %d items rejected", len(failures))
		uc.orderRejectedCounter.Add(ctx, 1)
		return nil, &OrderRejectionError{
			Code:  AggregateRejectionCode(failures),
			Items: failures,
		}
	}

	total := CartTotal(cart)
	order := NewOrder(uuid.New().String(), req.UserID, req.GuestEmail, req.PaymentMethodID, total)

	if err := uc.repository.InsertOrder(ctx, tx, order); err != nil {
		log.Printf("❌ Failed to insert order: %v", err)
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	lineItems := make([]OrderLineItem, 0, len(productIDs))
	for _, productID := range productIDs {
		item := cart[productID]
		if !item.IsOrderable {
			continue
		}
		lineItems = append(lineItems, OrderLineItem{
			OrderID:   order.ID,
			ProductID: productID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	if err := uc.repository.BulkInsertLineItems(ctx, tx, lineItems); err != nil {
		log.Printf("❌ Failed to insert line items: %v", err)
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	for _, item := range lineItems {
		// Idempotência dentro da transação: um decremento já registrado para
		// este par pedido/produto não é aplicado de novo
		exists, err := uc.repository.MovementExists(ctx, tx, order.ID, item.ProductID)
		if err != nil {
			return nil, fmt.Errorf("failed to create order: %w", err)
		}
		if exists {
			log.Printf("ℹ️ [IDEMPOTENCY] Stock already decreased for OrderID=%s ProductID=%d", order.ID, item.ProductID)
			continue
		}

		if err := uc.repository.DecreaseStock(ctx, tx, item.ProductID, order.ID, item.Quantity); err != nil {
			log.Printf("❌ Failed to decrease stock for product %d: %v", item.ProductID, err)
			return nil, fmt.Errorf("failed to create order: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("erro ao comitar pedido: %w", err)
	}

	uc.orderPlacedCounter.Add(ctx, 1)
	log.Printf("✅ [PLACE ORDER] OrderID=%s | Items=%d | Dropped=%d | Total=%s",
		order.ID, len(lineItems), len(failures), total.String())

	// O pedido já está comitado: falha na publicação é logada, não retornada
	if err := uc.publisher.PublishOrderPlaced(ctx, OrderPlacedEvent{
		OrderID:      order.ID,
		UserID:       req.UserID,
		Total:        total,
		ItemCount:    len(lineItems),
		DroppedCount: len(failures),
	}); err != nil {
		log.Printf("⚠️ Failed to publish order placed event for %s: %v", order.ID, err)
	}

	return &PlaceOrderResult{
		OrderID:      order.ID,
		Total:        total,
		DroppedItems: failures,
	}, nil
}

// GetOrder busca um pedido pelo ID
func (uc *OrderUseCase) GetOrder(ctx context.Context, orderID string) (*Order, error) {
	return uc.repository.GetOrder(ctx, orderID)
}
