package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrOrderNotFound   = errors.New("order not found")
)

// Repository define a interface para operações de banco de dados de pedidos
type Repository interface {
	BeginTx(ctx context.Context) (Tx, error)

	// GetProductForUpdate obtém o produto com lock pessimista (FOR UPDATE),
	// para que checagem de estoque e decremento ocorram na mesma transação
	GetProductForUpdate(ctx context.Context, tx Tx, productID int64) (*Product, error)

	// InsertOrder insere o cabeçalho do pedido
	InsertOrder(ctx context.Context, tx Tx, order *Order) error

	// BulkInsertLineItems insere todos os itens do pedido em um único statement
	BulkInsertLineItems(ctx context.Context, tx Tx, items []OrderLineItem) error

	// MovementExists verifica se já existe decremento registrado para o par
	// pedido/produto, para que um placement repetido não decremente duas vezes
	MovementExists(ctx context.Context, tx Tx, orderID string, productID int64) (bool, error)

	// DecreaseStock decrementa o estoque e registra o movimento
	DecreaseStock(ctx context.Context, tx Tx, productID int64, orderID string, quantity int) error

	// GetOrder busca um pedido pelo ID, com seus itens
	GetOrder(ctx context.Context, orderID string) (*Order, error)
}

// Tx interface para transações
type Tx interface {
	Commit() error
	Rollback() error
}

// PostgresTx implementa a interface Tx
type PostgresTx struct {
	tx pgx.Tx
}

func (t *PostgresTx) Commit() error {
	return t.tx.Commit(context.Background())
}

func (t *PostgresTx) Rollback() error {
	return t.tx.Rollback(context.Background())
}

// OrderRepository implementa Repository usando PostgreSQL
type OrderRepository struct {
	db *pgxpool.Pool
}

// NewOrderRepository cria uma nova instância de OrderRepository
func NewOrderRepository(db *pgxpool.Pool) Repository {
	return &OrderRepository{
		db: db,
	}
}

// BeginTx inicia uma nova transação
func (r *OrderRepository) BeginTx(ctx context.Context) (Tx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	return &PostgresTx{tx: tx}, nil
}

// GetProductForUpdate obtém o produto com lock pessimista (FOR UPDATE)
func (r *OrderRepository) GetProductForUpdate(ctx context.Context, tx Tx, productID int64) (*Product, error) {
	pgTx := tx.(*PostgresTx).tx

	query := `
		SELECT id, title, price, stock, max_order_quantity
		FROM products
		WHERE id = $1
		FOR UPDATE
	`

	var product Product
	err := pgTx.QueryRow(ctx, query, productID).Scan(
		&product.ID,
		&product.Title,
		&product.Price,
		&product.Stock,
		&product.MaxOrderQuantity,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product with lock: %w", err)
	}

	return &product, nil
}

// InsertOrder insere o cabeçalho do pedido
func (r *OrderRepository) InsertOrder(ctx context.Context, tx Tx, order *Order) error {
	pgTx := tx.(*PostgresTx).tx

	_, err := pgTx.Exec(ctx, `
		INSERT INTO orders (id, user_id, guest_email, payment_method_id, total, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, order.ID, order.UserID, order.GuestEmail, order.PaymentMethodID, order.Total, order.Status, order.CreatedAt, order.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}
	return nil
}

// BulkInsertLineItems insere todos os itens em um único INSERT parametrizado,
// usando placeholders gerados para o número de linhas
func (r *OrderRepository) BulkInsertLineItems(ctx context.Context, tx Tx, items []OrderLineItem) error {
	pgTx := tx.(*PostgresTx).tx

	const cols = 4
	placeholders, err := BulkInsertPlaceholders(len(items), cols)
	if err != nil {
		return fmt.Errorf("failed to build placeholders: %w", err)
	}

	args := make([]interface{}, 0, len(items)*cols)
	for _, item := range items {
		args = append(args, item.OrderID, item.ProductID, item.Quantity, item.UnitPrice)
	}

	query := `
		INSERT INTO order_items (order_id, product_id, quantity, unit_price)
		VALUES ` + placeholders

	_, err = pgTx.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to bulk insert line items: %w", err)
	}
	return nil
}

// MovementExists verifica se já existe movimento registrado para o order_id e
// product_id especificados
func (r *OrderRepository) MovementExists(ctx context.Context, tx Tx, orderID string, productID int64) (bool, error) {
	pgTx := tx.(*PostgresTx).tx

	query := `
		SELECT EXISTS(
			SELECT 1 FROM inventory_movements
			WHERE order_id = $1 AND product_id = $2 AND movement_type = $3
		)
	`

	var exists bool
	err := pgTx.QueryRow(ctx, query, orderID, productID, "decreased").Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check movement: %w", err)
	}

	return exists, nil
}

// DecreaseStock decrementa o estoque e registra o movimento na mesma transação
func (r *OrderRepository) DecreaseStock(ctx context.Context, tx Tx, productID int64, orderID string, quantity int) error {
	pgTx := tx.(*PostgresTx).tx

	updateQuery := `
		UPDATE products
		SET stock = stock - $2,
		    updated_at = NOW()
		WHERE id = $1
	`

	_, err := pgTx.Exec(ctx, updateQuery, productID, quantity)
	if err != nil {
		return fmt.Errorf("failed to decrease stock: %w", err)
	}

	movementID := uuid.New().String()
	insertQuery := `
		INSERT INTO inventory_movements (id, product_id, order_id, change_quantity, movement_type)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err = pgTx.Exec(ctx, insertQuery, movementID, productID, orderID, quantity, "decreased")
	if err != nil {
		return fmt.Errorf("failed to insert movement record: %w", err)
	}

	return nil
}

// GetOrder busca um pedido pelo ID
func (r *OrderRepository) GetOrder(ctx context.Context, orderID string) (*Order, error) {
	var order Order
	err := r.db.QueryRow(ctx, `
		SELECT id, user_id, guest_email, payment_method_id, total, status, created_at, updated_at
		FROM orders WHERE id = $1
	`, orderID).Scan(&order.ID, &order.UserID, &order.GuestEmail, &order.PaymentMethodID,
		&order.Total, &order.Status, &order.CreatedAt, &order.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT order_id, product_id, quantity, unit_price
		FROM order_items WHERE order_id = $1
		ORDER BY product_id
	`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item OrderLineItem
		if err := rows.Scan(&item.OrderID, &item.ProductID, &item.Quantity, &item.UnitPrice); err != nil {
			return nil, err
		}
		order.LineItems = append(order.LineItems, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &order, nil
}
