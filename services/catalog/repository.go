package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrProductConflict = errors.New("a product with this title already exists")
)

// ProductRepository define a interface para operações de banco de dados de produtos
type ProductRepository interface {
	// CreateProduct insere um produto e preenche o ID gerado
	CreateProduct(ctx context.Context, product *Product) error

	// UpdateProduct atualiza um produto existente
	UpdateProduct(ctx context.Context, product *Product) error

	// GetProduct busca um produto pelo ID
	GetProduct(ctx context.Context, productID int64) (*Product, error)
}

// PostgresProductRepository implementa ProductRepository usando PostgreSQL
type PostgresProductRepository struct {
	db *sql.DB
}

// NewProductRepository cria uma nova instância de PostgresProductRepository
func NewProductRepository(db *sql.DB) ProductRepository {
	return &PostgresProductRepository{
		db: db,
	}
}

// CreateProduct insere um produto e preenche o ID gerado
func (r *PostgresProductRepository) CreateProduct(ctx context.Context, product *Product) error {
	query := `
		INSERT INTO products (title, description, price, stock, max_order_quantity, image_keys, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query,
		product.Title,
		product.Description,
		product.Price,
		product.Stock,
		product.MaxOrderQuantity,
		pq.Array(product.ImageKeys),
		product.CreatedAt,
		product.UpdatedAt,
	).Scan(&product.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrProductConflict
		}
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// UpdateProduct atualiza um produto existente
func (r *PostgresProductRepository) UpdateProduct(ctx context.Context, product *Product) error {
	query := `
		UPDATE products
		SET title = $2,
		    description = $3,
		    price = $4,
		    stock = $5,
		    max_order_quantity = $6,
		    image_keys = $7,
		    updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query,
		product.ID,
		product.Title,
		product.Description,
		product.Price,
		product.Stock,
		product.MaxOrderQuantity,
		pq.Array(product.ImageKeys),
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrProductConflict
		}
		return fmt.Errorf("failed to update product: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return ErrProductNotFound
	}
	return nil
}

// GetProduct busca um produto pelo ID
func (r *PostgresProductRepository) GetProduct(ctx context.Context, productID int64) (*Product, error) {
	query := `
		SELECT id, title, description, price, stock, max_order_quantity, image_keys, created_at, updated_at
		FROM products WHERE id = $1
	`

	var product Product
	err := r.db.QueryRowContext(ctx, query, productID).Scan(
		&product.ID,
		&product.Title,
		&product.Description,
		&product.Price,
		&product.Stock,
		&product.MaxOrderQuantity,
		pq.Array(&product.ImageKeys),
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return &product, nil
}
