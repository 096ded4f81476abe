package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrProductNotFound = errors.New("product not found")

const cartTTL = 7 * 24 * time.Hour

// CartStore define a interface de persistência do carrinho
type CartStore interface {
	GetCart(ctx context.Context, userID string) (*Cart, error)
	SaveCart(ctx context.Context, cart *Cart) error
	DeleteCart(ctx context.Context, userID string) error
}

// RedisCartStore implementa CartStore usando Redis
type RedisCartStore struct {
	client *redis.Client
}

// NewRedisCartStore cria uma nova instância de RedisCartStore
func NewRedisCartStore(client *redis.Client) *RedisCartStore {
	return &RedisCartStore{client: client}
}

func cartKey(userID string) string {
	return "cart:" + userID
}

// GetCart busca o carrinho do usuário; ausência vira carrinho vazio
func (s *RedisCartStore) GetCart(ctx context.Context, userID string) (*Cart, error) {
	value, err := s.client.Get(ctx, cartKey(userID)).Result()
	if err == redis.Nil {
		return &Cart{UserID: userID}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	var cart Cart
	if err := json.Unmarshal([]byte(value), &cart); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cart: %w", err)
	}
	return &cart, nil
}

// SaveCart persiste o carrinho com TTL
func (s *RedisCartStore) SaveCart(ctx context.Context, cart *Cart) error {
	cart.UpdatedAt = time.Now()
	payload, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("failed to marshal cart: %w", err)
	}
	return s.client.Set(ctx, cartKey(cart.UserID), payload, cartTTL).Err()
}

// DeleteCart remove o carrinho do usuário
func (s *RedisCartStore) DeleteCart(ctx context.Context, userID string) error {
	return s.client.Del(ctx, cartKey(userID)).Err()
}

// ProductReader define a leitura de produtos do catálogo
type ProductReader interface {
	GetProduct(ctx context.Context, productID int64) (*Product, error)
}

// PostgresProductReader implementa ProductReader usando PostgreSQL
type PostgresProductReader struct {
	db *pgxpool.Pool
}

// NewProductReader cria uma nova instância de PostgresProductReader
func NewProductReader(db *pgxpool.Pool) *PostgresProductReader {
	return &PostgresProductReader{db: db}
}

// GetProduct busca um produto pelo ID
func (r *PostgresProductReader) GetProduct(ctx context.Context, productID int64) (*Product, error) {
	var product Product
	err := r.db.QueryRow(ctx, `
		SELECT id, title, price, stock, max_order_quantity
		FROM products WHERE id = $1
	`, productID).Scan(
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
		return nil, err
	}
	return &product, nil
}
