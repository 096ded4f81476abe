package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/shopspring/decimal"
)

const (
	ExchangeName = "storefront"
	ExchangeType = "topic"
)

// OrderPlacedEvent representa o evento publicado após o commit de um pedido
type OrderPlacedEvent struct {
	OrderID      string          `json:"order_id"`
	UserID       string          `json:"user_id,omitempty"`
	Total        decimal.Decimal `json:"total"`
	ItemCount    int             `json:"item_count"`
	DroppedCount int             `json:"dropped_count"`
}

// EventPublisher abstrai a publicação de eventos de pedido
type EventPublisher interface {
	PublishOrderPlaced(ctx context.Context, event OrderPlacedEvent) error
}

// RabbitPublisher implementa EventPublisher usando RabbitMQ
type RabbitPublisher struct {
	ch *amqp.Channel
}

// NewRabbitPublisher cria uma nova instância de RabbitPublisher
func NewRabbitPublisher(ch *amqp.Channel) *RabbitPublisher {
	return &RabbitPublisher{ch: ch}
}

func (p *RabbitPublisher) PublishOrderPlaced(ctx context.Context, event OrderPlacedEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("could not marshal order placed event: %w", err)
	}

	return p.ch.PublishWithContext(ctx,
		ExchangeName,    // exchange
		"orders.placed", // routing key
		false,           // mandatory
		false,           // immediate
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}

// SetupRabbitConn abre a conexão e declara o exchange
func SetupRabbitConn(url string) (*amqp.Connection, *amqp.Channel, error) {
	var conn *amqp.Connection
	var err error

	// Retry simples para o startup dos containers
	for i := 0; i < 5; i++ {
		conn, err = amqp.Dial(url)
		if err == nil {
			break
		}
		log.Printf("⏳ Failed to connect to RabbitMQ (attempt %d): %v", i+1, err)
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("could not connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		return nil, nil, fmt.Errorf("could not open channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		ExchangeName, // name
		ExchangeType, // type
		true,         // durable
		false,        // auto-deleted
		false,        // internal
		false,        // no-wait
		nil,          // arguments
	)
	if err != nil {
		return nil, nil, fmt.Errorf("could not declare exchange: %w", err)
	}

	return conn, ch, nil
}
