package main

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestNewOrder(t *testing.T) {
	// Arrange
	id := "test-order-123"
	userID := "user-456"
	total := decimal.NewFromFloat(42.50)

	// Act
	order := NewOrder(id, userID, "", 1, total)

	// Assert
	if order.ID != id {
		t.Errorf("Expected ID %s, got %s", id, order.ID)
	}
	if order.UserID != userID {
		t.Errorf("Expected UserID %s, got %s", userID, order.UserID)
	}
	if !order.Total.Equal(total) {
		t.Errorf("Expected Total %s, got %s", total, order.Total)
	}
	if order.Status != OrderStatusProcessing {
		t.Errorf("Expected Status %s, got %s", OrderStatusProcessing, order.Status)
	}
	if order.CreatedAt.IsZero() {
		t.Error("Expected CreatedAt to be set")
	}
	if order.UpdatedAt.IsZero() {
		t.Error("Expected UpdatedAt to be set")
	}

	now := time.Now()
	if order.CreatedAt.After(now) || order.CreatedAt.Before(now.Add(-time.Second)) {
		t.Error("CreatedAt is not within expected time range")
	}
}

func TestNewOrder_GuestEmail(t *testing.T) {
	// Act
	order := NewOrder("order-1", "", "guest@example.com", 2, decimal.NewFromInt(10))

	// Assert
	if order.UserID != "" {
		t.Errorf("Expected empty UserID, got %s", order.UserID)
	}
	if order.GuestEmail != "guest@example.com" {
		t.Errorf("Expected GuestEmail guest@example.com, got %s", order.GuestEmail)
	}
}

func TestOrderStatus(t *testing.T) {
	// Test that constants are defined correctly
	if OrderStatusProcessing != "processing" {
		t.Errorf("Expected OrderStatusProcessing to be 'processing', got %s", OrderStatusProcessing)
	}
	if OrderStatusShipped != "shipped" {
		t.Errorf("Expected OrderStatusShipped to be 'shipped', got %s", OrderStatusShipped)
	}
	if OrderStatusAtPickupPoint != "at_pickup_point" {
		t.Errorf("Expected OrderStatusAtPickupPoint to be 'at_pickup_point', got %s", OrderStatusAtPickupPoint)
	}
	if OrderStatusCompleted != "completed" {
		t.Errorf("Expected OrderStatusCompleted to be 'completed', got %s", OrderStatusCompleted)
	}
	if OrderStatusCancelled != "cancelled" {
		t.Errorf("Expected OrderStatusCancelled to be 'cancelled', got %s", OrderStatusCancelled)
	}
}
