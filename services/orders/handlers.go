package main

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// OrderUseCaseInterface define a interface para o use case
type OrderUseCaseInterface interface {
	PlaceOrder(ctx context.Context, req PlaceOrderRequest) (*PlaceOrderResult, error)
	GetOrder(ctx context.Context, orderID string) (*Order, error)
}

// OrderHandler contém os handlers HTTP
type OrderHandler struct {
	useCase OrderUseCaseInterface
	tracer  trace.Tracer
}

// NewOrderHandler cria uma nova instância de OrderHandler
func NewOrderHandler(useCase OrderUseCaseInterface, tracer trace.Tracer) *OrderHandler {
	return &OrderHandler{
		useCase: useCase,
		tracer:  tracer,
	}
}

// PlaceOrder cria um pedido a partir do carrinho enviado pelo cliente
func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "place_order")
	defer span.End()

	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		span.RecordError(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	span.SetAttributes(
		attribute.String("user_id", req.UserID),
		attribute.Int("item_count", len(req.Items)),
	)

	result, err := h.useCase.PlaceOrder(ctx, req)
	if err != nil {
		span.RecordError(err)

		var rejection *OrderRejectionError
		switch {
		case errors.As(err, &rejection):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error_code": rejection.Code,
				"items":      rejection.Items,
			})
		case errors.Is(err, ErrEmptyCart):
			c.JSON(http.StatusBadRequest, gin.H{"error_code": RejectionEmptyCart})
		default:
			// Falhas de persistência não vazam detalhes para o cliente
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not complete the request"})
		}
		return
	}

	span.SetAttributes(
		attribute.String("order_id", result.OrderID),
		attribute.Int("dropped_count", len(result.DroppedItems)),
	)

	c.JSON(http.StatusCreated, result)
}

// GetOrder busca um pedido pelo ID
func (h *OrderHandler) GetOrder(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "get_order")
	defer span.End()

	orderID := c.Param("id")
	span.SetAttributes(attribute.String("order_id", orderID))

	order, err := h.useCase.GetOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		span.RecordError(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not complete the request"})
		return
	}

	c.JSON(http.StatusOK, order)
}

// HealthCheck verifica a saúde do serviço
func (h *OrderHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "orders-service",
	})
}
