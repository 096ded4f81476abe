package main

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// CartUseCaseInterface define a interface para o use case
type CartUseCaseInterface interface {
	GetCart(ctx context.Context, userID string) (*Cart, error)
	AddItem(ctx context.Context, userID string, item CartItem) (*Cart, error)
	RemoveItem(ctx context.Context, userID string, productID int64) (*Cart, error)
	ClearCart(ctx context.Context, userID string) error
	Preview(ctx context.Context, userID string) (*CartPreview, error)
}

// CartHandler contém os handlers HTTP
type CartHandler struct {
	useCase CartUseCaseInterface
	tracer  trace.Tracer
}

// NewCartHandler cria uma nova instância de CartHandler
func NewCartHandler(useCase CartUseCaseInterface, tracer trace.Tracer) *CartHandler {
	return &CartHandler{
		useCase: useCase,
		tracer:  tracer,
	}
}

// AddItemRequest representa a requisição de adição de item
type AddItemRequest struct {
	ProductID int64 `json:"product_id" binding:"required"`
	Quantity  int   `json:"quantity" binding:"required,gt=0"`
}

// GetCart busca o carrinho do usuário
func (h *CartHandler) GetCart(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "get_cart")
	defer span.End()

	userID := c.Param("userID")
	span.SetAttributes(attribute.String("user_id", userID))

	cart, err := h.useCase.GetCart(ctx, userID)
	if err != nil {
		span.RecordError(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not complete the request"})
		return
	}

	c.JSON(http.StatusOK, cart)
}

// AddItem adiciona um item ao carrinho
func (h *CartHandler) AddItem(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "add_cart_item")
	defer span.End()

	userID := c.Param("userID")

	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		span.RecordError(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	span.SetAttributes(
		attribute.String("user_id", userID),
		attribute.Int64("product_id", req.ProductID),
		attribute.Int("quantity", req.Quantity),
	)

	cart, err := h.useCase.AddItem(ctx, userID, CartItem{ProductID: req.ProductID, Quantity: req.Quantity})
	if err != nil {
		span.RecordError(err)
		if errors.Is(err, ErrInvalidQuantity) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not complete the request"})
		return
	}

	c.JSON(http.StatusOK, cart)
}

// RemoveItem remove um produto do carrinho
func (h *CartHandler) RemoveItem(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "remove_cart_item")
	defer span.End()

	userID := c.Param("userID")
	productID, err := strconv.ParseInt(c.Param("productID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	cart, err := h.useCase.RemoveItem(ctx, userID, productID)
	if err != nil {
		span.RecordError(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not complete the request"})
		return
	}

	c.JSON(http.StatusOK, cart)
}

// ClearCart descarta o carrinho do usuário
func (h *CartHandler) ClearCart(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "clear_cart")
	defer span.End()

	if err := h.useCase.ClearCart(ctx, c.Param("userID")); err != nil {
		span.RecordError(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not complete the request"})
		return
	}

	c.Status(http.StatusNoContent)
}

// Preview devolve o carrinho precificado com disponibilidade atual
func (h *CartHandler) Preview(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "preview_cart")
	defer span.End()

	userID := c.Param("userID")
	span.SetAttributes(attribute.String("user_id", userID))

	preview, err := h.useCase.Preview(ctx, userID)
	if err != nil {
		span.RecordError(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not complete the request"})
		return
	}

	c.JSON(http.StatusOK, preview)
}

// HealthCheck verifica a saúde do serviço
func (h *CartHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "cart-service",
	})
}
