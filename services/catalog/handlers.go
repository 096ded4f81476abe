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

// CatalogUseCaseInterface define a interface para o use case
type CatalogUseCaseInterface interface {
	CreateProduct(ctx context.Context, req UpsertProductRequest) (*Product, error)
	UpdateProduct(ctx context.Context, productID int64, req UpsertProductRequest) (*Product, error)
	GetProduct(ctx context.Context, productID int64) (*Product, error)
}

// CatalogHandler contém os handlers HTTP
type CatalogHandler struct {
	useCase CatalogUseCaseInterface
	tracer  trace.Tracer
}

// NewCatalogHandler cria uma nova instância de CatalogHandler
func NewCatalogHandler(useCase CatalogUseCaseInterface, tracer trace.Tracer) *CatalogHandler {
	return &CatalogHandler{
		useCase: useCase,
		tracer:  tracer,
	}
}

// CreateProduct cria um produto referenciando assets já enviados
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "create_product")
	defer span.End()

	var req UpsertProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		span.RecordError(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	span.SetAttributes(
		attribute.String("title", req.Title),
		attribute.Int("asset_count", len(req.ImageKeys)),
	)

	product, err := h.useCase.CreateProduct(ctx, req)
	if err != nil {
		span.RecordError(err)
		h.writeError(c, err)
		return
	}

	span.SetAttributes(attribute.Int64("product_id", product.ID))
	c.JSON(http.StatusCreated, product)
}

// UpdateProduct atualiza um produto existente
func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "update_product")
	defer span.End()

	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}
	span.SetAttributes(attribute.Int64("product_id", productID))

	var req UpsertProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		span.RecordError(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, err := h.useCase.UpdateProduct(ctx, productID, req)
	if err != nil {
		span.RecordError(err)
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, product)
}

// GetProduct busca um produto pelo ID
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "get_product")
	defer span.End()

	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}
	span.SetAttributes(attribute.Int64("product_id", productID))

	product, err := h.useCase.GetProduct(ctx, productID)
	if err != nil {
		span.RecordError(err)
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, product)
}

func (h *CatalogHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
	case errors.Is(err, ErrProductConflict):
		c.JSON(http.StatusConflict, gin.H{"error": ErrProductConflict.Error()})
	case errors.Is(err, ErrAssetMissing):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		// Falhas de persistência e de compensação não vazam para o cliente
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not complete the request"})
	}
}

// HealthCheck verifica a saúde do serviço
func (h *CatalogHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "catalog-service",
	})
}
