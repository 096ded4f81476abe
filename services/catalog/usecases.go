package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/shopspring/decimal"
)

var ErrAssetMissing = errors.New("referenced asset does not exist in the store")

// UpsertProductRequest representa a requisição de criação ou atualização de
// produto. As imagens já foram enviadas ao object store pelo cliente;
// aqui chegam só as chaves resultantes.
type UpsertProductRequest struct {
	Title            string          `json:"title" binding:"required"`
	Description      string          `json:"description"`
	Price            decimal.Decimal `json:"price" binding:"required"`
	Stock            int             `json:"stock" binding:"gte=0"`
	MaxOrderQuantity int             `json:"max_order_quantity" binding:"required,gt=0"`
	ImageKeys        []string        `json:"image_keys"`
}

// CatalogUseCase contém a lógica de negócio do catálogo
type CatalogUseCase struct {
	repository ProductRepository
	assets     AssetStore
}

// NewCatalogUseCase cria uma nova instância de CatalogUseCase
func NewCatalogUseCase(repository ProductRepository, assets AssetStore) *CatalogUseCase {
	return &CatalogUseCase{
		repository: repository,
		assets:     assets,
	}
}

// CreateProduct comita o registro do produto referenciando os assets já
// enviados. Se o commit falhar, os assets pendentes são removidos e o erro
// original é devolvido ao caller.
func (uc *CatalogUseCase) CreateProduct(ctx context.Context, req UpsertProductRequest) (*Product, error) {
	comp := NewAssetCompensator(uc.assets)
	comp.Track(req.ImageKeys...)

	if err := uc.verifyAssets(ctx, req.ImageKeys); err != nil {
		comp.Compensate(ctx)
		return nil, err
	}

	product := NewProduct(req.Title, req.Description, req.Price, req.Stock, req.MaxOrderQuantity, req.ImageKeys)
	if err := uc.repository.CreateProduct(ctx, product); err != nil {
		log.Printf("❌ Failed to create product %q: %v", req.Title, err)
		comp.Compensate(ctx)
		return nil, err
	}

	comp.Commit()
	log.Printf("✅ [CREATE PRODUCT] ID=%d | Assets=%d", product.ID, len(req.ImageKeys))
	return product, nil
}

// UpdateProduct atualiza o produto substituindo seus assets. As chaves novas
// são compensadas se o commit falhar; as antigas substituídas só são
// removidas depois do commit, nunca antes, para que uma falha no meio da
// operação preserve o estado anterior.
func (uc *CatalogUseCase) UpdateProduct(ctx context.Context, productID int64, req UpsertProductRequest) (*Product, error) {
	existing, err := uc.repository.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	comp := NewAssetCompensator(uc.assets)
	imageKeys := existing.ImageKeys
	if req.ImageKeys != nil {
		comp.Track(req.ImageKeys...)
		if err := uc.verifyAssets(ctx, req.ImageKeys); err != nil {
			comp.Compensate(ctx)
			return nil, err
		}
		imageKeys = req.ImageKeys
	}

	updated := &Product{
		ID:               productID,
		Title:            req.Title,
		Description:      req.Description,
		Price:            req.Price,
		Stock:            req.Stock,
		MaxOrderQuantity: req.MaxOrderQuantity,
		ImageKeys:        imageKeys,
		CreatedAt:        existing.CreatedAt,
	}

	if err := uc.repository.UpdateProduct(ctx, updated); err != nil {
		log.Printf("❌ Failed to update product %d: %v", productID, err)
		comp.Compensate(ctx)
		return nil, err
	}
	comp.Commit()

	// Commit feito: agora sim os assets substituídos podem ser removidos
	if req.ImageKeys != nil {
		if replaced := replacedKeys(existing.ImageKeys, req.ImageKeys); len(replaced) > 0 {
			if err := uc.assets.Delete(ctx, replaced); err != nil {
				log.Printf("⚠️ Failed to delete replaced assets %v: %v", replaced, err)
			}
		}
	}

	log.Printf("✅ [UPDATE PRODUCT] ID=%d", productID)
	return updated, nil
}

// GetProduct busca um produto pelo ID
func (uc *CatalogUseCase) GetProduct(ctx context.Context, productID int64) (*Product, error) {
	return uc.repository.GetProduct(ctx, productID)
}

// verifyAssets confere que todas as chaves referenciadas existem no store
func (uc *CatalogUseCase) verifyAssets(ctx context.Context, keys []string) error {
	for _, key := range keys {
		exists, err := uc.assets.Exists(ctx, key)
		if err != nil {
			return fmt.Errorf("failed to verify asset %s: %w", key, err)
		}
		if !exists {
			return fmt.Errorf("%w: %s", ErrAssetMissing, key)
		}
	}
	return nil
}

// replacedKeys devolve as chaves antigas que não aparecem no novo conjunto
func replacedKeys(oldKeys, newKeys []string) []string {
	kept := make(map[string]bool, len(newKeys))
	for _, key := range newKeys {
		kept[key] = true
	}

	var replaced []string
	for _, key := range oldKeys {
		if !kept[key] {
			replaced = append(replaced, key)
		}
	}
	return replaced
}
