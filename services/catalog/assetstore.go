package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// AssetStore abstrai o object store de imagens de produto
type AssetStore interface {
	// Exists verifica se a chave existe no store
	Exists(ctx context.Context, key string) (bool, error)

	// Delete remove as chaves em lote; idempotente para chaves ausentes
	Delete(ctx context.Context, keys []string) error
}

// HTTPAssetStore implementa AssetStore sobre a API REST do object store
type HTTPAssetStore struct {
	client *resty.Client
}

// NewHTTPAssetStore cria uma nova instância de HTTPAssetStore
func NewHTTPAssetStore(baseURL string) *HTTPAssetStore {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(10 * time.Second)
	return &HTTPAssetStore{client: client}
}

func (s *HTTPAssetStore) Exists(ctx context.Context, key string) (bool, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		Head("/assets/" + key)
	if err != nil {
		return false, fmt.Errorf("failed to check asset %s: %w", key, err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return false, nil
	}
	if !resp.IsSuccess() {
		return false, fmt.Errorf("asset store returned status %d for key %s", resp.StatusCode(), key)
	}
	return true, nil
}

func (s *HTTPAssetStore) Delete(ctx context.Context, keys []string) error {
	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(map[string][]string{"keys": keys}).
		Post("/assets/delete")
	if err != nil {
		return fmt.Errorf("failed to delete assets: %w", err)
	}
	// Chaves ausentes não são erro: a remoção é idempotente
	if !resp.IsSuccess() && resp.StatusCode() != http.StatusNotFound {
		return fmt.Errorf("asset store returned status %d", resp.StatusCode())
	}
	return nil
}
