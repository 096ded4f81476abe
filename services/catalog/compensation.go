package main

import (
	"context"
	"log"
	"time"
)

// AssetCompensator acompanha os assets enviados durante um upsert e desfaz
// o envio se o commit do registro que os referencia falhar. O protocolo é
// explícito: Track → Commit ou Compensate, nunca dependente da ordem de
// chamadas dentro do corpo de uma função.
type AssetCompensator struct {
	store   AssetStore
	pending []PendingAsset
}

// NewAssetCompensator cria uma nova instância de AssetCompensator
func NewAssetCompensator(store AssetStore) *AssetCompensator {
	return &AssetCompensator{store: store}
}

// Track registra chaves de assets enviadas mas ainda não comitadas
func (c *AssetCompensator) Track(keys ...string) {
	for _, key := range keys {
		c.pending = append(c.pending, PendingAsset{Key: key})
	}
}

// Commit marca todos os assets rastreados como comitados; a partir daqui
// Compensate não os remove mais
func (c *AssetCompensator) Commit() {
	for i := range c.pending {
		c.pending[i].Committed = true
	}
}

// Compensate remove, em melhor esforço, todos os assets rastreados e não
// comitados. Falhas de remoção são logadas, nunca propagadas, para não
// mascarar o erro original que disparou a compensação. Roda em um contexto
// próprio para que o cancelamento do caller não deixe assets órfãos.
func (c *AssetCompensator) Compensate(ctx context.Context) {
	keys := make([]string, 0, len(c.pending))
	for _, asset := range c.pending {
		if !asset.Committed {
			keys = append(keys, asset.Key)
		}
	}
	if len(keys) == 0 {
		return
	}

	cleanupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()

	log.Printf("↩️ [COMPENSATE ASSETS] Deleting %d pending assets", len(keys))
	if err := c.store.Delete(cleanupCtx, keys); err != nil {
		log.Printf("⚠️ Failed to delete pending assets %v: %v", keys, err)
	}
}
