package main

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

var ErrInvalidQuantity = errors.New("quantity must be greater than zero")

// Códigos de indisponibilidade expostos na pré-visualização; os mesmos
// usados pelo checkout
const (
	ReasonOutOfStock      = "out_of_stock"
	ReasonExceedsMaxQty   = "exceeds_max_quantity"
	ReasonProductNotFound = "product_not_found"
)

// lineVerdict aplica a mesma regra de disponibilidade do checkout: o teto por
// pedido tem precedência sobre o estoque, e quantidade igual ao estoque é
// aprovada. Retorna razão vazia quando a linha é comprável.
func lineVerdict(requested, stock, maxOrderQuantity int) (orderable bool, reason string) {
	switch {
	case requested > maxOrderQuantity:
		return false, ReasonExceedsMaxQty
	case requested > stock:
		return false, ReasonOutOfStock
	default:
		return true, ""
	}
}

// CartUseCase contém a lógica de negócio do carrinho
type CartUseCase struct {
	carts    CartStore
	products ProductReader
}

// NewCartUseCase cria uma nova instância de CartUseCase
func NewCartUseCase(carts CartStore, products ProductReader) *CartUseCase {
	return &CartUseCase{
		carts:    carts,
		products: products,
	}
}

// GetCart busca o carrinho do usuário
func (uc *CartUseCase) GetCart(ctx context.Context, userID string) (*Cart, error) {
	return uc.carts.GetCart(ctx, userID)
}

// AddItem adiciona (ou acumula) um item no carrinho
func (uc *CartUseCase) AddItem(ctx context.Context, userID string, item CartItem) (*Cart, error) {
	if item.Quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	cart, err := uc.carts.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range cart.Items {
		if cart.Items[i].ProductID == item.ProductID {
			cart.Items[i].Quantity += item.Quantity
			found = true
			break
		}
	}
	if !found {
		cart.Items = append(cart.Items, item)
	}

	if err := uc.carts.SaveCart(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// RemoveItem remove um produto do carrinho
func (uc *CartUseCase) RemoveItem(ctx context.Context, userID string, productID int64) (*Cart, error) {
	cart, err := uc.carts.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	items := cart.Items[:0]
	for _, item := range cart.Items {
		if item.ProductID != productID {
			items = append(items, item)
		}
	}
	cart.Items = items

	if err := uc.carts.SaveCart(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// ClearCart descarta o carrinho do usuário
func (uc *CartUseCase) ClearCart(ctx context.Context, userID string) error {
	return uc.carts.DeleteCart(ctx, userID)
}

// Preview calcula preço e disponibilidade de cada linha no servidor, lendo
// estoque e teto atuais do catálogo. As buscas são independentes entre si
// e rodam em paralelo; o resultado é ordenado por produto para que o
// conteúdo seja determinístico.
func (uc *CartUseCase) Preview(ctx context.Context, userID string) (*CartPreview, error) {
	cart, err := uc.carts.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	lines := make([]PricedLine, len(cart.Items))
	g, gctx := errgroup.WithContext(ctx)
	for i, item := range cart.Items {
		g.Go(func() error {
			product, err := uc.products.GetProduct(gctx, item.ProductID)
			if errors.Is(err, ErrProductNotFound) {
				lines[i] = PricedLine{
					ProductID: item.ProductID,
					Quantity:  item.Quantity,
					Reason:    ReasonProductNotFound,
				}
				return nil
			}
			if err != nil {
				return fmt.Errorf("failed to read product %d: %w", item.ProductID, err)
			}

			line := PricedLine{
				ProductID: item.ProductID,
				Title:     product.Title,
				UnitPrice: product.Price,
				Quantity:  item.Quantity,
			}
			line.IsOrderable, line.Reason = lineVerdict(item.Quantity, product.Stock, product.MaxOrderQuantity)
			lines[i] = line
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(lines, func(i, j int) bool { return lines[i].ProductID < lines[j].ProductID })

	total := decimal.Zero
	for _, line := range lines {
		if !line.IsOrderable {
			continue
		}
		total = total.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	return &CartPreview{
		UserID: userID,
		Lines:  lines,
		Total:  total,
	}, nil
}
