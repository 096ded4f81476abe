package main

import "github.com/shopspring/decimal"

// CartTotal calcula o total a pagar de um carrinho: soma de
// preço unitário × quantidade apenas dos itens marcados como orderable.
// Itens reprovados na validação contribuem com zero. A mesma regra é
// usada na pré-visualização do carrinho e na cobrança do checkout.
func CartTotal(items map[int64]CartLineItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		if !item.IsOrderable {
			continue
		}
		total = total.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}
