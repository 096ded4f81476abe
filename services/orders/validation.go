package main

import (
	"fmt"
	"sort"
)

// Verdict representa o resultado da validação de um item do carrinho
type Verdict string

const (
	VerdictOK              Verdict = "ok"
	VerdictOutOfStock      Verdict = "out_of_stock"
	VerdictExceedsMaxQty   Verdict = "exceeds_max_quantity"
	VerdictProductNotFound Verdict = "product_not_found"
)

// Códigos agregados usados quando nenhum item do pedido é aprovado
const (
	RejectionAllOutOfStock = "all_out_of_stock"
	RejectionAllExceedMax  = "all_exceed_max_quantity"
	RejectionMixed         = "mixed"
	RejectionNotFoundOnly  = "product_not_found"
	RejectionTooManyItems  = "too_many_items"
	RejectionEmptyCart     = "empty_cart"
)

// ValidateQuantity valida a quantidade pedida contra o estoque atual e o
// teto de quantidade por pedido do produto. A regra de teto tem precedência
// sobre a de estoque; quantidade igual ao estoque é aprovada.
func ValidateQuantity(requested, stock, maxOrderQty int) Verdict {
	if requested > maxOrderQty {
		return VerdictExceedsMaxQty
	}
	if requested > stock {
		return VerdictOutOfStock
	}
	return VerdictOK
}

// ItemFailure representa a reprovação de um item, com código legível por máquina
type ItemFailure struct {
	ProductID int64   `json:"product_id"`
	Reason    Verdict `json:"reason"`
}

// OrderRejectionError é o erro estruturado de rejeição de um pedido.
// Carrega um código agregado e a lista completa de itens reprovados,
// para que o cliente saiba corrigir o carrinho em uma única tentativa.
type OrderRejectionError struct {
	Code  string        `json:"error_code"`
	Items []ItemFailure `json:"items,omitempty"`
}

func (e *OrderRejectionError) Error() string {
	return fmt.Sprintf("order rejected: %s (%d items)", e.Code, len(e.Items))
}

// AggregateRejectionCode deriva o código agregado a partir dos itens
// reprovados. Itens não encontrados não participam do agregado
// estoque/teto; se só houver itens não encontrados, o código reflete isso.
func AggregateRejectionCode(failures []ItemFailure) string {
	var outOfStock, exceedsMax bool
	for _, f := range failures {
		switch f.Reason {
		case VerdictOutOfStock:
			outOfStock = true
		case VerdictExceedsMaxQty:
			exceedsMax = true
		}
	}

	switch {
	case outOfStock && exceedsMax:
		return RejectionMixed
	case outOfStock:
		return RejectionAllOutOfStock
	case exceedsMax:
		return RejectionAllExceedMax
	default:
		return RejectionNotFoundOnly
	}
}

// sortFailures garante que o relatório de reprovações seja determinístico,
// independente da ordem de avaliação dos itens
func sortFailures(failures []ItemFailure) {
	sort.Slice(failures, func(i, j int) bool {
		return failures[i].ProductID < failures[j].ProductID
	})
}
