package main

import (
	"fmt"
	"strings"
)

// BulkInsertPlaceholders gera o fragmento de placeholders posicionais para
// um INSERT de múltiplas linhas parametrizado: para rows=2 e cols=2 produz
// "($1, $2),($3, $4)". Os índices começam em 1, nunca repetem e nunca
// pulam; os valores em si sempre viajam como parâmetros bound.
func BulkInsertPlaceholders(rows, cols int) (string, error) {
	if rows < 1 {
		return "", fmt.Errorf("rows must be >= 1, got %d", rows)
	}
	if cols < 1 {
		return "", fmt.Errorf("cols must be >= 1, got %d", cols)
	}

	var b strings.Builder
	idx := 1
	for r := 0; r < rows; r++ {
		if r > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('(')
		for c := 0; c < cols; c++ {
			if c > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "$%d", idx)
			idx++
		}
		b.WriteByte(')')
	}
	return b.String(), nil
}
