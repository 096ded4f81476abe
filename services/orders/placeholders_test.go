package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBulkInsertPlaceholders(t *testing.T) {
	tests := []struct {
		name     string
		rows     int
		cols     int
		expected string
	}{
		{name: "single row two cols", rows: 1, cols: 2, expected: "($1, $2)"},
		{name: "two rows two cols", rows: 2, cols: 2, expected: "($1, $2),($3, $4)"},
		{name: "three rows two cols", rows: 3, cols: 2, expected: "($1, $2),($3, $4),($5, $6)"},
		{name: "two rows four cols", rows: 2, cols: 4, expected: "($1, $2, $3, $4),($5, $6, $7, $8)"},
		{name: "single row single col", rows: 1, cols: 1, expected: "($1)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Act
			got, err := BulkInsertPlaceholders(tt.rows, tt.cols)

			// Assert
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestBulkInsertPlaceholders_Deterministic(t *testing.T) {
	// Act
	first, err1 := BulkInsertPlaceholders(5, 3)
	second, err2 := BulkInsertPlaceholders(5, 3)

	// Assert
	assert.NoError(t, err1)
	assert.NoError(t, err2)
	assert.Equal(t, first, second)
}

func TestBulkInsertPlaceholders_InvalidInput(t *testing.T) {
	// Act & Assert
	_, err := BulkInsertPlaceholders(0, 2)
	assert.Error(t, err)

	_, err = BulkInsertPlaceholders(2, 0)
	assert.Error(t, err)

	_, err = BulkInsertPlaceholders(-1, -1)
	assert.Error(t, err)
}
