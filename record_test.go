package pagesift_test

import (
	"testing"

	"github.com/pagesift/pagesift"
	"github.com/stretchr/testify/assert"
)

func TestRecord_FieldNames(t *testing.T) {
	t.Parallel()

	record := &pagesift.Record{
		Fields: map[string]any{
			"seller": "Acme",
			"price":  pagesift.Price{Amount: 10},
			"email":  nil,
		},
	}
	assert.Equal(t, []string{"email", "price", "seller"}, record.FieldNames())
}

func TestRecord_ValueStrings(t *testing.T) {
	t.Parallel()

	record := &pagesift.Record{
		Fields: map[string]any{
			"seller":   "Acme",
			"email":    nil,
			"services": []any{"Design", "Delivery"},
		},
	}
	assert.Equal(t, []string{"Acme", "Design", "Delivery"}, record.ValueStrings())
}

func TestFormatValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   any
		want string
	}{
		{"nil", nil, ""},
		{"string", "Acme", "Acme"},
		{"float", 299.5, "299.5"},
		{"whole float", 300.0, "300"},
		{"bool", true, "true"},
		{"price", pagesift.Price{Formatted: "£299.99"}, "£299.99"},
		{"dimensions", pagesift.Dimensions{Formatted: "200×90×75 cm"}, "200×90×75 cm"},
		{"rating", pagesift.Rating{Formatted: "4.5/5"}, "4.5/5"},
		{"list", []any{"a", "b"}, "a; b"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, pagesift.FormatValue(tt.in))
		})
	}
}

func TestNumericValue(t *testing.T) {
	t.Parallel()

	t.Run("prices compare by amount", func(t *testing.T) {
		t.Parallel()

		n, ok := pagesift.NumericValue(pagesift.Price{Amount: 299.99})
		assert.True(t, ok)
		assert.Equal(t, 299.99, n)
	})

	t.Run("ratings compare by score", func(t *testing.T) {
		t.Parallel()

		n, ok := pagesift.NumericValue(pagesift.Rating{Score: 4.5, Max: 5})
		assert.True(t, ok)
		assert.Equal(t, 4.5, n)
	})

	t.Run("numeric strings parse", func(t *testing.T) {
		t.Parallel()

		n, ok := pagesift.NumericValue(" 42 ")
		assert.True(t, ok)
		assert.Equal(t, 42.0, n)
	})

	t.Run("lists use their first element", func(t *testing.T) {
		t.Parallel()

		n, ok := pagesift.NumericValue([]any{3.0, 4.0})
		assert.True(t, ok)
		assert.Equal(t, 3.0, n)
	})

	t.Run("non-numeric values report failure", func(t *testing.T) {
		t.Parallel()

		_, ok := pagesift.NumericValue("oak")
		assert.False(t, ok)
	})
}
