package bloom_test

import (
	"testing"

	"github.com/pagesift/pagesift/bloom"
	"github.com/stretchr/testify/assert"
)

func TestFilter(t *testing.T) {
	t.Parallel()

	t.Run("added domains test positive", func(t *testing.T) {
		t.Parallel()

		f := bloom.NewFilter(1000, 0.01)
		f.Add("oakfurniture")
		f.Add("acme")

		assert.True(t, f.Test("oakfurniture"))
		assert.True(t, f.Test("acme"))
	})

	t.Run("unseen domains test negative", func(t *testing.T) {
		t.Parallel()

		f := bloom.NewFilter(1000, 0.01)
		f.Add("oakfurniture")

		assert.False(t, f.Test("neverseen"))
	})
}
