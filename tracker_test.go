package pagesift_test

import (
	"testing"

	"github.com/pagesift/pagesift"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeDomain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain url", "https://example.com/contact", "example"},
		{"www prefix", "https://www.example.com", "example"},
		{"shop prefix", "http://shop.example.com", "example"},
		{"store prefix", "https://store.example.org", "example"},
		{"uk tld", "https://www.example.co.uk/about", "example"},
		{"bare host", "Example.COM", "example"},
		{"unrelated tld kept", "https://example.ie", "example.ie"},
		{"subdomain kept", "https://docs.example.com", "docs.example"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, pagesift.NormalizeDomain(tt.in))
		})
	}
}
