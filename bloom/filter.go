// Package bloom provides probabilistic domain deduplication using Bloom filters.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Filter wraps a Bloom filter keyed by normalized domain. It serves as a
// fast negative pre-check in front of durable trackers: a negative answer
// is definitive, a positive one must be confirmed against storage.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected domains
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add adds a domain to the filter.
func (f *Filter) Add(domain string) {
	f.f.AddString(domain)
}

// Test returns true if the domain might be in the filter.
// False positives are possible; false negatives are not.
func (f *Filter) Test(domain string) bool {
	return f.f.TestString(domain)
}
