package goquery_test

import (
	"strings"
	"testing"

	gq "github.com/PuerkitoBio/goquery"
	"github.com/pagesift/pagesift"
	"github.com/pagesift/pagesift/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseDoc(t *testing.T, html string) *gq.Document {
	t.Helper()
	doc, err := gq.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func newResolver(opts ...goquery.ResolverOption) *goquery.Resolver {
	return goquery.NewResolver(pagesift.DefaultTypePatterns(), pagesift.NewFormatterRegistry(), opts...)
}

func TestResolver_TierPrecedence(t *testing.T) {
	t.Parallel()

	t.Run("structural tier wins over fallback", func(t *testing.T) {
		t.Parallel()

		doc := parseDoc(t, `<html><body>
			<span class="primary">structural value</span>
			<span class="secondary">fallback value</span>
		</body></html>`)

		var gotTier pagesift.Tier
		r := newResolver(goquery.WithTierHook(func(_ string, tier pagesift.Tier, _ int) {
			gotTier = tier
		}))

		v, ok := r.Resolve(doc, pagesift.FieldDescriptor{
			Name:              "note",
			Type:              pagesift.FieldText,
			Selectors:         []string{".primary"},
			FallbackSelectors: []string{".secondary"},
		})

		require.True(t, ok)
		assert.Equal(t, "structural value", v)
		assert.Equal(t, pagesift.TierStructural, gotTier)
	})

	t.Run("invalid fallback selector never consulted when structural matches", func(t *testing.T) {
		t.Parallel()

		doc := parseDoc(t, `<html><body><span class="primary">hello</span></body></html>`)

		r := newResolver()
		v, ok := r.Resolve(doc, pagesift.FieldDescriptor{
			Name:              "note",
			Type:              pagesift.FieldText,
			Selectors:         []string{".primary"},
			FallbackSelectors: []string{"[[[not-a-selector"},
		})

		require.True(t, ok)
		assert.Equal(t, "hello", v)
	})

	t.Run("regex tier runs before fallback selectors", func(t *testing.T) {
		t.Parallel()

		doc := parseDoc(t, `<html><body>
			<p>Reference code ABC-1234 applies.</p>
			<span class="secondary">fallback value</span>
		</body></html>`)

		var gotTier pagesift.Tier
		r := newResolver(goquery.WithTierHook(func(_ string, tier pagesift.Tier, _ int) {
			gotTier = tier
		}))

		v, ok := r.Resolve(doc, pagesift.FieldDescriptor{
			Name:              "code",
			Type:              pagesift.FieldText,
			Selectors:         []string{".missing"},
			RegexPatterns:     []string{`ABC-\d+`},
			FallbackSelectors: []string{".secondary"},
		})

		require.True(t, ok)
		assert.Equal(t, "ABC-1234", v)
		assert.Equal(t, pagesift.TierRegex, gotTier)
	})

	t.Run("fallback tier used when selectors and patterns miss", func(t *testing.T) {
		t.Parallel()

		doc := parseDoc(t, `<html><body><span class="secondary">fallback value</span></body></html>`)

		var gotTier pagesift.Tier
		r := newResolver(goquery.WithTierHook(func(_ string, tier pagesift.Tier, _ int) {
			gotTier = tier
		}))

		v, ok := r.Resolve(doc, pagesift.FieldDescriptor{
			Name:              "note",
			Type:              pagesift.FieldText,
			Selectors:         []string{".missing"},
			RegexPatterns:     []string{`ZZZ-\d+`},
			FallbackSelectors: []string{".secondary"},
		})

		require.True(t, ok)
		assert.Equal(t, "fallback value", v)
		assert.Equal(t, pagesift.TierFallback, gotTier)
	})

	t.Run("type defaults are the last resort", func(t *testing.T) {
		t.Parallel()

		doc := parseDoc(t, `<html><body><span class="price">£42.00</span></body></html>`)

		var gotTier pagesift.Tier
		r := newResolver(goquery.WithTierHook(func(_ string, tier pagesift.Tier, _ int) {
			gotTier = tier
		}))

		v, ok := r.Resolve(doc, pagesift.FieldDescriptor{
			Name:      "price",
			Type:      pagesift.FieldPrice,
			Selectors: []string{".product-cost"},
		})

		require.True(t, ok)
		assert.Equal(t, "£42.00", v)
		assert.Equal(t, pagesift.TierTypeDefault, gotTier)
	})

	t.Run("nothing anywhere reports the none tier", func(t *testing.T) {
		t.Parallel()

		doc := parseDoc(t, `<html><body><p>no dates here</p></body></html>`)

		var gotTier pagesift.Tier
		r := newResolver(goquery.WithTierHook(func(_ string, tier pagesift.Tier, _ int) {
			gotTier = tier
		}))

		_, ok := r.Resolve(doc, pagesift.FieldDescriptor{
			Name:      "published",
			Type:      pagesift.FieldDate,
			Selectors: []string{".published"},
		})

		assert.False(t, ok)
		assert.Equal(t, pagesift.TierNone, gotTier)
	})
}

func TestResolver_Strategies(t *testing.T) {
	t.Parallel()

	t.Run("attribute strategy reads the named attribute", func(t *testing.T) {
		t.Parallel()

		doc := parseDoc(t, `<html><body><a class="listing" href="https://example.com/item/9">View</a></body></html>`)

		r := newResolver()
		v, ok := r.Resolve(doc, pagesift.FieldDescriptor{
			Name:          "product_url",
			Type:          pagesift.FieldURL,
			Selectors:     []string{"a.listing"},
			Strategy:      pagesift.StrategyAttribute,
			AttributeName: "href",
		})

		require.True(t, ok)
		assert.Equal(t, "https://example.com/item/9", v)
	})

	t.Run("element regex returns first capture group", func(t *testing.T) {
		t.Parallel()

		doc := parseDoc(t, `<html><body><div class="meta">SKU: AB-9981 (in stock)</div></body></html>`)

		r := newResolver()
		v, ok := r.Resolve(doc, pagesift.FieldDescriptor{
			Name:          "sku",
			Type:          pagesift.FieldText,
			Selectors:     []string{".meta"},
			RegexPatterns: []string{`SKU:\s*([A-Z]+-\d+)`},
		})

		require.True(t, ok)
		assert.Equal(t, "AB-9981", v)
	})

	t.Run("regex strategy yields nothing when no pattern matches the element", func(t *testing.T) {
		t.Parallel()

		doc := parseDoc(t, `<html><body><div class="meta">no code here</div></body></html>`)

		r := newResolver()
		_, ok := r.Resolve(doc, pagesift.FieldDescriptor{
			Name:          "sku",
			Type:          pagesift.FieldText,
			Selectors:     []string{".meta"},
			Strategy:      pagesift.StrategyRegex,
			RegexPatterns: []string{`SKU:\s*([A-Z]+-\d+)`},
		})

		assert.False(t, ok)
	})

	t.Run("patterns compile case-insensitively", func(t *testing.T) {
		t.Parallel()

		doc := parseDoc(t, `<html><body><div class="meta">sku: ab-1234</div></body></html>`)

		r := newResolver()
		v, ok := r.Resolve(doc, pagesift.FieldDescriptor{
			Name:          "sku",
			Type:          pagesift.FieldText,
			Selectors:     []string{".meta"},
			RegexPatterns: []string{`SKU:\s*([A-Z]+-\d+)`},
		})

		require.True(t, ok)
		assert.Equal(t, "ab-1234", v)
	})

	t.Run("malformed regex pattern is skipped", func(t *testing.T) {
		t.Parallel()

		doc := parseDoc(t, `<html><body><div class="meta">SKU: AB-9981</div></body></html>`)

		r := newResolver()
		v, ok := r.Resolve(doc, pagesift.FieldDescriptor{
			Name:          "sku",
			Type:          pagesift.FieldText,
			Selectors:     []string{".meta"},
			RegexPatterns: []string{`([unclosed`, `SKU:\s*([A-Z]+-\d+)`},
		})

		require.True(t, ok)
		assert.Equal(t, "AB-9981", v)
	})
}

func TestResolver_DocumentRegex(t *testing.T) {
	t.Parallel()

	t.Run("multi-group matches join non-empty groups with spaces", func(t *testing.T) {
		t.Parallel()

		doc := parseDoc(t, `<html><body><p>Total: £1,299.50 today only.</p></body></html>`)

		r := newResolver()
		v, ok := r.Resolve(doc, pagesift.FieldDescriptor{
			Name:          "price",
			Type:          pagesift.FieldPrice,
			Selectors:     []string{".missing"},
			RegexPatterns: []string{`([€£$])\s?([\d,]+\.?\d*)`},
		})

		require.True(t, ok)
		assert.Equal(t, "£ 1,299.50", v)
	})

	t.Run("single-group pattern returns the group", func(t *testing.T) {
		t.Parallel()

		doc := parseDoc(t, `<html><body><p>Founded in 1987 in Belfast.</p></body></html>`)

		r := newResolver()
		v, ok := r.Resolve(doc, pagesift.FieldDescriptor{
			Name:          "founded",
			Type:          pagesift.FieldText,
			Selectors:     []string{".missing"},
			RegexPatterns: []string{`Founded in (\d{4})`},
		})

		require.True(t, ok)
		assert.Equal(t, "1987", v)
	})
}

func TestResolver_TypeDefaults(t *testing.T) {
	t.Parallel()

	t.Run("tel href unwraps to the phone number", func(t *testing.T) {
		t.Parallel()

		doc := parseDoc(t, `<html><body><a href="tel:+442892671234"></a></body></html>`)

		r := newResolver()
		v, ok := r.Resolve(doc, pagesift.FieldDescriptor{
			Name:       "phone_number",
			Type:       pagesift.FieldPhone,
			FormatFunc: pagesift.FormatPhone,
		})

		require.True(t, ok)
		assert.Equal(t, "+442892671234", v)
	})

	t.Run("mailto href unwraps to the address", func(t *testing.T) {
		t.Parallel()

		doc := parseDoc(t, `<html><body><a href="mailto:Info@Example.com">Email us</a></body></html>`)

		r := newResolver()
		v, ok := r.Resolve(doc, pagesift.FieldDescriptor{
			Name:       "email",
			Type:       pagesift.FieldEmail,
			FormatFunc: pagesift.FormatEmail,
		})

		require.True(t, ok)
		assert.Equal(t, "info@example.com", v)
	})

	t.Run("types without defaults resolve to nothing", func(t *testing.T) {
		t.Parallel()

		doc := parseDoc(t, `<html><body><p>true</p></body></html>`)

		r := newResolver()
		_, ok := r.Resolve(doc, pagesift.FieldDescriptor{
			Name: "in_stock",
			Type: pagesift.FieldBoolean,
		})

		assert.False(t, ok)
	})
}

func TestResolver_PostProcessing(t *testing.T) {
	t.Parallel()

	t.Run("validation pattern fully matches the formatted value", func(t *testing.T) {
		t.Parallel()

		doc := parseDoc(t, `<html><body><span class="phone">+44 28 9267 1234 ext 2</span></body></html>`)

		r := newResolver()
		_, ok := r.Resolve(doc, pagesift.FieldDescriptor{
			Name:              "phone_number",
			Type:              pagesift.FieldPhone,
			Selectors:         []string{".phone"},
			ValidationPattern: `\+44\d{10}`,
		})

		// raw text with the extension is not a full match
		assert.False(t, ok)
	})

	t.Run("validation applies after formatting", func(t *testing.T) {
		t.Parallel()

		doc := parseDoc(t, `<html><body><span class="phone">+44 28 9267 1234</span></body></html>`)

		r := newResolver()
		v, ok := r.Resolve(doc, pagesift.FieldDescriptor{
			Name:              "phone_number",
			Type:              pagesift.FieldPhone,
			Selectors:         []string{".phone"},
			FormatFunc:        pagesift.FormatPhone,
			ValidationPattern: `\+44\d{10}`,
		})

		require.True(t, ok)
		assert.Equal(t, "+442892671234", v)
	})

	t.Run("malformed validation pattern is ignored", func(t *testing.T) {
		t.Parallel()

		doc := parseDoc(t, `<html><body><span class="name">Acme Ltd</span></body></html>`)

		r := newResolver()
		v, ok := r.Resolve(doc, pagesift.FieldDescriptor{
			Name:              "company_name",
			Type:              pagesift.FieldText,
			Selectors:         []string{".name"},
			ValidationPattern: `([broken`,
		})

		require.True(t, ok)
		assert.Equal(t, "Acme Ltd", v)
	})

	t.Run("formatter rejections drop candidates, later ones survive", func(t *testing.T) {
		t.Parallel()

		doc := parseDoc(t, `<html><body>
			<span class="contact">not an email</span>
			<span class="contact">sales@example.com</span>
		</body></html>`)

		r := newResolver()
		v, ok := r.Resolve(doc, pagesift.FieldDescriptor{
			Name:       "email",
			Type:       pagesift.FieldEmail,
			Selectors:  []string{".contact"},
			FormatFunc: pagesift.FormatEmail,
		})

		require.True(t, ok)
		assert.Equal(t, "sales@example.com", v)
	})

	t.Run("multi-valued fields deduplicate preserving document order", func(t *testing.T) {
		t.Parallel()

		doc := parseDoc(t, `<html><body>
			<li class="service">Design</li>
			<li class="service">Delivery</li>
			<li class="service">Design</li>
			<li class="service">Restoration</li>
		</body></html>`)

		r := newResolver()
		v, ok := r.Resolve(doc, pagesift.FieldDescriptor{
			Name:           "services",
			Type:           pagesift.FieldText,
			Selectors:      []string{".service"},
			MultipleValues: true,
		})

		require.True(t, ok)
		assert.Equal(t, []any{"Design", "Delivery", "Restoration"}, v)
	})

	t.Run("single-valued fields return the first candidate", func(t *testing.T) {
		t.Parallel()

		doc := parseDoc(t, `<html><body>
			<h1 class="title">First</h1>
			<h1 class="title">Second</h1>
		</body></html>`)

		r := newResolver()
		v, ok := r.Resolve(doc, pagesift.FieldDescriptor{
			Name:      "title",
			Type:      pagesift.FieldText,
			Selectors: []string{".title"},
		})

		require.True(t, ok)
		assert.Equal(t, "First", v)
	})
}
