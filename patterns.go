package pagesift

// Tier identifies one stage of the cascading resolution order. Resolution
// stops at the first tier yielding at least one valid candidate.
type Tier int

// Resolution tiers, ordered by confidence.
const (
	TierNone Tier = iota
	TierStructural
	TierRegex
	TierFallback
	TierTypeDefault
)

// String returns the tier's display name.
func (t Tier) String() string {
	switch t {
	case TierStructural:
		return "structural"
	case TierRegex:
		return "regex"
	case TierFallback:
		return "fallback"
	case TierTypeDefault:
		return "type_default"
	}
	return "none"
}

// TypePattern holds the last-resort defaults for one field type: generic
// structural selectors tried first, then regex patterns over the whole
// document text.
type TypePattern struct {
	Selectors []string
	Patterns  []string
}

// TypePatterns maps field types to their built-in defaults. The table is
// built once by DefaultTypePatterns and treated as read-only; it is passed
// into resolvers explicitly rather than held as package state.
type TypePatterns map[FieldType]TypePattern

// DefaultTypePatterns returns the built-in selector and pattern defaults.
// Types without an entry (text, date, boolean) have no generic fallback.
func DefaultTypePatterns() TypePatterns {
	return TypePatterns{
		FieldPhone: {
			Selectors: []string{
				"a[href^='tel:']", ".phone", ".telephone", ".contact-phone",
				"[data-phone]", ".phone-number", "[aria-label*='phone']",
			},
			Patterns: []string{
				`(?:\+44|0)[\s-]?(?:\d[\s-]?){10}`,
				`(?:\+353|0)[\s-]?(?:\d[\s-]?){8,9}`,
				`(?:\+1)?[\s-]?(?:\d[\s-]?){10}`,
				`(?:\+\d{1,3})?[\s-]?(?:\d[\s-]?){7,14}`,
			},
		},
		FieldEmail: {
			Selectors: []string{
				"a[href^='mailto:']", ".email", ".contact-email",
				"[data-email]", "[aria-label*='email']",
			},
			Patterns: []string{
				`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`,
			},
		},
		FieldPrice: {
			Selectors: []string{
				".price", ".cost", ".amount", "[data-price]",
				".price-current", ".product-price", "[aria-label*='price']",
			},
			Patterns: []string{
				`([€£$¥₹])\s?([\d,]+\.?\d*)`,
				`([\d,]+\.?\d*)\s+(EUR|GBP|USD|AUD|CAD)`,
				`Price[:\s]+([€£$¥₹])\s?([\d,]+\.?\d*)`,
			},
		},
		FieldDimensions: {
			Selectors: []string{
				".dimensions", ".size", ".measurements", "[data-dimensions]",
				".product-size", ".specs", ".specifications",
			},
			Patterns: []string{
				`(\d+(?:\.\d+)?)\s*[×xX]\s*(\d+(?:\.\d+)?)\s*[×xX]\s*(\d+(?:\.\d+)?)\s*(cm|mm|m|inch|in|ft)`,
				`L:\s*(\d+(?:\.\d+)?)\s*W:\s*(\d+(?:\.\d+)?)\s*H:\s*(\d+(?:\.\d+)?)\s*(cm|mm|m)`,
				`(\d+(?:\.\d+)?)\s*(cm|mm|m|inch|in|ft)\s*[×xX]\s*(\d+(?:\.\d+)?)\s*(cm|mm|m|inch|in|ft)`,
			},
		},
		FieldAddress: {
			Selectors: []string{
				".address", ".location", ".contact-address", "[data-address]",
				".street-address", ".postal-address", "[aria-label*='address']",
			},
			Patterns: []string{
				`\d+\s+[\w\s]+(?:Street|St|Road|Rd|Avenue|Ave|Lane|Ln|Drive|Dr|Boulevard|Blvd)`,
				`[\w\s]+,\s*[\w\s]+,\s*[A-Z]{2,3}\s*\d*`,
			},
		},
		FieldURL: {
			Selectors: []string{
				"a[href^='http']", ".website", ".url", "[data-url]",
				".company-website", "[aria-label*='website']",
			},
			Patterns: []string{
				`https?://[^\s]+`,
			},
		},
		FieldRating: {
			Selectors: []string{
				".rating", ".stars", ".score", "[data-rating]",
				".review-rating", ".product-rating", "[aria-label*='rating']",
			},
			Patterns: []string{
				`(\d+(?:\.\d+)?)\s*(?:out of|/)\s*(\d+)`,
				`(\d+(?:\.\d+)?)\s*stars?`,
				`Rating:\s*(\d+(?:\.\d+)?)`,
			},
		},
	}
}
