package pagesift

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

// FormatterName identifies a built-in formatter. The set is closed;
// FieldDescriptor.Validate rejects unknown names at construction time
// rather than failing on first use.
type FormatterName string

// Built-in formatters.
const (
	FormatNone       FormatterName = ""
	FormatPhone      FormatterName = "phone"
	FormatEmail      FormatterName = "email"
	FormatPrice      FormatterName = "price"
	FormatDimensions FormatterName = "dimensions"
	FormatAddress    FormatterName = "address"
	FormatURL        FormatterName = "url"
	FormatRating     FormatterName = "rating"
	FormatNumber     FormatterName = "number"
	FormatPercent    FormatterName = "percent"
)

// Valid reports whether n is a known formatter name (including the empty
// "no formatter" value).
func (n FormatterName) Valid() bool {
	switch n {
	case FormatNone, FormatPhone, FormatEmail, FormatPrice, FormatDimensions,
		FormatAddress, FormatURL, FormatRating, FormatNumber, FormatPercent:
		return true
	}
	return false
}

// FormatFunc normalizes a raw matched string into a typed value.
// It reports false when the input is malformed; the candidate is then
// dropped, never surfaced as an error.
type FormatFunc func(raw string) (any, bool)

// FormatterRegistry maps formatter names to their implementations.
// Registries are built once and treated as read-only thereafter.
type FormatterRegistry map[FormatterName]FormatFunc

// NewFormatterRegistry returns the built-in formatter table.
func NewFormatterRegistry() FormatterRegistry {
	return FormatterRegistry{
		FormatPhone:      formatPhone,
		FormatEmail:      formatEmail,
		FormatPrice:      formatPrice,
		FormatDimensions: formatDimensions,
		FormatAddress:    formatAddress,
		FormatURL:        formatURL,
		FormatRating:     formatRating,
		FormatNumber:     formatNumber,
		FormatPercent:    formatPercent,
	}
}

// DefaultFormatter returns the formatter conventionally paired with a field
// type, or FormatNone for types formatted as plain trimmed text.
func DefaultFormatter(t FieldType) FormatterName {
	switch t {
	case FieldPhone:
		return FormatPhone
	case FieldEmail:
		return FormatEmail
	case FieldPrice:
		return FormatPrice
	case FieldDimensions:
		return FormatDimensions
	case FieldAddress:
		return FormatAddress
	case FieldURL:
		return FormatURL
	case FieldRating:
		return FormatRating
	case FieldNumber:
		return FormatNumber
	case FieldPercent:
		return FormatPercent
	}
	return FormatNone
}

// Price is a parsed monetary value. Currency holds a symbol (e.g. "£"),
// Code an ISO-style code (e.g. "GBP"); exactly one is set depending on
// which form the source text used.
type Price struct {
	Currency  string  `json:"currency,omitempty"`
	Code      string  `json:"currency_code,omitempty"`
	Amount    float64 `json:"amount"`
	Formatted string  `json:"formatted"`
}

// Dimensions is a parsed length×width×height measurement.
type Dimensions struct {
	Length    float64 `json:"length"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	Unit      string  `json:"unit"`
	Formatted string  `json:"formatted"`
}

// Rating is a parsed review score normalized to a 0–100 percentage.
type Rating struct {
	Score     float64 `json:"score"`
	Max       float64 `json:"max_score"`
	Percent   float64 `json:"percentage"`
	Formatted string  `json:"formatted"`
}

var (
	nonPhoneRE      = regexp.MustCompile(`[^\d]`)
	emailRE         = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	priceSymbolRE   = regexp.MustCompile(`([€£$¥₹])\s?([\d,]+\.?\d*)`)
	priceCodeRE     = regexp.MustCompile(`(?i)([\d,]+\.?\d*)\s+(EUR|GBP|USD|AUD|CAD)`)
	dimensionsRE    = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(?:cm|mm|m|inch|in|ft)?\s*[×xX]\s*(\d+(?:\.\d+)?)\s*(?:cm|mm|m|inch|in|ft)?\s*[×xX]\s*(\d+(?:\.\d+)?)\s*(cm|mm|m|inch|in|ft)`)
	dimensionsLblRE = regexp.MustCompile(`(?i)L:\s*(\d+(?:\.\d+)?)\s*W:\s*(\d+(?:\.\d+)?)\s*H:\s*(\d+(?:\.\d+)?)\s*(cm|mm|m)`)
	whitespaceRE    = regexp.MustCompile(`\s+`)
	ratingOutOfRE   = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:out of|/)\s*(\d+)`)
	ratingStarsRE   = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*stars?`)
	ratingPctRE     = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*%`)
	numberRE        = regexp.MustCompile(`-?\d[\d,]*\.?\d*`)
	percentRE       = regexp.MustCompile(`(-?\d+(?:\.\d+)?)\s*%`)
)

// formatPhone strips everything but digits, retaining a leading plus.
// Invalid if fewer than 7 digits remain.
func formatPhone(raw string) (any, bool) {
	trimmed := strings.TrimSpace(raw)
	digits := nonPhoneRE.ReplaceAllString(trimmed, "")
	if len(digits) < 7 {
		return nil, false
	}
	if strings.HasPrefix(trimmed, "+") {
		return "+" + digits, true
	}
	return digits, true
}

// formatEmail lowercases and validates a local@domain.tld shape.
func formatEmail(raw string) (any, bool) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if !emailRE.MatchString(email) {
		return nil, false
	}
	return email, true
}

// formatPrice extracts a currency symbol or code and a numeric amount.
func formatPrice(raw string) (any, bool) {
	if m := priceSymbolRE.FindStringSubmatch(raw); m != nil {
		amount, err := strconv.ParseFloat(strings.ReplaceAll(m[2], ",", ""), 64)
		if err == nil {
			return Price{
				Currency:  m[1],
				Amount:    amount,
				Formatted: m[1] + formatAmount(amount),
			}, true
		}
	}
	if m := priceCodeRE.FindStringSubmatch(raw); m != nil {
		amount, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
		if err == nil {
			code := strings.ToUpper(m[2])
			return Price{
				Code:      code,
				Amount:    amount,
				Formatted: formatAmount(amount) + " " + code,
			}, true
		}
	}
	return nil, false
}

// formatAmount renders a monetary amount with two decimals and
// comma-grouped thousands.
func formatAmount(amount float64) string {
	s := strconv.FormatFloat(amount, 'f', 2, 64)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	dot := strings.IndexByte(s, '.')
	intPart, frac := s[:dot], s[dot:]
	if len(intPart) <= 3 {
		return sign + s
	}
	var b strings.Builder
	b.WriteString(sign)
	for i, c := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	b.WriteString(frac)
	return b.String()
}

// formatDimensions parses "NxNxN unit" (units optionally repeated per
// number) or labeled "L: W: H:" forms in length, width, height order.
func formatDimensions(raw string) (any, bool) {
	m := dimensionsRE.FindStringSubmatch(raw)
	if m == nil {
		m = dimensionsLblRE.FindStringSubmatch(raw)
	}
	if m == nil {
		return nil, false
	}
	length, err1 := strconv.ParseFloat(m[1], 64)
	width, err2 := strconv.ParseFloat(m[2], 64)
	height, err3 := strconv.ParseFloat(m[3], 64)
	if err1 != nil || err2 != nil || err3 != nil {
		return nil, false
	}
	unit := strings.ToLower(m[4])
	return Dimensions{
		Length:    length,
		Width:     width,
		Height:    height,
		Unit:      unit,
		Formatted: fmt.Sprintf("%v×%v×%v %s", length, width, height, unit),
	}, true
}

// formatAddress collapses internal whitespace. Invalid if the result is
// too short to be a plausible address.
func formatAddress(raw string) (any, bool) {
	address := strings.TrimSpace(whitespaceRE.ReplaceAllString(raw, " "))
	if len(address) <= 5 {
		return nil, false
	}
	return address, true
}

// formatURL prepends a default scheme when missing. Invalid if the result
// has no host component.
func formatURL(raw string) (any, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil, false
	}
	if !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") {
		s = "https://" + s
	}
	u, err := url.Parse(s)
	if err != nil || u.Host == "" {
		return nil, false
	}
	return s, true
}

// formatRating parses "X out of Y", "X/Y", "X stars" (5-point scale), or
// a bare percentage, normalizing to a 0–100 percentage.
func formatRating(raw string) (any, bool) {
	if m := ratingOutOfRE.FindStringSubmatch(raw); m != nil {
		score, err1 := strconv.ParseFloat(m[1], 64)
		max, err2 := strconv.ParseFloat(m[2], 64)
		if err1 == nil && err2 == nil && max != 0 {
			return Rating{
				Score:     score,
				Max:       max,
				Percent:   score / max * 100,
				Formatted: fmt.Sprintf("%v/%v", score, max),
			}, true
		}
		return nil, false
	}
	if m := ratingStarsRE.FindStringSubmatch(raw); m != nil {
		score, err := strconv.ParseFloat(m[1], 64)
		if err == nil {
			return Rating{
				Score:     score,
				Max:       5,
				Percent:   score / 5 * 100,
				Formatted: fmt.Sprintf("%v/5 stars", score),
			}, true
		}
	}
	if m := ratingPctRE.FindStringSubmatch(raw); m != nil {
		pct, err := strconv.ParseFloat(m[1], 64)
		if err == nil {
			return Rating{
				Score:     pct,
				Max:       100,
				Percent:   pct,
				Formatted: m[1] + "%",
			}, true
		}
	}
	return nil, false
}

// formatNumber extracts the first numeric token, normalizing comma grouping.
func formatNumber(raw string) (any, bool) {
	m := numberRE.FindString(raw)
	if m == "" {
		return nil, false
	}
	n, err := strconv.ParseFloat(strings.ReplaceAll(m, ",", ""), 64)
	if err != nil {
		return nil, false
	}
	return n, true
}

// formatPercent extracts a percentage value as a float64.
func formatPercent(raw string) (any, bool) {
	m := percentRE.FindStringSubmatch(raw)
	if m == nil {
		return nil, false
	}
	n, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return nil, false
	}
	return n, true
}
