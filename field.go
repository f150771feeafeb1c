package pagesift

// FieldType classifies the data a field is expected to hold. The type
// selects the built-in selector/pattern defaults used as a last-resort
// resolution tier and the default formatter for ad hoc templates.
type FieldType string

// Supported field types. The set is closed: resolution and formatting
// dispatch on these tags through tables built at construction time.
const (
	FieldText       FieldType = "text"
	FieldNumber     FieldType = "number"
	FieldPrice      FieldType = "price"
	FieldPhone      FieldType = "phone"
	FieldEmail      FieldType = "email"
	FieldURL        FieldType = "url"
	FieldAddress    FieldType = "address"
	FieldDimensions FieldType = "dimensions"
	FieldDate       FieldType = "date"
	FieldRating     FieldType = "rating"
	FieldBoolean    FieldType = "boolean"
	FieldPercent    FieldType = "percentage"
)

// Valid reports whether t is a known field type.
func (t FieldType) Valid() bool {
	switch t {
	case FieldText, FieldNumber, FieldPrice, FieldPhone, FieldEmail,
		FieldURL, FieldAddress, FieldDimensions, FieldDate, FieldRating,
		FieldBoolean, FieldPercent:
		return true
	}
	return false
}

// Strategy governs how a value is pulled from a matched element.
type Strategy string

// Extraction strategies.
const (
	// StrategyText extracts the element's visible text. When the field
	// also carries regex patterns, the first pattern matching within the
	// element text wins instead of the full text.
	StrategyText Strategy = "text_content"

	// StrategyAttribute extracts a named attribute (e.g. a link target).
	StrategyAttribute Strategy = "attribute"

	// StrategyRegex extracts via the field's regex patterns only.
	StrategyRegex Strategy = "regex"

	// StrategyMultiple extracts every matching value rather than one.
	StrategyMultiple Strategy = "multiple_values"
)

// FieldDescriptor declares how to locate, validate, and format one named
// datum on a page. Descriptors are immutable configuration: built once,
// reused across many documents.
type FieldDescriptor struct {
	// Name is the field's key in the output record, unique within a template.
	Name string

	// Type selects built-in defaults and the ad hoc default formatter.
	Type FieldType

	// Selectors are structural (CSS) queries tried first, in order.
	Selectors []string

	// FallbackSelectors are tried only after Selectors and RegexPatterns
	// both come up empty.
	FallbackSelectors []string

	// RegexPatterns are tried against element text (structural tiers) or
	// the whole document text (regex tier). Patterns compile
	// case-insensitively; a pattern that fails to compile is skipped.
	RegexPatterns []string

	// Strategy governs value extraction from matched elements.
	// Defaults to StrategyText when empty.
	Strategy Strategy

	// AttributeName names the attribute to read; set iff Strategy is
	// StrategyAttribute.
	AttributeName string

	// Required marks the field as present-but-null in the output when no
	// value resolves, distinguishing "checked, absent" from "not attempted".
	Required bool

	// MultipleValues returns every surviving candidate instead of the first.
	MultipleValues bool

	// ValidationPattern discards candidates whose formatted string
	// representation does not fully match it.
	ValidationPattern string

	// FormatFunc names the formatter applied to raw candidates. When empty
	// the raw string is used with only whitespace trimming.
	FormatFunc FormatterName

	// ContextKeywords are free-text hints consumed by template-level
	// validation rules, never by resolution itself.
	ContextKeywords []string
}

// Validate returns an error if the descriptor contains invalid fields.
func (f *FieldDescriptor) Validate() error {
	if f.Name == "" {
		return Errorf(EINVALID, "field name required")
	}
	if !f.Type.Valid() {
		return Errorf(EINVALID, "field %q has unknown type %q", f.Name, f.Type)
	}
	switch f.Strategy {
	case "", StrategyText, StrategyRegex, StrategyMultiple:
		if f.AttributeName != "" {
			return Errorf(EINVALID, "field %q sets an attribute name without the attribute strategy", f.Name)
		}
	case StrategyAttribute:
		if f.AttributeName == "" {
			return Errorf(EINVALID, "field %q uses the attribute strategy without an attribute name", f.Name)
		}
	default:
		return Errorf(EINVALID, "field %q has unknown extraction strategy %q", f.Name, f.Strategy)
	}
	if !f.FormatFunc.Valid() {
		return Errorf(EINVALID, "field %q names unknown format function %q", f.Name, f.FormatFunc)
	}
	return nil
}
