package pagesift

import "strings"

// TemplateBuilder assembles a Template incrementally: set the metadata, add
// fields one at a time flagged priority or optional, attach validation
// rules, then Build. Build validates; the zero builder is usable.
type TemplateBuilder struct {
	tmpl Template
}

// NewTemplateBuilder returns an empty builder.
func NewTemplateBuilder() *TemplateBuilder {
	return &TemplateBuilder{}
}

// SetInfo sets the template's name, description, and search category.
func (b *TemplateBuilder) SetInfo(name, description, category string) *TemplateBuilder {
	b.tmpl.Name = name
	b.tmpl.Description = description
	b.tmpl.Category = category
	return b
}

// AddField appends a field descriptor, registering its name as priority or
// optional.
func (b *TemplateBuilder) AddField(f FieldDescriptor, priority bool) *TemplateBuilder {
	b.tmpl.Fields = append(b.tmpl.Fields, f)
	if priority {
		b.tmpl.PriorityFields = append(b.tmpl.PriorityFields, f.Name)
	} else {
		b.tmpl.OptionalFields = append(b.tmpl.OptionalFields, f.Name)
	}
	return b
}

// SetMinPriorityFields sets the minimum populated priority field count.
func (b *TemplateBuilder) SetMinPriorityFields(n int) *TemplateBuilder {
	b.tmpl.Rules.MinPriorityFields = n
	return b
}

// AddKeywordRule requires at least one of keywords to appear in the record.
func (b *TemplateBuilder) AddKeywordRule(name string, keywords ...string) *TemplateBuilder {
	b.tmpl.Rules.Keywords = append(b.tmpl.Rules.Keywords, KeywordFilter{Name: name, Keywords: keywords})
	return b
}

// AddExcludeKeywords forbids keywords from appearing in the record.
func (b *TemplateBuilder) AddExcludeKeywords(keywords ...string) *TemplateBuilder {
	b.tmpl.Rules.Exclude = append(b.tmpl.Rules.Exclude, keywords...)
	return b
}

// AddRangeRule bounds the named numeric field. Nil bounds are open.
func (b *TemplateBuilder) AddRangeRule(field string, min, max *float64) *TemplateBuilder {
	if b.tmpl.Rules.Ranges == nil {
		b.tmpl.Rules.Ranges = make(map[string]RangeFilter)
	}
	b.tmpl.Rules.Ranges[field] = RangeFilter{Min: min, Max: max}
	return b
}

// Build validates and returns the assembled template.
func (b *TemplateBuilder) Build() (*Template, error) {
	tmpl := b.tmpl
	if err := tmpl.Validate(); err != nil {
		return nil, err
	}
	return &tmpl, nil
}

// AdHocField names a desired field for BuildAdHocTemplate.
type AdHocField struct {
	Name     string
	Priority bool
}

// typeInference maps name substrings to field types. Matching is a linear
// scan in this exact order with first hit winning, so a name matching
// several keys (e.g. "update_date_range") classifies deterministically:
// earlier entries shadow later ones.
var typeInference = []struct {
	key string
	t   FieldType
}{
	{"phone", FieldPhone},
	{"email", FieldEmail},
	{"price", FieldPrice},
	{"dimensions", FieldDimensions},
	{"address", FieldAddress},
	{"url", FieldURL},
	{"rating", FieldRating},
	{"percentage", FieldPercent},
	{"number", FieldNumber},
	{"date", FieldDate},
}

// inferFieldType guesses a field's type from its name by substring match,
// defaulting to text. See typeInference for the match order.
func inferFieldType(name string) FieldType {
	lower := strings.ToLower(name)
	for _, entry := range typeInference {
		if strings.Contains(lower, entry.key) {
			return entry.t
		}
	}
	return FieldText
}

// BuildAdHocTemplate assembles a zero-configuration template from bare
// field names. Each field's type is inferred from its name, selectors are
// guessed from class-name and data-attribute conventions, and the type's
// default formatter is attached. Ad hoc templates trade precision for
// convenience and lean heavily on the built-in type-pattern fallback tier.
func BuildAdHocTemplate(name, category string, fields []AdHocField) (*Template, error) {
	if len(fields) == 0 {
		return nil, Errorf(EINVALID, "at least one field name required")
	}
	b := NewTemplateBuilder().SetInfo(name, "Ad hoc extraction for "+category, category)
	for _, f := range fields {
		fieldType := inferFieldType(f.Name)
		dashed := strings.ReplaceAll(f.Name, "_", "-")
		selectors := []string{"." + f.Name, "[data-" + dashed + "]"}
		if dashed != f.Name {
			selectors = append(selectors, "."+dashed)
		}
		b.AddField(FieldDescriptor{
			Name:       f.Name,
			Type:       fieldType,
			Selectors:  selectors,
			FormatFunc: DefaultFormatter(fieldType),
		}, f.Priority)
	}
	return b.Build()
}
