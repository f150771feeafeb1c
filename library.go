package pagesift

import "sort"

// TemplateInfo summarizes a library template for listings.
type TemplateInfo struct {
	Name           string `json:"name"`
	Description    string `json:"description"`
	Category       string `json:"category"`
	ExampleUseCase string `json:"example_use_case"`
}

// Library is a registry of named, pre-built extraction templates.
// It is populated at construction and read-only thereafter.
type Library struct {
	templates map[string]*Template
	useCases  map[string]string
}

// NewLibrary returns a library populated with the built-in templates.
func NewLibrary() *Library {
	l := &Library{
		templates: make(map[string]*Template),
		useCases:  make(map[string]string),
	}
	l.register(personContactsTemplate(), "Finding phone and email for a named person")
	l.register(productListingTemplate(), "Finding products with price and physical dimensions")
	l.register(companyProfileTemplate(), "Building contact profiles for companies in a niche")
	return l
}

func (l *Library) register(t *Template, useCase string) {
	l.templates[t.Name] = t
	l.useCases[t.Name] = useCase
}

// Get returns the template with the given name.
// Returns ENOTFOUND if no such template exists.
func (l *Library) Get(name string) (*Template, error) {
	t, ok := l.templates[name]
	if !ok {
		return nil, Errorf(ENOTFOUND, "template %q not found", name)
	}
	return t, nil
}

// List returns summaries of all library templates, sorted by name.
func (l *Library) List() []TemplateInfo {
	infos := make([]TemplateInfo, 0, len(l.templates))
	for name, t := range l.templates {
		infos = append(infos, TemplateInfo{
			Name:           name,
			Description:    t.Description,
			Category:       t.Category,
			ExampleUseCase: l.useCases[name],
		})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos
}

// personContactsTemplate extracts contact details for person searches.
func personContactsTemplate() *Template {
	return &Template{
		Name:        "person_contacts",
		Description: "Extract phone numbers and email addresses for person searches",
		Category:    "person",
		Fields: []FieldDescriptor{
			{
				Name: "phone_number",
				Type: FieldPhone,
				Selectors: []string{
					".phone", ".telephone", ".contact-phone", ".mobile",
					"a[href^='tel:']", "[data-phone]", ".phone-number",
				},
				RegexPatterns: []string{
					`(?:\+44|0)[\s-]?(?:\d[\s-]?){10}`,
					`(?:\+353|0)[\s-]?(?:\d[\s-]?){8,9}`,
					`(?:\+\d{1,3})?[\s-]?(?:\d[\s-]?){7,14}`,
				},
				FallbackSelectors: []string{".contact", ".info", "[aria-label*='phone']"},
				Required:          true,
				FormatFunc:        FormatPhone,
				ValidationPattern: `[\d+\s-]+`,
			},
			{
				Name: "email_address",
				Type: FieldEmail,
				Selectors: []string{
					".email", ".contact-email", "a[href^='mailto:']",
					"[data-email]", ".email-address",
				},
				RegexPatterns: []string{
					`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`,
				},
				FallbackSelectors: []string{".contact", ".info", "[aria-label*='email']"},
				Required:          true,
				FormatFunc:        FormatEmail,
				ValidationPattern: `[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`,
			},
			{
				Name: "full_name",
				Type: FieldText,
				Selectors: []string{
					"h1", "h2", ".name", ".person-name", ".profile-name",
					".contact-name", "[data-name]",
				},
			},
			{
				Name: "location",
				Type: FieldAddress,
				Selectors: []string{
					".address", ".location", ".city", ".area",
					"[data-location]", ".contact-address",
				},
				FormatFunc: FormatAddress,
			},
		},
		PriorityFields: []string{"phone_number", "email_address"},
		OptionalFields: []string{"full_name", "location"},
		Rules: ValidationRules{
			MinPriorityFields: 1,
		},
	}
}

// productListingTemplate extracts listing details for physical products.
func productListingTemplate() *Template {
	priceMin, priceMax := 50.0, 5000.0
	return &Template{
		Name:        "product_listing",
		Description: "Extract URL, seller, price, and dimensions for product listings",
		Category:    "product",
		Fields: []FieldDescriptor{
			{
				Name: "product_url",
				Type: FieldURL,
				Selectors: []string{
					"a[href*='product']", ".product-link", "a.product-title",
					"[data-product-url]",
				},
				Strategy:      StrategyAttribute,
				AttributeName: "href",
				Required:      true,
				FormatFunc:    FormatURL,
			},
			{
				Name: "seller",
				Type: FieldText,
				Selectors: []string{
					".brand", ".company", ".manufacturer", ".seller",
					".store-name", "[data-brand]", ".vendor",
				},
				FallbackSelectors: []string{".logo img", "img[alt*='logo']", ".header .brand"},
				Required:          true,
			},
			{
				Name: "price",
				Type: FieldPrice,
				Selectors: []string{
					".price", ".cost", ".amount", "[data-price]",
					".price-current", ".product-price", ".sale-price",
				},
				RegexPatterns: []string{
					`([€£$¥₹])\s?([\d,]+\.?\d*)`,
					`([\d,]+\.?\d*)\s+(EUR|GBP|USD|AUD|CAD)`,
				},
				Required:   true,
				FormatFunc: FormatPrice,
			},
			{
				Name: "dimensions",
				Type: FieldDimensions,
				Selectors: []string{
					".dimensions", ".size", ".measurements", "[data-dimensions]",
					".product-size", ".specs", ".specifications", ".details",
				},
				RegexPatterns: []string{
					`(\d+(?:\.\d+)?)\s*[×xX]\s*(\d+(?:\.\d+)?)\s*[×xX]\s*(\d+(?:\.\d+)?)\s*(cm|mm|m)`,
					`L:\s*(\d+(?:\.\d+)?)\s*W:\s*(\d+(?:\.\d+)?)\s*H:\s*(\d+(?:\.\d+)?)\s*(cm|mm|m)`,
				},
				ContextKeywords: []string{"dimensions", "size", "measurements"},
				Required:        true,
				FormatFunc:      FormatDimensions,
			},
			{
				Name: "available_in",
				Type: FieldAddress,
				Selectors: []string{
					".location", ".availability", ".delivery", ".shipping",
					".store-location", "[data-location]",
				},
				RegexPatterns: []string{
					`(?:Available in|Ships to|Delivery to)[\s:]*([^,]+)`,
				},
				ContextKeywords: []string{"available", "delivery", "shipping"},
			},
			{
				Name: "material",
				Type: FieldText,
				Selectors: []string{
					".material", ".construction", "[data-material]",
				},
				RegexPatterns: []string{
					`Material[\s:]*([^,\n]+)`,
				},
				ContextKeywords: []string{"material"},
			},
		},
		PriorityFields: []string{"product_url", "seller", "price", "dimensions"},
		OptionalFields: []string{"available_in", "material"},
		Rules: ValidationRules{
			Ranges: map[string]RangeFilter{
				"price": {Min: &priceMin, Max: &priceMax},
			},
		},
	}
}

// companyProfileTemplate extracts a full contact profile for company searches.
func companyProfileTemplate() *Template {
	return &Template{
		Name:        "company_profile",
		Description: "Extract name, address, contacts, rating, and pricing for companies",
		Category:    "company",
		Fields: []FieldDescriptor{
			{
				Name: "company_name",
				Type: FieldText,
				Selectors: []string{
					"h1", ".company-name", ".business-name", ".org-name",
					"[data-company]", ".header .brand",
				},
				Required: true,
			},
			{
				Name: "address",
				Type: FieldAddress,
				Selectors: []string{
					".address", ".location", ".office-address", ".headquarters",
					"[data-address]", ".contact-address", ".street-address",
				},
				Required:   true,
				FormatFunc: FormatAddress,
			},
			{
				Name: "phone_number",
				Type: FieldPhone,
				Selectors: []string{
					".phone", ".telephone", ".contact-phone", "a[href^='tel:']",
					"[data-phone]", ".phone-number",
				},
				RegexPatterns: []string{
					`(?:\+\d{1,3})?[\s-]?(?:\d[\s-]?){7,14}`,
				},
				Required:   true,
				FormatFunc: FormatPhone,
			},
			{
				Name: "website",
				Type: FieldURL,
				Selectors: []string{
					".website", ".url", "[data-website]", ".company-website",
					".external-link",
				},
				Strategy:      StrategyAttribute,
				AttributeName: "href",
				Required:      true,
				FormatFunc:    FormatURL,
			},
			{
				Name: "rating",
				Type: FieldRating,
				Selectors: []string{
					".rating", ".review", ".stars", ".score", "[data-rating]",
					".review-rating", ".customer-rating",
				},
				RegexPatterns: []string{
					`(\d+(?:\.\d+)?)\s*(?:out of|/)\s*(\d+)`,
					`(\d+(?:\.\d+)?)\s*stars?`,
				},
				MultipleValues: true,
				FormatFunc:     FormatRating,
			},
			{
				Name: "price_range",
				Type: FieldText,
				Selectors: []string{
					".pricing", ".rates", ".cost", ".price-range",
					"[data-pricing]", ".hourly-rate",
				},
				RegexPatterns: []string{
					`(?:€|EUR)\s*(\d+)\s*-\s*(\d+)`,
					`(?:Starting from|From)\s*(?:€|EUR)\s*(\d+)`,
				},
				ContextKeywords: []string{"price", "cost", "rate"},
				Required:        true,
			},
			{
				Name: "services",
				Type: FieldText,
				Selectors: []string{
					".services", ".specialization", ".expertise", ".skills",
					"[data-services]", ".capabilities",
				},
				MultipleValues: true,
			},
			{
				Name: "team_size",
				Type: FieldNumber,
				Selectors: []string{
					".team-size", ".employees", ".staff", "[data-team-size]",
				},
				RegexPatterns: []string{
					`(\d+)\s*(?:employees|staff|people|team members)`,
					`Team of\s*(\d+)`,
				},
				FormatFunc: FormatNumber,
			},
			{
				Name: "email",
				Type: FieldEmail,
				Selectors: []string{
					".email", ".contact-email", "a[href^='mailto:']",
					"[data-email]", ".business-email",
				},
				RegexPatterns: []string{
					`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`,
				},
				FormatFunc: FormatEmail,
			},
		},
		PriorityFields: []string{"company_name", "address", "phone_number", "website", "price_range"},
		OptionalFields: []string{"rating", "services", "team_size", "email"},
		Rules: ValidationRules{
			MinPriorityFields: 4,
		},
	}
}
