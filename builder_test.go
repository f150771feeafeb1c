package pagesift_test

import (
	"testing"

	"github.com/pagesift/pagesift"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateBuilder(t *testing.T) {
	t.Parallel()

	t.Run("assembles a template with fields and rules", func(t *testing.T) {
		t.Parallel()

		priceMin := 50.0
		tmpl, err := pagesift.NewTemplateBuilder().
			SetInfo("custom", "Custom product search", "product").
			AddField(pagesift.FieldDescriptor{Name: "price", Type: pagesift.FieldPrice}, true).
			AddField(pagesift.FieldDescriptor{Name: "material", Type: pagesift.FieldText}, false).
			SetMinPriorityFields(1).
			AddKeywordRule("location", "Belfast", "Dublin").
			AddExcludeKeywords("wholesale").
			AddRangeRule("price", &priceMin, nil).
			Build()

		require.NoError(t, err)
		assert.Equal(t, "custom", tmpl.Name)
		assert.Equal(t, []string{"price"}, tmpl.PriorityFields)
		assert.Equal(t, []string{"material"}, tmpl.OptionalFields)
		assert.Equal(t, 1, tmpl.Rules.MinPriorityFields)
		require.Len(t, tmpl.Rules.Keywords, 1)
		assert.Equal(t, "location", tmpl.Rules.Keywords[0].Name)
		assert.Equal(t, []string{"wholesale"}, tmpl.Rules.Exclude)
		require.Contains(t, tmpl.Rules.Ranges, "price")
		assert.Equal(t, 50.0, *tmpl.Rules.Ranges["price"].Min)
		assert.Nil(t, tmpl.Rules.Ranges["price"].Max)
	})

	t.Run("build validates the assembled template", func(t *testing.T) {
		t.Parallel()

		_, err := pagesift.NewTemplateBuilder().
			SetInfo("broken", "", "").
			AddField(pagesift.FieldDescriptor{Name: "x", Type: "mystery"}, false).
			Build()

		require.Error(t, err)
		assert.Equal(t, pagesift.EINVALID, pagesift.ErrorCode(err))
	})
}

func TestBuildAdHocTemplate(t *testing.T) {
	t.Parallel()

	t.Run("infers types and attaches default formatters", func(t *testing.T) {
		t.Parallel()

		tmpl, err := pagesift.BuildAdHocTemplate("quick", "product", []pagesift.AdHocField{
			{Name: "price", Priority: true},
			{Name: "contact_email"},
			{Name: "seller_name"},
		})
		require.NoError(t, err)

		price := tmpl.Field("price")
		require.NotNil(t, price)
		assert.Equal(t, pagesift.FieldPrice, price.Type)
		assert.Equal(t, pagesift.FormatPrice, price.FormatFunc)

		email := tmpl.Field("contact_email")
		require.NotNil(t, email)
		assert.Equal(t, pagesift.FieldEmail, email.Type)

		seller := tmpl.Field("seller_name")
		require.NotNil(t, seller)
		assert.Equal(t, pagesift.FieldText, seller.Type)
		assert.Equal(t, pagesift.FormatNone, seller.FormatFunc)

		assert.Equal(t, []string{"price"}, tmpl.PriorityFields)
		assert.Equal(t, []string{"contact_email", "seller_name"}, tmpl.OptionalFields)
	})

	t.Run("guesses selectors from naming conventions", func(t *testing.T) {
		t.Parallel()

		tmpl, err := pagesift.BuildAdHocTemplate("quick", "general", []pagesift.AdHocField{
			{Name: "team_size"},
		})
		require.NoError(t, err)

		f := tmpl.Field("team_size")
		require.NotNil(t, f)
		assert.Equal(t, []string{".team_size", "[data-team-size]", ".team-size"}, f.Selectors)
	})

	t.Run("ambiguous names classify by documented match order", func(t *testing.T) {
		t.Parallel()

		tmpl, err := pagesift.BuildAdHocTemplate("quick", "general", []pagesift.AdHocField{
			{Name: "update_date_range"},
			{Name: "phone_or_email"},
		})
		require.NoError(t, err)

		assert.Equal(t, pagesift.FieldDate, tmpl.Field("update_date_range").Type)
		// "phone" precedes "email" in the inference order.
		assert.Equal(t, pagesift.FieldPhone, tmpl.Field("phone_or_email").Type)
	})

	t.Run("requires at least one field", func(t *testing.T) {
		t.Parallel()

		_, err := pagesift.BuildAdHocTemplate("quick", "general", nil)
		require.Error(t, err)
		assert.Equal(t, pagesift.EINVALID, pagesift.ErrorCode(err))
	})
}
