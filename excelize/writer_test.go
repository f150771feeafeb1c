package excelize_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/pagesift/pagesift"
	pagexcel "github.com/pagesift/pagesift/excelize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriter_WriteRecords(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "records.xlsx")
	w := pagexcel.NewWriter(path)

	records := []*pagesift.Record{
		{
			TemplateName:         "product_listing",
			SourceURL:            "https://oakfurniture.com/table",
			ExtractedAt:          time.Date(2026, 2, 3, 10, 0, 0, 0, time.UTC),
			DataCompleteness:     1.0,
			PriorityCompleteness: 1.0,
			Fields: map[string]any{
				"seller": "Oak Furniture",
				"price":  pagesift.Price{Currency: "£", Amount: 299.99, Formatted: "£299.99"},
			},
		},
	}

	require.NoError(t, w.WriteRecords(context.Background(), records))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Records")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, []string{"URL", "Template", "Data Completeness", "Priority Completeness", "price", "seller"}, rows[0])
	assert.Equal(t, "https://oakfurniture.com/table", rows[1][0])
	assert.Equal(t, "product_listing", rows[1][1])
	assert.Equal(t, "£299.99", rows[1][4])
	assert.Equal(t, "Oak Furniture", rows[1][5])
}
