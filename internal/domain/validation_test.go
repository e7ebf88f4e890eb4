package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validProduct() *Product {
	return &Product{
		ProductName:   "Widget",
		Price:         9.99,
		Category:      "Electronics",
		SubCategory:   "Gadgets",
		Description:   "A small widget",
		Image:         "widget.png",
		SellerID:      "S1",
		ProductRating: 4.5,
		Stock:         50,
	}
}

func TestValidateProduct_Valid(t *testing.T) {
	require.NoError(t, ValidateProduct(validProduct()))
}

func TestValidateProduct_Violations(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *Product)
		field  string
	}{
		{"missing name", func(p *Product) { p.ProductName = "" }, "ProductName"},
		{"name starts with digit", func(p *Product) { p.ProductName = "9lives" }, "ProductName"},
		{"name with symbols", func(p *Product) { p.ProductName = "Widget!" }, "ProductName"},
		{"name too long", func(p *Product) { p.ProductName = strings.Repeat("a", 101) }, "ProductName"},
		{"zero price", func(p *Product) { p.Price = 0 }, "Price"},
		{"negative price", func(p *Product) { p.Price = -1 }, "Price"},
		{"missing category", func(p *Product) { p.Category = "" }, "Category"},
		{"missing subcategory", func(p *Product) { p.SubCategory = "" }, "SubCategory"},
		{"missing description", func(p *Product) { p.Description = "" }, "Description"},
		{"bad image", func(p *Product) { p.Image = "widget.gif" }, "Image"},
		{"missing seller", func(p *Product) { p.SellerID = "" }, "SellerID"},
		{"rating too high", func(p *Product) { p.ProductRating = 5.1 }, "ProductRating"},
		{"negative stock", func(p *Product) { p.Stock = -1 }, "Stock"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validProduct()
			tt.mutate(p)

			err := ValidateProduct(p)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrValidation))
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestValidateProduct_ImageCaseInsensitive(t *testing.T) {
	p := validProduct()
	p.Image = "PHOTO.JPEG"
	assert.NoError(t, ValidateProduct(p))
}

func TestValidateProduct_ZeroStockAllowed(t *testing.T) {
	p := validProduct()
	p.Stock = 0
	assert.NoError(t, ValidateProduct(p))
}

func TestValidateStock(t *testing.T) {
	assert.False(t, ValidateStock(9))
	assert.True(t, ValidateStock(10))
	assert.True(t, ValidateStock(25))
}

func TestIsPrivileged(t *testing.T) {
	assert.True(t, IsPrivileged("True"))
	assert.False(t, IsPrivileged("true"))
	assert.False(t, IsPrivileged("False"))
	assert.False(t, IsPrivileged(""))
}

func TestErrorKinds(t *testing.T) {
	assert.True(t, errors.Is(ErrProductNotFound, ErrNotFound))
	assert.True(t, errors.Is(ErrSellerProductsNotFound, ErrNotFound))
	assert.True(t, errors.Is(ErrProductAlreadyExists, ErrAlreadyExists))
	assert.True(t, errors.Is(ErrInvalidStock, ErrValidation))
	assert.True(t, errors.Is(ErrBuyerNotPrivileged, ErrSubscriptionFailed))
	assert.False(t, errors.Is(ErrProductNotFound, ErrValidation))
}

func TestFormatProductID(t *testing.T) {
	assert.Equal(t, "PROD100", FormatProductID(FirstProductSequence))
	assert.Equal(t, "PROD1234", FormatProductID(1234))
}
