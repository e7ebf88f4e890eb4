package domain

import "fmt"

// ProductIDPrefix is prepended to the sequence value to form a product id
const ProductIDPrefix = "PROD"

// Product represents a catalog entry owned by a seller
type Product struct {
	ProdID        string  `validate:"-"`
	ProductName   string  `validate:"required,max=100,productname"`
	Price         float64 `validate:"gt=0"`
	Category      string  `validate:"required,max=50"`
	SubCategory   string  `validate:"required,max=50"`
	Description   string  `validate:"required,max=500"`
	Image         string  `validate:"required,imageref"`
	SellerID      string  `validate:"required"`
	ProductRating float64 `validate:"gte=0,lte=5"`
	Stock         int     `validate:"gte=0"`
}

// FormatProductID builds the display id for a sequence value, e.g. PROD100
func FormatProductID(seq int64) string {
	return fmt.Sprintf("%s%d", ProductIDPrefix, seq)
}

// HasStock reports whether at least quantity units are available
func (p *Product) HasStock(quantity int) bool {
	return p.Stock >= quantity
}
