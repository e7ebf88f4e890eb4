package dto

import (
	"github.com/mrops-br/product-ms/internal/domain"
)

// ProductDTO is the product shape exchanged with callers
type ProductDTO struct {
	ProductID     string  `json:"productId"`
	ProductName   string  `json:"productName"`
	Price         float64 `json:"price"`
	Category      string  `json:"category"`
	SubCategory   string  `json:"subCategory"`
	Description   string  `json:"description"`
	Image         string  `json:"image"`
	SellerID      string  `json:"sellerId"`
	ProductRating float64 `json:"productRating"`
	Stock         int     `json:"stock"`
}

// CreateProductResponse carries the id minted for a new product
type CreateProductResponse struct {
	ProductID string `json:"productId"`
}

// StockRequest carries a stock quantity for update or reduction
type StockRequest struct {
	Quantity int `json:"quantity"`
}

// StockResponse reports whether a stock change was applied
type StockResponse struct {
	Updated bool `json:"updated"`
}

// MessageResponse carries a confirmation message
type MessageResponse struct {
	Message string `json:"message"`
}

// ToProductDTO converts a domain Product to ProductDTO
func ToProductDTO(p *domain.Product) *ProductDTO {
	return &ProductDTO{
		ProductID:     p.ProdID,
		ProductName:   p.ProductName,
		Price:         p.Price,
		Category:      p.Category,
		SubCategory:   p.SubCategory,
		Description:   p.Description,
		Image:         p.Image,
		SellerID:      p.SellerID,
		ProductRating: p.ProductRating,
		Stock:         p.Stock,
	}
}

// ToProductDTOList converts a list of domain Products to ProductDTO list
func ToProductDTOList(products []*domain.Product) []*ProductDTO {
	dtos := make([]*ProductDTO, len(products))
	for i, p := range products {
		dtos[i] = ToProductDTO(p)
	}
	return dtos
}

// ToDomain copies every candidate field except the id, which the service assigns
func (d *ProductDTO) ToDomain() *domain.Product {
	return &domain.Product{
		ProductName:   d.ProductName,
		Price:         d.Price,
		Category:      d.Category,
		SubCategory:   d.SubCategory,
		Description:   d.Description,
		Image:         d.Image,
		SellerID:      d.SellerID,
		ProductRating: d.ProductRating,
		Stock:         d.Stock,
	}
}
