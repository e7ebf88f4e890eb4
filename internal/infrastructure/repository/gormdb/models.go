package gormdb

import (
	"time"

	"github.com/google/uuid"
	"github.com/mrops-br/product-ms/internal/domain"
	"gorm.io/gorm"
)

// productRecord is the products table row. ID is the storage identity;
// ProdID is the display id callers use.
type productRecord struct {
	ID            string    `gorm:"primarykey;size:36"`
	ProdID        string    `gorm:"size:32;not null;uniqueIndex"`
	ProductName   string    `gorm:"size:100;not null;index"`
	Price         float64   `gorm:"not null"`
	Category      string    `gorm:"size:50;not null;index"`
	SubCategory   string    `gorm:"size:50"`
	Description   string    `gorm:"size:500"`
	Image         string    `gorm:"size:255"`
	SellerID      string    `gorm:"size:64;not null;index"`
	ProductRating float64   `gorm:"not null;default:0"`
	Stock         int       `gorm:"not null;default:0"`
	CreatedAt     time.Time `gorm:"index"`
	UpdatedAt     time.Time
}

func (productRecord) TableName() string {
	return "products"
}

// BeforeCreate assigns the storage identity
func (r *productRecord) BeforeCreate(_ *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return nil
}

type subscriptionRecord struct {
	BuyerID   string `gorm:"primarykey;size:64"`
	ProdID    string `gorm:"primarykey;size:32"`
	Quantity  int    `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (subscriptionRecord) TableName() string {
	return "subscribed_products"
}

type sequenceRecord struct {
	Name  string `gorm:"primarykey;size:64"`
	Value int64  `gorm:"not null"`
}

func (sequenceRecord) TableName() string {
	return "sequences"
}

func toProductRecord(p *domain.Product) *productRecord {
	return &productRecord{
		ProdID:        p.ProdID,
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

func (r *productRecord) toDomain() *domain.Product {
	return &domain.Product{
		ProdID:        r.ProdID,
		ProductName:   r.ProductName,
		Price:         r.Price,
		Category:      r.Category,
		SubCategory:   r.SubCategory,
		Description:   r.Description,
		Image:         r.Image,
		SellerID:      r.SellerID,
		ProductRating: r.ProductRating,
		Stock:         r.Stock,
	}
}

func toProducts(records []*productRecord) []*domain.Product {
	products := make([]*domain.Product, len(records))
	for i, r := range records {
		products[i] = r.toDomain()
	}
	return products
}
