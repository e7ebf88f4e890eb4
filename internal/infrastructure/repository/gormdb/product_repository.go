package gormdb

import (
	"context"
	"errors"
	"fmt"

	"github.com/mrops-br/product-ms/internal/domain"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// productColumns are overwritten when a product with the same display id is saved again
var productColumns = []string{
	"product_name", "price", "category", "sub_category", "description",
	"image", "seller_id", "product_rating", "stock", "updated_at",
}

// ProductRepository is a GORM implementation of domain.ProductRepository
type ProductRepository struct {
	db     *gorm.DB
	tracer trace.Tracer
}

// NewProductRepository creates a new GORM product repository
func NewProductRepository(db *gorm.DB, tracer trace.Tracer) *ProductRepository {
	return &ProductRepository{db: db, tracer: tracer}
}

// FindByID retrieves a product by its display id
func (r *ProductRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	ctx, span := r.tracer.Start(ctx, "ProductRepository.FindByID")
	defer span.End()

	span.SetAttributes(attribute.String("product.id", id))
	return r.first(ctx, span, "prod_id = ?", id)
}

// FindByName retrieves a product by its unique name
func (r *ProductRepository) FindByName(ctx context.Context, name string) (*domain.Product, error) {
	ctx, span := r.tracer.Start(ctx, "ProductRepository.FindByName")
	defer span.End()

	span.SetAttributes(attribute.String("product.name", name))
	return r.first(ctx, span, "product_name = ?", name)
}

// FindByCategory retrieves products of a category in creation order
func (r *ProductRepository) FindByCategory(ctx context.Context, category string) ([]*domain.Product, error) {
	ctx, span := r.tracer.Start(ctx, "ProductRepository.FindByCategory")
	defer span.End()

	span.SetAttributes(attribute.String("product.category", category))
	return r.find(ctx, span, "category = ?", category)
}

// FindBySellerID retrieves products of a seller in creation order
func (r *ProductRepository) FindBySellerID(ctx context.Context, sellerID string) ([]*domain.Product, error) {
	ctx, span := r.tracer.Start(ctx, "ProductRepository.FindBySellerID")
	defer span.End()

	span.SetAttributes(attribute.String("seller.id", sellerID))
	return r.find(ctx, span, "seller_id = ?", sellerID)
}

// FindAll retrieves all products
func (r *ProductRepository) FindAll(ctx context.Context) ([]*domain.Product, error) {
	ctx, span := r.tracer.Start(ctx, "ProductRepository.FindAll")
	defer span.End()

	return r.find(ctx, span)
}

// Save inserts a product or overwrites the one with the same display id
func (r *ProductRepository) Save(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	ctx, span := r.tracer.Start(ctx, "ProductRepository.Save")
	defer span.End()

	span.SetAttributes(attribute.String("product.id", product.ProdID))

	record := toProductRecord(product)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "prod_id"}},
			DoUpdates: clause.AssignmentColumns(productColumns),
		}).
		Create(record).Error
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to save product")
		return nil, fmt.Errorf("failed to save product: %w", err)
	}

	span.SetStatus(codes.Ok, "Product saved")
	return record.toDomain(), nil
}

// Delete removes a product by display id
func (r *ProductRepository) Delete(ctx context.Context, product *domain.Product) error {
	ctx, span := r.tracer.Start(ctx, "ProductRepository.Delete")
	defer span.End()

	span.SetAttributes(attribute.String("product.id", product.ProdID))

	if err := r.db.WithContext(ctx).Where("prod_id = ?", product.ProdID).Delete(&productRecord{}).Error; err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to delete product")
		return fmt.Errorf("failed to delete product: %w", err)
	}

	span.SetStatus(codes.Ok, "Product deleted")
	return nil
}

// DeleteAll removes every given product in a single statement
func (r *ProductRepository) DeleteAll(ctx context.Context, products []*domain.Product) error {
	ctx, span := r.tracer.Start(ctx, "ProductRepository.DeleteAll")
	defer span.End()

	span.SetAttributes(attribute.Int("product.count", len(products)))
	if len(products) == 0 {
		return nil
	}

	ids := make([]string, len(products))
	for i, p := range products {
		ids[i] = p.ProdID
	}

	if err := r.db.WithContext(ctx).Where("prod_id IN ?", ids).Delete(&productRecord{}).Error; err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to delete products")
		return fmt.Errorf("failed to delete products: %w", err)
	}

	span.SetStatus(codes.Ok, "Products deleted")
	return nil
}

func (r *ProductRepository) first(ctx context.Context, span trace.Span, query string, args ...any) (*domain.Product, error) {
	var record productRecord
	if err := r.db.WithContext(ctx).Where(query, args...).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			span.SetStatus(codes.Error, "Product not found")
			return nil, domain.ErrProductNotFound
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to find product")
		return nil, fmt.Errorf("failed to find product: %w", err)
	}

	span.SetStatus(codes.Ok, "Product found")
	return record.toDomain(), nil
}

func (r *ProductRepository) find(ctx context.Context, span trace.Span, conds ...any) ([]*domain.Product, error) {
	var records []*productRecord
	err := r.db.WithContext(ctx).
		Order("created_at, prod_id").
		Find(&records, conds...).Error
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to find products")
		return nil, fmt.Errorf("failed to find products: %w", err)
	}

	span.SetAttributes(attribute.Int("product.count", len(records)))
	span.SetStatus(codes.Ok, "Products found")
	return toProducts(records), nil
}
