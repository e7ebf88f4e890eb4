package memory

import (
	"context"
	"log/slog"
	"sync"

	"github.com/mrops-br/product-ms/internal/domain"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// ProductRepository is an in-memory implementation of domain.ProductRepository.
// Records are stored and returned as copies, so callers must Save to persist a change.
type ProductRepository struct {
	mu       sync.RWMutex
	products map[string]domain.Product
	order    []string
	tracer   trace.Tracer
	logger   *slog.Logger
}

// NewProductRepository creates a new in-memory product repository
func NewProductRepository(tracer trace.Tracer, logger *slog.Logger) *ProductRepository {
	return &ProductRepository{
		products: make(map[string]domain.Product),
		tracer:   tracer,
		logger:   logger,
	}
}

// FindByID retrieves a product by ID
func (r *ProductRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	ctx, span := r.tracer.Start(ctx, "ProductRepository.FindByID")
	defer span.End()

	span.SetAttributes(attribute.String("product.id", id))

	r.mu.RLock()
	defer r.mu.RUnlock()

	product, exists := r.products[id]
	if !exists {
		span.SetStatus(codes.Error, "Product not found")
		r.logger.DebugContext(ctx, "Product not found in repository",
			slog.String("product_id", id),
		)
		return nil, domain.ErrProductNotFound
	}

	span.SetStatus(codes.Ok, "Product found")
	return &product, nil
}

// FindByName retrieves a product by its unique name
func (r *ProductRepository) FindByName(ctx context.Context, name string) (*domain.Product, error) {
	_, span := r.tracer.Start(ctx, "ProductRepository.FindByName")
	defer span.End()

	span.SetAttributes(attribute.String("product.name", name))

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.order {
		if product := r.products[id]; product.ProductName == name {
			span.SetStatus(codes.Ok, "Product found")
			return &product, nil
		}
	}

	span.SetStatus(codes.Error, "Product not found")
	return nil, domain.ErrProductNotFound
}

// FindByCategory retrieves products of a category in insertion order
func (r *ProductRepository) FindByCategory(ctx context.Context, category string) ([]*domain.Product, error) {
	ctx, span := r.tracer.Start(ctx, "ProductRepository.FindByCategory")
	defer span.End()

	span.SetAttributes(attribute.String("product.category", category))

	products := r.filter(func(p *domain.Product) bool { return p.Category == category })

	span.SetAttributes(attribute.Int("product.count", len(products)))
	r.logger.DebugContext(ctx, "Products retrieved by category",
		slog.String("category", category),
		slog.Int("count", len(products)),
	)

	span.SetStatus(codes.Ok, "Products retrieved successfully")
	return products, nil
}

// FindBySellerID retrieves products of a seller in insertion order
func (r *ProductRepository) FindBySellerID(ctx context.Context, sellerID string) ([]*domain.Product, error) {
	_, span := r.tracer.Start(ctx, "ProductRepository.FindBySellerID")
	defer span.End()

	span.SetAttributes(attribute.String("seller.id", sellerID))

	products := r.filter(func(p *domain.Product) bool { return p.SellerID == sellerID })

	span.SetAttributes(attribute.Int("product.count", len(products)))
	span.SetStatus(codes.Ok, "Products retrieved successfully")
	return products, nil
}

// FindAll retrieves all products
func (r *ProductRepository) FindAll(ctx context.Context) ([]*domain.Product, error) {
	ctx, span := r.tracer.Start(ctx, "ProductRepository.FindAll")
	defer span.End()

	products := r.filter(func(*domain.Product) bool { return true })

	span.SetAttributes(attribute.Int("product.count", len(products)))

	r.logger.InfoContext(ctx, "Products retrieved from repository",
		slog.Int("count", len(products)),
	)

	span.SetStatus(codes.Ok, "Products retrieved successfully")
	return products, nil
}

// Save inserts or replaces a product keyed by its id
func (r *ProductRepository) Save(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	ctx, span := r.tracer.Start(ctx, "ProductRepository.Save")
	defer span.End()

	span.SetAttributes(
		attribute.String("product.id", product.ProdID),
		attribute.String("product.name", product.ProductName),
	)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.products[product.ProdID]; !exists {
		r.order = append(r.order, product.ProdID)
	}
	r.products[product.ProdID] = *product

	r.logger.InfoContext(ctx, "Product saved in repository",
		slog.String("product_id", product.ProdID),
		slog.String("product_name", product.ProductName),
	)

	span.SetStatus(codes.Ok, "Product saved successfully")
	saved := *product
	return &saved, nil
}

// Delete removes a product; deleting a missing product is a no-op
func (r *ProductRepository) Delete(ctx context.Context, product *domain.Product) error {
	_, span := r.tracer.Start(ctx, "ProductRepository.Delete")
	defer span.End()

	span.SetAttributes(attribute.String("product.id", product.ProdID))

	r.mu.Lock()
	defer r.mu.Unlock()

	r.remove(product.ProdID)

	span.SetStatus(codes.Ok, "Product deleted successfully")
	return nil
}

// DeleteAll removes every given product in one step
func (r *ProductRepository) DeleteAll(ctx context.Context, products []*domain.Product) error {
	_, span := r.tracer.Start(ctx, "ProductRepository.DeleteAll")
	defer span.End()

	span.SetAttributes(attribute.Int("product.count", len(products)))

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range products {
		r.remove(p.ProdID)
	}

	span.SetStatus(codes.Ok, "Products deleted successfully")
	return nil
}

// remove must be called with the write lock held
func (r *ProductRepository) remove(id string) {
	if _, exists := r.products[id]; !exists {
		return
	}
	delete(r.products, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

func (r *ProductRepository) filter(match func(*domain.Product) bool) []*domain.Product {
	r.mu.RLock()
	defer r.mu.RUnlock()

	products := make([]*domain.Product, 0, len(r.order))
	for _, id := range r.order {
		product := r.products[id]
		if match(&product) {
			products = append(products, &product)
		}
	}
	return products
}
