package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/mrops-br/product-ms/internal/app/dto"
	"github.com/mrops-br/product-ms/internal/domain"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Confirmation messages returned to callers
const (
	MsgProductDeleted           = "Product deleted successfully!"
	MsgDeactivatedSellerCleaned = "Products of deactivated seller deleted successfully"
	MsgSubscriptionAdded        = "Subscription added successfully!"
)

// ProductService handles product and subscription use cases
type ProductService struct {
	products              domain.ProductRepository
	subscriptions         domain.SubscriptionRepository
	sequence              domain.ProductSequence
	tracer                trace.Tracer
	logger                *slog.Logger
	productCreatedCounter metric.Int64Counter
	subscriptionCounter   metric.Int64Counter
	productOperations     metric.Int64Counter
}

// NewProductService creates a new product service
func NewProductService(
	products domain.ProductRepository,
	subscriptions domain.SubscriptionRepository,
	sequence domain.ProductSequence,
	tracer trace.Tracer,
	meter metric.Meter,
	logger *slog.Logger,
) *ProductService {
	// Initialize metrics
	productCreatedCounter, _ := meter.Int64Counter(
		"products.created.total",
		metric.WithDescription("Total number of products created"),
	)

	subscriptionCounter, _ := meter.Int64Counter(
		"subscriptions.created.total",
		metric.WithDescription("Total number of subscriptions recorded"),
	)

	productOperations, _ := meter.Int64Counter(
		"products.operations",
		metric.WithDescription("Total number of product operations"),
	)

	return &ProductService{
		products:              products,
		subscriptions:         subscriptions,
		sequence:              sequence,
		tracer:                tracer,
		logger:                logger,
		productCreatedCounter: productCreatedCounter,
		subscriptionCounter:   subscriptionCounter,
		productOperations:     productOperations,
	}
}

// AddProduct validates a candidate, assigns it the next product id and stores it
func (s *ProductService) AddProduct(ctx context.Context, req *dto.ProductDTO) (string, error) {
	ctx, span := s.tracer.Start(ctx, "ProductService.AddProduct")
	defer span.End()

	span.SetAttributes(
		attribute.String("product.name", req.ProductName),
		attribute.Float64("product.price", req.Price),
	)

	s.logger.InfoContext(ctx, "Creating product",
		slog.String("name", req.ProductName),
		slog.String("seller_id", req.SellerID),
	)

	_, err := s.products.FindByName(ctx, req.ProductName)
	switch {
	case err == nil:
		return "", s.fail(ctx, span, "create", domain.ErrProductAlreadyExists)
	case !errors.Is(err, domain.ErrNotFound):
		return "", s.fail(ctx, span, "create", err)
	}

	product := req.ToDomain()
	if err := domain.ValidateProduct(product); err != nil {
		return "", s.fail(ctx, span, "create", err)
	}

	seq, err := s.sequence.Next(ctx)
	if err != nil {
		return "", s.fail(ctx, span, "create", err)
	}
	product.ProdID = domain.FormatProductID(seq)
	span.SetAttributes(attribute.String("product.id", product.ProdID))

	if _, err := s.products.Save(ctx, product); err != nil {
		return "", s.fail(ctx, span, "create", err)
	}

	s.productCreatedCounter.Add(ctx, 1)
	s.succeed(ctx, span, "create")

	s.logger.InfoContext(ctx, "Product created successfully",
		slog.String("product_id", product.ProdID),
	)
	return product.ProdID, nil
}

// DeleteProduct removes a single product
func (s *ProductService) DeleteProduct(ctx context.Context, id string) (string, error) {
	ctx, span := s.tracer.Start(ctx, "ProductService.DeleteProduct")
	defer span.End()

	span.SetAttributes(attribute.String("product.id", id))

	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			err = domain.ErrCannotDeleteProduct
		}
		return "", s.fail(ctx, span, "delete", err)
	}

	if err := s.products.Delete(ctx, product); err != nil {
		return "", s.fail(ctx, span, "delete", err)
	}

	s.succeed(ctx, span, "delete")
	s.logger.InfoContext(ctx, "Product deleted",
		slog.String("product_id", id),
	)
	return MsgProductDeleted, nil
}

// DeleteProductsOfDeactivatedSeller removes every product of a seller in one batch.
// A seller with no products is not an error.
func (s *ProductService) DeleteProductsOfDeactivatedSeller(ctx context.Context, sellerID string) (string, error) {
	ctx, span := s.tracer.Start(ctx, "ProductService.DeleteProductsOfDeactivatedSeller")
	defer span.End()

	span.SetAttributes(attribute.String("seller.id", sellerID))

	products, err := s.products.FindBySellerID(ctx, sellerID)
	if err != nil {
		return "", s.fail(ctx, span, "delete_deactivated_seller", err)
	}

	if len(products) > 0 {
		if err := s.products.DeleteAll(ctx, products); err != nil {
			return "", s.fail(ctx, span, "delete_deactivated_seller", err)
		}
	}

	span.SetAttributes(attribute.Int("product.count", len(products)))
	s.succeed(ctx, span, "delete_deactivated_seller")
	s.logger.InfoContext(ctx, "Products of deactivated seller deleted",
		slog.String("seller_id", sellerID),
		slog.Int("count", len(products)),
	)
	return MsgDeactivatedSellerCleaned, nil
}

// DeleteSellerProducts removes every product of a seller one record at a time.
// Unlike DeleteProductsOfDeactivatedSeller, a seller with no products is NotFound.
// A failure midway leaves earlier deletions in place.
func (s *ProductService) DeleteSellerProducts(ctx context.Context, sellerID string) error {
	ctx, span := s.tracer.Start(ctx, "ProductService.DeleteSellerProducts")
	defer span.End()

	span.SetAttributes(attribute.String("seller.id", sellerID))

	products, err := s.products.FindBySellerID(ctx, sellerID)
	if err != nil {
		return s.fail(ctx, span, "delete_seller_products", err)
	}
	if len(products) == 0 {
		return s.fail(ctx, span, "delete_seller_products", domain.ErrSellerProductsNotFound)
	}

	for _, product := range products {
		if err := s.products.Delete(ctx, product); err != nil {
			return s.fail(ctx, span, "delete_seller_products", err)
		}
	}

	span.SetAttributes(attribute.Int("product.count", len(products)))
	s.succeed(ctx, span, "delete_seller_products")
	s.logger.InfoContext(ctx, "Seller products deleted",
		slog.String("seller_id", sellerID),
		slog.Int("count", len(products)),
	)
	return nil
}

// GetProductByName retrieves a product by its unique name
func (s *ProductService) GetProductByName(ctx context.Context, name string) (*dto.ProductDTO, error) {
	ctx, span := s.tracer.Start(ctx, "ProductService.GetProductByName")
	defer span.End()

	span.SetAttributes(attribute.String("product.name", name))

	product, err := s.products.FindByName(ctx, name)
	if err != nil {
		return nil, s.fail(ctx, span, "read", err)
	}

	s.succeed(ctx, span, "read")
	return dto.ToProductDTO(product), nil
}

// GetProductsByCategory retrieves the products of a category.
// An empty category is NotFound rather than an empty list.
func (s *ProductService) GetProductsByCategory(ctx context.Context, category string) ([]*dto.ProductDTO, error) {
	ctx, span := s.tracer.Start(ctx, "ProductService.GetProductsByCategory")
	defer span.End()

	span.SetAttributes(attribute.String("product.category", category))

	products, err := s.products.FindByCategory(ctx, category)
	if err != nil {
		return nil, s.fail(ctx, span, "list_category", err)
	}
	if len(products) == 0 {
		return nil, s.fail(ctx, span, "list_category", domain.ErrProductNotFound)
	}

	span.SetAttributes(attribute.Int("product.count", len(products)))
	s.succeed(ctx, span, "list_category")
	return dto.ToProductDTOList(products), nil
}

// GetProductByID retrieves a product by ID
func (s *ProductService) GetProductByID(ctx context.Context, id string) (*dto.ProductDTO, error) {
	ctx, span := s.tracer.Start(ctx, "ProductService.GetProductByID")
	defer span.End()

	span.SetAttributes(attribute.String("product.id", id))

	s.logger.DebugContext(ctx, "Getting product by ID",
		slog.String("product_id", id),
	)

	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, s.fail(ctx, span, "read", err)
	}

	s.succeed(ctx, span, "read")
	return dto.ToProductDTO(product), nil
}

// ViewAllProducts retrieves all products; an empty catalog is NotFound
func (s *ProductService) ViewAllProducts(ctx context.Context) ([]*dto.ProductDTO, error) {
	ctx, span := s.tracer.Start(ctx, "ProductService.ViewAllProducts")
	defer span.End()

	s.logger.InfoContext(ctx, "Listing all products")

	products, err := s.products.FindAll(ctx)
	if err != nil {
		return nil, s.fail(ctx, span, "list", err)
	}
	if len(products) == 0 {
		return nil, s.fail(ctx, span, "list", domain.ErrNoProducts)
	}

	span.SetAttributes(attribute.Int("product.count", len(products)))
	s.succeed(ctx, span, "list")

	s.logger.InfoContext(ctx, "Products listed successfully",
		slog.Int("count", len(products)),
	)
	return dto.ToProductDTOList(products), nil
}

// ReduceStock subtracts an ordered quantity. It reports false, without writing,
// when the product holds fewer than quantity units.
func (s *ProductService) ReduceStock(ctx context.Context, id string, quantity int) (bool, error) {
	ctx, span := s.tracer.Start(ctx, "ProductService.ReduceStock")
	defer span.End()

	span.SetAttributes(
		attribute.String("product.id", id),
		attribute.Int("stock.quantity", quantity),
	)

	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return false, s.fail(ctx, span, "reduce_stock", err)
	}

	if !product.HasStock(quantity) {
		s.logger.InfoContext(ctx, "Insufficient stock",
			slog.String("product_id", id),
			slog.Int("stock", product.Stock),
			slog.Int("requested", quantity),
		)
		s.record(ctx, "reduce_stock", "insufficient")
		span.SetStatus(codes.Ok, "Insufficient stock")
		return false, nil
	}

	product.Stock -= quantity
	if _, err := s.products.Save(ctx, product); err != nil {
		return false, s.fail(ctx, span, "reduce_stock", err)
	}

	s.succeed(ctx, span, "reduce_stock")
	s.logger.InfoContext(ctx, "Stock reduced",
		slog.String("product_id", id),
		slog.Int("stock", product.Stock),
	)
	return true, nil
}

// UpdateStock sets a seller's stock level; levels below domain.MinimumStock are rejected
func (s *ProductService) UpdateStock(ctx context.Context, id string, quantity int) (bool, error) {
	ctx, span := s.tracer.Start(ctx, "ProductService.UpdateStock")
	defer span.End()

	span.SetAttributes(
		attribute.String("product.id", id),
		attribute.Int("stock.quantity", quantity),
	)

	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return false, s.fail(ctx, span, "update_stock", err)
	}

	if !domain.ValidateStock(quantity) {
		return false, s.fail(ctx, span, "update_stock", domain.ErrInvalidStock)
	}

	product.Stock = quantity
	if _, err := s.products.Save(ctx, product); err != nil {
		return false, s.fail(ctx, span, "update_stock", err)
	}

	s.succeed(ctx, span, "update_stock")
	s.logger.InfoContext(ctx, "Stock updated",
		slog.String("product_id", id),
		slog.Int("stock", quantity),
	)
	return true, nil
}

// AddSubscription records a privileged buyer's subscription, replacing any
// existing one for the same buyer and product.
func (s *ProductService) AddSubscription(ctx context.Context, req *dto.SubscriptionDTO, buyer *dto.BuyerDTO) (string, error) {
	ctx, span := s.tracer.Start(ctx, "ProductService.AddSubscription")
	defer span.End()

	span.SetAttributes(
		attribute.String("buyer.id", req.BuyerID),
		attribute.String("product.id", req.ProdID),
		attribute.Int("subscription.quantity", req.Quantity),
	)

	if !domain.IsPrivileged(buyer.IsPrivileged) {
		return "", s.fail(ctx, span, "subscribe", domain.ErrBuyerNotPrivileged)
	}

	subscription := &domain.Subscription{
		Key:      domain.NewCompositeKey(req.BuyerID, req.ProdID),
		Quantity: req.Quantity,
	}
	if _, err := s.subscriptions.Save(ctx, subscription); err != nil {
		return "", s.fail(ctx, span, "subscribe", err)
	}

	s.subscriptionCounter.Add(ctx, 1)
	s.succeed(ctx, span, "subscribe")
	s.logger.InfoContext(ctx, "Subscription added",
		slog.String("buyer_id", req.BuyerID),
		slog.String("product_id", req.ProdID),
	)
	return MsgSubscriptionAdded, nil
}

// GetSubscriptionDetails retrieves a buyer's subscription to a product
func (s *ProductService) GetSubscriptionDetails(ctx context.Context, buyerID, prodID string) (*dto.SubscriptionDTO, error) {
	ctx, span := s.tracer.Start(ctx, "ProductService.GetSubscriptionDetails")
	defer span.End()

	span.SetAttributes(
		attribute.String("buyer.id", buyerID),
		attribute.String("product.id", prodID),
	)

	subscription, err := s.subscriptions.FindByKey(ctx, domain.NewCompositeKey(buyerID, prodID))
	if err != nil {
		return nil, s.fail(ctx, span, "read_subscription", err)
	}

	s.succeed(ctx, span, "read_subscription")
	return dto.ToSubscriptionDTO(subscription), nil
}

// fail records a failed operation on the span, the log and the operations counter
func (s *ProductService) fail(ctx context.Context, span trace.Span, operation string, err error) error {
	result := "failure"
	switch {
	case errors.Is(err, domain.ErrNotFound):
		result = "not_found"
	case errors.Is(err, domain.ErrAlreadyExists):
		result = "already_exists"
	case errors.Is(err, domain.ErrValidation):
		result = "invalid"
	case errors.Is(err, domain.ErrSubscriptionFailed):
		result = "rejected"
	}

	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())

	level := slog.LevelWarn
	if result == "failure" {
		level = slog.LevelError
	}
	s.logger.Log(ctx, level, "Product operation failed",
		slog.String("operation", operation),
		slog.String("result", result),
		slog.String("error", err.Error()),
	)

	s.record(ctx, operation, result)
	return err
}

func (s *ProductService) succeed(ctx context.Context, span trace.Span, operation string) {
	s.record(ctx, operation, "success")
	span.SetStatus(codes.Ok, "")
}

func (s *ProductService) record(ctx context.Context, operation, result string) {
	s.productOperations.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("operation", operation),
			attribute.String("result", result),
		),
	)
}
