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

// SubscriptionRepository is an in-memory implementation of domain.SubscriptionRepository
type SubscriptionRepository struct {
	mu            sync.RWMutex
	subscriptions map[domain.CompositeKey]domain.Subscription
	tracer        trace.Tracer
	logger        *slog.Logger
}

// NewSubscriptionRepository creates a new in-memory subscription repository
func NewSubscriptionRepository(tracer trace.Tracer, logger *slog.Logger) *SubscriptionRepository {
	return &SubscriptionRepository{
		subscriptions: make(map[domain.CompositeKey]domain.Subscription),
		tracer:        tracer,
		logger:        logger,
	}
}

// FindByKey retrieves a subscription by buyer and product
func (r *SubscriptionRepository) FindByKey(ctx context.Context, key domain.CompositeKey) (*domain.Subscription, error) {
	_, span := r.tracer.Start(ctx, "SubscriptionRepository.FindByKey")
	defer span.End()

	span.SetAttributes(
		attribute.String("buyer.id", key.BuyerID),
		attribute.String("product.id", key.ProdID),
	)

	r.mu.RLock()
	defer r.mu.RUnlock()

	subscription, exists := r.subscriptions[key]
	if !exists {
		span.SetStatus(codes.Error, "Subscription not found")
		return nil, domain.ErrSubscriptionNotFound
	}

	span.SetStatus(codes.Ok, "Subscription found")
	return &subscription, nil
}

// Save inserts or replaces the subscription with the same composite key
func (r *SubscriptionRepository) Save(ctx context.Context, subscription *domain.Subscription) (*domain.Subscription, error) {
	ctx, span := r.tracer.Start(ctx, "SubscriptionRepository.Save")
	defer span.End()

	span.SetAttributes(
		attribute.String("buyer.id", subscription.Key.BuyerID),
		attribute.String("product.id", subscription.Key.ProdID),
		attribute.Int("subscription.quantity", subscription.Quantity),
	)

	r.mu.Lock()
	r.subscriptions[subscription.Key] = *subscription
	r.mu.Unlock()

	r.logger.InfoContext(ctx, "Subscription saved in repository",
		slog.String("buyer_id", subscription.Key.BuyerID),
		slog.String("product_id", subscription.Key.ProdID),
	)

	span.SetStatus(codes.Ok, "Subscription saved successfully")
	saved := *subscription
	return &saved, nil
}
