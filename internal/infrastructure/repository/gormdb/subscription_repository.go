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

// SubscriptionRepository is a GORM implementation of domain.SubscriptionRepository
type SubscriptionRepository struct {
	db     *gorm.DB
	tracer trace.Tracer
}

// NewSubscriptionRepository creates a new GORM subscription repository
func NewSubscriptionRepository(db *gorm.DB, tracer trace.Tracer) *SubscriptionRepository {
	return &SubscriptionRepository{db: db, tracer: tracer}
}

// FindByKey retrieves a subscription by buyer and product
func (r *SubscriptionRepository) FindByKey(ctx context.Context, key domain.CompositeKey) (*domain.Subscription, error) {
	ctx, span := r.tracer.Start(ctx, "SubscriptionRepository.FindByKey")
	defer span.End()

	span.SetAttributes(
		attribute.String("buyer.id", key.BuyerID),
		attribute.String("product.id", key.ProdID),
	)

	var record subscriptionRecord
	err := r.db.WithContext(ctx).
		Where("buyer_id = ? AND prod_id = ?", key.BuyerID, key.ProdID).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			span.SetStatus(codes.Error, "Subscription not found")
			return nil, domain.ErrSubscriptionNotFound
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to find subscription")
		return nil, fmt.Errorf("failed to find subscription: %w", err)
	}

	span.SetStatus(codes.Ok, "Subscription found")
	return &domain.Subscription{
		Key:      domain.NewCompositeKey(record.BuyerID, record.ProdID),
		Quantity: record.Quantity,
	}, nil
}

// Save inserts a subscription or overwrites the quantity of an existing one
func (r *SubscriptionRepository) Save(ctx context.Context, subscription *domain.Subscription) (*domain.Subscription, error) {
	ctx, span := r.tracer.Start(ctx, "SubscriptionRepository.Save")
	defer span.End()

	span.SetAttributes(
		attribute.String("buyer.id", subscription.Key.BuyerID),
		attribute.String("product.id", subscription.Key.ProdID),
	)

	record := subscriptionRecord{
		BuyerID:  subscription.Key.BuyerID,
		ProdID:   subscription.Key.ProdID,
		Quantity: subscription.Quantity,
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "buyer_id"}, {Name: "prod_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"quantity", "updated_at"}),
		}).
		Create(&record).Error
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to save subscription")
		return nil, fmt.Errorf("failed to save subscription: %w", err)
	}

	span.SetStatus(codes.Ok, "Subscription saved")
	saved := *subscription
	return &saved, nil
}
