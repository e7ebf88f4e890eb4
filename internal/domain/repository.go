package domain

import "context"

// ProductRepository defines the contract for product storage.
// Lookups by id or name return ErrProductNotFound when nothing matches;
// list lookups return an empty slice.
type ProductRepository interface {
	FindByID(ctx context.Context, id string) (*Product, error)
	FindByName(ctx context.Context, name string) (*Product, error)
	FindByCategory(ctx context.Context, category string) ([]*Product, error)
	FindBySellerID(ctx context.Context, sellerID string) ([]*Product, error)
	FindAll(ctx context.Context) ([]*Product, error)
	Save(ctx context.Context, product *Product) (*Product, error)
	Delete(ctx context.Context, product *Product) error
	DeleteAll(ctx context.Context, products []*Product) error
}

// SubscriptionRepository defines the contract for subscription storage.
// Save upserts by composite key.
type SubscriptionRepository interface {
	FindByKey(ctx context.Context, key CompositeKey) (*Subscription, error)
	Save(ctx context.Context, subscription *Subscription) (*Subscription, error)
}

// ProductSequence mints product id suffixes. The first value is FirstProductSequence
// and every later value is strictly greater than the one before.
type ProductSequence interface {
	Next(ctx context.Context) (int64, error)
}

// FirstProductSequence is the first suffix handed out by a fresh sequence
const FirstProductSequence int64 = 100
