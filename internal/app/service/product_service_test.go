package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/mrops-br/product-ms/internal/app/dto"
	"github.com/mrops-br/product-ms/internal/domain"
	"github.com/mrops-br/product-ms/internal/infrastructure/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

type fixture struct {
	service  *ProductService
	products *memory.ProductRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	tracer := tracenoop.NewTracerProvider().Tracer("test")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	products := memory.NewProductRepository(tracer, logger)

	return &fixture{
		service: NewProductService(
			products,
			memory.NewSubscriptionRepository(tracer, logger),
			memory.NewProductSequence(),
			tracer,
			metricnoop.NewMeterProvider().Meter("test"),
			logger,
		),
		products: products,
	}
}

func candidate(name, category, seller string, stock int) *dto.ProductDTO {
	return &dto.ProductDTO{
		ProductName:   name,
		Price:         9.99,
		Category:      category,
		SubCategory:   "General",
		Description:   "A " + name,
		Image:         "item.png",
		SellerID:      seller,
		ProductRating: 4,
		Stock:         stock,
	}
}

func (f *fixture) add(t *testing.T, req *dto.ProductDTO) string {
	t.Helper()
	id, err := f.service.AddProduct(context.Background(), req)
	require.NoError(t, err)
	return id
}

func (f *fixture) stock(t *testing.T, id string) int {
	t.Helper()
	p, err := f.service.GetProductByID(context.Background(), id)
	require.NoError(t, err)
	return p.Stock
}

func TestAddProduct_AssignsIncreasingIDs(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, "PROD100", f.add(t, candidate("Widget", "Tools", "S1", 50)))
	assert.Equal(t, "PROD101", f.add(t, candidate("Gadget", "Tools", "S1", 5)))
	assert.Equal(t, "PROD102", f.add(t, candidate("Gizmo", "Toys", "S2", 0)))
}

func TestAddProduct_CopiesFields(t *testing.T) {
	f := newFixture(t)
	req := candidate("Widget", "Tools", "S1", 50)

	id := f.add(t, req)

	got, err := f.service.GetProductByID(context.Background(), id)
	require.NoError(t, err)
	want := *req
	want.ProductID = id
	assert.Equal(t, want, *got)
}

func TestAddProduct_DuplicateName(t *testing.T) {
	f := newFixture(t)
	f.add(t, candidate("Widget", "Tools", "S1", 50))

	_, err := f.service.AddProduct(context.Background(), candidate("Widget", "Other", "S2", 10))
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
}

func TestAddProduct_InvalidCandidateDoesNotConsumeID(t *testing.T) {
	f := newFixture(t)
	bad := candidate("Widget", "Tools", "S1", 50)
	bad.Price = 0

	_, err := f.service.AddProduct(context.Background(), bad)
	assert.ErrorIs(t, err, domain.ErrValidation)

	assert.Equal(t, "PROD100", f.add(t, candidate("Widget", "Tools", "S1", 50)))
}

func TestStockScenario(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	id := f.add(t, candidate("Widget", "Tools", "S1", 50))
	require.Equal(t, "PROD100", id)

	_, err := f.service.AddProduct(ctx, candidate("Widget", "Tools", "S1", 50))
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)

	ok, err := f.service.ReduceStock(ctx, id, 20)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 30, f.stock(t, id))

	ok, err = f.service.ReduceStock(ctx, id, 40)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 30, f.stock(t, id))

	_, err = f.service.UpdateStock(ctx, id, 5)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, 30, f.stock(t, id))

	ok, err = f.service.UpdateStock(ctx, id, 25)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 25, f.stock(t, id))
}

func TestReduceStock_ToZero(t *testing.T) {
	f := newFixture(t)
	id := f.add(t, candidate("Widget", "Tools", "S1", 12))

	ok, err := f.service.ReduceStock(context.Background(), id, 12)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 0, f.stock(t, id))
}

func TestStock_UnknownProduct(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.ReduceStock(context.Background(), "PROD999", 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.service.UpdateStock(context.Background(), "PROD999", 50)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteProduct(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	id := f.add(t, candidate("Widget", "Tools", "S1", 50))

	msg, err := f.service.DeleteProduct(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, MsgProductDeleted, msg)

	_, err = f.service.GetProductByID(ctx, id)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.service.DeleteProduct(ctx, id)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteProductsOfDeactivatedSeller(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.add(t, candidate("Widget", "Tools", "S1", 50))
	f.add(t, candidate("Gadget", "Tools", "S1", 50))
	keep := f.add(t, candidate("Gizmo", "Tools", "S2", 50))

	msg, err := f.service.DeleteProductsOfDeactivatedSeller(ctx, "S1")
	require.NoError(t, err)
	assert.Equal(t, MsgDeactivatedSellerCleaned, msg)

	all, err := f.service.ViewAllProducts(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, keep, all[0].ProductID)

	// no products left is still a success
	msg, err = f.service.DeleteProductsOfDeactivatedSeller(ctx, "S1")
	require.NoError(t, err)
	assert.Equal(t, MsgDeactivatedSellerCleaned, msg)
}

func TestDeleteSellerProducts(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.add(t, candidate("Widget", "Tools", "S1", 50))
	f.add(t, candidate("Gadget", "Tools", "S1", 50))

	require.NoError(t, f.service.DeleteSellerProducts(ctx, "S1"))

	_, err := f.service.ViewAllProducts(ctx)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = f.service.DeleteSellerProducts(ctx, "S1")
	assert.ErrorIs(t, err, domain.ErrSellerProductsNotFound)
}

func TestLookups(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	first := f.add(t, candidate("Widget", "Tools", "S1", 50))
	f.add(t, candidate("Teddy", "Toys", "S1", 50))
	second := f.add(t, candidate("Hammer", "Tools", "S2", 50))

	t.Run("by name", func(t *testing.T) {
		p, err := f.service.GetProductByName(ctx, "Hammer")
		require.NoError(t, err)
		assert.Equal(t, second, p.ProductID)

		_, err = f.service.GetProductByName(ctx, "Nothing")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("by category", func(t *testing.T) {
		tools, err := f.service.GetProductsByCategory(ctx, "Tools")
		require.NoError(t, err)
		require.Len(t, tools, 2)
		assert.Equal(t, first, tools[0].ProductID)
		assert.Equal(t, second, tools[1].ProductID)
	})

	t.Run("empty category is not found", func(t *testing.T) {
		products, err := f.service.GetProductsByCategory(ctx, "Books")
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.Nil(t, products)
	})

	t.Run("all", func(t *testing.T) {
		all, err := f.service.ViewAllProducts(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 3)
	})
}

func TestViewAllProducts_EmptyStore(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.ViewAllProducts(context.Background())
	assert.ErrorIs(t, err, domain.ErrNoProducts)
}

func TestSubscriptions(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	req := &dto.SubscriptionDTO{BuyerID: "B1", ProdID: "PROD100", Quantity: 3}

	t.Run("privileged buyer", func(t *testing.T) {
		msg, err := f.service.AddSubscription(ctx, req, &dto.BuyerDTO{BuyerID: "B1", IsPrivileged: "True"})
		require.NoError(t, err)
		assert.Equal(t, MsgSubscriptionAdded, msg)

		got, err := f.service.GetSubscriptionDetails(ctx, "B1", "PROD100")
		require.NoError(t, err)
		assert.Equal(t, *req, *got)
	})

	t.Run("resubscribing overwrites quantity", func(t *testing.T) {
		again := &dto.SubscriptionDTO{BuyerID: "B1", ProdID: "PROD100", Quantity: 9}
		_, err := f.service.AddSubscription(ctx, again, &dto.BuyerDTO{IsPrivileged: "True"})
		require.NoError(t, err)

		got, err := f.service.GetSubscriptionDetails(ctx, "B1", "PROD100")
		require.NoError(t, err)
		assert.Equal(t, 9, got.Quantity)
	})

	for _, flag := range []string{"False", "true", "TRUE", ""} {
		t.Run("rejected flag "+flag, func(t *testing.T) {
			other := &dto.SubscriptionDTO{BuyerID: "B2", ProdID: "PROD100", Quantity: 1}
			_, err := f.service.AddSubscription(ctx, other, &dto.BuyerDTO{BuyerID: "B2", IsPrivileged: flag})
			assert.ErrorIs(t, err, domain.ErrSubscriptionFailed)

			_, err = f.service.GetSubscriptionDetails(ctx, "B2", "PROD100")
			assert.ErrorIs(t, err, domain.ErrNotFound)
		})
	}
}

var errStorage = errors.New("storage unavailable")

type failingSequence struct{}

func (failingSequence) Next(context.Context) (int64, error) {
	return 0, errStorage
}

type failingDeletes struct {
	*memory.ProductRepository
	deletes int
	failAt  int
}

func (r *failingDeletes) Delete(ctx context.Context, p *domain.Product) error {
	r.deletes++
	if r.deletes == r.failAt {
		return errStorage
	}
	return r.ProductRepository.Delete(ctx, p)
}

func TestStorageErrorsPropagate(t *testing.T) {
	ctx := context.Background()
	tracer := tracenoop.NewTracerProvider().Tracer("test")
	meter := metricnoop.NewMeterProvider().Meter("test")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("sequence", func(t *testing.T) {
		svc := NewProductService(
			memory.NewProductRepository(tracer, logger),
			memory.NewSubscriptionRepository(tracer, logger),
			failingSequence{}, tracer, meter, logger,
		)
		_, err := svc.AddProduct(ctx, candidate("Widget", "Tools", "S1", 50))
		assert.ErrorIs(t, err, errStorage)
	})

	t.Run("per-record delete keeps earlier deletions", func(t *testing.T) {
		repo := &failingDeletes{ProductRepository: memory.NewProductRepository(tracer, logger), failAt: 2}
		svc := NewProductService(repo, memory.NewSubscriptionRepository(tracer, logger),
			memory.NewProductSequence(), tracer, meter, logger)

		for _, name := range []string{"Widget", "Gadget", "Gizmo"} {
			_, err := svc.AddProduct(ctx, candidate(name, "Tools", "S1", 50))
			require.NoError(t, err)
		}

		err := svc.DeleteSellerProducts(ctx, "S1")
		assert.ErrorIs(t, err, errStorage)

		left, err := svc.ViewAllProducts(ctx)
		require.NoError(t, err)
		assert.Len(t, left, 2)
	})
}
