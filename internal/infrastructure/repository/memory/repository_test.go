package memory

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/mrops-br/product-ms/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
)

func newTestProductRepository() *ProductRepository {
	return NewProductRepository(noop.NewTracerProvider().Tracer("test"), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func product(id, name, category, seller string) *domain.Product {
	return &domain.Product{
		ProdID:      id,
		ProductName: name,
		Price:       10,
		Category:    category,
		SellerID:    seller,
		Stock:       20,
	}
}

func TestProductRepository_SaveAndFind(t *testing.T) {
	ctx := context.Background()
	repo := newTestProductRepository()

	_, err := repo.Save(ctx, product("PROD100", "Widget", "tools", "S1"))
	require.NoError(t, err)

	byID, err := repo.FindByID(ctx, "PROD100")
	require.NoError(t, err)
	assert.Equal(t, "Widget", byID.ProductName)

	byName, err := repo.FindByName(ctx, "Widget")
	require.NoError(t, err)
	assert.Equal(t, "PROD100", byName.ProdID)

	_, err = repo.FindByID(ctx, "PROD999")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	_, err = repo.FindByName(ctx, "Gadget")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := newTestProductRepository()

	_, err := repo.Save(ctx, product("PROD100", "Widget", "tools", "S1"))
	require.NoError(t, err)

	found, err := repo.FindByID(ctx, "PROD100")
	require.NoError(t, err)
	found.Stock = 0

	again, err := repo.FindByID(ctx, "PROD100")
	require.NoError(t, err)
	assert.Equal(t, 20, again.Stock)
}

func TestProductRepository_ListsKeepInsertionOrder(t *testing.T) {
	ctx := context.Background()
	repo := newTestProductRepository()

	for _, p := range []*domain.Product{
		product("PROD100", "A", "tools", "S1"),
		product("PROD101", "B", "books", "S2"),
		product("PROD102", "C", "tools", "S1"),
	} {
		_, err := repo.Save(ctx, p)
		require.NoError(t, err)
	}

	tools, err := repo.FindByCategory(ctx, "tools")
	require.NoError(t, err)
	require.Len(t, tools, 2)
	assert.Equal(t, "PROD100", tools[0].ProdID)
	assert.Equal(t, "PROD102", tools[1].ProdID)

	seller, err := repo.FindBySellerID(ctx, "S2")
	require.NoError(t, err)
	require.Len(t, seller, 1)
	assert.Equal(t, "B", seller[0].ProductName)

	none, err := repo.FindByCategory(ctx, "toys")
	require.NoError(t, err)
	assert.Empty(t, none)

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestProductRepository_Delete(t *testing.T) {
	ctx := context.Background()
	repo := newTestProductRepository()

	a := product("PROD100", "A", "tools", "S1")
	b := product("PROD101", "B", "tools", "S1")
	c := product("PROD102", "C", "tools", "S2")
	for _, p := range []*domain.Product{a, b, c} {
		_, err := repo.Save(ctx, p)
		require.NoError(t, err)
	}

	require.NoError(t, repo.Delete(ctx, a))
	_, err := repo.FindByID(ctx, "PROD100")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	require.NoError(t, repo.DeleteAll(ctx, []*domain.Product{b, c}))
	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestSubscriptionRepository_Upsert(t *testing.T) {
	ctx := context.Background()
	repo := NewSubscriptionRepository(noop.NewTracerProvider().Tracer("test"), slog.New(slog.NewTextHandler(io.Discard, nil)))
	key := domain.NewCompositeKey("B1", "PROD100")

	_, err := repo.FindByKey(ctx, key)
	assert.ErrorIs(t, err, domain.ErrSubscriptionNotFound)

	_, err = repo.Save(ctx, &domain.Subscription{Key: key, Quantity: 2})
	require.NoError(t, err)
	_, err = repo.Save(ctx, &domain.Subscription{Key: key, Quantity: 5})
	require.NoError(t, err)

	found, err := repo.FindByKey(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, 5, found.Quantity)
}

func TestProductSequence_Concurrent(t *testing.T) {
	seq := NewProductSequence()

	const workers = 50
	values := make(chan int64, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := seq.Next(context.Background())
			assert.NoError(t, err)
			values <- v
		}()
	}
	wg.Wait()
	close(values)

	seen := make(map[int64]bool)
	for v := range values {
		assert.False(t, seen[v], "duplicate value %d", v)
		assert.GreaterOrEqual(t, v, domain.FirstProductSequence)
		assert.Less(t, v, domain.FirstProductSequence+workers)
		seen[v] = true
	}
	assert.Len(t, seen, workers)
}
