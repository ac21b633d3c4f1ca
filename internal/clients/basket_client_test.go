// internal/clients/basket_client_test.go
package clients

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"basketservice/internal/basket"
	"basketservice/internal/server"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) *BasketClient {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := basket.NewService(basket.NewMemoryStore(), logger, nil)
	srv := httptest.NewServer(server.NewRouter(basket.NewHandler(svc, logger), logger, server.Options{}))
	t.Cleanup(srv.Close)
	return NewBasketClient(srv.URL, srv.Client())
}

func TestBasketClient_ShoppingFlow(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)

	created, err := client.CreateBasket(ctx)
	require.NoError(t, err)
	assert.Empty(t, created.Items)

	_, err = client.AddItem(ctx, created.BasketID, "HAT", 2)
	require.NoError(t, err)
	merged, err := client.AddItem(ctx, created.BasketID, "hat", 3)
	require.NoError(t, err)
	require.Len(t, merged.Items, 1)
	assert.Equal(t, "HAT", merged.Items[0].ProductID)
	assert.Equal(t, 5, merged.Items[0].Quantity)

	batch, err := client.AddItems(ctx, created.BasketID, []Line{
		{ProductID: "SCARF", Quantity: 1},
		{ProductID: "GLOVES", Quantity: 2},
	})
	require.NoError(t, err)
	require.Len(t, batch.Items, 3)

	removed, err := client.RemoveItem(ctx, created.BasketID, merged.Items[0].ItemID)
	require.NoError(t, err)
	require.Len(t, removed.Items, 2)
	assert.Equal(t, "SCARF", removed.Items[0].ProductID)
	assert.Equal(t, "GLOVES", removed.Items[1].ProductID)

	_, err = client.RemoveItem(ctx, created.BasketID, merged.Items[0].ItemID)
	require.ErrorIs(t, err, ErrNotFound)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "Item not found.", apiErr.Message)

	fetched, err := client.GetBasket(ctx, created.BasketID)
	require.NoError(t, err)
	assert.Equal(t, removed.Items, fetched.Items)
}

func TestBasketClient_Errors(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)

	t.Run("unknown basket", func(t *testing.T) {
		_, err := client.GetBasket(ctx, uuid.New())

		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("rejected quantity", func(t *testing.T) {
		created, err := client.CreateBasket(ctx)
		require.NoError(t, err)

		_, err = client.AddItem(ctx, created.BasketID, "HAT", 0)

		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
		assert.NotErrorIs(t, err, ErrNotFound)
	})
}

func TestBasketClient_ConcurrentAdds(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)
	created, err := client.CreateBasket(ctx)
	require.NoError(t, err)

	const workers = 10
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := client.AddItem(ctx, created.BasketID, "HAT", 1)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	fetched, err := client.GetBasket(ctx, created.BasketID)
	require.NoError(t, err)
	require.Len(t, fetched.Items, 1)
	assert.GreaterOrEqual(t, fetched.Items[0].Quantity, 1)
	assert.LessOrEqual(t, fetched.Items[0].Quantity, workers)
}
