package memory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"numguru/internal/domain/payment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentOrderRepository_Lifecycle(t *testing.T) {
	ctx := context.Background()
	repo := NewPaymentOrderRepository()

	require.NoError(t, repo.Create(ctx, payment.Order{OrderID: "order_1", Amount: 39900, Currency: "INR"}))
	assert.True(t, errors.Is(repo.Create(ctx, payment.Order{OrderID: "order_1"}), payment.ErrOrderAlreadyExists))

	o, err := repo.Get(ctx, "order_1")
	require.NoError(t, err)
	assert.Equal(t, payment.StatusCreated, o.Status)
	assert.False(t, o.CreatedAt.IsZero())

	o, err = repo.UpdateStatus(ctx, "order_1", payment.StatusCaptured, "pay_1")
	require.NoError(t, err)
	assert.Equal(t, payment.StatusCaptured, o.Status)

	// a late verify never downgrades a capture
	o, err = repo.UpdateStatus(ctx, "order_1", payment.StatusVerified, "pay_2")
	require.NoError(t, err)
	assert.Equal(t, payment.StatusCaptured, o.Status)
	assert.Equal(t, "pay_1", o.PaymentID)

	_, err = repo.Get(ctx, "missing")
	assert.True(t, errors.Is(err, payment.ErrOrderNotFound))
	_, err = repo.UpdateStatus(ctx, "missing", payment.StatusVerified, "")
	assert.True(t, errors.Is(err, payment.ErrOrderNotFound))
}

func TestPaymentOrderRepository_ConcurrentUpdates(t *testing.T) {
	ctx := context.Background()
	repo := NewPaymentOrderRepository()
	require.NoError(t, repo.Create(ctx, payment.Order{OrderID: "o"}))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			st := payment.StatusVerified
			if i%2 == 0 {
				st = payment.StatusCaptured
			}
			_, _ = repo.UpdateStatus(ctx, "o", st, "pay")
		}(i)
	}
	wg.Wait()

	o, err := repo.Get(ctx, "o")
	require.NoError(t, err)
	assert.Equal(t, payment.StatusCaptured, o.Status)
}

func TestPaymentOrderRepository_BindReading(t *testing.T) {
	ctx := context.Background()
	repo := NewPaymentOrderRepository()
	require.NoError(t, repo.Create(ctx, payment.Order{OrderID: "o"}))

	o, err := repo.BindReading(ctx, "o", "")
	require.NoError(t, err)
	assert.Empty(t, o.ReadingKey)

	o, err = repo.BindReading(ctx, "o", "key-a")
	require.NoError(t, err)
	assert.Equal(t, "key-a", o.ReadingKey)

	o, err = repo.BindReading(ctx, "o", "key-b")
	require.NoError(t, err)
	assert.Equal(t, "key-a", o.ReadingKey)

	_, err = repo.BindReading(ctx, "missing", "key-a")
	assert.True(t, errors.Is(err, payment.ErrOrderNotFound))
}
