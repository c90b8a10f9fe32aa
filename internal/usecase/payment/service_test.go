package payment

import (
	"context"
	"errors"
	"math"
	"strings"
	"sync"
	"testing"
	"time"

	"numguru/internal/domain/payment"
	"numguru/internal/infrastructure/persistence/memory"
	"numguru/internal/pkg/unlock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGateway struct {
	mu   sync.Mutex
	reqs []payment.GatewayOrderRequest
	err  error
}

func (g *fakeGateway) CreateOrder(_ context.Context, req payment.GatewayOrderRequest) (payment.GatewayOrder, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.reqs = append(g.reqs, req)
	if g.err != nil {
		return payment.GatewayOrder{}, g.err
	}
	return payment.GatewayOrder{
		ID:       "order_test1",
		Amount:   req.Amount,
		Currency: req.Currency,
		Receipt:  req.Receipt,
		Status:   "created",
	}, nil
}

type fakePublisher struct {
	mu     sync.Mutex
	events []payment.StatusEvent
}

func (p *fakePublisher) PublishStatus(evt payment.StatusEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
}

type fakeDeduper struct {
	seen map[string]bool
	err  error
}

func (d *fakeDeduper) SetIfNotExists(_ context.Context, key string, _ string, _ time.Duration) (bool, error) {
	if d.err != nil {
		return false, d.err
	}
	if d.seen[key] {
		return false, nil
	}
	d.seen[key] = true
	return true, nil
}

func (d *fakeDeduper) Delete(_ context.Context, key string) error {
	delete(d.seen, key)
	return nil
}

type fixture struct {
	svc       *Service
	gateway   *fakeGateway
	orders    *memory.PaymentOrderRepository
	tokens    *unlock.HMACService
	publisher *fakePublisher
	dedupe    *fakeDeduper
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	f := fixture{
		gateway:   &fakeGateway{},
		orders:    memory.NewPaymentOrderRepository(),
		tokens:    unlock.NewHMACService("unlock-secret", time.Hour),
		publisher: &fakePublisher{},
		dedupe:    &fakeDeduper{seen: map[string]bool{}},
	}
	f.svc = NewService(Config{KeyID: "rzp_test_key", KeySecret: "key-secret", WebhookSecret: "hook-secret"}, Deps{
		Gateway: f.gateway,
		Orders:  f.orders,
		Tokens:  f.tokens,
		Events:  f.publisher,
		Dedupe:  f.dedupe,
	})
	return f
}

func TestCreateOrder_ConvertsToMinorUnits(t *testing.T) {
	f := newFixture(t)

	out, err := f.svc.CreateOrder(context.Background(), CreateOrderInput{Amount: 4.99, Currency: "usd"})
	require.NoError(t, err)

	assert.Equal(t, CreateOrderOutput{OrderID: "order_test1", KeyID: "rzp_test_key", Amount: 499, Currency: "USD"}, out)
	require.Len(t, f.gateway.reqs, 1)
	req := f.gateway.reqs[0]
	assert.Equal(t, int64(499), req.Amount)
	assert.True(t, strings.HasPrefix(req.Receipt, "receipt_"))
	assert.LessOrEqual(t, len(req.Receipt), 40)

	stored, err := f.orders.Get(context.Background(), "order_test1")
	require.NoError(t, err)
	assert.Equal(t, payment.StatusCreated, stored.Status)
	assert.Equal(t, req.Receipt, stored.Receipt)
	assert.Empty(t, stored.ReadingKey)
}

func TestCreateOrder_DefaultsToINRAndRecordsReading(t *testing.T) {
	f := newFixture(t)
	dob := time.Date(1990, 5, 15, 0, 0, 0, 0, time.UTC)

	out, err := f.svc.CreateOrder(context.Background(), CreateOrderInput{Amount: 399, Name: "John Smith", DOB: dob})
	require.NoError(t, err)
	assert.Equal(t, "INR", out.Currency)
	assert.Equal(t, int64(39900), out.Amount)

	stored, err := f.orders.Get(context.Background(), out.OrderID)
	require.NoError(t, err)
	assert.Equal(t, unlock.ReadingKey("John Smith", dob), stored.ReadingKey)
	assert.Equal(t, stored.ReadingKey, f.gateway.reqs[0].Notes["reading_key"])
}

func TestCreateOrder_RejectsBadInput(t *testing.T) {
	cases := []struct {
		name     string
		amount   float64
		currency string
	}{
		{"zero", 0, "INR"},
		{"negative", -5, "INR"},
		{"nan", math.NaN(), "INR"},
		{"inf", math.Inf(1), "INR"},
		{"rounds to zero", 0.001, "INR"},
		{"unsupported currency", 10, "EUR"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			_, err := f.svc.CreateOrder(context.Background(), CreateOrderInput{Amount: tc.amount, Currency: tc.currency})
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Empty(t, f.gateway.reqs)
		})
	}
}

func TestCreateOrder_NotConfigured(t *testing.T) {
	svc := NewService(Config{}, Deps{Gateway: &fakeGateway{}, Orders: memory.NewPaymentOrderRepository()})

	_, err := svc.CreateOrder(context.Background(), CreateOrderInput{Amount: 399})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestCreateOrder_GatewayFailure(t *testing.T) {
	f := newFixture(t)
	f.gateway.err = errors.New("boom")

	_, err := f.svc.CreateOrder(context.Background(), CreateOrderInput{Amount: 399})
	assert.ErrorIs(t, err, ErrGateway)
}

func TestVerify_ValidSignatureIssuesToken(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	dob := time.Date(1990, 5, 15, 0, 0, 0, 0, time.UTC)

	created, err := f.svc.CreateOrder(ctx, CreateOrderInput{Amount: 399})
	require.NoError(t, err)

	sig := Sign("key-secret", created.OrderID+"|pay_1")
	out, err := f.svc.Verify(ctx, VerifyInput{
		OrderID:   created.OrderID,
		PaymentID: "pay_1",
		Signature: sig,
		Name:      "John Smith",
		DOB:       dob,
	})
	require.NoError(t, err)
	assert.True(t, out.Verified)
	require.NotNil(t, out.UnlockToken)

	ok, err := f.tokens.Unlocks(out.UnlockToken.Value, unlock.ReadingKey("John Smith", dob))
	require.NoError(t, err)
	assert.True(t, ok)

	stored, err := f.orders.Get(ctx, created.OrderID)
	require.NoError(t, err)
	assert.Equal(t, payment.StatusVerified, stored.Status)
	assert.Equal(t, "pay_1", stored.PaymentID)

	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, payment.StatusVerified, f.publisher.events[0].Status)
	assert.Equal(t, "verify", f.publisher.events[0].Source)
}

func TestVerify_UsesReadingStoredOnOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	dob := time.Date(1982, 1, 1, 0, 0, 0, 0, time.UTC)

	created, err := f.svc.CreateOrder(ctx, CreateOrderInput{Amount: 399, Name: "Ada Lovelace", DOB: dob})
	require.NoError(t, err)

	out, err := f.svc.Verify(ctx, VerifyInput{
		OrderID:   created.OrderID,
		PaymentID: "pay_2",
		Signature: Sign("key-secret", created.OrderID+"|pay_2"),
	})
	require.NoError(t, err)
	require.NotNil(t, out.UnlockToken)

	claims, err := f.tokens.Validate(out.UnlockToken.Value)
	require.NoError(t, err)
	assert.Equal(t, unlock.ReadingKey("Ada Lovelace", dob), claims.ReadingKey)
}

func TestVerify_TokenBoundToOrderReading(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	aliceDOB := time.Date(1991, 4, 2, 0, 0, 0, 0, time.UTC)

	created, err := f.svc.CreateOrder(ctx, CreateOrderInput{Amount: 399, Name: "Alice", DOB: aliceDOB})
	require.NoError(t, err)
	in := VerifyInput{
		OrderID:   created.OrderID,
		PaymentID: "pay_3",
		Signature: Sign("key-secret", created.OrderID+"|pay_3"),
	}

	for _, name := range []string{"Bob", "Carol", "Dave"} {
		in.Name, in.DOB = name, time.Date(1985, 7, 9, 0, 0, 0, 0, time.UTC)
		out, err := f.svc.Verify(ctx, in)
		require.NoError(t, err)
		assert.True(t, out.Verified, name)
		assert.Nil(t, out.UnlockToken, name)
	}

	in.Name, in.DOB = "Alice", aliceDOB
	out, err := f.svc.Verify(ctx, in)
	require.NoError(t, err)
	require.NotNil(t, out.UnlockToken)
	ok, err := f.tokens.Unlocks(out.UnlockToken.Value, unlock.ReadingKey("Alice", aliceDOB))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVerify_FirstReadingBindsUnboundOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	dob := time.Date(1990, 5, 15, 0, 0, 0, 0, time.UTC)

	created, err := f.svc.CreateOrder(ctx, CreateOrderInput{Amount: 399})
	require.NoError(t, err)
	in := VerifyInput{
		OrderID:   created.OrderID,
		PaymentID: "pay_4",
		Signature: Sign("key-secret", created.OrderID+"|pay_4"),
		Name:      "John Smith",
		DOB:       dob,
	}

	out, err := f.svc.Verify(ctx, in)
	require.NoError(t, err)
	require.NotNil(t, out.UnlockToken)

	stored, err := f.orders.Get(ctx, created.OrderID)
	require.NoError(t, err)
	assert.Equal(t, unlock.ReadingKey("John Smith", dob), stored.ReadingKey)

	in.Name = "Someone Else"
	out, err = f.svc.Verify(ctx, in)
	require.NoError(t, err)
	assert.True(t, out.Verified)
	assert.Nil(t, out.UnlockToken)
}

func TestVerify_UnknownOrderStillVerifies(t *testing.T) {
	f := newFixture(t)

	out, err := f.svc.Verify(context.Background(), VerifyInput{
		OrderID:   "order_missing",
		PaymentID: "pay_1",
		Signature: Sign("key-secret", "order_missing|pay_1"),
		Name:      "John Smith",
		DOB:       time.Date(1990, 5, 15, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.True(t, out.Verified)
	assert.Nil(t, out.UnlockToken)
	assert.Empty(t, f.publisher.events)
}

func TestVerify_BadSignature(t *testing.T) {
	f := newFixture(t)

	out, err := f.svc.Verify(context.Background(), VerifyInput{
		OrderID:   "order_test1",
		PaymentID: "pay_1",
		Signature: Sign("wrong-secret", "order_test1|pay_1"),
	})
	assert.ErrorIs(t, err, ErrInvalidSignature)
	assert.False(t, out.Verified)
}

func TestVerify_MissingFields(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Verify(context.Background(), VerifyInput{OrderID: "order_test1"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestValidSignature(t *testing.T) {
	sig := Sign("secret", "a|b")

	assert.True(t, ValidSignature("secret", "a|b", sig))
	assert.True(t, ValidSignature("secret", "a|b", strings.ToUpper(sig)))
	assert.False(t, ValidSignature("secret", "a|c", sig))
	assert.False(t, ValidSignature("secret", "a|b", "not-hex"))
	assert.False(t, ValidSignature("secret", "a|b", ""))
}
