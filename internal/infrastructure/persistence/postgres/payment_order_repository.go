package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"numguru/internal/database"
	"numguru/internal/domain/payment"
)

type PaymentOrderRepository struct {
	db  database.DB
	now func() time.Time
}

func NewPaymentOrderRepository(db database.DB) *PaymentOrderRepository {
	return &PaymentOrderRepository{db: db, now: time.Now}
}

func (r *PaymentOrderRepository) Create(ctx context.Context, o payment.Order) error {
	now := r.now().UTC()
	if o.CreatedAt.IsZero() {
		o.CreatedAt = now
	}
	if o.UpdatedAt.IsZero() {
		o.UpdatedAt = o.CreatedAt
	}
	if o.Status == "" {
		o.Status = payment.StatusCreated
	}

	_, err := r.db.Exec(ctx, `
INSERT INTO payment_orders (order_id, receipt, amount, currency, status, payment_id, reading_key, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		o.OrderID, o.Receipt, o.Amount, o.Currency, string(o.Status), o.PaymentID, o.ReadingKey, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, database.ErrUniqueViolation) {
			return payment.ErrOrderAlreadyExists
		}
		return fmt.Errorf("insert payment order: %w", err)
	}
	return nil
}

func (r *PaymentOrderRepository) Get(ctx context.Context, orderID string) (payment.Order, error) {
	row := r.db.QueryRow(ctx, `
SELECT order_id, receipt, amount, currency, status, payment_id, reading_key, created_at, updated_at
FROM payment_orders WHERE order_id = $1`, strings.TrimSpace(orderID))
	return scanOrder(row)
}

// UpdateStatus runs the read and the conditional write in one transaction so
// concurrent verify and webhook calls cannot move an order backwards.
func (r *PaymentOrderRepository) UpdateStatus(ctx context.Context, orderID string, status payment.Status, paymentID string) (payment.Order, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return payment.Order{}, fmt.Errorf("begin: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	current, err := scanOrder(tx.QueryRow(ctx, `
SELECT order_id, receipt, amount, currency, status, payment_id, reading_key, created_at, updated_at
FROM payment_orders WHERE order_id = $1 FOR UPDATE`, strings.TrimSpace(orderID)))
	if err != nil {
		return payment.Order{}, err
	}

	if !current.Status.Advances(status) {
		return current, nil
	}

	if paymentID == "" {
		paymentID = current.PaymentID
	}
	now := r.now().UTC()
	if _, err := tx.Exec(ctx,
		`UPDATE payment_orders SET status = $2, payment_id = $3, updated_at = $4 WHERE order_id = $1`,
		current.OrderID, string(status), paymentID, now,
	); err != nil {
		return payment.Order{}, fmt.Errorf("update payment order: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return payment.Order{}, fmt.Errorf("commit: %w", err)
	}

	current.Status = status
	current.PaymentID = paymentID
	current.UpdatedAt = now
	return current, nil
}

// BindReading is a single conditional UPDATE, so of two concurrent callers
// only the first key is kept.
func (r *PaymentOrderRepository) BindReading(ctx context.Context, orderID, readingKey string) (payment.Order, error) {
	orderID = strings.TrimSpace(orderID)
	if readingKey != "" {
		if _, err := r.db.Exec(ctx,
			`UPDATE payment_orders SET reading_key = $2, updated_at = $3 WHERE order_id = $1 AND reading_key = ''`,
			orderID, readingKey, r.now().UTC(),
		); err != nil {
			return payment.Order{}, fmt.Errorf("bind reading: %w", err)
		}
	}
	return r.Get(ctx, orderID)
}

func scanOrder(row database.Row) (payment.Order, error) {
	var o payment.Order
	var status string
	if err := row.Scan(&o.OrderID, &o.Receipt, &o.Amount, &o.Currency, &status, &o.PaymentID, &o.ReadingKey, &o.CreatedAt, &o.UpdatedAt); err != nil {
		if errors.Is(err, database.ErrNoRows) {
			return payment.Order{}, payment.ErrOrderNotFound
		}
		return payment.Order{}, fmt.Errorf("scan payment order: %w", err)
	}
	o.Status = payment.Status(status)
	return o, nil
}

var _ payment.Repository = (*PaymentOrderRepository)(nil)
