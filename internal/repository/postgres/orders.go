package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rupavo/payments-api/internal/domain"
	"github.com/rupavo/payments-api/pkg/errors"
)

type orderRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *sql.DB, logger *zap.Logger) *orderRepository {
	return &orderRepository{
		db:     db,
		logger: logger,
	}
}

func (r *orderRepository) CreateWithItems(ctx context.Context, order *domain.Order, items []*domain.OrderItem) error {
	now := time.Now()
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = now
	}
	if order.UpdatedAt.IsZero() {
		order.UpdatedAt = now
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		r.logger.Error("Failed to begin transaction", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	orderQuery := `
		INSERT INTO orders (id, shop_id, status, payment_status, customer_name, customer_phone,
			customer_email, customer_address, subtotal, delivery_fee, total_amount, platform_fee,
			merchant_amount, notes, additional_data, accepted_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	`

	_, err = tx.ExecContext(ctx, orderQuery,
		order.ID,
		order.ShopID,
		order.Status,
		order.PaymentStatus,
		order.CustomerName,
		order.CustomerPhone,
		order.CustomerEmail,
		order.CustomerAddress,
		order.Subtotal,
		order.DeliveryFee,
		order.TotalAmount,
		order.PlatformFee,
		order.MerchantAmount,
		order.Notes,
		order.AdditionalData,
		order.AcceptedAt,
		order.CreatedAt,
		order.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create order", zap.Error(err))
		return err
	}

	itemQuery := `
		INSERT INTO order_items (id, order_id, product_id, name, unit_price, quantity, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	for _, item := range items {
		if item.ID == uuid.Nil {
			item.ID = uuid.New()
		}
		item.OrderID = order.ID
		if item.CreatedAt.IsZero() {
			item.CreatedAt = now
		}

		_, err = tx.ExecContext(ctx, itemQuery,
			item.ID,
			item.OrderID,
			item.ProductID,
			item.Name,
			item.UnitPrice,
			item.Quantity,
			item.CreatedAt,
		)
		if err != nil {
			r.logger.Error("Failed to create order item", zap.Error(err))
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		r.logger.Error("Failed to commit order creation", zap.Error(err))
		return err
	}

	return nil
}

const orderColumns = `id, shop_id, status, payment_status, customer_name, customer_phone,
	customer_email, customer_address, subtotal, delivery_fee, total_amount, platform_fee,
	merchant_amount, notes, additional_data, accepted_at, created_at, updated_at`

func scanOrder(row interface {
	Scan(dest ...interface{}) error
}) (*domain.Order, error) {
	var order domain.Order
	var customerEmail, customerAddress, notes sql.NullString
	var acceptedAt sql.NullTime

	err := row.Scan(
		&order.ID,
		&order.ShopID,
		&order.Status,
		&order.PaymentStatus,
		&order.CustomerName,
		&order.CustomerPhone,
		&customerEmail,
		&customerAddress,
		&order.Subtotal,
		&order.DeliveryFee,
		&order.TotalAmount,
		&order.PlatformFee,
		&order.MerchantAmount,
		&notes,
		&order.AdditionalData,
		&acceptedAt,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if customerEmail.Valid {
		order.CustomerEmail = &customerEmail.String
	}
	if customerAddress.Valid {
		order.CustomerAddress = &customerAddress.String
	}
	if notes.Valid {
		order.Notes = &notes.String
	}
	if acceptedAt.Valid {
		order.AcceptedAt = &acceptedAt.Time
	}

	return &order, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	order, err := scanOrder(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "order", ID: id.String()}
	}
	if err != nil {
		r.logger.Error("Failed to get order by ID", zap.Error(err))
		return nil, err
	}

	return order, nil
}

func (r *orderRepository) GetItems(ctx context.Context, orderID uuid.UUID) ([]*domain.OrderItem, error) {
	query := `
		SELECT id, order_id, product_id, name, unit_price, quantity, created_at
		FROM order_items
		WHERE order_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.QueryContext(ctx, query, orderID)
	if err != nil {
		r.logger.Error("Failed to query order items", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var items []*domain.OrderItem
	for rows.Next() {
		var item domain.OrderItem

		err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.ProductID,
			&item.Name,
			&item.UnitPrice,
			&item.Quantity,
			&item.CreatedAt,
		)
		if err != nil {
			r.logger.Error("Failed to scan order item", zap.Error(err))
			return nil, err
		}

		items = append(items, &item)
	}

	return items, rows.Err()
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status *domain.OrderStatus, paymentStatus *domain.PaymentStatus) error {
	query := `
		UPDATE orders
		SET status = COALESCE($2, status),
			payment_status = COALESCE($3, payment_status),
			updated_at = $4
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, id, status, paymentStatus, time.Now())
	if err != nil {
		r.logger.Error("Failed to update order status", zap.Error(err))
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return &errors.ErrNotFound{Resource: "order", ID: id.String()}
	}

	return nil
}

func (r *orderRepository) MarkAccepted(ctx context.Context, id uuid.UUID, at time.Time) error {
	// accepted_at is set exactly once; redeliveries of a paid notification
	// must not move it
	query := `
		UPDATE orders
		SET accepted_at = $2, updated_at = $3
		WHERE id = $1 AND accepted_at IS NULL
	`

	_, err := r.db.ExecContext(ctx, query, id, at, time.Now())
	if err != nil {
		r.logger.Error("Failed to mark order accepted", zap.Error(err))
		return err
	}

	return nil
}

func (r *orderRepository) ListByShopID(ctx context.Context, shopID uuid.UUID, limit, offset int) ([]*domain.Order, error) {
	query := `SELECT ` + orderColumns + `
		FROM orders
		WHERE shop_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	return r.list(ctx, query, shopID, limit, offset)
}

func (r *orderRepository) ListByStatus(ctx context.Context, status domain.OrderStatus, limit, offset int) ([]*domain.Order, error) {
	query := `SELECT ` + orderColumns + `
		FROM orders
		WHERE status = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	return r.list(ctx, query, status, limit, offset)
}

func (r *orderRepository) list(ctx context.Context, query string, args ...interface{}) ([]*domain.Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to list orders", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var orders []*domain.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			r.logger.Error("Failed to scan order", zap.Error(err))
			return nil, err
		}
		orders = append(orders, order)
	}

	return orders, rows.Err()
}
