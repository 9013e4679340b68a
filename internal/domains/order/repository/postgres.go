package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"artstore-backend/internal/domains/order/model"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

// =====================================================
// ORDERS
// =====================================================

const orderColumns = `
	id, order_number, region, currency, customer_name, customer_email, customer_phone,
	shipping_address, shipping_city, shipping_country,
	subtotal, discount, coupon_code, shipping_cost, total,
	status, payment_status, created_at, updated_at
`

func scanOrder(row pgx.Row, o *model.Order) error {
	return row.Scan(
		&o.ID, &o.OrderNumber, &o.Region, &o.Currency,
		&o.CustomerName, &o.CustomerEmail, &o.CustomerPhone,
		&o.ShippingAddress, &o.ShippingCity, &o.ShippingCountry,
		&o.Subtotal, &o.Discount, &o.CouponCode, &o.ShippingCost, &o.Total,
		&o.Status, &o.PaymentStatus, &o.CreatedAt, &o.UpdatedAt,
	)
}

func (r *postgresRepository) CreateWithTx(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	query := `
		INSERT INTO orders (
			id, order_number, region, currency, customer_name, customer_email, customer_phone,
			shipping_address, shipping_city, shipping_country,
			subtotal, discount, coupon_code, shipping_cost, total,
			status, payment_status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING created_at, updated_at
	`

	err := tx.QueryRow(ctx, query,
		order.ID, order.OrderNumber, order.Region, order.Currency,
		order.CustomerName, order.CustomerEmail, order.CustomerPhone,
		order.ShippingAddress, order.ShippingCity, order.ShippingCountry,
		order.Subtotal, order.Discount, order.CouponCode, order.ShippingCost, order.Total,
		order.Status, order.PaymentStatus,
	).Scan(&order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	itemQuery := `
		INSERT INTO order_items (
			id, order_id, product_id, variant_id, title, size, material, sku,
			unit_price, quantity, desi
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	for i := range order.Items {
		item := &order.Items[i]
		item.OrderID = order.ID
		if _, err := tx.Exec(ctx, itemQuery,
			item.ID, item.OrderID, item.ProductID, item.VariantID,
			item.Title, item.Size, item.Material, item.SKU,
			item.UnitPrice, item.Quantity, item.Desi,
		); err != nil {
			return fmt.Errorf("failed to create order item: %w", err)
		}
	}

	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	return r.getOne(ctx, "id = $1", id)
}

func (r *postgresRepository) GetByOrderNumber(ctx context.Context, orderNumber string) (*model.Order, error) {
	return r.getOne(ctx, "order_number = $1", orderNumber)
}

func (r *postgresRepository) getOne(ctx context.Context, where string, arg interface{}) (*model.Order, error) {
	query := fmt.Sprintf("SELECT %s FROM orders WHERE %s", orderColumns, where)

	var o model.Order
	if err := scanOrder(r.pool.QueryRow(ctx, query, arg), &o); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	items, err := r.listItems(ctx, r.pool, o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items
	o.FulfillmentStatus = model.DeriveFulfillmentStatus(items)

	return &o, nil
}

func (r *postgresRepository) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*model.Order, error) {
	query := fmt.Sprintf("SELECT %s FROM orders WHERE id = $1 FOR UPDATE", orderColumns)

	var o model.Order
	if err := scanOrder(tx.QueryRow(ctx, query, id), &o); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to lock order: %w", err)
	}

	items, err := r.listItems(ctx, tx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items
	o.FulfillmentStatus = model.DeriveFulfillmentStatus(items)

	return &o, nil
}

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func (r *postgresRepository) listItems(ctx context.Context, q querier, orderID uuid.UUID) ([]model.OrderItem, error) {
	query := `
		SELECT id, order_id, product_id, variant_id, title, size, material, sku,
		       unit_price, quantity, desi, fulfilled_qty, refunded_qty
		FROM order_items
		WHERE order_id = $1
		ORDER BY title, size
	`

	rows, err := q.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to list order items: %w", err)
	}
	defer rows.Close()

	var items []model.OrderItem
	for rows.Next() {
		var i model.OrderItem
		if err := rows.Scan(
			&i.ID, &i.OrderID, &i.ProductID, &i.VariantID,
			&i.Title, &i.Size, &i.Material, &i.SKU,
			&i.UnitPrice, &i.Quantity, &i.Desi, &i.FulfilledQty, &i.RefundedQty,
		); err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		items = append(items, i)
	}

	return items, nil
}

func (r *postgresRepository) List(ctx context.Context, query *model.OrderListQuery) ([]model.Order, int, error) {
	where := "1=1"
	args := []interface{}{}
	argPos := 1

	if query.Status != "" {
		where += fmt.Sprintf(" AND status = $%d", argPos)
		args = append(args, query.Status)
		argPos++
	}
	if query.Region != "" {
		where += fmt.Sprintf(" AND region = $%d", argPos)
		args = append(args, query.Region)
		argPos++
	}
	if query.Search != "" {
		where += fmt.Sprintf(" AND (order_number ILIKE $%d OR customer_email ILIKE $%d OR customer_name ILIKE $%d)", argPos, argPos, argPos)
		args = append(args, "%"+query.Search+"%")
		argPos++
	}

	var total int
	countSQL := fmt.Sprintf("SELECT COUNT(*) FROM orders WHERE %s", where)
	if err := r.pool.QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	listSQL := fmt.Sprintf(`
		SELECT %s FROM orders
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, orderColumns, where, argPos, argPos+1)
	args = append(args, query.Limit, (query.Page-1)*query.Limit)

	rows, err := r.pool.Query(ctx, listSQL, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	var orders []model.Order
	for rows.Next() {
		var o model.Order
		if err := scanOrder(rows, &o); err != nil {
			return nil, 0, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, o)
	}

	for i := range orders {
		items, err := r.listItems(ctx, r.pool, orders[i].ID)
		if err != nil {
			return nil, 0, err
		}
		orders[i].Items = items
		orders[i].FulfillmentStatus = model.DeriveFulfillmentStatus(items)
	}

	return orders, total, nil
}

func (r *postgresRepository) UpdateStatusWithTx(ctx context.Context, tx pgx.Tx, id uuid.UUID, status model.OrderStatus, paymentStatus *model.PaymentStatus) error {
	var tag interface{ RowsAffected() int64 }
	var err error

	if paymentStatus != nil {
		tag, err = tx.Exec(ctx,
			"UPDATE orders SET status = $2, payment_status = $3, updated_at = NOW() WHERE id = $1",
			id, status, *paymentStatus)
	} else {
		tag, err = tx.Exec(ctx,
			"UPDATE orders SET status = $2, updated_at = NOW() WHERE id = $1",
			id, status)
	}

	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrOrderNotFound
	}

	return nil
}

// =====================================================
// EVENTS
// =====================================================

type executor interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func (r *postgresRepository) AddEvent(ctx context.Context, event *model.OrderEvent) error {
	return r.addEvent(ctx, r.pool, event)
}

func (r *postgresRepository) AddEventWithTx(ctx context.Context, tx pgx.Tx, event *model.OrderEvent) error {
	return r.addEvent(ctx, tx, event)
}

func (r *postgresRepository) addEvent(ctx context.Context, q executor, event *model.OrderEvent) error {
	query := `
		INSERT INTO order_events (id, order_id, type, note)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`

	if err := q.QueryRow(ctx, query, event.ID, event.OrderID, event.Type, event.Note).Scan(&event.CreatedAt); err != nil {
		return fmt.Errorf("failed to add order event: %w", err)
	}

	return nil
}

func (r *postgresRepository) ListEvents(ctx context.Context, orderID uuid.UUID) ([]model.OrderEvent, error) {
	query := `
		SELECT id, order_id, type, note, created_at
		FROM order_events
		WHERE order_id = $1
		ORDER BY created_at
	`

	rows, err := r.pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to list order events: %w", err)
	}
	defer rows.Close()

	var events []model.OrderEvent
	for rows.Next() {
		var e model.OrderEvent
		if err := rows.Scan(&e.ID, &e.OrderID, &e.Type, &e.Note, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan order event: %w", err)
		}
		events = append(events, e)
	}

	return events, nil
}

// =====================================================
// FULFILLMENTS
// =====================================================

func (r *postgresRepository) CreateFulfillmentWithTx(ctx context.Context, tx pgx.Tx, fulfillment *model.Fulfillment) error {
	query := `
		INSERT INTO fulfillments (id, order_id, tracking_company, tracking_number, tracking_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING shipped_at
	`

	err := tx.QueryRow(ctx, query,
		fulfillment.ID, fulfillment.OrderID, fulfillment.TrackingCompany,
		fulfillment.TrackingNumber, fulfillment.TrackingURL,
	).Scan(&fulfillment.ShippedAt)
	if err != nil {
		return fmt.Errorf("failed to create fulfillment: %w", err)
	}

	itemQuery := `
		INSERT INTO fulfillment_items (id, fulfillment_id, order_item_id, quantity)
		VALUES ($1, $2, $3, $4)
	`

	// The bound check lives inside the update: a concurrent fulfillment of
	// the same line either lands first or makes this one affect zero rows.
	advanceQuery := `
		UPDATE order_items
		SET fulfilled_qty = fulfilled_qty + $2
		WHERE id = $1 AND fulfilled_qty + $2 <= quantity
	`

	for i := range fulfillment.Items {
		item := &fulfillment.Items[i]
		item.FulfillmentID = fulfillment.ID

		if _, err := tx.Exec(ctx, itemQuery, item.ID, item.FulfillmentID, item.OrderItemID, item.Quantity); err != nil {
			return fmt.Errorf("failed to create fulfillment item: %w", err)
		}

		tag, err := tx.Exec(ctx, advanceQuery, item.OrderItemID, item.Quantity)
		if err != nil {
			return fmt.Errorf("failed to advance fulfilled quantity: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return model.ErrExcessiveFulfillment
		}
	}

	return nil
}

func (r *postgresRepository) ListFulfillments(ctx context.Context, orderID uuid.UUID) ([]model.Fulfillment, error) {
	query := `
		SELECT id, order_id, tracking_company, tracking_number, tracking_url, shipped_at
		FROM fulfillments
		WHERE order_id = $1
		ORDER BY shipped_at
	`

	rows, err := r.pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to list fulfillments: %w", err)
	}
	defer rows.Close()

	var fulfillments []model.Fulfillment
	for rows.Next() {
		var f model.Fulfillment
		if err := rows.Scan(&f.ID, &f.OrderID, &f.TrackingCompany, &f.TrackingNumber, &f.TrackingURL, &f.ShippedAt); err != nil {
			return nil, fmt.Errorf("failed to scan fulfillment: %w", err)
		}
		fulfillments = append(fulfillments, f)
	}

	itemQuery := `
		SELECT id, fulfillment_id, order_item_id, quantity
		FROM fulfillment_items
		WHERE fulfillment_id = $1
	`

	for i := range fulfillments {
		itemRows, err := r.pool.Query(ctx, itemQuery, fulfillments[i].ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list fulfillment items: %w", err)
		}
		for itemRows.Next() {
			var item model.FulfillmentItem
			if err := itemRows.Scan(&item.ID, &item.FulfillmentID, &item.OrderItemID, &item.Quantity); err != nil {
				itemRows.Close()
				return nil, fmt.Errorf("failed to scan fulfillment item: %w", err)
			}
			fulfillments[i].Items = append(fulfillments[i].Items, item)
		}
		itemRows.Close()
	}

	return fulfillments, nil
}

// =====================================================
// REFUNDS
// =====================================================

func (r *postgresRepository) CreateRefundWithTx(ctx context.Context, tx pgx.Tx, refund *model.Refund) error {
	query := `
		INSERT INTO refunds (id, order_id, amount, reason, restock_items)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`

	err := tx.QueryRow(ctx, query,
		refund.ID, refund.OrderID, refund.Amount, refund.Reason, refund.RestockItems,
	).Scan(&refund.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create refund: %w", err)
	}

	itemQuery := `
		INSERT INTO refund_items (id, refund_id, order_item_id, quantity)
		VALUES ($1, $2, $3, $4)
	`

	advanceQuery := `
		UPDATE order_items
		SET refunded_qty = refunded_qty + $2
		WHERE id = $1 AND refunded_qty + $2 <= quantity
	`

	for i := range refund.Items {
		item := &refund.Items[i]
		item.RefundID = refund.ID

		if _, err := tx.Exec(ctx, itemQuery, item.ID, item.RefundID, item.OrderItemID, item.Quantity); err != nil {
			return fmt.Errorf("failed to create refund item: %w", err)
		}

		tag, err := tx.Exec(ctx, advanceQuery, item.OrderItemID, item.Quantity)
		if err != nil {
			return fmt.Errorf("failed to advance refunded quantity: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return model.ErrRefundExceedsRemainder
		}
	}

	return nil
}

func (r *postgresRepository) ListRefunds(ctx context.Context, orderID uuid.UUID) ([]model.Refund, error) {
	query := `
		SELECT id, order_id, amount, reason, restock_items, created_at
		FROM refunds
		WHERE order_id = $1
		ORDER BY created_at
	`

	rows, err := r.pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to list refunds: %w", err)
	}
	defer rows.Close()

	var refunds []model.Refund
	for rows.Next() {
		var rf model.Refund
		if err := rows.Scan(&rf.ID, &rf.OrderID, &rf.Amount, &rf.Reason, &rf.RestockItems, &rf.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan refund: %w", err)
		}
		refunds = append(refunds, rf)
	}

	itemQuery := `
		SELECT id, refund_id, order_item_id, quantity
		FROM refund_items
		WHERE refund_id = $1
	`

	for i := range refunds {
		itemRows, err := r.pool.Query(ctx, itemQuery, refunds[i].ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list refund items: %w", err)
		}
		for itemRows.Next() {
			var item model.RefundItem
			if err := itemRows.Scan(&item.ID, &item.RefundID, &item.OrderItemID, &item.Quantity); err != nil {
				itemRows.Close()
				return nil, fmt.Errorf("failed to scan refund item: %w", err)
			}
			refunds[i].Items = append(refunds[i].Items, item)
		}
		itemRows.Close()
	}

	return refunds, nil
}

func (r *postgresRepository) SumRefundsWithTx(ctx context.Context, tx pgx.Tx, orderID uuid.UUID) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := tx.QueryRow(ctx,
		"SELECT COALESCE(SUM(amount), 0) FROM refunds WHERE order_id = $1",
		orderID,
	).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum refunds: %w", err)
	}

	return sum, nil
}

// =====================================================
// CUSTOMERS
// =====================================================

// ListCustomers rolls orders up by email. Cancelled orders are excluded so
// the spend figures match revenue reporting.
func (r *postgresRepository) ListCustomers(ctx context.Context, page, limit int) ([]model.Customer, int, error) {
	var total int
	err := r.pool.QueryRow(ctx,
		"SELECT COUNT(DISTINCT customer_email) FROM orders WHERE status != 'cancelled'",
	).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count customers: %w", err)
	}

	query := `
		SELECT customer_email,
		       MAX(customer_name) AS name,
		       COUNT(*) AS order_count,
		       SUM(total) AS total_spent,
		       MAX(currency) AS currency,
		       MIN(created_at) AS first_order,
		       MAX(created_at) AS last_order
		FROM orders
		WHERE status != 'cancelled'
		GROUP BY customer_email
		ORDER BY last_order DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.pool.Query(ctx, query, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list customers: %w", err)
	}
	defer rows.Close()

	var customers []model.Customer
	for rows.Next() {
		var c model.Customer
		if err := rows.Scan(
			&c.Email, &c.Name, &c.OrderCount, &c.TotalSpent,
			&c.Currency, &c.FirstOrder, &c.LastOrder,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan customer: %w", err)
		}
		customers = append(customers, c)
	}

	return customers, total, nil
}
