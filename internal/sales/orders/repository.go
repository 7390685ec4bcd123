package orders

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aleamz/salespoint/internal/platform/db"
)

var (
	ErrNotFound          = errors.New("record not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrSerialUnavailable = errors.New("serial not available")
)

type Repository interface {
	WithTx(ctx context.Context, fn func(context.Context, Repository) error) error
	Get(ctx context.Context, id int64) (*Order, error)
	List(ctx context.Context, req ListOrdersRequest) ([]Order, int, error)
	Create(ctx context.Context, o Order) (int64, error)
	InsertLine(ctx context.Context, line OrderLine) (int64, error)
	GenerateNumber(ctx context.Context, date time.Time) (string, error)
	DecrementStock(ctx context.Context, productID int64, variantID *int64, quantity int) error
	ConsumeSerials(ctx context.Context, productID int64, serials []string) error
	RevenueByDay(ctx context.Context, from, to time.Time) ([]DayRevenue, error)
}

// DayRevenue is one bucket of the revenue report.
type DayRevenue struct {
	Day     time.Time `json:"day"`
	Orders  int       `json:"orders"`
	Revenue float64   `json:"revenue"`
}

type dbtx interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

type repository struct {
	db   dbtx
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{db: pool, pool: pool}
}

func (r *repository) WithTx(ctx context.Context, fn func(context.Context, Repository) error) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(ctx, &repository{db: tx, pool: r.pool})
	})
}

const orderColumns = `id, doc_number, staff_id, customer_id, customer_name, customer_phone, customer_address,
	discount_kind, discount_value, total_amount, total_amount_discount, customer_paid, change_amount,
	sale_date, created_at`

func (r *repository) Get(ctx context.Context, id int64) (*Order, error) {
	row := r.db.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
	o, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	lines, err := r.listLines(ctx, id)
	if err != nil {
		return nil, err
	}
	o.Lines = lines
	return &o, nil
}

func (r *repository) List(ctx context.Context, req ListOrdersRequest) ([]Order, int, error) {
	var conditions []string
	var args []interface{}
	argPos := 1

	if req.DateFrom != nil {
		conditions = append(conditions, fmt.Sprintf("sale_date >= $%d", argPos))
		args = append(args, *req.DateFrom)
		argPos++
	}
	if req.DateTo != nil {
		conditions = append(conditions, fmt.Sprintf("sale_date <= $%d", argPos))
		args = append(args, *req.DateTo)
		argPos++
	}

	where := ""
	for i, c := range conditions {
		if i == 0 {
			where = "WHERE " + c
		} else {
			where += " AND " + c
		}
	}

	var total int
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM orders "+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT %s FROM orders %s ORDER BY sale_date DESC, id DESC LIMIT $%d OFFSET $%d`,
		orderColumns, where, argPos, argPos+1)
	args = append(args, req.Limit, req.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var orders []Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, 0, err
		}
		orders = append(orders, o)
	}
	return orders, total, rows.Err()
}

func (r *repository) Create(ctx context.Context, o Order) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO orders (doc_number, staff_id, customer_id, customer_name, customer_phone, customer_address,
			discount_kind, discount_value, total_amount, total_amount_discount, customer_paid, change_amount,
			sale_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW())
		RETURNING id`,
		o.DocNumber, o.StaffID, o.CustomerID, o.CustomerName, o.CustomerPhone, o.CustomerAddress,
		o.DiscountKind, o.DiscountValue, o.TotalAmount, o.TotalAmountDiscount, o.CustomerPaid, o.ChangeAmount,
		o.SaleDate,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert order: %w", err)
	}
	return id, nil
}

func (r *repository) InsertLine(ctx context.Context, line OrderLine) (int64, error) {
	serials, err := json.Marshal(line.Serials)
	if err != nil {
		return 0, fmt.Errorf("marshal serials: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, `
		INSERT INTO order_lines (order_id, product_id, variant_id, barcode, name, quantity, unit_price, subtotal, serials, line_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`,
		line.OrderID, line.ProductID, line.VariantID, line.Barcode, line.Name,
		line.Quantity, line.UnitPrice, line.Subtotal, serials, line.LineOrder,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert order line: %w", err)
	}
	return id, nil
}

func (r *repository) GenerateNumber(ctx context.Context, date time.Time) (string, error) {
	// POS-{YY}{MM}-{SEQ}
	var count int64
	err := r.db.QueryRow(ctx, `SELECT count(*) FROM orders WHERE date_trunc('month', sale_date) = date_trunc('month', $1::timestamptz)`, date).Scan(&count)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("POS-%s-%04d", date.Format("0601"), count+1), nil
}

func (r *repository) DecrementStock(ctx context.Context, productID int64, variantID *int64, quantity int) error {
	if variantID != nil {
		tag, err := r.db.Exec(ctx, `
			UPDATE product_variants SET stock = stock - $1
			WHERE id = $2 AND stock >= $1`, quantity, *variantID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("%w: variant %d", ErrInsufficientStock, *variantID)
		}
		return nil
	}

	tag, err := r.db.Exec(ctx, `
		UPDATE products SET stock = stock - $1, updated_at = NOW()
		WHERE id = $2 AND stock >= $1`, quantity, productID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: product %d", ErrInsufficientStock, productID)
	}
	return nil
}

func (r *repository) ConsumeSerials(ctx context.Context, productID int64, serials []string) error {
	if len(serials) == 0 {
		return nil
	}
	tag, err := r.db.Exec(ctx, `
		UPDATE product_serials SET status = 'SOLD'
		WHERE product_id = $1 AND serial = ANY($2) AND status = 'AVAILABLE'`,
		productID, serials)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != int64(len(serials)) {
		return fmt.Errorf("%w: product %d", ErrSerialUnavailable, productID)
	}
	return nil
}

func (r *repository) RevenueByDay(ctx context.Context, from, to time.Time) ([]DayRevenue, error) {
	rows, err := r.db.Query(ctx, `
		SELECT date_trunc('day', sale_date) AS day, COUNT(*), COALESCE(SUM(total_amount_discount), 0)
		FROM orders
		WHERE sale_date >= $1 AND sale_date < $2
		GROUP BY day
		ORDER BY day`, from, to)
	if err != nil {
		return nil, fmt.Errorf("revenue by day: %w", err)
	}
	defer rows.Close()

	var result []DayRevenue
	for rows.Next() {
		var d DayRevenue
		if err := rows.Scan(&d.Day, &d.Orders, &d.Revenue); err != nil {
			return nil, err
		}
		result = append(result, d)
	}
	return result, rows.Err()
}

func (r *repository) listLines(ctx context.Context, orderID int64) ([]OrderLine, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, order_id, product_id, variant_id, barcode, name, quantity, unit_price, subtotal, serials, line_order
		FROM order_lines WHERE order_id = $1 ORDER BY line_order, id`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []OrderLine
	for rows.Next() {
		var line OrderLine
		var serials []byte
		if err := rows.Scan(&line.ID, &line.OrderID, &line.ProductID, &line.VariantID, &line.Barcode,
			&line.Name, &line.Quantity, &line.UnitPrice, &line.Subtotal, &serials, &line.LineOrder); err != nil {
			return nil, err
		}
		if len(serials) > 0 {
			if err := json.Unmarshal(serials, &line.Serials); err != nil {
				return nil, fmt.Errorf("unmarshal serials: %w", err)
			}
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

func scanOrder(row pgx.Row) (Order, error) {
	var o Order
	err := row.Scan(&o.ID, &o.DocNumber, &o.StaffID, &o.CustomerID, &o.CustomerName, &o.CustomerPhone,
		&o.CustomerAddress, &o.DiscountKind, &o.DiscountValue, &o.TotalAmount, &o.TotalAmountDiscount,
		&o.CustomerPaid, &o.ChangeAmount, &o.SaleDate, &o.CreatedAt)
	return o, err
}
