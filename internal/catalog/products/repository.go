package products

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aleamz/salespoint/internal/platform/db"
)

var ErrNotFound = errors.New("record not found")

type Repository interface {
	WithTx(ctx context.Context, fn func(context.Context, Repository) error) error
	Search(ctx context.Context, req SearchProductsRequest) ([]Product, int, error)
	Get(ctx context.Context, id int64) (*Product, error)
	GetByBarcode(ctx context.Context, barcode string) (*Product, error)
	Create(ctx context.Context, p Product) (int64, error)
	Update(ctx context.Context, id int64, updates map[string]interface{}) error
	Delete(ctx context.Context, id int64) error
	InsertVariant(ctx context.Context, v Variant) (int64, error)
	ListVariants(ctx context.Context, productID int64) ([]Variant, error)
	GetVariant(ctx context.Context, id int64) (*Variant, error)
	InsertSerials(ctx context.Context, productID int64, variantID *int64, serials []string) error
	AvailableSerials(ctx context.Context, productID int64, variantID *int64) ([]string, error)
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

const productColumns = `id, barcode, name, sell_price, cost_price, stock, is_variable, is_serial, is_active, created_at, updated_at`

func (r *repository) Search(ctx context.Context, req SearchProductsRequest) ([]Product, int, error) {
	where := "WHERE is_active"
	args := []interface{}{}
	argPos := 1
	if req.Keyword != "" {
		where += fmt.Sprintf(" AND (name_search LIKE $%d OR barcode = $%d)", argPos, argPos+1)
		args = append(args, "%"+Fold(req.Keyword)+"%", req.Keyword)
		argPos += 2
	}

	var total int
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM products "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM products %s ORDER BY name, id LIMIT $%d OFFSET $%d`,
		productColumns, where, argPos, argPos+1)
	args = append(args, req.Limit, req.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("search products: %w", err)
	}
	defer rows.Close()

	var result []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, p)
	}
	return result, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (*Product, error) {
	row := r.db.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if p.IsVariable {
		variants, err := r.ListVariants(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		p.Variants = variants
	}
	if p.IsSerial {
		serials, err := r.AvailableSerials(ctx, p.ID, nil)
		if err != nil {
			return nil, err
		}
		p.Serials = serials
	}
	return &p, nil
}

func (r *repository) GetByBarcode(ctx context.Context, barcode string) (*Product, error) {
	var id int64
	err := r.db.QueryRow(ctx, `SELECT id FROM products WHERE barcode = $1`, barcode).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return r.Get(ctx, id)
}

func (r *repository) Create(ctx context.Context, p Product) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO products (barcode, name, name_search, sell_price, cost_price, stock, is_variable, is_serial, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, TRUE, NOW(), NOW())
		RETURNING id`,
		p.Barcode, p.Name, Fold(p.Name), p.SellPrice, p.CostPrice, p.Stock, p.IsVariable, p.IsSerial,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert product: %w", err)
	}
	return id, nil
}

func (r *repository) Update(ctx context.Context, id int64, updates map[string]interface{}) error {
	query := "UPDATE products SET updated_at = NOW()"
	var args []interface{}
	argPos := 1

	for _, col := range []string{"barcode", "name", "sell_price", "cost_price", "stock", "is_active"} {
		if v, ok := updates[col]; ok {
			query += fmt.Sprintf(", %s = $%d", col, argPos)
			args = append(args, v)
			argPos++
			if col == "name" {
				query += fmt.Sprintf(", name_search = $%d", argPos)
				args = append(args, Fold(v.(string)))
				argPos++
			}
		}
	}

	query += fmt.Sprintf(" WHERE id = $%d", argPos)
	args = append(args, id)

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `UPDATE products SET is_active = FALSE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) InsertVariant(ctx context.Context, v Variant) (int64, error) {
	attrs, err := json.Marshal(v.Attributes)
	if err != nil {
		return 0, fmt.Errorf("marshal attributes: %w", err)
	}
	images, err := json.Marshal(v.Images)
	if err != nil {
		return 0, fmt.Errorf("marshal images: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, `
		INSERT INTO product_variants (product_id, attributes, sell_price, cost_price, stock, images)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		v.ProductID, attrs, v.SellPrice, v.CostPrice, v.Stock, images,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert variant: %w", err)
	}
	return id, nil
}

func (r *repository) ListVariants(ctx context.Context, productID int64) ([]Variant, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, product_id, attributes, sell_price, cost_price, stock, images
		FROM product_variants WHERE product_id = $1 ORDER BY id`, productID)
	if err != nil {
		return nil, fmt.Errorf("list variants: %w", err)
	}
	defer rows.Close()

	var variants []Variant
	for rows.Next() {
		v, err := scanVariant(rows)
		if err != nil {
			return nil, err
		}
		variants = append(variants, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range variants {
		serials, err := r.AvailableSerials(ctx, productID, &variants[i].ID)
		if err != nil {
			return nil, err
		}
		variants[i].Serials = serials
	}
	return variants, nil
}

func (r *repository) GetVariant(ctx context.Context, id int64) (*Variant, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, product_id, attributes, sell_price, cost_price, stock, images
		FROM product_variants WHERE id = $1`, id)
	v, err := scanVariant(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	serials, err := r.AvailableSerials(ctx, v.ProductID, &v.ID)
	if err != nil {
		return nil, err
	}
	v.Serials = serials
	return &v, nil
}

func (r *repository) InsertSerials(ctx context.Context, productID int64, variantID *int64, serials []string) error {
	for _, serial := range serials {
		_, err := r.db.Exec(ctx, `
			INSERT INTO product_serials (product_id, variant_id, serial, status)
			VALUES ($1, $2, $3, $4)`,
			productID, variantID, serial, SerialStatusAvailable)
		if err != nil {
			return fmt.Errorf("insert serial %s: %w", serial, err)
		}
	}
	return nil
}

func (r *repository) AvailableSerials(ctx context.Context, productID int64, variantID *int64) ([]string, error) {
	query := `SELECT serial FROM product_serials WHERE product_id = $1 AND status = $2`
	args := []interface{}{productID, SerialStatusAvailable}
	if variantID != nil {
		query += ` AND variant_id = $3`
		args = append(args, *variantID)
	} else {
		query += ` AND variant_id IS NULL`
	}
	query += ` ORDER BY serial`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("available serials: %w", err)
	}
	defer rows.Close()

	var serials []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		serials = append(serials, s)
	}
	return serials, rows.Err()
}

func scanProduct(row pgx.Row) (Product, error) {
	var p Product
	err := row.Scan(&p.ID, &p.Barcode, &p.Name, &p.SellPrice, &p.CostPrice, &p.Stock,
		&p.IsVariable, &p.IsSerial, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func scanVariant(row pgx.Row) (Variant, error) {
	var v Variant
	var attrs, images []byte
	if err := row.Scan(&v.ID, &v.ProductID, &attrs, &v.SellPrice, &v.CostPrice, &v.Stock, &images); err != nil {
		return v, err
	}
	if len(attrs) > 0 {
		if err := json.Unmarshal(attrs, &v.Attributes); err != nil {
			return v, fmt.Errorf("unmarshal attributes: %w", err)
		}
	}
	if len(images) > 0 {
		if err := json.Unmarshal(images, &v.Images); err != nil {
			return v, fmt.Errorf("unmarshal images: %w", err)
		}
	}
	return v, nil
}

// IsUniqueViolation reports whether err is a PostgreSQL unique constraint error.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
