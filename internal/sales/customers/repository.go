package customers

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("record not found")

type Repository interface {
	Get(ctx context.Context, id int64) (*Customer, error)
	List(ctx context.Context, req ListCustomersRequest) ([]Customer, int, error)
	Create(ctx context.Context, c Customer) (int64, error)
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const customerColumns = `id, name, phone, address, email, created_at, updated_at`

func (r *repository) Get(ctx context.Context, id int64) (*Customer, error) {
	var c Customer
	err := r.pool.QueryRow(ctx, `SELECT `+customerColumns+` FROM customers WHERE id = $1`, id).
		Scan(&c.ID, &c.Name, &c.Phone, &c.Address, &c.Email, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *repository) List(ctx context.Context, req ListCustomersRequest) ([]Customer, int, error) {
	where := ""
	args := []interface{}{}
	argPos := 1
	if req.Keyword != "" {
		where = fmt.Sprintf("WHERE name ILIKE $%d OR phone LIKE $%d", argPos, argPos+1)
		args = append(args, "%"+req.Keyword+"%", "%"+req.Keyword+"%")
		argPos += 2
	}

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM customers "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count customers: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM customers %s ORDER BY name, id LIMIT $%d OFFSET $%d`,
		customerColumns, where, argPos, argPos+1)
	args = append(args, req.Limit, req.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()

	var customers []Customer
	for rows.Next() {
		var c Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Phone, &c.Address, &c.Email, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, 0, err
		}
		customers = append(customers, c)
	}
	return customers, total, rows.Err()
}

func (r *repository) Create(ctx context.Context, c Customer) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO customers (name, phone, address, email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id`,
		c.Name, c.Phone, c.Address, c.Email,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert customer: %w", err)
	}
	return id, nil
}
