package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"craftified/internal/model"
	"craftified/internal/repository"
)

const productColumns = `id, name, description, price, category, image_url, file_name, file_size, file_type, uploaded_at, status`

// ProductPostgres is a PostgreSQL implementation of repository.ProductRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type ProductPostgres struct {
	db *sql.DB
}

// NewProductPostgres creates a new ProductPostgres repository.
func NewProductPostgres(db *sql.DB) *ProductPostgres {
	return &ProductPostgres{db: db}
}

var _ repository.ProductRepository = (*ProductPostgres)(nil)

// Create inserts a new product row and returns the stored record.
func (r *ProductPostgres) Create(ctx context.Context, p *model.Product) (*model.Product, error) {
	const q = `
		INSERT INTO products (id, name, description, price, category, image_url, file_name, file_size, file_type, uploaded_at, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + productColumns
	row := r.db.QueryRowContext(ctx, q,
		p.ID,
		p.Name,
		p.Description,
		p.Price,
		p.Category,
		p.ImageURL,
		p.FileName,
		p.FileSize,
		p.FileType,
		p.UploadedAt,
		p.Status,
	)
	var out model.Product
	if err := scanProduct(row.Scan, &out); err != nil {
		if isUniqueViolation(err) {
			return nil, repository.ErrDuplicateID
		}
		return nil, err
	}
	return &out, nil
}

// QueryActive returns active products ordered by upload time, newest first.
func (r *ProductPostgres) QueryActive(ctx context.Context) ([]model.Product, error) {
	const q = `
		SELECT ` + productColumns + `
		FROM products
		WHERE status = 'active'
		ORDER BY uploaded_at DESC, id DESC
	`
	return r.queryProducts(ctx, q)
}

// ReadAll returns every product regardless of status.
func (r *ProductPostgres) ReadAll(ctx context.Context) ([]model.Product, error) {
	const q = `
		SELECT ` + productColumns + `
		FROM products
		ORDER BY uploaded_at DESC, id DESC
	`
	return r.queryProducts(ctx, q)
}

// FindByID fetches a single product by its ID.
func (r *ProductPostgres) FindByID(ctx context.Context, id string) (*model.Product, error) {
	const q = `
		SELECT ` + productColumns + `
		FROM products
		WHERE id = $1
	`
	row := r.db.QueryRowContext(ctx, q, id)
	var p model.Product
	if err := scanProduct(row.Scan, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Delete removes a product by ID. It does not return an error if the row does not exist.
func (r *ProductPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM products WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	// Missing rows are a silent no-op per the repository contract.
	_, _ = res.RowsAffected()
	return nil
}

func (r *ProductPostgres) queryProducts(ctx context.Context, q string) ([]model.Product, error) {
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Product, 0)
	for rows.Next() {
		var p model.Product
		if err := scanProduct(rows.Scan, &p); err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func scanProduct(scan func(dest ...any) error, p *model.Product) error {
	return scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Price,
		&p.Category,
		&p.ImageURL,
		&p.FileName,
		&p.FileSize,
		&p.FileType,
		&p.UploadedAt,
		&p.Status,
	)
}

// isUniqueViolation reports whether err is a PostgreSQL unique_violation (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
