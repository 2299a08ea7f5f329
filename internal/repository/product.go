// Package repository contains data access layer abstractions.
// Implementations live in subpackages (e.g., postgres) inside this directory.
package repository

import (
	"context"
	"errors"

	"craftified/internal/model"
)

// ErrDuplicateID is returned by Create when a product with the same id
// already exists.
var ErrDuplicateID = errors.New("product id already exists")

// ProductRepository defines data access for catalog products using SQL queries only.
// No business logic here — strictly persistence operations.
type ProductRepository interface {
	// Create inserts a new product record. The caller provides all fields
	// including ID and UploadedAt. Returns the stored product (may include
	// values set by the DB) or ErrDuplicateID on an id collision.
	Create(ctx context.Context, p *model.Product) (*model.Product, error)

	// QueryActive returns every product with status 'active', most recent
	// upload first. The ordering is a strict contract; ties on uploaded_at
	// are broken by id so a result set is stable within one execution.
	QueryActive(ctx context.Context) ([]model.Product, error)

	// ReadAll returns every product regardless of status, same ordering
	// as QueryActive.
	ReadAll(ctx context.Context) ([]model.Product, error)

	// FindByID returns a product by its ID (sql.ErrNoRows when absent).
	FindByID(ctx context.Context, id string) (*model.Product, error)

	// Delete removes a product by ID. It returns nil if the row was deleted
	// or did not exist.
	Delete(ctx context.Context, id string) error
}
