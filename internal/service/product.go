package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"craftified/internal/model"
	"craftified/internal/repository"
	"craftified/internal/storage"
)

var (
	ErrIDRequired = errors.New("id is required")
	ErrNotFound   = errors.New("product not found")
	ErrReaderNil  = errors.New("reader is nil")
)

// Defaults applied when the uploader leaves metadata fields blank.
const (
	DefaultProductName = "Untitled Product"
	DefaultCategory    = "general"
)

// ProductInput carries the optional catalog metadata accompanying an upload.
// Zero values fall back to the catalog defaults.
type ProductInput struct {
	Name        string
	Description string
	Price       int64
	Category    string
}

// ProductService defines the use cases for the product catalog.
type ProductService interface {
	// Upload stores the photo bytes in the object store, then records a
	// product in the catalog. The two writes are not transactional: when
	// the catalog write fails the already-stored object stays behind.
	Upload(ctx context.Context, r io.Reader, originalFilename string, contentType string, size int64, in ProductInput) (*model.Product, error)

	// ListActive returns active products, most recent upload first.
	ListActive(ctx context.Context) ([]model.Product, error)

	// ListAll returns every product regardless of status.
	ListAll(ctx context.Context) ([]model.Product, error)

	// ListPhotos enumerates the raw object store contents as (name, url) pairs.
	ListPhotos(ctx context.Context) ([]storage.ObjectEntry, error)

	// Get returns a single product by its ID.
	Get(ctx context.Context, id string) (*model.Product, error)

	// Delete removes the catalog record only; the stored object is not
	// garbage-collected.
	Delete(ctx context.Context, id string) error
}

// productService is a concrete implementation of ProductService.
type productService struct {
	store storage.Storage
	repo  repository.ProductRepository
}

// NewProductService constructs a new ProductService.
func NewProductService(store storage.Storage, repo repository.ProductRepository) ProductService {
	return &productService{store: store, repo: repo}
}

func (s *productService) Upload(ctx context.Context, r io.Reader, originalFilename string, contentType string, size int64, in ProductInput) (*model.Product, error) {
	if r == nil {
		return nil, ErrReaderNil
	}

	now := time.Now().UTC()
	key := ObjectName(now, originalFilename)

	// Phase one: object store write. Failure here is terminal and nothing
	// has been recorded in the catalog yet.
	objInfo, err := s.store.Put(ctx, key, r, storage.PutObjectOptions{
		Size:        size,
		ContentType: contentType,
		Metadata: map[string]string{
			"original-filename": originalFilename,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	product := &model.Product{
		ID:          strconv.FormatInt(now.UnixMilli(), 10),
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Category:    in.Category,
		ImageURL:    objInfo.URL,
		FileName:    key,
		FileSize:    objInfo.Size,
		FileType:    contentType,
		UploadedAt:  now,
		Status:      model.StatusActive,
	}
	if product.Name == "" {
		product.Name = DefaultProductName
	}
	if product.Category == "" {
		product.Category = DefaultCategory
	}

	// Phase two: catalog write. A failure here leaves the object from phase
	// one in place as an orphan; there is no compensating delete.
	stored, err := s.repo.Create(ctx, product)
	if err != nil {
		return nil, fmt.Errorf("catalog write failed: %w", err)
	}
	return stored, nil
}

// ListActive returns the storefront's default product listing.
func (s *productService) ListActive(ctx context.Context) ([]model.Product, error) {
	return s.repo.QueryActive(ctx)
}

// ListAll returns every product, including inactive ones.
func (s *productService) ListAll(ctx context.Context) ([]model.Product, error) {
	return s.repo.ReadAll(ctx)
}

// ListPhotos enumerates the bucket directly, bypassing the catalog.
func (s *productService) ListPhotos(ctx context.Context) ([]storage.ObjectEntry, error) {
	return s.store.List(ctx)
}

// Get returns a product by ID.
func (s *productService) Get(ctx context.Context, id string) (*model.Product, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

// Delete removes the catalog record. Missing ids are a silent no-op and the
// referenced object stays in the bucket.
func (s *productService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	return s.repo.Delete(ctx, id)
}
