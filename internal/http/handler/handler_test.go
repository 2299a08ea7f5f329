package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"craftified/internal/http/middleware"
	"craftified/internal/model"
	"craftified/internal/service"
	serviceMocks "craftified/internal/service/mocks"
	"craftified/internal/storage"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func multipartBody(t *testing.T, filename, contentType string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	return multipartBodyNamed(t, "file", filename, contentType, content)
}

func multipartBodyNamed(t *testing.T, field, filename, contentType string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+filename+`"`)
	h.Set("Content-Type", contentType)
	part, err := writer.CreatePart(h)
	require.NoError(t, err)
	part.Write(content)
	require.NoError(t, writer.Close())

	return body, writer.FormDataContentType()
}

func TestHealthCheck(t *testing.T) {
	db, dbMock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	app := fiber.New()
	app.Get("/health", HealthCheck(db))

	t.Run("healthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(nil)

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]string
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "healthy", body["status"])
	})

	t.Run("unhealthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(errors.New("db error"))

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.False(t, body.Success)
		assert.Equal(t, "Dependency unavailable", body.Error)
	})
}

func TestLivenessProbe(t *testing.T) {
	app := fiber.New()
	app.Get("/healthz", LivenessProbe())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestUploadPhoto(t *testing.T) {
	t.Run("success with query metadata", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockProductService)
		app := fiber.New()
		app.Post("/upload-photo", UploadPhoto(mockSvc))

		body, ct := multipartBody(t, "My Photo (1).JPG", "image/jpeg", []byte("hello world"))

		uploaded := &model.Product{
			ID:       "1756600000000",
			Name:     "Frame",
			ImageURL: "http://localhost:9000/products/1756600000000-my-photo-1-.jpg",
			Status:   model.StatusActive,
		}
		mockSvc.On("Upload", mock.Anything, mock.Anything, "My Photo (1).JPG", "image/jpeg", int64(11),
			service.ProductInput{Name: "Frame", Description: "walnut", Price: 25, Category: "frames"}).
			Return(uploaded, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/upload-photo?name=Frame&description=walnut&price=25&category=frames", body)
		req.Header.Set("Content-Type", ct)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result productResponse
		json.NewDecoder(resp.Body).Decode(&result)
		assert.True(t, result.Success)
		require.NotNil(t, result.Product)
		assert.Equal(t, uploaded.ID, result.Product.ID)
		assert.Equal(t, model.StatusActive, result.Product.Status)
		mockSvc.AssertExpectations(t)
	})

	t.Run("file part accepted under any field name", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockProductService)
		app := fiber.New()
		app.Post("/upload-photo", UploadPhoto(mockSvc))

		body, ct := multipartBodyNamed(t, "photo", "a.jpg", "image/jpeg", []byte("x"))

		mockSvc.On("Upload", mock.Anything, mock.Anything, "a.jpg", "image/jpeg", int64(1),
			service.ProductInput{}).
			Return(&model.Product{ID: "1"}, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/upload-photo", body)
		req.Header.Set("Content-Type", ct)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("negative price stored as-is", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockProductService)
		app := fiber.New()
		app.Post("/upload-photo", UploadPhoto(mockSvc))

		body, ct := multipartBody(t, "a.png", "image/png", []byte("x"))

		mockSvc.On("Upload", mock.Anything, mock.Anything, "a.png", "image/png", int64(1),
			service.ProductInput{Price: -5}).
			Return(&model.Product{ID: "1"}, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/upload-photo?price=-5", body)
		req.Header.Set("Content-Type", ct)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("non-numeric price coerced to zero", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockProductService)
		app := fiber.New()
		app.Post("/upload-photo", UploadPhoto(mockSvc))

		body, ct := multipartBody(t, "a.png", "image/png", []byte("x"))

		mockSvc.On("Upload", mock.Anything, mock.Anything, "a.png", "image/png", int64(1),
			service.ProductInput{Price: 0}).
			Return(&model.Product{ID: "1"}, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/upload-photo?price=abc", body)
		req.Header.Set("Content-Type", ct)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("no file performs no writes", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockProductService)
		app := fiber.New()
		app.Post("/upload-photo", UploadPhoto(mockSvc))

		req := httptest.NewRequest(http.MethodPost, "/upload-photo", nil)
		// Missing content-type and body
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.False(t, res.Success)
		assert.Equal(t, "No file found in request", res.Error)
		mockSvc.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("service error surfaces as 500 with details", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockProductService)
		app := fiber.New()
		app.Post("/upload-photo", UploadPhoto(mockSvc))

		body, ct := multipartBody(t, "a.png", "image/png", []byte("x"))

		mockSvc.On("Upload", mock.Anything, mock.Anything, "a.png", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, errors.New("catalog write failed: db fail")).Once()

		req := httptest.NewRequest(http.MethodPost, "/upload-photo", body)
		req.Header.Set("Content-Type", ct)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.False(t, res.Success)
		assert.Equal(t, "Upload failed", res.Error)
		assert.Contains(t, res.Details, "catalog write failed")
		mockSvc.AssertExpectations(t)
	})
}

func TestListProducts(t *testing.T) {
	t.Run("success returns active products", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockProductService)
		app := fiber.New()
		app.Get("/products", ListProducts(mockSvc))

		items := []model.Product{
			{ID: "2", UploadedAt: time.Now().UTC(), Status: model.StatusActive},
			{ID: "1", UploadedAt: time.Now().UTC().Add(-time.Hour), Status: model.StatusActive},
		}
		mockSvc.On("ListActive", mock.Anything).Return(items, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/products", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result productListResponse
		json.NewDecoder(resp.Body).Decode(&result)
		assert.True(t, result.Success)
		require.Len(t, result.Products, 2)
		assert.Equal(t, "2", result.Products[0].ID)
		mockSvc.AssertExpectations(t)
	})

	t.Run("all=true returns every product", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockProductService)
		app := fiber.New()
		app.Get("/products", ListProducts(mockSvc))

		mockSvc.On("ListAll", mock.Anything).Return([]model.Product{
			{ID: "2", Status: model.StatusActive},
			{ID: "1", Status: model.StatusInactive},
		}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/products?all=true", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result productListResponse
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Len(t, result.Products, 2)
		mockSvc.AssertExpectations(t)
	})

	t.Run("service error", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockProductService)
		app := fiber.New()
		app.Get("/products", ListProducts(mockSvc))

		mockSvc.On("ListActive", mock.Anything).Return(nil, errors.New("db fail")).Once()

		req := httptest.NewRequest(http.MethodGet, "/products", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "Failed to fetch products", res.Error)
		assert.Contains(t, res.Details, "db fail")
		mockSvc.AssertExpectations(t)
	})
}

func TestGetProduct(t *testing.T) {
	mockSvc := new(serviceMocks.MockProductService)
	app := fiber.New()
	app.Get("/products/:id", GetProduct(mockSvc))

	t.Run("success", func(t *testing.T) {
		expected := &model.Product{ID: "1756600000000", Name: "Frame"}
		mockSvc.On("Get", mock.Anything, "1756600000000").Return(expected, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/products/1756600000000", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result productResponse
		json.NewDecoder(resp.Body).Decode(&result)
		assert.True(t, result.Success)
		assert.Equal(t, expected.ID, result.Product.ID)
		mockSvc.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		mockSvc.On("Get", mock.Anything, "missing").Return(nil, service.ErrNotFound).Once()

		req := httptest.NewRequest(http.MethodGet, "/products/missing", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "Product not found", res.Error)
		mockSvc.AssertExpectations(t)
	})

	t.Run("service error", func(t *testing.T) {
		mockSvc.On("Get", mock.Anything, "boom").Return(nil, errors.New("db error")).Once()

		req := httptest.NewRequest(http.MethodGet, "/products/boom", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestDeleteProduct(t *testing.T) {
	mockSvc := new(serviceMocks.MockProductService)
	app := fiber.New()
	app.Delete("/products/:id", DeleteProduct(mockSvc))

	t.Run("success", func(t *testing.T) {
		mockSvc.On("Delete", mock.Anything, "1756600000000").Return(nil).Once()

		req := httptest.NewRequest(http.MethodDelete, "/products/1756600000000", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("missing id is still a success", func(t *testing.T) {
		// Repository treats absent rows as a no-op, so the handler sees nil.
		mockSvc.On("Delete", mock.Anything, "missing").Return(nil).Once()

		req := httptest.NewRequest(http.MethodDelete, "/products/missing", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("service error", func(t *testing.T) {
		mockSvc.On("Delete", mock.Anything, "boom").Return(errors.New("delete error")).Once()

		req := httptest.NewRequest(http.MethodDelete, "/products/boom", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestListPhotos(t *testing.T) {
	t.Run("returns a bare array", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockProductService)
		app := fiber.New()
		app.Get("/list-photos", ListPhotos(mockSvc))

		entries := []storage.ObjectEntry{
			{Name: "1-a.jpg", URL: "http://localhost:9000/products/1-a.jpg"},
			{Name: "2-b.jpg", URL: "http://localhost:9000/products/2-b.jpg"},
		}
		mockSvc.On("ListPhotos", mock.Anything).Return(entries, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/list-photos", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result []storage.ObjectEntry
		json.NewDecoder(resp.Body).Decode(&result)
		require.Len(t, result, 2)
		assert.Equal(t, "1-a.jpg", result[0].Name)
		mockSvc.AssertExpectations(t)
	})

	t.Run("storage error", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockProductService)
		app := fiber.New()
		app.Get("/list-photos", ListPhotos(mockSvc))

		mockSvc.On("ListPhotos", mock.Anything).Return(nil, errors.New("list fail")).Once()

		req := httptest.NewRequest(http.MethodGet, "/list-photos", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestRouting(t *testing.T) {
	app := fiber.New(fiber.Config{
		ErrorHandler: ErrorHandler(),
	})
	app.Use(middleware.CORS())

	mockSvc := new(serviceMocks.MockProductService)
	// Register all routes
	RegisterRoutes(app, nil, mockSvc)

	t.Run("not found route", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/non-existent", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.False(t, res.Success)
		assert.Equal(t, "Not found", res.Error)
	})

	t.Run("method not allowed", func(t *testing.T) {
		// Upload endpoint only allows POST
		req := httptest.NewRequest(http.MethodPut, "/upload-photo", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "Method not allowed", res.Error)
	})

	t.Run("cors applied to every response", func(t *testing.T) {
		mockSvc.On("ListActive", mock.Anything).Return([]model.Product{}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/products", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight answered with bare 200", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/upload-photo", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		req.Header.Set("Access-Control-Request-Method", "POST")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}
