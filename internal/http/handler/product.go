package handler

import (
	"errors"
	"mime/multipart"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"craftified/internal/model"
	"craftified/internal/service"
)

type productResponse struct {
	Success bool           `json:"success"`
	Product *model.Product `json:"product"`
	Message string         `json:"message,omitempty"`
}

type productListResponse struct {
	Success  bool            `json:"success"`
	Products []model.Product `json:"products"`
}

// parseProductInput normalizes the upload's catalog metadata into one
// canonical representation before any business logic runs. Form fields win;
// query parameters are the fallback (both shapes exist in the storefront).
func parseProductInput(c *fiber.Ctx) service.ProductInput {
	field := func(key string) string {
		if form, err := c.MultipartForm(); err == nil {
			if vs := form.Value[key]; len(vs) > 0 && vs[0] != "" {
				return vs[0]
			}
		}
		return c.Query(key)
	}

	// Unparseable prices become 0; negative values are stored as-is.
	price, err := strconv.ParseInt(field("price"), 10, 64)
	if err != nil {
		price = 0
	}

	return service.ProductInput{
		Name:        field("name"),
		Description: field("description"),
		Price:       price,
		Category:    field("category"),
	}
}

// uploadedFilePart locates the photo in the multipart body. The storefront
// posts it under the "file" field, but any part that carries a filename is
// accepted whatever its field name.
func uploadedFilePart(c *fiber.Ctx) *multipart.FileHeader {
	if fh, err := c.FormFile("file"); err == nil {
		return fh
	}
	form, err := c.MultipartForm()
	if err != nil {
		return nil
	}
	for _, headers := range form.File {
		for _, fh := range headers {
			if fh.Filename != "" {
				return fh
			}
		}
	}
	return nil
}

// UploadPhoto handles multipart photo uploads and creates the catalog record
// for them.
// @Summary Upload a product photo
// @Accept multipart/form-data
// @Produce json
// @Router /upload-photo [post]
func UploadPhoto(svc service.ProductService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh := uploadedFilePart(c)
		if fh == nil {
			return writeError(c, fiber.StatusBadRequest, "No file found in request", "")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "Cannot open uploaded file", "")
		}
		defer f.Close()

		ct := fh.Header.Get("Content-Type")
		if ct == "" {
			ct = "application/octet-stream"
		}

		product, err := svc.Upload(c.UserContext(), f, fh.Filename, ct, fh.Size, parseProductInput(c))
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "Upload failed", err.Error())
		}

		return c.Status(fiber.StatusOK).JSON(productResponse{
			Success: true,
			Product: product,
			Message: "Photo uploaded successfully",
		})
	}
}

// ListProducts returns the product listing: active products by default,
// every product when ?all=true.
// @Summary List catalog products
// @Produce json
// @Router /products [get]
func ListProducts(svc service.ProductService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var (
			items []model.Product
			err   error
		)
		if c.QueryBool("all") {
			items, err = svc.ListAll(c.UserContext())
		} else {
			items, err = svc.ListActive(c.UserContext())
		}
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "Failed to fetch products", err.Error())
		}
		return c.JSON(productListResponse{Success: true, Products: items})
	}
}

// GetProduct returns a single product by id.
// @Summary Get one product
// @Produce json
// @Router /products/{id} [get]
func GetProduct(svc service.ProductService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		product, err := svc.Get(c.UserContext(), id)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return writeError(c, fiber.StatusNotFound, "Product not found", "")
			}
			if errors.Is(err, service.ErrIDRequired) {
				return writeError(c, fiber.StatusBadRequest, "Product id is required", "")
			}
			return writeError(c, fiber.StatusInternalServerError, "Failed to fetch product", err.Error())
		}
		return c.JSON(productResponse{Success: true, Product: product})
	}
}

// DeleteProduct removes a catalog record. The stored photo is not touched;
// missing ids are a no-op.
// @Summary Delete a product
// @Router /products/{id} [delete]
func DeleteProduct(svc service.ProductService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if err := svc.Delete(c.UserContext(), id); err != nil {
			if errors.Is(err, service.ErrIDRequired) {
				return writeError(c, fiber.StatusBadRequest, "Product id is required", "")
			}
			return writeError(c, fiber.StatusInternalServerError, "Failed to delete product", err.Error())
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// ListPhotos enumerates the photo bucket directly and returns a bare
// [{name,url}] array, the shape the gallery view consumes.
// @Summary List stored photos
// @Produce json
// @Router /list-photos [get]
func ListPhotos(svc service.ProductService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		entries, err := svc.ListPhotos(c.UserContext())
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "Failed to list photos", err.Error())
		}
		return c.JSON(entries)
	}
}
