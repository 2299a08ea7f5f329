package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"craftified/internal/service"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Handlers stay minimal and free of business logic; everything interesting
// lives behind the injected service.
func RegisterRoutes(app *fiber.App, db *sql.DB, svc service.ProductService) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	app.Post("/upload-photo", UploadPhoto(svc))
	app.Get("/products", ListProducts(svc))
	app.Get("/products/:id", GetProduct(svc))
	app.Delete("/products/:id", DeleteProduct(svc))
	app.Get("/list-photos", ListPhotos(svc))
}
