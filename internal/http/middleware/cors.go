package middleware

import "github.com/gofiber/fiber/v2"

// CORS opens the API to the browser storefront. Every response carries
// Access-Control-Allow-Origin: * and OPTIONS preflights short-circuit with
// a bare 200.
func CORS() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set("Access-Control-Allow-Origin", "*")
		c.Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		c.Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")

		if c.Method() == fiber.MethodOptions {
			return c.SendStatus(fiber.StatusOK)
		}
		return c.Next()
	}
}
