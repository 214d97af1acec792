package handlers

import "github.com/gofiber/fiber/v3"

// Register mounts every route of the converter service.
func Register(app *fiber.App, convert *ConvertHandler, maps *MapsHandler) {
	app.Get("/health/live", maps.Live)
	app.Get("/health/ready", maps.Ready)

	app.Get("/docs", SwaggerUI)
	app.Get("/docs/openapi.yaml", OpenAPISpec)

	app.Post("/convert", convert.Convert)

	app.Post("/maps", maps.Upload)
	app.Get("/maps", maps.List)
	app.Get("/maps/:id", maps.Get)
	app.Get("/maps/:id/:format", maps.Render)
	app.Delete("/maps/:id", maps.Delete)
}
