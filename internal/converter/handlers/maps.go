package handlers

import (
	"context"
	"net/http"

	"indoor-map/internal/converter/service"
	"indoor-map/internal/indoor/mapper"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Maps Handler
// ============================================================

type MapsHandler struct {
	maps *service.MapService
}

func NewMapsHandler(maps *service.MapService) *MapsHandler {
	return &MapsHandler{maps: maps}
}

// Upload stores a map document and reports its lint issues.
func (h *MapsHandler) Upload(c fiber.Ctx) error {
	data, name, err := readUpload(c)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "file required in multipart/form-data",
		})
	}

	res, err := h.maps.Import(context.Background(), name, data)
	if err != nil {
		return fail(c, "MAPS", err)
	}
	return c.Status(http.StatusCreated).JSON(res)
}

func (h *MapsHandler) List(c fiber.Ctx) error {
	docs, err := h.maps.List(context.Background())
	if err != nil {
		return fail(c, "MAPS", err)
	}
	return c.JSON(docs)
}

// Get returns the parsed map model.
func (h *MapsHandler) Get(c fiber.Ctx) error {
	m, err := h.maps.Load(context.Background(), c.Params("id"))
	if err != nil {
		return fail(c, "MAPS", err)
	}
	return c.JSON(m)
}

// Render handles GET /maps/:id/:format?floor=.
func (h *MapsHandler) Render(c fiber.Ctx) error {
	format, err := mapper.ParseFormat(c.Params("format"))
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	out, err := h.maps.Render(context.Background(), c.Params("id"), format, c.Query("floor"))
	if err != nil {
		return fail(c, "RENDER", err)
	}

	c.Set(fiber.HeaderContentType, format.ContentType())
	return c.Send(out)
}

func (h *MapsHandler) Delete(c fiber.Ctx) error {
	if err := h.maps.Delete(context.Background(), c.Params("id")); err != nil {
		return fail(c, "MAPS", err)
	}
	return c.SendStatus(http.StatusNoContent)
}

// ============================================================
// Health Check Handlers
// ============================================================

func (h *MapsHandler) Live(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "alive"})
}

// Ready reports whether the map database answers.
func (h *MapsHandler) Ready(c fiber.Ctx) error {
	if err := h.maps.Ping(context.Background()); err != nil {
		return c.Status(http.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "unavailable",
			"error":  err.Error(),
		})
	}
	return c.JSON(fiber.Map{"status": "ready"})
}
