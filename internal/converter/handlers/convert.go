package handlers

import (
	"bytes"
	"log"
	"net/http"

	"indoor-map/internal/indoor/mapper"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Convert Handler
// ============================================================

// ConvertHandler converts an uploaded map without storing it.
type ConvertHandler struct {
	pxPerMeter float64
}

func NewConvertHandler(pxPerMeter float64) *ConvertHandler {
	return &ConvertHandler{pxPerMeter: pxPerMeter}
}

// Convert handles POST /convert?format=&floor= with a multipart "file".
func (h *ConvertHandler) Convert(c fiber.Ctx) error {
	format, err := mapper.ParseFormat(c.Query("format"))
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	data, name, err := readUpload(c)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "file required in multipart/form-data",
		})
	}
	log.Printf("[CONVERT] %s (%d bytes) to %s", name, len(data), format)

	opts := mapper.Options{PixelsPerMeter: h.pxPerMeter}
	if floor := c.Query("floor"); floor != "" {
		opts.Floors = []string{floor}
	}

	out, err := mapper.Render(bytes.NewReader(data), format, opts)
	if err != nil {
		log.Printf("[CONVERT] %s failed: %v", name, err)
		return fail(c, "CONVERT", err)
	}

	c.Set(fiber.HeaderContentType, format.ContentType())
	return c.Send(out)
}
