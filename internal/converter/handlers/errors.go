package handlers

import (
	"errors"
	"io"
	"log"
	"net/http"

	"indoor-map/internal/converter/repository"
	"indoor-map/internal/indoor/mapper"
	"indoor-map/internal/indoor/parser"

	"github.com/gofiber/fiber/v3"
)

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, parser.ErrMalformed):
		return http.StatusUnprocessableEntity
	case errors.Is(err, parser.ErrSourceUnavailable), errors.Is(err, mapper.ErrUnknownFormat):
		return http.StatusBadRequest
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func fail(c fiber.Ctx, tag string, err error) error {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Printf("[%s] internal error: %v", tag, err)
		return c.Status(status).JSON(fiber.Map{"error": "internal error"})
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

// readUpload returns the multipart "file" field and its name.
func readUpload(c fiber.Ctx) ([]byte, string, error) {
	file, err := c.FormFile("file")
	if err != nil {
		return nil, "", err
	}

	f, err := file.Open()
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, "", err
	}
	return data, file.Filename, nil
}
