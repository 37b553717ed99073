package api

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"

	"github.com/insightdelivered/paypay-statement-converter/internal/converter"
	"github.com/insightdelivered/paypay-statement-converter/internal/extractor"
	"github.com/insightdelivered/paypay-statement-converter/internal/logger"
	"github.com/insightdelivered/paypay-statement-converter/internal/models"
	"github.com/insightdelivered/paypay-statement-converter/internal/writer"
)

// maxUploadSize bounds request bodies (32MB).
const maxUploadSize = 32 << 20

// ConvertResponse is the JSON response from the /api/convert endpoint.
type ConvertResponse struct {
	Success       bool           `json:"success"`
	Error         string         `json:"error,omitempty"`
	PaymentDate   string         `json:"paymentDate,omitempty"`
	PaymentMethod string         `json:"paymentMethod,omitempty"`
	Entries       []models.Entry `json:"entries"`
	Total         string         `json:"total,omitempty"`
	Count         int            `json:"count"`
	CSV           string         `json:"csv,omitempty"`
	Version       string         `json:"version,omitempty"`
}

// Handler holds the HTTP handlers for the API.
type Handler struct {
	Converter *converter.Converter
	Logger    zerolog.Logger
	Version   string
}

// NewApp returns a fiber app with the API routes registered.
func NewApp(h *Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		BodyLimit:             maxUploadSize,
		DisableStartupMessage: true,
	})

	// Recover from any panics to prevent server crash
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Content-Type",
	}))

	app.Get("/api/health", h.HandleHealth)
	app.Post("/api/convert", h.HandleConvert)
	return app
}

// HandleHealth reports liveness.
func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"engine":  "fiber",
		"version": h.Version,
	})
}

// HandleConvert converts an uploaded statement page. The CSV is returned
// inside a JSON envelope, or as a file when download=true.
func (h *Handler) HandleConvert(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "No file uploaded. Use form field 'file'.")
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if ext != ".html" && ext != ".htm" {
		return writeError(c, fiber.StatusBadRequest, "Only HTML files are supported.")
	}

	file, err := fh.Open()
	if err != nil {
		return writeError(c, fiber.StatusInternalServerError, "Failed to read uploaded file.")
	}
	defer file.Close()

	log := h.Logger.With().Str("file", fh.Filename).Int64("size", fh.Size).Logger()
	ctx := logger.WithContext(c.UserContext(), log)

	st, err := h.Converter.WithEncoding(c.FormValue("encoding")).Convert(ctx, file)
	if err != nil {
		log.Error().Err(err).Msg("conversion failed")
		if errors.Is(err, extractor.ErrUnsupportedEncoding) {
			return writeError(c, fiber.StatusBadRequest, err.Error())
		}
		return writeError(c, fiber.StatusUnprocessableEntity, fmt.Sprintf("Conversion failed: %v", err))
	}

	csvText := (&writer.CSVWriter{}).Render(st)
	log.Info().Int("entries", len(st.Entries)).Msg("statement converted")

	if c.FormValue("download") == "true" {
		c.Attachment(strings.TrimSuffix(filepath.Base(fh.Filename), filepath.Ext(fh.Filename)) + ".csv")
		c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
		return c.SendString(csvText)
	}

	// Ensure entries is never nil (nil marshals to JSON null, not [])
	entries := st.Entries
	if entries == nil {
		entries = []models.Entry{}
	}

	return c.JSON(ConvertResponse{
		Success:       true,
		PaymentDate:   st.Header.PaymentDate,
		PaymentMethod: st.Header.PaymentMethod,
		Entries:       entries,
		Total:         st.Total().String(),
		Count:         len(entries),
		CSV:           csvText,
		Version:       h.Version,
	})
}

func writeError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(ConvertResponse{
		Success: false,
		Error:   msg,
	})
}
