package metadata

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/contre95/discogsmeta/src/music"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// Handler handles metadata resolution requests
type Handler struct {
	service  *Service
	validate *validator.Validate
}

// NewHandler creates a new metadata handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service, validate: validator.New()}
}

type localAlbumRequest struct {
	Path string `json:"path" validate:"required"`
}

// SearchAlbums returns candidate releases for an album
func (h *Handler) SearchAlbums(c *fiber.Ctx) error {
	var info music.AlbumInfo
	if err := h.parse(c, &info); err != nil {
		return badRequest(c, err)
	}
	candidates, err := h.service.Albums.Search(c.UserContext(), &info)
	if err != nil {
		return resolutionError(c, err)
	}
	return c.JSON(candidates)
}

// IdentifyAlbum resolves an album to its canonical release
func (h *Handler) IdentifyAlbum(c *fiber.Ctx) error {
	var info music.AlbumInfo
	if err := h.parse(c, &info); err != nil {
		return badRequest(c, err)
	}
	result, err := h.service.Albums.Identify(c.UserContext(), &info)
	if err != nil {
		return resolutionError(c, err)
	}
	return c.JSON(result)
}

// IdentifyLocalAlbum identifies an album directory of the library from its file tags
func (h *Handler) IdentifyLocalAlbum(c *fiber.Ctx) error {
	var req localAlbumRequest
	if err := h.parse(c, &req); err != nil {
		return badRequest(c, err)
	}
	info, result, err := h.service.IdentifyLocalAlbum(c.UserContext(), req.Path)
	switch {
	case errors.Is(err, ErrOutsideLibrary):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case isCancellation(err):
		return resolutionError(c, err)
	case err != nil:
		slog.Warn("Failed to read local album", "path", req.Path, "error", err)
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"input": info, "metadata": result})
}

// AlbumImages lists the images of a release
func (h *Handler) AlbumImages(c *fiber.Ctx) error {
	images, err := h.service.Albums.Images(c.UserContext(), c.Params("releaseId"))
	if err != nil {
		return resolutionError(c, err)
	}
	return c.JSON(images)
}

// SearchArtists returns candidate artists
func (h *Handler) SearchArtists(c *fiber.Ctx) error {
	var info music.ArtistInfo
	if err := h.parse(c, &info); err != nil {
		return badRequest(c, err)
	}
	candidates, err := h.service.Artists.Search(c.UserContext(), &info)
	if err != nil {
		return resolutionError(c, err)
	}
	return c.JSON(candidates)
}

// IdentifyArtist resolves an artist to its catalog record
func (h *Handler) IdentifyArtist(c *fiber.Ctx) error {
	var info music.ArtistInfo
	if err := h.parse(c, &info); err != nil {
		return badRequest(c, err)
	}
	result, err := h.service.Artists.Identify(c.UserContext(), &info)
	if err != nil {
		return resolutionError(c, err)
	}
	return c.JSON(result)
}

// ArtistImages lists the images of an artist
func (h *Handler) ArtistImages(c *fiber.Ctx) error {
	images, err := h.service.Artists.Images(c.UserContext(), c.Params("artistId"))
	if err != nil {
		return resolutionError(c, err)
	}
	return c.JSON(images)
}

// ArtistGenres aggregates the genres of an artist's main releases
func (h *Handler) ArtistGenres(c *fiber.Ctx) error {
	genres, err := h.service.Artists.Genres(c.UserContext(), c.Params("artistId"))
	if err != nil {
		return resolutionError(c, err)
	}
	return c.JSON(genres)
}

// ProxyImage streams a remote image back to the client
func (h *Handler) ProxyImage(c *fiber.Ctx) error {
	imageURL := c.Query("url")
	if imageURL == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "url is required"})
	}

	resp, err := h.service.Proxy.GetImageResponse(c.UserContext(), imageURL)
	if err != nil {
		if isCancellation(err) {
			return resolutionError(c, err)
		}
		if errors.Is(err, ErrInvalidImageURL) {
			return badRequest(c, err)
		}
		if errors.Is(err, ErrImageHostNotAllowed) {
			slog.Warn("Refusing to proxy image", "url", imageURL)
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
		}
		slog.Warn("Failed to proxy image", "url", imageURL, "error", err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	}

	if contentType := resp.Header.Get(fiber.HeaderContentType); contentType != "" {
		c.Set(fiber.HeaderContentType, contentType)
	}
	c.Status(resp.StatusCode)
	return c.SendStream(resp.Body, int(resp.ContentLength))
}

// Providers lists the provider-ID keys and the catalog pages they link to
func (h *Handler) Providers(c *fiber.Ctx) error {
	return c.JSON(h.service.ExternalIDs())
}

// parse decodes and validates the request body into out.
func (h *Handler) parse(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return h.validate.Struct(out)
}

func badRequest(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
}

func isCancellation(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

func resolutionError(c *fiber.Ctx, err error) error {
	if isCancellation(err) {
		slog.Debug("Resolution canceled", "path", c.Path())
		return c.Status(fiber.StatusRequestTimeout).JSON(fiber.Map{"error": err.Error()})
	}
	slog.Error("Resolution failed", "path", c.Path(), "error", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}
