package metadata

import (
	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes registers the routes for the metadata feature
func RegisterRoutes(app *fiber.App, service *Service) {
	handler := NewHandler(service)

	api := app.Group("/api/metadata")
	api.Get("/providers", handler.Providers)
	api.Get("/image", handler.ProxyImage)

	albums := api.Group("/albums")
	albums.Post("/search", handler.SearchAlbums)
	albums.Post("/identify", handler.IdentifyAlbum)
	albums.Post("/identify/local", handler.IdentifyLocalAlbum)
	albums.Get("/:releaseId/images", handler.AlbumImages)

	artists := api.Group("/artists")
	artists.Post("/search", handler.SearchArtists)
	artists.Post("/identify", handler.IdentifyArtist)
	artists.Get("/:artistId/images", handler.ArtistImages)
	artists.Get("/:artistId/genres", handler.ArtistGenres)
}
