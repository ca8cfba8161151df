package metadata

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/contre95/discogsmeta/src/features/config"
	"github.com/contre95/discogsmeta/src/music"
)

// ErrOutsideLibrary is returned when a local path does not resolve inside the library root.
var ErrOutsideLibrary = errors.New("path is outside the library")

// TagReader builds album input records from audio files on disk.
type TagReader interface {
	ReadAlbumDir(ctx context.Context, dir string) (*music.AlbumInfo, error)
}

// Service groups the resolvers and the image proxy behind the HTTP surface.
type Service struct {
	Albums  *AlbumResolver
	Artists *ArtistResolver
	Proxy   *ImageProxy
	tags    TagReader
	config  *config.Manager
}

// NewService creates a new metadata service.
func NewService(albums *AlbumResolver, artists *ArtistResolver, proxy *ImageProxy, tags TagReader, cfg *config.Manager) *Service {
	return &Service{Albums: albums, Artists: artists, Proxy: proxy, tags: tags, config: cfg}
}

// IdentifyLocalAlbum reads the tags of an album directory under the library root and identifies it.
func (s *Service) IdentifyLocalAlbum(ctx context.Context, relPath string) (*music.AlbumInfo, *music.AlbumMetadata, error) {
	dir, err := s.libraryPath(relPath)
	if err != nil {
		return nil, nil, err
	}

	slog.Info("Reading local album", "path", dir)
	info, err := s.tags.ReadAlbumDir(ctx, dir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read album at %s: %w", relPath, err)
	}

	result, err := s.Albums.Identify(ctx, info)
	if err != nil {
		return info, nil, err
	}
	return info, result, nil
}

// ExternalIDs returns the provider-ID definitions linked to the configured catalog site.
func (s *Service) ExternalIDs() []music.ExternalID {
	return music.ExternalIDs(s.config.Get().Discogs.SiteURL)
}

func (s *Service) libraryPath(relPath string) (string, error) {
	root, err := filepath.Abs(s.config.Get().LibraryPath)
	if err != nil {
		return "", fmt.Errorf("invalid library path: %w", err)
	}
	full := filepath.Join(root, filepath.Clean(string(filepath.Separator)+relPath))
	if rel, err := filepath.Rel(root, full); err != nil || strings.HasPrefix(rel, "..") {
		return "", ErrOutsideLibrary
	}
	return full, nil
}
