package metadata

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/contre95/discogsmeta/src/features/config"
	"github.com/contre95/discogsmeta/src/music"
)

// AlbumResolver finds and identifies albums in the catalog.
type AlbumResolver struct {
	catalog  Catalog
	config   *config.Manager
	recorder Recorder
}

// NewAlbumResolver creates a new album resolver. It fails when no Discogs token is configured.
func NewAlbumResolver(catalog Catalog, cfg *config.Manager, recorder Recorder) (*AlbumResolver, error) {
	if err := requireToken(cfg); err != nil {
		return nil, err
	}
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &AlbumResolver{catalog: catalog, config: cfg, recorder: recorder}, nil
}

// Search returns candidate releases for the album. A known release ID yields at most that release,
// otherwise a release search is run on the album name, album artist and year.
func (r *AlbumResolver) Search(ctx context.Context, info *music.AlbumInfo) (candidates []music.Candidate, err error) {
	start := time.Now()
	defer func() { observe(r.recorder, "album", "search", start, len(candidates) > 0, err) }()

	scope := newAlbumScope("Search", info.Name, info.Year)
	slog.Info("Performing search for album", "scope", scope)
	candidates = []music.Candidate{}

	if releaseID := ReleaseID(info); releaseID != "" {
		scope.ReleaseID = releaseID
		slog.Info("Searching for album by ID", "scope", scope)
		release, err := r.release(ctx, releaseID, scope)
		if err != nil {
			return nil, err
		}
		if release == nil {
			slog.Warn("Failed to get response when fetching release by ID", "scope", scope)
			return candidates, nil
		}
		return append(candidates, releaseCandidate(release)), nil
	}

	query := SearchQuery{Type: EntityTypeRelease, ReleaseTitle: info.Name, Year: info.Year}
	query.Artist = AlbumArtistName(info)
	slog.Info("Searching for album by query", "scope", scope, "artist", query.Artist)

	results, err := lookup(ctx, func() (*SearchResults, error) {
		return r.catalog.Search(ctx, query, nil)
	}, "scope", scope)
	if err != nil {
		return nil, err
	}
	if results == nil {
		slog.Warn("Failed to get response when searching for release", "scope", scope)
		return candidates, nil
	}

	for _, result := range results.Results {
		release, err := lookup(ctx, func() (*Release, error) {
			return r.catalog.GetRelease(ctx, result.ID)
		}, "scope", scope, "release_id", result.ID)
		if err != nil {
			return nil, err
		}
		if release == nil {
			slog.Warn("Failed to get release from search result", "scope", scope, "release_id", result.ID)
			continue
		}
		candidates = append(candidates, releaseCandidate(release))
	}

	slog.Info("Album search finished", "scope", scope, "candidates", len(candidates))
	return candidates, nil
}

// Identify resolves the album to one canonical release. The master's main release is preferred,
// then the known release, then the first same-titled entry in the album artist's release listing.
// The record has HasMetadata unset when nothing could be resolved.
func (r *AlbumResolver) Identify(ctx context.Context, info *music.AlbumInfo) (result *music.AlbumMetadata, err error) {
	start := time.Now()
	defer func() { observe(r.recorder, "album", "identify", start, result != nil && result.HasMetadata, err) }()

	scope := newAlbumScope("Identify", info.Name, info.Year)
	scope.ReleaseID = ReleaseID(info)
	scope.ReleaseMasterID = ReleaseMasterID(info)
	scope.ArtistID = AlbumArtistID(info)
	if scope.ReleaseMasterID == "0" {
		slog.Info("No master release", "scope", scope)
		scope.ReleaseMasterID = ""
	}
	slog.Info("Performing album identification", "scope", scope)

	result = &music.AlbumMetadata{ProviderIDs: music.ProviderIDs{}}

	var release *Release
	if scope.ReleaseMasterID != "" {
		release, err = r.masterMainRelease(ctx, scope)
		if err != nil {
			return nil, err
		}
	}

	if release == nil {
		if scope.ReleaseID != "" {
			slog.Info("Getting release by ID", "scope", scope)
			release, err = r.release(ctx, scope.ReleaseID, scope)
			if err != nil {
				return nil, err
			}
			if release == nil {
				slog.Warn("Failed to get response when fetching release by ID", "scope", scope)
				return result, nil
			}
		} else {
			release, err = r.artistListingRelease(ctx, info.Name, scope)
			if err != nil {
				return nil, err
			}
			if release == nil {
				return result, nil
			}
		}
	}

	result.HasMetadata = true
	result.Name = release.Title
	result.ProductionYear = optionalYear(release.Year)
	result.ExternalURL = release.URI
	for _, genre := range release.Genres {
		result.AddGenre(genre)
	}
	result.Images = music.RemoteImages(imageURIs(release.Images))
	result.ProviderIDs = releaseProviderIDs(release)
	result.ProviderIDs.Set(music.ProviderArtist, scope.ArtistID)

	slog.Info("Album identified", "scope", scope, "release_id", release.ID)
	return result, nil
}

// Images lists the images of a release, the first one as primary.
func (r *AlbumResolver) Images(ctx context.Context, releaseID string) ([]music.RemoteImage, error) {
	scope := newAlbumScope("Images", "", nil)
	scope.ReleaseID = releaseID

	release, err := r.release(ctx, releaseID, scope)
	if err != nil {
		return nil, err
	}
	if release == nil {
		slog.Warn("Failed to get response when fetching release images", "scope", scope)
		return []music.RemoteImage{}, nil
	}
	if len(release.Images) == 0 {
		slog.Warn("Release has no images", "scope", scope)
		return []music.RemoteImage{}, nil
	}
	return remoteImages(release.Images), nil
}

// SupportedImages lists the image types an album can carry.
func (r *AlbumResolver) SupportedImages() []music.ImageType {
	return []music.ImageType{music.ImageTypePrimary, music.ImageTypeBackdrop}
}

// release fetches a release by its provider ID. Malformed IDs resolve to nothing.
func (r *AlbumResolver) release(ctx context.Context, rawID string, scope *albumScope) (*Release, error) {
	id, ok := parseID(rawID)
	if !ok {
		slog.Warn("Ignoring malformed release ID", "scope", scope, "release_id", rawID)
		return nil, nil
	}
	return lookup(ctx, func() (*Release, error) {
		return r.catalog.GetRelease(ctx, id)
	}, "scope", scope, "release_id", id)
}

func (r *AlbumResolver) masterMainRelease(ctx context.Context, scope *albumScope) (*Release, error) {
	masterID, ok := parseID(scope.ReleaseMasterID)
	if !ok {
		slog.Warn("Ignoring malformed master ID", "scope", scope)
		return nil, nil
	}

	slog.Info("Getting master release by ID", "scope", scope)
	master, err := lookup(ctx, func() (*Master, error) {
		return r.catalog.GetMaster(ctx, masterID)
	}, "scope", scope)
	if err != nil {
		return nil, err
	}
	if master == nil {
		slog.Warn("Failed to get response when fetching master release", "scope", scope)
		return nil, nil
	}
	if master.MainRelease == 0 {
		slog.Warn("Master release has no main release", "scope", scope)
		return nil, nil
	}

	release, err := lookup(ctx, func() (*Release, error) {
		return r.catalog.GetRelease(ctx, master.MainRelease)
	}, "scope", scope, "release_id", master.MainRelease)
	if err != nil {
		return nil, err
	}
	if release == nil {
		slog.Warn("Failed to get main release of master", "scope", scope, "release_id", master.MainRelease)
	}
	return release, nil
}

// artistListingRelease picks the first entry of the album artist's release listing whose title
// matches name, ignoring case.
func (r *AlbumResolver) artistListingRelease(ctx context.Context, name string, scope *albumScope) (*Release, error) {
	if scope.ArtistID == "" {
		slog.Info("No release, master or artist ID known, nothing to identify", "scope", scope)
		return nil, nil
	}
	artistID, ok := parseID(scope.ArtistID)
	if !ok {
		slog.Warn("Ignoring malformed artist ID", "scope", scope)
		return nil, nil
	}

	slog.Info("Searching artist releases for album", "scope", scope)
	listing, err := lookup(ctx, func() (*ArtistReleases, error) {
		return r.catalog.GetArtistReleases(ctx, artistID, nil, nil)
	}, "scope", scope)
	if err != nil {
		return nil, err
	}
	if listing == nil {
		slog.Warn("Failed to get response when fetching artist releases", "scope", scope)
		return nil, nil
	}

	for _, entry := range listing.Releases {
		if !strings.EqualFold(entry.Title, name) {
			continue
		}
		releaseID := releaseIDOf(entry)
		release, err := lookup(ctx, func() (*Release, error) {
			return r.catalog.GetRelease(ctx, releaseID)
		}, "scope", scope, "release_id", releaseID)
		if err != nil {
			return nil, err
		}
		if release == nil {
			slog.Warn("Failed to get matching artist release", "scope", scope, "release_id", releaseID)
		}
		return release, nil
	}

	slog.Info("No artist release matches the album name", "scope", scope)
	return nil, nil
}
