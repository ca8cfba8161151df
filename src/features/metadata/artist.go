package metadata

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/contre95/discogsmeta/src/features/config"
	"github.com/contre95/discogsmeta/src/music"
)

// artistReleasesPageSize is the page size used when walking an artist's whole release listing.
const artistReleasesPageSize = 100

// ArtistResolver finds and identifies artists in the catalog.
type ArtistResolver struct {
	catalog  Catalog
	config   *config.Manager
	recorder Recorder
}

// NewArtistResolver creates a new artist resolver. It fails when no Discogs token is configured.
func NewArtistResolver(catalog Catalog, cfg *config.Manager, recorder Recorder) (*ArtistResolver, error) {
	if err := requireToken(cfg); err != nil {
		return nil, err
	}
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &ArtistResolver{catalog: catalog, config: cfg, recorder: recorder}, nil
}

// Search returns candidate artists. A known artist ID yields at most that artist, otherwise an
// artist search on the name is run.
func (r *ArtistResolver) Search(ctx context.Context, info *music.ArtistInfo) (candidates []music.Candidate, err error) {
	start := time.Now()
	defer func() { observe(r.recorder, "artist", "search", start, len(candidates) > 0, err) }()

	scope := newArtistScope("Search", info.Name)
	slog.Info("Performing search for artist", "scope", scope)
	candidates = []music.Candidate{}

	if artistID := ArtistID(info); artistID != "" {
		scope.ArtistID = artistID
		slog.Info("Searching for artist by ID", "scope", scope)
		artist, err := r.artist(ctx, artistID, scope)
		if err != nil {
			return nil, err
		}
		if artist == nil {
			slog.Warn("Failed to get response when fetching artist by ID", "scope", scope)
			return candidates, nil
		}
		candidate := music.Candidate{
			Name:               artist.Name,
			SearchProviderName: music.ProviderName,
			ProviderIDs:        music.ProviderIDs{},
		}
		if len(artist.Images) > 0 {
			candidate.ImageURL = artist.Images[0].URI
		}
		candidate.ProviderIDs.Set(music.ProviderArtist, artistID)
		return append(candidates, candidate), nil
	}

	results, err := r.searchArtists(ctx, info.Name, scope)
	if err != nil {
		return nil, err
	}
	if results == nil {
		slog.Warn("Failed to get response when searching for artist", "scope", scope)
		return candidates, nil
	}
	for _, result := range results.Results {
		candidate := music.Candidate{
			Name:               result.Title,
			ImageURL:           result.Thumb,
			SearchProviderName: music.ProviderName,
			ProviderIDs:        music.ProviderIDs{},
		}
		candidate.ProviderIDs.Set(music.ProviderArtist, formatID(result.ID))
		candidates = append(candidates, candidate)
	}

	slog.Info("Artist search finished", "scope", scope, "candidates", len(candidates))
	return candidates, nil
}

// Identify resolves the artist to one catalog artist: the known one, or the first search hit for
// its name. The catalog name replaces the caller's only when discogs.replace_artist_name is set.
func (r *ArtistResolver) Identify(ctx context.Context, info *music.ArtistInfo) (result *music.ArtistMetadata, err error) {
	start := time.Now()
	defer func() { observe(r.recorder, "artist", "identify", start, result != nil && result.HasMetadata, err) }()

	scope := newArtistScope("Identify", info.Name)
	scope.ArtistID = ArtistID(info)
	slog.Info("Performing artist identification", "scope", scope)

	result = &music.ArtistMetadata{ProviderIDs: music.ProviderIDs{}}

	var artist *Artist
	if scope.ArtistID == "" {
		results, err := r.searchArtists(ctx, info.Name, scope)
		if err != nil {
			return nil, err
		}
		if results == nil {
			slog.Warn("Failed to get response when searching for artist", "scope", scope)
			return result, nil
		}
		if len(results.Results) == 0 {
			slog.Info("No artist found for name", "scope", scope)
			return result, nil
		}
		first := results.Results[0]
		scope.ArtistID = formatID(first.ID)
		artist, err = lookup(ctx, func() (*Artist, error) {
			return r.catalog.GetArtist(ctx, first.ID)
		}, "scope", scope)
		if err != nil {
			return nil, err
		}
	} else {
		artist, err = r.artist(ctx, scope.ArtistID, scope)
		if err != nil {
			return nil, err
		}
	}

	if artist == nil {
		slog.Warn("Failed to get response when fetching artist", "scope", scope)
		return result, nil
	}

	result.HasMetadata = true
	if r.config.Get().Discogs.ReplaceArtistName {
		result.Name = artist.Name
	}
	result.Overview = artist.Profile
	result.ExternalURL = artist.URI
	result.ProviderIDs.Set(music.ProviderArtist, formatID(artist.ID))

	slog.Info("Artist identified", "scope", scope)
	return result, nil
}

// Images lists the images of an artist, the first one as primary.
func (r *ArtistResolver) Images(ctx context.Context, artistID string) ([]music.RemoteImage, error) {
	scope := newArtistScope("Images", "")
	scope.ArtistID = artistID

	artist, err := r.artist(ctx, artistID, scope)
	if err != nil {
		return nil, err
	}
	if artist == nil {
		slog.Warn("Failed to get response when fetching artist images", "scope", scope)
		return []music.RemoteImage{}, nil
	}
	if len(artist.Images) == 0 {
		slog.Warn("Artist has no images", "scope", scope)
		return []music.RemoteImage{}, nil
	}
	return remoteImages(artist.Images), nil
}

// SupportedImages lists the image types an artist can carry.
func (r *ArtistResolver) SupportedImages() []music.ImageType {
	return []music.ImageType{music.ImageTypePrimary, music.ImageTypeBackdrop}
}

// Genres collects the genres of every release the artist is a main artist on, in the order they
// first appear. Releases that cannot be fetched are skipped.
func (r *ArtistResolver) Genres(ctx context.Context, artistID string) ([]string, error) {
	scope := newArtistScope("Genres", "")
	scope.ArtistID = artistID
	genres := []string{}

	id, ok := parseID(artistID)
	if !ok {
		slog.Warn("Ignoring malformed artist ID", "scope", scope)
		return genres, nil
	}

	var releaseIDs []int
	seen := map[int]bool{}
	for page := 1; ; page++ {
		listing, err := lookup(ctx, func() (*ArtistReleases, error) {
			return r.catalog.GetArtistReleases(ctx, id, &Pagination{Page: page, PerPage: artistReleasesPageSize}, nil)
		}, "scope", scope, "page", page)
		if err != nil {
			return nil, err
		}
		if listing == nil {
			slog.Warn("Failed to get response when fetching artist releases", "scope", scope, "page", page)
			break
		}
		for _, entry := range listing.Releases {
			if !strings.EqualFold(entry.Role, "Main") {
				continue
			}
			releaseID := releaseIDOf(entry)
			if seen[releaseID] {
				continue
			}
			seen[releaseID] = true
			releaseIDs = append(releaseIDs, releaseID)
		}
		if page >= listing.Pagination.Pages {
			break
		}
	}

	for _, releaseID := range releaseIDs {
		release, err := lookup(ctx, func() (*Release, error) {
			return r.catalog.GetRelease(ctx, releaseID)
		}, "scope", scope, "release_id", releaseID)
		if err != nil {
			return nil, err
		}
		if release == nil {
			slog.Warn("Skipping artist release that could not be fetched", "scope", scope, "release_id", releaseID)
			continue
		}
		for _, genre := range release.Genres {
			genres = music.AppendGenre(genres, genre)
		}
	}
	return genres, nil
}

func (r *ArtistResolver) artist(ctx context.Context, rawID string, scope *artistScope) (*Artist, error) {
	id, ok := parseID(rawID)
	if !ok {
		slog.Warn("Ignoring malformed artist ID", "scope", scope)
		return nil, nil
	}
	return lookup(ctx, func() (*Artist, error) {
		return r.catalog.GetArtist(ctx, id)
	}, "scope", scope)
}

func (r *ArtistResolver) searchArtists(ctx context.Context, name string, scope *artistScope) (*SearchResults, error) {
	slog.Info("Searching for artist by name", "scope", scope)
	return lookup(ctx, func() (*SearchResults, error) {
		return r.catalog.Search(ctx, SearchQuery{Type: EntityTypeArtist, Query: name}, nil)
	}, "scope", scope)
}
