package metadata

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/contre95/discogsmeta/src/features/config"
	"github.com/contre95/discogsmeta/src/music"
)

// requireToken fails resolver construction when no Discogs token is configured.
func requireToken(cfg *config.Manager) error {
	if cfg == nil || cfg.Get().Discogs.Token == "" {
		slog.Error("No auth token configured")
		return &InvalidConfigurationError{Field: "discogs.token", Message: "No auth token configured"}
	}
	return nil
}

// lookup runs one catalog call and folds every failure other than cancellation into a nil result.
func lookup[T any](ctx context.Context, call func() (*T, error), logArgs ...any) (*T, error) {
	value, err := call()
	if cerr := canceled(ctx, err); cerr != nil {
		slog.Debug("Catalog call canceled", logArgs...)
		return nil, cerr
	}
	if err != nil {
		slog.Debug("Catalog call failed", append(logArgs, "error", err)...)
		return nil, nil
	}
	return value, nil
}

// parseID turns a provider ID into a catalog ID. Only positive integers are valid.
func parseID(raw string) (int, bool) {
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func formatID(id int) string {
	return strconv.Itoa(id)
}

func optionalYear(year int) *int {
	if year <= 0 {
		return nil
	}
	return &year
}

func imageURIs(images []Image) []string {
	uris := make([]string, 0, len(images))
	for _, image := range images {
		uris = append(uris, image.URI)
	}
	return uris
}

// releaseIDOf returns the release to fetch for an artist listing entry: the main release when
// the entry points at one, otherwise the entry itself.
func releaseIDOf(entry ArtistRelease) int {
	if entry.MainRelease != 0 {
		return entry.MainRelease
	}
	return entry.ID
}

// releaseProviderIDs records the release and, when it has one, its master.
func releaseProviderIDs(release *Release) music.ProviderIDs {
	ids := music.ProviderIDs{}
	ids.Set(music.ProviderAlbum, formatID(release.ID))
	if release.MasterID != 0 {
		ids.Set(music.ProviderAlbumMaster, formatID(release.MasterID))
	}
	return ids
}

// releaseCandidate maps a full release into a search candidate.
func releaseCandidate(release *Release) music.Candidate {
	candidate := music.Candidate{
		Name:               release.Title,
		ProductionYear:     optionalYear(release.Year),
		ImageURL:           release.Thumb,
		SearchProviderName: music.ProviderName,
		ProviderIDs:        releaseProviderIDs(release),
	}
	if candidate.ImageURL == "" && len(release.Images) > 0 {
		candidate.ImageURL = release.Images[0].URI
	}

	if len(release.Artists) > 0 {
		artist := release.Artists[0]
		candidate.AlbumArtist = &music.Candidate{
			Name:               artist.Name,
			SearchProviderName: music.ProviderName,
			ProviderIDs:        music.ProviderIDs{},
		}
		candidate.AlbumArtist.ProviderIDs.Set(music.ProviderArtist, formatID(artist.ID))
	}
	return candidate
}

// remoteImages lists catalog images with the first one as primary, or nothing when there are none.
func remoteImages(images []Image) []music.RemoteImage {
	if len(images) == 0 {
		return []music.RemoteImage{}
	}
	return music.RemoteImages(imageURIs(images))
}
