package music

import (
	"fmt"
	"strings"
)

// ProviderName is the display name of the catalog provider.
const ProviderName = "Discogs"

// Provider-ID keys used throughout input records and results.
const (
	ProviderAlbum       = "album"
	ProviderAlbumMaster = "album-master"
	ProviderArtist      = "artist"
	ProviderAlbumArtist = "album-artist"
)

// ProviderIDs maps provider-ID keys to external identifiers.
// A missing key and an empty value both mean "not known".
type ProviderIDs map[string]string

// Get returns the ID stored under key, or "" when absent.
func (p ProviderIDs) Get(key string) string {
	if p == nil {
		return ""
	}
	return p[key]
}

// Set stores id under key. An empty id removes the key.
func (p ProviderIDs) Set(key, id string) {
	if id == "" {
		delete(p, key)
		return
	}
	p[key] = id
}

// MediaType is the kind of library item an external ID applies to.
type MediaType string

const (
	MediaTypeAlbum        MediaType = "album"
	MediaTypeAlbumArtist  MediaType = "album_artist"
	MediaTypeArtist       MediaType = "artist"
	MediaTypeReleaseGroup MediaType = "release_group"
)

// ExternalID describes how a provider-ID key links back to the catalog website.
type ExternalID struct {
	Key          string    `json:"key"`
	ProviderName string    `json:"provider_name"`
	Type         MediaType `json:"type"`
	URLFormat    string    `json:"url_format"`
}

var externalIDPaths = map[string]string{
	ProviderAlbum:       "/release/%s",
	ProviderAlbumMaster: "/master/%s",
	ProviderArtist:      "/artist/%s",
	ProviderAlbumArtist: "/artist/%s",
}

// ExternalIDs returns the external-ID definitions rooted at siteURL.
func ExternalIDs(siteURL string) []ExternalID {
	site := strings.TrimRight(siteURL, "/")
	return []ExternalID{
		{Key: ProviderAlbum, ProviderName: ProviderName, Type: MediaTypeAlbum, URLFormat: site + externalIDPaths[ProviderAlbum]},
		{Key: ProviderAlbumMaster, ProviderName: ProviderName, Type: MediaTypeReleaseGroup, URLFormat: site + externalIDPaths[ProviderAlbumMaster]},
		{Key: ProviderArtist, ProviderName: ProviderName, Type: MediaTypeArtist, URLFormat: site + externalIDPaths[ProviderArtist]},
		{Key: ProviderAlbumArtist, ProviderName: ProviderName, Type: MediaTypeAlbumArtist, URLFormat: site + externalIDPaths[ProviderAlbumArtist]},
	}
}

// ExternalURL builds the catalog website URL for a provider-ID key, or "" for unknown keys or empty ids.
func ExternalURL(siteURL, key, id string) string {
	path, ok := externalIDPaths[key]
	if !ok || id == "" {
		return ""
	}
	return strings.TrimRight(siteURL, "/") + fmt.Sprintf(path, id)
}
