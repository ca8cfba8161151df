package music

// SongInfo is a track belonging to an album or artist input record.
type SongInfo struct {
	Name         string      `json:"name"`
	Path         string      `json:"path,omitempty"`
	Year         *int        `json:"year,omitempty" validate:"omitempty,gte=0,lte=9999"`
	Artists      []string    `json:"artists,omitempty"`
	AlbumArtists []string    `json:"album_artists,omitempty"`
	ProviderIDs  ProviderIDs `json:"provider_ids,omitempty"`
}
